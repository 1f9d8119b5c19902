package flows

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/zoe5466/Gudiee-sub001/logging"
	"github.com/zoe5466/Gudiee-sub001/pipeline"
	"github.com/zoe5466/Gudiee-sub001/pricing"
	"github.com/zoe5466/Gudiee-sub001/types"
	"github.com/zoe5466/Gudiee-sub001/wizard"
)

// ModalDetails is step 1 of the booking modal.
type ModalDetails struct {
	Date         string
	StartTime    string
	Participants int
}

// ModalContact is step 2 of the booking modal.
type ModalContact struct {
	Name             string
	Email            string
	Phone            string
	Nationality      string
	EmergencyContact string
	Document         string // optional travel document, data URL
	SpecialRequests  string
}

// ModalPayment is the payment step.
type ModalPayment struct {
	Method     string
	AgreeTerms bool
}

// BookingModalForm merges the modal steps with the service being booked.
type BookingModalForm struct {
	Service types.Service
	Details ModalDetails
	Contact ModalContact
	Payment ModalPayment
}

// Pricing derives the breakdown from the current participant count.
func (f BookingModalForm) Pricing() pricing.Breakdown {
	return pricing.Calculate(f.Service.Price, f.Details.Participants)
}

// Request builds the POST /api/orders payload.
func (f BookingModalForm) Request() types.CreateOrderRequest {
	return types.CreateOrderRequest{
		ServiceID:    f.Service.ID,
		Date:         f.Details.Date,
		StartTime:    f.Details.StartTime,
		Participants: f.Details.Participants,
		Customer: types.Customer{
			Name:             strings.TrimSpace(f.Contact.Name),
			Email:            strings.TrimSpace(f.Contact.Email),
			Phone:            f.Contact.Phone,
			Nationality:      strings.TrimSpace(f.Contact.Nationality),
			EmergencyContact: strings.TrimSpace(f.Contact.EmergencyContact),
		},
		SpecialRequests: strings.TrimSpace(f.Contact.SpecialRequests),
		Document:        f.Contact.Document,
	}
}

// newPaymentToken stands in for the token a payment widget would return.
var newPaymentToken = func() string {
	return "tok_" + uuid.NewString()
}

// bookingModal keeps the order created by a submission whose payment
// failed, so a retry with the same details pays that order instead of
// creating a second one.
type bookingModal struct {
	orders OrderService
	logger logging.Logger

	mu          sync.Mutex
	lastRequest *types.CreateOrderRequest
	lastOrder   *types.Order
}

func (m *bookingModal) createOrderStage() pipeline.Stage {
	return pipeline.StageFunc{StageName: "create-order", Fn: func(ctx context.Context, oc *pipeline.OrderContext) error {
		if oc.Order != nil {
			m.logger.Debug("reusing unpaid order", map[string]any{"order_id": oc.Order.ID})
			oc.AddWarning("沿用先前未付款的訂單 " + oc.Order.ID)
			return nil
		}
		order, err := m.orders.CreateOrder(ctx, oc.Request)
		if err != nil {
			return err
		}
		oc.Order = order

		m.mu.Lock()
		req := oc.Request
		m.lastRequest, m.lastOrder = &req, order
		m.mu.Unlock()
		return nil
	}}
}

func (m *bookingModal) paymentStage() pipeline.Stage {
	return pipeline.StageFunc{StageName: "payment", Fn: func(ctx context.Context, oc *pipeline.OrderContext) error {
		paid, err := m.orders.Pay(ctx, oc.Order.ID, oc.Payment)
		if err != nil {
			return err
		}
		oc.Order = paid

		m.mu.Lock()
		m.lastRequest, m.lastOrder = nil, nil
		m.mu.Unlock()
		return nil
	}}
}

func (m *bookingModal) submit(ctx context.Context, f BookingModalForm) (wizard.Outcome, error) {
	oc := pipeline.NewOrderContext(f.Request(), types.PaymentRequest{
		PaymentMethod: f.Payment.Method,
		PaymentToken:  newPaymentToken(),
	})

	m.mu.Lock()
	if m.lastRequest != nil && *m.lastRequest == oc.Request {
		oc.Order = m.lastOrder
	}
	m.mu.Unlock()

	p := pipeline.New(m.createOrderStage(), m.paymentStage()).WithLogger(m.logger)
	if err := p.Run(ctx, oc); err != nil {
		return wizard.Outcome{}, err
	}
	body := fmt.Sprintf("訂單編號：%s\n付款金額：%s", oc.Order.ID, pricing.Format(oc.Order.Pricing.Total))
	for _, w := range oc.Warnings {
		body += "\n" + w
	}
	return wizard.Outcome{
		Route: RouteOrderPrefix + oc.Order.ID,
		Notice: wizard.Notice{
			Title:    "預訂成功！",
			Body:     body,
			Blocking: true,
		},
		Result: oc.Order,
	}, nil
}

// ValidateModalContact validates the contact step. The travel document is
// optional but must be an uploaded image when present.
func ValidateModalContact(c ModalContact) wizard.ErrorMap {
	errs := wizard.ErrorMap{}
	validateContact(errs, c.Name, c.Email, c.Phone)
	if c.Document != "" {
		errs.Add("document", wizard.ValidateDataURL(c.Document, "旅遊證件圖片"))
	}
	return errs
}

// ValidateModalPayment validates the payment step.
func ValidateModalPayment(p ModalPayment) wizard.ErrorMap {
	errs := wizard.ErrorMap{}
	valid := false
	for _, o := range paymentOptions {
		if o.Value == p.Method {
			valid = true
		}
	}
	if !valid {
		errs.Add("paymentMethod", "請選擇付款方式")
	}
	errs.Add("agreeTerms", wizard.ValidateTerms(p.AgreeTerms))
	return errs
}

// BookingModalDefinition describes the booking modal: details, contact,
// payment. Submission creates the order and then pays for it.
func BookingModalDefinition(orders OrderService, svc types.Service, logger logging.Logger) wizard.Definition[BookingModalForm] {
	m := &bookingModal{orders: orders, logger: logging.Fallback(logger)}
	return wizard.Definition[BookingModalForm]{
		Name: "booking-modal",
		Steps: []wizard.Step[BookingModalForm]{
			{
				Title: "行程細節",
				Icon:  "📅",
				Fields: scheduleFields(svc,
					func(f *BookingModalForm) *string { return &f.Details.Date },
					func(f *BookingModalForm) *string { return &f.Details.StartTime },
					func(f *BookingModalForm) *int { return &f.Details.Participants },
				),
				Validate: func(f *BookingModalForm) wizard.ErrorMap {
					errs := wizard.ErrorMap{}
					validateSchedule(errs, f.Service, f.Details.Date, f.Details.StartTime, f.Details.Participants)
					return errs
				},
			},
			{
				Title: "旅客資料",
				Icon:  "🧳",
				Fields: []wizard.Field[BookingModalForm]{
					wizard.StringField("name", "姓名", wizard.KindText, func(f *BookingModalForm) *string { return &f.Contact.Name }),
					wizard.StringField("email", "電子郵件", wizard.KindEmail, func(f *BookingModalForm) *string { return &f.Contact.Email }),
					wizard.StringField("phone", "手機號碼", wizard.KindPhone, func(f *BookingModalForm) *string { return &f.Contact.Phone }).
						With("0912345678", "", false),
					wizard.StringField("nationality", "國籍", wizard.KindText, func(f *BookingModalForm) *string { return &f.Contact.Nationality }).
						With("台灣", "", true),
					wizard.StringField("emergencyContact", "緊急聯絡人", wizard.KindText, func(f *BookingModalForm) *string { return &f.Contact.EmergencyContact }).
						With("姓名 / 電話", "", true),
					wizard.FileField("document", "旅遊證件", func(f *BookingModalForm) *string { return &f.Contact.Document }).
						With("./passport.jpg", "圖片檔，最大 5MB", true),
					wizard.StringField("specialRequests", "特殊需求", wizard.KindTextArea, func(f *BookingModalForm) *string { return &f.Contact.SpecialRequests }).
						With("", "", true),
				},
				Validate: func(f *BookingModalForm) wizard.ErrorMap { return ValidateModalContact(f.Contact) },
			},
			{
				Title: "付款",
				Icon:  "💳",
				Fields: []wizard.Field[BookingModalForm]{
					wizard.ChoiceField("paymentMethod", "付款方式", paymentOptions, func(f *BookingModalForm) *string { return &f.Payment.Method }),
					wizard.BoolField("agreeTerms", "我同意預訂條款與取消政策", func(f *BookingModalForm) *bool { return &f.Payment.AgreeTerms }),
				},
				Validate: func(f *BookingModalForm) wizard.ErrorMap { return ValidateModalPayment(f.Payment) },
			},
		},
		Submit:   m.submit,
		Fallback: "預訂失敗，請稍後再試",
	}
}

// NewBookingModal creates the booking modal wizard for svc.
func NewBookingModal(orders OrderService, svc types.Service, logger logging.Logger, opts ...wizard.ControllerOption) *wizard.Controller[BookingModalForm] {
	form := BookingModalForm{
		Service: svc,
		Details: ModalDetails{Participants: 1},
		Payment: ModalPayment{Method: types.PaymentCreditCard},
	}
	return wizard.New(BookingModalDefinition(orders, svc, logger), form, opts...)
}
