package flows

import (
	"context"
	"fmt"
	"strings"

	"github.com/zoe5466/Gudiee-sub001/pricing"
	"github.com/zoe5466/Gudiee-sub001/types"
	"github.com/zoe5466/Gudiee-sub001/wizard"
)

// BookingSchedule is step 1 of the booking page.
type BookingSchedule struct {
	Date         string
	StartTime    string
	Participants int
}

// BookingContact is step 2 of the booking page.
type BookingContact struct {
	Name            string
	Email           string
	Phone           string
	SpecialRequests string
}

// BookingReview is the confirmation step.
type BookingReview struct {
	AgreeTerms bool
}

// BookingForm merges the booking steps with the service being booked.
type BookingForm struct {
	Service  types.Service
	Schedule BookingSchedule
	Contact  BookingContact
	Review   BookingReview
}

// Pricing derives the breakdown from the current participant count.
func (f BookingForm) Pricing() pricing.Breakdown {
	return pricing.Calculate(f.Service.Price, f.Schedule.Participants)
}

// Request builds the order payload.
func (f BookingForm) Request() types.CreateOrderRequest {
	return types.CreateOrderRequest{
		ServiceID:    f.Service.ID,
		Date:         f.Schedule.Date,
		StartTime:    f.Schedule.StartTime,
		Participants: f.Schedule.Participants,
		Customer: types.Customer{
			Name:  strings.TrimSpace(f.Contact.Name),
			Email: strings.TrimSpace(f.Contact.Email),
			Phone: f.Contact.Phone,
		},
		SpecialRequests: strings.TrimSpace(f.Contact.SpecialRequests),
	}
}

// BookingDefinition describes the three-step booking page for svc.
func BookingDefinition(orders OrderService, svc types.Service) wizard.Definition[BookingForm] {
	return wizard.Definition[BookingForm]{
		Name: "booking",
		Steps: []wizard.Step[BookingForm]{
			{
				Title: "選擇日期與人數",
				Icon:  "📅",
				Fields: scheduleFields(svc,
					func(f *BookingForm) *string { return &f.Schedule.Date },
					func(f *BookingForm) *string { return &f.Schedule.StartTime },
					func(f *BookingForm) *int { return &f.Schedule.Participants },
				),
				Validate: func(f *BookingForm) wizard.ErrorMap {
					errs := wizard.ErrorMap{}
					validateSchedule(errs, f.Service, f.Schedule.Date, f.Schedule.StartTime, f.Schedule.Participants)
					return errs
				},
			},
			{
				Title: "聯絡資訊",
				Icon:  "✉️",
				Fields: []wizard.Field[BookingForm]{
					wizard.StringField("name", "聯絡人姓名", wizard.KindText, func(f *BookingForm) *string { return &f.Contact.Name }),
					wizard.StringField("email", "電子郵件", wizard.KindEmail, func(f *BookingForm) *string { return &f.Contact.Email }),
					wizard.StringField("phone", "手機號碼", wizard.KindPhone, func(f *BookingForm) *string { return &f.Contact.Phone }).
						With("0912345678", "", false),
					wizard.StringField("specialRequests", "特殊需求", wizard.KindTextArea, func(f *BookingForm) *string { return &f.Contact.SpecialRequests }).
						With("", "飲食限制、行動需求等", true),
				},
				Validate: func(f *BookingForm) wizard.ErrorMap {
					errs := wizard.ErrorMap{}
					validateContact(errs, f.Contact.Name, f.Contact.Email, f.Contact.Phone)
					return errs
				},
			},
			{
				Title: "確認預訂",
				Icon:  "✅",
				Fields: []wizard.Field[BookingForm]{
					wizard.BoolField("agreeTerms", "我同意預訂條款與取消政策", func(f *BookingForm) *bool { return &f.Review.AgreeTerms }),
				},
				Validate: func(f *BookingForm) wizard.ErrorMap {
					errs := wizard.ErrorMap{}
					errs.Add("agreeTerms", wizard.ValidateTerms(f.Review.AgreeTerms))
					return errs
				},
			},
		},
		Submit: func(ctx context.Context, f BookingForm) (wizard.Outcome, error) {
			order, err := orders.CreateOrder(ctx, f.Request())
			if err != nil {
				return wizard.Outcome{}, err
			}
			return wizard.Outcome{
				Route: RouteOrderPrefix + order.ID,
				Notice: wizard.Notice{
					Title: "預訂成功",
					Body:  fmt.Sprintf("訂單編號 %s，總金額 %s", order.ID, pricing.Format(order.Pricing.Total)),
				},
				Result: order,
			}, nil
		},
		Fallback: "預訂失敗，請稍後再試",
	}
}

// NewBooking creates the booking wizard for svc with one participant.
func NewBooking(orders OrderService, svc types.Service, contact BookingContact, opts ...wizard.ControllerOption) *wizard.Controller[BookingForm] {
	form := BookingForm{
		Service:  svc,
		Schedule: BookingSchedule{Participants: 1},
		Contact:  contact,
	}
	return wizard.New(BookingDefinition(orders, svc), form, opts...)
}

// LoadService fetches the service to book. A missing service is reported
// with a user-facing message.
func LoadService(ctx context.Context, catalog ServiceCatalog, id string) (*types.Service, error) {
	if id == "" {
		return nil, wizard.UserError("請選擇要預訂的服務")
	}
	svc, err := catalog.GetService(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("loading service %s: %w", id, err)
	}
	return svc, nil
}
