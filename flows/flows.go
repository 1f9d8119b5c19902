// Package flows defines the register, booking, booking modal and profile
// setup wizards on top of package wizard.
package flows

import (
	"context"
	"strconv"
	"time"

	"github.com/zoe5466/Gudiee-sub001/types"
	"github.com/zoe5466/Gudiee-sub001/wizard"
)

// AuthService is the account store used by register and profile setup.
type AuthService interface {
	Register(ctx context.Context, req types.RegisterRequest) (*types.User, error)
	UpdateUser(ctx context.Context, req types.UpdateUserRequest) error
}

// OrderService is the order store used by the booking flows.
type OrderService interface {
	CreateOrder(ctx context.Context, req types.CreateOrderRequest) (*types.Order, error)
	Pay(ctx context.Context, orderID string, req types.PaymentRequest) (*types.Order, error)
}

// ServiceCatalog looks up the service being booked.
type ServiceCatalog interface {
	GetService(ctx context.Context, id string) (*types.Service, error)
}

// Routes the flows navigate to after success.
const (
	RouteHome         = "/"
	RouteDashboard    = "/dashboard"
	RouteProfileSetup = "/profile/setup"
	RouteOrderPrefix  = "/orders/"
)

// now is replaced in tests.
var now = time.Now

var userTypeOptions = []wizard.Option{
	{Label: "旅客", Value: types.RoleCustomer},
	{Label: "導遊", Value: types.RoleGuide},
}

var languageOptions = []wizard.Option{
	{Label: "中文", Value: "中文"},
	{Label: "台語", Value: "台語"},
	{Label: "客語", Value: "客語"},
	{Label: "English", Value: "English"},
	{Label: "日本語", Value: "日本語"},
	{Label: "한국어", Value: "한국어"},
}

var paymentOptions = []wizard.Option{
	{Label: "信用卡", Value: types.PaymentCreditCard},
	{Label: "LINE Pay", Value: types.PaymentLinePay},
	{Label: "銀行轉帳", Value: types.PaymentBankTransfer},
}

// scheduleFields builds date/time/participants fields shared by both
// booking flows. Start times become a choice when the service lists them.
func scheduleFields[F any](svc types.Service, date, start func(*F) *string, participants func(*F) *int) []wizard.Field[F] {
	startField := wizard.StringField("startTime", "開始時間", wizard.KindTime, start).
		With("09:00", "", false)
	if len(svc.StartTimes) > 0 {
		opts := make([]wizard.Option, len(svc.StartTimes))
		for i, t := range svc.StartTimes {
			opts[i] = wizard.Option{Label: t, Value: t}
		}
		startField = wizard.ChoiceField("startTime", "開始時間", opts, start)
	}

	hint := "每團人數"
	if svc.MaxParticipants > 0 {
		hint = "最多 " + strconv.Itoa(svc.MaxParticipants) + " 人"
	}
	return []wizard.Field[F]{
		wizard.StringField("date", "日期", wizard.KindDate, date).
			With(now().AddDate(0, 0, 1).Format(types.DateFormat), "YYYY-MM-DD", false),
		startField,
		wizard.IntField("participants", "參與人數", participants).With("1", hint, false),
	}
}

func validateSchedule(errs wizard.ErrorMap, svc types.Service, date, start string, participants int) {
	errs.Add("date", wizard.ValidateDate(date, now()))
	errs.Add("startTime", wizard.ValidateTime(start))
	errs.Add("participants", wizard.ValidateParticipants(participants, svc.MinParticipants, svc.MaxParticipants))
}

func validateContact(errs wizard.ErrorMap, name, email, phone string) {
	errs.Add("name", wizard.ValidateName(name))
	errs.Add("email", wizard.ValidateEmail(email))
	errs.Add("phone", wizard.ValidatePhone(phone))
}
