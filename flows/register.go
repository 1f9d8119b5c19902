package flows

import (
	"context"
	"strings"

	"github.com/zoe5466/Gudiee-sub001/types"
	"github.com/zoe5466/Gudiee-sub001/wizard"
)

// RegisterAccount is step 1 of registration.
type RegisterAccount struct {
	Name     string
	Email    string
	Phone    string
	UserType string
}

// RegisterCredentials is step 2 of registration.
type RegisterCredentials struct {
	Password        string
	ConfirmPassword string
	AgreeTerms      bool
}

// RegisterForm merges both steps at submission.
type RegisterForm struct {
	Account     RegisterAccount
	Credentials RegisterCredentials
}

// Request builds the register payload.
func (f RegisterForm) Request() types.RegisterRequest {
	return types.RegisterRequest{
		Name:     strings.TrimSpace(f.Account.Name),
		Email:    strings.TrimSpace(f.Account.Email),
		Phone:    f.Account.Phone,
		Password: f.Credentials.Password,
		Role:     f.Account.UserType,
	}
}

// ValidateRegisterAccount validates step 1.
func ValidateRegisterAccount(a RegisterAccount) wizard.ErrorMap {
	errs := wizard.ErrorMap{}
	validateContact(errs, a.Name, a.Email, a.Phone)
	if a.UserType != types.RoleCustomer && a.UserType != types.RoleGuide {
		errs.Add("userType", "請選擇帳號類型")
	}
	return errs
}

// ValidateRegisterCredentials validates step 2.
func ValidateRegisterCredentials(c RegisterCredentials) wizard.ErrorMap {
	errs := wizard.ErrorMap{}
	errs.Add("password", wizard.ValidatePassword(c.Password))
	errs.Add("confirmPassword", wizard.ValidateConfirmPassword(c.Password, c.ConfirmPassword))
	errs.Add("agreeTerms", wizard.ValidateTerms(c.AgreeTerms))
	return errs
}

// RegisterDefinition describes the two-step registration wizard.
func RegisterDefinition(auth AuthService) wizard.Definition[RegisterForm] {
	return wizard.Definition[RegisterForm]{
		Name: "register",
		Steps: []wizard.Step[RegisterForm]{
			{
				Title: "基本資料",
				Icon:  "👤",
				Fields: []wizard.Field[RegisterForm]{
					wizard.StringField("name", "姓名", wizard.KindText, func(f *RegisterForm) *string { return &f.Account.Name }).
						With("王小明", "", false),
					wizard.StringField("email", "電子郵件", wizard.KindEmail, func(f *RegisterForm) *string { return &f.Account.Email }).
						With("you@example.com", "", false),
					wizard.StringField("phone", "手機號碼", wizard.KindPhone, func(f *RegisterForm) *string { return &f.Account.Phone }).
						With("0912345678", "", false),
					wizard.ChoiceField("userType", "帳號類型", userTypeOptions, func(f *RegisterForm) *string { return &f.Account.UserType }),
				},
				Validate: func(f *RegisterForm) wizard.ErrorMap { return ValidateRegisterAccount(f.Account) },
			},
			{
				Title: "設定密碼",
				Icon:  "🔒",
				Fields: []wizard.Field[RegisterForm]{
					wizard.StringField("password", "密碼", wizard.KindSecret, func(f *RegisterForm) *string { return &f.Credentials.Password }).
						With("", "至少8個字元，包含大小寫字母、數字或特殊符號", false),
					wizard.StringField("confirmPassword", "確認密碼", wizard.KindSecret, func(f *RegisterForm) *string { return &f.Credentials.ConfirmPassword }),
					wizard.BoolField("agreeTerms", "我同意服務條款與隱私政策", func(f *RegisterForm) *bool { return &f.Credentials.AgreeTerms }),
				},
				Validate: func(f *RegisterForm) wizard.ErrorMap { return ValidateRegisterCredentials(f.Credentials) },
			},
		},
		Submit: func(ctx context.Context, f RegisterForm) (wizard.Outcome, error) {
			user, err := auth.Register(ctx, f.Request())
			if err != nil {
				return wizard.Outcome{}, err
			}
			route := RouteHome
			if user.Role == types.RoleGuide {
				route = RouteProfileSetup
			}
			return wizard.Outcome{
				Route:  route,
				Notice: wizard.Notice{Title: "註冊成功！", Body: "歡迎加入 Guidee，" + user.Name, Blocking: true},
				Result: user,
			}, nil
		},
		Fallback: "註冊失敗，請稍後再試",
	}
}

// NewRegister creates the registration wizard. userType pre-seeds the
// account type (the type=guide link); anything unknown means customer.
func NewRegister(auth AuthService, userType string, opts ...wizard.ControllerOption) *wizard.Controller[RegisterForm] {
	if userType != types.RoleGuide {
		userType = types.RoleCustomer
	}
	form := RegisterForm{Account: RegisterAccount{UserType: userType}}
	return wizard.New(RegisterDefinition(auth), form, opts...)
}
