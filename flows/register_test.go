package flows

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/zoe5466/Gudiee-sub001/types"
	"github.com/zoe5466/Gudiee-sub001/wizard"
)

func TestRegister_EmptyThenFilled(t *testing.T) {
	c := NewRegister(&fakeAuth{}, "")

	tr, err := c.Next(context.Background())
	if err != nil || tr != wizard.Blocked {
		t.Fatalf("Next() = %v, %v", tr, err)
	}
	errs := c.Errors()
	for _, f := range []string{"name", "email", "phone"} {
		if !errs.Has(f) {
			t.Errorf("missing %s error in %v", f, errs)
		}
	}
	if errs.Has("userType") {
		t.Error("user type defaults to customer and should be valid")
	}

	c.Edit("name", func(f *RegisterForm) { f.Account.Name = "Wang" })
	c.Edit("email", func(f *RegisterForm) { f.Account.Email = "a@b.com" })
	c.Edit("phone", func(f *RegisterForm) { f.Account.Phone = "0912345678" })

	tr, err = c.Next(context.Background())
	if err != nil || tr != wizard.Advanced {
		t.Fatalf("Next() = %v, %v; errors %v", tr, err, c.Errors())
	}
	if c.Step() != 2 || !c.Errors().Empty() {
		t.Fatalf("step %d errors %v, want step 2 with no errors", c.Step(), c.Errors())
	}
}

func fillRegisterAccount(t *testing.T, c *wizard.Controller[RegisterForm]) {
	t.Helper()
	for k, v := range map[string]string{"name": "林導遊", "email": "lin@guide.tw", "phone": "0987654321"} {
		if err := c.SetField(k, v); err != nil {
			t.Fatal(err)
		}
	}
	if tr, _ := c.Next(context.Background()); tr != wizard.Advanced {
		t.Fatalf("step 1 blocked: %v", c.Errors())
	}
}

func TestRegister_PasswordMismatchDoesNotCallRegister(t *testing.T) {
	auth := &fakeAuth{}
	c := NewRegister(auth, "")
	fillRegisterAccount(t, c)

	c.Edit("password", func(f *RegisterForm) { f.Credentials.Password = "Abc12345!" })
	c.Edit("confirmPassword", func(f *RegisterForm) { f.Credentials.ConfirmPassword = "Abc12345?" })
	c.Edit("agreeTerms", func(f *RegisterForm) { f.Credentials.AgreeTerms = true })

	tr, _ := c.Next(context.Background())
	if tr != wizard.Blocked {
		t.Fatalf("transition = %v, want blocked", tr)
	}
	if diff := cmp.Diff(wizard.ErrorMap{"confirmPassword": "密碼不一致"}, c.Errors()); diff != "" {
		t.Errorf("errors mismatch (-want +got):\n%s", diff)
	}
	if len(auth.registers) != 0 {
		t.Errorf("register called %d times", len(auth.registers))
	}
}

func TestRegister_WeakPassword(t *testing.T) {
	auth := &fakeAuth{}
	c := NewRegister(auth, "")
	fillRegisterAccount(t, c)
	c.Edit("password", func(f *RegisterForm) { f.Credentials.Password = "abcdefgh" })
	c.Edit("confirmPassword", func(f *RegisterForm) { f.Credentials.ConfirmPassword = "abcdefgh" })
	c.Edit("agreeTerms", func(f *RegisterForm) { f.Credentials.AgreeTerms = true })

	if tr, _ := c.Next(context.Background()); tr != wizard.Blocked {
		t.Fatalf("transition = %v, want blocked", tr)
	}
	if !c.Errors().Has("password") {
		t.Errorf("expected password error, got %v", c.Errors())
	}
}

func TestRegister_GuideSeededAndRouted(t *testing.T) {
	auth := &fakeAuth{}
	var route string
	c := NewRegister(auth, "guide", wizard.WithNavigator(wizard.NavigatorFunc(func(r string) { route = r })))
	if c.Form().Account.UserType != types.RoleGuide {
		t.Fatalf("user type = %q, want guide", c.Form().Account.UserType)
	}
	fillRegisterAccount(t, c)
	for k, v := range map[string]string{"password": "Abc12345!", "confirmPassword": "Abc12345!", "agreeTerms": "yes"} {
		if err := c.SetField(k, v); err != nil {
			t.Fatal(err)
		}
	}

	tr, err := c.Next(context.Background())
	if err != nil || tr != wizard.Submitted {
		t.Fatalf("Next() = %v, %v; errors %v", tr, err, c.Errors())
	}
	if route != RouteProfileSetup {
		t.Errorf("route = %q, want %q", route, RouteProfileSetup)
	}
	want := []types.RegisterRequest{{Name: "林導遊", Email: "lin@guide.tw", Phone: "0987654321", Password: "Abc12345!", Role: types.RoleGuide}}
	if diff := cmp.Diff(want, auth.registers); diff != "" {
		t.Errorf("register payload mismatch (-want +got):\n%s", diff)
	}
	user, ok := c.Outcome().Result.(*types.User)
	if !ok || user.ID != "u-1" {
		t.Errorf("result = %#v", c.Outcome().Result)
	}
}

func TestRegister_UnknownTypeFallsBackToCustomer(t *testing.T) {
	c := NewRegister(&fakeAuth{}, "admin")
	if c.Form().Account.UserType != types.RoleCustomer {
		t.Errorf("user type = %q", c.Form().Account.UserType)
	}
}

func TestRegister_ServerError(t *testing.T) {
	auth := &fakeAuth{err: wizard.UserError("此電子郵件已被註冊")}
	c := NewRegister(auth, "")
	fillRegisterAccount(t, c)
	c.Edit("password", func(f *RegisterForm) {
		f.Credentials.Password = "Abc12345!"
		f.Credentials.ConfirmPassword = "Abc12345!"
		f.Credentials.AgreeTerms = true
	})

	if tr, _ := c.Next(context.Background()); tr != wizard.Failed {
		t.Fatalf("transition = %v, want failed", tr)
	}
	if got := c.Errors()[wizard.GeneralField]; got != "此電子郵件已被註冊" {
		t.Errorf("general = %q", got)
	}
	if c.Form().Credentials.Password != "Abc12345!" {
		t.Error("form must be kept for resubmission")
	}
}
