package wizard

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

type profileForm struct {
	Languages []string
	Years     int
	Role      string
}

func TestListField(t *testing.T) {
	fd := ListField("languages", "Languages", func(f *profileForm) *[]string { return &f.Languages })
	var f profileForm
	if err := fd.Set(&f, " 中文, English,,日本語 "); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"中文", "English", "日本語"}, f.Languages); diff != "" {
		t.Errorf("languages mismatch (-want +got):\n%s", diff)
	}
	if got := fd.Get(&f); got != "中文, English, 日本語" {
		t.Errorf("Get = %q", got)
	}
}

func TestIntField(t *testing.T) {
	fd := IntField("years", "Years", func(f *profileForm) *int { return &f.Years })
	var f profileForm
	if err := fd.Set(&f, " 7 "); err != nil || f.Years != 7 {
		t.Fatalf("Set = %v, years %d", err, f.Years)
	}
	if err := fd.Set(&f, "seven"); err == nil {
		t.Error("expected error for non-number")
	}
	if f.Years != 7 {
		t.Error("failed parse must not change the value")
	}
}

func TestChoiceField(t *testing.T) {
	opts := []Option{{Label: "旅客", Value: "customer"}, {Label: "導遊", Value: "guide"}}
	fd := ChoiceField("role", "Role", opts, func(f *profileForm) *string { return &f.Role })
	var f profileForm
	if err := fd.Set(&f, "guide"); err != nil || f.Role != "guide" {
		t.Fatalf("Set = %v, role %q", err, f.Role)
	}
	if err := fd.Set(&f, "admin"); err == nil {
		t.Error("expected error for unknown choice")
	}
}

func TestErrorMap(t *testing.T) {
	m := ErrorMap{}
	m.Add("name", "")
	if !m.Empty() {
		t.Fatal("empty message must not be recorded")
	}
	m.Add("phone", "bad")
	m.Add("email", "bad")
	if diff := cmp.Diff([]string{"email", "phone"}, m.Fields()); diff != "" {
		t.Errorf("fields mismatch (-want +got):\n%s", diff)
	}
	if m.Error() != "email: bad; phone: bad" {
		t.Errorf("Error() = %q", m.Error())
	}

	c := m.Clone()
	delete(c, "email")
	if !m.Has("email") {
		t.Error("Clone must not share storage")
	}
	if ErrorMap(nil).Clone() == nil {
		t.Error("cloning nil should return an empty map")
	}
}
