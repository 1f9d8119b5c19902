package steps

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/zoe5466/Gudiee-sub001/internal/tui"
	"github.com/zoe5466/Gudiee-sub001/pricing"
	"github.com/zoe5466/Gudiee-sub001/types"
	"github.com/zoe5466/Gudiee-sub001/wizard"
)

type testForm struct {
	Name     string
	Count    int
	Plan     string
	Secret   string
	Agree    bool
	Langs    []string
	Document string
}

var planOptions = []wizard.Option{{Label: "基本", Value: "basic"}, {Label: "進階", Value: "pro"}}

func newTestController() *wizard.Controller[testForm] {
	def := wizard.Definition[testForm]{
		Name: "test",
		Steps: []wizard.Step[testForm]{
			{
				Title: "資料",
				Icon:  "📝",
				Fields: []wizard.Field[testForm]{
					wizard.StringField("name", "姓名", wizard.KindText, func(f *testForm) *string { return &f.Name }),
					wizard.IntField("count", "人數", func(f *testForm) *int { return &f.Count }),
					wizard.ChoiceField("plan", "方案", planOptions, func(f *testForm) *string { return &f.Plan }),
					wizard.BoolField("agree", "同意", func(f *testForm) *bool { return &f.Agree }),
				},
			},
			{
				Title: "其他",
				Icon:  "🔒",
				Fields: []wizard.Field[testForm]{
					wizard.StringField("password", "密碼", wizard.KindSecret, func(f *testForm) *string { return &f.Secret }),
					wizard.ListField("langs", "語言", func(f *testForm) *[]string { return &f.Langs }).
						WithOptions([]wizard.Option{{Label: "中文", Value: "中文"}, {Label: "English", Value: "English"}}),
					wizard.FileField("document", "證件", func(f *testForm) *string { return &f.Document }),
				},
			},
		},
	}
	return wizard.New(def, testForm{})
}

func newTestSteps(t *testing.T) (*wizard.Controller[testForm], []tui.Step) {
	t.Helper()
	ctrl := newTestController()
	steps := NewFormSteps(ctrl, tui.NewStyleSet(tui.DarkTheme))
	if len(steps) != 2 {
		t.Fatalf("got %d steps, want 2", len(steps))
	}
	return ctrl, steps
}

func typeText(s tui.Step, text string) (tui.Step, tea.Cmd) {
	s, _ = s.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
	return s.Update(tea.KeyMsg{Type: tea.KeyEnter})
}

func press(s tui.Step, k tea.KeyType) (tui.Step, tea.Cmd) {
	return s.Update(tea.KeyMsg{Type: k})
}

func TestFormStepFillsFields(t *testing.T) {
	ctrl, steps := newTestSteps(t)
	s := steps[0]
	s.Init()

	s, _ = typeText(s, "王小明")
	s, _ = typeText(s, "3")
	s, _ = press(s, tea.KeyDown)
	s, _ = press(s, tea.KeyEnter)
	s, _ = press(s, tea.KeySpace)
	s, cmd := press(s, tea.KeyEnter)

	if cmd == nil {
		t.Fatal("expected step completion")
	}
	if _, ok := cmd().(tui.StepCompleteMsg); !ok {
		t.Fatalf("got %T, want StepCompleteMsg", cmd())
	}

	f := ctrl.Form()
	if f.Name != "王小明" || f.Count != 3 || f.Plan != "pro" || !f.Agree {
		t.Errorf("form = %+v", f)
	}
	if got := s.Summary(); got != "王小明 · 3 · 進階" {
		t.Errorf("Summary() = %q", got)
	}
}

func TestFormStepParseError(t *testing.T) {
	ctrl, steps := newTestSteps(t)
	s := steps[0]
	s.Init()

	s, _ = typeText(s, "Ada")
	s, cmd := typeText(s, "abc")
	if cmd != nil {
		t.Fatal("parse error must not advance")
	}
	fs := s.(*FormStep[testForm])
	if fs.Field() != 1 {
		t.Fatalf("Field() = %d, want 1", fs.Field())
	}
	if !ctrl.Errors().Has("count") {
		t.Error("expected a count error on the controller")
	}
	if !strings.Contains(s.View(80), "請輸入數字") {
		t.Error("view does not show the parse error")
	}

	for range 3 {
		s, _ = press(s, tea.KeyBackspace)
	}
	typeText(s, "2")
	if fs.Field() != 2 || ctrl.Form().Count != 2 {
		t.Errorf("Field() = %d Count = %d", fs.Field(), ctrl.Form().Count)
	}
}

func TestFormStepBack(t *testing.T) {
	_, steps := newTestSteps(t)
	s := steps[0]
	s.Init()

	s, cmd := press(s, tea.KeyShiftTab)
	if _, ok := cmd().(tui.StepBackMsg); !ok {
		t.Fatal("shift+tab on the first field should go back a step")
	}

	s, _ = typeText(s, "Ada")
	press(s, tea.KeyShiftTab)
	if got := s.(*FormStep[testForm]).Field(); got != 0 {
		t.Errorf("Field() = %d, want 0", got)
	}
}

func TestFormStepShowErrors(t *testing.T) {
	_, steps := newTestSteps(t)
	s := steps[0]
	s.Init()

	s.ShowErrors(wizard.ErrorMap{"plan": "請選擇方案", "agree": "請同意"})
	fs := s.(*FormStep[testForm])
	if fs.Field() != 2 {
		t.Fatalf("Field() = %d, want the first field with an error", fs.Field())
	}
	if !strings.Contains(s.View(80), "請選擇方案") {
		t.Error("view does not show the field error")
	}

	s.ShowErrors(wizard.ErrorMap{wizard.GeneralField: "送出失敗"})
	if fs.Field() != 3 {
		t.Errorf("Field() = %d, want the last field", fs.Field())
	}
}

func TestFormStepSecretAndList(t *testing.T) {
	ctrl, steps := newTestSteps(t)
	s := steps[1]
	s.Init()

	s, _ = s.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("abc")})
	if !strings.Contains(s.View(80), "密碼強度") {
		t.Error("password field should show the strength meter")
	}
	s, _ = press(s, tea.KeyEnter)
	if ctrl.Form().Secret != "abc" {
		t.Errorf("Secret = %q", ctrl.Form().Secret)
	}

	s, _ = press(s, tea.KeySpace)
	s, _ = press(s, tea.KeyEnter)
	if got := ctrl.Form().Langs; len(got) != 1 || got[0] != "中文" {
		t.Errorf("Langs = %v", got)
	}

	if strings.Contains(s.Summary(), "abc") {
		t.Error("summary must not reveal the secret")
	}
}

func TestFormStepKeepsUploadedFile(t *testing.T) {
	ctrl, steps := newTestSteps(t)
	const dataURL = "data:image/png;base64,iVBORw0KGgo="
	if err := ctrl.SetField("document", dataURL); err != nil {
		t.Fatal(err)
	}
	s := steps[1]
	s.Init()
	s, _ = press(s, tea.KeyEnter) // password
	s, _ = press(s, tea.KeyEnter) // langs
	if !strings.Contains(s.View(80), "已上傳") {
		t.Error("expected the uploaded hint")
	}
	_, cmd := press(s, tea.KeyEnter)
	if cmd == nil {
		t.Fatal("expected step completion")
	}
	if ctrl.Form().Document != dataURL {
		t.Errorf("Document = %q, want the existing upload", ctrl.Form().Document)
	}
}

func TestServiceHeader(t *testing.T) {
	styles := tui.NewStyleSet(tui.DarkTheme)
	svc := types.Service{Title: "九份老街半日遊", Location: "新北市", Price: 800}

	participants := 0
	header := ServiceHeader(styles, svc, func() pricing.Breakdown {
		return pricing.Calculate(svc.Price, participants)
	})
	if out := header(1, 80); !strings.Contains(out, "NT$800 / 人") {
		t.Errorf("header without participants = %q", out)
	}

	participants = 2
	out := header(1, 80)
	for _, want := range []string{"NT$1,600", "NT$160", "NT$88", "NT$1,848"} {
		if !strings.Contains(out, want) {
			t.Errorf("header missing %s:\n%s", want, out)
		}
	}
}
