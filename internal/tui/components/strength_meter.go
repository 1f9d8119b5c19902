package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/zoe5466/Gudiee-sub001/wizard"
)

// StrengthMeter renders password strength as a five-segment bar with the
// label and the unmet checks.
type StrengthMeter struct {
	Weak   lipgloss.Style
	Medium lipgloss.Style
	Strong lipgloss.Style
	Dim    lipgloss.Style
}

// Render returns the meter for password.
func (m StrengthMeter) Render(password string) string {
	s := wizard.CheckPasswordStrength(password)

	style := m.Weak
	switch {
	case s.Score >= 4:
		style = m.Strong
	case s.Score == 3:
		style = m.Medium
	}

	bar := style.Render(strings.Repeat("■", s.Score)) + m.Dim.Render(strings.Repeat("□", 5-s.Score))
	out := "  " + bar + "  " + style.Render("密碼強度："+s.Label())

	var missing []string
	for _, c := range []struct {
		ok   bool
		desc string
	}{
		{s.Checks.Length, "至少8個字元"},
		{s.Checks.Lowercase, "小寫字母"},
		{s.Checks.Uppercase, "大寫字母"},
		{s.Checks.Number, "數字"},
		{s.Checks.Special, "特殊符號"},
	} {
		if !c.ok {
			missing = append(missing, c.desc)
		}
	}
	if len(missing) > 0 {
		out += "\n  " + m.Dim.Render("建議加入："+strings.Join(missing, "、"))
	}
	return out
}
