// Package steps renders wizard.Controller steps as bubbletea wizard steps.
package steps

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/zoe5466/Gudiee-sub001/internal/tui"
	"github.com/zoe5466/Gudiee-sub001/internal/tui/components"
	"github.com/zoe5466/Gudiee-sub001/wizard"
)

// FormStep edits the fields of one controller step, one field at a time.
// Every entered value goes through Controller.SetField, so parse errors
// are shown immediately and step validation stays with the controller.
type FormStep[F any] struct {
	ctrl   *wizard.Controller[F]
	def    wizard.Step[F]
	styles *tui.StyleSet
	meter  components.StrengthMeter

	field int
	input fieldInput
}

// NewFormSteps returns one step per controller step.
func NewFormSteps[F any](ctrl *wizard.Controller[F], styles *tui.StyleSet) []tui.Step {
	meter := components.StrengthMeter{
		Weak:   styles.ErrorTxt,
		Medium: styles.WarningTxt,
		Strong: styles.SuccessTxt,
		Dim:    styles.DimTxt,
	}
	out := make([]tui.Step, 0, ctrl.TotalSteps())
	for _, def := range ctrl.Steps() {
		out = append(out, &FormStep[F]{ctrl: ctrl, def: def, styles: styles, meter: meter})
	}
	return out
}

func (s *FormStep[F]) Title() string { return s.def.Title }
func (s *FormStep[F]) Icon() string  { return s.def.Icon }

// Init focuses the first field.
func (s *FormStep[F]) Init() tea.Cmd {
	return s.focus(0, "")
}

// Field returns the index of the focused field.
func (s *FormStep[F]) Field() int { return s.field }

func (s *FormStep[F]) focus(i int, errMsg string) tea.Cmd {
	if len(s.def.Fields) == 0 {
		return func() tea.Msg { return tui.StepCompleteMsg{} }
	}
	s.field = min(max(i, 0), len(s.def.Fields)-1)
	s.input = s.newInput(s.def.Fields[s.field])
	if errMsg != "" {
		s.input.SetError(errMsg)
	}
	return s.input.Init()
}

func (s *FormStep[F]) inputStyles() components.InputStyles {
	return components.InputStyles{
		Accent:      s.styles.Theme.Accent,
		Label:       s.styles.AccentTxt,
		Border:      s.styles.ActiveBorder,
		ErrorBorder: s.styles.ErrorBorder,
		Error:       s.styles.ErrorTxt,
		Hint:        s.styles.DimTxt,
		KbdKey:      s.styles.KbdKey,
		KbdDesc:     s.styles.KbdDesc,
	}
}

func (s *FormStep[F]) selectStyles() components.SelectStyles {
	t := s.styles.Theme
	return components.SelectStyles{
		Accent:       t.Accent,
		Primary:      t.Primary,
		Secondary:    t.Secondary,
		Dim:          t.Dim,
		Label:        s.styles.AccentTxt,
		Error:        s.styles.ErrorTxt,
		ActiveBorder: s.styles.ActiveBorder,
		Inactive:     s.styles.InactiveBorder,
		ErrorBorder:  s.styles.ErrorBorder,
		KbdKey:       s.styles.KbdKey,
		KbdDesc:      s.styles.KbdDesc,
	}
}

func fieldLabel[F any](fd wizard.Field[F]) string {
	if fd.Optional {
		return fd.Label + "（選填）"
	}
	return fd.Label
}

func (s *FormStep[F]) newInput(fd wizard.Field[F]) fieldInput {
	current, _ := s.ctrl.Value(fd.Name)
	if fd.Kind == wizard.KindNumber && current == "0" {
		current = ""
	}
	label := fieldLabel(fd)

	switch {
	case fd.Kind == wizard.KindSecret:
		var meter func(string) string
		if fd.Name == "password" {
			meter = s.meter.Render
		}
		c := components.NewSecretInput(label, fd.Placeholder, meter, s.inputStyles())
		c.SetValue(current)
		return &textField{c: c}

	case fd.Kind == wizard.KindChoice:
		items := make([]components.SelectItem, len(fd.Options))
		for i, o := range fd.Options {
			items[i] = components.SelectItem{Label: o.Label, Value: o.Value}
		}
		return &selectField{c: components.NewSingleSelect(label, items, current, s.selectStyles())}

	case fd.Kind == wizard.KindList && len(fd.Options) > 0:
		items := make([]components.SelectItem, len(fd.Options))
		for i, o := range fd.Options {
			items[i] = components.SelectItem{Label: o.Label, Value: o.Value}
		}
		var checked []string
		for _, v := range strings.Split(current, ",") {
			if v = strings.TrimSpace(v); v != "" {
				checked = append(checked, v)
			}
		}
		return &multiField{c: components.NewMultiSelect(label, items, checked, s.selectStyles())}

	case fd.Kind == wizard.KindBool:
		return &checkField{c: components.NewCheckbox(label, current == "true", s.selectStyles())}

	case fd.Kind == wizard.KindTextArea:
		c := components.NewTextArea(label, fd.Placeholder, fd.Hint, s.inputStyles())
		c.SetValue(current)
		return &areaField{c: c}

	case fd.Kind == wizard.KindFile:
		hint := fd.Hint
		if current != "" {
			hint = uploadedHint(current) + "，留空保留原檔"
		}
		return &textField{c: components.NewTextInput(label, fd.Placeholder, hint, s.inputStyles())}

	default:
		c := components.NewTextInput(label, fd.Placeholder, fd.Hint, s.inputStyles())
		c.SetValue(current)
		return &textField{c: c}
	}
}

func uploadedHint(dataURL string) string {
	mt, data, err := wizard.DecodeDataURL(dataURL)
	if err != nil {
		return "已上傳"
	}
	return fmt.Sprintf("已上傳 %s (%d KB)", mt, (len(data)+1023)/1024)
}

// Update handles messages.
func (s *FormStep[F]) Update(msg tea.Msg) (tui.Step, tea.Cmd) {
	if s.input == nil {
		return s, nil
	}

	if msg, ok := msg.(tea.KeyMsg); ok && msg.String() == "shift+tab" {
		if s.field == 0 {
			return s, func() tea.Msg { return tui.StepBackMsg{} }
		}
		return s, s.focus(s.field-1, "")
	}

	cmd := s.input.Update(msg)
	if !s.input.Done() {
		return s, cmd
	}

	fd := s.def.Fields[s.field]
	raw := s.input.Value()
	if fd.Kind == wizard.KindFile && raw == "" {
		// Keep an already uploaded file.
		if current, _ := s.ctrl.Value(fd.Name); current != "" {
			raw = current
		}
	}
	if err := s.ctrl.SetField(fd.Name, raw); err != nil {
		msg := s.ctrl.Errors()[fd.Name]
		if msg == "" {
			msg = err.Error()
		}
		s.input.SetError(msg)
		return s, nil
	}

	if s.field == len(s.def.Fields)-1 {
		return s, func() tea.Msg { return tui.StepCompleteMsg{} }
	}
	return s, s.focus(s.field+1, "")
}

// ShowErrors focuses the first field, in display order, with an error.
func (s *FormStep[F]) ShowErrors(errs wizard.ErrorMap) tea.Cmd {
	for i, fd := range s.def.Fields {
		if msg, ok := errs[fd.Name]; ok {
			return s.focus(i, msg)
		}
	}
	return s.focus(len(s.def.Fields)-1, "")
}

// View renders entered fields above the focused one.
func (s *FormStep[F]) View(width int) string {
	var out string
	for i := 0; i < s.field && i < len(s.def.Fields); i++ {
		fd := s.def.Fields[i]
		out += fmt.Sprintf("  %s %s  %s\n",
			s.styles.SuccessTxt.Render("✓"),
			s.styles.SecondaryTxt.Render(fd.Label),
			s.styles.PrimaryTxt.Render(s.display(fd)))
	}
	if s.input != nil {
		out += s.input.View(width)
	}
	return out
}

func (s *FormStep[F]) display(fd wizard.Field[F]) string {
	v, _ := s.ctrl.Value(fd.Name)
	switch fd.Kind {
	case wizard.KindSecret:
		if v == "" {
			return ""
		}
		return strings.Repeat("•", 8)
	case wizard.KindFile:
		if v == "" {
			return "未上傳"
		}
		return uploadedHint(v)
	case wizard.KindBool:
		if v == "true" {
			return "是"
		}
		return "否"
	case wizard.KindChoice:
		for _, o := range fd.Options {
			if o.Value == v {
				return o.Label
			}
		}
	case wizard.KindTextArea:
		if r := []rune(v); len(r) > 24 {
			return string(r[:24]) + "…"
		}
	}
	return v
}

// Summary returns the entered values on one line.
func (s *FormStep[F]) Summary() string {
	var parts []string
	for _, fd := range s.def.Fields {
		if fd.Kind == wizard.KindSecret || fd.Kind == wizard.KindBool {
			continue
		}
		if v := s.display(fd); v != "" {
			parts = append(parts, v)
		}
	}
	return strings.Join(parts, " · ")
}
