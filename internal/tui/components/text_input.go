package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// InputStyles groups the styles shared by the text-like inputs.
type InputStyles struct {
	Accent      lipgloss.Color
	Label       lipgloss.Style
	Border      lipgloss.Style
	ErrorBorder lipgloss.Style
	Error       lipgloss.Style
	Hint        lipgloss.Style
	KbdKey      lipgloss.Style
	KbdDesc     lipgloss.Style
}

// TextInput is a bordered single-line entry over bubbles/textinput. Enter
// finishes it.
type TextInput struct {
	Label string
	Hint  string

	input  textinput.Model
	secret bool
	meter  func(string) string
	done   bool
	err    string

	st  InputStyles
	kbd KbdHint
}

func newEntry(placeholder string, limit int, st InputStyles) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = limit
	ti.Cursor.Style = lipgloss.NewStyle().Foreground(st.Accent)
	ti.Focus()
	return ti
}

// NewTextInput creates a focused plain-text entry.
func NewTextInput(label, placeholder, hint string, st InputStyles) TextInput {
	return TextInput{
		Label: label,
		Hint:  hint,
		input: newEntry(placeholder, 512, st),
		st:    st,
		kbd:   NewKbdHint(st.KbdKey, st.KbdDesc, HintsInput),
	}
}

// NewSecretInput creates a masked entry. When meter is set its output is
// shown under the box while the value is non-empty.
func NewSecretInput(label, placeholder string, meter func(string) string, st InputStyles) TextInput {
	t := TextInput{
		Label:  label,
		input:  newEntry(placeholder, 128, st),
		secret: true,
		meter:  meter,
		st:     st,
		kbd:    NewKbdHint(st.KbdKey, st.KbdDesc, HintsInput),
	}
	t.input.EchoMode = textinput.EchoPassword
	t.input.EchoCharacter = '•'
	return t
}

func (t TextInput) Init() tea.Cmd {
	return textinput.Blink
}

func (t TextInput) Update(msg tea.Msg) (TextInput, tea.Cmd) {
	if t.done {
		return t, nil
	}
	key, isKey := msg.(tea.KeyMsg)
	if isKey && key.String() == "enter" {
		t.done = true
		return t, nil
	}
	if isKey {
		t.err = ""
	}
	var cmd tea.Cmd
	t.input, cmd = t.input.Update(msg)
	return t, cmd
}

func (t TextInput) View(width int) string {
	w := max(width-8, 20)
	t.input.Width = w
	border := t.st.Border
	if t.err != "" {
		border = t.st.ErrorBorder
	}

	var b strings.Builder
	b.WriteString("\n  " + t.st.Label.Render(t.Label) + "\n\n")
	b.WriteString("  " + border.Width(w).Render(t.input.View()) + "\n")
	if t.meter != nil && t.input.Value() != "" {
		b.WriteString(t.meter(t.input.Value()) + "\n")
	}
	switch {
	case t.err != "":
		b.WriteString("  " + t.st.Error.Render("✗ "+t.err) + "\n")
	case t.Hint != "":
		b.WriteString("  " + t.st.Hint.Render(t.Hint) + "\n")
	}
	b.WriteString("\n" + t.kbd.View())
	return b.String()
}

func (t TextInput) Done() bool { return t.done }

// Value returns the entered text, trimmed unless the input is a secret.
func (t TextInput) Value() string {
	if t.secret {
		return t.input.Value()
	}
	return strings.TrimSpace(t.input.Value())
}

func (t *TextInput) SetValue(v string) { t.input.SetValue(v) }

// SetError shows msg below the input and reopens it for editing.
func (t *TextInput) SetError(msg string) {
	t.err = msg
	t.done = false
}
