package components

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// TextArea is a multi-line entry wrapping bubbles/textarea. Enter inserts
// a newline; tab finishes.
type TextArea struct {
	Label string
	Hint  string
	area  textarea.Model
	done  bool
	err   string

	LabelStyle lipgloss.Style
	ErrorStyle lipgloss.Style
	HintStyle  lipgloss.Style
	kbd        KbdHint
}

// NewTextArea creates a new multi-line input.
func NewTextArea(label, placeholder, hint string, st InputStyles) TextArea {
	ta := textarea.New()
	ta.Placeholder = placeholder
	ta.ShowLineNumbers = false
	ta.CharLimit = 2000
	ta.SetHeight(5)
	ta.Focus()

	return TextArea{
		Label:      label,
		Hint:       hint,
		area:       ta,
		LabelStyle: st.Label,
		ErrorStyle: st.Error,
		HintStyle:  st.Hint,
		kbd:        NewKbdHint(st.KbdKey, st.KbdDesc, HintsTextArea),
	}
}

// Init starts the cursor blink.
func (t TextArea) Init() tea.Cmd {
	return textarea.Blink
}

// Update handles messages.
func (t TextArea) Update(msg tea.Msg) (TextArea, tea.Cmd) {
	if t.done {
		return t, nil
	}
	if msg, ok := msg.(tea.KeyMsg); ok && msg.String() == "tab" {
		t.done = true
		return t, nil
	}

	var cmd tea.Cmd
	t.area, cmd = t.area.Update(msg)
	if _, ok := msg.(tea.KeyMsg); ok {
		t.err = ""
	}
	return t, cmd
}

// View renders the text area with a character counter.
func (t TextArea) View(width int) string {
	out := "\n  " + t.LabelStyle.Render(t.Label) + "\n\n"
	t.area.SetWidth(max(width-8, 20))
	for _, line := range strings.Split(t.area.View(), "\n") {
		out += "  " + line + "\n"
	}

	count := len([]rune(t.Value()))
	status := t.HintStyle.Render(t.Hint)
	if t.Hint != "" {
		status += t.HintStyle.Render(" · ")
	}
	status += t.HintStyle.Render(strconv.Itoa(count) + " 字")
	out += "  " + status + "\n"

	if t.err != "" {
		out += "  " + t.ErrorStyle.Render("✗ "+t.err) + "\n"
	}
	out += "\n" + t.kbd.View()
	return out
}

// Done returns true when the text is confirmed.
func (t TextArea) Done() bool {
	return t.done
}

// Value returns the trimmed text.
func (t TextArea) Value() string {
	return strings.TrimSpace(t.area.Value())
}

// SetValue replaces the text.
func (t *TextArea) SetValue(v string) {
	t.area.SetValue(v)
}

// SetError shows msg and reopens the area.
func (t *TextArea) SetError(msg string) {
	t.err = msg
	t.done = false
}
