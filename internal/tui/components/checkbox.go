package components

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Checkbox is a single yes/no toggle, used for consent fields.
type Checkbox struct {
	Label   string
	checked bool
	done    bool
	err     string

	st  SelectStyles
	kbd KbdHint
}

// NewCheckbox creates a checkbox in the given state.
func NewCheckbox(label string, checked bool, st SelectStyles) Checkbox {
	return Checkbox{
		Label:   label,
		checked: checked,
		st:      st,
		kbd:     NewKbdHint(st.KbdKey, st.KbdDesc, HintsToggle),
	}
}

// Update handles keyboard input.
func (c Checkbox) Update(msg tea.Msg) (Checkbox, tea.Cmd) {
	if c.done {
		return c, nil
	}
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case " ", "y", "n", "left", "right":
			switch msg.String() {
			case "y":
				c.checked = true
			case "n":
				c.checked = false
			default:
				c.checked = !c.checked
			}
			c.err = ""
		case "enter":
			c.done = true
		}
	}
	return c, nil
}

// View renders the checkbox.
func (c Checkbox) View(width int) string {
	box := lipgloss.NewStyle().Foreground(c.st.Dim).Render("☐")
	if c.checked {
		box = lipgloss.NewStyle().Foreground(c.st.Accent).Render("☑")
	}
	border := c.st.ActiveBorder
	if c.err != "" {
		border = c.st.ErrorBorder
	}
	label := lipgloss.NewStyle().Foreground(c.st.Primary).Render(c.Label)

	out := "\n  " + border.Width(max(width-6, 30)).Render(box+"  "+label) + "\n"
	if c.err != "" {
		out += "  " + c.st.Error.Render("✗ "+c.err) + "\n"
	}
	out += "\n" + c.kbd.View()
	return out
}

// Done returns true when the value is confirmed.
func (c Checkbox) Done() bool {
	return c.done
}

// Checked reports the current state.
func (c Checkbox) Checked() bool {
	return c.checked
}

// Value returns "yes" or "no".
func (c Checkbox) Value() string {
	if c.checked {
		return "yes"
	}
	return "no"
}

// SetError shows msg and reopens the checkbox.
func (c *Checkbox) SetError(msg string) {
	c.err = msg
	c.done = false
}
