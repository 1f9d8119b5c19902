package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// SelectItem is one option in a select list.
type SelectItem struct {
	Label       string
	Value       string
	Description string
	Checked     bool // multi-select only
}

// SelectStyles groups the colors used by the select lists.
type SelectStyles struct {
	Accent       lipgloss.Color
	Primary      lipgloss.Color
	Secondary    lipgloss.Color
	Dim          lipgloss.Color
	Label        lipgloss.Style
	Error        lipgloss.Style
	ActiveBorder lipgloss.Style
	Inactive     lipgloss.Style
	ErrorBorder  lipgloss.Style
	KbdKey       lipgloss.Style
	KbdDesc      lipgloss.Style
}

// cursor moves within [0, n) on the arrow and vi keys.
type cursor struct{ pos int }

func (c *cursor) move(key string, n int) bool {
	switch key {
	case "up", "k":
		c.pos = max(c.pos-1, 0)
	case "down", "j":
		c.pos = min(c.pos+1, n-1)
	default:
		return false
	}
	return true
}

func (st SelectStyles) color(c lipgloss.Color) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(c)
}

// row renders one bordered option with the mark right-aligned.
func (st SelectStyles) row(width int, active bool, label, mark, desc string) string {
	w := max(width-6, 30)
	if active {
		label = st.color(st.Primary).Bold(true).Render(label)
	} else {
		label = st.color(st.Secondary).Render(label)
	}
	line := "  " + label
	line += strings.Repeat(" ", max(w-lipgloss.Width(line)-4, 1)) + mark
	if desc != "" {
		line += "\n    " + st.color(st.Secondary).Render(desc)
	}
	border := st.Inactive
	if active {
		border = st.ActiveBorder
	}
	return "  " + border.Width(w).Render(line)
}

func (st SelectStyles) list(label string, rows []string, errMsg string, kbd KbdHint) string {
	var b strings.Builder
	b.WriteString("\n  " + st.Label.Render(label) + "\n\n")
	for _, r := range rows {
		b.WriteString(r + "\n")
	}
	if errMsg != "" {
		b.WriteString("  " + st.Error.Render("✗ "+errMsg) + "\n")
	}
	b.WriteString("\n" + kbd.View())
	return b.String()
}
