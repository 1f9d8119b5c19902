package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// SummaryRow is one key/value line; highlighted rows use the accent style.
type SummaryRow struct {
	Key       string
	Value     string
	Highlight bool
}

// SummaryBox renders rows as a two-column grid inside a border.
type SummaryBox struct {
	Title string
	Rows  []SummaryRow

	TitleStyle     lipgloss.Style
	KeyStyle       lipgloss.Style
	ValueStyle     lipgloss.Style
	HighlightStyle lipgloss.Style
	BorderStyle    lipgloss.Style
}

const summaryKeyWidth = 16

func NewSummaryBox(title string, rows []SummaryRow, titleStyle, keyStyle, valueStyle, highlightStyle, borderStyle lipgloss.Style) SummaryBox {
	return SummaryBox{title, rows, titleStyle, keyStyle, valueStyle, highlightStyle, borderStyle}
}

func (s SummaryBox) View(width int) string {
	var b strings.Builder
	if s.Title != "" {
		b.WriteString(s.TitleStyle.Render(s.Title) + "\n")
	}
	for _, r := range s.Rows {
		ks, vs := s.KeyStyle, s.ValueStyle
		if r.Highlight {
			ks, vs = s.HighlightStyle, s.HighlightStyle
		}
		b.WriteString("  " + ks.Width(summaryKeyWidth).Render(r.Key) + "  " + vs.Render(r.Value) + "\n")
	}
	return "  " + s.BorderStyle.Width(max(width-8, 30)).Render(b.String())
}
