package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/zoe5466/Gudiee-sub001/wizard"
)

// Step renders one wizard step. The controller decides when a step is
// left; a step only reports that its fields were entered (StepCompleteMsg)
// or that the user wants to go back (StepBackMsg).
type Step interface {
	Title() string
	Icon() string
	// Init focuses the first field.
	Init() tea.Cmd
	Update(msg tea.Msg) (Step, tea.Cmd)
	View(width int) string
	// Summary is shown under the step once it is done.
	Summary() string
	// ShowErrors focuses the first field with an error, or the last field
	// when none of errs belongs to this step.
	ShowErrors(errs wizard.ErrorMap) tea.Cmd
}

// RenderProgress lists the finished steps with their summaries, then the
// active step with an "n / m" counter.
func RenderProgress(steps []Step, current int, styles *StyleSet, width int) string {
	var b strings.Builder
	heading := styles.PrimaryTxt.Bold(true)

	for i := range min(current, len(steps)) {
		s := steps[i]
		fmt.Fprintf(&b, "  %s  %s\n", styles.StepBadgeComplete.Render(" ✓ "), heading.Render(s.Icon()+" "+s.Title()))
		if summary := s.Summary(); summary != "" {
			fmt.Fprintf(&b, "       %s\n", styles.SecondaryTxt.Render(summary))
		}
		b.WriteString("\n")
	}

	if current >= len(steps) {
		return b.String()
	}
	num := fmt.Sprintf(" %d ", current+1)
	label := steps[current].Icon() + " " + steps[current].Title()
	counter := fmt.Sprintf(" %d / %d", current+1, len(steps))
	rule := max(width-12-lipgloss.Width(num)-lipgloss.Width(label)-lipgloss.Width(counter), 2)
	fmt.Fprintf(&b, "  %s  %s%s\n",
		styles.StepBadgeActive.Render(num),
		heading.Render(label),
		styles.DimTxt.Render(" "+strings.Repeat("─", rule)+counter))
	return b.String()
}
