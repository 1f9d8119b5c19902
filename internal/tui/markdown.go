package tui

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

// RenderMarkdown renders a service description for the terminal. The
// glamour style follows the theme so descriptions stay readable on light
// backgrounds.
func RenderMarkdown(theme TermTheme, md string, width int) (string, error) {
	style := "dark"
	if theme.Name == "light" {
		style = "light"
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStylePath(style),
		glamour.WithWordWrap(max(width-4, 20)),
	)
	if err != nil {
		return "", err
	}
	out, err := r.Render(md)
	if err != nil {
		return "", err
	}
	return strings.TrimRight(out, "\n"), nil
}
