package tui

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// TermTheme is the palette the wizard is drawn with.
type TermTheme struct {
	Name string

	Accent    lipgloss.Color
	AccentDim lipgloss.Color

	Success lipgloss.Color
	Warning lipgloss.Color
	Error   lipgloss.Color

	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Dim       lipgloss.Color

	Border       lipgloss.Color
	ActiveBorder lipgloss.Color
}

// DarkTheme is the default palette, teal on a dark background.
var DarkTheme = TermTheme{
	Name:         "dark",
	Accent:       "#14b8a6",
	AccentDim:    "#0f766e",
	Success:      "#34d399",
	Warning:      "#fbbf24",
	Error:        "#f87171",
	Primary:      "#e5e7eb",
	Secondary:    "#9ca3af",
	Dim:          "#5b6472",
	Border:       "#2b3340",
	ActiveBorder: "#14b8a6",
}

// LightTheme is used on light terminal backgrounds.
var LightTheme = TermTheme{
	Name:         "light",
	Accent:       "#0f766e",
	AccentDim:    "#134e4a",
	Success:      "#047857",
	Warning:      "#b45309",
	Error:        "#b91c1c",
	Primary:      "#111827",
	Secondary:    "#374151",
	Dim:          "#6b7280",
	Border:       "#d1d5db",
	ActiveBorder: "#0f766e",
}

// themeByName resolves "dark" or "light"; anything else, including
// "auto", is not a choice.
func themeByName(name string) (TermTheme, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "dark":
		return DarkTheme, true
	case "light":
		return LightTheme, true
	}
	return TermTheme{}, false
}

// DetectTheme picks the palette from the --theme flag, then GUIDEE_THEME,
// then the terminal's COLORFGBG background. Dark is the fallback.
func DetectTheme(flagVal string) TermTheme {
	for _, name := range []string{flagVal, os.Getenv("GUIDEE_THEME")} {
		if t, ok := themeByName(name); ok {
			return t
		}
	}

	// COLORFGBG is "fg;bg"; 7 and 15 are the light backgrounds.
	if parts := strings.Split(os.Getenv("COLORFGBG"), ";"); len(parts) >= 2 {
		if bg := parts[len(parts)-1]; bg == "7" || bg == "15" {
			return LightTheme
		}
	}
	return DarkTheme
}

// StyleSet holds the lipgloss styles derived from a theme.
type StyleSet struct {
	Theme TermTheme

	Title        lipgloss.Style
	Subtitle     lipgloss.Style
	AccentTxt    lipgloss.Style
	DimTxt       lipgloss.Style
	SuccessTxt   lipgloss.Style
	WarningTxt   lipgloss.Style
	ErrorTxt     lipgloss.Style
	PrimaryTxt   lipgloss.Style
	SecondaryTxt lipgloss.Style

	ActiveBorder   lipgloss.Style
	InactiveBorder lipgloss.Style
	ErrorBorder    lipgloss.Style
	BorderedBox    lipgloss.Style
	// Alert frames the general error of a failed submission.
	Alert lipgloss.Style

	KbdKey  lipgloss.Style
	KbdDesc lipgloss.Style

	Banner      lipgloss.Style
	VersionPill lipgloss.Style

	SummaryKey   lipgloss.Style
	SummaryValue lipgloss.Style
	SummaryTotal lipgloss.Style

	StepBadgeComplete lipgloss.Style
	StepBadgeActive   lipgloss.Style
	StepBadgePending  lipgloss.Style
}

func fg(c lipgloss.Color) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(c)
}

func framed(c lipgloss.Color) lipgloss.Style {
	return lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(c).Padding(0, 1)
}

func badge(bg, text lipgloss.Color) lipgloss.Style {
	return lipgloss.NewStyle().Background(bg).Foreground(text).Padding(0, 1)
}

// NewStyleSet derives every style from theme.
func NewStyleSet(theme TermTheme) *StyleSet {
	const white = lipgloss.Color("#ffffff")
	return &StyleSet{
		Theme: theme,

		Title:        fg(theme.Accent).Bold(true),
		Subtitle:     fg(theme.Secondary),
		AccentTxt:    fg(theme.Accent),
		DimTxt:       fg(theme.Dim),
		SuccessTxt:   fg(theme.Success),
		WarningTxt:   fg(theme.Warning),
		ErrorTxt:     fg(theme.Error),
		PrimaryTxt:   fg(theme.Primary),
		SecondaryTxt: fg(theme.Secondary),

		ActiveBorder:   framed(theme.ActiveBorder),
		InactiveBorder: framed(theme.Border),
		ErrorBorder:    framed(theme.Error),
		BorderedBox:    framed(theme.Border),
		Alert:          framed(theme.Error).Foreground(theme.Error),

		KbdKey:  badge(theme.Dim, theme.Primary),
		KbdDesc: fg(theme.Dim),

		Banner:      fg(theme.Accent).Bold(true),
		VersionPill: badge(theme.AccentDim, white).Bold(true),

		SummaryKey:   fg(theme.Secondary).Width(16),
		SummaryValue: fg(theme.Primary),
		SummaryTotal: fg(theme.Accent).Bold(true),

		StepBadgeComplete: badge(theme.Success, white).Bold(true),
		StepBadgeActive:   badge(theme.Accent, white).Bold(true),
		StepBadgePending:  badge(theme.Border, theme.Secondary),
	}
}
