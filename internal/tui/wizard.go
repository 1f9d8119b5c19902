package tui

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/zoe5466/Gudiee-sub001/wizard"
)

// ErrCancelled is returned by Err when the user quits the wizard.
var ErrCancelled = errors.New("wizard cancelled")

// Flow is the part of a wizard.Controller the model drives.
type Flow interface {
	Name() string
	Step() int
	TotalSteps() int
	IsLast() bool
	Errors() wizard.ErrorMap
	Next(ctx context.Context) (wizard.Transition, error)
	Previous()
}

// HeaderFunc renders flow-specific content above the active step, such as
// the service being booked and its running price.
type HeaderFunc func(step, width int) string

// WizardModel is the top-level bubbletea model that orchestrates the wizard.
type WizardModel struct {
	ctx        context.Context
	styles     *StyleSet
	flow       Flow
	steps      []Step
	current    int
	header     HeaderFunc
	subtitle   string
	spinner    spinner.Model
	submitting bool
	general    string
	width      int
	height     int
	done       bool
	err        error
	version    string
}

// NewWizardModel creates a wizard over flow with one Step per flow step.
func NewWizardModel(ctx context.Context, theme TermTheme, flow Flow, steps []Step, version string) WizardModel {
	sp := spinner.New(spinner.WithSpinner(spinner.Dot))
	styles := NewStyleSet(theme)
	sp.Style = styles.AccentTxt
	return WizardModel{
		ctx:     ctx,
		styles:  styles,
		flow:    flow,
		steps:   steps,
		current: flow.Step() - 1,
		spinner: sp,
		width:   80,
		height:  24,
		version: version,
	}
}

// WithHeader sets the flow-specific header renderer.
func (w WizardModel) WithHeader(fn HeaderFunc) WizardModel {
	w.header = fn
	return w
}

// WithSubtitle replaces the banner subtitle.
func (w WizardModel) WithSubtitle(s string) WizardModel {
	w.subtitle = s
	return w
}

// Styles returns the style set derived from the theme.
func (w WizardModel) Styles() *StyleSet {
	return w.styles
}

// Init initializes the current step.
func (w WizardModel) Init() tea.Cmd {
	if w.current < len(w.steps) {
		return w.steps[w.current].Init()
	}
	return nil
}

func (w WizardModel) next() tea.Cmd {
	return func() tea.Msg {
		tr, err := w.flow.Next(w.ctx)
		return NextResultMsg{Transition: tr, Err: err}
	}
}

// Update handles messages for the wizard.
func (w WizardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		w.width = msg.Width
		w.height = msg.Height
		return w, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" || msg.String() == "esc" {
			w.err = ErrCancelled
			return w, tea.Quit
		}
		if w.submitting {
			return w, nil
		}

	case StepBackMsg:
		w.flow.Previous()
		w.general = ""
		w.current = w.flow.Step() - 1
		return w, w.steps[w.current].Init()

	case StepCompleteMsg:
		// The controller is the sole authority for advancing.
		w.general = ""
		if w.flow.IsLast() {
			w.submitting = true
			return w, tea.Batch(w.next(), w.spinner.Tick)
		}
		return w, w.next()

	case NextResultMsg:
		w.submitting = false
		return w.handleNext(msg)

	case spinner.TickMsg:
		if !w.submitting {
			return w, nil
		}
		var cmd tea.Cmd
		w.spinner, cmd = w.spinner.Update(msg)
		return w, cmd
	}

	// Delegate to current step
	if w.current < len(w.steps) {
		updated, cmd := w.steps[w.current].Update(msg)
		w.steps[w.current] = updated
		return w, cmd
	}

	return w, nil
}

func (w WizardModel) handleNext(msg NextResultMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		if errors.Is(msg.Err, wizard.ErrBusy) {
			return w, nil
		}
		w.err = msg.Err
		return w, tea.Quit
	}

	switch msg.Transition {
	case wizard.Advanced:
		w.current = w.flow.Step() - 1
		return w, w.steps[w.current].Init()
	case wizard.Submitted:
		w.done = true
		return w, tea.Quit
	default:
		errs := w.flow.Errors()
		w.general = errs[wizard.GeneralField]
		return w, w.steps[w.current].ShowErrors(errs)
	}
}

// View renders the entire wizard UI.
func (w WizardModel) View() string {
	var out string

	out += "\n" + RenderBanner(w.styles, w.version, w.subtitle, w.width)
	out += RenderProgress(w.steps, w.current, w.styles, w.width)
	out += "\n"

	if w.header != nil {
		if h := w.header(w.current+1, w.width); h != "" {
			out += h + "\n\n"
		}
	}

	if w.submitting {
		out += fmt.Sprintf("  %s %s\n", w.spinner.View(), w.styles.AccentTxt.Render("處理中…"))
		return out
	}

	if w.general != "" {
		out += "  " + w.styles.Alert.Render("✗ "+w.general) + "\n"
		out += "  " + w.styles.DimTxt.Render("按 Enter 重新送出") + "\n"
	}

	if w.current < len(w.steps) {
		out += w.steps[w.current].View(w.width)
	}
	out += "\n"

	return out
}

// Err returns any error that occurred during the wizard.
func (w WizardModel) Err() error {
	return w.err
}

// Done returns true if the flow was submitted successfully.
func (w WizardModel) Done() bool {
	return w.done
}

// Current returns the 0-based index of the active step.
func (w WizardModel) Current() int {
	return w.current
}

// General returns the general error currently displayed.
func (w WizardModel) General() string {
	return w.general
}
