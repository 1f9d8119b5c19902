package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/zoe5466/Gudiee-sub001/internal/tui"
	"github.com/zoe5466/Gudiee-sub001/internal/tui/steps"
	"github.com/zoe5466/Gudiee-sub001/notify"
	"github.com/zoe5466/Gudiee-sub001/wizard"
)

// flowHooks collects the notices and navigation of a submission while the
// wizard owns the terminal. They are acted on once it has finished.
type flowHooks struct {
	notices notify.Deferred

	mu    sync.Mutex
	route string
}

func (h *flowHooks) options(env *appEnv) []wizard.ControllerOption {
	return []wizard.ControllerOption{
		wizard.WithNotifier(&h.notices),
		wizard.WithNavigator(wizard.NavigatorFunc(func(route string) {
			h.mu.Lock()
			h.route = route
			h.mu.Unlock()
		})),
		wizard.WithLogger(env.logger),
	}
}

// Route returns the navigation target of the last successful submission.
func (h *flowHooks) Route() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.route
}

// applySets fills fields from --set name=value flags.
func applySets[F any](ctrl *wizard.Controller[F], sets []string) error {
	var errs []error
	for _, kv := range sets {
		name, value, ok := strings.Cut(kv, "=")
		if !ok {
			errs = append(errs, fmt.Errorf("--set %q: expected name=value", kv))
			continue
		}
		if err := ctrl.SetField(strings.TrimSpace(name), value); err != nil {
			errs = append(errs, fmt.Errorf("--set %s: %w", name, err))
		}
	}
	return errors.Join(errs...)
}

// runFlow drives ctrl to submission in the terminal UI, or from the
// already applied field values when not interactive. Queued notices are
// delivered afterwards.
func runFlow[F any](ctx context.Context, env *appEnv, ctrl *wizard.Controller[F], hooks *flowHooks, header func(*tui.StyleSet) tui.HeaderFunc) error {
	var err error
	if env.interactive {
		err = runInteractive(ctx, env, ctrl, header)
	} else {
		err = runNonInteractive(ctx, env.errOut, ctrl)
	}
	if err != nil {
		return err
	}
	return hooks.notices.Flush(ctx, env.notifier())
}

func runInteractive[F any](ctx context.Context, env *appEnv, ctrl *wizard.Controller[F], header func(*tui.StyleSet) tui.HeaderFunc) error {
	styles := tui.NewStyleSet(env.theme)
	model := tui.NewWizardModel(ctx, env.theme, ctrl, steps.NewFormSteps(ctrl, styles), appVersion)
	if header != nil {
		model = model.WithHeader(header(styles))
	}

	final, err := tea.NewProgram(model, tea.WithContext(ctx), tea.WithInput(env.in), tea.WithOutput(env.out)).Run()
	if err != nil {
		return fmt.Errorf("running %s wizard: %w", ctrl.Name(), err)
	}
	w, ok := final.(tui.WizardModel)
	if !ok {
		return fmt.Errorf("running %s wizard: unexpected model %T", ctrl.Name(), final)
	}
	if w.Err() != nil {
		return w.Err()
	}
	if !w.Done() {
		return tui.ErrCancelled
	}
	return nil
}

// runNonInteractive walks the steps with Next. The first blocked step
// prints its field errors and fails the command.
func runNonInteractive[F any](ctx context.Context, errOut io.Writer, ctrl *wizard.Controller[F]) error {
	for {
		tr, err := ctrl.Next(ctx)
		if err != nil {
			return fmt.Errorf("%s: %w", ctrl.Name(), err)
		}
		switch tr {
		case wizard.Advanced:
			continue
		case wizard.Submitted:
			return nil
		case wizard.Failed:
			msg := ctrl.Errors()[wizard.GeneralField]
			fmt.Fprintf(errOut, "ERROR: %s\n", msg)
			return fmt.Errorf("%s: %s", ctrl.Name(), msg)
		default:
			errs := ctrl.Errors()
			printFieldErrors(errOut, ctrl, errs)
			return fmt.Errorf("%s: step %d (%s): %d invalid field(s)", ctrl.Name(), ctrl.Step(), ctrl.Current().Title, len(errs))
		}
	}
}

func printFieldErrors[F any](w io.Writer, ctrl *wizard.Controller[F], errs wizard.ErrorMap) {
	labels := map[string]string{}
	for _, st := range ctrl.Steps() {
		for _, fd := range st.Fields {
			labels[fd.Name] = fd.Label
		}
	}
	for _, name := range errs.Fields() {
		label := labels[name]
		if label == "" {
			label = name
		}
		fmt.Fprintf(w, "ERROR: %s (%s): %s\n", label, name, errs[name])
	}
}
