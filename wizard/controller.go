package wizard

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/zoe5466/Gudiee-sub001/logging"
)

var (
	// ErrBusy is returned while a submission is in flight.
	ErrBusy = errors.New("wizard: submission in progress")
	// ErrDone is returned once the wizard has submitted successfully.
	ErrDone = errors.New("wizard: already submitted")
)

// Phase is the coarse state of a wizard. A failed submission keeps the
// wizard on its last step with a general error.
type Phase int

const (
	PhaseStep Phase = iota
	PhaseSubmitting
	PhaseSuccess
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseStep:
		return "step"
	case PhaseSubmitting:
		return "submitting"
	case PhaseSuccess:
		return "success"
	case PhaseFailed:
		return "failed"
	}
	return fmt.Sprintf("phase(%d)", int(p))
}

// Transition reports what a call to Next did.
type Transition int

const (
	// Blocked means the current step failed validation.
	Blocked Transition = iota
	// Advanced means the step index moved forward by one.
	Advanced
	// Submitted means the final step was submitted successfully.
	Submitted
	// Failed means the submission action returned an error.
	Failed
)

func (t Transition) String() string {
	switch t {
	case Blocked:
		return "blocked"
	case Advanced:
		return "advanced"
	case Submitted:
		return "submitted"
	case Failed:
		return "failed"
	}
	return fmt.Sprintf("transition(%d)", int(t))
}

// Step is one screen of a wizard: its fields and a pure validator over
// the form.
type Step[F any] struct {
	Title    string
	Icon     string
	Fields   []Field[F]
	Validate func(f *F) ErrorMap
}

// Definition describes a wizard flow.
type Definition[F any] struct {
	Name  string
	Steps []Step[F]
	// Submit is invoked with a snapshot of the form once the last step
	// validates.
	Submit Action[F]
	// Fallback is the general error shown when a failure carries no
	// user-facing message.
	Fallback string
}

// Controller drives a Definition over a form of type F. It is safe for
// concurrent use; the submit action runs without the lock held.
type Controller[F any] struct {
	mu      sync.Mutex
	def     Definition[F]
	form    F
	step    int
	phase   Phase
	errors  ErrorMap
	busy    bool
	outcome *Outcome

	navigator Navigator
	notifier  Notifier
	logger    logging.Logger
}

// ControllerOption configures a Controller.
type ControllerOption func(*options)

type options struct {
	navigator Navigator
	notifier  Notifier
	logger    logging.Logger
}

// WithNavigator sets the navigation target for successful submissions.
func WithNavigator(n Navigator) ControllerOption {
	return func(o *options) { o.navigator = n }
}

// WithNotifier sets the notifier for successful submissions.
func WithNotifier(n Notifier) ControllerOption {
	return func(o *options) { o.notifier = n }
}

// WithLogger sets the logger.
func WithLogger(l logging.Logger) ControllerOption {
	return func(o *options) { o.logger = l }
}

// New creates a controller at step 1. form carries the defaults and any
// pre-seeded values.
func New[F any](def Definition[F], form F, opts ...ControllerOption) *Controller[F] {
	if len(def.Steps) == 0 {
		panic("wizard: flow " + def.Name + " has no steps")
	}
	o := options{}
	for _, fn := range opts {
		fn(&o)
	}
	if def.Fallback == "" {
		def.Fallback = DefaultFallback
	}
	return &Controller[F]{
		def:       def,
		form:      form,
		step:      1,
		phase:     PhaseStep,
		errors:    ErrorMap{},
		navigator: o.navigator,
		notifier:  o.notifier,
		logger:    logging.Fallback(o.logger),
	}
}

// Name returns the flow name.
func (c *Controller[F]) Name() string { return c.def.Name }

// Steps returns the step definitions.
func (c *Controller[F]) Steps() []Step[F] { return c.def.Steps }

// TotalSteps returns the number of steps.
func (c *Controller[F]) TotalSteps() int { return len(c.def.Steps) }

// Step returns the 1-based current step index.
func (c *Controller[F]) Step() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.step
}

// Current returns the definition of the current step.
func (c *Controller[F]) Current() Step[F] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.def.Steps[c.step-1]
}

// IsLast reports whether the current step is the terminal step, where
// Next submits.
func (c *Controller[F]) IsLast() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.step == len(c.def.Steps)
}

// Phase returns the current phase.
func (c *Controller[F]) Phase() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase
}

// Busy reports whether a submission is in flight.
func (c *Controller[F]) Busy() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.busy
}

// Errors returns a copy of the current error map.
func (c *Controller[F]) Errors() ErrorMap {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.errors.Clone()
}

// Form returns a copy of the form.
func (c *Controller[F]) Form() F {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.form
}

// Outcome returns the result of a successful submission, or nil.
func (c *Controller[F]) Outcome() *Outcome {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.outcome
}

// Edit applies fn to the form and clears the error of field.
func (c *Controller[F]) Edit(field string, fn func(f *F)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fn(&c.form)
	delete(c.errors, field)
}

// SetField parses raw into the named field. The field's error is cleared
// first; a parse failure is recorded as the field's error and returned.
func (c *Controller[F]) SetField(name, raw string) error {
	fd, ok := c.lookup(name)
	if !ok {
		return fmt.Errorf("%s: unknown field %q", c.def.Name, name)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.errors, name)
	if err := fd.Set(&c.form, raw); err != nil {
		c.errors[name] = err.Error()
		return err
	}
	return nil
}

// Value returns the string representation of the named field.
func (c *Controller[F]) Value(name string) (string, bool) {
	fd, ok := c.lookup(name)
	if !ok {
		return "", false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return fd.Get(&c.form), true
}

func (c *Controller[F]) lookup(name string) (Field[F], bool) {
	for _, s := range c.def.Steps {
		for _, fd := range s.Fields {
			if fd.Name == name {
				return fd, true
			}
		}
	}
	return Field[F]{}, false
}

func (c *Controller[F]) validateLocked() ErrorMap {
	v := c.def.Steps[c.step-1].Validate
	if v == nil {
		return ErrorMap{}
	}
	errs := v(&c.form)
	if errs == nil {
		errs = ErrorMap{}
	}
	return errs
}

// Next validates the current step. On failure the error map is replaced
// and the step does not change. On success the step advances by one, or
// the form is submitted when the current step is the last.
func (c *Controller[F]) Next(ctx context.Context) (Transition, error) {
	c.mu.Lock()
	if c.busy {
		c.mu.Unlock()
		return Blocked, ErrBusy
	}
	if c.phase == PhaseSuccess {
		c.mu.Unlock()
		return Blocked, ErrDone
	}

	errs := c.validateLocked()
	c.errors = errs
	if !errs.Empty() {
		c.phase = PhaseStep
		c.logger.Debug("step blocked", map[string]any{"flow": c.def.Name, "step": c.step, "fields": errs.Fields()})
		c.mu.Unlock()
		return Blocked, nil
	}

	if c.step < len(c.def.Steps) {
		c.step = min(c.step+1, len(c.def.Steps))
		c.phase = PhaseStep
		c.logger.Debug("step advanced", map[string]any{"flow": c.def.Name, "step": c.step})
		c.mu.Unlock()
		return Advanced, nil
	}

	return c.submitLocked(ctx)
}

// Previous moves back one step, never below step 1. It is ignored while a
// submission is in flight or after success.
func (c *Controller[F]) Previous() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.busy || c.phase == PhaseSuccess {
		return
	}
	c.step = max(c.step-1, 1)
	c.phase = PhaseStep
}
