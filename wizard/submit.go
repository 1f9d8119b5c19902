package wizard

import (
	"context"
	"errors"
	"net"
)

// DefaultFallback is the general error used when a failure carries no
// user-facing message.
const DefaultFallback = "發生錯誤，請稍後再試"

// Action performs the external call of a flow (register, create order,
// update profile) with a snapshot of the form.
type Action[F any] func(ctx context.Context, form F) (Outcome, error)

// Outcome describes the side effects of a successful submission.
type Outcome struct {
	// Route is the navigation target, e.g. /orders/{id}.
	Route string
	// Notice is shown after success. A zero Notice shows nothing.
	Notice Notice
	// Result carries the created record for the caller.
	Result any
}

// Notice is a success notification. Blocking notices wait for the user
// to acknowledge them; the rest are transient toasts.
type Notice struct {
	Title    string
	Body     string
	Blocking bool
}

// IsZero reports whether the notice is empty.
func (n Notice) IsZero() bool {
	return n.Title == "" && n.Body == ""
}

// Notifier delivers success notices.
type Notifier interface {
	Notify(ctx context.Context, n Notice) error
}

// Navigator moves the user to another screen after success.
type Navigator interface {
	Navigate(route string)
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(route string)

// Navigate calls f(route).
func (f NavigatorFunc) Navigate(route string) { f(route) }

// UserMessager is implemented by errors whose message is safe to show to
// the user as-is.
type UserMessager interface {
	UserMessage() string
}

type userError struct{ msg string }

func (e *userError) Error() string       { return e.msg }
func (e *userError) UserMessage() string { return e.msg }

// UserError returns an error whose message is shown verbatim as the
// general error.
func UserError(msg string) error {
	return &userError{msg: msg}
}

// Message maps a submission error to the general error text. Errors with
// a user message keep it; transport failures, cancellations and anything
// unexpected map to fallback.
func Message(err error, fallback string) string {
	if fallback == "" {
		fallback = DefaultFallback
	}
	if err == nil {
		return ""
	}
	var netErr net.Error
	if errors.As(err, &netErr) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return fallback
	}
	var um UserMessager
	if errors.As(err, &um) {
		if msg := um.UserMessage(); msg != "" {
			return msg
		}
	}
	return fallback
}

// Submit validates and submits the terminal step. It is equivalent to
// Next when the wizard is on its last step.
func (c *Controller[F]) Submit(ctx context.Context) (Transition, error) {
	c.mu.Lock()
	if c.step != len(c.def.Steps) {
		c.mu.Unlock()
		return Blocked, errors.New("wizard: submit before the last step")
	}
	c.mu.Unlock()
	return c.Next(ctx)
}

// submitLocked is entered with c.mu held and releases it. The busy flag
// keeps a second submission out while the action runs unlocked.
func (c *Controller[F]) submitLocked(ctx context.Context) (Transition, error) {
	c.busy = true
	c.phase = PhaseSubmitting
	snapshot := c.form
	action := c.def.Submit
	c.mu.Unlock()

	c.logger.Info("submitting", map[string]any{"flow": c.def.Name})

	var (
		out Outcome
		err error
	)
	if action != nil {
		out, err = action(ctx, snapshot)
	}

	c.mu.Lock()
	c.busy = false
	if err != nil {
		c.phase = PhaseFailed
		c.errors = ErrorMap{GeneralField: Message(err, c.def.Fallback)}
		c.mu.Unlock()
		c.logger.Warn("submission failed", map[string]any{"flow": c.def.Name, "error": err})
		return Failed, nil
	}
	c.phase = PhaseSuccess
	c.errors = ErrorMap{}
	c.outcome = &out
	c.mu.Unlock()

	c.logger.Info("submitted", map[string]any{"flow": c.def.Name, "route": out.Route})

	if c.notifier != nil && !out.Notice.IsZero() {
		if nerr := c.notifier.Notify(ctx, out.Notice); nerr != nil {
			c.logger.Warn("notification failed", map[string]any{"flow": c.def.Name, "error": nerr})
		}
	}
	if c.navigator != nil && out.Route != "" {
		c.navigator.Navigate(out.Route)
	}
	return Submitted, nil
}
