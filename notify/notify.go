// Package notify delivers the success notices produced by a wizard
// submission: a blocking alert or a transient toast in the terminal, and
// optionally a message to a Telegram chat.
package notify

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/zoe5466/Gudiee-sub001/wizard"
)

var (
	alertStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#10B981")).
			Padding(0, 2)
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#10B981"))
	toastStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981"))
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
)

// Terminal renders notices to out. Blocking notices wait for Enter on in
// before returning; when in is nil they return immediately.
type Terminal struct {
	out io.Writer
	in  *bufio.Reader
}

// NewTerminal creates a terminal notifier.
func NewTerminal(out io.Writer, in io.Reader) *Terminal {
	t := &Terminal{out: out}
	if in != nil {
		t.in = bufio.NewReader(in)
	}
	return t
}

// Notify implements wizard.Notifier.
func (t *Terminal) Notify(ctx context.Context, n wizard.Notice) error {
	if !n.Blocking {
		line := "✓ " + n.Title
		if n.Body != "" {
			line += "  " + strings.ReplaceAll(n.Body, "\n", " · ")
		}
		_, err := fmt.Fprintln(t.out, toastStyle.Render(line))
		return err
	}

	body := titleStyle.Render(n.Title)
	if n.Body != "" {
		body += "\n\n" + n.Body
	}
	if _, err := fmt.Fprintln(t.out, alertStyle.Render(body)); err != nil {
		return err
	}
	if t.in == nil {
		return nil
	}
	if _, err := fmt.Fprint(t.out, dimStyle.Render("按 Enter 繼續")); err != nil {
		return err
	}

	done := make(chan error, 1)
	go func() {
		_, err := t.in.ReadString('\n')
		if errors.Is(err, io.EOF) {
			err = nil
		}
		done <- err
	}()
	select {
	case err := <-done:
		fmt.Fprintln(t.out)
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Multi fans a notice out to every notifier and joins their errors.
type Multi []wizard.Notifier

// Notify implements wizard.Notifier.
func (m Multi) Notify(ctx context.Context, n wizard.Notice) error {
	var errs []error
	for _, nt := range m {
		if nt == nil {
			continue
		}
		if err := nt.Notify(ctx, n); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
