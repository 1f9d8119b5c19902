package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/zoe5466/Gudiee-sub001/api"
	"github.com/zoe5466/Gudiee-sub001/config"
	"github.com/zoe5466/Gudiee-sub001/internal/tui"
	"github.com/zoe5466/Gudiee-sub001/logging"
	"github.com/zoe5466/Gudiee-sub001/notify"
	"github.com/zoe5466/Gudiee-sub001/session"
	"github.com/zoe5466/Gudiee-sub001/types"
	"github.com/zoe5466/Gudiee-sub001/wizard"
)

// isTerminal reports whether the process is attached to a terminal on
// both stdin and stdout. Tests replace it.
var isTerminal = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

// appEnv is everything a command needs after flags and config are
// resolved.
type appEnv struct {
	cfg         *types.Config
	logger      logging.Logger
	client      *api.Client
	sessions    *session.Store
	session     *session.Session // nil when logged out
	theme       tui.TermTheme
	interactive bool

	in     io.Reader
	out    io.Writer
	errOut io.Writer
}

func loadConfig() (*types.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if apiURL != "" {
		cfg.API.BaseURL = apiURL
	}
	return cfg, nil
}

func newLogger(cfg *types.Config) (logging.Logger, error) {
	l, err := logging.New(logging.Options{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Verbose: verbose,
	})
	if err != nil {
		return nil, err
	}
	return l, nil
}

// newEnv resolves config, logger, session and API client for cmd.
func newEnv(cmd *cobra.Command) (*appEnv, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return nil, err
	}

	sessions, err := session.NewStore(cfg.Session.Path)
	if err != nil {
		return nil, err
	}
	sess, err := sessions.Load()
	switch {
	case errors.Is(err, session.ErrNoSession):
		sess = nil
	case err != nil:
		logger.Warn("ignoring unreadable session", map[string]any{"path": sessions.Path(), "error": err.Error()})
		sess = nil
	case sess.Endpoint != "" && sess.Endpoint != cfg.API.BaseURL:
		// Logged in against another backend.
		sess = nil
	}

	opts := []api.Option{api.WithLogger(logger)}
	if cfg.API.Timeout != "" {
		d, err := time.ParseDuration(cfg.API.Timeout)
		if err != nil {
			return nil, fmt.Errorf("api.timeout: %w", err)
		}
		opts = append(opts, api.WithTimeout(d))
	}
	switch {
	case cfg.API.Token != "":
		opts = append(opts, api.WithToken(cfg.API.Token))
	case sess != nil:
		opts = append(opts, api.WithToken(sess.Token))
	}

	themeName := themeOverride
	if themeName == "" {
		themeName = cfg.Theme
	}

	env := &appEnv{
		cfg:         cfg,
		logger:      logger,
		client:      api.NewClient(cfg.API.BaseURL, opts...),
		sessions:    sessions,
		session:     sess,
		theme:       tui.DetectTheme(themeName),
		interactive: !nonInteractive && isTerminal(),
		in:          os.Stdin,
		out:         os.Stdout,
		errOut:      os.Stderr,
	}
	if cmd != nil {
		env.in = cmd.InOrStdin()
		env.out = cmd.OutOrStdout()
		env.errOut = cmd.ErrOrStderr()
	}
	return env, nil
}

// stdStreams returns the command's output streams, or the process
// streams when cmd is nil.
func stdStreams(cmd *cobra.Command) (io.Writer, io.Writer) {
	if cmd == nil {
		return os.Stdout, os.Stderr
	}
	return cmd.OutOrStdout(), cmd.ErrOrStderr()
}

// notifier delivers success notices to the terminal and, when
// configured, to Telegram.
func (e *appEnv) notifier() wizard.Notifier {
	var in io.Reader
	if e.interactive {
		in = e.in
	}
	multi := notify.Multi{notify.NewTerminal(e.out, in)}

	tg := e.cfg.Notify.Telegram
	if tg.BotToken != "" && tg.ChatID != 0 {
		t, err := notify.NewTelegram(tg)
		if err != nil {
			e.logger.Warn("telegram notifications disabled", map[string]any{"error": err.Error()})
		} else {
			multi = append(multi, t)
		}
	}
	return multi
}

// saveSession stores the client's current login.
func (e *appEnv) saveSession(user *types.User) error {
	if user == nil || e.client.Token() == "" {
		return nil
	}
	sess := session.Session{User: *user, Token: e.client.Token(), Endpoint: e.cfg.API.BaseURL}
	if err := e.sessions.Save(sess); err != nil {
		return err
	}
	e.session = &sess
	e.logger.Debug("session saved", map[string]any{"path": e.sessions.Path(), "user": user.ID})
	return nil
}
