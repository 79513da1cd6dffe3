package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/gdamore/tcell/v2"
	"github.com/kk-code-lab/thwack/internal/apperr"
	"github.com/kk-code-lab/thwack/internal/config"
	"github.com/kk-code-lab/thwack/internal/search"
	"github.com/kk-code-lab/thwack/internal/textutil"
)

// Application represents the running app.
type Application struct {
	prefs     config.Preferences
	logger    *slog.Logger
	argv      []string
	source    search.PathSource
	terminal  Terminal
	clipboard Clipboard
	invoker   Invoker
	errOut    io.Writer
}

// Option replaces one of the application's collaborators.
type Option func(*Application)

func WithTerminal(t Terminal) Option {
	return func(app *Application) { app.terminal = t }
}

func WithClipboard(c Clipboard) Option {
	return func(app *Application) { app.clipboard = c }
}

func WithInvoker(i Invoker) Option {
	return func(app *Application) { app.invoker = i }
}

// WithErrorOutput sets where non-fatal failures are reported after the
// terminal is restored. It defaults to stderr.
func WithErrorOutput(w io.Writer) Option {
	return func(app *Application) { app.errOut = w }
}

// NewApplication validates the preferences and prepares the collaborators.
// An unusable starting point or exec command fails here, before the
// terminal is touched.
func NewApplication(prefs config.Preferences, logger *slog.Logger, opts ...Option) (*Application, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	root, err := search.ResolveStartingPoint(prefs.StartingPoint)
	if err != nil {
		return nil, err
	}
	argv, err := prefs.Command()
	if err != nil {
		return nil, err
	}

	policy := search.IgnoreGit
	if !prefs.Gitignore {
		policy = search.IgnoreNone
	}

	app := &Application{
		prefs:  prefs,
		logger: logger,
		argv:   argv,
		source: search.NewWalker(root, policy, logger),
		errOut: os.Stderr,
	}
	for _, opt := range opts {
		opt(app)
	}

	if app.terminal == nil {
		screen, err := tcell.NewScreen()
		if err != nil {
			return nil, apperr.Terminal("cannot open the terminal: %w", err)
		}
		app.terminal = newTerminal(screen)
	}
	if app.clipboard == nil {
		if cb, err := newSystemClipboard(); err != nil {
			logger.Warn("clipboard is unavailable", "error", err)
		} else {
			app.clipboard = cb
		}
	}
	if app.invoker == nil {
		app.invoker = newInvoker()
	}

	logger.Info("application ready", "root", root, "preferences", prefs.String())
	return app, nil
}

// Run runs the interactive session and then acts on how it ended. On Unix
// a successful invocation replaces the process and Run does not return.
func (app *Application) Run(ctx context.Context) error {
	outcome, err := app.runSession(ctx)
	if err != nil {
		return err
	}

	switch outcome.Kind {
	case OutcomeInvoke:
		app.logger.Info("invoking command", "argv", app.argv, "path", outcome.Path)
		if err := app.invoker.Invoke(app.argv, outcome.Path); err != nil {
			app.logger.Error("invocation failed", "error", err)
			return err
		}
	case OutcomeCopy:
		if outcome.Err != nil {
			_, _ = fmt.Fprintf(app.errOut, "thwack: %s\n", textutil.SanitizeTerminalText(outcome.Err.Error()))
		}
	}
	return nil
}

// runSession restores the terminal before returning, whatever happened.
func (app *Application) runSession(ctx context.Context) (Outcome, error) {
	if err := app.terminal.Init(); err != nil {
		return Outcome{}, err
	}
	defer app.terminal.Fini()

	s := newSession(sessionConfig{
		prefs:     app.prefs,
		source:    app.source,
		term:      app.terminal,
		clipboard: app.clipboard,
		logger:    app.logger,
	})
	return s.run(ctx)
}
