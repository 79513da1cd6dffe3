package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/kk-code-lab/thwack/internal/app"
	"github.com/kk-code-lab/thwack/internal/apperr"
	"github.com/kk-code-lab/thwack/internal/config"
	"github.com/kk-code-lab/thwack/internal/logging"
	"github.com/kk-code-lab/thwack/internal/textutil"
	"golang.org/x/term"
)

// version is replaced at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	// Set UTF-8 as fallback encoding so file names draw correctly on
	// terminals that do not advertise a charset.
	tcell.SetEncodingFallback(tcell.EncodingFallbackUTF8)

	os.Exit(run(os.Args[1:], os.Getenv, os.Stdout, os.Stderr))
}

func run(args []string, getenv func(string) string, stdout, stderr io.Writer) int {
	inv, err := config.Parse(args, getenv)
	if err != nil {
		return report(stderr, err)
	}
	if inv.Help {
		_, _ = fmt.Fprint(stdout, config.Usage)
		return 0
	}
	if inv.Version {
		_, _ = fmt.Fprintf(stdout, "thwack %s\n", version)
		return 0
	}

	logger, closeLog, err := logging.Open(inv.Preferences.LogFile)
	if err != nil {
		return report(stderr, err)
	}
	defer func() {
		_ = closeLog()
	}()
	logger.Info("starting thwack", "version", version, "args", args)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	application, err := app.NewApplication(inv.Preferences, logger)
	if err != nil {
		logger.Error("startup failed", "error", err)
		return report(stderr, err)
	}
	if err := application.Run(ctx); err != nil {
		logger.Error("run failed", "error", err)
		return report(stderr, err)
	}
	return 0
}

// report prints err and returns the exit code it maps to. Messages may
// quote file names, so they are sanitized before reaching a terminal.
func report(w io.Writer, err error) int {
	msg := err.Error()
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		msg = textutil.SanitizeTerminalText(msg)
	}
	_, _ = fmt.Fprintf(w, "error: %s\n", msg)
	return apperr.ExitCode(err)
}
