package app

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/kk-code-lab/thwack/internal/apperr"
	"github.com/kk-code-lab/thwack/internal/config"
	"github.com/kk-code-lab/thwack/internal/logging"
)

func TestNewApplicationRejectsBadPreferences(t *testing.T) {
	root := newProject(t)

	tests := []struct {
		name   string
		mutate func(*config.Preferences)
	}{
		{"missing starting point", func(p *config.Preferences) { p.StartingPoint = filepath.Join(root, "missing") }},
		{"empty exec", func(p *config.Preferences) { p.Exec = "   " }},
		{"unbalanced quote", func(p *config.Preferences) { p.Exec = `vim "unterminated` }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prefs := testPreferences(root)
			tt.mutate(&prefs)
			_, err := NewApplication(prefs, logging.Discard(), WithTerminal(newScriptedTerminal(10, 10)))
			if apperr.KindOf(err) != apperr.KindArgs {
				t.Fatalf("expected args error, got %v", err)
			}
		})
	}
}

func TestRunReturnsInvocationError(t *testing.T) {
	root := newProject(t)
	term := newScriptedTerminal(40, 8, key(tcell.KeyEnter))
	h := newHarness(t, testPreferences(root), term)
	want := apperr.Exec("`vim -R x` failed and returned 2").WithCode(2)
	h.invoker.err = want

	err := h.run(t)
	if !errors.Is(err, want) {
		t.Fatalf("expected invocation error, got %v", err)
	}
	if apperr.ExitCode(err) != 2 {
		t.Fatalf("exit code = %d, want 2", apperr.ExitCode(err))
	}
}

func TestRunInvokesAfterRestoringTerminal(t *testing.T) {
	root := newProject(t)
	term := newScriptedTerminal(40, 8, key(tcell.KeyEnter))
	h := newHarness(t, testPreferences(root), term)

	finiAtInvoke := -1
	h.app.invoker = invokerFunc(func([]string, string) error {
		finiAtInvoke = term.finiCalls
		return nil
	})

	if err := h.run(t); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if finiAtInvoke != 1 {
		t.Fatalf("terminal should be restored before invoking, fini calls at invoke = %d", finiAtInvoke)
	}
}

func TestRunFailsWhenTerminalCannotStart(t *testing.T) {
	root := newProject(t)
	term := newScriptedTerminal(40, 8)
	term.initErr = apperr.Terminal("no tty")
	h := newHarness(t, testPreferences(root), term)

	err := h.app.Run(t.Context())
	if apperr.KindOf(err) != apperr.KindTerminal {
		t.Fatalf("expected terminal error, got %v", err)
	}
	if term.finiCalls != 0 || h.invoker.calls != 0 {
		t.Fatalf("nothing should run after a failed init")
	}
}

type invokerFunc func(argv []string, path string) error

func (f invokerFunc) Invoke(argv []string, path string) error { return f(argv, path) }
