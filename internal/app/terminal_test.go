package app

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
)

func TestTcellTerminalForwardsEvents(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	term := newTerminal(screen)
	if err := term.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	defer term.Fini()

	screen.InjectKey(tcell.KeyEscape, 0, tcell.ModNone)

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		ev, ok := term.PollEvent(100 * time.Millisecond)
		if !ok {
			continue
		}
		if k, isKey := ev.(*tcell.EventKey); isKey {
			if k.Key() != tcell.KeyEscape {
				t.Fatalf("key = %v, want Esc", k.Key())
			}
			return
		}
	}
	t.Fatalf("injected key never arrived")
}

func TestTcellTerminalPollTimesOut(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	term := newTerminal(screen)
	if err := term.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	defer term.Fini()

	// Drain whatever the screen posts on start-up.
	for {
		if _, ok := term.PollEvent(50 * time.Millisecond); !ok {
			break
		}
	}

	started := time.Now()
	if ev, ok := term.PollEvent(20 * time.Millisecond); ok {
		t.Fatalf("expected a timeout, got %T", ev)
	}
	if time.Since(started) < 20*time.Millisecond {
		t.Fatalf("poll returned before the timeout")
	}
}
