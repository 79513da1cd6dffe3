package app

import (
	"os"
	"os/signal"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/kk-code-lab/thwack/internal/apperr"
	"github.com/kk-code-lab/thwack/internal/ui/render"
)

// Terminal is the screen the session draws on and reads input from.
type Terminal interface {
	render.Surface
	Init() error
	Fini()
	// PollEvent waits up to timeout for the next event. It reports false
	// when the wait timed out.
	PollEvent(timeout time.Duration) (tcell.Event, bool)
}

// tcellTerminal adapts a tcell.Screen. A single goroutine forwards
// screen events into a channel so polls can be bounded.
type tcellTerminal struct {
	screen tcell.Screen
	events chan tcell.Event
	sigs   chan os.Signal
}

func newTerminal(screen tcell.Screen) *tcellTerminal {
	return &tcellTerminal{
		screen: screen,
		events: make(chan tcell.Event, 16),
	}
}

func (t *tcellTerminal) Init() error {
	if err := t.screen.Init(); err != nil {
		return apperr.Terminal("cannot initialize the terminal: %w", err)
	}
	t.screen.SetStyle(tcell.StyleDefault)
	t.screen.Clear()

	go func() {
		for {
			ev := t.screen.PollEvent()
			if ev == nil {
				close(t.events)
				return
			}
			t.events <- ev
		}
	}()

	// After the process is stopped and continued the terminal may have
	// been redrawn by the shell.
	if sigs := contSignals(); len(sigs) > 0 {
		t.sigs = make(chan os.Signal, 1)
		signal.Notify(t.sigs, sigs...)
		go func(ch chan os.Signal) {
			for range ch {
				t.screen.Sync()
				_ = t.screen.PostEvent(tcell.NewEventInterrupt(nil))
			}
		}(t.sigs)
	}
	return nil
}

func (t *tcellTerminal) Fini() {
	if t.sigs != nil {
		signal.Stop(t.sigs)
		close(t.sigs)
		t.sigs = nil
	}
	t.screen.Fini()
}

func (t *tcellTerminal) PollEvent(timeout time.Duration) (tcell.Event, bool) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case ev, ok := <-t.events:
		if !ok {
			return nil, false
		}
		return ev, true
	case <-timer.C:
		return nil, false
	}
}

func (t *tcellTerminal) Clear()              { t.screen.Clear() }
func (t *tcellTerminal) Size() (int, int)    { return t.screen.Size() }
func (t *tcellTerminal) ShowCursor(x, y int) { t.screen.ShowCursor(x, y) }
func (t *tcellTerminal) Show()               { t.screen.Show() }

func (t *tcellTerminal) SetContent(x, y int, primary rune, combining []rune, style tcell.Style) {
	t.screen.SetContent(x, y, primary, combining, style)
}
