package app

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/kk-code-lab/thwack/internal/config"
	"github.com/kk-code-lab/thwack/internal/logging"
)

// timeout in a script stands for a poll that waited without input.
var timeout tcell.Event

// scriptedTerminal replays events and records every frame shown.
type scriptedTerminal struct {
	tcell.SimulationScreen
	width, height int
	script        []tcell.Event
	frames        [][]string
	cursors       []int
	initCalls     int
	finiCalls     int
	initErr       error
}

func newScriptedTerminal(width, height int, script ...tcell.Event) *scriptedTerminal {
	return &scriptedTerminal{
		SimulationScreen: tcell.NewSimulationScreen("UTF-8"),
		width:            width,
		height:           height,
		script:           script,
	}
}

func (s *scriptedTerminal) Init() error {
	s.initCalls++
	if s.initErr != nil {
		return s.initErr
	}
	if err := s.SimulationScreen.Init(); err != nil {
		return err
	}
	s.SimulationScreen.SetSize(s.width, s.height)
	return nil
}

func (s *scriptedTerminal) Fini() {
	s.finiCalls++
	s.SimulationScreen.Fini()
}

// PollEvent returns the next scripted event. Once the script is used up
// it answers with Esc so a broken session cannot spin forever.
func (s *scriptedTerminal) PollEvent(time.Duration) (tcell.Event, bool) {
	if len(s.script) == 0 {
		return key(tcell.KeyEscape), true
	}
	ev := s.script[0]
	s.script = s.script[1:]
	if ev == nil {
		return nil, false
	}
	if resize, ok := ev.(*tcell.EventResize); ok {
		w, h := resize.Size()
		s.width, s.height = w, h
		s.SimulationScreen.SetSize(w, h)
	}
	return ev, true
}

func (s *scriptedTerminal) Show() {
	s.SimulationScreen.Show()
	w, h := s.SimulationScreen.Size()
	frame := make([]string, h)
	for y := 0; y < h; y++ {
		var b strings.Builder
		for x := 0; x < w; {
			mainc, combc, _, width := s.SimulationScreen.GetContent(x, y)
			if mainc == 0 {
				mainc = ' '
			}
			b.WriteRune(mainc)
			for _, c := range combc {
				b.WriteRune(c)
			}
			x += max(width, 1)
		}
		frame[y] = strings.TrimRight(b.String(), " ")
	}
	s.frames = append(s.frames, frame)
	cx, _, _ := s.SimulationScreen.GetCursor()
	s.cursors = append(s.cursors, cx)
}

func (s *scriptedTerminal) lastFrame(t *testing.T) []string {
	t.Helper()
	if len(s.frames) == 0 {
		t.Fatalf("no frame was shown")
	}
	return s.frames[len(s.frames)-1]
}

type recordingClipboard struct {
	contents []string
	err      error
}

func (c *recordingClipboard) SetContents(text string) error {
	if c.err != nil {
		return c.err
	}
	c.contents = append(c.contents, text)
	return nil
}

type recordingInvoker struct {
	calls int
	argv  []string
	path  string
	err   error
}

func (i *recordingInvoker) Invoke(argv []string, path string) error {
	i.calls++
	i.argv = argv
	i.path = path
	return i.err
}

func key(k tcell.Key) tcell.Event {
	return tcell.NewEventKey(k, 0, tcell.ModNone)
}

func ctrl(k tcell.Key) tcell.Event {
	return tcell.NewEventKey(k, 0, tcell.ModCtrl)
}

func typed(text string) []tcell.Event {
	var events []tcell.Event
	for _, r := range text {
		events = append(events, tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone))
	}
	return events
}

func script(parts ...any) []tcell.Event {
	var out []tcell.Event
	for _, part := range parts {
		switch p := part.(type) {
		case []tcell.Event:
			out = append(out, p...)
		case tcell.Event:
			out = append(out, p)
		case nil:
			out = append(out, timeout)
		}
	}
	return out
}

var projectFiles = []string{
	".browserslistrc",
	".config/bar.toml",
	".editorconfig",
	".env",
	"lib/bar.js",
	"log.txt",
	"src/foo.js",
}

// newProject creates a small repository that ignores log.txt and returns
// its resolved root.
func newProject(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))

	root := t.TempDir()
	files := map[string]string{
		".gitignore": "log.txt\n",
		".git/HEAD":  "ref: refs/heads/main\n",
	}
	for _, f := range projectFiles {
		files[f] = ""
	}
	for rel, content := range files {
		full := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	resolved, err := filepath.EvalSymlinks(root)
	if err != nil {
		t.Fatalf("eval symlinks: %v", err)
	}
	return resolved
}

func testPreferences(root string) config.Preferences {
	prefs := config.Defaults()
	prefs.StartingPoint = root
	prefs.Exec = "vim -R"
	return prefs
}

type harness struct {
	app       *Application
	term      *scriptedTerminal
	clipboard *recordingClipboard
	invoker   *recordingInvoker
	errOut    *strings.Builder
}

func newHarness(t *testing.T, prefs config.Preferences, term *scriptedTerminal) *harness {
	t.Helper()
	h := &harness{
		term:      term,
		clipboard: &recordingClipboard{},
		invoker:   &recordingInvoker{},
		errOut:    &strings.Builder{},
	}
	app, err := NewApplication(prefs, logging.Discard(),
		WithTerminal(term),
		WithClipboard(h.clipboard),
		WithInvoker(h.invoker),
		WithErrorOutput(h.errOut),
	)
	if err != nil {
		t.Fatalf("NewApplication: %v", err)
	}
	h.app = app
	return h
}

func (h *harness) run(t *testing.T) error {
	t.Helper()
	err := h.app.Run(t.Context())
	if h.term.finiCalls != 1 {
		t.Fatalf("terminal should be restored exactly once, got %d", h.term.finiCalls)
	}
	return err
}
