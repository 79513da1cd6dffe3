package app

import (
	"context"
	"log/slog"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/kk-code-lab/thwack/internal/apperr"
	"github.com/kk-code-lab/thwack/internal/config"
	"github.com/kk-code-lab/thwack/internal/query"
	"github.com/kk-code-lab/thwack/internal/search"
	"github.com/kk-code-lab/thwack/internal/ui/input"
	"github.com/kk-code-lab/thwack/internal/ui/render"
)

type sessionState int

const (
	stateReady sessionState = iota
	stateQueryChanged
	statePathsChanged
	stateSelectionChanged
)

func (s sessionState) String() string {
	switch s {
	case stateQueryChanged:
		return "query_changed"
	case statePathsChanged:
		return "paths_changed"
	case stateSelectionChanged:
		return "selection_changed"
	default:
		return "ready"
	}
}

// OutcomeKind says how a session ended.
type OutcomeKind int

const (
	// OutcomeQuit ends the run without doing anything.
	OutcomeQuit OutcomeKind = iota
	// OutcomeInvoke hands Path to the configured command.
	OutcomeInvoke
	// OutcomeCopy means Path was copied to the clipboard, or Err says why not.
	OutcomeCopy
)

// Outcome is what the application does once the terminal is restored.
type Outcome struct {
	Kind OutcomeKind
	Path string
	Err  error
}

// session owns the query, the candidates and the terminal for one
// interactive run.
type session struct {
	term       Terminal
	renderer   *render.Renderer
	source     search.PathSource
	clipboard  Clipboard
	logger     *slog.Logger
	statusLine config.StatusLine
	poll       time.Duration

	query      *query.Query
	candidates *search.Candidates
	state      sessionState

	// searchPending is set by query edits and cleared by the rebuild that
	// runs once input has been idle for one poll interval.
	searchPending bool
	rebuildNow    bool
	redraw        bool
}

type sessionConfig struct {
	prefs     config.Preferences
	source    search.PathSource
	term      Terminal
	clipboard Clipboard
	logger    *slog.Logger
}

func newSession(cfg sessionConfig) *session {
	poll := cfg.prefs.PollInterval
	if poll <= 0 {
		poll = config.DefaultPollInterval
	}
	return &session{
		term:       cfg.term,
		renderer:   render.NewRenderer(cfg.term),
		source:     cfg.source,
		clipboard:  cfg.clipboard,
		logger:     cfg.logger,
		statusLine: cfg.prefs.StatusLine,
		poll:       poll,
		query:      query.New(cfg.prefs.Query),
		candidates: search.NewCandidates(nil),
		state:      stateQueryChanged,
		rebuildNow: true,
	}
}

// run drives the loop until the user invokes, copies or quits.
func (s *session) run(ctx context.Context) (Outcome, error) {
	for {
		if err := ctx.Err(); err != nil {
			return Outcome{Kind: OutcomeQuit}, err
		}

		if s.rebuildNow {
			if err := s.rebuild(ctx); err != nil {
				return Outcome{}, err
			}
		}
		if s.state != stateReady || s.redraw {
			s.render()
			s.state = stateReady
			s.redraw = false
		}

		ev, ok := s.term.PollEvent(s.poll)
		if !ok {
			if s.searchPending {
				s.rebuildNow = true
			}
			continue
		}
		if _, resumed := ev.(*tcell.EventInterrupt); resumed {
			s.redraw = true
			continue
		}

		action := input.Translate(ev)
		if action == nil {
			continue
		}
		s.logger.Debug("action", "type", actionName(action), "state", s.state.String(), "query", s.query.String())
		if outcome, done := s.handleAction(action); done {
			return outcome, nil
		}
	}
}

func (s *session) handleAction(action input.Action) (Outcome, bool) {
	switch a := action.(type) {
	case input.QueryPushAction:
		s.query.Push(string(a.Char))
		s.queryChanged()
	case input.QueryPopAction:
		s.query.Pop()
		s.queryChanged()
	case input.SelectUpAction:
		s.candidates.MoveUp()
		s.state = stateSelectionChanged
	case input.SelectDownAction:
		s.candidates.MoveDown()
		s.state = stateSelectionChanged
	case input.CursorLeftAction:
		s.query.MoveLeft()
		s.redraw = true
	case input.CursorRightAction:
		s.query.MoveRight()
		s.redraw = true
	case input.InvokeAction:
		selected := s.candidates.Selected()
		if selected == nil {
			s.logger.Debug("nothing selected to invoke")
			return Outcome{}, false
		}
		path := selected.Absolute()
		if s.statusLine == config.StatusRelative {
			path = selected.Relative()
		}
		return Outcome{Kind: OutcomeInvoke, Path: path}, true
	case input.CopyAbsolutePathAction:
		return s.copySelection(func(m *search.MatchedPath) string { return m.Absolute() }), true
	case input.CopyRelativePathAction:
		return s.copySelection(func(m *search.MatchedPath) string { return m.Relative() }), true
	case input.QuitAction:
		return Outcome{Kind: OutcomeQuit}, true
	case input.ResizeAction:
		s.logger.Debug("terminal resized", "width", a.Width, "height", a.Height)
		s.rebuildNow = true
	}
	return Outcome{}, false
}

func (s *session) queryChanged() {
	s.state = stateQueryChanged
	s.searchPending = true
}

// copySelection copies the selected path. Failures end the session like a
// successful copy; the error travels in the outcome.
func (s *session) copySelection(pick func(*search.MatchedPath) string) Outcome {
	selected := s.candidates.Selected()
	if selected == nil {
		return Outcome{Kind: OutcomeQuit}
	}
	path := pick(selected)
	outcome := Outcome{Kind: OutcomeCopy, Path: path}

	if s.clipboard == nil {
		outcome.Err = apperr.Clipboard("the clipboard is not available")
	} else if err := s.clipboard.SetContents(path); err != nil {
		outcome.Err = err
	}
	if outcome.Err != nil {
		s.logger.Warn("copy failed", "path", path, "error", outcome.Err)
	} else {
		s.logger.Info("copied path", "path", path)
	}
	return outcome
}

// rebuild searches again from scratch with the current query and the
// capacity the terminal has room for.
func (s *session) rebuild(ctx context.Context) error {
	s.rebuildNow = false
	s.searchPending = false

	_, rows := s.term.Size()
	capacity := visibleCapacity(rows, s.statusLine)
	started := time.Now()
	candidates, err := search.Build(ctx, s.source, s.query.String(), capacity)
	if err != nil {
		return err
	}
	s.candidates = candidates
	s.state = statePathsChanged
	s.logger.Info("candidates rebuilt",
		"query", s.query.String(),
		"capacity", capacity,
		"visible", candidates.Len(),
		"elapsed", time.Since(started))
	return nil
}

func (s *session) render() {
	s.renderer.Render(render.View{
		Query:        s.query.String(),
		CursorColumn: s.query.CursorColumn(),
		Candidates:   s.candidates.Paths(),
		Selected:     s.candidates.SelectedIndex(),
		StatusLine:   s.statusLine,
	})
}

// visibleCapacity is the number of candidate rows: everything but the
// query line, the status line and the help footer.
func visibleCapacity(rows int, statusLine config.StatusLine) int {
	reserved := 3
	if statusLine == config.StatusNone {
		reserved = 2
	}
	return max(rows-reserved, 0)
}

func actionName(action input.Action) string {
	switch action.(type) {
	case input.QueryPushAction:
		return "query_push"
	case input.QueryPopAction:
		return "query_pop"
	case input.SelectUpAction:
		return "up"
	case input.SelectDownAction:
		return "down"
	case input.CursorLeftAction:
		return "left"
	case input.CursorRightAction:
		return "right"
	case input.InvokeAction:
		return "invoke"
	case input.CopyAbsolutePathAction:
		return "copy_absolute"
	case input.CopyRelativePathAction:
		return "copy_relative"
	case input.QuitAction:
		return "quit"
	case input.ResizeAction:
		return "resize"
	default:
		return "unknown"
	}
}
