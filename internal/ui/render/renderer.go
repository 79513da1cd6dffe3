package render

import (
	"github.com/gdamore/tcell/v2"
	"github.com/kk-code-lab/thwack/internal/config"
	"github.com/kk-code-lab/thwack/internal/search"
)

// Prompt precedes the query on the first row.
const Prompt = "Search: "

// NoMatchesMessage fills the status line when nothing matches.
const NoMatchesMessage = "No matching files found."

// Surface is the part of a terminal screen the renderer draws on.
// tcell.Screen satisfies it.
type Surface interface {
	Clear()
	Size() (width, height int)
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
	ShowCursor(x, y int)
	Show()
}

// View is everything one frame shows.
type View struct {
	Query        string
	CursorColumn int
	Candidates   []*search.MatchedPath
	Selected     int // -1 when nothing is selected
	StatusLine   config.StatusLine
}

// selectedPath returns the highlighted candidate, or nil.
func (v View) selectedPath() *search.MatchedPath {
	if v.Selected < 0 || v.Selected >= len(v.Candidates) {
		return nil
	}
	return v.Candidates[v.Selected]
}

// Renderer draws frames onto a Surface.
type Renderer struct {
	screen Surface
	theme  ColorTheme
}

// NewRenderer creates a new renderer
func NewRenderer(screen Surface) *Renderer {
	return &Renderer{
		screen: screen,
		theme:  GetColorTheme(),
	}
}

// Render clears the surface and draws a full frame: the query line, the
// candidate rows, the status line, the key hints, and the cursor.
func (r *Renderer) Render(view View) {
	r.screen.Clear()

	w, h := r.screen.Size()

	r.drawQuery(view, w)
	r.drawCandidates(view, w, h)
	r.drawStatusLine(view, w, h)
	if h > 0 {
		r.drawFooterHelp(h-1, w)
	}
	r.screen.ShowCursor(len(Prompt)+view.CursorColumn, 0)

	r.screen.Show()
}

func (r *Renderer) drawQuery(view View, w int) {
	x := r.drawText(0, 0, w, Prompt, r.theme.Prompt)
	r.drawText(x, 0, w, view.Query, r.theme.Text)
}

// drawCandidates draws one row per candidate below the query line. The
// selected row gets a "> " marker, the others two blanks.
func (r *Renderer) drawCandidates(view View, w, h int) {
	budget := max(w-2, 0)
	for i, candidate := range view.Candidates {
		y := 1 + i
		if y >= h {
			break
		}

		marker, style := "  ", r.theme.Text
		if i == view.Selected {
			marker, style = "> ", r.theme.Selection
		}
		x := r.drawText(0, y, w, marker, style)
		r.drawChunks(x, y, w, candidate.RelativeChunks(budget))
	}
}

// drawStatusLine shows the selected path, truncated from the left, on the
// second to last row.
func (r *Renderer) drawStatusLine(view View, w, h int) {
	if view.StatusLine == config.StatusNone || h < 2 {
		return
	}

	var message string
	selected := view.selectedPath()
	switch {
	case selected == nil:
		message = NoMatchesMessage
	case view.StatusLine == config.StatusRelative:
		message = selected.TruncatedRelative(w)
	default:
		message = selected.TruncatedAbsolute(w)
	}

	y := h - 2
	x := r.drawText(0, y, w, message, r.theme.Status)
	r.fill(x, y, w, r.theme.Status)
}
