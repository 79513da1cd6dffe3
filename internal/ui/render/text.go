package render

import (
	"github.com/gdamore/tcell/v2"
	"github.com/kk-code-lab/thwack/internal/search"
	"github.com/kk-code-lab/thwack/internal/textutil"
)

// drawText draws text from startX on row y, one grapheme cluster per cell
// group, stopping before maxX. It returns the column after the last cluster.
func (r *Renderer) drawText(startX, y, maxX int, text string, style tcell.Style) int {
	x := startX
	for _, cluster := range textutil.Graphemes(text) {
		next, ok := r.drawCluster(x, y, maxX, cluster, style)
		if !ok {
			break
		}
		x = next
	}
	return x
}

// drawCluster draws one grapheme cluster. Clusters that could move the
// cursor or reorder text are drawn as a placeholder. The next cluster goes
// right after the cell tcell allocated, so no blank cell follows a cluster
// that tcell measures narrower than the terminal draws it.
func (r *Renderer) drawCluster(x, y, maxX int, cluster string, style tcell.Style) (int, bool) {
	cluster = textutil.SanitizeCluster(cluster)
	if x+textutil.ClusterWidth(cluster) > maxX {
		return x, false
	}

	runes := []rune(cluster)
	var combc []rune
	if len(runes) > 1 {
		combc = runes[1:]
	}
	r.screen.SetContent(x, y, runes[0], combc, style)
	return x + textutil.CellWidth(cluster), true
}

// drawChunks draws a path as alternating plain and matched runs.
func (r *Renderer) drawChunks(startX, y, maxX int, chunks []search.Chunk) int {
	x := startX
	for _, chunk := range chunks {
		style := r.theme.Text
		if chunk.Matched {
			style = r.theme.Match
		}
		x = r.drawText(x, y, maxX, chunk.Text, style)
	}
	return x
}

// fill pads row y with styled blanks from startX to maxX.
func (r *Renderer) fill(startX, y, maxX int, style tcell.Style) {
	for x := startX; x < maxX; x++ {
		r.screen.SetContent(x, y, ' ', nil, style)
	}
}
