package search

import (
	"strings"

	"github.com/kk-code-lab/thwack/internal/textutil"
)

// Ellipsis replaces the dropped head of a path that does not fit.
const Ellipsis = "..."

const ellipsisWidth = len(Ellipsis)

// Chunk is a maximal run of clusters that share a matched flag.
type Chunk struct {
	Text    string
	Matched bool
}

// Chunks splits text into runs of matched and unmatched clusters.
// positions are cluster indexes into text. When text is wider than
// maxWidth, only the longest suffix whose width is at most maxWidth-3 is
// kept, preceded by an unmatched "..." chunk.
func Chunks(text string, positions []int, maxWidth int) []Chunk {
	return chunksOf(textutil.Graphemes(text), positions, maxWidth)
}

// RelativeChunks renders the relative path for the candidate list.
func (m *MatchedPath) RelativeChunks(maxWidth int) []Chunk {
	return chunksOf(m.relGraphemes, m.relPositions, maxWidth)
}

// AbsoluteChunks renders the absolute path with absolute positions.
func (m *MatchedPath) AbsoluteChunks(maxWidth int) []Chunk {
	return chunksOf(m.absGraphemes, m.absPositions, maxWidth)
}

// TruncatedRelative is the relative path cut to width for the status line.
func (m *MatchedPath) TruncatedRelative(width int) string {
	return JoinChunks(m.RelativeChunks(width))
}

// TruncatedAbsolute is the absolute path cut to width for the status line.
func (m *MatchedPath) TruncatedAbsolute(width int) string {
	return JoinChunks(m.AbsoluteChunks(width))
}

// JoinChunks concatenates chunk texts.
func JoinChunks(chunks []Chunk) string {
	var b strings.Builder
	for _, c := range chunks {
		b.WriteString(c.Text)
	}
	return b.String()
}

func chunksOf(graphemes []string, positions []int, maxWidth int) []Chunk {
	start := 0
	var chunks []Chunk

	if totalWidth(graphemes) > maxWidth {
		budget := maxWidth - ellipsisWidth
		if budget < 0 {
			budget = 0
		}
		start = len(graphemes)
		width := 0
		for start > 0 {
			w := textutil.ClusterWidth(graphemes[start-1])
			if width+w > budget {
				break
			}
			width += w
			start--
		}
		chunks = append(chunks, Chunk{Text: Ellipsis})
	}

	matched := make(map[int]struct{}, len(positions))
	for _, p := range positions {
		if p >= start {
			matched[p-start] = struct{}{}
		}
	}

	var b strings.Builder
	current := false
	for i, g := range graphemes[start:] {
		_, isMatched := matched[i]
		if b.Len() > 0 && isMatched != current {
			chunks = append(chunks, Chunk{Text: b.String(), Matched: current})
			b.Reset()
		}
		current = isMatched
		b.WriteString(g)
	}
	if b.Len() > 0 {
		chunks = append(chunks, Chunk{Text: b.String(), Matched: current})
	}
	return chunks
}

func totalWidth(graphemes []string) int {
	width := 0
	for _, g := range graphemes {
		width += textutil.ClusterWidth(g)
	}
	return width
}
