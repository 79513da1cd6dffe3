// Package query holds the editable search string and its cursor.
package query

import (
	"strings"

	"github.com/kk-code-lab/thwack/internal/textutil"
)

// Query is a sequence of grapheme clusters with an insertion cursor.
// The cursor is a cluster index in 0..Len(); column caches the display
// width of everything left of it.
type Query struct {
	graphemes []string
	cursor    int
	column    int
}

// New splits initial into clusters and places the cursor at the end.
func New(initial string) *Query {
	q := &Query{graphemes: textutil.Graphemes(initial)}
	q.cursor = len(q.graphemes)
	q.column = q.widthBefore(q.cursor)
	return q
}

// Push inserts grapheme at the cursor and returns how many columns the
// cursor moved. Text that joins a neighbouring cluster, such as a combining
// mark or one half of a flag, is merged with it and the cursor ends up after
// the merged cluster.
func (q *Query) Push(grapheme string) int {
	if grapheme == "" {
		return 0
	}
	left := strings.Join(q.graphemes[:q.cursor], "") + grapheme
	right := strings.Join(q.graphemes[q.cursor:], "")
	return q.resplit(left, right)
}

// Pop removes the cluster before the cursor. It is a no-op at position 0.
func (q *Query) Pop() int {
	if q.cursor == 0 {
		return 0
	}
	left := strings.Join(q.graphemes[:q.cursor-1], "")
	right := strings.Join(q.graphemes[q.cursor:], "")
	return q.resplit(left, right)
}

// resplit rebuilds the clusters of left+right and puts the cursor after
// every cluster that starts inside left. It returns the column delta.
func (q *Query) resplit(left, right string) int {
	q.graphemes = textutil.Graphemes(left + right)
	q.cursor = 0
	for offset := 0; q.cursor < len(q.graphemes) && offset < len(left); q.cursor++ {
		offset += len(q.graphemes[q.cursor])
	}
	previous := q.column
	q.column = q.widthBefore(q.cursor)
	return q.column - previous
}

// MoveLeft moves the cursor one cluster left, clamped at 0.
func (q *Query) MoveLeft() int {
	if q.cursor == 0 {
		return 0
	}
	q.cursor--
	delta := textutil.ClusterWidth(q.graphemes[q.cursor])
	q.column -= delta
	return -delta
}

// MoveRight moves the cursor one cluster right, clamped at Len().
func (q *Query) MoveRight() int {
	if q.cursor == len(q.graphemes) {
		return 0
	}
	delta := textutil.ClusterWidth(q.graphemes[q.cursor])
	q.cursor++
	q.column += delta
	return delta
}

// String returns the clusters joined back into text.
func (q *Query) String() string {
	return strings.Join(q.graphemes, "")
}

// Len is the number of clusters.
func (q *Query) Len() int { return len(q.graphemes) }

// CursorColumn is the display width of the text left of the cursor.
func (q *Query) CursorColumn() int { return q.column }

func (q *Query) widthBefore(idx int) int {
	width := 0
	for _, g := range q.graphemes[:idx] {
		width += textutil.ClusterWidth(g)
	}
	return width
}
