package search

import (
	"context"
	"slices"
)

// Candidates is the ranked, visible slice of matches plus the selection.
// A non-empty list always has a selection; an empty one never does.
type Candidates struct {
	paths    []*MatchedPath
	selected int
}

// Build walks source, keeps the paths that match query, ranks them with
// Compare and keeps at most capacity of them. Nothing carries over from a
// previous build.
func Build(ctx context.Context, source PathSource, query string, capacity int) (*Candidates, error) {
	root := source.Root()
	var paths []*MatchedPath
	err := source.Walk(ctx, func(path string) error {
		if m, ok := Match(query, root, path); ok {
			paths = append(paths, m)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slices.SortFunc(paths, Compare)
	if capacity < 0 {
		capacity = 0
	}
	if len(paths) > capacity {
		paths = paths[:capacity]
	}
	return NewCandidates(paths), nil
}

// NewCandidates wraps already ranked paths and selects the first one.
func NewCandidates(paths []*MatchedPath) *Candidates {
	c := &Candidates{paths: paths, selected: -1}
	if len(paths) > 0 {
		c.selected = 0
	}
	return c
}

// Paths returns the visible candidates in rank order.
func (c *Candidates) Paths() []*MatchedPath { return c.paths }

func (c *Candidates) Len() int { return len(c.paths) }

// SelectedIndex is the selected row, or -1 for an empty list.
func (c *Candidates) SelectedIndex() int { return c.selected }

// Selected returns the selected path, or nil for an empty list.
func (c *Candidates) Selected() *MatchedPath {
	if c.selected < 0 || c.selected >= len(c.paths) {
		return nil
	}
	return c.paths[c.selected]
}

// MoveUp selects the previous row, stopping at the first.
func (c *Candidates) MoveUp() {
	if len(c.paths) == 0 {
		return
	}
	if c.selected > 0 {
		c.selected--
	}
}

// MoveDown selects the next row, stopping at the last.
func (c *Candidates) MoveDown() {
	if len(c.paths) == 0 {
		return
	}
	if c.selected < 0 {
		c.selected = 0
		return
	}
	if c.selected < len(c.paths)-1 {
		c.selected++
	}
}
