package search

import (
	"context"
	"errors"
	"slices"
	"testing"
)

type fakeSource struct {
	root  string
	paths []string
	err   error
}

func (f fakeSource) Root() string { return f.root }

func (f fakeSource) Walk(_ context.Context, fn func(path string) error) error {
	for _, p := range f.paths {
		if err := fn(p); err != nil {
			return err
		}
	}
	return f.err
}

func relatives(c *Candidates) []string {
	out := make([]string, 0, c.Len())
	for _, p := range c.Paths() {
		out = append(out, p.Relative())
	}
	return out
}

func buildFromTree(t *testing.T, withGit bool, policy IgnorePolicy, query string, capacity int) *Candidates {
	t.Helper()
	root := createTree(t, withGit)
	c, err := Build(t.Context(), newTestWalker(root, policy), query, capacity)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	return c
}

func TestBuildWithoutQuery(t *testing.T) {
	c := buildFromTree(t, true, IgnoreGit, "", 3)
	want := []string{".browserslistrc", ".editorconfig", ".env"}
	if got := relatives(c); !slices.Equal(got, want) {
		t.Fatalf("paths = %q, want %q", got, want)
	}
}

func TestBuildWithQuery(t *testing.T) {
	c := buildFromTree(t, true, IgnoreGit, "bar", 5)
	want := []string{".config/bar.toml", "lib/bar.js"}
	if got := relatives(c); !slices.Equal(got, want) {
		t.Fatalf("paths = %q, want %q", got, want)
	}
}

func TestBuildWithoutIgnores(t *testing.T) {
	c := buildFromTree(t, true, IgnoreNone, "", 100)
	got := relatives(c)
	for _, want := range []string{"log.txt", ".git/config"} {
		if !slices.Contains(got, want) {
			t.Fatalf("expected %q in %q", want, got)
		}
	}
}

func TestBuildPropagatesWalkError(t *testing.T) {
	boom := errors.New("boom")
	_, err := Build(context.Background(), fakeSource{root: "/r", paths: []string{"/r/a"}, err: boom}, "", 10)
	if !errors.Is(err, boom) {
		t.Fatalf("expected walk error, got %v", err)
	}
}

func TestBuildRanksAndTruncates(t *testing.T) {
	src := fakeSource{
		root: "/home",
		paths: []string{
			"/home/a123bc.txt",
			"/home/abc/cat.txt",
			"/home/src/abc.txt",
			"/home/abc.txt",
			"/home/zzz.md",
		},
	}
	c, err := Build(context.Background(), src, "abc.txt", 3)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	want := []string{"abc.txt", "src/abc.txt", "a123bc.txt"}
	if got := relatives(c); !slices.Equal(got, want) {
		t.Fatalf("paths = %q, want %q", got, want)
	}

	c, err = Build(context.Background(), src, "abc.txt", -1)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if c.Len() != 0 || c.SelectedIndex() != -1 {
		t.Fatalf("negative capacity should give an empty list, got %q", relatives(c))
	}
}

func TestMoveDown(t *testing.T) {
	c := buildFromTree(t, true, IgnoreGit, "", 3)
	steps := []int{1, 2, 2, 2}
	if c.SelectedIndex() != 0 {
		t.Fatalf("initial selection = %d, want 0", c.SelectedIndex())
	}
	for i, want := range steps {
		c.MoveDown()
		if got := c.SelectedIndex(); got != want {
			t.Fatalf("step %d: selection = %d, want %d", i, got, want)
		}
	}

	empty := NewCandidates(nil)
	empty.MoveDown()
	if empty.SelectedIndex() != -1 {
		t.Fatalf("empty list selection = %d, want -1", empty.SelectedIndex())
	}
}

func TestMoveUp(t *testing.T) {
	c := buildFromTree(t, true, IgnoreGit, "", 3)
	c.MoveUp()
	if c.SelectedIndex() != 0 {
		t.Fatalf("selection = %d, want 0", c.SelectedIndex())
	}
	c.MoveDown()
	c.MoveDown()
	for i, want := range []int{1, 0, 0} {
		c.MoveUp()
		if got := c.SelectedIndex(); got != want {
			t.Fatalf("step %d: selection = %d, want %d", i, got, want)
		}
	}

	empty := NewCandidates(nil)
	empty.MoveUp()
	if empty.SelectedIndex() != -1 {
		t.Fatalf("empty list selection = %d, want -1", empty.SelectedIndex())
	}
}

func TestSelected(t *testing.T) {
	c := buildFromTree(t, true, IgnoreGit, "", 3)
	if got := c.Selected().Relative(); got != ".browserslistrc" {
		t.Fatalf("selected = %q", got)
	}
	c.MoveDown()
	if got := c.Selected().Relative(); got != ".editorconfig" {
		t.Fatalf("selected = %q", got)
	}
	c.MoveDown()
	c.MoveDown()
	if got := c.Selected().Relative(); got != ".env" {
		t.Fatalf("selected = %q", got)
	}
	c.MoveUp()
	c.MoveUp()
	if got := c.Selected().Relative(); got != ".browserslistrc" {
		t.Fatalf("selected = %q", got)
	}
}

func TestSelectedWithoutMatches(t *testing.T) {
	c := buildFromTree(t, false, IgnoreGit, "ABCABC!!!!!!!!!", 3)
	if c.Selected() != nil {
		t.Fatalf("expected no selection, got %v", c.Selected())
	}
	c.MoveDown()
	c.MoveUp()
	if c.Selected() != nil {
		t.Fatalf("expected no selection after moving, got %v", c.Selected())
	}
}
