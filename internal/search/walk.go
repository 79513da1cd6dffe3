package search

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/kk-code-lab/thwack/internal/apperr"
)

// IgnorePolicy selects which files the walker leaves out.
type IgnorePolicy int

const (
	// IgnoreGit skips .git directories and everything Git ignores, when the
	// starting point is inside a repository.
	IgnoreGit IgnorePolicy = iota
	// IgnoreNone yields every file.
	IgnoreNone
)

// PathSource yields the absolute paths of candidate files below Root.
type PathSource interface {
	Root() string
	Walk(ctx context.Context, fn func(path string) error) error
}

// Walker lists files breadth-first. Directory symlinks are not followed.
// Entries that cannot be read are logged and skipped; only a failure to
// read the root itself is returned.
type Walker struct {
	root   string
	policy IgnorePolicy
	logger *slog.Logger
}

func NewWalker(root string, policy IgnorePolicy, logger *slog.Logger) *Walker {
	return &Walker{root: root, policy: policy, logger: logger}
}

func (w *Walker) Root() string { return w.root }

func (w *Walker) Walk(ctx context.Context, fn func(path string) error) error {
	if ctx == nil {
		ctx = context.Background()
	}

	var (
		repo    *repository
		ignores *ignoreProvider
	)
	if w.policy == IgnoreGit {
		var ok bool
		if repo, ok = discoverRepository(w.root); ok {
			ignores = newIgnoreProvider(repo, w.logger)
		} else {
			w.logger.Info("starting point is not inside a Git repository", "root", w.root)
		}
	}

	type dirNode struct {
		absPath string
		matcher *GitignoreMatcher
	}

	queue := []dirNode{{absPath: w.root}}
	if ignores != nil {
		queue[0].matcher = ignores.MatcherFor(w.root)
	}

	for len(queue) > 0 {
		if err := ctx.Err(); err != nil {
			return err
		}

		node := queue[0]
		queue = queue[1:]

		entries, err := os.ReadDir(node.absPath)
		if err != nil {
			if node.absPath == w.root {
				return apperr.IO("cannot read the starting point %q: %w", w.root, err)
			}
			w.logger.Warn("cannot read directory", "path", node.absPath, "error", err)
			continue
		}

		for _, entry := range entries {
			if err := ctx.Err(); err != nil {
				return err
			}

			name := entry.Name()
			fullPath := filepath.Join(node.absPath, name)
			if !utf8.ValidString(name) {
				w.logger.Warn("skipping path that is not valid unicode", "path", fullPath)
				continue
			}

			isDir, include := w.classify(entry, fullPath)
			if !include {
				continue
			}

			if repo != nil {
				// Worktrees and submodules have a .git file instead of a directory.
				if name == ".git" {
					continue
				}
				if rel, ok := repo.relative(fullPath); ok && node.matcher.MatchWithType(rel, isDir) {
					continue
				}
			}

			if isDir {
				child := dirNode{absPath: fullPath}
				if ignores != nil {
					child.matcher = ignores.MatcherFor(fullPath)
				}
				queue = append(queue, child)
				continue
			}

			if err := fn(fullPath); err != nil {
				return err
			}
		}
	}

	return nil
}

// classify reports whether entry is a directory to descend into and
// whether it should be considered at all. Symlinks to files count as
// files; symlinks to directories and broken symlinks are skipped.
func (w *Walker) classify(entry fs.DirEntry, fullPath string) (isDir bool, include bool) {
	if entry.Type()&fs.ModeSymlink == 0 {
		return entry.IsDir(), true
	}

	info, err := os.Stat(fullPath)
	if err != nil {
		w.logger.Warn("skipping broken symlink", "path", fullPath, "error", err)
		return false, false
	}
	if info.IsDir() {
		w.logger.Debug("not following directory symlink", "path", fullPath)
		return false, false
	}
	return false, true
}
