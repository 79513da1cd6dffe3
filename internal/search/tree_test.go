package search

import (
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/kk-code-lab/thwack/internal/logging"
)

var treeFiles = []string{
	".browserslistrc",
	".config/bar.toml",
	".config/ok.toml",
	".editorconfig",
	".env",
	".env.local",
	".npmrc",
	".nvmrc",
	"Dockerfile",
	"LICENSE",
	"README.md",
	"lib/a/b/c/index.js",
	"lib/a/b/c/☕.js",
	"lib/a/b/index.js",
	"lib/a/index.js",
	"lib/bar.js",
	"lib/index.js",
	"log.txt",
	"package-lock.json",
	"package.json",
	"src/a/__test__.js",
	"src/a/b/c/index.js",
	"src/a/b/index.js",
	"src/a/index.js",
	"src/a/☕.js",
	"src/foo.js",
	"src/index.js",
	"tsconfig.json",
	"☕.txt",
}

// isolateGitEnv keeps the user's global git configuration out of a test.
func isolateGitEnv(t *testing.T) {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
}

func writeFile(t *testing.T, path string, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// createTree lays out a small project. With withGit it also creates a
// minimal .git directory so the tree is treated as a repository.
func createTree(t *testing.T, withGit bool) string {
	t.Helper()
	isolateGitEnv(t)

	root := t.TempDir()
	writeFile(t, filepath.Join(root, ".gitignore"), "log.txt")
	for _, rel := range treeFiles {
		writeFile(t, filepath.Join(root, filepath.FromSlash(rel)), "")
	}
	if withGit {
		writeFile(t, filepath.Join(root, ".git", "config"), "[core]\n\tbare = false\n")
		writeFile(t, filepath.Join(root, ".git", "HEAD"), "ref: refs/heads/main\n")
	}

	resolved, err := ResolveStartingPoint(root)
	if err != nil {
		t.Fatalf("resolve %s: %v", root, err)
	}
	return resolved
}

func walkRelative(t *testing.T, w *Walker) []string {
	t.Helper()
	var out []string
	err := w.Walk(t.Context(), func(path string) error {
		rel, err := filepath.Rel(w.Root(), path)
		if err != nil {
			t.Fatalf("rel %s: %v", path, err)
		}
		out = append(out, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		t.Fatalf("walk error: %v", err)
	}
	slices.Sort(out)
	return out
}

func newTestWalker(root string, policy IgnorePolicy) *Walker {
	return NewWalker(root, policy, logging.Discard())
}
