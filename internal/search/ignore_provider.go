package search

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
)

// ignoreProvider builds the gitignore matcher for each directory of a
// repository, reusing the parent's matcher as the starting set.
type ignoreProvider struct {
	repo   *repository
	logger *slog.Logger
	cache  map[string]*GitignoreMatcher // keyed by slash-separated dir relative to repo.root, "" for the root
}

func newIgnoreProvider(repo *repository, logger *slog.Logger) *ignoreProvider {
	p := &ignoreProvider{
		repo:   repo,
		logger: logger,
		cache:  make(map[string]*GitignoreMatcher),
	}

	// Lowest priority first so later files can override with negations.
	base := NewGitignoreMatcher()
	p.addPatternFile(base, p.globalExcludesFile(), "")
	p.addPatternFile(base, filepath.Join(repo.gitDir, "info", "exclude"), "")
	p.addPatternFile(base, filepath.Join(repo.root, ".gitignore"), "")
	p.cache[""] = base
	return p
}

// MatcherFor returns the rules that apply to entries of absDir.
func (p *ignoreProvider) MatcherFor(absDir string) *GitignoreMatcher {
	key, ok := p.repo.relative(absDir)
	if !ok {
		return nil
	}
	return p.matcherForKey(key)
}

func (p *ignoreProvider) matcherForKey(key string) *GitignoreMatcher {
	if matcher, ok := p.cache[key]; ok {
		return matcher
	}

	parent := path.Dir(key)
	if parent == "." {
		parent = ""
	}
	child := p.matcherForKey(parent).Clone()
	p.addPatternFile(child, filepath.Join(p.repo.root, filepath.FromSlash(key), ".gitignore"), key)

	p.cache[key] = child
	return child
}

// globalExcludesFile follows git: core.excludesFile from the repository or
// the user's config, else $XDG_CONFIG_HOME/git/ignore.
func (p *ignoreProvider) globalExcludesFile() string {
	if file := excludesFile(filepath.Join(p.repo.gitDir, "config"), p.repo.root); file != "" {
		return file
	}

	home, _ := os.UserHomeDir()
	if home != "" {
		if file := excludesFile(filepath.Join(home, ".gitconfig"), home); file != "" {
			return file
		}
	}

	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "git", "ignore")
	}
	if home == "" {
		return ""
	}
	return filepath.Join(home, ".config", "git", "ignore")
}

func (p *ignoreProvider) addPatternFile(matcher *GitignoreMatcher, filePath string, base string) {
	if filePath == "" {
		return
	}
	data, err := os.ReadFile(filePath)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			p.logger.Warn("cannot read ignore file", "path", filePath, "error", err)
		}
		return
	}
	matcher.AddPatterns(string(data), base)
}
