package search

import (
	"path"
	"strings"
)

// GitignoreMatcher holds gitignore rules in the order they were read.
// The last rule that matches a path decides whether it is ignored.
type GitignoreMatcher struct {
	rules []gitignoreRule
}

type gitignoreRule struct {
	segments []string // pattern split on "/", "**" kept as its own segment
	negation bool     // "!pattern"
	dirOnly  bool     // "pattern/"
	anchored bool     // contains a "/" before its last character
	base     string   // directory of the file the rule came from, "" for the repository root
}

func NewGitignoreMatcher() *GitignoreMatcher {
	return &GitignoreMatcher{}
}

// Clone copies the matcher so a subdirectory can extend it without
// touching the rules its parent uses.
func (gm *GitignoreMatcher) Clone() *GitignoreMatcher {
	clone := NewGitignoreMatcher()
	if gm != nil && len(gm.rules) > 0 {
		clone.rules = make([]gitignoreRule, len(gm.rules))
		copy(clone.rules, gm.rules)
	}
	return clone
}

// AddPatterns parses gitignore content. base is the slash-separated
// directory, relative to the repository root, that the rules apply to.
func (gm *GitignoreMatcher) AddPatterns(content string, base string) {
	base = strings.Trim(base, "/")
	if base == "." {
		base = ""
	}
	for _, line := range strings.Split(content, "\n") {
		if rule, ok := parseGitignoreLine(line, base); ok {
			gm.rules = append(gm.rules, rule)
		}
	}
}

func parseGitignoreLine(line string, base string) (gitignoreRule, bool) {
	line = strings.TrimSuffix(line, "\r")
	line = trimTrailingSpaces(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return gitignoreRule{}, false
	}

	rule := gitignoreRule{base: base}
	if strings.HasPrefix(line, "!") {
		rule.negation = true
		line = line[1:]
	} else if strings.HasPrefix(line, `\!`) || strings.HasPrefix(line, `\#`) {
		line = line[1:]
	}

	if strings.HasSuffix(line, "/") {
		rule.dirOnly = true
		line = strings.TrimRight(line, "/")
	}
	if strings.Contains(line, "/") {
		rule.anchored = true
		line = strings.TrimPrefix(line, "/")
	}
	if line == "" {
		return gitignoreRule{}, false
	}

	for _, seg := range strings.Split(line, "/") {
		if seg == "" {
			continue
		}
		if strings.Contains(seg, "**") && seg != "**" {
			// "**" inside a segment behaves like "*".
			seg = strings.ReplaceAll(seg, "**", "*")
		}
		rule.segments = append(rule.segments, strings.ReplaceAll(seg, "[!", "[^"))
	}
	return rule, len(rule.segments) > 0
}

// trimTrailingSpaces drops unescaped trailing spaces.
func trimTrailingSpaces(line string) string {
	i := len(line) - 1
	for i >= 0 && line[i] == ' ' {
		backslashes := 0
		for j := i - 1; j >= 0 && line[j] == '\\'; j-- {
			backslashes++
		}
		if backslashes%2 == 1 {
			break
		}
		i--
	}
	return line[:i+1]
}

// MatchWithType reports whether rel, a slash-separated path relative to the
// repository root, is ignored.
func (gm *GitignoreMatcher) MatchWithType(rel string, isDir bool) bool {
	if gm == nil {
		return false
	}
	rel = strings.Trim(rel, "/")
	ignored := false
	for i := range gm.rules {
		if gm.rules[i].matches(rel, isDir) {
			ignored = !gm.rules[i].negation
		}
	}
	return ignored
}

func (r *gitignoreRule) matches(rel string, isDir bool) bool {
	if r.dirOnly && !isDir {
		return false
	}
	if r.base != "" {
		if !strings.HasPrefix(rel, r.base+"/") {
			return false
		}
		rel = rel[len(r.base)+1:]
	}
	if rel == "" {
		return false
	}

	if !r.anchored {
		name := rel
		if idx := strings.LastIndexByte(rel, '/'); idx >= 0 {
			name = rel[idx+1:]
		}
		return globMatch(r.segments[0], name)
	}
	return matchSegments(r.segments, strings.Split(rel, "/"))
}

func matchSegments(pattern, parts []string) bool {
	for len(pattern) > 0 {
		if pattern[0] == "**" {
			rest := pattern[1:]
			if len(rest) == 0 {
				// "dir/**" matches everything inside dir but not dir itself.
				return len(parts) > 0
			}
			for i := 0; i <= len(parts); i++ {
				if matchSegments(rest, parts[i:]) {
					return true
				}
			}
			return false
		}
		if len(parts) == 0 || !globMatch(pattern[0], parts[0]) {
			return false
		}
		pattern = pattern[1:]
		parts = parts[1:]
	}
	return len(parts) == 0
}

func globMatch(pattern, name string) bool {
	ok, err := path.Match(pattern, name)
	return err == nil && ok
}
