package search

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
)

// repository locates the Git work tree that contains a starting point.
type repository struct {
	root   string // work tree root
	gitDir string // the .git directory, or the one a .git file points at
}

// discoverRepository walks up from dir to the first directory holding a
// .git directory or a .git file with a "gitdir:" line.
func discoverRepository(dir string) (*repository, bool) {
	current := filepath.Clean(dir)
	for {
		candidate := filepath.Join(current, ".git")
		if info, err := os.Stat(candidate); err == nil {
			if info.IsDir() {
				return &repository{root: current, gitDir: candidate}, true
			}
			if gitDir, ok := readGitDirFile(candidate); ok {
				if !filepath.IsAbs(gitDir) {
					gitDir = filepath.Join(current, gitDir)
				}
				return &repository{root: current, gitDir: filepath.Clean(gitDir)}, true
			}
		}

		parent := filepath.Dir(current)
		if parent == current {
			return nil, false
		}
		current = parent
	}
}

func readGitDirFile(path string) (string, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", false
	}
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if value, ok := strings.CutPrefix(line, "gitdir:"); ok {
			value = strings.TrimSpace(value)
			return value, value != ""
		}
	}
	return "", false
}

// relative converts an absolute path inside the work tree into the
// slash-separated form gitignore rules are matched against.
func (r *repository) relative(abs string) (string, bool) {
	rel, err := filepath.Rel(r.root, abs)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}
	if rel == "." {
		return "", true
	}
	return filepath.ToSlash(rel), true
}

// excludesFile reads core.excludesFile from a git config file.
func excludesFile(configPath string, baseDir string) string {
	file, err := os.Open(configPath)
	if err != nil {
		return ""
	}
	defer func() {
		_ = file.Close()
	}()

	scanner := bufio.NewScanner(file)
	inCore := false
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, ";") {
			continue
		}
		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			section := strings.ToLower(strings.Trim(line, "[] \t"))
			inCore = section == "core"
			continue
		}
		if !inCore {
			continue
		}

		key, value, found := strings.Cut(line, "=")
		if !found || !strings.EqualFold(strings.TrimSpace(key), "excludesfile") {
			continue
		}
		value = strings.Trim(strings.TrimSpace(value), `"`)
		value = expandHome(value)
		if value == "" {
			continue
		}
		if !filepath.IsAbs(value) {
			value = filepath.Join(baseDir, value)
		}
		return value
	}
	return ""
}

func expandHome(value string) string {
	if value != "~" && !strings.HasPrefix(value, "~/") {
		return value
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return value
	}
	if value == "~" {
		return home
	}
	return filepath.Join(home, value[2:])
}
