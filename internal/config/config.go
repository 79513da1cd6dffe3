// Package config assembles the preferences of a run from defaults, the
// optional YAML config file, the environment and the command line.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"time"

	"github.com/google/shlex"
	"github.com/kk-code-lab/thwack/internal/apperr"
	"gopkg.in/yaml.v3"
)

const (
	DefaultStartingPoint = "."
	DefaultPollInterval  = 300 * time.Millisecond
)

// Environment variables consulted after the config file.
const (
	EnvConfig      = "THWACK_CONFIG"
	EnvExec        = "THWACK_EXEC"
	EnvStatusLine  = "THWACK_STATUS_LINE"
	EnvLogFile     = "THWACK_LOG_FILE"
	EnvNoGitignore = "THWACK_NO_GITIGNORE"
)

// Preferences is everything a session needs to know about the user's choices.
type Preferences struct {
	StartingPoint string        `yaml:"starting_point"`
	Query         string        `yaml:"-"`
	Exec          string        `yaml:"exec"`
	StatusLine    StatusLine    `yaml:"status_line"`
	LogFile       string        `yaml:"log_file"`
	Gitignore     bool          `yaml:"gitignore"`
	PollInterval  time.Duration `yaml:"poll_interval"`
}

// Defaults returns the built-in preferences.
func Defaults() Preferences {
	return Preferences{
		StartingPoint: DefaultStartingPoint,
		Exec:          defaultExec(runtime.GOOS),
		StatusLine:    StatusAbsolute,
		Gitignore:     true,
		PollInterval:  DefaultPollInterval,
	}
}

func defaultExec(goos string) string {
	if goos == "windows" {
		return "notepad"
	}
	return "cat"
}

// Command splits Exec into argv using shell quoting rules. A leading "~" in
// the program name is expanded to the home directory.
func (p Preferences) Command() ([]string, error) {
	argv, err := shlex.Split(p.Exec)
	if err != nil {
		return nil, apperr.Args("cannot parse the exec command %q: %w", p.Exec, err)
	}
	if len(argv) == 0 {
		return nil, apperr.Args("the exec command is empty")
	}
	argv[0] = expandUserPath(argv[0])
	return argv, nil
}

// LoadFile overlays the YAML document at path onto prefs. Keys missing from
// the file keep their current values.
func LoadFile(path string, prefs *Preferences) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, prefs); err != nil {
		return apperr.Args("invalid config file %q: %w", path, err)
	}
	return nil
}

// DefaultConfigPath is $XDG_CONFIG_HOME/thwack/config.yaml, falling back to
// ~/.config when XDG_CONFIG_HOME is unset.
func DefaultConfigPath(getenv func(string) string) string {
	base := getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil || home == "" {
			return ""
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "thwack", "config.yaml")
}

// loadConfigFile applies the explicit config file when given, then
// $THWACK_CONFIG, then the default location. Only the default location may
// be absent.
func loadConfigFile(explicit string, getenv func(string) string, prefs *Preferences) error {
	path := explicit
	if path == "" {
		path = getenv(EnvConfig)
	}
	if path != "" {
		if err := LoadFile(path, prefs); err != nil {
			return wrapLoadError(path, err)
		}
		return nil
	}

	path = DefaultConfigPath(getenv)
	if path == "" {
		return nil
	}
	if err := LoadFile(path, prefs); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return wrapLoadError(path, err)
	}
	return nil
}

func wrapLoadError(path string, err error) error {
	if apperr.KindOf(err) != "" {
		return err
	}
	return apperr.IO("cannot read config file %q: %w", path, err)
}

func applyEnv(getenv func(string) string, prefs *Preferences) error {
	if v := getenv(EnvExec); v != "" {
		prefs.Exec = v
	}
	if v := getenv(EnvStatusLine); v != "" {
		if err := prefs.StatusLine.Set(v); err != nil {
			return apperr.Args("%s %w", EnvStatusLine, err)
		}
	}
	if v := getenv(EnvLogFile); v != "" {
		prefs.LogFile = v
	}
	if v := getenv(EnvNoGitignore); v != "" {
		disabled, err := strconv.ParseBool(v)
		if err != nil {
			return apperr.Args("%s must be a boolean: %q was given", EnvNoGitignore, v)
		}
		prefs.Gitignore = !disabled
	}
	return nil
}

func expandUserPath(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return path
	}
	if len(path) == 1 {
		return home
	}
	if sep := path[1]; sep != '/' && sep != '\\' {
		return path
	}
	return filepath.Join(home, path[2:])
}

func (p Preferences) String() string {
	return fmt.Sprintf("starting_point=%q exec=%q status_line=%s gitignore=%t log_file=%q",
		p.StartingPoint, p.Exec, p.StatusLine, p.Gitignore, p.LogFile)
}
