package search

import (
	"errors"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/kk-code-lab/thwack/internal/apperr"
)

var errNotDirectory = errors.New("not a directory")

// ResolveStartingPoint turns dir into an absolute path with symlinks
// resolved. It fails when dir does not exist, is not a readable
// directory, or is not valid UTF-8 once resolved.
func ResolveStartingPoint(dir string) (string, error) {
	if !utf8.ValidString(dir) {
		return "", apperr.InvalidUnicode(dir)
	}

	abs, err := canonicalDir(dir)
	if err != nil {
		return "", apperr.Args("The specified starting point %q cannot be normalized. Perhaps, it might not exist or cannot be read.", dir)
	}
	if !utf8.ValidString(abs) {
		return "", apperr.InvalidUnicode(abs)
	}
	return abs, nil
}

func canonicalDir(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	abs, err = filepath.EvalSymlinks(abs)
	if err != nil {
		return "", err
	}

	f, err := os.Open(abs)
	if err != nil {
		return "", err
	}
	defer func() {
		_ = f.Close()
	}()
	info, err := f.Stat()
	if err != nil {
		return "", err
	}
	if !info.IsDir() {
		return "", errNotDirectory
	}
	return abs, nil
}
