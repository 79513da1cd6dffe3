package app

import (
	"errors"
	"os/exec"
	"strings"
	"syscall"

	"github.com/kk-code-lab/thwack/internal/apperr"
)

// Invoker hands the chosen path to the configured command.
type Invoker interface {
	Invoke(argv []string, path string) error
}

func invocationArgs(argv []string, path string) []string {
	args := make([]string, len(argv)+1)
	copy(args, argv)
	args[len(argv)] = path
	return args
}

// invokeError reports a failed invocation with the OS error number as the
// exit code when one is known.
func invokeError(argv []string, path string, err error) error {
	code := 1
	var errno syscall.Errno
	switch {
	case errors.As(err, &errno):
		code = int(errno)
	case errors.Is(err, exec.ErrNotFound):
		code = int(syscall.ENOENT)
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		code = exitErr.ExitCode()
	}
	return apperr.Exec("`%s %s` failed and returned %d", strings.Join(argv, " "), path, code).WithCode(code)
}
