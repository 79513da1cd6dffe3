//go:build !windows

package app

import (
	"os"
	"os/exec"

	"golang.org/x/sys/unix"
)

// execInvoker replaces the current process with the command, so a
// successful Invoke never returns.
type execInvoker struct {
	lookPath func(string) (string, error)
	exec     func(argv0 string, argv []string, envv []string) error
	environ  func() []string
}

func newInvoker() Invoker {
	return execInvoker{
		lookPath: exec.LookPath,
		exec:     unix.Exec,
		environ:  os.Environ,
	}
}

func (i execInvoker) Invoke(argv []string, path string) error {
	bin, err := i.lookPath(argv[0])
	if err != nil {
		return invokeError(argv, path, err)
	}
	if err := i.exec(bin, invocationArgs(argv, path), i.environ()); err != nil {
		return invokeError(argv, path, err)
	}
	return nil
}
