//go:build windows

package app

import (
	"os"
	"os/exec"

	"golang.org/x/sys/windows"
)

// spawnInvoker runs the command as a child with the console's stdio and
// waits for it, since Windows cannot replace a running process.
type spawnInvoker struct {
	run func(cmd *exec.Cmd) error
}

func newInvoker() Invoker {
	return spawnInvoker{run: (*exec.Cmd).Run}
}

func (i spawnInvoker) Invoke(argv []string, path string) error {
	// Keys pressed while leaving the finder must not reach the command.
	_ = flushConsoleInput()

	args := invocationArgs(argv, path)
	cmd := exec.Command(args[0], args[1:]...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := i.run(cmd); err != nil {
		return invokeError(argv, path, err)
	}
	return nil
}

// flushConsoleInput discards keystrokes still queued on the console.
func flushConsoleInput() error {
	stdin, err := windows.GetStdHandle(windows.STD_INPUT_HANDLE)
	if err != nil {
		return err
	}
	return windows.FlushConsoleInputBuffer(stdin)
}
