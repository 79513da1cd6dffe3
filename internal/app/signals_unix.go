//go:build !windows

package app

import (
	"os"

	"golang.org/x/sys/unix"
)

// contSignals are the signals after which the screen is redrawn.
func contSignals() []os.Signal {
	return []os.Signal{unix.SIGCONT}
}
