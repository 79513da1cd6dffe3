//go:build windows

package app

import "os"

// Windows has no job control, so there is nothing to redraw after.
func contSignals() []os.Signal {
	return nil
}
