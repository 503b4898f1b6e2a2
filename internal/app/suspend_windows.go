//go:build windows

package app

import "os"

func contSignals() []os.Signal {
	return nil
}

// There is no SIGTSTP on Windows; suspend is a no-op.
func (app *Application) suspendToShell() {
}

func (app *Application) resumeAfterStop() bool {
	return false
}
