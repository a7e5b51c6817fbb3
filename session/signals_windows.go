//go:build windows

package session

import (
	"os"
	"syscall"
)

// terminationSignal triggers the full scan-and-terminate cleanup. Windows
// has no SIGTERM delivery; only the interrupt is observable.
var terminationSignal os.Signal = syscall.SIGTERM

func gateSignals() []os.Signal {
	return []os.Signal{os.Interrupt}
}
