//go:build !windows

package session

import (
	"os"

	"golang.org/x/sys/unix"
)

// terminationSignal triggers the full scan-and-terminate cleanup.
var terminationSignal os.Signal = unix.SIGTERM

func gateSignals() []os.Signal {
	return []os.Signal{unix.SIGTERM, os.Interrupt}
}
