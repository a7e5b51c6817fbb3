package proc

import (
	"time"

	"github.com/gamewarden/gamewarden/logger"
)

// DefaultSettleDelay is how long the graceful phase gets before the
// forceful one. Many games ignore SIGTERM outright and others need a
// moment to flush saves and release devices, so a blanket immediate kill
// would risk orphaned state.
const DefaultSettleDelay = 3 * time.Second

// Terminator applies a two-phase kill to a set of pids: a graceful signal
// to every member, a settle delay, then a forceful signal to the same set.
type Terminator struct {
	Ins    Inspector
	Settle time.Duration // zero means DefaultSettleDelay
}

// Terminate runs both phases over pids. Pids that have already exited or
// refuse a signal are skipped; nothing here is fatal.
func (t Terminator) Terminate(pids []int) {
	if len(pids) == 0 {
		return
	}

	settle := t.Settle
	if settle == 0 {
		settle = DefaultSettleDelay
	}

	for _, pid := range pids {
		if err := t.Ins.Terminate(pid); err == nil {
			logger.Info("sent graceful termination", "pid", pid)
		}
	}

	time.Sleep(settle)

	for _, pid := range pids {
		if err := t.Ins.Kill(pid); err == nil {
			logger.Debug("sent forceful kill", "pid", pid)
		}
	}
}
