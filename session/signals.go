package session

import (
	"os"
	"os/signal"
)

// installSignalGate intercepts the termination and interrupt signals so
// the supervisor is not killed out from under its children. The returned
// stop function restores default signal disposition.
func (s *Session) installSignalGate() func() {
	ch := make(chan os.Signal, 2)
	signal.Notify(ch, gateSignals()...)
	done := make(chan struct{})

	go func() {
		for {
			select {
			case sig := <-ch:
				s.handleSignal(sig)
			case <-done:
				return
			}
		}
	}()

	return func() {
		signal.Stop(ch)
		close(done)
	}
}

// handleSignal runs on the gate goroutine, so deliveries are serialized;
// the one-shot guard inside cleanup covers the race with the main flow's
// own teardown.
func (s *Session) handleSignal(sig os.Signal) {
	if sig == terminationSignal {
		s.log.Info("termination signal received, cleaning up", "signal", sig)
		s.cleanup(false)
		return
	}
	// Interrupt is logged only: the child shares the terminal's process
	// group and receives it directly.
	s.log.Info("interrupt received", "signal", sig)
}
