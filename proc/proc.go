// Package proc wraps OS process introspection and signalling for session
// cleanup. Everything here is best-effort: the underlying tools can be
// missing and pids can vanish between a scan and a signal, so callers get
// empty results or skipped entries instead of hard failures.
package proc

// Inspector is the narrow view of the OS process table the cleanup code
// needs. Each method can fail independently; callers must never assume a
// pid observed earlier still exists.
type Inspector interface {
	// Descendants returns the pids of every process transitively spawned
	// by pid, excluding pid itself. A missing tree-listing tool or a
	// childless pid yields an empty slice.
	Descendants(pid int) ([]int, error)

	// PidsOf returns the pids of processes whose executable name matches
	// name exactly.
	PidsOf(name string) ([]int, error)

	// Parent returns the parent pid of pid.
	Parent(pid int) (int, error)

	// Cmdline returns the full command line of pid.
	Cmdline(pid int) (string, error)

	// Terminate asks pid to shut down gracefully.
	Terminate(pid int) error

	// Kill forcefully ends pid.
	Kill(pid int) error
}
