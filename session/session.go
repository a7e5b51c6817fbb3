// Package session supervises one launched game: it starts the child
// process, tracks the descendant process tree, and guarantees the whole
// tree is torn down when the run ends, whether it ends on its own or via
// a termination signal.
package session

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"github.com/gamewarden/gamewarden/logger"
	"github.com/gamewarden/gamewarden/proc"
)

const (
	// defaultStabilizeDelay is how long the launcher gets to spawn its
	// real workload before the first tree capture. A heuristic stand-in
	// for a readiness signal, not one.
	defaultStabilizeDelay = 5 * time.Second

	// The container session launcher re-parents the game under its own
	// subreaper, outside our tree. Cleanup hunts that helper down by
	// name and by its supervisor's command line.
	reapProcessName  = "reaper"
	reapParentMarker = "pressure-vessel"

	logFileName  = "session.log"
	lockFileName = "session.lock"
)

// Config describes one supervised run.
type Config struct {
	// Argv is the resolved command to execute.
	Argv []string
	// Env holds environment overrides applied on top of the inherited
	// environment.
	Env map[string]string
	// Workdir is the child's working directory.
	Workdir string
	// SessionLog enables the session log file: child output is streamed
	// into it and cleanup appends its records there.
	SessionLog bool
	// SessionLauncher marks the command as the containerised launcher,
	// enabling sibling reaping on normal exit.
	SessionLauncher bool
}

// Session owns the child process handle and the captured process-tree
// snapshot. It is the sole mutator of both; the signal path only reads
// the snapshot through the same guarded accessors.
type Session struct {
	cfg Config
	ins proc.Inspector
	id  string
	log *slog.Logger

	stabilize time.Duration
	settle    time.Duration
	logPath   string
	lockPath  string

	mu       sync.Mutex
	childPid int
	tree     []int

	cleanupOnce sync.Once
}

// New builds a session with the system inspector and the session files
// under the user cache directory.
func New(cfg Config) (*Session, error) {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		return nil, fmt.Errorf("resolve cache directory: %w", err)
	}
	dir := filepath.Join(cacheDir, "gamewarden")

	s := &Session{
		cfg:       cfg,
		ins:       proc.SysInspector{},
		id:        uuid.NewString(),
		stabilize: defaultStabilizeDelay,
		settle:    proc.DefaultSettleDelay,
		logPath:   filepath.Join(dir, logFileName),
		lockPath:  filepath.Join(dir, lockFileName),
	}
	s.log = logger.With("session", s.id)
	return s, nil
}

// Run launches the child and supervises it until both the child and its
// descendants are gone. The returned code mirrors the child's exit status
// where obtainable.
func (s *Session) Run() (int, error) {
	if len(s.cfg.Argv) == 0 {
		return 0, fmt.Errorf("nothing to launch")
	}

	if err := os.MkdirAll(filepath.Dir(s.lockPath), 0o700); err != nil {
		return 0, fmt.Errorf("create session directory: %w", err)
	}
	lock := flock.New(s.lockPath)
	locked, err := lock.TryLock()
	if err != nil {
		return 0, fmt.Errorf("acquire session lock: %w", err)
	}
	if !locked {
		return 0, fmt.Errorf("another gamewarden session is already running")
	}
	defer func() { _ = lock.Unlock() }()

	cmd := exec.Command(s.cfg.Argv[0], s.cfg.Argv[1:]...)
	cmd.Dir = s.cfg.Workdir
	cmd.Env = mergedEnv(s.cfg.Env)
	if s.cfg.SessionLog {
		out, err := os.OpenFile(s.logPath, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o600)
		if err != nil {
			return 0, fmt.Errorf("open session log: %w", err)
		}
		defer out.Close()
		cmd.Stdout, cmd.Stderr = out, out
	}

	if err := cmd.Start(); err != nil {
		return 0, fmt.Errorf("launch %s: %w", s.cfg.Argv[0], err)
	}
	stop := s.installSignalGate()
	defer stop()

	s.mu.Lock()
	s.childPid = cmd.Process.Pid
	s.mu.Unlock()
	s.log.Info("session started", "pid", cmd.Process.Pid, "command", strings.Join(s.cfg.Argv, " "))

	waitErr := make(chan error, 1)
	go func() { waitErr <- cmd.Wait() }()

	// Give the launcher time to fork its helpers before the first tree
	// capture, unless the child beats the delay and exits.
	var exitErr error
	exited := false
	select {
	case exitErr = <-waitErr:
		exited = true
	case <-time.After(s.stabilize):
	}

	s.setTree(s.scan())

	if !exited {
		exitErr = <-waitErr
	}
	s.log.Info("child exited", "code", exitCode(exitErr))

	s.cleanup(s.cfg.SessionLauncher)
	return exitCode(exitErr), nil
}

// cleanup drains the full teardown sequence exactly once: re-derive the
// tree, write the session records, optionally reap escaped siblings, and
// stage-terminate the captured tree. Both the normal exit path and the
// signal path funnel through here; the signal path passes reap=false.
// Losing callers block until the winner's teardown has fully completed,
// so the process cannot exit with the forceful phase still pending.
func (s *Session) cleanup(reap bool) {
	s.cleanupOnce.Do(func() { s.teardown(reap) })
}

func (s *Session) teardown(reap bool) {
	// Re-derive at cleanup time; the mid-run snapshot is the fallback
	// when the fresh scan comes back empty.
	if fresh := s.scan(); len(fresh) > 0 {
		s.setTree(fresh)
	}
	pids := s.snapshot()

	if s.cfg.SessionLog {
		s.appendRecord(fmt.Sprintf("supervisor pid %d", os.Getpid()))
		s.appendRecord(fmt.Sprintf("process tree %v", pids))
	}

	if reap {
		exclude := append(slices.Clone(pids), os.Getpid())
		proc.Reaper{Ins: s.ins}.ReapSiblings(reapProcessName, reapParentMarker, exclude)
	}

	proc.Terminator{Ins: s.ins, Settle: s.settle}.Terminate(pids)
	s.log.Info("session cleanup complete", "terminated", len(pids))
}

func (s *Session) scan() []int {
	return proc.Scanner{Ins: s.ins}.Scan(os.Getpid())
}

func (s *Session) setTree(pids []int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tree = pids
}

func (s *Session) snapshot() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.tree)
}

func (s *Session) pid() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.childPid
}

// appendRecord writes one epoch-prefixed line to the session log. The
// file is opened per append so the signal path and the main flow never
// share a handle.
func (s *Session) appendRecord(msg string) {
	f, err := os.OpenFile(s.logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		s.log.Warn("session log append failed", "error", err)
		return
	}
	defer f.Close()
	fmt.Fprintf(f, "%d %s\n", time.Now().Unix(), msg)
}

func mergedEnv(overrides map[string]string) []string {
	env := os.Environ()
	for k, v := range overrides {
		env = append(env, fmt.Sprintf("%s=%s", k, v))
	}
	return env
}

func exitCode(err error) int {
	if err == nil {
		return 0
	}
	var ee *exec.ExitError
	if errors.As(err, &ee) && ee.Exited() {
		return ee.ExitCode()
	}
	// Signal-killed or status unobtainable; report success per the
	// supervisor's exit contract.
	return 0
}
