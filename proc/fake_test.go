package proc

import (
	"fmt"
	"sync"
)

// fakeInspector is a canned process table for tests. Signal deliveries are
// recorded in order so tests can assert phase ordering.
type fakeInspector struct {
	mu          sync.Mutex
	descendants map[int][]int
	byName      map[string][]int
	parents     map[int]int
	cmdlines    map[int]string
	gone        map[int]bool // pids that reject every signal
	events      []string
	scanErr     error
}

func newFakeInspector() *fakeInspector {
	return &fakeInspector{
		descendants: make(map[int][]int),
		byName:      make(map[string][]int),
		parents:     make(map[int]int),
		cmdlines:    make(map[int]string),
		gone:        make(map[int]bool),
	}
}

func (f *fakeInspector) Descendants(pid int) ([]int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.scanErr != nil {
		return nil, f.scanErr
	}
	return f.descendants[pid], nil
}

func (f *fakeInspector) PidsOf(name string) ([]int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.byName[name], nil
}

func (f *fakeInspector) Parent(pid int) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ppid, ok := f.parents[pid]
	if !ok {
		return 0, fmt.Errorf("no such process: %d", pid)
	}
	return ppid, nil
}

func (f *fakeInspector) Cmdline(pid int) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	cmdline, ok := f.cmdlines[pid]
	if !ok {
		return "", fmt.Errorf("no such process: %d", pid)
	}
	return cmdline, nil
}

func (f *fakeInspector) Terminate(pid int) error {
	return f.signal("term", pid)
}

func (f *fakeInspector) Kill(pid int) error {
	return f.signal("kill", pid)
}

func (f *fakeInspector) signal(kind string, pid int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.gone[pid] {
		return fmt.Errorf("no such process: %d", pid)
	}
	f.events = append(f.events, fmt.Sprintf("%s:%d", kind, pid))
	return nil
}

func (f *fakeInspector) recorded() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.events))
	copy(out, f.events)
	return out
}
