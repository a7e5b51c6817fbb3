//go:build !windows

package proc

import (
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"golang.org/x/sys/unix"
)

// SysInspector implements Inspector on Unix systems using pstree, pgrep,
// and ps as black-box tools, and kill(2) for signalling.
type SysInspector struct{}

func (SysInspector) Descendants(pid int) ([]int, error) {
	out, err := exec.Command("pstree", "-p", strconv.Itoa(pid)).Output()
	if err != nil {
		// pstree missing or pid already gone; treat as an empty tree.
		return nil, nil
	}
	return parseTree(string(out), pid), nil
}

func (SysInspector) PidsOf(name string) ([]int, error) {
	out, err := exec.Command("pgrep", "-x", name).Output()
	if err != nil {
		// pgrep exits 1 when nothing matches.
		return nil, nil
	}
	var pids []int
	for _, line := range strings.Fields(string(out)) {
		if pid, err := strconv.Atoi(line); err == nil {
			pids = append(pids, pid)
		}
	}
	return pids, nil
}

func (SysInspector) Parent(pid int) (int, error) {
	out, err := exec.Command("ps", "-o", "ppid=", "-p", strconv.Itoa(pid)).Output()
	if err != nil {
		return 0, fmt.Errorf("resolve parent of %d: %w", pid, err)
	}
	ppid, err := strconv.Atoi(strings.TrimSpace(string(out)))
	if err != nil {
		return 0, fmt.Errorf("parse ppid of %d: %w", pid, err)
	}
	return ppid, nil
}

func (SysInspector) Cmdline(pid int) (string, error) {
	out, err := exec.Command("ps", "-o", "args=", "-p", strconv.Itoa(pid)).Output()
	if err != nil {
		return "", fmt.Errorf("resolve cmdline of %d: %w", pid, err)
	}
	return strings.TrimSpace(string(out)), nil
}

func (SysInspector) Terminate(pid int) error {
	return unix.Kill(pid, unix.SIGTERM)
}

func (SysInspector) Kill(pid int) error {
	return unix.Kill(pid, unix.SIGKILL)
}
