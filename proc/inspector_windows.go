//go:build windows

package proc

import (
	"fmt"
	"os/exec"
	"strconv"
)

// SysInspector is a reduced Inspector for Windows. Tree discovery and
// name/ancestry lookups are not available, so scans come back empty and
// both signal levels fall back to taskkill, which takes the whole tree
// down in one forceful pass.
type SysInspector struct{}

func (SysInspector) Descendants(pid int) ([]int, error) {
	return nil, nil
}

func (SysInspector) PidsOf(name string) ([]int, error) {
	return nil, nil
}

func (SysInspector) Parent(pid int) (int, error) {
	return 0, fmt.Errorf("parent lookup not supported on windows")
}

func (SysInspector) Cmdline(pid int) (string, error) {
	return "", fmt.Errorf("cmdline lookup not supported on windows")
}

func (SysInspector) Terminate(pid int) error {
	return exec.Command("taskkill", "/PID", strconv.Itoa(pid), "/T").Run()
}

func (SysInspector) Kill(pid int) error {
	return exec.Command("taskkill", "/PID", strconv.Itoa(pid), "/T", "/F").Run()
}
