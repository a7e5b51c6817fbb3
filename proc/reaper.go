package proc

import (
	"slices"
	"strings"

	"github.com/gamewarden/gamewarden/logger"
)

// Reaper hunts down helper processes that escaped the session's process
// tree. Container-style compatibility layers re-parent the game's real
// executable under their own supervisor, so a scan rooted at the launcher
// never finds it; the only handle left is the helper's well-known name and
// the supervisor's command line.
type Reaper struct {
	Ins Inspector
}

// ReapSiblings finds processes named name whose parent's command line
// contains marker and whose parent is not in exclude (the session's own
// tree), then forcefully kills each match's children. Any per-candidate
// lookup failure skips that candidate; reaping never aborts a cleanup.
func (r Reaper) ReapSiblings(name, marker string, exclude []int) {
	pids, err := r.Ins.PidsOf(name)
	if err != nil || len(pids) == 0 {
		return
	}

	for _, pid := range pids {
		ppid, err := r.Ins.Parent(pid)
		if err != nil {
			continue
		}
		cmdline, err := r.Ins.Cmdline(ppid)
		if err != nil {
			continue
		}
		if !strings.Contains(cmdline, marker) {
			continue
		}
		if slices.Contains(exclude, ppid) {
			continue
		}

		logger.Info("reaping escaped helper", "name", name, "pid", pid, "parent", ppid)
		children, err := r.Ins.Descendants(pid)
		if err != nil {
			continue
		}
		for _, child := range children {
			if err := r.Ins.Kill(child); err == nil {
				logger.Debug("killed escaped child", "pid", child)
			}
		}
	}
}
