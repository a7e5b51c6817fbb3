package proc

import (
	"regexp"
	"strconv"

	"github.com/gamewarden/gamewarden/logger"
)

// pstree renders every process as name(pid) and every thread as
// {name}(tid). kill(2) on a tid is process-directed, so thread entries
// are dropped outright: the root's own tids must never enter the kill
// set (signalling them kills the supervisor itself), and a descendant's
// tids are redundant with its pid.
var (
	treeThreadPattern = regexp.MustCompile(`\{[^}]*\}\(\d+\)`)
	treePidPattern    = regexp.MustCompile(`\((\d+)\)`)
)

// Scanner snapshots the descendant set of a root process.
type Scanner struct {
	Ins Inspector
}

// Scan returns the pids of every process currently rooted at root,
// excluding root itself. Scan never fails: if the process table cannot be
// read the result is simply empty.
func (s Scanner) Scan(root int) []int {
	pids, err := s.Ins.Descendants(root)
	if err != nil {
		logger.Debug("process tree scan failed", "root", root, "error", err)
		return nil
	}
	logger.Debug("process tree scanned", "root", root, "descendants", len(pids))
	return pids
}

// parseTree extracts descendant pids from a pstree-style rendering of the
// tree rooted at root. The root's own pid and all thread ids are dropped.
func parseTree(out string, root int) []int {
	out = treeThreadPattern.ReplaceAllString(out, "")
	var pids []int
	for _, m := range treePidPattern.FindAllStringSubmatch(out, -1) {
		pid, err := strconv.Atoi(m[1])
		if err != nil || pid == root {
			continue
		}
		pids = append(pids, pid)
	}
	return pids
}
