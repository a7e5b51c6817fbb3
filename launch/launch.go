// Package launch assembles the final command and environment for a
// configured game, including compatibility wrappers and render offload.
package launch

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gamewarden/gamewarden/config"
	"github.com/gamewarden/gamewarden/gpu"
	"github.com/gamewarden/gamewarden/logger"
)

// sessionLauncher is the wrapper that runs the game inside its own
// container session. Its helpers escape the launcher's process tree and
// need sibling reaping at cleanup.
const sessionLauncher = "umu-run"

// GPULookup resolves a PCI vendor id to a DRI_PRIME value. It exists so
// tests can substitute a canned lookup for the sysfs scan.
type GPULookup func(vendorID string) (string, error)

// Plan is the fully resolved launch: the argv to execute, the environment
// overrides to apply on top of the inherited environment, and the working
// directory.
type Plan struct {
	Argv    []string
	Env     map[string]string
	Workdir string
}

// Build resolves a game entry into a Plan. extraArgs are appended after
// the configured command. A failed GPU offload lookup is logged and
// skipped; the game still launches without the offload variable.
func Build(g config.Game, extraArgs []string, lookup GPULookup) (*Plan, error) {
	if len(g.Command) == 0 {
		return nil, fmt.Errorf("game has no command")
	}
	if lookup == nil {
		lookup = gpu.Offload
	}

	var argv []string
	if g.Mangohud {
		argv = append(argv, "mangohud")
	}
	if g.Gamescope {
		argv = append(argv, "gamescope", "--")
	}
	if g.Wrapper != "" {
		// Wrappers may carry their own arguments, e.g. "proton run".
		parts := strings.Fields(g.Wrapper)
		if len(parts) == 0 {
			return nil, fmt.Errorf("wrapper command is empty")
		}
		argv = append(argv, parts...)
	}
	argv = append(argv, g.Command...)
	argv = append(argv, extraArgs...)

	env := make(map[string]string, len(g.Env)+2)
	for k, v := range g.Env {
		env[k] = v
	}
	if g.WinePrefix != "" {
		env["WINEPREFIX"] = g.WinePrefix
	}
	if g.GPUVendor != "" {
		prime, err := lookup(g.GPUVendor)
		switch {
		case err == nil:
			env["DRI_PRIME"] = prime
		case errors.Is(err, gpu.ErrDeviceNotFound):
			logger.Warn("offload device not present, launching without offload", "vendor", g.GPUVendor)
		default:
			logger.Warn("gpu lookup failed, launching without offload", "vendor", g.GPUVendor, "error", err)
		}
	}

	workdir := g.Workdir
	if workdir == "" {
		workdir = filepath.Dir(g.Command[0])
	}

	return &Plan{Argv: argv, Env: env, Workdir: workdir}, nil
}

// UsesSessionLauncher reports whether argv invokes the containerised
// session launcher, which re-parents helper processes outside the
// supervisor's tree.
func UsesSessionLauncher(argv []string) bool {
	for _, arg := range argv {
		if strings.Contains(arg, sessionLauncher) {
			return true
		}
	}
	return false
}
