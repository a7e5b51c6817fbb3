package launch

import (
	"fmt"
	"slices"
	"testing"

	"github.com/gamewarden/gamewarden/config"
	"github.com/gamewarden/gamewarden/gpu"
)

func TestBuildNative(t *testing.T) {
	g := config.Game{Command: []string{"/games/celeste/Celeste", "--fullscreen"}}

	plan, err := Build(g, nil, nil)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	want := []string{"/games/celeste/Celeste", "--fullscreen"}
	if !slices.Equal(plan.Argv, want) {
		t.Errorf("Argv = %v, want %v", plan.Argv, want)
	}
	if plan.Workdir != "/games/celeste" {
		t.Errorf("Workdir = %q, want /games/celeste", plan.Workdir)
	}
}

func TestBuildWrapperChainOrder(t *testing.T) {
	g := config.Game{
		Command:   []string{"/games/hades/Hades.exe"},
		Wrapper:   "umu-run",
		Mangohud:  true,
		Gamescope: true,
	}

	plan, err := Build(g, []string{"--windowed"}, nil)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	want := []string{"mangohud", "gamescope", "--", "umu-run", "/games/hades/Hades.exe", "--windowed"}
	if !slices.Equal(plan.Argv, want) {
		t.Errorf("Argv = %v, want %v", plan.Argv, want)
	}
}

func TestBuildWrapperWithArguments(t *testing.T) {
	g := config.Game{
		Command: []string{"/games/hades/Hades.exe"},
		Wrapper: "proton run",
	}

	plan, err := Build(g, nil, nil)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	want := []string{"proton", "run", "/games/hades/Hades.exe"}
	if !slices.Equal(plan.Argv, want) {
		t.Errorf("Argv = %v, want %v", plan.Argv, want)
	}
}

func TestBuildEnvOverrides(t *testing.T) {
	g := config.Game{
		Command:    []string{"/games/hades/Hades.exe"},
		Wrapper:    "umu-run",
		WinePrefix: "/prefixes/hades",
		Env:        map[string]string{"GAMEID": "hades"},
	}

	plan, err := Build(g, nil, nil)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	if plan.Env["WINEPREFIX"] != "/prefixes/hades" {
		t.Errorf("WINEPREFIX = %q", plan.Env["WINEPREFIX"])
	}
	if plan.Env["GAMEID"] != "hades" {
		t.Errorf("GAMEID = %q", plan.Env["GAMEID"])
	}
}

func TestBuildOffloadFound(t *testing.T) {
	g := config.Game{
		Command:   []string{"/games/celeste/Celeste"},
		GPUVendor: "0x1002",
	}
	lookup := func(vendor string) (string, error) { return "1", nil }

	plan, err := Build(g, nil, lookup)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if plan.Env["DRI_PRIME"] != "1" {
		t.Errorf("DRI_PRIME = %q, want 1", plan.Env["DRI_PRIME"])
	}
}

func TestBuildOffloadDeviceAbsent(t *testing.T) {
	g := config.Game{
		Command:   []string{"/games/celeste/Celeste"},
		GPUVendor: "0x10de",
	}
	lookup := func(vendor string) (string, error) {
		return "", fmt.Errorf("vendor %s: %w", vendor, gpu.ErrDeviceNotFound)
	}

	plan, err := Build(g, nil, lookup)
	if err != nil {
		t.Fatalf("Build must not fail on a missing offload device: %v", err)
	}
	if _, ok := plan.Env["DRI_PRIME"]; ok {
		t.Error("DRI_PRIME must not be set when the device is absent")
	}
}

func TestUsesSessionLauncher(t *testing.T) {
	tests := []struct {
		argv []string
		want bool
	}{
		{[]string{"umu-run", "/games/hades/Hades.exe"}, true},
		{[]string{"/usr/local/bin/umu-run", "game.exe"}, true},
		{[]string{"mangohud", "umu-run", "game.exe"}, true},
		{[]string{"wine", "game.exe"}, false},
		{[]string{"/games/celeste/Celeste"}, false},
		{nil, false},
	}

	for _, tt := range tests {
		if got := UsesSessionLauncher(tt.argv); got != tt.want {
			t.Errorf("UsesSessionLauncher(%v) = %v, want %v", tt.argv, got, tt.want)
		}
	}
}
