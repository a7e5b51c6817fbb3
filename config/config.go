// Package config loads the gamewarden configuration file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// testConfigDir can be set during tests to override the config directory
var testConfigDir string

// SetTestConfigDir sets the config directory for testing purposes.
// Pass empty string to reset to default behavior.
func SetTestConfigDir(dir string) {
	testConfigDir = dir
}

// Dir returns the configuration directory path (e.g., ~/.config/gamewarden)
func Dir() (string, error) {
	if testConfigDir != "" {
		return testConfigDir, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "gamewarden"), nil
}

// Game describes one launchable entry in the config file.
type Game struct {
	// Command is the executable plus its fixed arguments.
	Command []string `toml:"command"`
	// Workdir is the working directory for the game; defaults to the
	// executable's directory when empty.
	Workdir string `toml:"workdir"`
	// Env holds per-game environment overrides.
	Env map[string]string `toml:"env"`
	// Wrapper is a compatibility-layer command prefixed to the game
	// command, e.g. "umu-run" or "wine". Supports embedded arguments.
	Wrapper string `toml:"wrapper"`
	// WinePrefix sets WINEPREFIX for wrapped games.
	WinePrefix string `toml:"wine_prefix"`
	// Gamescope wraps the command in the gamescope compositor.
	Gamescope bool `toml:"gamescope"`
	// Mangohud wraps the command in the MangoHud overlay.
	Mangohud bool `toml:"mangohud"`
	// GPUVendor requests render offload to the card with this PCI vendor
	// id (e.g. "0x1002"). Empty means no offload.
	GPUVendor string `toml:"gpu_vendor"`
}

// Config is the top-level configuration file.
type Config struct {
	// LogLevel is the console log level name.
	LogLevel string `toml:"log_level"`
	// SessionLog enables the session log file under the cache directory.
	SessionLog bool `toml:"session_log"`
	// Games maps a short name to its launch entry.
	Games map[string]Game `toml:"games"`
}

func defaults() *Config {
	return &Config{
		LogLevel:   "info",
		SessionLog: true,
		Games:      make(map[string]Game),
	}
}

func filePath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// Load reads config.toml from the config directory. A missing file yields
// the defaults with an empty game set.
func Load() (*Config, error) {
	path, err := filePath()
	if err != nil {
		return nil, err
	}

	cfg := defaults()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if cfg.Games == nil {
		cfg.Games = make(map[string]Game)
	}
	return cfg, nil
}

// Game returns the entry for name.
func (c *Config) Game(name string) (Game, error) {
	g, ok := c.Games[name]
	if !ok {
		return Game{}, fmt.Errorf("game '%s' is not configured", name)
	}
	if len(g.Command) == 0 {
		return Game{}, fmt.Errorf("game '%s' has no command configured", name)
	}
	return g, nil
}
