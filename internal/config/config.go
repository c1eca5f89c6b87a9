// Package config holds the settings shared by the calculator front ends.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/fjl/scicalc/internal/calc"
)

// DataDirEnv overrides the default data directory.
const DataDirEnv = "SCICALC_DATA_DIR"

type Config struct {
	unit        calc.AngleUnit
	historySize int
	submitDelay time.Duration
	delaySet    bool
	dataDir     string
	debug       map[string]bool
}

func (c *Config) Unit() calc.AngleUnit {
	return c.unit
}

func (c *Config) SetUnit(u calc.AngleUnit) {
	c.unit = u
}

func (c *Config) HistorySize() int {
	if c.historySize <= 0 {
		return 5
	}
	return c.historySize
}

func (c *Config) SetHistorySize(n int) {
	c.historySize = n
}

// SubmitDelay is the time a submitted calculation stays on screen before it
// moves into history.
func (c *Config) SubmitDelay() time.Duration {
	if !c.delaySet {
		return time.Second
	}
	return c.submitDelay
}

func (c *Config) SetSubmitDelay(d time.Duration) {
	c.submitDelay = d
	c.delaySet = true
}

// DataDir returns the directory holding history and preferences. Without an
// explicit setting it uses $SCICALC_DATA_DIR, then the user config directory.
func (c *Config) DataDir() string {
	if c.dataDir != "" {
		return c.dataDir
	}
	if dir := os.Getenv(DataDirEnv); dir != "" {
		return dir
	}
	base, err := os.UserConfigDir()
	if err != nil {
		base = os.TempDir()
	}
	return filepath.Join(base, "scicalc")
}

func (c *Config) SetDataDir(dir string) {
	c.dataDir = dir
}

// Debug reports whether the named debug output is enabled.
// Known names are "tokens" and "parse".
func (c *Config) Debug(s string) bool {
	return c.debug[s]
}

func (c *Config) SetDebug(s string, state bool) {
	if c.debug == nil {
		c.debug = make(map[string]bool)
	}
	c.debug[s] = state
}
