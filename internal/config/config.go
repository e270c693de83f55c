package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/BurntSushi/toml"
	"github.com/alebeck/detach/internal/daemon"
	"github.com/alebeck/detach/internal/paths"
)

const fileName = "detach.toml"

var Path string

// Config represents the application configuration as parsed from detach.toml
type Config struct {
	// TimeoutMs is how long, in milliseconds, a freshly detached process
	// has to stay alive to count as started.
	TimeoutMs *uint16 `toml:"timeout_ms"`
	// LogFile receives the supervised command's output. Empty discards it.
	LogFile string `toml:"log_file"`
	// Control is the default control socket path. Empty disables it.
	Control string `toml:"control"`
	// Lock is a file locked for the daemon's lifetime. Empty disables it.
	Lock string `toml:"lock"`
}

func init() {
	if Path = os.Getenv("DETACH_CONFIG"); Path == "" {
		Path = filepath.Join(paths.ConfigHome(), fileName)
	}
	Path = paths.ReplaceTilde(filepath.ToSlash(Path))
}

// Load parses the configuration file at Path. A missing file is not an
// error and yields the defaults.
func Load() (*Config, error) {
	return LoadFile(Path)
}

func LoadFile(path string) (*Config, error) {
	var cfg Config

	if _, err := toml.DecodeFile(path, &cfg); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("could not decode config file: %w", err)
	}

	if v := os.Getenv("DETACH_TIMEOUT_MS"); v != "" {
		ms, err := strconv.ParseUint(v, 10, 16)
		if err != nil {
			return nil, fmt.Errorf("invalid DETACH_TIMEOUT_MS %q: %w", v, err)
		}
		t := uint16(ms)
		cfg.TimeoutMs = &t
	}

	cfg.LogFile = paths.ReplaceTilde(cfg.LogFile)
	cfg.Control = paths.ReplaceTilde(cfg.Control)
	cfg.Lock = paths.ReplaceTilde(cfg.Lock)
	return &cfg, nil
}

// Timeout returns the configured timeout or the daemon default.
func (c *Config) Timeout() uint16 {
	if c.TimeoutMs == nil {
		return daemon.DefaultTimeoutMs
	}
	return *c.TimeoutMs
}
