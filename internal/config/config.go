// Package config loads tomato's TOML configuration file.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/adrg/xdg"

	"github.com/sadopc/tomato/internal/timer"
)

const (
	// AppName is the directory name used under the XDG base directories.
	AppName = "tomato"
	// ConfigFile is the name of the TOML configuration file.
	ConfigFile = "config.toml"
)

// Config is the on-disk configuration. Empty paths mean the XDG default.
type Config struct {
	RecordPath string  `toml:"record_path"`
	DBPath     string  `toml:"db_path"`
	LogPath    string  `toml:"log_path"`
	ExportDir  string  `toml:"export_dir"`
	LogLevel   string  `toml:"log_level"`
	Presets    Presets `toml:"presets"`
}

// Presets are preset lengths in minutes.
type Presets struct {
	Focus      int `toml:"focus_minutes"`
	ShortBreak int `toml:"short_break_minutes"`
	LongBreak  int `toml:"long_break_minutes"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() Config {
	return Config{
		RecordPath: filepath.Join(xdg.DataHome, AppName, "record.json"),
		DBPath:     filepath.Join(xdg.DataHome, AppName, "tomato.db"),
		LogPath:    filepath.Join(xdg.StateHome, AppName, "tomato.log"),
		ExportDir:  xdg.UserDirs.Download,
		LogLevel:   "info",
		Presets: Presets{
			Focus:      25,
			ShortBreak: 5,
			LongBreak:  15,
		},
	}
}

// DefaultPath is where the config file lives unless --config says otherwise.
func DefaultPath() string {
	return filepath.Join(xdg.ConfigHome, AppName, ConfigFile)
}

// Load decodes the file at path over DefaultConfig. Keys the Config does
// not know are an error, as is a file that fails Validate.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("config %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	cfg.fillDefaults()
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// LoadOrDefault is Load, except a missing file yields DefaultConfig.
func LoadOrDefault(path string) (Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return DefaultConfig(), nil
	}
	return cfg, err
}

// fillDefaults replaces paths set to "" in the file with their defaults.
func (c *Config) fillDefaults() {
	def := DefaultConfig()
	if c.RecordPath == "" {
		c.RecordPath = def.RecordPath
	}
	if c.DBPath == "" {
		c.DBPath = def.DBPath
	}
	if c.LogPath == "" {
		c.LogPath = def.LogPath
	}
	if c.ExportDir == "" {
		c.ExportDir = def.ExportDir
	}
	if c.LogLevel == "" {
		c.LogLevel = def.LogLevel
	}
}

// Validate checks value ranges.
func (c Config) Validate() error {
	if _, err := c.Level(); err != nil {
		return err
	}
	for name, mins := range map[string]int{
		"focus_minutes":       c.Presets.Focus,
		"short_break_minutes": c.Presets.ShortBreak,
		"long_break_minutes":  c.Presets.LongBreak,
	} {
		if mins < 1 || mins > 24*60 {
			return fmt.Errorf("presets.%s must be between 1 and 1440, got %d", name, mins)
		}
	}
	return nil
}

// Level parses LogLevel.
func (c Config) Level() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("invalid log_level %q", c.LogLevel)
	}
	return lvl, nil
}

// Durations converts the preset minutes for the timer.
func (c Config) Durations() timer.Durations {
	return timer.Durations{
		timer.Focus:      time.Duration(c.Presets.Focus) * time.Minute,
		timer.ShortBreak: time.Duration(c.Presets.ShortBreak) * time.Minute,
		timer.LongBreak:  time.Duration(c.Presets.LongBreak) * time.Minute,
	}
}
