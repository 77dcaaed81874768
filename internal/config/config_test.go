package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sadopc/tomato/internal/timer"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ConfigFile)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "record.json", filepath.Base(cfg.RecordPath))
	assert.Equal(t, "tomato.db", filepath.Base(cfg.DBPath))
	assert.Equal(t, "tomato.log", filepath.Base(cfg.LogPath))
	assert.Equal(t, AppName, filepath.Base(filepath.Dir(cfg.RecordPath)))
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, Presets{Focus: 25, ShortBreak: 5, LongBreak: 15}, cfg.Presets)
	assert.NoError(t, cfg.Validate())
}

func TestDefaultPath(t *testing.T) {
	assert.True(t, strings.HasSuffix(DefaultPath(), filepath.Join(AppName, ConfigFile)))
}

func TestDefaultDurationsMatchTimer(t *testing.T) {
	assert.Equal(t, timer.DefaultDurations(), DefaultConfig().Durations())
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
record_path = "/tmp/tomato/rec.json"
log_level = "debug"

[presets]
focus_minutes = 50
short_break_minutes = 10
long_break_minutes = 30
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/tomato/rec.json", cfg.RecordPath)
	assert.Equal(t, DefaultConfig().DBPath, cfg.DBPath, "unset keys keep defaults")
	assert.Equal(t, Presets{Focus: 50, ShortBreak: 10, LongBreak: 30}, cfg.Presets)

	lvl, err := cfg.Level()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, lvl)

	d := cfg.Durations()
	assert.Equal(t, 50*time.Minute, d[timer.Focus])
	assert.Equal(t, 10*time.Minute, d[timer.ShortBreak])
	assert.Equal(t, 30*time.Minute, d[timer.LongBreak])
}

func TestLoadPartialPresets(t *testing.T) {
	path := writeConfig(t, "[presets]\nfocus_minutes = 45\n")
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 45, cfg.Presets.Focus)
	assert.Equal(t, 5, cfg.Presets.ShortBreak)
}

func TestLoadEmptyPathsFallBack(t *testing.T) {
	path := writeConfig(t, `db_path = ""`+"\n"+`log_level = ""`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().DBPath, cfg.DBPath)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"unknown key", `colour = "red"`, "unknown keys: colour"},
		{"unknown nested key", "[presets]\nnap_minutes = 3", "presets.nap_minutes"},
		{"bad syntax", `record_path = `, "read config"},
		{"wrong type", `log_level = 3`, "read config"},
		{"bad level", `log_level = "loud"`, "invalid log_level"},
		{"zero minutes", "[presets]\nfocus_minutes = 0", "focus_minutes"},
		{"too many minutes", "[presets]\nlong_break_minutes = 2000", "long_break_minutes"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadOrDefault(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		cfg, err := LoadOrDefault(filepath.Join(t.TempDir(), "nope.toml"))
		require.NoError(t, err)
		assert.Equal(t, DefaultConfig(), cfg)
	})

	t.Run("invalid file is still an error", func(t *testing.T) {
		_, err := LoadOrDefault(writeConfig(t, `bogus = true`))
		assert.Error(t, err)
	})
}
