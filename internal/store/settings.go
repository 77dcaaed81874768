package store

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/sadopc/tomato/internal/timer"
)

// Setting keys holding preset lengths in seconds.
const (
	KeyPresetFocus      = "preset_focus"
	KeyPresetShortBreak = "preset_short_break"
	KeyPresetLongBreak  = "preset_long_break"
)

var presetKeys = map[timer.Preset]string{
	timer.Focus:      KeyPresetFocus,
	timer.ShortBreak: KeyPresetShortBreak,
	timer.LongBreak:  KeyPresetLongBreak,
}

// ErrSettingNotFound is returned by GetSetting for an absent key.
var ErrSettingNotFound = errors.New("setting not found")

func (s *Store) GetSetting(key string) (string, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("get setting %q: %w", key, ErrSettingNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("get setting %q: %w", key, err)
	}
	return value, nil
}

func (s *Store) SetSetting(key, value string) error {
	_, err := s.db.Exec(
		`INSERT INTO settings (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("set setting %q: %w", key, err)
	}
	return nil
}

func (s *Store) GetAllSettings() ([]Setting, error) {
	rows, err := s.db.Query(`SELECT key, value FROM settings ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("list settings: %w", err)
	}
	defer rows.Close()

	var settings []Setting
	for rows.Next() {
		var s Setting
		if err := rows.Scan(&s.Key, &s.Value); err != nil {
			return nil, err
		}
		settings = append(settings, s)
	}
	return settings, rows.Err()
}

// Durations returns the preset lengths saved in settings. Presets with no
// saved value, or a value that is not a positive number of seconds, take
// the duration from fallback.
func (s *Store) Durations(fallback timer.Durations) (timer.Durations, error) {
	out := make(timer.Durations, len(presetKeys))
	for p, d := range fallback {
		out[p] = d
	}
	for p, k := range presetKeys {
		v, err := s.GetSetting(k)
		if errors.Is(err, ErrSettingNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		secs, err := strconv.Atoi(v)
		if err != nil || secs <= 0 {
			continue
		}
		out[p] = time.Duration(secs) * time.Second
	}
	return out, nil
}

// SaveDurations persists every known preset in d, in whole seconds.
func (s *Store) SaveDurations(d timer.Durations) error {
	for p, k := range presetKeys {
		v, ok := d[p]
		if !ok || v < time.Second {
			continue
		}
		if err := s.SetSetting(k, strconv.Itoa(int(v/time.Second))); err != nil {
			return err
		}
	}
	return nil
}
