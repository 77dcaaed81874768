package timer

import (
	"strings"
	"time"
)

// Preset names a fixed countdown length.
type Preset string

const (
	Focus      Preset = "focus"
	ShortBreak Preset = "short-break"
	LongBreak  Preset = "long-break"
)

// Presets lists every preset in display order.
var Presets = []Preset{Focus, ShortBreak, LongBreak}

var presetLabels = map[Preset]string{
	Focus:      "Pomodoro",
	ShortBreak: "Short break",
	LongBreak:  "Long break",
}

// Valid reports whether p is one of the fixed preset names.
func (p Preset) Valid() bool {
	_, ok := presetLabels[p]
	return ok
}

// Label is the human readable name used by the UI.
func (p Preset) Label() string {
	if l, ok := presetLabels[p]; ok {
		return l
	}
	return string(p)
}

// ParsePreset accepts the canonical names plus a few loose spellings
// ("short", "short_break", "pomodoro").
func ParsePreset(s string) (Preset, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, "_", "-")
	switch s {
	case "focus", "pomodoro", "work":
		return Focus, true
	case "short-break", "short", "break":
		return ShortBreak, true
	case "long-break", "long":
		return LongBreak, true
	}
	return "", false
}

// Durations maps each preset to its countdown length.
type Durations map[Preset]time.Duration

// DefaultDurations returns the classic 25/5/15 minute split.
func DefaultDurations() Durations {
	return Durations{
		Focus:      1500 * time.Second,
		ShortBreak: 300 * time.Second,
		LongBreak:  900 * time.Second,
	}
}

// withDefaults copies d, filling missing or non-positive entries from
// DefaultDurations and dropping unknown names.
func (d Durations) withDefaults() Durations {
	out := DefaultDurations()
	for p, v := range d {
		if p.Valid() && v > 0 {
			out[p] = v
		}
	}
	return out
}
