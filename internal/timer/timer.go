// Package timer implements the pomodoro countdown state machine.
//
// A Machine is either Idle or Ticking. While Ticking it consumes time
// from externally supplied tick timestamps; it never reads the clock
// itself, so the driver decides the cadence. When the countdown reaches
// zero the machine reloads the focus preset and goes Idle.
package timer

import "time"

// Mode is the run state of a Machine.
type Mode int

const (
	Idle Mode = iota
	Ticking
)

func (m Mode) String() string {
	switch m {
	case Idle:
		return "idle"
	case Ticking:
		return "ticking"
	default:
		return "unknown"
	}
}

// wakeSlack pushes a scheduled wake just past the second boundary so the
// rendered MM:SS has already changed when the tick arrives.
const wakeSlack = time.Millisecond

// Expiry describes a countdown that ran out during a Tick.
type Expiry struct {
	Preset   Preset
	Duration time.Duration
	At       time.Time
}

// Machine is the countdown state. It is not safe for concurrent use; the
// UI update loop owns it.
type Machine struct {
	durations Durations
	preset    Preset
	total     time.Duration
	remaining time.Duration
	mode      Mode
	lastTick  time.Time
}

// New returns an Idle machine loaded with the focus preset.
func New(d Durations) *Machine {
	m := &Machine{durations: d.withDefaults()}
	m.load(Focus)
	return m
}

// Remaining is the time left on the countdown. Never negative.
func (m *Machine) Remaining() time.Duration { return m.remaining }

// Mode reports whether the countdown is running.
func (m *Machine) Mode() Mode { return m.mode }

// Ticking is shorthand for Mode() == Ticking.
func (m *Machine) Ticking() bool { return m.mode == Ticking }

// LastTick is the timestamp of the last processed tick, zero while Idle.
func (m *Machine) LastTick() time.Time { return m.lastTick }

// Preset is the preset last loaded into the countdown.
func (m *Machine) Preset() Preset { return m.preset }

// Total is the full length of the loaded preset.
func (m *Machine) Total() time.Duration { return m.total }

// Default is the duration Reset and expiry return to.
func (m *Machine) Default() time.Duration { return m.durations[Focus] }

// Durations returns a copy of the preset table.
func (m *Machine) Durations() Durations {
	out := make(Durations, len(m.durations))
	for p, d := range m.durations {
		out[p] = d
	}
	return out
}

// Toggle starts an Idle countdown at now, or pauses a running one.
func (m *Machine) Toggle(now time.Time) {
	switch m.mode {
	case Idle:
		m.mode = Ticking
		m.lastTick = now
	case Ticking:
		m.mode = Idle
		m.lastTick = time.Time{}
	}
}

// Reset reloads the default duration. The mode is left alone.
func (m *Machine) Reset() {
	m.load(Focus)
}

// SelectPreset loads the duration of p. The mode is left alone, so a
// running countdown keeps running from the new value. Unknown presets are
// ignored and reported with false.
func (m *Machine) SelectPreset(p Preset) bool {
	if !p.Valid() {
		return false
	}
	m.load(p)
	return true
}

// SetDurations replaces the preset table. The current countdown is not
// touched; the new values apply from the next Reset or SelectPreset.
func (m *Machine) SetDurations(d Durations) {
	m.durations = d.withDefaults()
}

// Tick advances a running countdown to now. It is a no-op while Idle.
// The elapsed delta is clamped so remaining saturates at zero; a clock
// that steps backwards counts as no time passing. When the countdown hits
// zero the default preset is reloaded, the machine goes Idle and the
// finished countdown is returned.
func (m *Machine) Tick(now time.Time) (Expiry, bool) {
	if m.mode != Ticking {
		return Expiry{}, false
	}

	elapsed := now.Sub(m.lastTick)
	if elapsed < 0 {
		elapsed = 0
	}
	m.lastTick = now

	if elapsed >= m.remaining {
		m.remaining = 0
	} else {
		m.remaining -= elapsed
	}
	if m.remaining > 0 {
		return Expiry{}, false
	}

	done := Expiry{Preset: m.preset, Duration: m.total, At: now}
	m.load(Focus)
	m.mode = Idle
	m.lastTick = time.Time{}
	return done, true
}

// NextWake is how long the driver should wait before the next Tick so
// that the displayed whole second has changed. Zero while Idle: no wake
// should be scheduled.
func (m *Machine) NextWake() time.Duration {
	if m.mode != Ticking {
		return 0
	}
	if m.remaining < time.Second {
		return m.remaining + wakeSlack
	}
	return m.remaining%time.Second + wakeSlack
}

// Progress is the consumed fraction of the loaded preset in [0, 1].
func (m *Machine) Progress() float64 {
	if m.total <= 0 {
		return 1
	}
	p := float64(m.total-m.remaining) / float64(m.total)
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

func (m *Machine) load(p Preset) {
	m.preset = p
	m.total = m.durations[p]
	m.remaining = m.total
}
