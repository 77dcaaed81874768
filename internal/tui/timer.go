package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/tomato/internal/logging"
	"github.com/sadopc/tomato/internal/store"
	"github.com/sadopc/tomato/internal/timer"
)

// roundLength is the number of pomodoros shown per round of dots.
const roundLength = 4

// timerModel drives the countdown machine from key presses and scheduled
// wakes, and renders it.
type timerModel struct {
	machine *timer.Machine
	store   *store.Store
	now     func() time.Time
	width   int
	height  int

	// gen is bumped on every reschedule; wakes from older generations
	// are dropped.
	gen int

	completed int // focus sessions finished since launch
	bar       progress.Model
}

func newTimerModel(m *timer.Machine, s *store.Store, now func() time.Time) timerModel {
	return timerModel{
		machine: m,
		store:   s,
		now:     now,
		bar:     progress.New(progress.WithSolidFill(string(colorPrimary)), progress.WithoutPercentage()),
	}
}

func (t *timerModel) setSize(w, h int) {
	t.width = w
	t.height = h
	t.bar.Width = max(w-16, 10)
}

func (t timerModel) update(msg tea.Msg) (timerModel, tea.Cmd) {
	switch msg := msg.(type) {
	case wakeMsg:
		if msg.gen != t.gen {
			return t, nil
		}
		exp, expired := t.machine.Tick(msg.at)
		cmd := t.schedule()
		if expired {
			cmd = tea.Batch(cmd, t.finish(exp))
		}
		return t, cmd

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Toggle):
			return t.command(func(now time.Time) { t.machine.Toggle(now) })
		case key.Matches(msg, keys.Reset):
			return t.command(func(time.Time) { t.machine.Reset() })
		case key.Matches(msg, keys.Focus):
			return t.command(func(time.Time) { t.machine.SelectPreset(timer.Focus) })
		case key.Matches(msg, keys.ShortBreak):
			return t.command(func(time.Time) { t.machine.SelectPreset(timer.ShortBreak) })
		case key.Matches(msg, keys.LongBreak):
			return t.command(func(time.Time) { t.machine.SelectPreset(timer.LongBreak) })
		}
	}
	return t, nil
}

// command brings a running countdown up to date before applying fn, so
// the partial second since the last wake is not lost. If the countdown
// runs out during that catch-up, fn is skipped.
func (t timerModel) command(fn func(now time.Time)) (timerModel, tea.Cmd) {
	now := t.now()
	exp, expired := t.machine.Tick(now)
	if expired {
		cmd := t.schedule()
		cmd = tea.Batch(cmd, t.finish(exp))
		return t, cmd
	}

	fn(now)
	if logging.Debug {
		logging.DebugLog("timer command",
			logging.KeyMode, t.machine.Mode().String(),
			logging.KeyPreset, string(t.machine.Preset()),
			logging.KeyRemaining, t.machine.Remaining().String(),
		)
	}
	cmd := t.schedule()
	return t, cmd
}

// schedule cancels any pending wake and arms the next one. Idle machines
// get no wake at all.
func (t *timerModel) schedule() tea.Cmd {
	t.gen++
	wait := t.machine.NextWake()
	if wait <= 0 {
		return nil
	}
	gen := t.gen
	return tea.Tick(wait, func(at time.Time) tea.Msg {
		return wakeMsg{gen: gen, at: at}
	})
}

// finish logs an expired countdown as a session.
func (t *timerModel) finish(exp timer.Expiry) tea.Cmd {
	if exp.Preset == timer.Focus {
		t.completed++
	}
	s := t.store
	return func() tea.Msg {
		sess, err := s.RecordSession(string(exp.Preset), exp.Duration, exp.At)
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Error saving session: %v", err), isError: true}
		}
		return sessionLoggedMsg{session: sess}
	}
}

func (t timerModel) view() string {
	w := t.width - 4
	m := t.machine
	color := presetColor(m.Preset())

	title := titleStyle.Render("Pomodoro Timer")

	clock := clockStyle.Foreground(color).Width(w - 6).Render(formatClock(m.Remaining()))
	if !m.Ticking() {
		clock = clockStyle.Foreground(colorFg).Width(w - 6).Render(formatClock(m.Remaining()))
	}

	var state string
	switch {
	case m.Ticking():
		state = lipgloss.NewStyle().Foreground(color).Bold(true).Render(strings.ToUpper(m.Preset().Label()))
	case m.Remaining() == m.Total():
		state = mutedStyle.Render(m.Preset().Label() + ", ready")
	default:
		state = warningStyle.Render(m.Preset().Label() + ", paused")
	}

	content := lipgloss.JoinVertical(lipgloss.Center,
		title,
		"",
		t.renderPresets(),
		"",
		clock,
		state,
		"",
		t.bar.ViewAs(m.Progress()),
		"",
		t.renderRound(),
	)

	controls := mutedStyle.Render("space: start/pause  r: reset  1/2/3: preset")
	if m.Ticking() {
		controls = mutedStyle.Render("space: pause  r: reset  1/2/3: switch preset")
	}

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Center, content, "", controls),
	)
}

func (t timerModel) renderPresets() string {
	durations := t.machine.Durations()
	var parts []string
	for i, p := range timer.Presets {
		label := fmt.Sprintf("%d %s %s", i+1, p.Label(), formatMinutes(int64(durations[p]/time.Second)))
		if p == t.machine.Preset() {
			parts = append(parts, lipgloss.NewStyle().Foreground(presetColor(p)).Bold(true).Render(label))
		} else {
			parts = append(parts, mutedStyle.Render(label))
		}
	}
	return strings.Join(parts, "   ")
}

func (t timerModel) renderRound() string {
	done := t.completed % roundLength
	var parts []string
	for i := 0; i < roundLength; i++ {
		switch {
		case i < done:
			parts = append(parts, successStyle.Render("●"))
		case i == done && t.machine.Ticking() && t.machine.Preset() == timer.Focus:
			parts = append(parts, lipgloss.NewStyle().Foreground(colorPrimary).Render("◐"))
		default:
			parts = append(parts, mutedStyle.Render("○"))
		}
	}
	counter := mutedStyle.Render(fmt.Sprintf("  %d done", t.completed))
	return strings.Join(parts, " ") + counter
}
