package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/tomato/internal/store"
	"github.com/sadopc/tomato/internal/timer"
)

type settingsModel struct {
	store   *store.Store
	machine *timer.Machine
	width   int
	height  int

	formActive bool
	form       *huh.Form

	// Form values as pointers (survive value copies)
	focus      *string
	shortBreak *string
	longBreak  *string
}

func newSettingsModel(s *store.Store, m *timer.Machine) settingsModel {
	f, sb, lb := "", "", ""
	return settingsModel{
		store:      s,
		machine:    m,
		focus:      &f,
		shortBreak: &sb,
		longBreak:  &lb,
	}
}

func (s *settingsModel) setSize(w, h int) {
	s.width = w
	s.height = h
}

func (s settingsModel) update(msg tea.Msg) (settingsModel, tea.Cmd) {
	if s.formActive && s.form != nil {
		return s.updateForm(msg)
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, keys.Enter), key.Matches(msg, keys.Edit):
			return s.showForm()
		}
	}
	return s, nil
}

func (s settingsModel) showForm() (settingsModel, tea.Cmd) {
	d := s.machine.Durations()
	*s.focus = durationToMin(d[timer.Focus])
	*s.shortBreak = durationToMin(d[timer.ShortBreak])
	*s.longBreak = durationToMin(d[timer.LongBreak])

	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Pomodoro (min)").Value(s.focus).Validate(validateMinutes),
			huh.NewInput().Title("Short break (min)").Value(s.shortBreak).Validate(validateMinutes),
			huh.NewInput().Title("Long break (min)").Value(s.longBreak).Validate(validateMinutes),
		).Title("Presets"),
	).WithShowHelp(true).WithShowErrors(true)

	s.formActive = true
	return s, s.form.Init()
}

func (s settingsModel) updateForm(msg tea.Msg) (settingsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			s.formActive = false
			s.form = nil
			return s, nil
		}
	}

	form, cmd := s.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		s.form = f
	}

	if s.form.State == huh.StateCompleted {
		s.formActive = false
		s.form = nil
		return s, s.save(s.formDurations())
	}

	return s, cmd
}

func (s settingsModel) formDurations() timer.Durations {
	d := s.machine.Durations()
	for p, v := range map[timer.Preset]string{
		timer.Focus:      *s.focus,
		timer.ShortBreak: *s.shortBreak,
		timer.LongBreak:  *s.longBreak,
	} {
		if mins, err := minToDuration(v); err == nil {
			d[p] = mins
		}
	}
	return d
}

// save persists d and hands it back to the update loop, which owns the
// machine.
func (s settingsModel) save(d timer.Durations) tea.Cmd {
	st := s.store
	return func() tea.Msg {
		if err := st.SaveDurations(d); err != nil {
			return statusMsg{text: fmt.Sprintf("Error saving settings: %v", err), isError: true}
		}
		return durationsSavedMsg{durations: d}
	}
}

func (s settingsModel) view() string {
	w := s.width - 4
	title := titleStyle.Render("Settings")

	if s.formActive && s.form != nil {
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", s.form.View()),
		)
	}

	rows := []string{title, ""}
	d := s.machine.Durations()
	for _, p := range timer.Presets {
		label := lipgloss.NewStyle().Width(24).Render(p.Label())
		value := highlightStyle.Render(fmt.Sprintf("%s min", durationToMin(d[p])))
		rows = append(rows, fmt.Sprintf("  %s %s", label, value))
	}
	rows = append(rows, "", mutedStyle.Render("Press enter to edit presets"))

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func validateMinutes(s string) error {
	_, err := minToDuration(s)
	return err
}

func durationToMin(d time.Duration) string {
	return strconv.Itoa(int(d / time.Minute))
}

func minToDuration(s string) (time.Duration, error) {
	mins, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("enter a whole number of minutes")
	}
	if mins < 1 || mins > 24*60 {
		return 0, fmt.Errorf("must be between 1 and 1440")
	}
	return time.Duration(mins) * time.Minute, nil
}
