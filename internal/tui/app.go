package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/tomato/internal/export"
	"github.com/sadopc/tomato/internal/logging"
	"github.com/sadopc/tomato/internal/record"
	"github.com/sadopc/tomato/internal/store"
	"github.com/sadopc/tomato/internal/timer"
)

// Options configures an App.
type Options struct {
	// ExportDir receives files written from the export picker.
	ExportDir string
	// Now is the clock; nil means time.Now.
	Now func() time.Time
}

// App is the root Bubble Tea model.
type App struct {
	store   *store.Store
	records *record.Store
	machine *timer.Machine
	opts    Options
	width   int
	height  int

	activeView    viewState
	showHelp      bool
	exportPicking bool
	exportCursor  int

	timer    timerModel
	history  historyModel
	record   recordModel
	settings settingsModel

	help      help.Model
	status    string
	statusErr bool
}

func NewApp(s *store.Store, rs *record.Store, m *timer.Machine, opts Options) App {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	h := help.New()
	h.ShowAll = false

	return App{
		store:      s,
		records:    rs,
		machine:    m,
		opts:       opts,
		activeView: viewTimer,
		timer:      newTimerModel(m, s, opts.Now),
		history:    newHistoryModel(s, opts.Now),
		record:     newRecordModel(rs),
		settings:   newSettingsModel(s, m),
		help:       h,
	}
}

func (a App) Init() tea.Cmd {
	return tea.SetWindowTitle("tomato")
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		contentHeight := a.height - 4 // header + footer
		a.timer.setSize(a.width, contentHeight)
		a.history.setSize(a.width, contentHeight)
		a.record.setSize(a.width, contentHeight)
		a.settings.setSize(a.width, contentHeight)
		return a, nil

	case tea.KeyMsg:
		if a.exportPicking {
			return a.updateExportPicker(msg)
		}

		// If a child view is capturing input (e.g. form), delegate first.
		if a.isFormActive() {
			return a.updateActiveView(msg)
		}

		switch {
		case key.Matches(msg, keys.Export):
			a.exportPicking = true
			a.exportCursor = 0
			return a, nil
		case key.Matches(msg, keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, keys.Help):
			a.showHelp = !a.showHelp
			a.help.ShowAll = a.showHelp
			return a, nil
		case key.Matches(msg, keys.Tab):
			return a.switchView((a.activeView + 1) % viewState(len(viewNames)))
		case key.Matches(msg, keys.ShiftTab):
			return a.switchView((a.activeView + viewState(len(viewNames)) - 1) % viewState(len(viewNames)))
		}

	// Wakes drive the countdown whatever view is showing.
	case wakeMsg:
		var cmd tea.Cmd
		a.timer, cmd = a.timer.update(msg)
		return a, cmd

	case sessionLoggedMsg:
		sess := msg.session
		logging.Info("session logged",
			logging.KeyPreset, sess.Preset,
			logging.KeyDuration, sess.Duration,
		)
		a.setStatus(fmt.Sprintf("%s finished (%s) \a", timer.Preset(sess.Preset).Label(), formatSeconds(sess.Duration)), false)
		if a.activeView == viewHistory {
			return a, a.history.refresh()
		}
		return a, nil

	case recordSavedMsg:
		if msg.err != nil {
			logging.Error("save record", logging.KeyError, msg.err)
			a.setStatus(fmt.Sprintf("Error saving record: %v", msg.err), true)
		} else {
			a.setStatus("Record saved", false)
		}
		var cmd tea.Cmd
		a.record, cmd = a.record.update(msg)
		return a, cmd

	case durationsSavedMsg:
		a.machine.SetDurations(msg.durations)
		// An untouched idle countdown picks up its new length right away.
		if !a.machine.Ticking() && a.machine.Remaining() == a.machine.Total() {
			a.machine.SelectPreset(a.machine.Preset())
		}
		a.setStatus("Presets saved", false)
		return a, nil

	case statusMsg:
		if msg.isError {
			logging.Error(msg.text)
		}
		a.setStatus(msg.text, msg.isError)
		return a, nil

	case exportDoneMsg:
		logging.Info("export written", logging.KeyPath, msg.path)
		a.setStatus("Exported to "+msg.path, false)
		a.exportPicking = false
		return a, nil
	}

	return a.updateActiveView(msg)
}

func (a *App) setStatus(text string, isError bool) {
	a.status = text
	a.statusErr = isError
}

// switchView activates v and loads whatever it shows from disk.
func (a App) switchView(v viewState) (tea.Model, tea.Cmd) {
	a.activeView = v
	logging.DebugLog("switch view", logging.KeyView, viewNames[v])
	switch v {
	case viewHistory:
		return a, a.history.refresh()
	case viewRecord:
		return a, a.record.load()
	}
	return a, nil
}

func (a App) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.activeView {
	case viewTimer:
		a.timer, cmd = a.timer.update(msg)
	case viewHistory:
		a.history, cmd = a.history.update(msg)
	case viewRecord:
		a.record, cmd = a.record.update(msg)
	case viewSettings:
		a.settings, cmd = a.settings.update(msg)
	}
	return a, cmd
}

func (a App) isFormActive() bool {
	switch a.activeView {
	case viewRecord:
		return a.record.formActive
	case viewSettings:
		return a.settings.formActive
	}
	return false
}

func (a App) View() string {
	if a.width == 0 {
		return "Loading..."
	}

	header := a.renderHeader()
	footer := a.renderFooter()

	var content string
	switch a.activeView {
	case viewTimer:
		content = a.timer.view()
	case viewHistory:
		content = a.history.view()
	case viewRecord:
		content = a.record.view()
	case viewSettings:
		content = a.settings.view()
	}

	// Calculate available height for content
	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := max(a.height-headerHeight-footerHeight, 1)

	if a.exportPicking {
		content = a.renderExportPicker()
	}

	content = lipgloss.NewStyle().
		Width(a.width).
		Height(contentHeight).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

func (a App) renderHeader() string {
	var tabs []string
	for i, name := range viewNames {
		if viewState(i) == a.activeView {
			tabs = append(tabs, activeTabStyle.Render(name))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(name))
		}
	}

	tabRow := lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)

	title := lipgloss.NewStyle().Bold(true).Foreground(colorPrimary).Render("tomato")
	gap := max(a.width-lipgloss.Width(title)-lipgloss.Width(tabRow)-4, 1)
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return headerStyle.Render(
		lipgloss.JoinHorizontal(lipgloss.Bottom, title, spacer, tabRow),
	)
}

func (a App) renderFooter() string {
	helpView := a.help.View(keys)

	status := ""
	if a.status != "" {
		if a.statusErr {
			status = errorStyle.Render(" " + a.status)
		} else {
			status = mutedStyle.Render(" " + a.status)
		}
	}

	// Countdown indicator while another view is showing
	timerInfo := ""
	if a.activeView != viewTimer && a.machine.Ticking() {
		c := lipgloss.NewStyle().Foreground(presetColor(a.machine.Preset()))
		timerInfo = c.Render(" ● " + formatClock(a.machine.Remaining()))
	}

	left := footerStyle.Render(helpView)
	right := timerInfo + status

	gap := max(a.width-lipgloss.Width(left)-lipgloss.Width(right)-2, 1)
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return lipgloss.JoinHorizontal(lipgloss.Bottom, left, spacer, right)
}

func (a App) renderExportPicker() string {
	title := titleStyle.Render("Export Format")
	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")
	for i, f := range export.Formats {
		cursor := "  "
		style := normalItemStyle
		if i == a.exportCursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(cursor+string(f)))
	}
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  enter: export  esc: cancel"))
	rows = append(rows, mutedStyle.Render("  into "+a.opts.ExportDir))

	w := a.width - 4
	return activePanelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (a App) updateExportPicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if a.exportCursor > 0 {
			a.exportCursor--
		}
	case key.Matches(msg, keys.Down):
		if a.exportCursor < len(export.Formats)-1 {
			a.exportCursor++
		}
	case key.Matches(msg, keys.Enter):
		a.exportPicking = false
		return a, a.doExport(export.Formats[a.exportCursor])
	case key.Matches(msg, keys.Back):
		a.exportPicking = false
	}
	return a, nil
}

func (a App) doExport(f export.Format) tea.Cmd {
	s := a.store
	dir := a.opts.ExportDir
	date := a.opts.Now().Format("2006-01-02")
	return func() tea.Msg {
		sessions, err := s.ListSessions(store.SessionFilter{})
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Export error: %v", err), isError: true}
		}

		if err := os.MkdirAll(dir, 0o755); err != nil {
			return statusMsg{text: fmt.Sprintf("Export error: %v", err), isError: true}
		}
		path := filepath.Join(dir, fmt.Sprintf("tomato-export-%s.%s", date, f.Ext()))
		if err := export.Write(f, sessions, path); err != nil {
			return statusMsg{text: fmt.Sprintf("%s error: %v", f, err), isError: true}
		}
		return exportDoneMsg{path: path}
	}
}
