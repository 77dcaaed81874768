package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/tomato/internal/store"
	"github.com/sadopc/tomato/internal/timer"
)

const recentLimit = 8

type historyModel struct {
	store  *store.Store
	now    func() time.Time
	width  int
	height int

	summaries  []store.DailySummary
	recent     []store.Session
	focusTotal int64
	offset     int // 7-day blocks back from today (0 = current)

	chart barchart.Model
	table table.Model
}

func newHistoryModel(s *store.Store, now func() time.Time) historyModel {
	return historyModel{
		store: s,
		now:   now,
		chart: barchart.New(60, 12),
		table: newSessionTable(),
	}
}

func newSessionTable() table.Model {
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Completed", Width: 18},
			{Title: "Preset", Width: 14},
			{Title: "Length", Width: 10},
		}),
		table.WithHeight(recentLimit+1),
		table.WithFocused(false),
	)
	st := table.DefaultStyles()
	st.Header = st.Header.Foreground(colorMuted).BorderForeground(colorSubtle)
	st.Selected = lipgloss.NewStyle()
	t.SetStyles(st)
	return t
}

func (h *historyModel) setSize(w, hgt int) {
	h.width = w
	h.height = hgt
}

type historyDataMsg struct {
	summaries  []store.DailySummary
	recent     []store.Session
	focusTotal int64
	err        error
}

func (h historyModel) refresh() tea.Cmd {
	s := h.store
	from, to := h.dateRange()
	return func() tea.Msg {
		summaries, err := s.GetDailySummary(from, to)
		if err != nil {
			return historyDataMsg{err: err}
		}
		recent, err := s.ListSessions(store.SessionFilter{Limit: recentLimit})
		if err != nil {
			return historyDataMsg{err: err}
		}
		total, err := s.GetFocusTotal(string(timer.Focus), from, to)
		if err != nil {
			return historyDataMsg{err: err}
		}
		return historyDataMsg{summaries: summaries, recent: recent, focusTotal: total}
	}
}

// dateRange is the 7 UTC days ending today, shifted back by offset weeks.
func (h historyModel) dateRange() (time.Time, time.Time) {
	now := h.now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	end := today.AddDate(0, 0, 1-7*h.offset)
	return end.AddDate(0, 0, -7), end
}

func (h historyModel) update(msg tea.Msg) (historyModel, tea.Cmd) {
	switch msg := msg.(type) {
	case historyDataMsg:
		if msg.err != nil {
			return h, func() tea.Msg {
				return statusMsg{text: fmt.Sprintf("Error loading history: %v", msg.err), isError: true}
			}
		}
		h.summaries = msg.summaries
		h.recent = msg.recent
		h.focusTotal = msg.focusTotal
		h.buildChart()
		h.buildTable()
		return h, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Left):
			h.offset++
			return h, h.refresh()
		case key.Matches(msg, keys.Right):
			if h.offset > 0 {
				h.offset--
			}
			return h, h.refresh()
		}
	}
	return h, nil
}

func (h *historyModel) buildChart() {
	chartWidth := max(h.width-8, 20)
	chartHeight := 12
	if h.height > 30 {
		chartHeight = 16
	}

	h.chart = barchart.New(chartWidth, chartHeight)

	from, to := h.dateRange()

	var bars []barchart.BarData
	for d := from; d.Before(to); d = d.AddDate(0, 0, 1) {
		dateStr := d.Format("2006-01-02")

		var values []barchart.BarValue
		for _, s := range h.summaries {
			if s.Date != dateStr {
				continue
			}
			p := timer.Preset(s.Preset)
			values = append(values, barchart.BarValue{
				Name:  p.Label(),
				Value: float64(s.TotalSeconds) / 60.0,
				Style: lipgloss.NewStyle().Foreground(presetColor(p)),
			})
		}

		if len(values) == 0 {
			values = []barchart.BarValue{{Name: "", Value: 0, Style: lipgloss.NewStyle().Foreground(colorSubtle)}}
		}

		bars = append(bars, barchart.BarData{
			Label:  d.Format("Mon 02"),
			Values: values,
		})
	}

	h.chart.PushAll(bars)
	h.chart.Draw()
}

func (h *historyModel) buildTable() {
	rows := make([]table.Row, 0, len(h.recent))
	for _, s := range h.recent {
		rows = append(rows, table.Row{
			s.CompletedAt.Local().Format("Jan 02 15:04"),
			timer.Preset(s.Preset).Label(),
			formatSeconds(s.Duration),
		})
	}
	h.table.SetRows(rows)
}

func (h historyModel) view() string {
	w := h.width - 4

	from, to := h.dateRange()
	dateLabel := mutedStyle.Render(fmt.Sprintf("%s to %s", from.Format("Jan 02"), to.AddDate(0, 0, -1).Format("Jan 02, 2006")))
	total := highlightStyle.Render("focus " + formatDuration(time.Duration(h.focusTotal)*time.Second))

	header := lipgloss.JoinHorizontal(lipgloss.Bottom,
		titleStyle.Render("History"), "  ", dateLabel, "  ", total,
	)

	var recent string
	if len(h.recent) == 0 {
		recent = mutedStyle.Render("  No finished sessions yet")
	} else {
		recent = h.table.View()
	}

	nav := mutedStyle.Render("  ←/→: older/newer week  (minutes per day)")

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			header, "", h.chart.View(), "", h.renderLegend(), "", recent, "", nav,
		),
	)
}

func (h historyModel) renderLegend() string {
	var items []string
	for _, p := range timer.Presets {
		dot := lipgloss.NewStyle().Foreground(presetColor(p)).Render("●")
		items = append(items, fmt.Sprintf("%s %s", dot, p.Label()))
	}
	return "  " + strings.Join(items, "  ")
}
