package tui

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sadopc/tomato/internal/logging"
	"github.com/sadopc/tomato/internal/record"
	"github.com/sadopc/tomato/internal/store"
	"github.com/sadopc/tomato/internal/timer"
)

var t0 = time.Date(2024, 3, 6, 9, 0, 0, 0, time.UTC)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time          { return c.now }
func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

type testEnv struct {
	app     App
	clock   *fakeClock
	store   *store.Store
	records *record.Store
	dir     string
}

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.NewMemory()
	if err != nil {
		t.Fatalf("new memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	dir := t.TempDir()
	rs, err := record.Open(filepath.Join(dir, "record.json"))
	if err != nil {
		t.Fatal(err)
	}
	s := newTestStore(t)
	clock := &fakeClock{now: t0}
	app := NewApp(s, rs, timer.New(nil), Options{
		ExportDir: filepath.Join(dir, "exports"),
		Now:       clock.Now,
	})
	m, _ := app.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return &testEnv{app: m.(App), clock: clock, store: s, records: rs, dir: dir}
}

// send feeds msg to the app and keeps the resulting model.
func (e *testEnv) send(msg tea.Msg) tea.Cmd {
	m, cmd := e.app.Update(msg)
	e.app = m.(App)
	return cmd
}

// drain runs cmd and every message it yields back through the app,
// skipping scheduled wakes.
func (e *testEnv) drain(cmd tea.Cmd) {
	for _, msg := range collect(cmd) {
		if _, ok := msg.(wakeMsg); ok {
			continue
		}
		e.drain(e.send(msg))
	}
}

// collect runs cmd, flattening batches. Ticks are not run.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var keySpace = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}

// ============================================================
// Helpers
// ============================================================

func TestFormatClock(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "00:00"},
		{-time.Second, "00:00"},
		{1900 * time.Millisecond, "00:01"},
		{1500 * time.Second, "25:00"},
		{59*time.Minute + 59*time.Second, "59:59"},
		{time.Hour, "1:00:00"},
		{time.Hour + 61*time.Second, "1:01:01"},
		{90 * time.Minute, "1:30:00"},
		{24 * time.Hour, "24:00:00"},
	}

	for _, tt := range tests {
		got := formatClock(tt.d)
		if got != tt.want {
			t.Errorf("formatClock(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "00:00:00"},
		{time.Second, "00:00:01"},
		{time.Minute, "00:01:00"},
		{time.Hour, "01:00:00"},
		{time.Hour + time.Minute + time.Second, "01:01:01"},
		{25 * time.Hour, "25:00:00"},
	}

	for _, tt := range tests {
		got := formatDuration(tt.d)
		if got != tt.want {
			t.Errorf("formatDuration(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestFormatSecondsAndMinutes(t *testing.T) {
	if got := formatSeconds(1500); got != "00:25:00" {
		t.Fatalf("formatSeconds(1500) = %q", got)
	}
	if got := formatMinutes(900); got != "15m" {
		t.Fatalf("formatMinutes(900) = %q", got)
	}
}

func TestMinToDuration(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Duration
		wantErr bool
	}{
		{"25", 25 * time.Minute, false},
		{" 5 ", 5 * time.Minute, false},
		{"1440", 24 * time.Hour, false},
		{"0", 0, true},
		{"-3", 0, true},
		{"1441", 0, true},
		{"ten", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		got, err := minToDuration(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("minToDuration(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("minToDuration(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestDurationToMin(t *testing.T) {
	if got := durationToMin(25 * time.Minute); got != "25" {
		t.Fatalf("expected 25, got %s", got)
	}
	if got := durationToMin(90 * time.Second); got != "1" {
		t.Fatalf("expected 1, got %s", got)
	}
}

// ============================================================
// Timer view
// ============================================================

func TestTimerToggleSchedulesWake(t *testing.T) {
	e := newTestEnv(t)

	cmd := e.send(keySpace)
	if !e.app.machine.Ticking() {
		t.Fatal("space should start the countdown")
	}
	if cmd == nil {
		t.Fatal("a running countdown must schedule a wake")
	}

	e.clock.Advance(10 * time.Second)
	cmd = e.send(keySpace)
	if e.app.machine.Ticking() {
		t.Fatal("second space should pause")
	}
	if cmd != nil {
		t.Fatal("a paused countdown must not schedule a wake")
	}
	if got := e.app.machine.Remaining(); got != 1490*time.Second {
		t.Fatalf("pause should count time since the last wake, remaining = %v", got)
	}
}

func TestTimerWakeTicks(t *testing.T) {
	e := newTestEnv(t)
	e.send(keySpace)

	cmd := e.send(wakeMsg{gen: e.app.timer.gen, at: t0.Add(5 * time.Second)})
	if got := e.app.machine.Remaining(); got != 1495*time.Second {
		t.Fatalf("expected 1495s remaining, got %v", got)
	}
	if cmd == nil {
		t.Fatal("wake should schedule the next one")
	}
}

func TestTimerStaleWakeDropped(t *testing.T) {
	e := newTestEnv(t)
	e.send(keySpace)
	stale := e.app.timer.gen

	e.send(keySpace) // pause
	e.send(keySpace) // resume, new generation
	if e.app.timer.gen == stale {
		t.Fatal("rescheduling must bump the generation")
	}

	e.send(wakeMsg{gen: stale, at: t0.Add(time.Hour)})
	if got := e.app.machine.Remaining(); got != 1500*time.Second {
		t.Fatalf("stale wake should be ignored, remaining = %v", got)
	}
	if !e.app.machine.Ticking() {
		t.Fatal("stale wake should not expire the countdown")
	}
}

func TestTimerWakeRoutedFromOtherViews(t *testing.T) {
	e := newTestEnv(t)
	e.send(keySpace)
	e.send(tea.KeyMsg{Type: tea.KeyTab})
	if e.app.activeView != viewHistory {
		t.Fatalf("expected history view, got %d", e.app.activeView)
	}

	e.send(wakeMsg{gen: e.app.timer.gen, at: t0.Add(time.Minute)})
	if got := e.app.machine.Remaining(); got != 1440*time.Second {
		t.Fatalf("expected 1440s remaining, got %v", got)
	}
}

func TestTimerExpiryLogsSession(t *testing.T) {
	e := newTestEnv(t)
	e.send(keyRunes("2"))
	e.send(keySpace)

	cmd := e.send(wakeMsg{gen: e.app.timer.gen, at: t0.Add(301 * time.Second)})
	if e.app.machine.Ticking() {
		t.Fatal("countdown should be idle after expiry")
	}
	if e.app.machine.Preset() != timer.Focus || e.app.machine.Remaining() != 1500*time.Second {
		t.Fatal("expiry should reload the default preset")
	}

	e.drain(cmd)

	sessions, err := e.store.ListSessions(store.SessionFilter{})
	if err != nil {
		t.Fatal(err)
	}
	if len(sessions) != 1 {
		t.Fatalf("expected 1 session, got %d", len(sessions))
	}
	if sessions[0].Preset != "short-break" || sessions[0].Duration != 300 {
		t.Fatalf("unexpected session: %+v", sessions[0])
	}
	if !sessions[0].CompletedAt.Equal(t0.Add(301 * time.Second)) {
		t.Fatalf("unexpected completion time %v", sessions[0].CompletedAt)
	}
	if !strings.Contains(e.app.status, "Short break finished") {
		t.Fatalf("expected finish status, got %q", e.app.status)
	}
}

func TestTimerFocusExpiryCountsRound(t *testing.T) {
	e := newTestEnv(t)
	e.send(keySpace)
	e.drain(e.send(wakeMsg{gen: e.app.timer.gen, at: t0.Add(25 * time.Minute)}))

	if e.app.timer.completed != 1 {
		t.Fatalf("expected 1 completed pomodoro, got %d", e.app.timer.completed)
	}
}

func TestTimerCommandAfterDeadlineOnlyExpires(t *testing.T) {
	e := newTestEnv(t)
	e.send(keySpace)

	// The wake never arrived; the key press notices the countdown ended.
	e.clock.Advance(2 * time.Hour)
	e.drain(e.send(keyRunes("3")))

	if e.app.machine.Preset() != timer.Focus {
		t.Fatalf("preset change should be skipped after expiry, got %s", e.app.machine.Preset())
	}
	sessions, _ := e.store.ListSessions(store.SessionFilter{})
	if len(sessions) != 1 {
		t.Fatalf("expected the expired countdown to be logged, got %d sessions", len(sessions))
	}
}

func TestTimerPresetKeys(t *testing.T) {
	tests := []struct {
		key    string
		preset timer.Preset
		want   time.Duration
	}{
		{"1", timer.Focus, 1500 * time.Second},
		{"2", timer.ShortBreak, 300 * time.Second},
		{"3", timer.LongBreak, 900 * time.Second},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			e := newTestEnv(t)
			if tt.key == "1" {
				e.send(keyRunes("3"))
			}
			e.send(keyRunes(tt.key))
			if e.app.machine.Preset() != tt.preset {
				t.Fatalf("expected %s, got %s", tt.preset, e.app.machine.Preset())
			}
			if e.app.machine.Remaining() != tt.want {
				t.Fatalf("expected %v, got %v", tt.want, e.app.machine.Remaining())
			}
		})
	}
}

func TestTimerReset(t *testing.T) {
	e := newTestEnv(t)
	e.send(keyRunes("3"))
	e.send(keySpace)
	e.clock.Advance(time.Minute)

	cmd := e.send(keyRunes("r"))
	if e.app.machine.Remaining() != 1500*time.Second {
		t.Fatalf("reset should load the default, got %v", e.app.machine.Remaining())
	}
	if !e.app.machine.Ticking() || cmd == nil {
		t.Fatal("reset keeps a running countdown running")
	}
}

func TestTimerView(t *testing.T) {
	e := newTestEnv(t)
	out := e.app.View()
	for _, want := range []string{"25:00", "Pomodoro", "ready"} {
		if !strings.Contains(out, want) {
			t.Fatalf("timer view missing %q", want)
		}
	}

	e.send(keySpace)
	e.send(wakeMsg{gen: e.app.timer.gen, at: t0.Add(61 * time.Second)})
	if out := e.app.View(); !strings.Contains(out, "23:59") {
		t.Fatal("timer view should show the remaining time")
	}
}

func TestTimerViewLongPreset(t *testing.T) {
	e := newTestEnv(t)
	e.app.machine.SetDurations(timer.Durations{timer.Focus: 90 * time.Minute})
	e.app.machine.Reset()

	if out := e.app.View(); !strings.Contains(out, "1:30:00") {
		t.Fatal("presets of an hour or more should show hours")
	}
}

// ============================================================
// Record view
// ============================================================

func enterRecordView(t *testing.T, e *testEnv) {
	t.Helper()
	for e.app.activeView != viewRecord {
		e.drain(e.send(tea.KeyMsg{Type: tea.KeyTab}))
	}
}

func TestRecordViewEmptyFileIsNotFatal(t *testing.T) {
	e := newTestEnv(t)
	enterRecordView(t, e)

	if !e.app.record.loaded {
		t.Fatal("entering the view should load the record")
	}
	if !errors.Is(e.app.record.err, record.ErrEmpty) {
		t.Fatalf("expected empty-record error, got %v", e.app.record.err)
	}
	if out := e.app.View(); !strings.Contains(out, "No record saved yet") {
		t.Fatal("view should explain the empty record")
	}
}

func TestRecordViewMalformedFile(t *testing.T) {
	var logs bytes.Buffer
	logging.Init(logging.Config{Output: &logs})
	t.Cleanup(func() { logging.Init(logging.Config{Output: io.Discard}) })

	e := newTestEnv(t)
	os.WriteFile(e.records.Path(), []byte("{nope"), 0o644)
	enterRecordView(t, e)

	if !record.IsDecodeError(e.app.record.err) {
		t.Fatalf("expected decode error, got %v", e.app.record.err)
	}
	if out := e.app.View(); !strings.Contains(out, "not valid") {
		t.Fatal("view should report the malformed file")
	}
	if !strings.Contains(logs.String(), "level=WARN") {
		t.Fatalf("malformed record should be logged as a warning, got %q", logs.String())
	}
}

func TestRecordViewShowsRecord(t *testing.T) {
	e := newTestEnv(t)
	e.records.Put(record.Record{ID: "aalt", Note: "2.5"})
	enterRecordView(t, e)

	if e.app.record.err != nil {
		t.Fatal(e.app.record.err)
	}
	out := e.app.View()
	if !strings.Contains(out, "aalt") || !strings.Contains(out, "2.5") {
		t.Fatal("view should show id and note")
	}
}

func TestRecordSave(t *testing.T) {
	e := newTestEnv(t)
	enterRecordView(t, e)

	e.drain(e.app.record.save(record.Record{ID: "me", Note: "deep work"}))

	got, err := e.records.Get()
	if err != nil {
		t.Fatal(err)
	}
	if got.ID != "me" || got.Note != "deep work" {
		t.Fatalf("unexpected record %+v", got)
	}
	if e.app.record.err != nil || e.app.record.rec != got {
		t.Fatal("view should show the saved record")
	}
	if e.app.status != "Record saved" {
		t.Fatalf("unexpected status %q", e.app.status)
	}
}

func TestRecordSaveError(t *testing.T) {
	e := newTestEnv(t)
	enterRecordView(t, e)
	os.Remove(e.records.Path())
	os.Mkdir(e.records.Path(), 0o755)

	e.drain(e.app.record.save(record.Record{ID: "x"}))
	if !e.app.statusErr {
		t.Fatal("a failed save should be an error status")
	}
	if !record.IsIOError(e.app.record.err) {
		t.Fatalf("expected IOError, got %v", e.app.record.err)
	}
}

func TestRenderNeverWritesRecord(t *testing.T) {
	e := newTestEnv(t)
	for v := range viewNames {
		e.app.activeView = viewState(v)
		e.app.View()
	}

	info, err := os.Stat(e.records.Path())
	if err != nil {
		t.Fatal(err)
	}
	if info.Size() != 0 {
		t.Fatal("rendering must not write the record file")
	}
}

func TestRecordFormOpens(t *testing.T) {
	e := newTestEnv(t)
	enterRecordView(t, e)

	e.send(keyRunes("e"))
	if !e.app.isFormActive() {
		t.Fatal("e should open the record form")
	}

	e.send(tea.KeyMsg{Type: tea.KeyEscape})
	if e.app.isFormActive() {
		t.Fatal("esc should close the form")
	}
}

// ============================================================
// Settings view
// ============================================================

func TestSettingsSave(t *testing.T) {
	e := newTestEnv(t)
	d := timer.Durations{
		timer.Focus:      50 * time.Minute,
		timer.ShortBreak: 10 * time.Minute,
		timer.LongBreak:  20 * time.Minute,
	}

	e.drain(e.app.settings.save(d))

	if got := e.app.machine.Durations()[timer.ShortBreak]; got != 10*time.Minute {
		t.Fatalf("machine should use the new durations, got %v", got)
	}
	if got := e.app.machine.Remaining(); got != 50*time.Minute {
		t.Fatalf("untouched idle countdown should pick up the new length, got %v", got)
	}

	stored, err := e.store.Durations(nil)
	if err != nil {
		t.Fatal(err)
	}
	if stored[timer.LongBreak] != 20*time.Minute {
		t.Fatalf("durations should be persisted, got %v", stored[timer.LongBreak])
	}
}

func TestSettingsSaveKeepsRunningCountdown(t *testing.T) {
	e := newTestEnv(t)
	e.send(keySpace)

	e.drain(e.app.settings.save(timer.Durations{timer.Focus: time.Hour}))
	if got := e.app.machine.Remaining(); got != 1500*time.Second {
		t.Fatalf("running countdown must not change, got %v", got)
	}
}

func TestSettingsFormDurations(t *testing.T) {
	s := newTestStore(t)
	sm := newSettingsModel(s, timer.New(nil))
	*sm.focus = "45"
	*sm.shortBreak = "bad"
	*sm.longBreak = "30"

	d := sm.formDurations()
	if d[timer.Focus] != 45*time.Minute || d[timer.LongBreak] != 30*time.Minute {
		t.Fatalf("unexpected durations %v", d)
	}
	if d[timer.ShortBreak] != 5*time.Minute {
		t.Fatal("invalid input keeps the current value")
	}
}

func TestSettingsView(t *testing.T) {
	e := newTestEnv(t)
	e.app.activeView = viewSettings
	out := e.app.View()
	for _, want := range []string{"Pomodoro", "25 min", "Short break", "5 min", "Long break", "15 min"} {
		if !strings.Contains(out, want) {
			t.Fatalf("settings view missing %q", want)
		}
	}
}

// ============================================================
// History view
// ============================================================

func TestHistoryRefresh(t *testing.T) {
	e := newTestEnv(t)
	e.store.RecordSession("focus", 25*time.Minute, t0.Add(-time.Hour))
	e.store.RecordSession("focus", 25*time.Minute, t0.Add(-24*time.Hour))
	e.store.RecordSession("short-break", 5*time.Minute, t0.Add(-30*time.Minute))
	e.store.RecordSession("focus", 25*time.Minute, t0.Add(-30*24*time.Hour))

	e.drain(e.send(tea.KeyMsg{Type: tea.KeyTab}))

	h := e.app.history
	if len(h.summaries) != 3 {
		t.Fatalf("expected 3 summary rows, got %d", len(h.summaries))
	}
	if len(h.recent) != 4 {
		t.Fatalf("expected 4 recent sessions, got %d", len(h.recent))
	}
	if h.focusTotal != 3000 {
		t.Fatalf("expected 3000s focus this week, got %d", h.focusTotal)
	}
	if out := e.app.View(); !strings.Contains(out, "History") {
		t.Fatal("history view should render")
	}
}

func TestHistoryPaging(t *testing.T) {
	e := newTestEnv(t)
	e.drain(e.send(tea.KeyMsg{Type: tea.KeyTab}))

	from, to := e.app.history.dateRange()
	if !to.Equal(time.Date(2024, 3, 7, 0, 0, 0, 0, time.UTC)) || to.Sub(from) != 7*24*time.Hour {
		t.Fatalf("unexpected range %v to %v", from, to)
	}

	e.drain(e.send(tea.KeyMsg{Type: tea.KeyLeft}))
	if e.app.history.offset != 1 {
		t.Fatalf("left should page back, offset = %d", e.app.history.offset)
	}
	prevFrom, prevTo := e.app.history.dateRange()
	if !prevTo.Equal(from) || prevTo.Sub(prevFrom) != 7*24*time.Hour {
		t.Fatalf("unexpected previous range %v to %v", prevFrom, prevTo)
	}

	e.drain(e.send(tea.KeyMsg{Type: tea.KeyRight}))
	e.drain(e.send(tea.KeyMsg{Type: tea.KeyRight}))
	if e.app.history.offset != 0 {
		t.Fatalf("right stops at the current week, offset = %d", e.app.history.offset)
	}
}

// ============================================================
// Export
// ============================================================

func TestExportPicker(t *testing.T) {
	e := newTestEnv(t)
	e.store.RecordSession("focus", 25*time.Minute, t0)

	e.send(keyRunes("x"))
	if !e.app.exportPicking {
		t.Fatal("x should open the export picker")
	}
	e.send(tea.KeyMsg{Type: tea.KeyDown})
	e.send(tea.KeyMsg{Type: tea.KeyDown})
	e.send(tea.KeyMsg{Type: tea.KeyDown})
	if e.app.exportCursor != 2 {
		t.Fatalf("cursor should stop at the last format, got %d", e.app.exportCursor)
	}

	e.drain(e.send(tea.KeyMsg{Type: tea.KeyEnter}))
	if e.app.exportPicking {
		t.Fatal("picker should close after export")
	}

	path := filepath.Join(e.dir, "exports", "tomato-export-2024-03-06.yaml")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("export file missing: %v", err)
	}
	if !strings.Contains(string(data), "preset: focus") {
		t.Fatalf("unexpected export content:\n%s", data)
	}
	if !strings.Contains(e.app.status, path) {
		t.Fatalf("status should name the file, got %q", e.app.status)
	}
}

func TestExportPickerCancel(t *testing.T) {
	e := newTestEnv(t)
	e.send(keyRunes("x"))
	e.send(tea.KeyMsg{Type: tea.KeyEscape})
	if e.app.exportPicking {
		t.Fatal("esc should close the picker")
	}
}

// ============================================================
// App model
// ============================================================

func TestNewApp(t *testing.T) {
	e := newTestEnv(t)

	if e.app.activeView != viewTimer {
		t.Fatal("default view should be the timer")
	}
	if e.app.showHelp {
		t.Fatal("help should be hidden by default")
	}
	if e.app.exportPicking {
		t.Fatal("export picker should be hidden by default")
	}
	if e.app.isFormActive() {
		t.Fatal("no forms should be active initially")
	}
}

func TestAppTabCycles(t *testing.T) {
	e := newTestEnv(t)
	for i := 1; i <= len(viewNames); i++ {
		e.drain(e.send(tea.KeyMsg{Type: tea.KeyTab}))
		if want := viewState(i % len(viewNames)); e.app.activeView != want {
			t.Fatalf("after %d tabs expected view %d, got %d", i, want, e.app.activeView)
		}
	}

	e.drain(e.send(tea.KeyMsg{Type: tea.KeyShiftTab}))
	if e.app.activeView != viewSettings {
		t.Fatalf("shift+tab from the first view should wrap, got %d", e.app.activeView)
	}
}

func TestAppViewStates(t *testing.T) {
	e := newTestEnv(t)

	for v := range viewNames {
		e.app.activeView = viewState(v)
		if e.app.View() == "" {
			t.Fatalf("view %d rendered empty", v)
		}
	}
}

func TestAppRenderHeaderContainsAllTabs(t *testing.T) {
	e := newTestEnv(t)

	header := e.app.renderHeader()
	for _, name := range viewNames {
		if !strings.Contains(header, name) {
			t.Fatalf("header missing tab %q", name)
		}
	}
}

func TestAppFooterShowsCountdownElsewhere(t *testing.T) {
	e := newTestEnv(t)
	e.send(keySpace)
	e.app.activeView = viewSettings

	if footer := e.app.renderFooter(); !strings.Contains(footer, "25:00") {
		t.Fatal("footer should show the running countdown")
	}
}

func TestAppLoadingState(t *testing.T) {
	s := newTestStore(t)
	rs, _ := record.Open(filepath.Join(t.TempDir(), "r.json"))
	app := NewApp(s, rs, timer.New(nil), Options{})
	// Width 0 means not yet sized
	if output := app.View(); output != "Loading..." {
		t.Fatalf("expected 'Loading...', got %q", output)
	}
}

func TestAppStatusMessage(t *testing.T) {
	e := newTestEnv(t)
	e.send(statusMsg{text: "disk on fire", isError: true})

	if !e.app.statusErr {
		t.Fatal("error flag should be kept")
	}
	if footer := e.app.renderFooter(); !strings.Contains(footer, "disk on fire") {
		t.Fatal("footer should contain status message")
	}
}

func TestAppQuit(t *testing.T) {
	e := newTestEnv(t)
	cmd := e.send(keyRunes("q"))
	if cmd == nil {
		t.Fatal("q should quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatal("q should produce a quit message")
	}
}

// ============================================================
// Key bindings and styles
// ============================================================

func TestKeyMapShortHelp(t *testing.T) {
	if len(keys.ShortHelp()) == 0 {
		t.Fatal("short help should have bindings")
	}
}

func TestKeyMapFullHelp(t *testing.T) {
	groups := keys.FullHelp()
	if len(groups) == 0 {
		t.Fatal("full help should have groups")
	}
	for i, g := range groups {
		if len(g) == 0 {
			t.Fatalf("full help group %d is empty", i)
		}
	}
}

func TestPresetColor(t *testing.T) {
	if presetColor(timer.Focus) != colorPrimary {
		t.Fatal("focus should use the primary color")
	}
	if presetColor(timer.Preset("nap")) != colorMuted {
		t.Fatal("unknown presets should be muted")
	}
}
