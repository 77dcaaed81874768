package tui

import (
	"fmt"
	"time"

	"github.com/sadopc/tomato/internal/record"
	"github.com/sadopc/tomato/internal/store"
	"github.com/sadopc/tomato/internal/timer"
)

// viewState represents the currently active view.
type viewState int

const (
	viewTimer viewState = iota
	viewHistory
	viewRecord
	viewSettings
)

var viewNames = []string{"Timer", "History", "Record", "Settings"}

// --- Messages ---

// wakeMsg is a scheduled tick. gen identifies the schedule that produced
// it; a wake whose gen is no longer current was cancelled.
type wakeMsg struct {
	gen int
	at  time.Time
}

type sessionLoggedMsg struct {
	session *store.Session
}

type recordLoadedMsg struct {
	rec record.Record
	err error
}

type recordSavedMsg struct {
	rec record.Record
	err error
}

type durationsSavedMsg struct {
	durations timer.Durations
}

type statusMsg struct {
	text    string
	isError bool
}

type exportDoneMsg struct {
	path string
}

// --- Helpers ---

// formatClock renders a countdown as MM:SS, or H:MM:SS from one hour up.
func formatClock(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	secs := int64(d / time.Second)
	if secs >= 3600 {
		return fmt.Sprintf("%d:%02d:%02d", secs/3600, (secs%3600)/60, secs%60)
	}
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}

func formatDuration(d time.Duration) string {
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

func formatSeconds(secs int64) string {
	return formatDuration(time.Duration(secs) * time.Second)
}

func formatMinutes(secs int64) string {
	return fmt.Sprintf("%dm", secs/60)
}
