package store

import "time"

// Session is a countdown that ran to zero.
type Session struct {
	ID          int64
	Preset      string
	Duration    int64 // seconds
	CompletedAt time.Time
}

type Setting struct {
	Key   string
	Value string
}

// SessionFilter is used to filter sessions in queries.
type SessionFilter struct {
	Preset string
	From   *time.Time
	To     *time.Time
	Limit  int
}

// DailySummary is the time spent per preset per day.
type DailySummary struct {
	Date         string
	Preset       string
	TotalSeconds int64
	SessionCount int
}
