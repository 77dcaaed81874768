package store

import (
	"fmt"
	"time"
)

// RecordSession stores a finished countdown.
func (s *Store) RecordSession(preset string, duration time.Duration, completedAt time.Time) (*Session, error) {
	res, err := s.db.Exec(
		`INSERT INTO sessions (preset, duration, completed_at) VALUES (?, ?, ?)`,
		preset, int64(duration/time.Second), completedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return nil, fmt.Errorf("record session: %w", err)
	}
	id, _ := res.LastInsertId()
	return s.GetSession(id)
}

func (s *Store) GetSession(id int64) (*Session, error) {
	sess := &Session{}
	var completedAt string
	err := s.db.QueryRow(
		`SELECT id, preset, duration, completed_at FROM sessions WHERE id = ?`, id,
	).Scan(&sess.ID, &sess.Preset, &sess.Duration, &completedAt)
	if err != nil {
		return nil, fmt.Errorf("get session %d: %w", id, err)
	}
	sess.CompletedAt, _ = time.Parse(time.RFC3339, completedAt)
	return sess, nil
}

// ListSessions returns matching sessions, newest first.
func (s *Store) ListSessions(f SessionFilter) ([]Session, error) {
	query := `SELECT id, preset, duration, completed_at FROM sessions WHERE 1=1`
	var args []any

	if f.Preset != "" {
		query += ` AND preset = ?`
		args = append(args, f.Preset)
	}
	if f.From != nil {
		query += ` AND completed_at >= ?`
		args = append(args, f.From.UTC().Format(time.RFC3339))
	}
	if f.To != nil {
		query += ` AND completed_at < ?`
		args = append(args, f.To.UTC().Format(time.RFC3339))
	}
	query += ` ORDER BY completed_at DESC, id DESC`
	if f.Limit > 0 {
		query += fmt.Sprintf(` LIMIT %d`, f.Limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	var sessions []Session
	for rows.Next() {
		var sess Session
		var completedAt string
		if err := rows.Scan(&sess.ID, &sess.Preset, &sess.Duration, &completedAt); err != nil {
			return nil, err
		}
		sess.CompletedAt, _ = time.Parse(time.RFC3339, completedAt)
		sessions = append(sessions, sess)
	}
	return sessions, rows.Err()
}

// GetDailySummary totals sessions per UTC day and preset in [from, to).
func (s *Store) GetDailySummary(from, to time.Time) ([]DailySummary, error) {
	rows, err := s.db.Query(`
		SELECT date(completed_at) AS day, preset,
		       COALESCE(SUM(duration), 0), COUNT(*)
		FROM sessions
		WHERE completed_at >= ? AND completed_at < ?
		GROUP BY day, preset
		ORDER BY day, preset`,
		from.UTC().Format(time.RFC3339), to.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return nil, fmt.Errorf("daily summary: %w", err)
	}
	defer rows.Close()

	var summaries []DailySummary
	for rows.Next() {
		var ds DailySummary
		if err := rows.Scan(&ds.Date, &ds.Preset, &ds.TotalSeconds, &ds.SessionCount); err != nil {
			return nil, err
		}
		summaries = append(summaries, ds)
	}
	return summaries, rows.Err()
}

// GetFocusTotal sums the seconds of completed sessions of preset in [from, to).
func (s *Store) GetFocusTotal(preset string, from, to time.Time) (int64, error) {
	var total int64
	err := s.db.QueryRow(`
		SELECT COALESCE(SUM(duration), 0)
		FROM sessions
		WHERE preset = ? AND completed_at >= ? AND completed_at < ?`,
		preset, from.UTC().Format(time.RFC3339), to.UTC().Format(time.RFC3339),
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("focus total: %w", err)
	}
	return total, nil
}
