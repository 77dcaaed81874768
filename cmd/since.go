package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/markusmobius/go-dateparser"
)

// parseSince turns a --since value such as "yesterday", "3 days ago" or
// "2024-03-01" into a time. An empty value means no lower bound.
func parseSince(s string, now time.Time) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	cfg := &dateparser.Configuration{
		CurrentTime: now,
	}
	result, err := dateparser.Parse(cfg, s)
	if err != nil {
		return nil, fmt.Errorf("invalid --since %q: %w", s, err)
	}
	if result.Time.IsZero() {
		return nil, fmt.Errorf("invalid --since %q", s)
	}
	t := result.Time
	return &t, nil
}
