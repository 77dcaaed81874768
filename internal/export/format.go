// Package export writes completed sessions to files.
package export

import (
	"fmt"
	"strings"

	"github.com/sadopc/tomato/internal/store"
)

// Format is an export file type.
type Format string

const (
	CSV  Format = "csv"
	JSON Format = "json"
	YAML Format = "yaml"
)

// Formats lists the supported formats in menu order.
var Formats = []Format{CSV, JSON, YAML}

// ParseFormat maps a name or file extension to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), ".")) {
	case "csv":
		return CSV, nil
	case "json":
		return JSON, nil
	case "yaml", "yml":
		return YAML, nil
	}
	return "", fmt.Errorf("unknown export format %q (want csv, json or yaml)", s)
}

// Ext is the file extension for f, without the dot.
func (f Format) Ext() string {
	return string(f)
}

// Write exports sessions to path in format f.
func Write(f Format, sessions []store.Session, path string) error {
	switch f {
	case CSV:
		return ToCSV(sessions, path)
	case JSON:
		return ToJSON(sessions, path)
	case YAML:
		return ToYAML(sessions, path)
	}
	return fmt.Errorf("unknown export format %q", string(f))
}
