package export

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/sadopc/tomato/internal/store"
	"gopkg.in/yaml.v3"
)

// document is the shape shared by the JSON and YAML exports.
type document struct {
	ExportedAt string  `json:"exported_at" yaml:"exported_at"`
	Count      int     `json:"count" yaml:"count"`
	Sessions   []entry `json:"sessions" yaml:"sessions"`
}

type entry struct {
	ID          int64  `json:"id" yaml:"id"`
	Preset      string `json:"preset" yaml:"preset"`
	CompletedAt string `json:"completed_at" yaml:"completed_at"`
	DurationSec int64  `json:"duration_seconds" yaml:"duration_seconds"`
	Duration    string `json:"duration" yaml:"duration"`
}

func newDocument(sessions []store.Session) document {
	doc := document{
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Count:      len(sessions),
	}
	for _, s := range sessions {
		doc.Sessions = append(doc.Sessions, entry{
			ID:          s.ID,
			Preset:      s.Preset,
			CompletedAt: s.CompletedAt.Local().Format(time.RFC3339),
			DurationSec: s.Duration,
			Duration:    formatDuration(s.Duration),
		})
	}
	return doc
}

func ToJSON(sessions []store.Session, path string) error {
	data, err := json.MarshalIndent(newDocument(sessions), "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write json file: %w", err)
	}
	return nil
}

func ToYAML(sessions []store.Session, path string) error {
	data, err := yaml.Marshal(newDocument(sessions))
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write yaml file: %w", err)
	}
	return nil
}
