// Package record keeps a single {id, note} record in a JSON file.
//
// The whole file is the record: Put replaces it, Get decodes it. There is
// no locking; one process writes at a time.
package record

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// Record is the persisted unit: who is using the timer and a free-form note.
type Record struct {
	ID   string `json:"id"`
	Note string `json:"note"`
}

// wireRecord uses pointers so a missing field is distinguishable from an
// empty string.
type wireRecord struct {
	ID   *string `json:"id"`
	Note *string `json:"note"`
}

// Store is a handle on the backing file.
type Store struct {
	path string
}

// Open makes sure a file exists at path, creating it (and its directory)
// empty if needed. An existing file is left as is.
func Open(path string) (*Store, error) {
	if path == "" {
		return nil, &IOError{Op: "open", Path: path, Err: errors.New("empty path")}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, &IOError{Op: "open", Path: path, Err: err}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, &IOError{Op: "open", Path: path, Err: err}
	}
	if err := f.Close(); err != nil {
		return nil, &IOError{Op: "open", Path: path, Err: err}
	}
	return &Store{path: path}, nil
}

// Path returns the backing file location.
func (s *Store) Path() string {
	return s.path
}

// Put overwrites the backing file with r. The new content is written to a
// temporary file next to the target and renamed over it, keeping the
// target's permissions. Fields that are not valid UTF-8 cannot be stored
// in JSON unchanged and fail with an EncodeError.
func (s *Store) Put(r Record) error {
	if !utf8.ValidString(r.ID) {
		return &EncodeError{Err: fmt.Errorf("field %q is not valid UTF-8", "id")}
	}
	if !utf8.ValidString(r.Note) {
		return &EncodeError{Err: fmt.Errorf("field %q is not valid UTF-8", "note")}
	}

	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return &EncodeError{Err: err}
	}
	data = append(data, '\n')

	tmp, err := os.CreateTemp(filepath.Dir(s.path), "."+filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return &IOError{Op: "write", Path: s.path, Err: err}
	}
	tmpPath := tmp.Name()

	mode := os.FileMode(0o644)
	if info, err := os.Stat(s.path); err == nil {
		mode = info.Mode().Perm()
	}
	if err := tmp.Chmod(mode); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return &IOError{Op: "write", Path: s.path, Err: err}
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return &IOError{Op: "write", Path: s.path, Err: err}
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return &IOError{Op: "write", Path: s.path, Err: err}
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		_ = os.Remove(tmpPath)
		return &IOError{Op: "write", Path: s.path, Err: err}
	}
	return nil
}

// Get reads and decodes the current record. An empty file, invalid JSON,
// a missing or unknown field, or trailing content is a DecodeError.
func (s *Store) Get() (Record, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return Record{}, &IOError{Op: "read", Path: s.path, Err: err}
	}
	return decode(s.path, data)
}

func decode(path string, data []byte) (Record, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return Record{}, &DecodeError{Path: path, Err: ErrEmpty}
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	var w wireRecord
	if err := dec.Decode(&w); err != nil {
		return Record{}, &DecodeError{Path: path, Err: err}
	}
	if _, err := dec.Token(); err != io.EOF {
		return Record{}, &DecodeError{Path: path, Err: errors.New("trailing data after record")}
	}
	if w.ID == nil {
		return Record{}, &DecodeError{Path: path, Err: fmt.Errorf("missing field %q", "id")}
	}
	if w.Note == nil {
		return Record{}, &DecodeError{Path: path, Err: fmt.Errorf("missing field %q", "note")}
	}
	return Record{ID: *w.ID, Note: *w.Note}, nil
}
