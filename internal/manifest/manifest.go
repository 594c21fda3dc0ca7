// Package manifest defines the handoff contract between extraction and
// ingestion: an ordered list of successfully processed raw files and the
// artifacts derived from them. The manifest is regenerated on every pipeline
// run and is the only input the ingestion engine reads.
package manifest

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// Entry types. A manifest entry is either a tabular extract or a text blob.
const (
	TypeTable = "table"
	TypeText  = "text"
)

// FileName is the manifest artifact name inside the processed directory.
const FileName = "manifest.json"

var (
	// ErrMissing is returned when the manifest file does not exist.
	// Ingestion treats this as fatal, distinct from an empty run.
	ErrMissing = errors.New("manifest not found")
	// ErrEmpty is returned when the manifest exists but lists no entries.
	ErrEmpty = errors.New("manifest is empty")
)

// Entry describes one extraction output.
type Entry struct {
	Source string `json:"source"`
	Type   string `json:"type"`
	Sheet  string `json:"sheet,omitempty"`
	Output string `json:"output"`
}

// Write persists entries as indented JSON at path.
func Write(path string, entries []Entry) error {
	if entries == nil {
		entries = []Entry{}
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal manifest: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write manifest %s: %w", path, err)
	}
	return nil
}

// Load reads the manifest at path. It returns ErrMissing if the file does
// not exist and ErrEmpty if it contains no entries.
func Load(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrMissing, path)
		}
		return nil, fmt.Errorf("read manifest %s: %w", path, err)
	}
	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("decode manifest %s: %w", path, err)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmpty, path)
	}
	return entries, nil
}
