// Package artifacts persists extraction outputs (delimited-text tables and
// plain-text blobs) under the processed directory. Artifact paths recorded in
// the manifest point at files written through this store.
package artifacts

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"socialsupport-backend/internal/shared/util"
)

// Store writes artifacts into a base directory on the local filesystem.
type Store struct {
	baseDir string
}

// New creates a store rooted at baseDir, creating the directory if needed.
func New(baseDir string) (*Store, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create artifacts dir %s: %w", baseDir, err)
	}
	return &Store{baseDir: baseDir}, nil
}

// Dir returns the store's base directory.
func (s *Store) Dir() string {
	return s.baseDir
}

// SaveCSV writes rows as a CSV artifact and returns its path.
func (s *Store) SaveCSV(name string, rows [][]string) (string, error) {
	path, err := s.pathFor(name)
	if err != nil {
		return "", err
	}
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create artifact %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return "", fmt.Errorf("write artifact %s: %w", path, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("flush artifact %s: %w", path, err)
	}
	return path, nil
}

// SaveText writes a text blob artifact and returns its path.
func (s *Store) SaveText(name string, text string) (string, error) {
	path, err := s.pathFor(name)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return "", fmt.Errorf("write artifact %s: %w", path, err)
	}
	return path, nil
}

// ReadCSV reads a CSV artifact back as rows. Records may have varying field
// counts; no shape is enforced here.
func (s *Store) ReadCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open artifact %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read artifact %s: %w", path, err)
	}
	return rows, nil
}

// ReadText reads a text artifact back as a string.
func (s *Store) ReadText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read artifact %s: %w", path, err)
	}
	return string(data), nil
}

func (s *Store) pathFor(name string) (string, error) {
	clean, err := util.SanitizeFileName(name)
	if err != nil {
		return "", fmt.Errorf("artifact name %q: %w", name, err)
	}
	return filepath.Join(s.baseDir, clean), nil
}
