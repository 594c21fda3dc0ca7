package ingest

import (
	"errors"
	"fmt"
	"strings"
)

// ErrColumnMissing is returned when a required logical column cannot be
// resolved against a table's header row.
var ErrColumnMissing = errors.New("missing expected column")

// columnResolver maps logical field names onto a table's actual header row.
// Headers vary across uploads ("Description", "Transaction Desc", "DESC"),
// so lookups are case-insensitive substring matches, first hit wins.
type columnResolver struct {
	headers []string
}

func newColumnResolver(header []string) columnResolver {
	lowered := make([]string, len(header))
	for i, h := range header {
		lowered[i] = strings.ToLower(strings.TrimSpace(h))
	}
	return columnResolver{headers: lowered}
}

// exact returns the index of the header equal to name, if any.
func (r columnResolver) exact(name string) (int, bool) {
	for i, h := range r.headers {
		if h == name {
			return i, true
		}
	}
	return 0, false
}

// contains returns the index of the first header containing substr, if any.
func (r columnResolver) contains(substr string) (int, bool) {
	for i, h := range r.headers {
		if strings.Contains(h, substr) {
			return i, true
		}
	}
	return 0, false
}

// requireExact resolves a required logical field by exact header name.
func (r columnResolver) requireExact(logical, name string) (int, error) {
	if i, ok := r.exact(name); ok {
		return i, nil
	}
	return 0, fmt.Errorf("%w: %s", ErrColumnMissing, logical)
}

// requireContains resolves a required logical field by header substring.
func (r columnResolver) requireContains(logical, substr string) (int, error) {
	if i, ok := r.contains(substr); ok {
		return i, nil
	}
	return 0, fmt.Errorf("%w: %s", ErrColumnMissing, logical)
}

// cell returns row[idx] or "" when the row is too short. Tabular extracts
// can be ragged.
func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}
