// Package applicant derives applicant identifiers from uploaded filenames.
//
// Uploads are named {document_type}_{applicant_key}.{ext}, e.g.
// bank_statement_zeeshan.xlsx. Extraction and ingestion both join records on
// the derived key, so this is the single implementation both sides must use.
package applicant

import (
	"path/filepath"
	"strings"
)

// KeyFromFilename returns the applicant key for a raw document filename:
// the extension is stripped, the base name is split on underscores and the
// last segment is lowercased. Prefixes may themselves contain underscores
// (bank_statement_zeeshan.xlsx -> "zeeshan").
func KeyFromFilename(filename string) string {
	base := filepath.Base(filename)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	parts := strings.Split(base, "_")
	return strings.ToLower(parts[len(parts)-1])
}
