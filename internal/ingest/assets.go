package ingest

import (
	"strings"

	"socialsupport-backend/internal/records"
)

// parseAssetsTable converts an asset/liability sheet into entries, one per
// input row. Asset-vs-liability classification happens downstream from the
// owning document's sheet label; this parser records lines verbatim. Rows
// whose value cannot be parsed as a number are skipped: the schema requires
// a value on every entry.
func parseAssetsTable(docID int64, rows [][]string) ([]records.AssetLiabilityEntry, error) {
	if len(rows) == 0 {
		return nil, nil
	}
	resolver := newColumnResolver(rows[0])

	catIdx, err := resolver.requireContains("category", "category")
	if err != nil {
		return nil, err
	}
	valIdx, err := resolver.requireContains("value", "value")
	if err != nil {
		return nil, err
	}

	var entries []records.AssetLiabilityEntry
	for _, row := range rows[1:] {
		value := parseAmount(cell(row, valIdx))
		if !value.Valid {
			continue
		}
		entries = append(entries, records.AssetLiabilityEntry{
			DocID:    docID,
			Category: strings.TrimSpace(cell(row, catIdx)),
			Value:    value.Decimal,
		})
	}
	return entries, nil
}
