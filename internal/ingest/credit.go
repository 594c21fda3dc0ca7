package ingest

import (
	"regexp"

	"socialsupport-backend/internal/records"
)

// parseCreditTable reads the single credit attributes row from a tabular
// extract. Columns are matched by exact name; each field is independently
// optional and malformed values degrade to null.
func parseCreditTable(docID int64, rows [][]string) records.CreditReport {
	report := records.CreditReport{DocID: docID}
	if len(rows) < 2 {
		return report
	}
	resolver := newColumnResolver(rows[0])
	row := rows[1]

	if idx, ok := resolver.exact("credit_score"); ok {
		report.CreditScore = parseInt(cell(row, idx))
	}
	if idx, ok := resolver.exact("utilization_pct"); ok {
		report.UtilizationPct = parseFloat(cell(row, idx))
	}
	if idx, ok := resolver.exact("inquiries_last_12m"); ok {
		report.InquiriesLast12m = parseInt(cell(row, idx))
	}
	return report
}

var (
	creditScoreRe = regexp.MustCompile(`Credit\s*Score[:]?[\s]*([\d]{3})`)
	utilizationRe = regexp.MustCompile(`Utilization\s*[:]?[\s]*([\d]{1,3})\s*%`)
	inquiriesRe   = regexp.MustCompile(`(?i)Inquiries\s*(?:last\s*12\s*months)?\s*[:]?[\s]*(\d+)`)
)

// parseCreditText extracts credit attributes from a free-text report via
// three independent searches. A missing match leaves that field null; the
// record is produced regardless.
func parseCreditText(docID int64, text string) records.CreditReport {
	report := records.CreditReport{DocID: docID}

	if m := creditScoreRe.FindStringSubmatch(text); m != nil {
		report.CreditScore = parseInt(m[1])
	}
	if m := utilizationRe.FindStringSubmatch(text); m != nil {
		report.UtilizationPct = parseFloat(m[1])
	}
	if m := inquiriesRe.FindStringSubmatch(text); m != nil {
		report.InquiriesLast12m = parseInt(m[1])
	}
	return report
}
