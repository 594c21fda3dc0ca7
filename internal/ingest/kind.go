package ingest

import "strings"

// Kind identifies which normalized schema a document maps to. It is decided
// once per manifest entry by Classify and drives strategy dispatch together
// with the entry's extracted type.
type Kind int

const (
	KindUnrecognized Kind = iota
	KindBankStatement
	KindCreditReport
	KindAssetsLiabilities
	KindResume
)

// Classify picks the document kind by case-insensitive substring match on
// the source filename. Unmatched filenames classify as KindUnrecognized,
// which ingestion records but does not parse.
func Classify(filename string) Kind {
	lower := strings.ToLower(filename)
	switch {
	case strings.Contains(lower, "bank_statement"):
		return KindBankStatement
	case strings.Contains(lower, "credit_report"):
		return KindCreditReport
	case strings.Contains(lower, "assets_liabilities"):
		return KindAssetsLiabilities
	case strings.Contains(lower, "resume"):
		return KindResume
	default:
		return KindUnrecognized
	}
}

func (k Kind) String() string {
	switch k {
	case KindBankStatement:
		return "bank_statement"
	case KindCreditReport:
		return "credit_report"
	case KindAssetsLiabilities:
		return "assets_liabilities"
	case KindResume:
		return "resume"
	default:
		return "unrecognized"
	}
}
