package ingest

import (
	"regexp"
	"strings"
	"time"

	"socialsupport-backend/internal/records"
)

var (
	dobRe         = regexp.MustCompile(`Date of Birth[:]?\s*(\d{1,2} [A-Za-z]+ \d{4})`)
	nationalityRe = regexp.MustCompile(`Nationality[:]?\s*([A-Za-z ]+)`)
	experienceRe  = regexp.MustCompile(`(?i)(\d+)\s+years`)
)

const dobLayout = "2 January 2006"

// parseResumeText extracts demographic attributes from resume text. Each
// field is independently optional. CurrentPosition is reserved for a later
// enrichment stage and never set here.
func parseResumeText(docID int64, text string) records.ResumeAttributes {
	attrs := records.ResumeAttributes{DocID: docID}

	if m := dobRe.FindStringSubmatch(text); m != nil {
		if t, err := time.Parse(dobLayout, m[1]); err == nil {
			attrs.DateOfBirth = &t
		}
	}
	if m := nationalityRe.FindStringSubmatch(text); m != nil {
		if nat := strings.TrimSpace(m[1]); nat != "" {
			attrs.Nationality = &nat
		}
	}
	if m := experienceRe.FindStringSubmatch(text); m != nil {
		attrs.TotalExperienceYears = parseInt(m[1])
	}
	return attrs
}
