package applicant

import "testing"

func TestKeyFromFilename(t *testing.T) {
	cases := []struct {
		name     string
		filename string
		want     string
	}{
		{"bank statement", "bank_statement_zeeshan.xlsx", "zeeshan"},
		{"multi underscore prefix", "assets_liabilities_Fatima.xlsx", "fatima"},
		{"uppercase key", "credit_report_AHMED.pdf", "ahmed"},
		{"no underscore", "resume.txt", "resume"},
		{"emirates id", "EmiratesID_sara.pdf", "sara"},
		{"double extension kept once", "sample_resume_omar.extracted.txt", "omar.extracted"},
		{"path is ignored", "data/raw/bank_statement_lina.csv", "lina"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := KeyFromFilename(tc.filename); got != tc.want {
				t.Fatalf("KeyFromFilename(%q) = %q, want %q", tc.filename, got, tc.want)
			}
		})
	}
}
