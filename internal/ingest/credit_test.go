package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCreditTextScoreAndUtilizationOnly(t *testing.T) {
	blob := "Credit Bureau Report\n" +
		"Credit Score: 712\n" +
		"Utilization: 35 %\n"
	report := parseCreditText(4, blob)

	require.NotNil(t, report.CreditScore)
	assert.Equal(t, 712, *report.CreditScore)
	require.NotNil(t, report.UtilizationPct)
	assert.Equal(t, 35.0, *report.UtilizationPct)
	assert.Nil(t, report.InquiriesLast12m, "no inquiries sentence in blob")
}

func TestParseCreditTextAllFields(t *testing.T) {
	blob := "Credit Score 685\nUtilization: 42%\nInquiries last 12 months: 3\n"
	report := parseCreditText(4, blob)

	require.NotNil(t, report.CreditScore)
	assert.Equal(t, 685, *report.CreditScore)
	require.NotNil(t, report.UtilizationPct)
	assert.Equal(t, 42.0, *report.UtilizationPct)
	require.NotNil(t, report.InquiriesLast12m)
	assert.Equal(t, 3, *report.InquiriesLast12m)
}

func TestParseCreditTextNoMatches(t *testing.T) {
	report := parseCreditText(4, "nothing useful here")
	assert.Nil(t, report.CreditScore)
	assert.Nil(t, report.UtilizationPct)
	assert.Nil(t, report.InquiriesLast12m)
	assert.Equal(t, int64(4), report.DocID)
}

func TestParseCreditTablePassThrough(t *testing.T) {
	rows := [][]string{
		{"credit_score", "utilization_pct", "inquiries_last_12m"},
		{"698", "27.5", "2"},
	}
	report := parseCreditTable(9, rows)

	require.NotNil(t, report.CreditScore)
	assert.Equal(t, 698, *report.CreditScore)
	require.NotNil(t, report.UtilizationPct)
	assert.Equal(t, 27.5, *report.UtilizationPct)
	require.NotNil(t, report.InquiriesLast12m)
	assert.Equal(t, 2, *report.InquiriesLast12m)
}

func TestParseCreditTableMissingColumnsAreNull(t *testing.T) {
	rows := [][]string{
		{"credit_score"},
		{"640"},
	}
	report := parseCreditTable(9, rows)
	require.NotNil(t, report.CreditScore)
	assert.Equal(t, 640, *report.CreditScore)
	assert.Nil(t, report.UtilizationPct)
	assert.Nil(t, report.InquiriesLast12m)
}

func TestParseCreditTableEmptyArtifact(t *testing.T) {
	report := parseCreditTable(9, nil)
	assert.Equal(t, int64(9), report.DocID)
	assert.Nil(t, report.CreditScore)
}
