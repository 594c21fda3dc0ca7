package ingest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"socialsupport-backend/internal/artifacts"
	"socialsupport-backend/internal/manifest"
	"socialsupport-backend/internal/records"
)

func newTestStore(t *testing.T) *artifacts.Store {
	t.Helper()
	store, err := artifacts.New(t.TempDir())
	require.NoError(t, err)
	return store
}

func testManifest(t *testing.T, store *artifacts.Store) []manifest.Entry {
	t.Helper()

	bankCSV, err := store.SaveCSV("bank_statement_zeeshan.csv", [][]string{
		{"Date", "Description", "Debit", "Credit", "Balance"},
		{"2024-03-01", "Salary Payment", "", "5000.00", "12000.00"},
		{"2024-03-03", "Rent", "1,200.50", "", "10799.50"},
	})
	require.NoError(t, err)

	assetsCSV, err := store.SaveCSV("assets_liabilities_zeeshan_Liabilities.csv", [][]string{
		{"Category", "Value"},
		{"Loan", "8000"},
	})
	require.NoError(t, err)

	creditTXT, err := store.SaveText("credit_report_zeeshan.txt", "Credit Score: 712\nUtilization: 35 %\n")
	require.NoError(t, err)

	resumeTXT, err := store.SaveText("sample_resume_zeeshan.txt",
		"Date of Birth: 14 March 1990\nNationality: Emirati\n8 years of experience\n")
	require.NoError(t, err)

	idTXT, err := store.SaveText("EmiratesID_zeeshan.txt", "ID card scan\n")
	require.NoError(t, err)

	return []manifest.Entry{
		{Source: "bank_statement_zeeshan.xlsx", Type: manifest.TypeTable, Sheet: "Sheet1", Output: bankCSV},
		{Source: "assets_liabilities_zeeshan.xlsx", Type: manifest.TypeTable, Sheet: "Liabilities", Output: assetsCSV},
		{Source: "credit_report_zeeshan.pdf", Type: manifest.TypeText, Output: creditTXT},
		{Source: "sample_resume_zeeshan.pdf", Type: manifest.TypeText, Output: resumeTXT},
		{Source: "EmiratesID_zeeshan.pdf", Type: manifest.TypeText, Output: idTXT},
	}
}

func TestEngineRunFullManifest(t *testing.T) {
	store := newTestStore(t)
	repo := records.NewMemoryRepo()
	engine := &Engine{Repo: repo, Artifacts: store}

	summary, err := engine.Run(context.Background(), testManifest(t, store))
	require.NoError(t, err)

	assert.Equal(t, 5, summary.Documents)
	assert.Equal(t, 2, summary.Transactions)
	assert.Equal(t, 1, summary.CreditReports)
	assert.Equal(t, 1, summary.AssetEntries)
	assert.Equal(t, 1, summary.Resumes)
	assert.Equal(t, 1, summary.SkippedEntries, "EmiratesID has no parsing strategy")
	assert.NotEmpty(t, summary.RunID)

	// Metadata is recorded even for the skipped entry.
	require.Len(t, repo.Docs, 5)
	for _, doc := range repo.Docs {
		assert.Equal(t, "zeeshan", doc.ApplicantKey)
	}

	// The liabilities entry carries its sheet label for downstream
	// classification.
	var liabDoc *records.RawDocument
	for i := range repo.Docs {
		if repo.Docs[i].Filename == "assets_liabilities_zeeshan.xlsx" {
			liabDoc = &repo.Docs[i]
		}
	}
	require.NotNil(t, liabDoc)
	require.NotNil(t, liabDoc.SheetName)
	assert.Equal(t, "Liabilities", *liabDoc.SheetName)
	require.Len(t, repo.Assets, 1)
	assert.Equal(t, liabDoc.ID, repo.Assets[0].DocID)
	assert.Equal(t, "Loan", repo.Assets[0].Category)
}

func TestEngineRerunReplacesInsteadOfAppending(t *testing.T) {
	store := newTestStore(t)
	repo := records.NewMemoryRepo()
	engine := &Engine{Repo: repo, Artifacts: store}
	entries := testManifest(t, store)

	_, err := engine.Run(context.Background(), entries)
	require.NoError(t, err)
	firstDocs := len(repo.Docs)
	firstTxns := len(repo.Transactions)

	_, err = engine.Run(context.Background(), entries)
	require.NoError(t, err)

	assert.Equal(t, firstDocs, len(repo.Docs), "documents must not double-count")
	assert.Equal(t, firstTxns, len(repo.Transactions), "transactions must not double-count")
	assert.Len(t, repo.Credit, 1)
	assert.Len(t, repo.Resumes, 1)
	assert.Len(t, repo.Assets, 1)
}

func TestEngineUnresolvableColumnsSkipEntryButKeepDocument(t *testing.T) {
	store := newTestStore(t)
	badCSV, err := store.SaveCSV("bank_statement_omar.csv", [][]string{
		{"when", "what", "how much"},
		{"2024-01-01", "stuff", "10.00"},
	})
	require.NoError(t, err)

	repo := records.NewMemoryRepo()
	engine := &Engine{Repo: repo, Artifacts: store}

	summary, err := engine.Run(context.Background(), []manifest.Entry{
		{Source: "bank_statement_omar.xlsx", Type: manifest.TypeTable, Output: badCSV},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Documents)
	assert.Equal(t, 1, summary.SkippedEntries)
	assert.Empty(t, repo.Transactions)
	require.Len(t, repo.Docs, 1)
	assert.Equal(t, "omar", repo.Docs[0].ApplicantKey)
}

func TestEngineMissingArtifactSkipsEntry(t *testing.T) {
	store := newTestStore(t)
	repo := records.NewMemoryRepo()
	engine := &Engine{Repo: repo, Artifacts: store}

	summary, err := engine.Run(context.Background(), []manifest.Entry{
		{Source: "credit_report_lina.pdf", Type: manifest.TypeText, Output: "does/not/exist.txt"},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Documents)
	assert.Equal(t, 1, summary.SkippedEntries)
	assert.Empty(t, repo.Credit)
}

func TestEngineEmptyArtifactStillIngests(t *testing.T) {
	store := newTestStore(t)
	emptyTXT, err := store.SaveText("credit_report_lina.txt", "")
	require.NoError(t, err)

	repo := records.NewMemoryRepo()
	engine := &Engine{Repo: repo, Artifacts: store}

	summary, err := engine.Run(context.Background(), []manifest.Entry{
		{Source: "credit_report_lina.pdf", Type: manifest.TypeText, Output: emptyTXT},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, summary.CreditReports)
	assert.Equal(t, 0, summary.SkippedEntries)

	report, ok := repo.Credit[repo.Docs[0].ID]
	require.True(t, ok)
	assert.Nil(t, report.CreditScore)
	assert.Nil(t, report.UtilizationPct)
	assert.Nil(t, report.InquiriesLast12m)
}
