package features

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"socialsupport-backend/internal/records"
)

func fixedNow() time.Time {
	return time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
}

func seedDoc(t *testing.T, repo *records.MemoryRepo, filename string, sheet string) int64 {
	t.Helper()
	doc := records.RawDocument{
		Filename:     filename,
		FileType:     records.FileTypeTable,
		ApplicantKey: "zeeshan",
	}
	if sheet != "" {
		doc.SheetName = &sheet
	}
	id, err := repo.InsertRawDocument(context.Background(), doc)
	require.NoError(t, err)
	return id
}

func validAmount(s string) decimal.NullDecimal {
	return decimal.NullDecimal{Decimal: decimal.RequireFromString(s), Valid: true}
}

func TestComputeAllFullRecordSet(t *testing.T) {
	ctx := context.Background()
	repo := records.NewMemoryRepo()

	bankID := seedDoc(t, repo, "bank_statement_zeeshan.xlsx", "")
	assetID := seedDoc(t, repo, "assets_liabilities_zeeshan.xlsx", "Assets")
	liabID := seedDoc(t, repo, "assets_liabilities_zeeshan.xlsx", "Liabilities")
	creditID := seedDoc(t, repo, "credit_report_zeeshan.pdf", "")
	resumeID := seedDoc(t, repo, "sample_resume_zeeshan.pdf", "")

	require.NoError(t, repo.InsertBankTransactions(ctx, []records.BankTransaction{
		{DocID: bankID, Description: "Salary", Amount: validAmount("5000.00")},
		{DocID: bankID, Description: "Rent", Amount: validAmount("-1200.50")},
		{DocID: bankID, Description: "Refund", Amount: validAmount("150.00")},
		{DocID: bankID, Description: "corrupted"},
	}))
	require.NoError(t, repo.InsertAssetLiabilityEntries(ctx, []records.AssetLiabilityEntry{
		{DocID: assetID, Category: "Savings", Value: decimal.NewFromInt(12000)},
		{DocID: assetID, Category: "Car", Value: decimal.NewFromInt(35500)},
		{DocID: liabID, Category: "Loan", Value: decimal.NewFromInt(8000)},
	}))
	score := 712
	require.NoError(t, repo.UpsertCreditReport(ctx, records.CreditReport{DocID: creditID, CreditScore: &score}))
	dob := time.Date(1990, 3, 14, 0, 0, 0, 0, time.UTC)
	years := 8
	require.NoError(t, repo.UpsertResume(ctx, records.ResumeAttributes{
		DocID:                resumeID,
		DateOfBirth:          &dob,
		TotalExperienceYears: &years,
	}))

	svc := NewService(repo)
	svc.Now = fixedNow

	n, err := svc.ComputeAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	feats, ok := repo.Features["zeeshan"]
	require.True(t, ok)

	// Only positive amounts count toward income.
	require.True(t, feats.Income.Valid)
	assert.True(t, feats.Income.Decimal.Equal(decimal.RequireFromString("5150.00")), "got %s", feats.Income.Decimal)

	// Assets minus liabilities, partitioned by sheet label.
	require.True(t, feats.NetWorth.Valid)
	assert.True(t, feats.NetWorth.Decimal.Equal(decimal.NewFromInt(39500)), "got %s", feats.NetWorth.Decimal)

	require.NotNil(t, feats.CreditScore)
	assert.Equal(t, 712, *feats.CreditScore)

	require.NotNil(t, feats.Age)
	assert.Equal(t, 34, *feats.Age)
	require.NotNil(t, feats.ExperienceYears)
	assert.Equal(t, 8, *feats.ExperienceYears)
	assert.Nil(t, feats.FamilySize)
}

func TestComputeAllPartialDocuments(t *testing.T) {
	ctx := context.Background()
	repo := records.NewMemoryRepo()

	// Only a credit report exists for this applicant.
	creditID := seedDoc(t, repo, "credit_report_zeeshan.pdf", "")
	score := 640
	require.NoError(t, repo.UpsertCreditReport(ctx, records.CreditReport{DocID: creditID, CreditScore: &score}))

	svc := NewService(repo)
	svc.Now = fixedNow

	_, err := svc.ComputeAll(ctx)
	require.NoError(t, err)

	feats := repo.Features["zeeshan"]
	require.True(t, feats.Income.Valid)
	assert.True(t, feats.Income.Decimal.IsZero(), "no transactions means zero income, not an error")
	require.NotNil(t, feats.CreditScore)
	assert.Equal(t, 640, *feats.CreditScore)
	assert.Nil(t, feats.Age)
	assert.Nil(t, feats.ExperienceYears)
}

func TestComputeAllNoApplicants(t *testing.T) {
	svc := NewService(records.NewMemoryRepo())
	n, err := svc.ComputeAll(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestAgeYearsBeforeAndAfterBirthday(t *testing.T) {
	dob := time.Date(1990, 7, 15, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 33, ageYears(dob, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 34, ageYears(dob, time.Date(2024, 7, 15, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 34, ageYears(dob, time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)))
}
