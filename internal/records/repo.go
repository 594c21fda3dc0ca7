package records

import (
	"context"
	"database/sql"

	"github.com/shopspring/decimal"
)

// DBTX is the subset of database/sql shared by *sql.DB and *sql.Tx. The
// ingestion engine runs a whole manifest against a single *sql.Tx so a run
// commits or rolls back as a unit.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Repo defines persistence for the normalized record set.
type Repo interface {
	// DeleteDocumentsBySource removes every raw document (and, by cascade,
	// its normalized sub-records) previously ingested from the given source
	// filename. Ingestion calls this before re-inserting so re-runs replace
	// rather than append.
	DeleteDocumentsBySource(ctx context.Context, filename string) error
	InsertRawDocument(ctx context.Context, doc RawDocument) (int64, error)
	InsertBankTransactions(ctx context.Context, txns []BankTransaction) error
	UpsertCreditReport(ctx context.Context, report CreditReport) error
	InsertAssetLiabilityEntries(ctx context.Context, entries []AssetLiabilityEntry) error
	UpsertResume(ctx context.Context, attrs ResumeAttributes) error

	// Read side, used by feature computation.
	ListApplicantKeys(ctx context.Context) ([]string, error)
	ListDocumentsByApplicant(ctx context.Context, applicantKey string) ([]RawDocument, error)
	ListTransactionsByDocs(ctx context.Context, docIDs []int64) ([]BankTransaction, error)
	SumAssetValuesByDocs(ctx context.Context, docIDs []int64) (decimal.Decimal, error)
	FirstCreditScoreByDocs(ctx context.Context, docIDs []int64) (*int, error)
	ResumeByDocs(ctx context.Context, docIDs []int64) (*ResumeAttributes, error)
	ReplaceApplicantFeatures(ctx context.Context, features ApplicantFeatures) error
}
