package records

import (
	"context"
	"database/sql"
	"errors"

	"github.com/shopspring/decimal"
)

// PGRepo implements Repo against Postgres. DB may be a *sql.DB or, during an
// ingestion run, the run's *sql.Tx.
type PGRepo struct {
	DB DBTX
}

var _ Repo = (*PGRepo)(nil)

// DeleteDocumentsBySource removes prior ingests of a source file. Sub-records
// go with it via ON DELETE CASCADE.
func (r *PGRepo) DeleteDocumentsBySource(ctx context.Context, filename string) error {
	const query = `DELETE FROM raw_documents WHERE filename = $1`
	_, err := r.DB.ExecContext(ctx, query, filename)
	return err
}

// InsertRawDocument inserts a document row and returns its generated id.
func (r *PGRepo) InsertRawDocument(ctx context.Context, doc RawDocument) (int64, error) {
	const query = `
INSERT INTO raw_documents (filename, file_type, sheet_name, applicant_key)
VALUES ($1, $2, $3, $4)
RETURNING id`

	var sheetName sql.NullString
	if doc.SheetName != nil && *doc.SheetName != "" {
		sheetName = sql.NullString{String: *doc.SheetName, Valid: true}
	}

	var id int64
	err := r.DB.QueryRowContext(ctx, query, doc.Filename, doc.FileType, sheetName, doc.ApplicantKey).Scan(&id)
	return id, err
}

// InsertBankTransactions inserts ledger rows one by one; batches are small
// (one statement's worth of lines).
func (r *PGRepo) InsertBankTransactions(ctx context.Context, txns []BankTransaction) error {
	const query = `
INSERT INTO bank_transactions (doc_id, txn_date, description, amount, balance_after)
VALUES ($1, $2, $3, $4, $5)`

	for _, txn := range txns {
		var txnDate sql.NullTime
		if txn.TxnDate != nil {
			txnDate = sql.NullTime{Time: *txn.TxnDate, Valid: true}
		}
		if _, err := r.DB.ExecContext(ctx, query, txn.DocID, txnDate, txn.Description, txn.Amount, txn.BalanceAfter); err != nil {
			return err
		}
	}
	return nil
}

// UpsertCreditReport writes the single credit attributes row for a document.
func (r *PGRepo) UpsertCreditReport(ctx context.Context, report CreditReport) error {
	const query = `
INSERT INTO credit_reports (doc_id, credit_score, utilization_pct, inquiries_last_12m)
VALUES ($1, $2, $3, $4)
ON CONFLICT (doc_id) DO UPDATE SET
    credit_score = EXCLUDED.credit_score,
    utilization_pct = EXCLUDED.utilization_pct,
    inquiries_last_12m = EXCLUDED.inquiries_last_12m`

	_, err := r.DB.ExecContext(ctx, query,
		report.DocID,
		nullInt(report.CreditScore),
		nullFloat(report.UtilizationPct),
		nullInt(report.InquiriesLast12m),
	)
	return err
}

// InsertAssetLiabilityEntries inserts asset/liability lines.
func (r *PGRepo) InsertAssetLiabilityEntries(ctx context.Context, entries []AssetLiabilityEntry) error {
	const query = `
INSERT INTO assets_liabilities (doc_id, category, value)
VALUES ($1, $2, $3)`

	for _, entry := range entries {
		if _, err := r.DB.ExecContext(ctx, query, entry.DocID, entry.Category, entry.Value); err != nil {
			return err
		}
	}
	return nil
}

// UpsertResume writes the single resume attributes row for a document.
func (r *PGRepo) UpsertResume(ctx context.Context, attrs ResumeAttributes) error {
	const query = `
INSERT INTO resumes (doc_id, dob, nationality, total_experience_years, current_position)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (doc_id) DO UPDATE SET
    dob = EXCLUDED.dob,
    nationality = EXCLUDED.nationality,
    total_experience_years = EXCLUDED.total_experience_years,
    current_position = EXCLUDED.current_position`

	var dob sql.NullTime
	if attrs.DateOfBirth != nil {
		dob = sql.NullTime{Time: *attrs.DateOfBirth, Valid: true}
	}
	_, err := r.DB.ExecContext(ctx, query,
		attrs.DocID,
		dob,
		nullString(attrs.Nationality),
		nullInt(attrs.TotalExperienceYears),
		nullString(attrs.CurrentPosition),
	)
	return err
}

// ListApplicantKeys returns the distinct applicant keys present in
// raw_documents.
func (r *PGRepo) ListApplicantKeys(ctx context.Context) ([]string, error) {
	const query = `SELECT DISTINCT applicant_key FROM raw_documents ORDER BY applicant_key`

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, err
		}
		keys = append(keys, key)
	}
	return keys, rows.Err()
}

// ListDocumentsByApplicant returns all documents for one applicant.
func (r *PGRepo) ListDocumentsByApplicant(ctx context.Context, applicantKey string) ([]RawDocument, error) {
	const query = `
SELECT id, filename, file_type, sheet_name, applicant_key, created_at
FROM raw_documents
WHERE applicant_key = $1
ORDER BY id`

	rows, err := r.DB.QueryContext(ctx, query, applicantKey)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []RawDocument
	for rows.Next() {
		var doc RawDocument
		var sheetName sql.NullString
		if err := rows.Scan(&doc.ID, &doc.Filename, &doc.FileType, &sheetName, &doc.ApplicantKey, &doc.CreatedAt); err != nil {
			return nil, err
		}
		if sheetName.Valid {
			doc.SheetName = &sheetName.String
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

// ListTransactionsByDocs returns ledger rows for the given documents.
func (r *PGRepo) ListTransactionsByDocs(ctx context.Context, docIDs []int64) ([]BankTransaction, error) {
	if len(docIDs) == 0 {
		return nil, nil
	}
	const query = `
SELECT doc_id, txn_date, description, amount, balance_after
FROM bank_transactions
WHERE doc_id = ANY($1)
ORDER BY id`

	rows, err := r.DB.QueryContext(ctx, query, docIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var txns []BankTransaction
	for rows.Next() {
		var txn BankTransaction
		var txnDate sql.NullTime
		if err := rows.Scan(&txn.DocID, &txnDate, &txn.Description, &txn.Amount, &txn.BalanceAfter); err != nil {
			return nil, err
		}
		if txnDate.Valid {
			txn.TxnDate = &txnDate.Time
		}
		txns = append(txns, txn)
	}
	return txns, rows.Err()
}

// SumAssetValuesByDocs sums asset/liability values across the given
// documents. Zero when there are none.
func (r *PGRepo) SumAssetValuesByDocs(ctx context.Context, docIDs []int64) (decimal.Decimal, error) {
	if len(docIDs) == 0 {
		return decimal.Zero, nil
	}
	const query = `
SELECT COALESCE(SUM(value), 0)
FROM assets_liabilities
WHERE doc_id = ANY($1)`

	var sum decimal.Decimal
	if err := r.DB.QueryRowContext(ctx, query, docIDs).Scan(&sum); err != nil {
		return decimal.Zero, err
	}
	return sum, nil
}

// FirstCreditScoreByDocs returns the first non-null credit score among the
// given documents, or nil when none exists.
func (r *PGRepo) FirstCreditScoreByDocs(ctx context.Context, docIDs []int64) (*int, error) {
	if len(docIDs) == 0 {
		return nil, nil
	}
	const query = `
SELECT credit_score
FROM credit_reports
WHERE doc_id = ANY($1) AND credit_score IS NOT NULL
ORDER BY doc_id
LIMIT 1`

	var score int
	err := r.DB.QueryRowContext(ctx, query, docIDs).Scan(&score)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &score, nil
}

// ResumeByDocs returns the resume attributes row among the given documents,
// or nil when none exists.
func (r *PGRepo) ResumeByDocs(ctx context.Context, docIDs []int64) (*ResumeAttributes, error) {
	if len(docIDs) == 0 {
		return nil, nil
	}
	const query = `
SELECT doc_id, dob, nationality, total_experience_years, current_position
FROM resumes
WHERE doc_id = ANY($1)
ORDER BY doc_id
LIMIT 1`

	var attrs ResumeAttributes
	var dob sql.NullTime
	var nationality sql.NullString
	var expYears sql.NullInt64
	var position sql.NullString
	err := r.DB.QueryRowContext(ctx, query, docIDs).Scan(&attrs.DocID, &dob, &nationality, &expYears, &position)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if dob.Valid {
		attrs.DateOfBirth = &dob.Time
	}
	if nationality.Valid {
		attrs.Nationality = &nationality.String
	}
	if expYears.Valid {
		years := int(expYears.Int64)
		attrs.TotalExperienceYears = &years
	}
	if position.Valid {
		attrs.CurrentPosition = &position.String
	}
	return &attrs, nil
}

// ReplaceApplicantFeatures upserts the feature row for one applicant.
func (r *PGRepo) ReplaceApplicantFeatures(ctx context.Context, features ApplicantFeatures) error {
	const query = `
INSERT INTO applicant_features (applicant_key, income, net_worth, credit_score, age, experience_years, family_size, computed_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, now())
ON CONFLICT (applicant_key) DO UPDATE SET
    income = EXCLUDED.income,
    net_worth = EXCLUDED.net_worth,
    credit_score = EXCLUDED.credit_score,
    age = EXCLUDED.age,
    experience_years = EXCLUDED.experience_years,
    family_size = EXCLUDED.family_size,
    computed_at = now()`

	_, err := r.DB.ExecContext(ctx, query,
		features.ApplicantKey,
		features.Income,
		features.NetWorth,
		nullInt(features.CreditScore),
		nullInt(features.Age),
		nullInt(features.ExperienceYears),
		nullInt(features.FamilySize),
	)
	return err
}

func nullInt(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

func nullString(v *string) sql.NullString {
	if v == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *v, Valid: true}
}
