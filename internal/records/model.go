// Package records holds the normalized record set produced by ingestion and
// the repositories that persist it. Every normalized row references a
// RawDocument by generated id; applicant-level joins go through the
// document's applicant key.
package records

import (
	"time"

	"github.com/shopspring/decimal"
)

// Raw document file types.
const (
	FileTypeTable = "table"
	FileTypeText  = "text"
	FileTypeImage = "image"
)

// RawDocument records metadata for one processed raw file (or one sheet of
// a multi-sheet spreadsheet). Immutable after creation.
type RawDocument struct {
	ID           int64
	Filename     string
	FileType     string
	SheetName    *string
	ApplicantKey string
	CreatedAt    time.Time
}

// BankTransaction is one ledger row. Amount sign encodes direction:
// positive is a credit/inflow, negative a debit/outflow. A null amount means
// the source row was present but its numeric fields were unparseable.
type BankTransaction struct {
	DocID        int64
	TxnDate      *time.Time
	Description  string
	Amount       decimal.NullDecimal
	BalanceAfter decimal.NullDecimal
}

// CreditReport holds the per-document credit attributes. At most one row per
// document; every field is independently nullable.
type CreditReport struct {
	DocID            int64
	CreditScore      *int
	UtilizationPct   *float64
	InquiriesLast12m *int
}

// AssetLiabilityEntry is one line of an asset/liability sheet. Whether it is
// an asset or a liability is decided downstream from the owning document's
// sheet label, not here.
type AssetLiabilityEntry struct {
	DocID    int64
	Category string
	Value    decimal.Decimal
}

// ResumeAttributes holds demographic attributes parsed from a resume.
// CurrentPosition is reserved and always nil at this stage.
type ResumeAttributes struct {
	DocID                int64
	DateOfBirth          *time.Time
	Nationality          *string
	TotalExperienceYears *int
	CurrentPosition      *string
}

// ApplicantFeatures is the per-applicant feature row consumed by the
// recommendation stage. Any field may be null when the underlying documents
// are missing.
type ApplicantFeatures struct {
	ApplicantKey    string
	Income          decimal.NullDecimal
	NetWorth        decimal.NullDecimal
	CreditScore     *int
	Age             *int
	ExperienceYears *int
	FamilySize      *int
}
