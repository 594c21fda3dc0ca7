// Package features computes per-applicant features from the normalized
// record set. It is the first downstream consumer of ingestion's output and
// treats missing normalized data as "insufficient data": absent documents
// yield null feature fields, never an error.
package features

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"socialsupport-backend/internal/records"
	"socialsupport-backend/internal/shared/telemetry"
)

// Service computes and persists applicant features.
type Service struct {
	Repo records.Repo
	Now  func() time.Time
}

// NewService creates a Service backed by repo.
func NewService(repo records.Repo) *Service {
	return &Service{Repo: repo, Now: time.Now}
}

// ComputeAll recomputes features for every applicant present in
// raw_documents and replaces their feature rows. Returns the number of
// applicants processed.
func (s *Service) ComputeAll(ctx context.Context) (int, error) {
	keys, err := s.Repo.ListApplicantKeys(ctx)
	if err != nil {
		return 0, fmt.Errorf("list applicants: %w", err)
	}

	for _, key := range keys {
		feats, err := s.computeOne(ctx, key)
		if err != nil {
			return 0, fmt.Errorf("compute features for %s: %w", key, err)
		}
		if err := s.Repo.ReplaceApplicantFeatures(ctx, feats); err != nil {
			return 0, fmt.Errorf("save features for %s: %w", key, err)
		}
	}

	telemetry.Info("features.complete", map[string]any{"applicants": len(keys)})
	return len(keys), nil
}

func (s *Service) computeOne(ctx context.Context, applicantKey string) (records.ApplicantFeatures, error) {
	feats := records.ApplicantFeatures{ApplicantKey: applicantKey}

	docs, err := s.Repo.ListDocumentsByApplicant(ctx, applicantKey)
	if err != nil {
		return feats, err
	}
	if len(docs) == 0 {
		return feats, nil
	}

	allIDs := make([]int64, 0, len(docs))
	var assetIDs, liabilityIDs []int64
	for _, doc := range docs {
		allIDs = append(allIDs, doc.ID)
		if doc.SheetName == nil {
			continue
		}
		switch strings.ToLower(*doc.SheetName) {
		case "assets":
			assetIDs = append(assetIDs, doc.ID)
		case "liabilities":
			liabilityIDs = append(liabilityIDs, doc.ID)
		}
	}

	// Income proxy: sum of positive transaction amounts.
	txns, err := s.Repo.ListTransactionsByDocs(ctx, allIDs)
	if err != nil {
		return feats, err
	}
	income := decimal.Zero
	for _, txn := range txns {
		if txn.Amount.Valid && txn.Amount.Decimal.IsPositive() {
			income = income.Add(txn.Amount.Decimal)
		}
	}
	feats.Income = decimal.NullDecimal{Decimal: income, Valid: true}

	// Net worth: asset-tagged values minus liability-tagged values, split by
	// the owning documents' sheet labels.
	assets, err := s.Repo.SumAssetValuesByDocs(ctx, assetIDs)
	if err != nil {
		return feats, err
	}
	liabilities, err := s.Repo.SumAssetValuesByDocs(ctx, liabilityIDs)
	if err != nil {
		return feats, err
	}
	feats.NetWorth = decimal.NullDecimal{Decimal: assets.Sub(liabilities), Valid: true}

	feats.CreditScore, err = s.Repo.FirstCreditScoreByDocs(ctx, allIDs)
	if err != nil {
		return feats, err
	}

	resume, err := s.Repo.ResumeByDocs(ctx, allIDs)
	if err != nil {
		return feats, err
	}
	if resume != nil {
		if resume.DateOfBirth != nil {
			age := ageYears(*resume.DateOfBirth, s.Now())
			feats.Age = &age
		}
		feats.ExperienceYears = resume.TotalExperienceYears
	}

	// FamilySize comes from application forms, which this pipeline does not
	// process; it stays null.
	return feats, nil
}

// ageYears returns whole years elapsed between dob and now.
func ageYears(dob, now time.Time) int {
	years := now.Year() - dob.Year()
	anniversary := dob.AddDate(years, 0, 0)
	if anniversary.After(now) {
		years--
	}
	return years
}
