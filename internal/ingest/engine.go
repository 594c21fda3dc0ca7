// Package ingest transforms manifest entries into the normalized record set.
// It is a single-pass, stateless-per-entry engine: each entry yields one
// RawDocument row plus zero or more normalized sub-records, all within one
// database transaction per run. Parse problems degrade to null fields or
// skipped rows; only repository failures abort (and roll back) the run.
package ingest

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"socialsupport-backend/internal/applicant"
	"socialsupport-backend/internal/artifacts"
	"socialsupport-backend/internal/manifest"
	"socialsupport-backend/internal/records"
	"socialsupport-backend/internal/shared/metrics"
	"socialsupport-backend/internal/shared/telemetry"
)

// ArtifactReader reads extraction artifacts referenced by manifest entries.
type ArtifactReader interface {
	ReadCSV(path string) ([][]string, error)
	ReadText(path string) (string, error)
}

// Summary reports what one ingestion run produced. SkippedEntries counts
// manifest entries that got a RawDocument row but no normalized sub-records
// (unrecognized kinds, unreadable artifacts, unresolvable columns).
type Summary struct {
	RunID          string
	Documents      int
	Transactions   int
	CreditReports  int
	AssetEntries   int
	Resumes        int
	SkippedEntries int
}

// Engine ingests manifest entries through a records.Repo.
type Engine struct {
	Repo      records.Repo
	Artifacts ArtifactReader
}

// RunInTransaction ingests the whole manifest inside a single database
// transaction: either every entry's rows commit together or none do.
func RunInTransaction(ctx context.Context, database *sql.DB, store *artifacts.Store, entries []manifest.Entry) (Summary, error) {
	tx, err := database.BeginTx(ctx, nil)
	if err != nil {
		return Summary{}, fmt.Errorf("begin ingestion transaction: %w", err)
	}

	engine := &Engine{Repo: &records.PGRepo{DB: tx}, Artifacts: store}
	summary, err := engine.Run(ctx, entries)
	if err != nil {
		_ = tx.Rollback()
		return summary, err
	}
	if err := tx.Commit(); err != nil {
		return summary, fmt.Errorf("commit ingestion transaction: %w", err)
	}
	return summary, nil
}

// Run ingests the given manifest entries. Re-running against an unchanged
// manifest replaces previously ingested rows instead of appending: before
// the first entry for a source filename, every earlier document for that
// filename is deleted (sub-records cascade).
func (e *Engine) Run(ctx context.Context, entries []manifest.Entry) (Summary, error) {
	summary := Summary{RunID: uuid.NewString()}
	started := metrics.NowMillis()

	cleared := make(map[string]bool)
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		if !cleared[entry.Source] {
			if err := e.Repo.DeleteDocumentsBySource(ctx, entry.Source); err != nil {
				return summary, fmt.Errorf("clear prior ingest of %s: %w", entry.Source, err)
			}
			cleared[entry.Source] = true
		}
		if err := e.ingestEntry(ctx, entry, &summary); err != nil {
			return summary, err
		}
	}

	metrics.ObserveIngestDurationMs(metrics.NowMillis() - started)
	telemetry.Info("ingest.complete", map[string]any{
		"run_id":         summary.RunID,
		"documents":      summary.Documents,
		"transactions":   summary.Transactions,
		"credit_reports": summary.CreditReports,
		"asset_entries":  summary.AssetEntries,
		"resumes":        summary.Resumes,
		"skipped":        summary.SkippedEntries,
	})
	return summary, nil
}

func (e *Engine) ingestEntry(ctx context.Context, entry manifest.Entry, summary *Summary) error {
	doc := records.RawDocument{
		Filename:     entry.Source,
		FileType:     entry.Type,
		ApplicantKey: applicant.KeyFromFilename(entry.Source),
	}
	if entry.Sheet != "" {
		sheet := entry.Sheet
		doc.SheetName = &sheet
	}

	// Metadata is always recorded, even when no normalized sub-record can
	// be derived from the entry.
	docID, err := e.Repo.InsertRawDocument(ctx, doc)
	if err != nil {
		return fmt.Errorf("insert raw document for %s: %w", entry.Source, err)
	}
	summary.Documents++

	kind := Classify(entry.Source)
	switch {
	case kind == KindBankStatement && entry.Type == manifest.TypeTable:
		rows, err := e.Artifacts.ReadCSV(entry.Output)
		if err != nil {
			e.skipEntry(entry, kind, summary, err)
			return nil
		}
		txns, err := parseBankTable(docID, rows)
		if err != nil {
			e.skipEntry(entry, kind, summary, err)
			return nil
		}
		if err := e.Repo.InsertBankTransactions(ctx, txns); err != nil {
			return fmt.Errorf("insert transactions for %s: %w", entry.Source, err)
		}
		summary.Transactions += len(txns)

	case kind == KindBankStatement && entry.Type == manifest.TypeText:
		text, err := e.Artifacts.ReadText(entry.Output)
		if err != nil {
			e.skipEntry(entry, kind, summary, err)
			return nil
		}
		txns := parseBankText(docID, text)
		if err := e.Repo.InsertBankTransactions(ctx, txns); err != nil {
			return fmt.Errorf("insert transactions for %s: %w", entry.Source, err)
		}
		summary.Transactions += len(txns)

	case kind == KindCreditReport && entry.Type == manifest.TypeTable:
		rows, err := e.Artifacts.ReadCSV(entry.Output)
		if err != nil {
			e.skipEntry(entry, kind, summary, err)
			return nil
		}
		if err := e.Repo.UpsertCreditReport(ctx, parseCreditTable(docID, rows)); err != nil {
			return fmt.Errorf("upsert credit report for %s: %w", entry.Source, err)
		}
		summary.CreditReports++

	case kind == KindCreditReport && entry.Type == manifest.TypeText:
		text, err := e.Artifacts.ReadText(entry.Output)
		if err != nil {
			e.skipEntry(entry, kind, summary, err)
			return nil
		}
		if err := e.Repo.UpsertCreditReport(ctx, parseCreditText(docID, text)); err != nil {
			return fmt.Errorf("upsert credit report for %s: %w", entry.Source, err)
		}
		summary.CreditReports++

	case kind == KindAssetsLiabilities && entry.Type == manifest.TypeTable:
		rows, err := e.Artifacts.ReadCSV(entry.Output)
		if err != nil {
			e.skipEntry(entry, kind, summary, err)
			return nil
		}
		lines, err := parseAssetsTable(docID, rows)
		if err != nil {
			e.skipEntry(entry, kind, summary, err)
			return nil
		}
		if err := e.Repo.InsertAssetLiabilityEntries(ctx, lines); err != nil {
			return fmt.Errorf("insert asset entries for %s: %w", entry.Source, err)
		}
		summary.AssetEntries += len(lines)

	case kind == KindResume && entry.Type == manifest.TypeText:
		text, err := e.Artifacts.ReadText(entry.Output)
		if err != nil {
			e.skipEntry(entry, kind, summary, err)
			return nil
		}
		if err := e.Repo.UpsertResume(ctx, parseResumeText(docID, text)); err != nil {
			return fmt.Errorf("upsert resume for %s: %w", entry.Source, err)
		}
		summary.Resumes++

	default:
		// Unknown document type or a (kind, type) pairing with no parsing
		// strategy. The metadata row above still stands.
		summary.SkippedEntries++
		metrics.IncEntriesSkipped()
		telemetry.Info("ingest.entry_skipped", map[string]any{
			"source": entry.Source,
			"type":   entry.Type,
			"kind":   kind.String(),
		})
		return nil
	}

	metrics.IncEntriesIngested()
	return nil
}

// skipEntry records a per-entry recovery: the artifact was unreadable or its
// columns could not be resolved. The RawDocument row stays; the batch
// continues.
func (e *Engine) skipEntry(entry manifest.Entry, kind Kind, summary *Summary, cause error) {
	summary.SkippedEntries++
	metrics.IncEntriesSkipped()
	telemetry.Warn("ingest.entry_skipped", map[string]any{
		"source": entry.Source,
		"type":   entry.Type,
		"kind":   kind.String(),
		"error":  cause.Error(),
	})
}
