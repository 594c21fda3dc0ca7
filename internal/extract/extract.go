// Package extract implements the format detector and extractor: it walks the
// raw intake directory, turns each uploaded file into tabular or text
// artifacts, and emits the manifest consumed by ingestion. A failure on one
// file never aborts the batch; the file is logged and left out of the
// manifest.
package extract

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"socialsupport-backend/internal/artifacts"
	"socialsupport-backend/internal/manifest"
	"socialsupport-backend/internal/shared/metrics"
	"socialsupport-backend/internal/shared/telemetry"
	"socialsupport-backend/internal/shared/util"
)

// Stats summarizes one extraction run.
type Stats struct {
	Processed int
	Failed    int
}

// sheetTable is one tabular extract. Sheet is empty for single-table files.
type sheetTable struct {
	Sheet string
	Rows  [][]string
}

// result holds the outcome of extracting a single raw file: either one or
// more tables, or a text blob.
type result struct {
	Tables []sheetTable
	Text   string
	IsText bool
}

// Run extracts every file under rawDir, persists artifacts through store and
// writes the manifest into the store directory. It returns the manifest
// entries in directory order.
func Run(ctx context.Context, rawDir string, store *artifacts.Store) ([]manifest.Entry, Stats, error) {
	dirEntries, err := os.ReadDir(rawDir)
	if err != nil {
		return nil, Stats{}, fmt.Errorf("read raw dir %s: %w", rawDir, err)
	}

	var stats Stats
	entries := []manifest.Entry{}
	for _, de := range dirEntries {
		if de.IsDir() {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, stats, err
		}
		name := de.Name()
		fileEntries, err := processFile(filepath.Join(rawDir, name), name, store)
		if err != nil {
			stats.Failed++
			metrics.IncFilesFailed()
			telemetry.Warn("extract.file_failed", map[string]any{
				"file":  name,
				"error": err.Error(),
			})
			continue
		}
		stats.Processed++
		metrics.IncFilesProcessed()
		entries = append(entries, fileEntries...)
	}

	manifestPath := filepath.Join(store.Dir(), manifest.FileName)
	if err := manifest.Write(manifestPath, entries); err != nil {
		return nil, stats, err
	}

	telemetry.Info("extract.complete", map[string]any{
		"processed": stats.Processed,
		"failed":    stats.Failed,
		"manifest":  manifestPath,
	})
	return entries, stats, nil
}

func processFile(path, name string, store *artifacts.Store) ([]manifest.Entry, error) {
	res, err := detect(path, name)
	if err != nil {
		return nil, err
	}

	base := strings.TrimSuffix(name, filepath.Ext(name))

	if res.IsText {
		out, err := store.SaveText(base+".txt", res.Text)
		if err != nil {
			return nil, err
		}
		return []manifest.Entry{{Source: name, Type: manifest.TypeText, Output: out}}, nil
	}

	var entries []manifest.Entry
	for _, tbl := range res.Tables {
		artifactName := base + ".csv"
		if tbl.Sheet != "" {
			artifactName = fmt.Sprintf("%s_%s.csv", base, util.SheetSlug(tbl.Sheet))
		}
		out, err := store.SaveCSV(artifactName, tbl.Rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, manifest.Entry{
			Source: name,
			Type:   manifest.TypeTable,
			Sheet:  tbl.Sheet,
			Output: out,
		})
	}
	return entries, nil
}

// detect inspects the file's extension and extracts its contents. Unknown
// extensions (including images, which would need an OCR engine this pipeline
// does not carry) are reported as errors so the caller can skip the file.
func detect(path, name string) (result, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".xlsx":
		tables, err := extractXLSX(path)
		if err != nil {
			return result{}, err
		}
		return result{Tables: tables}, nil
	case ".csv":
		rows, err := extractCSV(path)
		if err != nil {
			return result{}, err
		}
		return result{Tables: []sheetTable{{Rows: rows}}}, nil
	case ".pdf":
		text, err := extractPDF(path)
		if err != nil {
			return result{}, err
		}
		return result{Text: text, IsText: true}, nil
	case ".docx":
		text, err := extractDOCX(path)
		if err != nil {
			return result{}, err
		}
		return result{Text: text, IsText: true}, nil
	case ".txt":
		data, err := os.ReadFile(path)
		if err != nil {
			return result{}, err
		}
		return result{Text: string(data), IsText: true}, nil
	default:
		return result{}, fmt.Errorf("unsupported file type %q", filepath.Ext(name))
	}
}
