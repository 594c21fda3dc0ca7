package extract

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/xuri/excelize/v2"
)

// extractXLSX reads every sheet of a workbook as a table of string cells,
// in workbook order. Sheets with no rows still yield an (empty) table so the
// sheet label survives into the manifest.
func extractXLSX(path string) ([]sheetTable, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	var tables []sheetTable
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
		}
		tables = append(tables, sheetTable{Sheet: sheet, Rows: rows})
	}
	if len(tables) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	return tables, nil
}

// extractCSV parses a delimited-text upload. Ragged rows are tolerated; the
// ingestion side resolves columns by header, not position.
func extractCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	return r.ReadAll()
}
