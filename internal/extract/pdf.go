package extract

import (
	"bytes"
	"io"
	"os"

	"github.com/ledongthuc/pdf"
)

// extractPDF pulls the plain text out of a PDF. Scanned PDFs without a text
// layer come back empty rather than failing; ingestion tolerates empty
// artifacts.
func extractPDF(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	reader := bytes.NewReader(data)
	pdfReader, err := pdf.NewReader(reader, int64(len(data)))
	if err != nil {
		return "", err
	}
	plain, err := pdfReader.GetPlainText()
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", err
	}
	return buf.String(), nil
}
