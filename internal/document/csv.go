package document

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// CSVReader handles CSV files. Rows are grouped into batches, one page
// per batch, each row rendered with its header labels.
type CSVReader struct{}

const csvRowsPerPage = 20

func (p *CSVReader) ReadPages(r io.Reader, filename string) ([]Page, error) {
	reader := csv.NewReader(r)
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	// First row is headers.
	headers := records[0]
	dataRows := records[1:]

	var pages []Page
	for i := 0; i < len(dataRows); i += csvRowsPerPage {
		end := i + csvRowsPerPage
		if end > len(dataRows) {
			end = len(dataRows)
		}

		var text strings.Builder
		text.WriteString("Headers: " + strings.Join(headers, ", ") + "\n")
		for _, row := range dataRows[i:end] {
			for j, cell := range row {
				if j < len(headers) {
					text.WriteString(headers[j] + ": " + cell)
				} else {
					text.WriteString(cell)
				}
				if j < len(row)-1 {
					text.WriteString(", ")
				}
			}
			text.WriteString("\n")
		}
		pages = append(pages, Page{Number: len(pages) + 1, Text: strings.TrimRight(text.String(), "\n")})
	}
	if len(pages) == 0 {
		// Header-only file: a single page of the headers.
		pages = []Page{{Number: 1, Text: "Headers: " + strings.Join(headers, ", ")}}
	}
	return pages, nil
}
