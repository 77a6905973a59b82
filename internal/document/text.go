package document

import (
	"io"
	"strings"
)

// TextReader handles plain text files. Form feeds act as page breaks;
// a file without them is a single page.
type TextReader struct{}

func (p *TextReader) ReadPages(r io.Reader, filename string) ([]Page, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, nil
	}

	parts := strings.Split(string(data), "\f")
	pages := make([]Page, len(parts))
	for i, part := range parts {
		pages[i] = Page{Number: i + 1, Text: strings.TrimRight(part, "\n")}
	}
	return pages, nil
}
