// Package pdftext pulls the raw text out of invoice PDFs. Image-only or
// corrupt files fail extraction; callers surface those as unreadable
// documents instead of errors.
package pdftext

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ErrNoText means the PDF opened fine but no text could be decoded,
// typically a scanned image.
var ErrNoText = errors.New("no extractable text")

// ExtractText reads a PDF file and returns its full text, pages joined
// with CRLF line breaks between rows so anchor-based field extraction
// sees the line structure the invoice templates use.
func ExtractText(filePath string) (string, error) {
	pages, err := extract(filePath)
	if err != nil {
		return "", err
	}
	text := strings.Join(pages, "\r\n")
	if strings.TrimSpace(text) == "" {
		return "", ErrNoText
	}
	return text, nil
}

// extract walks the document row by row. The pdf library panics on some
// malformed files, so the whole pass runs behind a recover.
func extract(filePath string) (pages []string, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			pages = nil
			err = fmt.Errorf("pdf library crashed: %v", rec)
		}
	}()

	f, r, err := pdf.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()

	numPages := r.NumPage()
	if numPages == 0 {
		return nil, ErrNoText
	}

	for i := 1; i <= numPages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		rows, err := page.GetTextByRow()
		if err != nil {
			continue
		}
		var lines []string
		for _, row := range rows {
			var parts []string
			for _, word := range row.Content {
				parts = append(parts, word.S)
			}
			if line := strings.TrimSpace(strings.Join(parts, " ")); line != "" {
				lines = append(lines, line)
			}
		}
		pages = append(pages, strings.Join(lines, "\r\n"))
	}

	return pages, nil
}
