package services

import (
	"bytes"

	"github.com/ledongthuc/pdf"
)

// PDFPageCount reports the number of pages in a PDF document. It is metadata
// probing only: a file that cannot be parsed is still accepted for storage.
func PDFPageCount(content []byte) (int, error) {
	reader, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return 0, err
	}
	return reader.NumPage(), nil
}

// LooksLikePDF reports whether the content carries a PDF header. Used to
// decide when page counting is worth attempting, never to reject input.
func LooksLikePDF(content []byte) bool {
	return bytes.HasPrefix(content, []byte("%PDF-"))
}
