package pdfdoc

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/SscSPs/easyledger/internal/core/ports/gateways"
	"github.com/ledongthuc/pdf"
)

// TextExtractor reads the plain text layer of a PDF.
type TextExtractor struct{}

var _ gateways.PDFTextExtractor = (*TextExtractor)(nil)

func NewTextExtractor() *TextExtractor {
	return &TextExtractor{}
}

// ExtractText returns the concatenated page text. Scanned PDFs yield an empty string.
func (e *TextExtractor) ExtractText(data []byte) (text string, err error) {
	// The parser panics on some malformed inputs.
	defer func() {
		if r := recover(); r != nil {
			text, err = "", fmt.Errorf("malformed pdf: %v", r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to open pdf: %w", err)
	}
	plain, err := r.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("failed to read pdf text: %w", err)
	}
	raw, err := io.ReadAll(plain)
	if err != nil {
		return "", fmt.Errorf("failed to read pdf text: %w", err)
	}
	return strings.TrimSpace(string(raw)), nil
}
