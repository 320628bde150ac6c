// Package convert turns raw source bytes into the plain/markdown text a
// Document is built from. PDF sources get a thin wrapper over
// ledongthuc/pdf; markdown and plaintext sources pass through untouched.
package convert

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/ledongthuc/pdf"

	"github.com/entityfusion/fusion/pkg/document"
)

// Converter turns a source file's bytes into plain/markdown text plus the
// conversion metadata that lands in a document's frontmatter.
type Converter interface {
	Convert(sourcePath string, data []byte) (text string, meta document.ConversionMeta, err error)
}

// MarkdownPassthrough handles sources that are already markdown or plain
// text: no conversion engine runs, the bytes are the text.
type MarkdownPassthrough struct{}

func (MarkdownPassthrough) Convert(sourcePath string, data []byte) (string, document.ConversionMeta, error) {
	start := time.Now()
	text := string(data)
	meta := document.ConversionMeta{
		Engine:           "passthrough",
		PageCount:        0,
		ConversionTimeMS: float64(time.Since(start).Microseconds()) / 1000,
		SourceFile:       sourcePath,
		Format:           formatFor(sourcePath),
	}
	return text, meta, nil
}

// PDFConverter extracts the whole document's plain text from a PDF source
// using ledongthuc/pdf, the corpus's own choice of PDF library.
type PDFConverter struct{}

func (PDFConverter) Convert(sourcePath string, data []byte) (string, document.ConversionMeta, error) {
	start := time.Now()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", document.ConversionMeta{}, fmt.Errorf("convert %s: open pdf: %w", sourcePath, err)
	}

	pageCount := reader.NumPage()
	content, err := reader.GetPlainText()
	if err != nil {
		return "", document.ConversionMeta{}, fmt.Errorf("convert %s: extract text: %w", sourcePath, err)
	}
	var sb strings.Builder
	if _, err := sb.ReadFrom(content); err != nil {
		return "", document.ConversionMeta{}, fmt.Errorf("convert %s: read text: %w", sourcePath, err)
	}

	meta := document.ConversionMeta{
		Engine:           "ledongthuc/pdf",
		PageCount:        pageCount,
		ConversionTimeMS: float64(time.Since(start).Microseconds()) / 1000,
		SourceFile:       sourcePath,
		Format:           "pdf",
	}
	return sb.String(), meta, nil
}

// Select picks the Converter for a source path based on its extension.
func Select(sourcePath string) Converter {
	if strings.HasSuffix(strings.ToLower(sourcePath), ".pdf") {
		return PDFConverter{}
	}
	return MarkdownPassthrough{}
}

func formatFor(sourcePath string) string {
	lower := strings.ToLower(sourcePath)
	switch {
	case strings.HasSuffix(lower, ".md"):
		return "markdown"
	default:
		return "text"
	}
}
