package pdfparser

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"fjacquet/fin-ingest/internal/logging"

	"github.com/ledongthuc/pdf"
)

// TextExtractor defines the interface for extracting text from PDF documents.
// This interface allows for dependency injection and makes the PDF parser testable
// by providing different implementations for production and testing.
type TextExtractor interface {
	// ExtractText returns the text content of the document as one blob, lines
	// separated by newlines.
	ExtractText(data []byte) (string, error)
}

// Extractor names accepted by NewExtractor.
const (
	ExtractorNative    = "native"
	ExtractorPdftotext = "pdftotext"
)

// NewExtractor returns the extractor registered under name.
func NewExtractor(name string, logger logging.Logger) (TextExtractor, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", ExtractorNative:
		return NewNativeExtractor(), nil
	case ExtractorPdftotext:
		return NewPdftotextExtractor(logger), nil
	default:
		return nil, fmt.Errorf("unknown PDF extractor %q", name)
	}
}

// NativeExtractor reads PDF text in-process.
type NativeExtractor struct{}

// NewNativeExtractor creates a new NativeExtractor instance.
func NewNativeExtractor() *NativeExtractor {
	return &NativeExtractor{}
}

// ExtractText concatenates the plain text of every page. Pages that fail to
// render are skipped.
func (e *NativeExtractor) ExtractText(data []byte) (text string, err error) {
	// The reader panics on some malformed cross-reference tables.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("malformed PDF: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("error opening PDF: %w", err)
	}

	var sb strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		content, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		sb.WriteString(content)
		sb.WriteString("\n")
	}
	return sb.String(), nil
}

// PdftotextExtractor shells out to the poppler pdftotext tool, which keeps the
// physical layout of statement columns. It requires pdftotext on PATH.
type PdftotextExtractor struct {
	Command string
	logger  logging.Logger
}

// NewPdftotextExtractor creates an extractor running "pdftotext -layout".
func NewPdftotextExtractor(logger logging.Logger) *PdftotextExtractor {
	return &PdftotextExtractor{Command: "pdftotext", logger: logging.OrDefault(logger)}
}

// ExtractText writes data to a temporary directory and runs the tool on it.
func (e *PdftotextExtractor) ExtractText(data []byte) (string, error) {
	dir, err := os.MkdirTemp("", "fin-ingest-pdf-*")
	if err != nil {
		return "", fmt.Errorf("failed to create temporary directory: %w", err)
	}
	defer func() {
		if err := os.RemoveAll(dir); err != nil {
			e.logger.WithError(err).Warn("Failed to remove temporary directory",
				logging.F(logging.FieldFile, dir))
		}
	}()

	pdfFile := filepath.Join(dir, "input.pdf")
	txtFile := filepath.Join(dir, "output.txt")
	if err := os.WriteFile(pdfFile, data, 0o600); err != nil {
		return "", fmt.Errorf("failed to write temporary PDF file: %w", err)
	}

	cmd := exec.Command(e.Command, "-layout", pdfFile, txtFile) // #nosec G204 -- fixed tool, generated paths
	if output, err := cmd.CombinedOutput(); err != nil {
		e.logger.WithError(err).Error("Failed to run pdftotext command",
			logging.F("output", strings.TrimSpace(string(output))))
		return "", fmt.Errorf("error running pdftotext: %w", err)
	}

	text, err := os.ReadFile(txtFile) // #nosec G304 -- path built above
	if err != nil {
		return "", fmt.Errorf("error reading extracted text: %w", err)
	}
	return string(text), nil
}

// MockExtractor implements TextExtractor for testing purposes.
// It returns predefined text instead of reading the document.
type MockExtractor struct {
	MockText string
	MockErr  error
}

// NewMockExtractor creates a new MockExtractor with the given mock data.
func NewMockExtractor(mockText string, mockErr error) *MockExtractor {
	return &MockExtractor{MockText: mockText, MockErr: mockErr}
}

// ExtractText returns the predefined mock text or error.
func (e *MockExtractor) ExtractText(data []byte) (string, error) {
	if e.MockErr != nil {
		return "", e.MockErr
	}
	return e.MockText, nil
}
