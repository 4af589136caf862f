// Package parser provides the base parser functionality and common interfaces.
package parser

import (
	"strings"

	"fjacquet/fin-ingest/internal/categorizer"
	"fjacquet/fin-ingest/internal/logging"
	"fjacquet/fin-ingest/internal/models"

	"github.com/shopspring/decimal"
)

// BaseParser provides common functionality for all parser implementations.
//
// Parsers should embed BaseParser to inherit common functionality:
//
//	type MyParser struct {
//		parser.BaseParser
//		// parser-specific fields
//	}
type BaseParser struct {
	logger      logging.Logger
	categorizer *categorizer.Categorizer
}

// NewBaseParser creates a BaseParser. If logger is nil, a default logger will
// be used.
func NewBaseParser(name string, cat *categorizer.Categorizer, logger logging.Logger) BaseParser {
	return BaseParser{
		logger:      logging.OrDefault(logger).WithField(logging.FieldParser, name),
		categorizer: cat,
	}
}

// SetLogger replaces the logger.
func (b *BaseParser) SetLogger(logger logging.Logger) {
	if logger != nil {
		b.logger = logger
	}
}

// GetLogger returns the current logger instance.
func (b *BaseParser) GetLogger() logging.Logger {
	return b.logger
}

// Categorizer returns the classifier shared by the parsers.
func (b *BaseParser) Categorizer() *categorizer.Categorizer {
	return b.categorizer
}

// SkipRow logs why a row or line produced no record.
func (b *BaseParser) SkipRow(index int, reason string) {
	b.logger.Debug("Row skipped",
		logging.F(logging.FieldRow, index),
		logging.F(logging.FieldReason, reason))
}

// NewRecord builds a record with a trimmed account name.
func NewRecord(label string, amount decimal.Decimal, dataType models.DataType) models.ParsedFinancialRecord {
	return models.ParsedFinancialRecord{
		AccountName: strings.TrimSpace(label),
		Amount:      amount,
		DataType:    dataType,
	}
}

// BuildPreview returns header plus up to PreviewDataRows rows.
func BuildPreview(header []string, rows [][]string) [][]string {
	preview := make([][]string, 0, PreviewDataRows+1)
	if header != nil {
		preview = append(preview, header)
	}
	for i := 0; i < len(rows) && i < PreviewDataRows; i++ {
		preview = append(preview, rows[i])
	}
	return preview
}

// LabelIs reports whether label equals one of names, ignoring case and
// surrounding whitespace.
func LabelIs(label string, names ...string) bool {
	normalized := strings.ToLower(strings.TrimSpace(label))
	for _, name := range names {
		if normalized == name {
			return true
		}
	}
	return false
}
