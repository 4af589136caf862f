// Package parsererror defines the typed failures of document ingestion.
// Hard failures abort a parse and are reported to the caller as a failed
// result; EnrichmentError is always recovered from.
package parsererror

import (
	"errors"
	"fmt"
)

// Sentinels identifying which column a ColumnMappingError is about.
var (
	ErrMissingAccountColumn = errors.New("account column not found")
	ErrMissingAmountColumn  = errors.New("amount column not found")
	ErrMissingDebitColumn   = errors.New("debit column not found")
	ErrMissingCreditColumn  = errors.New("credit column not found")
)

// SheetSelectionError is returned when no worksheet looks like financial data.
type SheetSelectionError struct {
	BestSheet string
	BestScore int
}

func (e *SheetSelectionError) Error() string {
	return "No suitable financial data sheet found"
}

// ColumnMappingError is returned when a mandatory column cannot be resolved.
// Column is one of the ErrMissing* sentinels.
type ColumnMappingError struct {
	Sheet  string
	Column error
	Header []string
}

func (e *ColumnMappingError) Error() string {
	if e.Sheet != "" {
		return fmt.Sprintf("could not map columns in sheet '%s': %v", e.Sheet, e.Column)
	}
	return fmt.Sprintf("could not map columns: %v", e.Column)
}

func (e *ColumnMappingError) Unwrap() error {
	return e.Column
}

// FileDecodeError wraps a failure to decode the raw document bytes.
type FileDecodeError struct {
	FileType string
	Err      error
}

func (e *FileDecodeError) Error() string {
	return fmt.Sprintf("failed to decode %s document: %v", e.FileType, e.Err)
}

func (e *FileDecodeError) Unwrap() error {
	return e.Err
}

// UnsupportedInputError is returned for an unknown file type or report type.
type UnsupportedInputError struct {
	Field string
	Value string
}

func (e *UnsupportedInputError) Error() string {
	return fmt.Sprintf("unsupported %s: '%s'", e.Field, e.Value)
}

// EnrichmentError represents a failed call to the text-generation service.
type EnrichmentError struct {
	Provider string
	Err      error
}

func (e *EnrichmentError) Error() string {
	return fmt.Sprintf("enrichment via %s failed: %v", e.Provider, e.Err)
}

func (e *EnrichmentError) Unwrap() error {
	return e.Err
}

// ParseError represents a value that could not be parsed.
type ParseError struct {
	Parser string
	Field  string
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: failed to parse %s='%s': %v",
		e.Parser, e.Field, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
