package parser

import (
	"fjacquet/fin-ingest/internal/models"
)

// PreviewDataRows is how many rows after the header go into a preview.
const PreviewDataRows = 5

// Parser turns a document of one format into classified records.
type Parser interface {
	// Parse reads the whole document and returns its records. Rows that carry
	// no usable figure are skipped, never reported as errors. Implementations
	// return typed errors from parsererror for failures that abort the parse.
	Parse(data []byte, reportType models.ReportType) (*Output, error)
}

// Output is what a parser hands back to the engine.
type Output struct {
	Records []models.ParsedFinancialRecord
	// SheetName is the worksheet that was processed, or an implicit name for
	// formats without sheets.
	SheetName string
	// Preview is the header plus the first data rows of the processed grid.
	Preview [][]string
}
