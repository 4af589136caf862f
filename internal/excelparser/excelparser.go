// Package excelparser extracts classified records from xlsx and xls workbooks:
// it picks the financial sheet, detects its layout and parses each data row.
package excelparser

import (
	"fjacquet/fin-ingest/internal/categorizer"
	"fjacquet/fin-ingest/internal/logging"
	"fjacquet/fin-ingest/internal/models"
	"fjacquet/fin-ingest/internal/parser"
	"fjacquet/fin-ingest/internal/sheetselector"
	"fjacquet/fin-ingest/internal/workbook"
)

// Parser parses one workbook format.
type Parser struct {
	parser.BaseParser
	decoder  workbook.Decoder
	selector *sheetselector.Selector
}

// New creates a Parser reading workbooks with decoder.
func New(decoder workbook.Decoder, cat *categorizer.Categorizer, logger logging.Logger) *Parser {
	base := parser.NewBaseParser("excel", cat, logger)
	return &Parser{
		BaseParser: base,
		decoder:    decoder,
		selector:   sheetselector.New(base.GetLogger()),
	}
}

// Parse decodes the workbook, selects the financial sheet and parses it.
func (p *Parser) Parse(data []byte, reportType models.ReportType) (*parser.Output, error) {
	sheets, err := p.decoder.Decode(data)
	if err != nil {
		return nil, err
	}
	p.GetLogger().Debug("Workbook decoded", logging.F(logging.FieldCount, len(sheets)))

	idx, err := p.selector.Select(sheets)
	if err != nil {
		return nil, err
	}

	return p.ParseSheet(sheets[idx], reportType)
}
