package excelparser

import (
	"fjacquet/fin-ingest/internal/layout"
	"fjacquet/fin-ingest/internal/logging"
	"fjacquet/fin-ingest/internal/models"
	"fjacquet/fin-ingest/internal/parser"
)

// ParseSheet parses one already-selected sheet. Every row below the header is
// offered to the row parser of the detected layout.
func (p *Parser) ParseSheet(sheet models.Sheet, reportType models.ReportType) (*parser.Output, error) {
	logger := p.GetLogger().WithField(logging.FieldSheet, sheet.Name)

	detected := layout.Detect(sheet)
	mapping, err := layout.MapColumns(sheet, detected)
	if err != nil {
		logger.WithError(err).Warn("Column mapping failed")
		return nil, err
	}

	logger.Info("Sheet layout resolved",
		logging.F(logging.FieldLayout, mapping.Kind.String()),
		logging.F(logging.FieldRow, mapping.HeaderRow),
		logging.F("account_recovered", mapping.Recovered))

	header := layout.Header(sheet, mapping.HeaderRow)
	out := &parser.Output{
		SheetName: sheet.Name,
		Records:   []models.ParsedFinancialRecord{},
	}

	var dataRows [][]string
	for i := mapping.HeaderRow + 1; i < len(sheet.Rows); i++ {
		row := sheet.Rows[i]
		if len(dataRows) < parser.PreviewDataRows && !isBlank(row) {
			dataRows = append(dataRows, renderRow(row))
		}

		var (
			record models.ParsedFinancialRecord
			reason string
		)
		if mapping.Kind == layout.DebitCredit {
			record, reason = p.parseDebitCreditRow(row, mapping.Columns, reportType)
		} else {
			record, reason = p.parseAmountCategoryRow(row, mapping.Columns, reportType)
		}
		if reason != "" {
			p.SkipRow(i, reason)
			continue
		}
		out.Records = append(out.Records, record)
	}

	out.Preview = parser.BuildPreview(header, dataRows)
	logger.Info("Sheet parsed", logging.F(logging.FieldCount, len(out.Records)))
	return out, nil
}

func renderRow(row []models.Cell) []string {
	out := make([]string, len(row))
	for i, c := range row {
		out[i] = c.String()
	}
	return out
}

func isBlank(row []models.Cell) bool {
	for _, c := range row {
		if !c.IsEmpty() {
			return false
		}
	}
	return true
}
