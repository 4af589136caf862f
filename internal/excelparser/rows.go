package excelparser

import (
	"strings"

	"fjacquet/fin-ingest/internal/currencyutils"
	"fjacquet/fin-ingest/internal/layout"
	"fjacquet/fin-ingest/internal/models"
	"fjacquet/fin-ingest/internal/parser"
)

// Skip reasons, logged at debug level.
const (
	reasonNoFigures   = "no debit or credit"
	reasonNoLabel     = "empty account name"
	reasonTotalLine   = "total line"
	reasonZeroAmount  = "zero amount"
	reasonUnparseable = "unparseable amount"
)

// parseDebitCreditRow computes amount = debit - credit. Unparseable figures
// count as zero. An empty reason means the record is valid.
func (p *Parser) parseDebitCreditRow(row []models.Cell, cols layout.Columns, rt models.ReportType) (models.ParsedFinancialRecord, string) {
	debit := currencyutils.CellAmountOrZero(cellAt(row, cols.Debit))
	credit := currencyutils.CellAmountOrZero(cellAt(row, cols.Credit))
	if debit.IsZero() && credit.IsZero() {
		return models.ParsedFinancialRecord{}, reasonNoFigures
	}

	label := strings.TrimSpace(cellAt(row, cols.Account).String())
	if label == "" {
		return models.ParsedFinancialRecord{}, reasonNoLabel
	}
	if parser.LabelIs(label, "total", "trial balance") {
		return models.ParsedFinancialRecord{}, reasonTotalLine
	}

	amount := debit.Sub(credit)
	if amount.IsZero() && !p.Categorizer().KeepZeroAmounts(rt) {
		return models.ParsedFinancialRecord{}, reasonZeroAmount
	}

	record := parser.NewRecord(label, amount, p.Categorizer().Classify(label, amount, rt))
	record.Period = strings.TrimSpace(cellAt(row, cols.Period).String())
	return record, ""
}

// parseAmountCategoryRow reads a signed amount and, when present, lets the
// category column decide the data type before the label does.
func (p *Parser) parseAmountCategoryRow(row []models.Cell, cols layout.Columns, rt models.ReportType) (models.ParsedFinancialRecord, string) {
	label := strings.TrimSpace(cellAt(row, cols.Account).String())
	if label == "" {
		return models.ParsedFinancialRecord{}, reasonNoLabel
	}
	if parser.LabelIs(label, "total") {
		return models.ParsedFinancialRecord{}, reasonTotalLine
	}

	amount, ok := currencyutils.CellAmount(cellAt(row, cols.Amount))
	if !ok {
		return models.ParsedFinancialRecord{}, reasonUnparseable
	}
	if amount.IsZero() && !p.Categorizer().KeepZeroAmounts(rt) {
		return models.ParsedFinancialRecord{}, reasonZeroAmount
	}

	category := strings.TrimSpace(cellAt(row, cols.Category).String())
	record := parser.NewRecord(label, amount, p.Categorizer().ClassifyWithCategory(label, category, amount, rt))
	record.AccountCategory = category
	record.Period = strings.TrimSpace(cellAt(row, cols.Period).String())
	return record, ""
}

func cellAt(row []models.Cell, col int) models.Cell {
	if col < 0 || col >= len(row) {
		return models.Cell{}
	}
	return row[col]
}
