// Package aggregator derives summary totals from classified records.
package aggregator

import (
	"fjacquet/fin-ingest/internal/currencyutils"
	"fjacquet/fin-ingest/internal/logging"
	"fjacquet/fin-ingest/internal/models"

	"github.com/shopspring/decimal"
)

// Aggregator computes Summary values in a single pass over the records.
type Aggregator struct {
	logger logging.Logger
}

// New creates a new Aggregator instance.
func New(logger logging.Logger) *Aggregator {
	return &Aggregator{logger: logging.OrDefault(logger)}
}

// Aggregate sums records by DataType. Expenses and liabilities are summed as
// absolute values so their totals are never negative, whatever sign convention
// the source used. Cash-flow records feed no Summary total.
func (a *Aggregator) Aggregate(records []models.ParsedFinancialRecord, sheetName string) models.Summary {
	summary := models.Summary{
		TotalRevenue:     decimal.Zero,
		TotalExpenses:    decimal.Zero,
		TotalAssets:      decimal.Zero,
		TotalLiabilities: decimal.Zero,
		TotalEquity:      decimal.Zero,
		ProcessedSheet:   sheetName,
		RecordCount:      len(records),
	}
	inflow, outflow := decimal.Zero, decimal.Zero

	for _, r := range records {
		switch r.DataType {
		case models.DataTypeRevenue:
			summary.TotalRevenue = summary.TotalRevenue.Add(r.Amount)
		case models.DataTypeExpense:
			summary.TotalExpenses = summary.TotalExpenses.Add(r.Amount.Abs())
		case models.DataTypeAsset:
			summary.TotalAssets = summary.TotalAssets.Add(r.Amount)
		case models.DataTypeLiability:
			summary.TotalLiabilities = summary.TotalLiabilities.Add(r.Amount.Abs())
		case models.DataTypeEquity:
			summary.TotalEquity = summary.TotalEquity.Add(r.Amount)
		case models.DataTypeCashFlowIn:
			inflow = inflow.Add(r.Amount.Abs())
		case models.DataTypeCashFlowOut:
			outflow = outflow.Add(r.Amount.Abs())
		}
	}

	summary.NetProfit = summary.TotalRevenue.Sub(summary.TotalExpenses)
	summary.NetMarginPercent = currencyutils.Percent(summary.NetProfit, summary.TotalRevenue)

	fields := []logging.Field{
		logging.F(logging.FieldSheet, sheetName),
		logging.F(logging.FieldCount, len(records)),
	}
	if !inflow.IsZero() || !outflow.IsZero() {
		fields = append(fields,
			logging.F("cash_inflow", inflow.StringFixed(2)),
			logging.F("cash_outflow", outflow.StringFixed(2)),
			logging.F("net_cash_flow", inflow.Sub(outflow).StringFixed(2)))
	}
	a.logger.Debug("Records aggregated", fields...)

	return summary
}
