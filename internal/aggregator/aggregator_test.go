package aggregator

import (
	"testing"

	"fjacquet/fin-ingest/internal/logging"
	"fjacquet/fin-ingest/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func rec(name string, amount string, dt models.DataType) models.ParsedFinancialRecord {
	return models.ParsedFinancialRecord{AccountName: name, Amount: decimal.RequireFromString(amount), DataType: dt}
}

func TestAggregate(t *testing.T) {
	tests := []struct {
		name    string
		records []models.ParsedFinancialRecord
		check   func(t *testing.T, s models.Summary)
	}{
		{
			name: "profit and loss",
			records: []models.ParsedFinancialRecord{
				rec("Consulting Income", "5000", models.DataTypeRevenue),
				rec("Office Rent", "1200", models.DataTypeExpense),
			},
			check: func(t *testing.T, s models.Summary) {
				assert.Equal(t, "5000", s.TotalRevenue.String())
				assert.Equal(t, "1200", s.TotalExpenses.String())
				assert.Equal(t, "3800", s.NetProfit.String())
				assert.True(t, decimal.NewFromInt(76).Equal(s.NetMarginPercent))
			},
		},
		{
			name: "negative expenses and liabilities count as absolute values",
			records: []models.ParsedFinancialRecord{
				rec("Bank Charges", "-25.50", models.DataTypeExpense),
				rec("Salaries", "100", models.DataTypeExpense),
				rec("Accounts Payable", "-800", models.DataTypeLiability),
				rec("Loan", "200", models.DataTypeLiability),
			},
			check: func(t *testing.T, s models.Summary) {
				assert.Equal(t, "125.5", s.TotalExpenses.String())
				assert.Equal(t, "1000", s.TotalLiabilities.String())
				assert.True(t, s.TotalExpenses.GreaterThanOrEqual(decimal.Zero))
				assert.True(t, s.TotalLiabilities.GreaterThanOrEqual(decimal.Zero))
			},
		},
		{
			name: "no revenue yields zero margin",
			records: []models.ParsedFinancialRecord{
				rec("Rent", "1000", models.DataTypeExpense),
			},
			check: func(t *testing.T, s models.Summary) {
				assert.True(t, s.NetMarginPercent.IsZero())
				assert.Equal(t, "-1000", s.NetProfit.String())
			},
		},
		{
			name: "negative revenue yields zero margin",
			records: []models.ParsedFinancialRecord{
				rec("Sales Returns", "-50", models.DataTypeRevenue),
			},
			check: func(t *testing.T, s models.Summary) {
				assert.True(t, s.NetMarginPercent.IsZero())
			},
		},
		{
			name: "margin rounds to two places",
			records: []models.ParsedFinancialRecord{
				rec("Sales", "3", models.DataTypeRevenue),
				rec("Cost", "2", models.DataTypeExpense),
			},
			check: func(t *testing.T, s models.Summary) {
				assert.Equal(t, "33.33", s.NetMarginPercent.String())
			},
		},
		{
			name: "balance sheet and cash flow",
			records: []models.ParsedFinancialRecord{
				rec("Cash", "1500", models.DataTypeAsset),
				rec("Overdraft", "-100", models.DataTypeAsset),
				rec("Retained Earnings", "900", models.DataTypeEquity),
				rec("Customer receipts", "700", models.DataTypeCashFlowIn),
				rec("Supplier payments", "300", models.DataTypeCashFlowOut),
			},
			check: func(t *testing.T, s models.Summary) {
				assert.Equal(t, "1400", s.TotalAssets.String())
				assert.Equal(t, "900", s.TotalEquity.String())
				assert.True(t, s.TotalRevenue.IsZero())
				assert.True(t, s.TotalExpenses.IsZero())
			},
		},
		{
			name:    "empty",
			records: nil,
			check: func(t *testing.T, s models.Summary) {
				assert.Equal(t, 0, s.RecordCount)
				assert.True(t, s.NetProfit.IsZero())
				assert.True(t, s.NetMarginPercent.IsZero())
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(logging.NewMockLogger()).Aggregate(tt.records, "Sheet1")
			assert.Equal(t, "Sheet1", s.ProcessedSheet)
			assert.Equal(t, len(tt.records), s.RecordCount)
			tt.check(t, s)
		})
	}
}

func TestAggregate_LogsCashFlow(t *testing.T) {
	logger := logging.NewMockLogger()
	New(logger).Aggregate([]models.ParsedFinancialRecord{
		rec("Customer receipts", "700", models.DataTypeCashFlowIn),
		rec("Supplier payments", "-300", models.DataTypeCashFlowOut),
	}, "CSV Data")

	entries := logger.GetEntriesByLevel("DEBUG")
	if assert.Len(t, entries, 1) {
		fields := map[string]interface{}{}
		for _, f := range entries[0].Fields {
			fields[f.Key] = f.Value
		}
		assert.Equal(t, "700.00", fields["cash_inflow"])
		assert.Equal(t, "300.00", fields["cash_outflow"])
		assert.Equal(t, "400.00", fields["net_cash_flow"])
	}
}
