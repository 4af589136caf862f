package excelparser

import (
	"errors"
	"testing"

	"fjacquet/fin-ingest/internal/categorizer"
	"fjacquet/fin-ingest/internal/logging"
	"fjacquet/fin-ingest/internal/models"
	"fjacquet/fin-ingest/internal/parsererror"
	"fjacquet/fin-ingest/internal/store"
	"fjacquet/fin-ingest/internal/testutil"
	"fjacquet/fin-ingest/internal/workbook"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestParser(t *testing.T) (*Parser, *logging.MockLogger) {
	t.Helper()
	logger := logging.NewMockLogger()
	cat := categorizer.NewCategorizer(store.DefaultTaxonomy(), logger)
	return New(&workbook.XLSXDecoder{}, cat, logger), logger
}

func trialBalanceWorkbook(t *testing.T) []byte {
	return testutil.BuildXLSX(t,
		testutil.SheetFixture{Name: "Tips", Rows: [][]interface{}{
			{"How to use this workbook"},
		}},
		testutil.SheetFixture{Name: "TB Dec 31", Rows: [][]interface{}{
			{"Acme Ltd"},
			{"Account", "Debit", "Credit"},
			{"RBC Chequing", 1500, 0},
			{"Accounts Payable", 0, 800},
			{"Suspense", 100, 100},
			{"Dormant", 0, 0},
			{"Customer Deposits", "n/a", 50},
			{nil, 10, 0},
			{"Total", 1600, 950},
		}},
	)
}

func findRecord(t *testing.T, records []models.ParsedFinancialRecord, name string) models.ParsedFinancialRecord {
	t.Helper()
	for _, r := range records {
		if r.AccountName == name {
			return r
		}
	}
	t.Fatalf("record %q not found", name)
	return models.ParsedFinancialRecord{}
}

func TestParse_DebitCreditTrialBalance(t *testing.T) {
	p, _ := newTestParser(t)

	out, err := p.Parse(trialBalanceWorkbook(t), models.ReportTypeTrialBalance)
	require.NoError(t, err)
	assert.Equal(t, "TB Dec 31", out.SheetName)
	require.Len(t, out.Records, 4)

	chequing := findRecord(t, out.Records, "RBC Chequing")
	assert.Equal(t, models.DataTypeAsset, chequing.DataType)
	assert.True(t, decimal.NewFromInt(1500).Equal(chequing.Amount))

	payable := findRecord(t, out.Records, "Accounts Payable")
	assert.Equal(t, models.DataTypeLiability, payable.DataType)
	assert.True(t, decimal.NewFromInt(-800).Equal(payable.Amount))

	suspense := findRecord(t, out.Records, "Suspense")
	assert.True(t, suspense.Amount.IsZero(), "trial balance keeps zero balances")

	deposits := findRecord(t, out.Records, "Customer Deposits")
	assert.True(t, decimal.NewFromInt(-50).Equal(deposits.Amount), "unparseable debit counts as zero")

	for _, r := range out.Records {
		assert.NotEqual(t, "Dormant", r.AccountName)
		assert.NotEqual(t, "Total", r.AccountName)
		assert.NotEmpty(t, r.AccountName)
	}
}

func TestParse_DebitCreditDropsZeroOutsideTrialBalance(t *testing.T) {
	p, _ := newTestParser(t)

	out, err := p.Parse(trialBalanceWorkbook(t), models.ReportTypeBalanceSheet)
	require.NoError(t, err)
	require.Len(t, out.Records, 3)
	for _, r := range out.Records {
		assert.False(t, r.Amount.IsZero())
	}
}

func TestParse_AmountDebitMinusCredit(t *testing.T) {
	p, _ := newTestParser(t)
	data := testutil.BuildXLSX(t, testutil.SheetFixture{Name: "Ledger", Rows: [][]interface{}{
		{"Account", "Debit", "Credit"},
		{"Office Rent", 1200.25, 200},
		{"Sales", "$100", "$2,600.50"},
	}})

	out, err := p.Parse(data, models.ReportTypeProfitLoss)
	require.NoError(t, err)
	require.Len(t, out.Records, 2)
	assert.True(t, decimal.RequireFromString("1000.25").Equal(out.Records[0].Amount))
	assert.Equal(t, models.DataTypeExpense, out.Records[0].DataType)
	assert.True(t, decimal.RequireFromString("-2500.5").Equal(out.Records[1].Amount))
	assert.Equal(t, models.DataTypeRevenue, out.Records[1].DataType)
}

func TestParse_AmountCategory(t *testing.T) {
	p, _ := newTestParser(t)
	data := testutil.BuildXLSX(t, testutil.SheetFixture{Name: "P&L", Rows: [][]interface{}{
		{"Account", "Category", "Amount", "Period"},
		{"Consulting Income", "Income", "$5,000.00", "2024-Q1"},
		{"Office Rent", "Operating Expenses", 1200, "2024-Q1"},
		{"Widgets", nil, 300},
		{"Bad Row", nil, "n/a"},
		{"Nothing", nil, 0},
		{"total", nil, 6500},
	}})

	out, err := p.Parse(data, models.ReportTypeProfitLoss)
	require.NoError(t, err)
	require.Len(t, out.Records, 3)

	income := out.Records[0]
	assert.Equal(t, "Consulting Income", income.AccountName)
	assert.Equal(t, "Income", income.AccountCategory)
	assert.Equal(t, models.DataTypeRevenue, income.DataType)
	assert.True(t, decimal.NewFromInt(5000).Equal(income.Amount))
	assert.Equal(t, "2024-Q1", income.Period)

	rent := out.Records[1]
	assert.Equal(t, models.DataTypeExpense, rent.DataType)

	widgets := out.Records[2]
	assert.Empty(t, widgets.AccountCategory)
	assert.Equal(t, models.DataTypeExpense, widgets.DataType, "no keyword falls back to expense")
}

func TestParse_CategoryOverridesLabel(t *testing.T) {
	p, _ := newTestParser(t)
	data := testutil.BuildXLSX(t, testutil.SheetFixture{Name: "BS", Rows: [][]interface{}{
		{"Account", "Category", "Amount"},
		{"Sales Tax Collected", "Current Liabilities", 450},
	}})

	out, err := p.Parse(data, models.ReportTypeTrialBalance)
	require.NoError(t, err)
	require.Len(t, out.Records, 1)
	assert.Equal(t, models.DataTypeLiability, out.Records[0].DataType)
}

func TestParse_AmountCategoryKeepsZeroOnTrialBalance(t *testing.T) {
	p, _ := newTestParser(t)
	data := testutil.BuildXLSX(t, testutil.SheetFixture{Name: "TB", Rows: [][]interface{}{
		{"Account", "Amount"},
		{"Petty Cash", 0},
	}})

	out, err := p.Parse(data, models.ReportTypeTrialBalance)
	require.NoError(t, err)
	require.Len(t, out.Records, 1)
	assert.Equal(t, models.DataTypeAsset, out.Records[0].DataType)
	assert.True(t, out.Records[0].Amount.IsZero())

	out, err = p.Parse(data, models.ReportTypeProfitLoss)
	require.NoError(t, err)
	assert.Empty(t, out.Records)
}

func TestParse_NoSuitableSheet(t *testing.T) {
	p, _ := newTestParser(t)
	data := testutil.BuildXLSX(t,
		testutil.SheetFixture{Name: "Instructions", Rows: [][]interface{}{{"Fill in the account and amount"}}},
		testutil.SheetFixture{Name: "Cover", Rows: [][]interface{}{{"Prepared for the board"}}},
	)

	_, err := p.Parse(data, models.ReportTypeProfitLoss)
	require.Error(t, err)
	assert.Equal(t, "No suitable financial data sheet found", err.Error())
	var selErr *parsererror.SheetSelectionError
	assert.True(t, errors.As(err, &selErr))
}

func TestParse_ColumnMappingFailure(t *testing.T) {
	p, logger := newTestParser(t)
	data := testutil.BuildXLSX(t, testutil.SheetFixture{Name: "Data", Rows: [][]interface{}{
		{"Account", "Balance"},
		{"Cash", 100},
	}})

	_, err := p.Parse(data, models.ReportTypeBalanceSheet)
	require.Error(t, err)
	assert.True(t, errors.Is(err, parsererror.ErrMissingAmountColumn))
	assert.True(t, logger.HasEntry("WARN", "Column mapping failed"))
}

func TestParse_DecodeFailure(t *testing.T) {
	p, _ := newTestParser(t)
	_, err := p.Parse([]byte("not a zip"), models.ReportTypeProfitLoss)
	var decodeErr *parsererror.FileDecodeError
	assert.True(t, errors.As(err, &decodeErr))
}

func TestParseSheet_QuickBooksMiddleDot(t *testing.T) {
	p, _ := newTestParser(t)
	s := func(v string) models.Cell { return models.StringCell(v) }
	n := func(v int64) models.Cell { return models.NumberCell(decimal.NewFromInt(v)) }

	sheet := models.Sheet{Name: "Trial Balance", Rows: [][]models.Cell{
		{{}, s("Dec 31, 24")},
		{{}, s("Debit"), s("Credit")},
		{s("Bank · RBC Chequing"), n(1500), {}},
		{s("Income · Consulting"), {}, n(5000)},
		{s("TOTAL"), n(1500), n(5000)},
	}}

	out, err := p.ParseSheet(sheet, models.ReportTypeTrialBalance)
	require.NoError(t, err)
	require.Len(t, out.Records, 2)
	assert.Equal(t, "Bank · RBC Chequing", out.Records[0].AccountName)
	assert.Equal(t, models.DataTypeAsset, out.Records[0].DataType)
	assert.Equal(t, models.DataTypeRevenue, out.Records[1].DataType)
	assert.True(t, decimal.NewFromInt(-5000).Equal(out.Records[1].Amount))
}

func TestParseSheet_Preview(t *testing.T) {
	p, _ := newTestParser(t)
	rows := [][]models.Cell{
		{models.StringCell("Account"), models.StringCell("Amount")},
	}
	for i := 0; i < 8; i++ {
		rows = append(rows, []models.Cell{models.StringCell("Sales"), models.NumberCell(decimal.NewFromInt(int64(i + 1)))})
	}

	out, err := p.ParseSheet(models.Sheet{Name: "Data", Rows: rows}, models.ReportTypeProfitLoss)
	require.NoError(t, err)
	require.Len(t, out.Preview, 6)
	assert.Equal(t, []string{"Account", "Amount"}, out.Preview[0])
	assert.Equal(t, []string{"Sales", "5"}, out.Preview[5])
	assert.Len(t, out.Records, 8)
}

func TestParse_Idempotent(t *testing.T) {
	p, _ := newTestParser(t)
	data := trialBalanceWorkbook(t)

	first, err := p.Parse(data, models.ReportTypeTrialBalance)
	require.NoError(t, err)
	second, err := p.Parse(data, models.ReportTypeTrialBalance)
	require.NoError(t, err)
	assert.Equal(t, first.Records, second.Records)
}
