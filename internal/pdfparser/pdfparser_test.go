package pdfparser

import (
	"errors"
	"testing"

	"fjacquet/fin-ingest/internal/categorizer"
	"fjacquet/fin-ingest/internal/logging"
	"fjacquet/fin-ingest/internal/models"
	"fjacquet/fin-ingest/internal/parsererror"
	"fjacquet/fin-ingest/internal/store"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const incomeStatementText = `Acme Ltd
Statement of Operations

Sales Revenue              $12,500.00
Rent Expense                 2,000
Advertising and marketing costs for the fourth quarter of the year 450.75
Interest income              0.00
Net income
Page 1 of 2
`

func newTestParser(t *testing.T, text string, err error) *Parser {
	t.Helper()
	logger := logging.NewMockLogger()
	cat := categorizer.NewCategorizer(store.DefaultTaxonomy(), logger)
	return New(NewMockExtractor(text, err), cat, logger)
}

func TestParse_IncomeStatementFixture(t *testing.T) {
	p := newTestParser(t, incomeStatementText, nil)

	out, err := p.Parse([]byte("%PDF-1.5"), models.ReportTypeProfitLoss)
	require.NoError(t, err)
	assert.Equal(t, SheetName, out.SheetName)
	require.Len(t, out.Records, 3)

	sales := out.Records[0]
	assert.Equal(t, "Sales Revenue              $12,500.00", sales.AccountName)
	assert.Equal(t, models.DataTypeRevenue, sales.DataType)
	assert.True(t, decimal.NewFromInt(12500).Equal(sales.Amount))
	assert.Empty(t, sales.Notes)

	rent := out.Records[1]
	assert.Equal(t, models.DataTypeExpense, rent.DataType)
	assert.True(t, decimal.NewFromInt(2000).Equal(rent.Amount))

	advertising := out.Records[2]
	assert.Equal(t, "Advertising and marketing costs for the fourth qua", advertising.AccountName)
	assert.Equal(t, "Advertising and marketing costs for the fourth quarter of the year 450.75", advertising.Notes)
	assert.True(t, decimal.RequireFromString("450.75").Equal(advertising.Amount))

	for _, r := range out.Records {
		assert.LessOrEqual(t, len([]rune(r.AccountName)), MaxNameLength)
		assert.True(t, r.Amount.IsPositive())
	}
	assert.Len(t, out.Preview, 5)
}

func TestParseText_PatternsFollowReportType(t *testing.T) {
	text := "Cash and equivalents 10,000\nAccounts payable 3,000\nRetained earnings 7,000\n"

	tests := []struct {
		name       string
		reportType models.ReportType
		want       []models.DataType
	}{
		{
			name:       "balance sheet",
			reportType: models.ReportTypeBalanceSheet,
			want:       []models.DataType{models.DataTypeAsset, models.DataTypeLiability, models.DataTypeEquity},
		},
		{
			name:       "cash flow has no balance keywords",
			reportType: models.ReportTypeCashFlow,
			want:       nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestParser(t, "", nil)
			out := p.ParseText(text, tt.reportType)
			var got []models.DataType
			for _, r := range out.Records {
				got = append(got, r.DataType)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParse_ExtractorFailure(t *testing.T) {
	p := newTestParser(t, "", errors.New("broken xref"))

	_, err := p.Parse([]byte("junk"), models.ReportTypeProfitLoss)
	require.Error(t, err)

	var decodeErr *parsererror.FileDecodeError
	require.True(t, errors.As(err, &decodeErr))
	assert.Equal(t, "pdf", decodeErr.FileType)
}

func TestParse_EmptyText(t *testing.T) {
	p := newTestParser(t, "", nil)
	out, err := p.Parse(nil, models.ReportTypeProfitLoss)
	require.NoError(t, err)
	assert.Empty(t, out.Records)
	assert.NotNil(t, out.Records)
}

func TestParseLine_SkipsSeparatorOnlyMatches(t *testing.T) {
	patterns := categorizer.NewCategorizer(store.DefaultTaxonomy(), nil).Patterns(models.ReportTypeProfitLoss)

	record, reason := parseLine("Revenue, net of returns 1,500", patterns)
	assert.Empty(t, reason)
	assert.True(t, decimal.NewFromInt(1500).Equal(record.Amount))

	_, reason = parseLine("Revenue, net of returns", patterns)
	assert.Equal(t, "no amount", reason)
}

func TestNewExtractor(t *testing.T) {
	e, err := NewExtractor("", nil)
	require.NoError(t, err)
	assert.IsType(t, &NativeExtractor{}, e)

	e, err = NewExtractor("PDFTOTEXT", nil)
	require.NoError(t, err)
	assert.IsType(t, &PdftotextExtractor{}, e)

	_, err = NewExtractor("ocr", nil)
	assert.Error(t, err)
}

func TestNativeExtractor_RejectsNonPDF(t *testing.T) {
	_, err := NewNativeExtractor().ExtractText([]byte("This is not a PDF file"))
	assert.Error(t, err)
}
