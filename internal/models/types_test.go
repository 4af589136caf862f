package models

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseReportType(t *testing.T) {
	tests := []struct {
		input    string
		expected ReportType
		ok       bool
	}{
		{"PROFIT_LOSS", ReportTypeProfitLoss, true},
		{"profit-loss", ReportTypeProfitLoss, true},
		{" trial balance ", ReportTypeTrialBalance, true},
		{"ar_aging", ReportTypeARAging, true},
		{"income_statement", ReportType("INCOME_STATEMENT"), false},
		{"", ReportType(""), false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ParseReportType(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestParseFileType(t *testing.T) {
	tests := []struct {
		input    string
		expected FileType
		ok       bool
	}{
		{"csv", FileTypeCSV, true},
		{".XLSX", FileTypeXLSX, true},
		{"Xls", FileTypeXLS, true},
		{"pdf", FileTypePDF, true},
		{"docx", FileType("docx"), false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ParseFileType(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, got)
		})
	}

	assert.True(t, FileTypeXLS.IsWorkbook())
	assert.False(t, FileTypeCSV.IsWorkbook())
}

func TestDataTypeIsValid(t *testing.T) {
	for _, d := range AllDataTypes {
		assert.True(t, d.IsValid(), d)
	}
	assert.False(t, DataType("INCOME").IsValid())
}

func TestCell(t *testing.T) {
	assert.True(t, StringCell("   ").IsEmpty())
	assert.Equal(t, "Cash", StringCell("Cash").String())
	assert.Equal(t, "1500.5", NumberCell(decimal.RequireFromString("1500.50")).String())
	assert.Equal(t, "", Cell{}.String())

	sheet := Sheet{Name: "S", Rows: [][]Cell{{StringCell("a")}}}
	assert.Equal(t, "a", sheet.Cell(0, 0).String())
	assert.True(t, sheet.Cell(3, 7).IsEmpty())
	assert.True(t, sheet.Cell(-1, 0).IsEmpty())
}

func TestRowText(t *testing.T) {
	row := []Cell{StringCell("Account"), {}, StringCell("Debit"), NumberCell(decimal.NewFromInt(3))}
	assert.Equal(t, "account debit 3", RowText(row))
}

func TestParsingResultJSON(t *testing.T) {
	result := ParsingResult{
		Success: true,
		Data: &ResultData{
			Records: []ParsedFinancialRecord{{
				AccountName: "Consulting Income",
				Amount:      decimal.NewFromInt(5000),
				DataType:    DataTypeRevenue,
			}},
			Summary: Summary{
				TotalRevenue:     decimal.NewFromInt(5000),
				NetMarginPercent: decimal.RequireFromString("76"),
				ProcessedSheet:   "CSV Data",
				RecordCount:      1,
			},
		},
		ReportType: ReportTypeProfitLoss,
	}

	raw, err := json.Marshal(result)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, true, decoded["success"])
	assert.Equal(t, "PROFIT_LOSS", decoded["reportType"])
	assert.NotContains(t, decoded, "error")

	data := decoded["data"].(map[string]interface{})
	record := data["records"].([]interface{})[0].(map[string]interface{})
	assert.Equal(t, float64(5000), record["amount"])
	assert.NotContains(t, record, "accountCategory")
	assert.NotContains(t, record, "notes")

	summary := data["summary"].(map[string]interface{})
	assert.Equal(t, float64(76), summary["netMarginPercent"])
	assert.NotContains(t, summary, "aiInsights")
}

func TestFailed(t *testing.T) {
	result := Failed(errors.New("No suitable financial data sheet found"))
	assert.False(t, result.Success)
	assert.Nil(t, result.Data)
	assert.Equal(t, "No suitable financial data sheet found", result.Error)
}
