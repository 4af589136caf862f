package models

import (
	"strings"
)

// DataType is the financial category a line item is classified into.
type DataType string

const (
	DataTypeRevenue     DataType = "REVENUE"
	DataTypeExpense     DataType = "EXPENSE"
	DataTypeAsset       DataType = "ASSET"
	DataTypeLiability   DataType = "LIABILITY"
	DataTypeEquity      DataType = "EQUITY"
	DataTypeCashFlowIn  DataType = "CASH_FLOW_IN"
	DataTypeCashFlowOut DataType = "CASH_FLOW_OUT"
)

// AllDataTypes lists every DataType in declaration order.
var AllDataTypes = []DataType{
	DataTypeRevenue,
	DataTypeExpense,
	DataTypeAsset,
	DataTypeLiability,
	DataTypeEquity,
	DataTypeCashFlowIn,
	DataTypeCashFlowOut,
}

// IsValid reports whether d is one of the known data types.
func (d DataType) IsValid() bool {
	for _, known := range AllDataTypes {
		if d == known {
			return true
		}
	}
	return false
}

// ReportType is the statement type declared by the caller. It is never
// inferred from the document.
type ReportType string

const (
	ReportTypeProfitLoss   ReportType = "PROFIT_LOSS"
	ReportTypeBalanceSheet ReportType = "BALANCE_SHEET"
	ReportTypeCashFlow     ReportType = "CASH_FLOW"
	ReportTypeTrialBalance ReportType = "TRIAL_BALANCE"
	ReportTypeARAging      ReportType = "AR_AGING"
	ReportTypeAPAging      ReportType = "AP_AGING"
)

// AllReportTypes lists every ReportType.
var AllReportTypes = []ReportType{
	ReportTypeProfitLoss,
	ReportTypeBalanceSheet,
	ReportTypeCashFlow,
	ReportTypeTrialBalance,
	ReportTypeARAging,
	ReportTypeAPAging,
}

// IsValid reports whether r is one of the known report types.
func (r ReportType) IsValid() bool {
	for _, known := range AllReportTypes {
		if r == known {
			return true
		}
	}
	return false
}

// ParseReportType accepts names like "profit_loss", "Profit-Loss" or
// "trial balance".
func ParseReportType(s string) (ReportType, bool) {
	normalized := strings.ToUpper(strings.TrimSpace(s))
	normalized = strings.NewReplacer("-", "_", " ", "_").Replace(normalized)
	r := ReportType(normalized)
	return r, r.IsValid()
}

// FileType is the declared format of an uploaded document.
type FileType string

const (
	FileTypeCSV  FileType = "csv"
	FileTypePDF  FileType = "pdf"
	FileTypeXLSX FileType = "xlsx"
	FileTypeXLS  FileType = "xls"
)

// IsValid reports whether f is a supported file type.
func (f FileType) IsValid() bool {
	switch f {
	case FileTypeCSV, FileTypePDF, FileTypeXLSX, FileTypeXLS:
		return true
	}
	return false
}

// IsWorkbook reports whether f is a spreadsheet format.
func (f FileType) IsWorkbook() bool {
	return f == FileTypeXLSX || f == FileTypeXLS
}

// ParseFileType accepts "csv", ".CSV", "Xlsx" and so on.
func ParseFileType(s string) (FileType, bool) {
	f := FileType(strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), ".")))
	return f, f.IsValid()
}
