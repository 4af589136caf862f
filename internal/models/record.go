package models

import (
	"github.com/shopspring/decimal"
)

func init() {
	// Amounts are emitted as JSON numbers, not quoted strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// ParsedFinancialRecord is one classified line item.
type ParsedFinancialRecord struct {
	AccountName     string          `json:"accountName" csv:"AccountName"`
	AccountCategory string          `json:"accountCategory,omitempty" csv:"AccountCategory"`
	Amount          decimal.Decimal `json:"amount" csv:"Amount"`
	DataType        DataType        `json:"dataType" csv:"DataType"`
	Period          string          `json:"period,omitempty" csv:"Period"`
	Notes           string          `json:"notes,omitempty" csv:"Notes"`
}

// Insight is a single observation returned by the enrichment service.
type Insight struct {
	Type        string `json:"type"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Severity    string `json:"severity"`
}

// Summary holds the totals derived from a record set, plus optional
// enrichment output.
type Summary struct {
	TotalRevenue     decimal.Decimal `json:"totalRevenue"`
	TotalExpenses    decimal.Decimal `json:"totalExpenses"`
	NetProfit        decimal.Decimal `json:"netProfit"`
	NetMarginPercent decimal.Decimal `json:"netMarginPercent"`
	TotalAssets      decimal.Decimal `json:"totalAssets"`
	TotalLiabilities decimal.Decimal `json:"totalLiabilities"`
	TotalEquity      decimal.Decimal `json:"totalEquity"`
	ProcessedSheet   string          `json:"processedSheet"`
	RecordCount      int             `json:"recordCount"`

	AISheetType string                 `json:"aiSheetType,omitempty"`
	AIInsights  []Insight              `json:"aiInsights,omitempty"`
	AISummary   map[string]interface{} `json:"aiSummary,omitempty"`
}

// ResultData is the payload of a successful parse.
type ResultData struct {
	Records []ParsedFinancialRecord `json:"records"`
	Summary Summary                 `json:"summary"`
}

// ParsingResult is the only value the engine hands back to callers.
type ParsingResult struct {
	Success    bool        `json:"success"`
	Data       *ResultData `json:"data,omitempty"`
	Error      string      `json:"error,omitempty"`
	ReportType ReportType  `json:"reportType,omitempty"`
}

// Failed builds an unsuccessful ParsingResult carrying err's message.
func Failed(err error) ParsingResult {
	return ParsingResult{Success: false, Error: err.Error()}
}
