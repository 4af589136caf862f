// Package layout finds the header row of a financial sheet, recognises its
// layout and maps header tokens to column indices.
package layout

import (
	"strings"

	"fjacquet/fin-ingest/internal/models"
)

// Kind identifies a sheet layout.
type Kind int

const (
	// Unknown means no header signature was found; columns decide.
	Unknown Kind = iota
	// DebitCredit has separate debit and credit columns per account,
	// as produced by QuickBooks-style exports.
	DebitCredit
	// AmountCategory has one signed amount column and optionally a category.
	AmountCategory
)

func (k Kind) String() string {
	switch k {
	case DebitCredit:
		return "debit_credit"
	case AmountCategory:
		return "amount_category"
	default:
		return "unknown"
	}
}

// Layout is the detected header position and signature.
type Layout struct {
	Kind      Kind
	HeaderRow int
}

const headerScanRows = 5

// Detect scans the first five rows. A debit+credit row anywhere in that window
// wins over an account+amount/category row. Without either, row 0 is assumed
// to be the header.
func Detect(sheet models.Sheet) Layout {
	limit := len(sheet.Rows)
	if limit > headerScanRows {
		limit = headerScanRows
	}

	for i := 0; i < limit; i++ {
		text := models.RowText(sheet.Rows[i])
		if strings.Contains(text, "debit") && strings.Contains(text, "credit") {
			return Layout{Kind: DebitCredit, HeaderRow: i}
		}
	}

	for i := 0; i < limit; i++ {
		text := models.RowText(sheet.Rows[i])
		if strings.Contains(text, "account") &&
			(strings.Contains(text, "amount") || strings.Contains(text, "category")) {
			return Layout{Kind: AmountCategory, HeaderRow: i}
		}
	}

	return Layout{Kind: Unknown, HeaderRow: 0}
}
