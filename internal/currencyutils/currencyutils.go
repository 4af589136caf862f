// Package currencyutils provides the amount parsing and decimal helpers shared by
// every row parser and the aggregator.
package currencyutils

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"fjacquet/fin-ingest/internal/models"

	"github.com/shopspring/decimal"
)

// ErrNotNumeric is returned when no leading number can be read from a string.
var ErrNotNumeric = errors.New("no numeric value")

var (
	// Leading number, the way spreadsheet exports are usually read: "1500.00 CR"
	// yields 1500, "12abc" yields 12, "abc" yields nothing.
	leadingNumberRe = regexp.MustCompile(`^[-+]?(\d+\.?\d*|\.\d+)([eE][-+]?\d+)?`)
	amountNoise     = strings.NewReplacer("$", "", ",", "")

	hundred = decimal.NewFromInt(100)
)

// maxIntegerDigits bounds the magnitude of a parsed amount to the float64 range.
const maxIntegerDigits = 309

// StandardizeAmount removes dollar signs, thousands separators and surrounding
// whitespace.
func StandardizeAmount(amountStr string) string {
	return strings.TrimSpace(amountNoise.Replace(amountStr))
}

// ParseAmount reads the leading number of amountStr after StandardizeAmount.
// Trailing text is ignored. A string with no leading number, or one whose
// magnitude exceeds the float64 range, returns ErrNotNumeric.
func ParseAmount(amountStr string) (decimal.Decimal, error) {
	standardized := StandardizeAmount(amountStr)
	match := leadingNumberRe.FindString(standardized)
	if match == "" {
		return decimal.Zero, fmt.Errorf("failed to parse amount '%s': %w", amountStr, ErrNotNumeric)
	}

	// "12." and "12.e3" are valid prefixes but not valid decimal literals.
	match = strings.Replace(strings.TrimSuffix(match, "."), ".e", "e", 1)
	match = strings.Replace(match, ".E", "E", 1)

	amount, err := decimal.NewFromString(match)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to parse amount '%s': %w", amountStr, err)
	}
	if !amount.IsZero() && amount.NumDigits()+int(amount.Exponent()) > maxIntegerDigits {
		return decimal.Zero, fmt.Errorf("failed to parse amount '%s': out of range: %w", amountStr, ErrNotNumeric)
	}
	return amount, nil
}

// CellAmount returns the numeric value of a cell. Number cells are used as-is;
// string cells go through ParseAmount. ok is false for empty or unparseable cells.
func CellAmount(c models.Cell) (amount decimal.Decimal, ok bool) {
	switch c.Kind {
	case models.CellNumber:
		return c.Number, true
	case models.CellString:
		amount, err := ParseAmount(c.Text)
		if err != nil {
			return decimal.Zero, false
		}
		return amount, true
	default:
		return decimal.Zero, false
	}
}

// CellAmountOrZero is CellAmount with unparseable values read as zero.
func CellAmountOrZero(c models.Cell) decimal.Decimal {
	amount, _ := CellAmount(c)
	return amount
}

// IsNumericLike reports whether a cell looks like a figure: any number cell, or
// a string that parses to a non-zero amount.
func IsNumericLike(c models.Cell) bool {
	switch c.Kind {
	case models.CellNumber:
		return true
	case models.CellString:
		amount, err := ParseAmount(c.Text)
		return err == nil && !amount.IsZero()
	default:
		return false
	}
}

// IsNonZeroNumber reports whether a cell holds a non-zero figure.
func IsNonZeroNumber(c models.Cell) bool {
	amount, ok := CellAmount(c)
	return ok && !amount.IsZero()
}

// Round2 rounds half away from zero to two decimal places.
func Round2(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(2)
}

// Percent returns part/whole*100 rounded to two places, or zero when whole is
// not positive.
func Percent(part, whole decimal.Decimal) decimal.Decimal {
	if !whole.IsPositive() {
		return decimal.Zero
	}
	return Round2(part.Div(whole).Mul(hundred))
}

// FormatAmount renders an amount with two decimals and an optional currency code.
func FormatAmount(amount decimal.Decimal, currency string) string {
	formatted := amount.StringFixed(2)
	switch strings.ToUpper(currency) {
	case "":
		return formatted
	case "USD", "CAD":
		return "$" + formatted
	default:
		return strings.ToUpper(currency) + " " + formatted
	}
}
