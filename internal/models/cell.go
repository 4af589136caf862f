package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

// CellKind tells which field of a Cell holds the value.
type CellKind int

const (
	CellEmpty CellKind = iota
	CellString
	CellNumber
)

// Cell is one decoded spreadsheet value: empty, a string or a number.
type Cell struct {
	Kind   CellKind
	Text   string
	Number decimal.Decimal
}

// StringCell builds a string cell. Whitespace-only text yields an empty cell.
func StringCell(s string) Cell {
	if strings.TrimSpace(s) == "" {
		return Cell{Kind: CellEmpty}
	}
	return Cell{Kind: CellString, Text: s}
}

// NumberCell builds a numeric cell.
func NumberCell(d decimal.Decimal) Cell {
	return Cell{Kind: CellNumber, Number: d}
}

// IsEmpty reports whether the cell carries no value.
func (c Cell) IsEmpty() bool {
	return c.Kind == CellEmpty
}

// String renders the cell as text. Numbers use their shortest decimal form.
func (c Cell) String() string {
	switch c.Kind {
	case CellString:
		return c.Text
	case CellNumber:
		return c.Number.String()
	default:
		return ""
	}
}

// Sheet is a named grid of cells as produced by a workbook decoder.
type Sheet struct {
	Name string
	Rows [][]Cell
}

// Cell returns the cell at (row, col), or an empty cell when out of range.
func (s Sheet) Cell(row, col int) Cell {
	if row < 0 || row >= len(s.Rows) || col < 0 || col >= len(s.Rows[row]) {
		return Cell{}
	}
	return s.Rows[row][col]
}

// RowText lowercases and joins the non-empty cells of a row with spaces.
func RowText(row []Cell) string {
	parts := make([]string, 0, len(row))
	for _, c := range row {
		if !c.IsEmpty() {
			parts = append(parts, c.String())
		}
	}
	return strings.ToLower(strings.Join(parts, " "))
}
