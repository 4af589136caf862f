// Package testutil builds in-memory document fixtures for tests.
package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// SheetFixture is one worksheet of a generated workbook. Rows hold strings,
// ints, floats or nil for blank cells.
type SheetFixture struct {
	Name string
	Rows [][]interface{}
}

// BuildXLSX writes the sheets, in order, into an xlsx workbook and returns its
// bytes.
func BuildXLSX(t *testing.T, sheets ...SheetFixture) []byte {
	t.Helper()
	require.NotEmpty(t, sheets, "at least one sheet is required")

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	for i, sheet := range sheets {
		if i == 0 {
			require.NoError(t, f.SetSheetName("Sheet1", sheet.Name))
		} else {
			_, err := f.NewSheet(sheet.Name)
			require.NoError(t, err)
		}

		for r, row := range sheet.Rows {
			for c, value := range row {
				if value == nil {
					continue
				}
				axis, err := excelize.CoordinatesToCellName(c+1, r+1)
				require.NoError(t, err)
				require.NoError(t, f.SetCellValue(sheet.Name, axis, value))
			}
		}
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}
