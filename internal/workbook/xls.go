package workbook

import (
	"bytes"
	"fmt"

	"fjacquet/fin-ingest/internal/models"

	"github.com/extrame/xls"
)

// XLSDecoder reads legacy BIFF (.xls) workbooks.
type XLSDecoder struct{}

// Decode reads every sheet. Missing rows become empty rows so row indices match
// the workbook.
func (d *XLSDecoder) Decode(data []byte) (sheets []models.Sheet, err error) {
	// The BIFF reader panics on some truncated files.
	defer func() {
		if r := recover(); r != nil {
			sheets, err = nil, recoveredError(models.FileTypeXLS, r)
		}
	}()

	wb, err := xls.OpenReader(bytes.NewReader(data), "utf-8")
	if err != nil {
		return nil, decodeError(models.FileTypeXLS, err)
	}
	if wb == nil {
		return nil, decodeError(models.FileTypeXLS, fmt.Errorf("empty workbook"))
	}

	for i := 0; i < wb.NumSheets(); i++ {
		ws := wb.GetSheet(i)
		if ws == nil {
			continue
		}

		sheet := models.Sheet{Name: ws.Name}
		maxRow := int(ws.MaxRow)
		for r := 0; r <= maxRow; r++ {
			row := ws.Row(r)
			if row == nil {
				sheet.Rows = append(sheet.Rows, nil)
				continue
			}
			cells := make([]models.Cell, row.LastCol())
			for c := range cells {
				cells[c] = toCell(row.Col(c))
			}
			sheet.Rows = append(sheet.Rows, cells)
		}
		sheet.Rows = trimTrailingEmptyRows(sheet.Rows)
		sheets = append(sheets, sheet)
	}
	return sheets, nil
}

func trimTrailingEmptyRows(rows [][]models.Cell) [][]models.Cell {
	for len(rows) > 0 {
		last := rows[len(rows)-1]
		empty := true
		for _, c := range last {
			if !c.IsEmpty() {
				empty = false
				break
			}
		}
		if !empty {
			break
		}
		rows = rows[:len(rows)-1]
	}
	return rows
}
