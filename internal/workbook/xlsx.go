package workbook

import (
	"bytes"

	"fjacquet/fin-ingest/internal/models"

	"github.com/xuri/excelize/v2"
)

// XLSXDecoder reads Office Open XML workbooks with excelize.
type XLSXDecoder struct{}

// Decode reads every sheet with raw cell values, so numbers are not subject to
// the workbook's display formats.
func (d *XLSXDecoder) Decode(data []byte) (sheets []models.Sheet, err error) {
	defer func() {
		if r := recover(); r != nil {
			sheets, err = nil, recoveredError(models.FileTypeXLSX, r)
		}
	}()

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, decodeError(models.FileTypeXLSX, err)
	}
	defer func() { _ = f.Close() }()

	for _, name := range f.GetSheetList() {
		rows, err := f.GetRows(name, excelize.Options{RawCellValue: true})
		if err != nil {
			return nil, decodeError(models.FileTypeXLSX, err)
		}

		sheet := models.Sheet{Name: name, Rows: make([][]models.Cell, len(rows))}
		for i, row := range rows {
			cells := make([]models.Cell, len(row))
			for j, raw := range row {
				cells[j] = toCell(raw)
			}
			sheet.Rows[i] = cells
		}
		sheets = append(sheets, sheet)
	}
	return sheets, nil
}
