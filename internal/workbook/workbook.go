// Package workbook decodes spreadsheet bytes into an ordered list of sheets of
// typed cells. Decoders know nothing about financial data.
package workbook

import (
	"fmt"
	"strings"

	"fjacquet/fin-ingest/internal/models"
	"fjacquet/fin-ingest/internal/parsererror"

	"github.com/shopspring/decimal"
)

// Decoder turns raw workbook bytes into sheets, in workbook order.
type Decoder interface {
	Decode(data []byte) ([]models.Sheet, error)
}

// ForFileType returns the decoder for a workbook file type.
func ForFileType(ft models.FileType) (Decoder, error) {
	switch ft {
	case models.FileTypeXLSX:
		return &XLSXDecoder{}, nil
	case models.FileTypeXLS:
		return &XLSDecoder{}, nil
	default:
		return nil, &parsererror.UnsupportedInputError{Field: "workbook type", Value: string(ft)}
	}
}

// toCell converts a raw cell string. Values that are plain decimal literals
// become number cells; everything else stays text.
func toCell(raw string) models.Cell {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return models.Cell{}
	}
	if d, err := decimal.NewFromString(trimmed); err == nil && looksNumeric(trimmed) {
		return models.NumberCell(d)
	}
	return models.StringCell(raw)
}

// looksNumeric rejects literals decimal accepts but a spreadsheet would show as
// text, such as a lone sign.
func looksNumeric(s string) bool {
	return strings.ContainsAny(s, "0123456789")
}

func decodeError(ft models.FileType, err error) error {
	return &parsererror.FileDecodeError{FileType: string(ft), Err: err}
}

func recoveredError(ft models.FileType, r interface{}) error {
	return decodeError(ft, fmt.Errorf("decoder panic: %v", r))
}
