// Package common provides shared functionality across the command layer.
package common

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"fjacquet/fin-ingest/internal/logging"
	"fjacquet/fin-ingest/internal/models"

	"github.com/gocarina/gocsv"
)

// DefaultDelimiter is used when no delimiter is configured.
const DefaultDelimiter = ','

// recordRow is the export layout of a ParsedFinancialRecord. Amounts are
// written with exactly two decimals.
type recordRow struct {
	AccountName     string `csv:"AccountName"`
	AccountCategory string `csv:"AccountCategory"`
	Amount          string `csv:"Amount"`
	DataType        string `csv:"DataType"`
	Period          string `csv:"Period"`
	Notes           string `csv:"Notes"`
}

func toRows(records []models.ParsedFinancialRecord) []recordRow {
	rows := make([]recordRow, 0, len(records))
	for _, r := range records {
		rows = append(rows, recordRow{
			AccountName:     r.AccountName,
			AccountCategory: r.AccountCategory,
			Amount:          r.Amount.StringFixed(2),
			DataType:        string(r.DataType),
			Period:          r.Period,
			Notes:           r.Notes,
		})
	}
	return rows
}

// WriteRecords writes records with a header row to w.
func WriteRecords(w io.Writer, records []models.ParsedFinancialRecord, delimiter rune) error {
	if delimiter == 0 {
		delimiter = DefaultDelimiter
	}

	// Configure CSV writer with custom delimiter
	csvWriter := csv.NewWriter(w)
	csvWriter.Comma = delimiter

	if err := gocsv.MarshalCSV(toRows(records), gocsv.NewSafeCSVWriter(csvWriter)); err != nil {
		return fmt.Errorf("error writing CSV data: %w", err)
	}
	return nil
}

// WriteRecordsToCSV writes records to csvFile, creating parent directories.
func WriteRecordsToCSV(records []models.ParsedFinancialRecord, csvFile string, delimiter rune, logger logging.Logger) error {
	if records == nil {
		return fmt.Errorf("cannot write nil records to CSV")
	}
	logger = logging.OrDefault(logger)

	// Create the directory if it doesn't exist
	dir := filepath.Dir(csvFile)
	if err := os.MkdirAll(dir, 0750); err != nil {
		logger.WithError(err).Error("Failed to create directory")
		return fmt.Errorf("error creating directory: %w", err)
	}

	file, err := os.Create(csvFile) // #nosec G304 -- CLI tool requires user-provided file paths
	if err != nil {
		logger.WithError(err).Error("Failed to create CSV file")
		return fmt.Errorf("error creating CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			logger.WithError(err).Warn("Failed to close file")
		}
	}()

	if err := WriteRecords(file, records, delimiter); err != nil {
		logger.WithError(err).Error("Failed to marshal records to CSV")
		return err
	}

	logger.Info("Wrote records to CSV file",
		logging.F(logging.FieldOutputFile, csvFile),
		logging.F(logging.FieldCount, len(records)),
		logging.F(logging.FieldDelimiter, string(delimiter)))
	return nil
}
