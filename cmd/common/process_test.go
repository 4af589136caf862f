package common

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"fjacquet/fin-ingest/internal/models"
	"fjacquet/fin-ingest/internal/parsererror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportType(t *testing.T) {
	tests := []struct {
		flag    string
		want    models.ReportType
		wantErr string
	}{
		{"PROFIT_LOSS", models.ReportTypeProfitLoss, ""},
		{"balance-sheet", models.ReportTypeBalanceSheet, ""},
		{"trial balance", models.ReportTypeTrialBalance, ""},
		{"", "", "report type is required"},
		{"budget", "", "unsupported report type: 'budget'"},
	}

	for _, tt := range tests {
		t.Run(tt.flag, func(t *testing.T) {
			got, err := ReportType(tt.flag)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFileType(t *testing.T) {
	ft, err := FileType("XLSX", "report.csv", nil)
	require.NoError(t, err)
	assert.Equal(t, models.FileTypeXLSX, ft)

	ft, err = FileType("", "report.csv", []byte("a,b\n"))
	require.NoError(t, err)
	assert.Equal(t, models.FileTypeCSV, ft)

	_, err = FileType("docx", "report.docx", nil)
	var unsupported *parsererror.UnsupportedInputError
	assert.True(t, errors.As(err, &unsupported))
}

func TestReadInput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pl.csv")
	require.NoError(t, os.WriteFile(path, []byte("Account,Amount\nSales,10\n"), 0600))

	in, err := ReadInput(path, "", models.ReportTypeProfitLoss)
	require.NoError(t, err)
	assert.Equal(t, models.FileTypeCSV, in.FileType)
	assert.Equal(t, models.ReportTypeProfitLoss, in.ReportType)
	assert.Equal(t, "pl.csv", in.Name)
	assert.Equal(t, "Account,Amount\nSales,10\n", string(in.Data))

	_, err = ReadInput("", "", models.ReportTypeProfitLoss)
	assert.Error(t, err)

	_, err = ReadInput(filepath.Join(t.TempDir(), "missing.csv"), "", models.ReportTypeProfitLoss)
	assert.Error(t, err)
}

func TestSaveResult(t *testing.T) {
	result := models.Failed(errors.New("No suitable financial data sheet found"))

	var buf bytes.Buffer
	require.NoError(t, SaveResult(&buf, "", result))
	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, false, decoded["success"])
	assert.Equal(t, "No suitable financial data sheet found", decoded["error"])

	path := filepath.Join(t.TempDir(), "out", "result.json")
	buf.Reset()
	require.NoError(t, SaveResult(&buf, path, result))
	assert.Zero(t, buf.Len())
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"success": false`)
}
