package sheets

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"fjacquet/fin-ingest/internal/logging"
	"fjacquet/fin-ingest/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeWorkbook(t *testing.T, sheets ...testutil.SheetFixture) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "book.xlsx")
	require.NoError(t, os.WriteFile(path, testutil.BuildXLSX(t, sheets...), 0600))
	return path
}

func TestSheetsCommand_Metadata(t *testing.T) {
	assert.Equal(t, "sheets", Cmd.Use)
	assert.NotNil(t, Cmd.RunE)
}

func TestRun_MarksSelectedSheet(t *testing.T) {
	path := writeWorkbook(t,
		testutil.SheetFixture{Name: "Instructions", Rows: [][]interface{}{{"Read me first"}}},
		testutil.SheetFixture{Name: "P&L", Rows: [][]interface{}{
			{"Account", "Amount"},
			{"Sales Revenue", 5000},
			{"Office Rent", 1200},
			{"Utilities", 300},
		}},
	)

	var out bytes.Buffer
	require.NoError(t, run(path, logging.NewMockLogger(), &out))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "SCORE")
	assert.Contains(t, lines[1], "Instructions")
	assert.NotContains(t, lines[1], "*")
	assert.Contains(t, lines[2], "P&L")
	assert.True(t, strings.HasSuffix(lines[2], "*"))
}

func TestRun_NoSuitableSheet(t *testing.T) {
	path := writeWorkbook(t, testutil.SheetFixture{Name: "Notes", Rows: [][]interface{}{{"nothing here"}}})

	var out bytes.Buffer
	require.NoError(t, run(path, logging.NewMockLogger(), &out))
	assert.Contains(t, out.String(), "No suitable financial data sheet found")
}

func TestRun_RejectsNonWorkbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pl.csv")
	require.NoError(t, os.WriteFile(path, []byte("Account,Amount\n"), 0600))

	err := run(path, logging.NewMockLogger(), &bytes.Buffer{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported workbook type")
}

func TestRun_RequiresInput(t *testing.T) {
	err := run("", logging.NewMockLogger(), &bytes.Buffer{})
	assert.Error(t, err)
}
