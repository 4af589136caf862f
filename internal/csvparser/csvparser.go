// Package csvparser extracts classified records from flat CSV exports with a
// header row.
package csvparser

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"fjacquet/fin-ingest/internal/categorizer"
	"fjacquet/fin-ingest/internal/currencyutils"
	"fjacquet/fin-ingest/internal/logging"
	"fjacquet/fin-ingest/internal/models"
	"fjacquet/fin-ingest/internal/parser"
	"fjacquet/fin-ingest/internal/parsererror"

	"github.com/gocarina/gocsv"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// SheetName is reported as the processed sheet for CSV documents.
const SheetName = "CSV Data"

var (
	accountKeys = []string{"account_name", "account", "description", "item", "category", "name"}
	amountKeys  = []string{"amount", "value", "balance", "total", "sum"}

	utf8BOM    = []byte{0xEF, 0xBB, 0xBF}
	delimiters = []rune{',', ';', '\t'}
)

// Parser parses CSV documents.
type Parser struct {
	parser.BaseParser
}

// New creates a CSV parser.
func New(cat *categorizer.Categorizer, logger logging.Logger) *Parser {
	return &Parser{BaseParser: parser.NewBaseParser("csv", cat, logger)}
}

// Parse reads the header row, resolves the account and amount columns by
// synonym and classifies every row. Zero amounts are always dropped, whatever
// the report type.
func (p *Parser) Parse(data []byte, reportType models.ReportType) (*parser.Output, error) {
	records, err := p.readAll(data)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, &parsererror.ColumnMappingError{Sheet: SheetName, Column: parsererror.ErrMissingAccountColumn}
	}

	header := make([]string, len(records[0]))
	for i, h := range records[0] {
		header[i] = strings.ToLower(strings.TrimSpace(h))
	}

	accountCols := columnsFor(header, accountKeys)
	amountCols := columnsFor(header, amountKeys)
	if len(accountCols) == 0 {
		return nil, &parsererror.ColumnMappingError{Sheet: SheetName, Column: parsererror.ErrMissingAccountColumn, Header: records[0]}
	}
	if len(amountCols) == 0 {
		return nil, &parsererror.ColumnMappingError{Sheet: SheetName, Column: parsererror.ErrMissingAmountColumn, Header: records[0]}
	}
	periodCol := indexOf(header, "period")

	out := &parser.Output{
		SheetName: SheetName,
		Records:   []models.ParsedFinancialRecord{},
	}
	var previewRows [][]string

	for i, row := range records[1:] {
		line := i + 2
		if isBlank(row) {
			continue
		}
		if len(previewRows) < parser.PreviewDataRows {
			previewRows = append(previewRows, row)
		}

		label := firstValue(row, accountCols)
		if label == "" {
			p.SkipRow(line, "empty account name")
			continue
		}
		amount, err := currencyutils.ParseAmount(firstValue(row, amountCols))
		if err != nil {
			p.SkipRow(line, "unparseable amount")
			continue
		}
		if amount.IsZero() {
			p.SkipRow(line, "zero amount")
			continue
		}

		record := parser.NewRecord(label, amount, p.Categorizer().Classify(label, amount, reportType))
		if periodCol >= 0 && periodCol < len(row) {
			record.Period = strings.TrimSpace(row[periodCol])
		}
		out.Records = append(out.Records, record)
	}

	out.Preview = parser.BuildPreview(records[0], previewRows)
	p.GetLogger().Info("CSV parsed",
		logging.F(logging.FieldCount, len(out.Records)),
		logging.F(logging.FieldRow, len(records)-1))
	return out, nil
}

// readAll decodes the bytes and reads every record with the sniffed delimiter.
// Rows may have any number of fields.
func (p *Parser) readAll(data []byte) ([][]string, error) {
	data = bytes.TrimPrefix(data, utf8BOM)

	var src io.Reader = bytes.NewReader(data)
	encoding := "utf-8"
	if !utf8.Valid(data) {
		src = transform.NewReader(src, charmap.Windows1252.NewDecoder())
		encoding = "windows-1252"
	}

	delim := sniffDelimiter(data)
	p.GetLogger().Debug("Reading CSV",
		logging.F(logging.FieldDelimiter, string(delim)),
		logging.F(logging.FieldEncoding, encoding))

	reader, ok := gocsv.LazyCSVReader(src).(*csv.Reader)
	if !ok {
		reader = csv.NewReader(src)
		reader.LazyQuotes = true
	}
	reader.Comma = delim
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, &parsererror.FileDecodeError{FileType: string(models.FileTypeCSV), Err: fmt.Errorf("reading CSV: %w", err)}
	}
	return records, nil
}

// sniffDelimiter picks the most frequent candidate delimiter on the first line.
// Ties and lines without any candidate resolve to a comma.
func sniffDelimiter(data []byte) rune {
	firstLine := data
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		firstLine = data[:i]
	}

	best, bestCount := ',', 0
	for _, d := range delimiters {
		if count := bytes.Count(firstLine, []byte(string(d))); count > bestCount {
			best, bestCount = d, count
		}
	}
	return best
}

// columnsFor returns the header indices of keys, in key order.
func columnsFor(header, keys []string) []int {
	var cols []int
	for _, key := range keys {
		if idx := indexOf(header, key); idx >= 0 {
			cols = append(cols, idx)
		}
	}
	return cols
}

func indexOf(header []string, key string) int {
	for i, h := range header {
		if h == key {
			return i
		}
	}
	return -1
}

// firstValue returns the first non-blank value among cols.
func firstValue(row []string, cols []int) string {
	for _, c := range cols {
		if c < len(row) {
			if v := strings.TrimSpace(row[c]); v != "" {
				return v
			}
		}
	}
	return ""
}

func isBlank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
