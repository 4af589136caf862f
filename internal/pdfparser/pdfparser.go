// Package pdfparser extracts classified records from the text of PDF statements.
// It is best-effort pattern matching over lines, not structural parsing: a line
// becomes a record when it mentions a keyword of the report type and carries a
// figure.
package pdfparser

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"fjacquet/fin-ingest/internal/categorizer"
	"fjacquet/fin-ingest/internal/currencyutils"
	"fjacquet/fin-ingest/internal/logging"
	"fjacquet/fin-ingest/internal/models"
	"fjacquet/fin-ingest/internal/parser"
	"fjacquet/fin-ingest/internal/parsererror"
)

const (
	// SheetName is reported as the processed sheet for PDF documents.
	SheetName = "PDF Text"

	// MaxNameLength is the number of characters of a line kept as account name.
	MaxNameLength = 50
)

var amountRe = regexp.MustCompile(`\$?([\d,]+\.?\d*)`)

// Parser parses PDF documents through a TextExtractor.
type Parser struct {
	parser.BaseParser
	extractor TextExtractor
}

// New creates a PDF parser. A nil extractor defaults to the native one.
func New(extractor TextExtractor, cat *categorizer.Categorizer, logger logging.Logger) *Parser {
	if extractor == nil {
		extractor = NewNativeExtractor()
	}
	return &Parser{
		BaseParser: parser.NewBaseParser("pdf", cat, logger),
		extractor:  extractor,
	}
}

// Parse extracts the document text and matches it line by line.
func (p *Parser) Parse(data []byte, reportType models.ReportType) (*parser.Output, error) {
	text, err := p.extractor.ExtractText(data)
	if err != nil {
		return nil, &parsererror.FileDecodeError{FileType: string(models.FileTypePDF), Err: err}
	}
	return p.ParseText(text, reportType), nil
}

// ParseText matches every non-empty line against the report type's patterns.
func (p *Parser) ParseText(text string, reportType models.ReportType) *parser.Output {
	patterns := p.Categorizer().Patterns(reportType)
	out := &parser.Output{
		SheetName: SheetName,
		Records:   []models.ParsedFinancialRecord{},
	}
	var previewRows [][]string

	for i, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		if len(previewRows) < parser.PreviewDataRows {
			previewRows = append(previewRows, []string{line})
		}

		record, reason := parseLine(line, patterns)
		if reason != "" {
			p.SkipRow(i+1, reason)
			continue
		}
		out.Records = append(out.Records, record)
	}

	out.Preview = parser.BuildPreview(nil, previewRows)
	p.GetLogger().Info("PDF text parsed",
		logging.F(logging.FieldCount, len(out.Records)),
		logging.F(logging.FieldReportType, string(reportType)))
	return out
}

// parseLine returns a record, or the reason the line produced none.
func parseLine(line string, patterns []categorizer.Pattern) (models.ParsedFinancialRecord, string) {
	var dataType models.DataType
	for _, pattern := range patterns {
		if pattern.Regexp.MatchString(line) {
			dataType = pattern.DataType
			break
		}
	}
	if dataType == "" {
		return models.ParsedFinancialRecord{}, "no keyword"
	}

	found := false
	var record models.ParsedFinancialRecord
	for _, m := range amountRe.FindAllStringSubmatch(line, -1) {
		amount, err := currencyutils.ParseAmount(m[1])
		if err != nil {
			continue
		}
		if amount.IsZero() {
			return record, "zero amount"
		}
		record = parser.NewRecord(truncate(line, MaxNameLength), amount, dataType)
		found = true
		break
	}
	if !found {
		return record, "no amount"
	}
	if record.AccountName != line {
		record.Notes = line
	}
	return record, ""
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
