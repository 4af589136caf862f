package enrichment

import (
	"encoding/json"
	"fmt"
	"strings"

	"fjacquet/fin-ingest/internal/models"
)

const promptTemplate = `You are a financial analyst reviewing a %s document.

Raw data preview (header and first rows):
%s

Classified records (JSON):
%s

Respond with a single JSON object and nothing else:
{
  "sheetType": "short label for the kind of sheet",
  "insights": [
    {"type": "trend|risk|opportunity|anomaly", "title": "...", "description": "...", "severity": "low|medium|high"}
  ],
  "summary": {"keyFindings": ["..."]}
}`

// BuildPrompt renders the enrichment prompt for one document.
func BuildPrompt(reportType models.ReportType, preview [][]string, records []models.ParsedFinancialRecord) (string, error) {
	if records == nil {
		records = []models.ParsedFinancialRecord{}
	}
	recordsJSON, err := json.Marshal(records)
	if err != nil {
		return "", fmt.Errorf("failed to encode records: %w", err)
	}

	var sb strings.Builder
	for _, row := range preview {
		sb.WriteString(strings.Join(row, " | "))
		sb.WriteString("\n")
	}
	if sb.Len() == 0 {
		sb.WriteString("(empty)\n")
	}

	label := strings.ToLower(strings.ReplaceAll(string(reportType), "_", " "))
	return fmt.Sprintf(promptTemplate, label, strings.TrimRight(sb.String(), "\n"), recordsJSON), nil
}
