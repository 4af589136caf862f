package enrichment

import (
	"encoding/json"
	"strings"

	"fjacquet/fin-ingest/internal/models"

	jsonrepair "github.com/RealAlexandreAI/json-repair"
	hjson "github.com/hjson/hjson-go/v4"
)

// Severities accepted in insights.
const (
	SeverityLow    = "low"
	SeverityMedium = "medium"
	SeverityHigh   = "high"
)

// Result is the enrichment output attached to a Summary.
type Result struct {
	SheetType string                 `json:"sheetType"`
	Insights  []models.Insight       `json:"insights"`
	Summary   map[string]interface{} `json:"summary"`
}

func (r *Result) empty() bool {
	return r.SheetType == "" && len(r.Insights) == 0 && len(r.Summary) == 0
}

// DefaultInsight is returned when a response carries nothing usable.
func DefaultInsight() models.Insight {
	return models.Insight{
		Type:        "general",
		Title:       "Analysis complete",
		Description: "The document was processed but the analysis returned no structured insights.",
		Severity:    SeverityLow,
	}
}

// ParseResponse reads a generator answer. It tries, in order: strict JSON,
// repaired JSON, Hjson, then Title:/Description:/Severity: lines. When nothing
// matches it returns a single DefaultInsight, so the result is never empty.
func ParseResponse(text string) *Result {
	candidate := extractObject(text)

	for _, decode := range []func(string) (*Result, bool){decodeJSON, decodeRepaired, decodeHjson} {
		if candidate == "" {
			break
		}
		if result, ok := decode(candidate); ok {
			return normalize(result)
		}
	}

	if result := parseLines(text); !result.empty() {
		return normalize(result)
	}
	return &Result{Insights: []models.Insight{DefaultInsight()}}
}

// extractObject strips Markdown code fences and slices to the outermost
// braces. It returns "" when there is no object.
func extractObject(text string) string {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "```") {
		if nl := strings.Index(text, "\n"); nl >= 0 {
			text = text[nl+1:]
		}
		text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	}

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 {
		return ""
	}
	if end <= start {
		// Truncated output; the repair step may close it.
		return text[start:]
	}
	return text[start : end+1]
}

func decodeJSON(s string) (*Result, bool) {
	var r Result
	if err := json.Unmarshal([]byte(s), &r); err != nil || r.empty() {
		return nil, false
	}
	return &r, true
}

func decodeRepaired(s string) (*Result, bool) {
	repaired, err := jsonrepair.RepairJSON(s)
	if err != nil {
		return nil, false
	}
	return decodeJSON(repaired)
}

func decodeHjson(s string) (*Result, bool) {
	var raw map[string]interface{}
	if err := hjson.Unmarshal([]byte(s), &raw); err != nil {
		return nil, false
	}
	// Round-trip through JSON to land in the typed Result.
	b, err := json.Marshal(raw)
	if err != nil {
		return nil, false
	}
	return decodeJSON(string(b))
}

// parseLines reads loosely structured answers such as:
//
//	Title: Rising costs
//	Description: Expenses grew faster than revenue.
//	Severity: High
//
// Every Title: line starts a new insight.
func parseLines(text string) *Result {
	result := &Result{}
	var current *models.Insight

	flush := func() {
		if current != nil && (current.Title != "" || current.Description != "") {
			result.Insights = append(result.Insights, *current)
		}
		current = nil
	}

	for _, line := range strings.Split(text, "\n") {
		key, value, ok := splitField(line)
		if !ok {
			continue
		}
		switch key {
		case "sheet type", "sheettype":
			result.SheetType = value
		case "title":
			flush()
			current = &models.Insight{Title: value}
		case "description":
			if current == nil {
				current = &models.Insight{}
			}
			current.Description = value
		case "severity":
			if current != nil {
				current.Severity = value
			}
		case "type":
			if current != nil {
				current.Type = value
			}
		}
	}
	flush()
	return result
}

func splitField(line string) (key, value string, ok bool) {
	line = strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(line), "-*#"))
	idx := strings.Index(line, ":")
	if idx <= 0 {
		return "", "", false
	}
	key = strings.ToLower(strings.Trim(strings.TrimSpace(line[:idx]), "*"))
	value = strings.Trim(strings.TrimSpace(line[idx+1:]), "*\" ")
	return key, value, value != ""
}

func normalize(r *Result) *Result {
	for i := range r.Insights {
		in := &r.Insights[i]
		in.Severity = NormalizeSeverity(in.Severity)
		if in.Type == "" {
			in.Type = "general"
		}
	}
	return r
}

// NormalizeSeverity maps free-form severities onto low, medium or high.
// Anything unrecognised becomes medium.
func NormalizeSeverity(s string) string {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low", "info", "informational", "minor":
		return SeverityLow
	case "high", "critical", "severe", "major":
		return SeverityHigh
	default:
		return SeverityMedium
	}
}
