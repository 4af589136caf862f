package categorizer

import (
	"strings"

	"fjacquet/fin-ingest/internal/models"
)

// DirectMappingStrategy classifies from an explicit category column value, e.g.
// "Current Assets" or "Operating Expenses". Rules are substring matches tried in
// table order.
type DirectMappingStrategy struct {
	rules []models.CategoryRule
}

// NewDirectMappingStrategy creates a DirectMappingStrategy from the category rules.
func NewDirectMappingStrategy(rules []models.CategoryRule) *DirectMappingStrategy {
	return &DirectMappingStrategy{rules: rules}
}

// Name returns the name of this strategy for logging and debugging.
func (s *DirectMappingStrategy) Name() string {
	return "DirectMapping"
}

// Classify ignores the label and looks only at the category value.
func (s *DirectMappingStrategy) Classify(row Row) (models.DataType, bool) {
	return s.Lookup(row.Category)
}

// Lookup maps a category value to a DataType.
func (s *DirectMappingStrategy) Lookup(category string) (models.DataType, bool) {
	value := strings.ToLower(strings.TrimSpace(category))
	if value == "" {
		return "", false
	}
	for _, rule := range s.rules {
		if strings.Contains(value, rule.Match) {
			return rule.Type, true
		}
	}
	return "", false
}
