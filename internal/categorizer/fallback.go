package categorizer

import (
	"fjacquet/fin-ingest/internal/models"
)

// FallbackStrategy always decides. It applies the report type's fallback: a
// fixed DataType, or the sign heuristic where positive amounts are assets and
// everything else is a liability.
type FallbackStrategy struct {
	fallbacks map[models.ReportType]string
}

// NewFallbackStrategy creates a FallbackStrategy from the report rules.
func NewFallbackStrategy(cfg *models.TaxonomyConfig) *FallbackStrategy {
	fallbacks := make(map[models.ReportType]string, len(cfg.Reports))
	for rt, rules := range cfg.Reports {
		fallbacks[rt] = rules.Fallback
	}
	return &FallbackStrategy{fallbacks: fallbacks}
}

// Name returns the name of this strategy for logging and debugging.
func (s *FallbackStrategy) Name() string {
	return "Fallback"
}

// Classify never fails; unknown report types get EXPENSE.
func (s *FallbackStrategy) Classify(row Row) (models.DataType, bool) {
	switch fallback := s.fallbacks[row.ReportType]; fallback {
	case models.FallbackSign:
		if row.Amount.IsPositive() {
			return models.DataTypeAsset, true
		}
		return models.DataTypeLiability, true
	case "":
		return models.DataTypeExpense, true
	default:
		return models.DataType(fallback), true
	}
}
