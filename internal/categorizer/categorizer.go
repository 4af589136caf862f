// Package categorizer classifies account labels into the fixed financial
// taxonomy. Classification is a chain of strategies:
//  1. Direct mapping from an explicit category column, when the row has one
//  2. Keyword buckets, narrowed and ordered by the declared report type
//  3. The report type's fallback (a fixed type, or the amount's sign)
//
// The same table also yields the line patterns used for unstructured text.
package categorizer

import (
	"regexp"
	"strings"

	"fjacquet/fin-ingest/internal/logging"
	"fjacquet/fin-ingest/internal/models"

	"github.com/shopspring/decimal"
)

// Pattern is a compiled case-insensitive alternation of one bucket's keywords.
type Pattern struct {
	DataType models.DataType
	Regexp   *regexp.Regexp
}

// Categorizer is immutable after construction and safe for concurrent use.
type Categorizer struct {
	direct   *DirectMappingStrategy
	keyword  *KeywordStrategy
	fallback *FallbackStrategy
	keepZero map[models.ReportType]bool
	patterns map[models.ReportType][]Pattern
	logger   logging.Logger
}

// NewCategorizer builds a Categorizer from a validated taxonomy.
func NewCategorizer(cfg *models.TaxonomyConfig, logger logging.Logger) *Categorizer {
	c := &Categorizer{
		direct:   NewDirectMappingStrategy(cfg.Categories),
		keyword:  NewKeywordStrategy(cfg),
		fallback: NewFallbackStrategy(cfg),
		keepZero: make(map[models.ReportType]bool, len(cfg.Reports)),
		patterns: make(map[models.ReportType][]Pattern, len(cfg.Reports)),
		logger:   logging.OrDefault(logger),
	}

	for rt, rules := range cfg.Reports {
		c.keepZero[rt] = rules.KeepZeroAmounts
		c.patterns[rt] = compilePatterns(c.keyword.Buckets(rt))
	}
	return c
}

// Classify assigns a DataType to an account label. It never fails: labels that
// match no keyword get the report type's fallback.
func (c *Categorizer) Classify(label string, amount decimal.Decimal, rt models.ReportType) models.DataType {
	return c.run(Row{Label: label, Amount: amount, ReportType: rt}, c.keyword, c.fallback)
}

// ClassifyWithCategory is Classify with an explicit category value consulted
// first. An empty or unrecognised category falls through to the label.
func (c *Categorizer) ClassifyWithCategory(label, category string, amount decimal.Decimal, rt models.ReportType) models.DataType {
	return c.run(Row{Label: label, Category: category, Amount: amount, ReportType: rt}, c.direct, c.keyword, c.fallback)
}

// FromCategory maps a category-column value on its own.
func (c *Categorizer) FromCategory(category string) (models.DataType, bool) {
	return c.direct.Lookup(category)
}

// KeepZeroAmounts reports whether zero-amount rows of structured sheets are
// meaningful for the report type.
func (c *Categorizer) KeepZeroAmounts(rt models.ReportType) bool {
	return c.keepZero[rt]
}

// Patterns returns the line patterns for a report type, in priority order.
func (c *Categorizer) Patterns(rt models.ReportType) []Pattern {
	return c.patterns[rt]
}

func (c *Categorizer) run(row Row, strategies ...ClassificationStrategy) models.DataType {
	for _, s := range strategies {
		if dt, found := s.Classify(row); found {
			c.logger.Debug("Account classified",
				logging.F("strategy", s.Name()),
				logging.F("label", row.Label),
				logging.F(logging.FieldDataType, string(dt)))
			return dt
		}
	}
	// FallbackStrategy always decides; this is only reached with an empty chain.
	return models.DataTypeExpense
}

func compilePatterns(buckets []models.BucketConfig) []Pattern {
	patterns := make([]Pattern, 0, len(buckets))
	for _, b := range buckets {
		if len(b.Keywords) == 0 {
			continue
		}
		quoted := make([]string, len(b.Keywords))
		for i, kw := range b.Keywords {
			quoted[i] = regexp.QuoteMeta(kw)
		}
		patterns = append(patterns, Pattern{
			DataType: b.Type,
			Regexp:   regexp.MustCompile(`(?i)(` + strings.Join(quoted, "|") + `)`),
		})
	}
	return patterns
}
