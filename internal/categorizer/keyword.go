package categorizer

import (
	"strings"

	"fjacquet/fin-ingest/internal/models"
)

// KeywordStrategy scans the report type's buckets in priority order and returns
// the first bucket with a keyword contained in the lowercased label.
type KeywordStrategy struct {
	buckets map[models.ReportType][]models.BucketConfig
}

// NewKeywordStrategy resolves each report type's bucket list once.
func NewKeywordStrategy(cfg *models.TaxonomyConfig) *KeywordStrategy {
	byType := make(map[models.DataType]models.BucketConfig, len(cfg.Buckets))
	for _, b := range cfg.Buckets {
		byType[b.Type] = b
	}

	buckets := make(map[models.ReportType][]models.BucketConfig, len(cfg.Reports))
	for rt, rules := range cfg.Reports {
		for _, dt := range rules.Buckets {
			buckets[rt] = append(buckets[rt], byType[dt])
		}
	}
	return &KeywordStrategy{buckets: buckets}
}

// Name returns the name of this strategy for logging and debugging.
func (s *KeywordStrategy) Name() string {
	return "Keyword"
}

// Classify matches the row label against the keyword buckets.
func (s *KeywordStrategy) Classify(row Row) (models.DataType, bool) {
	label := strings.ToLower(strings.TrimSpace(row.Label))
	if label == "" {
		return "", false
	}

	for _, bucket := range s.buckets[row.ReportType] {
		for _, keyword := range bucket.Keywords {
			if strings.Contains(label, keyword) {
				return bucket.Type, true
			}
		}
	}
	return "", false
}

// Buckets returns the ordered buckets used for a report type.
func (s *KeywordStrategy) Buckets(rt models.ReportType) []models.BucketConfig {
	return s.buckets[rt]
}
