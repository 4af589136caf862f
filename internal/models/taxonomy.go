package models

// FallbackSign classifies an unmatched label by the sign of its amount:
// positive amounts are assets, everything else a liability.
const FallbackSign = "SIGN"

// BucketConfig is one ordered (DataType, keywords) row of the taxonomy.
type BucketConfig struct {
	Type     DataType `yaml:"type"`
	Keywords []string `yaml:"keywords"`
}

// ReportRules narrows the taxonomy for one report type.
type ReportRules struct {
	// Buckets lists the data types considered, in priority order.
	Buckets []DataType `yaml:"buckets"`
	// Fallback is a DataType, or FallbackSign.
	Fallback string `yaml:"fallback"`
	// KeepZeroAmounts retains zero-amount rows of structured sheets.
	KeepZeroAmounts bool `yaml:"keep_zero_amounts"`
}

// CategoryRule maps a category-column substring to a DataType.
type CategoryRule struct {
	Match string   `yaml:"match"`
	Type  DataType `yaml:"type"`
}

// TaxonomyConfig is the whole classification table.
type TaxonomyConfig struct {
	Buckets    []BucketConfig             `yaml:"buckets"`
	Reports    map[ReportType]ReportRules `yaml:"reports"`
	Categories []CategoryRule             `yaml:"categories"`
}
