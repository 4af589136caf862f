package categorizer

import (
	"fjacquet/fin-ingest/internal/models"

	"github.com/shopspring/decimal"
)

// Row is the input to a classification strategy.
type Row struct {
	Label      string
	Category   string
	Amount     decimal.Decimal
	ReportType models.ReportType
}

// ClassificationStrategy is one step of the classification chain. Strategies are
// tried in order until one reports found.
type ClassificationStrategy interface {
	// Classify returns the DataType for row and whether this strategy decided it.
	Classify(row Row) (models.DataType, bool)

	// Name returns the name of this strategy for logging and debugging purposes.
	Name() string
}
