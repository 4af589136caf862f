package enrichment

import (
	"context"
	"strings"
	"time"

	"fjacquet/fin-ingest/internal/logging"
	"fjacquet/fin-ingest/internal/models"
	"fjacquet/fin-ingest/internal/parsererror"
)

// Request is the material sent to the service for one document.
type Request struct {
	ReportType models.ReportType
	Preview    [][]string
	Records    []models.ParsedFinancialRecord
}

// Enricher turns a parsed document into enrichment output via a TextGenerator.
type Enricher struct {
	generator TextGenerator
	provider  string
	logger    logging.Logger
}

// New creates an Enricher. provider names the service in errors and logs.
func New(generator TextGenerator, provider string, logger logging.Logger) *Enricher {
	return &Enricher{
		generator: generator,
		provider:  provider,
		logger:    logging.OrDefault(logger).WithField(logging.FieldProvider, provider),
	}
}

// Enrich calls the generator once. A generator error or a blank answer yields
// an EnrichmentError; any non-blank answer yields a Result.
func (e *Enricher) Enrich(ctx context.Context, req Request) (*Result, error) {
	prompt, err := BuildPrompt(req.ReportType, req.Preview, req.Records)
	if err != nil {
		return nil, &parsererror.EnrichmentError{Provider: e.provider, Err: err}
	}

	start := time.Now()
	text, err := e.generator.Generate(ctx, prompt)
	if err != nil {
		return nil, &parsererror.EnrichmentError{Provider: e.provider, Err: err}
	}
	if strings.TrimSpace(text) == "" {
		return nil, &parsererror.EnrichmentError{Provider: e.provider, Err: ErrEmptyResponse}
	}

	result := ParseResponse(text)
	e.logger.Debug("Enrichment response parsed",
		logging.F(logging.FieldDuration, time.Since(start).String()),
		logging.F(logging.FieldCount, len(result.Insights)))
	return result, nil
}

// Apply copies the result into summary.
func (r *Result) Apply(summary *models.Summary) {
	summary.AISheetType = r.SheetType
	summary.AIInsights = r.Insights
	summary.AISummary = r.Summary
}
