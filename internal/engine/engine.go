// Package engine is the public entry point of document ingestion: it dispatches
// a document to its format parser, aggregates the records and optionally
// enriches the result. Parse never returns an error or panics; every failure is
// a ParsingResult with Success false.
package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fjacquet/fin-ingest/internal/aggregator"
	"fjacquet/fin-ingest/internal/enrichment"
	"fjacquet/fin-ingest/internal/logging"
	"fjacquet/fin-ingest/internal/models"
	"fjacquet/fin-ingest/internal/parser"
	"fjacquet/fin-ingest/internal/parsererror"

	"github.com/google/uuid"
)

// Input is one document to parse.
type Input struct {
	Data       []byte
	FileType   models.FileType
	ReportType models.ReportType
	// Name identifies the document in logs only.
	Name string
}

// Engine is stateless across calls and safe for concurrent use.
type Engine struct {
	parsers    *parser.Registry
	aggregator *aggregator.Aggregator
	enricher   *enrichment.Enricher
	logger     logging.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithEnricher enables enrichment. Without it results carry no AI fields.
func WithEnricher(e *enrichment.Enricher) Option {
	return func(eng *Engine) {
		eng.enricher = e
	}
}

// New creates an Engine dispatching to the parsers in registry.
func New(registry *parser.Registry, logger logging.Logger, opts ...Option) *Engine {
	logger = logging.OrDefault(logger)
	e := &Engine{
		parsers:    registry,
		aggregator: aggregator.New(logger),
		logger:     logger,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Parse runs the whole pipeline on one document. The only blocking step is the
// enrichment call, bounded by ctx; its failure never fails the parse.
func (e *Engine) Parse(ctx context.Context, in Input) (result models.ParsingResult) {
	start := time.Now()
	log := e.logger.WithFields(
		logging.F(logging.FieldRunID, uuid.NewString()),
		logging.F(logging.FieldFile, in.Name),
		logging.F(logging.FieldFileType, string(in.FileType)),
		logging.F(logging.FieldReportType, string(in.ReportType)),
	)

	defer func() {
		if r := recover(); r != nil {
			err := fmt.Errorf("internal error while parsing document: %v", r)
			log.WithError(err).Error("Parse panicked")
			result = models.Failed(err)
		}
	}()

	data, err := e.run(log, in)
	if err != nil {
		log.WithError(err).Warn("Parse failed", logging.F(logging.FieldReason, failureClass(err)))
		return models.Failed(err)
	}

	if e.enricher != nil {
		e.enrich(ctx, log, in.ReportType, data)
	}

	log.Info("Parse completed",
		logging.F(logging.FieldCount, len(data.Records)),
		logging.F(logging.FieldSheet, data.Summary.ProcessedSheet),
		logging.F(logging.FieldDuration, time.Since(start).String()))

	return models.ParsingResult{
		Success:    true,
		Data:       data.ResultData,
		ReportType: in.ReportType,
	}
}

// parsed keeps the preview next to the result for the enrichment prompt.
type parsed struct {
	*models.ResultData
	preview [][]string
}

func (e *Engine) run(log logging.Logger, in Input) (*parsed, error) {
	if !in.ReportType.IsValid() {
		return nil, &parsererror.UnsupportedInputError{Field: "report type", Value: string(in.ReportType)}
	}
	if !in.FileType.IsValid() {
		return nil, &parsererror.UnsupportedInputError{Field: "file type", Value: string(in.FileType)}
	}

	p, err := e.parsers.Get(in.FileType)
	if err != nil {
		return nil, err
	}

	out, err := p.Parse(in.Data, in.ReportType)
	if err != nil {
		return nil, err
	}

	records := out.Records
	if records == nil {
		records = []models.ParsedFinancialRecord{}
	}
	log.Debug("Document parsed", logging.F(logging.FieldCount, len(records)))

	return &parsed{
		ResultData: &models.ResultData{
			Records: records,
			Summary: e.aggregator.Aggregate(records, out.SheetName),
		},
		preview: out.Preview,
	}, nil
}

func (e *Engine) enrich(ctx context.Context, log logging.Logger, rt models.ReportType, data *parsed) {
	result, err := e.enricher.Enrich(ctx, enrichment.Request{
		ReportType: rt,
		Preview:    data.preview,
		Records:    data.Records,
	})
	if err != nil {
		log.WithError(err).Warn("Enrichment failed, returning deterministic summary only")
		return
	}
	result.Apply(&data.Summary)
	log.Debug("Enrichment applied", logging.F(logging.FieldCount, len(result.Insights)))
}

// failureClass names the kind of a hard failure for logs.
func failureClass(err error) string {
	var (
		selectErr  *parsererror.SheetSelectionError
		mappingErr *parsererror.ColumnMappingError
		decodeErr  *parsererror.FileDecodeError
		inputErr   *parsererror.UnsupportedInputError
	)
	switch {
	case errors.As(err, &selectErr):
		return "sheet_selection"
	case errors.As(err, &mappingErr):
		return "column_mapping"
	case errors.As(err, &decodeErr):
		return "file_decode"
	case errors.As(err, &inputErr):
		return "unsupported_input"
	default:
		return "unknown"
	}
}
