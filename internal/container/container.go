// Package container provides dependency injection for the fin-ingest application.
// It centralizes the creation and wiring of all application dependencies,
// making them explicit and testable.
package container

import (
	"context"
	"fmt"
	"io"
	"time"

	"fjacquet/fin-ingest/internal/batch"
	"fjacquet/fin-ingest/internal/categorizer"
	"fjacquet/fin-ingest/internal/config"
	"fjacquet/fin-ingest/internal/csvparser"
	"fjacquet/fin-ingest/internal/engine"
	"fjacquet/fin-ingest/internal/enrichment"
	"fjacquet/fin-ingest/internal/excelparser"
	"fjacquet/fin-ingest/internal/logging"
	"fjacquet/fin-ingest/internal/models"
	"fjacquet/fin-ingest/internal/parser"
	"fjacquet/fin-ingest/internal/pdfparser"
	"fjacquet/fin-ingest/internal/store"
	"fjacquet/fin-ingest/internal/workbook"
)

// Container holds all application dependencies and provides methods to access them.
//
// Container is immutable after creation: all fields are private and can only
// be accessed through getter methods.
type Container struct {
	logger      logging.Logger
	config      *config.Config
	taxonomy    *models.TaxonomyConfig
	categorizer *categorizer.Categorizer
	parsers     *parser.Registry
	generator   enrichment.TextGenerator
	engine      *engine.Engine
	batch       *batch.Processor

	closers []io.Closer
}

// Option customizes how NewContainer builds dependencies.
type Option func(*options)

type options struct {
	logger    logging.Logger
	generator enrichment.TextGenerator
	extractor pdfparser.TextExtractor
}

// WithLogger replaces the logger built from cfg.Log.
func WithLogger(logger logging.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithGenerator supplies the text generator instead of dialing the configured
// provider. Enrichment is still only wired when cfg.AI.Enabled is set.
func WithGenerator(gen enrichment.TextGenerator) Option {
	return func(o *options) { o.generator = gen }
}

// WithPDFExtractor replaces the configured PDF text extractor.
func WithPDFExtractor(ext pdfparser.TextExtractor) Option {
	return func(o *options) { o.extractor = ext }
}

// NewContainer creates and wires all application dependencies.
func NewContainer(cfg *config.Config, opts ...Option) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	// Create logger first as it's needed by other components
	logger := o.logger
	if logger == nil {
		logger = logging.NewLogrusAdapter(cfg.Log.Level, cfg.Log.Format)
	}

	taxonomy, err := store.NewTaxonomyStore(cfg.Taxonomy.File, logger).Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load taxonomy: %w", err)
	}
	cat := categorizer.NewCategorizer(taxonomy, logger)

	extractor := o.extractor
	if extractor == nil {
		extractor, err = pdfparser.NewExtractor(cfg.Parsers.PDF.Extractor, logger)
		if err != nil {
			return nil, err
		}
	}

	registry := parser.NewRegistry()
	registry.Register(models.FileTypeCSV, csvparser.New(cat, logger))
	for _, ft := range []models.FileType{models.FileTypeXLSX, models.FileTypeXLS} {
		decoder, err := workbook.ForFileType(ft)
		if err != nil {
			return nil, err
		}
		registry.Register(ft, excelparser.New(decoder, cat, logger))
	}
	registry.Register(models.FileTypePDF, pdfparser.New(extractor, cat, logger))

	c := &Container{
		logger:      logger,
		config:      cfg,
		taxonomy:    taxonomy,
		categorizer: cat,
		parsers:     registry,
	}

	var engineOpts []engine.Option
	if cfg.AI.Enabled {
		gen := o.generator
		if gen == nil {
			gen, err = c.dialGenerator(context.Background())
			if err != nil {
				return nil, err
			}
		}
		c.generator = enrichment.RateLimited(
			enrichment.WithTimeout(gen, time.Duration(cfg.AI.TimeoutSeconds)*time.Second),
			cfg.AI.RequestsPerMinute)
		engineOpts = append(engineOpts, engine.WithEnricher(enrichment.New(c.generator, cfg.AI.Provider, logger)))
		logger.Info("AI enrichment enabled",
			logging.F(logging.FieldProvider, cfg.AI.Provider),
			logging.F(logging.FieldModel, cfg.AI.Model))
	} else {
		logger.Info("AI enrichment disabled")
	}

	c.engine = engine.New(registry, logger, engineOpts...)
	c.batch = batch.NewProcessor(c.engine, cfg.Batch.Workers, logger)

	logger.Info("Container initialized successfully",
		logging.F("ai_enabled", cfg.AI.Enabled),
		logging.F("workers", c.batch.Workers()))
	return c, nil
}

func (c *Container) dialGenerator(ctx context.Context) (enrichment.TextGenerator, error) {
	ai := c.config.AI
	switch ai.Provider {
	case config.ProviderVertex:
		client, err := enrichment.NewVertexClient(ctx, ai.Project, ai.Location, ai.Model)
		if err != nil {
			return nil, fmt.Errorf("failed to create Vertex AI client: %w", err)
		}
		return client, nil
	case config.ProviderGemini, "":
		client, err := enrichment.NewGeminiClient(ctx, ai.APIKey, ai.Model)
		if err != nil {
			return nil, fmt.Errorf("failed to create Gemini client: %w", err)
		}
		c.closers = append(c.closers, client)
		return client, nil
	default:
		return nil, fmt.Errorf("unknown AI provider: %s", ai.Provider)
	}
}

// GetLogger returns the container's logger instance.
func (c *Container) GetLogger() logging.Logger {
	return c.logger
}

// GetConfig returns the container's configuration instance.
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// GetTaxonomy returns the loaded taxonomy table.
func (c *Container) GetTaxonomy() *models.TaxonomyConfig {
	return c.taxonomy
}

// GetCategorizer returns the container's categorizer instance.
func (c *Container) GetCategorizer() *categorizer.Categorizer {
	return c.categorizer
}

// GetParsers returns the parser registry.
func (c *Container) GetParsers() *parser.Registry {
	return c.parsers
}

// GetGenerator returns the decorated text generator, or nil when AI is disabled.
func (c *Container) GetGenerator() enrichment.TextGenerator {
	return c.generator
}

// GetEngine returns the ingestion engine.
func (c *Container) GetEngine() *engine.Engine {
	return c.engine
}

// GetBatchProcessor returns the worker pool running the engine.
func (c *Container) GetBatchProcessor() *batch.Processor {
	return c.batch
}

// Close releases provider clients.
func (c *Container) Close() error {
	var firstErr error
	for _, closer := range c.closers {
		if err := closer.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	c.logger.Debug("Container closed")
	return firstErr
}
