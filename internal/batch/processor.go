// Package batch parses many documents concurrently through a bounded worker
// pool. Each document is an independent engine call.
package batch

import (
	"context"
	"path/filepath"
	"runtime"
	"sync"

	"fjacquet/fin-ingest/internal/engine"
	"fjacquet/fin-ingest/internal/fileutils"
	"fjacquet/fin-ingest/internal/logging"
	"fjacquet/fin-ingest/internal/models"
	"fjacquet/fin-ingest/internal/validation"
)

// DocumentParser is the engine operation the pool runs.
type DocumentParser interface {
	Parse(ctx context.Context, in engine.Input) models.ParsingResult
}

// FileResult pairs an input file with its parsing result.
type FileResult struct {
	File   string
	Result models.ParsingResult
}

// Processor handles parallel parsing of documents.
type Processor struct {
	parser      DocumentParser
	logger      logging.Logger
	workerCount int
}

// NewProcessor creates a processor with workers goroutines, or one per CPU
// when workers is not positive.
func NewProcessor(parser DocumentParser, workers int, logger logging.Logger) *Processor {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &Processor{
		parser:      parser,
		logger:      logging.OrDefault(logger),
		workerCount: workers,
	}
}

// Workers returns the size of the pool.
func (p *Processor) Workers() int {
	return p.workerCount
}

// indexedInput preserves the original order of inputs
type indexedInput struct {
	index int
	input engine.Input
}

// Process parses inputs concurrently. Results are in input order. Inputs not
// started before ctx is done are reported as failed with ctx's error.
func (p *Processor) Process(ctx context.Context, inputs []engine.Input) []models.ParsingResult {
	results := make([]models.ParsingResult, len(inputs))
	started := make([]bool, len(inputs))

	jobs := make(chan indexedInput)
	var wg sync.WaitGroup
	for i := 0; i < p.workerCount; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobs {
				// Each index is written by exactly one worker.
				results[job.index] = p.parser.Parse(ctx, job.input)
			}
		}()
	}

	// Send work to workers
dispatch:
	for i := range inputs {
		select {
		case jobs <- indexedInput{index: i, input: inputs[i]}:
			started[i] = true
		case <-ctx.Done():
			break dispatch
		}
	}
	close(jobs)
	wg.Wait()

	for i := range results {
		if !started[i] {
			results[i] = models.Failed(ctx.Err())
		}
	}

	p.logger.Debug("Concurrent processing completed",
		logging.F(logging.FieldCount, len(inputs)),
		logging.F("workers", p.workerCount))
	return results
}

// ProcessFiles reads and parses files as reportType. A file that cannot be
// read or whose type cannot be determined gets a failed result; the others
// are parsed concurrently.
func (p *Processor) ProcessFiles(ctx context.Context, files []string, reportType models.ReportType) []FileResult {
	out := make([]FileResult, len(files))
	var inputs []engine.Input
	var positions []int

	for i, file := range files {
		out[i].File = file

		if err := validation.InputFile(file); err != nil {
			out[i].Result = models.Failed(err)
			continue
		}
		data, err := fileutils.ReadFile(file)
		if err != nil {
			out[i].Result = models.Failed(err)
			continue
		}
		fileType, err := fileutils.DetectFileType(file, data)
		if err != nil {
			out[i].Result = models.Failed(err)
			continue
		}

		inputs = append(inputs, engine.Input{
			Data:       data,
			FileType:   fileType,
			ReportType: reportType,
			Name:       filepath.Base(file),
		})
		positions = append(positions, i)
	}

	for j, result := range p.Process(ctx, inputs) {
		out[positions[j]].Result = result
	}

	failed := 0
	for _, r := range out {
		if !r.Result.Success {
			failed++
		}
	}
	p.logger.Info("Batch processed",
		logging.F(logging.FieldCount, len(files)),
		logging.F("failed", failed))
	return out
}
