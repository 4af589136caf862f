package batch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"fjacquet/fin-ingest/internal/engine"
	"fjacquet/fin-ingest/internal/logging"
	"fjacquet/fin-ingest/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// echoParser succeeds with the input name as the processed sheet.
type echoParser struct {
	mu    sync.Mutex
	seen  []string
	delay time.Duration
	calls atomic.Int32
}

func (p *echoParser) Parse(_ context.Context, in engine.Input) models.ParsingResult {
	p.calls.Add(1)
	if p.delay > 0 {
		time.Sleep(p.delay)
	}
	p.mu.Lock()
	p.seen = append(p.seen, in.Name)
	p.mu.Unlock()
	if in.Name == "bad" {
		return models.Failed(errors.New("bad input"))
	}
	return models.ParsingResult{
		Success:    true,
		ReportType: in.ReportType,
		Data:       &models.ResultData{Summary: models.Summary{ProcessedSheet: in.Name}},
	}
}

func inputs(names ...string) []engine.Input {
	out := make([]engine.Input, len(names))
	for i, n := range names {
		out[i] = engine.Input{Name: n, FileType: models.FileTypeCSV, ReportType: models.ReportTypeProfitLoss}
	}
	return out
}

func TestNewProcessor_DefaultWorkers(t *testing.T) {
	p := NewProcessor(&echoParser{}, 0, nil)
	assert.Positive(t, p.Workers())

	p = NewProcessor(&echoParser{}, 3, nil)
	assert.Equal(t, 3, p.Workers())
}

func TestProcess_PreservesOrder(t *testing.T) {
	names := []string{"a", "b", "bad", "d", "e", "f", "g", "h"}
	ep := &echoParser{delay: time.Millisecond}
	p := NewProcessor(ep, 4, logging.NewMockLogger())

	results := p.Process(context.Background(), inputs(names...))

	require.Len(t, results, len(names))
	for i, name := range names {
		if name == "bad" {
			assert.False(t, results[i].Success)
			assert.Equal(t, "bad input", results[i].Error)
			continue
		}
		require.True(t, results[i].Success, name)
		assert.Equal(t, name, results[i].Data.Summary.ProcessedSheet)
	}
	assert.Len(t, ep.seen, len(names))
}

func TestProcess_Empty(t *testing.T) {
	p := NewProcessor(&echoParser{}, 2, logging.NewMockLogger())
	assert.Empty(t, p.Process(context.Background(), nil))
}

func TestProcess_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ep := &echoParser{}
	p := NewProcessor(ep, 1, logging.NewMockLogger())
	results := p.Process(ctx, inputs("a", "b", "c"))

	require.Len(t, results, 3)
	failed := 0
	for _, r := range results {
		if !r.Success {
			failed++
			assert.Equal(t, context.Canceled.Error(), r.Error)
		}
	}
	assert.Equal(t, 3-int(ep.calls.Load()), failed)
}

func TestProcessFiles(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "pl.csv")
	require.NoError(t, os.WriteFile(good, []byte("Account,Amount\nSales,10\n"), 0600))
	unknown := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(unknown, []byte("hello"), 0600))
	missing := filepath.Join(dir, "missing.csv")

	logger := logging.NewMockLogger()
	ep := &echoParser{}
	p := NewProcessor(ep, 2, logger)

	results := p.ProcessFiles(context.Background(), []string{good, unknown, missing}, models.ReportTypeProfitLoss)

	require.Len(t, results, 3)
	assert.Equal(t, good, results[0].File)
	require.True(t, results[0].Result.Success, results[0].Result.Error)
	assert.Equal(t, "pl.csv", results[0].Result.Data.Summary.ProcessedSheet)

	assert.False(t, results[1].Result.Success)
	assert.Contains(t, results[1].Result.Error, "unsupported file type")
	assert.False(t, results[2].Result.Success)

	assert.Equal(t, int32(1), ep.calls.Load())
	assert.True(t, logger.HasEntry("INFO", "Batch processed"))
}
