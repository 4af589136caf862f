// Package enrichment asks an external text-generation service for a sheet-type
// label, insights and a summary of a parsed document. Enrichment is optional:
// every failure is reported as a parsererror.EnrichmentError for the caller to
// log and ignore.
package enrichment

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// ErrEmptyResponse is returned when the service answers with no text.
var ErrEmptyResponse = errors.New("empty response from text generation service")

// TextGenerator is a chat-style text generation client.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type timeoutGenerator struct {
	next    TextGenerator
	timeout time.Duration
}

// WithTimeout bounds every Generate call by d. A non-positive d returns gen
// unchanged.
func WithTimeout(gen TextGenerator, d time.Duration) TextGenerator {
	if d <= 0 {
		return gen
	}
	return &timeoutGenerator{next: gen, timeout: d}
}

func (g *timeoutGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()
	return g.next.Generate(ctx, prompt)
}

type rateLimitedGenerator struct {
	next    TextGenerator
	limiter *rate.Limiter
}

// RateLimited spaces Generate calls to at most rpm per minute, shared by every
// caller of the returned generator. A non-positive rpm returns gen unchanged.
func RateLimited(gen TextGenerator, rpm int) TextGenerator {
	if rpm <= 0 {
		return gen
	}
	return &rateLimitedGenerator{
		next:    gen,
		limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(rpm)), 1),
	}
}

func (g *rateLimitedGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	if err := g.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limiter: %w", err)
	}
	return g.next.Generate(ctx, prompt)
}

// MockGenerator implements TextGenerator for testing purposes. It records every
// prompt it receives.
type MockGenerator struct {
	Response string
	Err      error

	mu      sync.Mutex
	prompts []string
}

// NewMockGenerator creates a MockGenerator returning response or err.
func NewMockGenerator(response string, err error) *MockGenerator {
	return &MockGenerator{Response: response, Err: err}
}

// Generate records prompt and returns the canned answer. A cancelled context
// wins over the canned answer.
func (m *MockGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	m.mu.Lock()
	m.prompts = append(m.prompts, prompt)
	m.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return "", err
	}
	if m.Err != nil {
		return "", m.Err
	}
	return m.Response, nil
}

// Prompts returns a copy of the prompts received so far.
func (m *MockGenerator) Prompts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.prompts))
	copy(out, m.prompts)
	return out
}
