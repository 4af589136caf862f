package parser

import (
	"sync"

	"fjacquet/fin-ingest/internal/models"
	"fjacquet/fin-ingest/internal/parsererror"
)

// Registry maps file types to parsers.
type Registry struct {
	mu      sync.RWMutex
	parsers map[models.FileType]Parser
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{parsers: make(map[models.FileType]Parser)}
}

// Register binds a parser to a file type, replacing any previous binding.
func (r *Registry) Register(ft models.FileType, p Parser) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.parsers[ft] = p
}

// Get returns the parser for a file type.
func (r *Registry) Get(ft models.FileType) (Parser, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.parsers[ft]
	if !ok {
		return nil, &parsererror.UnsupportedInputError{Field: "file type", Value: string(ft)}
	}
	return p, nil
}
