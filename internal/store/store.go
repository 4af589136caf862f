// Package store loads the account classification table. A built-in table is
// embedded in the binary; deployments may replace it with their own YAML file.
package store

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"fjacquet/fin-ingest/internal/logging"
	"fjacquet/fin-ingest/internal/models"

	"gopkg.in/yaml.v3"
)

//go:embed taxonomy.yaml
var defaultTaxonomy []byte

// TaxonomyStore resolves and loads the taxonomy YAML.
type TaxonomyStore struct {
	// TaxonomyFile overrides the embedded table when set.
	TaxonomyFile string
	logger       logging.Logger
}

// NewTaxonomyStore creates a store. An empty file means the embedded table.
func NewTaxonomyStore(taxonomyFile string, logger logging.Logger) *TaxonomyStore {
	return &TaxonomyStore{
		TaxonomyFile: taxonomyFile,
		logger:       logging.OrDefault(logger),
	}
}

// DefaultTaxonomy returns the embedded table. It panics only if the embedded
// YAML is broken, which the package tests rule out.
func DefaultTaxonomy() *models.TaxonomyConfig {
	cfg, err := ParseTaxonomy(defaultTaxonomy)
	if err != nil {
		panic(fmt.Sprintf("embedded taxonomy is invalid: %v", err))
	}
	return cfg
}

// DefaultTaxonomyYAML returns the raw embedded table, for users who want a
// starting point for their own file.
func DefaultTaxonomyYAML() []byte {
	out := make([]byte, len(defaultTaxonomy))
	copy(out, defaultTaxonomy)
	return out
}

// FindConfigFile looks for a file in the standard locations.
func (s *TaxonomyStore) FindConfigFile(filename string) (string, error) {
	if filepath.IsAbs(filename) {
		if _, err := os.Stat(filename); err == nil {
			return filename, nil
		}
		return "", os.ErrNotExist
	}

	locations := []string{
		filename,
		filepath.Join("config", filename),
		filepath.Join(".fin-ingest", filename),
	}
	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location, nil
		}
	}

	if homeDir, err := os.UserHomeDir(); err == nil {
		configPath := filepath.Join(homeDir, ".fin-ingest", filename)
		if _, err := os.Stat(configPath); err == nil {
			return configPath, nil
		}
	}

	return "", os.ErrNotExist
}

// Load returns the configured table. A configured file that cannot be found
// or parsed is an error; silently falling back would classify with the wrong
// rules.
func (s *TaxonomyStore) Load() (*models.TaxonomyConfig, error) {
	if s.TaxonomyFile == "" {
		s.logger.Debug("Using built-in taxonomy")
		return ParseTaxonomy(defaultTaxonomy)
	}

	filePath, err := s.FindConfigFile(s.TaxonomyFile)
	if err != nil {
		return nil, fmt.Errorf("taxonomy file '%s' not found: %w", s.TaxonomyFile, err)
	}

	data, err := os.ReadFile(filePath) // #nosec G304 -- path comes from configuration
	if err != nil {
		return nil, fmt.Errorf("error reading taxonomy file: %w", err)
	}

	cfg, err := ParseTaxonomy(data)
	if err != nil {
		return nil, fmt.Errorf("error in taxonomy file '%s': %w", filePath, err)
	}

	s.logger.Info("Loaded taxonomy",
		logging.F(logging.FieldFile, filePath),
		logging.F(logging.FieldCount, len(cfg.Buckets)))
	return cfg, nil
}

// ParseTaxonomy unmarshals and validates a taxonomy document. Keywords and
// category matches are lowercased.
func ParseTaxonomy(data []byte) (*models.TaxonomyConfig, error) {
	var cfg models.TaxonomyConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("error parsing taxonomy: %w", err)
	}

	if err := validateTaxonomy(&cfg); err != nil {
		return nil, err
	}

	for i := range cfg.Buckets {
		for j, kw := range cfg.Buckets[i].Keywords {
			cfg.Buckets[i].Keywords[j] = strings.ToLower(strings.TrimSpace(kw))
		}
	}
	for i := range cfg.Categories {
		cfg.Categories[i].Match = strings.ToLower(strings.TrimSpace(cfg.Categories[i].Match))
	}
	return &cfg, nil
}

func validateTaxonomy(cfg *models.TaxonomyConfig) error {
	if len(cfg.Buckets) == 0 {
		return fmt.Errorf("taxonomy defines no buckets")
	}

	defined := make(map[models.DataType]bool, len(cfg.Buckets))
	for _, b := range cfg.Buckets {
		if !b.Type.IsValid() {
			return fmt.Errorf("unknown data type '%s' in buckets", b.Type)
		}
		if defined[b.Type] {
			return fmt.Errorf("data type '%s' has more than one bucket", b.Type)
		}
		defined[b.Type] = true
	}

	for _, rt := range models.AllReportTypes {
		rules, ok := cfg.Reports[rt]
		if !ok {
			return fmt.Errorf("no rules for report type '%s'", rt)
		}
		if len(rules.Buckets) == 0 {
			return fmt.Errorf("report type '%s' lists no buckets", rt)
		}
		for _, dt := range rules.Buckets {
			if !defined[dt] {
				return fmt.Errorf("report type '%s' references undefined bucket '%s'", rt, dt)
			}
		}
		if rules.Fallback != models.FallbackSign && !models.DataType(rules.Fallback).IsValid() {
			return fmt.Errorf("report type '%s' has invalid fallback '%s'", rt, rules.Fallback)
		}
	}

	for rt := range cfg.Reports {
		if !rt.IsValid() {
			return fmt.Errorf("unknown report type '%s'", rt)
		}
	}

	for _, c := range cfg.Categories {
		if strings.TrimSpace(c.Match) == "" || !c.Type.IsValid() {
			return fmt.Errorf("invalid category rule '%s' -> '%s'", c.Match, c.Type)
		}
	}
	return nil
}
