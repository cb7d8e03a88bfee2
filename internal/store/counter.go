// Package store owns the persistent surfaces: the log-ID counter, the
// JSON record store, the TSV log, and source-file archival. All of it is
// plain read-modify-write; concurrent use is documented unsupported and
// callers must serialize access themselves.
package store

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// CounterStore issues log IDs from a persistent category-to-serial map.
type CounterStore struct {
	path       string
	fiscalYear int
}

// NewCounterStore creates a counter store over the YAML file at path.
func NewCounterStore(path string, fiscalYear int) *CounterStore {
	return &CounterStore{path: path, fiscalYear: fiscalYear}
}

// NextLogID formats the next log ID for a category as
// {2-digit-fiscal-year}-{category}-{3-digit-serial} and advances the
// serial. The store file must already carry an integer entry for the
// category; a malformed store is an error, never a silent restart at zero.
func (s *CounterStore) NextLogID(category string) (string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return "", fmt.Errorf("failed to read counter store: %w", err)
	}

	var counters map[string]any
	if err := yaml.Unmarshal(data, &counters); err != nil {
		return "", fmt.Errorf("failed to parse counter store: %w", err)
	}
	if len(counters) == 0 {
		return "", fmt.Errorf("counter store %s holds no data", s.path)
	}

	raw, ok := counters[category]
	if !ok {
		return "", fmt.Errorf("counter store does not contain %q", category)
	}
	serial, ok := raw.(int)
	if !ok {
		return "", fmt.Errorf("counter for %q is not an integer (got %T)", category, raw)
	}

	logID := fmt.Sprintf("%02d-%s-%03d", s.fiscalYear%100, category, serial)

	counters[category] = serial + 1
	updated, err := yaml.Marshal(counters)
	if err != nil {
		return "", fmt.Errorf("failed to encode counter store: %w", err)
	}
	if err := os.WriteFile(s.path, updated, 0o600); err != nil {
		return "", fmt.Errorf("failed to write counter store: %w", err)
	}

	return logID, nil
}
