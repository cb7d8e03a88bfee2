package store

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/hrops/award-intake/internal/award"
)

// RecordStore is the append-only JSON store of finished award records.
type RecordStore struct {
	path string
}

// NewRecordStore creates a record store over the JSON file at path. A
// missing file is an empty store.
func NewRecordStore(path string) *RecordStore {
	return &RecordStore{path: path}
}

// load reads the current record list. A missing file yields an empty list.
func (s *RecordStore) load() ([]award.Record, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read record store: %w", err)
	}
	if len(data) == 0 {
		return nil, nil
	}
	var records []award.Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to parse record store: %w", err)
	}
	return records, nil
}

// Contains reports whether a record with the given log ID is already
// persisted.
func (s *RecordStore) Contains(logID string) (bool, error) {
	records, err := s.load()
	if err != nil {
		return false, err
	}
	for i := range records {
		if records[i].LogID == logID {
			return true, nil
		}
	}
	return false, nil
}

// Append persists one record. A duplicate log ID is rejected before any
// write: it signals the counter store and the record store have diverged,
// and overwriting would destroy an issued record.
func (s *RecordStore) Append(rec *award.Record) error {
	records, err := s.load()
	if err != nil {
		return err
	}
	for i := range records {
		if records[i].LogID == rec.LogID {
			return award.NewRecordError(award.ErrorTypeDuplicateLogID,
				fmt.Sprintf("log ID %s already exists in the record store", rec.LogID))
		}
	}

	records = append(records, *rec)
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode record store: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write record store: %w", err)
	}
	return nil
}
