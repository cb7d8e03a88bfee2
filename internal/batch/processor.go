// Package batch drives records through the full pipeline, one file at a
// time: extract, populate, validate, resolve, format, classify, enforce
// limits, persist, archive. Processing is strictly sequential; a failing
// record is reported and the batch moves on.
package batch

import (
	"path/filepath"

	"github.com/hrops/award-intake/internal/award"
	"github.com/hrops/award-intake/internal/logging"
	"github.com/hrops/award-intake/internal/prompt"
	"github.com/hrops/award-intake/internal/store"
)

// FieldExtractor supplies the raw field map for a source file.
type FieldExtractor interface {
	ExtractFields(path string) (map[string]string, error)
}

// Processor runs one source file through the pipeline to a persisted,
// archived record.
type Processor struct {
	extractor FieldExtractor
	builder   *award.Builder
	counter   *store.CounterStore
	records   *store.RecordStore
	tsv       *store.TSVLog
	archiver  *store.Archiver
	decider   prompt.Decider
	log       logging.Logger
	category  string
}

// NewProcessor wires a processor from its collaborators.
func NewProcessor(
	extractor FieldExtractor,
	builder *award.Builder,
	counter *store.CounterStore,
	records *store.RecordStore,
	tsv *store.TSVLog,
	archiver *store.Archiver,
	decider prompt.Decider,
	log logging.Logger,
	category string,
) *Processor {
	return &Processor{
		extractor: extractor,
		builder:   builder,
		counter:   counter,
		records:   records,
		tsv:       tsv,
		archiver:  archiver,
		decider:   decider,
		log:       log,
		category:  category,
	}
}

// ProcessFile takes one source file through every pipeline stage. Each
// stage is a hard gate: any failure before persistence aborts the record
// with nothing written. Archive failure after persistence is reported but
// never rolls the record back.
func (p *Processor) ProcessFile(path string) (*award.Record, error) {
	fileName := filepath.Base(path)

	fields, err := p.extractor.ExtractFields(path)
	if err != nil {
		return nil, award.WrapRecordError(award.ErrorTypeExtraction, "extraction failed", err)
	}
	p.log.Debug("extracted form fields", "file", fileName, "count", len(fields))

	draft, err := p.builder.Populate(fields)
	if err != nil {
		return nil, err
	}

	if err := p.builder.ValidateRequired(draft); err != nil {
		re, ok := err.(*award.RecordError)
		if !ok || !re.Recoverable() {
			return nil, err
		}
		proceed, promptErr := p.decider.ContinueDespite(fileName, re.Message, re.Fields)
		if promptErr != nil {
			return nil, promptErr
		}
		if !proceed {
			return nil, err
		}
		p.log.Warn("continuing with missing fields", "file", fileName, "fields", re.Fields)
	}

	rec, err := p.builder.Finish(draft)
	if err != nil {
		return nil, err
	}

	logID, err := p.counter.NextLogID(p.category)
	if err != nil {
		return nil, err
	}
	rec.LogID = logID

	if err := p.records.Append(rec); err != nil {
		return nil, err
	}
	if err := p.tsv.Append(rec); err != nil {
		// The record store already holds the record; the tabular log can
		// be regenerated from it.
		p.log.Warn("failed to append TSV log line", "file", fileName, "error", err)
	}
	p.log.Info("record persisted", "file", fileName, "log_id", rec.LogID)

	employee := ""
	if rec.EmployeeName != nil {
		employee = *rec.EmployeeName
	}
	if _, err := p.archiver.Archive(path, rec.LogID, employee); err != nil {
		p.log.Warn("archival failed; record remains persisted", "file", fileName, "error", err)
	}
	return rec, nil
}
