package batch

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/hrops/award-intake/internal/award"
	"github.com/hrops/award-intake/internal/logging"
)

// errorTruncateLen caps the error text recorded in the failure summary.
const errorTruncateLen = 100

// Failure records one file the batch could not process.
type Failure struct {
	File  string
	Error string
}

// Summary reports the outcome of a batch run.
type Summary struct {
	Processed []string
	Failed    []Failure
}

// Runner iterates an inbox directory, processing each PDF fully before
// the next.
type Runner struct {
	processor   *Processor
	log         logging.Logger
	skipMarkers []string
}

// NewRunner wires a runner. skipMarkers name file-name fragments for form
// families this intake does not handle.
func NewRunner(processor *Processor, log logging.Logger, skipMarkers []string) *Runner {
	return &Runner{processor: processor, log: log, skipMarkers: skipMarkers}
}

func (r *Runner) skip(name string) bool {
	for _, marker := range r.skipMarkers {
		if strings.Contains(name, marker) {
			return true
		}
	}
	return false
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}

// RunFile processes a single named file. Skip markers do not apply: the
// operator asked for this file explicitly.
func (r *Runner) RunFile(path string) (*Summary, error) {
	name := filepath.Base(path)
	summary := &Summary{}

	_, err := r.processor.ProcessFile(path)
	if err != nil {
		if award.TypeOf(err) == award.ErrorTypeDuplicateLogID {
			r.log.Error("duplicate log ID; halting", "file", name, "error", err)
			return summary, err
		}
		r.log.Error("record failed", "file", name, "error", truncate(err.Error(), errorTruncateLen))
		summary.Failed = append(summary.Failed, Failure{File: name, Error: truncate(err.Error(), errorTruncateLen)})
		return summary, nil
	}

	summary.Processed = append(summary.Processed, name)
	r.log.Info("processed", "file", name)
	return summary, nil
}

// Run processes every PDF in dir. Record-level failures are logged and
// collected; the run continues with the next file. A duplicate log ID is
// the exception: it means the counter store and record store have
// diverged, and the run halts rather than risk overwriting records.
func (r *Runner) Run(dir string) (*Summary, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	summary := &Summary{}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(strings.ToLower(name), ".pdf") {
			continue
		}
		if r.skip(name) {
			r.log.Debug("skipping file", "file", name)
			continue
		}

		_, err := r.processor.ProcessFile(filepath.Join(dir, name))
		if err != nil {
			if award.TypeOf(err) == award.ErrorTypeDuplicateLogID {
				r.log.Error("duplicate log ID; halting batch", "file", name, "error", err)
				return summary, err
			}
			r.log.Error("record failed", "file", name, "error", truncate(err.Error(), errorTruncateLen))
			summary.Failed = append(summary.Failed, Failure{File: name, Error: truncate(err.Error(), errorTruncateLen)})
			continue
		}
		summary.Processed = append(summary.Processed, name)
	}

	r.log.Info("batch complete", "processed", len(summary.Processed), "failed", len(summary.Failed))
	for _, name := range summary.Processed {
		r.log.Info("processed", "file", name)
	}
	for _, f := range summary.Failed {
		r.log.Warn("failed", "file", f.File, "error", f.Error)
	}
	return summary, nil
}
