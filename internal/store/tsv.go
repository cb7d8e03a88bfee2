package store

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/hrops/award-intake/internal/award"
)

// tsvMissing renders an absent value in the tabular log.
const tsvMissing = "-"

// TSVLog appends one tab-separated line per record for spreadsheet
// import. Column order is fixed; absent values render as a single dash.
type TSVLog struct {
	path string
}

// NewTSVLog creates a TSV log writer over the file at path.
func NewTSVLog(path string) *TSVLog {
	return &TSVLog{path: path}
}

func optional(v *string) string {
	if v == nil || *v == "" {
		return tsvMissing
	}
	return *v
}

// Append writes one record line.
func (l *TSVLog) Append(rec *award.Record) error {
	file, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return fmt.Errorf("failed to open TSV log: %w", err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	w.Comma = '\t'
	row := []string{
		rec.LogID,
		rec.DateReceived.Format("2006-01-02"),
		rec.Category,
		rec.Type,
		optional(rec.EmployeeName),
		optional(rec.EmployeeOrg),
		rec.FundingOrg,
		optional(rec.MBDivision),
		optional(rec.Value),
		optional(rec.Extent),
		strconv.Itoa(rec.MonetaryAmount),
		strconv.Itoa(rec.TimeOffAmount),
		optional(rec.EmployeePayPlan),
		optional(rec.NominatorName),
		optional(rec.SupervisorName),
		optional(rec.ApproverName),
		optional(rec.CertifierName),
		optional(rec.Justification),
	}
	if err := w.Write(row); err != nil {
		return fmt.Errorf("failed to write TSV row: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush TSV log: %w", err)
	}
	return nil
}
