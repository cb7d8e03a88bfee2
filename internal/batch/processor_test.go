package batch

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hrops/award-intake/internal/award"
	"github.com/hrops/award-intake/internal/format"
	"github.com/hrops/award-intake/internal/logging"
	"github.com/hrops/award-intake/internal/org"
	"github.com/hrops/award-intake/internal/prompt"
	"github.com/hrops/award-intake/internal/store"
)

// stubExtractor returns canned field maps per file name.
type stubExtractor struct {
	fields map[string]map[string]string
}

func (s *stubExtractor) ExtractFields(path string) (map[string]string, error) {
	fields, ok := s.fields[filepath.Base(path)]
	if !ok {
		return nil, os.ErrNotExist
	}
	return fields, nil
}

// continueAlways overrides every recoverable failure.
type continueAlways struct{}

func (continueAlways) ContinueDespite(string, string, []string) (bool, error) {
	return true, nil
}

func validFields() map[string]string {
	return map[string]string{
		"employee_name":                      "JANE SMITH",
		"organization":                       "NA-20 Program Integration",
		"pay_plan_gradestep_1":               "GS 13",
		"undefined":                          "$2,000",
		"hours_2":                            "8",
		"please_print":                       "John Doe",
		"org":                                "NA-20",
		"special_act_award_funding_string_2": "Alice Brown",
		"org_2":                              "Program Integration",
		"please_print_2":                     "Maria de Silva",
		"org_3":                              "NA-20",
		"please_print_3":                     "Sean McCall",
		"org_4":                              "NA-20",
		"please_print_4":                     "Pat Jones",
		"please_print_5":                     "Chris Lee",
		"extent_of_application":              "Led the recovery effort.",
		"value_high":                         "on",
		"extent_general":                     "on",
	}
}

type fixture struct {
	dir       string
	inbox     string
	processor *Processor
	records   *store.RecordStore
	extractor *stubExtractor
}

func newFixture(t *testing.T, decider prompt.Decider) *fixture {
	t.Helper()

	dir := t.TempDir()
	inbox := filepath.Join(dir, "inbox")
	cold := filepath.Join(dir, "cold")
	require.NoError(t, os.MkdirAll(inbox, 0o750))
	require.NoError(t, os.MkdirAll(cold, 0o750))

	counterPath := filepath.Join(dir, "log_id.yaml")
	require.NoError(t, os.WriteFile(counterPath, []byte("IND: 1\n"), 0o600))

	tables := org.Tables{
		MBMarker: "MB",
		Organizations: []org.Entry{
			{Code: "NA-20", Divisions: []string{"Program Integration"}},
		},
		MgmtBureaus: []org.Entry{
			{Code: "MB-1", Divisions: []string{"Human Resources"}},
		},
	}

	builder := award.NewBuilder(
		award.DefaultAliases()[award.VariantStandard],
		format.NewNameFormatter(),
		org.NewResolver(tables),
		award.NewEvaluator(award.DefaultCriteria()),
		"IND",
	)

	records := store.NewRecordStore(filepath.Join(dir, "records.json"))
	extractor := &stubExtractor{fields: map[string]map[string]string{}}

	processor := NewProcessor(
		extractor,
		builder,
		store.NewCounterStore(counterPath, 2026),
		records,
		store.NewTSVLog(filepath.Join(dir, "log.tsv")),
		store.NewArchiver(cold),
		decider,
		logging.New(io.Discard, "error"),
		"IND",
	)
	return &fixture{dir: dir, inbox: inbox, processor: processor, records: records, extractor: extractor}
}

func (f *fixture) addPDF(t *testing.T, name string, fields map[string]string) string {
	t.Helper()
	path := filepath.Join(f.inbox, name)
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.7 test"), 0o600))
	if fields != nil {
		f.extractor.fields[name] = fields
	}
	return path
}

func TestProcessFile(t *testing.T) {
	f := newFixture(t, prompt.AlwaysSkip{})
	path := f.addPDF(t, "scan1.pdf", validFields())

	rec, err := f.processor.ProcessFile(path)
	require.NoError(t, err)
	assert.Equal(t, "26-IND-001", rec.LogID)

	found, err := f.records.Contains("26-IND-001")
	require.NoError(t, err)
	assert.True(t, found)

	// The source was renamed and copied to cold storage.
	assert.NoFileExists(t, path)
	assert.FileExists(t, filepath.Join(f.inbox, "26-IND-001_Smith.pdf"))
	assert.FileExists(t, filepath.Join(f.dir, "cold", "26-IND-001_Smith.pdf"))
}

func TestProcessFileMissingFieldsSkipped(t *testing.T) {
	f := newFixture(t, prompt.AlwaysSkip{})

	fields := validFields()
	delete(fields, "please_print_5")
	path := f.addPDF(t, "scan2.pdf", fields)

	_, err := f.processor.ProcessFile(path)
	require.Error(t, err)
	assert.Equal(t, award.ErrorTypeMissingFields, award.TypeOf(err))

	// Nothing was persisted and the source stays in place.
	found, cerr := f.records.Contains("26-IND-001")
	require.NoError(t, cerr)
	assert.False(t, found)
	assert.FileExists(t, path)
}

func TestProcessFileMissingFieldsOverridden(t *testing.T) {
	f := newFixture(t, continueAlways{})

	fields := validFields()
	delete(fields, "please_print_4")
	delete(fields, "please_print_5")
	path := f.addPDF(t, "scan3.pdf", fields)

	rec, err := f.processor.ProcessFile(path)
	require.NoError(t, err)
	assert.Nil(t, rec.ReviewerName)
	assert.Equal(t, "26-IND-001", rec.LogID)
}

func TestProcessFileExtractionFailure(t *testing.T) {
	f := newFixture(t, prompt.AlwaysSkip{})
	path := f.addPDF(t, "scan4.pdf", nil) // no canned fields: extractor fails

	_, err := f.processor.ProcessFile(path)
	require.Error(t, err)
	assert.Equal(t, award.ErrorTypeExtraction, award.TypeOf(err))
}

func TestRunBatch(t *testing.T) {
	f := newFixture(t, prompt.AlwaysSkip{})

	f.addPDF(t, "a_scan.pdf", validFields())

	bad := validFields()
	bad["undefined"] = "$9,999" // over the high x general monetary limit
	f.addPDF(t, "b_scan.pdf", bad)

	f.addPDF(t, "GRP_form.pdf", validFields()) // skipped by marker
	require.NoError(t, os.WriteFile(filepath.Join(f.inbox, "notes.txt"), []byte("x"), 0o600))

	runner := NewRunner(f.processor, logging.New(io.Discard, "error"), []string{"GRP", "NA-90"})
	summary, err := runner.Run(f.inbox)
	require.NoError(t, err)

	assert.Equal(t, []string{"a_scan.pdf"}, summary.Processed)
	require.Len(t, summary.Failed, 1)
	assert.Equal(t, "b_scan.pdf", summary.Failed[0].File)
	assert.NotEmpty(t, summary.Failed[0].Error)
}

func TestRunFile(t *testing.T) {
	f := newFixture(t, prompt.AlwaysSkip{})
	path := f.addPDF(t, "scan5.pdf", validFields())

	runner := NewRunner(f.processor, logging.New(io.Discard, "error"), []string{"GRP", "NA-90"})
	summary, err := runner.RunFile(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"scan5.pdf"}, summary.Processed)
	assert.Empty(t, summary.Failed)

	found, err := f.records.Contains("26-IND-001")
	require.NoError(t, err)
	assert.True(t, found)
}

func TestRunFileIgnoresSkipMarkers(t *testing.T) {
	f := newFixture(t, prompt.AlwaysSkip{})
	path := f.addPDF(t, "GRP_named.pdf", validFields())

	runner := NewRunner(f.processor, logging.New(io.Discard, "error"), []string{"GRP"})
	summary, err := runner.RunFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"GRP_named.pdf"}, summary.Processed)
}

func TestRunFileFailure(t *testing.T) {
	f := newFixture(t, prompt.AlwaysSkip{})

	bad := validFields()
	bad["undefined"] = "$9,999"
	path := f.addPDF(t, "scan6.pdf", bad)

	runner := NewRunner(f.processor, logging.New(io.Discard, "error"), nil)
	summary, err := runner.RunFile(path)
	require.NoError(t, err)

	assert.Empty(t, summary.Processed)
	require.Len(t, summary.Failed, 1)
	assert.Equal(t, "scan6.pdf", summary.Failed[0].File)
}

func TestRunHaltsOnDuplicateLogID(t *testing.T) {
	f := newFixture(t, prompt.AlwaysSkip{})

	// Reset the counter so the second record draws an already-issued ID.
	f.addPDF(t, "a_scan.pdf", validFields())
	f.addPDF(t, "b_scan.pdf", validFields())
	counterPath := filepath.Join(f.dir, "log_id.yaml")

	runner := NewRunner(f.processor, logging.New(io.Discard, "error"), nil)

	_, err := f.processor.ProcessFile(filepath.Join(f.inbox, "a_scan.pdf"))
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(counterPath, []byte("IND: 1\n"), 0o600))

	summary, err := runner.Run(f.inbox)
	require.Error(t, err)
	assert.Equal(t, award.ErrorTypeDuplicateLogID, award.TypeOf(err))
	assert.Empty(t, summary.Processed)
}
