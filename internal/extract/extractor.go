// Package extract pulls named form-field values out of filled PDF
// nomination forms. It is the boundary to the PDF libraries: everything
// downstream works on a flat key-to-string field map.
package extract

import (
	"fmt"
	"os"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	"github.com/hrops/award-intake/internal/format"
)

// checkboxOn is the canonical marker for a checked checkbox in the
// extracted field map.
const checkboxOn = "on"

// Extractor reads AcroForm field values from PDF files.
type Extractor struct {
	maxFileSize int64
}

// NewExtractor creates an extractor with the given file size cap.
func NewExtractor(maxFileSize int64) *Extractor {
	return &Extractor{maxFileSize: maxFileSize}
}

// ExtractFields extracts every named form field from the PDF at path into
// a map keyed by the normalized field name. Checked checkboxes carry the
// literal "on"; empty and unchecked fields are omitted. A form with no
// extractable fields is an error, not an empty map.
func (e *Extractor) ExtractFields(path string) (map[string]string, error) {
	if err := e.ValidateFile(path); err != nil {
		return nil, err
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF file: %w", err)
	}
	defer file.Close()

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	ctx, err := api.ReadContext(file, conf)
	if err != nil {
		return nil, fmt.Errorf("failed to read PDF context: %w", err)
	}
	if err := ctx.EnsurePageCount(); err != nil {
		return nil, fmt.Errorf("failed to ensure page count: %w", err)
	}

	fields, err := e.extractFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, fmt.Errorf("no form fields found in %s", path)
	}
	return fields, nil
}

// extractFromContext walks the AcroForm Fields array of a pdfcpu context.
func (e *Extractor) extractFromContext(ctx *model.Context) (map[string]string, error) {
	rootDict, err := ctx.Catalog()
	if err != nil {
		return nil, fmt.Errorf("failed to get catalog: %w", err)
	}

	acroFormObj, found := rootDict.Find("AcroForm")
	if !found {
		return nil, fmt.Errorf("no AcroForm dictionary found in document")
	}
	acroFormDict, err := ctx.DereferenceDict(acroFormObj)
	if err != nil {
		return nil, fmt.Errorf("failed to dereference AcroForm: %w", err)
	}
	if acroFormDict == nil {
		return nil, fmt.Errorf("no AcroForm dictionary found in document")
	}

	fieldsObj, found := acroFormDict.Find("Fields")
	if !found {
		return nil, fmt.Errorf("no Fields array found in AcroForm")
	}
	fieldsArray, err := ctx.DereferenceArray(fieldsObj)
	if err != nil {
		return nil, fmt.Errorf("failed to dereference Fields array: %w", err)
	}

	fields := make(map[string]string)
	for _, fieldRef := range fieldsArray {
		name, value, ok := e.processField(ctx, fieldRef)
		if !ok {
			continue
		}
		key, keyOK := format.Key(name)
		if !keyOK {
			continue
		}
		fields[key] = value
	}
	return fields, nil
}

// processField reads one field dictionary and returns its name and
// string value. ok is false for unnamed, empty, and unchecked fields.
func (e *Extractor) processField(ctx *model.Context, fieldObj types.Object) (name, value string, ok bool) {
	fieldDict, err := ctx.DereferenceDict(fieldObj)
	if err != nil || fieldDict == nil {
		return "", "", false
	}

	if nameObj, found := fieldDict.Find("T"); found {
		if n, err := ctx.DereferenceStringOrHexLiteral(nameObj, model.V10, nil); err == nil {
			name = n
		}
	}
	if name == "" {
		return "", "", false
	}

	valueObj, found := fieldDict.Find("V")
	if !found {
		return "", "", false
	}

	switch e.fieldType(ctx, fieldDict) {
	case "Btn":
		// Checkboxes and radio groups carry a name object; anything but
		// the off state counts as checked.
		if state, err := ctx.DereferenceName(valueObj, model.V10, nil); err == nil && state != "Off" {
			return name, checkboxOn, true
		}
		return "", "", false
	default:
		if v, err := ctx.DereferenceStringOrHexLiteral(valueObj, model.V10, nil); err == nil && strings.TrimSpace(v) != "" {
			return name, v, true
		}
		return "", "", false
	}
}

// fieldType resolves the FT entry, walking up to the parent when the
// field inherits it.
func (e *Extractor) fieldType(ctx *model.Context, fieldDict types.Dict) string {
	ftObj, found := fieldDict.Find("FT")
	if !found {
		if parentObj, found := fieldDict.Find("Parent"); found {
			if parentDict, err := ctx.DereferenceDict(parentObj); err == nil && parentDict != nil {
				return e.fieldType(ctx, parentDict)
			}
		}
		return ""
	}
	ftName, err := ctx.DereferenceName(ftObj, model.V10, nil)
	if err != nil {
		return ""
	}
	return string(ftName)
}
