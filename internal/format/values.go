package format

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	nonAlnumRun   = regexp.MustCompile(`[^a-zA-Z0-9]+`)
	planCodeShape = regexp.MustCompile(`^([A-Z]{2})(\d)`)
	listItemLead  = regexp.MustCompile(`^[a-zA-Z0-9]{1,3}\.`)
)

// Numerical extracts a numeric amount from noisy text ("$1,234.56  ").
// It fails loudly rather than defaulting to zero: callers must not treat
// unparseable amounts as absent.
func Numerical(text string) (float64, error) {
	var b strings.Builder
	for _, r := range text {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}
	digits := b.String()

	if strings.Count(digits, ".") > 1 {
		return 0, fmt.Errorf("unable to extract numerical value from %q: multiple decimal points", text)
	}
	if strings.IndexFunc(digits, func(r rune) bool { return r >= '0' && r <= '9' }) < 0 {
		return 0, fmt.Errorf("unable to extract numerical value from %q", text)
	}

	n, err := strconv.ParseFloat(strings.Trim(digits, "."), 64)
	if err != nil {
		return 0, fmt.Errorf("unable to extract numerical value from %q: %w", text, err)
	}
	return n, nil
}

// PayPlan encodes a pay plan/grade/step string into the canonical
// uppercase-dash form: "gs 9 / step 4" -> "GS-9-STEP-4". Plan codes written
// without a separator are normalized too: "GS9" -> "GS-9".
func PayPlan(text string) (string, bool) {
	text, ok := Clean(text)
	if !ok {
		return "", false
	}
	text = strings.ToUpper(nonAlnumRun.ReplaceAllString(text, "-"))
	text = strings.Trim(text, "-")
	if text == "" {
		return "", false
	}
	text = planCodeShape.ReplaceAllString(text, "$1-$2")
	return text, true
}

// Justification formats multi-line justification text for embedding in
// quoted cell formats: double quotes become single quotes, prose lines are
// block-quoted, list items indented, and the whole value is wrapped in a
// pair of double quotes.
func Justification(text string) (string, bool) {
	text, ok := Clean(text)
	if !ok {
		return "", false
	}
	text = strings.ReplaceAll(text, `"`, "'")

	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lead := rune(line[0])
		isAlnum := (lead >= 'a' && lead <= 'z') || (lead >= 'A' && lead <= 'Z') || (lead >= '0' && lead <= '9')
		if isAlnum && !listItemLead.MatchString(line) {
			lines = append(lines, "> "+line)
		} else {
			lines = append(lines, "    "+line)
		}
	}
	return `"` + strings.Join(lines, "\n") + `"`, true
}

// Name cleans and reformats a personal-name field.
func Name(nf *NameFormatter, text string) (string, bool) {
	text, ok := Clean(text)
	if !ok {
		return "", false
	}
	return nf.FormatLastFirst(text), true
}
