// Package format contains the text-cleaning and value-formatting helpers
// that turn raw PDF form-field strings into canonical values.
package format

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var (
	multiNewline = regexp.MustCompile(`\n{2,}`)
	multiSpace   = regexp.MustCompile(` {2,}`)
	alnumRun     = regexp.MustCompile(`[a-zA-Z0-9]+`)
)

// Clean normalizes a raw extracted string: Unicode compatibility form,
// ASCII-only, carriage returns folded into newlines, runs of blank lines
// and spaces collapsed, surrounding whitespace trimmed. The second return
// is false when the input reduces to nothing; callers must treat that as
// an absent field, not an empty one.
func Clean(text string) (string, bool) {
	text = norm.NFKC.String(text)

	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if r < 128 {
			b.WriteRune(r)
		}
	}
	text = b.String()

	text = strings.ReplaceAll(text, "\r", "\n")
	text = multiNewline.ReplaceAllString(text, "\n")
	text = strings.ReplaceAll(text, "\t", " ")
	text = multiSpace.ReplaceAllString(text, " ")

	text = strings.TrimSpace(text)
	if text == "" {
		return "", false
	}
	return text, true
}

// Key reduces arbitrary text to a canonical snake_case field key:
// alphanumeric runs joined by underscores, lowercased.
func Key(text string) (string, bool) {
	text, ok := Clean(text)
	if !ok {
		return "", false
	}
	matches := alnumRun.FindAllString(text, -1)
	if len(matches) == 0 {
		return "", false
	}
	return strings.ToLower(strings.Join(matches, "_")), true
}

// OrgDivKey produces the key used for organization and division matching:
// spaces, hyphens, and periods stripped, lowercased. Matching only, never
// shown to a user.
func OrgDivKey(text string) (string, bool) {
	text, ok := Clean(text)
	if !ok {
		return "", false
	}
	r := strings.NewReplacer(" ", "", "-", "", ".", "")
	text = strings.ToLower(r.Replace(text))
	if text == "" {
		return "", false
	}
	return text, true
}
