package format

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// defaultParticles are the surname fragments that must survive token
// filtering and be merged into the last name ("de la Cruz", "van Dyke").
var defaultParticles = []string{
	"mc", "st", "st.", "de", "da", "di", "du", "la", "le", "el", "lo",
	"am", "op", "te", "zu", "im", "af", "av", "al", "ov", "ev", "van", "von",
}

// defaultForLiteral marks the narrow "First Last for X Y" delegation form
// seen on a handful of production forms.
const defaultForLiteral = "for"

var (
	titlePattern    = regexp.MustCompile(`^[A-Za-z]{2,4}\.(?:[A-Za-z])?\.?$`)
	enclosedPattern = regexp.MustCompile(`^(?:(['"])[A-Za-z]{1,12}['"]|\([A-Za-z]{1,32}\))$`)
	capitalPattern  = regexp.MustCompile(`[A-Z]`)

	titleCaser = cases.Title(language.English)
)

// NameFormatter reformats free-text personal names into "Last, First" form.
// The particle list and the delegation literal are data so one-off form
// layouts can be supplied from configuration.
type NameFormatter struct {
	particles  map[string]struct{}
	forLiteral string
}

// NewNameFormatter returns a formatter using the production particle list.
func NewNameFormatter() *NameFormatter {
	return NewNameFormatterWith(defaultParticles, defaultForLiteral)
}

// NewNameFormatterWith returns a formatter with a custom particle list and
// delegation literal. Empty arguments fall back to the defaults.
func NewNameFormatterWith(particles []string, forLiteral string) *NameFormatter {
	if len(particles) == 0 {
		particles = defaultParticles
	}
	if forLiteral == "" {
		forLiteral = defaultForLiteral
	}
	set := make(map[string]struct{}, len(particles))
	for _, p := range particles {
		set[strings.ToLower(p)] = struct{}{}
	}
	return &NameFormatter{particles: set, forLiteral: forLiteral}
}

// isParticle reports whether the token is a recognized surname particle.
func (nf *NameFormatter) isParticle(part string) bool {
	_, ok := nf.particles[strings.ToLower(part)]
	return ok
}

// keepToken decides whether a token survives filtering. Particles are
// always kept; titles ("Dr."), quoted or parenthesized nicknames, and
// bare initials are dropped.
func (nf *NameFormatter) keepToken(part string) bool {
	if nf.isParticle(part) {
		return true
	}
	if titlePattern.MatchString(part) {
		return false
	}
	if enclosedPattern.MatchString(part) {
		return false
	}
	if len([]rune(part)) == 1 {
		return false
	}
	return true
}

// FormatLastFirst reformats a full name into "Last, First". When the input
// cannot be parsed with confidence it is returned unchanged rather than
// mangled; required-field checks upstream decide what to do with it.
func (nf *NameFormatter) FormatLastFirst(name string) string {
	if name == "" || !strings.Contains(name, " ") {
		return name
	}

	var parts []string
	for _, part := range strings.Split(name, " ") {
		if part != "" && nf.keepToken(part) {
			parts = append(parts, part)
		}
	}
	if len(parts) < 2 || len(parts) > 5 {
		return name
	}

	var first, last string
	switch len(parts) {
	case 5:
		// "First Last for Someone Else": the named employee comes first,
		// the delegate is dropped.
		if parts[2] != nf.forLiteral {
			return name
		}
		first, last = parts[0], parts[1]
	case 4:
		if !nf.isParticle(parts[1]) || !nf.isParticle(parts[2]) {
			return name
		}
		first = parts[0]
		last = parts[1] + " " + parts[2] + " " + parts[3]
	case 3:
		if !nf.isParticle(parts[1]) {
			return name
		}
		first = parts[0]
		last = parts[1] + " " + parts[2]
	case 2:
		if strings.Contains(parts[0], ",") {
			// Already "Last, First".
			last, first = parts[0], parts[1]
		} else {
			first, last = parts[0], parts[1]
		}
	}

	if !strings.HasSuffix(last, ",") {
		last += ","
	}
	full := last + " " + first

	// Between 2 and 5 capitals means the source casing is intentional
	// ("McCall," "O'Brien,"); anything else is all-caps or all-lowercase
	// input that needs title casing.
	capitals := len(capitalPattern.FindAllString(full, -1))
	if capitals >= 2 && capitals <= 5 {
		return full
	}
	return titleCaser.String(strings.ToLower(full))
}
