package award

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Criteria holds the value and extent tiers and the limit matrices their
// cross-product indexes into. Matrices are [valueIndex][extentIndex].
type Criteria struct {
	ValueOptions  []string `yaml:"value_options"`
	ExtentOptions []string `yaml:"extent_options"`
	Monetary      [][]int  `yaml:"monetary_limits"`
	TimeOff       [][]int  `yaml:"time_off_limits"`
}

// DefaultCriteria returns the production tiers and limit matrices.
func DefaultCriteria() Criteria {
	return Criteria{
		ValueOptions:  []string{"low", "medium", "high"},
		ExtentOptions: []string{"limited", "general", "exceptional"},
		Monetary: [][]int{
			{500, 1000, 1500},
			{1000, 2500, 3500},
			{2000, 5000, 7500},
		},
		TimeOff: [][]int{
			{8, 16, 24},
			{16, 24, 32},
			{24, 40, 80},
		},
	}
}

// LoadCriteria reads tier and limit overrides from a YAML file. Files
// without a criteria section keep the defaults.
func LoadCriteria(path string) (Criteria, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Criteria{}, fmt.Errorf("failed to read criteria tables: %w", err)
	}
	wrapper := struct {
		Criteria *Criteria `yaml:"criteria"`
	}{}
	if err := yaml.Unmarshal(data, &wrapper); err != nil {
		return Criteria{}, fmt.Errorf("failed to parse criteria tables: %w", err)
	}
	if wrapper.Criteria == nil {
		return DefaultCriteria(), nil
	}
	c := *wrapper.Criteria
	if err := c.validate(); err != nil {
		return Criteria{}, fmt.Errorf("invalid criteria tables in %s: %w", path, err)
	}
	return c, nil
}

func (c Criteria) validate() error {
	if len(c.ValueOptions) == 0 || len(c.ExtentOptions) == 0 {
		return fmt.Errorf("value and extent tiers cannot be empty")
	}
	if len(c.Monetary) != len(c.ValueOptions) || len(c.TimeOff) != len(c.ValueOptions) {
		return fmt.Errorf("limit matrices must have one row per value tier")
	}
	for i := range c.Monetary {
		if len(c.Monetary[i]) != len(c.ExtentOptions) || len(c.TimeOff[i]) != len(c.ExtentOptions) {
			return fmt.Errorf("limit matrices must have one column per extent tier")
		}
	}
	return nil
}

func indexOf(options []string, v string) int {
	for i, opt := range options {
		if opt == v {
			return i
		}
	}
	return -1
}

// Evaluation reports the limits and percentage usage of an award.
type Evaluation struct {
	MonetaryLimit      int
	TimeOffLimit       int
	MonetaryPercentage float64
	TimeOffPercentage  float64
	CombinedPercentage float64
}

// Evaluator checks award amounts against the value-by-extent limit cell.
type Evaluator struct {
	criteria Criteria
}

// NewEvaluator builds an evaluator over the given criteria.
func NewEvaluator(criteria Criteria) *Evaluator {
	return &Evaluator{criteria: criteria}
}

// Evaluate validates the tier selections, looks up the applicable limits,
// and fails when the combined percentage of both limits exceeds 100%. The
// comparison uses full floating-point precision; only display rounds.
func (e *Evaluator) Evaluate(value, extent string, monetaryAmount, timeOffAmount int) (*Evaluation, error) {
	valIdx := indexOf(e.criteria.ValueOptions, value)
	extIdx := indexOf(e.criteria.ExtentOptions, extent)

	var problems []string
	if valIdx < 0 {
		problems = append(problems, fmt.Sprintf("invalid 'Value' selection: %q", value))
	}
	if extIdx < 0 {
		problems = append(problems, fmt.Sprintf("invalid 'Extent' selection: %q", extent))
	}
	if len(problems) > 0 {
		return nil, NewRecordError(ErrorTypeFormat,
			"assessment validation failed: "+strings.Join(problems, "; "))
	}

	ev := &Evaluation{
		MonetaryLimit: e.criteria.Monetary[valIdx][extIdx],
		TimeOffLimit:  e.criteria.TimeOff[valIdx][extIdx],
	}
	ev.MonetaryPercentage = float64(monetaryAmount) / float64(ev.MonetaryLimit) * 100
	ev.TimeOffPercentage = float64(timeOffAmount) / float64(ev.TimeOffLimit) * 100
	ev.CombinedPercentage = ev.MonetaryPercentage + ev.TimeOffPercentage

	if ev.CombinedPercentage > 100 {
		return nil, NewRecordError(ErrorTypeLimitExceeded,
			overLimitMessage(value, extent, monetaryAmount, timeOffAmount, ev))
	}
	return ev, nil
}

// overLimitMessage builds the operator-facing breakdown for an award that
// exceeds its limit cell.
func overLimitMessage(value, extent string, monetaryAmount, timeOffAmount int, ev *Evaluation) string {
	capValue := capitalize(value)
	capExtent := capitalize(extent)
	return fmt.Sprintf(
		"award amounts exceed the limits for the selected value and extent\n\n"+
			"Selected Criteria:\n"+
			"  - Value:     %s\n"+
			"  - Extent:    %s\n\n"+
			"Applicable Limits for %s x %s:\n"+
			"  - Monetary:  $%d\n"+
			"  - Time-Off:  %d hours\n\n"+
			"Award Amounts:\n"+
			"  - Monetary:  $%d (%.2f%% of $%d monetary limit)\n"+
			"  - Time-Off:  %d hours (%.2f%% of %d hour time-off limit)\n\n"+
			"Total: %.2f%% exceeds the 100%% limit",
		capValue, capExtent,
		capValue, capExtent,
		ev.MonetaryLimit,
		ev.TimeOffLimit,
		monetaryAmount, ev.MonetaryPercentage, ev.MonetaryLimit,
		timeOffAmount, ev.TimeOffPercentage, ev.TimeOffLimit,
		ev.CombinedPercentage,
	)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
