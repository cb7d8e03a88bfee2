package award

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Variant identifies a known form layout. The scanned forms come in three
// flavors with different field names for the same data.
type Variant string

const (
	VariantStandard       Variant = "standard"
	VariantNonstandard    Variant = "nonstandard"
	VariantExternalAgency Variant = "external-agency"
)

// AliasTable maps canonical field names to the source-form keys that may
// carry them, plus the checkbox keys for the value and extent tiers.
// Aliases are tried in order; the first non-empty source value wins.
// These are data, not logic: one-off production layouts get their own
// tables without code changes.
type AliasTable struct {
	Fields      map[string][]string `yaml:"fields"`
	ValueBoxes  map[string]string   `yaml:"value_boxes"`
	ExtentBoxes map[string]string   `yaml:"extent_boxes"`
}

// DefaultAliases returns the dispatch table of known form variants.
func DefaultAliases() map[Variant]AliasTable {
	standardValueBoxes := map[string]string{
		"low":    "value_low",
		"medium": "value_medium",
		"high":   "value_high",
	}
	standardExtentBoxes := map[string]string{
		"limited":     "extent_limited",
		"general":     "extent_general",
		"exceptional": "extent_exceptional",
	}

	return map[Variant]AliasTable{
		VariantStandard: {
			Fields: map[string][]string{
				FieldEmployeeName:      {"employee_name"},
				FieldEmployeeOrg:       {"organization"},
				FieldEmployeePayPlan:   {"pay_plan_gradestep_1"},
				FieldSASMonetaryAmount: {"undefined"},
				FieldSASTimeOffAmount:  {"hours_2"},
				FieldOTSMonetaryAmount: {"on_the_spot_award"},
				FieldOTSTimeOffAmount:  {"hours"},
				FieldNominatorName:     {"please_print"},
				FieldNominatorOrg:      {"org"},
				FieldCertifierName:     {"special_act_award_funding_string_2"},
				FieldCertifierOrg:      {"org_2"},
				FieldSupervisorName:    {"please_print_2"},
				FieldSupervisorOrg:     {"org_3"},
				FieldApproverName:      {"please_print_3"},
				FieldApproverOrg:       {"org_4"},
				FieldAdministratorName: {"please_print_4"},
				FieldReviewerName:      {"please_print_5"},
				FieldJustification:     {"extent_of_application"},
			},
			ValueBoxes:  standardValueBoxes,
			ExtentBoxes: standardExtentBoxes,
		},
		VariantNonstandard: {
			Fields: map[string][]string{
				FieldEmployeeName:      {"nominee_name", "employee_name"},
				FieldEmployeeOrg:       {"nominee_organization", "organization"},
				FieldEmployeePayPlan:   {"pay_plan_grade_step", "pay_plan_gradestep_1"},
				FieldSASMonetaryAmount: {"special_act_amount"},
				FieldSASTimeOffAmount:  {"special_act_hours"},
				FieldOTSMonetaryAmount: {"on_the_spot_amount", "on_the_spot_award"},
				FieldOTSTimeOffAmount:  {"on_the_spot_hours"},
				FieldNominatorName:     {"nominator", "please_print"},
				FieldNominatorOrg:      {"nominator_org", "org"},
				FieldCertifierName:     {"certifying_official"},
				FieldCertifierOrg:      {"certifying_org", "org_2"},
				FieldSupervisorName:    {"first_line_supervisor", "please_print_2"},
				FieldSupervisorOrg:     {"supervisor_org", "org_3"},
				FieldApproverName:      {"approving_official", "please_print_3"},
				FieldApproverOrg:       {"approving_org", "org_4"},
				FieldAdministratorName: {"awards_administrator", "please_print_4"},
				FieldReviewerName:      {"reviewing_official", "please_print_5"},
				FieldJustification:     {"justification", "extent_of_application"},
			},
			ValueBoxes:  standardValueBoxes,
			ExtentBoxes: standardExtentBoxes,
		},
		VariantExternalAgency: {
			Fields: map[string][]string{
				FieldEmployeeName:      {"awardee", "employee_name"},
				FieldEmployeeOrg:       {"awardee_agency"},
				FieldEmployeePayPlan:   {"grade"},
				FieldSASMonetaryAmount: {"award_amount"},
				FieldSASTimeOffAmount:  {"award_hours"},
				FieldOTSMonetaryAmount: {},
				FieldOTSTimeOffAmount:  {},
				FieldNominatorName:     {"requesting_official"},
				FieldNominatorOrg:      {"requesting_agency"},
				FieldCertifierName:     {"certifying_official"},
				FieldCertifierOrg:      {"certifying_agency"},
				FieldSupervisorName:    {"supervisor"},
				FieldSupervisorOrg:     {"supervisor_agency"},
				FieldApproverName:      {"approving_official"},
				FieldApproverOrg:       {"approving_agency"},
				FieldAdministratorName: {"administrator"},
				FieldReviewerName:      {"reviewer"},
				FieldJustification:     {"justification"},
			},
			ValueBoxes:  standardValueBoxes,
			ExtentBoxes: standardExtentBoxes,
		},
	}
}

// AliasesFor resolves a variant through the dispatch table.
func AliasesFor(tables map[Variant]AliasTable, v Variant) (AliasTable, error) {
	table, ok := tables[v]
	if !ok {
		return AliasTable{}, fmt.Errorf("unknown form variant %q", v)
	}
	return table, nil
}

// LoadAliases reads alias-table overrides from a YAML file. Variants not
// present in the file keep their defaults.
func LoadAliases(path string) (map[Variant]AliasTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read alias tables: %w", err)
	}
	wrapper := struct {
		Aliases map[Variant]AliasTable `yaml:"aliases"`
	}{}
	if err := yaml.Unmarshal(data, &wrapper); err != nil {
		return nil, fmt.Errorf("failed to parse alias tables: %w", err)
	}
	tables := DefaultAliases()
	for v, table := range wrapper.Aliases {
		tables[v] = table
	}
	return tables, nil
}
