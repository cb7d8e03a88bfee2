package award

import (
	"os"

	"github.com/hrops/award-intake/internal/format"
	"github.com/hrops/award-intake/internal/org"
)

func writeFile(path, content string) error {
	return os.WriteFile(path, []byte(content), 0o600)
}

func testOrgTables() org.Tables {
	return org.Tables{
		MBMarker: "MB",
		Organizations: []org.Entry{
			{Code: "NA-20", Divisions: []string{"Program Integration"}},
			{Code: "NA-50", Divisions: []string{"Infrastructure"}},
			{Code: "MB-1", Divisions: []string{"Human Resources"}},
		},
		MgmtBureaus: []org.Entry{
			{Code: "MB-1", Divisions: []string{"Human Resources"}},
		},
	}
}

func testBuilder() *Builder {
	aliases := DefaultAliases()[VariantStandard]
	return NewBuilder(
		aliases,
		format.NewNameFormatter(),
		org.NewResolver(testOrgTables()),
		NewEvaluator(DefaultCriteria()),
		"IND",
	)
}

// standardFields is a complete, valid standard-variant field map.
func standardFields() map[string]string {
	return map[string]string{
		"employee_name":                      "JANE SMITH",
		"organization":                       "NA-20 Program Integration",
		"pay_plan_gradestep_1":               "GS 13 step 4",
		"undefined":                          "$2,000",
		"hours_2":                            "8",
		"please_print":                       "John Doe",
		"org":                                "NA-20",
		"special_act_award_funding_string_2": "Alice Brown",
		"org_2":                              "Program Integration",
		"please_print_2":                     "Maria de Silva",
		"org_3":                              "NA-50",
		"please_print_3":                     "Sean McCall",
		"org_4":                              "NA-20",
		"please_print_4":                     "Pat Jones",
		"please_print_5":                     "Chris Lee",
		"extent_of_application":              `Led the "alpha" recovery effort.`,
		"value_high":                         "on",
		"extent_general":                     "on",
	}
}
