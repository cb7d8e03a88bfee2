package award

import "time"

// Canonical field names. These are the record attribute names, the alias
// table keys, and the persisted JSON keys.
const (
	FieldEmployeeName       = "employee_name"
	FieldNominatorName      = "nominator_name"
	FieldSupervisorName     = "employee_supervisor_name"
	FieldApproverName       = "approver_name"
	FieldCertifierName      = "certifier_name"
	FieldAdministratorName  = "administrator_name"
	FieldReviewerName       = "reviewer_name"
	FieldEmployeeOrg        = "employee_org"
	FieldNominatorOrg       = "nominator_org"
	FieldSupervisorOrg      = "employee_supervisor_org"
	FieldCertifierOrg       = "certifier_org"
	FieldApproverOrg        = "approver_org"
	FieldEmployeePayPlan    = "employee_pay_plan"
	FieldJustification      = "justification"
	FieldSASMonetaryAmount  = "sas_monetary_amount"
	FieldSASTimeOffAmount   = "sas_time_off_amount"
	FieldOTSMonetaryAmount  = "ots_monetary_amount"
	FieldOTSTimeOffAmount   = "ots_time_off_amount"
	FieldValue              = "value"
	FieldExtent             = "extent"
)

// Record is the canonical output entity for one processed nomination.
// Optional attributes are pointers; nil means the source field was absent
// or unresolvable. A record is immutable once persisted.
type Record struct {
	LogID string `json:"log_id"`

	EmployeeName       *string `json:"employee_name"`
	NominatorName      *string `json:"nominator_name"`
	SupervisorName     *string `json:"employee_supervisor_name"`
	ApproverName       *string `json:"approver_name"`
	CertifierName      *string `json:"certifier_name"`
	AdministratorName  *string `json:"administrator_name"`
	ReviewerName       *string `json:"reviewer_name"`

	EmployeeOrg   *string `json:"employee_org"`
	NominatorOrg  *string `json:"nominator_org"`
	SupervisorOrg *string `json:"employee_supervisor_org"`
	CertifierOrg  *string `json:"certifier_org"`
	ApproverOrg   *string `json:"approver_org"`

	FundingOrg string  `json:"funding_org"`
	MBDivision *string `json:"mb_division,omitempty"`

	Value  *string `json:"value"`
	Extent *string `json:"extent"`

	MonetaryAmount int    `json:"monetary_amount"`
	TimeOffAmount  int    `json:"time_off_amount"`
	Type           string `json:"type"`

	Justification   *string `json:"justification"`
	EmployeePayPlan *string `json:"employee_pay_plan"`

	Category     string    `json:"category"`
	DateReceived time.Time `json:"date_received"`
}
