package award

import (
	"math"
	"time"

	"github.com/hrops/award-intake/internal/format"
	"github.com/hrops/award-intake/internal/org"
)

// checkboxOn is the literal value a checked checkbox field carries in the
// extracted field map.
const checkboxOn = "on"

// requiredFields must be populated before a record can proceed. Value and
// extent are included: a checkbox group with zero or multiple selections
// resolves to unset and fails here.
var requiredFields = []string{
	FieldEmployeeName,
	FieldNominatorName,
	FieldSupervisorName,
	FieldApproverName,
	FieldCertifierName,
	FieldReviewerName,
	FieldJustification,
	FieldValue,
	FieldExtent,
}

// nameFields are reformatted to "Last, First".
var nameFields = []string{
	FieldEmployeeName,
	FieldNominatorName,
	FieldSupervisorName,
	FieldApproverName,
	FieldCertifierName,
	FieldAdministratorName,
	FieldReviewerName,
}

// orgFields participate in organization resolution and the funding-org
// vote.
var orgFields = []string{
	FieldEmployeeOrg,
	FieldNominatorOrg,
	FieldSupervisorOrg,
	FieldCertifierOrg,
	FieldApproverOrg,
}

// Draft is a populated but unvalidated record: raw cleaned values keyed by
// canonical field name, plus the checkbox tier selections.
type Draft struct {
	raw    map[string]string
	value  string
	extent string
}

// Get returns the raw value for a canonical field and whether it is
// present.
func (d *Draft) Get(field string) (string, bool) {
	v, ok := d.raw[field]
	return v, ok
}

// MissingRequired lists the required fields the draft does not carry, in
// declaration order.
func (d *Draft) MissingRequired() []string {
	var missing []string
	for _, field := range requiredFields {
		switch field {
		case FieldValue:
			if d.value == "" {
				missing = append(missing, field)
			}
		case FieldExtent:
			if d.extent == "" {
				missing = append(missing, field)
			}
		default:
			if _, ok := d.raw[field]; !ok {
				missing = append(missing, field)
			}
		}
	}
	return missing
}

// Builder turns extracted field maps into finished award records. The
// pipeline order is fixed: populate, validate required fields, resolve
// organizations, format, classify amounts, validate amounts against the
// limit matrices. Each stage is a hard gate.
type Builder struct {
	aliases   AliasTable
	names     *format.NameFormatter
	resolver  *org.Resolver
	evaluator *Evaluator
	category  string
	now       func() time.Time
}

// NewBuilder wires a builder from its collaborators. Nothing here is
// global state; tables and criteria arrive by reference from startup
// configuration.
func NewBuilder(aliases AliasTable, names *format.NameFormatter, resolver *org.Resolver, evaluator *Evaluator, category string) *Builder {
	return &Builder{
		aliases:   aliases,
		names:     names,
		resolver:  resolver,
		evaluator: evaluator,
		category:  category,
		now:       time.Now,
	}
}

// Populate fills a draft from the extracted field map using the variant's
// alias table: for each canonical field the first alias carrying a
// non-empty value wins. Checkbox groups select a tier only when exactly
// one box is on.
func (b *Builder) Populate(fields map[string]string) (*Draft, error) {
	if len(fields) == 0 {
		return nil, NewRecordError(ErrorTypeExtraction, "no data extracted from the PDF")
	}

	d := &Draft{raw: make(map[string]string)}
	for canonical, aliases := range b.aliases.Fields {
		for _, alias := range aliases {
			if cleaned, ok := format.Clean(fields[alias]); ok {
				d.raw[canonical] = cleaned
				break
			}
		}
	}
	d.value = selectTier(fields, b.aliases.ValueBoxes)
	d.extent = selectTier(fields, b.aliases.ExtentBoxes)
	return d, nil
}

// selectTier returns the tier whose checkbox is on, or "" when zero or
// multiple boxes are marked.
func selectTier(fields map[string]string, boxes map[string]string) string {
	var selected string
	for tier, key := range boxes {
		raw, ok := format.Clean(fields[key])
		if !ok || raw != checkboxOn {
			continue
		}
		if selected != "" {
			return ""
		}
		selected = tier
	}
	return selected
}

// ValidateRequired gates the draft on its required fields. The returned
// error is the recoverable kind: the operator may elect to continue.
func (b *Builder) ValidateRequired(d *Draft) error {
	if missing := d.MissingRequired(); len(missing) > 0 {
		return NewMissingFieldsError(missing)
	}
	return nil
}

// Finish runs the remaining stages and produces the record. The log ID is
// issued by the caller after this succeeds, immediately before persistence.
func (b *Builder) Finish(d *Draft) (*Record, error) {
	rec := &Record{
		Category:     b.category,
		DateReceived: b.now(),
	}

	b.formatNames(d, rec)
	if err := b.resolveOrgs(d, rec); err != nil {
		return nil, err
	}
	b.formatValues(d, rec)
	if err := b.classifyAmounts(d, rec); err != nil {
		return nil, err
	}
	if err := b.validateAmounts(d, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

func (b *Builder) formatNames(d *Draft, rec *Record) {
	targets := map[string]**string{
		FieldEmployeeName:      &rec.EmployeeName,
		FieldNominatorName:     &rec.NominatorName,
		FieldSupervisorName:    &rec.SupervisorName,
		FieldApproverName:      &rec.ApproverName,
		FieldCertifierName:     &rec.CertifierName,
		FieldAdministratorName: &rec.AdministratorName,
		FieldReviewerName:      &rec.ReviewerName,
	}
	for _, field := range nameFields {
		raw, ok := d.raw[field]
		if !ok {
			continue
		}
		formatted := b.names.FormatLastFirst(raw)
		*targets[field] = &formatted
	}
}

// resolveOrgs resolves every org-bearing field, determines the funding
// organization by most-frequent vote, and buckets management-bureau
// records into their mb division.
func (b *Builder) resolveOrgs(d *Draft, rec *Record) error {
	targets := map[string]**string{
		FieldEmployeeOrg:   &rec.EmployeeOrg,
		FieldNominatorOrg:  &rec.NominatorOrg,
		FieldSupervisorOrg: &rec.SupervisorOrg,
		FieldCertifierOrg:  &rec.CertifierOrg,
		FieldApproverOrg:   &rec.ApproverOrg,
	}

	var rawValues []string
	for _, field := range orgFields {
		raw, ok := d.raw[field]
		if !ok {
			continue
		}
		rawValues = append(rawValues, raw)

		res := b.resolver.Resolve(raw)
		switch {
		case res.Matched:
			div := res.Division
			*targets[field] = &div
		case res.Org != "":
			code := res.Org
			*targets[field] = &code
		}
	}

	funding, err := b.resolver.FundingOrg(rawValues)
	if err != nil {
		return WrapRecordError(ErrorTypeOrgResolution, "funding organization resolution failed", err)
	}
	rec.FundingOrg = funding

	if div, ok := b.resolver.MBDivision(funding, rawValues); ok {
		rec.MBDivision = &div
	}
	return nil
}

func (b *Builder) formatValues(d *Draft, rec *Record) {
	if raw, ok := d.raw[FieldJustification]; ok {
		if j, ok := format.Justification(raw); ok {
			rec.Justification = &j
		}
	}
	if raw, ok := d.raw[FieldEmployeePayPlan]; ok {
		if p, ok := format.PayPlan(raw); ok {
			rec.EmployeePayPlan = &p
		}
	}
	if d.value != "" {
		v := d.value
		rec.Value = &v
	}
	if d.extent != "" {
		e := d.extent
		rec.Extent = &e
	}
}

// classifyAmounts selects the amount sub-group: when any special-act
// amount is present that group supplies the final amounts, otherwise the
// on-the-spot group does.
func (b *Builder) classifyAmounts(d *Draft, rec *Record) error {
	_, sasMonetary := d.raw[FieldSASMonetaryAmount]
	_, sasTimeOff := d.raw[FieldSASTimeOffAmount]

	var monetaryField, timeOffField string
	if sasMonetary || sasTimeOff {
		rec.Type = "SAS"
		monetaryField, timeOffField = FieldSASMonetaryAmount, FieldSASTimeOffAmount
	} else {
		rec.Type = "OTS"
		monetaryField, timeOffField = FieldOTSMonetaryAmount, FieldOTSTimeOffAmount
	}

	monetary, err := b.parseAmount(d, monetaryField)
	if err != nil {
		return err
	}
	timeOff, err := b.parseAmount(d, timeOffField)
	if err != nil {
		return err
	}

	if monetary != math.Trunc(monetary) || timeOff != math.Trunc(timeOff) {
		return NewRecordError(ErrorTypeFormat, "award amounts must be whole numbers")
	}
	rec.MonetaryAmount = int(monetary)
	rec.TimeOffAmount = int(timeOff)
	return nil
}

// parseAmount parses one amount field; an absent field is zero, an
// unparseable one is a loud failure.
func (b *Builder) parseAmount(d *Draft, field string) (float64, error) {
	raw, ok := d.raw[field]
	if !ok {
		return 0, nil
	}
	n, err := format.Numerical(raw)
	if err != nil {
		return 0, WrapRecordError(ErrorTypeFormat, "failed to parse "+field, err)
	}
	return n, nil
}

// validateAmounts enforces the amount invariants and the limit matrices.
// Both amounts zero is always a failure. Limit evaluation is skipped only
// when the operator overrode a record with neither tier selected; a single
// missing or bogus tier still fails inside Evaluate.
func (b *Builder) validateAmounts(d *Draft, rec *Record) error {
	if rec.MonetaryAmount == 0 && rec.TimeOffAmount == 0 {
		return NewRecordError(ErrorTypeFormat, "both monetary and time-off amounts are zero")
	}
	if rec.MonetaryAmount < 0 || rec.TimeOffAmount < 0 {
		return NewRecordError(ErrorTypeFormat, "award amounts must be positive")
	}
	if d.value == "" && d.extent == "" {
		return nil
	}
	_, err := b.evaluator.Evaluate(d.value, d.extent, rec.MonetaryAmount, rec.TimeOffAmount)
	return err
}
