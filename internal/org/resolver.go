package org

import (
	"fmt"
	"strings"

	"github.com/hrops/award-intake/internal/format"
)

// Resolution is the outcome of matching one raw organization string.
// Division carries the raw input when no division matched so unresolved
// text survives for audit instead of being discarded.
type Resolution struct {
	Org      string // canonical organization code, "" when unmatched
	Division string // canonical division, or the raw input as fallback
	Matched  bool   // true when Division is canonical
}

// Resolver maps noisy organization text onto the static org chart.
type Resolver struct {
	tables Tables
}

// NewResolver builds a resolver over the given tables.
func NewResolver(tables Tables) *Resolver {
	return &Resolver{tables: tables}
}

// keysMatch reports a substring match between two normalized keys in
// either direction, tolerating both abbreviated and verbose input.
func keysMatch(candidate, input string) bool {
	ck, ok := format.OrgDivKey(candidate)
	if !ok {
		return false
	}
	ik, ok := format.OrgDivKey(input)
	if !ok {
		return false
	}
	return strings.Contains(ik, ck) || strings.Contains(ck, ik)
}

// resolveIn matches raw against a set of entries. Divisions are scanned in
// reverse declaration order so longer, more specific names declared later
// win over shorter prefixes. An organization-level match alone is kept as
// a fallback.
func resolveIn(entries []Entry, raw string) Resolution {
	res := Resolution{Division: raw}
	if _, ok := format.OrgDivKey(raw); !ok {
		return Resolution{}
	}

	for _, entry := range entries {
		for i := len(entry.Divisions) - 1; i >= 0; i-- {
			if keysMatch(entry.Divisions[i], raw) {
				return Resolution{Org: entry.Code, Division: entry.Divisions[i], Matched: true}
			}
		}
		if res.Org == "" && keysMatch(entry.Code, raw) {
			res.Org = entry.Code
		}
	}
	return res
}

// Resolve maps raw organization text to a (organization, division) pair
// against the main org chart.
func (r *Resolver) Resolve(raw string) Resolution {
	return resolveIn(r.tables.Organizations, raw)
}

// FindMgmtDivision matches raw against the management-bureau tables and
// returns only the top-level bureau code.
func (r *Resolver) FindMgmtDivision(raw string) (string, bool) {
	if _, ok := format.OrgDivKey(raw); !ok {
		return "", false
	}
	for _, entry := range r.tables.MgmtBureaus {
		if keysMatch(entry.Code, raw) {
			return entry.Code, true
		}
		for i := len(entry.Divisions) - 1; i >= 0; i-- {
			if keysMatch(entry.Divisions[i], raw) {
				return entry.Code, true
			}
		}
	}
	return "", false
}

// mostCommon returns the most frequent value with ties broken by
// first-encountered order.
func mostCommon(values []string) (string, bool) {
	counts := make(map[string]int, len(values))
	var order []string
	for _, v := range values {
		if v == "" {
			continue
		}
		if counts[v] == 0 {
			order = append(order, v)
		}
		counts[v]++
	}
	best, bestCount := "", 0
	for _, v := range order {
		if counts[v] > bestCount {
			best, bestCount = v, counts[v]
		}
	}
	return best, best != ""
}

// FundingOrg determines the funding organization: the most frequent
// canonical organization code across the org-bearing fields. No match on
// any field is a hard failure; a record cannot be funded by an unknown
// organization.
func (r *Resolver) FundingOrg(rawFields []string) (string, error) {
	var codes []string
	for _, raw := range rawFields {
		if res := r.Resolve(raw); res.Org != "" {
			codes = append(codes, res.Org)
		}
	}
	funding, ok := mostCommon(codes)
	if !ok {
		return "", fmt.Errorf("no funding organization could be determined from %d organization fields", len(rawFields))
	}
	return funding, nil
}

// MBDivision resolves the management-bureau division for records whose
// funding org carries the management-bureau marker: the most frequent
// resolved mb division across the same field set.
func (r *Resolver) MBDivision(fundingOrg string, rawFields []string) (string, bool) {
	if !strings.Contains(fundingOrg, r.tables.MBMarker) {
		return "", false
	}
	var divisions []string
	for _, raw := range rawFields {
		if res := resolveIn(r.tables.MgmtBureaus, raw); res.Matched {
			divisions = append(divisions, res.Division)
		}
	}
	return mostCommon(divisions)
}
