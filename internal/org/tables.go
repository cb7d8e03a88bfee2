// Package org resolves free-text organization strings to canonical
// organization and division codes.
package org

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Entry maps a canonical organization code to its divisions. Division
// order is significant: later entries are more specific and win when
// several divisions of the same organization match.
type Entry struct {
	Code      string   `yaml:"code"`
	Divisions []string `yaml:"divisions"`
}

// Tables holds the static organization data the resolver matches against.
// The defaults cover the production org chart; deployments with a
// different chart supply their own tables file.
type Tables struct {
	Organizations []Entry `yaml:"organizations"`
	MgmtBureaus   []Entry `yaml:"mgmt_bureaus"`
	MBMarker      string  `yaml:"mb_marker"`
}

// DefaultTables returns the built-in organization chart.
func DefaultTables() Tables {
	return Tables{
		MBMarker: "MB",
		Organizations: []Entry{
			{
				Code: "NA-10",
				Divisions: []string{
					"Office of Operations",
					"Office of Operations Support",
				},
			},
			{
				Code: "NA-20",
				Divisions: []string{
					"Program Integration",
					"Program Integration and Analysis",
				},
			},
			{
				Code: "NA-50",
				Divisions: []string{
					"Infrastructure",
					"Infrastructure Planning",
					"Infrastructure Modernization",
				},
			},
			{
				Code: "MB-1",
				Divisions: []string{
					"Human Resources",
					"Human Resources Operations",
				},
			},
			{
				Code: "MB-3",
				Divisions: []string{
					"Financial Management",
					"Financial Management Systems",
				},
			},
		},
		MgmtBureaus: []Entry{
			{
				Code: "MB-1",
				Divisions: []string{
					"Human Resources",
					"Human Resources Operations",
				},
			},
			{
				Code: "MB-3",
				Divisions: []string{
					"Financial Management",
					"Financial Management Systems",
				},
			},
		},
	}
}

// LoadTables reads an organization chart from a YAML file.
func LoadTables(path string) (Tables, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Tables{}, fmt.Errorf("failed to read org tables: %w", err)
	}
	var t Tables
	if err := yaml.Unmarshal(data, &t); err != nil {
		return Tables{}, fmt.Errorf("failed to parse org tables: %w", err)
	}
	if len(t.Organizations) == 0 {
		return Tables{}, fmt.Errorf("org tables %s define no organizations", path)
	}
	if t.MBMarker == "" {
		t.MBMarker = DefaultTables().MBMarker
	}
	return t, nil
}
