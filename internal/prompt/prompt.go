// Package prompt asks the operator what to do with recoverable failures.
package prompt

import (
	"fmt"
	"strings"
)

// Decider resolves a recoverable failure into continue-or-skip. The batch
// runner uses an interactive decider on a terminal and an always-skip
// decider otherwise.
type Decider interface {
	// ContinueDespite reports whether processing of the current record
	// should continue despite the described problem.
	ContinueDespite(fileName, problem string, missingFields []string) (bool, error)
}

// AlwaysSkip never continues past a recoverable failure. It is the
// decider for unattended batch runs.
type AlwaysSkip struct{}

// ContinueDespite implements Decider.
func (AlwaysSkip) ContinueDespite(string, string, []string) (bool, error) {
	return false, nil
}

// describe builds the prompt description shown to the operator.
func describe(problem string, missingFields []string) string {
	if len(missingFields) == 0 {
		return problem
	}
	return fmt.Sprintf("%s\nMissing: %s", problem, strings.Join(missingFields, ", "))
}
