package prompt

import (
	"fmt"

	"github.com/charmbracelet/huh"
)

// Interactive asks the operator on the terminal whether to continue past
// a recoverable failure.
type Interactive struct{}

// ContinueDespite implements Decider with a terminal confirm.
func (Interactive) ContinueDespite(fileName, problem string, missingFields []string) (bool, error) {
	var proceed bool
	confirm := huh.NewConfirm().
		Title(fmt.Sprintf("Continue processing %s?", fileName)).
		Description(describe(problem, missingFields)).
		Affirmative("Continue anyway").
		Negative("Skip this record").
		Value(&proceed)

	if err := confirm.Run(); err != nil {
		return false, fmt.Errorf("operator prompt failed: %w", err)
	}
	return proceed, nil
}
