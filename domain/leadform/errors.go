package leadform

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNoNextStep         = errors.New("wizard is already on the final step")
	ErrNoPreviousStep     = errors.New("wizard is already on the first step")
	ErrWizardClosed       = errors.New("wizard has already been submitted")
	ErrNotOnFinalStep     = errors.New("wizard can only be submitted from the final step")
	ErrStepIncomplete     = errors.New("required fields are missing")
	ErrSessionNotFound    = errors.New("wizard session not found")
	ErrInvalidWizardState = errors.New("invalid wizard state")
)

// StepIncompleteError names the fields that block a step transition.
type StepIncompleteError struct {
	Step   Step
	Fields []string
}

func (e *StepIncompleteError) Error() string {
	return fmt.Sprintf("step %d: %s: %s", e.Step, ErrStepIncomplete.Error(), strings.Join(e.Fields, ", "))
}

func (e *StepIncompleteError) Unwrap() error {
	return ErrStepIncomplete
}
