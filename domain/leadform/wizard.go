package leadform

import (
	"context"
	"encoding/json"
	"fmt"
)

type Step int

const (
	StepAboutYou Step = iota + 1
	StepBusiness
	StepFinish
	// StepSubmitted is terminal; only a successful submit reaches it.
	StepSubmitted
)

const (
	FirstStep = StepAboutYou
	LastStep  = StepFinish
)

func (s Step) valid() bool {
	return s >= StepAboutYou && s <= StepSubmitted
}

type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// Wizard tracks the current step and accumulated draft of one waitlist
// application. It is not safe for concurrent use; each visitor owns one.
type Wizard struct {
	step      Step
	draft     Draft
	status    Status
	lastError string
}

func NewWizard() *Wizard {
	return &Wizard{step: FirstStep, status: StatusIdle}
}

func (w *Wizard) Step() Step {
	return w.step
}

func (w *Wizard) Draft() Draft {
	return w.draft.clone()
}

func (w *Wizard) Status() Status {
	return w.status
}

// LastError is the message of the most recent failed submit, if any.
func (w *Wizard) LastError() string {
	return w.lastError
}

func (w *Wizard) Submitted() bool {
	return w.step == StepSubmitted
}

// UpdateFormData shallow-merges update into the draft. It performs no
// validation and never fails.
func (w *Wizard) UpdateFormData(update DraftUpdate) {
	w.draft = w.draft.Merge(update)
}

// NextStep moves forward one step without checking required fields.
func (w *Wizard) NextStep() error {
	if w.Submitted() {
		return ErrWizardClosed
	}
	if w.step >= LastStep {
		return ErrNoNextStep
	}

	w.step++
	return nil
}

func (w *Wizard) PrevStep() error {
	if w.Submitted() {
		return ErrWizardClosed
	}
	if w.step <= FirstStep {
		return ErrNoPreviousStep
	}

	w.step--
	return nil
}

// MissingFields lists the required fields of the current step that are
// still empty.
func (w *Wizard) MissingFields() []string {
	return requiredFieldsMissing(w.step, w.draft)
}

func (w *Wizard) CanAdvance() bool {
	return w.step < LastStep && len(w.MissingFields()) == 0
}

// Advance is NextStep gated on the current step's required fields.
func (w *Wizard) Advance() error {
	if missing := w.MissingFields(); len(missing) > 0 {
		return &StepIncompleteError{Step: w.step, Fields: missing}
	}
	return w.NextStep()
}

// Submit sends the draft through submitter. Only a successful send moves the
// wizard to StepSubmitted and discards the draft; a failure leaves it on the
// final step with StatusError so the visitor can retry.
func (w *Wizard) Submit(ctx context.Context, submitter Submitter) error {
	if w.Submitted() {
		return ErrWizardClosed
	}
	if w.step != LastStep {
		return ErrNotOnFinalStep
	}

	for _, step := range []Step{StepAboutYou, StepBusiness} {
		if missing := requiredFieldsMissing(step, w.draft); len(missing) > 0 {
			return &StepIncompleteError{Step: step, Fields: missing}
		}
	}

	w.status = StatusLoading
	w.lastError = ""

	if err := submitter.Submit(ctx, w.draft.Payload()); err != nil {
		w.status = StatusError
		w.lastError = err.Error()
		return err
	}

	w.status = StatusSuccess
	w.step = StepSubmitted
	w.draft = Draft{}

	return nil
}

type wizardSnapshot struct {
	Step      Step   `json:"step"`
	Draft     Draft  `json:"draft"`
	Status    Status `json:"status"`
	LastError string `json:"lastError,omitempty"`
}

func (w *Wizard) MarshalJSON() ([]byte, error) {
	return json.Marshal(wizardSnapshot{
		Step:      w.step,
		Draft:     w.draft,
		Status:    w.status,
		LastError: w.lastError,
	})
}

func (w *Wizard) UnmarshalJSON(data []byte) error {
	var snapshot wizardSnapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidWizardState, err)
	}

	if !snapshot.Step.valid() {
		return fmt.Errorf("%w: step %d out of range", ErrInvalidWizardState, snapshot.Step)
	}

	switch snapshot.Status {
	case StatusIdle, StatusLoading, StatusSuccess, StatusError:
	case "":
		snapshot.Status = StatusIdle
	default:
		return fmt.Errorf("%w: unknown status %q", ErrInvalidWizardState, snapshot.Status)
	}

	w.step = snapshot.Step
	w.draft = snapshot.Draft
	w.status = snapshot.Status
	w.lastError = snapshot.LastError

	return nil
}
