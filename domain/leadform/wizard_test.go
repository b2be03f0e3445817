package leadform

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func completeDraft() DraftUpdate {
	return DraftUpdate{
		Name:          ptr("Ada"),
		AgeGroup:      ptr("26-35"),
		Profession:    ptr("accountant"),
		BusinessName:  ptr("Ledgerly"),
		EmployeeRange: ptr("small"),
		Email:         ptr("ada@x.com"),
	}
}

func TestWizard_NextNextPrevYieldsStepTwo(t *testing.T) {
	drafts := map[string]DraftUpdate{
		"empty":    {},
		"partial":  {Name: ptr("Ada")},
		"complete": completeDraft(),
	}

	for name, update := range drafts {
		t.Run(name, func(t *testing.T) {
			w := NewWizard()
			w.UpdateFormData(update)

			require.NoError(t, w.NextStep())
			require.NoError(t, w.NextStep())
			require.NoError(t, w.PrevStep())

			assert.Equal(t, StepBusiness, w.Step())
		})
	}
}

func TestWizard_BoundsAreGuarded(t *testing.T) {
	w := NewWizard()

	assert.ErrorIs(t, w.PrevStep(), ErrNoPreviousStep)
	assert.Equal(t, StepAboutYou, w.Step())

	require.NoError(t, w.NextStep())
	require.NoError(t, w.NextStep())

	assert.ErrorIs(t, w.NextStep(), ErrNoNextStep)
	assert.Equal(t, StepFinish, w.Step())
}

func TestWizard_AdvanceRequiresStepFields(t *testing.T) {
	w := NewWizard()
	w.UpdateFormData(DraftUpdate{Name: ptr("Ada")})

	assert.False(t, w.CanAdvance())
	err := w.Advance()

	var incomplete *StepIncompleteError
	require.ErrorAs(t, err, &incomplete)
	assert.ErrorIs(t, err, ErrStepIncomplete)
	assert.Equal(t, StepAboutYou, incomplete.Step)
	assert.ElementsMatch(t, []string{"ageGroup", "profession"}, incomplete.Fields)
	assert.Equal(t, StepAboutYou, w.Step())

	w.UpdateFormData(DraftUpdate{AgeGroup: ptr("18-25"), Profession: ptr("tech")})
	assert.True(t, w.CanAdvance())
	require.NoError(t, w.Advance())
	assert.Equal(t, StepBusiness, w.Step())

	assert.ElementsMatch(t, []string{"businessName", "employeeRange"}, w.MissingFields())
	w.UpdateFormData(DraftUpdate{BusinessName: ptr("Ledgerly"), EmployeeRange: ptr("solo")})
	require.NoError(t, w.Advance())
	assert.Equal(t, StepFinish, w.Step())

	assert.False(t, w.CanAdvance())
	assert.ErrorIs(t, w.Advance(), ErrNoNextStep)
}

func TestWizard_UpdateFormDataIsShallowMerge(t *testing.T) {
	w := NewWizard()
	w.UpdateFormData(completeDraft())
	w.UpdateFormData(DraftUpdate{Phone: ptr("0800")})

	draft := w.Draft()
	assert.Equal(t, "Ada", draft.Name)
	assert.Equal(t, "Ledgerly", draft.BusinessName)
	assert.Equal(t, "0800", draft.Phone)
}

func toFinish(t *testing.T, w *Wizard) {
	t.Helper()
	require.NoError(t, w.NextStep())
	require.NoError(t, w.NextStep())
}

func TestWizard_SubmitSuccess(t *testing.T) {
	w := NewWizard()
	w.UpdateFormData(completeDraft())
	toFinish(t, w)

	var sent map[string]any
	submitter := SubmitterFunc(func(_ context.Context, payload map[string]any) error {
		sent = payload
		return nil
	})

	require.NoError(t, w.Submit(context.Background(), submitter))

	assert.True(t, w.Submitted())
	assert.Equal(t, StepSubmitted, w.Step())
	assert.Equal(t, StatusSuccess, w.Status())
	assert.Equal(t, Draft{}, w.Draft(), "draft is discarded after submit")
	assert.Equal(t, "waitlist", sent["type"])
	assert.Equal(t, "accountant", sent["profession"])

	assert.ErrorIs(t, w.Submit(context.Background(), submitter), ErrWizardClosed)
	assert.ErrorIs(t, w.PrevStep(), ErrWizardClosed)
	assert.ErrorIs(t, w.NextStep(), ErrWizardClosed)
}

func TestWizard_SubmitFailureStaysOnFinalStep(t *testing.T) {
	w := NewWizard()
	w.UpdateFormData(completeDraft())
	toFinish(t, w)

	failing := SubmitterFunc(func(context.Context, map[string]any) error {
		return errors.New("network down")
	})

	err := w.Submit(context.Background(), failing)

	require.Error(t, err)
	assert.False(t, w.Submitted())
	assert.Equal(t, StepFinish, w.Step())
	assert.Equal(t, StatusError, w.Status())
	assert.Equal(t, "network down", w.LastError())
	assert.Equal(t, "Ada", w.Draft().Name, "draft is kept for a retry")

	calls := 0
	ok := SubmitterFunc(func(context.Context, map[string]any) error {
		calls++
		return nil
	})
	require.NoError(t, w.Submit(context.Background(), ok))
	assert.Equal(t, 1, calls)
	assert.Empty(t, w.LastError())
	assert.True(t, w.Submitted())
}

func TestWizard_SubmitGuards(t *testing.T) {
	never := SubmitterFunc(func(context.Context, map[string]any) error {
		t.Fatal("submitter must not be called")
		return nil
	})

	t.Run("not on final step", func(t *testing.T) {
		w := NewWizard()
		w.UpdateFormData(completeDraft())
		assert.ErrorIs(t, w.Submit(context.Background(), never), ErrNotOnFinalStep)
	})

	t.Run("earlier step incomplete", func(t *testing.T) {
		w := NewWizard()
		w.UpdateFormData(completeDraft())
		toFinish(t, w)
		w.UpdateFormData(DraftUpdate{BusinessName: ptr("")})

		err := w.Submit(context.Background(), never)

		var incomplete *StepIncompleteError
		require.ErrorAs(t, err, &incomplete)
		assert.Equal(t, StepBusiness, incomplete.Step)
		assert.Equal(t, []string{"businessName"}, incomplete.Fields)
		assert.Equal(t, StatusIdle, w.Status())
	})
}

func TestWizard_JSONRoundTrip(t *testing.T) {
	w := NewWizard()
	w.UpdateFormData(completeDraft())
	require.NoError(t, w.NextStep())

	data, err := json.Marshal(w)
	require.NoError(t, err)

	restored := &Wizard{}
	require.NoError(t, json.Unmarshal(data, restored))

	assert.Equal(t, w.Step(), restored.Step())
	assert.Equal(t, w.Draft(), restored.Draft())
	assert.Equal(t, w.Status(), restored.Status())
}

func TestWizard_UnmarshalRejectsInvalidState(t *testing.T) {
	for name, raw := range map[string]string{
		"step zero":      `{"step":0,"status":"idle"}`,
		"step too large": `{"step":9,"status":"idle"}`,
		"bad status":     `{"step":1,"status":"weird"}`,
		"bad draft":      `{"step":1,"draft":"nope"}`,
	} {
		t.Run(name, func(t *testing.T) {
			err := json.Unmarshal([]byte(raw), &Wizard{})
			assert.ErrorIs(t, err, ErrInvalidWizardState)
		})
	}
}
