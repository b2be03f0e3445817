package leadform

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func ptr[T any](v T) *T {
	return &v
}

func TestDraft_MergeKeepsUnsetFields(t *testing.T) {
	original := Draft{
		Name:              "Ada",
		AgeGroup:          "26-35",
		Profession:        "accountant",
		BusinessName:      "Ledgerly",
		CurrentAccounting: []string{"xero"},
		IsBusinessOwner:   true,
	}

	tests := []struct {
		name   string
		update DraftUpdate
		check  func(t *testing.T, merged Draft)
	}{
		{
			name:   "empty update",
			update: DraftUpdate{},
			check: func(t *testing.T, merged Draft) {
				assert.Equal(t, original, merged)
			},
		},
		{
			name:   "single field",
			update: DraftUpdate{Phone: ptr("0800")},
			check: func(t *testing.T, merged Draft) {
				expected := original
				expected.Phone = "0800"
				assert.Equal(t, expected, merged)
			},
		},
		{
			name:   "explicit zero values overwrite",
			update: DraftUpdate{Name: ptr(""), IsBusinessOwner: ptr(false)},
			check: func(t *testing.T, merged Draft) {
				assert.Empty(t, merged.Name)
				assert.False(t, merged.IsBusinessOwner)
				assert.Equal(t, original.AgeGroup, merged.AgeGroup)
				assert.Equal(t, original.BusinessName, merged.BusinessName)
			},
		},
		{
			name:   "slice replaced wholesale",
			update: DraftUpdate{CurrentAccounting: ptr([]string{"sage", "tally"})},
			check: func(t *testing.T, merged Draft) {
				assert.Equal(t, []string{"sage", "tally"}, merged.CurrentAccounting)
				assert.Equal(t, original.Name, merged.Name)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, original.Merge(tt.update))
		})
	}

	assert.Equal(t, []string{"xero"}, original.CurrentAccounting, "merge must not mutate the receiver")
}

func TestDraft_MergeDoesNotAliasSlices(t *testing.T) {
	accounting := []string{"excel"}
	merged := Draft{}.Merge(DraftUpdate{CurrentAccounting: &accounting})

	accounting[0] = "none"
	assert.Equal(t, []string{"excel"}, merged.CurrentAccounting)
}

func TestDraft_Payload(t *testing.T) {
	draft := Draft{
		Name:             "Ada",
		Profession:       "other",
		CustomProfession: "Auditor",
		Email:            "ada@x.com",
	}

	payload := draft.Payload()

	assert.Equal(t, "waitlist", payload["type"])
	assert.Equal(t, "other", payload["profession"])
	assert.Equal(t, "Auditor", payload["customProfession"])
	assert.Equal(t, "ada@x.com", payload["email"])
	assert.Equal(t, []string{}, payload["currentAccounting"])
	assert.NotContains(t, payload, "customSoftware")
}
