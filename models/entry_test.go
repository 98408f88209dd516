package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validDraft() EntryDraft {
	return EntryDraft{
		Date:                "2024-01-05",
		Mood:                MoodSad,
		Intensity:           7,
		Situation:           "Missed a deadline",
		AutomaticThoughts:   "I always fail",
		SelectedEmotions:    []string{"tristeza"},
		SelectedDistortions: []string{"generalizacion"},
		Behavior:            "Avoided the call",
	}
}

func TestValidateDraftValid(t *testing.T) {
	errs := ValidateDraft(validDraft())
	assert.Empty(t, errs)
}

func TestValidateDraftOptionalFieldsMayBeEmpty(t *testing.T) {
	draft := validDraft()
	draft.AlternativeThought = ""
	draft.SelectedEmotions = nil
	draft.SelectedDistortions = nil
	assert.Empty(t, ValidateDraft(draft))
}

// 校验必须列出所有违规字段，而不是只报第一个
func TestValidateDraftReportsAllViolations(t *testing.T) {
	draft := validDraft()
	draft.Intensity = 11
	draft.Situation = ""

	errs := ValidateDraft(draft)
	require.Len(t, errs, 2)

	fields := []string{errs[0].Field, errs[1].Field}
	assert.Contains(t, fields, "intensity")
	assert.Contains(t, fields, "situation")
}

func TestValidateDraftIntensityBounds(t *testing.T) {
	for _, intensity := range []int{0, -1, 11, 100} {
		draft := validDraft()
		draft.Intensity = intensity
		errs := ValidateDraft(draft)
		require.Len(t, errs, 1, "intensity=%d", intensity)
		assert.Equal(t, "intensity", errs[0].Field)
	}

	for _, intensity := range []int{1, 5, 10} {
		draft := validDraft()
		draft.Intensity = intensity
		assert.Empty(t, ValidateDraft(draft), "intensity=%d", intensity)
	}
}

func TestValidateDraftRejectsBadDateAndMood(t *testing.T) {
	draft := validDraft()
	draft.Date = "05/01/2024"
	draft.Mood = "furious"

	errs := ValidateDraft(draft)
	require.Len(t, errs, 2)
}

func TestApplyDraftPreservesIdentity(t *testing.T) {
	record := EntryRecord{ID: "abc", UserID: "u1"}
	record.ApplyDraft(validDraft())

	assert.Equal(t, "abc", record.ID)
	assert.Equal(t, "u1", record.UserID)
	assert.Equal(t, "2024-01-05", record.Date)
	assert.Equal(t, MoodSad, record.Mood)
}
