package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMergeProfileEmptyStoredYieldsDefaults(t *testing.T) {
	defaults := DefaultProfile("user_1")
	merged := MergeProfile(UserProfile{}, defaults)

	assert.Equal(t, "user_1", merged.ID)
	assert.Equal(t, defaults.Name, merged.Name)
	assert.Equal(t, defaults.WeightKg, merged.WeightKg)
	assert.Equal(t, defaults.Language, merged.Language)
	assert.NotEmpty(t, merged.StrengthRecords)
}

func TestMergeProfileStoredFieldsWin(t *testing.T) {
	defaults := DefaultProfile("user_1")
	stored := UserProfile{Name: "Alex", WeightKg: 82}

	merged := MergeProfile(stored, defaults)

	assert.Equal(t, "Alex", merged.Name)
	assert.Equal(t, 82.0, merged.WeightKg)
	// Unset fields keep the defaults.
	assert.Equal(t, defaults.HeightCm, merged.HeightCm)
	assert.NotEmpty(t, merged.StrengthRecords, "starter records fill in when absent")
}

func TestMergeProfileKeepsStoredStrengthRecords(t *testing.T) {
	defaults := DefaultProfile("user_1")
	stored := UserProfile{
		StrengthRecords: []StrengthRecord{{ExerciseID: "pull-up", OneRepMax: 20}},
	}

	merged := MergeProfile(stored, defaults)

	assert.Equal(t, []StrengthRecord{{ExerciseID: "pull-up", OneRepMax: 20}}, merged.StrengthRecords)
}

func TestMergeProfileCapsStrengthRecords(t *testing.T) {
	stored := UserProfile{}
	for i := 0; i < MaxStrengthRecords+3; i++ {
		stored.StrengthRecords = append(stored.StrengthRecords, StrengthRecord{ExerciseID: "deadlift"})
	}

	merged := MergeProfile(stored, DefaultProfile("user_1"))

	assert.Len(t, merged.StrengthRecords, MaxStrengthRecords)
}

func TestApplyPatchOnlyTouchesSetFields(t *testing.T) {
	profile := DefaultProfile("user_1")
	name := "Alex"
	weight := 82.0

	updated := profile.Apply(ProfilePatch{Name: &name, WeightKg: &weight})

	assert.Equal(t, "Alex", updated.Name)
	assert.Equal(t, 82.0, updated.WeightKg)
	assert.Equal(t, profile.HeightCm, updated.HeightCm)
	assert.Equal(t, profile.Language, updated.Language)
}

func TestLocalizedStringFallsBackToEnglish(t *testing.T) {
	s := LocalizedString{EN: "Bench Press"}
	assert.Equal(t, "Bench Press", s.In(LanguageUK))

	s.UK = "Жим лежачи"
	assert.Equal(t, "Жим лежачи", s.In(LanguageUK))
	assert.Equal(t, "Bench Press", s.In(LanguageEN))
}
