package domain

// MaxStrengthRecords caps how many one-rep-max entries a profile keeps.
const MaxStrengthRecords = 6

// StrengthRecord is a (exercise, one-rep-max) pair inside a profile.
// ExerciseID is a soft reference into the exercise library: if the exercise
// disappears from the library the record survives and the id doubles as
// fallback display text.
type StrengthRecord struct {
	ExerciseID string  `bson:"exerciseId" json:"exerciseId"`
	OneRepMax  float64 `bson:"oneRepMax" json:"oneRepMax"` // kg
}

// UserProfile holds the per-identity profile. Exactly one exists per scope;
// an absent profile resolves to DefaultProfile merged with whatever partial
// data is stored.
type UserProfile struct {
	ID              string           `bson:"_id" json:"id"`
	Name            string           `bson:"name" json:"name"`
	WeightKg        float64          `bson:"weightKg" json:"weightKg"`
	HeightCm        float64          `bson:"heightCm" json:"heightCm"`
	BodyFatPct      *float64         `bson:"bodyFatPct,omitempty" json:"bodyFatPct,omitempty"`
	Age             int              `bson:"age" json:"age"`
	Gender          string           `bson:"gender" json:"gender"`
	Language        string           `bson:"language" json:"language"`
	StrengthRecords []StrengthRecord `bson:"strengthRecords" json:"strengthRecords"`
}

// DefaultProfile returns the template profile for a scope that has no stored
// data yet. Starter strength records reference the builtin library.
func DefaultProfile(scopeID string) UserProfile {
	return UserProfile{
		ID:       scopeID,
		Name:     "Athlete",
		WeightKg: 75,
		HeightCm: 175,
		Age:      30,
		Gender:   "unspecified",
		Language: LanguageEN,
		StrengthRecords: []StrengthRecord{
			{ExerciseID: "barbell-squat", OneRepMax: 0},
			{ExerciseID: "bench-press", OneRepMax: 0},
			{ExerciseID: "deadlift", OneRepMax: 0},
		},
	}
}

// MergeProfile reconciles a stored profile with the defaults field by field.
// Precedence: stored > default. Zero-valued stored fields fall back to the
// default; the strength-record list is only substituted when absent, and is
// always capped at MaxStrengthRecords.
func MergeProfile(stored, defaults UserProfile) UserProfile {
	merged := stored
	if merged.ID == "" {
		merged.ID = defaults.ID
	}
	if merged.Name == "" {
		merged.Name = defaults.Name
	}
	if merged.WeightKg == 0 {
		merged.WeightKg = defaults.WeightKg
	}
	if merged.HeightCm == 0 {
		merged.HeightCm = defaults.HeightCm
	}
	if merged.BodyFatPct == nil {
		merged.BodyFatPct = defaults.BodyFatPct
	}
	if merged.Age == 0 {
		merged.Age = defaults.Age
	}
	if merged.Gender == "" {
		merged.Gender = defaults.Gender
	}
	if merged.Language == "" {
		merged.Language = defaults.Language
	}
	if len(merged.StrengthRecords) == 0 {
		merged.StrengthRecords = append([]StrengthRecord(nil), defaults.StrengthRecords...)
	}
	if len(merged.StrengthRecords) > MaxStrengthRecords {
		merged.StrengthRecords = merged.StrengthRecords[:MaxStrengthRecords]
	}
	return merged
}

// ProfilePatch is a partial profile update. Nil fields are left untouched.
type ProfilePatch struct {
	Name            *string           `json:"name,omitempty"`
	WeightKg        *float64          `json:"weightKg,omitempty"`
	HeightCm        *float64          `json:"heightCm,omitempty"`
	BodyFatPct      *float64          `json:"bodyFatPct,omitempty"`
	Age             *int              `json:"age,omitempty"`
	Gender          *string           `json:"gender,omitempty"`
	Language        *string           `json:"language,omitempty"`
	StrengthRecords *[]StrengthRecord `json:"strengthRecords,omitempty"`
}

// Apply merges the patch into the profile and returns the result.
func (p UserProfile) Apply(patch ProfilePatch) UserProfile {
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.WeightKg != nil {
		p.WeightKg = *patch.WeightKg
	}
	if patch.HeightCm != nil {
		p.HeightCm = *patch.HeightCm
	}
	if patch.BodyFatPct != nil {
		p.BodyFatPct = patch.BodyFatPct
	}
	if patch.Age != nil {
		p.Age = *patch.Age
	}
	if patch.Gender != nil {
		p.Gender = *patch.Gender
	}
	if patch.Language != nil {
		p.Language = *patch.Language
	}
	if patch.StrengthRecords != nil {
		records := append([]StrengthRecord(nil), (*patch.StrengthRecords)...)
		if len(records) > MaxStrengthRecords {
			records = records[:MaxStrengthRecords]
		}
		p.StrengthRecords = records
	}
	return p
}
