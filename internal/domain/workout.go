package domain

import (
	"time"

	"github.com/google/uuid"
)

// SetLog is the leaf record of a session: one performed set.
// Only completed sets count toward total volume.
type SetLog struct {
	ID        string    `bson:"id" json:"id"`
	WeightKg  float64   `bson:"weightKg" json:"weightKg"`
	Reps      int       `bson:"reps" json:"reps"`
	RPE       *float64  `bson:"rpe,omitempty" json:"rpe,omitempty"`
	Completed bool      `bson:"completed" json:"completed"`
	Timestamp time.Time `bson:"timestamp" json:"timestamp"`
}

// WorkoutExerciseLog groups the sets performed for one exercise within a
// session. Owned exclusively by its parent WorkoutLog.
type WorkoutExerciseLog struct {
	ID         string   `bson:"id" json:"id"`
	ExerciseID string   `bson:"exerciseId" json:"exerciseId"`
	Sets       []SetLog `bson:"sets" json:"sets"`
}

// WorkoutLog is one completed workout session. IDs are generated client-side
// (UUID) so the same logical log keeps its identity across devices and the
// remote store; re-saving an existing id updates in place, never duplicates.
type WorkoutLog struct {
	ID          string               `bson:"_id" json:"id"`
	UserID      string               `bson:"userId" json:"userId"`
	Name        string               `bson:"name" json:"name"`
	Date        time.Time            `bson:"date" json:"date"`
	DurationMin int                  `bson:"durationMin" json:"durationMin"`
	TotalVolume float64              `bson:"totalVolume" json:"totalVolume"`
	Exercises   []WorkoutExerciseLog `bson:"exercises" json:"exercises"`
}

// NewWorkoutLog creates a log for a just-finished session, dated now.
func NewWorkoutLog(userID, name string) *WorkoutLog {
	return &WorkoutLog{
		ID:     uuid.NewString(),
		UserID: userID,
		Name:   name,
		Date:   time.Now().UTC(),
	}
}

// NewSetLog records one set, stamped now.
func NewSetLog(weightKg float64, reps int, completed bool) SetLog {
	return SetLog{
		ID:        uuid.NewString(),
		WeightKg:  weightKg,
		Reps:      reps,
		Completed: completed,
		Timestamp: time.Now().UTC(),
	}
}

// ComputeTotalVolume recomputes and stores the session volume: the sum of
// weight × reps over completed sets only.
func (w *WorkoutLog) ComputeTotalVolume() float64 {
	var total float64
	for _, ex := range w.Exercises {
		for _, set := range ex.Sets {
			if set.Completed {
				total += set.WeightKg * float64(set.Reps)
			}
		}
	}
	w.TotalVolume = total
	return total
}
