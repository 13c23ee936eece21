// internal/domain/exercise.go
package domain

// ExerciseCategory places an exercise within a session.
type ExerciseCategory string

const (
	CategoryWarmup   ExerciseCategory = "warmup"
	CategoryMain     ExerciseCategory = "main"
	CategoryCooldown ExerciseCategory = "cooldown"
)

// Exercise is a single prescribed movement inside a DailyWorkout.
// Reps, Duration and Rest are free form ("8-12", "30 seconds").
type Exercise struct {
	ID            string           `json:"id"`
	Name          string           `json:"name"`
	Category      ExerciseCategory `json:"category"`
	Sets          *int             `json:"sets,omitempty"`
	Reps          string           `json:"reps,omitempty"`
	Duration      string           `json:"duration,omitempty"`
	Rest          string           `json:"rest,omitempty"`
	Instructions  string           `json:"instructions"`
	Modifications string           `json:"modifications,omitempty"` // Easier/harder variations
}
