package domain

// DailyWorkout is one weekday of a WorkoutPlan.
type DailyWorkout struct {
	ID        string     `json:"id"`
	DayOfWeek int        `json:"dayOfWeek"` // 0 = Sunday ... 6 = Saturday
	DayName   string     `json:"dayName"`
	Type      string     `json:"type"`     // e.g. "Strength Training", "Rest"
	Focus     string     `json:"focus"`    // e.g. "Upper Body"
	Duration  int        `json:"duration"` // Minutes, 0 on rest days
	IsRestDay bool       `json:"isRestDay"`
	Exercises []Exercise `json:"exercises"`
	Notes     string     `json:"notes"`
}

// ExerciseByID finds an exercise of the day by id.
func (d *DailyWorkout) ExerciseByID(id string) (*Exercise, bool) {
	for i := range d.Exercises {
		if d.Exercises[i].ID == id {
			return &d.Exercises[i], true
		}
	}
	return nil, false
}
