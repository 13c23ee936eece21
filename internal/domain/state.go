package domain

// AppState is everything the app holds in memory. Only the profile, plan, logs
// and settings are persisted; the flags are derived or transient.
type AppState struct {
	UserProfile  *UserProfile `json:"userProfile"`
	WorkoutPlan  *WorkoutPlan `json:"workoutPlan"`
	WorkoutLogs  []WorkoutLog `json:"workoutLogs"`
	Settings     AppSettings  `json:"settings"`
	IsGenerating bool         `json:"isGeneratingPlan"`
	IsOnboarded  bool         `json:"isOnboarded"`
}

// DayWorkout pairs the plan day scheduled on a date with the log recorded for it.
// Either may be nil.
type DayWorkout struct {
	Date    string        `json:"date"`
	Workout *DailyWorkout `json:"workout"`
	Log     *WorkoutLog   `json:"log"`
}

// DayStatus is the calendar marker of a date.
type DayStatus string

const (
	StatusNone      DayStatus = "none" // No plan
	StatusRest      DayStatus = "rest"
	StatusCompleted DayStatus = "completed"
	StatusMissed    DayStatus = "missed"
	StatusScheduled DayStatus = "scheduled"
)

// CalendarDay is one cell of a month grid.
type CalendarDay struct {
	DayWorkout
	DayOfWeek      int       `json:"dayOfWeek"`
	IsCurrentMonth bool      `json:"isCurrentMonth"`
	IsToday        bool      `json:"isToday"`
	Status         DayStatus `json:"status"`
}
