package domain

// NoWorkoutType is reported when no completed log resolves to a plan day type.
const NoWorkoutType = "N/A"

// Statistics are derived from the log history and the current plan on demand.
// They are never persisted.
type Statistics struct {
	TotalWorkoutsCompleted  int    `json:"totalWorkoutsCompleted"`
	CurrentStreak           int    `json:"currentStreak"`
	LongestStreak           int    `json:"longestStreak"`
	ThisWeekCompleted       int    `json:"thisWeekCompleted"`
	ThisMonthCompleted      int    `json:"thisMonthCompleted"`
	AverageWorkoutDuration  int    `json:"averageWorkoutDuration"` // Minutes
	CompletionRate          int    `json:"completionRate"`         // Percent, 0..100
	MostFrequentWorkoutType string `json:"mostFrequentWorkoutType"`
}
