package domain

import (
	"time"
)

// DateLayout is the calendar date format used as the key of every WorkoutLog.
const DateLayout = "2006-01-02"

// Mood is how the user felt after a session.
type Mood string

const (
	MoodGreat     Mood = "great"
	MoodGood      Mood = "good"
	MoodOkay      Mood = "okay"
	MoodTired     Mood = "tired"
	MoodExhausted Mood = "exhausted"
)

// Difficulty is the user's rating of a session.
type Difficulty string

const (
	DifficultyTooEasy     Difficulty = "too_easy"
	DifficultyJustRight   Difficulty = "just_right"
	DifficultyChallenging Difficulty = "challenging"
	DifficultyTooHard     Difficulty = "too_hard"
)

// ExerciseLog tracks one exercise of a logged day.
type ExerciseLog struct {
	ExerciseID string `json:"exerciseId"`
	Completed  bool   `json:"completed"`
	ActualSets *int   `json:"actualSets,omitempty"`
	ActualReps string `json:"actualReps,omitempty"`
	Notes      string `json:"notes,omitempty"`
}

// WorkoutLog records what happened on a calendar date. Date is unique across logs.
// WorkoutID points at a DailyWorkout of the plan; the plan does not own the log.
type WorkoutLog struct {
	ID         string        `json:"id"`
	Date       string        `json:"date"` // YYYY-MM-DD
	DayOfWeek  int           `json:"dayOfWeek"`
	WorkoutID  string        `json:"workoutId"`
	Completed  bool          `json:"completed"`
	StartTime  *time.Time    `json:"startTime,omitempty"`
	EndTime    *time.Time    `json:"endTime,omitempty"`
	Duration   *int          `json:"duration,omitempty"` // Actual minutes
	Exercises  []ExerciseLog `json:"exercises"`
	Notes      string        `json:"notes"`
	Mood       Mood          `json:"mood,omitempty"`
	Difficulty Difficulty    `json:"difficulty,omitempty"`
}

// LogUpdate is a partial change to an existing log. Nil fields are left untouched.
type LogUpdate struct {
	Completed  *bool          `json:"completed,omitempty"`
	StartTime  *time.Time     `json:"startTime,omitempty"`
	EndTime    *time.Time     `json:"endTime,omitempty"`
	Duration   *int           `json:"duration,omitempty"`
	Exercises  *[]ExerciseLog `json:"exercises,omitempty"`
	Notes      *string        `json:"notes,omitempty"`
	Mood       *Mood          `json:"mood,omitempty"`
	Difficulty *Difficulty    `json:"difficulty,omitempty"`
}

// Apply returns a copy of l with the non-nil fields of u applied.
func (u LogUpdate) Apply(l WorkoutLog) WorkoutLog {
	if u.Completed != nil {
		l.Completed = *u.Completed
	}
	if u.StartTime != nil {
		l.StartTime = u.StartTime
	}
	if u.EndTime != nil {
		l.EndTime = u.EndTime
	}
	if u.Duration != nil {
		l.Duration = u.Duration
	}
	if u.Exercises != nil {
		l.Exercises = *u.Exercises
	}
	if u.Notes != nil {
		l.Notes = *u.Notes
	}
	if u.Mood != nil {
		l.Mood = *u.Mood
	}
	if u.Difficulty != nil {
		l.Difficulty = *u.Difficulty
	}
	return l
}

// ParseDate parses a YYYY-MM-DD log date into UTC midnight.
func ParseDate(date string) (time.Time, error) {
	return time.Parse(DateLayout, date)
}

// Clone returns a copy that shares no pointers or slices with l.
func (l WorkoutLog) Clone() WorkoutLog {
	if l.StartTime != nil {
		t := *l.StartTime
		l.StartTime = &t
	}
	if l.EndTime != nil {
		t := *l.EndTime
		l.EndTime = &t
	}
	if l.Duration != nil {
		d := *l.Duration
		l.Duration = &d
	}
	if l.Exercises != nil {
		exercises := make([]ExerciseLog, len(l.Exercises))
		for i, ex := range l.Exercises {
			if ex.ActualSets != nil {
				sets := *ex.ActualSets
				ex.ActualSets = &sets
			}
			exercises[i] = ex
		}
		l.Exercises = exercises
	}
	return l
}

// CloneLogs deep-copies a log list. The result is never nil.
func CloneLogs(logs []WorkoutLog) []WorkoutLog {
	out := make([]WorkoutLog, len(logs))
	for i, l := range logs {
		out[i] = l.Clone()
	}
	return out
}
