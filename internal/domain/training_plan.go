// internal/domain/training_plan.go
package domain

import (
	"slices"
	"time"
)

// DefaultPlanDurationWeeks is how long every generated plan is meant to run.
const DefaultPlanDurationWeeks = 4

// WorkoutPlan is the generated weekly schedule.
// WeeklySchedule always holds exactly one entry per dayOfWeek 0..6, in ascending order.
type WorkoutPlan struct {
	ID                  string          `json:"id"`
	CreatedAt           time.Time       `json:"createdAt"`
	UpdatedAt           time.Time       `json:"updatedAt"`
	WeeklySchedule      []DailyWorkout  `json:"weeklySchedule"`
	DurationWeeks       int             `json:"durationWeeks"`
	ProgressionNotes    string          `json:"progressionNotes"`
	UserProfileSnapshot ProfileSnapshot `json:"userProfileSnapshot"`
}

// DayFor returns the schedule entry for the given weekday.
func (p *WorkoutPlan) DayFor(dayOfWeek int) (*DailyWorkout, bool) {
	if p == nil {
		return nil, false
	}
	for i := range p.WeeklySchedule {
		if p.WeeklySchedule[i].DayOfWeek == dayOfWeek {
			return &p.WeeklySchedule[i], true
		}
	}
	return nil, false
}

// WorkoutByID returns the schedule entry with the given id.
func (p *WorkoutPlan) WorkoutByID(id string) (*DailyWorkout, bool) {
	if p == nil {
		return nil, false
	}
	for i := range p.WeeklySchedule {
		if p.WeeklySchedule[i].ID == id {
			return &p.WeeklySchedule[i], true
		}
	}
	return nil, false
}

// ScheduledWeekdays is the set of weekdays that carry a non-rest workout.
func (p *WorkoutPlan) ScheduledWeekdays() map[int]bool {
	days := make(map[int]bool)
	if p == nil {
		return days
	}
	for _, d := range p.WeeklySchedule {
		if !d.IsRestDay {
			days[d.DayOfWeek] = true
		}
	}
	return days
}

// Clone returns a deep copy of the plan.
func (p *WorkoutPlan) Clone() *WorkoutPlan {
	if p == nil {
		return nil
	}
	out := *p
	out.WeeklySchedule = make([]DailyWorkout, len(p.WeeklySchedule))
	for i, d := range p.WeeklySchedule {
		d.Exercises = cloneExercises(d.Exercises)
		out.WeeklySchedule[i] = d
	}
	snap := p.UserProfileSnapshot
	snap.Goals = slices.Clone(snap.Goals)
	snap.Equipment = slices.Clone(snap.Equipment)
	snap.Preferences = slices.Clone(snap.Preferences)
	snap.Availability.PreferredDays = slices.Clone(snap.Availability.PreferredDays)
	out.UserProfileSnapshot = snap
	return &out
}

func cloneExercises(in []Exercise) []Exercise {
	if in == nil {
		return nil
	}
	out := make([]Exercise, len(in))
	for i, ex := range in {
		if ex.Sets != nil {
			sets := *ex.Sets
			ex.Sets = &sets
		}
		out[i] = ex
	}
	return out
}
