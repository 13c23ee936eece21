package planner

import (
	"alcyxob/fitgpt/internal/domain"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// rawPlan mirrors the JSON the model is asked to produce.
type rawPlan struct {
	WeeklySchedule   *[]rawDay   `json:"weeklySchedule"`
	ProgressionNotes looseString `json:"progressionNotes"`
}

type rawDay struct {
	DayOfWeek looseInt      `json:"dayOfWeek"`
	DayName   looseString   `json:"dayName"`
	Type      looseString   `json:"type"`
	Focus     looseString   `json:"focus"`
	Duration  looseInt      `json:"duration"`
	IsRestDay looseBool     `json:"isRestDay"`
	Exercises []rawExercise `json:"exercises"`
	Notes     looseString   `json:"notes"`
}

type rawExercise struct {
	Name          looseString `json:"name"`
	Category      looseString `json:"category"`
	Sets          looseInt    `json:"sets"`
	Reps          looseString `json:"reps"`
	Duration      looseString `json:"duration"`
	Rest          looseString `json:"rest"`
	Instructions  looseString `json:"instructions"`
	Modifications looseString `json:"modifications"`
}

// stripCodeFence removes a leading ```json or ``` marker and a trailing ``` marker.
func stripCodeFence(text string) string {
	clean := strings.TrimSpace(text)
	if strings.HasPrefix(clean, "```json") {
		clean = clean[len("```json"):]
	} else if strings.HasPrefix(clean, "```") {
		clean = clean[len("```"):]
	}
	clean = strings.TrimSuffix(clean, "```")
	return strings.TrimSpace(clean)
}

// NormalizeWorkoutPlan turns the model's text answer into a WorkoutPlan with
// exactly seven days ordered Sunday..Saturday. Days the model left out become
// rest days; missing fields get defaults.
func NormalizeWorkoutPlan(rawText string, profile domain.UserProfile) (*domain.WorkoutPlan, error) {
	var parsed rawPlan
	if err := json.Unmarshal([]byte(stripCodeFence(rawText)), &parsed); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPlan, err)
	}
	if parsed.WeeklySchedule == nil {
		return nil, fmt.Errorf("%w: weeklySchedule is missing", ErrMalformedPlan)
	}

	seen := make(map[int]bool, 7)
	schedule := make([]domain.DailyWorkout, 0, 7)
	for _, day := range *parsed.WeeklySchedule {
		dow := day.DayOfWeek.Value
		if !day.DayOfWeek.Set || dow < 0 || dow > 6 || seen[dow] {
			// Unplaceable or repeated day; the gap is filled below.
			continue
		}
		seen[dow] = true
		schedule = append(schedule, normalizeDay(day))
	}

	for dow := 0; dow < 7; dow++ {
		if !seen[dow] {
			schedule = append(schedule, restDay(dow))
		}
	}

	sort.Slice(schedule, func(i, j int) bool {
		return schedule[i].DayOfWeek < schedule[j].DayOfWeek
	})

	now := time.Now().UTC()
	return &domain.WorkoutPlan{
		ID:                  uuid.NewString(),
		CreatedAt:           now,
		UpdatedAt:           now,
		WeeklySchedule:      schedule,
		DurationWeeks:       domain.DefaultPlanDurationWeeks,
		ProgressionNotes:    parsed.ProgressionNotes.Value,
		UserProfileSnapshot: profile.Snapshot(),
	}, nil
}

func normalizeDay(day rawDay) domain.DailyWorkout {
	dow := day.DayOfWeek.Value
	out := domain.DailyWorkout{
		ID:        uuid.NewString(),
		DayOfWeek: dow,
		DayName:   firstNonEmpty(day.DayName.Value, domain.DayName(dow)),
		Type:      firstNonEmpty(day.Type.Value, "Rest"),
		Focus:     day.Focus.Value,
		Duration:  day.Duration.Value,
		Notes:     day.Notes.Value,
		Exercises: make([]domain.Exercise, 0, len(day.Exercises)),
	}
	if out.Duration < 0 {
		out.Duration = 0
	}
	if day.IsRestDay.Set {
		out.IsRestDay = day.IsRestDay.Value
	} else {
		// Only an explicit zero marks a rest day; a missing duration does not.
		out.IsRestDay = day.Duration.Set && day.Duration.Value == 0
	}

	if out.IsRestDay {
		out.Duration = 0
		return out
	}
	for _, ex := range day.Exercises {
		out.Exercises = append(out.Exercises, normalizeExercise(ex))
	}
	return out
}

func normalizeExercise(ex rawExercise) domain.Exercise {
	out := domain.Exercise{
		ID:            uuid.NewString(),
		Name:          ex.Name.Value,
		Category:      normalizeCategory(ex.Category.Value),
		Reps:          ex.Reps.Value,
		Duration:      ex.Duration.Value,
		Rest:          ex.Rest.Value,
		Instructions:  ex.Instructions.Value,
		Modifications: ex.Modifications.Value,
	}
	if ex.Sets.Set {
		sets := ex.Sets.Value
		out.Sets = &sets
	}
	return out
}

func normalizeCategory(c string) domain.ExerciseCategory {
	switch cat := domain.ExerciseCategory(strings.ToLower(strings.TrimSpace(c))); cat {
	case domain.CategoryWarmup, domain.CategoryMain, domain.CategoryCooldown:
		return cat
	}
	return domain.CategoryMain
}

func restDay(dow int) domain.DailyWorkout {
	return domain.DailyWorkout{
		ID:        uuid.NewString(),
		DayOfWeek: dow,
		DayName:   domain.DayName(dow),
		Type:      "Rest",
		Focus:     "Recovery",
		Duration:  0,
		IsRestDay: true,
		Exercises: []domain.Exercise{},
		Notes:     "Rest day",
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
