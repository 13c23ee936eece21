package planner

import (
	"alcyxob/fitgpt/internal/domain"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fullPlanJSON = `{
  "weeklySchedule": [
    {"dayOfWeek": 0, "dayName": "Sunday", "type": "Rest", "focus": "Recovery", "duration": 0, "isRestDay": true, "exercises": [], "notes": "Walk"},
    {"dayOfWeek": 1, "dayName": "Monday", "type": "Strength Training", "focus": "Upper Body", "duration": 45, "isRestDay": false,
     "exercises": [
       {"name": "Arm circles", "category": "warmup", "sets": 1, "reps": "30 seconds", "instructions": "Circle the arms"},
       {"name": "Push-up", "category": "main", "sets": 3, "reps": "8-12", "rest": "60 seconds", "instructions": "Keep a plank", "modifications": "Knees down"},
       {"name": "Stretch", "category": "cooldown", "duration": "2 minutes", "instructions": "Breathe"}
     ],
     "notes": "Form first"},
    {"dayOfWeek": 2, "dayName": "Tuesday", "type": "Rest", "focus": "Recovery", "duration": 0, "isRestDay": true, "exercises": [], "notes": ""},
    {"dayOfWeek": 3, "dayName": "Wednesday", "type": "HIIT", "focus": "Conditioning", "duration": 30, "isRestDay": false,
     "exercises": [{"name": "Burpee", "category": "main", "sets": 4, "reps": "10", "instructions": "Jump"}], "notes": ""},
    {"dayOfWeek": 4, "dayName": "Thursday", "type": "Rest", "focus": "Recovery", "duration": 0, "isRestDay": true, "exercises": [], "notes": ""},
    {"dayOfWeek": 5, "dayName": "Friday", "type": "Strength Training", "focus": "Lower Body", "duration": 45, "isRestDay": false,
     "exercises": [{"name": "Squat", "category": "main", "sets": 3, "reps": "12", "instructions": "Sit back"}], "notes": ""},
    {"dayOfWeek": 6, "dayName": "Saturday", "type": "Rest", "focus": "Recovery", "duration": 0, "isRestDay": true, "exercises": [], "notes": ""}
  ],
  "progressionNotes": "Add a rep each week"
}`

func dayOrder(plan *domain.WorkoutPlan) []int {
	out := make([]int, 0, len(plan.WeeklySchedule))
	for _, d := range plan.WeeklySchedule {
		out = append(out, d.DayOfWeek)
	}
	return out
}

func assertPlanInvariants(t *testing.T, plan *domain.WorkoutPlan) {
	t.Helper()
	require.Len(t, plan.WeeklySchedule, 7)
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6}, dayOrder(plan))
	for _, d := range plan.WeeklySchedule {
		if d.IsRestDay {
			assert.Empty(t, d.Exercises, "rest day %d has exercises", d.DayOfWeek)
			assert.Zero(t, d.Duration, "rest day %d has a duration", d.DayOfWeek)
		}
		assert.NotEmpty(t, d.ID)
		assert.NotEmpty(t, d.DayName)
	}
}

func TestNormalizeWorkoutPlan_FullPlan(t *testing.T) {
	profile := testProfile()
	plan, err := NormalizeWorkoutPlan(fullPlanJSON, profile)
	require.NoError(t, err)
	assertPlanInvariants(t, plan)

	assert.NotEmpty(t, plan.ID)
	assert.Equal(t, 4, plan.DurationWeeks)
	assert.Equal(t, "Add a rep each week", plan.ProgressionNotes)
	assert.False(t, plan.CreatedAt.IsZero())
	assert.Equal(t, plan.CreatedAt, plan.UpdatedAt)

	monday := plan.WeeklySchedule[1]
	assert.Equal(t, "Strength Training", monday.Type)
	assert.Equal(t, 45, monday.Duration)
	require.Len(t, monday.Exercises, 3)
	pushUp := monday.Exercises[1]
	assert.Equal(t, "Push-up", pushUp.Name)
	assert.Equal(t, domain.CategoryMain, pushUp.Category)
	require.NotNil(t, pushUp.Sets)
	assert.Equal(t, 3, *pushUp.Sets)
	assert.Equal(t, "8-12", pushUp.Reps)
	assert.Equal(t, "Knees down", pushUp.Modifications)
	assert.Nil(t, monday.Exercises[2].Sets)

	ids := map[string]bool{}
	for _, d := range plan.WeeklySchedule {
		for _, ex := range d.Exercises {
			assert.False(t, ids[ex.ID], "duplicate exercise id")
			ids[ex.ID] = true
		}
	}
}

func TestNormalizeWorkoutPlan_SnapshotExcludesPrivateFields(t *testing.T) {
	profile := testProfile()
	plan, err := NormalizeWorkoutPlan(fullPlanJSON, profile)
	require.NoError(t, err)

	snap := plan.UserProfileSnapshot
	assert.Equal(t, profile.Goals, snap.Goals)
	assert.Equal(t, profile.FitnessLevel, snap.FitnessLevel)
	assert.Equal(t, profile.Availability, snap.Availability)
	assert.Equal(t, profile.Equipment, snap.Equipment)
	assert.Equal(t, profile.Preferences, snap.Preferences)

	raw, err := json.Marshal(snap)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "limitations")
	assert.NotContains(t, string(raw), "currentRoutine")
}

func TestNormalizeWorkoutPlan_CodeFences(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"no fence", fullPlanJSON},
		{"json fence", "```json\n" + fullPlanJSON + "\n```"},
		{"bare fence", "```\n" + fullPlanJSON + "\n```"},
		{"surrounding whitespace", "\n\n  ```json" + fullPlanJSON + "```  \n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan, err := NormalizeWorkoutPlan(tt.text, testProfile())
			require.NoError(t, err)
			assertPlanInvariants(t, plan)
		})
	}
}

func TestNormalizeWorkoutPlan_Malformed(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"prose", "Sure! Here is your plan."},
		{"truncated", fullPlanJSON[:200]},
		{"empty", ""},
		{"array at top level", `[{"dayOfWeek": 1}]`},
		{"missing schedule", `{"progressionNotes": "x"}`},
		{"null schedule", `{"weeklySchedule": null}`},
		{"schedule is an object", `{"weeklySchedule": {"dayOfWeek": 1}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan, err := NormalizeWorkoutPlan(tt.text, testProfile())
			assert.Nil(t, plan)
			assert.ErrorIs(t, err, ErrMalformedPlan)
		})
	}
}

func TestNormalizeWorkoutPlan_FillsMissingDays(t *testing.T) {
	text := `{"weeklySchedule": [
		{"dayOfWeek": 3, "type": "Yoga", "focus": "Mobility", "duration": 30, "exercises": [{"name": "Cat-cow", "instructions": "Slowly"}]}
	]}`
	plan, err := NormalizeWorkoutPlan(text, testProfile())
	require.NoError(t, err)
	assertPlanInvariants(t, plan)

	for _, d := range plan.WeeklySchedule {
		if d.DayOfWeek == 3 {
			assert.False(t, d.IsRestDay)
			assert.Equal(t, "Wednesday", d.DayName, "day name comes from the weekday table")
			require.Len(t, d.Exercises, 1)
			assert.Equal(t, domain.CategoryMain, d.Exercises[0].Category)
			continue
		}
		assert.True(t, d.IsRestDay)
		assert.Equal(t, "Rest", d.Type)
		assert.Equal(t, "Recovery", d.Focus)
		assert.Equal(t, "Rest day", d.Notes)
		assert.Equal(t, domain.DaysOfWeek[d.DayOfWeek], d.DayName)
	}
	assert.Equal(t, "", plan.ProgressionNotes)
}

func TestNormalizeWorkoutPlan_EmptySchedule(t *testing.T) {
	plan, err := NormalizeWorkoutPlan(`{"weeklySchedule": []}`, testProfile())
	require.NoError(t, err)
	assertPlanInvariants(t, plan)
	for _, d := range plan.WeeklySchedule {
		assert.True(t, d.IsRestDay)
	}
}

func TestNormalizeWorkoutPlan_DayDefaults(t *testing.T) {
	tests := []struct {
		name     string
		day      string
		wantType string
		wantRest bool
		wantDur  int
		wantEx   int
	}{
		{"everything missing", `{"dayOfWeek": 1}`, "Rest", false, 0, 0},
		{"missing duration keeps exercises", `{"dayOfWeek": 1, "type": "Strength", "exercises": [{"name": "Squat", "category": "main"}]}`, "Strength", false, 0, 1},
		{"duration without rest flag", `{"dayOfWeek": 1, "type": "Run", "duration": 30}`, "Run", false, 30, 0},
		{"zero duration means rest", `{"dayOfWeek": 1, "type": "Walk", "duration": 0, "exercises": [{"name": "Walk"}]}`, "Walk", true, 0, 0},
		{"explicit rest clears exercises", `{"dayOfWeek": 1, "isRestDay": true, "duration": 20, "exercises": [{"name": "Plank"}]}`, "Rest", true, 0, 0},
		{"explicit workout with zero duration", `{"dayOfWeek": 1, "isRestDay": false, "exercises": [{"name": "Plank"}]}`, "Rest", false, 0, 1},
		{"string numbers", `{"dayOfWeek": "1", "duration": "45 minutes", "isRestDay": "false", "exercises": [{"name": "Row", "sets": "3", "reps": 12}]}`, "Rest", false, 45, 1},
		{"empty type", `{"dayOfWeek": 1, "type": "", "duration": 10}`, "Rest", false, 10, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text := fmt.Sprintf(`{"weeklySchedule": [%s]}`, tt.day)
			plan, err := NormalizeWorkoutPlan(text, testProfile())
			require.NoError(t, err)
			assertPlanInvariants(t, plan)

			monday := plan.WeeklySchedule[1]
			assert.Equal(t, "Monday", monday.DayName)
			assert.Equal(t, tt.wantType, monday.Type)
			assert.Equal(t, tt.wantRest, monday.IsRestDay)
			assert.Equal(t, tt.wantDur, monday.Duration)
			assert.Len(t, monday.Exercises, tt.wantEx)
			assert.NotNil(t, monday.Exercises)
		})
	}
}

func TestNormalizeWorkoutPlan_LooseExerciseFields(t *testing.T) {
	text := `{"weeklySchedule": [{"dayOfWeek": 2, "duration": 40, "exercises": [
		{"name": "Row", "category": "WARMUP", "sets": "3 sets", "reps": 12, "rest": 60},
		{"name": "Jog", "category": "stretching"}
	]}]}`
	plan, err := NormalizeWorkoutPlan(text, testProfile())
	require.NoError(t, err)

	exercises := plan.WeeklySchedule[2].Exercises
	require.Len(t, exercises, 2)
	assert.Equal(t, domain.CategoryWarmup, exercises[0].Category)
	require.NotNil(t, exercises[0].Sets)
	assert.Equal(t, 3, *exercises[0].Sets)
	assert.Equal(t, "12", exercises[0].Reps)
	assert.Equal(t, "60", exercises[0].Rest)
	assert.Equal(t, "", exercises[0].Instructions)
	assert.Equal(t, domain.CategoryMain, exercises[1].Category)
}

func TestNormalizeWorkoutPlan_DropsUnplaceableAndDuplicateDays(t *testing.T) {
	text := `{"weeklySchedule": [
		{"type": "No day"},
		{"dayOfWeek": 9, "type": "Out of range", "duration": 30},
		{"dayOfWeek": -1, "type": "Negative", "duration": 30},
		{"dayOfWeek": 4, "type": "First Thursday", "duration": 30},
		{"dayOfWeek": 4, "type": "Second Thursday", "duration": 30}
	]}`
	plan, err := NormalizeWorkoutPlan(text, testProfile())
	require.NoError(t, err)
	assertPlanInvariants(t, plan)
	assert.Equal(t, "First Thursday", plan.WeeklySchedule[4].Type)
	for _, d := range plan.WeeklySchedule {
		assert.NotContains(t, []string{"No day", "Out of range", "Negative", "Second Thursday"}, d.Type)
	}
}

func TestNormalizeWorkoutPlan_PermutationInvariant(t *testing.T) {
	var doc struct {
		WeeklySchedule   []json.RawMessage `json:"weeklySchedule"`
		ProgressionNotes string            `json:"progressionNotes"`
	}
	require.NoError(t, json.Unmarshal([]byte(fullPlanJSON), &doc))

	orders := [][]int{
		{6, 5, 4, 3, 2, 1, 0},
		{3, 0, 6, 1, 5, 2, 4},
		{1, 2, 3, 4, 5, 6, 0},
	}
	reference, err := NormalizeWorkoutPlan(fullPlanJSON, testProfile())
	require.NoError(t, err)

	for _, order := range orders {
		t.Run(fmt.Sprint(order), func(t *testing.T) {
			days := make([]string, 0, len(order))
			for _, i := range order {
				days = append(days, string(doc.WeeklySchedule[i]))
			}
			text := `{"weeklySchedule": [` + strings.Join(days, ",") + `]}`

			plan, err := NormalizeWorkoutPlan(text, testProfile())
			require.NoError(t, err)
			assertPlanInvariants(t, plan)
			for i := range plan.WeeklySchedule {
				assert.Equal(t, reference.WeeklySchedule[i].Type, plan.WeeklySchedule[i].Type)
				assert.Equal(t, reference.WeeklySchedule[i].Focus, plan.WeeklySchedule[i].Focus)
				assert.Equal(t, len(reference.WeeklySchedule[i].Exercises), len(plan.WeeklySchedule[i].Exercises))
			}
		})
	}
}

func TestStripCodeFence(t *testing.T) {
	assert.Equal(t, `{"a":1}`, stripCodeFence("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, stripCodeFence("```{\"a\":1}```"))
	assert.Equal(t, `{"a":1}`, stripCodeFence(`  {"a":1}  `))
	assert.Equal(t, `{"a":1}`, stripCodeFence("{\"a\":1}\n```"))
}
