package planner

import (
	"alcyxob/fitgpt/internal/domain"
	"testing"

	"github.com/stretchr/testify/assert"
)

func testProfile() domain.UserProfile {
	return domain.UserProfile{
		Goals:          []string{"muscle-gain", "stress-relief"},
		FitnessLevel:   domain.LevelIntermediate,
		CurrentRoutine: "Running twice a week",
		Availability: domain.Availability{
			DaysPerWeek:       3,
			MinutesPerSession: 45,
			PreferredDays:     []string{"Monday", "Wednesday", "Friday"},
		},
		Equipment:           []string{"home-gym", "pull-up-bar"},
		Limitations:         "Bad left knee",
		Preferences:         []string{"hiit", "custom-thing"},
		CompletedOnboarding: true,
	}
}

func TestBuildPrompt_RendersProfile(t *testing.T) {
	prompt := BuildPrompt(testProfile())

	assert.Contains(t, prompt, "- **Fitness Goals**: Muscle Gain, Stress Relief\n")
	assert.Contains(t, prompt, "- **Fitness Level**: intermediate\n")
	assert.Contains(t, prompt, "- **Current Routine**: Running twice a week\n")
	assert.Contains(t, prompt, "- **Workout Days**: Monday, Wednesday, Friday (3 days per week)\n")
	assert.Contains(t, prompt, "- **Session Duration**: 45 minutes per session\n")
	assert.Contains(t, prompt, "- **Available Equipment**: Home Gym, Pull-up Bar\n")
	assert.Contains(t, prompt, "- **Physical Limitations**: Bad left knee\n")
	// Unknown ids are passed through verbatim.
	assert.Contains(t, prompt, "- **Preferred Workout Types**: HIIT Sessions, custom-thing\n")
	assert.Contains(t, prompt, "1. Schedules workouts ONLY on the specified days: Monday, Wednesday, Friday\n")
	assert.Contains(t, prompt, "2. Fits within 45 minutes per session\n")
	assert.Contains(t, prompt, `"weeklySchedule"`)
	assert.Contains(t, prompt, "Include ALL 7 days")
}

func TestBuildPrompt_Defaults(t *testing.T) {
	profile := testProfile()
	profile.CurrentRoutine = ""
	profile.Equipment = nil
	profile.Limitations = ""
	profile.Preferences = nil

	prompt := BuildPrompt(profile)

	assert.Contains(t, prompt, "- **Current Routine**: None specified\n")
	assert.Contains(t, prompt, "- **Available Equipment**: Bodyweight only\n")
	assert.Contains(t, prompt, "- **Physical Limitations**: None\n")
	assert.Contains(t, prompt, "- **Preferred Workout Types**: No specific preferences\n")
	assert.Contains(t, prompt, "3. Uses only the available equipment: bodyweight exercises\n")
}

func TestBuildPrompt_Deterministic(t *testing.T) {
	assert.Equal(t, BuildPrompt(testProfile()), BuildPrompt(testProfile()))
}
