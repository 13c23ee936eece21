package planner

import (
	"alcyxob/fitgpt/internal/domain"
	"fmt"
	"strings"
)

// outputFormat is the fixed schema and rule block appended to every prompt.
const outputFormat = `## Output Format
Respond with ONLY a valid JSON object (no markdown, no code blocks, no explanations) in this exact format:

{
  "weeklySchedule": [
    {
      "dayOfWeek": 0,
      "dayName": "Sunday",
      "type": "Rest",
      "focus": "Recovery",
      "duration": 0,
      "isRestDay": true,
      "exercises": [],
      "notes": "Active recovery - light walking or stretching recommended"
    },
    {
      "dayOfWeek": 1,
      "dayName": "Monday",
      "type": "Strength Training",
      "focus": "Upper Body",
      "duration": 45,
      "isRestDay": false,
      "exercises": [
        {
          "name": "Exercise Name",
          "category": "warmup",
          "sets": 1,
          "reps": "30 seconds",
          "duration": "30 seconds",
          "rest": "10 seconds",
          "instructions": "Step by step instructions",
          "modifications": "Easier/harder variations"
        }
      ],
      "notes": "Focus on proper form"
    }
  ],
  "progressionNotes": "Progression suggestions for the coming weeks"
}

Rules for the JSON:
- dayOfWeek: 0=Sunday, 1=Monday, 2=Tuesday, 3=Wednesday, 4=Thursday, 5=Friday, 6=Saturday
- Include ALL 7 days (mark non-workout days as rest days)
- category must be one of: "warmup", "main", "cooldown"
- For rest days: isRestDay=true, exercises=[], duration=0
- For workout days: include 2-3 warmup exercises, 4-8 main exercises, 2-3 cooldown exercises
- Each exercise must have: name, category, instructions (and optionally sets, reps, duration, rest, modifications)

Generate the workout plan now:`

// BuildPrompt renders the profile into the instruction sent to the model.
// The same profile always yields the same text.
func BuildPrompt(profile domain.UserProfile) string {
	goals := labels(domain.FitnessGoals, profile.Goals)
	equipment := labels(domain.EquipmentOptions, profile.Equipment)
	preferences := labels(domain.WorkoutPreferences, profile.Preferences)
	workoutDays := strings.Join(profile.Availability.PreferredDays, ", ")
	minutes := profile.Availability.MinutesPerSession

	var b strings.Builder
	b.WriteString("You are a professional fitness coach creating a personalized weekly workout plan. ")
	b.WriteString("Generate a comprehensive workout plan based on the following user profile:\n\n")

	b.WriteString("## User Profile\n")
	fmt.Fprintf(&b, "- **Fitness Goals**: %s\n", goals)
	fmt.Fprintf(&b, "- **Fitness Level**: %s\n", profile.FitnessLevel)
	fmt.Fprintf(&b, "- **Current Routine**: %s\n", orDefault(profile.CurrentRoutine, "None specified"))
	fmt.Fprintf(&b, "- **Workout Days**: %s (%d days per week)\n", workoutDays, profile.Availability.DaysPerWeek)
	fmt.Fprintf(&b, "- **Session Duration**: %d minutes per session\n", minutes)
	fmt.Fprintf(&b, "- **Available Equipment**: %s\n", orDefault(equipment, "Bodyweight only"))
	fmt.Fprintf(&b, "- **Physical Limitations**: %s\n", orDefault(profile.Limitations, "None"))
	fmt.Fprintf(&b, "- **Preferred Workout Types**: %s\n\n", orDefault(preferences, "No specific preferences"))

	b.WriteString("## Requirements\n")
	b.WriteString("Create a structured weekly workout plan that:\n")
	fmt.Fprintf(&b, "1. Schedules workouts ONLY on the specified days: %s\n", workoutDays)
	fmt.Fprintf(&b, "2. Fits within %d minutes per session\n", minutes)
	fmt.Fprintf(&b, "3. Uses only the available equipment: %s\n", orDefault(equipment, "bodyweight exercises"))
	b.WriteString("4. Avoids exercises that may aggravate any limitations mentioned\n")
	b.WriteString("5. Aligns with the user's goals and preferences\n")
	b.WriteString("6. Includes proper warm-up and cool-down for each workout\n")
	b.WriteString("7. Provides progressive overload suggestions\n\n")

	b.WriteString(outputFormat)
	return b.String()
}

func labels(options []domain.Option, ids []string) string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, domain.LabelFor(options, id))
	}
	return strings.Join(out, ", ")
}

func orDefault(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}
