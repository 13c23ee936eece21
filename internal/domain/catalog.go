package domain

// Option is one selectable entry of an onboarding catalog.
type Option struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// DaysOfWeek indexes weekday names by dayOfWeek (0 = Sunday).
var DaysOfWeek = [7]string{
	"Sunday",
	"Monday",
	"Tuesday",
	"Wednesday",
	"Thursday",
	"Friday",
	"Saturday",
}

var FitnessGoals = []Option{
	{ID: "weight-loss", Label: "Weight Loss"},
	{ID: "muscle-gain", Label: "Muscle Gain"},
	{ID: "endurance", Label: "Build Endurance"},
	{ID: "strength", Label: "Strength Training"},
	{ID: "flexibility", Label: "Flexibility & Mobility"},
	{ID: "general-fitness", Label: "General Fitness"},
	{ID: "sports-performance", Label: "Sports Performance"},
	{ID: "stress-relief", Label: "Stress Relief"},
}

var EquipmentOptions = []Option{
	{ID: "gym", Label: "Full Gym Access"},
	{ID: "home-gym", Label: "Home Gym"},
	{ID: "basic-equipment", Label: "Basic Equipment"},
	{ID: "bodyweight", Label: "Bodyweight Only"},
	{ID: "kettlebells", Label: "Kettlebells"},
	{ID: "pull-up-bar", Label: "Pull-up Bar"},
	{ID: "cardio-machines", Label: "Cardio Machines"},
	{ID: "yoga-mat", Label: "Yoga Mat"},
}

var WorkoutPreferences = []Option{
	{ID: "strength", Label: "Strength Training"},
	{ID: "cardio", Label: "Cardio Workouts"},
	{ID: "hiit", Label: "HIIT Sessions"},
	{ID: "yoga", Label: "Yoga & Stretching"},
	{ID: "pilates", Label: "Pilates"},
	{ID: "calisthenics", Label: "Calisthenics"},
	{ID: "circuit", Label: "Circuit Training"},
	{ID: "sports", Label: "Sports-Specific"},
}

// LabelFor returns the label of id in options, or id itself when it is not listed.
func LabelFor(options []Option, id string) string {
	for _, o := range options {
		if o.ID == id {
			return o.Label
		}
	}
	return id
}

// DayName returns the weekday name for dayOfWeek, or "" when out of range.
func DayName(dayOfWeek int) string {
	if dayOfWeek < 0 || dayOfWeek > 6 {
		return ""
	}
	return DaysOfWeek[dayOfWeek]
}
