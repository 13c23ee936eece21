package domain

import (
	"slices"
	"time"
)

// FitnessLevel is the self-reported training experience collected at onboarding.
type FitnessLevel string

const (
	LevelBeginner     FitnessLevel = "beginner"
	LevelIntermediate FitnessLevel = "intermediate"
	LevelAdvanced     FitnessLevel = "advanced"
)

// Valid reports whether the level is one of the known values.
func (l FitnessLevel) Valid() bool {
	switch l {
	case LevelBeginner, LevelIntermediate, LevelAdvanced:
		return true
	}
	return false
}

// Availability describes when and for how long the user can train.
type Availability struct {
	DaysPerWeek       int      `json:"daysPerWeek"`
	MinutesPerSession int      `json:"minutesPerSession"`
	PreferredDays     []string `json:"preferredDays"` // Weekday names, e.g. "Monday"
}

// UserProfile is everything the onboarding wizard collects about the user.
// It is created once onboarding completes and only replaced or patched afterwards.
type UserProfile struct {
	Goals               []string     `json:"goals"` // ids from FitnessGoals
	FitnessLevel        FitnessLevel `json:"fitnessLevel"`
	CurrentRoutine      string       `json:"currentRoutine"`
	Availability        Availability `json:"availability"`
	Equipment           []string     `json:"equipment"`   // ids from EquipmentOptions
	Limitations         string       `json:"limitations"` // Injuries, conditions, free text
	Preferences         []string     `json:"preferences"` // ids from WorkoutPreferences
	Name                string       `json:"name,omitempty"`
	CompletedOnboarding bool         `json:"completedOnboarding"`
	CreatedAt           time.Time    `json:"createdAt"`
	UpdatedAt           time.Time    `json:"updatedAt"`
}

// ProfileUpdate carries a partial profile change. Nil fields are left untouched.
type ProfileUpdate struct {
	Goals               *[]string     `json:"goals,omitempty"`
	FitnessLevel        *FitnessLevel `json:"fitnessLevel,omitempty"`
	CurrentRoutine      *string       `json:"currentRoutine,omitempty"`
	Availability        *Availability `json:"availability,omitempty"`
	Equipment           *[]string     `json:"equipment,omitempty"`
	Limitations         *string       `json:"limitations,omitempty"`
	Preferences         *[]string     `json:"preferences,omitempty"`
	Name                *string       `json:"name,omitempty"`
	CompletedOnboarding *bool         `json:"completedOnboarding,omitempty"`
}

// Apply returns a copy of p with the non-nil fields of u applied.
func (u ProfileUpdate) Apply(p UserProfile) UserProfile {
	if u.Goals != nil {
		p.Goals = *u.Goals
	}
	if u.FitnessLevel != nil {
		p.FitnessLevel = *u.FitnessLevel
	}
	if u.CurrentRoutine != nil {
		p.CurrentRoutine = *u.CurrentRoutine
	}
	if u.Availability != nil {
		p.Availability = *u.Availability
	}
	if u.Equipment != nil {
		p.Equipment = *u.Equipment
	}
	if u.Limitations != nil {
		p.Limitations = *u.Limitations
	}
	if u.Preferences != nil {
		p.Preferences = *u.Preferences
	}
	if u.Name != nil {
		p.Name = *u.Name
	}
	if u.CompletedOnboarding != nil {
		p.CompletedOnboarding = *u.CompletedOnboarding
	}
	return p
}

// ProfileSnapshot is the part of the profile copied into a plan at generation time.
// Limitations and the current routine are deliberately not part of it.
type ProfileSnapshot struct {
	Goals        []string     `json:"goals"`
	FitnessLevel FitnessLevel `json:"fitnessLevel"`
	Availability Availability `json:"availability"`
	Equipment    []string     `json:"equipment"`
	Preferences  []string     `json:"preferences"`
}

// Snapshot copies the plan-relevant fields of the profile.
func (p *UserProfile) Snapshot() ProfileSnapshot {
	return ProfileSnapshot{
		Goals:        p.Goals,
		FitnessLevel: p.FitnessLevel,
		Availability: p.Availability,
		Equipment:    p.Equipment,
		Preferences:  p.Preferences,
	}
}

// Clone returns a copy that shares no slices with p.
func (p UserProfile) Clone() UserProfile {
	p.Goals = slices.Clone(p.Goals)
	p.Equipment = slices.Clone(p.Equipment)
	p.Preferences = slices.Clone(p.Preferences)
	p.Availability.PreferredDays = slices.Clone(p.Availability.PreferredDays)
	return p
}
