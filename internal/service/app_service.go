package service

import (
	"alcyxob/fitgpt/internal/domain"
	"alcyxob/fitgpt/internal/planner"
	"alcyxob/fitgpt/internal/repository"
	"alcyxob/fitgpt/internal/stats"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"
)

// --- Error Definitions ---
var (
	ErrProfileMissing       = errors.New("Please complete your profile before generating a plan.")
	ErrGenerationInProgress = errors.New("A workout plan is already being generated.")
	ErrInvalidAPIKey        = errors.New("Invalid API key. Please check your Anthropic API key and try again.")
	ErrInvalidProfile       = errors.New("invalid profile")
	ErrInvalidSettings      = errors.New("invalid settings")
	ErrInvalidPlan          = errors.New("invalid workout plan")
)

// PlanGenerator produces plans from a profile. *planner.Client satisfies it.
type PlanGenerator interface {
	Generate(ctx context.Context, apiKey string, profile domain.UserProfile) (*domain.WorkoutPlan, []planner.Stage, error)
	ValidateAPIKey(ctx context.Context, apiKey string) bool
}

// AppService owns the application state. Every accepted mutation writes the
// affected document to the StateRepository first and then commits it in memory,
// so a failed write leaves the state unchanged. Returned values are copies.
type AppService interface {
	Load(ctx context.Context) error
	Snapshot() domain.AppState

	Profile() *domain.UserProfile
	SetProfile(ctx context.Context, profile domain.UserProfile) (*domain.UserProfile, error)
	UpdateProfile(ctx context.Context, update domain.ProfileUpdate) (*domain.UserProfile, error)
	ClearProfile(ctx context.Context) error

	Plan() *domain.WorkoutPlan
	SetPlan(ctx context.Context, plan domain.WorkoutPlan) (*domain.WorkoutPlan, error)
	ClearPlan(ctx context.Context) error
	GeneratePlan(ctx context.Context) (*domain.WorkoutPlan, []planner.Stage, error)
	IsGenerating() bool

	Logs() []domain.WorkoutLog
	UpsertLog(ctx context.Context, entry domain.WorkoutLog) (*domain.WorkoutLog, error)
	UpdateLog(ctx context.Context, date string, update domain.LogUpdate) (*domain.WorkoutLog, error)
	SetLogs(ctx context.Context, logs []domain.WorkoutLog) error
	ClearLogs(ctx context.Context) error
	ToggleExercise(ctx context.Context, date, exerciseID string) (*domain.WorkoutLog, error)
	CompleteWorkout(ctx context.Context, date string) (*domain.WorkoutLog, error)

	Settings() domain.AppSettings
	SetSettings(ctx context.Context, settings domain.AppSettings) (domain.AppSettings, error)
	UpdateSettings(ctx context.Context, update domain.SettingsUpdate) (domain.AppSettings, error)
	SetAPIKey(ctx context.Context, apiKey string) (domain.AppSettings, error)

	WorkoutForDate(date string) (domain.DayWorkout, error)
	TodaysWorkout() domain.DayWorkout
	Statistics() domain.Statistics
	Calendar(year int, month time.Month) ([]domain.CalendarDay, error)

	ExportDocument() domain.ExportDocument
	Export() ([]byte, error)
	Import(ctx context.Context, data []byte) bool
	ClearAll(ctx context.Context) error
}

// --- Service Implementation ---

type appService struct {
	repo      repository.StateRepository
	generator PlanGenerator
	now       func() time.Time

	mu    sync.RWMutex
	state domain.AppState
}

// NewAppService creates the state owner with default state. Call Load to read
// the persisted documents.
func NewAppService(repo repository.StateRepository, generator PlanGenerator) AppService {
	return &appService{
		repo:      repo,
		generator: generator,
		now:       time.Now,
		state: domain.AppState{
			WorkoutLogs: []domain.WorkoutLog{},
			Settings:    domain.DefaultSettings(),
		},
	}
}

// Load replaces the in-memory state with the persisted documents. Missing or
// unreadable documents fall back to their defaults.
func (s *appService) Load(ctx context.Context) error {
	profile, err := readDocument[*domain.UserProfile](ctx, s.repo, repository.KeyUserProfile, nil)
	if err != nil {
		return err
	}
	plan, err := readDocument[*domain.WorkoutPlan](ctx, s.repo, repository.KeyWorkoutPlan, nil)
	if err != nil {
		return err
	}
	logs, err := readDocument[[]domain.WorkoutLog](ctx, s.repo, repository.KeyWorkoutLogs, nil)
	if err != nil {
		return err
	}
	settings, err := readDocument(ctx, s.repo, repository.KeySettings, domain.DefaultSettings())
	if err != nil {
		return err
	}
	if logs == nil {
		logs = []domain.WorkoutLog{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.UserProfile = profile
	s.state.WorkoutPlan = plan
	s.state.WorkoutLogs = logs
	s.state.Settings = settings
	s.refreshOnboarded()
	log.Printf("INFO: State loaded (profile: %t, plan: %t, logs: %d)", profile != nil, plan != nil, len(logs))
	return nil
}

// readDocument decodes the document under key over a copy of fallback.
// A missing or undecodable document yields fallback.
func readDocument[T any](ctx context.Context, repo repository.StateRepository, key repository.StateKey, fallback T) (T, error) {
	data, err := repo.Get(ctx, key)
	if errors.Is(err, repository.ErrNotFound) {
		return fallback, nil
	}
	if err != nil {
		log.Printf("ERROR: Failed to read %s from state store: %v", key, err)
		return fallback, fmt.Errorf("read %s: %w", key, err)
	}
	value := fallback
	if err := json.Unmarshal(data, &value); err != nil {
		log.Printf("ERROR: Error reading %s from state store: %v", key, err)
		return fallback, nil
	}
	return value, nil
}

// write persists value as the whole document under key.
func (s *appService) write(ctx context.Context, key repository.StateKey, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := s.repo.Set(ctx, key, data); err != nil {
		log.Printf("ERROR: Error writing %s to state store: %v", key, err)
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

func (s *appService) remove(ctx context.Context, key repository.StateKey) error {
	if err := s.repo.Remove(ctx, key); err != nil {
		log.Printf("ERROR: Error removing %s from state store: %v", key, err)
		return fmt.Errorf("remove %s: %w", key, err)
	}
	return nil
}

// refreshOnboarded must be called with mu held.
func (s *appService) refreshOnboarded() {
	s.state.IsOnboarded = s.state.UserProfile != nil && s.state.UserProfile.CompletedOnboarding
}

func (s *appService) Snapshot() domain.AppState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := s.state
	out.UserProfile = cloneProfile(s.state.UserProfile)
	out.WorkoutPlan = s.state.WorkoutPlan.Clone()
	out.WorkoutLogs = domain.CloneLogs(s.state.WorkoutLogs)
	return out
}

func cloneProfile(p *domain.UserProfile) *domain.UserProfile {
	if p == nil {
		return nil
	}
	c := p.Clone()
	return &c
}

// --- Profile ---

func (s *appService) Profile() *domain.UserProfile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneProfile(s.state.UserProfile)
}

func validateProfile(p domain.UserProfile) error {
	if !p.FitnessLevel.Valid() {
		return fmt.Errorf("%w: fitnessLevel must be beginner, intermediate or advanced", ErrInvalidProfile)
	}
	if p.Availability.DaysPerWeek < 1 || p.Availability.DaysPerWeek > 7 {
		return fmt.Errorf("%w: availability.daysPerWeek must be between 1 and 7", ErrInvalidProfile)
	}
	if p.Availability.MinutesPerSession <= 0 {
		return fmt.Errorf("%w: availability.minutesPerSession must be positive", ErrInvalidProfile)
	}
	for _, day := range p.Availability.PreferredDays {
		if !isWeekdayName(day) {
			return fmt.Errorf("%w: unknown preferred day %q", ErrInvalidProfile, day)
		}
	}
	return nil
}

func isWeekdayName(name string) bool {
	for _, d := range domain.DaysOfWeek {
		if d == name {
			return true
		}
	}
	return false
}

// SetProfile replaces the profile. CreatedAt is kept from the previous profile
// when the caller leaves it empty; UpdatedAt is always stamped.
func (s *appService) SetProfile(ctx context.Context, profile domain.UserProfile) (*domain.UserProfile, error) {
	if err := validateProfile(profile); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if profile.CreatedAt.IsZero() {
		if s.state.UserProfile != nil {
			profile.CreatedAt = s.state.UserProfile.CreatedAt
		} else {
			profile.CreatedAt = s.now().UTC()
		}
	}
	return s.storeProfileLocked(ctx, profile)
}

func (s *appService) UpdateProfile(ctx context.Context, update domain.ProfileUpdate) (*domain.UserProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.UserProfile == nil {
		return nil, ErrProfileMissing
	}
	updated := update.Apply(s.state.UserProfile.Clone())
	if err := validateProfile(updated); err != nil {
		return nil, err
	}
	return s.storeProfileLocked(ctx, updated)
}

func (s *appService) storeProfileLocked(ctx context.Context, profile domain.UserProfile) (*domain.UserProfile, error) {
	profile = profile.Clone()
	profile.UpdatedAt = s.now().UTC()
	if err := s.write(ctx, repository.KeyUserProfile, profile); err != nil {
		return nil, err
	}
	s.state.UserProfile = &profile
	s.refreshOnboarded()
	return cloneProfile(&profile), nil
}

func (s *appService) ClearProfile(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.remove(ctx, repository.KeyUserProfile); err != nil {
		return err
	}
	s.state.UserProfile = nil
	s.refreshOnboarded()
	return nil
}

// --- Plan ---

func (s *appService) Plan() *domain.WorkoutPlan {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.WorkoutPlan.Clone()
}

func validatePlan(plan domain.WorkoutPlan) error {
	if len(plan.WeeklySchedule) != 7 {
		return fmt.Errorf("%w: weeklySchedule must have 7 days, got %d", ErrInvalidPlan, len(plan.WeeklySchedule))
	}
	for i, d := range plan.WeeklySchedule {
		if d.DayOfWeek != i {
			return fmt.Errorf("%w: weeklySchedule must be ordered Sunday to Saturday", ErrInvalidPlan)
		}
		if d.IsRestDay && (len(d.Exercises) > 0 || d.Duration != 0) {
			return fmt.Errorf("%w: rest day %s has exercises or a duration", ErrInvalidPlan, d.DayName)
		}
	}
	return nil
}

// SetPlan replaces the plan wholesale. Logs are not touched.
func (s *appService) SetPlan(ctx context.Context, plan domain.WorkoutPlan) (*domain.WorkoutPlan, error) {
	if err := validatePlan(plan); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.storePlanLocked(ctx, plan)
}

func (s *appService) storePlanLocked(ctx context.Context, plan domain.WorkoutPlan) (*domain.WorkoutPlan, error) {
	stored := plan.Clone()
	stored.UpdatedAt = s.now().UTC()
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = stored.UpdatedAt
	}
	if err := s.write(ctx, repository.KeyWorkoutPlan, stored); err != nil {
		return nil, err
	}
	s.state.WorkoutPlan = stored
	return stored.Clone(), nil
}

func (s *appService) ClearPlan(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.remove(ctx, repository.KeyWorkoutPlan); err != nil {
		return err
	}
	s.state.WorkoutPlan = nil
	return nil
}

func (s *appService) IsGenerating() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.IsGenerating
}

// GeneratePlan asks the generator for a new plan from the current profile and
// stores it. The lock is not held during the request, so log updates proceed
// meanwhile; a second generation is refused until the first one returns.
func (s *appService) GeneratePlan(ctx context.Context) (*domain.WorkoutPlan, []planner.Stage, error) {
	s.mu.Lock()
	if s.state.IsGenerating {
		s.mu.Unlock()
		return nil, nil, ErrGenerationInProgress
	}
	apiKey := s.state.Settings.APIKey
	if apiKey == "" {
		s.mu.Unlock()
		return nil, nil, planner.ErrConfiguration
	}
	if s.state.UserProfile == nil {
		s.mu.Unlock()
		return nil, nil, ErrProfileMissing
	}
	profile := s.state.UserProfile.Clone()
	s.state.IsGenerating = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.state.IsGenerating = false
		s.mu.Unlock()
	}()

	log.Printf("INFO: Generating workout plan (%d days/week, %d min)", profile.Availability.DaysPerWeek, profile.Availability.MinutesPerSession)
	plan, stages, err := s.generator.Generate(ctx, apiKey, profile)
	if err != nil {
		log.Printf("ERROR: Workout plan generation failed: %v", err)
		return nil, stages, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	stored, err := s.storePlanLocked(ctx, *plan)
	if err != nil {
		return nil, stages, err
	}
	log.Printf("INFO: Workout plan %s generated", stored.ID)
	return stored, stages, nil
}

// --- Settings ---

func (s *appService) Settings() domain.AppSettings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Settings
}

func validateSettings(settings domain.AppSettings) error {
	if settings.WeekStartsOn != 0 && settings.WeekStartsOn != 1 {
		return fmt.Errorf("%w: weekStartsOn must be 0 (Sunday) or 1 (Monday)", ErrInvalidSettings)
	}
	return nil
}

func (s *appService) SetSettings(ctx context.Context, settings domain.AppSettings) (domain.AppSettings, error) {
	if err := validateSettings(settings); err != nil {
		return domain.AppSettings{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.storeSettingsLocked(ctx, settings)
}

func (s *appService) UpdateSettings(ctx context.Context, update domain.SettingsUpdate) (domain.AppSettings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	updated := update.Apply(s.state.Settings)
	if err := validateSettings(updated); err != nil {
		return domain.AppSettings{}, err
	}
	return s.storeSettingsLocked(ctx, updated)
}

func (s *appService) storeSettingsLocked(ctx context.Context, settings domain.AppSettings) (domain.AppSettings, error) {
	if err := s.write(ctx, repository.KeySettings, settings); err != nil {
		return domain.AppSettings{}, err
	}
	s.state.Settings = settings
	return settings, nil
}

// SetAPIKey stores the key only after the completions endpoint accepted it.
func (s *appService) SetAPIKey(ctx context.Context, apiKey string) (domain.AppSettings, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" || !s.generator.ValidateAPIKey(ctx, apiKey) {
		return domain.AppSettings{}, ErrInvalidAPIKey
	}
	return s.UpdateSettings(ctx, domain.SettingsUpdate{APIKey: &apiKey})
}

// --- Derived ---

func (s *appService) Statistics() domain.Statistics {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return stats.Calculate(s.state.WorkoutLogs, s.state.WorkoutPlan, s.now())
}
