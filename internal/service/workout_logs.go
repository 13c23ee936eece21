package service

import (
	"alcyxob/fitgpt/internal/domain"
	"alcyxob/fitgpt/internal/repository"
	"alcyxob/fitgpt/internal/stats"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// --- Error Definitions ---
var (
	ErrInvalidDate      = errors.New("date must use the YYYY-MM-DD format")
	ErrInvalidMonth     = errors.New("month must be between 1 and 12")
	ErrInvalidLog       = errors.New("invalid workout log")
	ErrLogNotFound      = errors.New("no workout log for this date")
	ErrNoWorkout        = errors.New("no workout is scheduled for this date")
	ErrRestDay          = errors.New("this date is a rest day")
	ErrExerciseNotFound = errors.New("exercise is not part of this workout")
)

func parseDate(date string) (time.Time, error) {
	t, err := domain.ParseDate(date)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}
	return t, nil
}

func (s *appService) Logs() []domain.WorkoutLog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return domain.CloneLogs(s.state.WorkoutLogs)
}

// logIndex returns the position of the log for date, or -1. mu must be held.
func (s *appService) logIndex(date string) int {
	for i := range s.state.WorkoutLogs {
		if s.state.WorkoutLogs[i].Date == date {
			return i
		}
	}
	return -1
}

// storeLogsLocked persists the whole list and commits it.
func (s *appService) storeLogsLocked(ctx context.Context, logs []domain.WorkoutLog) error {
	if err := s.write(ctx, repository.KeyWorkoutLogs, logs); err != nil {
		return err
	}
	s.state.WorkoutLogs = logs
	return nil
}

// upsertLocked replaces the log with the same date in place, or appends it.
func (s *appService) upsertLocked(ctx context.Context, entry domain.WorkoutLog) (*domain.WorkoutLog, error) {
	logs := domain.CloneLogs(s.state.WorkoutLogs)
	if i := s.logIndex(entry.Date); i >= 0 {
		logs[i] = entry
	} else {
		logs = append(logs, entry)
	}
	if err := s.storeLogsLocked(ctx, logs); err != nil {
		return nil, err
	}
	out := entry.Clone()
	return &out, nil
}

// UpsertLog stores entry as the log of its date. An existing log for that date
// is replaced entirely. ID and DayOfWeek are filled in when missing.
func (s *appService) UpsertLog(ctx context.Context, entry domain.WorkoutLog) (*domain.WorkoutLog, error) {
	day, err := parseDate(entry.Date)
	if err != nil {
		return nil, err
	}
	entry = entry.Clone()
	entry.DayOfWeek = int(day.Weekday())
	if entry.Exercises == nil {
		entry.Exercises = []domain.ExerciseLog{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if entry.ID == "" {
		if i := s.logIndex(entry.Date); i >= 0 {
			entry.ID = s.state.WorkoutLogs[i].ID
		} else {
			entry.ID = uuid.NewString()
		}
	}
	return s.upsertLocked(ctx, entry)
}

// UpdateLog merges update into the log of date.
func (s *appService) UpdateLog(ctx context.Context, date string, update domain.LogUpdate) (*domain.WorkoutLog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.logIndex(date)
	if i < 0 {
		return nil, ErrLogNotFound
	}
	logs := domain.CloneLogs(s.state.WorkoutLogs)
	logs[i] = update.Apply(logs[i]).Clone()
	if err := s.storeLogsLocked(ctx, logs); err != nil {
		return nil, err
	}
	out := logs[i].Clone()
	return &out, nil
}

// SetLogs replaces the whole history. Dates must be valid and unique.
func (s *appService) SetLogs(ctx context.Context, logs []domain.WorkoutLog) error {
	seen := make(map[string]bool, len(logs))
	for _, entry := range logs {
		if _, err := parseDate(entry.Date); err != nil {
			return err
		}
		if seen[entry.Date] {
			return fmt.Errorf("%w: duplicate date %s", ErrInvalidLog, entry.Date)
		}
		seen[entry.Date] = true
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.storeLogsLocked(ctx, domain.CloneLogs(logs))
}

func (s *appService) ClearLogs(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.remove(ctx, repository.KeyWorkoutLogs); err != nil {
		return err
	}
	s.state.WorkoutLogs = []domain.WorkoutLog{}
	return nil
}

// trainingDayLocked resolves the non-rest plan day scheduled on date.
func (s *appService) trainingDayLocked(date string) (time.Time, *domain.DailyWorkout, error) {
	day, err := parseDate(date)
	if err != nil {
		return time.Time{}, nil, err
	}
	workout, ok := s.state.WorkoutPlan.DayFor(int(day.Weekday()))
	if !ok {
		return day, nil, ErrNoWorkout
	}
	if workout.IsRestDay {
		return day, nil, ErrRestDay
	}
	return day, workout, nil
}

// checklistLog builds the log of a plan day from per-exercise completion.
// The workout counts as completed once every exercise is checked. Fields the
// checklist does not manage are carried over from the existing log.
func (s *appService) checklistLog(date string, day time.Time, workout *domain.DailyWorkout, done map[string]bool) domain.WorkoutLog {
	var entry domain.WorkoutLog
	if i := s.logIndex(date); i >= 0 {
		entry = s.state.WorkoutLogs[i].Clone()
	} else {
		entry = domain.WorkoutLog{ID: uuid.NewString(), Date: date}
	}
	entry.DayOfWeek = int(day.Weekday())
	entry.WorkoutID = workout.ID
	entry.Exercises = make([]domain.ExerciseLog, 0, len(workout.Exercises))
	completed := true
	for _, ex := range workout.Exercises {
		entry.Exercises = append(entry.Exercises, domain.ExerciseLog{ExerciseID: ex.ID, Completed: done[ex.ID]})
		completed = completed && done[ex.ID]
	}
	entry.Completed = completed
	return entry
}

// ToggleExercise flips one checklist item of the workout scheduled on date.
func (s *appService) ToggleExercise(ctx context.Context, date, exerciseID string) (*domain.WorkoutLog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	day, workout, err := s.trainingDayLocked(date)
	if err != nil {
		return nil, err
	}
	if _, ok := workout.ExerciseByID(exerciseID); !ok {
		return nil, ErrExerciseNotFound
	}

	done := make(map[string]bool)
	if i := s.logIndex(date); i >= 0 {
		for _, ex := range s.state.WorkoutLogs[i].Exercises {
			done[ex.ExerciseID] = ex.Completed
		}
	}
	done[exerciseID] = !done[exerciseID]

	return s.upsertLocked(ctx, s.checklistLog(date, day, workout, done))
}

// CompleteWorkout checks every exercise of the workout scheduled on date.
func (s *appService) CompleteWorkout(ctx context.Context, date string) (*domain.WorkoutLog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	day, workout, err := s.trainingDayLocked(date)
	if err != nil {
		return nil, err
	}
	done := make(map[string]bool, len(workout.Exercises))
	for _, ex := range workout.Exercises {
		done[ex.ID] = true
	}
	return s.upsertLocked(ctx, s.checklistLog(date, day, workout, done))
}

// --- Lookups ---

// dayWorkoutLocked pairs the plan day of date's weekday with the log of date.
func (s *appService) dayWorkoutLocked(date string, day time.Time) domain.DayWorkout {
	out := domain.DayWorkout{Date: date}
	if workout, ok := s.state.WorkoutPlan.DayFor(int(day.Weekday())); ok {
		w := *workout
		w.Exercises = append([]domain.Exercise(nil), workout.Exercises...)
		out.Workout = &w
	}
	if i := s.logIndex(date); i >= 0 {
		entry := s.state.WorkoutLogs[i].Clone()
		out.Log = &entry
	}
	return out
}

func (s *appService) WorkoutForDate(date string) (domain.DayWorkout, error) {
	day, err := parseDate(date)
	if err != nil {
		return domain.DayWorkout{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dayWorkoutLocked(date, day), nil
}

func (s *appService) TodaysWorkout() domain.DayWorkout {
	today := stats.Day(s.now())
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dayWorkoutLocked(stats.FormatDate(today), today)
}

// Calendar returns the 42-cell grid of a month with the plan day, log and
// status of every date.
func (s *appService) Calendar(year int, month time.Month) ([]domain.CalendarDay, error) {
	if month < time.January || month > time.December {
		return nil, ErrInvalidMonth
	}
	today := stats.Day(s.now())

	s.mu.RLock()
	defer s.mu.RUnlock()
	dates := stats.MonthDates(year, month)
	days := make([]domain.CalendarDay, 0, len(dates))
	for _, d := range dates {
		cell := domain.CalendarDay{
			DayWorkout:     s.dayWorkoutLocked(stats.FormatDate(d), d),
			DayOfWeek:      int(d.Weekday()),
			IsCurrentMonth: d.Month() == month,
			IsToday:        stats.SameDay(d, today),
		}
		cell.Status = dayStatus(cell.DayWorkout, d, today)
		days = append(days, cell)
	}
	return days, nil
}

func dayStatus(dw domain.DayWorkout, day, today time.Time) domain.DayStatus {
	switch {
	case dw.Workout == nil:
		return domain.StatusNone
	case dw.Workout.IsRestDay:
		return domain.StatusRest
	case dw.Log != nil && dw.Log.Completed:
		return domain.StatusCompleted
	case day.Before(today):
		return domain.StatusMissed
	}
	return domain.StatusScheduled
}
