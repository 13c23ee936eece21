package stats

import (
	"alcyxob/fitgpt/internal/domain"
	"math"
	"time"
)

const (
	// DefaultScheduledDays is assumed per week when there is no plan.
	DefaultScheduledDays = 4
	completionWindowDays = 30
	currentStreakMaxDays = 365
)

// CalculateStatistics derives the statistics as of now.
func CalculateStatistics(logs []domain.WorkoutLog, plan *domain.WorkoutPlan) domain.Statistics {
	return Calculate(logs, plan, time.Now())
}

// Calculate derives the statistics as of the calendar date of now.
// Logs whose date does not parse are ignored by every date-based metric.
func Calculate(logs []domain.WorkoutLog, plan *domain.WorkoutPlan, now time.Time) domain.Statistics {
	today := Day(now)
	weekStart := StartOfWeek(today)
	monthStart := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)
	windowStart := today.AddDate(0, 0, -completionWindowDays)

	var (
		stats                      domain.Statistics
		durationSum, durationCount int
		recentCompleted            int
	)

	for _, log := range logs {
		date, err := domain.ParseDate(log.Date)
		dated := err == nil

		if dated && !date.Before(windowStart) && !date.After(today) && log.Completed {
			recentCompleted++
		}
		if !log.Completed {
			continue
		}

		stats.TotalWorkoutsCompleted++
		if dated && !date.Before(weekStart) && !date.After(today) {
			stats.ThisWeekCompleted++
		}
		if dated && !date.Before(monthStart) && !date.After(today) {
			stats.ThisMonthCompleted++
		}
		if log.Duration != nil && *log.Duration > 0 {
			durationSum += *log.Duration
			durationCount++
		}
	}

	if durationCount > 0 {
		stats.AverageWorkoutDuration = roundDiv(durationSum, durationCount)
	}
	stats.CompletionRate = completionRate(recentCompleted, plan)
	stats.MostFrequentWorkoutType = mostFrequentType(logs, plan)
	stats.CurrentStreak, stats.LongestStreak = streaks(logs, plan, today)
	return stats
}

func completionRate(recentCompleted int, plan *domain.WorkoutPlan) int {
	scheduled := DefaultScheduledDays
	if plan != nil {
		scheduled = 0
		for _, d := range plan.WeeklySchedule {
			if !d.IsRestDay {
				scheduled++
			}
		}
	}
	expected := int(math.Round(float64(scheduled) / 7 * completionWindowDays))
	if expected == 0 {
		return 0
	}
	rate := int(math.Round(float64(recentCompleted) / float64(expected) * 100))
	return min(rate, 100)
}

// mostFrequentType tallies plan day types of completed logs. Ties go to the
// type seen first.
func mostFrequentType(logs []domain.WorkoutLog, plan *domain.WorkoutPlan) string {
	counts := make(map[string]int)
	var order []string
	for _, log := range logs {
		if !log.Completed {
			continue
		}
		day, ok := plan.WorkoutByID(log.WorkoutID)
		if !ok || day.Type == "" {
			continue
		}
		if counts[day.Type] == 0 {
			order = append(order, day.Type)
		}
		counts[day.Type]++
	}

	best, bestCount := domain.NoWorkoutType, 0
	for _, t := range order {
		if counts[t] > bestCount {
			best, bestCount = t, counts[t]
		}
	}
	return best
}

// streaks counts consecutive completed scheduled weekdays. Unscheduled
// weekdays neither extend nor break a streak.
func streaks(logs []domain.WorkoutLog, plan *domain.WorkoutPlan, today time.Time) (current, longest int) {
	if plan == nil || len(logs) == 0 {
		return 0, 0
	}
	scheduled := plan.ScheduledWeekdays()
	if len(scheduled) == 0 {
		return 0, 0
	}

	// The first log for a date decides it.
	completed := make(map[string]bool, len(logs))
	seen := make(map[string]bool, len(logs))
	var earliest, latest time.Time
	for _, log := range logs {
		if !seen[log.Date] {
			seen[log.Date] = true
			completed[log.Date] = log.Completed
		}
		date, err := domain.ParseDate(log.Date)
		if err != nil {
			continue
		}
		if earliest.IsZero() || date.Before(earliest) {
			earliest = date
		}
		if latest.IsZero() || date.After(latest) {
			latest = date
		}
	}

	day := today
	for i := 0; i < currentStreakMaxDays; i++ {
		if scheduled[int(day.Weekday())] {
			if completed[FormatDate(day)] {
				current++
			} else if day.Before(today) {
				break
			}
		}
		day = day.AddDate(0, 0, -1)
	}

	if earliest.IsZero() {
		return current, 0
	}
	run := 0
	for day := earliest; !day.After(latest); day = day.AddDate(0, 0, 1) {
		if !scheduled[int(day.Weekday())] {
			continue
		}
		if completed[FormatDate(day)] {
			run++
			longest = max(longest, run)
		} else {
			run = 0
		}
	}
	return current, longest
}

func roundDiv(sum, n int) int {
	return int(math.Round(float64(sum) / float64(n)))
}
