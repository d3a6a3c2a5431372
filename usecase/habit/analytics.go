package habit

import (
	"time"

	"github.com/plandeck/backend/domain"
)

const (
	trendWindowDays   = 28
	weeklyBucketCount = 4
	minTrendEntries   = 4

	// Success rates within ±5 percentage points count as stable.
	trendThreshold = 0.05

	trendConfidence    = 0.75
	lowTrendConfidence = 0.3
)

func computeAnalytics(habitID string, entries []domain.HabitEntry, asOf time.Time) *domain.HabitAnalytics {
	days := make(map[string]bool, len(entries))
	for _, e := range entries {
		days[e.Day] = true
	}

	trend, confidence := trendDirection(days, asOf)
	return &domain.HabitAnalytics{
		HabitID:         habitID,
		CurrentStreak:   currentStreak(days, asOf),
		LongestStreak:   longestStreak(days),
		WeeklyRates:     weeklyRates(days, asOf),
		Trend:           trend,
		ConfidenceLevel: confidence,
		ComputedAt:      asOf,
	}
}

// currentStreak counts consecutive checked days ending at asOf. A missing
// entry for asOf itself does not break the streak until the day has passed.
func currentStreak(days map[string]bool, asOf time.Time) int {
	day := truncateDay(asOf)
	if !days[domain.DayKey(day)] {
		day = day.AddDate(0, 0, -1)
	}
	streak := 0
	for days[domain.DayKey(day)] {
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return streak
}

func longestStreak(days map[string]bool) int {
	longest := 0
	for key := range days {
		start, err := domain.ParseDay(key)
		if err != nil {
			continue
		}
		// Only walk runs from their first day.
		if days[domain.DayKey(start.AddDate(0, 0, -1))] {
			continue
		}
		run, day := 0, start
		for days[domain.DayKey(day)] {
			run++
			day = day.AddDate(0, 0, 1)
		}
		if run > longest {
			longest = run
		}
	}
	return longest
}

// weeklyRates buckets the last four 7-day windows, oldest first. The newest
// bucket ends at asOf day.
func weeklyRates(days map[string]bool, asOf time.Time) []domain.WeekRate {
	end := truncateDay(asOf)
	rates := make([]domain.WeekRate, 0, weeklyBucketCount)
	for i := weeklyBucketCount - 1; i >= 0; i-- {
		start := end.AddDate(0, 0, -(7*i + 6))
		completed := 0
		for d := 0; d < 7; d++ {
			if days[domain.DayKey(start.AddDate(0, 0, d))] {
				completed++
			}
		}
		rates = append(rates, domain.WeekRate{
			WeekStart: domain.DayKey(start),
			Completed: completed,
			Rate:      float64(completed) / 7,
		})
	}
	return rates
}

// trendDirection compares the success rate of the older half of the window
// against the newer half.
func trendDirection(days map[string]bool, asOf time.Time) (string, float64) {
	end := truncateDay(asOf)
	half := trendWindowDays / 2

	var older, newer, total int
	for i := 0; i < trendWindowDays; i++ {
		if !days[domain.DayKey(end.AddDate(0, 0, -i))] {
			continue
		}
		total++
		if i < half {
			newer++
		} else {
			older++
		}
	}

	if total < minTrendEntries {
		return domain.TrendStable, lowTrendConfidence
	}

	diff := (float64(newer) - float64(older)) / float64(half)
	switch {
	case diff > trendThreshold:
		return domain.TrendImproving, trendConfidence
	case diff < -trendThreshold:
		return domain.TrendDeclining, trendConfidence
	default:
		return domain.TrendStable, trendConfidence
	}
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
