package domain

import "time"

// Habit trend directions.
const (
	TrendImproving = "improving"
	TrendDeclining = "declining"
	TrendStable    = "stable"
)

// WeekRate is one seven-day success bucket.
type WeekRate struct {
	WeekStart string  `json:"week_start"`
	Completed int     `json:"completed"`
	Rate      float64 `json:"rate"`
}

// HabitAnalytics aggregates streaks, weekly buckets and the trend direction
// for a single habit.
type HabitAnalytics struct {
	HabitID         string     `json:"habit_id"`
	CurrentStreak   int        `json:"current_streak"`
	LongestStreak   int        `json:"longest_streak"`
	WeeklyRates     []WeekRate `json:"weekly_rates"`
	Trend           string     `json:"trend"`
	ConfidenceLevel float64    `json:"confidence_level"`
	ComputedAt      time.Time  `json:"computed_at"`
}
