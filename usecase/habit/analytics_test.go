package habit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/plandeck/backend/domain"
)

func entriesFor(days ...string) []domain.HabitEntry {
	entries := make([]domain.HabitEntry, 0, len(days))
	for _, d := range days {
		entries = append(entries, domain.HabitEntry{HabitID: "h1", Day: d})
	}
	return entries
}

func TestCurrentStreakAcrossMonthBoundary(t *testing.T) {
	asOf := time.Date(2026, 3, 1, 22, 0, 0, 0, time.UTC)
	a := computeAnalytics("h1", entriesFor("2026-02-27", "2026-02-28", "2026-03-01"), asOf)

	assert.Equal(t, 3, a.CurrentStreak)
	assert.Equal(t, 3, a.LongestStreak)
}

func TestCurrentStreakSurvivesUncheckedToday(t *testing.T) {
	asOf := time.Date(2026, 3, 2, 7, 0, 0, 0, time.UTC)
	a := computeAnalytics("h1", entriesFor("2026-02-28", "2026-03-01"), asOf)

	// Today has not been checked off yet; the streak ends yesterday.
	assert.Equal(t, 2, a.CurrentStreak)
}

func TestMissedDayResetsStreak(t *testing.T) {
	asOf := time.Date(2026, 3, 5, 12, 0, 0, 0, time.UTC)
	a := computeAnalytics("h1", entriesFor("2026-03-01", "2026-03-02", "2026-03-04", "2026-03-05"), asOf)

	assert.Equal(t, 2, a.CurrentStreak)
	assert.Equal(t, 2, a.LongestStreak)
}

func TestLongestStreakIgnoresPosition(t *testing.T) {
	asOf := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	a := computeAnalytics("h1", entriesFor(
		"2026-02-20", "2026-02-21", "2026-02-22", "2026-02-23",
		"2026-03-09", "2026-03-10",
	), asOf)

	assert.Equal(t, 2, a.CurrentStreak)
	assert.Equal(t, 4, a.LongestStreak)
}

func TestWeeklyRates(t *testing.T) {
	asOf := time.Date(2026, 3, 28, 12, 0, 0, 0, time.UTC)
	// Every day of the newest week, nothing before.
	a := computeAnalytics("h1", entriesFor(
		"2026-03-22", "2026-03-23", "2026-03-24", "2026-03-25",
		"2026-03-26", "2026-03-27", "2026-03-28",
	), asOf)

	assert.Len(t, a.WeeklyRates, 4)
	assert.Equal(t, "2026-03-01", a.WeeklyRates[0].WeekStart)
	assert.Zero(t, a.WeeklyRates[0].Completed)
	newest := a.WeeklyRates[3]
	assert.Equal(t, "2026-03-22", newest.WeekStart)
	assert.Equal(t, 7, newest.Completed)
	assert.InDelta(t, 1.0, newest.Rate, 1e-9)
}

func TestTrendImproving(t *testing.T) {
	asOf := time.Date(2026, 3, 28, 12, 0, 0, 0, time.UTC)
	// One entry in the older half, ten in the newer half.
	days := []string{"2026-03-03"}
	for d := 19; d <= 28; d++ {
		days = append(days, time.Date(2026, 3, d, 0, 0, 0, 0, time.UTC).Format(domain.DayLayout))
	}
	a := computeAnalytics("h1", entriesFor(days...), asOf)

	assert.Equal(t, domain.TrendImproving, a.Trend)
	assert.InDelta(t, 0.75, a.ConfidenceLevel, 1e-9)
}

func TestTrendDeclining(t *testing.T) {
	asOf := time.Date(2026, 3, 28, 12, 0, 0, 0, time.UTC)
	// Ten entries in the older half, one in the newer half.
	days := []string{"2026-03-27"}
	for d := 1; d <= 10; d++ {
		days = append(days, time.Date(2026, 3, d, 0, 0, 0, 0, time.UTC).Format(domain.DayLayout))
	}
	a := computeAnalytics("h1", entriesFor(days...), asOf)

	assert.Equal(t, domain.TrendDeclining, a.Trend)
}

func TestTrendStableWithFewEntries(t *testing.T) {
	asOf := time.Date(2026, 3, 28, 12, 0, 0, 0, time.UTC)
	a := computeAnalytics("h1", entriesFor("2026-03-20", "2026-03-25"), asOf)

	assert.Equal(t, domain.TrendStable, a.Trend)
	assert.InDelta(t, 0.3, a.ConfidenceLevel, 1e-9)
}

func TestEmptyHistory(t *testing.T) {
	asOf := time.Date(2026, 3, 28, 12, 0, 0, 0, time.UTC)
	a := computeAnalytics("h1", nil, asOf)

	assert.Zero(t, a.CurrentStreak)
	assert.Zero(t, a.LongestStreak)
	assert.Equal(t, domain.TrendStable, a.Trend)
}
