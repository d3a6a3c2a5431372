package nlparse

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plandeck/backend/domain"
)

// Tuesday morning.
var ref = time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)

func TestParseDueDateAndCategory(t *testing.T) {
	parsed := Parse("Buy milk tomorrow at 5pm", ref)

	assert.Equal(t, "Buy milk", parsed.Title)
	assert.Equal(t, "shopping", parsed.Category)
	require.NotNil(t, parsed.DueDate)
	assert.Equal(t, time.Date(2026, 3, 11, 17, 0, 0, 0, time.UTC), *parsed.DueDate)
	assert.Zero(t, parsed.Priority)
	assert.Empty(t, parsed.Location)
}

func TestParseRussianPriority(t *testing.T) {
	parsed := Parse("срочно позвонить маме завтра", ref)

	assert.Equal(t, "позвонить маме", parsed.Title)
	assert.Equal(t, domain.PriorityUrgent, parsed.Priority)
	require.NotNil(t, parsed.DueDate)
	assert.Equal(t, time.Date(2026, 3, 11, 9, 0, 0, 0, time.UTC), *parsed.DueDate)
}

func TestParseWeekdayAndImportance(t *testing.T) {
	parsed := Parse("Team meeting on friday important", ref)

	assert.Equal(t, "Team meeting", parsed.Title)
	assert.Equal(t, domain.PriorityHigh, parsed.Priority)
	assert.Equal(t, "work", parsed.Category)
	require.NotNil(t, parsed.DueDate)
	assert.Equal(t, time.Date(2026, 3, 13, 9, 0, 0, 0, time.UTC), *parsed.DueDate)
}

func TestParseLocation(t *testing.T) {
	parsed := Parse("Lunch at Starbucks tomorrow", ref)

	assert.Equal(t, "Lunch", parsed.Title)
	assert.Equal(t, "Starbucks", parsed.Location)
	require.NotNil(t, parsed.DueDate)
	assert.Equal(t, time.Date(2026, 3, 11, 9, 0, 0, 0, time.UTC), *parsed.DueDate)
}

func TestParseNumericDateRollsForward(t *testing.T) {
	parsed := Parse("Pay rent 03.09", ref)

	assert.Equal(t, "Pay rent", parsed.Title)
	require.NotNil(t, parsed.DueDate)
	assert.Equal(t, time.Date(2026, 9, 3, 9, 0, 0, 0, time.UTC), *parsed.DueDate)

	// A past day.month without a year means next year's instance.
	parsed = Parse("Anniversary dinner 14.02", ref)
	require.NotNil(t, parsed.DueDate)
	assert.Equal(t, 2027, parsed.DueDate.Year())
}

func TestParseTimeOnlyInThePast(t *testing.T) {
	parsed := Parse("Call mom at 7:00", ref)

	assert.Equal(t, "Call mom", parsed.Title)
	require.NotNil(t, parsed.DueDate)
	// 07:00 already passed relative to ref, so it lands on tomorrow.
	assert.Equal(t, time.Date(2026, 3, 11, 7, 0, 0, 0, time.UTC), *parsed.DueDate)
}

func TestParseTonight(t *testing.T) {
	parsed := Parse("Review notes tonight", ref)

	assert.Equal(t, "Review notes", parsed.Title)
	require.NotNil(t, parsed.DueDate)
	assert.Equal(t, time.Date(2026, 3, 10, 20, 0, 0, 0, time.UTC), *parsed.DueDate)
}

func TestParseRussianMeetingWithTime(t *testing.T) {
	parsed := Parse("встреча в пятницу в 15:00", ref)

	assert.Equal(t, "встреча", parsed.Title)
	assert.Equal(t, "work", parsed.Category)
	require.NotNil(t, parsed.DueDate)
	assert.Equal(t, time.Date(2026, 3, 13, 15, 0, 0, 0, time.UTC), *parsed.DueDate)
}

func TestParseNotes(t *testing.T) {
	parsed := Parse("Ship package (fragile, handle with care)", ref)

	assert.Equal(t, "Ship package", parsed.Title)
	assert.Equal(t, "fragile, handle with care", parsed.Notes)
}

func TestParseFirstPriorityMatchWins(t *testing.T) {
	parsed := Parse("urgent important report", ref)

	assert.Equal(t, domain.PriorityUrgent, parsed.Priority)
	assert.Equal(t, "work", parsed.Category)
}

func TestParsePlainText(t *testing.T) {
	parsed := Parse("Write down that idea", ref)

	assert.Equal(t, "Write down that idea", parsed.Title)
	assert.Nil(t, parsed.DueDate)
	assert.Zero(t, parsed.Priority)
	assert.Empty(t, parsed.Category)
	assert.Empty(t, parsed.Location)
}
