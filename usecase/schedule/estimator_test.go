package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plandeck/backend/domain"
)

var workday = Workday{StartHour: 9, EndHour: 18, Location: time.UTC}

func at(hour, minute int) time.Time {
	return time.Date(2026, 3, 10, hour, minute, 0, 0, time.UTC)
}

func block(startHour, startMin, endHour, endMin int) domain.TimeBlock {
	return domain.TimeBlock{
		UserID: "u1",
		Start:  at(startHour, startMin),
		End:    at(endHour, endMin),
	}
}

func TestComputeWorkload(t *testing.T) {
	dayStart, dayEnd := workday.Window(at(12, 0))
	blocks := []domain.TimeBlock{
		block(9, 0, 10, 0),
		block(13, 0, 14, 30),
	}

	wl := computeWorkload(blocks, dayStart, dayEnd)

	assert.Equal(t, 150, wl.BookedMinutes)
	assert.Equal(t, 540, wl.WorkdayMinutes)
	assert.InDelta(t, 150.0/540.0, wl.Utilization, 1e-9)
	assert.Equal(t, 2, wl.Blocks)
}

func TestComputeWorkloadClampsToWindow(t *testing.T) {
	dayStart, dayEnd := workday.Window(at(12, 0))
	blocks := []domain.TimeBlock{
		block(8, 0, 9, 30), // half before the workday
		block(7, 0, 8, 30), // entirely before
	}

	wl := computeWorkload(blocks, dayStart, dayEnd)

	assert.Equal(t, 30, wl.BookedMinutes)
	assert.Equal(t, 1, wl.Blocks)
}

func TestComputeWorkloadEmptyDay(t *testing.T) {
	dayStart, dayEnd := workday.Window(at(12, 0))
	wl := computeWorkload(nil, dayStart, dayEnd)

	assert.Zero(t, wl.BookedMinutes)
	assert.Zero(t, wl.Utilization)
}

func TestFreeGaps(t *testing.T) {
	dayStart, dayEnd := workday.Window(at(12, 0))
	blocks := []domain.TimeBlock{
		block(13, 0, 14, 30),
		block(9, 0, 10, 0),
	}

	gaps := freeGaps(blocks, dayStart, dayEnd)

	require.Len(t, gaps, 2)
	assert.Equal(t, at(10, 0), gaps[0].start)
	assert.Equal(t, at(13, 0), gaps[0].end)
	assert.Equal(t, at(14, 30), gaps[1].start)
	assert.Equal(t, at(18, 0), gaps[1].end)
}

func TestSuggestSlotsPrefersSnugMorningGap(t *testing.T) {
	dayStart, dayEnd := workday.Window(at(12, 0))
	blocks := []domain.TimeBlock{block(12, 0, 13, 0)}

	suggestions := suggestSlots(blocks, dayStart, dayEnd, 120)

	require.Len(t, suggestions, 2)
	first := suggestions[0]
	assert.Equal(t, at(9, 0), first.Start)
	assert.Equal(t, at(11, 0), first.End)
	assert.True(t, first.Good)
	assert.False(t, suggestions[1].Good)
	assert.Greater(t, first.Score, suggestions[1].Score)
}

func TestSuggestSlotsFullDay(t *testing.T) {
	dayStart, dayEnd := workday.Window(at(12, 0))

	suggestions := suggestSlots(nil, dayStart, dayEnd, 540)

	require.Len(t, suggestions, 1)
	assert.Equal(t, at(9, 0), suggestions[0].Start)
	assert.Equal(t, at(18, 0), suggestions[0].End)
	assert.True(t, suggestions[0].Good)
}

func TestSuggestSlotsNoRoom(t *testing.T) {
	dayStart, dayEnd := workday.Window(at(12, 0))
	blocks := []domain.TimeBlock{block(9, 0, 17, 45)}

	suggestions := suggestSlots(blocks, dayStart, dayEnd, 30)

	assert.Empty(t, suggestions)
}

func TestFitTasksFirstFit(t *testing.T) {
	dayStart, dayEnd := workday.Window(at(12, 0))
	existing := []domain.TimeBlock{block(9, 0, 9, 30)}

	due1000 := at(10, 0)
	due0930 := at(9, 30)
	tasks := []domain.Task{
		{ID: "b", UserID: "u1", Title: "deep work", Priority: domain.PriorityHigh, EstimateMinutes: 120},
		{ID: "a", UserID: "u1", Title: "send report", DueDate: &due1000, EstimateMinutes: 60},
		{ID: "c", UserID: "u1", Title: "all day thing", DueDate: &due0930, EstimateMinutes: 600},
	}

	placed := fitTasks(tasks, existing, dayStart, dayEnd)

	// "c" is due first but never fits; "a" lands before "b".
	require.Len(t, placed, 2)
	require.NotNil(t, placed[0].TaskID)
	assert.Equal(t, "a", *placed[0].TaskID)
	assert.Equal(t, at(9, 30), placed[0].Start)
	assert.Equal(t, at(10, 30), placed[0].End)
	require.NotNil(t, placed[1].TaskID)
	assert.Equal(t, "b", *placed[1].TaskID)
	assert.Equal(t, at(10, 30), placed[1].Start)
	assert.Equal(t, at(12, 30), placed[1].End)
}

func TestFitTasksWithoutDueDatesUsesPriority(t *testing.T) {
	dayStart, dayEnd := workday.Window(at(12, 0))
	tasks := []domain.Task{
		{ID: "low", UserID: "u1", Priority: domain.PriorityLow, EstimateMinutes: 60},
		{ID: "urgent", UserID: "u1", Priority: domain.PriorityUrgent, EstimateMinutes: 60},
	}

	placed := fitTasks(tasks, nil, dayStart, dayEnd)

	require.Len(t, placed, 2)
	assert.Equal(t, "urgent", *placed[0].TaskID)
	assert.Equal(t, at(9, 0), placed[0].Start)
}
