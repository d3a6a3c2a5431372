package schedule

import (
	"sort"
	"time"

	"github.com/plandeck/backend/domain"
)

// Workday bounds utilization math and slot suggestions.
type Workday struct {
	StartHour int
	EndHour   int
	Location  *time.Location
}

// Window returns the working window for the calendar day of t.
func (w Workday) Window(t time.Time) (time.Time, time.Time) {
	loc := w.Location
	if loc == nil {
		loc = time.UTC
	}
	t = t.In(loc)
	start := time.Date(t.Year(), t.Month(), t.Day(), w.StartHour, 0, 0, 0, loc)
	end := time.Date(t.Year(), t.Month(), t.Day(), w.EndHour, 0, 0, 0, loc)
	return start, end
}

// Workload summarizes how booked a day is.
type Workload struct {
	Date           string  `json:"date"`
	BookedMinutes  int     `json:"booked_minutes"`
	WorkdayMinutes int     `json:"workday_minutes"`
	Utilization    float64 `json:"utilization"`
	Blocks         int     `json:"blocks"`
}

// SlotSuggestion is a scored free-slot candidate.
type SlotSuggestion struct {
	Start   time.Time `json:"start"`
	End     time.Time `json:"end"`
	Minutes int       `json:"minutes"`
	Score   float64   `json:"score"`
	Good    bool      `json:"good"`
}

const goodScoreThreshold = 0.7

type gap struct {
	start time.Time
	end   time.Time
}

func (g gap) length() time.Duration { return g.end.Sub(g.start) }

// computeWorkload clamps blocks to the working window and sums their
// durations. Blocks cannot overlap (creation rejects that), so a plain sum
// is exact.
func computeWorkload(blocks []domain.TimeBlock, dayStart, dayEnd time.Time) Workload {
	window := dayEnd.Sub(dayStart)
	wl := Workload{Date: dayStart.Format(domain.DayLayout)}
	if window <= 0 {
		return wl
	}
	wl.WorkdayMinutes = int(window.Minutes())

	var booked time.Duration
	for _, b := range blocks {
		start, end := clamp(b.Start, b.End, dayStart, dayEnd)
		if !end.After(start) {
			continue
		}
		booked += end.Sub(start)
		wl.Blocks++
	}

	wl.BookedMinutes = int(booked.Minutes())
	wl.Utilization = float64(booked) / float64(window)
	return wl
}

// freeGaps walks the sorted blocks and returns the unbooked stretches of
// the working window.
func freeGaps(blocks []domain.TimeBlock, dayStart, dayEnd time.Time) []gap {
	if !dayEnd.After(dayStart) {
		return nil
	}

	sorted := make([]domain.TimeBlock, len(blocks))
	copy(sorted, blocks)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Start.Before(sorted[j].Start) })

	var gaps []gap
	cursor := dayStart
	for _, b := range sorted {
		start, end := clamp(b.Start, b.End, dayStart, dayEnd)
		if !end.After(start) {
			continue
		}
		if start.After(cursor) {
			gaps = append(gaps, gap{start: cursor, end: start})
		}
		if end.After(cursor) {
			cursor = end
		}
	}
	if dayEnd.After(cursor) {
		gaps = append(gaps, gap{start: cursor, end: dayEnd})
	}
	return gaps
}

// scoreGap rates how well a gap hosts a slot of the wanted length: snug
// gaps waste less time, earlier starts are preferred, and some spare room
// around the slot helps.
func scoreGap(g gap, want time.Duration, dayStart, dayEnd time.Time) float64 {
	gapLen := g.length()
	if gapLen < want || want <= 0 {
		return 0
	}

	lengthFit := float64(want) / float64(gapLen)

	dayLen := dayEnd.Sub(dayStart)
	morning := 0.0
	if dayLen > 0 {
		morning = 1 - float64(g.start.Sub(dayStart))/float64(dayLen)
	}

	room := float64(gapLen) / float64(2*want)
	if room > 1 {
		room = 1
	}

	return 0.4*lengthFit + 0.3*morning + 0.3*room
}

// suggestSlots returns candidates for a slot of wantMinutes, best first.
func suggestSlots(blocks []domain.TimeBlock, dayStart, dayEnd time.Time, wantMinutes int) []SlotSuggestion {
	want := time.Duration(wantMinutes) * time.Minute
	if want <= 0 {
		return nil
	}

	var suggestions []SlotSuggestion
	for _, g := range freeGaps(blocks, dayStart, dayEnd) {
		if g.length() < want {
			continue
		}
		score := scoreGap(g, want, dayStart, dayEnd)
		suggestions = append(suggestions, SlotSuggestion{
			Start:   g.start,
			End:     g.start.Add(want),
			Minutes: wantMinutes,
			Score:   score,
			Good:    score > goodScoreThreshold,
		})
	}

	sort.SliceStable(suggestions, func(i, j int) bool { return suggestions[i].Score > suggestions[j].Score })
	return suggestions
}

// fitTasks places tasks first-fit into the free gaps and returns the blocks
// to create. Existing blocks are never moved; tasks that do not fit are
// skipped.
func fitTasks(tasks []domain.Task, blocks []domain.TimeBlock, dayStart, dayEnd time.Time) []domain.TimeBlock {
	gaps := freeGaps(blocks, dayStart, dayEnd)

	ordered := make([]domain.Task, len(tasks))
	copy(ordered, tasks)
	sort.SliceStable(ordered, func(i, j int) bool {
		a, b := ordered[i], ordered[j]
		switch {
		case a.DueDate == nil && b.DueDate == nil:
			return a.Priority > b.Priority
		case a.DueDate == nil:
			return false
		case b.DueDate == nil:
			return true
		case !a.DueDate.Equal(*b.DueDate):
			return a.DueDate.Before(*b.DueDate)
		default:
			return a.Priority > b.Priority
		}
	})

	var placed []domain.TimeBlock
	for _, t := range ordered {
		est := t.Estimate()
		for i := range gaps {
			if gaps[i].length() < est {
				continue
			}
			taskID := t.ID
			placed = append(placed, domain.TimeBlock{
				UserID: t.UserID,
				TaskID: &taskID,
				Title:  t.Title,
				Start:  gaps[i].start,
				End:    gaps[i].start.Add(est),
			})
			gaps[i].start = gaps[i].start.Add(est)
			break
		}
	}
	return placed
}

func clamp(start, end, lo, hi time.Time) (time.Time, time.Time) {
	if start.Before(lo) {
		start = lo
	}
	if end.After(hi) {
		end = hi
	}
	return start, end
}
