package domain

import "time"

// DayLayout is the canonical key format for habit entries.
const DayLayout = "2006-01-02"

// Habit represents a recurring practice the user tracks daily.
type Habit struct {
	ID         string     `json:"id"`
	UserID     string     `json:"user_id"`
	Name       string     `json:"name"`
	CreatedAt  time.Time  `json:"created_at"`
	ArchivedAt *time.Time `json:"archived_at,omitempty"`
}

func (h *Habit) IsArchived() bool {
	return h != nil && h.ArchivedAt != nil
}

// HabitEntry records a single day's completion of a habit.
type HabitEntry struct {
	HabitID   string    `json:"habit_id"`
	Day       string    `json:"day"`
	Note      string    `json:"note,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// DayKey formats a timestamp into the entry key for its calendar day.
func DayKey(t time.Time) string {
	return t.Format(DayLayout)
}

// ParseDay parses a YYYY-MM-DD entry key.
func ParseDay(day string) (time.Time, error) {
	return time.Parse(DayLayout, day)
}
