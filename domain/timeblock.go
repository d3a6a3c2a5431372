package domain

import "time"

// TimeBlock is a scheduled interval, optionally linked to a task.
type TimeBlock struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	TaskID    *string   `json:"task_id,omitempty"`
	Title     string    `json:"title"`
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (b *TimeBlock) Duration() time.Duration {
	if b == nil || !b.End.After(b.Start) {
		return 0
	}
	return b.End.Sub(b.Start)
}

// Overlaps reports whether two blocks intersect. Intervals are half-open,
// so a block ending exactly when another starts does not overlap it.
func (b *TimeBlock) Overlaps(other *TimeBlock) bool {
	if b == nil || other == nil {
		return false
	}
	return b.Start.Before(other.End) && other.Start.Before(b.End)
}

func (b *TimeBlock) IsValid() bool {
	return b != nil && b.End.After(b.Start)
}
