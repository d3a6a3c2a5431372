package domain

import "time"

// Task status values.
const (
	TaskStatusPending    = "pending"
	TaskStatusInProgress = "in_progress"
	TaskStatusCompleted  = "completed"
	TaskStatusArchived   = "archived"
)

// Task priority levels.
const (
	PriorityLow    = 1
	PriorityMedium = 2
	PriorityHigh   = 3
	PriorityUrgent = 4
)

// RecurrenceFreq enumerates supported repetition frequencies.
type RecurrenceFreq string

const (
	RecurDaily   RecurrenceFreq = "daily"
	RecurWeekly  RecurrenceFreq = "weekly"
	RecurMonthly RecurrenceFreq = "monthly"
)

// Recurrence describes how a task repeats after completion.
type Recurrence struct {
	Freq     RecurrenceFreq `json:"freq"`
	Interval int            `json:"interval"`
}

// Next returns the due date that follows from according to the pattern.
func (r *Recurrence) Next(from time.Time) time.Time {
	interval := r.Interval
	if interval <= 0 {
		interval = 1
	}
	switch r.Freq {
	case RecurWeekly:
		return from.AddDate(0, 0, 7*interval)
	case RecurMonthly:
		return from.AddDate(0, interval, 0)
	default:
		return from.AddDate(0, 0, interval)
	}
}

// Task represents a user-owned activity item.
type Task struct {
	ID              string            `json:"id"`
	UserID          string            `json:"user_id"`
	Title           string            `json:"title"`
	Description     string            `json:"description,omitempty"`
	Status          string            `json:"status"`
	Priority        int               `json:"priority"`
	Category        string            `json:"category,omitempty"`
	Location        string            `json:"location,omitempty"`
	DueDate         *time.Time        `json:"due_date,omitempty"`
	ParentID        *string           `json:"parent_id,omitempty"`
	DependsOn       []string          `json:"depends_on,omitempty"`
	Recurrence      *Recurrence       `json:"recurrence,omitempty"`
	EstimateMinutes int               `json:"estimate_minutes,omitempty"`
	Metadata        map[string]string `json:"metadata,omitempty"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
}

func (t *Task) IsCompleted() bool {
	return t != nil && t.Status == TaskStatusCompleted
}

func (t *Task) IsRecurring() bool {
	return t != nil && t.Recurrence != nil && t.Recurrence.Freq != ""
}

// Estimate returns the planned duration, falling back to a 30 minute default.
func (t *Task) Estimate() time.Duration {
	if t == nil || t.EstimateMinutes <= 0 {
		return 30 * time.Minute
	}
	return time.Duration(t.EstimateMinutes) * time.Minute
}

// NextOccurrence builds the follow-up task spawned when a recurring task
// completes. Returns nil when the task does not recur or has no due date.
func (t *Task) NextOccurrence() *Task {
	if !t.IsRecurring() || t.DueDate == nil {
		return nil
	}
	due := t.Recurrence.Next(*t.DueDate)
	next := *t
	next.ID = ""
	next.Status = TaskStatusPending
	next.DueDate = &due
	next.CreatedAt = time.Time{}
	next.UpdatedAt = time.Time{}
	return &next
}
