package domain

import "time"

// ParsedTask is the transient result of natural-language quick-add parsing.
// Zero values mean the facet was not detected in the input.
type ParsedTask struct {
	Title    string     `json:"title"`
	DueDate  *time.Time `json:"due_date,omitempty"`
	Priority int        `json:"priority,omitempty"`
	Category string     `json:"category,omitempty"`
	Location string     `json:"location,omitempty"`
	Notes    string     `json:"notes,omitempty"`
}

// Materialize converts the parse result into a pending task for the user.
func (p ParsedTask) Materialize(userID string) *Task {
	priority := p.Priority
	if priority == 0 {
		priority = PriorityMedium
	}
	return &Task{
		UserID:      userID,
		Title:       p.Title,
		Description: p.Notes,
		Status:      TaskStatusPending,
		Priority:    priority,
		Category:    p.Category,
		Location:    p.Location,
		DueDate:     p.DueDate,
	}
}
