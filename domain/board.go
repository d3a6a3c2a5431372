package domain

import "time"

// Column is an ordered lane on a kanban board. WIPLimit 0 means unlimited.
type Column struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	WIPLimit int      `json:"wip_limit"`
	TaskIDs  []string `json:"task_ids"`
}

// AtLimit reports whether the column cannot accept another card.
func (c *Column) AtLimit() bool {
	if c == nil || c.WIPLimit <= 0 {
		return false
	}
	return len(c.TaskIDs) >= c.WIPLimit
}

// Remove deletes the task from the column, reporting whether it was present.
func (c *Column) Remove(taskID string) bool {
	for i, id := range c.TaskIDs {
		if id == taskID {
			c.TaskIDs = append(c.TaskIDs[:i], c.TaskIDs[i+1:]...)
			return true
		}
	}
	return false
}

// InsertAt places the task at position, clamping to the column bounds.
func (c *Column) InsertAt(taskID string, position int) {
	if position < 0 || position > len(c.TaskIDs) {
		position = len(c.TaskIDs)
	}
	c.TaskIDs = append(c.TaskIDs, "")
	copy(c.TaskIDs[position+1:], c.TaskIDs[position:])
	c.TaskIDs[position] = taskID
}

// Board groups columns of task cards for one user.
type Board struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"`
	Columns   []Column  `json:"columns"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Column returns the column with the given ID, or nil.
func (b *Board) Column(id string) *Column {
	if b == nil {
		return nil
	}
	for i := range b.Columns {
		if b.Columns[i].ID == id {
			return &b.Columns[i]
		}
	}
	return nil
}

// ColumnOf returns the column currently holding the task, or nil.
func (b *Board) ColumnOf(taskID string) *Column {
	if b == nil {
		return nil
	}
	for i := range b.Columns {
		for _, id := range b.Columns[i].TaskIDs {
			if id == taskID {
				return &b.Columns[i]
			}
		}
	}
	return nil
}

func (b *Board) Touch() {
	if b == nil {
		return
	}
	b.UpdatedAt = time.Now()
	if b.CreatedAt.IsZero() {
		b.CreatedAt = b.UpdatedAt
	}
}
