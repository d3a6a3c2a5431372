package transport

type ProfileUpdateRequest struct {
	Email  string            `json:"email"`
	Role   string            `json:"role"`
	Status string            `json:"status"`
	Meta   map[string]string `json:"metadata"`
}

type TaskRequest struct {
	ID              string            `json:"id"`
	Title           string            `json:"title"`
	Description     string            `json:"description"`
	Status          string            `json:"status"`
	Priority        int               `json:"priority"`
	Category        string            `json:"category"`
	Location        string            `json:"location"`
	DueDate         string            `json:"due_date"`
	ParentID        string            `json:"parent_id"`
	DependsOn       []string          `json:"depends_on"`
	Recurrence      *RecurrenceBody   `json:"recurrence"`
	EstimateMinutes int               `json:"estimate_minutes"`
	Metadata        map[string]string `json:"metadata"`
}

type RecurrenceBody struct {
	Frequency string `json:"frequency"`
	Interval  int    `json:"interval"`
}

// QuickAddRequest carries free text to be parsed into a task.
type QuickAddRequest struct {
	Text string `json:"text"`
}

type HabitRequest struct {
	Name string `json:"name"`
}

// CheckOffRequest marks a habit done for a day (today when empty).
type CheckOffRequest struct {
	Day  string `json:"day"`
	Note string `json:"note"`
}

type TimeBlockRequest struct {
	ID     string `json:"id"`
	TaskID string `json:"task_id"`
	Title  string `json:"title"`
	Start  string `json:"start"`
	End    string `json:"end"`
}

type BoardRequest struct {
	Name string `json:"name"`
}

type BoardMoveRequest struct {
	TaskID   string `json:"task_id"`
	ToColumn string `json:"to_column"`
	Position int    `json:"position"`
}

type AuthLoginRequest struct {
	UserID string `json:"user_id"`
	TTL    int    `json:"ttl_seconds"`
}

type RefreshRequest struct {
	SessionID string `json:"session_id"`
	TTL       int    `json:"ttl_seconds"`
}
