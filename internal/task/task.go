package task

// Status is a kanban column. Archived is a hidden fourth bucket reached only
// through Archive; Restore always lands back in StatusComplete.
type Status string

const (
	StatusTodo       Status = "todo"
	StatusInProgress Status = "in-progress"
	StatusComplete   Status = "complete"
	StatusArchived   Status = "archived"
)

// MainStatuses are the visible board columns, in display order.
var MainStatuses = []Status{StatusTodo, StatusInProgress, StatusComplete}

// StatusLabels maps each status to its column heading.
var StatusLabels = map[Status]string{
	StatusTodo:       "To Do",
	StatusInProgress: "In Progress",
	StatusComplete:   "Complete",
	StatusArchived:   "Archived",
}

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// PriorityInfo carries the display metadata for one priority level.
type PriorityInfo struct {
	ID    Priority
	Label string
	Color string
}

var Priorities = []PriorityInfo{
	{ID: PriorityLow, Label: "Low", Color: "#6b7280"},
	{ID: PriorityMedium, Label: "Medium", Color: "#d4a574"},
	{ID: PriorityHigh, Label: "High", Color: "#ef4444"},
}

// Task is one kanban card. JSON tags match the stored shape, so an existing
// data file keeps loading across versions. ID and CreatedAt never change
// after Add. There is no order field: position within a column is the order
// of the backing collection.
type Task struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Status      Status   `json:"status"`
	Priority    Priority `json:"priority"`
	DueDate     int64    `json:"dueDate,omitempty"`
	CreatedAt   int64    `json:"createdAt"`
}
