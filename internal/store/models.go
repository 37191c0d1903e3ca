package store

import "time"

// Task is one unit of work. DueDate is either empty ("no due date") or a
// canonical YYYY-MM-DD string; it is never stored in a raw user-typed form.
type Task struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	DueDate   string    `json:"due_date"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"created_at"`
}

// HasDueDate reports whether the task carries a due date.
func (t Task) HasDueDate() bool {
	return t.DueDate != ""
}

// EditResult describes what an Edit call changed.
type EditResult struct {
	TitleChanged   bool
	DueDateChanged bool
	DueDateCleared bool

	// DueDateInvalid is set when the supplied due date text failed to
	// parse; the previous value is kept and the edit itself still
	// succeeds.
	DueDateInvalid bool
}
