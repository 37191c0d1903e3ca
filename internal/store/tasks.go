package store

import (
	"fmt"
	"strings"
	"time"

	"github.com/sadopc/taskdeck/internal/dates"
)

// NextID returns 1 for an empty collection, otherwise one greater than the
// maximum id present. There is no persisted counter: deleting the
// highest-numbered task frees its id for the next add.
func (s *Store) NextID() int64 {
	var max int64
	for _, t := range s.tasks {
		if t.ID > max {
			max = t.ID
		}
	}
	return max + 1
}

// Add creates a task, appends it to the collection and persists. The title
// must be non-empty after trimming. Due date text that fails to parse is
// treated as no due date; only the edit path reports parse failures.
func (s *Store) Add(title, rawDue string, now time.Time) (*Task, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrEmptyTitle
	}

	due, err := dates.Normalize(rawDue)
	if err != nil {
		due = ""
	}

	task := Task{
		ID:        s.NextID(),
		Title:     title,
		DueDate:   due,
		Completed: false,
		CreatedAt: now,
	}
	s.tasks = append(s.tasks, task)
	if err := s.save(); err != nil {
		return nil, fmt.Errorf("add task: %w", err)
	}
	return &task, nil
}

// Get returns the task with the given id, or ErrNotFound.
func (s *Store) Get(id int64) (*Task, error) {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			t := s.tasks[i]
			return &t, nil
		}
	}
	return nil, ErrNotFound
}

// Toggle flips the completion flag of the task with the given id and
// persists.
func (s *Store) Toggle(id int64) (*Task, error) {
	for i := range s.tasks {
		if s.tasks[i].ID != id {
			continue
		}
		s.tasks[i].Completed = !s.tasks[i].Completed
		if err := s.save(); err != nil {
			return nil, fmt.Errorf("toggle task %d: %w", id, err)
		}
		t := s.tasks[i]
		return &t, nil
	}
	return nil, ErrNotFound
}

// Delete removes the first task with the given id and persists. A missing
// id leaves the collection untouched.
func (s *Store) Delete(id int64) error {
	for i := range s.tasks {
		if s.tasks[i].ID != id {
			continue
		}
		s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
		if err := s.save(); err != nil {
			return fmt.Errorf("delete task %d: %w", id, err)
		}
		return nil
	}
	return ErrNotFound
}

// ClearDueDate is the case-insensitive sentinel an edit may supply to
// remove a task's due date.
const ClearDueDate = "clear"

// Edit updates the title and/or due date of the task with the given id and
// persists. A blank title keeps the existing one. For the due date: blank
// keeps, the "clear" sentinel removes, anything else is normalized — if
// normalization fails the previous value is kept and the result reports
// DueDateInvalid while the edit as a whole still succeeds.
func (s *Store) Edit(id int64, newTitle, newDue string) (EditResult, error) {
	var res EditResult

	idx := -1
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return res, ErrNotFound
	}

	if title := strings.TrimSpace(newTitle); title != "" {
		s.tasks[idx].Title = title
		res.TitleChanged = true
	}

	newDue = strings.TrimSpace(newDue)
	switch {
	case newDue == "":
		// keep existing
	case strings.EqualFold(newDue, ClearDueDate):
		s.tasks[idx].DueDate = ""
		res.DueDateCleared = true
	default:
		due, err := dates.Normalize(newDue)
		if err != nil {
			res.DueDateInvalid = true
		} else {
			s.tasks[idx].DueDate = due
			res.DueDateChanged = true
		}
	}

	if err := s.save(); err != nil {
		return res, fmt.Errorf("edit task %d: %w", id, err)
	}
	return res, nil
}
