// Package query classifies tasks against a filter kind and a reference
// calendar date. It is stateless and never mutates its input.
package query

import (
	"time"

	"github.com/sadopc/taskdeck/internal/dates"
	"github.com/sadopc/taskdeck/internal/store"
)

// Kind selects which predicate Apply uses.
type Kind int

const (
	All Kind = iota
	Completed
	Incomplete
	DueToday
	Overdue
)

var kindNames = map[Kind]string{
	All:        "all",
	Completed:  "completed",
	Incomplete: "incomplete",
	DueToday:   "due today",
	Overdue:    "overdue",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "all"
}

// Kinds lists every filter kind in cycling order.
var Kinds = []Kind{All, Incomplete, Completed, DueToday, Overdue}

// ParseKind maps a filter name to its Kind. Empty or unknown input means
// All: an unspecified filter shows everything.
func ParseKind(s string) Kind {
	switch s {
	case "completed":
		return Completed
	case "incomplete":
		return Incomplete
	case "due_today":
		return DueToday
	case "overdue":
		return Overdue
	default:
		return All
	}
}

// Apply returns the ordered subsequence of tasks matching kind, using the
// calendar date of today for due-date comparisons. Time of day is ignored.
// A stored due date that fails to parse is excluded from DueToday and
// Overdue rather than erroring; stored data is treated as untrusted.
func Apply(tasks []store.Task, kind Kind, today time.Time) []store.Task {
	day := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)

	var out []store.Task
	for _, t := range tasks {
		if matches(t, kind, day) {
			out = append(out, t)
		}
	}
	return out
}

func matches(t store.Task, kind Kind, day time.Time) bool {
	switch kind {
	case Completed:
		return t.Completed
	case Incomplete:
		return !t.Completed
	case DueToday:
		due, ok := dueDay(t)
		return ok && due.Equal(day)
	case Overdue:
		if t.Completed {
			return false
		}
		due, ok := dueDay(t)
		return ok && due.Before(day)
	default:
		return true
	}
}

func dueDay(t store.Task) (time.Time, bool) {
	if !t.HasDueDate() {
		return time.Time{}, false
	}
	due, err := dates.Parse(t.DueDate)
	if err != nil {
		return time.Time{}, false
	}
	return due, true
}

// Counts summarizes a collection for presentation: how many tasks fall
// under each filter kind for the given day.
type Counts struct {
	Total      int
	Completed  int
	Incomplete int
	DueToday   int
	Overdue    int
}

// Count tallies every filter kind in one pass.
func Count(tasks []store.Task, today time.Time) Counts {
	day := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)

	var c Counts
	c.Total = len(tasks)
	for _, t := range tasks {
		if t.Completed {
			c.Completed++
		} else {
			c.Incomplete++
		}
		if due, ok := dueDay(t); ok {
			if due.Equal(day) {
				c.DueToday++
			}
			if due.Before(day) && !t.Completed {
				c.Overdue++
			}
		}
	}
	return c
}
