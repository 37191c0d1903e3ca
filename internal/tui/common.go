package tui

import (
	"github.com/sadopc/taskdeck/internal/query"
	"github.com/sadopc/taskdeck/internal/store"
)

// viewState represents the currently active view.
type viewState int

const (
	viewTasks viewState = iota
	viewStats
)

var viewNames = []string{"Tasks", "Stats"}

// --- Messages ---

type tasksDataMsg struct {
	tasks []store.Task // tasks matching the active filter
	total int          // size of the whole collection
}

type statsDataMsg struct {
	counts query.Counts
	tasks  []store.Task
}

type statusMsg struct {
	text    string
	isError bool
}

type exportDoneMsg struct {
	path string
}
