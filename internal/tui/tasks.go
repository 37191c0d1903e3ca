package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/taskdeck/internal/query"
	"github.com/sadopc/taskdeck/internal/store"
)

type tasksModel struct {
	store  *store.Store
	width  int
	height int

	filterIdx int          // index into query.Kinds
	tasks     []store.Task // tasks under the active filter
	total     int          // whole-collection size, for empty-state wording
	cursor    int

	formActive bool
	form       *huh.Form
	formType   string // "add", "edit"

	// Form field pointers (survive value copies)
	formTitle *string
	formDue   *string

	editingID int64 // task ID being edited
}

func newTasksModel(s *store.Store) tasksModel {
	title, due := "", ""
	return tasksModel{
		store:     s,
		formTitle: &title,
		formDue:   &due,
	}
}

func (m *tasksModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

func (m tasksModel) filter() query.Kind {
	return query.Kinds[m.filterIdx]
}

func (m tasksModel) refresh() tea.Cmd {
	kind := m.filter()
	return func() tea.Msg {
		all := m.store.Tasks()
		return tasksDataMsg{
			tasks: query.Apply(all, kind, time.Now()),
			total: len(all),
		}
	}
}

func (m tasksModel) update(msg tea.Msg) (tasksModel, tea.Cmd) {
	if m.formActive && m.form != nil {
		return m.updateForm(msg)
	}

	switch msg := msg.(type) {
	case tasksDataMsg:
		m.tasks = msg.tasks
		m.total = msg.total
		if m.cursor >= len(m.tasks) {
			m.cursor = max(0, len(m.tasks)-1)
		}
		return m, nil

	case tea.KeyMsg:
		return m.updateList(msg)
	}
	return m, nil
}

func (m tasksModel) updateList(msg tea.KeyMsg) (tasksModel, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, keys.Down):
		if m.cursor < len(m.tasks)-1 {
			m.cursor++
		}
	case key.Matches(msg, keys.Filter):
		m.filterIdx = (m.filterIdx + 1) % len(query.Kinds)
		m.cursor = 0
		return m, m.refresh()
	case key.Matches(msg, keys.New):
		return m.showAddForm()
	case key.Matches(msg, keys.Edit):
		if len(m.tasks) > 0 {
			return m.showEditForm()
		}
	case key.Matches(msg, keys.Toggle):
		if len(m.tasks) > 0 {
			return m.toggleTask(m.tasks[m.cursor].ID)
		}
	case key.Matches(msg, keys.Delete):
		if len(m.tasks) > 0 {
			return m.deleteTask(m.tasks[m.cursor])
		}
	}
	return m, nil
}

func statusCmd(format string, args ...any) tea.Cmd {
	text := fmt.Sprintf(format, args...)
	return func() tea.Msg {
		return statusMsg{text: text}
	}
}

func errorCmd(format string, args ...any) tea.Cmd {
	text := fmt.Sprintf(format, args...)
	return func() tea.Msg {
		return statusMsg{text: text, isError: true}
	}
}

func (m tasksModel) toggleTask(id int64) (tasksModel, tea.Cmd) {
	task, err := m.store.Toggle(id)
	if err != nil {
		return m, errorCmd("Toggle error: %v", err)
	}
	state := "incomplete"
	if task.Completed {
		state = "completed"
	}
	return m, tea.Batch(statusCmd("Task %d marked %s", id, state), m.refresh())
}

func (m tasksModel) deleteTask(task store.Task) (tasksModel, tea.Cmd) {
	if err := m.store.Delete(task.ID); err != nil {
		return m, errorCmd("Delete error: %v", err)
	}
	return m, tea.Batch(statusCmd("Deleted task %d: %s", task.ID, task.Title), m.refresh())
}

const dueHint = "e.g. 2025-11-12, 12/11/2025, Nov 12 2025 — blank for none"

func (m tasksModel) showAddForm() (tasksModel, tea.Cmd) {
	*m.formTitle = ""
	*m.formDue = ""
	m.formType = "add"

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Title").Value(m.formTitle),
			huh.NewInput().Title("Due date").Description(dueHint).Value(m.formDue),
		),
	).WithShowHelp(true).WithShowErrors(true)

	m.formActive = true
	return m, m.form.Init()
}

func (m tasksModel) showEditForm() (tasksModel, tea.Cmd) {
	task := m.tasks[m.cursor]
	*m.formTitle = ""
	*m.formDue = ""
	m.formType = "edit"
	m.editingID = task.ID

	due := task.DueDate
	if due == "" {
		due = "no due date"
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Description("current: "+task.Title+" — blank to keep").
				Value(m.formTitle),
			huh.NewInput().
				Title("Due date").
				Description("current: "+due+" — blank to keep, 'clear' to remove").
				Value(m.formDue),
		),
	).WithShowHelp(true).WithShowErrors(true)

	m.formActive = true
	return m, m.form.Init()
}

func (m tasksModel) updateForm(msg tea.Msg) (tasksModel, tea.Cmd) {
	// Check for escape to cancel form
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			m.formActive = false
			m.form = nil
			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		m.formActive = false
		switch m.formType {
		case "add":
			return m.submitAdd(*m.formTitle, *m.formDue)
		case "edit":
			return m.submitEdit(m.editingID, *m.formTitle, *m.formDue)
		}
	}

	return m, cmd
}

func (m tasksModel) submitAdd(title, due string) (tasksModel, tea.Cmd) {
	task, err := m.store.Add(title, due, time.Now())
	if err != nil {
		return m, errorCmd("Add error: %v", err)
	}
	return m, tea.Batch(statusCmd("Task added: (%d) %s", task.ID, task.Title), m.refresh())
}

func (m tasksModel) submitEdit(id int64, title, due string) (tasksModel, tea.Cmd) {
	res, err := m.store.Edit(id, title, due)
	if err != nil {
		return m, errorCmd("Edit error: %v", err)
	}
	if res.DueDateInvalid {
		return m, tea.Batch(
			errorCmd("Task %d updated, but the due date didn't parse — kept the previous one", id),
			m.refresh(),
		)
	}
	return m, tea.Batch(statusCmd("Task %d updated", id), m.refresh())
}

func (m tasksModel) view() string {
	if m.formActive && m.form != nil {
		title := titleStyle.Render("New Task")
		if m.formType == "edit" {
			title = titleStyle.Render(fmt.Sprintf("Edit Task %d", m.editingID))
		}
		formView := m.form.View()
		content := lipgloss.JoinVertical(lipgloss.Left, title, "", formView)
		return panelStyle.Width(m.width - 4).Render(content)
	}

	return m.renderList()
}

func (m tasksModel) renderList() string {
	w := m.width - 4
	title := titleStyle.Render("Tasks") + "  " +
		mutedStyle.Render("filter: "+m.filter().String())

	if m.total == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title,
			"",
			mutedStyle.Render("No tasks yet. Press n to create one."),
		)
		return panelStyle.Width(w).Render(content)
	}

	if len(m.tasks) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title,
			"",
			mutedStyle.Render("No tasks match this filter."),
		)
		return panelStyle.Width(w).Render(content)
	}

	today := time.Now().Format("2006-01-02")

	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")

	header := mutedStyle.Render(fmt.Sprintf("  %-4s %-3s %-36s %s", "ID", "", "Title", "Due"))
	rows = append(rows, header)

	for i, task := range m.tasks {
		cursor := "  "
		style := normalItemStyle
		if task.Completed {
			style = doneItemStyle
		}
		if i == m.cursor {
			cursor = "> "
			style = selectedItemStyle
		}

		box := "[ ]"
		if task.Completed {
			box = "[x]"
		}

		due := ""
		switch {
		case !task.HasDueDate():
			due = mutedStyle.Render("no due date")
		case !task.Completed && task.DueDate < today:
			due = errorStyle.Render(task.DueDate + " (overdue)")
		case task.DueDate == today:
			due = warningStyle.Render(task.DueDate + " (today)")
		default:
			due = mutedStyle.Render(task.DueDate)
		}

		row := style.Render(fmt.Sprintf("%s%-4d %s %-36s", cursor, task.ID, box, truncate(task.Title, 36)))
		rows = append(rows, row+" "+due)
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  n: new  e: edit  space: toggle  d: delete  f: filter"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
