package tui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sadopc/taskdeck/internal/query"
	"github.com/sadopc/taskdeck/internal/store"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "tasks.json"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	return s
}

func keyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// drain runs a command and returns its message, unwrapping is left to the
// caller. Nil commands yield nil.
func drain(cmd tea.Cmd) tea.Msg {
	if cmd == nil {
		return nil
	}
	return cmd()
}

// ============================================================
// Tasks model
// ============================================================

func TestTasksRefresh(t *testing.T) {
	s := newTestStore(t)
	s.Add("one", "", time.Now())
	s.Add("two", "", time.Now())

	m := newTasksModel(s)
	msg := drain(m.refresh())
	data, ok := msg.(tasksDataMsg)
	if !ok {
		t.Fatalf("expected tasksDataMsg, got %T", msg)
	}
	if len(data.tasks) != 2 || data.total != 2 {
		t.Fatalf("got %d/%d", len(data.tasks), data.total)
	}
}

func TestTasksRefreshAppliesFilter(t *testing.T) {
	s := newTestStore(t)
	s.Add("open", "", time.Now())
	done, _ := s.Add("done", "", time.Now())
	s.Toggle(done.ID)

	m := newTasksModel(s)
	// Cycle to the "incomplete" filter (second in the cycle order).
	m, _ = m.update(keyMsg("f"))
	if m.filter() != query.Incomplete {
		t.Fatalf("filter = %v", m.filter())
	}

	data := drain(m.refresh()).(tasksDataMsg)
	if len(data.tasks) != 1 || data.tasks[0].Title != "open" {
		t.Fatalf("filtered tasks = %+v", data.tasks)
	}
	if data.total != 2 {
		t.Fatalf("total should count the whole collection, got %d", data.total)
	}
}

func TestTasksFilterCyclesAround(t *testing.T) {
	s := newTestStore(t)
	m := newTasksModel(s)

	start := m.filter()
	for range query.Kinds {
		m, _ = m.update(keyMsg("f"))
	}
	if m.filter() != start {
		t.Fatalf("full cycle should return to %v, got %v", start, m.filter())
	}
}

func TestTasksCursorMovement(t *testing.T) {
	s := newTestStore(t)
	s.Add("a", "", time.Now())
	s.Add("b", "", time.Now())

	m := newTasksModel(s)
	m, _ = m.update(drain(m.refresh()))

	m, _ = m.update(keyMsg("j"))
	if m.cursor != 1 {
		t.Fatalf("cursor = %d, want 1", m.cursor)
	}
	// Clamped at the end.
	m, _ = m.update(keyMsg("j"))
	if m.cursor != 1 {
		t.Fatalf("cursor = %d, want 1", m.cursor)
	}
	m, _ = m.update(keyMsg("k"))
	if m.cursor != 0 {
		t.Fatalf("cursor = %d, want 0", m.cursor)
	}
	m, _ = m.update(keyMsg("k"))
	if m.cursor != 0 {
		t.Fatalf("cursor = %d, want 0", m.cursor)
	}
}

func TestTasksCursorClampsOnShrink(t *testing.T) {
	s := newTestStore(t)
	a, _ := s.Add("a", "", time.Now())
	b, _ := s.Add("b", "", time.Now())

	m := newTasksModel(s)
	m, _ = m.update(drain(m.refresh()))
	m, _ = m.update(keyMsg("j")) // cursor on b

	s.Delete(a.ID)
	s.Delete(b.ID)
	m, _ = m.update(drain(m.refresh()))
	if m.cursor != 0 {
		t.Fatalf("cursor = %d after shrink", m.cursor)
	}
}

func TestTasksToggleKey(t *testing.T) {
	s := newTestStore(t)
	task, _ := s.Add("flip", "", time.Now())

	m := newTasksModel(s)
	m, _ = m.update(drain(m.refresh()))
	m.update(keyMsg("t"))

	got, _ := s.Get(task.ID)
	if !got.Completed {
		t.Fatal("toggle key should complete the task")
	}
}

func TestTasksDeleteKey(t *testing.T) {
	s := newTestStore(t)
	s.Add("doomed", "", time.Now())

	m := newTasksModel(s)
	m, _ = m.update(drain(m.refresh()))
	m.update(keyMsg("d"))

	if s.Len() != 0 {
		t.Fatal("delete key should remove the task")
	}
}

func TestTasksDeleteOnEmptyIsNoop(t *testing.T) {
	s := newTestStore(t)
	m := newTasksModel(s)
	m, cmd := m.update(keyMsg("d"))
	if cmd != nil {
		t.Fatal("delete with no tasks should do nothing")
	}
	_ = m
}

func TestTasksAddFormOpens(t *testing.T) {
	s := newTestStore(t)
	m := newTasksModel(s)

	m, cmd := m.update(keyMsg("n"))
	if !m.formActive || m.form == nil {
		t.Fatal("n should open the add form")
	}
	if m.formType != "add" {
		t.Fatalf("formType = %q", m.formType)
	}
	if cmd == nil {
		t.Fatal("form init cmd expected")
	}
}

func TestTasksEditFormOpens(t *testing.T) {
	s := newTestStore(t)
	task, _ := s.Add("editable", "2025-11-12", time.Now())

	m := newTasksModel(s)
	m, _ = m.update(drain(m.refresh()))
	m, _ = m.update(keyMsg("e"))
	if !m.formActive || m.formType != "edit" {
		t.Fatal("e should open the edit form")
	}
	if m.editingID != task.ID {
		t.Fatalf("editingID = %d", m.editingID)
	}
}

func TestTasksFormEscCancels(t *testing.T) {
	s := newTestStore(t)
	m := newTasksModel(s)
	m, _ = m.update(keyMsg("n"))

	m, _ = m.update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.formActive || m.form != nil {
		t.Fatal("esc should cancel the form")
	}
	if s.Len() != 0 {
		t.Fatal("cancelled form must not add a task")
	}
}

func TestTasksSubmitAdd(t *testing.T) {
	s := newTestStore(t)
	m := newTasksModel(s)

	_, cmd := m.submitAdd("new task", "Nov 12 2025")
	if cmd == nil {
		t.Fatal("expected status + refresh cmd")
	}
	if s.Len() != 1 {
		t.Fatal("task not added")
	}
	task := s.Tasks()[0]
	if task.DueDate != "2025-11-12" {
		t.Fatalf("due = %q", task.DueDate)
	}
}

func TestTasksSubmitAddEmptyTitle(t *testing.T) {
	s := newTestStore(t)
	m := newTasksModel(s)

	_, cmd := m.submitAdd("   ", "")
	msg := drain(cmd)
	status, ok := msg.(statusMsg)
	if !ok {
		t.Fatalf("expected statusMsg, got %T", msg)
	}
	if !status.isError {
		t.Fatal("empty title should surface as an error status")
	}
	if s.Len() != 0 {
		t.Fatal("no task should be added")
	}
}

func TestTasksSubmitEditInvalidDue(t *testing.T) {
	s := newTestStore(t)
	task, _ := s.Add("keep my date", "2025-11-12", time.Now())

	m := newTasksModel(s)
	_, cmd := m.submitEdit(task.ID, "", "gibberish")
	if cmd == nil {
		t.Fatal("expected cmd")
	}

	got, _ := s.Get(task.ID)
	if got.DueDate != "2025-11-12" {
		t.Fatalf("due date should be kept, got %q", got.DueDate)
	}
}

// ============================================================
// Empty-state rendering
// ============================================================

func TestTasksViewEmptyCollection(t *testing.T) {
	s := newTestStore(t)
	m := newTasksModel(s)
	m.setSize(80, 24)
	m, _ = m.update(drain(m.refresh()))

	if !strings.Contains(m.view(), "No tasks yet") {
		t.Fatal("empty collection should say so")
	}
}

func TestTasksViewEmptyFilterResult(t *testing.T) {
	s := newTestStore(t)
	s.Add("open task", "", time.Now())

	m := newTasksModel(s)
	m.setSize(80, 24)
	// Cycle to "completed": open task won't match.
	m, _ = m.update(keyMsg("f"))
	m, _ = m.update(keyMsg("f"))
	if m.filter() != query.Completed {
		t.Fatalf("filter = %v", m.filter())
	}
	m, _ = m.update(drain(m.refresh()))

	view := m.view()
	if !strings.Contains(view, "No tasks match this filter") {
		t.Fatal("empty filter result wording missing")
	}
	if strings.Contains(view, "No tasks yet") {
		t.Fatal("non-empty collection must not claim to be empty")
	}
}

func TestTasksViewShowsDueMarkers(t *testing.T) {
	s := newTestStore(t)
	today := time.Now().Format("2006-01-02")
	s.Add("due now", today, time.Now())
	s.Add("late", "2020-01-01", time.Now())

	m := newTasksModel(s)
	m.setSize(100, 24)
	m, _ = m.update(drain(m.refresh()))

	view := m.view()
	if !strings.Contains(view, "(today)") {
		t.Fatal("due-today marker missing")
	}
	if !strings.Contains(view, "(overdue)") {
		t.Fatal("overdue marker missing")
	}
}

// ============================================================
// Stats model
// ============================================================

func TestStatsRefresh(t *testing.T) {
	s := newTestStore(t)
	s.Add("open", "", time.Now())
	done, _ := s.Add("done", "", time.Now())
	s.Toggle(done.ID)

	m := newStatsModel(s)
	msg := drain(m.refresh())
	data, ok := msg.(statsDataMsg)
	if !ok {
		t.Fatalf("expected statsDataMsg, got %T", msg)
	}
	if data.counts.Total != 2 || data.counts.Completed != 1 {
		t.Fatalf("counts = %+v", data.counts)
	}
}

func TestStatsChartBuilds(t *testing.T) {
	s := newTestStore(t)
	today := time.Now().Format("2006-01-02")
	s.Add("due now", today, time.Now())

	m := newStatsModel(s)
	m.setSize(80, 24)
	m, _ = m.update(drain(m.refresh()).(statsDataMsg))

	if m.view() == "" {
		t.Fatal("stats view should render")
	}
}

func TestStatsOffsetNavigation(t *testing.T) {
	s := newTestStore(t)
	m := newStatsModel(s)
	m.setSize(80, 24)
	m, _ = m.update(drain(m.refresh()).(statsDataMsg))

	m, _ = m.update(keyMsg("k"))
	if m.offset != 1 {
		t.Fatalf("offset = %d", m.offset)
	}
	m, _ = m.update(keyMsg("j"))
	m, _ = m.update(keyMsg("j")) // clamped at 0
	if m.offset != 0 {
		t.Fatalf("offset = %d", m.offset)
	}
}

// ============================================================
// App
// ============================================================

func TestAppViewSwitching(t *testing.T) {
	s := newTestStore(t)
	a := NewApp(s, t.TempDir())

	model, _ := a.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	a = model.(App)

	model, _ = a.Update(keyMsg("2"))
	a = model.(App)
	if a.activeView != viewStats {
		t.Fatalf("activeView = %v", a.activeView)
	}

	model, _ = a.Update(keyMsg("1"))
	a = model.(App)
	if a.activeView != viewTasks {
		t.Fatalf("activeView = %v", a.activeView)
	}

	model, _ = a.Update(tea.KeyMsg{Type: tea.KeyTab})
	a = model.(App)
	if a.activeView != viewStats {
		t.Fatalf("tab should advance, got %v", a.activeView)
	}
}

func TestAppStatusMessage(t *testing.T) {
	s := newTestStore(t)
	a := NewApp(s, t.TempDir())

	model, _ := a.Update(statusMsg{text: "Task added: (1) x"})
	a = model.(App)
	if a.status != "Task added: (1) x" {
		t.Fatalf("status = %q", a.status)
	}
}

func TestAppExportPicker(t *testing.T) {
	s := newTestStore(t)
	a := NewApp(s, t.TempDir())
	model, _ := a.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	a = model.(App)

	model, _ = a.Update(keyMsg("x"))
	a = model.(App)
	if !a.exportPicking {
		t.Fatal("x should open the export picker")
	}

	model, _ = a.Update(tea.KeyMsg{Type: tea.KeyEsc})
	a = model.(App)
	if a.exportPicking {
		t.Fatal("esc should close the export picker")
	}
}

func TestAppExportWritesFile(t *testing.T) {
	s := newTestStore(t)
	s.Add("exported", "2025-11-12", time.Now())

	dir := t.TempDir()
	a := NewApp(s, dir)

	msg := drain(a.doExport(0))
	done, ok := msg.(exportDoneMsg)
	if !ok {
		t.Fatalf("expected exportDoneMsg, got %#v", msg)
	}
	if _, err := os.Stat(done.path); err != nil {
		t.Fatalf("export file missing: %v", err)
	}
	if filepath.Ext(done.path) != ".csv" {
		t.Fatalf("path = %q", done.path)
	}

	msg = drain(a.doExport(1))
	done, ok = msg.(exportDoneMsg)
	if !ok {
		t.Fatalf("expected exportDoneMsg, got %#v", msg)
	}
	if filepath.Ext(done.path) != ".json" {
		t.Fatalf("path = %q", done.path)
	}
}

func TestAppQuit(t *testing.T) {
	s := newTestStore(t)
	a := NewApp(s, t.TempDir())
	model, _ := a.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	a = model.(App)

	_, cmd := a.Update(keyMsg("q"))
	if cmd == nil {
		t.Fatal("q should quit")
	}
	if msg := cmd(); msg != tea.Quit() {
		t.Fatalf("expected quit msg, got %#v", msg)
	}
}
