package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/taskdeck/internal/query"
	"github.com/sadopc/taskdeck/internal/store"
)

type statsModel struct {
	store  *store.Store
	width  int
	height int

	offset int // weeks back from the current window (0 = current)

	counts query.Counts
	tasks  []store.Task

	chart barchart.Model
}

func newStatsModel(s *store.Store) statsModel {
	return statsModel{
		store: s,
		chart: barchart.New(60, 12),
	}
}

func (m *statsModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

func (m statsModel) refresh() tea.Cmd {
	return func() tea.Msg {
		tasks := m.store.Tasks()
		return statsDataMsg{
			counts: query.Count(tasks, time.Now()),
			tasks:  tasks,
		}
	}
}

// dateRange returns the 7-day window around today: three days back through
// three days ahead, shifted by the week offset.
func (m statsModel) dateRange() (time.Time, time.Time) {
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	start := today.AddDate(0, 0, -3-7*m.offset)
	return start, start.AddDate(0, 0, 7)
}

func (m statsModel) update(msg tea.Msg) (statsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case statsDataMsg:
		m.counts = msg.counts
		m.tasks = msg.tasks
		m.buildChart()
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Up):
			m.offset++
			m.buildChart()
			return m, nil
		case key.Matches(msg, keys.Down):
			if m.offset > 0 {
				m.offset--
				m.buildChart()
			}
			return m, nil
		}
	}
	return m, nil
}

func (m *statsModel) buildChart() {
	chartWidth := m.width - 8
	if chartWidth < 20 {
		chartWidth = 20
	}
	chartHeight := 10
	if m.height > 28 {
		chartHeight = 14
	}

	m.chart = barchart.New(chartWidth, chartHeight)

	from, to := m.dateRange()
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	// One bar per day: open tasks due that day.
	var bars []barchart.BarData
	for d := from; d.Before(to); d = d.AddDate(0, 0, 1) {
		dateStr := d.Format("2006-01-02")
		label := d.Format("Mon 02")

		var open float64
		for _, t := range m.tasks {
			if !t.Completed && t.DueDate == dateStr {
				open++
			}
		}

		style := lipgloss.NewStyle().Foreground(colorPrimary)
		switch {
		case d.Before(today):
			style = lipgloss.NewStyle().Foreground(colorError)
		case d.Equal(today):
			style = lipgloss.NewStyle().Foreground(colorWarning)
		}
		if open == 0 {
			style = lipgloss.NewStyle().Foreground(colorSubtle)
		}

		bars = append(bars, barchart.BarData{
			Label: label,
			Values: []barchart.BarValue{
				{Name: "due", Value: open, Style: style},
			},
		})
	}

	m.chart.PushAll(bars)
	m.chart.Draw()
}

func (m statsModel) view() string {
	w := m.width - 4

	from, to := m.dateRange()
	dateLabel := mutedStyle.Render(fmt.Sprintf("%s — %s",
		from.Format("Jan 02"), to.Add(-24*time.Hour).Format("Jan 02, 2006")))

	header := lipgloss.JoinHorizontal(lipgloss.Bottom,
		titleStyle.Render("Stats"), "  ", dateLabel,
	)

	chartView := m.chart.View()
	summary := m.renderSummary()
	nav := mutedStyle.Render("  ↑/↓: earlier/later week")

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			header, "", chartView, "", summary, "", nav,
		),
	)
}

func (m statsModel) renderSummary() string {
	c := m.counts
	if c.Total == 0 {
		return mutedStyle.Render("  No tasks yet")
	}

	var rows []string
	rows = append(rows, mutedStyle.Render(fmt.Sprintf("  %-12s %6s", "Filter", "Tasks")))
	rows = append(rows, mutedStyle.Render("  "+strings.Repeat("─", 20)))
	rows = append(rows, fmt.Sprintf("  %-12s %6d", "all", c.Total))
	rows = append(rows, successStyle.Render(fmt.Sprintf("  %-12s %6d", "completed", c.Completed)))
	rows = append(rows, fmt.Sprintf("  %-12s %6d", "incomplete", c.Incomplete))
	rows = append(rows, warningStyle.Render(fmt.Sprintf("  %-12s %6d", "due today", c.DueToday)))
	rows = append(rows, errorStyle.Render(fmt.Sprintf("  %-12s %6d", "overdue", c.Overdue)))

	return strings.Join(rows, "\n")
}
