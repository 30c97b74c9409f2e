package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	switch m.state {
	case StateNewDay:
		return m.viewNewDay()
	case StateAdding:
		return docStyle.Render(m.form.View())
	}

	var content string
	switch m.state {
	case StateHabits:
		content = m.habitList.View()
	case StateCounters:
		content = m.counterList.View()
	case StateTodos:
		content = m.todoList.View()
	}

	sections := []string{m.viewTabs(), content}
	if m.saveWarning != "" {
		sections = append(sections, warningStyle.Render("⚠ "+m.saveWarning))
	}
	if len(m.pendingIDs) > 0 {
		sections = append(sections, pendingStyle.Render("⏳ rollover pending confirmation"))
	}
	sections = append(sections, m.help.View(m.keys))

	return docStyle.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (m Model) viewTabs() string {
	var tabs []string
	for i, title := range []string{"Habits", "Counters", "Todos"} {
		if m.state == SessionState(i) {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewNewDay() string {
	var b strings.Builder
	b.WriteString("Unfinished habits from yesterday:\n\n")
	for _, title := range m.pendingTitles() {
		b.WriteString("  · " + title + "\n")
	}
	b.WriteString("\n")
	b.WriteString(m.form.View())

	return lipgloss.Place(m.width, m.height,
		lipgloss.Center, lipgloss.Center,
		b.String(),
	)
}

func formatWeekdays(days []time.Weekday) string {
	if len(days) == 7 {
		return "every day"
	}
	var names []string
	for _, d := range days {
		names = append(names, d.String()[:3])
	}
	return strings.Join(names, ",")
}
