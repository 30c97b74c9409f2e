package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/google/uuid"

	"github.com/acavaleiro/habitboard/internal/models"
)

func (m Model) Init() tea.Cmd {
	if m.state == StateNewDay && m.form != nil {
		return m.form.Init()
	}
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		h, v := docStyle.GetFrameSize()
		listWidth, listHeight := msg.Width-h, msg.Height-v-4
		m.habitList.SetSize(listWidth, listHeight)
		m.counterList.SetSize(listWidth, listHeight)
		m.todoList.SetSize(listWidth, listHeight)
		return m, nil

	case MidnightMsg:
		// The timer is only a trigger; Evaluate re-checks due-ness from the
		// persisted watermarks against the wall clock.
		res := m.session.Evaluate()
		m.applyResult(res)
		if m.state == StateNewDay && m.form != nil {
			return m, m.form.Init()
		}
		return m, nil
	}

	switch m.state {
	case StateNewDay:
		return m.updateNewDay(msg)
	case StateAdding:
		return m.updateAdding(msg)
	default:
		return m.updateLists(msg)
	}
}

func (m Model) updateNewDay(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		// Leaving the gate keeps the rollover withheld; it will be offered
		// again on the next evaluation.
		m.state = m.previousState
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		if m.confirmed {
			res := m.session.Confirm()
			if res.SaveErr != nil {
				m.saveWarning = "rollover applied but could not be saved: " + res.SaveErr.Error()
			}
			m.pendingIDs = nil
			m.refresh()
		}
		m.state = m.previousState
	case huh.StateAborted:
		m.state = m.previousState
	}
	return m, cmd
}

func (m Model) updateAdding(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = m.previousState
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		if m.addForm.Title != "" {
			m.createItem()
		}
		m.state = m.previousState
	case huh.StateAborted:
		m.state = m.previousState
	}
	return m, cmd
}

// createItem persists whatever the add form described for the active tab.
func (m *Model) createItem() {
	board := m.session.Board()
	switch m.previousState {
	case StateHabits:
		habit := models.DailyHabit{
			ID:         uuid.New().String(),
			Title:      m.addForm.Title,
			DaysOfWeek: allWeekdays(),
			Order:      len(board.DailyHabits),
		}
		if err := m.store.AddDailyHabit(habit); err != nil {
			m.saveWarning = "could not save habit: " + err.Error()
			return
		}
	case StateCounters:
		freq := models.ResetDaily
		if m.addForm.Weekly {
			freq = models.ResetWeekly
		}
		habit := models.IncrementalHabit{
			ID:             uuid.New().String(),
			Title:          m.addForm.Title,
			ResetFrequency: freq,
			Order:          len(board.IncrementalHabits),
		}
		if err := m.store.AddIncrementalHabit(habit); err != nil {
			m.saveWarning = "could not save counter: " + err.Error()
			return
		}
	case StateTodos:
		todo := models.Todo{
			ID:    uuid.New().String(),
			Title: m.addForm.Title,
			Order: len(board.Todos),
		}
		if err := m.store.AddTodo(todo); err != nil {
			m.saveWarning = "could not save todo: " + err.Error()
			return
		}
	}
	m.reload()
}

func (m Model) updateLists(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(keyMsg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(keyMsg, m.keys.Tab):
			m.state = (m.state + 1) % 3
			return m, nil
		case key.Matches(keyMsg, m.keys.ShiftTab):
			m.state = (m.state + 2) % 3
			return m, nil
		case key.Matches(keyMsg, m.keys.Add):
			m.addForm = &addFormModel{}
			m.form = m.newAddForm()
			m.previousState = m.state
			m.state = StateAdding
			return m, m.form.Init()
		case key.Matches(keyMsg, m.keys.Toggle):
			m.toggleSelected()
			return m, nil
		case key.Matches(keyMsg, m.keys.BumpUp):
			m.bumpSelected(true)
			return m, nil
		case key.Matches(keyMsg, m.keys.BumpDown):
			m.bumpSelected(false)
			return m, nil
		case key.Matches(keyMsg, m.keys.Delete):
			m.deleteSelected()
			return m, nil
		case key.Matches(keyMsg, m.keys.Clean):
			m.cleanDoneTodos()
			return m, nil
		}
	}

	var cmd tea.Cmd
	switch m.state {
	case StateHabits:
		m.habitList, cmd = m.habitList.Update(msg)
	case StateCounters:
		m.counterList, cmd = m.counterList.Update(msg)
	case StateTodos:
		m.todoList, cmd = m.todoList.Update(msg)
	}
	return m, cmd
}

func (m *Model) newAddForm() *huh.Form {
	fields := []huh.Field{
		huh.NewInput().Title("title").Value(&m.addForm.Title),
	}
	if m.state == StateCounters {
		fields = append(fields, huh.NewConfirm().
			Title("reset weekly?").
			Affirmative("weekly").
			Negative("daily").
			Value(&m.addForm.Weekly))
	}
	return huh.NewForm(huh.NewGroup(fields...))
}

func (m *Model) toggleSelected() {
	switch m.state {
	case StateHabits:
		item, ok := m.habitList.SelectedItem().(habitItem)
		if !ok {
			return
		}
		habit := item.habit
		if habit.Done {
			habit = habit.Uncheck()
		} else {
			habit = habit.CheckOff()
		}
		if err := m.store.UpdateDailyHabit(habit); err != nil {
			m.saveWarning = "could not save habit: " + err.Error()
			return
		}
	case StateTodos:
		item, ok := m.todoList.SelectedItem().(todoItem)
		if !ok {
			return
		}
		todo := item.todo
		if todo.DoneDate != nil {
			todo.DoneDate = nil
		} else {
			now := time.Now()
			todo.DoneDate = &now
		}
		if err := m.store.UpdateTodo(todo); err != nil {
			m.saveWarning = "could not save todo: " + err.Error()
			return
		}
	default:
		return
	}
	m.reload()
}

func (m *Model) bumpSelected(up bool) {
	if m.state != StateCounters {
		return
	}
	item, ok := m.counterList.SelectedItem().(counterItem)
	if !ok {
		return
	}
	habit := item.habit
	if up {
		habit.PositiveCount++
	} else {
		habit.NegativeCount++
	}
	if err := m.store.UpdateIncrementalHabit(habit); err != nil {
		m.saveWarning = "could not save counter: " + err.Error()
		return
	}
	m.reload()
}

func (m *Model) deleteSelected() {
	var err error
	switch m.state {
	case StateHabits:
		item, ok := m.habitList.SelectedItem().(habitItem)
		if !ok {
			return
		}
		err = m.store.DeleteDailyHabit(item.habit.ID)
	case StateCounters:
		item, ok := m.counterList.SelectedItem().(counterItem)
		if !ok {
			return
		}
		err = m.store.DeleteIncrementalHabit(item.habit.ID)
	case StateTodos:
		item, ok := m.todoList.SelectedItem().(todoItem)
		if !ok {
			return
		}
		err = m.store.DeleteTodo(item.todo.ID)
	}
	if err != nil {
		m.saveWarning = "could not delete: " + err.Error()
		return
	}
	m.reload()
}

func (m *Model) cleanDoneTodos() {
	if m.state != StateTodos {
		return
	}
	board := m.session.Board()
	kept := make([]models.Todo, 0, len(board.Todos))
	for _, td := range board.Todos {
		if td.DoneDate == nil {
			kept = append(kept, td)
		}
	}
	if len(kept) == len(board.Todos) {
		return
	}
	board.Todos = kept
	if err := m.store.SaveBoard(board); err != nil {
		m.saveWarning = "could not save board: " + err.Error()
		return
	}
	m.session.SetBoard(board)
	m.refresh()
}

func allWeekdays() []time.Weekday {
	return []time.Weekday{
		time.Sunday, time.Monday, time.Tuesday, time.Wednesday,
		time.Thursday, time.Friday, time.Saturday,
	}
}
