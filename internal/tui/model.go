package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/huh"

	"github.com/acavaleiro/habitboard/internal/constants"
	"github.com/acavaleiro/habitboard/internal/models"
	"github.com/acavaleiro/habitboard/internal/rollover"
	"github.com/acavaleiro/habitboard/internal/storage"
)

type SessionState int

const (
	StateHabits SessionState = iota
	StateCounters
	StateTodos
	StateNewDay
	StateAdding
)

// MidnightMsg is sent by the midnight scheduler when a day boundary passes
// while the TUI stays open.
type MidnightMsg struct{}

type habitItem struct {
	habit models.DailyHabit
}

func (i habitItem) Title() string {
	if i.habit.Done {
		return "✓ " + i.habit.Title
	}
	return "○ " + i.habit.Title
}

func (i habitItem) Description() string {
	return fmt.Sprintf("streak %d · %s", i.habit.Streak, formatWeekdays(i.habit.DaysOfWeek))
}

func (i habitItem) FilterValue() string { return i.habit.Title }

type counterItem struct {
	habit models.IncrementalHabit
}

func (i counterItem) Title() string { return i.habit.Title }

func (i counterItem) Description() string {
	return fmt.Sprintf("+%d / -%d · resets %s", i.habit.PositiveCount, i.habit.NegativeCount, i.habit.ResetFrequency)
}

func (i counterItem) FilterValue() string { return i.habit.Title }

type todoItem struct {
	todo models.Todo
}

func (i todoItem) Title() string {
	if i.todo.DoneDate != nil {
		return "✓ " + i.todo.Title
	}
	return "○ " + i.todo.Title
}

func (i todoItem) Description() string {
	if i.todo.DoneDate != nil {
		return "completed " + i.todo.DoneDate.Format(constants.DateFormat)
	}
	if i.todo.DueDate != nil {
		return "due " + i.todo.DueDate.Format(constants.DateFormat)
	}
	return "open"
}

func (i todoItem) FilterValue() string { return i.todo.Title }

type addFormModel struct {
	Title  string
	Weekly bool
}

type Model struct {
	store   storage.Provider
	session *rollover.Session

	state         SessionState
	previousState SessionState
	keys          KeyMap
	help          help.Model

	habitList   list.Model
	counterList list.Model
	todoList    list.Model

	form       *huh.Form
	addForm    *addFormModel
	confirmed  bool
	pendingIDs []string

	saveWarning string
	quitting    bool
	width       int
	height      int
}

func NewModel(store storage.Provider, session *rollover.Session, initial rollover.Result) Model {
	m := Model{
		store:   store,
		session: session,
		state:   StateHabits,
		keys:    DefaultKeyMap(),
		help:    help.New(),
	}

	delegate := list.NewDefaultDelegate()
	m.habitList = list.New(nil, delegate, 0, 0)
	m.habitList.Title = "daily habits"
	m.habitList.SetShowHelp(false)
	m.counterList = list.New(nil, delegate, 0, 0)
	m.counterList.Title = "counters"
	m.counterList.SetShowHelp(false)
	m.todoList = list.New(nil, delegate, 0, 0)
	m.todoList.Title = "todos"
	m.todoList.SetShowHelp(false)

	m.refresh()
	m.applyResult(initial)

	return m
}

// refresh rebuilds the three lists from the session's board snapshot.
func (m *Model) refresh() {
	board := m.session.Board()
	today := time.Now().Weekday()

	var habitItems []list.Item
	for _, h := range board.DailyHabits {
		if h.ScheduledOn(today) {
			habitItems = append(habitItems, habitItem{habit: h})
		}
	}
	m.habitList.SetItems(habitItems)

	var counterItems []list.Item
	for _, h := range board.IncrementalHabits {
		counterItems = append(counterItems, counterItem{habit: h})
	}
	m.counterList.SetItems(counterItems)

	var todoItems []list.Item
	for _, td := range board.Todos {
		todoItems = append(todoItems, todoItem{todo: td})
	}
	m.todoList.SetItems(todoItems)
}

// applyResult reacts to a rollover evaluation: a withheld rollover opens the
// new-day confirmation gate.
func (m *Model) applyResult(res rollover.Result) {
	if res.SaveErr != nil {
		m.saveWarning = fmt.Sprintf("changes could not be saved: %v", res.SaveErr)
	}
	if len(res.PendingIDs) > 0 {
		m.pendingIDs = res.PendingIDs
		m.confirmed = false
		m.form = newDayForm(&m.confirmed)
		m.previousState = m.state
		if m.state != StateNewDay {
			m.state = StateNewDay
		}
	}
	if res.Applied {
		m.refresh()
	}
}

// reload pulls the persisted board back into the session after a mutation.
func (m *Model) reload() {
	board, err := m.store.GetBoard()
	if err == nil {
		m.session.SetBoard(board)
	}
	m.refresh()
}

func newDayForm(confirmed *bool) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("A new day started with unfinished habits.").
				Description("Their streaks will reset to zero.").
				Affirmative("Start new day").
				Negative("Not yet").
				Value(confirmed),
		),
	)
}

func (m Model) pendingTitles() []string {
	board := m.session.Board()
	var titles []string
	for _, id := range m.pendingIDs {
		for _, h := range board.DailyHabits {
			if h.ID == id {
				titles = append(titles, h.Title)
			}
		}
	}
	return titles
}
