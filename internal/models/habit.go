package models

import "time"

// ResetFrequency controls when an incremental habit's counters are zeroed.
type ResetFrequency string

const (
	ResetDaily  ResetFrequency = "daily"
	ResetWeekly ResetFrequency = "weekly"
)

// DailyHabit is a recurring habit tracked per day on a fixed set of weekdays.
type DailyHabit struct {
	ID         string         `json:"id"`
	Title      string         `json:"title"`
	Done       bool           `json:"done"`
	Streak     int            `json:"streak"`
	DaysOfWeek []time.Weekday `json:"days_of_week"`
	Order      int            `json:"order"`
}

// ScheduledOn reports whether the habit is active on the given weekday.
func (h DailyHabit) ScheduledOn(day time.Weekday) bool {
	for _, d := range h.DaysOfWeek {
		if d == day {
			return true
		}
	}
	return false
}

// CheckOff marks the habit complete for the current day and credits the
// streak. Checking an already-done habit changes nothing.
func (h DailyHabit) CheckOff() DailyHabit {
	if !h.Done {
		h.Done = true
		h.Streak++
	}
	return h
}

// Uncheck reverses a same-day check-off, returning the streak credit.
func (h DailyHabit) Uncheck() DailyHabit {
	if h.Done {
		h.Done = false
		if h.Streak > 0 {
			h.Streak--
		}
	}
	return h
}

// IncrementalHabit counts positive and negative occurrences between resets.
type IncrementalHabit struct {
	ID             string         `json:"id"`
	Title          string         `json:"title"`
	ResetFrequency ResetFrequency `json:"reset_frequency"`
	PositiveCount  int            `json:"positive_count"`
	NegativeCount  int            `json:"negative_count"`
	Order          int            `json:"order"`
}

// Todo is a one-off item. DoneDate is set when completed and cleared when
// un-completed. DueDate is informational only and never drives a rollover.
type Todo struct {
	ID       string     `json:"id"`
	Title    string     `json:"title"`
	DoneDate *time.Time `json:"done_date,omitempty"`
	DueDate  *time.Time `json:"due_date,omitempty"`
	Order    int        `json:"order"`
}
