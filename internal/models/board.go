package models

import "time"

// Watermarks records when each rollover kind last executed. Both values are
// midnight-normalized local times.
type Watermarks struct {
	LastDailyReset  time.Time `json:"last_daily_reset"`
	LastWeeklyReset time.Time `json:"last_weekly_reset"`
}

// Board is the whole persisted collection: every trackable item plus the
// rollover watermarks. It is read at startup and written back as a unit.
type Board struct {
	DailyHabits       []DailyHabit       `json:"daily_habits"`
	IncrementalHabits []IncrementalHabit `json:"incremental_habits"`
	Todos             []Todo             `json:"todos"`
	Watermarks        Watermarks         `json:"watermarks"`
}
