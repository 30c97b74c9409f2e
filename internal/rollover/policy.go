package rollover

import (
	"time"

	"github.com/acavaleiro/habitboard/internal/constants"
	"github.com/acavaleiro/habitboard/internal/models"
)

// Midnight normalizes t to 00:00:00 in its own location.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// IsDailyDue reports whether a daily rollover should run: true iff the
// calendar date of now is strictly later than the last daily reset. A clock
// that moved backwards (now before the watermark) is never due.
func IsDailyDue(lastDailyReset, now time.Time) bool {
	return Midnight(now).After(Midnight(lastDailyReset))
}

// IsWeeklyDue reports whether a weekly rollover should run: true iff at least
// seven full days have passed since the last weekly reset, comparing
// midnight-normalized dates. Backwards clock movement is never due.
func IsWeeklyDue(lastWeeklyReset, now time.Time) bool {
	return !Midnight(now).Before(Midnight(lastWeeklyReset).AddDate(0, 0, constants.WeeklyCycleDays))
}

// YesterdayWeekday returns the weekday of the calendar day immediately
// preceding now. AddDate handles month and year boundaries.
func YesterdayWeekday(now time.Time) time.Weekday {
	return now.AddDate(0, 0, -1).Weekday()
}

// LastMonday returns the midnight of the most recent Monday at or before now.
// This is the weekly rollover anchor.
func LastMonday(now time.Time) time.Time {
	day := Midnight(now)
	offset := (int(day.Weekday()) - int(time.Monday) + 7) % 7
	return day.AddDate(0, 0, -offset)
}

// RollDaily computes a daily habit's state after a daily rollover. A habit
// scheduled yesterday keeps its streak if it was done and loses it otherwise;
// a habit not scheduled yesterday cannot be judged on it and passes through.
// Done is always cleared for the new day, so the transform is idempotent.
func RollDaily(h models.DailyHabit, yesterday time.Weekday) models.DailyHabit {
	if h.ScheduledOn(yesterday) && !h.Done {
		h.Streak = 0
	}
	h.Done = false
	return h
}

// RollIncremental zeroes an incremental habit's counters when its reset
// frequency matches the rollover being applied: daily habits reset on every
// daily rollover, weekly habits only when the weekly rollover is also due.
func RollIncremental(h models.IncrementalHabit, weeklyDue bool) models.IncrementalHabit {
	switch h.ResetFrequency {
	case models.ResetDaily:
		h.PositiveCount = 0
		h.NegativeCount = 0
	case models.ResetWeekly:
		if weeklyDue {
			h.PositiveCount = 0
			h.NegativeCount = 0
		}
	}
	return h
}

// PurgeStaleTodos drops every todo completed seven or more days ago. Todos
// that were never completed are kept regardless of age.
func PurgeStaleTodos(todos []models.Todo, now time.Time) []models.Todo {
	cutoff := now.AddDate(0, 0, -constants.TodoRetentionDays)
	kept := make([]models.Todo, 0, len(todos))
	for _, td := range todos {
		if td.DoneDate != nil && !td.DoneDate.After(cutoff) {
			continue
		}
		kept = append(kept, td)
	}
	return kept
}

// PendingHabits returns the IDs of daily habits that were scheduled yesterday
// and left incomplete. These block a silent auto-rollover.
func PendingHabits(habits []models.DailyHabit, now time.Time) []string {
	yesterday := YesterdayWeekday(now)
	var ids []string
	for _, h := range habits {
		if h.ScheduledOn(yesterday) && !h.Done {
			ids = append(ids, h.ID)
		}
	}
	return ids
}
