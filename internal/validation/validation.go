package validation

import (
	"fmt"
	"strings"
	"time"

	"github.com/acavaleiro/habitboard/internal/models"
)

type ConflictType string

const (
	ConflictDuplicateID     ConflictType = "duplicate_id"
	ConflictDuplicateTitle  ConflictType = "duplicate_title"
	ConflictEmptySchedule   ConflictType = "empty_schedule"
	ConflictInvalidWeekday  ConflictType = "invalid_weekday"
	ConflictNegativeValue   ConflictType = "negative_value"
	ConflictInvalidResetFrq ConflictType = "invalid_reset_frequency"
)

type Conflict struct {
	Type    ConflictType
	ItemID  string
	Message string
}

type Result struct {
	Conflicts []Conflict
}

func (r Result) HasConflicts() bool {
	return len(r.Conflicts) > 0
}

type Validator struct{}

func New() *Validator {
	return &Validator{}
}

// ValidateBoard checks a board for inconsistencies that the rollover engine
// would otherwise carry along silently.
func (v *Validator) ValidateBoard(board models.Board) Result {
	var result Result

	seenIDs := make(map[string]bool)
	checkID := func(id, kind string) {
		if seenIDs[id] {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:    ConflictDuplicateID,
				ItemID:  id,
				Message: fmt.Sprintf("duplicate %s id: %s", kind, id),
			})
		}
		seenIDs[id] = true
	}

	titles := make(map[string]bool)
	for _, h := range board.DailyHabits {
		checkID(h.ID, "habit")

		key := strings.ToLower(h.Title)
		if titles[key] {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:    ConflictDuplicateTitle,
				ItemID:  h.ID,
				Message: fmt.Sprintf("duplicate habit title: %q", h.Title),
			})
		}
		titles[key] = true

		if len(h.DaysOfWeek) == 0 {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:    ConflictEmptySchedule,
				ItemID:  h.ID,
				Message: fmt.Sprintf("habit %q has no scheduled weekdays and can never be completed", h.Title),
			})
		}
		for _, d := range h.DaysOfWeek {
			if d < time.Sunday || d > time.Saturday {
				result.Conflicts = append(result.Conflicts, Conflict{
					Type:    ConflictInvalidWeekday,
					ItemID:  h.ID,
					Message: fmt.Sprintf("habit %q has invalid weekday %d", h.Title, d),
				})
			}
		}
		if h.Streak < 0 {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:    ConflictNegativeValue,
				ItemID:  h.ID,
				Message: fmt.Sprintf("habit %q has negative streak %d", h.Title, h.Streak),
			})
		}
	}

	for _, h := range board.IncrementalHabits {
		checkID(h.ID, "counter")

		if h.ResetFrequency != models.ResetDaily && h.ResetFrequency != models.ResetWeekly {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:    ConflictInvalidResetFrq,
				ItemID:  h.ID,
				Message: fmt.Sprintf("counter %q has unknown reset frequency %q", h.Title, h.ResetFrequency),
			})
		}
		if h.PositiveCount < 0 || h.NegativeCount < 0 {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:    ConflictNegativeValue,
				ItemID:  h.ID,
				Message: fmt.Sprintf("counter %q has negative counts %d/%d", h.Title, h.PositiveCount, h.NegativeCount),
			})
		}
	}

	for _, td := range board.Todos {
		checkID(td.ID, "todo")
	}

	return result
}
