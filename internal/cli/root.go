package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/acavaleiro/habitboard/internal/rollover"
	"github.com/acavaleiro/habitboard/internal/storage"
)

type Context struct {
	Store   storage.Provider
	Session *rollover.Session
}

// load opens storage, seeds the session and runs the startup rollover
// evaluation. Every command goes through here so due-ness is always checked
// before any read or mutation.
func (c *Context) load() (rollover.Result, error) {
	if err := c.Store.Load(); err != nil {
		return rollover.Result{}, err
	}
	if err := c.Session.Load(); err != nil {
		return rollover.Result{}, err
	}
	res := c.Session.Evaluate()
	if res.SaveErr != nil {
		fmt.Printf("Warning: rollover applied but could not be saved: %v\n", res.SaveErr)
	}
	return res, nil
}

// reportPending prints the confirmation notice when a rollover is withheld.
func reportPending(res rollover.Result) {
	if len(res.PendingIDs) == 0 {
		return
	}
	fmt.Printf("%d habit(s) from yesterday are unfinished; run 'habitboard rollover confirm' to start the new day.\n", len(res.PendingIDs))
}

func parseWeekdays(s string) ([]time.Weekday, error) {
	parts := strings.Split(s, ",")
	var weekdays []time.Weekday

	dayMap := map[string]time.Weekday{
		"sun":       time.Sunday,
		"sunday":    time.Sunday,
		"mon":       time.Monday,
		"monday":    time.Monday,
		"tue":       time.Tuesday,
		"tuesday":   time.Tuesday,
		"wed":       time.Wednesday,
		"wednesday": time.Wednesday,
		"thu":       time.Thursday,
		"thursday":  time.Thursday,
		"fri":       time.Friday,
		"friday":    time.Friday,
		"sat":       time.Saturday,
		"saturday":  time.Saturday,
	}

	for _, part := range parts {
		part = strings.TrimSpace(strings.ToLower(part))
		if wd, ok := dayMap[part]; ok {
			weekdays = append(weekdays, wd)
		} else {
			// Try parsing as number (0=Sunday, 6=Saturday)
			num, err := strconv.Atoi(part)
			if err == nil && num >= 0 && num <= 6 {
				weekdays = append(weekdays, time.Weekday(num))
			} else {
				return nil, fmt.Errorf("invalid weekday: %s", part)
			}
		}
	}

	return weekdays, nil
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

// everyDay is the default schedule for a new daily habit.
func everyDay() []time.Weekday {
	return []time.Weekday{
		time.Sunday, time.Monday, time.Tuesday, time.Wednesday,
		time.Thursday, time.Friday, time.Saturday,
	}
}
