package constants

const (
	// DateFormat is the canonical day format used in output and parsing.
	DateFormat = "2006-01-02"

	// TodoRetentionDays is how long a completed todo survives before the
	// rollover purge removes it.
	TodoRetentionDays = 7

	// WeeklyCycleDays is the length of the weekly rollover cycle.
	WeeklyCycleDays = 7
)
