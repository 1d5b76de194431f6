// Package scheduling turns a weekly or biweekly meeting cadence into the
// concrete meeting slots that fall inside an academic term.
package scheduling

import "time"

const daysPerWeek = 7

// Cadence describes when a recurring meeting happens.
type Cadence struct {
	// StartDate is the first candidate date. Only its calendar date is used.
	StartDate time.Time
	// DayOfWeek is 0 for Monday through 6 for Sunday.
	DayOfWeek     int
	TimeOfDay     TimeOfDay
	IntervalWeeks int
}

// Slot is a computed, not yet persisted meeting occurrence.
type Slot struct {
	TeamID     uint64
	ScheduleID uint64
	DateTime   time.Time
}

// Generate returns every slot of the cadence whose date is on or before
// endDate, earliest first. The result is empty when the first occurrence is
// already past endDate.
//
// DayOfWeek must be in 0..6 and IntervalWeeks must be positive; callers
// validate both.
func Generate(c Cadence, endDate time.Time, teamID, scheduleID uint64) []Slot {
	last := DateOf(endDate)
	current := FirstOccurrence(c.StartDate, c.DayOfWeek)
	step := c.IntervalWeeks * daysPerWeek

	var slots []Slot
	for !current.After(last) {
		slots = append(slots, Slot{
			TeamID:     teamID,
			ScheduleID: scheduleID,
			DateTime:   c.TimeOfDay.On(current),
		})
		current = current.AddDate(0, 0, step)
	}

	return slots
}

// FirstOccurrence returns the earliest date on or after start that falls on
// dayOfWeek (0=Monday).
func FirstOccurrence(start time.Time, dayOfWeek int) time.Time {
	start = DateOf(start)
	offset := (dayOfWeek - MondayBasedWeekday(start)) % daysPerWeek
	if offset < 0 {
		offset += daysPerWeek
	}
	return start.AddDate(0, 0, offset)
}

// MondayBasedWeekday maps time.Weekday (Sunday=0) onto 0=Monday..6=Sunday.
func MondayBasedWeekday(t time.Time) int {
	return (int(t.Weekday()) + 6) % daysPerWeek
}

// DateOf truncates t to midnight UTC of its calendar date.
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
