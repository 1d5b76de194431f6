package models

import (
	"time"

	"github.com/reqroute/reqroute-api/internal/scheduling"
)

// MeetingSchedule is the recurrence definition of a team's meetings. At most
// one schedule per team is active; older ones are kept as inactive rows.
type MeetingSchedule struct {
	ID            uint64               `gorm:"primarykey" json:"id"`
	TeamID        uint64               `gorm:"not null;index" json:"team_id"`
	StartDate     time.Time            `gorm:"type:date;not null" json:"start_date"`
	DayOfWeek     int                  `gorm:"not null" json:"day_of_week"`
	TimeOfDay     scheduling.TimeOfDay `gorm:"column:time_of_day;type:varchar(8);not null" json:"time"`
	IntervalWeeks int                  `gorm:"not null" json:"interval_weeks"`
	Active        bool                 `gorm:"not null" json:"active"`
	CreatedAt     time.Time            `json:"created_at"`
	UpdatedAt     time.Time            `json:"updated_at"`

	// Relations
	Team     *Team     `gorm:"foreignKey:TeamID" json:"-"`
	Meetings []Meeting `gorm:"foreignKey:ScheduleID" json:"-"`
}

// Cadence returns the recurrence parameters of the schedule.
func (s *MeetingSchedule) Cadence() scheduling.Cadence {
	return scheduling.Cadence{
		StartDate:     s.StartDate,
		DayOfWeek:     s.DayOfWeek,
		TimeOfDay:     s.TimeOfDay,
		IntervalWeeks: s.IntervalWeeks,
	}
}
