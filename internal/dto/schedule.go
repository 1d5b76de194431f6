package dto

import (
	"time"

	"github.com/reqroute/reqroute-api/internal/constants"
	"github.com/reqroute/reqroute-api/internal/models"
)

// ScheduleDTO represents a meeting schedule in API responses. Dates are
// "YYYY-MM-DD" and the time of day is "HH:MM:SS".
type ScheduleDTO struct {
	ID            uint64    `json:"id"`
	TeamID        uint64    `json:"team_id"`
	StartDate     string    `json:"start_date"`
	DayOfWeek     int       `json:"day_of_week"`
	Time          string    `json:"time"`
	IntervalWeeks int       `json:"interval_weeks"`
	Active        bool      `json:"active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ToScheduleDTO converts a MeetingSchedule model to ScheduleDTO
func ToScheduleDTO(schedule models.MeetingSchedule) ScheduleDTO {
	return ScheduleDTO{
		ID:            schedule.ID,
		TeamID:        schedule.TeamID,
		StartDate:     schedule.StartDate.UTC().Format(constants.DateLayout),
		DayOfWeek:     schedule.DayOfWeek,
		Time:          schedule.TimeOfDay.String(),
		IntervalWeeks: schedule.IntervalWeeks,
		Active:        schedule.Active,
		CreatedAt:     schedule.CreatedAt,
		UpdatedAt:     schedule.UpdatedAt,
	}
}
