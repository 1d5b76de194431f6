package models

import (
	"time"

	"github.com/reqroute/reqroute-api/internal/scheduling"
)

// Meeting is one concrete occurrence. ScheduleID is nil for ad-hoc meetings.
// PreviousMeetingID links to the chronologically preceding meeting.
type Meeting struct {
	ID                uint64    `gorm:"primarykey" json:"id"`
	TeamID            uint64    `gorm:"not null;index" json:"team_id"`
	ScheduleID        *uint64   `gorm:"index" json:"schedule_id"`
	PreviousMeetingID *uint64   `gorm:"index" json:"previous_meeting_id"`
	DateTime          time.Time `gorm:"not null;index" json:"date_time"`
	Summary           *string   `gorm:"type:text" json:"summary"`
	RecordingLink     *string   `gorm:"type:varchar(512)" json:"recording_link"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// MeetingsFromSlots converts generated slots into unsaved meeting rows.
func MeetingsFromSlots(slots []scheduling.Slot) []Meeting {
	meetings := make([]Meeting, len(slots))
	for i, slot := range slots {
		scheduleID := slot.ScheduleID
		meetings[i] = Meeting{
			TeamID:     slot.TeamID,
			ScheduleID: &scheduleID,
			DateTime:   slot.DateTime,
		}
	}
	return meetings
}
