package dto

import (
	"time"

	"github.com/reqroute/reqroute-api/internal/models"
	"github.com/reqroute/reqroute-api/internal/utils"
)

// MeetingDTO represents a meeting in API responses
type MeetingDTO struct {
	ID                uint64    `json:"id"`
	TeamID            uint64    `json:"team_id"`
	ScheduleID        *uint64   `json:"schedule_id"`
	PreviousMeetingID *uint64   `json:"previous_meeting_id"`
	DateTime          time.Time `json:"date_time"`
	Summary           *string   `json:"summary"`
	RecordingLink     *string   `json:"recording_link"`
}

// MeetingListResponse represents a page of a team's meetings
type MeetingListResponse struct {
	Meetings   []MeetingDTO             `json:"meetings"`
	Pagination utils.PaginationResponse `json:"pagination"`
}

// ToMeetingDTO converts a Meeting model to MeetingDTO
func ToMeetingDTO(meeting models.Meeting) MeetingDTO {
	return MeetingDTO{
		ID:                meeting.ID,
		TeamID:            meeting.TeamID,
		ScheduleID:        meeting.ScheduleID,
		PreviousMeetingID: meeting.PreviousMeetingID,
		DateTime:          meeting.DateTime.UTC(),
		Summary:           meeting.Summary,
		RecordingLink:     meeting.RecordingLink,
	}
}

// ToMeetingListResponse converts a page of meetings to MeetingListResponse
func ToMeetingListResponse(meetings []models.Meeting, pagination utils.PaginationResponse) MeetingListResponse {
	items := make([]MeetingDTO, len(meetings))
	for i, meeting := range meetings {
		items[i] = ToMeetingDTO(meeting)
	}

	return MeetingListResponse{
		Meetings:   items,
		Pagination: pagination,
	}
}
