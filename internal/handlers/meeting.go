package handlers

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/reqroute/reqroute-api/internal/dto"
	apierrors "github.com/reqroute/reqroute-api/internal/errors"
	"github.com/reqroute/reqroute-api/internal/middleware"
	"github.com/reqroute/reqroute-api/internal/services"
	"github.com/reqroute/reqroute-api/internal/utils"
)

type MeetingHandler struct {
	meetingService *services.MeetingService
}

func NewMeetingHandler(meetingService *services.MeetingService) *MeetingHandler {
	return &MeetingHandler{
		meetingService: meetingService,
	}
}

// ListTeamMeetings returns the meetings of the team in the path, oldest first
func (h *MeetingHandler) ListTeamMeetings(c *gin.Context) {
	teamID, ok := middleware.GetIDParam(c)
	if !ok {
		apierrors.BadRequest(c, "Invalid team ID")
		return
	}

	params := utils.GetPaginationParams(c)
	meetings, total, err := h.meetingService.ListTeamMeetings(c, teamID, params)
	if err != nil {
		respondMeetingError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToMeetingListResponse(meetings, params.Response(total)))
}

// CreateMeeting creates an ad-hoc meeting
func (h *MeetingHandler) CreateMeeting(c *gin.Context) {
	type CreateMeetingRequest struct {
		TeamID            uint64    `json:"team_id" binding:"required"`
		DateTime          time.Time `json:"date_time" binding:"required"`
		PreviousMeetingID *uint64   `json:"previous_meeting_id"`
		Summary           *string   `json:"summary"`
		RecordingLink     *string   `json:"recording_link" binding:"omitempty,url"`
	}

	var req CreateMeetingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.InvalidBody(c, err)
		return
	}

	meeting, err := h.meetingService.CreateMeeting(c, services.CreateMeetingInput{
		TeamID:            req.TeamID,
		DateTime:          req.DateTime,
		PreviousMeetingID: req.PreviousMeetingID,
		Summary:           req.Summary,
		RecordingLink:     req.RecordingLink,
	})
	if err != nil {
		respondMeetingError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToMeetingDTO(*meeting))
}

// GetMeeting returns a single meeting
func (h *MeetingHandler) GetMeeting(c *gin.Context) {
	meetingID, ok := middleware.GetIDParam(c)
	if !ok {
		apierrors.BadRequest(c, "Invalid meeting ID")
		return
	}

	meeting, err := h.meetingService.GetMeeting(c, meetingID)
	if err != nil {
		respondMeetingError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToMeetingDTO(*meeting))
}

// GetPreviousMeeting returns the meeting linked as the predecessor
func (h *MeetingHandler) GetPreviousMeeting(c *gin.Context) {
	meetingID, ok := middleware.GetIDParam(c)
	if !ok {
		apierrors.BadRequest(c, "Invalid meeting ID")
		return
	}

	previous, err := h.meetingService.GetPreviousMeeting(c, meetingID)
	if err != nil {
		respondMeetingError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToMeetingDTO(*previous))
}

// UpdateMeeting patches summary, recording link or date-time
func (h *MeetingHandler) UpdateMeeting(c *gin.Context) {
	type UpdateMeetingRequest struct {
		DateTime      *time.Time `json:"date_time"`
		Summary       *string    `json:"summary"`
		RecordingLink *string    `json:"recording_link" binding:"omitempty,url"`
	}

	meetingID, ok := middleware.GetIDParam(c)
	if !ok {
		apierrors.BadRequest(c, "Invalid meeting ID")
		return
	}

	var req UpdateMeetingRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		apierrors.InvalidBody(c, err)
		return
	}

	meeting, err := h.meetingService.UpdateMeeting(c, meetingID, services.UpdateMeetingInput{
		DateTime:      req.DateTime,
		Summary:       req.Summary,
		RecordingLink: req.RecordingLink,
	})
	if err != nil {
		respondMeetingError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToMeetingDTO(*meeting))
}

// DeleteMeeting removes a meeting and closes the gap in its chain
func (h *MeetingHandler) DeleteMeeting(c *gin.Context) {
	meetingID, ok := middleware.GetIDParam(c)
	if !ok {
		apierrors.BadRequest(c, "Invalid meeting ID")
		return
	}

	if err := h.meetingService.DeleteMeeting(c, meetingID); err != nil {
		respondMeetingError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func respondMeetingError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTeamNotFound):
		apierrors.NotFound(c, "Team not found")
	case errors.Is(err, services.ErrMeetingNotFound),
		errors.Is(err, services.ErrNoPreviousMeeting):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrPreviousMeetingOtherTeam):
		apierrors.BadRequest(c, "previous_meeting_id must belong to the same team")
	default:
		respondInternalError(c, err)
	}
}
