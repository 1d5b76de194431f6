package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/reqroute/reqroute-api/internal/dto"
	apierrors "github.com/reqroute/reqroute-api/internal/errors"
	"github.com/reqroute/reqroute-api/internal/logger"
	"github.com/reqroute/reqroute-api/internal/middleware"
	"github.com/reqroute/reqroute-api/internal/scheduling"
	"github.com/reqroute/reqroute-api/internal/services"
)

// ScheduleHandler exposes meeting schedule creation, update and lookup.
type ScheduleHandler struct {
	scheduleService *services.ScheduleService
}

// NewScheduleHandler creates a new ScheduleHandler.
func NewScheduleHandler(scheduleService *services.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{
		scheduleService: scheduleService,
	}
}

// CreateSchedule creates the active schedule of a team and its meetings.
func (h *ScheduleHandler) CreateSchedule(c *gin.Context) {
	type CreateScheduleRequest struct {
		TeamID        *uint64               `json:"team_id" binding:"required"`
		StartDate     string                `json:"start_date" binding:"required"`
		DayOfWeek     *int                  `json:"day_of_week" binding:"required,min=0,max=6"`
		Time          *scheduling.TimeOfDay `json:"time" binding:"required"`
		IntervalWeeks int                   `json:"interval_weeks" binding:"required,oneof=1 2"`
	}

	var req CreateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.InvalidBody(c, err)
		return
	}

	startDate, err := parseDate(req.StartDate)
	if err != nil {
		apierrors.BadRequest(c, "start_date must be formatted as YYYY-MM-DD")
		return
	}

	schedule, err := h.scheduleService.CreateSchedule(c, services.CreateScheduleInput{
		TeamID:        *req.TeamID,
		StartDate:     startDate,
		DayOfWeek:     *req.DayOfWeek,
		TimeOfDay:     *req.Time,
		IntervalWeeks: req.IntervalWeeks,
	})
	if err != nil {
		respondScheduleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToScheduleDTO(*schedule))
}

// UpdateSchedule applies a partial update and reconciles future meetings.
func (h *ScheduleHandler) UpdateSchedule(c *gin.Context) {
	type UpdateScheduleRequest struct {
		StartDate     *string               `json:"start_date"`
		DayOfWeek     *int                  `json:"day_of_week" binding:"omitempty,min=0,max=6"`
		Time          *scheduling.TimeOfDay `json:"time"`
		IntervalWeeks *int                  `json:"interval_weeks" binding:"omitempty,oneof=1 2"`
		Active        *bool                 `json:"active"`
	}

	scheduleID, ok := middleware.GetIDParam(c)
	if !ok {
		apierrors.BadRequest(c, "Invalid schedule ID")
		return
	}

	var req UpdateScheduleRequest
	// An empty body is an empty patch.
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		apierrors.InvalidBody(c, err)
		return
	}

	startDate, err := parseOptionalDate(req.StartDate)
	if err != nil {
		apierrors.BadRequest(c, "start_date must be formatted as YYYY-MM-DD")
		return
	}

	schedule, err := h.scheduleService.UpdateSchedule(c, scheduleID, services.UpdateScheduleInput{
		StartDate:     startDate,
		DayOfWeek:     req.DayOfWeek,
		TimeOfDay:     req.Time,
		IntervalWeeks: req.IntervalWeeks,
		Active:        req.Active,
	})
	if err != nil {
		respondScheduleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToScheduleDTO(*schedule))
}

// GetSchedule returns a schedule by ID, active or not.
func (h *ScheduleHandler) GetSchedule(c *gin.Context) {
	scheduleID, ok := middleware.GetIDParam(c)
	if !ok {
		apierrors.BadRequest(c, "Invalid schedule ID")
		return
	}

	schedule, err := h.scheduleService.GetSchedule(c, scheduleID)
	if err != nil {
		respondScheduleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToScheduleDTO(*schedule))
}

// GetActiveSchedule returns the active schedule of the team in the path.
func (h *ScheduleHandler) GetActiveSchedule(c *gin.Context) {
	teamID, ok := middleware.GetIDParam(c)
	if !ok {
		apierrors.BadRequest(c, "Invalid team ID")
		return
	}

	schedule, err := h.scheduleService.GetActiveSchedule(c, teamID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrTeamNotFound):
			apierrors.NotFound(c, "Team not found")
		case errors.Is(err, services.ErrScheduleNotFound):
			apierrors.NotFound(c, "Team has no active meeting schedule")
		default:
			respondInternalError(c, err)
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToScheduleDTO(*schedule))
}

func respondScheduleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTeamNotFound):
		apierrors.BadRequestWithCode(c, apierrors.ErrCodeTeamNotFound, err.Error())
	case errors.Is(err, services.ErrMissingCaseOrTerm):
		apierrors.BadRequestWithCode(c, apierrors.ErrCodeMissingCaseOrTerm, err.Error())
	case errors.Is(err, services.ErrMissingTermEndDate):
		apierrors.BadRequestWithCode(c, apierrors.ErrCodeMissingTermEndDate, err.Error())
	case errors.Is(err, services.ErrScheduleNotFound):
		apierrors.NotFound(c, err.Error())
	default:
		respondInternalError(c, err)
	}
}

// respondInternalError logs err and hides it from the client.
func respondInternalError(c *gin.Context, err error) {
	logger.WithContext(c).WithError(err).Error("Request failed")
	_ = c.Error(err)
	apierrors.InternalError(c, "")
}
