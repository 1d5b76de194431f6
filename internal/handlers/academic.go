package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/reqroute/reqroute-api/internal/dto"
	apierrors "github.com/reqroute/reqroute-api/internal/errors"
	"github.com/reqroute/reqroute-api/internal/middleware"
	"github.com/reqroute/reqroute-api/internal/models"
	"github.com/reqroute/reqroute-api/internal/services"
)

// AcademicHandler serves terms, cases and teams.
type AcademicHandler struct {
	academicService *services.AcademicService
}

// NewAcademicHandler creates a new AcademicHandler.
func NewAcademicHandler(academicService *services.AcademicService) *AcademicHandler {
	return &AcademicHandler{
		academicService: academicService,
	}
}

func (h *AcademicHandler) CreateTerm(c *gin.Context) {
	type CreateTermRequest struct {
		Year      int     `json:"year" binding:"required,min=2000,max=2100"`
		Season    string  `json:"season" binding:"required,oneof=autumn spring"`
		StartDate *string `json:"start_date"`
		EndDate   *string `json:"end_date"`
	}

	var req CreateTermRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.InvalidBody(c, err)
		return
	}

	startDate, err := parseOptionalDate(req.StartDate)
	if err != nil {
		apierrors.BadRequest(c, "start_date must be formatted as YYYY-MM-DD")
		return
	}
	endDate, err := parseOptionalDate(req.EndDate)
	if err != nil {
		apierrors.BadRequest(c, "end_date must be formatted as YYYY-MM-DD")
		return
	}

	term, err := h.academicService.CreateTerm(c, services.CreateTermInput{
		Year:      req.Year,
		Season:    models.Season(req.Season),
		StartDate: startDate,
		EndDate:   endDate,
	})
	if err != nil {
		respondAcademicError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTermDTO(*term))
}

func (h *AcademicHandler) GetTerm(c *gin.Context) {
	termID, ok := middleware.GetIDParam(c)
	if !ok {
		apierrors.BadRequest(c, "Invalid term ID")
		return
	}

	term, err := h.academicService.GetTerm(c, termID)
	if err != nil {
		respondAcademicError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTermDTO(*term))
}

// CreateCase creates a case owned by the current user
func (h *AcademicHandler) CreateCase(c *gin.Context) {
	type CreateCaseRequest struct {
		TermID      uint64  `json:"term_id" binding:"required"`
		Title       string  `json:"title" binding:"required,max=255"`
		Description *string `json:"description"`
		Status      string  `json:"status"`
	}

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	var req CreateCaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.InvalidBody(c, err)
		return
	}

	created, err := h.academicService.CreateCase(c, services.CreateCaseInput{
		TermID:      req.TermID,
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		Status:      models.CaseStatus(req.Status),
	})
	if err != nil {
		respondAcademicError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToCaseDTO(*created))
}

func (h *AcademicHandler) GetCase(c *gin.Context) {
	caseID, ok := middleware.GetIDParam(c)
	if !ok {
		apierrors.BadRequest(c, "Invalid case ID")
		return
	}

	found, err := h.academicService.GetCase(c, caseID)
	if err != nil {
		respondAcademicError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToCaseDTO(*found))
}

func (h *AcademicHandler) CreateTeam(c *gin.Context) {
	type CreateTeamRequest struct {
		Title         string  `json:"title" binding:"required,max=255"`
		CaseID        *uint64 `json:"case_id"`
		WorkspaceLink *string `json:"workspace_link" binding:"omitempty,url"`
	}

	var req CreateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.InvalidBody(c, err)
		return
	}

	team, err := h.academicService.CreateTeam(c, services.CreateTeamInput{
		Title:         req.Title,
		CaseID:        req.CaseID,
		WorkspaceLink: req.WorkspaceLink,
	})
	if err != nil {
		respondAcademicError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTeamDTO(*team))
}

// GetTeam returns a team with its case and term
func (h *AcademicHandler) GetTeam(c *gin.Context) {
	teamID, ok := middleware.GetIDParam(c)
	if !ok {
		apierrors.BadRequest(c, "Invalid team ID")
		return
	}

	team, err := h.academicService.GetTeam(c, teamID)
	if err != nil {
		respondAcademicError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTeamDTO(*team))
}

func respondAcademicError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidSeason),
		errors.Is(err, services.ErrInvalidTermDates),
		errors.Is(err, services.ErrInvalidCaseStatus),
		errors.Is(err, services.ErrTitleRequired):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrTermNotFound),
		errors.Is(err, services.ErrCaseNotFound),
		errors.Is(err, services.ErrTeamNotFound):
		apierrors.NotFound(c, err.Error())
	default:
		respondInternalError(c, err)
	}
}
