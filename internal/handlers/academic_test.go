package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/reqroute/reqroute-api/internal/constants"
	"github.com/reqroute/reqroute-api/internal/dto"
	"github.com/reqroute/reqroute-api/internal/middleware"
	"github.com/reqroute/reqroute-api/internal/models"
	"github.com/reqroute/reqroute-api/internal/repository"
	"github.com/reqroute/reqroute-api/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupAcademicRouter(t *testing.T) (*gin.Engine, *models.User) {
	t.Helper()

	db := openTestDB(t)
	user := &models.User{Username: "owner", PasswordHash: "x"}
	require.NoError(t, db.Create(user).Error)

	handler := NewAcademicHandler(services.NewAcademicService(repository.NewStore(db)))

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(constants.ContextKeyUserID, user.ID)
		c.Next()
	})
	r.POST("/terms", handler.CreateTerm)
	r.GET("/terms/:id", middleware.RequireIDParam(), handler.GetTerm)
	r.POST("/cases", handler.CreateCase)
	r.GET("/cases/:id", middleware.RequireIDParam(), handler.GetCase)
	r.POST("/teams", handler.CreateTeam)
	r.GET("/teams/:id", middleware.RequireIDParam(), handler.GetTeam)

	return r, user
}

func TestAcademicHandler_TermCaseTeam(t *testing.T) {
	r, user := setupAcademicRouter(t)

	w := performJSON(r, http.MethodPost, "/terms", `{"year":2024,"season":"autumn","start_date":"2024-09-01","end_date":"2024-12-20"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var term dto.TermDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &term))
	require.NotNil(t, term.EndDate)
	assert.Equal(t, "2024-12-20", *term.EndDate)

	w = performJSON(r, http.MethodPost, "/cases", fmt.Sprintf(`{"term_id":%d,"title":"  Route planner  "}`, term.ID))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created dto.CaseDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, "Route planner", created.Title)
	assert.Equal(t, models.CaseStatusDraft, created.Status)
	assert.Equal(t, user.ID, created.UserID)

	w = performJSON(r, http.MethodPost, "/teams", fmt.Sprintf(`{"title":"Team 1","case_id":%d}`, created.ID))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var team dto.TeamDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &team))

	w = performJSON(r, http.MethodGet, fmt.Sprintf("/teams/%d", team.ID), "")
	require.Equal(t, http.StatusOK, w.Code)
	var loaded dto.TeamDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &loaded))
	require.NotNil(t, loaded.Case)
	require.NotNil(t, loaded.Case.Term)
	assert.Equal(t, term.ID, loaded.Case.Term.ID)

	w = performJSON(r, http.MethodGet, fmt.Sprintf("/terms/%d", term.ID), "")
	assert.Equal(t, http.StatusOK, w.Code)
	w = performJSON(r, http.MethodGet, fmt.Sprintf("/cases/%d", created.ID), "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAcademicHandler_Errors(t *testing.T) {
	r, _ := setupAcademicRouter(t)

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		want   int
	}{
		{"unknown season", http.MethodPost, "/terms", `{"year":2024,"season":"summer"}`, http.StatusBadRequest},
		{"end before start", http.MethodPost, "/terms", `{"year":2024,"season":"spring","start_date":"2024-05-01","end_date":"2024-02-01"}`, http.StatusBadRequest},
		{"malformed date", http.MethodPost, "/terms", `{"year":2024,"season":"spring","end_date":"May 1"}`, http.StatusBadRequest},
		{"case for unknown term", http.MethodPost, "/cases", `{"term_id":42,"title":"Case"}`, http.StatusNotFound},
		{"invalid case status", http.MethodPost, "/cases", `{"term_id":42,"title":"Case","status":"archived"}`, http.StatusBadRequest},
		{"blank team title", http.MethodPost, "/teams", `{"title":"   "}`, http.StatusBadRequest},
		{"team for unknown case", http.MethodPost, "/teams", `{"title":"Team","case_id":42}`, http.StatusNotFound},
		{"unknown term", http.MethodGet, "/terms/42", "", http.StatusNotFound},
		{"unknown case", http.MethodGet, "/cases/42", "", http.StatusNotFound},
		{"unknown team", http.MethodGet, "/teams/42", "", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := performJSON(r, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.want, w.Code, w.Body.String())
		})
	}
}
