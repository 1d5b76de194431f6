package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/reqroute/reqroute-api/internal/dto"
	apierrors "github.com/reqroute/reqroute-api/internal/errors"
	"github.com/reqroute/reqroute-api/internal/middleware"
	"github.com/reqroute/reqroute-api/internal/models"
	"github.com/reqroute/reqroute-api/internal/repository"
	"github.com/reqroute/reqroute-api/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupMeetingRouter(t *testing.T) (*gin.Engine, *gorm.DB, *models.Team) {
	t.Helper()

	db := openTestDB(t)
	team := &models.Team{Title: "Team"}
	require.NoError(t, db.Create(team).Error)

	store := repository.NewStore(db)
	handler := NewMeetingHandler(services.NewMeetingService(store))

	r := gin.New()
	r.POST("/meetings", handler.CreateMeeting)
	meetings := r.Group("/meetings/:id", middleware.RequireIDParam())
	meetings.GET("", handler.GetMeeting)
	meetings.PATCH("", handler.UpdateMeeting)
	meetings.DELETE("", handler.DeleteMeeting)
	meetings.GET("/previous", handler.GetPreviousMeeting)
	r.GET("/teams/:id/meetings", middleware.RequireIDParam(), middleware.RequireTeam(store.Teams()), handler.ListTeamMeetings)

	return r, db, team
}

func createMeetingVia(t *testing.T, r *gin.Engine, body string) dto.MeetingDTO {
	t.Helper()

	w := performJSON(r, http.MethodPost, "/meetings", body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var meeting dto.MeetingDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &meeting))
	return meeting
}

func TestMeetingHandler_ChainLifecycle(t *testing.T) {
	r, db, team := setupMeetingRouter(t)

	first := createMeetingVia(t, r, fmt.Sprintf(`{"team_id":%d,"date_time":"2024-09-02T12:00:00Z"}`, team.ID))
	second := createMeetingVia(t, r, fmt.Sprintf(`{"team_id":%d,"date_time":"2024-09-09T12:00:00Z","previous_meeting_id":%d}`, team.ID, first.ID))
	third := createMeetingVia(t, r, fmt.Sprintf(`{"team_id":%d,"date_time":"2024-09-16T12:00:00Z","previous_meeting_id":%d}`, team.ID, second.ID))
	assert.Nil(t, first.ScheduleID)

	w := performJSON(r, http.MethodGet, fmt.Sprintf("/meetings/%d/previous", third.ID), "")
	require.Equal(t, http.StatusOK, w.Code)
	var previous dto.MeetingDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &previous))
	assert.Equal(t, second.ID, previous.ID)

	w = performJSON(r, http.MethodGet, fmt.Sprintf("/meetings/%d/previous", first.ID), "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = performJSON(r, http.MethodDelete, fmt.Sprintf("/meetings/%d", second.ID), "")
	require.Equal(t, http.StatusNoContent, w.Code)

	var relinked models.Meeting
	require.NoError(t, db.First(&relinked, third.ID).Error)
	require.NotNil(t, relinked.PreviousMeetingID)
	assert.Equal(t, first.ID, *relinked.PreviousMeetingID)

	w = performJSON(r, http.MethodGet, fmt.Sprintf("/meetings/%d", second.ID), "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMeetingHandler_Update(t *testing.T) {
	r, _, team := setupMeetingRouter(t)
	meeting := createMeetingVia(t, r, fmt.Sprintf(`{"team_id":%d,"date_time":"2024-09-02T12:00:00Z"}`, team.ID))
	path := fmt.Sprintf("/meetings/%d", meeting.ID)

	w := performJSON(r, http.MethodPatch, path, `{"summary":"Agreed on the API","recording_link":"https://example.com/rec/1"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var updated dto.MeetingDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	require.NotNil(t, updated.Summary)
	assert.Equal(t, "Agreed on the API", *updated.Summary)
	require.NotNil(t, updated.RecordingLink)

	w = performJSON(r, http.MethodPatch, path, "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = performJSON(r, http.MethodPatch, path, `{"recording_link":"not a link"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = performJSON(r, http.MethodPatch, "/meetings/999", `{"summary":"x"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMeetingHandler_CreateErrors(t *testing.T) {
	r, _, team := setupMeetingRouter(t)

	tests := []struct {
		name string
		body string
		want int
	}{
		{"unknown team", `{"team_id":999,"date_time":"2024-09-02T12:00:00Z"}`, http.StatusNotFound},
		{"unknown previous", fmt.Sprintf(`{"team_id":%d,"date_time":"2024-09-02T12:00:00Z","previous_meeting_id":999}`, team.ID), http.StatusNotFound},
		{"missing date", fmt.Sprintf(`{"team_id":%d}`, team.ID), http.StatusBadRequest},
		{"malformed date", fmt.Sprintf(`{"team_id":%d,"date_time":"tomorrow"}`, team.ID), http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := performJSON(r, http.MethodPost, "/meetings", tt.body)
			assert.Equal(t, tt.want, w.Code, w.Body.String())
		})
	}
}

func TestMeetingHandler_CreateRejectsPreviousFromOtherTeam(t *testing.T) {
	r, db, team := setupMeetingRouter(t)
	other := &models.Team{Title: "Other"}
	require.NoError(t, db.Create(other).Error)
	foreign := createMeetingVia(t, r, fmt.Sprintf(`{"team_id":%d,"date_time":"2024-09-02T12:00:00Z"}`, other.ID))

	w := performJSON(r, http.MethodPost, "/meetings",
		fmt.Sprintf(`{"team_id":%d,"date_time":"2024-09-09T12:00:00Z","previous_meeting_id":%d}`, team.ID, foreign.ID))
	require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())

	var body apierrors.APIError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, apierrors.ErrCodeInvalidInput, body.Code)

	var count int64
	require.NoError(t, db.Model(&models.Meeting{}).Where("team_id = ?", team.ID).Count(&count).Error)
	assert.Zero(t, count)
}

func TestMeetingHandler_ListTeamMeetings(t *testing.T) {
	r, _, team := setupMeetingRouter(t)
	for _, day := range []string{"16", "02", "09"} {
		createMeetingVia(t, r, fmt.Sprintf(`{"team_id":%d,"date_time":"2024-09-%sT12:00:00Z"}`, team.ID, day))
	}

	w := performJSON(r, http.MethodGet, fmt.Sprintf("/teams/%d/meetings?page=1&limit=2", team.ID), "")
	require.Equal(t, http.StatusOK, w.Code)

	var response dto.MeetingListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Len(t, response.Meetings, 2)
	assert.Equal(t, int64(3), response.Pagination.Total)
	assert.Equal(t, 2, response.Pagination.Limit)
	assert.Equal(t, 2, response.Meetings[0].DateTime.Day())
	assert.Equal(t, 9, response.Meetings[1].DateTime.Day())

	w = performJSON(r, http.MethodGet, "/teams/999/meetings", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
