package services

import (
	"context"
	"testing"
	"time"

	"github.com/reqroute/reqroute-api/internal/database"
	"github.com/reqroute/reqroute-api/internal/models"
	"github.com/reqroute/reqroute-api/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupAcademicService(t *testing.T) (*AcademicService, *models.User) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})
	require.NoError(t, db.AutoMigrate(database.Models()...))

	user := &models.User{Username: "teacher", PasswordHash: "hashedpassword"}
	require.NoError(t, db.Create(user).Error)

	return NewAcademicService(repository.NewStore(db)), user
}

func TestAcademicService_TermCaseTeamChain(t *testing.T) {
	service, user := setupAcademicService(t)
	ctx := context.Background()

	start := time.Date(2024, 9, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 12, 20, 0, 0, 0, 0, time.UTC)
	term, err := service.CreateTerm(ctx, CreateTermInput{Year: 2024, Season: models.SeasonAutumn, StartDate: &start, EndDate: &end})
	require.NoError(t, err)

	c, err := service.CreateCase(ctx, CreateCaseInput{TermID: term.ID, UserID: user.ID, Title: "  Scheduler  "})
	require.NoError(t, err)
	assert.Equal(t, "Scheduler", c.Title)
	assert.Equal(t, models.CaseStatusDraft, c.Status)

	team, err := service.CreateTeam(ctx, CreateTeamInput{Title: "Team 1", CaseID: &c.ID})
	require.NoError(t, err)
	assert.Equal(t, 0, team.FinalMark)

	loaded, err := service.GetTeam(ctx, team.ID)
	require.NoError(t, err)
	got, ok := loaded.TermEndDate()
	require.True(t, ok)
	require.NotNil(t, got)
	assert.True(t, end.Equal(*got))
}

func TestAcademicService_Validation(t *testing.T) {
	service, user := setupAcademicService(t)
	ctx := context.Background()

	_, err := service.CreateTerm(ctx, CreateTermInput{Year: 2024, Season: "winter"})
	assert.ErrorIs(t, err, ErrInvalidSeason)

	start := time.Date(2024, 9, 1, 0, 0, 0, 0, time.UTC)
	before := start.AddDate(0, 0, -1)
	_, err = service.CreateTerm(ctx, CreateTermInput{Year: 2024, Season: models.SeasonSpring, StartDate: &start, EndDate: &before})
	assert.ErrorIs(t, err, ErrInvalidTermDates)

	_, err = service.CreateCase(ctx, CreateCaseInput{TermID: 999, UserID: user.ID, Title: "Case"})
	assert.ErrorIs(t, err, ErrTermNotFound)

	term, err := service.CreateTerm(ctx, CreateTermInput{Year: 2025, Season: models.SeasonSpring})
	require.NoError(t, err)
	assert.Nil(t, term.EndDate)

	_, err = service.CreateCase(ctx, CreateCaseInput{TermID: term.ID, UserID: user.ID, Title: "Case", Status: "archived"})
	assert.ErrorIs(t, err, ErrInvalidCaseStatus)

	_, err = service.CreateCase(ctx, CreateCaseInput{TermID: term.ID, UserID: user.ID, Title: " "})
	assert.ErrorIs(t, err, ErrTitleRequired)

	missing := uint64(999)
	_, err = service.CreateTeam(ctx, CreateTeamInput{Title: "Team", CaseID: &missing})
	assert.ErrorIs(t, err, ErrCaseNotFound)

	_, err = service.GetTeam(ctx, 999)
	assert.ErrorIs(t, err, ErrTeamNotFound)
}
