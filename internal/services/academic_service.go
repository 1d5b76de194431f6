package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/reqroute/reqroute-api/internal/models"
	"github.com/reqroute/reqroute-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrTermNotFound      = errors.New("term not found")
	ErrCaseNotFound      = errors.New("case not found")
	ErrInvalidSeason     = errors.New("season must be autumn or spring")
	ErrInvalidTermDates  = errors.New("term end date is before its start date")
	ErrInvalidCaseStatus = errors.New("invalid case status")
	ErrTitleRequired     = errors.New("title is required")
)

// AcademicService manages the terms, cases and teams that schedules hang off.
type AcademicService struct {
	store repository.Store
}

// NewAcademicService creates a new AcademicService.
func NewAcademicService(store repository.Store) *AcademicService {
	return &AcademicService{store: store}
}

type CreateTermInput struct {
	Year      int
	Season    models.Season
	StartDate *time.Time
	EndDate   *time.Time
}

type CreateCaseInput struct {
	TermID      uint64
	UserID      uint64
	Title       string
	Description *string
	Status      models.CaseStatus
}

type CreateTeamInput struct {
	Title         string
	CaseID        *uint64
	WorkspaceLink *string
}

// CreateTerm creates a term. The end date may be left empty, but schedules
// cannot be created for the term until it is set.
func (s *AcademicService) CreateTerm(ctx context.Context, input CreateTermInput) (*models.Term, error) {
	if !input.Season.IsValid() {
		return nil, ErrInvalidSeason
	}
	if input.StartDate != nil && input.EndDate != nil && input.EndDate.Before(*input.StartDate) {
		return nil, ErrInvalidTermDates
	}

	term := &models.Term{
		Year:      input.Year,
		Season:    input.Season,
		StartDate: utcPtr(input.StartDate),
		EndDate:   utcPtr(input.EndDate),
	}
	if err := s.store.Terms().Create(ctx, term); err != nil {
		return nil, fmt.Errorf("failed to create term: %w", err)
	}
	return term, nil
}

// GetTerm retrieves a term by ID.
func (s *AcademicService) GetTerm(ctx context.Context, id uint64) (*models.Term, error) {
	term, err := s.store.Terms().FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTermNotFound
		}
		return nil, fmt.Errorf("failed to find term: %w", err)
	}
	return term, nil
}

// CreateCase creates a case owned by the given user.
func (s *AcademicService) CreateCase(ctx context.Context, input CreateCaseInput) (*models.Case, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}

	status := input.Status
	if status == "" {
		status = models.CaseStatusDraft
	}
	if !status.IsValid() {
		return nil, ErrInvalidCaseStatus
	}

	term, err := s.GetTerm(ctx, input.TermID)
	if err != nil {
		return nil, err
	}

	c := &models.Case{
		TermID:      term.ID,
		UserID:      input.UserID,
		Title:       title,
		Description: input.Description,
		Status:      status,
	}
	if err := s.store.Cases().Create(ctx, c); err != nil {
		return nil, fmt.Errorf("failed to create case: %w", err)
	}
	c.Term = term

	return c, nil
}

// GetCase retrieves a case with its term.
func (s *AcademicService) GetCase(ctx context.Context, id uint64) (*models.Case, error) {
	c, err := s.store.Cases().FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCaseNotFound
		}
		return nil, fmt.Errorf("failed to find case: %w", err)
	}
	return c, nil
}

// CreateTeam creates a team, optionally attached to a case.
func (s *AcademicService) CreateTeam(ctx context.Context, input CreateTeamInput) (*models.Team, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}

	if input.CaseID != nil {
		if _, err := s.GetCase(ctx, *input.CaseID); err != nil {
			return nil, err
		}
	}

	team := &models.Team{
		Title:         title,
		CaseID:        input.CaseID,
		WorkspaceLink: input.WorkspaceLink,
	}
	if err := s.store.Teams().Create(ctx, team); err != nil {
		return nil, fmt.Errorf("failed to create team: %w", err)
	}
	return team, nil
}

// GetTeam retrieves a team with its case and term.
func (s *AcademicService) GetTeam(ctx context.Context, id uint64) (*models.Team, error) {
	team, err := s.store.Teams().FindWithCaseAndTerm(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to find team: %w", err)
	}
	return team, nil
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := t.UTC()
	return &v
}
