package repository

import (
	"context"
	"time"

	"github.com/reqroute/reqroute-api/internal/models"
	"github.com/reqroute/reqroute-api/internal/utils"
)

// Store groups the repositories behind one database handle. Repositories
// obtained from the Store passed to a Transaction callback run inside that
// transaction.
type Store interface {
	// Transaction runs fn in a single unit of work. It commits when fn
	// returns nil and rolls back otherwise.
	Transaction(ctx context.Context, fn func(tx Store) error) error

	Users() UserRepository
	Terms() TermRepository
	Cases() CaseRepository
	Teams() TeamRepository
	Schedules() ScheduleRepository
	Meetings() MeetingRepository
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(ctx context.Context, user *models.User) error

	// FindByID finds a user by ID
	FindByID(ctx context.Context, id uint64) (*models.User, error)

	// FindByUsername finds a user by username
	FindByUsername(ctx context.Context, username string) (*models.User, error)
}

// TermRepository defines the interface for term data access
type TermRepository interface {
	Create(ctx context.Context, term *models.Term) error
	FindByID(ctx context.Context, id uint64) (*models.Term, error)
}

// CaseRepository defines the interface for case data access
type CaseRepository interface {
	Create(ctx context.Context, c *models.Case) error

	// FindByID finds a case by ID with its term preloaded
	FindByID(ctx context.Context, id uint64) (*models.Case, error)
}

// TeamRepository defines the interface for team data access
type TeamRepository interface {
	Create(ctx context.Context, team *models.Team) error
	FindByID(ctx context.Context, id uint64) (*models.Team, error)

	// FindWithCaseAndTerm loads a team with its case and the case's term.
	// Missing case or term rows leave the relation nil.
	FindWithCaseAndTerm(ctx context.Context, id uint64) (*models.Team, error)

	// LockByID takes a row lock on the team until the surrounding
	// transaction ends. It returns gorm.ErrRecordNotFound for unknown teams.
	LockByID(ctx context.Context, id uint64) error
}

// ScheduleRepository defines the interface for meeting schedule data access
type ScheduleRepository interface {
	Create(ctx context.Context, schedule *models.MeetingSchedule) error
	FindByID(ctx context.Context, id uint64) (*models.MeetingSchedule, error)

	// ListActiveByTeam lists every active schedule of a team
	ListActiveByTeam(ctx context.Context, teamID uint64) ([]models.MeetingSchedule, error)

	// FindActiveByTeam returns the active schedule with the highest ID
	FindActiveByTeam(ctx context.Context, teamID uint64) (*models.MeetingSchedule, error)

	// UpdateFields patches the given columns of one schedule
	UpdateFields(ctx context.Context, id uint64, fields map[string]interface{}) error
}

// MeetingRepository defines the interface for meeting data access
type MeetingRepository interface {
	Create(ctx context.Context, meeting *models.Meeting) error

	// CreateBatch inserts meetings in order and fills in their IDs
	CreateBatch(ctx context.Context, meetings []models.Meeting) error

	FindByID(ctx context.Context, id uint64) (*models.Meeting, error)

	// ListByTeam lists a team's meetings ordered by date-time
	ListByTeam(ctx context.Context, teamID uint64, params utils.PaginationParams) ([]models.Meeting, int64, error)

	// ListFutureBySchedule lists the schedule's meetings with date_time > now,
	// earliest first
	ListFutureBySchedule(ctx context.Context, scheduleID uint64, now time.Time) ([]models.Meeting, error)

	// FindLastOccurred returns the schedule's latest meeting with
	// date_time <= now, or nil when there is none
	FindLastOccurred(ctx context.Context, scheduleID uint64, now time.Time) (*models.Meeting, error)

	// SetPrevious sets previous_meeting_id of one meeting
	SetPrevious(ctx context.Context, id uint64, previousID *uint64) error

	// RepointPrevious moves every link to fromID over to toID
	RepointPrevious(ctx context.Context, fromID uint64, toID *uint64) error

	// UpdateFields patches the given columns of one meeting
	UpdateFields(ctx context.Context, id uint64, fields map[string]interface{}) error

	// Delete hard deletes a meeting
	Delete(ctx context.Context, id uint64) error
}
