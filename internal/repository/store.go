package repository

import (
	"context"

	"gorm.io/gorm"
)

// GormStore is a GORM implementation of Store
type GormStore struct {
	db *gorm.DB
}

// NewStore creates a new Store
func NewStore(db *gorm.DB) Store {
	return &GormStore{db: db}
}

// Transaction runs fn inside a GORM transaction
func (s *GormStore) Transaction(ctx context.Context, fn func(tx Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewStore(tx))
	})
}

func (s *GormStore) Users() UserRepository { return NewUserRepository(s.db) }

func (s *GormStore) Terms() TermRepository { return NewTermRepository(s.db) }

func (s *GormStore) Cases() CaseRepository { return NewCaseRepository(s.db) }

func (s *GormStore) Teams() TeamRepository { return NewTeamRepository(s.db) }

func (s *GormStore) Schedules() ScheduleRepository { return NewScheduleRepository(s.db) }

func (s *GormStore) Meetings() MeetingRepository { return NewMeetingRepository(s.db) }
