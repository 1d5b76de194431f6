package repository

import (
	"context"
	"errors"
	"time"

	"github.com/reqroute/reqroute-api/internal/database"
	"github.com/reqroute/reqroute-api/internal/models"
	"github.com/reqroute/reqroute-api/internal/utils"
	"gorm.io/gorm"
)

// GormMeetingRepository is a GORM implementation of MeetingRepository
type GormMeetingRepository struct {
	db *gorm.DB
}

// NewMeetingRepository creates a new MeetingRepository
func NewMeetingRepository(db *gorm.DB) MeetingRepository {
	return &GormMeetingRepository{db: db}
}

// Create creates a new meeting
func (r *GormMeetingRepository) Create(ctx context.Context, meeting *models.Meeting) error {
	return r.db.WithContext(ctx).Create(meeting).Error
}

// CreateBatch inserts meetings in one statement. An empty slice is a no-op.
func (r *GormMeetingRepository) CreateBatch(ctx context.Context, meetings []models.Meeting) error {
	if len(meetings) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&meetings).Error
}

// FindByID finds a meeting by ID
func (r *GormMeetingRepository) FindByID(ctx context.Context, id uint64) (*models.Meeting, error) {
	var meeting models.Meeting
	if err := r.db.WithContext(ctx).First(&meeting, id).Error; err != nil {
		return nil, err
	}
	return &meeting, nil
}

// ListByTeam lists a team's meetings ordered by date-time with pagination
func (r *GormMeetingRepository) ListByTeam(ctx context.Context, teamID uint64, params utils.PaginationParams) ([]models.Meeting, int64, error) {
	query := r.db.WithContext(ctx).
		Model(&models.Meeting{}).
		Where("team_id = ?", teamID).
		Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var meetings []models.Meeting
	err := query.
		Scopes(database.Chronological(false), database.Paginate(params)).
		Find(&meetings).Error
	if err != nil {
		return nil, 0, err
	}

	return meetings, total, nil
}

// ListFutureBySchedule lists the schedule's not yet occurred meetings
func (r *GormMeetingRepository) ListFutureBySchedule(ctx context.Context, scheduleID uint64, now time.Time) ([]models.Meeting, error) {
	var meetings []models.Meeting
	err := r.db.WithContext(ctx).
		Where("schedule_id = ? AND date_time > ?", scheduleID, now).
		Scopes(database.Chronological(false)).
		Find(&meetings).Error
	if err != nil {
		return nil, err
	}
	return meetings, nil
}

// FindLastOccurred returns the schedule's most recent meeting at or before now
func (r *GormMeetingRepository) FindLastOccurred(ctx context.Context, scheduleID uint64, now time.Time) (*models.Meeting, error) {
	var meeting models.Meeting
	err := r.db.WithContext(ctx).
		Where("schedule_id = ? AND date_time <= ?", scheduleID, now).
		Scopes(database.Chronological(true)).
		Take(&meeting).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &meeting, nil
}

// SetPrevious sets previous_meeting_id of one meeting
func (r *GormMeetingRepository) SetPrevious(ctx context.Context, id uint64, previousID *uint64) error {
	return r.db.WithContext(ctx).
		Model(&models.Meeting{}).
		Where("id = ?", id).
		Update("previous_meeting_id", previousID).Error
}

// RepointPrevious moves every link to fromID over to toID
func (r *GormMeetingRepository) RepointPrevious(ctx context.Context, fromID uint64, toID *uint64) error {
	return r.db.WithContext(ctx).
		Model(&models.Meeting{}).
		Where("previous_meeting_id = ?", fromID).
		Update("previous_meeting_id", toID).Error
}

// UpdateFields patches the given columns of one meeting
func (r *GormMeetingRepository) UpdateFields(ctx context.Context, id uint64, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).
		Model(&models.Meeting{}).
		Where("id = ?", id).
		Updates(fields).Error
}

// Delete hard deletes a meeting
func (r *GormMeetingRepository) Delete(ctx context.Context, id uint64) error {
	return r.db.WithContext(ctx).Delete(&models.Meeting{}, id).Error
}
