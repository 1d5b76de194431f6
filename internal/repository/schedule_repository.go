package repository

import (
	"context"

	"github.com/reqroute/reqroute-api/internal/models"
	"gorm.io/gorm"
)

// GormScheduleRepository is a GORM implementation of ScheduleRepository
type GormScheduleRepository struct {
	db *gorm.DB
}

// NewScheduleRepository creates a new ScheduleRepository
func NewScheduleRepository(db *gorm.DB) ScheduleRepository {
	return &GormScheduleRepository{db: db}
}

// Create creates a new schedule
func (r *GormScheduleRepository) Create(ctx context.Context, schedule *models.MeetingSchedule) error {
	return r.db.WithContext(ctx).Create(schedule).Error
}

// FindByID finds a schedule by ID
func (r *GormScheduleRepository) FindByID(ctx context.Context, id uint64) (*models.MeetingSchedule, error) {
	var schedule models.MeetingSchedule
	if err := r.db.WithContext(ctx).First(&schedule, id).Error; err != nil {
		return nil, err
	}
	return &schedule, nil
}

// ListActiveByTeam lists every active schedule of a team
func (r *GormScheduleRepository) ListActiveByTeam(ctx context.Context, teamID uint64) ([]models.MeetingSchedule, error) {
	var schedules []models.MeetingSchedule
	err := r.db.WithContext(ctx).
		Where("team_id = ? AND active = ?", teamID, true).
		Order("id ASC").
		Find(&schedules).Error
	if err != nil {
		return nil, err
	}
	return schedules, nil
}

// FindActiveByTeam returns the team's active schedule, highest ID first
func (r *GormScheduleRepository) FindActiveByTeam(ctx context.Context, teamID uint64) (*models.MeetingSchedule, error) {
	var schedule models.MeetingSchedule
	err := r.db.WithContext(ctx).
		Where("team_id = ? AND active = ?", teamID, true).
		Order("id DESC").
		First(&schedule).Error
	if err != nil {
		return nil, err
	}
	return &schedule, nil
}

// UpdateFields patches the given columns of one schedule
func (r *GormScheduleRepository) UpdateFields(ctx context.Context, id uint64, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).
		Model(&models.MeetingSchedule{}).
		Where("id = ?", id).
		Updates(fields).Error
}
