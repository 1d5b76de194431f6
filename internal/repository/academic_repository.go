package repository

import (
	"context"

	"github.com/reqroute/reqroute-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormTermRepository is a GORM implementation of TermRepository
type GormTermRepository struct {
	db *gorm.DB
}

// NewTermRepository creates a new TermRepository
func NewTermRepository(db *gorm.DB) TermRepository {
	return &GormTermRepository{db: db}
}

func (r *GormTermRepository) Create(ctx context.Context, term *models.Term) error {
	return r.db.WithContext(ctx).Create(term).Error
}

func (r *GormTermRepository) FindByID(ctx context.Context, id uint64) (*models.Term, error) {
	var term models.Term
	if err := r.db.WithContext(ctx).First(&term, id).Error; err != nil {
		return nil, err
	}
	return &term, nil
}

// GormCaseRepository is a GORM implementation of CaseRepository
type GormCaseRepository struct {
	db *gorm.DB
}

// NewCaseRepository creates a new CaseRepository
func NewCaseRepository(db *gorm.DB) CaseRepository {
	return &GormCaseRepository{db: db}
}

func (r *GormCaseRepository) Create(ctx context.Context, c *models.Case) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *GormCaseRepository) FindByID(ctx context.Context, id uint64) (*models.Case, error) {
	var c models.Case
	if err := r.db.WithContext(ctx).Preload("Term").First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// GormTeamRepository is a GORM implementation of TeamRepository
type GormTeamRepository struct {
	db *gorm.DB
}

// NewTeamRepository creates a new TeamRepository
func NewTeamRepository(db *gorm.DB) TeamRepository {
	return &GormTeamRepository{db: db}
}

func (r *GormTeamRepository) Create(ctx context.Context, team *models.Team) error {
	return r.db.WithContext(ctx).Create(team).Error
}

func (r *GormTeamRepository) FindByID(ctx context.Context, id uint64) (*models.Team, error) {
	var team models.Team
	if err := r.db.WithContext(ctx).First(&team, id).Error; err != nil {
		return nil, err
	}
	return &team, nil
}

// FindWithCaseAndTerm loads a team with Case and Case.Term preloaded
func (r *GormTeamRepository) FindWithCaseAndTerm(ctx context.Context, id uint64) (*models.Team, error) {
	var team models.Team
	if err := r.db.WithContext(ctx).Preload("Case.Term").First(&team, id).Error; err != nil {
		return nil, err
	}
	return &team, nil
}

// LockByID issues SELECT ... FOR UPDATE on the team row. SQLite drops the
// locking clause and relies on its single-writer lock instead.
func (r *GormTeamRepository) LockByID(ctx context.Context, id uint64) error {
	var team models.Team
	return r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Select("id").
		First(&team, id).Error
}
