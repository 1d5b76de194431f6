package database

import (
	"gorm.io/gorm"

	"github.com/reqroute/reqroute-api/internal/utils"
)

// Paginate applies pagination to a GORM query
func Paginate(params utils.PaginationParams) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset(params.Offset).Limit(params.Limit)
	}
}

// Chronological orders meetings by date_time, breaking ties by id.
func Chronological(desc bool) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if desc {
			return db.Order("date_time DESC, id DESC")
		}
		return db.Order("date_time ASC, id ASC")
	}
}
