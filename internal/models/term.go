package models

import "time"

type Season string

const (
	SeasonAutumn Season = "autumn"
	SeasonSpring Season = "spring"
)

// IsValid reports whether s is a known season.
func (s Season) IsValid() bool {
	return s == SeasonAutumn || s == SeasonSpring
}

// Term is an academic period. A schedule can only be created against a term
// whose EndDate is set.
type Term struct {
	ID        uint64     `gorm:"primarykey" json:"id"`
	Year      int        `gorm:"not null" json:"year"`
	Season    Season     `gorm:"type:varchar(20);not null" json:"season"`
	StartDate *time.Time `gorm:"type:date" json:"start_date"`
	EndDate   *time.Time `gorm:"type:date" json:"end_date"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`

	// Relations
	Cases []Case `gorm:"foreignKey:TermID" json:"-"`
}
