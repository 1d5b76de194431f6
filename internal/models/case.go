package models

import "time"

type CaseStatus string

const (
	CaseStatusDraft            CaseStatus = "draft"
	CaseStatusActive           CaseStatus = "active"
	CaseStatusVotingInProgress CaseStatus = "voting in progress"
	CaseStatusDone             CaseStatus = "done"
)

// IsValid reports whether s is a known case status.
func (s CaseStatus) IsValid() bool {
	switch s {
	case CaseStatusDraft, CaseStatusActive, CaseStatusVotingInProgress, CaseStatusDone:
		return true
	}
	return false
}

// Case is a project topic offered within a term.
type Case struct {
	ID          uint64     `gorm:"primarykey" json:"id"`
	TermID      uint64     `gorm:"not null;index" json:"term_id"`
	UserID      uint64     `gorm:"not null;index" json:"user_id"`
	Title       string     `gorm:"type:varchar(255);not null" json:"title"`
	Description *string    `gorm:"type:text" json:"description"`
	Status      CaseStatus `gorm:"type:varchar(30);not null;default:'draft'" json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	// Relations
	Term  *Term  `gorm:"foreignKey:TermID" json:"term,omitempty"`
	Teams []Team `gorm:"foreignKey:CaseID" json:"-"`
}
