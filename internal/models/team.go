package models

import "time"

type Team struct {
	ID            uint64    `gorm:"primarykey" json:"id"`
	Title         string    `gorm:"type:varchar(255);not null" json:"title"`
	CaseID        *uint64   `gorm:"index" json:"case_id"`
	WorkspaceLink *string   `gorm:"type:varchar(512)" json:"workspace_link"`
	FinalMark     int       `gorm:"not null;default:0" json:"final_mark"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	// Relations
	Case      *Case             `gorm:"foreignKey:CaseID" json:"case,omitempty"`
	Schedules []MeetingSchedule `gorm:"foreignKey:TeamID" json:"-"`
	Meetings  []Meeting         `gorm:"foreignKey:TeamID" json:"-"`
}

// TermEndDate walks team -> case -> term and returns the term's end date.
// ok is false when the case or term is missing; the returned pointer is nil
// when the term exists but has no end date.
func (t *Team) TermEndDate() (end *time.Time, ok bool) {
	if t.Case == nil || t.Case.Term == nil {
		return nil, false
	}
	return t.Case.Term.EndDate, true
}
