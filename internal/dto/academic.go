package dto

import (
	"time"

	"github.com/reqroute/reqroute-api/internal/constants"
	"github.com/reqroute/reqroute-api/internal/models"
)

// TermDTO represents a term in API responses
type TermDTO struct {
	ID        uint64        `json:"id"`
	Year      int           `json:"year"`
	Season    models.Season `json:"season"`
	StartDate *string       `json:"start_date"`
	EndDate   *string       `json:"end_date"`
}

// CaseDTO represents a case in API responses
type CaseDTO struct {
	ID          uint64            `json:"id"`
	TermID      uint64            `json:"term_id"`
	UserID      uint64            `json:"user_id"`
	Title       string            `json:"title"`
	Description *string           `json:"description"`
	Status      models.CaseStatus `json:"status"`
	Term        *TermDTO          `json:"term,omitempty"`
}

// TeamDTO represents a team in API responses
type TeamDTO struct {
	ID            uint64   `json:"id"`
	Title         string   `json:"title"`
	CaseID        *uint64  `json:"case_id"`
	WorkspaceLink *string  `json:"workspace_link"`
	FinalMark     int      `json:"final_mark"`
	Case          *CaseDTO `json:"case,omitempty"`
}

// ToTermDTO converts a Term model to TermDTO
func ToTermDTO(term models.Term) TermDTO {
	return TermDTO{
		ID:        term.ID,
		Year:      term.Year,
		Season:    term.Season,
		StartDate: formatDate(term.StartDate),
		EndDate:   formatDate(term.EndDate),
	}
}

// ToCaseDTO converts a Case model to CaseDTO, including the term if preloaded
func ToCaseDTO(c models.Case) CaseDTO {
	dto := CaseDTO{
		ID:          c.ID,
		TermID:      c.TermID,
		UserID:      c.UserID,
		Title:       c.Title,
		Description: c.Description,
		Status:      c.Status,
	}
	if c.Term != nil {
		term := ToTermDTO(*c.Term)
		dto.Term = &term
	}
	return dto
}

// ToTeamDTO converts a Team model to TeamDTO, including the case if preloaded
func ToTeamDTO(team models.Team) TeamDTO {
	dto := TeamDTO{
		ID:            team.ID,
		Title:         team.Title,
		CaseID:        team.CaseID,
		WorkspaceLink: team.WorkspaceLink,
		FinalMark:     team.FinalMark,
	}
	if team.Case != nil {
		c := ToCaseDTO(*team.Case)
		dto.Case = &c
	}
	return dto
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.UTC().Format(constants.DateLayout)
	return &s
}
