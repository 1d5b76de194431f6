package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/reqroute/reqroute-api/internal/logger"
	"github.com/reqroute/reqroute-api/internal/models"
	"github.com/reqroute/reqroute-api/internal/repository"
	"github.com/reqroute/reqroute-api/internal/utils"
	"gorm.io/gorm"
)

var (
	ErrMeetingNotFound          = errors.New("meeting not found")
	ErrNoPreviousMeeting        = errors.New("meeting has no previous meeting")
	ErrPreviousMeetingOtherTeam = errors.New("previous meeting belongs to another team")
)

// MeetingService handles individual meetings outside of schedule generation.
type MeetingService struct {
	store repository.Store
}

// NewMeetingService creates a new MeetingService.
func NewMeetingService(store repository.Store) *MeetingService {
	return &MeetingService{store: store}
}

// CreateMeetingInput represents an ad-hoc meeting.
type CreateMeetingInput struct {
	TeamID            uint64
	DateTime          time.Time
	PreviousMeetingID *uint64
	Summary           *string
	RecordingLink     *string
}

// UpdateMeetingInput holds the editable fields of a meeting.
type UpdateMeetingInput struct {
	DateTime      *time.Time
	Summary       *string
	RecordingLink *string
}

// IsEmpty reports whether no field is set.
func (in UpdateMeetingInput) IsEmpty() bool {
	return in.DateTime == nil && in.Summary == nil && in.RecordingLink == nil
}

// CreateMeeting creates a meeting that does not belong to any schedule.
func (s *MeetingService) CreateMeeting(ctx context.Context, input CreateMeetingInput) (*models.Meeting, error) {
	if _, err := s.store.Teams().FindByID(ctx, input.TeamID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to find team: %w", err)
	}

	if input.PreviousMeetingID != nil {
		previous, err := s.findMeeting(ctx, *input.PreviousMeetingID)
		if err != nil {
			return nil, err
		}
		if previous.TeamID != input.TeamID {
			return nil, ErrPreviousMeetingOtherTeam
		}
	}

	meeting := &models.Meeting{
		TeamID:            input.TeamID,
		PreviousMeetingID: input.PreviousMeetingID,
		DateTime:          input.DateTime.UTC(),
		Summary:           input.Summary,
		RecordingLink:     input.RecordingLink,
	}
	if err := s.store.Meetings().Create(ctx, meeting); err != nil {
		return nil, fmt.Errorf("failed to create meeting: %w", err)
	}

	return meeting, nil
}

// GetMeeting retrieves a meeting by ID.
func (s *MeetingService) GetMeeting(ctx context.Context, id uint64) (*models.Meeting, error) {
	return s.findMeeting(ctx, id)
}

// GetPreviousMeeting returns the meeting that precedes the given one.
func (s *MeetingService) GetPreviousMeeting(ctx context.Context, id uint64) (*models.Meeting, error) {
	meeting, err := s.findMeeting(ctx, id)
	if err != nil {
		return nil, err
	}
	if meeting.PreviousMeetingID == nil {
		return nil, ErrNoPreviousMeeting
	}

	previous, err := s.findMeeting(ctx, *meeting.PreviousMeetingID)
	if errors.Is(err, ErrMeetingNotFound) {
		return nil, ErrNoPreviousMeeting
	}
	return previous, err
}

// ListTeamMeetings lists a team's meetings in chronological order.
func (s *MeetingService) ListTeamMeetings(ctx context.Context, teamID uint64, params utils.PaginationParams) ([]models.Meeting, int64, error) {
	if _, err := s.store.Teams().FindByID(ctx, teamID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, ErrTeamNotFound
		}
		return nil, 0, fmt.Errorf("failed to find team: %w", err)
	}

	meetings, total, err := s.store.Meetings().ListByTeam(ctx, teamID, params)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list meetings: %w", err)
	}
	return meetings, total, nil
}

// UpdateMeeting patches the summary, recording link or date-time.
func (s *MeetingService) UpdateMeeting(ctx context.Context, id uint64, input UpdateMeetingInput) (*models.Meeting, error) {
	if input.IsEmpty() {
		return s.findMeeting(ctx, id)
	}

	var meeting *models.Meeting
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		if _, err := findMeetingIn(ctx, tx, id); err != nil {
			return err
		}

		fields := make(map[string]interface{})
		if input.DateTime != nil {
			fields["date_time"] = input.DateTime.UTC()
		}
		if input.Summary != nil {
			fields["summary"] = *input.Summary
		}
		if input.RecordingLink != nil {
			fields["recording_link"] = *input.RecordingLink
		}
		if err := tx.Meetings().UpdateFields(ctx, id, fields); err != nil {
			return fmt.Errorf("failed to update meeting: %w", err)
		}

		var err error
		meeting, err = findMeetingIn(ctx, tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	return meeting, nil
}

// DeleteMeeting removes a meeting. Meetings that followed it are linked to
// its predecessor instead.
func (s *MeetingService) DeleteMeeting(ctx context.Context, id uint64) error {
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		meeting, err := findMeetingIn(ctx, tx, id)
		if err != nil {
			return err
		}

		if err := tx.Meetings().RepointPrevious(ctx, meeting.ID, meeting.PreviousMeetingID); err != nil {
			return fmt.Errorf("failed to relink meetings: %w", err)
		}
		if err := tx.Meetings().Delete(ctx, meeting.ID); err != nil {
			return fmt.Errorf("failed to delete meeting: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	logger.WithContext(ctx).WithField("meeting_id", id).Info("Meeting deleted")
	return nil
}

func (s *MeetingService) findMeeting(ctx context.Context, id uint64) (*models.Meeting, error) {
	return findMeetingIn(ctx, s.store, id)
}

func findMeetingIn(ctx context.Context, store repository.Store, id uint64) (*models.Meeting, error) {
	meeting, err := store.Meetings().FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMeetingNotFound
		}
		return nil, fmt.Errorf("failed to find meeting: %w", err)
	}
	return meeting, nil
}
