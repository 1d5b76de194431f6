package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/reqroute/reqroute-api/internal/logger"
	"github.com/reqroute/reqroute-api/internal/models"
	"github.com/reqroute/reqroute-api/internal/repository"
	"github.com/reqroute/reqroute-api/internal/scheduling"
	"gorm.io/gorm"
)

var (
	ErrTeamNotFound       = errors.New("team not found")
	ErrMissingCaseOrTerm  = errors.New("team must have a case with a term")
	ErrMissingTermEndDate = errors.New("term has no end date")
	ErrScheduleNotFound   = errors.New("meeting schedule not found")
)

// Option configures a service.
type Option func(*options)

type options struct {
	now func() time.Time
}

// WithClock overrides the source of the current instant.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

func buildOptions(opts []Option) options {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// ScheduleService creates and reconciles meeting schedules together with the
// meetings they generate.
type ScheduleService struct {
	store repository.Store
	now   func() time.Time
}

// NewScheduleService creates a new ScheduleService.
func NewScheduleService(store repository.Store, opts ...Option) *ScheduleService {
	o := buildOptions(opts)
	return &ScheduleService{
		store: store,
		now:   o.now,
	}
}

// CreateScheduleInput represents the cadence of a new schedule.
type CreateScheduleInput struct {
	TeamID        uint64
	StartDate     time.Time
	DayOfWeek     int
	TimeOfDay     scheduling.TimeOfDay
	IntervalWeeks int
}

// UpdateScheduleInput holds the fields of a partial schedule update. Nil
// fields are left unchanged.
type UpdateScheduleInput struct {
	StartDate     *time.Time
	DayOfWeek     *int
	TimeOfDay     *scheduling.TimeOfDay
	IntervalWeeks *int
	Active        *bool
}

// IsEmpty reports whether no field is set.
func (in UpdateScheduleInput) IsEmpty() bool {
	return in.StartDate == nil &&
		in.DayOfWeek == nil &&
		in.TimeOfDay == nil &&
		in.IntervalWeeks == nil &&
		in.Active == nil
}

func (in UpdateScheduleInput) fields() map[string]interface{} {
	fields := make(map[string]interface{})
	if in.StartDate != nil {
		fields["start_date"] = scheduling.DateOf(*in.StartDate)
	}
	if in.DayOfWeek != nil {
		fields["day_of_week"] = *in.DayOfWeek
	}
	if in.TimeOfDay != nil {
		fields["time_of_day"] = *in.TimeOfDay
	}
	if in.IntervalWeeks != nil {
		fields["interval_weeks"] = *in.IntervalWeeks
	}
	if in.Active != nil {
		fields["active"] = *in.Active
	}
	return fields
}

// CreateSchedule activates a new schedule for a team, deactivating the
// team's previous schedules, and generates its meetings up to the end of the
// team's term.
func (s *ScheduleService) CreateSchedule(ctx context.Context, input CreateScheduleInput) (*models.MeetingSchedule, error) {
	var (
		schedule *models.MeetingSchedule
		created  int
	)

	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		team, end, err := loadTeamTerm(ctx, tx, input.TeamID)
		if err != nil {
			return err
		}

		if err := deactivateOthers(ctx, tx, team.ID, 0); err != nil {
			return err
		}

		schedule = &models.MeetingSchedule{
			TeamID:        team.ID,
			StartDate:     scheduling.DateOf(input.StartDate),
			DayOfWeek:     input.DayOfWeek,
			TimeOfDay:     input.TimeOfDay,
			IntervalWeeks: input.IntervalWeeks,
			Active:        true,
		}
		if err := tx.Schedules().Create(ctx, schedule); err != nil {
			return fmt.Errorf("failed to create schedule: %w", err)
		}

		slots := scheduling.Generate(schedule.Cadence(), end, team.ID, schedule.ID)
		created, err = persistChain(ctx, tx.Meetings(), slots, nil)
		return err
	})
	if err != nil {
		return nil, err
	}

	logger.WithContext(ctx).WithFields(map[string]interface{}{
		"schedule_id": schedule.ID,
		"team_id":     schedule.TeamID,
		"generated":   created,
	}).Info("Meeting schedule created")

	return schedule, nil
}

// UpdateSchedule applies a partial update and reconciles the schedule's
// meetings: meetings that have not occurred yet are replaced by a freshly
// generated chain that continues from the last occurred one. An empty update
// returns the schedule without writing anything.
func (s *ScheduleService) UpdateSchedule(ctx context.Context, id uint64, input UpdateScheduleInput) (*models.MeetingSchedule, error) {
	if input.IsEmpty() {
		return s.GetSchedule(ctx, id)
	}

	now := s.now().UTC()
	var (
		schedule *models.MeetingSchedule
		purged   int
		created  int
	)

	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		current, err := findSchedule(ctx, tx, id)
		if err != nil {
			return err
		}

		if err := tx.Teams().LockByID(ctx, current.TeamID); err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to lock team: %w", err)
		}

		if input.Active != nil && *input.Active {
			if err := deactivateOthers(ctx, tx, current.TeamID, id); err != nil {
				return err
			}
		}

		future, err := tx.Meetings().ListFutureBySchedule(ctx, id, now)
		if err != nil {
			return fmt.Errorf("failed to list future meetings: %w", err)
		}
		// Latest first. Whatever follows a purged meeting, including ad-hoc
		// meetings outside the schedule, moves back to its predecessor.
		for i := len(future) - 1; i >= 0; i-- {
			if err := tx.Meetings().RepointPrevious(ctx, future[i].ID, future[i].PreviousMeetingID); err != nil {
				return fmt.Errorf("failed to relink successors of meeting %d: %w", future[i].ID, err)
			}
			if err := tx.Meetings().Delete(ctx, future[i].ID); err != nil {
				return fmt.Errorf("failed to delete meeting %d: %w", future[i].ID, err)
			}
		}
		purged = len(future)

		if err := tx.Schedules().UpdateFields(ctx, id, input.fields()); err != nil {
			return fmt.Errorf("failed to update schedule: %w", err)
		}
		if schedule, err = findSchedule(ctx, tx, id); err != nil {
			return err
		}

		if !schedule.Active {
			return nil
		}

		_, end, err := loadTeamTerm(ctx, tx, schedule.TeamID)
		if err != nil {
			if isTermChainError(err) {
				logger.WithContext(ctx).WithFields(map[string]interface{}{
					"schedule_id": schedule.ID,
					"team_id":     schedule.TeamID,
				}).WithError(err).Warn("Skipping meeting regeneration")
				return nil
			}
			return err
		}

		last, err := tx.Meetings().FindLastOccurred(ctx, id, now)
		if err != nil {
			return fmt.Errorf("failed to find last occurred meeting: %w", err)
		}
		var previousID *uint64
		if last != nil {
			previousID = &last.ID
		}

		slots := upcomingSlots(schedule, end, now)
		created, err = persistChain(ctx, tx.Meetings(), slots, previousID)
		return err
	})
	if err != nil {
		return nil, err
	}

	logger.WithContext(ctx).WithFields(map[string]interface{}{
		"schedule_id": schedule.ID,
		"team_id":     schedule.TeamID,
		"purged":      purged,
		"generated":   created,
	}).Info("Meeting schedule updated")

	return schedule, nil
}

// GetSchedule retrieves a schedule by ID.
func (s *ScheduleService) GetSchedule(ctx context.Context, id uint64) (*models.MeetingSchedule, error) {
	return findSchedule(ctx, s.store, id)
}

// GetActiveSchedule returns the active schedule of a team.
func (s *ScheduleService) GetActiveSchedule(ctx context.Context, teamID uint64) (*models.MeetingSchedule, error) {
	if _, err := s.store.Teams().FindByID(ctx, teamID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to find team: %w", err)
	}

	schedule, err := s.store.Schedules().FindActiveByTeam(ctx, teamID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrScheduleNotFound
		}
		return nil, fmt.Errorf("failed to find active schedule: %w", err)
	}

	return schedule, nil
}

// deactivateOthers clears the active flag on every active schedule of the
// team except keepID.
func deactivateOthers(ctx context.Context, tx repository.Store, teamID, keepID uint64) error {
	active, err := tx.Schedules().ListActiveByTeam(ctx, teamID)
	if err != nil {
		return fmt.Errorf("failed to list active schedules: %w", err)
	}
	for _, other := range active {
		if other.ID == keepID {
			continue
		}
		if err := tx.Schedules().UpdateFields(ctx, other.ID, map[string]interface{}{"active": false}); err != nil {
			return fmt.Errorf("failed to deactivate schedule %d: %w", other.ID, err)
		}
	}
	return nil
}

func findSchedule(ctx context.Context, store repository.Store, id uint64) (*models.MeetingSchedule, error) {
	schedule, err := store.Schedules().FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrScheduleNotFound
		}
		return nil, fmt.Errorf("failed to find schedule: %w", err)
	}
	return schedule, nil
}

// loadTeamTerm locks the team and resolves the end date of its term. The
// checks run in order: team, case and term, end date.
func loadTeamTerm(ctx context.Context, tx repository.Store, teamID uint64) (*models.Team, time.Time, error) {
	if err := tx.Teams().LockByID(ctx, teamID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, time.Time{}, ErrTeamNotFound
		}
		return nil, time.Time{}, fmt.Errorf("failed to lock team: %w", err)
	}

	team, err := tx.Teams().FindWithCaseAndTerm(ctx, teamID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, time.Time{}, ErrTeamNotFound
		}
		return nil, time.Time{}, fmt.Errorf("failed to load team: %w", err)
	}

	end, ok := team.TermEndDate()
	if !ok {
		return nil, time.Time{}, ErrMissingCaseOrTerm
	}
	if end == nil {
		return nil, time.Time{}, ErrMissingTermEndDate
	}

	return team, *end, nil
}

func isTermChainError(err error) bool {
	return errors.Is(err, ErrTeamNotFound) ||
		errors.Is(err, ErrMissingCaseOrTerm) ||
		errors.Is(err, ErrMissingTermEndDate)
}

// upcomingSlots regenerates the schedule's cadence and keeps only the slots
// strictly after now whose date is on or after both the start date and today.
func upcomingSlots(schedule *models.MeetingSchedule, end, now time.Time) []scheduling.Slot {
	floor := scheduling.DateOf(schedule.StartDate)
	if today := scheduling.DateOf(now); today.After(floor) {
		floor = today
	}

	all := scheduling.Generate(schedule.Cadence(), end, schedule.TeamID, schedule.ID)
	kept := make([]scheduling.Slot, 0, len(all))
	for _, slot := range all {
		if slot.DateTime.After(now) && !scheduling.DateOf(slot.DateTime).Before(floor) {
			kept = append(kept, slot)
		}
	}
	return kept
}

// persistChain inserts the slots as meetings and then links each one to its
// predecessor. The first meeting links to previousID, which may be nil.
func persistChain(ctx context.Context, meetings repository.MeetingRepository, slots []scheduling.Slot, previousID *uint64) (int, error) {
	chain := models.MeetingsFromSlots(slots)
	if len(chain) == 0 {
		return 0, nil
	}

	if err := meetings.CreateBatch(ctx, chain); err != nil {
		return 0, fmt.Errorf("failed to create meetings: %w", err)
	}

	for i := range chain {
		if previousID != nil {
			if err := meetings.SetPrevious(ctx, chain[i].ID, previousID); err != nil {
				return 0, fmt.Errorf("failed to link meeting %d: %w", chain[i].ID, err)
			}
		}
		id := chain[i].ID
		previousID = &id
	}

	return len(chain), nil
}
