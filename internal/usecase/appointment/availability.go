package appointment

import (
	"context"
	"errors"
	"time"

	"github.com/BruksfildServices01/studio-scheduler/internal/calendar"
	domain "github.com/BruksfildServices01/studio-scheduler/internal/domain/appointment"
)

type GetAvailability struct {
	repo  domain.Repository
	step  int
	clock func() time.Time
}

func NewGetAvailability(repo domain.Repository, stepMinutes int) *GetAvailability {
	if stepMinutes <= 0 {
		stepMinutes = 30
	}
	return &GetAvailability{repo: repo, step: stepMinutes, clock: time.Now}
}

// WithClock replaces the time source. Used by tests.
func (uc *GetAvailability) WithClock(clock func() time.Time) *GetAvailability {
	uc.clock = clock
	return uc
}

// Execute lists the free slots of an artist on one day. An artist with
// no working hours for that weekday has no slots.
func (uc *GetAvailability) Execute(
	ctx context.Context,
	actor domain.Actor,
	in domain.AvailabilityInput,
) ([]calendar.Slot, error) {

	studio, err := uc.repo.GetStudioByID(ctx, actor.StudioID)
	if err != nil {
		return nil, err
	}
	loc := studioLocation(studio)

	artist, err := uc.repo.GetUser(ctx, in.ArtistID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, ErrArtistNotFound
	}
	if err != nil {
		return nil, err
	}
	if domain.Role(artist.Role) != domain.RoleArtist || artist.StudioID != actor.StudioID {
		return nil, ErrArtistNotFound
	}

	date, err := time.ParseInLocation(calendar.DateFormat, in.Date, loc)
	if err != nil {
		return nil, calendar.ErrInvalidFormat
	}

	duration := in.Duration
	if duration <= 0 {
		duration = domain.DefaultSessionMinutes
	}

	wh, err := uc.repo.GetWorkingHours(ctx, in.ArtistID, int(date.Weekday()))
	if err != nil {
		return nil, err
	}
	wd, ok := domain.WorkingDayFrom(wh)
	if !ok {
		return []calendar.Slot{}, nil
	}

	existing, err := uc.repo.ListByArtist(ctx, in.ArtistID, in.Date)
	if err != nil {
		return nil, err
	}

	now := uc.clock().In(loc)
	return calendar.DaySlots(date, wd, duration, uc.step, domain.BusySpans(existing, 0), now), nil
}
