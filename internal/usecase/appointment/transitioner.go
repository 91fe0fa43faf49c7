package appointment

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/BruksfildServices01/studio-scheduler/internal/calendar"
	domain "github.com/BruksfildServices01/studio-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/studio-scheduler/internal/events"
	"github.com/BruksfildServices01/studio-scheduler/internal/httperr"
	"github.com/BruksfildServices01/studio-scheduler/internal/lock"
	"github.com/BruksfildServices01/studio-scheduler/internal/metrics"
	"github.com/BruksfildServices01/studio-scheduler/internal/models"
	"github.com/BruksfildServices01/studio-scheduler/internal/timezone"
)

// ErrCalendarBusy is returned when another confirmation on the same
// artist-day holds the lock for too long.
var ErrCalendarBusy = httperr.New(httperr.KindSlotConflict, "calendar_busy")

// ======================================================
// SHARED PIPELINE
// ======================================================

// Transitioner runs every change to a stored appointment the same way:
// load, mutate a copy, check the artist's calendar when the change
// makes the appointment occupy a slot, then write with a
// compare-and-swap on the status and version that were read. A lost
// race is retried once against the fresh record. Nothing is published
// unless the write committed.
type Transitioner struct {
	repo    domain.Repository
	locker  lock.Locker
	events  events.Publisher
	metrics *metrics.TransitionMetrics
	logger  *slog.Logger
	clock   func() time.Time
}

func NewTransitioner(
	repo domain.Repository,
	locker lock.Locker,
	publisher events.Publisher,
	m *metrics.TransitionMetrics,
	logger *slog.Logger,
) *Transitioner {
	if locker == nil {
		locker = lock.NewLocalLocker()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Transitioner{
		repo:    repo,
		locker:  locker,
		events:  publisher,
		metrics: m,
		logger:  logger,
		clock:   time.Now,
	}
}

// WithClock replaces the time source. Used by tests.
func (t *Transitioner) WithClock(clock func() time.Time) *Transitioner {
	t.clock = clock
	return t
}

// mutation changes ap in place or fails without touching it.
type mutation func(ap *models.Appointment, now time.Time) error

func (t *Transitioner) studioNow(ctx context.Context, studioID uint) (time.Time, error) {
	studio, err := t.repo.GetStudioByID(ctx, studioID)
	if err != nil {
		return time.Time{}, err
	}
	return t.clock().In(studioLocation(studio)), nil
}

func studioLocation(studio *models.Studio) *time.Location {
	return timezone.Location(studio.Timezone)
}

func (t *Transitioner) run(
	ctx context.Context,
	actor domain.Actor,
	id uint,
	action string,
	mutate mutation,
) (*models.Appointment, error) {

	next, from, now, err := t.attempt(ctx, actor, id, action, mutate)
	if errors.Is(err, domain.ErrStaleState) {
		// reload once so the caller sees why the new state refuses the change
		next, from, now, err = t.attempt(ctx, actor, id, action, mutate)
	}
	if err != nil {
		return nil, t.fail(action, id, err)
	}

	t.committed(actor, action, next, string(from), now)
	return next, nil
}

func (t *Transitioner) attempt(
	ctx context.Context,
	actor domain.Actor,
	id uint,
	action string,
	mutate mutation,
) (*models.Appointment, domain.Status, time.Time, error) {

	current, err := t.repo.GetAppointment(ctx, id)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	now, err := t.studioNow(ctx, current.StudioID)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	next := current.Clone()
	if err := mutate(next, now); err != nil {
		return nil, "", now, err
	}
	if err := domain.CheckInvariants(next); err != nil {
		return nil, "", now, err
	}

	from := domain.Status(current.Status)
	to := domain.Status(next.Status)

	var event *models.AppointmentStatusEvent
	if from != to {
		event = &models.AppointmentStatusEvent{
			AppointmentID: next.ID,
			FromStatus:    string(from),
			ToStatus:      string(to),
			Action:        action,
			ActorID:       actor.UserID,
			ActorRole:     string(actor.Role),
		}
	}

	write := func() error {
		return t.repo.UpdateAppointment(ctx, next, from, event)
	}
	if to.BlocksSlot() && !from.BlocksSlot() {
		err = t.withSlot(ctx, next, write)
	} else {
		err = write()
	}
	if err != nil {
		return nil, "", now, err
	}
	return next, from, now, nil
}

// withSlot holds the artist-day lock while checking availability and
// writing, so two confirmations cannot both see the slot free.
func (t *Transitioner) withSlot(ctx context.Context, ap *models.Appointment, write func() error) error {
	started := time.Now()
	release, err := t.locker.Acquire(ctx, lock.ArtistDayKey(ap.ArtistID, ap.ScheduledDate))
	if errors.Is(err, lock.ErrNotAcquired) {
		return ErrCalendarBusy
	}
	if err != nil {
		return err
	}
	defer release()
	t.metrics.ObserveLockWait(time.Since(started).Seconds())

	existing, err := t.repo.ListByArtist(ctx, ap.ArtistID, ap.ScheduledDate)
	if err != nil {
		return err
	}
	if err := domain.AssertAvailable(ap.ArtistID, domain.ScheduleOf(ap), ap.ID, existing); err != nil {
		return err
	}

	return write()
}

// checkWorkingHours reports ErrOutsideHours when s falls outside the
// artist's hours for that weekday.
func (t *Transitioner) checkWorkingHours(
	ctx context.Context,
	artistID uint,
	s domain.Schedule,
	loc *time.Location,
) error {
	date, err := calendar.ParseISODate(s.Date, loc)
	if err != nil {
		return domain.ErrInvalidSchedule
	}

	wh, err := t.repo.GetWorkingHours(ctx, artistID, int(date.Weekday()))
	if err != nil {
		return err
	}
	if wh == nil {
		// artists without configured hours take bookings any time
		return nil
	}

	wd, ok := domain.WorkingDayFrom(wh)
	if !ok {
		return domain.ErrOutsideHours
	}
	if s.Start != "" && !domain.IsWithinWorkingHours(wd, s) {
		return domain.ErrOutsideHours
	}
	return nil
}

func (t *Transitioner) committed(actor domain.Actor, action string, ap *models.Appointment, from string, now time.Time) {
	t.metrics.ObserveTransition(action, ap.Status)
	t.logger.Info("appointment updated",
		"action", action,
		"appointment_id", ap.ID,
		"from", from,
		"to", ap.Status,
		"actor_id", actor.UserID,
		"actor_role", actor.Role,
	)

	if t.events == nil || from == ap.Status {
		return
	}
	ev, ok := events.New(action, ap.StudioID, ap.ID, from, ap.Status, now)
	if !ok {
		return
	}
	ev.ActorID = actor.UserID
	ev.ActorRole = string(actor.Role)
	t.events.Publish(ev)
}

func (t *Transitioner) fail(action string, id uint, err error) error {
	kind, business := httperr.KindOf(err)
	if !business {
		t.metrics.ObserveFailure(action, "internal")
		t.logger.Error("appointment update failed", "action", action, "appointment_id", id, "err", err)
		return err
	}

	t.metrics.ObserveFailure(action, string(kind))
	if errors.Is(err, domain.ErrSlotConflict) {
		t.metrics.ObserveConflict()
	}
	t.logger.Warn("appointment update refused", "action", action, "appointment_id", id, "err", err)
	return err
}
