package appointment

import (
	"context"
	"errors"
	"time"

	domain "github.com/BruksfildServices01/studio-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/studio-scheduler/internal/httperr"
	"github.com/BruksfildServices01/studio-scheduler/internal/models"
)

var (
	ErrArtistNotFound = httperr.New(httperr.KindNotFound, "artist_not_found")
	ErrClientNotFound = httperr.New(httperr.KindNotFound, "client_not_found")
)

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	t *Transitioner
}

func NewCreateAppointment(t *Transitioner) *CreateAppointment {
	return &CreateAppointment{t: t}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	actor domain.Actor,
	in domain.NewAppointmentInput,
) (*models.Appointment, error) {

	const action = "create"
	repo := uc.t.repo

	// --------------------------------------------------
	// Studio clock
	// --------------------------------------------------
	studio, err := repo.GetStudioByID(ctx, actor.StudioID)
	if err != nil {
		return nil, uc.t.fail(action, 0, err)
	}
	now := uc.t.clock().In(studioLocation(studio))

	// --------------------------------------------------
	// Record
	// --------------------------------------------------
	ap, err := domain.NewAppointment(actor, in, now)
	if err != nil {
		return nil, uc.t.fail(action, 0, err)
	}

	// --------------------------------------------------
	// Parties
	// --------------------------------------------------
	if err := uc.checkParty(ctx, ap.ArtistID, actor.StudioID, domain.RoleArtist, ErrArtistNotFound); err != nil {
		return nil, uc.t.fail(action, 0, err)
	}
	if err := uc.checkParty(ctx, ap.ClientID, 0, domain.RoleClient, ErrClientNotFound); err != nil {
		return nil, uc.t.fail(action, 0, err)
	}

	// --------------------------------------------------
	// Advance notice (client bookings) + working hours
	// --------------------------------------------------
	schedule := domain.ScheduleOf(ap)
	if actor.Role == domain.RoleClient {
		minAdvance := time.Duration(studio.MinAdvanceMinutes) * time.Minute
		if err := domain.CheckAdvanceNotice(schedule, now, minAdvance); err != nil {
			return nil, uc.t.fail(action, 0, err)
		}
	}
	if err := uc.t.checkWorkingHours(ctx, ap.ArtistID, schedule, now.Location()); err != nil {
		return nil, uc.t.fail(action, 0, err)
	}

	// --------------------------------------------------
	// Persist (staff bookings hold the slot immediately)
	// --------------------------------------------------
	event := &models.AppointmentStatusEvent{
		ToStatus:  ap.Status,
		Action:    action,
		ActorID:   actor.UserID,
		ActorRole: string(actor.Role),
	}
	write := func() error {
		return repo.CreateAppointment(ctx, ap, event)
	}
	if domain.Status(ap.Status).BlocksSlot() {
		err = uc.t.withSlot(ctx, ap, write)
	} else {
		err = write()
	}
	if err != nil {
		return nil, uc.t.fail(action, 0, err)
	}

	uc.t.committed(actor, action, ap, "", now)
	return ap, nil
}

func (uc *CreateAppointment) checkParty(
	ctx context.Context,
	userID uint,
	studioID uint,
	role domain.Role,
	missing error,
) error {
	user, err := uc.t.repo.GetUser(ctx, userID)
	if errors.Is(err, domain.ErrNotFound) {
		return missing
	}
	if err != nil {
		return err
	}
	if domain.Role(user.Role) != role {
		return missing
	}
	if studioID != 0 && user.StudioID != studioID {
		return missing
	}
	return nil
}
