package appointment

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/studio-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/studio-scheduler/internal/models"
)

type RequestReschedule struct {
	t *Transitioner
}

func NewRequestReschedule(t *Transitioner) *RequestReschedule {
	return &RequestReschedule{t: t}
}

func (uc *RequestReschedule) Execute(
	ctx context.Context,
	actor domain.Actor,
	appointmentID uint,
	proposal domain.Proposal,
) (*models.Appointment, error) {

	return uc.t.run(ctx, actor, appointmentID, string(domain.ActionRequestReschedule),
		func(ap *models.Appointment, now time.Time) error {
			if err := domain.RequestReschedule(ap, actor, proposal, now); err != nil {
				return err
			}
			return uc.checkProposal(ctx, actor, ap, now)
		})
}

// checkProposal holds the proposed schedule to the same rules as a new
// booking: the artist's working hours and, for clients, the studio's
// minimum advance notice.
func (uc *RequestReschedule) checkProposal(
	ctx context.Context,
	actor domain.Actor,
	ap *models.Appointment,
	now time.Time,
) error {

	proposed := domain.ProposedSchedule(ap.PendingChange)

	if actor.Role == domain.RoleClient {
		studio, err := uc.t.repo.GetStudioByID(ctx, ap.StudioID)
		if err != nil {
			return err
		}
		minAdvance := time.Duration(studio.MinAdvanceMinutes) * time.Minute
		if err := domain.CheckAdvanceNotice(proposed, now, minAdvance); err != nil {
			return err
		}
	}

	return uc.t.checkWorkingHours(ctx, ap.ArtistID, proposed, now.Location())
}

// ResolveReschedule answers an open proposal. Both answers return the
// appointment to confirmed, so both are checked against the calendar.
type ResolveReschedule struct {
	t *Transitioner
}

func NewResolveReschedule(t *Transitioner) *ResolveReschedule {
	return &ResolveReschedule{t: t}
}

func (uc *ResolveReschedule) Execute(
	ctx context.Context,
	actor domain.Actor,
	appointmentID uint,
	accept bool,
) (*models.Appointment, error) {

	if accept {
		return uc.t.run(ctx, actor, appointmentID, string(domain.ActionAcceptReschedule),
			func(ap *models.Appointment, _ time.Time) error {
				return domain.AcceptReschedule(ap, actor)
			})
	}

	return uc.t.run(ctx, actor, appointmentID, string(domain.ActionRejectReschedule),
		func(ap *models.Appointment, _ time.Time) error {
			return domain.RejectReschedule(ap, actor)
		})
}
