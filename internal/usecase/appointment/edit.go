package appointment

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/studio-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/studio-scheduler/internal/models"
)

// UpdatePayment and UpdateNotes change no status. The version
// compare-and-swap still stops them from writing back a schedule that a
// concurrent reschedule already moved.

type UpdatePayment struct {
	t *Transitioner
}

func NewUpdatePayment(t *Transitioner) *UpdatePayment {
	return &UpdatePayment{t: t}
}

func (uc *UpdatePayment) Execute(
	ctx context.Context,
	actor domain.Actor,
	appointmentID uint,
	priceCents int64,
	depositCents int64,
) (*models.Appointment, error) {

	return uc.t.run(ctx, actor, appointmentID, "set_payment",
		func(ap *models.Appointment, _ time.Time) error {
			return domain.SetPayment(ap, actor, priceCents, depositCents)
		})
}

type UpdateNotes struct {
	t *Transitioner
}

func NewUpdateNotes(t *Transitioner) *UpdateNotes {
	return &UpdateNotes{t: t}
}

func (uc *UpdateNotes) Execute(
	ctx context.Context,
	actor domain.Actor,
	appointmentID uint,
	notes string,
) (*models.Appointment, error) {

	return uc.t.run(ctx, actor, appointmentID, "set_notes",
		func(ap *models.Appointment, _ time.Time) error {
			return domain.SetNotes(ap, actor, notes)
		})
}
