package appointment

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/studio-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/studio-scheduler/internal/models"
)

type ApproveAppointment struct {
	t *Transitioner
}

func NewApproveAppointment(t *Transitioner) *ApproveAppointment {
	return &ApproveAppointment{t: t}
}

// Execute confirms a pending booking if the slot is still free.
func (uc *ApproveAppointment) Execute(
	ctx context.Context,
	actor domain.Actor,
	appointmentID uint,
) (*models.Appointment, error) {

	return uc.t.run(ctx, actor, appointmentID, string(domain.ActionApprove),
		func(ap *models.Appointment, _ time.Time) error {
			return domain.Approve(ap, actor)
		})
}

type RejectAppointment struct {
	t       *Transitioner
	reasons domain.ReasonSet
}

func NewRejectAppointment(t *Transitioner, reasons domain.ReasonSet) *RejectAppointment {
	return &RejectAppointment{t: t, reasons: reasons}
}

func (uc *RejectAppointment) Execute(
	ctx context.Context,
	actor domain.Actor,
	appointmentID uint,
	reason domain.Reason,
) (*models.Appointment, error) {

	return uc.t.run(ctx, actor, appointmentID, string(domain.ActionReject),
		func(ap *models.Appointment, now time.Time) error {
			return domain.Reject(ap, actor, reason, uc.reasons, now)
		})
}
