package appointment

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/studio-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/studio-scheduler/internal/models"
)

type CancelAppointment struct {
	t       *Transitioner
	reasons domain.ReasonSet
}

func NewCancelAppointment(t *Transitioner, reasons domain.ReasonSet) *CancelAppointment {
	return &CancelAppointment{t: t, reasons: reasons}
}

func (uc *CancelAppointment) Execute(
	ctx context.Context,
	actor domain.Actor,
	appointmentID uint,
	reason domain.Reason,
) (*models.Appointment, error) {

	return uc.t.run(ctx, actor, appointmentID, string(domain.ActionCancel),
		func(ap *models.Appointment, now time.Time) error {
			return domain.Cancel(ap, actor, reason, uc.reasons, now)
		})
}
