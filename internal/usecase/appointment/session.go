package appointment

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/studio-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/studio-scheduler/internal/models"
)

// ======================================================
// BEGIN
// ======================================================

type BeginSession struct {
	t *Transitioner
}

func NewBeginSession(t *Transitioner) *BeginSession {
	return &BeginSession{t: t}
}

func (uc *BeginSession) Execute(
	ctx context.Context,
	actor domain.Actor,
	appointmentID uint,
) (*models.Appointment, error) {

	return uc.t.run(ctx, actor, appointmentID, string(domain.ActionBeginSession),
		func(ap *models.Appointment, now time.Time) error {
			return domain.BeginSession(ap, actor, now)
		})
}

// ======================================================
// FINISH
// ======================================================

type CompleteAppointment struct {
	t *Transitioner
}

func NewCompleteAppointment(t *Transitioner) *CompleteAppointment {
	return &CompleteAppointment{t: t}
}

func (uc *CompleteAppointment) Execute(
	ctx context.Context,
	actor domain.Actor,
	appointmentID uint,
) (*models.Appointment, error) {

	return uc.t.run(ctx, actor, appointmentID, string(domain.ActionFinishSession),
		func(ap *models.Appointment, now time.Time) error {
			return domain.FinishSession(ap, actor, now)
		})
}

// ======================================================
// NO-SHOW
// ======================================================

type MarkNoShow struct {
	t *Transitioner
}

func NewMarkNoShow(t *Transitioner) *MarkNoShow {
	return &MarkNoShow{t: t}
}

func (uc *MarkNoShow) Execute(
	ctx context.Context,
	actor domain.Actor,
	appointmentID uint,
	note string,
) (*models.Appointment, error) {

	return uc.t.run(ctx, actor, appointmentID, string(domain.ActionMarkNoShow),
		func(ap *models.Appointment, _ time.Time) error {
			return domain.MarkNoShow(ap, actor, note)
		})
}
