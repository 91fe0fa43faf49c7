package appointment

import (
	"context"
	"strings"

	domain "github.com/BruksfildServices01/studio-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/studio-scheduler/internal/models"
)

type ReportIncident struct {
	repo       domain.Repository
	categories domain.ReasonSet
}

func NewReportIncident(repo domain.Repository, categories domain.ReasonSet) *ReportIncident {
	return &ReportIncident{repo: repo, categories: categories}
}

// Execute files an incident against an appointment. Any party may
// report, in any status.
func (uc *ReportIncident) Execute(
	ctx context.Context,
	actor domain.Actor,
	appointmentID uint,
	r domain.Reason,
) (*models.IncidentReport, error) {

	ap, err := uc.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if !actor.IsPartyTo(ap) {
		return nil, domain.ErrNotFound
	}
	if err := domain.ValidateReason(uc.categories, r); err != nil {
		return nil, err
	}

	report := &models.IncidentReport{
		StudioID:      ap.StudioID,
		AppointmentID: ap.ID,
		ReporterID:    actor.UserID,
		ReporterRole:  string(actor.Role),
		Category:      strings.TrimSpace(r.Code),
		Note:          strings.TrimSpace(r.Note),
	}
	if err := uc.repo.CreateIncident(ctx, report); err != nil {
		return nil, err
	}
	return report, nil
}
