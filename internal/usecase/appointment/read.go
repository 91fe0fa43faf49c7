package appointment

import (
	"context"
	"fmt"
	"time"

	"github.com/BruksfildServices01/studio-scheduler/internal/calendar"
	domain "github.com/BruksfildServices01/studio-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/studio-scheduler/internal/models"
)

// ======================================================
// GET
// ======================================================

type GetAppointment struct {
	repo domain.Repository
}

func NewGetAppointment(repo domain.Repository) *GetAppointment {
	return &GetAppointment{repo: repo}
}

// Execute returns the appointment only to its parties. Others get
// ErrNotFound so ids cannot be probed.
func (uc *GetAppointment) Execute(
	ctx context.Context,
	actor domain.Actor,
	appointmentID uint,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if !actor.IsPartyTo(ap) {
		return nil, domain.ErrNotFound
	}
	return ap, nil
}

// ======================================================
// LIST
// ======================================================

func filterFor(actor domain.Actor, artistID uint) domain.ListFilter {
	f := domain.ListFilter{StudioID: actor.StudioID}
	switch actor.Role {
	case domain.RoleClient:
		f.ClientID = actor.UserID
	case domain.RoleArtist:
		f.ArtistID = actor.UserID
	case domain.RoleManager:
		f.ArtistID = artistID
	}
	return f
}

type ListAppointmentsByDate struct {
	repo domain.Repository
}

func NewListAppointmentsByDate(repo domain.Repository) *ListAppointmentsByDate {
	return &ListAppointmentsByDate{repo: repo}
}

// Execute lists the actor's appointments on date (YYYY-MM-DD). Managers
// see the whole studio, or one artist when artistID is set.
func (uc *ListAppointmentsByDate) Execute(
	ctx context.Context,
	actor domain.Actor,
	date string,
	artistID uint,
) ([]models.Appointment, error) {

	if _, err := time.Parse(calendar.DateFormat, date); err != nil {
		return nil, calendar.ErrInvalidFormat
	}

	f := filterFor(actor, artistID)
	f.From, f.To = date, date
	return uc.repo.ListAppointments(ctx, f)
}

type ListAppointmentsByMonth struct {
	repo domain.Repository
}

func NewListAppointmentsByMonth(repo domain.Repository) *ListAppointmentsByMonth {
	return &ListAppointmentsByMonth{repo: repo}
}

func (uc *ListAppointmentsByMonth) Execute(
	ctx context.Context,
	actor domain.Actor,
	year int,
	month int,
	artistID uint,
) ([]models.Appointment, error) {

	if month < 1 || month > 12 || year < 1 {
		return nil, calendar.ErrInvalidCalendarDate
	}

	f := filterFor(actor, artistID)
	f.From = fmt.Sprintf("%04d-%02d-01", year, month)
	f.To = fmt.Sprintf("%04d-%02d-%02d", year, month, calendar.DaysInMonth(year, time.Month(month)))
	return uc.repo.ListAppointments(ctx, f)
}

// ======================================================
// HISTORY
// ======================================================

type ListHistory struct {
	repo domain.Repository
}

func NewListHistory(repo domain.Repository) *ListHistory {
	return &ListHistory{repo: repo}
}

func (uc *ListHistory) Execute(
	ctx context.Context,
	actor domain.Actor,
	appointmentID uint,
) ([]models.AppointmentStatusEvent, error) {

	ap, err := uc.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if !actor.IsPartyTo(ap) {
		return nil, domain.ErrNotFound
	}
	return uc.repo.ListStatusEvents(ctx, appointmentID)
}
