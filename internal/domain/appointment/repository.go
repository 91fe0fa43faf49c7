package appointment

import (
	"context"

	"github.com/BruksfildServices01/studio-scheduler/internal/models"
)

// ListFilter selects appointments of one party within a date range.
// Dates are inclusive YYYY-MM-DD values.
type ListFilter struct {
	StudioID uint
	ClientID uint
	ArtistID uint
	From     string
	To       string
}

type Repository interface {
	// -------- Studio / users --------
	GetStudioByID(
		ctx context.Context,
		id uint,
	) (*models.Studio, error)

	GetUser(
		ctx context.Context,
		id uint,
	) (*models.User, error)

	// -------- Appointment (create / read) --------
	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
		event *models.AppointmentStatusEvent,
	) error

	// GetAppointment returns ErrNotFound for unknown ids.
	GetAppointment(
		ctx context.Context,
		id uint,
	) (*models.Appointment, error)

	ListAppointments(
		ctx context.Context,
		filter ListFilter,
	) ([]models.Appointment, error)

	// -------- Appointment (state change) --------

	// UpdateAppointment persists ap only if the stored row still has
	// status expected and version ap.Version, replacing the pending
	// change row to match ap.PendingChange. A lost race returns
	// ErrStaleState and writes nothing; a successful write advances
	// ap.Version. event, when set, is appended to the status history in
	// the same transaction.
	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
		expected Status,
		event *models.AppointmentStatusEvent,
	) error

	ListStatusEvents(
		ctx context.Context,
		appointmentID uint,
	) ([]models.AppointmentStatusEvent, error)

	// -------- Availability --------

	// ListByArtist returns the artist's appointments on date, any status.
	ListByArtist(
		ctx context.Context,
		artistID uint,
		date string,
	) ([]models.Appointment, error)

	GetWorkingHours(
		ctx context.Context,
		artistID uint,
		weekday int,
	) (*models.WorkingHours, error)

	ListWorkingHours(
		ctx context.Context,
		artistID uint,
	) ([]models.WorkingHours, error)

	ReplaceWorkingHours(
		ctx context.Context,
		artistID uint,
		hours []models.WorkingHours,
	) error

	// -------- Incidents --------
	CreateIncident(
		ctx context.Context,
		report *models.IncidentReport,
	) error
}
