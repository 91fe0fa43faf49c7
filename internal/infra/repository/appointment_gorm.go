package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/studio-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/studio-scheduler/internal/httperr"
	"github.com/BruksfildServices01/studio-scheduler/internal/models"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

// --------------------------------------------------
// Studio / users
// --------------------------------------------------

func (r *AppointmentGormRepository) GetStudioByID(
	ctx context.Context,
	id uint,
) (*models.Studio, error) {

	var studio models.Studio
	if err := r.db.WithContext(ctx).First(&studio, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &studio, nil
}

func (r *AppointmentGormRepository) GetUser(
	ctx context.Context,
	id uint,
) (*models.User, error) {

	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

// --------------------------------------------------
// Appointment (create / read)
// --------------------------------------------------

func (r *AppointmentGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
	event *models.AppointmentStatusEvent,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Client", "Artist", "PendingChange").Create(ap).Error; err != nil {
			return err
		}
		if event != nil {
			event.AppointmentID = ap.ID
			if err := tx.Create(event).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *AppointmentGormRepository) GetAppointment(
	ctx context.Context,
	id uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("PendingChange").
		First(&ap, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &ap, nil
}

func (r *AppointmentGormRepository) ListAppointments(
	ctx context.Context,
	filter domain.ListFilter,
) ([]models.Appointment, error) {

	q := r.db.WithContext(ctx).
		Preload("PendingChange").
		Preload("Client").
		Preload("Artist").
		Where("studio_id = ?", filter.StudioID)

	if filter.ClientID != 0 {
		q = q.Where("client_id = ?", filter.ClientID)
	}
	if filter.ArtistID != 0 {
		q = q.Where("artist_id = ?", filter.ArtistID)
	}
	if filter.From != "" {
		q = q.Where("scheduled_date >= ?", filter.From)
	}
	if filter.To != "" {
		q = q.Where("scheduled_date <= ?", filter.To)
	}

	var apps []models.Appointment
	if err := q.
		Order("scheduled_date ASC, start_time ASC, id ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

// --------------------------------------------------
// Appointment (state change)
// --------------------------------------------------

func (r *AppointmentGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
	expected domain.Status,
	event *models.AppointmentStatusEvent,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Appointment{}).
			Where("id = ? AND status = ? AND version = ?", ap.ID, string(expected), ap.Version).
			Updates(map[string]any{
				"version":              ap.Version + 1,
				"scheduled_date":       ap.ScheduledDate,
				"start_time":           ap.StartTime,
				"end_time":             ap.EndTime,
				"period":               ap.Period,
				"status":               ap.Status,
				"price_cents":          ap.PriceCents,
				"deposit_cents":        ap.DepositCents,
				"remaining_cents":      ap.RemainingCents,
				"terminal_reason_code": ap.TerminalReasonCode,
				"terminal_reason":      ap.TerminalReason,
				"notes":                ap.Notes,
				"cancelled_at":         ap.CancelledAt,
				"started_at":           ap.StartedAt,
				"completed_at":         ap.CompletedAt,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrStaleState
		}

		if err := r.syncPendingChange(tx, ap); err != nil {
			return err
		}

		if event != nil {
			event.AppointmentID = ap.ID
			if err := tx.Create(event).Error; err != nil {
				return err
			}
		}

		ap.Version++
		return nil
	})
}

// syncPendingChange makes the stored proposal row match ap.PendingChange.
func (r *AppointmentGormRepository) syncPendingChange(tx *gorm.DB, ap *models.Appointment) error {
	pc := ap.PendingChange
	if pc != nil && pc.ID != 0 {
		return nil
	}

	if err := tx.Where("appointment_id = ?", ap.ID).
		Delete(&models.PendingChange{}).Error; err != nil {
		return err
	}
	if pc == nil {
		return nil
	}

	pc.AppointmentID = ap.ID
	if err := tx.Create(pc).Error; err != nil {
		if httperr.IsUniqueViolation(err) {
			return domain.ErrAlreadyNegotiating
		}
		return err
	}
	return nil
}

func (r *AppointmentGormRepository) ListStatusEvents(
	ctx context.Context,
	appointmentID uint,
) ([]models.AppointmentStatusEvent, error) {

	var rows []models.AppointmentStatusEvent
	if err := r.db.WithContext(ctx).
		Where("appointment_id = ?", appointmentID).
		Order("created_at ASC, id ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// --------------------------------------------------
// Availability
// --------------------------------------------------

func (r *AppointmentGormRepository) ListByArtist(
	ctx context.Context,
	artistID uint,
	date string,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Where("artist_id = ? AND scheduled_date = ?", artistID, date).
		Order("start_time ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

// GetWorkingHours returns nil without error when the artist has no row
// for weekday.
func (r *AppointmentGormRepository) GetWorkingHours(
	ctx context.Context,
	artistID uint,
	weekday int,
) (*models.WorkingHours, error) {

	var wh models.WorkingHours
	err := r.db.WithContext(ctx).
		Where("artist_id = ? AND weekday = ?", artistID, weekday).
		First(&wh).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &wh, nil
}

func (r *AppointmentGormRepository) ListWorkingHours(
	ctx context.Context,
	artistID uint,
) ([]models.WorkingHours, error) {

	var rows []models.WorkingHours
	if err := r.db.WithContext(ctx).
		Where("artist_id = ?", artistID).
		Order("weekday ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *AppointmentGormRepository) ReplaceWorkingHours(
	ctx context.Context,
	artistID uint,
	hours []models.WorkingHours,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("artist_id = ?", artistID).
			Delete(&models.WorkingHours{}).Error; err != nil {
			return err
		}
		if len(hours) == 0 {
			return nil
		}
		for i := range hours {
			hours[i].ID = 0
			hours[i].ArtistID = artistID
		}
		return tx.Create(&hours).Error
	})
}

// --------------------------------------------------
// Incidents
// --------------------------------------------------

func (r *AppointmentGormRepository) CreateIncident(
	ctx context.Context,
	report *models.IncidentReport,
) error {
	return r.db.WithContext(ctx).Create(report).Error
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrNotFound
	}
	return err
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
