package appointment

import (
	"strings"
	"time"

	"github.com/BruksfildServices01/studio-scheduler/internal/calendar"
	"github.com/BruksfildServices01/studio-scheduler/internal/models"
)

type NewAppointmentInput struct {
	ClientID     uint
	ArtistID     uint
	Service      string
	Schedule     Schedule
	PriceCents   int64
	DepositCents int64
	Notes        string
}

// NewAppointment builds a record for a booking submission. Clients book
// for themselves and land in pending; staff bookings start confirmed.
func NewAppointment(actor Actor, in NewAppointmentInput, now time.Time) (*models.Appointment, error) {
	switch actor.Role {
	case RoleClient:
		if in.ClientID != 0 && in.ClientID != actor.UserID {
			return nil, ErrNotAParty
		}
		in.ClientID = actor.UserID
		if in.Notes != "" {
			return nil, ErrRoleNotAllowed
		}
	case RoleArtist:
		if in.ArtistID == 0 {
			in.ArtistID = actor.UserID
		}
		if in.ArtistID != actor.UserID {
			return nil, ErrNotAParty
		}
	case RoleManager:
	default:
		return nil, ErrRoleNotAllowed
	}

	if in.ClientID == 0 || in.ArtistID == 0 {
		return nil, ErrNotAParty
	}

	service := strings.TrimSpace(in.Service)
	if service == "" {
		return nil, ErrServiceRequired
	}
	if in.PriceCents < 0 || in.DepositCents < 0 {
		return nil, ErrNegativeAmount
	}

	schedule, err := in.Schedule.Normalize(DefaultSessionMinutes)
	if err != nil {
		return nil, err
	}
	if schedule.isPast(now) {
		return nil, calendar.ErrPastDate
	}

	ap := &models.Appointment{
		StudioID:     actor.StudioID,
		ClientID:     in.ClientID,
		ArtistID:     in.ArtistID,
		Service:      service,
		Status:       string(InitialStatus(actor)),
		PriceCents:   in.PriceCents,
		DepositCents: in.DepositCents,
		Notes:        in.Notes,
	}
	applySchedule(ap, schedule)
	RecomputeBalance(ap)

	return ap, nil
}

// CheckAdvanceNotice rejects starts closer than minAdvance to now.
func CheckAdvanceNotice(s Schedule, now time.Time, minAdvance time.Duration) error {
	start, ok := s.StartsIn(now.Location())
	if !ok {
		return ErrInvalidSchedule
	}
	if start.Before(now.Add(minAdvance)) {
		return ErrTooSoon
	}
	return nil
}
