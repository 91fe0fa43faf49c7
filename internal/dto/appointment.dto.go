package dto

import (
	"time"

	domain "github.com/BruksfildServices01/studio-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/studio-scheduler/internal/models"
)

type MoneyDTO struct {
	Cents     int64  `json:"cents"`
	Formatted string `json:"formatted"`
}

func money(cents int64) MoneyDTO {
	return MoneyDTO{Cents: cents, Formatted: domain.FormatBRL(cents)}
}

type PendingChangeDTO struct {
	ProposedDate   string    `json:"proposed_date"`
	ProposedTime   string    `json:"proposed_time,omitempty"`
	ProposedEnd    string    `json:"proposed_end,omitempty"`
	ProposedPeriod string    `json:"proposed_period,omitempty"`
	Reason         string    `json:"reason"`
	RequestedBy    string    `json:"requested_by"`
	CreatedAt      time.Time `json:"created_at"`
}

// AppointmentDTO is the appointment as one role sees it. Notes is
// empty for clients.
type AppointmentDTO struct {
	ID       uint   `json:"id"`
	ClientID uint   `json:"client_id"`
	ArtistID uint   `json:"artist_id"`
	Service  string `json:"service"`

	Date      string `json:"date"`
	StartTime string `json:"start_time,omitempty"`
	EndTime   string `json:"end_time,omitempty"`
	Period    string `json:"period,omitempty"`

	Status string `json:"status"`

	Price            MoneyDTO `json:"price"`
	DepositPaid      MoneyDTO `json:"deposit_paid"`
	RemainingBalance MoneyDTO `json:"remaining_balance"`

	PendingChange *PendingChangeDTO `json:"pending_change,omitempty"`

	TerminalReasonCode string `json:"terminal_reason_code,omitempty"`
	TerminalReason     string `json:"terminal_reason,omitempty"`

	Notes string `json:"notes,omitempty"`

	Actions []domain.Action `json:"actions"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewAppointmentDTO(ap *models.Appointment, actor domain.Actor) AppointmentDTO {
	out := AppointmentDTO{
		ID:                 ap.ID,
		ClientID:           ap.ClientID,
		ArtistID:           ap.ArtistID,
		Service:            ap.Service,
		Date:               ap.ScheduledDate,
		StartTime:          ap.StartTime,
		EndTime:            ap.EndTime,
		Period:             ap.Period,
		Status:             ap.Status,
		Price:              money(ap.PriceCents),
		DepositPaid:        money(ap.DepositCents),
		RemainingBalance:   money(domain.RemainingBalance(ap.PriceCents, ap.DepositCents)),
		TerminalReasonCode: ap.TerminalReasonCode,
		TerminalReason:     ap.TerminalReason,
		Actions:            domain.AvailableActions(ap, actor),
		CreatedAt:          ap.CreatedAt,
		UpdatedAt:          ap.UpdatedAt,
	}

	if out.Actions == nil {
		out.Actions = []domain.Action{}
	}

	if actor.IsStaff() {
		out.Notes = ap.Notes
	}

	if domain.Status(ap.Status) == domain.StatusRescheduling && ap.PendingChange != nil {
		pc := ap.PendingChange
		out.PendingChange = &PendingChangeDTO{
			ProposedDate:   pc.ProposedDate,
			ProposedTime:   pc.ProposedTime,
			ProposedEnd:    pc.ProposedEnd,
			ProposedPeriod: pc.ProposedPeriod,
			Reason:         pc.Reason,
			RequestedBy:    pc.RequestedBy,
			CreatedAt:      pc.CreatedAt,
		}
	}

	return out
}

func NewAppointmentListDTO(list []models.Appointment, actor domain.Actor) []AppointmentDTO {
	out := make([]AppointmentDTO, 0, len(list))
	for i := range list {
		out = append(out, NewAppointmentDTO(&list[i], actor))
	}
	return out
}
