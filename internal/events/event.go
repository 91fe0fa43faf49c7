package events

import (
	"time"

	"github.com/google/uuid"
)

type Type string

const (
	TypeAppointmentCreated   Type = "AppointmentCreated"
	TypeAppointmentApproved  Type = "AppointmentApproved"
	TypeAppointmentRejected  Type = "AppointmentRejected"
	TypeRescheduleProposed   Type = "RescheduleProposed"
	TypeRescheduleResolved   Type = "RescheduleResolved"
	TypeAppointmentCancelled Type = "AppointmentCancelled"
	TypeSessionStarted       Type = "SessionStarted"
	TypeAppointmentCompleted Type = "AppointmentCompleted"
	TypeNoShowRecorded       Type = "NoShowRecorded"
)

var actionTypes = map[string]Type{
	"create":             TypeAppointmentCreated,
	"approve":            TypeAppointmentApproved,
	"reject":             TypeAppointmentRejected,
	"request_reschedule": TypeRescheduleProposed,
	"accept_reschedule":  TypeRescheduleResolved,
	"reject_reschedule":  TypeRescheduleResolved,
	"cancel":             TypeAppointmentCancelled,
	"begin_session":      TypeSessionStarted,
	"finish_session":     TypeAppointmentCompleted,
	"mark_no_show":       TypeNoShowRecorded,
}

// TypeFor maps a committed action to the event announcing it.
func TypeFor(action string) (Type, bool) {
	t, ok := actionTypes[action]
	return t, ok
}

// Event is published after an appointment change has been committed.
type Event struct {
	ID             string    `json:"event_id"`
	Type           Type      `json:"event_type"`
	StudioID       uint      `json:"studio_id"`
	AppointmentID  uint      `json:"appointment_id"`
	Action         string    `json:"action"`
	PreviousStatus string    `json:"previous_status,omitempty"`
	Status         string    `json:"status"`
	ActorID        uint      `json:"actor_id"`
	ActorRole      string    `json:"actor_role"`
	Accepted       *bool     `json:"accepted,omitempty"`
	OccurredAt     time.Time `json:"occurred_at"`
}

// New stamps an id and time on a change. ok is false for actions that
// have no event.
func New(action string, studioID, appointmentID uint, from, to string, at time.Time) (Event, bool) {
	t, ok := TypeFor(action)
	if !ok {
		return Event{}, false
	}

	ev := Event{
		ID:             uuid.NewString(),
		Type:           t,
		StudioID:       studioID,
		AppointmentID:  appointmentID,
		Action:         action,
		PreviousStatus: from,
		Status:         to,
		OccurredAt:     at.UTC(),
	}
	if t == TypeRescheduleResolved {
		accepted := action == "accept_reschedule"
		ev.Accepted = &accepted
	}
	return ev, true
}
