package appointment

import (
	"strings"
	"time"

	"github.com/BruksfildServices01/studio-scheduler/internal/calendar"
	"github.com/BruksfildServices01/studio-scheduler/internal/models"
)

// Proposal is a request to move an appointment to a new schedule.
type Proposal struct {
	Schedule Schedule
	Reason   string
}

// RequestReschedule opens a negotiation. Only one may be open at a time;
// a second request fails with ErrAlreadyNegotiating and leaves the first
// proposal untouched.
func RequestReschedule(ap *models.Appointment, actor Actor, p Proposal, now time.Time) error {
	if err := guard(ap, actor, ActionRequestReschedule); err != nil {
		return err
	}

	reason := strings.TrimSpace(p.Reason)
	if reason == "" {
		return ErrReasonRequired
	}

	current := ScheduleOf(ap)
	proposed, err := p.Schedule.Normalize(current.Minutes())
	if err != nil {
		return err
	}
	if proposed.isPast(now) {
		return calendar.ErrPastDate
	}

	ap.PendingChange = &models.PendingChange{
		AppointmentID:  ap.ID,
		ProposedDate:   proposed.Date,
		ProposedTime:   proposed.Start,
		ProposedEnd:    proposed.End,
		ProposedPeriod: proposed.Period,
		Reason:         reason,
		RequestedBy:    string(actor.Side()),
		RequesterID:    actor.UserID,
		PriorDate:      current.Date,
		PriorStart:     current.Start,
		PriorEnd:       current.End,
		PriorPeriod:    current.Period,
	}
	ap.Status = string(StatusRescheduling)
	return nil
}

// AcceptReschedule adopts the proposal. Only the counter-party may call it.
func AcceptReschedule(ap *models.Appointment, actor Actor) error {
	if err := guard(ap, actor, ActionAcceptReschedule); err != nil {
		return err
	}

	applySchedule(ap, ProposedSchedule(ap.PendingChange))
	ap.PendingChange = nil
	ap.Status = string(StatusConfirmed)
	return nil
}

// RejectReschedule restores the schedule captured when the proposal was
// made. Trying again takes a fresh RequestReschedule.
func RejectReschedule(ap *models.Appointment, actor Actor) error {
	if err := guard(ap, actor, ActionRejectReschedule); err != nil {
		return err
	}

	applySchedule(ap, PriorSchedule(ap.PendingChange))
	ap.PendingChange = nil
	ap.Status = string(StatusConfirmed)
	return nil
}

func ProposedSchedule(pc *models.PendingChange) Schedule {
	return Schedule{
		Date:   pc.ProposedDate,
		Start:  pc.ProposedTime,
		End:    pc.ProposedEnd,
		Period: pc.ProposedPeriod,
	}
}

func PriorSchedule(pc *models.PendingChange) Schedule {
	return Schedule{
		Date:   pc.PriorDate,
		Start:  pc.PriorStart,
		End:    pc.PriorEnd,
		Period: pc.PriorPeriod,
	}
}
