package appointment

import (
	"time"

	"github.com/BruksfildServices01/studio-scheduler/internal/models"
)

// ===============================
// Domain Actions
// ===============================
//
// Every action validates first and mutates last: on error ap is
// untouched.

func Approve(ap *models.Appointment, actor Actor) error {
	if err := guard(ap, actor, ActionApprove); err != nil {
		return err
	}

	ap.Status = string(StatusConfirmed)
	return nil
}

func Reject(ap *models.Appointment, actor Actor, reason Reason, set ReasonSet, now time.Time) error {
	if err := guard(ap, actor, ActionReject); err != nil {
		return err
	}
	if err := ValidateReason(set, reason); err != nil {
		return err
	}

	terminate(ap, StatusCancelled, reason)
	ap.CancelledAt = &now
	return nil
}

func Cancel(ap *models.Appointment, actor Actor, reason Reason, set ReasonSet, now time.Time) error {
	if err := guard(ap, actor, ActionCancel); err != nil {
		return err
	}
	if err := ValidateReason(set, reason); err != nil {
		return err
	}

	terminate(ap, StatusCancelled, reason)
	ap.CancelledAt = &now
	return nil
}

func BeginSession(ap *models.Appointment, actor Actor, now time.Time) error {
	if err := guard(ap, actor, ActionBeginSession); err != nil {
		return err
	}

	ap.Status = string(StatusInProgress)
	ap.StartedAt = &now
	return nil
}

func FinishSession(ap *models.Appointment, actor Actor, now time.Time) error {
	if err := guard(ap, actor, ActionFinishSession); err != nil {
		return err
	}

	ap.Status = string(StatusCompleted)
	ap.CompletedAt = &now
	return nil
}

// MarkNoShow records a confirmed session that never started. note is
// optional.
func MarkNoShow(ap *models.Appointment, actor Actor, note string) error {
	if err := guard(ap, actor, ActionMarkNoShow); err != nil {
		return err
	}

	terminate(ap, StatusNoShow, Reason{Note: note})
	return nil
}

func terminate(ap *models.Appointment, to Status, reason Reason) {
	ap.Status = string(to)
	ap.PendingChange = nil
	ap.TerminalReasonCode = reason.Code
	ap.TerminalReason = reason.Note
}

// SetNotes replaces the private staff annotation.
func SetNotes(ap *models.Appointment, actor Actor, notes string) error {
	if !actor.IsStaff() {
		return ErrRoleNotAllowed
	}
	if !actor.IsPartyTo(ap) {
		return ErrNotAParty
	}

	ap.Notes = notes
	return nil
}

// CheckInvariants verifies the record-level rules that must hold after
// every mutation.
func CheckInvariants(ap *models.Appointment) error {
	status := Status(ap.Status)
	if !status.Valid() {
		return ErrInvalidTransition
	}
	if (ap.PendingChange != nil) != (status == StatusRescheduling) {
		return ErrInvalidTransition
	}
	if ap.RemainingCents != RemainingBalance(ap.PriceCents, ap.DepositCents) {
		return ErrNegativeAmount
	}
	return nil
}
