package appointment

import (
	"fmt"

	"github.com/BruksfildServices01/studio-scheduler/internal/httperr"
)

var (
	ErrNotFound = httperr.New(httperr.KindNotFound, "appointment_not_found")

	ErrInvalidTransition = httperr.New(httperr.KindInvalidTransition, "invalid_transition")
	ErrStaleState        = httperr.New(httperr.KindInvalidTransition, "appointment_changed")

	ErrRoleNotAllowed = httperr.New(httperr.KindUnauthorized, "role_not_allowed")
	ErrNotAParty      = httperr.New(httperr.KindUnauthorized, "not_a_party")
	ErrSelfApproval   = httperr.New(httperr.KindUnauthorized, "self_approval")

	ErrAlreadyNegotiating = httperr.New(httperr.KindAlreadyNegotiating, "already_negotiating")
	ErrSlotConflict       = httperr.New(httperr.KindSlotConflict, "slot_conflict")

	ErrReasonRequired  = httperr.ErrBusiness("reason_required")
	ErrUnknownReason   = httperr.ErrBusiness("unknown_reason")
	ErrNoteRequired    = httperr.ErrBusiness("note_required")
	ErrMissingSlot     = httperr.ErrBusiness("missing_proposed_slot")
	ErrInvalidSchedule = httperr.ErrBusiness("invalid_schedule")
	ErrNegativeAmount  = httperr.ErrBusiness("negative_amount")
	ErrServiceRequired = httperr.ErrBusiness("service_required")
	ErrTooSoon         = httperr.ErrBusiness("too_soon")
	ErrOutsideHours    = httperr.ErrBusiness("outside_working_hours")
	ErrPaymentLocked   = httperr.ErrBusiness("payment_not_editable")
)

// ConflictError names the appointment already holding the slot.
type ConflictError struct {
	ExistingID uint
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("slot_conflict: appointment %d", e.ExistingID)
}

func (e *ConflictError) Unwrap() error {
	return ErrSlotConflict
}
