package appointment

import "slices"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusPending      Status = "pending"
	StatusConfirmed    Status = "confirmed"
	StatusInProgress   Status = "in_progress"
	StatusCompleted    Status = "completed"
	StatusCancelled    Status = "cancelled"
	StatusRescheduling Status = "rescheduling"
	StatusNoShow       Status = "no_show"
)

// BlockingStatuses occupy an artist's slot. Pending, rescheduling and
// terminal appointments never block.
var BlockingStatuses = []Status{StatusConfirmed, StatusInProgress}

func (s Status) IsTerminal() bool {
	switch s {
	case StatusCompleted, StatusCancelled, StatusNoShow:
		return true
	}
	return false
}

func (s Status) BlocksSlot() bool {
	return slices.Contains(BlockingStatuses, s)
}

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusInProgress, StatusCompleted,
		StatusCancelled, StatusRescheduling, StatusNoShow:
		return true
	}
	return false
}

// InitialStatus is pending when the artist still has to approve the
// booking and confirmed when staff books directly.
func InitialStatus(actor Actor) Status {
	if actor.IsStaff() {
		return StatusConfirmed
	}
	return StatusPending
}
