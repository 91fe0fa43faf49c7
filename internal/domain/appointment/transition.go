package appointment

import (
	"slices"

	"github.com/BruksfildServices01/studio-scheduler/internal/models"
)

// Action is an event that moves an appointment between statuses.
type Action string

const (
	ActionApprove           Action = "approve"
	ActionReject            Action = "reject"
	ActionRequestReschedule Action = "request_reschedule"
	ActionBeginSession      Action = "begin_session"
	ActionFinishSession     Action = "finish_session"
	ActionCancel            Action = "cancel"
	ActionMarkNoShow        Action = "mark_no_show"
	ActionAcceptReschedule  Action = "accept_reschedule"
	ActionRejectReschedule  Action = "reject_reschedule"
)

type rule struct {
	from  []Status
	to    Status
	roles []Role
}

var (
	staffRoles = []Role{RoleArtist, RoleManager}
	allRoles   = []Role{RoleClient, RoleArtist, RoleManager}
)

var rules = map[Action]rule{
	ActionApprove:           {from: []Status{StatusPending}, to: StatusConfirmed, roles: staffRoles},
	ActionReject:            {from: []Status{StatusPending}, to: StatusCancelled, roles: staffRoles},
	ActionRequestReschedule: {from: []Status{StatusConfirmed}, to: StatusRescheduling, roles: allRoles},
	ActionBeginSession:      {from: []Status{StatusConfirmed}, to: StatusInProgress, roles: staffRoles},
	ActionFinishSession:     {from: []Status{StatusInProgress}, to: StatusCompleted, roles: staffRoles},
	ActionCancel:            {from: []Status{StatusPending, StatusConfirmed, StatusRescheduling}, to: StatusCancelled, roles: allRoles},
	ActionMarkNoShow:        {from: []Status{StatusConfirmed}, to: StatusNoShow, roles: staffRoles},
	ActionAcceptReschedule:  {from: []Status{StatusRescheduling}, to: StatusConfirmed, roles: allRoles},
	ActionRejectReschedule:  {from: []Status{StatusRescheduling}, to: StatusConfirmed, roles: allRoles},
}

// AvailableActions lists what actor may attempt on ap right now,
// ignoring payload requirements.
func AvailableActions(ap *models.Appointment, actor Actor) []Action {
	order := []Action{
		ActionApprove, ActionReject, ActionBeginSession, ActionFinishSession,
		ActionMarkNoShow, ActionRequestReschedule, ActionAcceptReschedule,
		ActionRejectReschedule, ActionCancel,
	}
	var out []Action
	for _, a := range order {
		if guard(ap, actor, a) == nil {
			out = append(out, a)
		}
	}
	return out
}

// guard applies the checks shared by every transition, in order:
// terminal state, role, ownership, open negotiation, source state and,
// for resolutions, the counter-party rule.
func guard(ap *models.Appointment, actor Actor, action Action) error {
	current := Status(ap.Status)
	if current.IsTerminal() {
		return ErrInvalidTransition
	}

	r, ok := rules[action]
	if !ok {
		return ErrInvalidTransition
	}

	if !slices.Contains(r.roles, actor.Role) {
		return ErrRoleNotAllowed
	}
	if !actor.IsPartyTo(ap) {
		return ErrNotAParty
	}

	if action == ActionRequestReschedule && current == StatusRescheduling {
		return ErrAlreadyNegotiating
	}
	if !slices.Contains(r.from, current) {
		return ErrInvalidTransition
	}

	if action == ActionAcceptReschedule || action == ActionRejectReschedule {
		pc := ap.PendingChange
		if pc == nil {
			return ErrInvalidTransition
		}
		if Side(pc.RequestedBy) == actor.Side() {
			return ErrSelfApproval
		}
	}

	return nil
}
