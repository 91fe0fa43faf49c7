package appointment

import (
	"time"

	"github.com/BruksfildServices01/studio-scheduler/internal/models"
)

type stubReasons map[string]bool

func (s stubReasons) Allows(code string) bool { return s[code] }

var (
	testReasons = stubReasons{"schedule_conflict": true, "health": true}

	client      = Actor{UserID: 10, StudioID: 1, Role: RoleClient}
	otherClient = Actor{UserID: 11, StudioID: 1, Role: RoleClient}
	artist      = Actor{UserID: 20, StudioID: 1, Role: RoleArtist}
	otherArtist = Actor{UserID: 21, StudioID: 1, Role: RoleArtist}
	manager     = Actor{UserID: 30, StudioID: 1, Role: RoleManager}
	farManager  = Actor{UserID: 31, StudioID: 2, Role: RoleManager}

	testNow = time.Date(2025, 12, 15, 10, 0, 0, 0, time.UTC)
)

func newTestAppointment(status Status) *models.Appointment {
	ap := &models.Appointment{
		ID:            1,
		StudioID:      1,
		ClientID:      10,
		ArtistID:      20,
		Service:       "Fine line, antebraço",
		ScheduledDate: "2025-12-20",
		StartTime:     "13:00",
		EndTime:       "15:00",
		Period:        "afternoon",
		Status:        string(status),
		PriceCents:    120000,
		DepositCents:  40000,
	}
	RecomputeBalance(ap)
	if status == StatusRescheduling {
		ap.PendingChange = &models.PendingChange{
			AppointmentID: 1,
			ProposedDate:  "2025-12-22",
			ProposedTime:  "09:00",
			ProposedEnd:   "11:00",
			Reason:        "cliente solicitou",
			RequestedBy:   string(SideClient),
			RequesterID:   10,
			PriorDate:     "2025-12-20",
			PriorStart:    "13:00",
			PriorEnd:      "15:00",
			PriorPeriod:   "afternoon",
		}
	}
	return ap
}

var allStatuses = []Status{
	StatusPending, StatusConfirmed, StatusInProgress, StatusCompleted,
	StatusCancelled, StatusRescheduling, StatusNoShow,
}

var allActions = []Action{
	ActionApprove, ActionReject, ActionRequestReschedule, ActionBeginSession,
	ActionFinishSession, ActionCancel, ActionMarkNoShow, ActionAcceptReschedule,
	ActionRejectReschedule,
}

// apply runs action with a valid payload.
func apply(ap *models.Appointment, actor Actor, action Action) error {
	reason := Reason{Code: "schedule_conflict"}
	switch action {
	case ActionApprove:
		return Approve(ap, actor)
	case ActionReject:
		return Reject(ap, actor, reason, testReasons, testNow)
	case ActionRequestReschedule:
		return RequestReschedule(ap, actor, Proposal{
			Schedule: Schedule{Date: "2025-12-22", Start: "09:00"},
			Reason:   "cliente solicitou",
		}, testNow)
	case ActionBeginSession:
		return BeginSession(ap, actor, testNow)
	case ActionFinishSession:
		return FinishSession(ap, actor, testNow)
	case ActionCancel:
		return Cancel(ap, actor, reason, testReasons, testNow)
	case ActionMarkNoShow:
		return MarkNoShow(ap, actor, "")
	case ActionAcceptReschedule:
		return AcceptReschedule(ap, actor)
	case ActionRejectReschedule:
		return RejectReschedule(ap, actor)
	}
	panic("unknown action " + action)
}
