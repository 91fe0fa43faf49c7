package appointment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/studio-scheduler/internal/calendar"
	"github.com/BruksfildServices01/studio-scheduler/internal/httperr"
	"github.com/BruksfildServices01/studio-scheduler/internal/models"
)

func TestRequestRescheduleOpensNegotiation(t *testing.T) {
	ap := newTestAppointment(StatusConfirmed)

	err := RequestReschedule(ap, client, Proposal{
		Schedule: Schedule{Date: "2025-12-22", Start: "09:00"},
		Reason:   "cliente solicitou",
	}, testNow)
	require.NoError(t, err)

	assert.Equal(t, string(StatusRescheduling), ap.Status)
	require.NotNil(t, ap.PendingChange)
	assert.Equal(t, "2025-12-22", ap.PendingChange.ProposedDate)
	assert.Equal(t, "09:00", ap.PendingChange.ProposedTime)
	assert.Equal(t, "11:00", ap.PendingChange.ProposedEnd, "keeps the two hour duration")
	assert.Equal(t, string(SideClient), ap.PendingChange.RequestedBy)
	assert.Equal(t, "2025-12-20", ap.ScheduledDate, "schedule unchanged until accepted")
}

func TestSecondRequestFailsWithAlreadyNegotiating(t *testing.T) {
	ap := newTestAppointment(StatusConfirmed)
	require.NoError(t, RequestReschedule(ap, client, Proposal{
		Schedule: Schedule{Date: "2025-12-22", Start: "09:00"},
		Reason:   "cliente solicitou",
	}, testNow))
	first := *ap.PendingChange

	for _, actor := range []Actor{client, artist, manager} {
		err := RequestReschedule(ap, actor, Proposal{
			Schedule: Schedule{Date: "2025-12-23", Period: "morning"},
			Reason:   "outra data",
		}, testNow)
		assert.ErrorIs(t, err, ErrAlreadyNegotiating)
		assert.True(t, httperr.IsKind(err, httperr.KindAlreadyNegotiating))
		assert.Equal(t, first, *ap.PendingChange)
	}
}

func TestRequestRescheduleValidation(t *testing.T) {
	tests := []struct {
		name     string
		proposal Proposal
		want     error
	}{
		{"no reason", Proposal{Schedule: Schedule{Date: "2025-12-22", Start: "09:00"}}, ErrReasonRequired},
		{"no date", Proposal{Schedule: Schedule{Start: "09:00"}, Reason: "x"}, ErrMissingSlot},
		{"no time or period", Proposal{Schedule: Schedule{Date: "2025-12-22"}, Reason: "x"}, ErrMissingSlot},
		{"bad period", Proposal{Schedule: Schedule{Date: "2025-12-22", Period: "night"}, Reason: "x"}, ErrInvalidSchedule},
		{"end before start", Proposal{Schedule: Schedule{Date: "2025-12-22", Start: "10:00", End: "09:00"}, Reason: "x"}, ErrInvalidSchedule},
		{"past date", Proposal{Schedule: Schedule{Date: "2025-12-01", Start: "10:00"}, Reason: "x"}, calendar.ErrPastDate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ap := newTestAppointment(StatusConfirmed)
			err := RequestReschedule(ap, client, tt.proposal, testNow)
			assert.ErrorIs(t, err, tt.want)
			assert.True(t, httperr.IsKind(err, httperr.KindValidation))
			assert.Nil(t, ap.PendingChange)
			assert.Equal(t, string(StatusConfirmed), ap.Status)
		})
	}
}

func TestRescheduleOnlyFromConfirmed(t *testing.T) {
	for _, status := range []Status{StatusPending, StatusInProgress} {
		err := RequestReschedule(newTestAppointment(status), client, Proposal{
			Schedule: Schedule{Date: "2025-12-22", Period: "morning"},
			Reason:   "x",
		}, testNow)
		assert.ErrorIs(t, err, ErrInvalidTransition, status)
	}
}

func TestSelfApprovalForbidden(t *testing.T) {
	// Fixture proposal was requested by the client.
	for _, resolve := range []func(*models.Appointment, Actor) error{AcceptReschedule, RejectReschedule} {
		ap := newTestAppointment(StatusRescheduling)
		err := resolve(ap, client)
		assert.ErrorIs(t, err, ErrSelfApproval)
		assert.True(t, httperr.IsKind(err, httperr.KindUnauthorized))
		assert.Equal(t, string(StatusRescheduling), ap.Status)
	}

	ap := newTestAppointment(StatusConfirmed)
	require.NoError(t, RequestReschedule(ap, artist, Proposal{
		Schedule: Schedule{Date: "2025-12-22", Period: "evening"},
		Reason:   "viagem do tatuador",
	}, testNow))

	assert.ErrorIs(t, AcceptReschedule(ap, artist), ErrSelfApproval)
	assert.ErrorIs(t, AcceptReschedule(ap, manager), ErrSelfApproval, "manager speaks for the artist side")
	require.NoError(t, AcceptReschedule(ap, client))
	assert.Equal(t, "2025-12-22", ap.ScheduledDate)
	assert.Equal(t, "evening", ap.Period)
	assert.Empty(t, ap.StartTime)
}

func TestAcceptAdoptsProposal(t *testing.T) {
	ap := newTestAppointment(StatusRescheduling)
	require.NoError(t, AcceptReschedule(ap, artist))

	assert.Equal(t, string(StatusConfirmed), ap.Status)
	assert.Nil(t, ap.PendingChange)
	assert.Equal(t, "2025-12-22", ap.ScheduledDate)
	assert.Equal(t, "09:00", ap.StartTime)
	assert.Equal(t, "11:00", ap.EndTime)
}

func TestRejectRestoresPriorSchedule(t *testing.T) {
	ap := newTestAppointment(StatusRescheduling)
	ap.ScheduledDate = "2025-12-21"
	ap.StartTime = "16:00"
	ap.EndTime = "17:00"

	require.NoError(t, RejectReschedule(ap, artist))

	assert.Equal(t, string(StatusConfirmed), ap.Status)
	assert.Nil(t, ap.PendingChange)
	assert.Equal(t, "2025-12-20", ap.ScheduledDate)
	assert.Equal(t, "13:00", ap.StartTime)
	assert.Equal(t, "15:00", ap.EndTime)
}

func TestRejectedProposalNeedsFreshRequest(t *testing.T) {
	ap := newTestAppointment(StatusRescheduling)
	require.NoError(t, RejectReschedule(ap, artist))

	assert.ErrorIs(t, AcceptReschedule(ap, artist), ErrInvalidTransition)
	require.NoError(t, RequestReschedule(ap, client, Proposal{
		Schedule: Schedule{Date: "2025-12-23", Start: "14:00", End: "15:00"},
		Reason:   "nova tentativa",
	}, testNow))
	assert.Equal(t, string(StatusRescheduling), ap.Status)
}

func TestCancelDuringNegotiationClearsProposal(t *testing.T) {
	ap := newTestAppointment(StatusRescheduling)
	require.NoError(t, Cancel(ap, artist, Reason{Code: "health"}, testReasons, testNow))
	assert.Nil(t, ap.PendingChange)
	assert.Equal(t, string(StatusCancelled), ap.Status)
}
