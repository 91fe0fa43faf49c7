package appointment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRemainingBalanceClampsAtZero(t *testing.T) {
	ap := newTestAppointment(StatusPending)
	assert.Equal(t, int64(80000), ap.RemainingCents)

	require.NoError(t, SetPayment(ap, artist, 120000, 130000))
	assert.Equal(t, int64(0), ap.RemainingCents)
	assert.Equal(t, "R$ 0,00", FormatBRL(ap.RemainingCents))
	assert.NoError(t, CheckInvariants(ap))
}

func TestSetPaymentRules(t *testing.T) {
	ap := newTestAppointment(StatusConfirmed)
	assert.ErrorIs(t, SetPayment(ap, client, 1, 0), ErrRoleNotAllowed)
	assert.ErrorIs(t, SetPayment(ap, otherArtist, 1, 0), ErrNotAParty)
	assert.ErrorIs(t, SetPayment(ap, artist, -1, 0), ErrNegativeAmount)
	assert.ErrorIs(t, SetPayment(ap, artist, 1, -1), ErrNegativeAmount)
	assert.Equal(t, int64(120000), ap.PriceCents)

	assert.ErrorIs(t, SetPayment(newTestAppointment(StatusCancelled), artist, 1, 0), ErrPaymentLocked)
	assert.NoError(t, SetPayment(newTestAppointment(StatusCompleted), manager, 150000, 150000))
}

func TestBalanceInvariantAcrossTransitions(t *testing.T) {
	for _, status := range allStatuses {
		for _, action := range allActions {
			ap := newTestAppointment(status)
			_ = apply(ap, artist, action)
			assert.Equal(t, RemainingBalance(ap.PriceCents, ap.DepositCents), ap.RemainingCents)
		}
	}
}

func TestFormatBRL(t *testing.T) {
	assert.Equal(t, "R$ 1.200,00", FormatBRL(120000))
	assert.Equal(t, "R$ 400,00", FormatBRL(40000))
	assert.Equal(t, "R$ 0,05", FormatBRL(5))
	assert.Equal(t, "R$ 1.234.567,89", FormatBRL(123456789))
	assert.Equal(t, "-R$ 10,00", FormatBRL(-1000))
}
