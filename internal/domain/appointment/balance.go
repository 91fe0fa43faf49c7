package appointment

import (
	"fmt"

	"github.com/BruksfildServices01/studio-scheduler/internal/models"
)

// RemainingBalance is what the client still owes, never negative.
func RemainingBalance(priceCents, depositCents int64) int64 {
	return max(0, priceCents-depositCents)
}

func RecomputeBalance(ap *models.Appointment) {
	ap.RemainingCents = RemainingBalance(ap.PriceCents, ap.DepositCents)
}

// SetPayment updates price and deposit. Cancelled and no-show
// appointments are closed for edits.
func SetPayment(ap *models.Appointment, actor Actor, priceCents, depositCents int64) error {
	if !actor.IsStaff() {
		return ErrRoleNotAllowed
	}
	if !actor.IsPartyTo(ap) {
		return ErrNotAParty
	}
	if s := Status(ap.Status); s == StatusCancelled || s == StatusNoShow {
		return ErrPaymentLocked
	}
	if priceCents < 0 || depositCents < 0 {
		return ErrNegativeAmount
	}

	ap.PriceCents = priceCents
	ap.DepositCents = depositCents
	RecomputeBalance(ap)
	return nil
}

// FormatBRL renders cents as "R$ 1.200,00".
func FormatBRL(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}

	units := fmt.Sprintf("%d", cents/100)
	var grouped []byte
	for i := range len(units) {
		if i > 0 && (len(units)-i)%3 == 0 {
			grouped = append(grouped, '.')
		}
		grouped = append(grouped, units[i])
	}

	return fmt.Sprintf("%sR$ %s,%02d", sign, grouped, cents%100)
}
