package calendar

import (
	"strconv"
	"time"

	"github.com/BruksfildServices01/studio-scheduler/internal/httperr"
)

// InputDateFormat is the masked form typed by users.
const InputDateFormat = "02/01/2006"

var (
	ErrInvalidFormat       = httperr.ErrBusiness("invalid_format")
	ErrInvalidCalendarDate = httperr.ErrBusiness("invalid_calendar_date")
	ErrPastDate            = httperr.ErrBusiness("past_date")
	ErrBelowMinimumAge     = httperr.ErrBusiness("below_minimum_age")
	ErrAboveMaximumAge     = httperr.ErrBusiness("above_maximum_age")
)

const (
	MinimumAge = 18
	MaximumAge = 120
)

// DateRules selects which checks ValidateDateString applies after the
// date itself is known to exist.
type DateRules struct {
	RejectPast bool
	MinAge     int
	MaxAge     int
}

var (
	BookingDateRules = DateRules{RejectPast: true}
	BirthDateRules   = DateRules{MinAge: MinimumAge, MaxAge: MaximumAge}
)

// ValidateDateString parses a DD/MM/YYYY value and applies rules
// relative to today. The returned date is midnight in today's location.
func ValidateDateString(input string, rules DateRules, today time.Time) (time.Time, error) {
	day, month, year, ok := splitMasked(input)
	if !ok {
		return time.Time{}, ErrInvalidFormat
	}

	if month < 1 || month > 12 || day < 1 || day > DaysInMonth(year, time.Month(month)) {
		return time.Time{}, ErrInvalidCalendarDate
	}

	date := time.Date(year, time.Month(month), day, 0, 0, 0, 0, today.Location())

	if rules.RejectPast && IsPastDate(date, today) {
		return time.Time{}, ErrPastDate
	}

	if rules.MinAge > 0 || rules.MaxAge > 0 {
		age := AgeOn(date, today)
		if rules.MinAge > 0 && age < rules.MinAge {
			return time.Time{}, ErrBelowMinimumAge
		}
		if rules.MaxAge > 0 && age > rules.MaxAge {
			return time.Time{}, ErrAboveMaximumAge
		}
	}

	return date, nil
}

// AgeOn returns completed years between birth and today, using the
// month/day of the birthday rather than plain year subtraction.
func AgeOn(birth, today time.Time) int {
	by, bm, bd := birth.Date()
	ty, tm, td := today.Date()

	age := ty - by
	if tm < bm || (tm == bm && td < bd) {
		age--
	}
	return age
}

// ParseISODate reads a YYYY-MM-DD date in loc.
func ParseISODate(s string, loc *time.Location) (time.Time, error) {
	d, err := time.ParseInLocation(DateFormat, s, loc)
	if err != nil {
		return time.Time{}, ErrInvalidFormat
	}
	return d, nil
}

func splitMasked(input string) (day, month, year int, ok bool) {
	if len(input) != len(InputDateFormat) || input[2] != '/' || input[5] != '/' {
		return 0, 0, 0, false
	}

	parts := [3]string{input[0:2], input[3:5], input[6:10]}
	var nums [3]int
	for i, p := range parts {
		for _, r := range p {
			if r < '0' || r > '9' {
				return 0, 0, 0, false
			}
		}
		n, err := strconv.Atoi(p)
		if err != nil {
			return 0, 0, 0, false
		}
		nums[i] = n
	}

	return nums[0], nums[1], nums[2], true
}
