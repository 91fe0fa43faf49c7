package calendar

import "github.com/BruksfildServices01/studio-scheduler/internal/httperr"

// Period is a coarse part of the day used when a caller does not pick
// an exact time.
type Period string

const (
	PeriodMorning   Period = "morning"
	PeriodAfternoon Period = "afternoon"
	PeriodEvening   Period = "evening"
)

var periodSpans = map[Period]Span{
	PeriodMorning:   {Start: NewClock(8, 0), End: NewClock(12, 0)},
	PeriodAfternoon: {Start: NewClock(12, 0), End: NewClock(18, 0)},
	PeriodEvening:   {Start: NewClock(18, 0), End: NewClock(22, 0)},
}

var ErrInvalidPeriod = httperr.ErrBusiness("invalid_period")

func ParsePeriod(s string) (Period, error) {
	p := Period(s)
	if _, ok := periodSpans[p]; !ok {
		return "", ErrInvalidPeriod
	}
	return p, nil
}

// Span returns the window a period covers.
func (p Period) Span() (Span, bool) {
	s, ok := periodSpans[p]
	return s, ok
}

// PeriodOf returns the period a time of day starts in. Times outside
// every window return false.
func PeriodOf(c Clock) (Period, bool) {
	for _, p := range []Period{PeriodMorning, PeriodAfternoon, PeriodEvening} {
		s := periodSpans[p]
		if c >= s.Start && c < s.End {
			return p, true
		}
	}
	return "", false
}
