package appointment

import (
	"strings"
	"time"

	"github.com/BruksfildServices01/studio-scheduler/internal/calendar"
	"github.com/BruksfildServices01/studio-scheduler/internal/models"
)

// DefaultSessionMinutes is used when a time is given without an end
// and there is no previous duration to keep.
const DefaultSessionMinutes = 60

// Schedule is when an appointment happens: a date plus either an exact
// [Start, End) range or a coarse Period.
type Schedule struct {
	Date   string `json:"date"`
	Start  string `json:"start_time,omitempty"`
	End    string `json:"end_time,omitempty"`
	Period string `json:"period,omitempty"`
}

func ScheduleOf(ap *models.Appointment) Schedule {
	return Schedule{
		Date:   ap.ScheduledDate,
		Start:  ap.StartTime,
		End:    ap.EndTime,
		Period: ap.Period,
	}
}

func applySchedule(ap *models.Appointment, s Schedule) {
	ap.ScheduledDate = s.Date
	ap.StartTime = s.Start
	ap.EndTime = s.End
	ap.Period = s.Period
}

// IsEmpty reports whether neither a date nor a time was chosen.
func (s Schedule) IsEmpty() bool {
	return strings.TrimSpace(s.Date) == "" ||
		(strings.TrimSpace(s.Start) == "" && strings.TrimSpace(s.Period) == "")
}

// Normalize validates s and fills End when only Start was given, keeping
// fallbackMinutes as the duration.
func (s Schedule) Normalize(fallbackMinutes int) (Schedule, error) {
	if s.IsEmpty() {
		return Schedule{}, ErrMissingSlot
	}
	if _, err := time.Parse(calendar.DateFormat, s.Date); err != nil {
		return Schedule{}, ErrInvalidSchedule
	}

	if s.Start == "" {
		if _, err := calendar.ParsePeriod(s.Period); err != nil {
			return Schedule{}, ErrInvalidSchedule
		}
		s.End = ""
		return s, nil
	}

	start, err := calendar.ParseClock(s.Start)
	if err != nil {
		return Schedule{}, ErrInvalidSchedule
	}

	var end calendar.Clock
	if s.End == "" {
		if fallbackMinutes <= 0 {
			fallbackMinutes = DefaultSessionMinutes
		}
		end = start.Add(fallbackMinutes)
	} else if end, err = calendar.ParseClock(s.End); err != nil {
		return Schedule{}, ErrInvalidSchedule
	}

	span := calendar.Span{Start: start, End: end}
	if !span.Valid() || span.End > calendar.NewClock(24, 0) {
		return Schedule{}, ErrInvalidSchedule
	}

	s.Start = start.String()
	s.End = end.String()
	s.Period = ""
	if p, ok := calendar.PeriodOf(start); ok {
		s.Period = string(p)
	}
	return s, nil
}

// Span is the occupied part of the day. A period-only schedule occupies
// the whole period window.
func (s Schedule) Span() (calendar.Span, bool) {
	if s.Start != "" {
		start, err := calendar.ParseClock(s.Start)
		if err != nil {
			return calendar.Span{}, false
		}
		end, err := calendar.ParseClock(s.End)
		if err != nil {
			return calendar.Span{}, false
		}
		span := calendar.Span{Start: start, End: end}
		return span, span.Valid()
	}
	if p, err := calendar.ParsePeriod(s.Period); err == nil {
		return p.Span()
	}
	return calendar.Span{}, false
}

// Minutes is the duration of s, or zero when it has no exact range.
func (s Schedule) Minutes() int {
	if s.Start == "" {
		return 0
	}
	span, ok := s.Span()
	if !ok {
		return 0
	}
	return span.Minutes()
}

// StartsIn reports the instant s starts at in loc. Period-only
// schedules start at the beginning of the period.
func (s Schedule) StartsIn(loc *time.Location) (time.Time, bool) {
	date, err := time.ParseInLocation(calendar.DateFormat, s.Date, loc)
	if err != nil {
		return time.Time{}, false
	}
	span, ok := s.Span()
	if !ok {
		return time.Time{}, false
	}
	return date.Add(time.Duration(span.Start) * time.Minute), true
}

func (s Schedule) isPast(now time.Time) bool {
	date, err := time.ParseInLocation(calendar.DateFormat, s.Date, now.Location())
	if err != nil {
		return true
	}
	return calendar.IsPastDate(date, now)
}
