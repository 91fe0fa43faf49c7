package calendar

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/BruksfildServices01/studio-scheduler/internal/httperr"
)

const (
	TimeFormat = "15:04"
	DateFormat = "2006-01-02"
)

// Clock is a time of day in minutes after midnight.
type Clock int

func NewClock(hour, minute int) Clock {
	return Clock(hour*60 + minute)
}

var ErrInvalidClock = httperr.ErrBusiness("invalid_time")

// ParseClock reads an "HH:MM" value. 24:00 is accepted as end of day.
func ParseClock(s string) (Clock, error) {
	h, m, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok || len(h) != 2 || len(m) != 2 {
		return 0, ErrInvalidClock
	}
	hour, err := strconv.Atoi(h)
	if err != nil {
		return 0, ErrInvalidClock
	}
	minute, err := strconv.Atoi(m)
	if err != nil {
		return 0, ErrInvalidClock
	}
	if hour < 0 || minute < 0 || minute > 59 || hour > 24 || (hour == 24 && minute != 0) {
		return 0, ErrInvalidClock
	}
	return NewClock(hour, minute), nil
}

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", int(c)/60, int(c)%60)
}

func (c Clock) Add(minutes int) Clock {
	return c + Clock(minutes)
}

// Span is a half-open [Start, End) range within one day.
type Span struct {
	Start Clock
	End   Clock
}

func (s Span) Valid() bool {
	return s.Start < s.End
}

func (s Span) Minutes() int {
	return int(s.End - s.Start)
}

// Overlaps treats both spans as half-open, so touching spans do not overlap.
func (s Span) Overlaps(o Span) bool {
	return s.Start < o.End && o.Start < s.End
}

func (s Span) Contains(o Span) bool {
	return s.Start <= o.Start && o.End <= s.End
}
