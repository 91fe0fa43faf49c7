package calendar

import "time"

// WorkingDay is the bookable window of one artist on one weekday.
type WorkingDay struct {
	Open  Span
	Lunch *Span
}

type Slot struct {
	Start  string `json:"start"`
	End    string `json:"end"`
	Period Period `json:"period,omitempty"`
}

// DaySlots lists the slots of length duration inside wd, stepping by
// step minutes, skipping lunch, busy spans and, when date is today,
// starts that already passed.
func DaySlots(
	date time.Time,
	wd WorkingDay,
	duration int,
	step int,
	busy []Span,
	now time.Time,
) []Slot {
	if duration <= 0 || step <= 0 || !wd.Open.Valid() {
		return []Slot{}
	}
	if IsPastDate(date, now) {
		return []Slot{}
	}

	var cutoff Clock = -1
	if SameDate(date, now) {
		cutoff = NewClock(now.Hour(), now.Minute())
	}

	slots := []Slot{}
	for cur := wd.Open.Start; cur.Add(duration) <= wd.Open.End; cur = cur.Add(step) {
		candidate := Span{Start: cur, End: cur.Add(duration)}

		if cur < cutoff {
			continue
		}
		if wd.Lunch != nil && candidate.Overlaps(*wd.Lunch) {
			continue
		}
		if overlapsAny(candidate, busy) {
			continue
		}

		slot := Slot{Start: candidate.Start.String(), End: candidate.End.String()}
		if p, ok := PeriodOf(candidate.Start); ok {
			slot.Period = p
		}
		slots = append(slots, slot)
	}

	return slots
}

func overlapsAny(s Span, busy []Span) bool {
	for _, b := range busy {
		if s.Overlaps(b) {
			return true
		}
	}
	return false
}
