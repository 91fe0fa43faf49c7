package appointment

import (
	"github.com/BruksfildServices01/studio-scheduler/internal/calendar"
	"github.com/BruksfildServices01/studio-scheduler/internal/models"
)

type AvailabilityInput struct {
	StudioID uint
	ArtistID uint
	Date     string
	Duration int
}

// Availability is the outcome of a slot check. ConflictID is set only
// when Available is false.
type Availability struct {
	Available  bool `json:"available"`
	ConflictID uint `json:"conflict_id,omitempty"`
}

// CheckSlot decides whether artistID may hold s, given the appointments
// already on that artist's calendar. excludeID skips the appointment
// being moved. Only confirmed and in-progress appointments block, and
// ranges are half-open so back-to-back sessions fit.
func CheckSlot(artistID uint, s Schedule, excludeID uint, existing []models.Appointment) (Availability, error) {
	span, ok := s.Span()
	if !ok {
		return Availability{}, ErrInvalidSchedule
	}

	for i := range existing {
		other := &existing[i]
		if other.ID == excludeID || other.ArtistID != artistID || other.ScheduledDate != s.Date {
			continue
		}
		if !Status(other.Status).BlocksSlot() {
			continue
		}
		otherSpan, ok := ScheduleOf(other).Span()
		if !ok {
			continue
		}
		if span.Overlaps(otherSpan) {
			return Availability{Available: false, ConflictID: other.ID}, nil
		}
	}

	return Availability{Available: true}, nil
}

// AssertAvailable is CheckSlot as an error: nil or *ConflictError.
func AssertAvailable(artistID uint, s Schedule, excludeID uint, existing []models.Appointment) error {
	res, err := CheckSlot(artistID, s, excludeID, existing)
	if err != nil {
		return err
	}
	if !res.Available {
		return &ConflictError{ExistingID: res.ConflictID}
	}
	return nil
}

// BusySpans returns the blocking ranges of existing, for slot listing.
func BusySpans(existing []models.Appointment, excludeID uint) []calendar.Span {
	var out []calendar.Span
	for i := range existing {
		ap := &existing[i]
		if ap.ID == excludeID || !Status(ap.Status).BlocksSlot() {
			continue
		}
		if span, ok := ScheduleOf(ap).Span(); ok {
			out = append(out, span)
		}
	}
	return out
}

// WorkingDayFrom converts stored working hours. Inactive or incomplete
// rows yield false.
func WorkingDayFrom(wh *models.WorkingHours) (calendar.WorkingDay, bool) {
	if wh == nil || !wh.Active || wh.StartTime == "" || wh.EndTime == "" {
		return calendar.WorkingDay{}, false
	}
	start, err := calendar.ParseClock(wh.StartTime)
	if err != nil {
		return calendar.WorkingDay{}, false
	}
	end, err := calendar.ParseClock(wh.EndTime)
	if err != nil {
		return calendar.WorkingDay{}, false
	}

	wd := calendar.WorkingDay{Open: calendar.Span{Start: start, End: end}}
	if wh.LunchStart != "" && wh.LunchEnd != "" {
		ls, err1 := calendar.ParseClock(wh.LunchStart)
		le, err2 := calendar.ParseClock(wh.LunchEnd)
		if err1 == nil && err2 == nil {
			wd.Lunch = &calendar.Span{Start: ls, End: le}
		}
	}
	return wd, wd.Open.Valid()
}

// IsWithinWorkingHours checks s against the artist's working day,
// including the lunch break.
func IsWithinWorkingHours(wd calendar.WorkingDay, s Schedule) bool {
	span, ok := s.Span()
	if !ok || !wd.Open.Contains(span) {
		return false
	}
	if wd.Lunch != nil && span.Overlaps(*wd.Lunch) {
		return false
	}
	return true
}
