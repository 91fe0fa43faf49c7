package calendar

import "time"

// DaysInMonth returns the Gregorian day count of month in year.
func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// FirstWeekday returns the weekday of the 1st (0 = Sunday).
func FirstWeekday(year int, month time.Month) int {
	return int(time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).Weekday())
}

// IsPastDate compares calendar dates only; time of day is ignored.
func IsPastDate(candidate, today time.Time) bool {
	cy, cm, cd := candidate.Date()
	ty, tm, td := today.Date()
	if cy != ty {
		return cy < ty
	}
	if cm != tm {
		return cm < tm
	}
	return cd < td
}

// SameDate reports whether a and b fall on the same calendar date.
func SameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

type GridDay struct {
	Day  int    `json:"day"`
	Date string `json:"date"`
	Past bool   `json:"past"`
}

// MonthGrid is a 7-column layout of a month. Leading cells before the
// 1st are nil.
type MonthGrid struct {
	Year         int        `json:"year"`
	Month        int        `json:"month"`
	DaysInMonth  int        `json:"days_in_month"`
	FirstWeekday int        `json:"first_weekday"`
	Cells        []*GridDay `json:"cells"`
}

func BuildMonthGrid(year int, month time.Month, today time.Time) MonthGrid {
	days := DaysInMonth(year, month)
	first := FirstWeekday(year, month)

	cells := make([]*GridDay, first, first+days)
	for d := 1; d <= days; d++ {
		date := time.Date(year, month, d, 0, 0, 0, 0, today.Location())
		cells = append(cells, &GridDay{
			Day:  d,
			Date: date.Format(DateFormat),
			Past: IsPastDate(date, today),
		})
	}

	return MonthGrid{
		Year:         year,
		Month:        int(month),
		DaysInMonth:  days,
		FirstWeekday: first,
		Cells:        cells,
	}
}
