package appointment

import (
	"context"

	"github.com/BruksfildServices01/studio-scheduler/internal/calendar"
	domain "github.com/BruksfildServices01/studio-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/studio-scheduler/internal/httperr"
	"github.com/BruksfildServices01/studio-scheduler/internal/models"
)

var (
	ErrInvalidWeekday      = httperr.ErrBusiness("invalid_weekday")
	ErrDuplicateWeekday    = httperr.ErrBusiness("duplicate_weekday")
	ErrInvalidWorkingHours = httperr.ErrBusiness("invalid_working_hours")
	ErrInvalidLunch        = httperr.ErrBusiness("invalid_lunch")
)

type WorkingHours struct {
	repo domain.Repository
}

func NewWorkingHours(repo domain.Repository) *WorkingHours {
	return &WorkingHours{repo: repo}
}

func (uc *WorkingHours) List(
	ctx context.Context,
	actor domain.Actor,
) ([]models.WorkingHours, error) {

	if actor.Role != domain.RoleArtist {
		return nil, domain.ErrRoleNotAllowed
	}
	return uc.repo.ListWorkingHours(ctx, actor.UserID)
}

// Replace swaps the artist's whole week for hours.
func (uc *WorkingHours) Replace(
	ctx context.Context,
	actor domain.Actor,
	hours []models.WorkingHours,
) ([]models.WorkingHours, error) {

	if actor.Role != domain.RoleArtist {
		return nil, domain.ErrRoleNotAllowed
	}
	if err := ValidateWeek(hours); err != nil {
		return nil, err
	}
	if err := uc.repo.ReplaceWorkingHours(ctx, actor.UserID, hours); err != nil {
		return nil, err
	}
	return hours, nil
}

// ValidateWeek checks one row per weekday with a sane day and lunch.
// Inactive rows may leave times empty.
func ValidateWeek(hours []models.WorkingHours) error {
	seen := make(map[int]bool, len(hours))
	for _, wh := range hours {
		if wh.Weekday < 0 || wh.Weekday > 6 {
			return ErrInvalidWeekday
		}
		if seen[wh.Weekday] {
			return ErrDuplicateWeekday
		}
		seen[wh.Weekday] = true

		if !wh.Active && wh.StartTime == "" && wh.EndTime == "" {
			continue
		}

		start, err1 := calendar.ParseClock(wh.StartTime)
		end, err2 := calendar.ParseClock(wh.EndTime)
		day := calendar.Span{Start: start, End: end}
		if err1 != nil || err2 != nil || !day.Valid() {
			return ErrInvalidWorkingHours
		}

		if wh.LunchStart == "" && wh.LunchEnd == "" {
			continue
		}
		ls, err1 := calendar.ParseClock(wh.LunchStart)
		le, err2 := calendar.ParseClock(wh.LunchEnd)
		lunch := calendar.Span{Start: ls, End: le}
		if err1 != nil || err2 != nil || !lunch.Valid() || !day.Contains(lunch) {
			return ErrInvalidLunch
		}
	}
	return nil
}
