package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/studio-scheduler/internal/calendar"
	domain "github.com/BruksfildServices01/studio-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/studio-scheduler/internal/httperr"
	"github.com/BruksfildServices01/studio-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/studio-scheduler/internal/middleware"
	"github.com/BruksfildServices01/studio-scheduler/internal/timezone"
	ucAppointment "github.com/BruksfildServices01/studio-scheduler/internal/usecase/appointment"
)

// CalendarHandler serves the date picker: month grids, typed date
// validation and free slots of an artist.
type CalendarHandler struct {
	repo  domain.Repository
	slots *ucAppointment.GetAvailability
	clock func() time.Time
}

func NewCalendarHandler(repo domain.Repository, slotStepMinutes int) *CalendarHandler {
	return &CalendarHandler{
		repo:  repo,
		slots: ucAppointment.NewGetAvailability(repo, slotStepMinutes),
		clock: time.Now,
	}
}

// WithClock replaces the time source. Used by tests.
func (h *CalendarHandler) WithClock(clock func() time.Time) *CalendarHandler {
	h.clock = clock
	h.slots.WithClock(clock)
	return h
}

type ValidateDateRequest struct {
	Date string `json:"date" binding:"required"`
	// Kind is "booking" (default) or "birth".
	Kind string `json:"kind"`
}

func (h *CalendarHandler) today(c *gin.Context) (time.Time, bool) {
	studio, err := h.repo.GetStudioByID(c.Request.Context(), middleware.ActorFrom(c).StudioID)
	if err != nil {
		httperr.FromError(c, err)
		return time.Time{}, false
	}
	now := h.clock().In(timezone.Location(studio.Timezone))
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()), true
}

// Month serves GET /calendar/:year/:month.
func (h *CalendarHandler) Month(c *gin.Context) {
	year, err1 := strconv.Atoi(c.Param("year"))
	month, err2 := strconv.Atoi(c.Param("month"))
	if err1 != nil || err2 != nil || year < 1 || month < 1 || month > 12 {
		httperr.BadRequest(c, "invalid_month", "Ano ou mês inválido.")
		return
	}

	today, ok := h.today(c)
	if !ok {
		return
	}

	httpresp.OK(c, calendar.BuildMonthGrid(year, time.Month(month), today))
}

func (h *CalendarHandler) ValidateDate(c *gin.Context) {
	var req ValidateDateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	rules := calendar.BookingDateRules
	switch req.Kind {
	case "", "booking":
	case "birth":
		rules = calendar.BirthDateRules
	default:
		httperr.BadRequest(c, "invalid_kind", "Tipo de data inválido.")
		return
	}

	today, ok := h.today(c)
	if !ok {
		return
	}

	date, err := calendar.ValidateDateString(req.Date, rules, today)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, gin.H{
		"valid": true,
		"date":  date.Format(calendar.DateFormat),
	})
}

// Slots serves GET /artists/:id/slots?date=YYYY-MM-DD&duration=N.
func (h *CalendarHandler) Slots(c *gin.Context) {
	artistID, ok := parseID(c)
	if !ok {
		return
	}

	duration := 0
	if raw := c.Query("duration"); raw != "" {
		d, err := strconv.Atoi(raw)
		if err != nil || d <= 0 {
			httperr.BadRequest(c, "invalid_duration", "Duração inválida.")
			return
		}
		duration = d
	}

	actor := middleware.ActorFrom(c)
	date := c.Query("date")
	slots, err := h.slots.Execute(c.Request.Context(), actor, domain.AvailabilityInput{
		StudioID: actor.StudioID,
		ArtistID: artistID,
		Date:     date,
		Duration: duration,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, gin.H{
		"artist_id": artistID,
		"date":      date,
		"slots":     slots,
	})
}
