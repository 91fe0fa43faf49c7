package handlers

import (
	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/studio-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/studio-scheduler/internal/httperr"
	"github.com/BruksfildServices01/studio-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/studio-scheduler/internal/middleware"
	"github.com/BruksfildServices01/studio-scheduler/internal/models"
	ucAppointment "github.com/BruksfildServices01/studio-scheduler/internal/usecase/appointment"
)

type WorkingHoursHandler struct {
	uc *ucAppointment.WorkingHours
}

func NewWorkingHoursHandler(repo domain.Repository) *WorkingHoursHandler {
	return &WorkingHoursHandler{uc: ucAppointment.NewWorkingHours(repo)}
}

type WorkingDayConfig struct {
	Weekday    int    `json:"weekday" binding:"min=0,max=6"`
	Active     bool   `json:"active"`
	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
	LunchStart string `json:"lunch_start"`
	LunchEnd   string `json:"lunch_end"`
}

type WorkingHoursUpdateRequest struct {
	Days []WorkingDayConfig `json:"days" binding:"required,dive"`
}

func (h *WorkingHoursHandler) Get(c *gin.Context) {
	hours, err := h.uc.List(c.Request.Context(), middleware.ActorFrom(c))
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	if hours == nil {
		hours = []models.WorkingHours{}
	}
	httpresp.OK(c, hours)
}

func (h *WorkingHoursHandler) Update(c *gin.Context) {
	var req WorkingHoursUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	toSave := make([]models.WorkingHours, 0, len(req.Days))
	for _, d := range req.Days {
		toSave = append(toSave, models.WorkingHours{
			Weekday:    d.Weekday,
			Active:     d.Active,
			StartTime:  d.StartTime,
			EndTime:    d.EndTime,
			LunchStart: d.LunchStart,
			LunchEnd:   d.LunchEnd,
		})
	}

	saved, err := h.uc.Replace(c.Request.Context(), middleware.ActorFrom(c), toSave)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, saved)
}
