package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/studio-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/studio-scheduler/internal/dto"
	"github.com/BruksfildServices01/studio-scheduler/internal/httperr"
	"github.com/BruksfildServices01/studio-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/studio-scheduler/internal/middleware"
	"github.com/BruksfildServices01/studio-scheduler/internal/models"
	"github.com/BruksfildServices01/studio-scheduler/internal/reasons"
	ucAppointment "github.com/BruksfildServices01/studio-scheduler/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	create      *ucAppointment.CreateAppointment
	get         *ucAppointment.GetAppointment
	listByDate  *ucAppointment.ListAppointmentsByDate
	listByMonth *ucAppointment.ListAppointmentsByMonth
	history     *ucAppointment.ListHistory

	approve  *ucAppointment.ApproveAppointment
	reject   *ucAppointment.RejectAppointment
	cancel   *ucAppointment.CancelAppointment
	begin    *ucAppointment.BeginSession
	complete *ucAppointment.CompleteAppointment
	noShow   *ucAppointment.MarkNoShow

	reschedule *ucAppointment.RequestReschedule
	resolve    *ucAppointment.ResolveReschedule

	payment  *ucAppointment.UpdatePayment
	notes    *ucAppointment.UpdateNotes
	incident *ucAppointment.ReportIncident
}

func NewAppointmentHandler(
	t *ucAppointment.Transitioner,
	repo domain.Repository,
	catalog *reasons.Catalog,
) *AppointmentHandler {
	return &AppointmentHandler{
		create:      ucAppointment.NewCreateAppointment(t),
		get:         ucAppointment.NewGetAppointment(repo),
		listByDate:  ucAppointment.NewListAppointmentsByDate(repo),
		listByMonth: ucAppointment.NewListAppointmentsByMonth(repo),
		history:     ucAppointment.NewListHistory(repo),

		approve:  ucAppointment.NewApproveAppointment(t),
		reject:   ucAppointment.NewRejectAppointment(t, catalog.Rejection),
		cancel:   ucAppointment.NewCancelAppointment(t, catalog.Cancellation),
		begin:    ucAppointment.NewBeginSession(t),
		complete: ucAppointment.NewCompleteAppointment(t),
		noShow:   ucAppointment.NewMarkNoShow(t),

		reschedule: ucAppointment.NewRequestReschedule(t),
		resolve:    ucAppointment.NewResolveReschedule(t),

		payment:  ucAppointment.NewUpdatePayment(t),
		notes:    ucAppointment.NewUpdateNotes(t),
		incident: ucAppointment.NewReportIncident(repo, catalog.Incident),
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	ClientID     uint   `json:"client_id"`
	ArtistID     uint   `json:"artist_id" binding:"required"`
	Service      string `json:"service" binding:"required"`
	Date         string `json:"date" binding:"required"`
	StartTime    string `json:"start_time"`
	EndTime      string `json:"end_time"`
	Period       string `json:"period"`
	PriceCents   int64  `json:"price_cents"`
	DepositCents int64  `json:"deposit_cents"`
	Notes        string `json:"notes"`
}

type ReasonRequest struct {
	Code string `json:"code"`
	Note string `json:"note"`
}

type NoShowRequest struct {
	Note string `json:"note"`
}

type RescheduleRequest struct {
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Period    string `json:"period"`
	Reason    string `json:"reason"`
}

type PaymentRequest struct {
	PriceCents   *int64 `json:"price_cents" binding:"required"`
	DepositCents *int64 `json:"deposit_cents" binding:"required"`
}

type NotesRequest struct {
	Notes string `json:"notes"`
}

type IncidentRequest struct {
	Category string `json:"category"`
	Note     string `json:"note"`
}

// ======================================================
// HELPERS
// ======================================================

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return 0, false
	}
	return uint(id), true
}

func queryUint(c *gin.Context, key string) (uint, bool) {
	raw := c.Query(key)
	if raw == "" {
		return 0, true
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_"+key, "Parâmetro inválido.")
		return 0, false
	}
	return uint(v), true
}

// respondError adds the id of the appointment holding the slot to
// conflict responses.
func respondError(c *gin.Context, err error) {
	var ce *domain.ConflictError
	if errors.As(err, &ce) {
		c.JSON(http.StatusConflict, gin.H{
			"error_code":              "slot_conflict",
			"kind":                    httperr.KindSlotConflict,
			"message":                 "Conflito de horário com outro agendamento.",
			"existing_appointment_id": ce.ExistingID,
		})
		return
	}
	httperr.FromError(c, err)
}

func (h *AppointmentHandler) respond(c *gin.Context, status int, ap *models.Appointment, err error) {
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(status, dto.NewAppointmentDTO(ap, middleware.ActorFrom(c)))
}

// bindOptional accepts an empty body.
func bindOptional(c *gin.Context, req any) bool {
	if c.Request.ContentLength == 0 {
		return true
	}
	if err := c.ShouldBindJSON(req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return false
	}
	return true
}

// ======================================================
// CREATE / READ
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	ap, err := h.create.Execute(c.Request.Context(), middleware.ActorFrom(c), domain.NewAppointmentInput{
		ClientID: req.ClientID,
		ArtistID: req.ArtistID,
		Service:  req.Service,
		Schedule: domain.Schedule{
			Date:   req.Date,
			Start:  req.StartTime,
			End:    req.EndTime,
			Period: req.Period,
		},
		PriceCents:   req.PriceCents,
		DepositCents: req.DepositCents,
		Notes:        req.Notes,
	})
	h.respond(c, http.StatusCreated, ap, err)
}

func (h *AppointmentHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	ap, err := h.get.Execute(c.Request.Context(), middleware.ActorFrom(c), id)
	h.respond(c, http.StatusOK, ap, err)
}

// ListByDate serves GET /appointments?date=YYYY-MM-DD&artist_id=.
func (h *AppointmentHandler) ListByDate(c *gin.Context) {
	artistID, ok := queryUint(c, "artist_id")
	if !ok {
		return
	}

	actor := middleware.ActorFrom(c)
	list, err := h.listByDate.Execute(c.Request.Context(), actor, c.Query("date"), artistID)
	if err != nil {
		respondError(c, err)
		return
	}

	httpresp.List(c, dto.NewAppointmentListDTO(list, actor))
}

func (h *AppointmentHandler) ListByMonth(c *gin.Context) {
	year, err1 := strconv.Atoi(c.Query("year"))
	month, err2 := strconv.Atoi(c.Query("month"))
	if err1 != nil || err2 != nil {
		httperr.BadRequest(c, "invalid_month", "Ano ou mês inválido.")
		return
	}
	artistID, ok := queryUint(c, "artist_id")
	if !ok {
		return
	}

	actor := middleware.ActorFrom(c)
	list, err := h.listByMonth.Execute(c.Request.Context(), actor, year, month, artistID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"year":  year,
		"month": month,
		"data":  dto.NewAppointmentListDTO(list, actor),
		"total": len(list),
	})
}

func (h *AppointmentHandler) History(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	events, err := h.history.Execute(c.Request.Context(), middleware.ActorFrom(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	httpresp.List(c, events)
}

// ======================================================
// TRANSITIONS
// ======================================================

func (h *AppointmentHandler) Approve(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	ap, err := h.approve.Execute(c.Request.Context(), middleware.ActorFrom(c), id)
	h.respond(c, http.StatusOK, ap, err)
}

func (h *AppointmentHandler) Reject(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req ReasonRequest
	if !bindOptional(c, &req) {
		return
	}
	ap, err := h.reject.Execute(c.Request.Context(), middleware.ActorFrom(c), id,
		domain.Reason{Code: req.Code, Note: req.Note})
	h.respond(c, http.StatusOK, ap, err)
}

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req ReasonRequest
	if !bindOptional(c, &req) {
		return
	}
	ap, err := h.cancel.Execute(c.Request.Context(), middleware.ActorFrom(c), id,
		domain.Reason{Code: req.Code, Note: req.Note})
	h.respond(c, http.StatusOK, ap, err)
}

func (h *AppointmentHandler) Begin(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	ap, err := h.begin.Execute(c.Request.Context(), middleware.ActorFrom(c), id)
	h.respond(c, http.StatusOK, ap, err)
}

func (h *AppointmentHandler) Finish(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	ap, err := h.complete.Execute(c.Request.Context(), middleware.ActorFrom(c), id)
	h.respond(c, http.StatusOK, ap, err)
}

func (h *AppointmentHandler) NoShow(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req NoShowRequest
	if !bindOptional(c, &req) {
		return
	}
	ap, err := h.noShow.Execute(c.Request.Context(), middleware.ActorFrom(c), id, req.Note)
	h.respond(c, http.StatusOK, ap, err)
}

// ======================================================
// NEGOTIATION
// ======================================================

func (h *AppointmentHandler) RequestReschedule(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req RescheduleRequest
	if !bindOptional(c, &req) {
		return
	}
	ap, err := h.reschedule.Execute(c.Request.Context(), middleware.ActorFrom(c), id, domain.Proposal{
		Schedule: domain.Schedule{
			Date:   req.Date,
			Start:  req.StartTime,
			End:    req.EndTime,
			Period: req.Period,
		},
		Reason: req.Reason,
	})
	h.respond(c, http.StatusOK, ap, err)
}

func (h *AppointmentHandler) AcceptReschedule(c *gin.Context) {
	h.resolveReschedule(c, true)
}

func (h *AppointmentHandler) RejectReschedule(c *gin.Context) {
	h.resolveReschedule(c, false)
}

func (h *AppointmentHandler) resolveReschedule(c *gin.Context, accept bool) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	ap, err := h.resolve.Execute(c.Request.Context(), middleware.ActorFrom(c), id, accept)
	h.respond(c, http.StatusOK, ap, err)
}

// ======================================================
// SATELLITE DATA
// ======================================================

func (h *AppointmentHandler) UpdatePayment(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}
	ap, err := h.payment.Execute(c.Request.Context(), middleware.ActorFrom(c), id, *req.PriceCents, *req.DepositCents)
	h.respond(c, http.StatusOK, ap, err)
}

func (h *AppointmentHandler) UpdateNotes(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req NotesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}
	ap, err := h.notes.Execute(c.Request.Context(), middleware.ActorFrom(c), id, req.Notes)
	h.respond(c, http.StatusOK, ap, err)
}

func (h *AppointmentHandler) ReportIncident(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req IncidentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}
	report, err := h.incident.Execute(c.Request.Context(), middleware.ActorFrom(c), id,
		domain.Reason{Code: req.Category, Note: req.Note})
	if err != nil {
		respondError(c, err)
		return
	}
	httpresp.Created(c, report)
}
