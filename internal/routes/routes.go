package routes

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/studio-scheduler/internal/audit"
	"github.com/BruksfildServices01/studio-scheduler/internal/config"
	domain "github.com/BruksfildServices01/studio-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/studio-scheduler/internal/events"
	"github.com/BruksfildServices01/studio-scheduler/internal/handlers"
	infraRepo "github.com/BruksfildServices01/studio-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/studio-scheduler/internal/lock"
	"github.com/BruksfildServices01/studio-scheduler/internal/metrics"
	"github.com/BruksfildServices01/studio-scheduler/internal/middleware"
	"github.com/BruksfildServices01/studio-scheduler/internal/reasons"
	ucAppointment "github.com/BruksfildServices01/studio-scheduler/internal/usecase/appointment"
)

// Deps are the process-wide services built in main.
type Deps struct {
	Logger  *slog.Logger
	Locker  lock.Locker
	Events  events.Publisher
	Metrics *metrics.TransitionMetrics
	Reasons *reasons.Catalog
	Audit   *audit.Logger
}

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, deps Deps) {

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORSMiddleware())

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(db)

	transitioner := ucAppointment.NewTransitioner(
		appointmentRepo,
		deps.Locker,
		deps.Events,
		deps.Metrics,
		deps.Logger,
	)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	meHandler := handlers.NewMeHandler(db)
	studioHandler := handlers.NewStudioHandler(db)
	publicHandler := handlers.NewPublicHandler(db)

	appointmentHandler := handlers.NewAppointmentHandler(
		transitioner,
		appointmentRepo,
		deps.Reasons,
	)
	calendarHandler := handlers.NewCalendarHandler(appointmentRepo, cfg.SlotStepMinutes)
	workingHoursHandler := handlers.NewWorkingHoursHandler(appointmentRepo)
	reasonsHandler := handlers.NewReasonsHandler(deps.Reasons)
	auditLogsHandler := handlers.NewAuditLogsHandler(deps.Audit)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// API PÚBLICA
		// ------------------------------
		api.GET("/public/studios/:slug", publicHandler.GetStudio)

		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/register-client", authHandler.RegisterClient)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// API PRIVADA
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			RegisterSecured(secured, appointmentHandler, calendarHandler, workingHoursHandler, reasonsHandler)

			secured.GET("/me", meHandler.GetMe)
			secured.GET("/artists", studioHandler.ListArtists)

			manager := secured.Group("/")
			manager.Use(middleware.RequireRole(domain.RoleManager))
			{
				manager.GET("/me/studio", studioHandler.GetStudio)
				manager.PATCH("/me/studio", studioHandler.UpdateStudio)
				manager.POST("/me/artists", studioHandler.CreateArtist)
				manager.GET("/me/audit-logs", auditLogsHandler.List)
			}
		}
	}
}

// RegisterSecured mounts the scheduling routes on a group that already
// authenticates the caller.
func RegisterSecured(
	g *gin.RouterGroup,
	appointments *handlers.AppointmentHandler,
	cal *handlers.CalendarHandler,
	hours *handlers.WorkingHoursHandler,
	reasonsH *handlers.ReasonsHandler,
) {
	g.GET("/reasons", reasonsH.List)

	// ------------------------------
	// CALENDAR
	// ------------------------------
	g.GET("/calendar/:year/:month", cal.Month)
	g.POST("/calendar/validate-date", cal.ValidateDate)
	g.GET("/artists/:id/slots", cal.Slots)

	g.GET("/me/working-hours", hours.Get)
	g.PUT("/me/working-hours", hours.Update)

	// ------------------------------
	// APPOINTMENTS
	// ------------------------------
	g.POST("/appointments", appointments.Create)
	g.GET("/appointments", appointments.ListByDate)
	g.GET("/appointments/month", appointments.ListByMonth)
	g.GET("/appointments/:id", appointments.Get)
	g.GET("/appointments/:id/history", appointments.History)

	g.POST("/appointments/:id/approve", appointments.Approve)
	g.POST("/appointments/:id/reject", appointments.Reject)
	g.POST("/appointments/:id/cancel", appointments.Cancel)
	g.POST("/appointments/:id/begin", appointments.Begin)
	g.POST("/appointments/:id/finish", appointments.Finish)
	g.POST("/appointments/:id/no-show", appointments.NoShow)

	g.POST("/appointments/:id/reschedule", appointments.RequestReschedule)
	g.POST("/appointments/:id/reschedule/accept", appointments.AcceptReschedule)
	g.POST("/appointments/:id/reschedule/reject", appointments.RejectReschedule)

	g.PATCH("/appointments/:id/payment", appointments.UpdatePayment)
	g.PATCH("/appointments/:id/notes", appointments.UpdateNotes)
	g.POST("/appointments/:id/incidents", appointments.ReportIncident)
}
