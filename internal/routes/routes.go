package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-marketplace/internal/audit"
	"github.com/BruksfildServices01/barber-marketplace/internal/authz"
	"github.com/BruksfildServices01/barber-marketplace/internal/chat"
	"github.com/BruksfildServices01/barber-marketplace/internal/config"
	"github.com/BruksfildServices01/barber-marketplace/internal/handlers"
	infraRepo "github.com/BruksfildServices01/barber-marketplace/internal/infra/repository"
	"github.com/BruksfildServices01/barber-marketplace/internal/middleware"
	"github.com/BruksfildServices01/barber-marketplace/internal/notification"
	"github.com/BruksfildServices01/barber-marketplace/internal/timezone"
	ucAppointment "github.com/BruksfildServices01/barber-marketplace/internal/usecase/appointment"
)

func RegisterRoutes(
	r *gin.Engine,
	db *gorm.DB,
	cfg *config.Config,
	norm *timezone.Normalizer,
) {

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(db)
	guard := authz.NewGuard(db)
	chatSvc := chat.NewService(db)
	notifSvc := notification.NewService(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	// ======================================================
	// USE CASES — APPOINTMENTS
	// ======================================================
	createUC := ucAppointment.NewCreateAppointment(
		appointmentRepo, norm, cfg.CivilTimezone, auditDispatcher,
	)
	cancelUC := ucAppointment.NewCancelAppointment(
		appointmentRepo, guard, cfg.CivilTimezone, auditDispatcher,
	)
	completeUC := ucAppointment.NewCompleteAppointment(
		appointmentRepo, guard, cfg.CivilTimezone, auditDispatcher,
	)
	noShowUC := ucAppointment.NewMarkNoShow(
		appointmentRepo, guard, auditDispatcher,
	)
	paymentUC := ucAppointment.NewMarkPayment(
		appointmentRepo, guard, cfg.CivilTimezone,
	)
	notesUC := ucAppointment.NewUpdateNotes(appointmentRepo, guard)
	deleteUC := ucAppointment.NewDeleteAppointment(
		appointmentRepo, guard, auditDispatcher,
	)
	listUC := ucAppointment.NewListAppointmentsByDate(
		appointmentRepo, norm, cfg.CivilTimezone,
	)
	blockUC := ucAppointment.NewBlockSchedule(
		appointmentRepo, guard, norm, cfg.CivilTimezone, auditDispatcher,
	)
	rescheduleUC := ucAppointment.NewReschedule(
		appointmentRepo, guard, norm, cfg.CivilTimezone, chatSvc,
	)
	hideUC := ucAppointment.NewHideClientHistory(
		appointmentRepo, cfg.CivilTimezone,
	)
	purgeUC := ucAppointment.NewPurgeBarberHistory(
		appointmentRepo, guard, cfg.CivilTimezone, auditDispatcher,
	)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	appointmentHandler := handlers.NewAppointmentHandler(
		createUC, cancelUC, completeUC, noShowUC,
		paymentUC, notesUC, deleteUC, listUC,
	)
	blockHandler := handlers.NewBlockHandler(blockUC)
	rescheduleHandler := handlers.NewRescheduleHandler(rescheduleUC)
	historyHandler := handlers.NewHistoryHandler(
		hideUC, purgeUC, notifSvc, cfg.CivilTimezone,
	)
	breakHandler := handlers.NewBreakHandler(db)
	auditLogsHandler := handlers.NewAuditLogsHandler(db, guard)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			// ------------------------------
			// APPOINTMENTS
			// ------------------------------
			secured.POST("/appointments", appointmentHandler.Create)
			secured.GET("/appointments", appointmentHandler.ListByDate)
			secured.PUT("/appointments/:id/cancel", appointmentHandler.Cancel)
			secured.PUT("/appointments/:id/complete", appointmentHandler.Complete)
			secured.PUT("/appointments/:id/no-show", appointmentHandler.NoShow)
			secured.PUT("/appointments/:id/payment", appointmentHandler.MarkPayment)
			secured.PUT("/appointments/:id/notes", appointmentHandler.UpdateNotes)
			secured.DELETE("/appointments/:id", appointmentHandler.Delete)

			// ------------------------------
			// RESCHEDULE NEGOTIATION
			// ------------------------------
			secured.POST("/appointments/:id/propose", rescheduleHandler.Propose)
			secured.POST("/notifications/:id/respond", rescheduleHandler.Respond)

			// ------------------------------
			// SCHEDULE BLOCKS / BREAKS
			// ------------------------------
			secured.POST("/blocks/day-off", blockHandler.DayOff)
			secured.POST("/blocks/leave-early", blockHandler.LeaveEarly)
			secured.GET("/breaks", breakHandler.List)
			secured.PUT("/breaks", breakHandler.Update)

			// ------------------------------
			// HISTORY / RETENTION
			// ------------------------------
			secured.POST("/history/hide", historyHandler.Hide)
			secured.DELETE("/barbers/:id/history", historyHandler.PurgeBarberHistory)
			secured.POST("/notifications/clear", historyHandler.ClearNotifications)

			secured.GET("/audit-logs", auditLogsHandler.List)
		}
	}
}
