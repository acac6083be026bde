package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/bellagenda/salon-scheduler/internal/config"
	"github.com/bellagenda/salon-scheduler/internal/domain/identity"
	"github.com/bellagenda/salon-scheduler/internal/handlers"
	infraRepo "github.com/bellagenda/salon-scheduler/internal/infra/repository"
	"github.com/bellagenda/salon-scheduler/internal/middleware"
	"github.com/bellagenda/salon-scheduler/internal/realtime"
	ucAppointment "github.com/bellagenda/salon-scheduler/internal/usecase/appointment"
	ucReview "github.com/bellagenda/salon-scheduler/internal/usecase/review"
)

func RegisterRoutes(
	r *gin.Engine,
	db *gorm.DB,
	cfg *config.Config,
	hub *realtime.Hub,
	dispatcher *realtime.Dispatcher,
) {

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(db)
	reviewRepo := infraRepo.NewReviewGormRepository(db)

	// ======================================================
	// USE CASES
	// ======================================================
	createAppointmentUC := ucAppointment.NewCreateAppointment(appointmentRepo, dispatcher)
	cancelAppointmentUC := ucAppointment.NewCancelAppointment(appointmentRepo, dispatcher)
	rescheduleAppointmentUC := ucAppointment.NewRescheduleAppointment(appointmentRepo, dispatcher)
	startAppointmentUC := ucAppointment.NewStartAppointment(appointmentRepo, dispatcher)
	completeAppointmentUC := ucAppointment.NewCompleteAppointment(appointmentRepo, dispatcher)
	noShowAppointmentUC := ucAppointment.NewNoShowAppointment(appointmentRepo)
	availabilityUC := ucAppointment.NewGetAvailability(appointmentRepo, cfg.SlotsRespectDaysOff)

	createReviewUC := ucReview.NewCreateReview(reviewRepo)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	salonHandler := handlers.NewSalonHandler(db)
	professionalHandler := handlers.NewProfessionalHandler(db)
	serviceHandler := handlers.NewServiceHandler(db)
	clientHandler := handlers.NewClientHandler(db)
	notificationHandler := handlers.NewNotificationHandler(db)
	reviewHandler := handlers.NewReviewHandler(db, createReviewUC)

	appointmentHandler := handlers.NewAppointmentHandler(
		db,
		appointmentRepo,
		createAppointmentUC,
		cancelAppointmentUC,
		rescheduleAppointmentUC,
		startAppointmentUC,
		completeAppointmentUC,
		noShowAppointmentUC,
		availabilityUC,
	)

	wsHandler := realtime.NewWSHandler(hub, cfg.JWTSecret)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)
		api.POST("/auth/refresh", authHandler.Refresh)

		// ------------------------------
		// API PÚBLICA (leitura)
		// ------------------------------
		public := api.Group("/")
		public.Use(middleware.OptionalAuthMiddleware(cfg))
		{
			public.GET("/salons", salonHandler.List)
			public.GET("/salons/:id", salonHandler.Get)

			public.GET("/professionals", professionalHandler.List)
			public.GET("/professionals/:id", professionalHandler.Get)
			public.GET("/professionals/:id/schedule", professionalHandler.GetSchedule)

			public.GET("/services", serviceHandler.List)

			public.GET("/reviews/professional/:id", reviewHandler.ListByProfessional)
			public.GET("/reviews/salon/:id", reviewHandler.ListBySalon)

			public.GET("/appointments/available-slots/:professionalId/:date", appointmentHandler.AvailableSlots)
		}

		// ------------------------------
		// API PRIVADA
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/auth/me", authHandler.GetMe)

			// APPOINTMENTS
			secured.GET("/appointments", appointmentHandler.List)
			secured.GET("/appointments/:id", appointmentHandler.Get)
			secured.POST("/appointments", appointmentHandler.Create)
			secured.PATCH("/appointments/:id/cancel", appointmentHandler.Cancel)
			secured.PATCH("/appointments/:id/reschedule", appointmentHandler.Reschedule)

			staff := secured.Group("/")
			staff.Use(middleware.RequireRoles(identity.RoleProfessional, identity.RoleSalon))
			{
				staff.PATCH("/appointments/:id/start", appointmentHandler.Start)
				staff.PATCH("/appointments/:id/complete", appointmentHandler.Complete)
				staff.PATCH("/appointments/:id/no-show", appointmentHandler.NoShow)
			}

			// SALONS
			secured.PATCH("/salons/:id", middleware.RequireRoles(identity.RoleSalon), salonHandler.Update)

			// PROFESSIONALS
			owner := secured.Group("/")
			owner.Use(middleware.RequireRoles(identity.RoleSalon))
			{
				owner.POST("/professionals", professionalHandler.Create)
				owner.PUT("/professionals/:id", professionalHandler.Update)
				owner.DELETE("/professionals/:id", professionalHandler.Delete)
			}
			secured.PUT("/professionals/:id/schedule",
				middleware.RequireRoles(identity.RoleSalon, identity.RoleProfessional),
				professionalHandler.UpdateSchedule)
			secured.GET("/professionals/:id/stats",
				middleware.RequireRoles(identity.RoleSalon, identity.RoleProfessional),
				professionalHandler.Stats)

			// SERVICES
			secured.POST("/services", middleware.RequireRoles(identity.RoleSalon), serviceHandler.Create)
			secured.PUT("/services/:id", middleware.RequireRoles(identity.RoleSalon), serviceHandler.Update)
			secured.DELETE("/services/:id", middleware.RequireRoles(identity.RoleSalon), serviceHandler.Delete)

			// CLIENTS
			secured.GET("/clients", middleware.RequireRoles(identity.RoleSalon), clientHandler.List)
			secured.GET("/clients/:id",
				middleware.RequireRoles(identity.RoleSalon, identity.RoleProfessional),
				clientHandler.Get)
			secured.PATCH("/clients/me", middleware.RequireRoles(identity.RoleClient), clientHandler.UpdateMe)

			// REVIEWS
			secured.POST("/reviews", middleware.RequireRoles(identity.RoleClient), reviewHandler.Create)
			secured.GET("/reviews/can-review/:appointmentId", reviewHandler.CanReview)

			// NOTIFICATIONS
			secured.GET("/notifications", notificationHandler.List)
			secured.PATCH("/notifications/:id/read", notificationHandler.MarkRead)
			secured.PATCH("/notifications/read-all", notificationHandler.ReadAll)
			secured.DELETE("/notifications/:id", notificationHandler.Delete)
		}
	}

	// ======================================================
	// REALTIME
	// ======================================================
	r.GET("/ws", wsHandler.Serve)
}
