package routes

import (
	"context"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/fitdesk/scheduling-api/internal/cache"
	"github.com/fitdesk/scheduling-api/internal/calendar"
	"github.com/fitdesk/scheduling-api/internal/config"
	"github.com/fitdesk/scheduling-api/internal/handlers"
	infraRepo "github.com/fitdesk/scheduling-api/internal/infra/repository"
	"github.com/fitdesk/scheduling-api/internal/middleware"
	"github.com/fitdesk/scheduling-api/internal/notify"
	ucBooking "github.com/fitdesk/scheduling-api/internal/usecase/booking"
	ucClasses "github.com/fitdesk/scheduling-api/internal/usecase/classes"
)

func RegisterRoutes(
	r *gin.Engine,
	db *gorm.DB,
	cfg *config.Config,
	permCache cache.Cache,
	log *zap.Logger,
) {

	// ======================================================
	// INFRA
	// ======================================================
	bookingRepo := infraRepo.NewBookingGormRepository(db)
	classesRepo := infraRepo.NewClassesGormRepository(db)

	notifier := notify.NewDispatcher(notify.NewLogGateway(log), log)

	syncer := calendar.NewSyncer(
		calendar.NewNopAdapter(log),
		func(ctx context.Context, appointmentID uint, eventID string) error {
			return bookingRepo.SetExternalEventID(ctx, appointmentID, eventID)
		},
		log,
	)

	// ======================================================
	// USE CASES
	// ======================================================
	slotsUC := ucBooking.NewGetAvailableSlots(bookingRepo)
	createAppointmentUC := ucBooking.NewCreateAppointment(bookingRepo, notifier, syncer)
	updateAppointmentUC := ucBooking.NewUpdateAppointment(bookingRepo, syncer)
	appointmentStatusUC := ucBooking.NewUpdateAppointmentStatus(bookingRepo, notifier)

	enrollUC := ucClasses.NewEnrollClient(classesRepo, notifier)
	cancelEnrollmentUC := ucClasses.NewCancelEnrollment(classesRepo, notifier)
	checkinUC := ucClasses.NewCheckInClient(classesRepo)
	noShowUC := ucClasses.NewMarkNoShow(classesRepo)

	// ======================================================
	// HANDLERS
	// ======================================================
	availabilityHandler := handlers.NewAvailabilityHandler(db)
	appointmentHandler := handlers.NewAppointmentHandler(
		db,
		cfg.Timezone,
		slotsUC,
		createAppointmentUC,
		updateAppointmentUC,
		appointmentStatusUC,
	)
	classHandler := handlers.NewClassHandler(db)
	sessionHandler := handlers.NewSessionHandler(db, cfg.Timezone, notifier)
	enrollmentHandler := handlers.NewEnrollmentHandler(
		enrollUC,
		cancelEnrollmentUC,
		checkinUC,
		noShowUC,
	)

	staffOnly := middleware.RequireStaff(db, permCache, log)

	// ======================================================
	// API
	// ======================================================
	api := r.Group("/api")
	api.Use(middleware.AuthMiddleware(cfg))
	{
		booking := api.Group("/booking")
		{
			booking.GET("/slots", appointmentHandler.Slots)
			booking.GET("/today", appointmentHandler.Today)

			booking.GET("/appointments", appointmentHandler.List)
			booking.GET("/appointments/:id", appointmentHandler.Get)
			booking.POST("/appointments", appointmentHandler.Create)
			booking.PUT("/appointments/:id", appointmentHandler.Update)
			booking.PUT("/appointments/:id/status", appointmentHandler.UpdateStatus)
			booking.DELETE("/appointments/:id", appointmentHandler.Delete)

			booking.GET("/availability", availabilityHandler.Get)
			booking.GET("/availability/:userId", availabilityHandler.Get)
			booking.POST("/availability", availabilityHandler.Replace)
		}

		classes := api.Group("/classes")
		{
			classes.GET("", classHandler.List)
			classes.POST("", staffOnly, classHandler.Create)

			classes.GET("/sessions", sessionHandler.List)
			classes.POST("/sessions", staffOnly, sessionHandler.Create)
			classes.PUT("/sessions/:id/status", staffOnly, sessionHandler.UpdateStatus)
			classes.DELETE("/sessions/:id", staffOnly, sessionHandler.Delete)

			classes.POST("/sessions/:id/enroll", enrollmentHandler.Enroll)
			classes.DELETE("/sessions/:id/enroll", enrollmentHandler.Cancel)
			classes.POST("/sessions/:id/checkin", staffOnly, enrollmentHandler.CheckIn)
			classes.POST("/sessions/:id/no-show", staffOnly, enrollmentHandler.NoShow)

			classes.GET("/my-sessions", sessionHandler.MySessions)

			classes.GET("/:id", classHandler.Get)
			classes.PUT("/:id", staffOnly, classHandler.Update)
			classes.DELETE("/:id", staffOnly, classHandler.Delete)
		}
	}
}
