package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/slotcal/slotcal-api/internal/audit"
	"github.com/slotcal/slotcal-api/internal/cache"
	"github.com/slotcal/slotcal-api/internal/config"
	"github.com/slotcal/slotcal-api/internal/handlers"
	infraRepo "github.com/slotcal/slotcal-api/internal/infra/repository"
	"github.com/slotcal/slotcal-api/internal/mailer"
	"github.com/slotcal/slotcal-api/internal/middleware"
	ucBooking "github.com/slotcal/slotcal-api/internal/usecase/booking"
)

func RegisterRoutes(
	r *gin.Engine,
	db *gorm.DB,
	cfg *config.Config,
	sender mailer.Sender,
	pageCache *cache.Cache,
) {

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	bookingRepo := infraRepo.NewBookingGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	// ======================================================
	// USE CASES — BOOKINGS
	// ======================================================
	createTemplateUC := ucBooking.NewCreateTemplate(bookingRepo, auditDispatcher)
	claimSlotUC := ucBooking.NewClaimSlot(bookingRepo, sender, auditDispatcher)
	updateBookingUC := ucBooking.NewUpdateBooking(bookingRepo, auditDispatcher)
	cancelBookingUC := ucBooking.NewCancelBooking(bookingRepo, auditDispatcher)
	deleteBookingUC := ucBooking.NewDeleteBooking(bookingRepo, auditDispatcher)
	listBookingsUC := ucBooking.NewListBookings(bookingRepo)
	getBookingUC := ucBooking.NewGetBooking(bookingRepo)
	publicLookupUC := ucBooking.NewPublicLookup(bookingRepo)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)

	bookingHandler := handlers.NewBookingHandler(
		createTemplateUC,
		listBookingsUC,
		getBookingUC,
		updateBookingUC,
		cancelBookingUC,
		deleteBookingUC,
		pageCache,
	)

	publicHandler := handlers.NewPublicHandler(
		publicLookupUC,
		claimSlotUC,
		pageCache,
	)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// PUBLIC
		// ------------------------------
		api.GET("/public/:username/:slug", publicHandler.GetBookingPage)
		api.POST("/public/schedule", publicHandler.Schedule)

		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// PRIVATE
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me/bookings", bookingHandler.List)
			secured.POST("/me/bookings", bookingHandler.Create)
			secured.GET("/me/bookings/:id", bookingHandler.Get)
			secured.PATCH("/me/bookings/:id", bookingHandler.Update)
			secured.DELETE("/me/bookings/:id", bookingHandler.Delete)
			secured.PATCH("/me/bookings/:id/cancel", bookingHandler.Cancel)
		}
	}
}
