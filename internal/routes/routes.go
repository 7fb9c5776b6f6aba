package routes

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yeyakmania/booking-api/internal/config"
	domainAccount "github.com/yeyakmania/booking-api/internal/domain/account"
	"github.com/yeyakmania/booking-api/internal/handlers"
	"github.com/yeyakmania/booking-api/internal/middleware"
	"github.com/yeyakmania/booking-api/internal/usecase"
	ucAccount "github.com/yeyakmania/booking-api/internal/usecase/account"
	"github.com/yeyakmania/booking-api/internal/usecase/availability"
	ucCoaching "github.com/yeyakmania/booking-api/internal/usecase/coaching"
	ucCredit "github.com/yeyakmania/booking-api/internal/usecase/credit"
	ucInvitation "github.com/yeyakmania/booking-api/internal/usecase/invitation"
	ucReservation "github.com/yeyakmania/booking-api/internal/usecase/reservation"
	ucRole "github.com/yeyakmania/booking-api/internal/usecase/role"
)

const roleInstructor = "instructor"

// Infra is everything the HTTP layer needs from the outside world.
// BusyCache and Uploader may be nil.
type Infra struct {
	Deps      usecase.Deps
	BusyCache availability.BusyCache
	Identity  domainAccount.IdentityProvider
	States    domainAccount.StateStore
	Sealer    domainAccount.TokenSealer
	Uploader  domainAccount.ImageUploader
	AuditLogs handlers.AuditLister
	Logger    *slog.Logger
}

func RegisterRoutes(r *gin.Engine, infra Infra, cfg *config.Config) {
	deps := infra.Deps
	logger := infra.Logger

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(
		middleware.RequestID(),
		middleware.AccessLog(logger),
		middleware.CORSMiddleware(cfg),
	)

	// ======================================================
	// USE CASES
	// ======================================================
	tokens := ucAccount.NewTokenIssuer(cfg.JWTSecret, cfg.JWTTTL, deps.Now)
	googleLogin := ucAccount.NewGoogleLogin(deps, infra.Identity, infra.States, infra.Sealer, tokens)
	profile := ucAccount.NewProfile(deps, infra.Uploader)
	settings := ucAccount.NewSettings(deps)
	roles := ucRole.NewResolver(deps)

	calculator := availability.NewCalculator(deps, infra.BusyCache)
	coachings := ucCoaching.NewManager(deps)
	ledger := ucCredit.NewLedger(deps)
	templates := ucCredit.NewTemplates(deps)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(googleLogin, logger)
	meHandler := handlers.NewMeHandler(profile, settings, roles, tokens, logger)
	coachingHandler := handlers.NewCoachingHandler(coachings, logger)
	packageHandler := handlers.NewPackageHandler(ledger, templates, logger)
	availabilityHandler := handlers.NewAvailabilityHandler(calculator, logger)

	reservationHandler := handlers.NewReservationHandler(
		ucReservation.NewCreateReservation(deps),
		ucReservation.NewCancelReservation(deps),
		ucReservation.NewConfirmReservation(deps),
		ucReservation.NewCompleteReservation(deps),
		ucReservation.NewMarkAttendance(deps),
		ucReservation.NewListReservations(deps),
		logger,
	)

	invitationHandler := handlers.NewInvitationHandler(
		ucInvitation.NewCreateInvitation(deps),
		ucInvitation.NewAcceptInvitation(deps),
		ucInvitation.NewLookupInvitation(deps),
		logger,
	)

	auditLogsHandler := handlers.NewAuditLogsHandler(infra.AuditLogs, logger)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// PUBLIC
		// ------------------------------
		public := api.Group("/public")
		{
			public.GET("/invitations/:code", invitationHandler.Lookup)
			public.GET("/instructors/:id/coachings", coachingHandler.PublicList)
			public.GET("/instructors/:id/coachings/:slug", coachingHandler.PublicBySlug)
		}

		// ------------------------------
		// AUTH
		// ------------------------------
		api.GET("/auth/google/url", authHandler.GoogleURL)
		api.POST("/auth/google/callback", authHandler.GoogleCallback)

		// ------------------------------
		// SIGNED IN
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", meHandler.Get)
			secured.PATCH("/me", meHandler.Update)
			secured.PUT("/me/profile-image", meHandler.UploadImage)

			secured.GET("/me/roles", meHandler.Roles)
			secured.POST("/me/roles/initial", meHandler.SelectInitialRole)
			secured.POST("/me/roles", meHandler.AddRole)

			secured.GET("/instructors/:id/availability", availabilityHandler.Get)
			secured.GET("/instructors/:id/slots", availabilityHandler.Slots)

			secured.POST("/reservations", reservationHandler.Create)
			secured.GET("/reservations", reservationHandler.List)
			secured.GET("/reservations/month", reservationHandler.ListByMonth)
			secured.PATCH("/reservations/:id/cancel", reservationHandler.Cancel)

			secured.GET("/packages", packageHandler.List)
			secured.GET("/packages/:id", packageHandler.Get)

			secured.POST("/invitations/:code/accept", invitationHandler.Accept)
		}

		// ------------------------------
		// INSTRUCTOR ONLY
		// ------------------------------
		instructor := api.Group("/")
		instructor.Use(middleware.AuthMiddleware(cfg), middleware.RequireRole(roleInstructor))
		{
			instructor.GET("/me/settings", meHandler.GetSettings)
			instructor.PUT("/me/settings", meHandler.SaveSettings)
			instructor.GET("/me/audit-logs", auditLogsHandler.List)

			instructor.POST("/coachings", coachingHandler.Create)
			instructor.GET("/coachings", coachingHandler.List)
			instructor.PATCH("/coachings/:id", coachingHandler.Update)
			instructor.DELETE("/coachings/:id", coachingHandler.Delete)

			instructor.PATCH("/reservations/:id/confirm", reservationHandler.Confirm)
			instructor.PATCH("/reservations/:id/complete", reservationHandler.Complete)
			instructor.PATCH("/reservations/:id/attendance", reservationHandler.Attendance)

			instructor.POST("/packages", packageHandler.Create)
			instructor.PATCH("/packages/:id", packageHandler.Update)
			instructor.DELETE("/packages/:id", packageHandler.Delete)
			instructor.POST("/packages/:id/deduct", packageHandler.Deduct)
			instructor.POST("/packages/:id/refund", packageHandler.Refund)

			instructor.POST("/package-templates", packageHandler.CreateTemplate)
			instructor.GET("/package-templates", packageHandler.ListTemplates)
			instructor.PATCH("/package-templates/:id", packageHandler.UpdateTemplate)
			instructor.DELETE("/package-templates/:id", packageHandler.DeleteTemplate)

			instructor.POST("/invitations", invitationHandler.Create)
			instructor.GET("/invitations", invitationHandler.List)
		}
	}
}
