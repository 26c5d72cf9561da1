package routes

import (
	"time"

	"opor-loyalty/internal/adapters/http/handlers"
	"opor-loyalty/internal/adapters/http/middleware"
	"opor-loyalty/internal/adapters/persistence/kv"
	"opor-loyalty/internal/config"
	"opor-loyalty/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// chefGreetingMaxAge lets the member app reuse a greeting between page loads
const chefGreetingMaxAge = 5 * time.Minute

// Dependencies holds the services the HTTP layer is built on
type Dependencies struct {
	Store            kv.Store
	AuthService      *services.AuthService
	MemberService    *services.MemberService
	BenefitService   *services.BenefitService
	ComplaintService *services.ComplaintService
	ChefService      *services.ChefService
	DashboardService *services.DashboardService
}

// Setup configures all routes for the application
func Setup(app *fiber.App, deps *Dependencies, cfg *config.Config) {
	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(deps.Store, cfg)
	authHandler := handlers.NewAuthHandler(deps.AuthService, cfg)
	memberHandler := handlers.NewMemberHandler(deps.MemberService, deps.BenefitService, deps.ComplaintService)
	chefHandler := handlers.NewChefHandler(deps.ChefService, deps.MemberService)
	adminMemberHandler := handlers.NewAdminMemberHandler(deps.MemberService)
	benefitHandler := handlers.NewBenefitHandler(deps.BenefitService)
	complaintHandler := handlers.NewComplaintHandler(deps.ComplaintService)
	dashboardHandler := handlers.NewDashboardHandler(deps.DashboardService)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	// Prometheus scrape endpoint
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// API v1 group
	apiV1 := app.Group("/api/v1")
	apiV1.Get("/", healthHandler.APIInfo)

	// Auth routes (public)
	authRoutes := apiV1.Group("/auth")
	setupAuthRoutes(authRoutes, authHandler)

	// Member routes (logged-in customer)
	meRoutes := apiV1.Group("/me")
	meRoutes.Use(middleware.AuthMiddleware(cfg))
	meRoutes.Use(middleware.MemberOnly())
	setupMemberRoutes(meRoutes, memberHandler, chefHandler)

	// Staff routes
	adminRoutes := apiV1.Group("/admin")
	adminRoutes.Use(middleware.AuthMiddleware(cfg))
	adminRoutes.Use(middleware.StaffOnly())
	adminRoutes.Use(middleware.NoCacheHeaders())
	setupAdminRoutes(adminRoutes, adminMemberHandler, benefitHandler, complaintHandler, dashboardHandler)
}

// setupAuthRoutes configures authentication routes
//
//	AuthRateLimiter   = 5 req/min/IP (phone login)
//	StrictRateLimiter = 3 req/min/IP (staff passphrase)
func setupAuthRoutes(router fiber.Router, handler *handlers.AuthHandler) {
	router.Post("/login", middleware.AuthRateLimiter(), handler.Login)
	router.Post("/staff", middleware.StrictRateLimiter(), handler.StaffLogin)
	router.Post("/logout", handler.Logout)
}

// setupMemberRoutes configures the customer's own routes
func setupMemberRoutes(router fiber.Router, memberHandler *handlers.MemberHandler, chefHandler *handlers.ChefHandler) {
	router.Get("/", middleware.NoCacheHeaders(), memberHandler.Profile)
	router.Get("/benefits", middleware.NoCacheHeaders(), memberHandler.Benefits)
	router.Post("/benefits/:id/redeem", memberHandler.Redeem)
	router.Get("/history", middleware.NoCacheHeaders(), memberHandler.History)
	router.Get("/complaints", middleware.NoCacheHeaders(), memberHandler.Complaints)
	router.Post("/complaints", memberHandler.SubmitComplaint)

	// Chef advice
	router.Get("/chef/greeting", middleware.PrivateCacheHeaders(chefGreetingMaxAge), chefHandler.Greeting)
	router.Post("/chef/chat", chefHandler.Chat)
}

// setupAdminRoutes configures staff routes
func setupAdminRoutes(
	router fiber.Router,
	memberHandler *handlers.AdminMemberHandler,
	benefitHandler *handlers.BenefitHandler,
	complaintHandler *handlers.ComplaintHandler,
	dashboardHandler *handlers.DashboardHandler,
) {
	router.Get("/dashboard", dashboardHandler.GetStaffDashboard)

	// Members
	router.Get("/members", memberHandler.ListMembers)
	router.Post("/members", memberHandler.CreateMember)
	router.Get("/members/:id", memberHandler.GetMember)
	router.Put("/members/:id", memberHandler.UpdateMember)
	router.Post("/members/:id/points", memberHandler.AddPoints)

	// Benefits
	router.Get("/benefits", benefitHandler.ListBenefits)
	router.Put("/benefits", benefitHandler.ReplaceBenefits)
	router.Post("/benefits", benefitHandler.CreateBenefit)
	router.Put("/benefits/:id", benefitHandler.UpdateBenefit)
	router.Delete("/benefits/:id", benefitHandler.DeleteBenefit)

	// Complaints
	router.Get("/complaints", complaintHandler.ListComplaints)
	router.Put("/complaints/:id/resolve", complaintHandler.ResolveComplaint)
}
