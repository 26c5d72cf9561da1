package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"opor-loyalty/internal/adapters/genai"
	"opor-loyalty/internal/adapters/http/middleware"
	"opor-loyalty/internal/adapters/http/routes"
	"opor-loyalty/internal/adapters/persistence/repositories"
	"opor-loyalty/internal/config"
	"opor-loyalty/internal/core/services"

	"github.com/gofiber/fiber/v2"

	_ "opor-loyalty/docs" // Swagger docs
)

// @title Opor Pochana Loyalty API
// @version 1.0
// @description ระบบสมาชิกร้าน Opor Pochana Loyalty v1.0 API
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.email support@oporpochana.com

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host api.oporpochana.com
// @BasePath /api/v1
// @schemes https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load configuration: %v", err)
	}

	// Connect to the key-value store
	store, closeStore, err := config.OpenStore(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to open store: %v", err)
	}
	defer closeStore()

	seeder, err := config.NewSeeder()
	if err != nil {
		log.Fatalf("❌ Failed to load seed data: %v", err)
	}

	// Initialize repositories
	opts := repositories.Options{
		Namespace:  cfg.Store.Namespace,
		MaxRetries: cfg.Store.MaxRetries,
	}
	memberRepo := repositories.NewMemberRepository(store, opts, seeder.Members)
	benefitRepo := repositories.NewBenefitRepository(store, opts, seeder.Benefits)
	complaintRepo := repositories.NewComplaintRepository(store, opts)

	// Seed first-run data
	seedCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := seeder.Run(seedCtx, memberRepo, benefitRepo); err != nil {
		log.Printf("⚠️ Warning: Failed to seed store: %v", err)
	}
	cancel()

	// Initialize services
	notifyService := services.NewNotificationService(cfg.Notify.LineNotifyToken)
	if !notifyService.IsEnabled() {
		log.Println("⚠️ LINE_NOTIFY_TOKEN not set, staff notifications disabled")
	}

	gemini, err := genai.NewGeminiClient(context.Background(), cfg.Chef.APIKey, cfg.Chef.BaseURL, cfg.Chef.Model)
	if err != nil {
		log.Fatalf("❌ Failed to init Gemini client: %v", err)
	}
	if cfg.Chef.APIKey == "" {
		log.Println("⚠️ GEMINI_API_KEY not set, chef replies use fallback text")
	}

	benefitService := services.NewBenefitService(benefitRepo, seeder.Benefits)
	memberService := services.NewMemberService(memberRepo, benefitService, seeder.Members, cfg.Store.LookupDelay)
	complaintService := services.NewComplaintService(complaintRepo, notifyService)
	chefService := services.NewChefService(gemini)
	dashboardService := services.NewDashboardService(memberService, benefitService, complaintService)

	authService, err := services.NewAuthService(memberService, cfg)
	if err != nil {
		log.Fatalf("❌ Failed to init auth: %v", err)
	}

	// Start Cron Service for the staff LINE digest (08:30 daily by default)
	cronService := services.NewCronService(complaintService, benefitService, notifyService, cfg.Cron.DigestSpec)
	if err := cronService.Start(); err != nil {
		log.Printf("⚠️ Warning: Failed to start cron: %v", err)
	}
	defer cronService.Stop()

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Opor Pochana Loyalty API v1.0",
		ErrorHandler: middleware.CustomErrorHandler,
	})

	// Setup middlewares
	middleware.Setup(app, cfg)

	// Setup routes
	routes.Setup(app, &routes.Dependencies{
		Store:            store,
		AuthService:      authService,
		MemberService:    memberService,
		BenefitService:   benefitService,
		ComplaintService: complaintService,
		ChefService:      chefService,
		DashboardService: dashboardService,
	}, cfg)

	// Graceful shutdown
	go gracefulShutdown(app)

	// Start server
	log.Printf("🚀 Server starting on port %s [MODE: %s]", cfg.Port, cfg.AppMode)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

// gracefulShutdown handles graceful shutdown
func gracefulShutdown(app *fiber.App) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Printf("❌ Error during shutdown: %v", err)
	}
	log.Println("✅ Server stopped gracefully")
}
