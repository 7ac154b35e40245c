package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/praxishq/praxis-api/internal/application/service"
	"github.com/praxishq/praxis-api/internal/config"
	"github.com/praxishq/praxis-api/internal/infrastructure/database"
	"github.com/praxishq/praxis-api/internal/infrastructure/repository"
	"github.com/praxishq/praxis-api/internal/presentation/http/handler"
	"github.com/praxishq/praxis-api/internal/presentation/http/routes"
	"github.com/praxishq/praxis-api/pkg/email"
	"github.com/praxishq/praxis-api/pkg/oauth"
	"github.com/praxishq/praxis-api/pkg/utils"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Seed default data
	if err := database.SeedDefaultData(db); err != nil {
		log.Printf("Warning: Failed to seed default data: %v", err)
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.ExpiryHours,
		cfg.JWT.RefreshExpiryHours,
	)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	roleRepo := repository.NewRoleRepository(db)
	permissionRepo := repository.NewPermissionRepository(db)
	passwordResetRepo := repository.NewPasswordResetTokenRepository(db)
	clientRepo := repository.NewClientRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	timesheetRepo := repository.NewTimesheetRepository(db)
	proposalRepo := repository.NewProposalRepository(db)
	proposalItemRepo := repository.NewProposalItemRepository(db)
	invoiceRepo := repository.NewInvoiceRepository(db)
	invoiceItemRepo := repository.NewInvoiceItemRepository(db)
	recurringRepo := repository.NewRecurringRepository(db)
	compensationRepo := repository.NewCompensationRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	analyticsRepo := repository.NewAnalyticsRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)

	// Initialize email service
	emailService := email.NewEmailService(email.EmailConfig{
		SMTPHost:     cfg.Email.SMTPHost,
		SMTPPort:     cfg.Email.SMTPPort,
		SMTPUsername: cfg.Email.SMTPUsername,
		SMTPPassword: cfg.Email.SMTPPassword,
		FromName:     cfg.Email.FromName,
		FromEmail:    cfg.Email.FromEmail,
		FrontendURL:  cfg.Email.FrontendURL,
	})

	// Initialize Google OAuth service
	googleOAuthService := oauth.NewGoogleOAuthService(oauth.GoogleOAuthConfig{
		ClientID:           cfg.OAuth.GoogleClientID,
		ClientSecret:       cfg.OAuth.GoogleClientSecret,
		RedirectURL:        cfg.OAuth.GoogleRedirectURL,
		FrontendSuccessURL: cfg.OAuth.FrontendSuccessURL,
		FrontendErrorURL:   cfg.OAuth.FrontendErrorURL,
	})

	// Initialize services
	authService := service.NewAuthService(userRepo, roleRepo, passwordResetRepo, jwtManager, emailService, googleOAuthService)
	clientService := service.NewClientService(clientRepo, userRepo)
	projectService := service.NewProjectService(projectRepo, clientRepo)
	timesheetService := service.NewTimesheetService(timesheetRepo, projectRepo, userRepo)
	proposalService := service.NewProposalService(proposalRepo, proposalItemRepo, clientRepo, recurringRepo)
	invoiceService := service.NewInvoiceService(invoiceRepo, invoiceItemRepo, clientRepo, projectRepo)
	recurringService := service.NewRecurringService(recurringRepo, invoiceRepo, clientRepo, notificationRepo)
	compensationService := service.NewCompensationService(compensationRepo, timesheetRepo, invoiceRepo, userRepo)
	notificationService := service.NewNotificationService(notificationRepo)
	dashboardService := service.NewDashboardService(analyticsRepo)
	settingsService := service.NewSettingsService(settingsRepo)
	userService := service.NewUserService(userRepo, roleRepo, permissionRepo)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:         handler.NewAuthHandler(authService),
		Client:       handler.NewClientHandler(clientService),
		Project:      handler.NewProjectHandler(projectService),
		Timesheet:    handler.NewTimesheetHandler(timesheetService),
		Proposal:     handler.NewProposalHandler(proposalService),
		Invoice:      handler.NewInvoiceHandler(invoiceService),
		Recurring:    handler.NewRecurringHandler(recurringService),
		Compensation: handler.NewCompensationHandler(compensationService),
		Notification: handler.NewNotificationHandler(notificationService),
		Dashboard:    handler.NewDashboardHandler(dashboardService),
		Settings:     handler.NewSettingsHandler(settingsService),
		User:         handler.NewUserHandler(userService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
	})

	// Get port from environment or use default
	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting %s server on port %s...", cfg.App.Name, port)
	log.Printf("Environment: %s", cfg.App.Env)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
		os.Exit(1)
	}
}
