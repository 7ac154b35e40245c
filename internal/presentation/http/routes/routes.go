package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/praxishq/praxis-api/internal/config"
	domainRepo "github.com/praxishq/praxis-api/internal/domain/repository"
	"github.com/praxishq/praxis-api/internal/presentation/http/handler"
	"github.com/praxishq/praxis-api/internal/presentation/http/middleware"
	"github.com/praxishq/praxis-api/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth         *handler.AuthHandler
	Client       *handler.ClientHandler
	Project      *handler.ProjectHandler
	Timesheet    *handler.TimesheetHandler
	Proposal     *handler.ProposalHandler
	Invoice      *handler.InvoiceHandler
	Recurring    *handler.RecurringHandler
	Compensation *handler.CompensationHandler
	Notification *handler.NotificationHandler
	Dashboard    *handler.DashboardHandler
	Settings     *handler.SettingsHandler
	User         *handler.UserHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Public routes (no authentication required)
		registerAuthRoutes(v1, h)

		// Scheduler routes (shared-secret authentication)
		registerCronRoutes(v1, h, deps)

		// Protected routes (authentication required)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))

		// Per-user rate limiter
		rateLimiter := middleware.NewUserRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
			BurstSize:         deps.Cfg.RateLimit.Requests,
			CleanupInterval:   5 * time.Minute,
			EntryTTL:          10 * time.Minute,
		})
		protected.Use(rateLimiter.Middleware())

		registerProtectedRoutes(protected, h, deps)
	}

	return router
}

func registerAuthRoutes(v1 *gin.RouterGroup, h *Handlers) {
	auth := v1.Group("/auth")
	{
		auth.POST("/login", h.Auth.Login)
		auth.POST("/register", h.Auth.Register)
		auth.POST("/refresh", h.Auth.RefreshToken)
		auth.POST("/forgot-password", h.Auth.ForgotPassword)
		auth.POST("/reset-password", h.Auth.ResetPassword)
		// Google OAuth routes
		auth.GET("/google", h.Auth.GoogleAuth)
		auth.GET("/google/callback", h.Auth.GoogleCallback)
	}
}

func registerCronRoutes(v1 *gin.RouterGroup, h *Handlers, deps *Deps) {
	cron := v1.Group("/cron")
	cron.Use(middleware.CronAuth(deps.Cfg.Cron.Secret))
	{
		cron.POST("/recurring-invoices", h.Recurring.Run)
	}
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	// Auth/Profile routes
	protected.POST("/auth/logout", h.Auth.Logout)
	protected.GET("/profile", h.Auth.GetProfile)
	protected.PUT("/profile", h.Auth.UpdateProfile)
	protected.PUT("/profile/password", h.Auth.ChangePassword)

	// Settings
	protected.GET("/settings", h.Settings.GetSettings)
	protected.PUT("/settings", h.Settings.UpdateSettings)

	// Notifications
	registerNotificationRoutes(protected, h)

	// Dashboard
	registerDashboardRoutes(protected, h)

	// Clients
	registerClientRoutes(protected, h)

	// Projects
	registerProjectRoutes(protected, h)

	// Timesheets
	registerTimesheetRoutes(protected, h)

	// Proposals
	registerProposalRoutes(protected, h)

	// Invoices
	registerInvoiceRoutes(protected, h, deps)

	// Compensation
	registerCompensationRoutes(protected, h)

	// Users (Admin)
	registerUserRoutes(protected, h)

	// Roles (Admin)
	registerRoleRoutes(protected, h)

	// Permissions (Admin)
	registerPermissionRoutes(protected, h)
}

func registerNotificationRoutes(protected *gin.RouterGroup, h *Handlers) {
	notifications := protected.Group("/notifications")
	{
		notifications.GET("", h.Notification.List)
		notifications.GET("/unread-count", h.Notification.CountUnread)
		notifications.POST("/:id/read", h.Notification.MarkRead)
		notifications.POST("/read-all", h.Notification.MarkAllRead)
	}
}

func registerDashboardRoutes(protected *gin.RouterGroup, h *Handlers) {
	dashboard := protected.Group("/dashboard")
	dashboard.Use(middleware.RequirePermission("view-dashboard"))
	{
		dashboard.GET("/stats", h.Dashboard.GetStats)
	}
}

func registerClientRoutes(protected *gin.RouterGroup, h *Handlers) {
	clients := protected.Group("/clients")
	clients.Use(middleware.RequirePermission("manage-clients"))
	{
		clients.GET("", h.Client.List)
		clients.POST("", h.Client.Create)
		clients.GET("/:id", h.Client.Get)
		clients.PUT("/:id", h.Client.Update)
		clients.POST("/:id/convert", h.Client.Convert)
		clients.POST("/:id/archive", h.Client.Archive)
		clients.DELETE("/:id", h.Client.Delete)
	}
}

func registerProjectRoutes(protected *gin.RouterGroup, h *Handlers) {
	projects := protected.Group("/projects")
	projects.Use(middleware.RequirePermission("manage-projects"))
	{
		projects.GET("", h.Project.List)
		projects.POST("", h.Project.Create)
		projects.GET("/:id", h.Project.Get)
		projects.PUT("/:id", h.Project.Update)
		projects.DELETE("/:id", h.Project.Delete)
	}
}

func registerTimesheetRoutes(protected *gin.RouterGroup, h *Handlers) {
	timesheets := protected.Group("/timesheets")
	timesheets.Use(middleware.RequirePermission("manage-timesheets"))
	{
		timesheets.GET("", h.Timesheet.List)
		timesheets.POST("", h.Timesheet.Create)
		timesheets.GET("/:id", h.Timesheet.Get)
		timesheets.PUT("/:id", h.Timesheet.Update)
		timesheets.DELETE("/:id", h.Timesheet.Delete)
	}
}

func registerProposalRoutes(protected *gin.RouterGroup, h *Handlers) {
	proposals := protected.Group("/proposals")
	proposals.Use(middleware.RequirePermission("manage-proposals"))
	{
		proposals.GET("", h.Proposal.List)
		proposals.POST("", h.Proposal.Create)
		proposals.GET("/:id", h.Proposal.Get)
		proposals.PUT("/:id", h.Proposal.Update)
		proposals.POST("/:id/send", h.Proposal.Send)
		proposals.POST("/:id/approve", h.Proposal.Approve)
		proposals.POST("/:id/reject", h.Proposal.Reject)
		proposals.DELETE("/:id", h.Proposal.Delete)
	}
}

func registerInvoiceRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	invoices := protected.Group("/invoices")
	invoices.Use(middleware.RequirePermission("manage-invoices"))
	{
		invoices.GET("", h.Invoice.List)
		// Invoice creation uses idempotency middleware to prevent duplicates
		invoices.POST("", middleware.IdempotencyRequired(middleware.IdempotencyConfig{
			Repo: deps.IdempotencyRepo,
		}), h.Invoice.Create)
		invoices.POST("/bulk-delete", h.Invoice.BulkDelete)
		invoices.GET("/:id", h.Invoice.Get)
		invoices.PUT("/:id", h.Invoice.Update)
		invoices.POST("/:id/send", h.Invoice.Send)
		invoices.POST("/:id/pay", h.Invoice.MarkPaid)
		invoices.POST("/:id/void", h.Invoice.Void)
		invoices.DELETE("/:id", h.Invoice.Delete)
	}
}

func registerCompensationRoutes(protected *gin.RouterGroup, h *Handlers) {
	compensation := protected.Group("/compensation")
	compensation.Use(middleware.RequirePermission("manage-compensation"))
	{
		compensation.GET("/schemes", h.Compensation.ListSchemes)
		compensation.POST("/schemes", h.Compensation.CreateScheme)
		compensation.GET("/schemes/:id", h.Compensation.GetScheme)
		compensation.PUT("/schemes/:id", h.Compensation.UpdateScheme)
		compensation.DELETE("/schemes/:id", h.Compensation.DeleteScheme)
		compensation.GET("/schemes/:id/eligibility", h.Compensation.ListEligibility)
		compensation.PUT("/schemes/:id/eligibility", h.Compensation.UpsertEligibility)
		compensation.DELETE("/eligibility/:id", h.Compensation.DeleteEligibility)
		compensation.POST("/calculate", h.Compensation.Calculate)
		compensation.GET("/entries", h.Compensation.ListEntries)
		compensation.GET("/entries/:id", h.Compensation.GetEntry)
		compensation.POST("/entries/:id/payments", h.Compensation.RecordPayment)
	}
}

func registerUserRoutes(protected *gin.RouterGroup, h *Handlers) {
	users := protected.Group("/users")
	users.Use(middleware.RequirePermission("manage-users"))
	{
		users.GET("", h.User.List)
		users.GET("/:id", h.User.Get)
		users.PUT("/:id/roles", h.User.UpdateRoles)
		users.DELETE("/:id", h.User.Delete)
	}
}

func registerRoleRoutes(protected *gin.RouterGroup, h *Handlers) {
	roles := protected.Group("/roles")
	roles.Use(middleware.RequirePermission("manage-users"))
	{
		roles.GET("", h.User.ListRoles)
	}
}

func registerPermissionRoutes(protected *gin.RouterGroup, h *Handlers) {
	permissions := protected.Group("/permissions")
	permissions.Use(middleware.RequirePermission("manage-users"))
	{
		permissions.GET("", h.User.ListPermissions)
	}
}
