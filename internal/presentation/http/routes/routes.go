package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/wekesa/daktari-api/internal/config"
	domainRepo "github.com/wekesa/daktari-api/internal/domain/repository"
	"github.com/wekesa/daktari-api/internal/presentation/http/handler"
	"github.com/wekesa/daktari-api/internal/presentation/http/middleware"
	"github.com/wekesa/daktari-api/pkg/utils"
	"go.uber.org/zap"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth        *handler.AuthHandler
	Clinic      *handler.ClinicHandler
	Patient     *handler.PatientHandler
	Appointment *handler.AppointmentHandler
	Procedure   *handler.ProcedureHandler
	Invoice     *handler.InvoiceHandler
	Billing     *handler.BillingHandler
	DraftDue    *handler.DraftDueHandler
	Balance     *handler.BalanceHandler
	Expense     *handler.ExpenseHandler
	Proof       *handler.ProofHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	Logger          *zap.Logger
	ClinicRepo      domainRepo.ClinicRepository
	IdempotencyRepo domainRepo.IdempotencyRepository
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware(deps.Logger))
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	v1 := router.Group("/api/v1")
	{
		registerAuthRoutes(v1, h)

		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))
		protected.Use(middleware.ClinicMiddleware(deps.ClinicRepo))

		rateLimiter := middleware.NewClinicRateLimiter(middleware.RateLimiterConfig{
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
		auth.POST("/refresh", h.Auth.Refresh)
		auth.GET("/google", h.Auth.GoogleAuthURL)
		auth.POST("/google/callback", h.Auth.GoogleCallback)
	}
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	protected.GET("/auth/me", h.Auth.Profile)
	protected.POST("/auth/change-password", h.Auth.ChangePassword)

	// Clinic management is not clinic-scoped itself
	clinics := protected.Group("/clinics")
	{
		clinics.POST("", h.Clinic.Create)
		clinics.GET("", h.Clinic.ListMine)
		clinics.GET("/:id", h.Clinic.Get)
		clinics.POST("/:id/members", h.Clinic.AddMember)
		clinics.GET("/:id/members", h.Clinic.ListMembers)
	}

	// Everything below operates on one clinic's data
	scoped := protected.Group("")
	scoped.Use(middleware.RequireClinic())

	patients := scoped.Group("/patients")
	{
		patients.POST("", h.Patient.Create)
		patients.GET("", h.Patient.List)
		patients.GET("/:id", h.Patient.Get)
		patients.PUT("/:id", h.Patient.Update)
		patients.DELETE("/:id", h.Patient.Delete)
	}

	appointments := scoped.Group("/appointments")
	{
		appointments.POST("", h.Appointment.Create)
		appointments.GET("", h.Appointment.List)
		appointments.GET("/:id", h.Appointment.Get)
		appointments.PATCH("/:id/status", h.Appointment.UpdateStatus)
		appointments.PATCH("/:id/reschedule", h.Appointment.Reschedule)
		appointments.GET("/:id/invoice", h.Invoice.FindByAppointment)
	}

	procedures := scoped.Group("/procedures")
	{
		procedures.POST("", h.Procedure.Create)
		procedures.GET("", h.Procedure.List)
		procedures.GET("/:id", h.Procedure.Get)
		procedures.PUT("/:id", h.Procedure.Update)
		procedures.DELETE("/:id", h.Procedure.Delete)
	}

	invoices := scoped.Group("/invoices")
	{
		invoices.POST("", h.Invoice.Create)
		invoices.GET("", h.Invoice.List)
		invoices.GET("/:id", h.Invoice.Get)
		invoices.PUT("/:id/line-items", h.Invoice.UpdateLineItems)
		invoices.POST("/:id/pay", h.Invoice.MarkPaid)
		invoices.POST("/:id/void", h.Invoice.Void)
	}

	// Settlement endpoints require an idempotency key so a retried
	// request replays the original response instead of moving money
	// twice.
	idem := middleware.IdempotencyRequired(middleware.IdempotencyConfig{Repo: deps.IdempotencyRepo})

	billing := scoped.Group("/billing")
	{
		billing.POST("/settle", idem, h.Billing.SettleFull)
		billing.POST("/settle-partial", idem, h.Billing.SettlePartial)
	}
	scoped.POST("/payments", idem, h.Billing.CreatePayment)

	drafts := scoped.Group("/drafts")
	{
		drafts.POST("", h.DraftDue.GetOrCreate)
		drafts.GET("", h.DraftDue.List)
		drafts.GET("/:id", h.DraftDue.Get)
		drafts.PUT("/:id/charges", h.DraftDue.UpdateCharges)
		drafts.POST("/:id/convert", idem, h.Billing.ConvertDraft)
		drafts.DELETE("/:id", h.DraftDue.Delete)
	}

	reports := scoped.Group("/reports")
	{
		reports.GET("/balances", h.Balance.PatientBalances)
		reports.GET("/cashier", h.Balance.CashierRows)
		reports.GET("/monthly", h.Balance.MonthlySummary)
	}

	expenses := scoped.Group("/expenses")
	{
		expenses.POST("", h.Expense.Create)
		expenses.GET("", h.Expense.List)
		expenses.GET("/:id", h.Expense.Get)
		expenses.PUT("/:id", h.Expense.Update)
		expenses.DELETE("/:id", h.Expense.Delete)
	}

	proofs := scoped.Group("/proofs")
	{
		proofs.POST("", h.Proof.Upload)
		proofs.GET("/*ref", h.Proof.Download)
	}
}
