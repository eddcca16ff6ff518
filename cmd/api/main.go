package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/wekesa/daktari-api/internal/application/service"
	"github.com/wekesa/daktari-api/internal/config"
	"github.com/wekesa/daktari-api/internal/infrastructure/database"
	"github.com/wekesa/daktari-api/internal/infrastructure/repository"
	"github.com/wekesa/daktari-api/internal/presentation/http/handler"
	"github.com/wekesa/daktari-api/internal/presentation/http/routes"
	"github.com/wekesa/daktari-api/pkg/oauth"
	"github.com/wekesa/daktari-api/pkg/proofstore"
	"github.com/wekesa/daktari-api/pkg/utils"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	var logger *zap.Logger
	var err error
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	db, err := database.NewPostgresDB(&cfg.Database, logger)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}

	if err := database.AutoMigrate(db); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.ExpiryHours,
		cfg.JWT.RefreshExpiryHours,
	)

	// Repositories
	userRepo := repository.NewUserRepository(db)
	clinicRepo := repository.NewClinicRepository(db)
	patientRepo := repository.NewPatientRepository(db)
	appointmentRepo := repository.NewAppointmentRepository(db)
	procedureRepo := repository.NewProcedureRepository(db)
	invoiceRepo := repository.NewInvoiceRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	draftRepo := repository.NewDraftDueRepository(db)
	expenseRepo := repository.NewExpenseRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)
	txManager := repository.NewTxManager(db)

	googleOAuth := oauth.NewGoogleOAuthService(oauth.GoogleOAuthConfig{
		ClientID:           cfg.OAuth.GoogleClientID,
		ClientSecret:       cfg.OAuth.GoogleClientSecret,
		RedirectURL:        cfg.OAuth.GoogleRedirectURL,
		FrontendSuccessURL: cfg.OAuth.FrontendSuccessURL,
		FrontendErrorURL:   cfg.OAuth.FrontendErrorURL,
	})

	proofStore, err := proofstore.NewStore(cfg.Storage.Path)
	if err != nil {
		logger.Fatal("Failed to initialize proof store", zap.Error(err))
	}

	// Services
	authService := service.NewAuthService(userRepo, jwtManager, googleOAuth)
	clinicService := service.NewClinicService(clinicRepo, userRepo, txManager)
	patientService := service.NewPatientService(patientRepo)
	appointmentService := service.NewAppointmentService(appointmentRepo, patientRepo)
	procedureService := service.NewProcedureService(procedureRepo)
	invoiceService := service.NewInvoiceService(invoiceRepo, paymentRepo, txManager)
	billingService := service.NewBillingService(invoiceRepo, paymentRepo, draftRepo, patientRepo, txManager, logger)
	draftService := service.NewDraftDueService(draftRepo, patientRepo, txManager)
	balanceService := service.NewBalanceService(invoiceRepo, paymentRepo, patientRepo, expenseRepo)
	expenseService := service.NewExpenseService(expenseRepo)

	handlers := &routes.Handlers{
		Auth:        handler.NewAuthHandler(authService),
		Clinic:      handler.NewClinicHandler(clinicService),
		Patient:     handler.NewPatientHandler(patientService),
		Appointment: handler.NewAppointmentHandler(appointmentService),
		Procedure:   handler.NewProcedureHandler(procedureService),
		Invoice:     handler.NewInvoiceHandler(invoiceService),
		Billing:     handler.NewBillingHandler(billingService),
		DraftDue:    handler.NewDraftDueHandler(draftService),
		Balance:     handler.NewBalanceHandler(balanceService),
		Expense:     handler.NewExpenseHandler(expenseService),
		Proof:       handler.NewProofHandler(proofStore),
	}

	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		Logger:          logger,
		ClinicRepo:      clinicRepo,
		IdempotencyRepo: idempotencyRepo,
	})

	logger.Info("Starting server",
		zap.String("service", cfg.App.Name),
		zap.String("port", cfg.App.Port),
		zap.String("env", cfg.App.Env))

	if err := router.Run(":" + cfg.App.Port); err != nil {
		logger.Fatal("Failed to start server", zap.Error(err))
	}
}
