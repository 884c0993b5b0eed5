package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "memberhub/docs"
	"memberhub/internal/config"
	"memberhub/internal/handlers"
	"memberhub/internal/logger"
	"memberhub/internal/middleware"
	"memberhub/internal/pdf"
	"memberhub/internal/repositories"
	"memberhub/internal/routes"
	"memberhub/internal/services"
	"memberhub/internal/utils"
)

const shutdownGrace = 15 * time.Second

type App struct {
	cfg      *config.Config
	db       *sql.DB
	server   *http.Server
	sessions services.SessionService
	notifier *services.TelegramNotifier
}

// New wires every layer from cfg. The database is opened and migrated here.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	logger.Init(cfg.Log.Level, cfg.Log.Format)

	// === DB ===
	db, err := repositories.Open(ctx, cfg.Database.DSN, cfg.Database.MaxOpenConns)
	if err != nil {
		return nil, err
	}
	if err := repositories.Migrate(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	// === Repos ===
	otpRepo := repositories.NewOTPRepository(db)
	orgRepo := repositories.NewOrganizationRepository(db)
	requestRepo := repositories.NewAdminRequestRepository(db)
	adminRepo := repositories.NewAdminRepository(db)
	memberRepo := repositories.NewMemberRepository(db)

	// === Services ===
	authService := services.NewAuthService(cfg.JWT.Secret, cfg.JWT.AccessTTL, cfg.JWT.VerificationTTL)
	emailService := services.NewEmailService(
		cfg.Email.SMTPHost,
		cfg.Email.SMTPPort,
		cfg.Email.SMTPUser,
		cfg.Email.SMTPPassword,
		cfg.Email.FromEmail,
	)
	// SMS провайдер (Mobizon); dry-run только пишет в лог
	mobizonClient := utils.NewClientWithOptions(cfg.Mobizon.APIKey, cfg.Mobizon.SenderID, cfg.Mobizon.DryRun)
	if !mobizonClient.Enabled() {
		slog.Warn("[app][init] phone delivery disabled, SMS codes are only logged")
	}
	notifier := services.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID)

	otpService := services.NewOTPService(otpRepo, emailService, mobizonClient, services.OTPOptions{
		TTL:         cfg.OTP.TTL,
		MaxAttempts: cfg.OTP.MaxAttempts,
		MaxSends:    cfg.OTP.MaxSends,
		SendWindow:  cfg.OTP.SendWindow,
	})
	registrationService := services.NewAdminRegistrationService(otpService, authService, requestRepo, adminRepo, orgRepo, notifier)
	approvalService := services.NewApprovalService(requestRepo, emailService)
	sessionService := services.NewSessionService(adminRepo, authService)
	memberService := services.NewMemberService(memberRepo, orgRepo, otpService, authService, emailService,
		pdf.NewCardGenerator(cfg.Files.FontPath), services.MemberOptions{LoginOTP: cfg.OTP.MemberLoginOTP})
	organizationService := services.NewOrganizationService(orgRepo)

	// === Gin ===
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(middleware.RequestLogger())
	router.Use(gin.Recovery())
	router.Use(middleware.CORS())

	// Swagger
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	routes.SetupRoutes(router, routes.Handlers{
		AdminRegistration: handlers.NewAdminRegistrationHandler(registrationService),
		Approval:          handlers.NewApprovalHandler(approvalService),
		Auth:              handlers.NewAuthHandler(sessionService),
		Member:            handlers.NewMemberHandler(memberService),
		Organization:      handlers.NewOrganizationHandler(organizationService),
	}, authService, middleware.StrictLimit)

	return &App{
		cfg: cfg,
		db:  db,
		server: &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
			Handler:           router,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       cfg.Server.RequestTimeout,
			WriteTimeout:      cfg.Server.RequestTimeout,
		},
		sessions: sessionService,
		notifier: notifier,
	}, nil
}

// Run bootstraps the superadmin and serves until SIGINT/SIGTERM.
func (a *App) Run(ctx context.Context) error {
	err := a.sessions.EnsureSuperadmin(ctx, services.SuperadminSeed{
		Username: a.cfg.Superadmin.Username,
		Email:    a.cfg.Superadmin.Email,
		Password: a.cfg.Superadmin.Password,
	})
	if err != nil {
		_ = a.db.Close()
		return fmt.Errorf("superadmin bootstrap: %w", err)
	}

	serverErrors := make(chan error, 1)
	go func() {
		slog.Info("[app][run] listening", "addr", a.server.Addr)
		serverErrors <- a.server.ListenAndServe()
	}()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-serverErrors:
		_ = a.db.Close()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
		slog.Info("[app][run] shutdown requested")
	}
	return a.Shutdown()
}

func (a *App) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()

	if err := a.server.Shutdown(ctx); err != nil {
		slog.Error("[app][shutdown] graceful shutdown failed", "err", err)
		_ = a.server.Close()
	}
	a.notifier.Wait()
	if err := a.db.Close(); err != nil {
		return fmt.Errorf("close db: %w", err)
	}
	slog.Info("[app][shutdown] stopped")
	return nil
}
