// Package server implements the `serve` command: configuration, logging,
// storage, gateway and scheduler bootstrap, and the HTTP server with
// graceful shutdown.
package server

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	billing "github.com/boostline-inc/boostline/internal/application/billing/usecases"
	catalog "github.com/boostline-inc/boostline/internal/application/catalog/usecases"
	identity "github.com/boostline-inc/boostline/internal/application/identity/usecases"
	verification "github.com/boostline-inc/boostline/internal/application/verification/usecases"
	"github.com/boostline-inc/boostline/internal/infrastructure/auth"
	"github.com/boostline-inc/boostline/internal/infrastructure/config"
	"github.com/boostline-inc/boostline/internal/infrastructure/database"
	"github.com/boostline-inc/boostline/internal/infrastructure/email"
	stripegw "github.com/boostline-inc/boostline/internal/infrastructure/payment"
	"github.com/boostline-inc/boostline/internal/infrastructure/permission"
	"github.com/boostline-inc/boostline/internal/infrastructure/ratelimit"
	"github.com/boostline-inc/boostline/internal/infrastructure/repository"
	"github.com/boostline-inc/boostline/internal/infrastructure/scheduler"
	httpRouter "github.com/boostline-inc/boostline/internal/interfaces/http"
	"github.com/boostline-inc/boostline/internal/interfaces/http/handlers"
	"github.com/boostline-inc/boostline/internal/interfaces/http/middleware"
	"github.com/boostline-inc/boostline/internal/shared/db"
	"github.com/boostline-inc/boostline/internal/shared/logger"
)

var env string

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE:  run,
	}

	cmd.Flags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	if envVar := os.Getenv("ENV"); envVar != "" {
		env = envVar
	}

	cfg, err := config.Load(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(&cfg.Logger); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	log := logger.NewLogger()

	log.Infow("starting server", "environment", env)

	gin.SetMode(mapEnvToGinMode(env))
	gin.DefaultWriter = io.Discard

	if err := database.Init(&cfg.Database); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer func() {
		if err := database.Close(); err != nil {
			log.Errorw("failed to close database", "error", err)
		}
	}()

	gormDB := database.Get()
	txManager := db.NewTransactionManager(gormDB)

	// Repositories.
	userRepo := repository.NewUserRepository(gormDB, log)
	planRepo := repository.NewPlanRepository(gormDB, log)
	subscriptionRepo := repository.NewSubscriptionRepository(gormDB, log)
	paymentRepo := repository.NewPaymentRepository(gormDB, log)
	invoiceRepo := repository.NewInvoiceRepository(gormDB, log)
	auditRepo := repository.NewAuditRepository(gormDB, log)

	// Infrastructure services.
	jwtService := auth.NewJWTService(cfg.Auth.JWTSecret, cfg.Auth.AccessExpMinutes)
	mailService := email.NewSMTPEmailService(cfg.Email)
	gw := stripegw.NewStripeGateway(&cfg.Stripe, log)

	enforcer, err := permission.NewEnforcer(gormDB, log)
	if err != nil {
		return fmt.Errorf("failed to initialize authorization policy: %w", err)
	}

	limiter := buildRateLimiter(cfg, log)

	cryptoSettings := billing.CryptoSettings{
		Enabled:       cfg.Crypto.Enabled,
		AcceptedCoins: cfg.Crypto.AcceptedCoins,
	}

	// Use cases.
	createSubscription := billing.NewCreateSubscriptionUseCase(
		subscriptionRepo, planRepo, userRepo, auditRepo, gw, txManager, cryptoSettings, log)
	cancelSubscription := billing.NewCancelSubscriptionUseCase(
		subscriptionRepo, planRepo, auditRepo, txManager, log)
	getSubscription := billing.NewGetSubscriptionUseCase(subscriptionRepo, planRepo)
	listSubscriptions := billing.NewListUserSubscriptionsUseCase(subscriptionRepo)
	listPayments := billing.NewListUserPaymentsUseCase(paymentRepo)
	refundPayment := billing.NewRefundPaymentUseCase(paymentRepo, auditRepo, gw, txManager, log)
	deleteUser := billing.NewDeleteUserUseCase(
		userRepo, subscriptionRepo, auditRepo, gw, txManager, log)
	deleteInvoice := billing.NewDeleteInvoiceUseCase(
		invoiceRepo, paymentRepo, auditRepo, txManager, log)
	sweepExpired := billing.NewSweepExpiredUseCase(subscriptionRepo, log)

	listPlans := catalog.NewListPlansUseCase(planRepo)
	createPlan := catalog.NewCreatePlanUseCase(planRepo, auditRepo, log)
	updatePlan := catalog.NewUpdatePlanUseCase(planRepo, subscriptionRepo, auditRepo, log)
	deletePlan := catalog.NewDeletePlanUseCase(planRepo, subscriptionRepo, auditRepo, log)

	registerUser := identity.NewRegisterUserUseCase(userRepo, jwtService, mailService, log)
	loginUser := identity.NewLoginUserUseCase(userRepo, jwtService, log)

	resendVerification := verification.NewResendVerificationUseCase(
		userRepo, auditRepo, limiter, jwtService, mailService, log)
	verifyEmail := verification.NewVerifyEmailUseCase(userRepo, jwtService, mailService, log)

	// HTTP layer.
	router := httpRouter.NewRouter(
		httpRouter.Handlers{
			Auth:         handlers.NewAuthHandler(registerUser, loginUser, verifyEmail),
			Plan:         handlers.NewPlanHandler(listPlans, createPlan, updatePlan, deletePlan),
			Subscription: handlers.NewSubscriptionHandler(createSubscription, cancelSubscription, getSubscription, listSubscriptions),
			Payment:      handlers.NewPaymentHandler(listPayments, refundPayment),
			Verification: handlers.NewVerificationHandler(resendVerification),
			Admin:        handlers.NewAdminHandler(deleteUser, deleteInvoice),
		},
		httpRouter.Middlewares{
			Auth:       middleware.NewAuthMiddleware(jwtService),
			Permission: middleware.NewPermissionMiddleware(enforcer),
		},
		log,
	)

	// Background sweep of expired subscriptions.
	sched, err := scheduler.NewSchedulerManager(log)
	if err != nil {
		return fmt.Errorf("failed to create scheduler: %w", err)
	}
	sweepInterval := time.Duration(cfg.Sweeper.IntervalMinutes) * time.Minute
	if err := sched.RegisterSweepJob(sweepExpired, sweepInterval); err != nil {
		return fmt.Errorf("failed to register sweep job: %w", err)
	}
	sched.Start()
	defer func() {
		if err := sched.Stop(); err != nil {
			log.Errorw("failed to stop scheduler", "error", err)
		}
	}()

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router.Engine(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Infow("server listening", "address", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalw("server failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("forced shutdown: %w", err)
	}

	log.Info("server stopped")
	return nil
}

// buildRateLimiter prefers the shared redis-backed limiter so the
// verification bound holds across instances; without redis it degrades
// to the in-process limiter.
func buildRateLimiter(cfg *config.Config, log logger.Interface) verification.RateLimiter {
	limiterCfg := ratelimit.Config{
		Cooldown:    time.Duration(cfg.Verification.CooldownSeconds) * time.Second,
		MaxAttempts: cfg.Verification.MaxAttempts,
		ResetWindow: time.Duration(cfg.Verification.ResetWindowMinutes) * time.Minute,
	}

	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Warnw("redis unreachable, falling back to in-process rate limiter", "error", err)
		return ratelimit.NewMemoryLimiter(limiterCfg)
	}

	log.Info("using redis-backed rate limiter")
	return ratelimit.NewRedisLimiter(client, limiterCfg)
}

func mapEnvToGinMode(env string) string {
	switch env {
	case "production":
		return gin.ReleaseMode
	case "test":
		return gin.TestMode
	default:
		return gin.DebugMode
	}
}
