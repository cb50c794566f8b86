package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lmittmann/tint"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/AbdulmosenAlmuzaini/mezan/config"
	"github.com/AbdulmosenAlmuzaini/mezan/internal/advisor"
	"github.com/AbdulmosenAlmuzaini/mezan/internal/email"
	"github.com/AbdulmosenAlmuzaini/mezan/internal/health"
	"github.com/AbdulmosenAlmuzaini/mezan/internal/infrastructure/postgres"
	ctxlog "github.com/AbdulmosenAlmuzaini/mezan/internal/log"
	"github.com/AbdulmosenAlmuzaini/mezan/internal/maintenance"
	"github.com/AbdulmosenAlmuzaini/mezan/internal/metrics"
	"github.com/AbdulmosenAlmuzaini/mezan/internal/password"
	"github.com/AbdulmosenAlmuzaini/mezan/internal/token"
	httptransport "github.com/AbdulmosenAlmuzaini/mezan/internal/transport/http"
	"github.com/AbdulmosenAlmuzaini/mezan/internal/transport/http/handler"
	"github.com/AbdulmosenAlmuzaini/mezan/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	logger := newLogger(cfg.Env, cfg.SlogLevel())

	if cfg.Env != "local" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		stop()
		log.Fatalf("db: %v", err)
	}
	defer pool.Close()

	// Auth
	userRepo := postgres.NewUserRepository(pool)
	hasher := password.NewHasher(password.DefaultParams())
	tokens := token.NewIssuer([]byte(cfg.JWTSecret), token.DefaultTTL)
	emailSender := email.NewSender(cfg.Env, cfg.ResendAPIKey, cfg.ResendFrom, logger)
	authUsecase := usecase.NewAuthUsecase(
		userRepo, hasher, password.Validate, tokens, emailSender, cfg.AppBaseURL, logger)
	authHandler := handler.NewAuthHandler(authUsecase, logger)

	// Transactions and categories
	transactionRepo := postgres.NewTransactionRepository(pool)
	transactionUsecase := usecase.NewTransactionUsecase(transactionRepo)
	transactionHandler := handler.NewTransactionHandler(transactionUsecase, logger)

	categoryRepo := postgres.NewCategoryRepository(pool)
	categoryUsecase := usecase.NewCategoryUsecase(categoryRepo)
	categoryHandler := handler.NewCategoryHandler(categoryUsecase, logger)

	// AI analysis
	advisorClient := advisor.NewClient(cfg.OpenRouterURL, cfg.OpenRouterAPIKey, logger)
	analyzeHandler := handler.NewAnalyzeHandler(advisorClient, logger)

	metrics.Register()
	checker := health.NewChecker(pool, logger, prometheus.DefaultRegisterer)

	purger := maintenance.NewPurger(userRepo, logger)
	if err := purger.Start(); err != nil {
		stop()
		log.Fatalf("maintenance: %v", err)
	}

	srv := http.Server{
		Addr: ":" + cfg.Port,
		Handler: httptransport.NewRouter(logger, authHandler, transactionHandler,
			categoryHandler, analyzeHandler, tokens, userRepo, cfg.AllowedOrigins),
	}

	metricsSrv := metrics.NewServer(":"+cfg.MetricsPort, checker)

	go func() {
		logger.Info("server started", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server: %v", err)
		}
	}()

	go func() {
		logger.Info("metrics server started", "port", cfg.MetricsPort)
		if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server", "error", err)
		}
	}()

	<-ctx.Done()
	stop()
	logger.Info("shutting down...")

	purger.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", "error", err)
	}
	if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
		logger.Error("metrics server shutdown", "error", err)
	}
}

func newLogger(env string, level slog.Level) *slog.Logger {
	var inner slog.Handler
	if env == "local" {
		inner = tint.NewHandler(os.Stdout, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
		})
	} else {
		inner = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: level,
		})
	}
	return slog.New(ctxlog.NewContextHandler(inner))
}
