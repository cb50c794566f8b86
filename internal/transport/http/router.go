package httptransport

import (
	"log/slog"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	sloggin "github.com/samber/slog-gin"
	"golang.org/x/time/rate"

	"github.com/AbdulmosenAlmuzaini/mezan/internal/repository"
	"github.com/AbdulmosenAlmuzaini/mezan/internal/token"
	"github.com/AbdulmosenAlmuzaini/mezan/internal/transport/http/handler"
	"github.com/AbdulmosenAlmuzaini/mezan/internal/transport/http/middleware"
)

func NewRouter(
	logger *slog.Logger,
	authHandler *handler.AuthHandler,
	transactionHandler *handler.TransactionHandler,
	categoryHandler *handler.CategoryHandler,
	analyzeHandler *handler.AnalyzeHandler,
	tokens *token.Issuer,
	users repository.UserRepository,
	allowedOrigins []string,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Security())
	r.Use(sloggin.New(logger))
	r.Use(middleware.Metrics())
	r.Use(corsMiddleware(allowedOrigins))

	// 5 attempts per minute per client IP, mirroring the lockout scale
	// one layer up.
	loginLimiter := middleware.RateLimit(rate.Every(time.Minute/5), 5)

	r.POST("/register", authHandler.Register)
	r.POST("/login", loginLimiter, authHandler.Login)
	r.GET("/verify-email/:token", authHandler.VerifyEmail)
	r.POST("/forgot-password", authHandler.ForgotPassword)
	r.POST("/reset-password", authHandler.ResetPassword)

	authMW := middleware.Auth(tokens, users, logger)

	protected := r.Group("", authMW)
	protected.POST("/change-password", authHandler.ChangePassword)

	protected.GET("/transactions", transactionHandler.List)
	protected.POST("/transactions", transactionHandler.Create)
	protected.DELETE("/transactions/:id", transactionHandler.Delete)

	protected.GET("/categories", categoryHandler.List)
	protected.POST("/categories", categoryHandler.Create)
	protected.DELETE("/categories/:id", categoryHandler.Delete)

	protected.POST("/analyze", analyzeHandler.Analyze)

	return r
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Authorization", "Content-Type", "X-Request-ID"},
		MaxAge:       12 * time.Hour,
	}
	if len(allowedOrigins) == 1 && allowedOrigins[0] == "*" {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = allowedOrigins
		cfg.AllowCredentials = true
	}
	return cors.New(cfg)
}
