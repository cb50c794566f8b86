package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/AbdulmosenAlmuzaini/mezan/internal/domain"
)

const errCredentials = "Could not validate credentials"

// tokenVerifier and userFinder are the subsets of the token issuer and
// user repository the middleware needs. Defined here (point of use) so
// tests can inject fakes.
type tokenVerifier interface {
	Verify(raw string) (string, error)
}

type userFinder interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
}

// Auth validates a Bearer token, loads the subject's user record, and
// stores it under "user" in the gin context. Failures answer 401 with a
// WWW-Authenticate challenge and never say which check failed.
func Auth(tokens tokenVerifier, users userFinder, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			unauthorized(c)
			return
		}

		subject, err := tokens.Verify(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			unauthorized(c)
			return
		}

		user, err := users.FindByEmail(c.Request.Context(), subject)
		if err != nil {
			if errors.Is(err, domain.ErrUserNotFound) {
				unauthorized(c)
				return
			}
			logger.ErrorContext(c.Request.Context(), "auth middleware user lookup", "error", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError,
				gin.H{"error": "Internal server error"})
			return
		}

		c.Set("user", user)
		c.Next()
	}
}

func unauthorized(c *gin.Context) {
	c.Header("WWW-Authenticate", "Bearer")
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": errCredentials})
}
