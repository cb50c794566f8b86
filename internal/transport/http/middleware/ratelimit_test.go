package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/AbdulmosenAlmuzaini/mezan/internal/transport/http/middleware"
)

func newLimitedEngine(limit rate.Limit, burst int) *gin.Engine {
	r := gin.New()
	r.POST("/login", middleware.RateLimit(limit, burst), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func hit(r *gin.Engine, remoteAddr string) int {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	req.RemoteAddr = remoteAddr
	r.ServeHTTP(w, req)
	return w.Code
}

func TestRateLimit_AllowsBurstThenRejects(t *testing.T) {
	r := newLimitedEngine(rate.Limit(0), 5)

	for i := 0; i < 5; i++ {
		if code := hit(r, "10.0.0.1:1234"); code != http.StatusOK {
			t.Fatalf("request %d: status = %d, want 200", i+1, code)
		}
	}
	if code := hit(r, "10.0.0.1:1234"); code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429 after burst", code)
	}
}

func TestRateLimit_TracksClientsSeparately(t *testing.T) {
	r := newLimitedEngine(rate.Limit(0), 1)

	if code := hit(r, "10.0.0.1:1234"); code != http.StatusOK {
		t.Fatalf("first client: status = %d, want 200", code)
	}
	if code := hit(r, "10.0.0.1:1234"); code != http.StatusTooManyRequests {
		t.Fatalf("first client: status = %d, want 429", code)
	}
	// A different IP has its own bucket.
	if code := hit(r, "10.0.0.2:1234"); code != http.StatusOK {
		t.Fatalf("second client: status = %d, want 200", code)
	}
}
