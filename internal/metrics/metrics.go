package metrics

import (
	"encoding/json"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/AbdulmosenAlmuzaini/mezan/internal/health"
)

var (
	// Auth metrics

	LoginAttemptsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "mezan",
		Name:      "login_attempts_total",
		Help:      "Total login attempts, by outcome.",
	}, []string{"outcome"})

	AccountLockoutsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "mezan",
		Name:      "account_lockouts_total",
		Help:      "Total lockouts triggered by repeated failed logins.",
	})

	RegistrationsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "mezan",
		Name:      "registrations_total",
		Help:      "Total successful registrations.",
	})

	// Advisor metrics

	AnalysisRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "mezan",
		Name:      "analysis_requests_total",
		Help:      "Total AI analysis requests, by outcome (ok or fallback).",
	}, []string{"outcome"})

	// HTTP metrics

	HTTPRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "mezan",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency.",
		Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "mezan",
		Name:      "http_requests_total",
		Help:      "Total HTTP requests.",
	}, []string{"method", "path", "status"})
)

// Outcome labels for LoginAttemptsTotal.
const (
	OutcomeSuccess            = "success"
	OutcomeInvalidCredentials = "invalid_credentials"
	OutcomeLocked             = "locked"
	OutcomeUnverified         = "unverified"
)

func Register() {
	prometheus.MustRegister(
		LoginAttemptsTotal,
		AccountLockoutsTotal,
		RegistrationsTotal,
		AnalysisRequestsTotal,
		HTTPRequestDuration,
		HTTPRequestsTotal,
	)
}

// NewServer serves /metrics plus the liveness and readiness probes on a
// port separate from the API.
func NewServer(addr string, checker *health.Checker) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeHealth(w, checker.Liveness(r.Context()))
	})
	mux.HandleFunc("/readyz", func(w http.ResponseWriter, r *http.Request) {
		writeHealth(w, checker.Readiness(r.Context()))
	})
	return &http.Server{Addr: addr, Handler: mux}
}

func writeHealth(w http.ResponseWriter, result health.HealthResult) {
	w.Header().Set("Content-Type", "application/json")
	if result.Status != "up" {
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	_ = json.NewEncoder(w).Encode(result)
}
