package advisor_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/AbdulmosenAlmuzaini/mezan/internal/advisor"
)

var testEntries = []advisor.Entry{
	{Title: "Salary", Amount: 12000, Category: "Salary", Type: "income"},
	{Title: "Rent", Amount: 3200, Category: "Rent", Type: "expense"},
}

func newTestClient(url string) *advisor.Client {
	return advisor.NewClient(url, "test-key", slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestAnalyze_ParsesModelResponse(t *testing.T) {
	content, _ := json.Marshal(map[string]any{
		"summary":            "Healthy month",
		"hotspots":           []string{"Rent is 27% of income"},
		"ratioAdvice":        "Keep savings above 20%",
		"savingsSuggestions": []string{"Automate transfers"},
		"riskAlerts":         []string{},
	})

	var gotAuth, gotModel string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		var req map[string]any
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		gotModel, _ = req["model"].(string)

		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"content": string(content)}},
			},
		})
	}))
	defer srv.Close()

	analysis := newTestClient(srv.URL).Analyze(context.Background(), testEntries, "en")

	if analysis.Summary != "Healthy month" {
		t.Errorf("Summary = %q", analysis.Summary)
	}
	if len(analysis.Hotspots) != 1 || analysis.Hotspots[0] != "Rent is 27% of income" {
		t.Errorf("Hotspots = %v", analysis.Hotspots)
	}
	if gotAuth != "Bearer test-key" {
		t.Errorf("Authorization = %q, want Bearer test-key", gotAuth)
	}
	if gotModel != "google/gemini-2.0-flash-001" {
		t.Errorf("model = %q", gotModel)
	}
}

func TestAnalyze_ProviderErrorServesEnglishFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	analysis := newTestClient(srv.URL).Analyze(context.Background(), testEntries, "en")

	if !strings.Contains(analysis.Summary, "technical issue") {
		t.Errorf("Summary = %q, want fallback text", analysis.Summary)
	}
	if len(analysis.RiskAlerts) != 1 || analysis.RiskAlerts[0] != "AI connection failed." {
		t.Errorf("RiskAlerts = %v", analysis.RiskAlerts)
	}
	if analysis.SavingsSuggestions == nil || len(analysis.SavingsSuggestions) != 0 {
		t.Errorf("SavingsSuggestions = %v, want empty non-nil", analysis.SavingsSuggestions)
	}
}

func TestAnalyze_ProviderErrorServesArabicFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	analysis := newTestClient(srv.URL).Analyze(context.Background(), testEntries, "ar")

	if !strings.Contains(analysis.Summary, "عذراً") {
		t.Errorf("Summary = %q, want Arabic fallback", analysis.Summary)
	}
}

func TestAnalyze_GarbageContentServesFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"content": "not json at all"}},
			},
		})
	}))
	defer srv.Close()

	analysis := newTestClient(srv.URL).Analyze(context.Background(), testEntries, "en")

	if !strings.Contains(analysis.Summary, "technical issue") {
		t.Errorf("Summary = %q, want fallback text", analysis.Summary)
	}
}

func TestAnalyze_UnreachableProviderServesFallback(t *testing.T) {
	analysis := newTestClient("http://127.0.0.1:1").Analyze(context.Background(), testEntries, "en")

	if !strings.Contains(analysis.Summary, "technical issue") {
		t.Errorf("Summary = %q, want fallback text", analysis.Summary)
	}
}
