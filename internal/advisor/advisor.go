// Package advisor turns a user's transactions into an AI-generated
// financial analysis via the OpenRouter chat-completions API. Provider
// failures degrade to a static payload in the requested language — the
// endpoint never fails just because the model is unreachable.
package advisor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/AbdulmosenAlmuzaini/mezan/internal/metrics"
)

const model = "google/gemini-2.0-flash-001"

// Entry is one transaction line fed into the analysis prompt.
type Entry struct {
	Title    string
	Amount   float64
	Category string
	Type     string
}

// Analysis is the structure the model is instructed to produce.
type Analysis struct {
	Summary            string   `json:"summary"`
	Hotspots           []string `json:"hotspots"`
	RatioAdvice        string   `json:"ratioAdvice"`
	SavingsSuggestions []string `json:"savingsSuggestions"`
	RiskAlerts         []string `json:"riskAlerts"`
}

type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	logger     *slog.Logger
}

func NewClient(baseURL, apiKey string, logger *slog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    baseURL,
		apiKey:     apiKey,
		logger:     logger.With("component", "advisor"),
	}
}

type chatRequest struct {
	Model          string        `json:"model"`
	Messages       []chatMessage `json:"messages"`
	ResponseFormat responseSpec  `json:"response_format"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseSpec struct {
	Type string `json:"type"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Analyze requests an analysis of entries in lang ("ar" or "en"). It
// never returns an error: any provider or parsing failure yields the
// static fallback payload.
func (c *Client) Analyze(ctx context.Context, entries []Entry, lang string) *Analysis {
	analysis, err := c.analyze(ctx, entries, lang)
	if err != nil {
		c.logger.WarnContext(ctx, "analysis failed, serving fallback", "error", err)
		metrics.AnalysisRequestsTotal.WithLabelValues("fallback").Inc()
		return fallback(lang)
	}
	metrics.AnalysisRequestsTotal.WithLabelValues("ok").Inc()
	return analysis
}

func (c *Client) analyze(ctx context.Context, entries []Entry, lang string) (*Analysis, error) {
	payload, err := json.Marshal(buildRequest(entries, lang))
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Title", "Mezan Financial Advisor")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("provider returned status %d", resp.StatusCode)
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return nil, fmt.Errorf("response has no choices")
	}

	var analysis Analysis
	if err := json.Unmarshal([]byte(parsed.Choices[0].Message.Content), &analysis); err != nil {
		return nil, fmt.Errorf("decode analysis content: %w", err)
	}
	return &analysis, nil
}

func buildRequest(entries []Entry, lang string) chatRequest {
	var summary strings.Builder
	for _, e := range entries {
		fmt.Fprintf(&summary, "- %s: %s (%.2f SAR) category: %s\n", e.Type, e.Title, e.Amount, e.Category)
	}

	role := "You are a financial advisor."
	instruction := "Respond exclusively in JSON format and in English."
	if lang == "ar" {
		role = "بصفتك مستشارًا ماليًا خبيرًا."
		instruction = "قم بالرد حصرياً بتنسيق JSON وباللغة العربية."
	}

	prompt := fmt.Sprintf(`%s
%s

Analyze the following financial data:
%s

JSON Structure:
{
  "summary": "overview text",
  "hotspots": ["point 1", "point 2"],
  "ratioAdvice": "advice about income/expense ratio",
  "savingsSuggestions": ["suggestion 1", "suggestion 2"],
  "riskAlerts": ["alert 1"]
}`, role, instruction, summary.String())

	return chatRequest{
		Model: model,
		Messages: []chatMessage{
			{Role: "system", Content: role + " You always respond in valid JSON."},
			{Role: "user", Content: prompt},
		},
		ResponseFormat: responseSpec{Type: "json_object"},
	}
}

func fallback(lang string) *Analysis {
	if lang == "ar" {
		return &Analysis{
			Summary:            "عذراً، خدمة التحليل الذكي واجهت مشكلة فنية.",
			Hotspots:           []string{"يرجى المحاولة لاحقاً."},
			RatioAdvice:        "تأكد من مراجعة مصاريفك يدوياً حالياً.",
			SavingsSuggestions: []string{},
			RiskAlerts:         []string{"فشل الاتصال بالذكاء الاصطناعي."},
		}
	}
	return &Analysis{
		Summary:            "Sorry, the smart analysis service encountered a technical issue.",
		Hotspots:           []string{"Please try again later."},
		RatioAdvice:        "Make sure to review your expenses manually for now.",
		SavingsSuggestions: []string{},
		RiskAlerts:         []string{"AI connection failed."},
	}
}
