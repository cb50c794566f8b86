package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AbdulmosenAlmuzaini/mezan/internal/advisor"
)

type AnalyzeHandler struct {
	advisor *advisor.Client
	logger  *slog.Logger
}

func NewAnalyzeHandler(advisorClient *advisor.Client, logger *slog.Logger) *AnalyzeHandler {
	return &AnalyzeHandler{
		advisor: advisorClient,
		logger:  logger.With("component", "analyze_handler"),
	}
}

type analyzeEntry struct {
	Title    string  `json:"title"    binding:"required"`
	Amount   float64 `json:"amount"   binding:"required"`
	Category string  `json:"category" binding:"required"`
	Type     string  `json:"type"     binding:"required,oneof=income expense"`
}

// POST /analyze?lang=ar|en
// The advisor degrades to a static payload on provider failure, so this
// endpoint only fails on malformed input.
func (h *AnalyzeHandler) Analyze(c *gin.Context) {
	var req []analyzeEntry
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	lang := c.DefaultQuery("lang", "ar")

	entries := make([]advisor.Entry, 0, len(req))
	for _, e := range req {
		entries = append(entries, advisor.Entry{
			Title:    e.Title,
			Amount:   e.Amount,
			Category: e.Category,
			Type:     e.Type,
		})
	}

	c.JSON(http.StatusOK, h.advisor.Analyze(c.Request.Context(), entries, lang))
}
