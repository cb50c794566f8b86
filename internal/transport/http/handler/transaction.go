package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/AbdulmosenAlmuzaini/mezan/internal/domain"
	"github.com/AbdulmosenAlmuzaini/mezan/internal/usecase"
)

type TransactionHandler struct {
	transactions *usecase.TransactionUsecase
	logger       *slog.Logger
}

func NewTransactionHandler(transactions *usecase.TransactionUsecase, logger *slog.Logger) *TransactionHandler {
	return &TransactionHandler{
		transactions: transactions,
		logger:       logger.With("component", "transaction_handler"),
	}
}

type createTransactionRequest struct {
	Title    string  `json:"title"    binding:"required"`
	Amount   float64 `json:"amount"   binding:"required"`
	Category string  `json:"category" binding:"required"`
	Type     string  `json:"type"     binding:"required,oneof=income expense"`
}

type transactionResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Title     string    `json:"title"`
	Amount    float64   `json:"amount"`
	Category  string    `json:"category"`
	Type      string    `json:"type"`
	CreatedAt time.Time `json:"created_at"`
}

func toTransactionResponse(tx *domain.Transaction) transactionResponse {
	return transactionResponse{
		ID:        tx.ID,
		UserID:    tx.UserID,
		Title:     tx.Title,
		Amount:    tx.Amount,
		Category:  tx.Category,
		Type:      string(tx.Type),
		CreatedAt: tx.CreatedAt,
	}
}

// GET /transactions
func (h *TransactionHandler) List(c *gin.Context) {
	txs, err := h.transactions.List(c.Request.Context(), CurrentUser(c).ID)
	if err != nil {
		h.logger.Error("list transactions", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	out := make([]transactionResponse, 0, len(txs))
	for _, tx := range txs {
		out = append(out, toTransactionResponse(tx))
	}
	c.JSON(http.StatusOK, out)
}

// POST /transactions
func (h *TransactionHandler) Create(c *gin.Context) {
	var req createTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tx, err := h.transactions.Create(c.Request.Context(), usecase.CreateTransactionInput{
		UserID:   CurrentUser(c).ID,
		Title:    req.Title,
		Amount:   req.Amount,
		Category: req.Category,
		Type:     domain.EntryType(req.Type),
	})
	if err != nil {
		h.logger.Error("create transaction", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	c.JSON(http.StatusCreated, toTransactionResponse(tx))
}

// DELETE /transactions/:id
func (h *TransactionHandler) Delete(c *gin.Context) {
	err := h.transactions.Delete(c.Request.Context(), c.Param("id"), CurrentUser(c).ID)
	if err != nil {
		if errors.Is(err, domain.ErrTransactionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": errTransactionNotFound})
			return
		}
		h.logger.Error("delete transaction", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	c.JSON(http.StatusOK, gin.H{"detail": "Deleted"})
}
