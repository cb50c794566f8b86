package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AbdulmosenAlmuzaini/mezan/internal/domain"
	"github.com/AbdulmosenAlmuzaini/mezan/internal/usecase"
)

type CategoryHandler struct {
	categories *usecase.CategoryUsecase
	logger     *slog.Logger
}

func NewCategoryHandler(categories *usecase.CategoryUsecase, logger *slog.Logger) *CategoryHandler {
	return &CategoryHandler{
		categories: categories,
		logger:     logger.With("component", "category_handler"),
	}
}

type createCategoryRequest struct {
	Name string `json:"name" binding:"required"`
	Type string `json:"type" binding:"required,oneof=income expense"`
}

type categoryResponse struct {
	ID     string `json:"id"`
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	Type   string `json:"type"`
}

func toCategoryResponse(cat *domain.Category) categoryResponse {
	return categoryResponse{
		ID:     cat.ID,
		UserID: cat.UserID,
		Name:   cat.Name,
		Type:   string(cat.Type),
	}
}

// GET /categories
func (h *CategoryHandler) List(c *gin.Context) {
	categories, err := h.categories.List(c.Request.Context(), CurrentUser(c).ID)
	if err != nil {
		h.logger.Error("list categories", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	out := make([]categoryResponse, 0, len(categories))
	for _, cat := range categories {
		out = append(out, toCategoryResponse(cat))
	}
	c.JSON(http.StatusOK, out)
}

// POST /categories
func (h *CategoryHandler) Create(c *gin.Context) {
	var req createCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cat, err := h.categories.Create(c.Request.Context(), usecase.CreateCategoryInput{
		UserID: CurrentUser(c).ID,
		Name:   req.Name,
		Type:   domain.EntryType(req.Type),
	})
	if err != nil {
		h.logger.Error("create category", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	c.JSON(http.StatusCreated, toCategoryResponse(cat))
}

// DELETE /categories/:id
func (h *CategoryHandler) Delete(c *gin.Context) {
	err := h.categories.Delete(c.Request.Context(), c.Param("id"), CurrentUser(c).ID)
	if err != nil {
		if errors.Is(err, domain.ErrCategoryNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": errCategoryNotFound})
			return
		}
		h.logger.Error("delete category", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	c.JSON(http.StatusOK, gin.H{"detail": "Deleted"})
}
