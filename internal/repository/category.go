package repository

import (
	"context"

	"github.com/AbdulmosenAlmuzaini/mezan/internal/domain"
)

type CategoryRepository interface {
	Create(ctx context.Context, category *domain.Category) (*domain.Category, error)

	ListByUser(ctx context.Context, userID string) ([]*domain.Category, error)

	// Delete removes the category only if it belongs to userID.
	// Missing or foreign rows yield domain.ErrCategoryNotFound.
	Delete(ctx context.Context, id, userID string) error
}
