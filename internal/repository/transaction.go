package repository

import (
	"context"

	"github.com/AbdulmosenAlmuzaini/mezan/internal/domain"
)

type TransactionRepository interface {
	Create(ctx context.Context, tx *domain.Transaction) (*domain.Transaction, error)

	// ListByUser returns the user's transactions, newest first.
	ListByUser(ctx context.Context, userID string) ([]*domain.Transaction, error)

	// Delete removes the transaction only if it belongs to userID.
	// Missing or foreign rows yield domain.ErrTransactionNotFound.
	Delete(ctx context.Context, id, userID string) error
}
