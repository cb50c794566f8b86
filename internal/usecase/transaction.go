package usecase

import (
	"context"
	"fmt"

	"github.com/AbdulmosenAlmuzaini/mezan/internal/domain"
	"github.com/AbdulmosenAlmuzaini/mezan/internal/repository"
)

type TransactionUsecase struct {
	repo repository.TransactionRepository
}

func NewTransactionUsecase(repo repository.TransactionRepository) *TransactionUsecase {
	return &TransactionUsecase{repo: repo}
}

type CreateTransactionInput struct {
	UserID   string
	Title    string
	Amount   float64
	Category string
	Type     domain.EntryType
}

func (u *TransactionUsecase) Create(ctx context.Context, input CreateTransactionInput) (*domain.Transaction, error) {
	tx := &domain.Transaction{
		UserID:   input.UserID,
		Title:    input.Title,
		Amount:   input.Amount,
		Category: input.Category,
		Type:     input.Type,
	}

	created, err := u.repo.Create(ctx, tx)
	if err != nil {
		return nil, fmt.Errorf("create transaction: %w", err)
	}
	return created, nil
}

func (u *TransactionUsecase) List(ctx context.Context, userID string) ([]*domain.Transaction, error) {
	txs, err := u.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	return txs, nil
}

func (u *TransactionUsecase) Delete(ctx context.Context, id, userID string) error {
	return u.repo.Delete(ctx, id, userID)
}
