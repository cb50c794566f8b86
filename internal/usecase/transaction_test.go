package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/AbdulmosenAlmuzaini/mezan/internal/domain"
	"github.com/AbdulmosenAlmuzaini/mezan/internal/usecase"
)

type fakeTransactionRepo struct {
	create     func(ctx context.Context, tx *domain.Transaction) (*domain.Transaction, error)
	listByUser func(ctx context.Context, userID string) ([]*domain.Transaction, error)
	delete     func(ctx context.Context, id, userID string) error
}

func (r *fakeTransactionRepo) Create(ctx context.Context, tx *domain.Transaction) (*domain.Transaction, error) {
	return r.create(ctx, tx)
}

func (r *fakeTransactionRepo) ListByUser(ctx context.Context, userID string) ([]*domain.Transaction, error) {
	return r.listByUser(ctx, userID)
}

func (r *fakeTransactionRepo) Delete(ctx context.Context, id, userID string) error {
	return r.delete(ctx, id, userID)
}

func TestTransactionCreate_StampsOwner(t *testing.T) {
	var stored *domain.Transaction
	repo := &fakeTransactionRepo{
		create: func(_ context.Context, tx *domain.Transaction) (*domain.Transaction, error) {
			stored = tx
			tx.ID = "tx-1"
			return tx, nil
		},
	}

	uc := usecase.NewTransactionUsecase(repo)
	created, err := uc.Create(context.Background(), usecase.CreateTransactionInput{
		UserID:   "user-1",
		Title:    "Groceries",
		Amount:   95.20,
		Category: "Groceries",
		Type:     domain.EntryExpense,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID != "tx-1" {
		t.Errorf("ID = %q, want tx-1", created.ID)
	}
	if stored.UserID != "user-1" {
		t.Errorf("stored UserID = %q, want user-1", stored.UserID)
	}
	if stored.Type != domain.EntryExpense {
		t.Errorf("stored Type = %q, want expense", stored.Type)
	}
}

func TestTransactionDelete_ScopedToOwner(t *testing.T) {
	repo := &fakeTransactionRepo{
		delete: func(_ context.Context, id, userID string) error {
			if id != "tx-1" || userID != "user-1" {
				t.Errorf("delete called with %q %q", id, userID)
			}
			return nil
		},
	}

	uc := usecase.NewTransactionUsecase(repo)
	if err := uc.Delete(context.Background(), "tx-1", "user-1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
}

func TestTransactionDelete_NotFoundPassesThrough(t *testing.T) {
	repo := &fakeTransactionRepo{
		delete: func(context.Context, string, string) error {
			return domain.ErrTransactionNotFound
		},
	}

	uc := usecase.NewTransactionUsecase(repo)
	err := uc.Delete(context.Background(), "missing", "user-1")
	if !errors.Is(err, domain.ErrTransactionNotFound) {
		t.Fatalf("err = %v, want ErrTransactionNotFound", err)
	}
}
