package usecase

import (
	"context"
	"fmt"

	"github.com/AbdulmosenAlmuzaini/mezan/internal/domain"
	"github.com/AbdulmosenAlmuzaini/mezan/internal/repository"
)

type CategoryUsecase struct {
	repo repository.CategoryRepository
}

func NewCategoryUsecase(repo repository.CategoryRepository) *CategoryUsecase {
	return &CategoryUsecase{repo: repo}
}

type CreateCategoryInput struct {
	UserID string
	Name   string
	Type   domain.EntryType
}

func (u *CategoryUsecase) Create(ctx context.Context, input CreateCategoryInput) (*domain.Category, error) {
	created, err := u.repo.Create(ctx, &domain.Category{
		UserID: input.UserID,
		Name:   input.Name,
		Type:   input.Type,
	})
	if err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	return created, nil
}

func (u *CategoryUsecase) List(ctx context.Context, userID string) ([]*domain.Category, error) {
	categories, err := u.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

func (u *CategoryUsecase) Delete(ctx context.Context, id, userID string) error {
	return u.repo.Delete(ctx, id, userID)
}
