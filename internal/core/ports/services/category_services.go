package services

import (
	"context"

	"github.com/grana-app/grana-backend/internal/core/domain"
	"github.com/grana-app/grana-backend/internal/dto"
)

// CategorySvcFacade exposes category CRUD, scoped to the calling user.
type CategorySvcFacade interface {
	CreateCategory(ctx context.Context, userID string, req dto.CreateCategoryRequest) (*domain.Category, error)
	ListCategories(ctx context.Context, userID string) ([]domain.Category, error)
	UpdateCategory(ctx context.Context, userID, categoryID string, req dto.CreateCategoryRequest) (*domain.Category, error)
	DeleteCategory(ctx context.Context, userID, categoryID string) error
}
