package repositories

import (
	"context"

	"github.com/grana-app/grana-backend/internal/core/domain"
)

// CategoryRepository defines persistence operations for categories.
// All reads and writes are scoped to the owning user.
type CategoryRepository interface {
	SaveCategory(ctx context.Context, category domain.Category) error
	FindCategoryByID(ctx context.Context, userID, categoryID string) (*domain.Category, error)
	ListCategories(ctx context.Context, userID string) ([]domain.Category, error)
	UpdateCategory(ctx context.Context, category domain.Category) error
	DeleteCategory(ctx context.Context, userID, categoryID string) error
}
