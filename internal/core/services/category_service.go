package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/grana-app/grana-backend/internal/core/domain"
	portsrepo "github.com/grana-app/grana-backend/internal/core/ports/repositories"
	portssvc "github.com/grana-app/grana-backend/internal/core/ports/services"
	"github.com/grana-app/grana-backend/internal/dto"
)

// CategoryService implements category CRUD.
type CategoryService struct {
	BaseService
	categoryRepo portsrepo.CategoryRepository
}

var _ portssvc.CategorySvcFacade = (*CategoryService)(nil)

func NewCategoryService(categoryRepo portsrepo.CategoryRepository) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo}
}

func (s *CategoryService) CreateCategory(ctx context.Context, userID string, req dto.CreateCategoryRequest) (*domain.Category, error) {
	now := time.Now().UTC()
	category := domain.Category{
		CategoryID:  uuid.NewString(),
		UserID:      userID,
		Name:        req.Name,
		Type:        req.Type,
		IsFixed:     req.IsFixed,
		Color:       req.Color,
		Icon:        req.Icon,
		AuditFields: domain.AuditFields{CreatedAt: now, LastUpdatedAt: now},
	}
	if err := s.categoryRepo.SaveCategory(ctx, category); err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	return &category, nil
}

func (s *CategoryService) ListCategories(ctx context.Context, userID string) ([]domain.Category, error) {
	categories, err := s.categoryRepo.ListCategories(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	if categories == nil {
		categories = []domain.Category{}
	}
	return categories, nil
}

func (s *CategoryService) UpdateCategory(ctx context.Context, userID, categoryID string, req dto.CreateCategoryRequest) (*domain.Category, error) {
	category, err := s.categoryRepo.FindCategoryByID(ctx, userID, categoryID)
	if err != nil {
		return nil, err
	}
	category.Name = req.Name
	category.Type = req.Type
	category.IsFixed = req.IsFixed
	category.Color = req.Color
	category.Icon = req.Icon
	category.LastUpdatedAt = time.Now().UTC()
	if err := s.categoryRepo.UpdateCategory(ctx, *category); err != nil {
		return nil, fmt.Errorf("failed to update category: %w", err)
	}
	return category, nil
}

func (s *CategoryService) DeleteCategory(ctx context.Context, userID, categoryID string) error {
	return s.categoryRepo.DeleteCategory(ctx, userID, categoryID)
}
