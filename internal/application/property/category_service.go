package property

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/hostelops/backend/internal/domain/property"
	"github.com/hostelops/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// CategoryService manages expense categories used by ad-hoc bills
type CategoryService struct {
	categoryRepo property.ExpenseCategoryRepository
	logger       *zap.Logger
}

// NewCategoryService creates a new category service
func NewCategoryService(categoryRepo property.ExpenseCategoryRepository, logger *zap.Logger) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo, logger: logger}
}

// CreateCategory creates an expense category. Names are unique.
func (s *CategoryService) CreateCategory(ctx context.Context, req CreateCategoryRequest) (*CategoryDTO, error) {
	existing, err := s.categoryRepo.FindByName(ctx, req.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS",
			fmt.Sprintf("Category %q already exists", req.Name))
	}

	category, err := property.NewExpenseCategory(req.Name, req.Description)
	if err != nil {
		return nil, err
	}
	if err := s.categoryRepo.Save(ctx, category); err != nil {
		return nil, fmt.Errorf("failed to save category: %w", err)
	}

	s.logger.Info("expense category created", zap.String("name", category.Name))
	dto := ToCategoryDTO(category)
	return &dto, nil
}

// UpdateCategory changes a category's name or description
func (s *CategoryService) UpdateCategory(ctx context.Context, id uuid.UUID, req CreateCategoryRequest) (*CategoryDTO, error) {
	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, shared.NewDomainError("CATEGORY_NOT_FOUND", "Expense category not found")
	}
	if err := category.Update(req.Name, req.Description); err != nil {
		return nil, err
	}
	if err := s.categoryRepo.Save(ctx, category); err != nil {
		return nil, fmt.Errorf("failed to save category: %w", err)
	}

	dto := ToCategoryDTO(category)
	return &dto, nil
}

// ListCategories returns all expense categories
func (s *CategoryService) ListCategories(ctx context.Context) ([]CategoryDTO, error) {
	categories, err := s.categoryRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	dtos := make([]CategoryDTO, 0, len(categories))
	for i := range categories {
		dtos = append(dtos, ToCategoryDTO(&categories[i]))
	}
	return dtos, nil
}
