package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/hostelops/backend/internal/domain/property"
	"github.com/hostelops/backend/internal/domain/shared"
	"github.com/hostelops/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormExpenseCategoryRepository implements property.ExpenseCategoryRepository using GORM
type GormExpenseCategoryRepository struct {
	db *gorm.DB
}

// NewGormExpenseCategoryRepository creates a new GormExpenseCategoryRepository
func NewGormExpenseCategoryRepository(db *gorm.DB) *GormExpenseCategoryRepository {
	return &GormExpenseCategoryRepository{db: db}
}

// FindByID finds an expense category by its ID. Returns nil when no category exists.
func (r *GormExpenseCategoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*property.ExpenseCategory, error) {
	var model models.ExpenseCategoryModel
	if err := r.db.WithContext(ctx).
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByName finds an expense category by its unique name
func (r *GormExpenseCategoryRepository) FindByName(ctx context.Context, name string) (*property.ExpenseCategory, error) {
	var model models.ExpenseCategoryModel
	if err := r.db.WithContext(ctx).
		Where("name = ?", name).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all expense categories
func (r *GormExpenseCategoryRepository) FindAll(ctx context.Context) ([]property.ExpenseCategory, error) {
	var categoryModels []models.ExpenseCategoryModel
	if err := r.db.WithContext(ctx).
		Order("name ASC").
		Find(&categoryModels).Error; err != nil {
		return nil, err
	}
	categories := make([]property.ExpenseCategory, len(categoryModels))
	for i, model := range categoryModels {
		categories[i] = *model.ToDomain()
	}
	return categories, nil
}

// Save creates or updates an expense category
func (r *GormExpenseCategoryRepository) Save(ctx context.Context, category *property.ExpenseCategory) error {
	model := models.ExpenseCategoryModelFromDomain(category)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete removes an expense category
func (r *GormExpenseCategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.ExpenseCategoryModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormExpenseCategoryRepository implements ExpenseCategoryRepository
var _ property.ExpenseCategoryRepository = (*GormExpenseCategoryRepository)(nil)
