package property

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/hostelops/backend/internal/domain/property"
	"github.com/hostelops/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockExpenseCategoryRepository struct {
	mock.Mock
}

func (m *MockExpenseCategoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*property.ExpenseCategory, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*property.ExpenseCategory), args.Error(1)
}

func (m *MockExpenseCategoryRepository) FindByName(ctx context.Context, name string) (*property.ExpenseCategory, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*property.ExpenseCategory), args.Error(1)
}

func (m *MockExpenseCategoryRepository) FindAll(ctx context.Context) ([]property.ExpenseCategory, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]property.ExpenseCategory), args.Error(1)
}

func (m *MockExpenseCategoryRepository) Save(ctx context.Context, category *property.ExpenseCategory) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockExpenseCategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func newCategoryService() (*CategoryService, *MockExpenseCategoryRepository) {
	repo := new(MockExpenseCategoryRepository)
	return NewCategoryService(repo, zap.NewNop()), repo
}

func TestCategoryService_CreateCategory(t *testing.T) {
	t.Run("creates a category", func(t *testing.T) {
		service, repo := newCategoryService()
		repo.On("FindByName", mock.Anything, "Maintenance").Return(nil, nil)
		repo.On("Save", mock.Anything, mock.AnythingOfType("*property.ExpenseCategory")).Return(nil)

		dto, err := service.CreateCategory(context.Background(), CreateCategoryRequest{
			Name:        "Maintenance",
			Description: "Repairs and upkeep",
		})

		require.NoError(t, err)
		assert.Equal(t, "Maintenance", dto.Name)
		repo.AssertExpectations(t)
	})

	t.Run("rejects a duplicate name", func(t *testing.T) {
		service, repo := newCategoryService()
		existing, err := property.NewExpenseCategory("Maintenance", "")
		require.NoError(t, err)
		repo.On("FindByName", mock.Anything, "Maintenance").Return(existing, nil)

		_, err = service.CreateCategory(context.Background(), CreateCategoryRequest{Name: "Maintenance"})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
	})
}

func TestCategoryService_UpdateCategory(t *testing.T) {
	t.Run("renames a category", func(t *testing.T) {
		service, repo := newCategoryService()
		category, err := property.NewExpenseCategory("Maintenance", "")
		require.NoError(t, err)

		repo.On("FindByID", mock.Anything, category.ID).Return(category, nil)
		repo.On("Save", mock.Anything, category).Return(nil)

		dto, err := service.UpdateCategory(context.Background(), category.ID, CreateCategoryRequest{
			Name:        "Upkeep",
			Description: "Repairs",
		})

		require.NoError(t, err)
		assert.Equal(t, "Upkeep", dto.Name)
		repo.AssertExpectations(t)
	})

	t.Run("unknown category", func(t *testing.T) {
		service, repo := newCategoryService()
		id := uuid.New()
		repo.On("FindByID", mock.Anything, id).Return(nil, nil)

		_, err := service.UpdateCategory(context.Background(), id, CreateCategoryRequest{Name: "Upkeep"})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "CATEGORY_NOT_FOUND", domainErr.Code)
	})
}

func TestCategoryService_ListCategories(t *testing.T) {
	service, repo := newCategoryService()

	maintenance, err := property.NewExpenseCategory("Maintenance", "")
	require.NoError(t, err)
	laundry, err := property.NewExpenseCategory("Laundry", "")
	require.NoError(t, err)

	repo.On("FindAll", mock.Anything).Return([]property.ExpenseCategory{*laundry, *maintenance}, nil)

	dtos, err := service.ListCategories(context.Background())

	require.NoError(t, err)
	require.Len(t, dtos, 2)
	assert.Equal(t, "Laundry", dtos[0].Name)
}
