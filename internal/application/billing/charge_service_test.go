package billing

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/hostelops/backend/internal/domain/billing"
	"github.com/hostelops/backend/internal/domain/property"
	"github.com/hostelops/backend/internal/domain/shared"
	"github.com/hostelops/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockCategoryRepo struct {
	mock.Mock
}

func (m *mockCategoryRepo) FindByID(ctx context.Context, id uuid.UUID) (*property.ExpenseCategory, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*property.ExpenseCategory), args.Error(1)
}

func (m *mockCategoryRepo) FindByName(ctx context.Context, name string) (*property.ExpenseCategory, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*property.ExpenseCategory), args.Error(1)
}

func (m *mockCategoryRepo) FindAll(ctx context.Context) ([]property.ExpenseCategory, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]property.ExpenseCategory), args.Error(1)
}

func (m *mockCategoryRepo) Save(ctx context.Context, category *property.ExpenseCategory) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *mockCategoryRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type chargeFixture struct {
	repos        *testRepositories
	categoryRepo *mockCategoryRepo
	service      *ChargeService
	category     *property.ExpenseCategory
	tenancy      *billing.Tenancy
}

func newChargeFixture(t *testing.T) *chargeFixture {
	t.Helper()

	repos := newTestRepositories()
	categoryRepo := new(mockCategoryRepo)

	category, err := property.NewExpenseCategory("Maintenance", "Repairs and upkeep")
	require.NoError(t, err)

	rent, err := valueobject.NewMoney(decimal.NewFromInt(8000), valueobject.DefaultCurrency)
	require.NoError(t, err)
	tenancy, err := billing.NewTenancy(uuid.New(), uuid.New(), time.Now().AddDate(0, -2, 0), rent)
	require.NoError(t, err)

	return &chargeFixture{
		repos:        repos,
		categoryRepo: categoryRepo,
		category:     category,
		tenancy:      tenancy,
		service:      NewChargeService(NewNoOpTransactionScope(repos), categoryRepo, shared.NopAuditLogger{}, zap.NewNop()),
	}
}

func TestChargeService_RecordBill(t *testing.T) {
	actor := shared.SystemActor()

	t.Run("records a bill against an existing tenancy", func(t *testing.T) {
		f := newChargeFixture(t)
		req := RecordBillRequest{
			TenancyID:   f.tenancy.ID,
			CategoryID:  f.category.ID,
			Description: "Broken window",
			Amount:      decimal.NewFromInt(500),
			DueDate:     time.Now().AddDate(0, 0, 7),
		}

		f.categoryRepo.On("FindByID", mock.Anything, f.category.ID).Return(f.category, nil)
		f.repos.tenancies.On("FindByID", mock.Anything, f.tenancy.ID).Return(f.tenancy, nil)
		f.repos.bills.On("Save", mock.Anything, mock.AnythingOfType("*billing.Bill")).Return(nil)

		bill, err := f.service.RecordBill(context.Background(), actor, req)

		require.NoError(t, err)
		assert.Equal(t, f.tenancy.ID, bill.TenancyID)
		assert.Equal(t, billing.DueStatusDue, bill.Status)
		assert.True(t, bill.Amount.Equal(decimal.NewFromInt(500)))
		f.repos.assertExpectations(t)
		f.categoryRepo.AssertExpectations(t)
	})

	t.Run("rejects unknown category", func(t *testing.T) {
		f := newChargeFixture(t)
		req := RecordBillRequest{
			TenancyID:   f.tenancy.ID,
			CategoryID:  uuid.New(),
			Description: "Broken window",
			Amount:      decimal.NewFromInt(500),
			DueDate:     time.Now().AddDate(0, 0, 7),
		}

		f.categoryRepo.On("FindByID", mock.Anything, req.CategoryID).Return(nil, nil)

		_, err := f.service.RecordBill(context.Background(), actor, req)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "CATEGORY_NOT_FOUND", domainErr.Code)
	})

	t.Run("rejects unknown tenancy", func(t *testing.T) {
		f := newChargeFixture(t)
		req := RecordBillRequest{
			TenancyID:   uuid.New(),
			CategoryID:  f.category.ID,
			Description: "Broken window",
			Amount:      decimal.NewFromInt(500),
			DueDate:     time.Now().AddDate(0, 0, 7),
		}

		f.categoryRepo.On("FindByID", mock.Anything, f.category.ID).Return(f.category, nil)
		f.repos.tenancies.On("FindByID", mock.Anything, req.TenancyID).Return(nil, nil)

		_, err := f.service.RecordBill(context.Background(), actor, req)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "TENANCY_NOT_FOUND", domainErr.Code)
	})

	t.Run("rejects non-positive amount", func(t *testing.T) {
		f := newChargeFixture(t)
		req := RecordBillRequest{
			TenancyID:   f.tenancy.ID,
			CategoryID:  f.category.ID,
			Description: "Broken window",
			Amount:      decimal.Zero,
			DueDate:     time.Now().AddDate(0, 0, 7),
		}

		// No expectations on the category repo: validation must fail before
		// any lookup happens.
		_, err := f.service.RecordBill(context.Background(), actor, req)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_AMOUNT", domainErr.Code)
		f.categoryRepo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	})
}

func TestChargeService_RecordUtilityCharge(t *testing.T) {
	actor := shared.SystemActor()
	roomID := uuid.New()

	t.Run("creates a new charge for the period", func(t *testing.T) {
		f := newChargeFixture(t)
		req := RecordUtilityChargeRequest{
			RoomID: roomID,
			Period: "2026-08",
			Total:  decimal.NewFromInt(1200),
		}
		period, err := valueobject.ParsePeriod("2026-08")
		require.NoError(t, err)

		f.repos.utilityCharges.On("FindByRoomAndPeriod", mock.Anything, roomID, period).Return(nil, nil)
		f.repos.utilityCharges.On("Save", mock.Anything, mock.AnythingOfType("*billing.SharedUtilityCharge")).Return(nil)

		charge, err := f.service.RecordUtilityCharge(context.Background(), actor, req)

		require.NoError(t, err)
		assert.Equal(t, roomID, charge.RoomID)
		assert.True(t, charge.TotalAmount.Equal(decimal.NewFromInt(1200)))
		f.repos.assertExpectations(t)
	})

	t.Run("replaces the total of an existing charge", func(t *testing.T) {
		f := newChargeFixture(t)
		period, err := valueobject.ParsePeriod("2026-08")
		require.NoError(t, err)
		total, err := valueobject.NewMoney(decimal.NewFromInt(900), valueobject.DefaultCurrency)
		require.NoError(t, err)
		existing, err := billing.NewSharedUtilityCharge(roomID, period, total)
		require.NoError(t, err)

		req := RecordUtilityChargeRequest{
			RoomID: roomID,
			Period: "2026-08",
			Total:  decimal.NewFromInt(1500),
		}

		f.repos.utilityCharges.On("FindByRoomAndPeriod", mock.Anything, roomID, period).Return(existing, nil)
		f.repos.utilityCharges.On("Save", mock.Anything, existing).Return(nil)

		charge, err := f.service.RecordUtilityCharge(context.Background(), actor, req)

		require.NoError(t, err)
		assert.Equal(t, existing.ID, charge.ID)
		assert.True(t, charge.TotalAmount.Equal(decimal.NewFromInt(1500)))
		f.repos.assertExpectations(t)
	})

	t.Run("rejects a malformed period", func(t *testing.T) {
		f := newChargeFixture(t)
		req := RecordUtilityChargeRequest{
			RoomID: roomID,
			Period: "August 2026",
			Total:  decimal.NewFromInt(1200),
		}

		_, err := f.service.RecordUtilityCharge(context.Background(), actor, req)

		assert.Error(t, err)
	})
}
