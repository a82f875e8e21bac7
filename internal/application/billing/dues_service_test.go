package billing

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/hostelops/backend/internal/domain/billing"
	"github.com/hostelops/backend/internal/domain/shared"
	"github.com/hostelops/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type duesFixture struct {
	repos   *testRepositories
	service *DuesService
	tenancy *billing.Tenancy
}

func newDuesFixture(t *testing.T) *duesFixture {
	t.Helper()
	repos := newTestRepositories()
	tenancy, err := billing.NewTenancy(uuid.New(), uuid.New(), time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), valueobject.NewMoneyINRFromFloat(1200))
	require.NoError(t, err)
	return &duesFixture{
		repos:   repos,
		tenancy: tenancy,
		service: NewDuesService(repos.tenancies, repos.rentCharges, repos.bills, repos.utilityCharges, zap.NewNop()),
	}
}

func TestDuesService_GetOutstanding(t *testing.T) {
	t.Run("collects open rent charges and bills", func(t *testing.T) {
		f := newDuesFixture(t)
		jan := testPeriodApp(t, 2024, time.January)

		rc, err := billing.NewRentCharge(f.tenancy.ID, jan, valueobject.NewMoneyINRFromFloat(1200), jan.DueDate(5))
		require.NoError(t, err)
		require.NoError(t, rc.ApplyAllocation(decimal.NewFromInt(500)))
		bill, err := billing.NewBill(f.tenancy.ID, uuid.New(), "Mess charges", valueobject.NewMoneyINRFromFloat(300), jan.DueDate(10))
		require.NoError(t, err)

		f.repos.tenancies.On("FindActiveByTenant", mock.Anything, f.tenancy.TenantID).Return(f.tenancy, nil)
		f.repos.rentCharges.On("FindOpenByTenancy", mock.Anything, f.tenancy.ID, (*valueobject.Period)(nil)).Return([]*billing.RentCharge{rc}, nil)
		f.repos.bills.On("FindOpenByTenancy", mock.Anything, f.tenancy.ID).Return([]*billing.Bill{bill}, nil)
		f.repos.tenancies.On("CountActiveByRoom", mock.Anything, f.tenancy.RoomID).Return(int64(1), nil)
		f.repos.utilityCharges.On("FindByRoomAndPeriod", mock.Anything, f.tenancy.RoomID, jan).Return(nil, nil)

		statement, err := f.service.GetOutstanding(context.Background(), f.tenancy.TenantID, nil)
		require.NoError(t, err)
		require.Len(t, statement.Dues, 2)
		assert.True(t, statement.TotalOutstanding.Equal(decimal.NewFromInt(1000)))
		assert.Empty(t, statement.UtilityShares)
	})

	t.Run("utility total splits equally across room mates", func(t *testing.T) {
		f := newDuesFixture(t)
		mar := testPeriodApp(t, 2024, time.March)

		rc, err := billing.NewRentCharge(f.tenancy.ID, mar, valueobject.NewMoneyINRFromFloat(1200), mar.DueDate(5))
		require.NoError(t, err)
		utility, err := billing.NewSharedUtilityCharge(f.tenancy.RoomID, mar, valueobject.NewMoneyINRFromFloat(60))
		require.NoError(t, err)

		f.repos.tenancies.On("FindActiveByTenant", mock.Anything, f.tenancy.TenantID).Return(f.tenancy, nil)
		f.repos.rentCharges.On("FindOpenByTenancy", mock.Anything, f.tenancy.ID, (*valueobject.Period)(nil)).Return([]*billing.RentCharge{rc}, nil)
		f.repos.bills.On("FindOpenByTenancy", mock.Anything, f.tenancy.ID).Return([]*billing.Bill{}, nil)
		f.repos.tenancies.On("CountActiveByRoom", mock.Anything, f.tenancy.RoomID).Return(int64(2), nil)
		f.repos.utilityCharges.On("FindByRoomAndPeriod", mock.Anything, f.tenancy.RoomID, mar).Return(utility, nil)

		statement, err := f.service.GetOutstanding(context.Background(), f.tenancy.TenantID, nil)
		require.NoError(t, err)
		require.Len(t, statement.UtilityShares, 1)
		assert.True(t, statement.UtilityShares[0].Share.Equal(decimal.NewFromInt(30)), "got %s", statement.UtilityShares[0].Share)
	})

	t.Run("utility override replaces the equal split", func(t *testing.T) {
		f := newDuesFixture(t)
		mar := testPeriodApp(t, 2024, time.March)
		override := decimal.NewFromInt(45)
		require.NoError(t, f.tenancy.SetUtilityOverride(&override))

		rc, err := billing.NewRentCharge(f.tenancy.ID, mar, valueobject.NewMoneyINRFromFloat(1200), mar.DueDate(5))
		require.NoError(t, err)
		utility, err := billing.NewSharedUtilityCharge(f.tenancy.RoomID, mar, valueobject.NewMoneyINRFromFloat(60))
		require.NoError(t, err)

		f.repos.tenancies.On("FindActiveByTenant", mock.Anything, f.tenancy.TenantID).Return(f.tenancy, nil)
		f.repos.rentCharges.On("FindOpenByTenancy", mock.Anything, f.tenancy.ID, (*valueobject.Period)(nil)).Return([]*billing.RentCharge{rc}, nil)
		f.repos.bills.On("FindOpenByTenancy", mock.Anything, f.tenancy.ID).Return([]*billing.Bill{}, nil)
		f.repos.tenancies.On("CountActiveByRoom", mock.Anything, f.tenancy.RoomID).Return(int64(3), nil)
		f.repos.utilityCharges.On("FindByRoomAndPeriod", mock.Anything, f.tenancy.RoomID, mar).Return(utility, nil)

		statement, err := f.service.GetOutstanding(context.Background(), f.tenancy.TenantID, nil)
		require.NoError(t, err)
		require.Len(t, statement.UtilityShares, 1)
		assert.True(t, statement.UtilityShares[0].Share.Equal(override))
	})

	t.Run("no active tenancy", func(t *testing.T) {
		f := newDuesFixture(t)
		tenantID := uuid.New()
		f.repos.tenancies.On("FindActiveByTenant", mock.Anything, tenantID).Return(nil, nil)

		_, err := f.service.GetOutstanding(context.Background(), tenantID, nil)
		require.Error(t, err)
		var derr *shared.DomainError
		require.ErrorAs(t, err, &derr)
		assert.Equal(t, "TENANCY_NOT_FOUND", derr.Code)
	})
}

func TestDuesService_CalculateOutstandingBalance(t *testing.T) {
	f := newDuesFixture(t)
	require.NoError(t, f.tenancy.CarryForward(decimal.NewFromInt(400)))
	jan := testPeriodApp(t, 2024, time.January)

	rc, err := billing.NewRentCharge(f.tenancy.ID, jan, valueobject.NewMoneyINRFromFloat(1200), jan.DueDate(5))
	require.NoError(t, err)

	f.repos.tenancies.On("FindActiveByTenant", mock.Anything, f.tenancy.TenantID).Return(f.tenancy, nil)
	f.repos.rentCharges.On("FindOpenByTenancy", mock.Anything, f.tenancy.ID, (*valueobject.Period)(nil)).Return([]*billing.RentCharge{rc}, nil)
	f.repos.bills.On("FindOpenByTenancy", mock.Anything, f.tenancy.ID).Return([]*billing.Bill{}, nil)
	f.repos.tenancies.On("CountActiveByRoom", mock.Anything, f.tenancy.RoomID).Return(int64(1), nil)
	f.repos.utilityCharges.On("FindByRoomAndPeriod", mock.Anything, f.tenancy.RoomID, jan).Return(nil, nil)

	balance, err := f.service.CalculateOutstandingBalance(context.Background(), f.tenancy.TenantID)
	require.NoError(t, err)
	assert.True(t, balance.Equal(decimal.NewFromInt(1600)), "got %s", balance)
}
