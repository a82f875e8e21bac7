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

type mockRoomRepo struct {
	mock.Mock
}

func (m *mockRoomRepo) FindByID(ctx context.Context, id uuid.UUID) (*property.Room, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*property.Room), args.Error(1)
}

func (m *mockRoomRepo) FindByHostel(ctx context.Context, hostelID uuid.UUID) ([]property.Room, error) {
	args := m.Called(ctx, hostelID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]property.Room), args.Error(1)
}

func (m *mockRoomRepo) FindByNumber(ctx context.Context, hostelID uuid.UUID, number string) (*property.Room, error) {
	args := m.Called(ctx, hostelID, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*property.Room), args.Error(1)
}

func (m *mockRoomRepo) Save(ctx context.Context, room *property.Room) error {
	args := m.Called(ctx, room)
	return args.Error(0)
}

func (m *mockRoomRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type tenancyFixture struct {
	repos    *testRepositories
	roomRepo *mockRoomRepo
	service  *TenancyService
	room     *property.Room
}

func newTenancyFixture(t *testing.T) *tenancyFixture {
	t.Helper()
	repos := newTestRepositories()
	roomRepo := new(mockRoomRepo)
	room, err := property.NewRoom(uuid.New(), "101", 2)
	require.NoError(t, err)
	return &tenancyFixture{
		repos:    repos,
		roomRepo: roomRepo,
		room:     room,
		service:  NewTenancyService(NewNoOpTransactionScope(repos), roomRepo, shared.NopAuditLogger{}, zap.NewNop()),
	}
}

func TestTenancyService_CreateTenancy(t *testing.T) {
	actor := shared.SystemActor()
	startAt := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	t.Run("creates an active tenancy", func(t *testing.T) {
		f := newTenancyFixture(t)
		tenantID := uuid.New()

		f.roomRepo.On("FindByID", mock.Anything, f.room.ID).Return(f.room, nil)
		f.repos.tenancies.On("FindActiveByTenant", mock.Anything, tenantID).Return(nil, nil)
		f.repos.tenancies.On("CountActiveByRoom", mock.Anything, f.room.ID).Return(int64(0), nil)
		f.repos.tenancies.On("Save", mock.Anything, mock.AnythingOfType("*billing.Tenancy")).Return(nil)

		dto, err := f.service.CreateTenancy(context.Background(), actor, CreateTenancyRequest{
			RoomID:      f.room.ID,
			TenantID:    tenantID,
			StartAt:     startAt,
			MonthlyRent: decimal.NewFromInt(1200),
		})
		require.NoError(t, err)
		assert.True(t, dto.Active)
		assert.True(t, dto.PreviousBalance.IsZero())
		f.repos.assertExpectations(t)
	})

	t.Run("second active tenancy for a tenant rejected", func(t *testing.T) {
		f := newTenancyFixture(t)
		tenantID := uuid.New()
		existing, err := billing.NewTenancy(f.room.ID, tenantID, startAt, valueobject.NewMoneyINRFromFloat(1000))
		require.NoError(t, err)

		f.roomRepo.On("FindByID", mock.Anything, f.room.ID).Return(f.room, nil)
		f.repos.tenancies.On("FindActiveByTenant", mock.Anything, tenantID).Return(existing, nil)

		_, err = f.service.CreateTenancy(context.Background(), actor, CreateTenancyRequest{
			RoomID:      f.room.ID,
			TenantID:    tenantID,
			StartAt:     startAt,
			MonthlyRent: decimal.NewFromInt(1200),
		})
		require.Error(t, err)
		var derr *shared.DomainError
		require.ErrorAs(t, err, &derr)
		assert.Equal(t, "ACTIVE_TENANCY_EXISTS", derr.Code)
		f.repos.tenancies.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("full room rejected", func(t *testing.T) {
		f := newTenancyFixture(t)
		tenantID := uuid.New()

		f.roomRepo.On("FindByID", mock.Anything, f.room.ID).Return(f.room, nil)
		f.repos.tenancies.On("FindActiveByTenant", mock.Anything, tenantID).Return(nil, nil)
		f.repos.tenancies.On("CountActiveByRoom", mock.Anything, f.room.ID).Return(int64(2), nil)

		_, err := f.service.CreateTenancy(context.Background(), actor, CreateTenancyRequest{
			RoomID:      f.room.ID,
			TenantID:    tenantID,
			StartAt:     startAt,
			MonthlyRent: decimal.NewFromInt(1200),
		})
		require.Error(t, err)
		var derr *shared.DomainError
		require.ErrorAs(t, err, &derr)
		assert.Equal(t, "ROOM_FULL", derr.Code)
	})

	t.Run("inactive room rejected", func(t *testing.T) {
		f := newTenancyFixture(t)
		require.NoError(t, f.room.Deactivate())
		f.roomRepo.On("FindByID", mock.Anything, f.room.ID).Return(f.room, nil)

		_, err := f.service.CreateTenancy(context.Background(), actor, CreateTenancyRequest{
			RoomID:      f.room.ID,
			TenantID:    uuid.New(),
			StartAt:     startAt,
			MonthlyRent: decimal.NewFromInt(1200),
		})
		assert.Error(t, err)
	})
}

func TestTenancyService_EndTenancy(t *testing.T) {
	f := newTenancyFixture(t)
	tenancy, err := billing.NewTenancy(f.room.ID, uuid.New(), time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), valueobject.NewMoneyINRFromFloat(1200))
	require.NoError(t, err)

	f.repos.tenancies.On("FindByID", mock.Anything, tenancy.ID).Return(tenancy, nil)
	f.repos.tenancies.On("SaveWithLock", mock.Anything, tenancy).Return(nil)

	dto, err := f.service.EndTenancy(context.Background(), shared.SystemActor(), EndTenancyRequest{
		TenancyID: tenancy.ID,
		EndAt:     time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.False(t, dto.Active)
	require.NotNil(t, dto.EndAt)
}

func TestTenancyService_CorrectPreviousBalance(t *testing.T) {
	f := newTenancyFixture(t)
	tenancy, err := billing.NewTenancy(f.room.ID, uuid.New(), time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), valueobject.NewMoneyINRFromFloat(1200))
	require.NoError(t, err)
	require.NoError(t, tenancy.CarryForward(decimal.NewFromInt(900)))

	f.repos.tenancies.On("FindByID", mock.Anything, tenancy.ID).Return(tenancy, nil)
	f.repos.tenancies.On("SaveWithLock", mock.Anything, tenancy).Return(nil)

	dto, err := f.service.CorrectPreviousBalance(context.Background(), shared.UserActor(uuid.New(), "admin"), CorrectBalanceRequest{
		TenancyID:  tenancy.ID,
		NewBalance: decimal.NewFromInt(400),
		Reason:     "cash received offline",
	})
	require.NoError(t, err)
	assert.True(t, dto.PreviousBalance.Equal(decimal.NewFromInt(400)))
}
