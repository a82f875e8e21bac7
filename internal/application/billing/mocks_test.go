package billing

import (
	"context"

	"github.com/google/uuid"
	"github.com/hostelops/backend/internal/domain/billing"
	"github.com/hostelops/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

type MockTenancyRepository struct {
	mock.Mock
}

func (m *MockTenancyRepository) Save(ctx context.Context, tenancy *billing.Tenancy) error {
	args := m.Called(ctx, tenancy)
	return args.Error(0)
}

func (m *MockTenancyRepository) SaveWithLock(ctx context.Context, tenancy *billing.Tenancy) error {
	args := m.Called(ctx, tenancy)
	return args.Error(0)
}

func (m *MockTenancyRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.Tenancy, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Tenancy), args.Error(1)
}

func (m *MockTenancyRepository) FindActiveByTenant(ctx context.Context, tenantID uuid.UUID) (*billing.Tenancy, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Tenancy), args.Error(1)
}

func (m *MockTenancyRepository) FindActiveByRoom(ctx context.Context, roomID uuid.UUID) ([]*billing.Tenancy, error) {
	args := m.Called(ctx, roomID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*billing.Tenancy), args.Error(1)
}

func (m *MockTenancyRepository) CountActiveByRoom(ctx context.Context, roomID uuid.UUID) (int64, error) {
	args := m.Called(ctx, roomID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTenancyRepository) FindAllActive(ctx context.Context) ([]*billing.Tenancy, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*billing.Tenancy), args.Error(1)
}

func (m *MockTenancyRepository) FindByTenant(ctx context.Context, tenantID uuid.UUID) ([]*billing.Tenancy, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*billing.Tenancy), args.Error(1)
}

type MockRentChargeRepository struct {
	mock.Mock
}

func (m *MockRentChargeRepository) Save(ctx context.Context, charge *billing.RentCharge) error {
	args := m.Called(ctx, charge)
	return args.Error(0)
}

func (m *MockRentChargeRepository) SaveWithLock(ctx context.Context, charge *billing.RentCharge) error {
	args := m.Called(ctx, charge)
	return args.Error(0)
}

func (m *MockRentChargeRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.RentCharge, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.RentCharge), args.Error(1)
}

func (m *MockRentChargeRepository) FindByTenancyAndPeriod(ctx context.Context, tenancyID uuid.UUID, period valueobject.Period) (*billing.RentCharge, error) {
	args := m.Called(ctx, tenancyID, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.RentCharge), args.Error(1)
}

func (m *MockRentChargeRepository) ExistsForPeriod(ctx context.Context, tenancyID uuid.UUID, period valueobject.Period) (bool, error) {
	args := m.Called(ctx, tenancyID, period)
	return args.Bool(0), args.Error(1)
}

func (m *MockRentChargeRepository) FindOpenByTenancy(ctx context.Context, tenancyID uuid.UUID, period *valueobject.Period) ([]*billing.RentCharge, error) {
	args := m.Called(ctx, tenancyID, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*billing.RentCharge), args.Error(1)
}

type MockBillRepository struct {
	mock.Mock
}

func (m *MockBillRepository) Save(ctx context.Context, bill *billing.Bill) error {
	args := m.Called(ctx, bill)
	return args.Error(0)
}

func (m *MockBillRepository) SaveWithLock(ctx context.Context, bill *billing.Bill) error {
	args := m.Called(ctx, bill)
	return args.Error(0)
}

func (m *MockBillRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.Bill, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Bill), args.Error(1)
}

func (m *MockBillRepository) FindOpenByTenancy(ctx context.Context, tenancyID uuid.UUID) ([]*billing.Bill, error) {
	args := m.Called(ctx, tenancyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*billing.Bill), args.Error(1)
}

func (m *MockBillRepository) FindByTenancy(ctx context.Context, tenancyID uuid.UUID) ([]*billing.Bill, error) {
	args := m.Called(ctx, tenancyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*billing.Bill), args.Error(1)
}

type MockUtilityChargeRepository struct {
	mock.Mock
}

func (m *MockUtilityChargeRepository) Save(ctx context.Context, charge *billing.SharedUtilityCharge) error {
	args := m.Called(ctx, charge)
	return args.Error(0)
}

func (m *MockUtilityChargeRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.SharedUtilityCharge, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.SharedUtilityCharge), args.Error(1)
}

func (m *MockUtilityChargeRepository) FindByRoomAndPeriod(ctx context.Context, roomID uuid.UUID, period valueobject.Period) (*billing.SharedUtilityCharge, error) {
	args := m.Called(ctx, roomID, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.SharedUtilityCharge), args.Error(1)
}

type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) Save(ctx context.Context, payment *billing.Payment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func (m *MockPaymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.Payment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Payment), args.Error(1)
}

func (m *MockPaymentRepository) FindByTenant(ctx context.Context, tenantID uuid.UUID) ([]*billing.Payment, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*billing.Payment), args.Error(1)
}

func (m *MockPaymentRepository) SumAllocationsForDue(ctx context.Context, due billing.DueRef) (decimal.Decimal, error) {
	args := m.Called(ctx, due)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// testRepositories bundles the mocks behind the transactional contract
type testRepositories struct {
	tenancies      *MockTenancyRepository
	rentCharges    *MockRentChargeRepository
	bills          *MockBillRepository
	payments       *MockPaymentRepository
	utilityCharges *MockUtilityChargeRepository
}

func newTestRepositories() *testRepositories {
	return &testRepositories{
		tenancies:      new(MockTenancyRepository),
		rentCharges:    new(MockRentChargeRepository),
		bills:          new(MockBillRepository),
		payments:       new(MockPaymentRepository),
		utilityCharges: new(MockUtilityChargeRepository),
	}
}

func (r *testRepositories) Tenancies() billing.TenancyRepository             { return r.tenancies }
func (r *testRepositories) RentCharges() billing.RentChargeRepository       { return r.rentCharges }
func (r *testRepositories) Bills() billing.BillRepository                   { return r.bills }
func (r *testRepositories) Payments() billing.PaymentRepository             { return r.payments }
func (r *testRepositories) UtilityCharges() billing.UtilityChargeRepository { return r.utilityCharges }

func (r *testRepositories) assertExpectations(t mock.TestingT) {
	r.tenancies.AssertExpectations(t)
	r.rentCharges.AssertExpectations(t)
	r.bills.AssertExpectations(t)
	r.payments.AssertExpectations(t)
	r.utilityCharges.AssertExpectations(t)
}
