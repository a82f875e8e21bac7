package billing

import (
	"context"

	"github.com/google/uuid"
	"github.com/hostelops/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// TenancyRepository defines the interface for tenancy persistence
type TenancyRepository interface {
	Save(ctx context.Context, tenancy *Tenancy) error
	SaveWithLock(ctx context.Context, tenancy *Tenancy) error
	FindByID(ctx context.Context, id uuid.UUID) (*Tenancy, error)
	FindActiveByTenant(ctx context.Context, tenantID uuid.UUID) (*Tenancy, error)
	FindActiveByRoom(ctx context.Context, roomID uuid.UUID) ([]*Tenancy, error)
	CountActiveByRoom(ctx context.Context, roomID uuid.UUID) (int64, error)
	FindAllActive(ctx context.Context) ([]*Tenancy, error)
	FindByTenant(ctx context.Context, tenantID uuid.UUID) ([]*Tenancy, error)
}

// RentChargeRepository defines the interface for rent charge persistence
type RentChargeRepository interface {
	Save(ctx context.Context, charge *RentCharge) error
	SaveWithLock(ctx context.Context, charge *RentCharge) error
	FindByID(ctx context.Context, id uuid.UUID) (*RentCharge, error)
	FindByTenancyAndPeriod(ctx context.Context, tenancyID uuid.UUID, period valueobject.Period) (*RentCharge, error)
	ExistsForPeriod(ctx context.Context, tenancyID uuid.UUID, period valueobject.Period) (bool, error)
	// FindOpenByTenancy returns unpaid and partially paid charges for a
	// tenancy, optionally restricted to a single period.
	FindOpenByTenancy(ctx context.Context, tenancyID uuid.UUID, period *valueobject.Period) ([]*RentCharge, error)
}

// BillRepository defines the interface for ad-hoc bill persistence
type BillRepository interface {
	Save(ctx context.Context, bill *Bill) error
	SaveWithLock(ctx context.Context, bill *Bill) error
	FindByID(ctx context.Context, id uuid.UUID) (*Bill, error)
	FindOpenByTenancy(ctx context.Context, tenancyID uuid.UUID) ([]*Bill, error)
	FindByTenancy(ctx context.Context, tenancyID uuid.UUID) ([]*Bill, error)
}

// UtilityChargeRepository defines the interface for shared utility charge persistence
type UtilityChargeRepository interface {
	Save(ctx context.Context, charge *SharedUtilityCharge) error
	FindByID(ctx context.Context, id uuid.UUID) (*SharedUtilityCharge, error)
	FindByRoomAndPeriod(ctx context.Context, roomID uuid.UUID, period valueobject.Period) (*SharedUtilityCharge, error)
}

// PaymentRepository defines the interface for payment persistence.
// Allocations are persisted together with their owning payment.
type PaymentRepository interface {
	Save(ctx context.Context, payment *Payment) error
	FindByID(ctx context.Context, id uuid.UUID) (*Payment, error)
	FindByTenant(ctx context.Context, tenantID uuid.UUID) ([]*Payment, error)
	// SumAllocationsForDue returns the total amount allocated to a due across
	// all payments. Paid amounts on dues are derived from this sum.
	SumAllocationsForDue(ctx context.Context, due DueRef) (decimal.Decimal, error)
}
