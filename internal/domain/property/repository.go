package property

import (
	"context"

	"github.com/google/uuid"
)

// HostelRepository provides persistence access to Hostel aggregates
type HostelRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Hostel, error)
	FindAll(ctx context.Context, activeOnly bool) ([]Hostel, error)
	Save(ctx context.Context, hostel *Hostel) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// RoomRepository provides persistence access to Room aggregates
type RoomRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Room, error)
	FindByHostel(ctx context.Context, hostelID uuid.UUID) ([]Room, error)
	FindByNumber(ctx context.Context, hostelID uuid.UUID, number string) (*Room, error)
	Save(ctx context.Context, room *Room) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// TenantProfileRepository provides persistence access to TenantProfile aggregates
type TenantProfileRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*TenantProfile, error)
	FindAll(ctx context.Context, activeOnly bool) ([]TenantProfile, error)
	Save(ctx context.Context, tenant *TenantProfile) error
}

// ExpenseCategoryRepository provides persistence access to ExpenseCategory aggregates
type ExpenseCategoryRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ExpenseCategory, error)
	FindByName(ctx context.Context, name string) (*ExpenseCategory, error)
	FindAll(ctx context.Context) ([]ExpenseCategory, error)
	Save(ctx context.Context, category *ExpenseCategory) error
	Delete(ctx context.Context, id uuid.UUID) error
}
