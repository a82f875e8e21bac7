package billing

import (
	"github.com/google/uuid"
	"github.com/hostelops/backend/internal/domain/shared"
	"github.com/hostelops/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// SharedUtilityCharge is a room-level charge for one period, divided among the
// room's currently active tenancies at read time. No per-tenant snapshot of
// the split is stored: if the roommate count changes, every roommate's share
// changes on the next read.
type SharedUtilityCharge struct {
	shared.BaseAggregateRoot
	RoomID      uuid.UUID          `json:"room_id"`
	Period      valueobject.Period `json:"period"`
	TotalAmount decimal.Decimal    `json:"total_amount"`
}

// NewSharedUtilityCharge records a room's utility total for a period
func NewSharedUtilityCharge(roomID uuid.UUID, period valueobject.Period, total valueobject.Money) (*SharedUtilityCharge, error) {
	if roomID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ROOM", "Room ID cannot be empty")
	}
	if period.IsZero() {
		return nil, shared.NewDomainError("INVALID_PERIOD", "Billing period is required")
	}
	if total.Amount().LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Utility total must be positive")
	}
	return &SharedUtilityCharge{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		RoomID:            roomID,
		Period:            period,
		TotalAmount:       total.Amount(),
	}, nil
}

// UpdateTotal replaces the recorded utility total for the period
func (c *SharedUtilityCharge) UpdateTotal(total valueobject.Money) error {
	if total.Amount().LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_AMOUNT", "Utility total must be positive")
	}
	c.TotalAmount = total.Amount()
	c.Touch()
	c.IncrementVersion()
	return nil
}

// ShareAmong prorates the total equally across the given number of active
// co-tenants, rounded to 2 decimal places
func (c *SharedUtilityCharge) ShareAmong(activeTenancies int) (decimal.Decimal, error) {
	if activeTenancies < 1 {
		return decimal.Zero, shared.NewDomainError("INVALID_COUNT", "Cannot prorate a charge across zero tenancies")
	}
	return c.TotalAmount.Div(decimal.NewFromInt(int64(activeTenancies))).Round(2), nil
}
