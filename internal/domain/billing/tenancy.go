package billing

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hostelops/backend/internal/domain/shared"
	"github.com/hostelops/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// Tenancy is the active assignment of one tenant to one room and the central
// reference point for dues. At most one active tenancy exists per tenant.
// It is never physically removed while financial records reference it.
type Tenancy struct {
	shared.BaseAggregateRoot
	RoomID   uuid.UUID  `json:"room_id"`
	TenantID uuid.UUID  `json:"tenant_id"`
	Active   bool       `json:"active"`
	StartAt  time.Time  `json:"start_at"`
	EndAt    *time.Time `json:"end_at"`
	// MonthlyRent is the tenant's share of the room rent for one period
	MonthlyRent decimal.Decimal `json:"monthly_rent"`
	// PreviousBalance is the cumulative unpaid carry-forward from earlier
	// periods. It grows only during period rollover and shrinks only through
	// an explicit admin correction.
	PreviousBalance decimal.Decimal `json:"previous_balance"`
	// UtilityOverride, when set, replaces the prorated room utility share for
	// the current period
	UtilityOverride *decimal.Decimal `json:"utility_override"`
}

// NewTenancy creates a new active tenancy
func NewTenancy(roomID, tenantID uuid.UUID, startAt time.Time, monthlyRent valueobject.Money) (*Tenancy, error) {
	if roomID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ROOM", "Room ID cannot be empty")
	}
	if tenantID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_TENANT", "Tenant ID cannot be empty")
	}
	if startAt.IsZero() {
		return nil, shared.NewDomainError("INVALID_START_DATE", "Tenancy start date is required")
	}
	if monthlyRent.Amount().LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Monthly rent must be positive")
	}

	t := &Tenancy{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		RoomID:            roomID,
		TenantID:          tenantID,
		Active:            true,
		StartAt:           startAt,
		MonthlyRent:       monthlyRent.Amount(),
		PreviousBalance:   decimal.Zero,
	}
	t.AddDomainEvent(NewTenancyStartedEvent(t))
	return t, nil
}

// End closes the tenancy. Already-raised dues stay open and collectable.
func (t *Tenancy) End(endAt time.Time) error {
	if !t.Active {
		return shared.NewDomainError("INVALID_STATE", "Tenancy has already ended")
	}
	if endAt.Before(t.StartAt) {
		return shared.NewDomainError("INVALID_END_DATE", "Tenancy cannot end before it starts")
	}
	t.Active = false
	t.EndAt = &endAt
	t.Touch()
	t.IncrementVersion()
	t.AddDomainEvent(NewTenancyEndedEvent(t))
	return nil
}

// CarryForward adds an unpaid remainder from a closed period to the cumulative
// previous balance. Only the period rollover calls this; the balance is never
// auto-decremented.
func (t *Tenancy) CarryForward(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_AMOUNT", "Carry-forward amount must be positive")
	}
	t.PreviousBalance = t.PreviousBalance.Add(amount)
	t.Touch()
	t.IncrementVersion()
	t.AddDomainEvent(NewBalanceCarriedForwardEvent(t, amount))
	return nil
}

// CorrectPreviousBalance replaces the carry-forward balance by explicit admin
// action. The caller audits the change with before/after state.
func (t *Tenancy) CorrectPreviousBalance(newBalance decimal.Decimal) error {
	if newBalance.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", "Previous balance cannot be negative")
	}
	t.PreviousBalance = newBalance
	t.Touch()
	t.IncrementVersion()
	return nil
}

// UpdateMonthlyRent changes the rent share applied from the next rollover on
func (t *Tenancy) UpdateMonthlyRent(rent valueobject.Money) error {
	if !t.Active {
		return shared.NewDomainError("INVALID_STATE", "Cannot change rent of an ended tenancy")
	}
	if rent.Amount().LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_AMOUNT", "Monthly rent must be positive")
	}
	t.MonthlyRent = rent.Amount()
	t.Touch()
	t.IncrementVersion()
	return nil
}

// SetUtilityOverride pins this tenancy's utility share for the current period,
// or clears the override when amount is nil
func (t *Tenancy) SetUtilityOverride(amount *decimal.Decimal) error {
	if amount != nil && amount.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", fmt.Sprintf("Utility override cannot be negative, got %s", amount))
	}
	t.UtilityOverride = amount
	t.Touch()
	t.IncrementVersion()
	return nil
}

// GetMonthlyRentMoney returns the monthly rent as Money
func (t *Tenancy) GetMonthlyRentMoney() valueobject.Money {
	return valueobject.NewMoneyINR(t.MonthlyRent)
}

// GetPreviousBalanceMoney returns the carry-forward balance as Money
func (t *Tenancy) GetPreviousBalanceMoney() valueobject.Money {
	return valueobject.NewMoneyINR(t.PreviousBalance)
}
