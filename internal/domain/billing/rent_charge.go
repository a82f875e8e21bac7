package billing

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hostelops/backend/internal/domain/shared"
	"github.com/hostelops/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// RentCharge is one period's rent obligation for a tenancy. Exactly one exists
// per (tenancy, period); the pair carries a unique constraint in storage as
// the hard idempotence guard for period rollover.
type RentCharge struct {
	shared.BaseAggregateRoot
	TenancyID  uuid.UUID          `json:"tenancy_id"`
	Period     valueobject.Period `json:"period"`
	Amount     decimal.Decimal    `json:"amount"`
	AmountPaid decimal.Decimal    `json:"amount_paid"`
	Status     DueStatus          `json:"status"`
	DueDate    time.Time          `json:"due_date"`
}

// NewRentCharge opens a new rent charge for a period
func NewRentCharge(tenancyID uuid.UUID, period valueobject.Period, amount valueobject.Money, dueDate time.Time) (*RentCharge, error) {
	if tenancyID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_TENANCY", "Tenancy ID cannot be empty")
	}
	if period.IsZero() {
		return nil, shared.NewDomainError("INVALID_PERIOD", "Billing period is required")
	}
	if amount.Amount().LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Rent amount must be positive")
	}
	if dueDate.IsZero() {
		return nil, shared.NewDomainError("INVALID_DUE_DATE", "Due date is required")
	}

	rc := &RentCharge{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		TenancyID:         tenancyID,
		Period:            period,
		Amount:            amount.Amount(),
		AmountPaid:        decimal.Zero,
		Status:            DueStatusDue,
		DueDate:           dueDate,
	}
	rc.AddDomainEvent(NewRentChargeOpenedEvent(rc))
	return rc, nil
}

// Ref returns the due reference for allocations
func (rc *RentCharge) Ref() DueRef {
	return RentDueRef(rc.ID)
}

// Outstanding returns the unpaid remainder
func (rc *RentCharge) Outstanding() decimal.Decimal {
	return rc.Amount.Sub(rc.AmountPaid)
}

// CanReceiveAllocation reports whether the charge accepts further payment
func (rc *RentCharge) CanReceiveAllocation() bool {
	return rc.Status.IsOpen()
}

// ApplyAllocation increases the settled portion by the allocated amount.
// Allocations beyond the outstanding remainder are rejected.
func (rc *RentCharge) ApplyAllocation(amount decimal.Decimal) error {
	if !rc.Status.IsOpen() {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot allocate to rent charge in %s status", rc.Status))
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_AMOUNT", "Allocation amount must be positive")
	}
	if amount.GreaterThan(rc.Outstanding()) {
		return shared.NewDomainError("EXCEEDS_OUTSTANDING",
			fmt.Sprintf("Allocation %s exceeds outstanding %s", amount, rc.Outstanding()))
	}
	return rc.Recalculate(rc.AmountPaid.Add(amount))
}

// Recalculate sets the paid amount to the live sum of allocation rows for this
// charge and derives the status from it. The paid amount is a materialized
// value, never an independently mutated counter.
func (rc *RentCharge) Recalculate(allocatedTotal decimal.Decimal) error {
	if allocatedTotal.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", "Allocated total cannot be negative")
	}
	if allocatedTotal.GreaterThan(rc.Amount) {
		return shared.NewDomainError("EXCEEDS_OUTSTANDING",
			fmt.Sprintf("Allocated total %s exceeds charge amount %s", allocatedTotal, rc.Amount))
	}

	previous := rc.Status
	rc.AmountPaid = allocatedTotal
	rc.Status = DeriveDueStatus(rc.Amount, rc.AmountPaid)
	rc.Touch()
	rc.IncrementVersion()

	if rc.Status == DueStatusPaid && previous != DueStatusPaid {
		rc.AddDomainEvent(NewDueSettledEvent(rc.Ref(), rc.TenancyID, rc.Amount))
	}
	return nil
}

// IsOverdue returns true if the charge is past its due date and still open
func (rc *RentCharge) IsOverdue() bool {
	return rc.Status.IsOpen() && time.Now().After(rc.DueDate)
}

// GetAmountMoney returns the charge amount as Money
func (rc *RentCharge) GetAmountMoney() valueobject.Money {
	return valueobject.NewMoneyINR(rc.Amount)
}

// GetOutstandingMoney returns the unpaid remainder as Money
func (rc *RentCharge) GetOutstandingMoney() valueobject.Money {
	return valueobject.NewMoneyINR(rc.Outstanding())
}
