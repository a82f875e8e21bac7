package billing

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hostelops/backend/internal/domain/shared"
	"github.com/hostelops/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// Bill is a miscellaneous itemized charge against a tenancy, classified by an
// expense category
type Bill struct {
	shared.BaseAggregateRoot
	TenancyID   uuid.UUID       `json:"tenancy_id"`
	CategoryID  uuid.UUID       `json:"category_id"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	AmountPaid  decimal.Decimal `json:"amount_paid"`
	Status      DueStatus       `json:"status"`
	DueDate     time.Time       `json:"due_date"`
}

// NewBill raises a new bill against a tenancy
func NewBill(tenancyID, categoryID uuid.UUID, description string, amount valueobject.Money, dueDate time.Time) (*Bill, error) {
	if tenancyID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_TENANCY", "Tenancy ID cannot be empty")
	}
	if categoryID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CATEGORY", "Expense category ID cannot be empty")
	}
	if amount.Amount().LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Bill amount must be positive")
	}
	if dueDate.IsZero() {
		return nil, shared.NewDomainError("INVALID_DUE_DATE", "Due date is required")
	}

	b := &Bill{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		TenancyID:         tenancyID,
		CategoryID:        categoryID,
		Description:       description,
		Amount:            amount.Amount(),
		AmountPaid:        decimal.Zero,
		Status:            DueStatusDue,
		DueDate:           dueDate,
	}
	return b, nil
}

// Ref returns the due reference for allocations
func (b *Bill) Ref() DueRef {
	return BillDueRef(b.ID)
}

// Outstanding returns the unpaid remainder
func (b *Bill) Outstanding() decimal.Decimal {
	return b.Amount.Sub(b.AmountPaid)
}

// CanReceiveAllocation reports whether the bill accepts further payment
func (b *Bill) CanReceiveAllocation() bool {
	return b.Status.IsOpen()
}

// ApplyAllocation increases the settled portion by the allocated amount.
// Allocations beyond the outstanding remainder are rejected.
func (b *Bill) ApplyAllocation(amount decimal.Decimal) error {
	if !b.Status.IsOpen() {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot allocate to bill in %s status", b.Status))
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_AMOUNT", "Allocation amount must be positive")
	}
	if amount.GreaterThan(b.Outstanding()) {
		return shared.NewDomainError("EXCEEDS_OUTSTANDING",
			fmt.Sprintf("Allocation %s exceeds outstanding %s", amount, b.Outstanding()))
	}
	return b.Recalculate(b.AmountPaid.Add(amount))
}

// Recalculate sets the paid amount to the live sum of allocation rows for this
// bill and derives the status from it
func (b *Bill) Recalculate(allocatedTotal decimal.Decimal) error {
	if allocatedTotal.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", "Allocated total cannot be negative")
	}
	if allocatedTotal.GreaterThan(b.Amount) {
		return shared.NewDomainError("EXCEEDS_OUTSTANDING",
			fmt.Sprintf("Allocated total %s exceeds bill amount %s", allocatedTotal, b.Amount))
	}

	previous := b.Status
	b.AmountPaid = allocatedTotal
	b.Status = DeriveDueStatus(b.Amount, b.AmountPaid)
	b.Touch()
	b.IncrementVersion()

	if b.Status == DueStatusPaid && previous != DueStatusPaid {
		b.AddDomainEvent(NewDueSettledEvent(b.Ref(), b.TenancyID, b.Amount))
	}
	return nil
}

// IsOverdue returns true if the bill is past its due date and still open
func (b *Bill) IsOverdue() bool {
	return b.Status.IsOpen() && time.Now().After(b.DueDate)
}

// GetOutstandingMoney returns the unpaid remainder as Money
func (b *Bill) GetOutstandingMoney() valueobject.Money {
	return valueobject.NewMoneyINR(b.Outstanding())
}
