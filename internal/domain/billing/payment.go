package billing

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hostelops/backend/internal/domain/shared"
	"github.com/hostelops/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// PaymentMethod represents how a payment was made
type PaymentMethod string

const (
	PaymentMethodCash         PaymentMethod = "CASH"
	PaymentMethodUPI          PaymentMethod = "UPI"
	PaymentMethodBankTransfer PaymentMethod = "BANK_TRANSFER"
	PaymentMethodCheque       PaymentMethod = "CHEQUE"
	PaymentMethodCard         PaymentMethod = "CARD"
)

// IsValid checks if the payment method is valid
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodUPI, PaymentMethodBankTransfer,
		PaymentMethodCheque, PaymentMethodCard:
		return true
	}
	return false
}

// String returns the string representation
func (m PaymentMethod) String() string {
	return string(m)
}

// Allocation records how much of a payment was applied to one due. Allocation
// rows are the source of truth for a due's paid amount: the due's amountPaid
// is always the live sum of its allocations.
type Allocation struct {
	shared.BaseEntity
	PaymentID uuid.UUID       `json:"payment_id"`
	Due       DueRef          `json:"due"`
	Amount    decimal.Decimal `json:"amount"`
}

// Payment is the aggregate root for one received payment and its allocations
// across outstanding dues. A payment with no allocations is a valid,
// intentional "unapplied" payment.
type Payment struct {
	shared.BaseAggregateRoot
	TenantID    uuid.UUID           `json:"tenant_id"`
	Amount      decimal.Decimal     `json:"amount"`
	Method      PaymentMethod       `json:"method"`
	PaidAt      time.Time           `json:"paid_at"`
	PeriodFrom  *valueobject.Period `json:"period_from"`
	PeriodTo    *valueobject.Period `json:"period_to"`
	Description string              `json:"description"`
	Allocations []Allocation        `json:"allocations"`
}

// NewPayment creates a payment with no allocations yet
func NewPayment(tenantID uuid.UUID, amount valueobject.Money, method PaymentMethod, paidAt time.Time, description string) (*Payment, error) {
	if tenantID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_TENANT", "Tenant ID cannot be empty")
	}
	if amount.Amount().LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Payment amount must be positive")
	}
	if !method.IsValid() {
		return nil, shared.NewDomainError("INVALID_METHOD", fmt.Sprintf("Unknown payment method %q", method))
	}
	if paidAt.IsZero() {
		return nil, shared.NewDomainError("INVALID_DATE", "Payment date is required")
	}

	p := &Payment{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		TenantID:          tenantID,
		Amount:            amount.Amount(),
		Method:            method,
		PaidAt:            paidAt,
		Description:       description,
		Allocations:       make([]Allocation, 0),
	}
	p.AddDomainEvent(NewPaymentRecordedEvent(p))
	return p, nil
}

// SetPeriodRange attaches the optional period range the payment covers
func (p *Payment) SetPeriodRange(from, to valueobject.Period) error {
	if to.Before(from) {
		return shared.NewDomainError("INVALID_PERIOD", "Period range end cannot precede its start")
	}
	p.PeriodFrom = &from
	p.PeriodTo = &to
	return nil
}

// Allocate attaches an allocation of part of this payment to a due.
// The allocations of a payment can never sum past the payment amount.
func (p *Payment) Allocate(due DueRef, amount decimal.Decimal) (*Allocation, error) {
	if !due.IsValid() {
		return nil, shared.NewDomainError("INVALID_DUE", "Allocation must reference a valid due")
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Allocation amount must be positive")
	}
	if p.AllocatedAmount().Add(amount).GreaterThan(p.Amount) {
		return nil, shared.NewDomainError("EXCEEDS_PAYMENT",
			fmt.Sprintf("Allocations (%s + %s) would exceed payment amount %s",
				p.AllocatedAmount(), amount, p.Amount))
	}

	alloc := Allocation{
		BaseEntity: shared.NewBaseEntity(),
		PaymentID:  p.ID,
		Due:        due,
		Amount:     amount,
	}
	p.Allocations = append(p.Allocations, alloc)
	p.Touch()
	return &alloc, nil
}

// AllocatedAmount returns the sum of all allocations
func (p *Payment) AllocatedAmount() decimal.Decimal {
	total := decimal.Zero
	for _, a := range p.Allocations {
		total = total.Add(a.Amount)
	}
	return total
}

// UnappliedAmount returns the part of the payment not applied to any due
func (p *Payment) UnappliedAmount() decimal.Decimal {
	return p.Amount.Sub(p.AllocatedAmount())
}

// IsUnapplied returns true if no allocation was made
func (p *Payment) IsUnapplied() bool {
	return len(p.Allocations) == 0
}

// GetAmountMoney returns the payment amount as Money
func (p *Payment) GetAmountMoney() valueobject.Money {
	return valueobject.NewMoneyINR(p.Amount)
}
