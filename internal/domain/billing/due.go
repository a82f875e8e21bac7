package billing

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DueType tags the concrete kind of a due so allocations can reference either
// a rent charge or a bill through one link
type DueType string

const (
	DueTypeRent DueType = "RENT"
	DueTypeBill DueType = "BILL"
)

// IsValid checks if the due type is valid
func (t DueType) IsValid() bool {
	return t == DueTypeRent || t == DueTypeBill
}

// String returns the string representation
func (t DueType) String() string {
	return string(t)
}

// DueStatus represents the settlement state of a due
type DueStatus string

const (
	DueStatusDue     DueStatus = "DUE"     // Nothing paid yet
	DueStatusPartial DueStatus = "PARTIAL" // 0 < paid < amount
	DueStatusPaid    DueStatus = "PAID"    // paid >= amount
)

// IsValid checks if the status is a valid DueStatus
func (s DueStatus) IsValid() bool {
	switch s {
	case DueStatusDue, DueStatusPartial, DueStatusPaid:
		return true
	}
	return false
}

// String returns the string representation of DueStatus
func (s DueStatus) String() string {
	return string(s)
}

// IsOpen returns true if the due can still receive allocations
func (s DueStatus) IsOpen() bool {
	return s == DueStatusDue || s == DueStatusPartial
}

// DeriveDueStatus computes the status purely from (amountPaid, amount).
// The status column is never mutated independently of these two values.
func DeriveDueStatus(amount, amountPaid decimal.Decimal) DueStatus {
	if amountPaid.GreaterThanOrEqual(amount) {
		return DueStatusPaid
	}
	if amountPaid.IsPositive() {
		return DueStatusPartial
	}
	return DueStatusDue
}

// DueRef identifies a due across both due kinds
type DueRef struct {
	Type DueType   `json:"type"`
	ID   uuid.UUID `json:"id"`
}

// IsValid checks that the reference is complete
func (r DueRef) IsValid() bool {
	return r.Type.IsValid() && r.ID != uuid.Nil
}

// RentDueRef builds a reference to a rent charge
func RentDueRef(id uuid.UUID) DueRef {
	return DueRef{Type: DueTypeRent, ID: id}
}

// BillDueRef builds a reference to a bill
func BillDueRef(id uuid.UUID) DueRef {
	return DueRef{Type: DueTypeBill, ID: id}
}
