package billing

import (
	"time"

	"github.com/google/uuid"
	"github.com/hostelops/backend/internal/domain/shared"
	"github.com/hostelops/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// TenancyStartedEvent is raised when a tenant is assigned to a room
type TenancyStartedEvent struct {
	shared.BaseDomainEvent
	TenancyID   uuid.UUID       `json:"tenancy_id"`
	RoomID      uuid.UUID       `json:"room_id"`
	TenantID    uuid.UUID       `json:"tenant_id"`
	StartAt     time.Time       `json:"start_at"`
	MonthlyRent decimal.Decimal `json:"monthly_rent"`
}

// EventType returns the event type name
func (e *TenancyStartedEvent) EventType() string {
	return "TenancyStarted"
}

// NewTenancyStartedEvent creates a new TenancyStartedEvent
func NewTenancyStartedEvent(t *Tenancy) *TenancyStartedEvent {
	return &TenancyStartedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("TenancyStarted", "Tenancy", t.ID),
		TenancyID:       t.ID,
		RoomID:          t.RoomID,
		TenantID:        t.TenantID,
		StartAt:         t.StartAt,
		MonthlyRent:     t.MonthlyRent,
	}
}

// TenancyEndedEvent is raised when a tenancy is closed
type TenancyEndedEvent struct {
	shared.BaseDomainEvent
	TenancyID       uuid.UUID       `json:"tenancy_id"`
	TenantID        uuid.UUID       `json:"tenant_id"`
	EndAt           *time.Time      `json:"end_at"`
	PreviousBalance decimal.Decimal `json:"previous_balance"`
}

// EventType returns the event type name
func (e *TenancyEndedEvent) EventType() string {
	return "TenancyEnded"
}

// NewTenancyEndedEvent creates a new TenancyEndedEvent
func NewTenancyEndedEvent(t *Tenancy) *TenancyEndedEvent {
	return &TenancyEndedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("TenancyEnded", "Tenancy", t.ID),
		TenancyID:       t.ID,
		TenantID:        t.TenantID,
		EndAt:           t.EndAt,
		PreviousBalance: t.PreviousBalance,
	}
}

// BalanceCarriedForwardEvent is raised when rollover moves an unpaid remainder
// into a tenancy's previous balance
type BalanceCarriedForwardEvent struct {
	shared.BaseDomainEvent
	TenancyID  uuid.UUID       `json:"tenancy_id"`
	Amount     decimal.Decimal `json:"amount"`
	NewBalance decimal.Decimal `json:"new_balance"`
}

// EventType returns the event type name
func (e *BalanceCarriedForwardEvent) EventType() string {
	return "BalanceCarriedForward"
}

// NewBalanceCarriedForwardEvent creates a new BalanceCarriedForwardEvent
func NewBalanceCarriedForwardEvent(t *Tenancy, amount decimal.Decimal) *BalanceCarriedForwardEvent {
	return &BalanceCarriedForwardEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("BalanceCarriedForward", "Tenancy", t.ID),
		TenancyID:       t.ID,
		Amount:          amount,
		NewBalance:      t.PreviousBalance,
	}
}

// RentChargeOpenedEvent is raised when a new period's rent charge is created
type RentChargeOpenedEvent struct {
	shared.BaseDomainEvent
	RentChargeID uuid.UUID          `json:"rent_charge_id"`
	TenancyID    uuid.UUID          `json:"tenancy_id"`
	Period       valueobject.Period `json:"period"`
	Amount       decimal.Decimal    `json:"amount"`
	DueDate      time.Time          `json:"due_date"`
}

// EventType returns the event type name
func (e *RentChargeOpenedEvent) EventType() string {
	return "RentChargeOpened"
}

// NewRentChargeOpenedEvent creates a new RentChargeOpenedEvent
func NewRentChargeOpenedEvent(rc *RentCharge) *RentChargeOpenedEvent {
	return &RentChargeOpenedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("RentChargeOpened", "RentCharge", rc.ID),
		RentChargeID:    rc.ID,
		TenancyID:       rc.TenancyID,
		Period:          rc.Period,
		Amount:          rc.Amount,
		DueDate:         rc.DueDate,
	}
}

// DueSettledEvent is raised when a rent charge or bill becomes fully paid
type DueSettledEvent struct {
	shared.BaseDomainEvent
	Due       DueRef          `json:"due"`
	TenancyID uuid.UUID       `json:"tenancy_id"`
	Amount    decimal.Decimal `json:"amount"`
}

// EventType returns the event type name
func (e *DueSettledEvent) EventType() string {
	return "DueSettled"
}

// NewDueSettledEvent creates a new DueSettledEvent
func NewDueSettledEvent(due DueRef, tenancyID uuid.UUID, amount decimal.Decimal) *DueSettledEvent {
	return &DueSettledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("DueSettled", due.Type.String(), due.ID),
		Due:             due,
		TenancyID:       tenancyID,
		Amount:          amount,
	}
}

// PaymentRecordedEvent is raised when a payment is created
type PaymentRecordedEvent struct {
	shared.BaseDomainEvent
	PaymentID uuid.UUID       `json:"payment_id"`
	TenantID  uuid.UUID       `json:"tenant_id"`
	Amount    decimal.Decimal `json:"amount"`
	Method    PaymentMethod   `json:"method"`
	PaidAt    time.Time       `json:"paid_at"`
}

// EventType returns the event type name
func (e *PaymentRecordedEvent) EventType() string {
	return "PaymentRecorded"
}

// NewPaymentRecordedEvent creates a new PaymentRecordedEvent
func NewPaymentRecordedEvent(p *Payment) *PaymentRecordedEvent {
	return &PaymentRecordedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("PaymentRecorded", "Payment", p.ID),
		PaymentID:       p.ID,
		TenantID:        p.TenantID,
		Amount:          p.Amount,
		Method:          p.Method,
		PaidAt:          p.PaidAt,
	}
}
