package billing

import (
	"time"

	"github.com/google/uuid"
	"github.com/hostelops/backend/internal/domain/billing"
	"github.com/shopspring/decimal"
)

// CreateTenancyRequest starts a tenancy for a tenant in a room
type CreateTenancyRequest struct {
	RoomID      uuid.UUID       `json:"room_id" validate:"required"`
	TenantID    uuid.UUID       `json:"tenant_id" validate:"required"`
	StartAt     time.Time       `json:"start_at" validate:"required"`
	MonthlyRent decimal.Decimal `json:"monthly_rent" validate:"required"`
}

// EndTenancyRequest closes a tenancy
type EndTenancyRequest struct {
	TenancyID uuid.UUID `json:"tenancy_id" validate:"required"`
	EndAt     time.Time `json:"end_at" validate:"required"`
}

// CorrectBalanceRequest replaces a tenancy's carry-forward balance
type CorrectBalanceRequest struct {
	TenancyID  uuid.UUID       `json:"tenancy_id" validate:"required"`
	NewBalance decimal.Decimal `json:"new_balance"`
	Reason     string          `json:"reason" validate:"required"`
}

// TenancyDTO is the outward representation of a tenancy
type TenancyDTO struct {
	ID              uuid.UUID        `json:"id"`
	RoomID          uuid.UUID        `json:"room_id"`
	TenantID        uuid.UUID        `json:"tenant_id"`
	Active          bool             `json:"active"`
	StartAt         time.Time        `json:"start_at"`
	EndAt           *time.Time       `json:"end_at,omitempty"`
	MonthlyRent     decimal.Decimal  `json:"monthly_rent"`
	PreviousBalance decimal.Decimal  `json:"previous_balance"`
	UtilityOverride *decimal.Decimal `json:"utility_override,omitempty"`
}

// ToTenancyDTO converts a tenancy aggregate to its DTO
func ToTenancyDTO(t *billing.Tenancy) TenancyDTO {
	return TenancyDTO{
		ID:              t.ID,
		RoomID:          t.RoomID,
		TenantID:        t.TenantID,
		Active:          t.Active,
		StartAt:         t.StartAt,
		EndAt:           t.EndAt,
		MonthlyRent:     t.MonthlyRent,
		PreviousBalance: t.PreviousBalance,
		UtilityOverride: t.UtilityOverride,
	}
}

// OutstandingDueDTO is one open due in a tenant's outstanding statement
type OutstandingDueDTO struct {
	Type        billing.DueType   `json:"type"`
	ID          uuid.UUID         `json:"id"`
	Period      string            `json:"period,omitempty"`
	Description string            `json:"description,omitempty"`
	Amount      decimal.Decimal   `json:"amount"`
	AmountPaid  decimal.Decimal   `json:"amount_paid"`
	Outstanding decimal.Decimal   `json:"outstanding"`
	Status      billing.DueStatus `json:"status"`
	DueDate     time.Time         `json:"due_date"`
}

// OutstandingStatement is the full dues picture for one tenancy
type OutstandingStatement struct {
	TenancyID        uuid.UUID           `json:"tenancy_id"`
	TenantID         uuid.UUID           `json:"tenant_id"`
	PreviousBalance  decimal.Decimal     `json:"previous_balance"`
	Dues             []OutstandingDueDTO `json:"dues"`
	TotalOutstanding decimal.Decimal     `json:"total_outstanding"`
}

// AllocationRequestDTO targets one due. Under the MANUAL strategy a zero
// amount means "as much as possible"; without a strategy each amount is
// applied exactly as given and must be positive.
type AllocationRequestDTO struct {
	DueType billing.DueType `json:"due_type" validate:"required,oneof=RENT BILL"`
	DueID   uuid.UUID       `json:"due_id" validate:"required"`
	Amount  decimal.Decimal `json:"amount"`
}

// SuggestAllocationRequest asks for an oldest-first allocation preview
type SuggestAllocationRequest struct {
	TenantID uuid.UUID       `json:"tenant_id" validate:"required"`
	Amount   decimal.Decimal `json:"amount" validate:"required"`
}

// RecordPaymentRequest records a payment. OLDEST_FIRST plans allocations from
// the tenant's open dues, MANUAL plans from the request's per-due entries, and
// with no strategy the explicit allocations (or none) are applied as given.
type RecordPaymentRequest struct {
	TenantID    uuid.UUID                      `json:"tenant_id" validate:"required"`
	Amount      decimal.Decimal                `json:"amount" validate:"required"`
	Method      billing.PaymentMethod          `json:"method" validate:"required"`
	PaidAt      time.Time                      `json:"paid_at"`
	PeriodFrom  string                         `json:"period_from,omitempty"`
	PeriodTo    string                         `json:"period_to,omitempty"`
	Description string                         `json:"description"`
	Strategy    billing.AllocationStrategyType `json:"strategy,omitempty"`
	Allocations []AllocationRequestDTO         `json:"allocations,omitempty"`
}

// AllocationDTO is one persisted allocation row
type AllocationDTO struct {
	DueType billing.DueType `json:"due_type"`
	DueID   uuid.UUID       `json:"due_id"`
	Amount  decimal.Decimal `json:"amount"`
}

// PaymentDTO is the outward representation of a recorded payment
type PaymentDTO struct {
	ID          uuid.UUID             `json:"id"`
	TenantID    uuid.UUID             `json:"tenant_id"`
	Amount      decimal.Decimal       `json:"amount"`
	Method      billing.PaymentMethod `json:"method"`
	PaidAt      time.Time             `json:"paid_at"`
	PeriodFrom  string                `json:"period_from,omitempty"`
	PeriodTo    string                `json:"period_to,omitempty"`
	Description string                `json:"description,omitempty"`
	Allocations []AllocationDTO       `json:"allocations"`
	Unapplied   decimal.Decimal       `json:"unapplied"`
}

// ToPaymentDTO converts a payment aggregate to its DTO
func ToPaymentDTO(p *billing.Payment) PaymentDTO {
	allocations := make([]AllocationDTO, 0, len(p.Allocations))
	for _, a := range p.Allocations {
		allocations = append(allocations, AllocationDTO{
			DueType: a.Due.Type,
			DueID:   a.Due.ID,
			Amount:  a.Amount,
		})
	}
	dto := PaymentDTO{
		ID:          p.ID,
		TenantID:    p.TenantID,
		Amount:      p.Amount,
		Method:      p.Method,
		PaidAt:      p.PaidAt,
		Description: p.Description,
		Allocations: allocations,
		Unapplied:   p.UnappliedAmount(),
	}
	if p.PeriodFrom != nil {
		dto.PeriodFrom = p.PeriodFrom.String()
	}
	if p.PeriodTo != nil {
		dto.PeriodTo = p.PeriodTo.String()
	}
	return dto
}

// RecordBillRequest raises an ad-hoc bill against a tenancy
type RecordBillRequest struct {
	TenancyID   uuid.UUID       `json:"tenancy_id" validate:"required"`
	CategoryID  uuid.UUID       `json:"category_id" validate:"required"`
	Description string          `json:"description" validate:"required"`
	Amount      decimal.Decimal `json:"amount" validate:"required"`
	DueDate     time.Time       `json:"due_date" validate:"required"`
}

// BillDTO is the outward representation of an ad-hoc bill
type BillDTO struct {
	ID          uuid.UUID         `json:"id"`
	TenancyID   uuid.UUID         `json:"tenancy_id"`
	CategoryID  uuid.UUID         `json:"category_id"`
	Description string            `json:"description"`
	Amount      decimal.Decimal   `json:"amount"`
	AmountPaid  decimal.Decimal   `json:"amount_paid"`
	Status      billing.DueStatus `json:"status"`
	DueDate     time.Time         `json:"due_date"`
}

// ToBillDTO converts a bill aggregate to its DTO
func ToBillDTO(b *billing.Bill) BillDTO {
	return BillDTO{
		ID:          b.ID,
		TenancyID:   b.TenancyID,
		CategoryID:  b.CategoryID,
		Description: b.Description,
		Amount:      b.Amount,
		AmountPaid:  b.AmountPaid,
		Status:      b.Status,
		DueDate:     b.DueDate,
	}
}

// UtilityChargeDTO is the outward representation of a room's shared utility
// total for one period
type UtilityChargeDTO struct {
	ID     uuid.UUID       `json:"id"`
	RoomID uuid.UUID       `json:"room_id"`
	Period string          `json:"period"`
	Total  decimal.Decimal `json:"total"`
}

// ToUtilityChargeDTO converts a utility charge aggregate to its DTO
func ToUtilityChargeDTO(u *billing.SharedUtilityCharge) UtilityChargeDTO {
	return UtilityChargeDTO{
		ID:     u.ID,
		RoomID: u.RoomID,
		Period: u.Period.String(),
		Total:  u.TotalAmount,
	}
}

// RecordUtilityChargeRequest records or replaces a room's shared utility
// total for a period
type RecordUtilityChargeRequest struct {
	RoomID uuid.UUID       `json:"room_id" validate:"required"`
	Period string          `json:"period" validate:"required"`
	Total  decimal.Decimal `json:"total" validate:"required"`
}

// RolloverResult summarizes one period rollover run
type RolloverResult struct {
	Period         string   `json:"period"`
	Created        int      `json:"created"`
	Skipped        int      `json:"skipped"`
	CarriedForward int      `json:"carried_forward"`
	Failed         []string `json:"failed,omitempty"`
}
