package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/hostelops/backend/internal/domain/billing"
	"github.com/hostelops/backend/internal/domain/shared"
	"github.com/hostelops/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// TenancyModel is the persistence model for the Tenancy aggregate root.
type TenancyModel struct {
	AggregateModel
	RoomID          uuid.UUID        `gorm:"type:uuid;not null;index"`
	TenantID        uuid.UUID        `gorm:"type:uuid;not null;index"`
	Active          bool             `gorm:"not null;default:true;index"`
	StartAt         time.Time        `gorm:"not null"`
	EndAt           *time.Time
	MonthlyRent     decimal.Decimal  `gorm:"type:decimal(18,4);not null"`
	PreviousBalance decimal.Decimal  `gorm:"type:decimal(18,4);not null"`
	UtilityOverride *decimal.Decimal `gorm:"type:decimal(18,4)"`
}

// TableName returns the table name for GORM
func (TenancyModel) TableName() string {
	return "tenancies"
}

// ToDomain converts the persistence model to a domain Tenancy entity.
func (m *TenancyModel) ToDomain() *billing.Tenancy {
	return &billing.Tenancy{
		BaseAggregateRoot: shared.BaseAggregateRoot{
			BaseEntity: m.BaseModel.ToDomain(),
			Version:    m.Version,
		},
		RoomID:          m.RoomID,
		TenantID:        m.TenantID,
		Active:          m.Active,
		StartAt:         m.StartAt,
		EndAt:           m.EndAt,
		MonthlyRent:     m.MonthlyRent,
		PreviousBalance: m.PreviousBalance,
		UtilityOverride: m.UtilityOverride,
	}
}

// FromDomain populates the persistence model from a domain Tenancy entity.
func (m *TenancyModel) FromDomain(t *billing.Tenancy) {
	m.FromDomainAggregateRoot(t.BaseAggregateRoot)
	m.RoomID = t.RoomID
	m.TenantID = t.TenantID
	m.Active = t.Active
	m.StartAt = t.StartAt
	m.EndAt = t.EndAt
	m.MonthlyRent = t.MonthlyRent
	m.PreviousBalance = t.PreviousBalance
	m.UtilityOverride = t.UtilityOverride
}

// TenancyModelFromDomain creates a new persistence model from a domain Tenancy.
func TenancyModelFromDomain(t *billing.Tenancy) *TenancyModel {
	m := &TenancyModel{}
	m.FromDomain(t)
	return m
}

// RentChargeModel is the persistence model for the RentCharge aggregate root.
// The unique index on (tenancy_id, period) is the hard idempotence guard for
// period rollover: a concurrent second insert for the same period fails with a
// unique violation instead of creating a duplicate charge.
type RentChargeModel struct {
	AggregateModel
	TenancyID  uuid.UUID          `gorm:"type:uuid;not null;uniqueIndex:idx_rent_charges_tenancy_period,priority:1"`
	Period     valueobject.Period `gorm:"type:varchar(7);not null;uniqueIndex:idx_rent_charges_tenancy_period,priority:2"`
	Amount     decimal.Decimal    `gorm:"type:decimal(18,4);not null"`
	AmountPaid decimal.Decimal    `gorm:"type:decimal(18,4);not null"`
	Status     billing.DueStatus  `gorm:"type:varchar(20);not null;default:'DUE';index"`
	DueDate    time.Time          `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (RentChargeModel) TableName() string {
	return "rent_charges"
}

// ToDomain converts the persistence model to a domain RentCharge entity.
func (m *RentChargeModel) ToDomain() *billing.RentCharge {
	return &billing.RentCharge{
		BaseAggregateRoot: shared.BaseAggregateRoot{
			BaseEntity: m.BaseModel.ToDomain(),
			Version:    m.Version,
		},
		TenancyID:  m.TenancyID,
		Period:     m.Period,
		Amount:     m.Amount,
		AmountPaid: m.AmountPaid,
		Status:     m.Status,
		DueDate:    m.DueDate,
	}
}

// FromDomain populates the persistence model from a domain RentCharge entity.
func (m *RentChargeModel) FromDomain(rc *billing.RentCharge) {
	m.FromDomainAggregateRoot(rc.BaseAggregateRoot)
	m.TenancyID = rc.TenancyID
	m.Period = rc.Period
	m.Amount = rc.Amount
	m.AmountPaid = rc.AmountPaid
	m.Status = rc.Status
	m.DueDate = rc.DueDate
}

// RentChargeModelFromDomain creates a new persistence model from a domain RentCharge.
func RentChargeModelFromDomain(rc *billing.RentCharge) *RentChargeModel {
	m := &RentChargeModel{}
	m.FromDomain(rc)
	return m
}

// BillModel is the persistence model for the Bill aggregate root.
type BillModel struct {
	AggregateModel
	TenancyID   uuid.UUID         `gorm:"type:uuid;not null;index"`
	CategoryID  uuid.UUID         `gorm:"type:uuid;not null;index"`
	Description string            `gorm:"type:varchar(500)"`
	Amount      decimal.Decimal   `gorm:"type:decimal(18,4);not null"`
	AmountPaid  decimal.Decimal   `gorm:"type:decimal(18,4);not null"`
	Status      billing.DueStatus `gorm:"type:varchar(20);not null;default:'DUE';index"`
	DueDate     time.Time         `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (BillModel) TableName() string {
	return "bills"
}

// ToDomain converts the persistence model to a domain Bill entity.
func (m *BillModel) ToDomain() *billing.Bill {
	return &billing.Bill{
		BaseAggregateRoot: shared.BaseAggregateRoot{
			BaseEntity: m.BaseModel.ToDomain(),
			Version:    m.Version,
		},
		TenancyID:   m.TenancyID,
		CategoryID:  m.CategoryID,
		Description: m.Description,
		Amount:      m.Amount,
		AmountPaid:  m.AmountPaid,
		Status:      m.Status,
		DueDate:     m.DueDate,
	}
}

// FromDomain populates the persistence model from a domain Bill entity.
func (m *BillModel) FromDomain(b *billing.Bill) {
	m.FromDomainAggregateRoot(b.BaseAggregateRoot)
	m.TenancyID = b.TenancyID
	m.CategoryID = b.CategoryID
	m.Description = b.Description
	m.Amount = b.Amount
	m.AmountPaid = b.AmountPaid
	m.Status = b.Status
	m.DueDate = b.DueDate
}

// BillModelFromDomain creates a new persistence model from a domain Bill.
func BillModelFromDomain(b *billing.Bill) *BillModel {
	m := &BillModel{}
	m.FromDomain(b)
	return m
}

// SharedUtilityChargeModel is the persistence model for the SharedUtilityCharge
// aggregate root. One row exists per (room, period).
type SharedUtilityChargeModel struct {
	AggregateModel
	RoomID      uuid.UUID          `gorm:"type:uuid;not null;uniqueIndex:idx_utility_charges_room_period,priority:1"`
	Period      valueobject.Period `gorm:"type:varchar(7);not null;uniqueIndex:idx_utility_charges_room_period,priority:2"`
	TotalAmount decimal.Decimal    `gorm:"type:decimal(18,4);not null"`
}

// TableName returns the table name for GORM
func (SharedUtilityChargeModel) TableName() string {
	return "shared_utility_charges"
}

// ToDomain converts the persistence model to a domain SharedUtilityCharge entity.
func (m *SharedUtilityChargeModel) ToDomain() *billing.SharedUtilityCharge {
	return &billing.SharedUtilityCharge{
		BaseAggregateRoot: shared.BaseAggregateRoot{
			BaseEntity: m.BaseModel.ToDomain(),
			Version:    m.Version,
		},
		RoomID:      m.RoomID,
		Period:      m.Period,
		TotalAmount: m.TotalAmount,
	}
}

// FromDomain populates the persistence model from a domain SharedUtilityCharge entity.
func (m *SharedUtilityChargeModel) FromDomain(c *billing.SharedUtilityCharge) {
	m.FromDomainAggregateRoot(c.BaseAggregateRoot)
	m.RoomID = c.RoomID
	m.Period = c.Period
	m.TotalAmount = c.TotalAmount
}

// SharedUtilityChargeModelFromDomain creates a new persistence model from a domain SharedUtilityCharge.
func SharedUtilityChargeModelFromDomain(c *billing.SharedUtilityCharge) *SharedUtilityChargeModel {
	m := &SharedUtilityChargeModel{}
	m.FromDomain(c)
	return m
}

// PaymentModel is the persistence model for the Payment aggregate root.
type PaymentModel struct {
	AggregateModel
	TenantID    uuid.UUID             `gorm:"type:uuid;not null;index"`
	Amount      decimal.Decimal       `gorm:"type:decimal(18,4);not null"`
	Method      billing.PaymentMethod `gorm:"type:varchar(30);not null"`
	PaidAt      time.Time             `gorm:"not null;index"`
	PeriodFrom  *valueobject.Period   `gorm:"type:varchar(7)"`
	PeriodTo    *valueobject.Period   `gorm:"type:varchar(7)"`
	Description string                `gorm:"type:varchar(500)"`
	Allocations []AllocationModel     `gorm:"foreignKey:PaymentID;references:ID"`
}

// TableName returns the table name for GORM
func (PaymentModel) TableName() string {
	return "payments"
}

// ToDomain converts the persistence model to a domain Payment entity.
func (m *PaymentModel) ToDomain() *billing.Payment {
	p := &billing.Payment{
		BaseAggregateRoot: shared.BaseAggregateRoot{
			BaseEntity: m.BaseModel.ToDomain(),
			Version:    m.Version,
		},
		TenantID:    m.TenantID,
		Amount:      m.Amount,
		Method:      m.Method,
		PaidAt:      m.PaidAt,
		PeriodFrom:  m.PeriodFrom,
		PeriodTo:    m.PeriodTo,
		Description: m.Description,
		Allocations: make([]billing.Allocation, len(m.Allocations)),
	}
	for i, alloc := range m.Allocations {
		p.Allocations[i] = *alloc.ToDomain()
	}
	return p
}

// FromDomain populates the persistence model from a domain Payment entity.
func (m *PaymentModel) FromDomain(p *billing.Payment) {
	m.FromDomainAggregateRoot(p.BaseAggregateRoot)
	m.TenantID = p.TenantID
	m.Amount = p.Amount
	m.Method = p.Method
	m.PaidAt = p.PaidAt
	m.PeriodFrom = p.PeriodFrom
	m.PeriodTo = p.PeriodTo
	m.Description = p.Description
	m.Allocations = make([]AllocationModel, len(p.Allocations))
	for i, alloc := range p.Allocations {
		m.Allocations[i] = *AllocationModelFromDomain(&alloc)
	}
}

// PaymentModelFromDomain creates a new persistence model from a domain Payment.
func PaymentModelFromDomain(p *billing.Payment) *PaymentModel {
	m := &PaymentModel{}
	m.FromDomain(p)
	return m
}

// AllocationModel is the persistence model for a payment Allocation. The
// (due_type, due_id) index serves the paid-amount summation that every due
// status derivation reads from.
type AllocationModel struct {
	ID        uuid.UUID       `gorm:"type:uuid;primary_key"`
	PaymentID uuid.UUID       `gorm:"type:uuid;not null;index"`
	DueType   billing.DueType `gorm:"type:varchar(10);not null;index:idx_allocations_due,priority:1"`
	DueID     uuid.UUID       `gorm:"type:uuid;not null;index:idx_allocations_due,priority:2"`
	Amount    decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	CreatedAt time.Time       `gorm:"not null"`
	UpdatedAt time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (AllocationModel) TableName() string {
	return "allocations"
}

// ToDomain converts the persistence model to a domain Allocation.
func (m *AllocationModel) ToDomain() *billing.Allocation {
	return &billing.Allocation{
		BaseEntity: shared.BaseEntity{
			ID:        m.ID,
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
		PaymentID: m.PaymentID,
		Due:       billing.DueRef{Type: m.DueType, ID: m.DueID},
		Amount:    m.Amount,
	}
}

// FromDomain populates the persistence model from a domain Allocation.
func (m *AllocationModel) FromDomain(a *billing.Allocation) {
	m.ID = a.ID
	m.PaymentID = a.PaymentID
	m.DueType = a.Due.Type
	m.DueID = a.Due.ID
	m.Amount = a.Amount
	m.CreatedAt = a.CreatedAt
	m.UpdatedAt = a.UpdatedAt
}

// AllocationModelFromDomain creates a new persistence model from a domain Allocation.
func AllocationModelFromDomain(a *billing.Allocation) *AllocationModel {
	m := &AllocationModel{}
	m.FromDomain(a)
	return m
}
