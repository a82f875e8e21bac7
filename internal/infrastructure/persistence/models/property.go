package models

import (
	"github.com/google/uuid"
	"github.com/hostelops/backend/internal/domain/property"
	"github.com/hostelops/backend/internal/domain/shared"
)

// HostelModel is the persistence model for the Hostel aggregate root.
type HostelModel struct {
	AggregateModel
	Name    string `gorm:"type:varchar(200);not null"`
	Address string `gorm:"type:varchar(500)"`
	Active  bool   `gorm:"not null;default:true;index"`
}

// TableName returns the table name for GORM
func (HostelModel) TableName() string {
	return "hostels"
}

// ToDomain converts the persistence model to a domain Hostel entity.
func (m *HostelModel) ToDomain() *property.Hostel {
	return &property.Hostel{
		BaseAggregateRoot: shared.BaseAggregateRoot{
			BaseEntity: m.BaseModel.ToDomain(),
			Version:    m.Version,
		},
		Name:    m.Name,
		Address: m.Address,
		Active:  m.Active,
	}
}

// FromDomain populates the persistence model from a domain Hostel entity.
func (m *HostelModel) FromDomain(h *property.Hostel) {
	m.FromDomainAggregateRoot(h.BaseAggregateRoot)
	m.Name = h.Name
	m.Address = h.Address
	m.Active = h.Active
}

// HostelModelFromDomain creates a new persistence model from a domain Hostel.
func HostelModelFromDomain(h *property.Hostel) *HostelModel {
	m := &HostelModel{}
	m.FromDomain(h)
	return m
}

// RoomModel is the persistence model for the Room aggregate root. Room numbers
// are unique within a hostel.
type RoomModel struct {
	AggregateModel
	HostelID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_rooms_hostel_number,priority:1"`
	Number   string    `gorm:"type:varchar(20);not null;uniqueIndex:idx_rooms_hostel_number,priority:2"`
	Capacity int       `gorm:"not null"`
	Active   bool      `gorm:"not null;default:true;index"`
}

// TableName returns the table name for GORM
func (RoomModel) TableName() string {
	return "rooms"
}

// ToDomain converts the persistence model to a domain Room entity.
func (m *RoomModel) ToDomain() *property.Room {
	return &property.Room{
		BaseAggregateRoot: shared.BaseAggregateRoot{
			BaseEntity: m.BaseModel.ToDomain(),
			Version:    m.Version,
		},
		HostelID: m.HostelID,
		Number:   m.Number,
		Capacity: m.Capacity,
		Active:   m.Active,
	}
}

// FromDomain populates the persistence model from a domain Room entity.
func (m *RoomModel) FromDomain(r *property.Room) {
	m.FromDomainAggregateRoot(r.BaseAggregateRoot)
	m.HostelID = r.HostelID
	m.Number = r.Number
	m.Capacity = r.Capacity
	m.Active = r.Active
}

// RoomModelFromDomain creates a new persistence model from a domain Room.
func RoomModelFromDomain(r *property.Room) *RoomModel {
	m := &RoomModel{}
	m.FromDomain(r)
	return m
}

// TenantProfileModel is the persistence model for the TenantProfile aggregate root.
type TenantProfileModel struct {
	AggregateModel
	Name   string `gorm:"type:varchar(200);not null;index"`
	Phone  string `gorm:"type:varchar(20)"`
	Email  string `gorm:"type:varchar(200)"`
	Active bool   `gorm:"not null;default:true;index"`
}

// TableName returns the table name for GORM
func (TenantProfileModel) TableName() string {
	return "tenant_profiles"
}

// ToDomain converts the persistence model to a domain TenantProfile entity.
func (m *TenantProfileModel) ToDomain() *property.TenantProfile {
	return &property.TenantProfile{
		BaseAggregateRoot: shared.BaseAggregateRoot{
			BaseEntity: m.BaseModel.ToDomain(),
			Version:    m.Version,
		},
		Name:   m.Name,
		Phone:  m.Phone,
		Email:  m.Email,
		Active: m.Active,
	}
}

// FromDomain populates the persistence model from a domain TenantProfile entity.
func (m *TenantProfileModel) FromDomain(t *property.TenantProfile) {
	m.FromDomainAggregateRoot(t.BaseAggregateRoot)
	m.Name = t.Name
	m.Phone = t.Phone
	m.Email = t.Email
	m.Active = t.Active
}

// TenantProfileModelFromDomain creates a new persistence model from a domain TenantProfile.
func TenantProfileModelFromDomain(t *property.TenantProfile) *TenantProfileModel {
	m := &TenantProfileModel{}
	m.FromDomain(t)
	return m
}

// ExpenseCategoryModel is the persistence model for the ExpenseCategory aggregate root.
type ExpenseCategoryModel struct {
	AggregateModel
	Name        string `gorm:"type:varchar(100);not null;uniqueIndex"`
	Description string `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (ExpenseCategoryModel) TableName() string {
	return "expense_categories"
}

// ToDomain converts the persistence model to a domain ExpenseCategory entity.
func (m *ExpenseCategoryModel) ToDomain() *property.ExpenseCategory {
	return &property.ExpenseCategory{
		BaseAggregateRoot: shared.BaseAggregateRoot{
			BaseEntity: m.BaseModel.ToDomain(),
			Version:    m.Version,
		},
		Name:        m.Name,
		Description: m.Description,
	}
}

// FromDomain populates the persistence model from a domain ExpenseCategory entity.
func (m *ExpenseCategoryModel) FromDomain(c *property.ExpenseCategory) {
	m.FromDomainAggregateRoot(c.BaseAggregateRoot)
	m.Name = c.Name
	m.Description = c.Description
}

// ExpenseCategoryModelFromDomain creates a new persistence model from a domain ExpenseCategory.
func ExpenseCategoryModelFromDomain(c *property.ExpenseCategory) *ExpenseCategoryModel {
	m := &ExpenseCategoryModel{}
	m.FromDomain(c)
	return m
}
