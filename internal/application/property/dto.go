package property

import (
	"github.com/google/uuid"
	"github.com/hostelops/backend/internal/domain/property"
)

// CreateHostelRequest creates a hostel
type CreateHostelRequest struct {
	Name    string `json:"name" validate:"required,max=200"`
	Address string `json:"address"`
}

// UpdateHostelRequest updates a hostel's descriptive fields
type UpdateHostelRequest struct {
	Name    string `json:"name" validate:"required,max=200"`
	Address string `json:"address"`
}

// CreateRoomRequest adds a room to a hostel
type CreateRoomRequest struct {
	HostelID uuid.UUID `json:"hostel_id" validate:"required"`
	Number   string    `json:"number" validate:"required"`
	Capacity int       `json:"capacity" validate:"required,min=1"`
}

// UpdateRoomRequest changes a room's number or capacity
type UpdateRoomRequest struct {
	Number   string `json:"number" validate:"required"`
	Capacity int    `json:"capacity" validate:"required,min=1"`
}

// CreateTenantRequest registers a tenant profile
type CreateTenantRequest struct {
	Name  string `json:"name" validate:"required"`
	Phone string `json:"phone"`
	Email string `json:"email" validate:"omitempty,email"`
}

// UpdateTenantRequest updates a tenant profile
type UpdateTenantRequest struct {
	Name  string `json:"name" validate:"required"`
	Phone string `json:"phone"`
	Email string `json:"email" validate:"omitempty,email"`
}

// CreateCategoryRequest creates an expense category
type CreateCategoryRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description"`
}

// HostelDTO is the outward representation of a hostel
type HostelDTO struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	Address string    `json:"address"`
	Active  bool      `json:"active"`
}

// ToHostelDTO converts a hostel aggregate to its DTO
func ToHostelDTO(h *property.Hostel) HostelDTO {
	return HostelDTO{ID: h.ID, Name: h.Name, Address: h.Address, Active: h.Active}
}

// RoomDTO is the outward representation of a room
type RoomDTO struct {
	ID       uuid.UUID `json:"id"`
	HostelID uuid.UUID `json:"hostel_id"`
	Number   string    `json:"number"`
	Capacity int       `json:"capacity"`
	Active   bool      `json:"active"`
}

// ToRoomDTO converts a room aggregate to its DTO
func ToRoomDTO(r *property.Room) RoomDTO {
	return RoomDTO{ID: r.ID, HostelID: r.HostelID, Number: r.Number, Capacity: r.Capacity, Active: r.Active}
}

// TenantDTO is the outward representation of a tenant profile
type TenantDTO struct {
	ID     uuid.UUID `json:"id"`
	Name   string    `json:"name"`
	Phone  string    `json:"phone"`
	Email  string    `json:"email"`
	Active bool      `json:"active"`
}

// ToTenantDTO converts a profile aggregate to its DTO
func ToTenantDTO(p *property.TenantProfile) TenantDTO {
	return TenantDTO{ID: p.ID, Name: p.Name, Phone: p.Phone, Email: p.Email, Active: p.Active}
}

// CategoryDTO is the outward representation of an expense category
type CategoryDTO struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
}

// ToCategoryDTO converts a category aggregate to its DTO
func ToCategoryDTO(c *property.ExpenseCategory) CategoryDTO {
	return CategoryDTO{ID: c.ID, Name: c.Name, Description: c.Description}
}
