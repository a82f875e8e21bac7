package property

import (
	"github.com/google/uuid"
	"github.com/hostelops/backend/internal/domain/shared"
)

// Room represents a rentable room within a hostel
type Room struct {
	shared.BaseAggregateRoot
	HostelID uuid.UUID `json:"hostel_id"`
	Number   string    `json:"number"`
	Capacity int       `json:"capacity"`
	Active   bool      `json:"active"`
}

// NewRoom creates a new room in a hostel
func NewRoom(hostelID uuid.UUID, number string, capacity int) (*Room, error) {
	if hostelID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_HOSTEL", "Hostel ID cannot be empty")
	}
	if number == "" {
		return nil, shared.NewDomainError("INVALID_NUMBER", "Room number cannot be empty")
	}
	if capacity < 1 {
		return nil, shared.NewDomainError("INVALID_CAPACITY", "Room capacity must be at least 1")
	}
	return &Room{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		HostelID:          hostelID,
		Number:            number,
		Capacity:          capacity,
		Active:            true,
	}, nil
}

// Update changes the room number and capacity
func (r *Room) Update(number string, capacity int) error {
	if number == "" {
		return shared.NewDomainError("INVALID_NUMBER", "Room number cannot be empty")
	}
	if capacity < 1 {
		return shared.NewDomainError("INVALID_CAPACITY", "Room capacity must be at least 1")
	}
	r.Number = number
	r.Capacity = capacity
	r.Touch()
	r.IncrementVersion()
	return nil
}

// Deactivate marks the room unavailable for new tenancies
func (r *Room) Deactivate() error {
	if !r.Active {
		return shared.NewDomainError("INVALID_STATE", "Room is already inactive")
	}
	r.Active = false
	r.Touch()
	r.IncrementVersion()
	return nil
}
