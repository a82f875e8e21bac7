package property

import "github.com/hostelops/backend/internal/domain/shared"

// Hostel represents one managed property containing rooms
type Hostel struct {
	shared.BaseAggregateRoot
	Name    string `json:"name"`
	Address string `json:"address"`
	Active  bool   `json:"active"`
}

// NewHostel creates a new hostel
func NewHostel(name, address string) (*Hostel, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Hostel name cannot be empty")
	}
	if len(name) > 200 {
		return nil, shared.NewDomainError("INVALID_NAME", "Hostel name cannot exceed 200 characters")
	}
	return &Hostel{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Address:           address,
		Active:            true,
	}, nil
}

// Update changes the hostel's descriptive fields
func (h *Hostel) Update(name, address string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Hostel name cannot be empty")
	}
	h.Name = name
	h.Address = address
	h.Touch()
	h.IncrementVersion()
	return nil
}

// Deactivate marks the hostel inactive; rooms remain referenced by history
func (h *Hostel) Deactivate() error {
	if !h.Active {
		return shared.NewDomainError("INVALID_STATE", "Hostel is already inactive")
	}
	h.Active = false
	h.Touch()
	h.IncrementVersion()
	return nil
}
