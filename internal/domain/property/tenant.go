package property

import "github.com/hostelops/backend/internal/domain/shared"

// TenantProfile holds the personal details of a tenant. Billing state lives on
// the Tenancy aggregate; a profile is never physically removed while financial
// records reference it.
type TenantProfile struct {
	shared.BaseAggregateRoot
	Name   string `json:"name"`
	Phone  string `json:"phone"`
	Email  string `json:"email"`
	Active bool   `json:"active"`
}

// NewTenantProfile creates a new tenant profile
func NewTenantProfile(name, phone, email string) (*TenantProfile, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Tenant name cannot be empty")
	}
	if len(name) > 200 {
		return nil, shared.NewDomainError("INVALID_NAME", "Tenant name cannot exceed 200 characters")
	}
	return &TenantProfile{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Phone:             phone,
		Email:             email,
		Active:            true,
	}, nil
}

// Update changes the tenant's contact details
func (t *TenantProfile) Update(name, phone, email string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Tenant name cannot be empty")
	}
	t.Name = name
	t.Phone = phone
	t.Email = email
	t.Touch()
	t.IncrementVersion()
	return nil
}

// Deactivate marks the tenant inactive. The caller is responsible for ending
// the tenant's active tenancy in the same operation.
func (t *TenantProfile) Deactivate() error {
	if !t.Active {
		return shared.NewDomainError("INVALID_STATE", "Tenant is already inactive")
	}
	t.Active = false
	t.Touch()
	t.IncrementVersion()
	return nil
}
