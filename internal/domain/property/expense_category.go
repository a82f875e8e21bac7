package property

import "github.com/hostelops/backend/internal/domain/shared"

// ExpenseCategory classifies miscellaneous bills raised against tenancies
// (mess, laundry, maintenance and the like)
type ExpenseCategory struct {
	shared.BaseAggregateRoot
	Name        string `json:"name"`
	Description string `json:"description"`
}

// NewExpenseCategory creates a new expense category
func NewExpenseCategory(name, description string) (*ExpenseCategory, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Category name cannot be empty")
	}
	if len(name) > 100 {
		return nil, shared.NewDomainError("INVALID_NAME", "Category name cannot exceed 100 characters")
	}
	return &ExpenseCategory{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Description:       description,
	}, nil
}

// Update changes the category name and description
func (c *ExpenseCategory) Update(name, description string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Category name cannot be empty")
	}
	c.Name = name
	c.Description = description
	c.Touch()
	c.IncrementVersion()
	return nil
}
