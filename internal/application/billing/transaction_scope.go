package billing

import (
	"context"

	"github.com/hostelops/backend/internal/domain/billing"
)

// TransactionalRepositories exposes billing repositories bound to one
// transaction. Every read and write through them commits or rolls back
// together.
type TransactionalRepositories interface {
	Tenancies() billing.TenancyRepository
	RentCharges() billing.RentChargeRepository
	Bills() billing.BillRepository
	Payments() billing.PaymentRepository
	UtilityCharges() billing.UtilityChargeRepository
}

// TransactionScope runs a function inside a database transaction. Returning
// an error from fn rolls the whole transaction back.
type TransactionScope interface {
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// NoOpTransactionScope passes through to the given repositories without any
// transaction. Used in tests.
type NoOpTransactionScope struct {
	Repos TransactionalRepositories
}

// NewNoOpTransactionScope creates a pass-through transaction scope
func NewNoOpTransactionScope(repos TransactionalRepositories) *NoOpTransactionScope {
	return &NoOpTransactionScope{Repos: repos}
}

// Execute runs fn against the configured repositories directly
func (s *NoOpTransactionScope) Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s.Repos)
}
