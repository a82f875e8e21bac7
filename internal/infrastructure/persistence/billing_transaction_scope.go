package persistence

import (
	"context"

	appbilling "github.com/hostelops/backend/internal/application/billing"
	"github.com/hostelops/backend/internal/domain/billing"
	"gorm.io/gorm"
)

// GormTransactionScope implements TransactionScope using GORM transactions.
// It provides atomic execution of multiple repository operations.
type GormTransactionScope struct {
	db *gorm.DB
}

// NewGormTransactionScope creates a new GormTransactionScope.
func NewGormTransactionScope(db *gorm.DB) *GormTransactionScope {
	return &GormTransactionScope{db: db}
}

// Execute runs the given function within a database transaction.
// If the function returns an error, the transaction is rolled back.
// If the function succeeds, the transaction is committed.
func (s *GormTransactionScope) Execute(ctx context.Context, fn func(repos appbilling.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repos := &gormTransactionalRepositories{tx: tx}
		return fn(repos)
	})
}

// gormTransactionalRepositories provides access to all billing repositories
// within a transaction.
type gormTransactionalRepositories struct {
	tx *gorm.DB
}

// Tenancies returns the tenancy repository scoped to the current transaction.
func (r *gormTransactionalRepositories) Tenancies() billing.TenancyRepository {
	return NewGormTenancyRepository(r.tx)
}

// RentCharges returns the rent charge repository scoped to the current transaction.
func (r *gormTransactionalRepositories) RentCharges() billing.RentChargeRepository {
	return NewGormRentChargeRepository(r.tx)
}

// Bills returns the bill repository scoped to the current transaction.
func (r *gormTransactionalRepositories) Bills() billing.BillRepository {
	return NewGormBillRepository(r.tx)
}

// Payments returns the payment repository scoped to the current transaction.
func (r *gormTransactionalRepositories) Payments() billing.PaymentRepository {
	return NewGormPaymentRepository(r.tx)
}

// UtilityCharges returns the utility charge repository scoped to the current transaction.
func (r *gormTransactionalRepositories) UtilityCharges() billing.UtilityChargeRepository {
	return NewGormUtilityChargeRepository(r.tx)
}

// Ensure GormTransactionScope implements TransactionScope
var _ appbilling.TransactionScope = (*GormTransactionScope)(nil)

// Ensure gormTransactionalRepositories implements TransactionalRepositories
var _ appbilling.TransactionalRepositories = (*gormTransactionalRepositories)(nil)
