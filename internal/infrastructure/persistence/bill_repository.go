package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/hostelops/backend/internal/domain/billing"
	"github.com/hostelops/backend/internal/domain/shared"
	"github.com/hostelops/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormBillRepository implements billing.BillRepository using GORM
type GormBillRepository struct {
	db *gorm.DB
}

// NewGormBillRepository creates a new GormBillRepository
func NewGormBillRepository(db *gorm.DB) *GormBillRepository {
	return &GormBillRepository{db: db}
}

// Save creates or updates a bill
func (r *GormBillRepository) Save(ctx context.Context, bill *billing.Bill) error {
	model := models.BillModelFromDomain(bill)
	return r.db.WithContext(ctx).Save(model).Error
}

// SaveWithLock saves with optimistic locking
func (r *GormBillRepository) SaveWithLock(ctx context.Context, bill *billing.Bill) error {
	model := models.BillModelFromDomain(bill)
	result := r.db.WithContext(ctx).
		Model(model).
		Where("id = ? AND version = ?", bill.ID, bill.Version-1).
		Updates(model)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewDomainError("CONCURRENCY_CONFLICT", "The bill has been modified by another transaction")
	}
	return nil
}

// FindByID finds a bill by its ID. Returns nil when no bill exists.
func (r *GormBillRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.Bill, error) {
	var model models.BillModel
	if err := r.db.WithContext(ctx).
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindOpenByTenancy finds unpaid and partially paid bills for a tenancy,
// oldest due date first
func (r *GormBillRepository) FindOpenByTenancy(ctx context.Context, tenancyID uuid.UUID) ([]*billing.Bill, error) {
	var billModels []models.BillModel
	if err := r.db.WithContext(ctx).
		Where("tenancy_id = ? AND status IN ?", tenancyID,
			[]billing.DueStatus{billing.DueStatusDue, billing.DueStatusPartial}).
		Order("due_date ASC").
		Find(&billModels).Error; err != nil {
		return nil, err
	}
	bills := make([]*billing.Bill, len(billModels))
	for i, model := range billModels {
		bills[i] = model.ToDomain()
	}
	return bills, nil
}

// FindByTenancy finds all bills ever raised against a tenancy, newest first
func (r *GormBillRepository) FindByTenancy(ctx context.Context, tenancyID uuid.UUID) ([]*billing.Bill, error) {
	var billModels []models.BillModel
	if err := r.db.WithContext(ctx).
		Where("tenancy_id = ?", tenancyID).
		Order("created_at DESC").
		Find(&billModels).Error; err != nil {
		return nil, err
	}
	bills := make([]*billing.Bill, len(billModels))
	for i, model := range billModels {
		bills[i] = model.ToDomain()
	}
	return bills, nil
}

// Ensure GormBillRepository implements BillRepository
var _ billing.BillRepository = (*GormBillRepository)(nil)
