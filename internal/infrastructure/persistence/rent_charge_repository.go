package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/hostelops/backend/internal/domain/billing"
	"github.com/hostelops/backend/internal/domain/shared"
	"github.com/hostelops/backend/internal/domain/shared/valueobject"
	"github.com/hostelops/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormRentChargeRepository implements billing.RentChargeRepository using GORM
type GormRentChargeRepository struct {
	db *gorm.DB
}

// NewGormRentChargeRepository creates a new GormRentChargeRepository
func NewGormRentChargeRepository(db *gorm.DB) *GormRentChargeRepository {
	return &GormRentChargeRepository{db: db}
}

// Save creates or updates a rent charge. Inserting a second charge for the
// same (tenancy, period) fails on the unique index; callers treat that
// violation as an idempotent no-op during rollover.
func (r *GormRentChargeRepository) Save(ctx context.Context, charge *billing.RentCharge) error {
	model := models.RentChargeModelFromDomain(charge)
	return r.db.WithContext(ctx).Save(model).Error
}

// SaveWithLock saves with optimistic locking
func (r *GormRentChargeRepository) SaveWithLock(ctx context.Context, charge *billing.RentCharge) error {
	model := models.RentChargeModelFromDomain(charge)
	result := r.db.WithContext(ctx).
		Model(model).
		Where("id = ? AND version = ?", charge.ID, charge.Version-1).
		Updates(model)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewDomainError("CONCURRENCY_CONFLICT", "The rent charge has been modified by another transaction")
	}
	return nil
}

// FindByID finds a rent charge by its ID. Returns nil when no charge exists.
func (r *GormRentChargeRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.RentCharge, error) {
	var model models.RentChargeModel
	if err := r.db.WithContext(ctx).
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByTenancyAndPeriod finds the one charge for a tenancy and period
func (r *GormRentChargeRepository) FindByTenancyAndPeriod(ctx context.Context, tenancyID uuid.UUID, period valueobject.Period) (*billing.RentCharge, error) {
	var model models.RentChargeModel
	if err := r.db.WithContext(ctx).
		Where("tenancy_id = ? AND period = ?", tenancyID, period).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// ExistsForPeriod checks whether a charge already exists for a tenancy and period
func (r *GormRentChargeRepository) ExistsForPeriod(ctx context.Context, tenancyID uuid.UUID, period valueobject.Period) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.RentChargeModel{}).
		Where("tenancy_id = ? AND period = ?", tenancyID, period).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// FindOpenByTenancy finds unpaid and partially paid charges for a tenancy,
// oldest due date first, optionally restricted to a single period
func (r *GormRentChargeRepository) FindOpenByTenancy(ctx context.Context, tenancyID uuid.UUID, period *valueobject.Period) ([]*billing.RentCharge, error) {
	query := r.db.WithContext(ctx).
		Where("tenancy_id = ? AND status IN ?", tenancyID,
			[]billing.DueStatus{billing.DueStatusDue, billing.DueStatusPartial})
	if period != nil {
		query = query.Where("period = ?", *period)
	}

	var chargeModels []models.RentChargeModel
	if err := query.Order("due_date ASC").Find(&chargeModels).Error; err != nil {
		return nil, err
	}
	charges := make([]*billing.RentCharge, len(chargeModels))
	for i, model := range chargeModels {
		charges[i] = model.ToDomain()
	}
	return charges, nil
}

// Ensure GormRentChargeRepository implements RentChargeRepository
var _ billing.RentChargeRepository = (*GormRentChargeRepository)(nil)
