package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/hostelops/backend/internal/domain/billing"
	"github.com/hostelops/backend/internal/domain/shared/valueobject"
	"github.com/hostelops/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormUtilityChargeRepository implements billing.UtilityChargeRepository using GORM
type GormUtilityChargeRepository struct {
	db *gorm.DB
}

// NewGormUtilityChargeRepository creates a new GormUtilityChargeRepository
func NewGormUtilityChargeRepository(db *gorm.DB) *GormUtilityChargeRepository {
	return &GormUtilityChargeRepository{db: db}
}

// Save creates or updates a shared utility charge
func (r *GormUtilityChargeRepository) Save(ctx context.Context, charge *billing.SharedUtilityCharge) error {
	model := models.SharedUtilityChargeModelFromDomain(charge)
	return r.db.WithContext(ctx).Save(model).Error
}

// FindByID finds a utility charge by its ID. Returns nil when no charge exists.
func (r *GormUtilityChargeRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.SharedUtilityCharge, error) {
	var model models.SharedUtilityChargeModel
	if err := r.db.WithContext(ctx).
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByRoomAndPeriod finds the one utility charge for a room and period
func (r *GormUtilityChargeRepository) FindByRoomAndPeriod(ctx context.Context, roomID uuid.UUID, period valueobject.Period) (*billing.SharedUtilityCharge, error) {
	var model models.SharedUtilityChargeModel
	if err := r.db.WithContext(ctx).
		Where("room_id = ? AND period = ?", roomID, period).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Ensure GormUtilityChargeRepository implements UtilityChargeRepository
var _ billing.UtilityChargeRepository = (*GormUtilityChargeRepository)(nil)
