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

// GormTenancyRepository implements billing.TenancyRepository using GORM
type GormTenancyRepository struct {
	db *gorm.DB
}

// NewGormTenancyRepository creates a new GormTenancyRepository
func NewGormTenancyRepository(db *gorm.DB) *GormTenancyRepository {
	return &GormTenancyRepository{db: db}
}

// Save creates or updates a tenancy
func (r *GormTenancyRepository) Save(ctx context.Context, tenancy *billing.Tenancy) error {
	model := models.TenancyModelFromDomain(tenancy)
	return r.db.WithContext(ctx).Save(model).Error
}

// SaveWithLock saves with optimistic locking
func (r *GormTenancyRepository) SaveWithLock(ctx context.Context, tenancy *billing.Tenancy) error {
	model := models.TenancyModelFromDomain(tenancy)
	result := r.db.WithContext(ctx).
		Model(model).
		Where("id = ? AND version = ?", tenancy.ID, tenancy.Version-1).
		Updates(model)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewDomainError("CONCURRENCY_CONFLICT", "The tenancy has been modified by another transaction")
	}
	return nil
}

// FindByID finds a tenancy by its ID. Returns nil when no tenancy exists.
func (r *GormTenancyRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.Tenancy, error) {
	var model models.TenancyModel
	if err := r.db.WithContext(ctx).
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindActiveByTenant finds the tenant's active tenancy, if any
func (r *GormTenancyRepository) FindActiveByTenant(ctx context.Context, tenantID uuid.UUID) (*billing.Tenancy, error) {
	var model models.TenancyModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND active = ?", tenantID, true).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindActiveByRoom finds all active tenancies occupying a room
func (r *GormTenancyRepository) FindActiveByRoom(ctx context.Context, roomID uuid.UUID) ([]*billing.Tenancy, error) {
	var tenancyModels []models.TenancyModel
	if err := r.db.WithContext(ctx).
		Where("room_id = ? AND active = ?", roomID, true).
		Order("start_at ASC").
		Find(&tenancyModels).Error; err != nil {
		return nil, err
	}
	tenancies := make([]*billing.Tenancy, len(tenancyModels))
	for i, model := range tenancyModels {
		tenancies[i] = model.ToDomain()
	}
	return tenancies, nil
}

// CountActiveByRoom counts the active tenancies occupying a room
func (r *GormTenancyRepository) CountActiveByRoom(ctx context.Context, roomID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.TenancyModel{}).
		Where("room_id = ? AND active = ?", roomID, true).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// FindAllActive finds every active tenancy, ordered for stable rollover batches
func (r *GormTenancyRepository) FindAllActive(ctx context.Context) ([]*billing.Tenancy, error) {
	var tenancyModels []models.TenancyModel
	if err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Order("created_at ASC").
		Find(&tenancyModels).Error; err != nil {
		return nil, err
	}
	tenancies := make([]*billing.Tenancy, len(tenancyModels))
	for i, model := range tenancyModels {
		tenancies[i] = model.ToDomain()
	}
	return tenancies, nil
}

// FindByTenant finds all tenancies ever held by a tenant, newest first
func (r *GormTenancyRepository) FindByTenant(ctx context.Context, tenantID uuid.UUID) ([]*billing.Tenancy, error) {
	var tenancyModels []models.TenancyModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("start_at DESC").
		Find(&tenancyModels).Error; err != nil {
		return nil, err
	}
	tenancies := make([]*billing.Tenancy, len(tenancyModels))
	for i, model := range tenancyModels {
		tenancies[i] = model.ToDomain()
	}
	return tenancies, nil
}

// Ensure GormTenancyRepository implements TenancyRepository
var _ billing.TenancyRepository = (*GormTenancyRepository)(nil)
