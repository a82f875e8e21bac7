package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/hostelops/backend/internal/domain/property"
	"github.com/hostelops/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormTenantProfileRepository implements property.TenantProfileRepository using GORM
type GormTenantProfileRepository struct {
	db *gorm.DB
}

// NewGormTenantProfileRepository creates a new GormTenantProfileRepository
func NewGormTenantProfileRepository(db *gorm.DB) *GormTenantProfileRepository {
	return &GormTenantProfileRepository{db: db}
}

// FindByID finds a tenant profile by its ID. Returns nil when no profile exists.
func (r *GormTenantProfileRepository) FindByID(ctx context.Context, id uuid.UUID) (*property.TenantProfile, error) {
	var model models.TenantProfileModel
	if err := r.db.WithContext(ctx).
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all tenant profiles, optionally only active ones
func (r *GormTenantProfileRepository) FindAll(ctx context.Context, activeOnly bool) ([]property.TenantProfile, error) {
	query := r.db.WithContext(ctx).Model(&models.TenantProfileModel{})
	if activeOnly {
		query = query.Where("active = ?", true)
	}

	var tenantModels []models.TenantProfileModel
	if err := query.Order("name ASC").Find(&tenantModels).Error; err != nil {
		return nil, err
	}
	tenants := make([]property.TenantProfile, len(tenantModels))
	for i, model := range tenantModels {
		tenants[i] = *model.ToDomain()
	}
	return tenants, nil
}

// Save creates or updates a tenant profile
func (r *GormTenantProfileRepository) Save(ctx context.Context, tenant *property.TenantProfile) error {
	model := models.TenantProfileModelFromDomain(tenant)
	return r.db.WithContext(ctx).Save(model).Error
}

// Ensure GormTenantProfileRepository implements TenantProfileRepository
var _ property.TenantProfileRepository = (*GormTenantProfileRepository)(nil)
