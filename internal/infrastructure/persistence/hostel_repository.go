package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/hostelops/backend/internal/domain/property"
	"github.com/hostelops/backend/internal/domain/shared"
	"github.com/hostelops/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormHostelRepository implements property.HostelRepository using GORM
type GormHostelRepository struct {
	db *gorm.DB
}

// NewGormHostelRepository creates a new GormHostelRepository
func NewGormHostelRepository(db *gorm.DB) *GormHostelRepository {
	return &GormHostelRepository{db: db}
}

// FindByID finds a hostel by its ID. Returns nil when no hostel exists.
func (r *GormHostelRepository) FindByID(ctx context.Context, id uuid.UUID) (*property.Hostel, error) {
	var model models.HostelModel
	if err := r.db.WithContext(ctx).
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all hostels, optionally only active ones
func (r *GormHostelRepository) FindAll(ctx context.Context, activeOnly bool) ([]property.Hostel, error) {
	query := r.db.WithContext(ctx).Model(&models.HostelModel{})
	if activeOnly {
		query = query.Where("active = ?", true)
	}

	var hostelModels []models.HostelModel
	if err := query.Order("name ASC").Find(&hostelModels).Error; err != nil {
		return nil, err
	}
	hostels := make([]property.Hostel, len(hostelModels))
	for i, model := range hostelModels {
		hostels[i] = *model.ToDomain()
	}
	return hostels, nil
}

// Save creates or updates a hostel
func (r *GormHostelRepository) Save(ctx context.Context, hostel *property.Hostel) error {
	model := models.HostelModelFromDomain(hostel)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete removes a hostel
func (r *GormHostelRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.HostelModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormHostelRepository implements HostelRepository
var _ property.HostelRepository = (*GormHostelRepository)(nil)
