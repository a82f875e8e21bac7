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

// GormRoomRepository implements property.RoomRepository using GORM
type GormRoomRepository struct {
	db *gorm.DB
}

// NewGormRoomRepository creates a new GormRoomRepository
func NewGormRoomRepository(db *gorm.DB) *GormRoomRepository {
	return &GormRoomRepository{db: db}
}

// FindByID finds a room by its ID. Returns nil when no room exists.
func (r *GormRoomRepository) FindByID(ctx context.Context, id uuid.UUID) (*property.Room, error) {
	var model models.RoomModel
	if err := r.db.WithContext(ctx).
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByHostel finds all rooms in a hostel
func (r *GormRoomRepository) FindByHostel(ctx context.Context, hostelID uuid.UUID) ([]property.Room, error) {
	var roomModels []models.RoomModel
	if err := r.db.WithContext(ctx).
		Where("hostel_id = ?", hostelID).
		Order("number ASC").
		Find(&roomModels).Error; err != nil {
		return nil, err
	}
	rooms := make([]property.Room, len(roomModels))
	for i, model := range roomModels {
		rooms[i] = *model.ToDomain()
	}
	return rooms, nil
}

// FindByNumber finds a room by its number within a hostel
func (r *GormRoomRepository) FindByNumber(ctx context.Context, hostelID uuid.UUID, number string) (*property.Room, error) {
	var model models.RoomModel
	if err := r.db.WithContext(ctx).
		Where("hostel_id = ? AND number = ?", hostelID, number).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Save creates or updates a room
func (r *GormRoomRepository) Save(ctx context.Context, room *property.Room) error {
	model := models.RoomModelFromDomain(room)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete removes a room
func (r *GormRoomRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.RoomModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormRoomRepository implements RoomRepository
var _ property.RoomRepository = (*GormRoomRepository)(nil)
