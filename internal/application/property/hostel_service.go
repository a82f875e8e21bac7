package property

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/hostelops/backend/internal/domain/property"
	"github.com/hostelops/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// HostelService manages hostels and their rooms
type HostelService struct {
	hostelRepo  property.HostelRepository
	roomRepo    property.RoomRepository
	auditLogger shared.AuditLogger
	logger      *zap.Logger
}

// NewHostelService creates a new hostel service
func NewHostelService(
	hostelRepo property.HostelRepository,
	roomRepo property.RoomRepository,
	auditLogger shared.AuditLogger,
	logger *zap.Logger,
) *HostelService {
	return &HostelService{
		hostelRepo:  hostelRepo,
		roomRepo:    roomRepo,
		auditLogger: auditLogger,
		logger:      logger,
	}
}

// CreateHostel creates a new hostel
func (s *HostelService) CreateHostel(ctx context.Context, actor shared.Actor, req CreateHostelRequest) (*HostelDTO, error) {
	hostel, err := property.NewHostel(req.Name, req.Address)
	if err != nil {
		return nil, err
	}
	if err := s.hostelRepo.Save(ctx, hostel); err != nil {
		return nil, fmt.Errorf("failed to save hostel: %w", err)
	}

	s.auditEntity(ctx, actor, "Hostel", hostel.ID, shared.AuditActionCreate, map[string]any{"name": hostel.Name})
	dto := ToHostelDTO(hostel)
	return &dto, nil
}

// UpdateHostel changes a hostel's descriptive fields
func (s *HostelService) UpdateHostel(ctx context.Context, actor shared.Actor, id uuid.UUID, req UpdateHostelRequest) (*HostelDTO, error) {
	hostel, err := s.hostelRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if hostel == nil {
		return nil, shared.NewDomainError("HOSTEL_NOT_FOUND", "Hostel not found")
	}
	if err := hostel.Update(req.Name, req.Address); err != nil {
		return nil, err
	}
	if err := s.hostelRepo.Save(ctx, hostel); err != nil {
		return nil, fmt.Errorf("failed to save hostel: %w", err)
	}

	s.auditEntity(ctx, actor, "Hostel", hostel.ID, shared.AuditActionUpdate, map[string]any{"name": hostel.Name})
	dto := ToHostelDTO(hostel)
	return &dto, nil
}

// DeactivateHostel marks a hostel inactive
func (s *HostelService) DeactivateHostel(ctx context.Context, actor shared.Actor, id uuid.UUID) error {
	hostel, err := s.hostelRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if hostel == nil {
		return shared.NewDomainError("HOSTEL_NOT_FOUND", "Hostel not found")
	}
	if err := hostel.Deactivate(); err != nil {
		return err
	}
	if err := s.hostelRepo.Save(ctx, hostel); err != nil {
		return fmt.Errorf("failed to save hostel: %w", err)
	}
	s.auditEntity(ctx, actor, "Hostel", hostel.ID, shared.AuditActionUpdate, map[string]any{"active": false})
	return nil
}

// GetHostel returns one hostel
func (s *HostelService) GetHostel(ctx context.Context, id uuid.UUID) (*HostelDTO, error) {
	hostel, err := s.hostelRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if hostel == nil {
		return nil, shared.NewDomainError("HOSTEL_NOT_FOUND", "Hostel not found")
	}
	dto := ToHostelDTO(hostel)
	return &dto, nil
}

// ListHostels returns all hostels, optionally active only
func (s *HostelService) ListHostels(ctx context.Context, activeOnly bool) ([]HostelDTO, error) {
	hostels, err := s.hostelRepo.FindAll(ctx, activeOnly)
	if err != nil {
		return nil, err
	}
	dtos := make([]HostelDTO, 0, len(hostels))
	for i := range hostels {
		dtos = append(dtos, ToHostelDTO(&hostels[i]))
	}
	return dtos, nil
}

// CreateRoom adds a room to a hostel. Room numbers are unique per hostel.
func (s *HostelService) CreateRoom(ctx context.Context, actor shared.Actor, req CreateRoomRequest) (*RoomDTO, error) {
	hostel, err := s.hostelRepo.FindByID(ctx, req.HostelID)
	if err != nil {
		return nil, err
	}
	if hostel == nil {
		return nil, shared.NewDomainError("HOSTEL_NOT_FOUND", "Hostel not found")
	}

	existing, err := s.roomRepo.FindByNumber(ctx, req.HostelID, req.Number)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS",
			fmt.Sprintf("Room %s already exists in this hostel", req.Number))
	}

	room, err := property.NewRoom(req.HostelID, req.Number, req.Capacity)
	if err != nil {
		return nil, err
	}
	if err := s.roomRepo.Save(ctx, room); err != nil {
		return nil, fmt.Errorf("failed to save room: %w", err)
	}

	s.auditEntity(ctx, actor, "Room", room.ID, shared.AuditActionCreate, map[string]any{"number": room.Number})
	dto := ToRoomDTO(room)
	return &dto, nil
}

// UpdateRoom changes a room's number or capacity
func (s *HostelService) UpdateRoom(ctx context.Context, actor shared.Actor, id uuid.UUID, req UpdateRoomRequest) (*RoomDTO, error) {
	room, err := s.roomRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if room == nil {
		return nil, shared.NewDomainError("ROOM_NOT_FOUND", "Room not found")
	}
	if err := room.Update(req.Number, req.Capacity); err != nil {
		return nil, err
	}
	if err := s.roomRepo.Save(ctx, room); err != nil {
		return nil, fmt.Errorf("failed to save room: %w", err)
	}

	s.auditEntity(ctx, actor, "Room", room.ID, shared.AuditActionUpdate, map[string]any{"number": room.Number})
	dto := ToRoomDTO(room)
	return &dto, nil
}

// ListRooms returns a hostel's rooms
func (s *HostelService) ListRooms(ctx context.Context, hostelID uuid.UUID) ([]RoomDTO, error) {
	rooms, err := s.roomRepo.FindByHostel(ctx, hostelID)
	if err != nil {
		return nil, err
	}
	dtos := make([]RoomDTO, 0, len(rooms))
	for i := range rooms {
		dtos = append(dtos, ToRoomDTO(&rooms[i]))
	}
	return dtos, nil
}

func (s *HostelService) auditEntity(ctx context.Context, actor shared.Actor, entityType string, id uuid.UUID, action shared.AuditAction, after map[string]any) {
	entry := shared.AuditEntry{
		Actor:      actor,
		EntityType: entityType,
		EntityID:   id,
		Action:     action,
		AfterState: after,
	}
	if err := s.auditLogger.LogAction(ctx, entry); err != nil {
		s.logger.Warn("audit log failed", zap.Error(err))
	}
}
