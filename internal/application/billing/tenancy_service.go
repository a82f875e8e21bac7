package billing

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/hostelops/backend/internal/domain/billing"
	"github.com/hostelops/backend/internal/domain/property"
	"github.com/hostelops/backend/internal/domain/shared"
	"github.com/hostelops/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// TenancyService manages the lifecycle of tenancies. A tenant holds at most
// one active tenancy at a time.
type TenancyService struct {
	txScope     TransactionScope
	roomRepo    property.RoomRepository
	auditLogger shared.AuditLogger
	logger      *zap.Logger
}

// NewTenancyService creates a new tenancy service
func NewTenancyService(
	txScope TransactionScope,
	roomRepo property.RoomRepository,
	auditLogger shared.AuditLogger,
	logger *zap.Logger,
) *TenancyService {
	return &TenancyService{
		txScope:     txScope,
		roomRepo:    roomRepo,
		auditLogger: auditLogger,
		logger:      logger,
	}
}

// CreateTenancy starts a tenancy for a tenant in a room
func (s *TenancyService) CreateTenancy(ctx context.Context, actor shared.Actor, req CreateTenancyRequest) (*TenancyDTO, error) {
	rent, err := valueobject.NewMoney(req.MonthlyRent, valueobject.DefaultCurrency)
	if err != nil {
		return nil, err
	}

	room, err := s.roomRepo.FindByID(ctx, req.RoomID)
	if err != nil {
		return nil, err
	}
	if room == nil {
		return nil, shared.NewDomainError("ROOM_NOT_FOUND", "Room not found")
	}
	if !room.Active {
		return nil, shared.NewDomainError("INVALID_STATE", "Room is not available for new tenancies")
	}

	tenancy, err := billing.NewTenancy(req.RoomID, req.TenantID, req.StartAt, rent)
	if err != nil {
		return nil, err
	}

	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		existing, err := repos.Tenancies().FindActiveByTenant(ctx, req.TenantID)
		if err != nil {
			return err
		}
		if existing != nil {
			return shared.NewDomainError("ACTIVE_TENANCY_EXISTS",
				fmt.Sprintf("Tenant already has an active tenancy in room %s", existing.RoomID))
		}

		occupied, err := repos.Tenancies().CountActiveByRoom(ctx, req.RoomID)
		if err != nil {
			return err
		}
		if occupied >= int64(room.Capacity) {
			return shared.NewDomainError("ROOM_FULL",
				fmt.Sprintf("Room %s is at capacity (%d)", room.Number, room.Capacity))
		}

		return repos.Tenancies().Save(ctx, tenancy)
	})
	if err != nil {
		return nil, err
	}

	s.audit(ctx, actor, tenancy, shared.AuditActionCreate, nil)
	s.logger.Info("tenancy created",
		zap.String("tenancy_id", tenancy.ID.String()),
		zap.String("tenant_id", tenancy.TenantID.String()),
		zap.String("room_id", tenancy.RoomID.String()))

	dto := ToTenancyDTO(tenancy)
	return &dto, nil
}

// EndTenancy closes a tenancy. Open dues stay collectable.
func (s *TenancyService) EndTenancy(ctx context.Context, actor shared.Actor, req EndTenancyRequest) (*TenancyDTO, error) {
	var tenancy *billing.Tenancy
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		tenancy, err = repos.Tenancies().FindByID(ctx, req.TenancyID)
		if err != nil {
			return err
		}
		if tenancy == nil {
			return shared.NewDomainError("TENANCY_NOT_FOUND", "Tenancy not found")
		}
		if err := tenancy.End(req.EndAt); err != nil {
			return err
		}
		return repos.Tenancies().SaveWithLock(ctx, tenancy)
	})
	if err != nil {
		return nil, err
	}

	s.audit(ctx, actor, tenancy, shared.AuditActionUpdate, nil)
	s.logger.Info("tenancy ended",
		zap.String("tenancy_id", tenancy.ID.String()),
		zap.Time("end_at", req.EndAt))

	dto := ToTenancyDTO(tenancy)
	return &dto, nil
}

// CorrectPreviousBalance replaces a tenancy's carry-forward balance by
// explicit admin action. The change is audited with before and after state.
func (s *TenancyService) CorrectPreviousBalance(ctx context.Context, actor shared.Actor, req CorrectBalanceRequest) (*TenancyDTO, error) {
	var tenancy *billing.Tenancy
	var before decimal.Decimal

	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		tenancy, err = repos.Tenancies().FindByID(ctx, req.TenancyID)
		if err != nil {
			return err
		}
		if tenancy == nil {
			return shared.NewDomainError("TENANCY_NOT_FOUND", "Tenancy not found")
		}
		before = tenancy.PreviousBalance
		if err := tenancy.CorrectPreviousBalance(req.NewBalance); err != nil {
			return err
		}
		return repos.Tenancies().SaveWithLock(ctx, tenancy)
	})
	if err != nil {
		return nil, err
	}

	s.audit(ctx, actor, tenancy, shared.AuditActionUpdate, map[string]any{
		"previous_balance": before.String(),
		"reason":           req.Reason,
	})

	dto := ToTenancyDTO(tenancy)
	return &dto, nil
}

// SetUtilityOverride pins or clears a tenancy's utility share for the current
// period
func (s *TenancyService) SetUtilityOverride(ctx context.Context, actor shared.Actor, tenancyID uuid.UUID, amount *decimal.Decimal) (*TenancyDTO, error) {
	var tenancy *billing.Tenancy
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		tenancy, err = repos.Tenancies().FindByID(ctx, tenancyID)
		if err != nil {
			return err
		}
		if tenancy == nil {
			return shared.NewDomainError("TENANCY_NOT_FOUND", "Tenancy not found")
		}
		if err := tenancy.SetUtilityOverride(amount); err != nil {
			return err
		}
		return repos.Tenancies().SaveWithLock(ctx, tenancy)
	})
	if err != nil {
		return nil, err
	}

	s.audit(ctx, actor, tenancy, shared.AuditActionUpdate, nil)
	dto := ToTenancyDTO(tenancy)
	return &dto, nil
}

// GetTenancy returns one tenancy
func (s *TenancyService) GetTenancy(ctx context.Context, id uuid.UUID) (*TenancyDTO, error) {
	var dto *TenancyDTO
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		tenancy, err := repos.Tenancies().FindByID(ctx, id)
		if err != nil {
			return err
		}
		if tenancy == nil {
			return shared.NewDomainError("TENANCY_NOT_FOUND", "Tenancy not found")
		}
		d := ToTenancyDTO(tenancy)
		dto = &d
		return nil
	})
	return dto, err
}

// ListTenanciesByTenant returns all tenancies of a tenant, active or ended
func (s *TenancyService) ListTenanciesByTenant(ctx context.Context, tenantID uuid.UUID) ([]TenancyDTO, error) {
	var dtos []TenancyDTO
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		tenancies, err := repos.Tenancies().FindByTenant(ctx, tenantID)
		if err != nil {
			return err
		}
		dtos = make([]TenancyDTO, 0, len(tenancies))
		for _, t := range tenancies {
			dtos = append(dtos, ToTenancyDTO(t))
		}
		return nil
	})
	return dtos, err
}

func (s *TenancyService) audit(ctx context.Context, actor shared.Actor, tenancy *billing.Tenancy, action shared.AuditAction, before map[string]any) {
	entry := shared.AuditEntry{
		Actor:       actor,
		EntityType:  "Tenancy",
		EntityID:    tenancy.ID,
		Action:      action,
		BeforeState: before,
		AfterState: map[string]any{
			"tenant_id":        tenancy.TenantID.String(),
			"room_id":          tenancy.RoomID.String(),
			"active":           tenancy.Active,
			"monthly_rent":     tenancy.MonthlyRent.String(),
			"previous_balance": tenancy.PreviousBalance.String(),
		},
	}
	if err := s.auditLogger.LogAction(ctx, entry); err != nil {
		s.logger.Warn("audit log failed", zap.Error(err))
	}
}
