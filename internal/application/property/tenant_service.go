package property

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hostelops/backend/internal/domain/billing"
	"github.com/hostelops/backend/internal/domain/property"
	"github.com/hostelops/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// TenantService manages tenant profiles. Profiles referenced by financial
// records are deactivated, never removed.
type TenantService struct {
	tenantRepo  property.TenantProfileRepository
	tenancyRepo billing.TenancyRepository
	auditLogger shared.AuditLogger
	logger      *zap.Logger
}

// NewTenantService creates a new tenant service
func NewTenantService(
	tenantRepo property.TenantProfileRepository,
	tenancyRepo billing.TenancyRepository,
	auditLogger shared.AuditLogger,
	logger *zap.Logger,
) *TenantService {
	return &TenantService{
		tenantRepo:  tenantRepo,
		tenancyRepo: tenancyRepo,
		auditLogger: auditLogger,
		logger:      logger,
	}
}

// CreateTenant registers a tenant profile
func (s *TenantService) CreateTenant(ctx context.Context, actor shared.Actor, req CreateTenantRequest) (*TenantDTO, error) {
	tenant, err := property.NewTenantProfile(req.Name, req.Phone, req.Email)
	if err != nil {
		return nil, err
	}
	if err := s.tenantRepo.Save(ctx, tenant); err != nil {
		return nil, fmt.Errorf("failed to save tenant: %w", err)
	}

	s.audit(ctx, actor, tenant, shared.AuditActionCreate)
	dto := ToTenantDTO(tenant)
	return &dto, nil
}

// UpdateTenant updates a tenant profile
func (s *TenantService) UpdateTenant(ctx context.Context, actor shared.Actor, id uuid.UUID, req UpdateTenantRequest) (*TenantDTO, error) {
	tenant, err := s.tenantRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if tenant == nil {
		return nil, shared.NewDomainError("TENANT_NOT_FOUND", "Tenant not found")
	}
	if err := tenant.Update(req.Name, req.Phone, req.Email); err != nil {
		return nil, err
	}
	if err := s.tenantRepo.Save(ctx, tenant); err != nil {
		return nil, fmt.Errorf("failed to save tenant: %w", err)
	}

	s.audit(ctx, actor, tenant, shared.AuditActionUpdate)
	dto := ToTenantDTO(tenant)
	return &dto, nil
}

// DeactivateTenant deactivates the profile and ends the tenant's active
// tenancy. Open dues of the tenancy stay collectable.
func (s *TenantService) DeactivateTenant(ctx context.Context, actor shared.Actor, id uuid.UUID) error {
	tenant, err := s.tenantRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if tenant == nil {
		return shared.NewDomainError("TENANT_NOT_FOUND", "Tenant not found")
	}
	if err := tenant.Deactivate(); err != nil {
		return err
	}
	if err := s.tenantRepo.Save(ctx, tenant); err != nil {
		return fmt.Errorf("failed to save tenant: %w", err)
	}

	tenancy, err := s.tenancyRepo.FindActiveByTenant(ctx, id)
	if err != nil {
		return err
	}
	if tenancy != nil {
		if err := tenancy.End(time.Now()); err != nil {
			return err
		}
		if err := s.tenancyRepo.SaveWithLock(ctx, tenancy); err != nil {
			return fmt.Errorf("failed to end tenancy: %w", err)
		}
	}

	s.audit(ctx, actor, tenant, shared.AuditActionUpdate)
	s.logger.Info("tenant deactivated", zap.String("tenant_id", id.String()))
	return nil
}

// GetTenant returns one tenant profile
func (s *TenantService) GetTenant(ctx context.Context, id uuid.UUID) (*TenantDTO, error) {
	tenant, err := s.tenantRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if tenant == nil {
		return nil, shared.NewDomainError("TENANT_NOT_FOUND", "Tenant not found")
	}
	dto := ToTenantDTO(tenant)
	return &dto, nil
}

// ListTenants returns all tenant profiles, optionally active only
func (s *TenantService) ListTenants(ctx context.Context, activeOnly bool) ([]TenantDTO, error) {
	tenants, err := s.tenantRepo.FindAll(ctx, activeOnly)
	if err != nil {
		return nil, err
	}
	dtos := make([]TenantDTO, 0, len(tenants))
	for i := range tenants {
		dtos = append(dtos, ToTenantDTO(&tenants[i]))
	}
	return dtos, nil
}

func (s *TenantService) audit(ctx context.Context, actor shared.Actor, tenant *property.TenantProfile, action shared.AuditAction) {
	entry := shared.AuditEntry{
		Actor:      actor,
		EntityType: "TenantProfile",
		EntityID:   tenant.ID,
		Action:     action,
		AfterState: map[string]any{"name": tenant.Name, "active": tenant.Active},
	}
	if err := s.auditLogger.LogAction(ctx, entry); err != nil {
		s.logger.Warn("audit log failed", zap.Error(err))
	}
}
