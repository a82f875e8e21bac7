package billing

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/hostelops/backend/internal/domain/billing"
	"github.com/hostelops/backend/internal/domain/shared"
	"github.com/hostelops/backend/internal/domain/shared/valueobject"
	"go.uber.org/zap"
)

// AllocationService previews how a payment amount would split across a
// tenant's open dues. Proposals are never persisted here.
type AllocationService struct {
	tenancyRepo    billing.TenancyRepository
	rentChargeRepo billing.RentChargeRepository
	billRepo       billing.BillRepository
	logger         *zap.Logger
}

// NewAllocationService creates a new allocation service
func NewAllocationService(
	tenancyRepo billing.TenancyRepository,
	rentChargeRepo billing.RentChargeRepository,
	billRepo billing.BillRepository,
	logger *zap.Logger,
) *AllocationService {
	return &AllocationService{
		tenancyRepo:    tenancyRepo,
		rentChargeRepo: rentChargeRepo,
		billRepo:       billRepo,
		logger:         logger,
	}
}

// SuggestAllocation proposes an oldest-due-first split of the amount across
// the tenant's open dues
func (s *AllocationService) SuggestAllocation(ctx context.Context, req SuggestAllocationRequest) (*billing.AllocationPlan, error) {
	amount, err := valueobject.NewMoney(req.Amount, valueobject.INR)
	if err != nil {
		return nil, err
	}

	dues, err := s.openDues(ctx, req.TenantID)
	if err != nil {
		return nil, err
	}

	plan, err := billing.NewOldestFirstStrategy().Allocate(amount, dues)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("suggested allocation",
		zap.String("tenant_id", req.TenantID.String()),
		zap.String("amount", req.Amount.String()),
		zap.Int("allocations", len(plan.Allocations)),
		zap.String("unallocated", plan.Unallocated.String()))
	return plan, nil
}

// openDues loads the strategy-facing view of every open due of the tenant's
// active tenancy
func (s *AllocationService) openDues(ctx context.Context, tenantID uuid.UUID) ([]billing.OpenDue, error) {
	tenancy, err := s.tenancyRepo.FindActiveByTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if tenancy == nil {
		return nil, shared.NewDomainError("TENANCY_NOT_FOUND", "Tenant has no active tenancy")
	}

	charges, err := s.rentChargeRepo.FindOpenByTenancy(ctx, tenancy.ID, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to load open rent charges: %w", err)
	}
	bills, err := s.billRepo.FindOpenByTenancy(ctx, tenancy.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load open bills: %w", err)
	}

	dues := make([]billing.OpenDue, 0, len(charges)+len(bills))
	for _, rc := range charges {
		dues = append(dues, billing.OpenDue{Ref: rc.Ref(), DueDate: rc.DueDate, Outstanding: rc.Outstanding()})
	}
	for _, b := range bills {
		dues = append(dues, billing.OpenDue{Ref: b.Ref(), DueDate: b.DueDate, Outstanding: b.Outstanding()})
	}
	return dues, nil
}
