package billing

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/hostelops/backend/internal/domain/billing"
	"github.com/hostelops/backend/internal/domain/shared"
	"github.com/hostelops/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// UtilityShareDTO is a tenancy's read-time share of a room's utility total
// for one period. Shares are informational lines; allocations target rent
// charges and bills only.
type UtilityShareDTO struct {
	Period    string          `json:"period"`
	RoomTotal decimal.Decimal `json:"room_total"`
	Share     decimal.Decimal `json:"share"`
}

// DuesService aggregates a tenant's outstanding dues. It never writes; all
// figures are computed at read time from live rows.
type DuesService struct {
	tenancyRepo    billing.TenancyRepository
	rentChargeRepo billing.RentChargeRepository
	billRepo       billing.BillRepository
	utilityRepo    billing.UtilityChargeRepository
	logger         *zap.Logger
}

// NewDuesService creates a new dues service
func NewDuesService(
	tenancyRepo billing.TenancyRepository,
	rentChargeRepo billing.RentChargeRepository,
	billRepo billing.BillRepository,
	utilityRepo billing.UtilityChargeRepository,
	logger *zap.Logger,
) *DuesService {
	return &DuesService{
		tenancyRepo:    tenancyRepo,
		rentChargeRepo: rentChargeRepo,
		billRepo:       billRepo,
		utilityRepo:    utilityRepo,
		logger:         logger,
	}
}

// OutstandingDues is the full dues picture for a tenant's active tenancy
type OutstandingDues struct {
	OutstandingStatement
	UtilityShares []UtilityShareDTO `json:"utility_shares,omitempty"`
}

// GetOutstanding returns the open dues of the tenant's active tenancy,
// optionally restricted to one period
func (s *DuesService) GetOutstanding(ctx context.Context, tenantID uuid.UUID, period *valueobject.Period) (*OutstandingDues, error) {
	tenancy, err := s.tenancyRepo.FindActiveByTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if tenancy == nil {
		return nil, shared.NewDomainError("TENANCY_NOT_FOUND", "Tenant has no active tenancy")
	}

	charges, err := s.rentChargeRepo.FindOpenByTenancy(ctx, tenancy.ID, period)
	if err != nil {
		return nil, fmt.Errorf("failed to load open rent charges: %w", err)
	}
	bills, err := s.billRepo.FindOpenByTenancy(ctx, tenancy.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load open bills: %w", err)
	}

	dues := make([]OutstandingDueDTO, 0, len(charges)+len(bills))
	total := decimal.Zero

	for _, rc := range charges {
		dues = append(dues, OutstandingDueDTO{
			Type:        billing.DueTypeRent,
			ID:          rc.ID,
			Period:      rc.Period.String(),
			Amount:      rc.Amount,
			AmountPaid:  rc.AmountPaid,
			Outstanding: rc.Outstanding(),
			Status:      rc.Status,
			DueDate:     rc.DueDate,
		})
		total = total.Add(rc.Outstanding())
	}
	for _, b := range bills {
		dues = append(dues, OutstandingDueDTO{
			Type:        billing.DueTypeBill,
			ID:          b.ID,
			Description: b.Description,
			Amount:      b.Amount,
			AmountPaid:  b.AmountPaid,
			Outstanding: b.Outstanding(),
			Status:      b.Status,
			DueDate:     b.DueDate,
		})
		total = total.Add(b.Outstanding())
	}

	shares, err := s.utilityShares(ctx, tenancy, charges)
	if err != nil {
		return nil, err
	}

	return &OutstandingDues{
		OutstandingStatement: OutstandingStatement{
			TenancyID:        tenancy.ID,
			TenantID:         tenancy.TenantID,
			PreviousBalance:  tenancy.PreviousBalance,
			Dues:             dues,
			TotalOutstanding: total,
		},
		UtilityShares: shares,
	}, nil
}

// utilityShares computes this tenancy's read-time share of the room's utility
// total for each open rent charge period. A per-tenancy override replaces the
// equal split.
func (s *DuesService) utilityShares(ctx context.Context, tenancy *billing.Tenancy, charges []*billing.RentCharge) ([]UtilityShareDTO, error) {
	if len(charges) == 0 {
		return nil, nil
	}

	count, err := s.tenancyRepo.CountActiveByRoom(ctx, tenancy.RoomID)
	if err != nil {
		return nil, fmt.Errorf("failed to count active tenancies: %w", err)
	}

	shares := make([]UtilityShareDTO, 0, len(charges))
	for _, rc := range charges {
		charge, err := s.utilityRepo.FindByRoomAndPeriod(ctx, tenancy.RoomID, rc.Period)
		if err != nil {
			return nil, fmt.Errorf("failed to load utility charge: %w", err)
		}
		if charge == nil {
			continue
		}

		var share decimal.Decimal
		if tenancy.UtilityOverride != nil {
			share = *tenancy.UtilityOverride
		} else {
			split := int(count)
			if split < 1 {
				split = 1
			}
			share, err = charge.ShareAmong(split)
			if err != nil {
				return nil, err
			}
		}

		shares = append(shares, UtilityShareDTO{
			Period:    rc.Period.String(),
			RoomTotal: charge.TotalAmount,
			Share:     share,
		})
	}
	return shares, nil
}

// CalculateOutstandingBalance returns the tenant's previous balance plus the
// outstanding remainder of every open rent charge and bill
func (s *DuesService) CalculateOutstandingBalance(ctx context.Context, tenantID uuid.UUID) (decimal.Decimal, error) {
	statement, err := s.GetOutstanding(ctx, tenantID, nil)
	if err != nil {
		return decimal.Zero, err
	}
	balance := statement.PreviousBalance.Add(statement.TotalOutstanding)

	s.logger.Debug("calculated outstanding balance",
		zap.String("tenant_id", tenantID.String()),
		zap.String("balance", balance.String()))
	return balance, nil
}
