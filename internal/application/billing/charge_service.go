package billing

import (
	"context"
	"fmt"

	"github.com/hostelops/backend/internal/domain/billing"
	"github.com/hostelops/backend/internal/domain/property"
	"github.com/hostelops/backend/internal/domain/shared"
	"github.com/hostelops/backend/internal/domain/shared/valueobject"
	"go.uber.org/zap"
)

// ChargeService raises ad-hoc bills against tenancies and records shared
// utility totals per room and period
type ChargeService struct {
	txScope      TransactionScope
	categoryRepo property.ExpenseCategoryRepository
	auditLogger  shared.AuditLogger
	logger       *zap.Logger
}

// NewChargeService creates a new charge service
func NewChargeService(
	txScope TransactionScope,
	categoryRepo property.ExpenseCategoryRepository,
	auditLogger shared.AuditLogger,
	logger *zap.Logger,
) *ChargeService {
	return &ChargeService{
		txScope:      txScope,
		categoryRepo: categoryRepo,
		auditLogger:  auditLogger,
		logger:       logger,
	}
}

// RecordBill raises an ad-hoc bill against a tenancy
func (s *ChargeService) RecordBill(ctx context.Context, actor shared.Actor, req RecordBillRequest) (*billing.Bill, error) {
	amount, err := valueobject.NewMoney(req.Amount, valueobject.DefaultCurrency)
	if err != nil {
		return nil, err
	}

	// Request validation, including the amount, comes before any lookup.
	bill, err := billing.NewBill(req.TenancyID, req.CategoryID, req.Description, amount, req.DueDate)
	if err != nil {
		return nil, err
	}

	category, err := s.categoryRepo.FindByID(ctx, req.CategoryID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, shared.NewDomainError("CATEGORY_NOT_FOUND", "Expense category not found")
	}

	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		tenancy, err := repos.Tenancies().FindByID(ctx, req.TenancyID)
		if err != nil {
			return err
		}
		if tenancy == nil {
			return shared.NewDomainError("TENANCY_NOT_FOUND", "Tenancy not found")
		}
		return repos.Bills().Save(ctx, bill)
	})
	if err != nil {
		return nil, err
	}

	s.auditBill(ctx, actor, bill, category.Name)
	s.logger.Info("bill recorded",
		zap.String("bill_id", bill.ID.String()),
		zap.String("tenancy_id", bill.TenancyID.String()),
		zap.String("category", category.Name),
		zap.String("amount", bill.Amount.String()))
	return bill, nil
}

// RecordUtilityCharge records or replaces a room's shared utility total for
// a period
func (s *ChargeService) RecordUtilityCharge(ctx context.Context, actor shared.Actor, req RecordUtilityChargeRequest) (*billing.SharedUtilityCharge, error) {
	period, err := valueobject.ParsePeriod(req.Period)
	if err != nil {
		return nil, err
	}
	total, err := valueobject.NewMoney(req.Total, valueobject.DefaultCurrency)
	if err != nil {
		return nil, err
	}

	var charge *billing.SharedUtilityCharge
	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		existing, err := repos.UtilityCharges().FindByRoomAndPeriod(ctx, req.RoomID, period)
		if err != nil {
			return fmt.Errorf("failed to load utility charge: %w", err)
		}
		if existing != nil {
			if err := existing.UpdateTotal(total); err != nil {
				return err
			}
			charge = existing
		} else {
			charge, err = billing.NewSharedUtilityCharge(req.RoomID, period, total)
			if err != nil {
				return err
			}
		}
		return repos.UtilityCharges().Save(ctx, charge)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("utility charge recorded",
		zap.String("room_id", req.RoomID.String()),
		zap.String("period", period.String()),
		zap.String("total", charge.TotalAmount.String()))
	return charge, nil
}

func (s *ChargeService) auditBill(ctx context.Context, actor shared.Actor, bill *billing.Bill, category string) {
	entry := shared.AuditEntry{
		Actor:      actor,
		EntityType: "Bill",
		EntityID:   bill.ID,
		Action:     shared.AuditActionCreate,
		AfterState: map[string]any{
			"tenancy_id":  bill.TenancyID.String(),
			"category":    category,
			"description": bill.Description,
			"amount":      bill.Amount.String(),
		},
	}
	if err := s.auditLogger.LogAction(ctx, entry); err != nil {
		s.logger.Warn("audit log failed", zap.Error(err))
	}
}
