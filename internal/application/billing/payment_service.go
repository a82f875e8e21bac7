package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hostelops/backend/internal/domain/billing"
	"github.com/hostelops/backend/internal/domain/shared"
	"github.com/hostelops/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// PaymentService records payments and applies their allocations to open dues.
// A payment and all of its allocation effects commit in one transaction; any
// failure leaves nothing persisted.
type PaymentService struct {
	txScope     TransactionScope
	auditLogger shared.AuditLogger
	logger      *zap.Logger
}

// NewPaymentService creates a new payment service
func NewPaymentService(txScope TransactionScope, auditLogger shared.AuditLogger, logger *zap.Logger) *PaymentService {
	return &PaymentService{
		txScope:     txScope,
		auditLogger: auditLogger,
		logger:      logger,
	}
}

// RecordPayment records a payment for a tenant. Allocations come either from
// the request's explicit list, from the named strategy, or not at all; a
// payment with no allocations is stored unapplied and touches no dues.
func (s *PaymentService) RecordPayment(ctx context.Context, actor shared.Actor, req RecordPaymentRequest) (*PaymentDTO, error) {
	amount, err := valueobject.NewMoney(req.Amount, valueobject.DefaultCurrency)
	if err != nil {
		return nil, err
	}
	paidAt := req.PaidAt
	if paidAt.IsZero() {
		paidAt = time.Now()
	}

	payment, err := billing.NewPayment(req.TenantID, amount, req.Method, paidAt, req.Description)
	if err != nil {
		return nil, err
	}
	if err := s.applyPeriodRange(payment, req); err != nil {
		return nil, err
	}

	// Request-level validation happens before the transaction opens; due-level
	// checks need the live rows and happen inside it. An unknown strategy is
	// rejected here, never silently ignored.
	strategy, err := s.resolveStrategy(req)
	if err != nil {
		return nil, err
	}
	var explicit []billing.ProposedAllocation
	if strategy == nil {
		explicit, err = s.explicitAllocations(req)
		if err != nil {
			return nil, err
		}
	}

	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		planned := explicit
		if strategy != nil {
			p, perr := s.planAllocations(ctx, repos, req, strategy)
			if perr != nil {
				return perr
			}
			planned = p
		}

		for _, pa := range planned {
			if _, err := payment.Allocate(pa.Due, pa.Amount); err != nil {
				return err
			}
		}

		// Each referenced due must exist, belong to the paying tenant and
		// have room for the allocation.
		dues, err := s.checkDues(ctx, repos, payment)
		if err != nil {
			return err
		}

		if err := repos.Payments().Save(ctx, payment); err != nil {
			return fmt.Errorf("failed to save payment: %w", err)
		}

		// Paid amounts are derived: recompute each touched due from the live
		// sum of its allocation rows, now including this payment's.
		for due := range dues {
			if err := s.settleDue(ctx, repos, due); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.audit(ctx, actor, payment)
	s.logger.Info("payment recorded",
		zap.String("payment_id", payment.ID.String()),
		zap.String("tenant_id", payment.TenantID.String()),
		zap.String("amount", payment.Amount.String()),
		zap.Int("allocations", len(payment.Allocations)))

	dto := ToPaymentDTO(payment)
	return &dto, nil
}

// GetPayment returns one payment with its allocations
func (s *PaymentService) GetPayment(ctx context.Context, id uuid.UUID) (*PaymentDTO, error) {
	var dto *PaymentDTO
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		payment, err := repos.Payments().FindByID(ctx, id)
		if err != nil {
			return err
		}
		if payment == nil {
			return shared.NewDomainError("PAYMENT_NOT_FOUND", "Payment not found")
		}
		d := ToPaymentDTO(payment)
		dto = &d
		return nil
	})
	return dto, err
}

// ListPayments returns a tenant's payments, newest first
func (s *PaymentService) ListPayments(ctx context.Context, tenantID uuid.UUID) ([]PaymentDTO, error) {
	var dtos []PaymentDTO
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		payments, err := repos.Payments().FindByTenant(ctx, tenantID)
		if err != nil {
			return err
		}
		dtos = make([]PaymentDTO, 0, len(payments))
		for _, p := range payments {
			dtos = append(dtos, ToPaymentDTO(p))
		}
		return nil
	})
	return dtos, err
}

func (s *PaymentService) applyPeriodRange(payment *billing.Payment, req RecordPaymentRequest) error {
	if req.PeriodFrom == "" && req.PeriodTo == "" {
		return nil
	}
	if req.PeriodFrom == "" || req.PeriodTo == "" {
		return shared.NewDomainError("INVALID_PERIOD", "Period range requires both start and end")
	}
	from, err := valueobject.ParsePeriod(req.PeriodFrom)
	if err != nil {
		return err
	}
	to, err := valueobject.ParsePeriod(req.PeriodTo)
	if err != nil {
		return err
	}
	return payment.SetPeriodRange(from, to)
}

func (s *PaymentService) explicitAllocations(req RecordPaymentRequest) ([]billing.ProposedAllocation, error) {
	if len(req.Allocations) == 0 {
		return nil, nil
	}
	planned := make([]billing.ProposedAllocation, 0, len(req.Allocations))
	total := decimal.Zero
	for _, a := range req.Allocations {
		ref := billing.DueRef{Type: a.DueType, ID: a.DueID}
		if !ref.IsValid() {
			return nil, shared.NewDomainError("INVALID_DUE", "Allocation must reference a valid due")
		}
		if a.Amount.LessThanOrEqual(decimal.Zero) {
			return nil, shared.NewDomainError("INVALID_AMOUNT", "Allocation amount must be positive")
		}
		total = total.Add(a.Amount)
		planned = append(planned, billing.ProposedAllocation{Due: ref, Amount: a.Amount})
	}
	if total.GreaterThan(req.Amount) {
		return nil, shared.NewDomainError("EXCEEDS_PAYMENT",
			fmt.Sprintf("Allocations sum %s exceeds payment amount %s", total, req.Amount))
	}
	return planned, nil
}

// resolveStrategy turns the request's strategy field into a domain strategy.
// Empty means no planning: explicit allocations (or none) are applied as
// given. MANUAL wires the request's per-due entries into the strategy, where
// a zero amount means "as much as possible".
func (s *PaymentService) resolveStrategy(req RecordPaymentRequest) (billing.AllocationStrategy, error) {
	if req.Strategy == "" {
		return nil, nil
	}
	if req.Strategy == billing.AllocationStrategyTypeOldestFirst && len(req.Allocations) > 0 {
		return nil, shared.NewDomainError("INVALID_ALLOCATIONS",
			"Explicit allocations require the MANUAL strategy or no strategy")
	}

	manual := make([]billing.ManualAllocationRequest, 0, len(req.Allocations))
	for _, a := range req.Allocations {
		ref := billing.DueRef{Type: a.DueType, ID: a.DueID}
		if !ref.IsValid() {
			return nil, shared.NewDomainError("INVALID_DUE", "Allocation must reference a valid due")
		}
		if a.Amount.IsNegative() {
			return nil, shared.NewDomainError("INVALID_AMOUNT", "Allocation amount cannot be negative")
		}
		manual = append(manual, billing.ManualAllocationRequest{Due: ref, Amount: a.Amount})
	}
	return billing.StrategyFor(req.Strategy, manual)
}

// planAllocations runs the strategy over the tenant's open dues as seen
// inside the transaction
func (s *PaymentService) planAllocations(ctx context.Context, repos TransactionalRepositories, req RecordPaymentRequest, strategy billing.AllocationStrategy) ([]billing.ProposedAllocation, error) {
	tenancy, err := repos.Tenancies().FindActiveByTenant(ctx, req.TenantID)
	if err != nil {
		return nil, err
	}
	if tenancy == nil {
		return nil, shared.NewDomainError("TENANCY_NOT_FOUND", "Tenant has no active tenancy")
	}

	charges, err := repos.RentCharges().FindOpenByTenancy(ctx, tenancy.ID, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to load open rent charges: %w", err)
	}
	bills, err := repos.Bills().FindOpenByTenancy(ctx, tenancy.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load open bills: %w", err)
	}

	open := make([]billing.OpenDue, 0, len(charges)+len(bills))
	for _, rc := range charges {
		open = append(open, billing.OpenDue{Ref: rc.Ref(), DueDate: rc.DueDate, Outstanding: rc.Outstanding()})
	}
	for _, b := range bills {
		open = append(open, billing.OpenDue{Ref: b.Ref(), DueDate: b.DueDate, Outstanding: b.Outstanding()})
	}

	amount := valueobject.NewMoneyINR(req.Amount)
	plan, err := strategy.Allocate(amount, open)
	if err != nil {
		return nil, err
	}
	return plan.Allocations, nil
}

// checkDues re-reads every referenced due inside the transaction and rejects
// allocations that a concurrent payment could have invalidated
func (s *PaymentService) checkDues(ctx context.Context, repos TransactionalRepositories, payment *billing.Payment) (map[billing.DueRef]decimal.Decimal, error) {
	perDue := make(map[billing.DueRef]decimal.Decimal, len(payment.Allocations))
	for _, a := range payment.Allocations {
		perDue[a.Due] = perDue[a.Due].Add(a.Amount)
	}

	for due, allocated := range perDue {
		var tenancyID uuid.UUID
		var outstanding decimal.Decimal

		switch due.Type {
		case billing.DueTypeRent:
			rc, err := repos.RentCharges().FindByID(ctx, due.ID)
			if err != nil {
				return nil, err
			}
			if rc == nil {
				return nil, shared.NewDomainError("DUE_NOT_FOUND", fmt.Sprintf("Rent charge %s not found", due.ID))
			}
			tenancyID = rc.TenancyID
			outstanding = rc.Outstanding()
		case billing.DueTypeBill:
			b, err := repos.Bills().FindByID(ctx, due.ID)
			if err != nil {
				return nil, err
			}
			if b == nil {
				return nil, shared.NewDomainError("DUE_NOT_FOUND", fmt.Sprintf("Bill %s not found", due.ID))
			}
			tenancyID = b.TenancyID
			outstanding = b.Outstanding()
		}

		tenancy, err := repos.Tenancies().FindByID(ctx, tenancyID)
		if err != nil {
			return nil, err
		}
		if tenancy == nil || tenancy.TenantID != payment.TenantID {
			return nil, shared.NewDomainError("INVALID_DUE", "Due does not belong to the paying tenant")
		}

		if allocated.GreaterThan(outstanding) {
			return nil, shared.NewDomainError("EXCEEDS_OUTSTANDING",
				fmt.Sprintf("Allocation %s exceeds outstanding %s of %s due %s", allocated, outstanding, due.Type, due.ID))
		}
	}
	return perDue, nil
}

// settleDue recomputes one due's paid amount from the live allocation rows
// and persists the derived state
func (s *PaymentService) settleDue(ctx context.Context, repos TransactionalRepositories, due billing.DueRef) error {
	total, err := repos.Payments().SumAllocationsForDue(ctx, due)
	if err != nil {
		return fmt.Errorf("failed to sum allocations: %w", err)
	}

	switch due.Type {
	case billing.DueTypeRent:
		rc, err := repos.RentCharges().FindByID(ctx, due.ID)
		if err != nil {
			return err
		}
		if rc == nil {
			return shared.NewDomainError("DUE_NOT_FOUND", fmt.Sprintf("Rent charge %s not found", due.ID))
		}
		if err := rc.Recalculate(total); err != nil {
			return err
		}
		return repos.RentCharges().SaveWithLock(ctx, rc)
	case billing.DueTypeBill:
		b, err := repos.Bills().FindByID(ctx, due.ID)
		if err != nil {
			return err
		}
		if b == nil {
			return shared.NewDomainError("DUE_NOT_FOUND", fmt.Sprintf("Bill %s not found", due.ID))
		}
		if err := b.Recalculate(total); err != nil {
			return err
		}
		return repos.Bills().SaveWithLock(ctx, b)
	}
	return shared.NewDomainError("INVALID_DUE", fmt.Sprintf("Unknown due type %q", due.Type))
}

func (s *PaymentService) audit(ctx context.Context, actor shared.Actor, payment *billing.Payment) {
	entry := shared.AuditEntry{
		Actor:      actor,
		EntityType: "Payment",
		EntityID:   payment.ID,
		Action:     shared.AuditActionCreate,
		AfterState: map[string]any{
			"tenant_id":   payment.TenantID.String(),
			"amount":      payment.Amount.String(),
			"method":      payment.Method.String(),
			"allocations": len(payment.Allocations),
			"unapplied":   payment.UnappliedAmount().String(),
		},
	}
	if err := s.auditLogger.LogAction(ctx, entry); err != nil {
		s.logger.Warn("audit log failed", zap.Error(err))
	}
}
