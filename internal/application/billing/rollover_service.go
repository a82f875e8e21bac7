package billing

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/hostelops/backend/internal/domain/billing"
	"github.com/hostelops/backend/internal/domain/shared"
	"github.com/hostelops/backend/internal/domain/shared/valueobject"
	"go.uber.org/zap"
)

// uniqueViolation is the postgres error code for a unique index violation
const uniqueViolation = "23505"

// RolloverService opens the new period's rent charges for every active
// tenancy and carries unpaid remainders forward. Running it twice for the
// same period is harmless; the unique index on (tenancy, period) is the hard
// idempotence guard.
type RolloverService struct {
	txScope     TransactionScope
	tenancyRepo billing.TenancyRepository
	dueDay      int
	auditLogger shared.AuditLogger
	logger      *zap.Logger
}

// NewRolloverService creates a new rollover service. dueDay is the
// day-of-month new rent charges fall due on, clamped to the month's end.
func NewRolloverService(
	txScope TransactionScope,
	tenancyRepo billing.TenancyRepository,
	dueDay int,
	auditLogger shared.AuditLogger,
	logger *zap.Logger,
) *RolloverService {
	return &RolloverService{
		txScope:     txScope,
		tenancyRepo: tenancyRepo,
		dueDay:      dueDay,
		auditLogger: auditLogger,
		logger:      logger,
	}
}

// RunPeriodRollover processes every active tenancy for the given period. Each
// tenancy runs in its own transaction; one tenancy's failure is logged and
// does not abort the batch.
func (s *RolloverService) RunPeriodRollover(ctx context.Context, actor shared.Actor, period valueobject.Period) (*RolloverResult, error) {
	if period.IsZero() {
		return nil, shared.NewDomainError("INVALID_PERIOD", "Billing period is required")
	}

	tenancies, err := s.tenancyRepo.FindAllActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load active tenancies: %w", err)
	}

	result := &RolloverResult{Period: period.String()}
	for _, tenancy := range tenancies {
		outcome, err := s.rolloverTenancy(ctx, actor, tenancy, period)
		if err != nil {
			s.logger.Error("tenancy rollover failed",
				zap.String("tenancy_id", tenancy.ID.String()),
				zap.String("period", period.String()),
				zap.Error(err))
			result.Failed = append(result.Failed, tenancy.ID.String())
			continue
		}
		switch outcome {
		case rolloverSkipped:
			result.Skipped++
		case rolloverCreated:
			result.Created++
		case rolloverCreatedWithCarry:
			result.Created++
			result.CarriedForward++
		}
	}

	s.logger.Info("period rollover finished",
		zap.String("period", period.String()),
		zap.Int("created", result.Created),
		zap.Int("skipped", result.Skipped),
		zap.Int("carried_forward", result.CarriedForward),
		zap.Int("failed", len(result.Failed)))
	return result, nil
}

type rolloverOutcome int

const (
	rolloverSkipped rolloverOutcome = iota
	rolloverCreated
	rolloverCreatedWithCarry
)

func (s *RolloverService) rolloverTenancy(ctx context.Context, actor shared.Actor, tenancy *billing.Tenancy, period valueobject.Period) (rolloverOutcome, error) {
	outcome := rolloverSkipped

	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		exists, err := repos.RentCharges().ExistsForPeriod(ctx, tenancy.ID, period)
		if err != nil {
			return err
		}
		if exists {
			return nil
		}

		// The previous period's unpaid remainder rolls into the cumulative
		// balance. The balance only ever grows here; payments reduce dues,
		// never the balance itself.
		carried := false
		previous, err := repos.RentCharges().FindByTenancyAndPeriod(ctx, tenancy.ID, period.Previous())
		if err != nil {
			return err
		}
		if previous != nil && previous.Status.IsOpen() {
			if err := tenancy.CarryForward(previous.Outstanding()); err != nil {
				return err
			}
			if err := repos.Tenancies().SaveWithLock(ctx, tenancy); err != nil {
				return err
			}
			carried = true
		}

		charge, err := billing.NewRentCharge(tenancy.ID, period, tenancy.GetMonthlyRentMoney(), period.DueDate(s.dueDay))
		if err != nil {
			return err
		}
		if err := repos.RentCharges().Save(ctx, charge); err != nil {
			return err
		}

		if carried {
			outcome = rolloverCreatedWithCarry
		} else {
			outcome = rolloverCreated
		}
		return nil
	})
	if err != nil {
		// A concurrent run inserted the charge first. The period is covered,
		// so this counts as a skip.
		if isUniqueViolation(err) {
			s.logger.Debug("concurrent rollover detected, skipping",
				zap.String("tenancy_id", tenancy.ID.String()),
				zap.String("period", period.String()))
			return rolloverSkipped, nil
		}
		return rolloverSkipped, err
	}

	if outcome != rolloverSkipped {
		s.audit(ctx, actor, tenancy, period)
	}
	return outcome, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == uniqueViolation
	}
	return false
}

func (s *RolloverService) audit(ctx context.Context, actor shared.Actor, tenancy *billing.Tenancy, period valueobject.Period) {
	entry := shared.AuditEntry{
		Actor:      actor,
		EntityType: "RentCharge",
		EntityID:   tenancy.ID,
		Action:     shared.AuditActionCreate,
		AfterState: map[string]any{
			"tenancy_id":       tenancy.ID.String(),
			"period":           period.String(),
			"amount":           tenancy.MonthlyRent.String(),
			"previous_balance": tenancy.PreviousBalance.String(),
		},
	}
	if err := s.auditLogger.LogAction(ctx, entry); err != nil {
		s.logger.Warn("audit log failed", zap.Error(err))
	}
}
