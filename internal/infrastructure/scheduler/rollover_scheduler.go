package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/hostelops/backend/internal/application/billing"
	"github.com/hostelops/backend/internal/domain/shared"
	"github.com/hostelops/backend/internal/domain/shared/valueobject"
	"go.uber.org/zap"
)

// RolloverScheduler opens each new billing period automatically. It wakes at
// the configured interval, and whenever the calendar has moved into a period
// it has not yet processed it runs the period rollover as the system actor.
// Rollover itself is idempotent, so an extra run after a restart is harmless.
type RolloverScheduler struct {
	service   *billing.RolloverService
	logger    *zap.Logger
	config    RolloverSchedulerConfig
	cancel    context.CancelFunc
	wg        sync.WaitGroup
	mu        sync.Mutex
	isRunning bool

	lastPeriod valueobject.Period
}

// RolloverSchedulerConfig holds configuration for the rollover scheduler
type RolloverSchedulerConfig struct {
	// Enabled determines if the scheduler is active
	Enabled bool

	// CheckInterval is how often the scheduler checks for a new period
	CheckInterval time.Duration

	// RolloverTimeout is the maximum time for one rollover run
	RolloverTimeout time.Duration
}

// DefaultRolloverSchedulerConfig returns default configuration
func DefaultRolloverSchedulerConfig() RolloverSchedulerConfig {
	return RolloverSchedulerConfig{
		Enabled:         true,
		CheckInterval:   1 * time.Hour,
		RolloverTimeout: 15 * time.Minute,
	}
}

// NewRolloverScheduler creates a new rollover scheduler
func NewRolloverScheduler(
	service *billing.RolloverService,
	logger *zap.Logger,
	config RolloverSchedulerConfig,
) *RolloverScheduler {
	return &RolloverScheduler{
		service: service,
		logger:  logger,
		config:  config,
	}
}

// Start starts the rollover scheduler
func (s *RolloverScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return nil
	}
	if !s.config.Enabled {
		s.mu.Unlock()
		s.logger.Info("Rollover scheduler is disabled")
		return nil
	}
	s.isRunning = true
	s.mu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	s.wg.Add(1)
	go s.run(ctx)

	s.logger.Info("Rollover scheduler started",
		zap.Duration("check_interval", s.config.CheckInterval),
	)
	return nil
}

// Stop gracefully stops the scheduler
func (s *RolloverScheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.isRunning = false
	s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
	}

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.logger.Info("Rollover scheduler stopped gracefully")
		return nil
	case <-ctx.Done():
		s.logger.Warn("Rollover scheduler stop timed out")
		return ctx.Err()
	}
}

// run checks for an unprocessed period at every tick
func (s *RolloverScheduler) run(ctx context.Context) {
	defer s.wg.Done()

	// Cover the current period immediately so a restart mid-month does not
	// wait a full interval.
	s.executeRollover(ctx)

	ticker := time.NewTicker(s.config.CheckInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Debug("Rollover loop stopping")
			return
		case <-ticker.C:
			s.executeRollover(ctx)
		}
	}
}

// executeRollover runs the rollover for the current period unless this
// scheduler instance already processed it
func (s *RolloverScheduler) executeRollover(ctx context.Context) {
	period := valueobject.CurrentPeriod()

	s.mu.Lock()
	if period.Equal(s.lastPeriod) {
		s.mu.Unlock()
		return
	}
	s.mu.Unlock()

	s.logger.Info("Starting period rollover",
		zap.String("period", period.String()),
	)

	rolloverCtx, cancel := context.WithTimeout(ctx, s.config.RolloverTimeout)
	defer cancel()

	startTime := time.Now()
	result, err := s.service.RunPeriodRollover(rolloverCtx, shared.SystemActor(), period)
	duration := time.Since(startTime)

	if err != nil {
		s.logger.Error("Period rollover failed",
			zap.String("period", period.String()),
			zap.Duration("duration", duration),
			zap.Error(err),
		)
		return
	}

	s.mu.Lock()
	s.lastPeriod = period
	s.mu.Unlock()

	s.logger.Info("Period rollover completed",
		zap.String("period", period.String()),
		zap.Duration("duration", duration),
		zap.Int("created", result.Created),
		zap.Int("skipped", result.Skipped),
		zap.Int("carried_forward", result.CarriedForward),
		zap.Int("failed", len(result.Failed)),
	)
}

// TriggerImmediate triggers an immediate rollover run for the current period
func (s *RolloverScheduler) TriggerImmediate(ctx context.Context) error {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return ErrSchedulerNotRunning
	}
	s.lastPeriod = valueobject.Period{}
	s.wg.Add(1)
	s.mu.Unlock()

	s.logger.Info("Triggering immediate period rollover")

	go func() {
		defer s.wg.Done()
		s.executeRollover(ctx)
	}()

	return nil
}

// IsRunning returns whether the scheduler is running
func (s *RolloverScheduler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isRunning
}
