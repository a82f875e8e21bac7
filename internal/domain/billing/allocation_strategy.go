package billing

import (
	"sort"
	"time"

	"github.com/hostelops/backend/internal/domain/shared"
	"github.com/hostelops/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// AllocationStrategyType defines how a payment is split across open dues
type AllocationStrategyType string

const (
	AllocationStrategyTypeOldestFirst AllocationStrategyType = "OLDEST_FIRST" // Earliest due date first
	AllocationStrategyTypeManual      AllocationStrategyType = "MANUAL"       // Caller-specified targets
)

// IsValid checks if the strategy type is valid
func (t AllocationStrategyType) IsValid() bool {
	return t == AllocationStrategyTypeOldestFirst || t == AllocationStrategyTypeManual
}

// String returns the string representation
func (t AllocationStrategyType) String() string {
	return string(t)
}

// OpenDue is a strategy-facing view of one due that can receive payment
type OpenDue struct {
	Ref         DueRef
	DueDate     time.Time
	Outstanding decimal.Decimal
}

// ProposedAllocation is one entry of an unpersisted allocation plan
type ProposedAllocation struct {
	Due    DueRef          `json:"due"`
	Amount decimal.Decimal `json:"amount"`
}

// AllocationPlan is the complete result of running a strategy. Nothing is
// persisted; the caller decides whether to record it.
type AllocationPlan struct {
	Allocations    []ProposedAllocation `json:"allocations"`
	TotalAllocated decimal.Decimal      `json:"total_allocated"`
	Unallocated    decimal.Decimal      `json:"unallocated"`
	FullyAllocated bool                 `json:"fully_allocated"`
}

// AllocationStrategy computes how to split an amount across open dues
type AllocationStrategy interface {
	StrategyType() AllocationStrategyType
	Allocate(amount valueobject.Money, dues []OpenDue) (*AllocationPlan, error)
}

// OldestFirstStrategy assigns the payment greedily to dues in ascending due
// date order, ties broken by stable input order. Excess beyond the total
// outstanding is left unallocated.
type OldestFirstStrategy struct{}

// NewOldestFirstStrategy creates the default allocation strategy
func NewOldestFirstStrategy() *OldestFirstStrategy {
	return &OldestFirstStrategy{}
}

// StrategyType returns the strategy type
func (s *OldestFirstStrategy) StrategyType() AllocationStrategyType {
	return AllocationStrategyTypeOldestFirst
}

// Allocate splits the amount oldest-due-first
func (s *OldestFirstStrategy) Allocate(amount valueobject.Money, dues []OpenDue) (*AllocationPlan, error) {
	if amount.Amount().LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Allocation amount must be positive")
	}

	sorted := make([]OpenDue, len(dues))
	copy(sorted, dues)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].DueDate.Before(sorted[j].DueDate)
	})

	allocations := make([]ProposedAllocation, 0, len(sorted))
	remaining := amount.Amount()
	totalAllocated := decimal.Zero

	for _, due := range sorted {
		if remaining.IsZero() {
			break
		}
		if due.Outstanding.LessThanOrEqual(decimal.Zero) {
			continue
		}

		alloc := decimal.Min(remaining, due.Outstanding)
		allocations = append(allocations, ProposedAllocation{Due: due.Ref, Amount: alloc})
		totalAllocated = totalAllocated.Add(alloc)
		remaining = remaining.Sub(alloc)
	}

	return &AllocationPlan{
		Allocations:    allocations,
		TotalAllocated: totalAllocated,
		Unallocated:    remaining,
		FullyAllocated: remaining.IsZero(),
	}, nil
}

// ManualAllocationRequest targets a specific due with an optional amount.
// A zero amount means "as much as possible".
type ManualAllocationRequest struct {
	Due    DueRef
	Amount decimal.Decimal
}

// ManualStrategy allocates to caller-specified dues in request order, each
// capped at the due's outstanding remainder and the amount still unassigned
type ManualStrategy struct {
	requests []ManualAllocationRequest
}

// NewManualStrategy creates a manual strategy for the given requests
func NewManualStrategy(requests []ManualAllocationRequest) *ManualStrategy {
	return &ManualStrategy{requests: requests}
}

// StrategyType returns the strategy type
func (s *ManualStrategy) StrategyType() AllocationStrategyType {
	return AllocationStrategyTypeManual
}

// Allocate splits the amount per the manual requests
func (s *ManualStrategy) Allocate(amount valueobject.Money, dues []OpenDue) (*AllocationPlan, error) {
	if amount.Amount().LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Allocation amount must be positive")
	}

	dueMap := make(map[DueRef]*OpenDue, len(dues))
	for i := range dues {
		dueMap[dues[i].Ref] = &dues[i]
	}

	allocations := make([]ProposedAllocation, 0, len(s.requests))
	remaining := amount.Amount()
	totalAllocated := decimal.Zero

	for _, req := range s.requests {
		if remaining.IsZero() {
			break
		}
		due, exists := dueMap[req.Due]
		if !exists || due.Outstanding.LessThanOrEqual(decimal.Zero) {
			continue
		}

		alloc := decimal.Min(remaining, due.Outstanding)
		if !req.Amount.IsZero() {
			alloc = decimal.Min(alloc, req.Amount)
		}
		if alloc.LessThanOrEqual(decimal.Zero) {
			continue
		}

		allocations = append(allocations, ProposedAllocation{Due: due.Ref, Amount: alloc})
		totalAllocated = totalAllocated.Add(alloc)
		remaining = remaining.Sub(alloc)
		due.Outstanding = due.Outstanding.Sub(alloc)
	}

	return &AllocationPlan{
		Allocations:    allocations,
		TotalAllocated: totalAllocated,
		Unallocated:    remaining,
		FullyAllocated: remaining.IsZero(),
	}, nil
}

// StrategyFor returns a strategy by type. Manual strategies require at least
// one allocation request.
func StrategyFor(strategyType AllocationStrategyType, requests []ManualAllocationRequest) (AllocationStrategy, error) {
	switch strategyType {
	case AllocationStrategyTypeOldestFirst:
		return NewOldestFirstStrategy(), nil
	case AllocationStrategyTypeManual:
		if len(requests) == 0 {
			return nil, shared.NewDomainError("INVALID_ALLOCATIONS", "Manual strategy requires allocation requests")
		}
		return NewManualStrategy(requests), nil
	default:
		return nil, shared.NewDomainError("INVALID_STRATEGY", "Unknown allocation strategy type")
	}
}
