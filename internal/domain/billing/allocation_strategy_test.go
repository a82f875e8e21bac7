package billing

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/hostelops/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openDue(ref DueRef, dueDate string, outstanding string) OpenDue {
	date, err := time.Parse("2006-01-02", dueDate)
	if err != nil {
		panic(err)
	}
	return OpenDue{Ref: ref, DueDate: date, Outstanding: decimal.RequireFromString(outstanding)}
}

func TestOldestFirstStrategy_Allocate(t *testing.T) {
	strategy := NewOldestFirstStrategy()
	janRent := RentDueRef(uuid.New())
	febRent := RentDueRef(uuid.New())

	t.Run("spans dues oldest first", func(t *testing.T) {
		dues := []OpenDue{
			openDue(febRent, "2024-02-05", "50"),
			openDue(janRent, "2024-01-05", "100"),
		}

		plan, err := strategy.Allocate(valueobject.NewMoneyINRFromFloat(120), dues)
		require.NoError(t, err)

		require.Len(t, plan.Allocations, 2)
		assert.Equal(t, janRent, plan.Allocations[0].Due)
		assert.True(t, plan.Allocations[0].Amount.Equal(decimal.NewFromInt(100)))
		assert.Equal(t, febRent, plan.Allocations[1].Due)
		assert.True(t, plan.Allocations[1].Amount.Equal(decimal.NewFromInt(20)))
		assert.True(t, plan.TotalAllocated.Equal(decimal.NewFromInt(120)))
		assert.True(t, plan.Unallocated.IsZero())
		assert.True(t, plan.FullyAllocated)
	})

	t.Run("excess stays unallocated", func(t *testing.T) {
		dues := []OpenDue{openDue(janRent, "2024-01-05", "100")}

		plan, err := strategy.Allocate(valueobject.NewMoneyINRFromFloat(150), dues)
		require.NoError(t, err)

		require.Len(t, plan.Allocations, 1)
		assert.True(t, plan.TotalAllocated.Equal(decimal.NewFromInt(100)))
		assert.True(t, plan.Unallocated.Equal(decimal.NewFromInt(50)))
		assert.False(t, plan.FullyAllocated)
	})

	t.Run("no open dues leaves everything unallocated", func(t *testing.T) {
		plan, err := strategy.Allocate(valueobject.NewMoneyINRFromFloat(500), nil)
		require.NoError(t, err)
		assert.Empty(t, plan.Allocations)
		assert.True(t, plan.Unallocated.Equal(decimal.NewFromInt(500)))
	})

	t.Run("same due date keeps input order", func(t *testing.T) {
		bill1 := BillDueRef(uuid.New())
		bill2 := BillDueRef(uuid.New())
		dues := []OpenDue{
			openDue(bill1, "2024-01-10", "40"),
			openDue(bill2, "2024-01-10", "40"),
		}

		plan, err := strategy.Allocate(valueobject.NewMoneyINRFromFloat(60), dues)
		require.NoError(t, err)

		require.Len(t, plan.Allocations, 2)
		assert.Equal(t, bill1, plan.Allocations[0].Due)
		assert.True(t, plan.Allocations[0].Amount.Equal(decimal.NewFromInt(40)))
		assert.Equal(t, bill2, plan.Allocations[1].Due)
		assert.True(t, plan.Allocations[1].Amount.Equal(decimal.NewFromInt(20)))
	})

	t.Run("settled dues are skipped", func(t *testing.T) {
		dues := []OpenDue{
			openDue(janRent, "2024-01-05", "0"),
			openDue(febRent, "2024-02-05", "50"),
		}

		plan, err := strategy.Allocate(valueobject.NewMoneyINRFromFloat(50), dues)
		require.NoError(t, err)
		require.Len(t, plan.Allocations, 1)
		assert.Equal(t, febRent, plan.Allocations[0].Due)
	})

	t.Run("non positive amount rejected", func(t *testing.T) {
		_, err := strategy.Allocate(valueobject.ZeroINR(), nil)
		assert.Error(t, err)
	})
}

func TestManualStrategy_Allocate(t *testing.T) {
	janRent := RentDueRef(uuid.New())
	waterBill := BillDueRef(uuid.New())
	// ManualStrategy tracks remaining outstanding in place, so every subtest
	// gets its own slice
	freshDues := func() []OpenDue {
		return []OpenDue{
			openDue(janRent, "2024-01-05", "100"),
			openDue(waterBill, "2024-01-15", "80"),
		}
	}

	t.Run("request order wins over due date", func(t *testing.T) {
		strategy := NewManualStrategy([]ManualAllocationRequest{
			{Due: waterBill, Amount: decimal.NewFromInt(80)},
			{Due: janRent, Amount: decimal.NewFromInt(40)},
		})

		plan, err := strategy.Allocate(valueobject.NewMoneyINRFromFloat(120), freshDues())
		require.NoError(t, err)

		require.Len(t, plan.Allocations, 2)
		assert.Equal(t, waterBill, plan.Allocations[0].Due)
		assert.Equal(t, janRent, plan.Allocations[1].Due)
		assert.True(t, plan.TotalAllocated.Equal(decimal.NewFromInt(120)))
	})

	t.Run("requests capped at outstanding", func(t *testing.T) {
		strategy := NewManualStrategy([]ManualAllocationRequest{
			{Due: waterBill, Amount: decimal.NewFromInt(500)},
		})

		plan, err := strategy.Allocate(valueobject.NewMoneyINRFromFloat(500), freshDues())
		require.NoError(t, err)

		require.Len(t, plan.Allocations, 1)
		assert.True(t, plan.Allocations[0].Amount.Equal(decimal.NewFromInt(80)))
		assert.True(t, plan.Unallocated.Equal(decimal.NewFromInt(420)))
	})

	t.Run("zero request amount means as much as possible", func(t *testing.T) {
		strategy := NewManualStrategy([]ManualAllocationRequest{
			{Due: janRent},
		})

		plan, err := strategy.Allocate(valueobject.NewMoneyINRFromFloat(70), freshDues())
		require.NoError(t, err)

		require.Len(t, plan.Allocations, 1)
		assert.True(t, plan.Allocations[0].Amount.Equal(decimal.NewFromInt(70)))
	})

	t.Run("unknown due is ignored", func(t *testing.T) {
		strategy := NewManualStrategy([]ManualAllocationRequest{
			{Due: RentDueRef(uuid.New()), Amount: decimal.NewFromInt(50)},
		})

		plan, err := strategy.Allocate(valueobject.NewMoneyINRFromFloat(50), freshDues())
		require.NoError(t, err)
		assert.Empty(t, plan.Allocations)
		assert.True(t, plan.Unallocated.Equal(decimal.NewFromInt(50)))
	})
}

func TestStrategyFor(t *testing.T) {
	s, err := StrategyFor(AllocationStrategyTypeOldestFirst, nil)
	require.NoError(t, err)
	assert.Equal(t, AllocationStrategyTypeOldestFirst, s.StrategyType())

	s, err = StrategyFor(AllocationStrategyTypeManual, []ManualAllocationRequest{{Due: RentDueRef(uuid.New())}})
	require.NoError(t, err)
	assert.Equal(t, AllocationStrategyTypeManual, s.StrategyType())

	_, err = StrategyFor(AllocationStrategyTypeManual, nil)
	assert.Error(t, err)

	_, err = StrategyFor(AllocationStrategyType("RANDOM"), nil)
	assert.Error(t, err)
}
