package billing

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/hostelops/backend/internal/domain/shared"
	"github.com/hostelops/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPeriod(t *testing.T, year int, month time.Month) valueobject.Period {
	t.Helper()
	period, err := valueobject.NewPeriod(year, month)
	require.NoError(t, err)
	return period
}

func newTestRentCharge(t *testing.T, amount string) *RentCharge {
	t.Helper()
	period := testPeriod(t, 2024, time.January)
	rc, err := NewRentCharge(uuid.New(), period, valueobject.NewMoneyINR(decimal.RequireFromString(amount)), period.DueDate(5))
	require.NoError(t, err)
	return rc
}

func TestNewRentCharge(t *testing.T) {
	period := testPeriod(t, 2024, time.January)

	t.Run("valid charge", func(t *testing.T) {
		rc, err := NewRentCharge(uuid.New(), period, valueobject.NewMoneyINRFromFloat(1200), period.DueDate(5))
		require.NoError(t, err)
		assert.Equal(t, DueStatusDue, rc.Status)
		assert.True(t, rc.AmountPaid.IsZero())
		assert.True(t, rc.Outstanding().Equal(decimal.NewFromInt(1200)))
		assert.Len(t, rc.GetDomainEvents(), 1)
		assert.Equal(t, "RentChargeOpened", rc.GetDomainEvents()[0].EventType())
	})

	t.Run("empty tenancy rejected", func(t *testing.T) {
		_, err := NewRentCharge(uuid.Nil, period, valueobject.NewMoneyINRFromFloat(1200), period.DueDate(5))
		require.Error(t, err)
		var derr *shared.DomainError
		require.ErrorAs(t, err, &derr)
		assert.Equal(t, "INVALID_TENANCY", derr.Code)
	})

	t.Run("non positive amount rejected", func(t *testing.T) {
		_, err := NewRentCharge(uuid.New(), period, valueobject.ZeroINR(), period.DueDate(5))
		assert.Error(t, err)
	})
}

func TestRentCharge_ApplyAllocation(t *testing.T) {
	t.Run("partial then full", func(t *testing.T) {
		rc := newTestRentCharge(t, "1200")

		require.NoError(t, rc.ApplyAllocation(decimal.NewFromInt(500)))
		assert.Equal(t, DueStatusPartial, rc.Status)
		assert.True(t, rc.Outstanding().Equal(decimal.NewFromInt(700)))

		require.NoError(t, rc.ApplyAllocation(decimal.NewFromInt(700)))
		assert.Equal(t, DueStatusPaid, rc.Status)
		assert.True(t, rc.Outstanding().IsZero())
		assert.False(t, rc.CanReceiveAllocation())
	})

	t.Run("exceeding outstanding rejected", func(t *testing.T) {
		rc := newTestRentCharge(t, "1200")
		err := rc.ApplyAllocation(decimal.NewFromInt(1201))
		require.Error(t, err)
		var derr *shared.DomainError
		require.ErrorAs(t, err, &derr)
		assert.Equal(t, "EXCEEDS_OUTSTANDING", derr.Code)
		assert.Equal(t, DueStatusDue, rc.Status)
	})

	t.Run("allocation to paid charge rejected", func(t *testing.T) {
		rc := newTestRentCharge(t, "100")
		require.NoError(t, rc.ApplyAllocation(decimal.NewFromInt(100)))
		err := rc.ApplyAllocation(decimal.NewFromInt(1))
		assert.Error(t, err)
	})

	t.Run("non positive amount rejected", func(t *testing.T) {
		rc := newTestRentCharge(t, "1200")
		assert.Error(t, rc.ApplyAllocation(decimal.Zero))
		assert.Error(t, rc.ApplyAllocation(decimal.NewFromInt(-10)))
	})
}

func TestRentCharge_Recalculate(t *testing.T) {
	t.Run("settlement raises event once", func(t *testing.T) {
		rc := newTestRentCharge(t, "1200")
		rc.ClearDomainEvents()

		require.NoError(t, rc.Recalculate(decimal.NewFromInt(1200)))
		assert.Equal(t, DueStatusPaid, rc.Status)
		require.Len(t, rc.GetDomainEvents(), 1)
		assert.Equal(t, "DueSettled", rc.GetDomainEvents()[0].EventType())

		rc.ClearDomainEvents()
		require.NoError(t, rc.Recalculate(decimal.NewFromInt(1200)))
		assert.Empty(t, rc.GetDomainEvents())
	})

	t.Run("reverting allocations reopens the charge", func(t *testing.T) {
		rc := newTestRentCharge(t, "1200")
		require.NoError(t, rc.Recalculate(decimal.NewFromInt(1200)))
		require.NoError(t, rc.Recalculate(decimal.NewFromInt(300)))
		assert.Equal(t, DueStatusPartial, rc.Status)
		require.NoError(t, rc.Recalculate(decimal.Zero))
		assert.Equal(t, DueStatusDue, rc.Status)
	})

	t.Run("negative total rejected", func(t *testing.T) {
		rc := newTestRentCharge(t, "1200")
		assert.Error(t, rc.Recalculate(decimal.NewFromInt(-1)))
	})
}
