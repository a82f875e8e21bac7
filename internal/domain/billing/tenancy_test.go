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

func newTestTenancy(t *testing.T) *Tenancy {
	t.Helper()
	tn, err := NewTenancy(uuid.New(), uuid.New(), time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), valueobject.NewMoneyINRFromFloat(1200))
	require.NoError(t, err)
	return tn
}

func TestNewTenancy(t *testing.T) {
	t.Run("valid tenancy", func(t *testing.T) {
		tn := newTestTenancy(t)
		assert.True(t, tn.Active)
		assert.True(t, tn.PreviousBalance.IsZero())
		require.Len(t, tn.GetDomainEvents(), 1)
		assert.Equal(t, "TenancyStarted", tn.GetDomainEvents()[0].EventType())
	})

	t.Run("non positive rent rejected", func(t *testing.T) {
		_, err := NewTenancy(uuid.New(), uuid.New(), time.Now(), valueobject.ZeroINR())
		assert.Error(t, err)
	})
}

func TestTenancy_End(t *testing.T) {
	t.Run("end closes the tenancy", func(t *testing.T) {
		tn := newTestTenancy(t)
		endAt := tn.StartAt.AddDate(0, 6, 0)
		require.NoError(t, tn.End(endAt))
		assert.False(t, tn.Active)
		require.NotNil(t, tn.EndAt)
		assert.True(t, tn.EndAt.Equal(endAt))
	})

	t.Run("double end rejected", func(t *testing.T) {
		tn := newTestTenancy(t)
		require.NoError(t, tn.End(tn.StartAt.AddDate(0, 1, 0)))
		assert.Error(t, tn.End(tn.StartAt.AddDate(0, 2, 0)))
	})

	t.Run("end before start rejected", func(t *testing.T) {
		tn := newTestTenancy(t)
		assert.Error(t, tn.End(tn.StartAt.AddDate(0, 0, -1)))
	})
}

func TestTenancy_CarryForward(t *testing.T) {
	tn := newTestTenancy(t)
	tn.ClearDomainEvents()

	require.NoError(t, tn.CarryForward(decimal.NewFromInt(700)))
	require.NoError(t, tn.CarryForward(decimal.NewFromInt(300)))
	assert.True(t, tn.PreviousBalance.Equal(decimal.NewFromInt(1000)))
	assert.Len(t, tn.GetDomainEvents(), 2)

	assert.Error(t, tn.CarryForward(decimal.Zero))
	assert.Error(t, tn.CarryForward(decimal.NewFromInt(-50)))
}

func TestTenancy_CorrectPreviousBalance(t *testing.T) {
	tn := newTestTenancy(t)
	require.NoError(t, tn.CarryForward(decimal.NewFromInt(900)))

	require.NoError(t, tn.CorrectPreviousBalance(decimal.NewFromInt(400)))
	assert.True(t, tn.PreviousBalance.Equal(decimal.NewFromInt(400)))

	require.NoError(t, tn.CorrectPreviousBalance(decimal.Zero))
	assert.True(t, tn.PreviousBalance.IsZero())

	assert.Error(t, tn.CorrectPreviousBalance(decimal.NewFromInt(-1)))
}

func TestTenancy_UpdateMonthlyRent(t *testing.T) {
	tn := newTestTenancy(t)
	require.NoError(t, tn.UpdateMonthlyRent(valueobject.NewMoneyINRFromFloat(1400)))
	assert.True(t, tn.MonthlyRent.Equal(decimal.NewFromInt(1400)))

	require.NoError(t, tn.End(tn.StartAt.AddDate(0, 1, 0)))
	assert.Error(t, tn.UpdateMonthlyRent(valueobject.NewMoneyINRFromFloat(1600)))
}

func TestTenancy_SetUtilityOverride(t *testing.T) {
	tn := newTestTenancy(t)

	override := decimal.NewFromInt(150)
	require.NoError(t, tn.SetUtilityOverride(&override))
	require.NotNil(t, tn.UtilityOverride)
	assert.True(t, tn.UtilityOverride.Equal(override))

	require.NoError(t, tn.SetUtilityOverride(nil))
	assert.Nil(t, tn.UtilityOverride)

	negative := decimal.NewFromInt(-10)
	assert.Error(t, tn.SetUtilityOverride(&negative))
}
