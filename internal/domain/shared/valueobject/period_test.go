package valueobject

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePeriod(t *testing.T) {
	t.Run("parses canonical form", func(t *testing.T) {
		p, err := ParsePeriod("2024-03")
		require.NoError(t, err)
		assert.Equal(t, 2024, p.Year())
		assert.Equal(t, time.March, p.Month())
	})

	t.Run("rejects malformed input", func(t *testing.T) {
		for _, s := range []string{"", "2024", "2024-13", "03-2024", "2024/03"} {
			_, err := ParsePeriod(s)
			assert.Error(t, err, "input %q", s)
		}
	})
}

func TestNewPeriod(t *testing.T) {
	_, err := NewPeriod(2024, time.March)
	assert.NoError(t, err)

	_, err = NewPeriod(1800, time.March)
	assert.Error(t, err)

	_, err = NewPeriod(2024, time.Month(0))
	assert.Error(t, err)
}

func TestPeriodNextPrevious(t *testing.T) {
	p, _ := NewPeriod(2024, time.December)
	assert.Equal(t, "2025-01", p.Next().String())
	assert.Equal(t, "2024-11", p.Previous().String())

	jan, _ := NewPeriod(2024, time.January)
	assert.Equal(t, "2023-12", jan.Previous().String())
}

func TestPeriodOrdering(t *testing.T) {
	feb, _ := NewPeriod(2024, time.February)
	mar, _ := NewPeriod(2024, time.March)

	assert.True(t, feb.Before(mar))
	assert.True(t, mar.After(feb))
	assert.False(t, mar.Before(mar))
	assert.True(t, mar.Equal(mar))
}

func TestPeriodDueDate(t *testing.T) {
	t.Run("fixed day of month", func(t *testing.T) {
		p, _ := NewPeriod(2024, time.March)
		assert.Equal(t, time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC), p.DueDate(5))
	})

	t.Run("clamps to last day of short months", func(t *testing.T) {
		p, _ := NewPeriod(2024, time.February)
		assert.Equal(t, time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC), p.DueDate(31))
	})
}

func TestPeriodJSON(t *testing.T) {
	p, _ := NewPeriod(2024, time.March)
	data, err := json.Marshal(p)
	require.NoError(t, err)
	assert.Equal(t, `"2024-03"`, string(data))

	var decoded Period
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, p.Equal(decoded))
}

func TestPeriodScan(t *testing.T) {
	var p Period
	require.NoError(t, p.Scan("2024-07"))
	assert.Equal(t, "2024-07", p.String())

	require.NoError(t, p.Scan([]byte("2025-01")))
	assert.Equal(t, "2025-01", p.String())

	assert.Error(t, p.Scan(42))
}
