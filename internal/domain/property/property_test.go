package property

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHostel(t *testing.T) {
	h, err := NewHostel("Sunrise PG", "12 MG Road, Pune")
	require.NoError(t, err)
	assert.True(t, h.Active)

	_, err = NewHostel("", "somewhere")
	assert.Error(t, err)
}

func TestHostel_Deactivate(t *testing.T) {
	h, err := NewHostel("Sunrise PG", "")
	require.NoError(t, err)

	require.NoError(t, h.Deactivate())
	assert.False(t, h.Active)
	assert.Error(t, h.Deactivate())
}

func TestNewRoom(t *testing.T) {
	hostelID := uuid.New()

	r, err := NewRoom(hostelID, "101", 3)
	require.NoError(t, err)
	assert.True(t, r.Active)
	assert.Equal(t, 3, r.Capacity)

	_, err = NewRoom(uuid.Nil, "101", 3)
	assert.Error(t, err)
	_, err = NewRoom(hostelID, "", 3)
	assert.Error(t, err)
	_, err = NewRoom(hostelID, "101", 0)
	assert.Error(t, err)
}

func TestRoom_Update(t *testing.T) {
	r, err := NewRoom(uuid.New(), "101", 2)
	require.NoError(t, err)

	require.NoError(t, r.Update("101-A", 4))
	assert.Equal(t, "101-A", r.Number)
	assert.Equal(t, 4, r.Capacity)

	assert.Error(t, r.Update("", 4))
	assert.Error(t, r.Update("101-A", 0))
}

func TestNewTenantProfile(t *testing.T) {
	p, err := NewTenantProfile("Ravi Kumar", "9876543210", "ravi@example.com")
	require.NoError(t, err)
	assert.True(t, p.Active)

	_, err = NewTenantProfile("", "9876543210", "")
	assert.Error(t, err)
}

func TestNewExpenseCategory(t *testing.T) {
	c, err := NewExpenseCategory("Electricity", "Monthly electricity bill")
	require.NoError(t, err)
	assert.Equal(t, "Electricity", c.Name)

	_, err = NewExpenseCategory("", "")
	assert.Error(t, err)
}
