package floor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tablekeep/tablekeep/internal/domain"
)

func TestRegistry_AddTable(t *testing.T) {
	r := NewRegistry()

	require.NoError(t, r.AddTable(1, 4))

	err := r.AddTable(1, 2)
	require.Error(t, err)
	assert.Equal(t, domain.CodeDuplicateTable, domain.CodeOf(err))

	assert.Error(t, r.AddTable(0, 4), "non-positive table number")
	assert.Error(t, r.AddTable(2, 0), "capacity below 1")
}

func TestRegistry_RemoveTable(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.AddTable(1, 4))
	require.NoError(t, r.Allocate(1, "res-1"))

	err := r.RemoveTable(1)
	assert.Equal(t, domain.CodeTableOccupied, domain.CodeOf(err))

	require.NoError(t, r.Release(1))
	require.NoError(t, r.RemoveTable(1))

	err = r.RemoveTable(1)
	assert.Equal(t, domain.CodeTableNotFound, domain.CodeOf(err))
}

func TestRegistry_Allocate(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.AddTable(5, 4))

	require.NoError(t, r.Allocate(5, "res-1"))

	// Re-allocating to the same reservation is a successful no-op.
	require.NoError(t, r.Allocate(5, "res-1"))

	err := r.Allocate(5, "res-2")
	require.Error(t, err)
	assert.Equal(t, domain.CodeTableOccupied, domain.CodeOf(err))

	table, ok := r.Get(5)
	require.True(t, ok)
	assert.Equal(t, "res-1", table.OccupantReservationID, "failed allocation must not steal the table")

	err = r.Allocate(9, "res-3")
	assert.Equal(t, domain.CodeTableNotFound, domain.CodeOf(err))
}

func TestRegistry_Release_Idempotent(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.AddTable(2, 2))
	require.NoError(t, r.Allocate(2, "res-1"))

	require.NoError(t, r.Release(2))
	require.NoError(t, r.Release(2), "releasing a free table is a no-op")

	table, ok := r.Get(2)
	require.True(t, ok)
	assert.False(t, table.Occupied())

	err := r.Release(404)
	assert.Equal(t, domain.CodeTableNotFound, domain.CodeOf(err))
}

func TestRegistry_ListAvailable(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.AddTable(3, 6))
	require.NoError(t, r.AddTable(1, 2))
	require.NoError(t, r.AddTable(2, 4))
	require.NoError(t, r.AddTable(4, 4))
	require.NoError(t, r.Allocate(2, "res-1"))

	got := r.ListAvailable(4)

	require.Len(t, got, 2)
	assert.Equal(t, 3, got[0].Number, "ascending table number order")
	assert.Equal(t, 4, got[1].Number)

	all := r.ListAvailable(0)
	require.Len(t, all, 3)
	assert.Equal(t, []int{1, 3, 4}, []int{all[0].Number, all[1].Number, all[2].Number})
}

func TestRegistry_List_ReturnsCopies(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.AddTable(1, 2))

	list := r.List()
	require.Len(t, list, 1)
	list[0].OccupantReservationID = "tampered"

	table, ok := r.Get(1)
	require.True(t, ok)
	assert.False(t, table.Occupied(), "projection mutation must not reach the registry")
}
