package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestError_Message(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "table occupied carries table and occupant",
			err:  NewTableOccupied(5, "res-1"),
			want: "TABLE_OCCUPIED: table is bound to another reservation (reservation=res-1, table=5)",
		},
		{
			name: "reservation not found",
			err:  NewReservationNotFound("res-9"),
			want: "RESERVATION_NOT_FOUND: no such reservation (reservation=res-9)",
		},
		{
			name: "queue empty has no entity context",
			err:  NewQueueEmpty(),
			want: "QUEUE_EMPTY: no open tickets",
		},
		{
			name: "table not found",
			err:  NewTableNotFound(7),
			want: "TABLE_NOT_FOUND: no such table (table=7)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestCodeOf(t *testing.T) {
	assert.Equal(t, CodeDuplicateTable, CodeOf(NewDuplicateTable(3)))
	assert.Equal(t, Code(""), CodeOf(errors.New("plain")))
	assert.Equal(t, Code(""), CodeOf(nil))
}

func TestCodeOf_Wrapped(t *testing.T) {
	wrapped := fmt.Errorf("confirming: %w", NewTableOccupied(2, "res-1"))
	require.True(t, IsTableOccupied(wrapped))
	assert.Equal(t, CodeTableOccupied, CodeOf(wrapped))
}

func TestIsHelpers(t *testing.T) {
	assert.True(t, IsInvalidTransition(NewInvalidTransition("nope")))
	assert.False(t, IsInvalidTransition(NewQueueEmpty()))
	assert.True(t, IsQueueEmpty(NewQueueEmpty()))
	assert.False(t, IsTableOccupied(errors.New("other")))
}
