package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoomOccupancy(t *testing.T) {
	tests := []struct {
		name      string
		occ       RoomOccupancy
		full      bool
		remaining int
	}{
		{"empty", RoomOccupancy{Capacity: 3}, false, 3},
		{"one left", RoomOccupancy{Capacity: 3, Occupants: 2}, false, 1},
		{"exactly full", RoomOccupancy{Capacity: 2, Occupants: 2}, true, 0},
		{"over capacity", RoomOccupancy{Capacity: 1, Occupants: 2}, true, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.full, tt.occ.IsFull())
			assert.Equal(t, tt.remaining, tt.occ.Remaining())
		})
	}
}
