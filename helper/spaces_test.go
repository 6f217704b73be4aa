package helper

import (
	"testing"

	"github.com/MrFrederic/opensky/model"

	"github.com/stretchr/testify/assert"
)

func spacesLoad(maxLoad, reservedSpaces int) *model.Load {
	return &model.Load{
		DTO:            model.DTO{ID: 1},
		ReservedSpaces: reservedSpaces,
		Aircraft:       model.Aircraft{MaxLoad: maxLoad},
	}
}

func TestCalculateSpaces_Empty(t *testing.T) {
	spaces := CalculateSpaces(spacesLoad(15, 3), nil)

	assert.Equal(t, 15, spaces.TotalSpaces)
	assert.Equal(t, 3, spaces.ReservedSpaces)
	assert.Equal(t, 0, spaces.OccupiedPublic)
	assert.Equal(t, 0, spaces.OccupiedReserved)
	assert.Equal(t, 12, spaces.RemainingPublic)
	assert.Equal(t, 3, spaces.RemainingReserved)
}

func TestCalculateSpaces_PartitionsByReservedFlag(t *testing.T) {
	jumps := []model.Jump{
		{Reserved: false},
		{Reserved: false},
		{Reserved: true},
	}
	spaces := CalculateSpaces(spacesLoad(15, 3), jumps)

	assert.Equal(t, 2, spaces.OccupiedPublic)
	assert.Equal(t, 1, spaces.OccupiedReserved)
	assert.Equal(t, 10, spaces.RemainingPublic)
	assert.Equal(t, 2, spaces.RemainingReserved)
}

func TestCalculateSpaces_OverbookedGoesNegative(t *testing.T) {
	jumps := []model.Jump{
		{Reserved: false},
		{Reserved: false},
		{Reserved: false},
		{Reserved: false},
	}
	spaces := CalculateSpaces(spacesLoad(4, 1), jumps)

	assert.Equal(t, -1, spaces.RemainingPublic)
	assert.Equal(t, 1, spaces.RemainingReserved)
}

func TestCalculateSpaces_ReservedOverflowIsNotPublic(t *testing.T) {
	// Overflow in the reserved pool never spills into the public count.
	jumps := []model.Jump{
		{Reserved: true},
		{Reserved: true},
	}
	spaces := CalculateSpaces(spacesLoad(4, 1), jumps)

	assert.Equal(t, 3, spaces.RemainingPublic)
	assert.Equal(t, -1, spaces.RemainingReserved)
}
