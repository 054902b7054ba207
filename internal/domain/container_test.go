package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/wms-platform/capacity-service/internal/pkg/errors"
)

func TestNewContainer(t *testing.T) {
	container, err := NewContainer("CONTAINER-1", "WH-1", map[string]int{"SKU-A": 10, "SKU-B": 5})
	require.NoError(t, err)

	assert.Equal(t, "CONTAINER-1", container.ContainerID)
	assert.Equal(t, 15, container.TotalMaxCapacity())

	max, ok := container.MaxCapacityForSKU("SKU-A")
	assert.True(t, ok)
	assert.Equal(t, 10, max)

	_, ok = container.MaxCapacityForSKU("SKU-MISSING")
	assert.False(t, ok)
}

func TestNewContainerRejectsBadInput(t *testing.T) {
	tests := []struct {
		name        string
		containerID string
		warehouseID string
		capacities  map[string]int
	}{
		{"blank container ID", "", "WH-1", map[string]int{"SKU-A": 10}},
		{"blank warehouse ID", "CONTAINER-1", "", map[string]int{"SKU-A": 10}},
		{"no SKU capacities", "CONTAINER-1", "WH-1", map[string]int{}},
		{"blank SKU code", "CONTAINER-1", "WH-1", map[string]int{"": 10}},
		{"zero capacity", "CONTAINER-1", "WH-1", map[string]int{"SKU-A": 0}},
		{"negative capacity", "CONTAINER-1", "WH-1", map[string]int{"SKU-A": -5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewContainer(tt.containerID, tt.warehouseID, tt.capacities)
			require.Error(t, err)
			assert.True(t, apperrors.HasCode(err, apperrors.CodeValidationError))
		})
	}
}

func TestNewContainerCapacityStartsEmpty(t *testing.T) {
	capacity := NewContainerCapacity("CONTAINER-1", "WH-1")

	assert.Equal(t, 0, capacity.CurrentOccupancy)
	assert.Equal(t, ContainerStatusAvailable, capacity.Status)
}

func TestDiscontinueEmptyContainer(t *testing.T) {
	capacity := NewContainerCapacity("CONTAINER-1", "WH-1")

	require.NoError(t, capacity.Discontinue())
	assert.Equal(t, ContainerStatusDiscontinued, capacity.Status)
}

func TestDiscontinueOccupiedContainerFails(t *testing.T) {
	capacity := NewContainerCapacity("CONTAINER-1", "WH-1")
	capacity.CurrentOccupancy = 3
	capacity.Status = ContainerStatusPartiallyFilled

	err := capacity.Discontinue()
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeActionNotAllowed))
	assert.Equal(t, ContainerStatusPartiallyFilled, capacity.Status)
}

func TestDiscontinueTwiceFails(t *testing.T) {
	capacity := NewContainerCapacity("CONTAINER-1", "WH-1")
	require.NoError(t, capacity.Discontinue())

	err := capacity.Discontinue()
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeActionNotAllowed))
}
