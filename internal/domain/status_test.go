package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/wms-platform/capacity-service/internal/pkg/errors"
)

func TestDetermineContainerStatus(t *testing.T) {
	tests := []struct {
		name      string
		occupancy int
		max       int
		want      ContainerStatus
	}{
		{"empty container is available", 0, 10, ContainerStatusAvailable},
		{"empty container with zero capacity is available", 0, 0, ContainerStatusAvailable},
		{"full container is filled", 10, 10, ContainerStatusFilled},
		{"single unit of capacity filled", 1, 1, ContainerStatusFilled},
		{"partially occupied container", 3, 10, ContainerStatusPartiallyFilled},
		{"one below max is partially filled", 9, 10, ContainerStatusPartiallyFilled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DetermineContainerStatus(tt.occupancy, tt.max)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDetermineContainerStatusNegativeInputs(t *testing.T) {
	_, err := DetermineContainerStatus(-1, 10)
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeValidationError))

	_, err = DetermineContainerStatus(0, -5)
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeValidationError))
}

func TestDetermineContainerStatusOverMax(t *testing.T) {
	_, err := DetermineContainerStatus(11, 10)
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeCorruptState))
}

func TestContainerStatusTransitions(t *testing.T) {
	// Every status except discontinued may return to available.
	assert.True(t, ContainerStatusFilled.CanTransitionTo(ContainerStatusAvailable))
	assert.True(t, ContainerStatusPartiallyFilled.CanTransitionTo(ContainerStatusAvailable))
	assert.True(t, ContainerStatusDiscontinued.CanTransitionTo(ContainerStatusAvailable))

	// Only an empty available container may be discontinued.
	assert.True(t, ContainerStatusAvailable.CanTransitionTo(ContainerStatusDiscontinued))
	assert.False(t, ContainerStatusFilled.CanTransitionTo(ContainerStatusDiscontinued))
	assert.False(t, ContainerStatusPartiallyFilled.CanTransitionTo(ContainerStatusDiscontinued))
	assert.False(t, ContainerStatusDiscontinued.CanTransitionTo(ContainerStatusDiscontinued))

	// Partially filled permits idempotent re-entry, available does not.
	assert.True(t, ContainerStatusPartiallyFilled.CanTransitionTo(ContainerStatusPartiallyFilled))
	assert.False(t, ContainerStatusAvailable.CanTransitionTo(ContainerStatusAvailable))

	// A discontinued container never fills.
	assert.False(t, ContainerStatusDiscontinued.CanTransitionTo(ContainerStatusFilled))
	assert.False(t, ContainerStatusDiscontinued.CanTransitionTo(ContainerStatusPartiallyFilled))
}

func TestRunStatusTransitions(t *testing.T) {
	assert.True(t, RunStatusActive.CanTransitionTo(RunStatusClosed))
	assert.True(t, RunStatusActive.CanTransitionTo(RunStatusActive))

	// Closed is terminal.
	assert.False(t, RunStatusClosed.CanTransitionTo(RunStatusActive))
	assert.False(t, RunStatusClosed.CanTransitionTo(RunStatusClosed))
}

func TestInventoryStatusTransitions(t *testing.T) {
	assert.True(t, InventoryStatusProduction.CanTransitionTo(InventoryStatusInbound))
	assert.True(t, InventoryStatusInbound.CanTransitionTo(InventoryStatusOutbound))

	// Inventory never flows backwards or skips inbound.
	assert.False(t, InventoryStatusProduction.CanTransitionTo(InventoryStatusOutbound))
	assert.False(t, InventoryStatusOutbound.CanTransitionTo(InventoryStatusInbound))
	assert.False(t, InventoryStatusInbound.CanTransitionTo(InventoryStatusProduction))
}

func TestStatusIsValid(t *testing.T) {
	assert.True(t, ContainerStatusAvailable.IsValid())
	assert.False(t, ContainerStatus("broken").IsValid())

	assert.True(t, RunStatusClosed.IsValid())
	assert.False(t, RunStatus("paused").IsValid())

	assert.True(t, InventoryStatusProduction.IsValid())
	assert.False(t, InventoryStatus("returned").IsValid())
}
