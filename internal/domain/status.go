package domain

import (
	"fmt"

	apperrors "github.com/wms-platform/capacity-service/internal/pkg/errors"
)

// ContainerStatus represents the occupancy status of a container
type ContainerStatus string

const (
	ContainerStatusAvailable       ContainerStatus = "available"
	ContainerStatusPartiallyFilled ContainerStatus = "partially_filled"
	ContainerStatusFilled          ContainerStatus = "filled"
	ContainerStatusDiscontinued    ContainerStatus = "discontinued"
)

// IsValid checks if the status is valid
func (s ContainerStatus) IsValid() bool {
	switch s {
	case ContainerStatusAvailable, ContainerStatusPartiallyFilled,
		ContainerStatusFilled, ContainerStatusDiscontinued:
		return true
	default:
		return false
	}
}

// containerStatusPredecessors maps each container status to the set of
// statuses a container may legally come from. A status listing itself
// permits idempotent re-entry.
var containerStatusPredecessors = map[ContainerStatus][]ContainerStatus{
	ContainerStatusAvailable:       {ContainerStatusDiscontinued, ContainerStatusFilled, ContainerStatusPartiallyFilled},
	ContainerStatusFilled:          {ContainerStatusPartiallyFilled, ContainerStatusAvailable},
	ContainerStatusPartiallyFilled: {ContainerStatusAvailable, ContainerStatusFilled, ContainerStatusPartiallyFilled},
	ContainerStatusDiscontinued:    {ContainerStatusAvailable},
}

// CanTransitionTo checks if the status can transition to another status
func (s ContainerStatus) CanTransitionTo(target ContainerStatus) bool {
	predecessors, exists := containerStatusPredecessors[target]
	if !exists {
		return false
	}

	for _, allowed := range predecessors {
		if s == allowed {
			return true
		}
	}
	return false
}

// RunStatus represents the lifecycle status of an inbound or outbound run
type RunStatus string

const (
	RunStatusActive RunStatus = "active"
	RunStatusClosed RunStatus = "closed"
)

// IsValid checks if the status is valid
func (s RunStatus) IsValid() bool {
	return s == RunStatusActive || s == RunStatusClosed
}

// runStatusPredecessors maps each run status to its legal predecessors.
// Closed is terminal: it is not a predecessor of anything.
var runStatusPredecessors = map[RunStatus][]RunStatus{
	RunStatusActive: {RunStatusActive},
	RunStatusClosed: {RunStatusActive},
}

// CanTransitionTo checks if the status can transition to another status
func (s RunStatus) CanTransitionTo(target RunStatus) bool {
	predecessors, exists := runStatusPredecessors[target]
	if !exists {
		return false
	}

	for _, allowed := range predecessors {
		if s == allowed {
			return true
		}
	}
	return false
}

// InventoryStatus represents where a unit of inventory sits in its lifecycle
type InventoryStatus string

const (
	InventoryStatusProduction InventoryStatus = "production"
	InventoryStatusInbound    InventoryStatus = "inbound"
	InventoryStatusOutbound   InventoryStatus = "outbound"
)

// IsValid checks if the status is valid
func (s InventoryStatus) IsValid() bool {
	switch s {
	case InventoryStatusProduction, InventoryStatusInbound, InventoryStatusOutbound:
		return true
	default:
		return false
	}
}

var inventoryStatusPredecessors = map[InventoryStatus][]InventoryStatus{
	InventoryStatusProduction: {InventoryStatusProduction},
	InventoryStatusInbound:    {InventoryStatusProduction},
	InventoryStatusOutbound:   {InventoryStatusInbound},
}

// CanTransitionTo checks if the status can transition to another status
func (s InventoryStatus) CanTransitionTo(target InventoryStatus) bool {
	predecessors, exists := inventoryStatusPredecessors[target]
	if !exists {
		return false
	}

	for _, allowed := range predecessors {
		if s == allowed {
			return true
		}
	}
	return false
}

// DetermineContainerStatus derives the container status from its occupancy
// and maximum capacity. Rules are evaluated in order: empty containers are
// available, full containers are filled, everything in between is partially
// filled. Occupancy above the maximum is an invariant violation; it is
// guarded against before any occupancy write and must never be stored.
func DetermineContainerStatus(occupancy, maxCapacity int) (ContainerStatus, error) {
	if occupancy < 0 {
		return "", apperrors.ErrValidation("occupancy must not be negative").
			WithDetail("occupancy", fmt.Sprintf("%d", occupancy))
	}
	if maxCapacity < 0 {
		return "", apperrors.ErrValidation("max capacity must not be negative").
			WithDetail("maxCapacity", fmt.Sprintf("%d", maxCapacity))
	}

	switch {
	case occupancy == 0:
		return ContainerStatusAvailable, nil
	case occupancy == maxCapacity:
		return ContainerStatusFilled, nil
	case occupancy < maxCapacity:
		return ContainerStatusPartiallyFilled, nil
	default:
		return "", apperrors.ErrCorruptState(
			fmt.Sprintf("stored occupancy %d exceeds max capacity %d", occupancy, maxCapacity))
	}
}
