package domain

import (
	"time"

	apperrors "github.com/wms-platform/capacity-service/internal/pkg/errors"
)

// Container is the immutable configuration of a physical holding unit. The
// per-SKU maximum capacity is fixed at registration and never mutated.
type Container struct {
	ContainerID       string         `bson:"containerId" json:"containerId"`
	WarehouseID       string         `bson:"warehouseId" json:"warehouseId"`
	PerSKUMaxCapacity map[string]int `bson:"perSkuMaxCapacity" json:"perSkuMaxCapacity"`
	CreatedAt         time.Time      `bson:"createdAt" json:"createdAt"`
}

// NewContainer creates a container configuration
func NewContainer(containerID, warehouseID string, perSKUMaxCapacity map[string]int) (*Container, error) {
	if containerID == "" || warehouseID == "" {
		return nil, apperrors.ErrValidation("container ID and warehouse ID must not be blank")
	}
	if len(perSKUMaxCapacity) == 0 {
		return nil, apperrors.ErrValidation("container must declare capacity for at least one SKU")
	}
	for sku, max := range perSKUMaxCapacity {
		if sku == "" {
			return nil, apperrors.ErrValidation("SKU code must not be blank")
		}
		if max <= 0 {
			return nil, apperrors.ErrValidation("per-SKU max capacity must be positive").
				WithDetail("sku", sku)
		}
	}

	return &Container{
		ContainerID:       containerID,
		WarehouseID:       warehouseID,
		PerSKUMaxCapacity: perSKUMaxCapacity,
		CreatedAt:         time.Now().UTC(),
	}, nil
}

// MaxCapacityForSKU returns the configured capacity for a SKU
func (c *Container) MaxCapacityForSKU(sku string) (int, bool) {
	max, ok := c.PerSKUMaxCapacity[sku]
	return max, ok
}

// TotalMaxCapacity returns the summed capacity across all configured SKUs
func (c *Container) TotalMaxCapacity() int {
	total := 0
	for _, max := range c.PerSKUMaxCapacity {
		total += max
	}
	return total
}

// ContainerCapacity tracks the mutable occupancy of a container. Status is
// always derivable from occupancy vs max capacity and is recomputed on every
// occupancy write. Capacity rows are never deleted, only transitioned to
// discontinued.
type ContainerCapacity struct {
	ContainerID      string          `bson:"containerId" json:"containerId"`
	WarehouseID      string          `bson:"warehouseId" json:"warehouseId"`
	CurrentOccupancy int             `bson:"currentOccupancy" json:"currentOccupancy"`
	Status           ContainerStatus `bson:"status" json:"status"`
	CreatedAt        time.Time       `bson:"createdAt" json:"createdAt"`
	ModifiedAt       time.Time       `bson:"modifiedAt" json:"modifiedAt"`
}

// NewContainerCapacity creates the capacity row for a freshly registered
// container: empty and available.
func NewContainerCapacity(containerID, warehouseID string) *ContainerCapacity {
	now := time.Now().UTC()
	return &ContainerCapacity{
		ContainerID:      containerID,
		WarehouseID:      warehouseID,
		CurrentOccupancy: 0,
		Status:           ContainerStatusAvailable,
		CreatedAt:        now,
		ModifiedAt:       now,
	}
}

// Discontinue transitions the container out of service. Only an empty,
// available container may be discontinued.
func (c *ContainerCapacity) Discontinue() error {
	if !c.Status.CanTransitionTo(ContainerStatusDiscontinued) {
		return apperrors.ErrActionNotAllowed("container must be empty and available to be discontinued").
			WithDetail("containerId", c.ContainerID).
			WithDetail("status", string(c.Status))
	}

	c.Status = ContainerStatusDiscontinued
	c.ModifiedAt = time.Now().UTC()
	return nil
}
