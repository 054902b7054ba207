package application

import (
	"context"
	"time"

	"github.com/wms-platform/capacity-service/internal/domain"
	apperrors "github.com/wms-platform/capacity-service/internal/pkg/errors"
)

// CapacityLedger owns occupancy mutations. Every delta is committed with a
// conditional write keyed to the occupancy observed at validation time; a
// lost race surfaces as a retriable CONFLICT error and is never retried
// here. Status is recomputed from the new occupancy and written atomically
// with it.
type CapacityLedger struct {
	containers domain.ContainerStore
}

// NewCapacityLedger creates a new CapacityLedger
func NewCapacityLedger(containers domain.ContainerStore) *CapacityLedger {
	return &CapacityLedger{containers: containers}
}

// ReserveForInbound applies a positive delta to the container occupancy for
// an inbound booking. Fails with ACTION_NOT_ALLOWED when the delta would
// push the occupancy past the per-SKU maximum, and with a retriable
// CONFLICT when a concurrent writer changed the occupancy first.
func (l *CapacityLedger) ReserveForInbound(ctx context.Context, container *domain.Container, observed *domain.ContainerCapacity, skuCode string, delta int) (*domain.ContainerCapacity, error) {
	if delta <= 0 {
		return nil, apperrors.ErrValidation("inbound delta must be positive")
	}

	max, ok := container.MaxCapacityForSKU(skuCode)
	if !ok {
		return nil, apperrors.ErrActionNotAllowed("container is not configured for SKU").
			WithDetail("containerId", container.ContainerID).
			WithDetail("sku", skuCode)
	}
	if observed.CurrentOccupancy+delta > max {
		return nil, apperrors.ErrActionNotAllowed("container capacity exceeded").
			WithDetail("containerId", container.ContainerID)
	}

	return l.commit(ctx, container, observed, observed.CurrentOccupancy+delta)
}

// ReleaseForOutbound applies a negative delta to the container occupancy for
// an outbound shipment. Fails with ACTION_NOT_ALLOWED when the container
// does not hold the requested quantity.
func (l *CapacityLedger) ReleaseForOutbound(ctx context.Context, container *domain.Container, observed *domain.ContainerCapacity, delta int) (*domain.ContainerCapacity, error) {
	if delta <= 0 {
		return nil, apperrors.ErrValidation("outbound delta must be positive")
	}

	if delta > observed.CurrentOccupancy {
		return nil, apperrors.ErrActionNotAllowed("container has insufficient stock").
			WithDetail("containerId", container.ContainerID)
	}

	return l.commit(ctx, container, observed, observed.CurrentOccupancy-delta)
}

func (l *CapacityLedger) commit(ctx context.Context, container *domain.Container, observed *domain.ContainerCapacity, newOccupancy int) (*domain.ContainerCapacity, error) {
	newStatus, err := domain.DetermineContainerStatus(newOccupancy, container.TotalMaxCapacity())
	if err != nil {
		return nil, err
	}

	committed, err := l.containers.ConditionalUpdateOccupancy(
		ctx,
		container.WarehouseID,
		container.ContainerID,
		observed.CurrentOccupancy,
		newOccupancy,
		newStatus,
	)
	if err != nil {
		return nil, err
	}
	if !committed {
		return nil, apperrors.ErrConflict("container occupancy changed concurrently; re-validate and retry").
			WithDetail("containerId", container.ContainerID)
	}

	updated := *observed
	updated.CurrentOccupancy = newOccupancy
	updated.Status = newStatus
	updated.ModifiedAt = time.Now().UTC()
	return &updated, nil
}
