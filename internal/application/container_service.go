package application

import (
	"context"
	"time"

	"github.com/wms-platform/capacity-service/internal/domain"
	apperrors "github.com/wms-platform/capacity-service/internal/pkg/errors"
	"github.com/wms-platform/capacity-service/internal/pkg/logging"
)

// ContainerService handles container registration and lifecycle
type ContainerService struct {
	warehouses domain.WarehouseLookup
	containers domain.ContainerStore
	publisher  domain.EventPublisher
	logger     *logging.Logger
}

// NewContainerService creates a new ContainerService
func NewContainerService(warehouses domain.WarehouseLookup, containers domain.ContainerStore, publisher domain.EventPublisher, logger *logging.Logger) *ContainerService {
	return &ContainerService{
		warehouses: warehouses,
		containers: containers,
		publisher:  publisher,
		logger:     logger,
	}
}

// RegisterContainer registers a new container under a freshly allocated
// sequential ID with an empty capacity row
func (s *ContainerService) RegisterContainer(ctx context.Context, cmd RegisterContainerCommand) (*domain.Container, *domain.ContainerCapacity, error) {
	if cmd.WarehouseID == "" {
		return nil, nil, apperrors.ErrValidation("warehouse ID must not be blank")
	}

	warehouse, err := s.warehouses.Get(ctx, cmd.WarehouseID)
	if err != nil {
		return nil, nil, err
	}
	if warehouse == nil {
		return nil, nil, apperrors.ErrNotFoundWithID("warehouse", cmd.WarehouseID)
	}

	var container *domain.Container
	var capacity *domain.ContainerCapacity
	err = allocateSequentialID(maxIDAllocationAttempts, func() error {
		last, err := s.containers.GetLastForWarehouse(ctx, cmd.WarehouseID)
		if err != nil {
			return err
		}

		lastID := ""
		if last != nil {
			lastID = last.ContainerID
		}

		containerID, err := domain.NextSequentialID(lastID, domain.ContainerIDPrefix)
		if err != nil {
			return err
		}

		container, err = domain.NewContainer(containerID, cmd.WarehouseID, cmd.PerSKUMaxCapacity)
		if err != nil {
			return err
		}

		capacity = domain.NewContainerCapacity(containerID, cmd.WarehouseID)
		return s.containers.Create(ctx, container, capacity)
	})
	if err != nil {
		return nil, nil, err
	}

	s.publish(ctx, &domain.ContainerRegisteredEvent{
		ContainerID: container.ContainerID,
		WarehouseID: container.WarehouseID,
		MaxCapacity: container.TotalMaxCapacity(),
		OccurredAt_: time.Now().UTC(),
	})

	s.logger.Info("Container registered",
		"containerId", container.ContainerID,
		"warehouseId", container.WarehouseID,
		"maxCapacity", container.TotalMaxCapacity(),
	)

	return container, capacity, nil
}

// GetContainer retrieves a container with its capacity row
func (s *ContainerService) GetContainer(ctx context.Context, warehouseID, containerID string) (*domain.Container, *domain.ContainerCapacity, error) {
	if warehouseID == "" || containerID == "" {
		return nil, nil, apperrors.ErrValidation("warehouse ID and container ID must not be blank")
	}

	container, capacity, err := s.containers.Get(ctx, warehouseID, containerID)
	if err != nil {
		return nil, nil, err
	}
	if container == nil || capacity == nil {
		return nil, nil, apperrors.ErrNotFoundWithID("container", containerID)
	}

	return container, capacity, nil
}

// DiscontinueContainer takes an empty container out of service. The status
// write is conditional on the occupancy observed here, so a concurrent
// inbound booking fails the discontinue with a retriable conflict instead
// of being silently overwritten.
func (s *ContainerService) DiscontinueContainer(ctx context.Context, warehouseID, containerID string) (*domain.ContainerCapacity, error) {
	container, capacity, err := s.GetContainer(ctx, warehouseID, containerID)
	if err != nil {
		return nil, err
	}

	if err := capacity.Discontinue(); err != nil {
		return nil, err
	}

	committed, err := s.containers.ConditionalUpdateOccupancy(
		ctx,
		container.WarehouseID,
		container.ContainerID,
		capacity.CurrentOccupancy,
		capacity.CurrentOccupancy,
		domain.ContainerStatusDiscontinued,
	)
	if err != nil {
		return nil, err
	}
	if !committed {
		return nil, apperrors.ErrConflict("container occupancy changed concurrently; re-validate and retry").
			WithDetail("containerId", containerID)
	}

	s.logger.Info("Container discontinued",
		"containerId", containerID,
		"warehouseId", warehouseID,
	)

	return capacity, nil
}

func (s *ContainerService) publish(ctx context.Context, event domain.DomainEvent) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.WithError(err).Warn("Failed to publish domain event", "eventType", event.EventType())
	}
}
