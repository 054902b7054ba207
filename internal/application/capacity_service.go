package application

import (
	"context"
	"time"

	"github.com/wms-platform/capacity-service/internal/domain"
	"github.com/wms-platform/capacity-service/internal/pkg/logging"
	"github.com/wms-platform/capacity-service/internal/validation"
)

// CapacityService handles inventory movements against container capacity.
// Every operation validates through the pipeline first and only mutates via
// the ledger using the validated bundle.
type CapacityService struct {
	pipeline  *validation.Pipeline
	ledger    *CapacityLedger
	publisher domain.EventPublisher
	logger    *logging.Logger
}

// NewCapacityService creates a new CapacityService
func NewCapacityService(pipeline *validation.Pipeline, ledger *CapacityLedger, publisher domain.EventPublisher, logger *logging.Logger) *CapacityService {
	return &CapacityService{
		pipeline:  pipeline,
		ledger:    ledger,
		publisher: publisher,
		logger:    logger,
	}
}

// InventoryInbound books a quantity of a SKU into a container during an
// open inbound run
func (s *CapacityService) InventoryInbound(ctx context.Context, cmd InventoryInboundCommand) (*domain.ContainerCapacity, error) {
	req := &validation.ActionRequest{
		Kind:              validation.ActionInventoryInbound,
		WarehouseID:       cmd.WarehouseID,
		CompanyID:         cmd.CompanyID,
		SKUCode:           cmd.SKUCode,
		InboundID:         cmd.InboundID,
		ContainerID:       cmd.ContainerID,
		CapacityToInbound: cmd.Quantity,
	}

	bundle, err := s.pipeline.Execute(ctx, req)
	if err != nil {
		return nil, err
	}

	capacity, err := s.ledger.ReserveForInbound(ctx, bundle.Container, bundle.ContainerCapacity, cmd.SKUCode, cmd.Quantity)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, &domain.CapacityReservedEvent{
		ContainerID:  capacity.ContainerID,
		WarehouseID:  capacity.WarehouseID,
		SKUCode:      cmd.SKUCode,
		Quantity:     cmd.Quantity,
		NewOccupancy: capacity.CurrentOccupancy,
		NewStatus:    capacity.Status,
		OccurredAt_:  time.Now().UTC(),
	})

	s.logger.Info("Inventory inbound booked",
		"warehouseId", cmd.WarehouseID,
		"containerId", cmd.ContainerID,
		"sku", cmd.SKUCode,
		"quantity", cmd.Quantity,
		"newOccupancy", capacity.CurrentOccupancy,
		"newStatus", string(capacity.Status),
	)

	return capacity, nil
}

// InventoryOutbound ships a quantity of a SKU out of a container during an
// open outbound run
func (s *CapacityService) InventoryOutbound(ctx context.Context, cmd InventoryOutboundCommand) (*domain.ContainerCapacity, error) {
	req := &validation.ActionRequest{
		Kind:               validation.ActionInventoryOutbound,
		WarehouseID:        cmd.WarehouseID,
		CompanyID:          cmd.CompanyID,
		SKUCode:            cmd.SKUCode,
		OutboundID:         cmd.OutboundID,
		ContainerID:        cmd.ContainerID,
		CapacityToOutbound: cmd.Quantity,
	}

	bundle, err := s.pipeline.Execute(ctx, req)
	if err != nil {
		return nil, err
	}

	capacity, err := s.ledger.ReleaseForOutbound(ctx, bundle.Container, bundle.ContainerCapacity, cmd.Quantity)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, &domain.CapacityReleasedEvent{
		ContainerID:  capacity.ContainerID,
		WarehouseID:  capacity.WarehouseID,
		Quantity:     cmd.Quantity,
		NewOccupancy: capacity.CurrentOccupancy,
		NewStatus:    capacity.Status,
		OccurredAt_:  time.Now().UTC(),
	})

	s.logger.Info("Inventory outbound shipped",
		"warehouseId", cmd.WarehouseID,
		"containerId", cmd.ContainerID,
		"sku", cmd.SKUCode,
		"quantity", cmd.Quantity,
		"newOccupancy", capacity.CurrentOccupancy,
		"newStatus", string(capacity.Status),
	)

	return capacity, nil
}

// MoveInventory moves a quantity of a SKU between two containers. The two
// occupancy writes are independent conditional commits: when the
// destination commit loses a race after the source commit succeeded, the
// error is surfaced and the caller re-reads current state before retrying.
// Committed work is never rolled back.
func (s *CapacityService) MoveInventory(ctx context.Context, cmd MoveInventoryCommand) error {
	req := &validation.ActionRequest{
		Kind:                   validation.ActionMoveInventory,
		WarehouseID:            cmd.WarehouseID,
		CompanyID:              cmd.CompanyID,
		SKUCode:                cmd.SKUCode,
		SourceContainerID:      cmd.SourceContainerID,
		DestinationContainerID: cmd.DestinationContainerID,
		CapacityToOutbound:     cmd.Quantity,
		CapacityToInbound:      cmd.Quantity,
	}

	bundle, err := s.pipeline.Execute(ctx, req)
	if err != nil {
		return err
	}

	if _, err := s.ledger.ReleaseForOutbound(ctx, bundle.SourceContainer, bundle.SourceCapacity, cmd.Quantity); err != nil {
		return err
	}

	if _, err := s.ledger.ReserveForInbound(ctx, bundle.DestinationContainer, bundle.DestinationCapacity, cmd.SKUCode, cmd.Quantity); err != nil {
		s.logger.WithError(err).Warn("Move released source but destination commit failed",
			"warehouseId", cmd.WarehouseID,
			"sourceContainerId", cmd.SourceContainerID,
			"destinationContainerId", cmd.DestinationContainerID,
			"sku", cmd.SKUCode,
			"quantity", cmd.Quantity,
		)
		return err
	}

	s.publish(ctx, &domain.InventoryMovedEvent{
		WarehouseID:            cmd.WarehouseID,
		SKUCode:                cmd.SKUCode,
		Quantity:               cmd.Quantity,
		SourceContainerID:      cmd.SourceContainerID,
		DestinationContainerID: cmd.DestinationContainerID,
		OccurredAt_:            time.Now().UTC(),
	})

	s.logger.Info("Inventory moved",
		"warehouseId", cmd.WarehouseID,
		"sourceContainerId", cmd.SourceContainerID,
		"destinationContainerId", cmd.DestinationContainerID,
		"sku", cmd.SKUCode,
		"quantity", cmd.Quantity,
	)

	return nil
}

// ValidateAction runs the validation pipeline without mutating anything.
// Useful for dry-run checks, including SKU barcode generation which is
// rendered by a downstream service.
func (s *CapacityService) ValidateAction(ctx context.Context, req *validation.ActionRequest) (*validation.ValidatedEntityBundle, error) {
	return s.pipeline.Execute(ctx, req)
}

// Event publishing is best-effort: a publish failure is logged and never
// fails the already-committed operation.
func (s *CapacityService) publish(ctx context.Context, event domain.DomainEvent) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.WithError(err).Warn("Failed to publish domain event", "eventType", event.EventType())
	}
}
