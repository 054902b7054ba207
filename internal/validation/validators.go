package validation

import (
	"context"
	"fmt"

	"github.com/wms-platform/capacity-service/internal/domain"
	apperrors "github.com/wms-platform/capacity-service/internal/pkg/errors"
)

// Validator checks one precondition of a proposed action and, on success,
// extends the bundle with the entity it resolved. Existence validators must
// run before business-rule validators that depend on the resolved entity.
type Validator func(ctx context.Context, req *ActionRequest, bundle *ValidatedEntityBundle) error

// Validators holds the lookup collaborators the individual validators read
// from. Validators never write to any store.
type Validators struct {
	warehouses domain.WarehouseLookup
	companies  domain.CompanyLookup
	customers  domain.CustomerLookup
	skus       domain.SKULookup
	containers domain.ContainerStore
	inbounds   domain.InboundStore
	outbounds  domain.OutboundStore
}

// NewValidators creates the validator set
func NewValidators(
	warehouses domain.WarehouseLookup,
	companies domain.CompanyLookup,
	customers domain.CustomerLookup,
	skus domain.SKULookup,
	containers domain.ContainerStore,
	inbounds domain.InboundStore,
	outbounds domain.OutboundStore,
) *Validators {
	return &Validators{
		warehouses: warehouses,
		companies:  companies,
		customers:  customers,
		skus:       skus,
		containers: containers,
		inbounds:   inbounds,
		outbounds:  outbounds,
	}
}

// WarehouseExists resolves the warehouse named by the request
func (v *Validators) WarehouseExists(ctx context.Context, req *ActionRequest, bundle *ValidatedEntityBundle) error {
	if req.WarehouseID == "" {
		return apperrors.ErrValidation("warehouse ID must not be blank")
	}

	warehouse, err := v.warehouses.Get(ctx, req.WarehouseID)
	if err != nil {
		return err
	}
	if warehouse == nil {
		return apperrors.ErrNotFoundWithID("warehouse", req.WarehouseID)
	}

	bundle.Warehouse = warehouse
	return nil
}

// CompanyExists resolves the company named by the request
func (v *Validators) CompanyExists(ctx context.Context, req *ActionRequest, bundle *ValidatedEntityBundle) error {
	if req.CompanyID == "" {
		return apperrors.ErrValidation("company ID must not be blank")
	}

	company, err := v.companies.Get(ctx, req.CompanyID)
	if err != nil {
		return err
	}
	if company == nil {
		return apperrors.ErrNotFoundWithID("company", req.CompanyID)
	}

	bundle.Company = company
	return nil
}

// CustomerExists resolves the customer named by the request within its company
func (v *Validators) CustomerExists(ctx context.Context, req *ActionRequest, bundle *ValidatedEntityBundle) error {
	if req.CustomerID == "" || req.CompanyID == "" {
		return apperrors.ErrValidation("customer ID and company ID must not be blank")
	}

	customer, err := v.customers.Get(ctx, req.CustomerID, req.CompanyID)
	if err != nil {
		return err
	}
	if customer == nil {
		return apperrors.ErrNotFoundWithID("customer", req.CustomerID)
	}

	bundle.Customer = customer
	return nil
}

// SKUExists resolves the SKU named by the request within its company
func (v *Validators) SKUExists(ctx context.Context, req *ActionRequest, bundle *ValidatedEntityBundle) error {
	if req.SKUCode == "" || req.CompanyID == "" {
		return apperrors.ErrValidation("SKU code and company ID must not be blank")
	}

	sku, err := v.skus.Get(ctx, req.CompanyID, req.SKUCode)
	if err != nil {
		return err
	}
	if sku == nil {
		return apperrors.ErrNotFoundWithID("SKU", req.SKUCode)
	}

	bundle.SKU = sku
	return nil
}

// InboundRunOpen resolves the inbound run and confirms it is still active
func (v *Validators) InboundRunOpen(ctx context.Context, req *ActionRequest, bundle *ValidatedEntityBundle) error {
	if req.WarehouseID == "" || req.InboundID == "" {
		return apperrors.ErrValidation("warehouse ID and inbound ID must not be blank")
	}

	run, err := v.inbounds.Get(ctx, req.WarehouseID, req.InboundID)
	if err != nil {
		return err
	}
	if run == nil {
		return apperrors.ErrNotFoundWithID("inbound run", req.InboundID)
	}
	if !run.IsOpen() {
		return apperrors.ErrActionNotAllowed("inbound run is closed").
			WithDetail("inboundId", req.InboundID)
	}

	bundle.InboundRun = run
	return nil
}

// OutboundRunOpen resolves the outbound run and confirms it is still active
func (v *Validators) OutboundRunOpen(ctx context.Context, req *ActionRequest, bundle *ValidatedEntityBundle) error {
	if req.WarehouseID == "" || req.OutboundID == "" {
		return apperrors.ErrValidation("warehouse ID and outbound ID must not be blank")
	}

	run, err := v.outbounds.Get(ctx, req.WarehouseID, req.OutboundID)
	if err != nil {
		return err
	}
	if run == nil {
		return apperrors.ErrNotFoundWithID("outbound run", req.OutboundID)
	}
	if !run.IsOpen() {
		return apperrors.ErrActionNotAllowed("outbound run is closed").
			WithDetail("outboundId", req.OutboundID)
	}

	bundle.OutboundRun = run
	return nil
}

// ContainerHasRoomForInbound resolves the container and confirms the
// requested quantity fits within the per-SKU maximum
func (v *Validators) ContainerHasRoomForInbound(ctx context.Context, req *ActionRequest, bundle *ValidatedEntityBundle) error {
	container, capacity, err := v.resolveContainer(ctx, req.WarehouseID, req.ContainerID)
	if err != nil {
		return err
	}
	if err := checkRoom(container, capacity, req.SKUCode, req.CapacityToInbound); err != nil {
		return err
	}

	bundle.Container = container
	bundle.ContainerCapacity = capacity
	return nil
}

// ContainerHasStockForOutbound resolves the container and confirms it holds
// at least the requested quantity
func (v *Validators) ContainerHasStockForOutbound(ctx context.Context, req *ActionRequest, bundle *ValidatedEntityBundle) error {
	container, capacity, err := v.resolveContainer(ctx, req.WarehouseID, req.ContainerID)
	if err != nil {
		return err
	}
	if err := checkStock(capacity, req.CapacityToOutbound); err != nil {
		return err
	}

	bundle.Container = container
	bundle.ContainerCapacity = capacity
	return nil
}

// SourceContainerHasStock validates the source side of a move
func (v *Validators) SourceContainerHasStock(ctx context.Context, req *ActionRequest, bundle *ValidatedEntityBundle) error {
	container, capacity, err := v.resolveContainer(ctx, req.WarehouseID, req.SourceContainerID)
	if err != nil {
		return err
	}
	if err := checkStock(capacity, req.CapacityToOutbound); err != nil {
		return err
	}

	bundle.SourceContainer = container
	bundle.SourceCapacity = capacity
	return nil
}

// DestinationContainerHasRoom validates the destination side of a move
func (v *Validators) DestinationContainerHasRoom(ctx context.Context, req *ActionRequest, bundle *ValidatedEntityBundle) error {
	container, capacity, err := v.resolveContainer(ctx, req.WarehouseID, req.DestinationContainerID)
	if err != nil {
		return err
	}
	if err := checkRoom(container, capacity, req.SKUCode, req.CapacityToInbound); err != nil {
		return err
	}

	bundle.DestinationContainer = container
	bundle.DestinationCapacity = capacity
	return nil
}

func (v *Validators) resolveContainer(ctx context.Context, warehouseID, containerID string) (*domain.Container, *domain.ContainerCapacity, error) {
	if warehouseID == "" || containerID == "" {
		return nil, nil, apperrors.ErrValidation("warehouse ID and container ID must not be blank")
	}

	container, capacity, err := v.containers.Get(ctx, warehouseID, containerID)
	if err != nil {
		return nil, nil, err
	}
	if container == nil || capacity == nil {
		return nil, nil, apperrors.ErrNotFoundWithID("container", containerID)
	}

	return container, capacity, nil
}

func checkRoom(container *domain.Container, capacity *domain.ContainerCapacity, skuCode string, quantity int) error {
	if skuCode == "" {
		return apperrors.ErrValidation("SKU code must not be blank")
	}
	if quantity <= 0 {
		return apperrors.ErrValidation("inbound quantity must be positive")
	}
	if capacity.Status == domain.ContainerStatusDiscontinued {
		return apperrors.ErrActionNotAllowed("container is discontinued").
			WithDetail("containerId", container.ContainerID)
	}

	max, ok := container.MaxCapacityForSKU(skuCode)
	if !ok {
		return apperrors.ErrActionNotAllowed("container is not configured for SKU").
			WithDetail("containerId", container.ContainerID).
			WithDetail("sku", skuCode)
	}

	if capacity.CurrentOccupancy+quantity > max {
		return apperrors.ErrActionNotAllowed("container capacity exceeded").
			WithDetail("containerId", container.ContainerID).
			WithDetail("requested", fmt.Sprintf("%d", quantity)).
			WithDetail("occupancy", fmt.Sprintf("%d", capacity.CurrentOccupancy)).
			WithDetail("maxCapacity", fmt.Sprintf("%d", max))
	}

	return nil
}

func checkStock(capacity *domain.ContainerCapacity, quantity int) error {
	if quantity <= 0 {
		return apperrors.ErrValidation("outbound quantity must be positive")
	}

	if quantity > capacity.CurrentOccupancy {
		return apperrors.ErrActionNotAllowed("container has insufficient stock").
			WithDetail("containerId", capacity.ContainerID).
			WithDetail("requested", fmt.Sprintf("%d", quantity)).
			WithDetail("occupancy", fmt.Sprintf("%d", capacity.CurrentOccupancy))
	}

	return nil
}
