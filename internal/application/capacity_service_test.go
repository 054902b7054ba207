package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wms-platform/capacity-service/internal/domain"
	apperrors "github.com/wms-platform/capacity-service/internal/pkg/errors"
	"github.com/wms-platform/capacity-service/internal/validation"
)

func (f *serviceFixture) capacityService() *CapacityService {
	ledger := NewCapacityLedger(f.containers)
	return NewCapacityService(f.pipeline, ledger, f.publisher, testLogger())
}

func (f *serviceFixture) seedContainer(t *testing.T, containerID string, occupancy int) {
	t.Helper()

	container, err := domain.NewContainer(containerID, "WH-1", map[string]int{"SKU-A": 10})
	require.NoError(t, err)
	capacity := domain.NewContainerCapacity(containerID, "WH-1")
	require.NoError(t, f.containers.Create(context.Background(), container, capacity))

	if occupancy > 0 {
		committed, err := f.containers.ConditionalUpdateOccupancy(
			context.Background(), "WH-1", containerID, 0, occupancy, domain.ContainerStatusPartiallyFilled)
		require.NoError(t, err)
		require.True(t, committed)
	}
}

func (f *serviceFixture) seedOpenRuns(t *testing.T) (inboundID, outboundID string) {
	t.Helper()

	inbound := domain.NewInboundRun("INBOUND-1", "WH-1", "user-1")
	require.NoError(t, f.inbounds.Create(context.Background(), inbound))
	outbound := domain.NewOutboundRun("OUTBOUND-1", "WH-1", "CUST-1", "user-1")
	require.NoError(t, f.outbounds.Create(context.Background(), outbound))
	return inbound.InboundID, outbound.OutboundID
}

func TestInventoryInbound(t *testing.T) {
	f := newServiceFixture()
	f.seedContainer(t, "CONTAINER-1", 4)
	inboundID, _ := f.seedOpenRuns(t)
	service := f.capacityService()

	capacity, err := service.InventoryInbound(context.Background(), InventoryInboundCommand{
		WarehouseID: "WH-1",
		CompanyID:   "CO-1",
		SKUCode:     "SKU-A",
		InboundID:   inboundID,
		ContainerID: "CONTAINER-1",
		Quantity:    3,
	})
	require.NoError(t, err)

	assert.Equal(t, 7, capacity.CurrentOccupancy)
	assert.Equal(t, 7, f.containers.occupancy("CONTAINER-1"))
	assert.Contains(t, f.publisher.eventTypes(), "capacity.reserved")
}

func TestInventoryInboundClosedRunRejected(t *testing.T) {
	f := newServiceFixture()
	f.seedContainer(t, "CONTAINER-1", 0)
	inboundID, _ := f.seedOpenRuns(t)

	run, err := f.inbounds.Get(context.Background(), "WH-1", inboundID)
	require.NoError(t, err)
	require.NoError(t, run.Close())
	require.NoError(t, f.inbounds.Update(context.Background(), run))

	service := f.capacityService()
	_, err = service.InventoryInbound(context.Background(), InventoryInboundCommand{
		WarehouseID: "WH-1",
		CompanyID:   "CO-1",
		SKUCode:     "SKU-A",
		InboundID:   inboundID,
		ContainerID: "CONTAINER-1",
		Quantity:    1,
	})
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeActionNotAllowed))
	assert.Equal(t, 0, f.containers.occupancy("CONTAINER-1"))
}

func TestInventoryOutbound(t *testing.T) {
	f := newServiceFixture()
	f.seedContainer(t, "CONTAINER-1", 4)
	_, outboundID := f.seedOpenRuns(t)
	service := f.capacityService()

	capacity, err := service.InventoryOutbound(context.Background(), InventoryOutboundCommand{
		WarehouseID: "WH-1",
		CompanyID:   "CO-1",
		SKUCode:     "SKU-A",
		OutboundID:  outboundID,
		ContainerID: "CONTAINER-1",
		Quantity:    4,
	})
	require.NoError(t, err)

	assert.Equal(t, 0, capacity.CurrentOccupancy)
	assert.Equal(t, domain.ContainerStatusAvailable, capacity.Status)
	assert.Contains(t, f.publisher.eventTypes(), "capacity.released")
}

func TestMoveInventory(t *testing.T) {
	f := newServiceFixture()
	f.seedContainer(t, "CONTAINER-1", 5)
	f.seedContainer(t, "CONTAINER-2", 0)
	service := f.capacityService()

	err := service.MoveInventory(context.Background(), MoveInventoryCommand{
		WarehouseID:            "WH-1",
		CompanyID:              "CO-1",
		SKUCode:                "SKU-A",
		SourceContainerID:      "CONTAINER-1",
		DestinationContainerID: "CONTAINER-2",
		Quantity:               3,
	})
	require.NoError(t, err)

	assert.Equal(t, 2, f.containers.occupancy("CONTAINER-1"))
	assert.Equal(t, 3, f.containers.occupancy("CONTAINER-2"))
	assert.Contains(t, f.publisher.eventTypes(), "capacity.inventory.moved")
}

func TestMoveInventoryInsufficientSourceStock(t *testing.T) {
	f := newServiceFixture()
	f.seedContainer(t, "CONTAINER-1", 2)
	f.seedContainer(t, "CONTAINER-2", 0)
	service := f.capacityService()

	err := service.MoveInventory(context.Background(), MoveInventoryCommand{
		WarehouseID:            "WH-1",
		CompanyID:              "CO-1",
		SKUCode:                "SKU-A",
		SourceContainerID:      "CONTAINER-1",
		DestinationContainerID: "CONTAINER-2",
		Quantity:               3,
	})
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeActionNotAllowed))

	// Neither side changed.
	assert.Equal(t, 2, f.containers.occupancy("CONTAINER-1"))
	assert.Equal(t, 0, f.containers.occupancy("CONTAINER-2"))
}

func TestMoveDestinationConflictLeavesSourceCommitted(t *testing.T) {
	f := newServiceFixture()
	f.seedContainer(t, "CONTAINER-1", 5)
	f.seedContainer(t, "CONTAINER-2", 0)
	ledger := NewCapacityLedger(f.containers)

	sourceContainer, sourceCapacity, err := f.containers.Get(context.Background(), "WH-1", "CONTAINER-1")
	require.NoError(t, err)
	destContainer, destCapacity, err := f.containers.Get(context.Background(), "WH-1", "CONTAINER-2")
	require.NoError(t, err)

	// A concurrent writer changes the destination after the bundle
	// observed occupancy 0 but before the destination commit.
	committed, err := f.containers.ConditionalUpdateOccupancy(
		context.Background(), "WH-1", "CONTAINER-2", 0, 1, domain.ContainerStatusPartiallyFilled)
	require.NoError(t, err)
	require.True(t, committed)

	_, err = ledger.ReleaseForOutbound(context.Background(), sourceContainer, sourceCapacity, 3)
	require.NoError(t, err)

	_, err = ledger.ReserveForInbound(context.Background(), destContainer, destCapacity, "SKU-A", 3)
	require.Error(t, err)
	assert.True(t, apperrors.IsRetriable(err))

	// The source release stays committed and the loser's destination
	// delta never landed. The caller re-validates before retrying.
	assert.Equal(t, 2, f.containers.occupancy("CONTAINER-1"))
	assert.Equal(t, 1, f.containers.occupancy("CONTAINER-2"))
}

func TestValidateActionDryRun(t *testing.T) {
	f := newServiceFixture()
	f.seedContainer(t, "CONTAINER-1", 4)
	inboundID, _ := f.seedOpenRuns(t)
	service := f.capacityService()

	bundle, err := service.ValidateAction(context.Background(), &validation.ActionRequest{
		Kind:              validation.ActionInventoryInbound,
		WarehouseID:       "WH-1",
		CompanyID:         "CO-1",
		SKUCode:           "SKU-A",
		InboundID:         inboundID,
		ContainerID:       "CONTAINER-1",
		CapacityToInbound: 2,
	})
	require.NoError(t, err)
	require.NotNil(t, bundle.Container)

	// Dry run never mutates.
	assert.Equal(t, 4, f.containers.occupancy("CONTAINER-1"))
}

func TestValidateActionBarcodeGeneration(t *testing.T) {
	f := newServiceFixture()
	service := f.capacityService()

	bundle, err := service.ValidateAction(context.Background(), &validation.ActionRequest{
		Kind:      validation.ActionSKUBarcodeGeneration,
		CompanyID: "CO-1",
		SKUCode:   "SKU-A",
	})
	require.NoError(t, err)
	require.NotNil(t, bundle.SKU)
}
