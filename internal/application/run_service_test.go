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

type serviceFixture struct {
	containers *memContainerStore
	inbounds   *memInboundStore
	outbounds  *memOutboundStore
	publisher  *memPublisher
	pipeline   *validation.Pipeline
}

func newServiceFixture() *serviceFixture {
	f := &serviceFixture{
		containers: newMemContainerStore(),
		inbounds:   newMemInboundStore(),
		outbounds:  newMemOutboundStore(),
		publisher:  &memPublisher{},
	}

	validators := validation.NewValidators(
		&memWarehouseLookup{warehouses: map[string]*domain.Warehouse{
			"WH-1": {WarehouseID: "WH-1", CompanyID: "CO-1"},
		}},
		&memCompanyLookup{companies: map[string]*domain.Company{
			"CO-1": {CompanyID: "CO-1"},
		}},
		&memCustomerLookup{customers: map[string]*domain.Customer{
			"CUST-1": {CustomerID: "CUST-1", CompanyID: "CO-1"},
		}},
		&memSKULookup{skus: map[string]*domain.SKU{
			"SKU-A": {SKUCode: "SKU-A", CompanyID: "CO-1"},
		}},
		f.containers,
		f.inbounds,
		f.outbounds,
	)
	f.pipeline = validation.NewPipeline(validators)
	return f
}

func (f *serviceFixture) runService() *RunService {
	return NewRunService(f.pipeline, f.inbounds, f.outbounds, f.publisher, testLogger())
}

func TestStartInboundAllocatesSequentialIDs(t *testing.T) {
	f := newServiceFixture()
	service := f.runService()

	first, err := service.StartInbound(context.Background(), StartInboundCommand{
		WarehouseID: "WH-1", CompanyID: "CO-1", UserID: "user-1",
	})
	require.NoError(t, err)
	assert.Equal(t, "INBOUND-1", first.InboundID)
	assert.Equal(t, domain.RunStatusActive, first.Status)

	second, err := service.StartInbound(context.Background(), StartInboundCommand{
		WarehouseID: "WH-1", CompanyID: "CO-1", UserID: "user-2",
	})
	require.NoError(t, err)
	assert.Equal(t, "INBOUND-2", second.InboundID)

	assert.Contains(t, f.publisher.eventTypes(), "capacity.inbound.started")
}

func TestStartInboundUnknownWarehouse(t *testing.T) {
	f := newServiceFixture()
	service := f.runService()

	_, err := service.StartInbound(context.Background(), StartInboundCommand{
		WarehouseID: "WH-MISSING", CompanyID: "CO-1", UserID: "user-1",
	})
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeNotFound))
	assert.Equal(t, 0, f.inbounds.createCalls)
}

func TestStartInboundRetriesOnDuplicateID(t *testing.T) {
	f := newServiceFixture()
	f.inbounds.forceDuplicates = 2
	service := f.runService()

	run, err := service.StartInbound(context.Background(), StartInboundCommand{
		WarehouseID: "WH-1", CompanyID: "CO-1", UserID: "user-1",
	})
	require.NoError(t, err)
	assert.Equal(t, "INBOUND-1", run.InboundID)
	assert.Equal(t, 3, f.inbounds.createCalls)
}

func TestStartInboundGivesUpAfterExhaustedRetries(t *testing.T) {
	f := newServiceFixture()
	f.inbounds.forceDuplicates = maxIDAllocationAttempts
	service := f.runService()

	_, err := service.StartInbound(context.Background(), StartInboundCommand{
		WarehouseID: "WH-1", CompanyID: "CO-1", UserID: "user-1",
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsRetriable(err))
	assert.Equal(t, maxIDAllocationAttempts, f.inbounds.createCalls)
}

func TestEndInbound(t *testing.T) {
	f := newServiceFixture()
	service := f.runService()

	run, err := service.StartInbound(context.Background(), StartInboundCommand{
		WarehouseID: "WH-1", CompanyID: "CO-1", UserID: "user-1",
	})
	require.NoError(t, err)

	closed, err := service.EndInbound(context.Background(), EndInboundCommand{
		WarehouseID: "WH-1", InboundID: run.InboundID,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.RunStatusClosed, closed.Status)
	require.NotNil(t, closed.EndTime)

	stored, err := f.inbounds.Get(context.Background(), "WH-1", run.InboundID)
	require.NoError(t, err)
	assert.Equal(t, domain.RunStatusClosed, stored.Status)
}

func TestEndInboundAlreadyClosed(t *testing.T) {
	f := newServiceFixture()
	service := f.runService()

	run, err := service.StartInbound(context.Background(), StartInboundCommand{
		WarehouseID: "WH-1", CompanyID: "CO-1", UserID: "user-1",
	})
	require.NoError(t, err)

	_, err = service.EndInbound(context.Background(), EndInboundCommand{
		WarehouseID: "WH-1", InboundID: run.InboundID,
	})
	require.NoError(t, err)

	_, err = service.EndInbound(context.Background(), EndInboundCommand{
		WarehouseID: "WH-1", InboundID: run.InboundID,
	})
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeActionNotAllowed))
}

func TestStartOutboundRequiresCustomer(t *testing.T) {
	f := newServiceFixture()
	service := f.runService()

	_, err := service.StartOutbound(context.Background(), StartOutboundCommand{
		WarehouseID: "WH-1", CompanyID: "CO-1", CustomerID: "CUST-MISSING", UserID: "user-1",
	})
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeNotFound))
	assert.Equal(t, 0, f.outbounds.createCalls)
}

func TestOutboundRunLifecycleThroughService(t *testing.T) {
	f := newServiceFixture()
	service := f.runService()

	run, err := service.StartOutbound(context.Background(), StartOutboundCommand{
		WarehouseID: "WH-1", CompanyID: "CO-1", CustomerID: "CUST-1", UserID: "user-1",
	})
	require.NoError(t, err)
	assert.Equal(t, "OUTBOUND-1", run.OutboundID)
	assert.Equal(t, "CUST-1", run.CustomerID)

	closed, err := service.EndOutbound(context.Background(), EndOutboundCommand{
		WarehouseID: "WH-1", OutboundID: run.OutboundID,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.RunStatusClosed, closed.Status)

	types := f.publisher.eventTypes()
	assert.Contains(t, types, "capacity.outbound.started")
	assert.Contains(t, types, "capacity.outbound.closed")
}

func TestGetInboundNotFound(t *testing.T) {
	f := newServiceFixture()
	service := f.runService()

	_, err := service.GetInbound(context.Background(), "WH-1", "INBOUND-404")
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeNotFound))
}

func TestPublishFailureDoesNotFailOperation(t *testing.T) {
	f := newServiceFixture()
	f.publisher.err = assert.AnError
	service := f.runService()

	run, err := service.StartInbound(context.Background(), StartInboundCommand{
		WarehouseID: "WH-1", CompanyID: "CO-1", UserID: "user-1",
	})
	require.NoError(t, err)
	assert.Equal(t, "INBOUND-1", run.InboundID)
}
