package application

import (
	"context"
	"io"
	"sync"

	"github.com/wms-platform/capacity-service/internal/domain"
	"github.com/wms-platform/capacity-service/internal/pkg/logging"
)

func testLogger() *logging.Logger {
	config := logging.DefaultConfig("capacity-service-test")
	config.Output = io.Discard
	return logging.New(config)
}

type memWarehouseLookup struct {
	warehouses map[string]*domain.Warehouse
}

func (f *memWarehouseLookup) Get(ctx context.Context, warehouseID string) (*domain.Warehouse, error) {
	return f.warehouses[warehouseID], nil
}

type memCompanyLookup struct {
	companies map[string]*domain.Company
}

func (f *memCompanyLookup) Get(ctx context.Context, companyID string) (*domain.Company, error) {
	return f.companies[companyID], nil
}

type memCustomerLookup struct {
	customers map[string]*domain.Customer
}

func (f *memCustomerLookup) Get(ctx context.Context, customerID, companyID string) (*domain.Customer, error) {
	customer := f.customers[customerID]
	if customer != nil && customer.CompanyID != companyID {
		return nil, nil
	}
	return customer, nil
}

type memSKULookup struct {
	skus map[string]*domain.SKU
}

func (f *memSKULookup) Get(ctx context.Context, companyID, skuCode string) (*domain.SKU, error) {
	sku := f.skus[skuCode]
	if sku != nil && sku.CompanyID != companyID {
		return nil, nil
	}
	return sku, nil
}

type memContainerRecord struct {
	container *domain.Container
	capacity  *domain.ContainerCapacity
}

// memContainerStore is a thread-safe in-memory ContainerStore with the same
// conditional-write semantics as the MongoDB repository
type memContainerStore struct {
	mu      sync.Mutex
	records map[string]*memContainerRecord
	order   []string

	// forceDuplicates makes the next N Create calls fail with ErrDuplicateID
	forceDuplicates int
	createCalls     int
}

func newMemContainerStore() *memContainerStore {
	return &memContainerStore{records: make(map[string]*memContainerRecord)}
}

func (f *memContainerStore) Get(ctx context.Context, warehouseID, containerID string) (*domain.Container, *domain.ContainerCapacity, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	record := f.records[containerID]
	if record == nil || record.container.WarehouseID != warehouseID {
		return nil, nil, nil
	}

	containerCopy := *record.container
	capacityCopy := *record.capacity
	return &containerCopy, &capacityCopy, nil
}

func (f *memContainerStore) GetLastForWarehouse(ctx context.Context, warehouseID string) (*domain.Container, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for i := len(f.order) - 1; i >= 0; i-- {
		record := f.records[f.order[i]]
		if record.container.WarehouseID == warehouseID {
			containerCopy := *record.container
			return &containerCopy, nil
		}
	}
	return nil, nil
}

func (f *memContainerStore) Create(ctx context.Context, container *domain.Container, capacity *domain.ContainerCapacity) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.createCalls++
	if f.forceDuplicates > 0 {
		f.forceDuplicates--
		return domain.ErrDuplicateID
	}
	if _, exists := f.records[container.ContainerID]; exists {
		return domain.ErrDuplicateID
	}

	f.records[container.ContainerID] = &memContainerRecord{container: container, capacity: capacity}
	f.order = append(f.order, container.ContainerID)
	return nil
}

func (f *memContainerStore) ConditionalUpdateOccupancy(ctx context.Context, warehouseID, containerID string, expectedOccupancy, newOccupancy int, newStatus domain.ContainerStatus) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	record := f.records[containerID]
	if record == nil || record.container.WarehouseID != warehouseID {
		return false, nil
	}
	if record.capacity.CurrentOccupancy != expectedOccupancy {
		return false, nil
	}

	record.capacity.CurrentOccupancy = newOccupancy
	record.capacity.Status = newStatus
	return true, nil
}

func (f *memContainerStore) occupancy(containerID string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.records[containerID].capacity.CurrentOccupancy
}

func (f *memContainerStore) status(containerID string) domain.ContainerStatus {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.records[containerID].capacity.Status
}

type memInboundStore struct {
	mu    sync.Mutex
	runs  map[string]*domain.InboundRun
	order []string

	forceDuplicates int
	createCalls     int
}

func newMemInboundStore() *memInboundStore {
	return &memInboundStore{runs: make(map[string]*domain.InboundRun)}
}

func (f *memInboundStore) Get(ctx context.Context, warehouseID, inboundID string) (*domain.InboundRun, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	run := f.runs[inboundID]
	if run == nil || run.WarehouseID != warehouseID {
		return nil, nil
	}
	runCopy := *run
	return &runCopy, nil
}

func (f *memInboundStore) GetLastForWarehouse(ctx context.Context, warehouseID string) (*domain.InboundRun, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for i := len(f.order) - 1; i >= 0; i-- {
		run := f.runs[f.order[i]]
		if run.WarehouseID == warehouseID {
			runCopy := *run
			return &runCopy, nil
		}
	}
	return nil, nil
}

func (f *memInboundStore) Create(ctx context.Context, run *domain.InboundRun) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.createCalls++
	if f.forceDuplicates > 0 {
		f.forceDuplicates--
		return domain.ErrDuplicateID
	}
	if _, exists := f.runs[run.InboundID]; exists {
		return domain.ErrDuplicateID
	}

	f.runs[run.InboundID] = run
	f.order = append(f.order, run.InboundID)
	return nil
}

func (f *memInboundStore) Update(ctx context.Context, run *domain.InboundRun) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.runs[run.InboundID] = run
	return nil
}

type memOutboundStore struct {
	mu    sync.Mutex
	runs  map[string]*domain.OutboundRun
	order []string

	forceDuplicates int
	createCalls     int
}

func newMemOutboundStore() *memOutboundStore {
	return &memOutboundStore{runs: make(map[string]*domain.OutboundRun)}
}

func (f *memOutboundStore) Get(ctx context.Context, warehouseID, outboundID string) (*domain.OutboundRun, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	run := f.runs[outboundID]
	if run == nil || run.WarehouseID != warehouseID {
		return nil, nil
	}
	runCopy := *run
	return &runCopy, nil
}

func (f *memOutboundStore) GetLastForWarehouse(ctx context.Context, warehouseID string) (*domain.OutboundRun, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for i := len(f.order) - 1; i >= 0; i-- {
		run := f.runs[f.order[i]]
		if run.WarehouseID == warehouseID {
			runCopy := *run
			return &runCopy, nil
		}
	}
	return nil, nil
}

func (f *memOutboundStore) Create(ctx context.Context, run *domain.OutboundRun) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.createCalls++
	if f.forceDuplicates > 0 {
		f.forceDuplicates--
		return domain.ErrDuplicateID
	}
	if _, exists := f.runs[run.OutboundID]; exists {
		return domain.ErrDuplicateID
	}

	f.runs[run.OutboundID] = run
	f.order = append(f.order, run.OutboundID)
	return nil
}

func (f *memOutboundStore) Update(ctx context.Context, run *domain.OutboundRun) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.runs[run.OutboundID] = run
	return nil
}

// memPublisher records published events
type memPublisher struct {
	mu     sync.Mutex
	events []domain.DomainEvent
	err    error
}

func (f *memPublisher) Publish(ctx context.Context, event domain.DomainEvent) error {
	if f.err != nil {
		return f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, event)
	return nil
}

func (f *memPublisher) PublishAll(ctx context.Context, events []domain.DomainEvent) error {
	if f.err != nil {
		return f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, events...)
	return nil
}

func (f *memPublisher) eventTypes() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	types := make([]string, 0, len(f.events))
	for _, event := range f.events {
		types = append(types, event.EventType())
	}
	return types
}
