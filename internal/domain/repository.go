package domain

import (
	"context"
	"errors"
)

// ErrDuplicateID is returned by Create operations when the candidate
// identifier already exists. Callers allocating sequential IDs re-read the
// latest ID and retry on this error.
var ErrDuplicateID = errors.New("identifier already exists")

// Lookup collaborators for master data. All Get methods return (nil, nil)
// when the entity does not exist.

// WarehouseLookup resolves warehouses by ID
type WarehouseLookup interface {
	Get(ctx context.Context, warehouseID string) (*Warehouse, error)
}

// CompanyLookup resolves companies by ID
type CompanyLookup interface {
	Get(ctx context.Context, companyID string) (*Company, error)
}

// CustomerLookup resolves customers by ID within a company
type CustomerLookup interface {
	Get(ctx context.Context, customerID, companyID string) (*Customer, error)
}

// SKULookup resolves SKUs by code within a company
type SKULookup interface {
	Get(ctx context.Context, companyID, skuCode string) (*SKU, error)
}

// ContainerStore persists container configuration and capacity. The store is
// the single point of coordination between concurrent writers: occupancy
// updates are conditional on the expected current value, and creation is
// conditional on the ID being absent.
type ContainerStore interface {
	// Get returns the container configuration and its capacity row, or
	// (nil, nil, nil) when the container does not exist
	Get(ctx context.Context, warehouseID, containerID string) (*Container, *ContainerCapacity, error)

	// GetLastForWarehouse returns the most recently created container for
	// the warehouse, or nil when none exists
	GetLastForWarehouse(ctx context.Context, warehouseID string) (*Container, error)

	// Create persists a new container and its capacity row. Returns
	// ErrDuplicateID when the container ID is already taken.
	Create(ctx context.Context, container *Container, capacity *ContainerCapacity) error

	// ConditionalUpdateOccupancy commits a new occupancy and status only if
	// the stored occupancy still equals expectedOccupancy. Returns false
	// when another writer got there first; the caller must re-validate and
	// retry.
	ConditionalUpdateOccupancy(ctx context.Context, warehouseID, containerID string, expectedOccupancy, newOccupancy int, newStatus ContainerStatus) (bool, error)
}

// InboundStore persists inbound runs
type InboundStore interface {
	// Get returns the run, or nil when it does not exist
	Get(ctx context.Context, warehouseID, inboundID string) (*InboundRun, error)

	// GetLastForWarehouse returns the most recently created run for the
	// warehouse, or nil when none exists
	GetLastForWarehouse(ctx context.Context, warehouseID string) (*InboundRun, error)

	// Create persists a new run. Returns ErrDuplicateID when the run ID is
	// already taken.
	Create(ctx context.Context, run *InboundRun) error

	// Update persists run mutations (status transition, end time)
	Update(ctx context.Context, run *InboundRun) error
}

// OutboundStore persists outbound runs
type OutboundStore interface {
	// Get returns the run, or nil when it does not exist
	Get(ctx context.Context, warehouseID, outboundID string) (*OutboundRun, error)

	// GetLastForWarehouse returns the most recently created run for the
	// warehouse, or nil when none exists
	GetLastForWarehouse(ctx context.Context, warehouseID string) (*OutboundRun, error)

	// Create persists a new run. Returns ErrDuplicateID when the run ID is
	// already taken.
	Create(ctx context.Context, run *OutboundRun) error

	// Update persists run mutations (status transition, end time)
	Update(ctx context.Context, run *OutboundRun) error
}

// EventPublisher defines the interface for publishing domain events
type EventPublisher interface {
	// Publish publishes a domain event
	Publish(ctx context.Context, event DomainEvent) error

	// PublishAll publishes multiple domain events
	PublishAll(ctx context.Context, events []DomainEvent) error
}
