package domain

import "time"

// DomainEvent interface for domain events
type DomainEvent interface {
	EventType() string
	OccurredAt() time.Time
}

// ContainerRegisteredEvent is emitted when a new container is registered
type ContainerRegisteredEvent struct {
	ContainerID string    `json:"containerId"`
	WarehouseID string    `json:"warehouseId"`
	MaxCapacity int       `json:"maxCapacity"`
	OccurredAt_ time.Time `json:"occurredAt"`
}

func (e *ContainerRegisteredEvent) EventType() string     { return "capacity.container.registered" }
func (e *ContainerRegisteredEvent) OccurredAt() time.Time { return e.OccurredAt_ }

// CapacityReservedEvent is emitted after an inbound delta is committed
type CapacityReservedEvent struct {
	ContainerID  string          `json:"containerId"`
	WarehouseID  string          `json:"warehouseId"`
	SKUCode      string          `json:"skuCode"`
	Quantity     int             `json:"quantity"`
	NewOccupancy int             `json:"newOccupancy"`
	NewStatus    ContainerStatus `json:"newStatus"`
	OccurredAt_  time.Time       `json:"occurredAt"`
}

func (e *CapacityReservedEvent) EventType() string     { return "capacity.reserved" }
func (e *CapacityReservedEvent) OccurredAt() time.Time { return e.OccurredAt_ }

// CapacityReleasedEvent is emitted after an outbound delta is committed
type CapacityReleasedEvent struct {
	ContainerID  string          `json:"containerId"`
	WarehouseID  string          `json:"warehouseId"`
	Quantity     int             `json:"quantity"`
	NewOccupancy int             `json:"newOccupancy"`
	NewStatus    ContainerStatus `json:"newStatus"`
	OccurredAt_  time.Time       `json:"occurredAt"`
}

func (e *CapacityReleasedEvent) EventType() string     { return "capacity.released" }
func (e *CapacityReleasedEvent) OccurredAt() time.Time { return e.OccurredAt_ }

// InventoryMovedEvent is emitted after inventory moves between containers
type InventoryMovedEvent struct {
	WarehouseID            string    `json:"warehouseId"`
	SKUCode                string    `json:"skuCode"`
	Quantity               int       `json:"quantity"`
	SourceContainerID      string    `json:"sourceContainerId"`
	DestinationContainerID string    `json:"destinationContainerId"`
	OccurredAt_            time.Time `json:"occurredAt"`
}

func (e *InventoryMovedEvent) EventType() string     { return "capacity.inventory.moved" }
func (e *InventoryMovedEvent) OccurredAt() time.Time { return e.OccurredAt_ }

// InboundStartedEvent is emitted when an inbound run starts
type InboundStartedEvent struct {
	InboundID   string    `json:"inboundId"`
	WarehouseID string    `json:"warehouseId"`
	UserID      string    `json:"userId"`
	OccurredAt_ time.Time `json:"occurredAt"`
}

func (e *InboundStartedEvent) EventType() string     { return "capacity.inbound.started" }
func (e *InboundStartedEvent) OccurredAt() time.Time { return e.OccurredAt_ }

// InboundClosedEvent is emitted when an inbound run ends
type InboundClosedEvent struct {
	InboundID   string    `json:"inboundId"`
	WarehouseID string    `json:"warehouseId"`
	OccurredAt_ time.Time `json:"occurredAt"`
}

func (e *InboundClosedEvent) EventType() string     { return "capacity.inbound.closed" }
func (e *InboundClosedEvent) OccurredAt() time.Time { return e.OccurredAt_ }

// OutboundStartedEvent is emitted when an outbound run starts
type OutboundStartedEvent struct {
	OutboundID  string    `json:"outboundId"`
	WarehouseID string    `json:"warehouseId"`
	CustomerID  string    `json:"customerId"`
	UserID      string    `json:"userId"`
	OccurredAt_ time.Time `json:"occurredAt"`
}

func (e *OutboundStartedEvent) EventType() string     { return "capacity.outbound.started" }
func (e *OutboundStartedEvent) OccurredAt() time.Time { return e.OccurredAt_ }

// OutboundClosedEvent is emitted when an outbound run ends
type OutboundClosedEvent struct {
	OutboundID  string    `json:"outboundId"`
	WarehouseID string    `json:"warehouseId"`
	OccurredAt_ time.Time `json:"occurredAt"`
}

func (e *OutboundClosedEvent) EventType() string     { return "capacity.outbound.closed" }
func (e *OutboundClosedEvent) OccurredAt() time.Time { return e.OccurredAt_ }
