package validation

import (
	"github.com/wms-platform/capacity-service/internal/domain"
)

// ActionKind names a proposed warehouse action
type ActionKind string

const (
	ActionStartInbound         ActionKind = "start_inbound"
	ActionEndInbound           ActionKind = "end_inbound"
	ActionStartOutbound        ActionKind = "start_outbound"
	ActionEndOutbound          ActionKind = "end_outbound"
	ActionInventoryInbound     ActionKind = "inventory_inbound"
	ActionInventoryOutbound    ActionKind = "inventory_outbound"
	ActionSKUBarcodeGeneration ActionKind = "sku_barcode_generation"
	ActionMoveInventory        ActionKind = "move_inventory"
)

// IsValid checks if the action kind is valid
func (k ActionKind) IsValid() bool {
	switch k {
	case ActionStartInbound, ActionEndInbound, ActionStartOutbound, ActionEndOutbound,
		ActionInventoryInbound, ActionInventoryOutbound, ActionSKUBarcodeGeneration,
		ActionMoveInventory:
		return true
	default:
		return false
	}
}

// ActionRequest describes a proposed warehouse action. Only the fields
// relevant to the action kind are set; requests are constructed fresh per
// call and never mutated after construction.
type ActionRequest struct {
	Kind ActionKind `json:"kind"`

	WarehouseID string `json:"warehouseId,omitempty"`
	CompanyID   string `json:"companyId,omitempty"`
	CustomerID  string `json:"customerId,omitempty"`
	SKUCode     string `json:"skuCode,omitempty"`

	ContainerID            string `json:"containerId,omitempty"`
	SourceContainerID      string `json:"sourceContainerId,omitempty"`
	DestinationContainerID string `json:"destinationContainerId,omitempty"`

	InboundID  string `json:"inboundId,omitempty"`
	OutboundID string `json:"outboundId,omitempty"`

	CapacityToInbound  int `json:"capacityToInbound,omitempty"`
	CapacityToOutbound int `json:"capacityToOutbound,omitempty"`
}

// ValidatedEntityBundle accumulates the entities a proposed action has been
// confirmed against. Validators extend it in sequence; a pipeline failure
// discards it entirely, so callers only ever see a fully validated bundle.
type ValidatedEntityBundle struct {
	Warehouse *domain.Warehouse
	Company   *domain.Company
	Customer  *domain.Customer
	SKU       *domain.SKU

	Container         *domain.Container
	ContainerCapacity *domain.ContainerCapacity

	SourceContainer         *domain.Container
	SourceCapacity          *domain.ContainerCapacity
	DestinationContainer    *domain.Container
	DestinationCapacity     *domain.ContainerCapacity

	InboundRun  *domain.InboundRun
	OutboundRun *domain.OutboundRun
}
