package application

// StartInboundCommand starts an inbound run for a warehouse
type StartInboundCommand struct {
	WarehouseID string `json:"warehouseId" binding:"required"`
	CompanyID   string `json:"companyId" binding:"required"`
	UserID      string `json:"userId" binding:"required"`
}

// EndInboundCommand closes an inbound run
type EndInboundCommand struct {
	WarehouseID string `json:"warehouseId" binding:"required"`
	InboundID   string `json:"inboundId" binding:"required"`
}

// StartOutboundCommand starts an outbound run for a customer
type StartOutboundCommand struct {
	WarehouseID string `json:"warehouseId" binding:"required"`
	CompanyID   string `json:"companyId" binding:"required"`
	CustomerID  string `json:"customerId" binding:"required"`
	UserID      string `json:"userId" binding:"required"`
}

// EndOutboundCommand closes an outbound run
type EndOutboundCommand struct {
	WarehouseID string `json:"warehouseId" binding:"required"`
	OutboundID  string `json:"outboundId" binding:"required"`
}

// RegisterContainerCommand registers a new container with its per-SKU
// maximum capacities
type RegisterContainerCommand struct {
	WarehouseID       string         `json:"warehouseId" binding:"required"`
	PerSKUMaxCapacity map[string]int `json:"perSkuMaxCapacity" binding:"required"`
}

// InventoryInboundCommand books a quantity of a SKU into a container during
// an open inbound run
type InventoryInboundCommand struct {
	WarehouseID string `json:"warehouseId" binding:"required"`
	CompanyID   string `json:"companyId" binding:"required"`
	SKUCode     string `json:"skuCode" binding:"required"`
	InboundID   string `json:"inboundId" binding:"required"`
	ContainerID string `json:"containerId" binding:"required"`
	Quantity    int    `json:"quantity" binding:"required,min=1"`
}

// InventoryOutboundCommand ships a quantity of a SKU out of a container
// during an open outbound run
type InventoryOutboundCommand struct {
	WarehouseID string `json:"warehouseId" binding:"required"`
	CompanyID   string `json:"companyId" binding:"required"`
	SKUCode     string `json:"skuCode" binding:"required"`
	OutboundID  string `json:"outboundId" binding:"required"`
	ContainerID string `json:"containerId" binding:"required"`
	Quantity    int    `json:"quantity" binding:"required,min=1"`
}

// MoveInventoryCommand moves a quantity of a SKU between two containers in
// the same warehouse
type MoveInventoryCommand struct {
	WarehouseID            string `json:"warehouseId" binding:"required"`
	CompanyID              string `json:"companyId" binding:"required"`
	SKUCode                string `json:"skuCode" binding:"required"`
	SourceContainerID      string `json:"sourceContainerId" binding:"required"`
	DestinationContainerID string `json:"destinationContainerId" binding:"required"`
	Quantity               int    `json:"quantity" binding:"required,min=1"`
}
