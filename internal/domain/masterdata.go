package domain

import "time"

// Master data resolved by the lookup collaborators. These records are owned
// by other services; this service only reads them during validation.

// Warehouse represents a physical warehouse
type Warehouse struct {
	WarehouseID string    `bson:"warehouseId" json:"warehouseId"`
	CompanyID   string    `bson:"companyId" json:"companyId"`
	Name        string    `bson:"name" json:"name"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
}

// Company represents a company owning warehouses and SKUs
type Company struct {
	CompanyID string    `bson:"companyId" json:"companyId"`
	Name      string    `bson:"name" json:"name"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}

// Customer represents a customer of a company, scoped by company ID
type Customer struct {
	CustomerID string    `bson:"customerId" json:"customerId"`
	CompanyID  string    `bson:"companyId" json:"companyId"`
	Name       string    `bson:"name" json:"name"`
	CreatedAt  time.Time `bson:"createdAt" json:"createdAt"`
}

// SKU represents a stock keeping unit registered by a company
type SKU struct {
	SKUCode     string    `bson:"skuCode" json:"skuCode"`
	CompanyID   string    `bson:"companyId" json:"companyId"`
	Description string    `bson:"description,omitempty" json:"description,omitempty"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
}
