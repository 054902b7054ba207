package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/wms-platform/capacity-service/internal/domain"
)

// MasterDataRepository resolves warehouses, companies, customers and SKUs
// from the master data collections. These collections are written by other
// services; this repository only reads them, so every lookup returns nil
// when the record does not exist.
type MasterDataRepository struct {
	warehouses *mongo.Collection
	companies  *mongo.Collection
	customers  *mongo.Collection
	skus       *mongo.Collection
}

// NewMasterDataRepository creates a new MasterDataRepository
func NewMasterDataRepository(db *mongo.Database) *MasterDataRepository {
	return &MasterDataRepository{
		warehouses: db.Collection("warehouses"),
		companies:  db.Collection("companies"),
		customers:  db.Collection("customers"),
		skus:       db.Collection("skus"),
	}
}

// Warehouses returns the warehouse lookup view
func (r *MasterDataRepository) Warehouses() domain.WarehouseLookup { return warehouseLookup{r} }

// Companies returns the company lookup view
func (r *MasterDataRepository) Companies() domain.CompanyLookup { return companyLookup{r} }

// Customers returns the customer lookup view
func (r *MasterDataRepository) Customers() domain.CustomerLookup { return customerLookup{r} }

// SKUs returns the SKU lookup view
func (r *MasterDataRepository) SKUs() domain.SKULookup { return skuLookup{r} }

type warehouseLookup struct{ repo *MasterDataRepository }

func (l warehouseLookup) Get(ctx context.Context, warehouseID string) (*domain.Warehouse, error) {
	var warehouse domain.Warehouse
	err := l.repo.warehouses.FindOne(ctx, bson.M{"warehouseId": warehouseID}).Decode(&warehouse)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &warehouse, nil
}

type companyLookup struct{ repo *MasterDataRepository }

func (l companyLookup) Get(ctx context.Context, companyID string) (*domain.Company, error) {
	var company domain.Company
	err := l.repo.companies.FindOne(ctx, bson.M{"companyId": companyID}).Decode(&company)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &company, nil
}

type customerLookup struct{ repo *MasterDataRepository }

func (l customerLookup) Get(ctx context.Context, customerID, companyID string) (*domain.Customer, error) {
	var customer domain.Customer
	err := l.repo.customers.FindOne(ctx, bson.M{"customerId": customerID, "companyId": companyID}).Decode(&customer)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

type skuLookup struct{ repo *MasterDataRepository }

func (l skuLookup) Get(ctx context.Context, companyID, skuCode string) (*domain.SKU, error) {
	var sku domain.SKU
	err := l.repo.skus.FindOne(ctx, bson.M{"companyId": companyID, "skuCode": skuCode}).Decode(&sku)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &sku, nil
}
