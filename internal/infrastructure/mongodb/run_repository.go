package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/wms-platform/capacity-service/internal/domain"
)

// InboundRunRepository implements domain.InboundStore on MongoDB
type InboundRunRepository struct {
	collection *mongo.Collection
}

// NewInboundRunRepository creates a new InboundRunRepository
func NewInboundRunRepository(db *mongo.Database) *InboundRunRepository {
	repo := &InboundRunRepository{collection: db.Collection("inbound_runs")}
	repo.ensureIndexes(context.Background())
	return repo
}

func (r *InboundRunRepository) ensureIndexes(ctx context.Context) {
	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "warehouseId", Value: 1}, {Key: "inboundId", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "warehouseId", Value: 1}, {Key: "startTime", Value: -1}}},
	}
	r.collection.Indexes().CreateMany(ctx, indexes)
}

// Get returns the inbound run, or nil when absent
func (r *InboundRunRepository) Get(ctx context.Context, warehouseID, inboundID string) (*domain.InboundRun, error) {
	var run domain.InboundRun
	err := r.collection.FindOne(ctx, bson.M{"warehouseId": warehouseID, "inboundId": inboundID}).Decode(&run)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &run, nil
}

// GetLastForWarehouse returns the most recently started inbound run
func (r *InboundRunRepository) GetLastForWarehouse(ctx context.Context, warehouseID string) (*domain.InboundRun, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "startTime", Value: -1}})

	var run domain.InboundRun
	err := r.collection.FindOne(ctx, bson.M{"warehouseId": warehouseID}, opts).Decode(&run)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &run, nil
}

// Create inserts a new inbound run. A duplicate key on the
// (warehouseId, inboundId) index is reported as domain.ErrDuplicateID.
func (r *InboundRunRepository) Create(ctx context.Context, run *domain.InboundRun) error {
	_, err := r.collection.InsertOne(ctx, run)
	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("inbound run %s: %w", run.InboundID, domain.ErrDuplicateID)
	}
	return err
}

// Update replaces an existing inbound run
func (r *InboundRunRepository) Update(ctx context.Context, run *domain.InboundRun) error {
	filter := bson.M{"warehouseId": run.WarehouseID, "inboundId": run.InboundID}
	result, err := r.collection.ReplaceOne(ctx, filter, run)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("inbound run %s not found for update", run.InboundID)
	}
	return nil
}

// OutboundRunRepository implements domain.OutboundStore on MongoDB
type OutboundRunRepository struct {
	collection *mongo.Collection
}

// NewOutboundRunRepository creates a new OutboundRunRepository
func NewOutboundRunRepository(db *mongo.Database) *OutboundRunRepository {
	repo := &OutboundRunRepository{collection: db.Collection("outbound_runs")}
	repo.ensureIndexes(context.Background())
	return repo
}

func (r *OutboundRunRepository) ensureIndexes(ctx context.Context) {
	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "warehouseId", Value: 1}, {Key: "outboundId", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "warehouseId", Value: 1}, {Key: "startTime", Value: -1}}},
	}
	r.collection.Indexes().CreateMany(ctx, indexes)
}

// Get returns the outbound run, or nil when absent
func (r *OutboundRunRepository) Get(ctx context.Context, warehouseID, outboundID string) (*domain.OutboundRun, error) {
	var run domain.OutboundRun
	err := r.collection.FindOne(ctx, bson.M{"warehouseId": warehouseID, "outboundId": outboundID}).Decode(&run)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &run, nil
}

// GetLastForWarehouse returns the most recently started outbound run
func (r *OutboundRunRepository) GetLastForWarehouse(ctx context.Context, warehouseID string) (*domain.OutboundRun, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "startTime", Value: -1}})

	var run domain.OutboundRun
	err := r.collection.FindOne(ctx, bson.M{"warehouseId": warehouseID}, opts).Decode(&run)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &run, nil
}

// Create inserts a new outbound run. A duplicate key on the
// (warehouseId, outboundId) index is reported as domain.ErrDuplicateID.
func (r *OutboundRunRepository) Create(ctx context.Context, run *domain.OutboundRun) error {
	_, err := r.collection.InsertOne(ctx, run)
	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("outbound run %s: %w", run.OutboundID, domain.ErrDuplicateID)
	}
	return err
}

// Update replaces an existing outbound run
func (r *OutboundRunRepository) Update(ctx context.Context, run *domain.OutboundRun) error {
	filter := bson.M{"warehouseId": run.WarehouseID, "outboundId": run.OutboundID}
	result, err := r.collection.ReplaceOne(ctx, filter, run)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("outbound run %s not found for update", run.OutboundID)
	}
	return nil
}
