package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/wms-platform/capacity-service/internal/domain"
)

// containerDocument stores the immutable container configuration together
// with its capacity row in a single document, so registration is a single
// conditional insert and occupancy updates are a single conditional update.
type containerDocument struct {
	ContainerID       string         `bson:"containerId"`
	WarehouseID       string         `bson:"warehouseId"`
	PerSKUMaxCapacity map[string]int `bson:"perSkuMaxCapacity"`
	Capacity          capacitySubdoc `bson:"capacity"`
	CreatedAt         time.Time      `bson:"createdAt"`
}

type capacitySubdoc struct {
	CurrentOccupancy int                    `bson:"currentOccupancy"`
	Status           domain.ContainerStatus `bson:"status"`
	CreatedAt        time.Time              `bson:"createdAt"`
	ModifiedAt       time.Time              `bson:"modifiedAt"`
}

// ContainerRepository implements domain.ContainerStore on MongoDB
type ContainerRepository struct {
	collection *mongo.Collection
}

// NewContainerRepository creates a new ContainerRepository
func NewContainerRepository(db *mongo.Database) *ContainerRepository {
	repo := &ContainerRepository{collection: db.Collection("containers")}
	repo.ensureIndexes(context.Background())
	return repo
}

func (r *ContainerRepository) ensureIndexes(ctx context.Context) {
	indexes := []mongo.IndexModel{
		// The unique index is what makes sequential ID allocation safe:
		// Create is insert-if-absent, and a lost race is a duplicate key.
		{Keys: bson.D{{Key: "warehouseId", Value: 1}, {Key: "containerId", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "warehouseId", Value: 1}, {Key: "createdAt", Value: -1}}},
	}
	r.collection.Indexes().CreateMany(ctx, indexes)
}

// Get returns the container and its capacity row, or nils when absent
func (r *ContainerRepository) Get(ctx context.Context, warehouseID, containerID string) (*domain.Container, *domain.ContainerCapacity, error) {
	var doc containerDocument
	err := r.collection.FindOne(ctx, bson.M{"warehouseId": warehouseID, "containerId": containerID}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, err
	}

	container, capacity := doc.toDomain()
	return container, capacity, nil
}

// GetLastForWarehouse returns the most recently created container
func (r *ContainerRepository) GetLastForWarehouse(ctx context.Context, warehouseID string) (*domain.Container, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	var doc containerDocument
	err := r.collection.FindOne(ctx, bson.M{"warehouseId": warehouseID}, opts).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	container, _ := doc.toDomain()
	return container, nil
}

// Create inserts a new container with its capacity row. A duplicate key on
// the (warehouseId, containerId) index is reported as domain.ErrDuplicateID
// so the caller can re-read and retry the allocation.
func (r *ContainerRepository) Create(ctx context.Context, container *domain.Container, capacity *domain.ContainerCapacity) error {
	doc := containerDocument{
		ContainerID:       container.ContainerID,
		WarehouseID:       container.WarehouseID,
		PerSKUMaxCapacity: container.PerSKUMaxCapacity,
		Capacity: capacitySubdoc{
			CurrentOccupancy: capacity.CurrentOccupancy,
			Status:           capacity.Status,
			CreatedAt:        capacity.CreatedAt,
			ModifiedAt:       capacity.ModifiedAt,
		},
		CreatedAt: container.CreatedAt,
	}

	_, err := r.collection.InsertOne(ctx, doc)
	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("container %s: %w", container.ContainerID, domain.ErrDuplicateID)
	}
	return err
}

// ConditionalUpdateOccupancy commits the new occupancy and status only if
// the stored occupancy still equals expectedOccupancy
func (r *ContainerRepository) ConditionalUpdateOccupancy(ctx context.Context, warehouseID, containerID string, expectedOccupancy, newOccupancy int, newStatus domain.ContainerStatus) (bool, error) {
	filter := bson.M{
		"warehouseId":               warehouseID,
		"containerId":               containerID,
		"capacity.currentOccupancy": expectedOccupancy,
	}
	update := bson.M{"$set": bson.M{
		"capacity.currentOccupancy": newOccupancy,
		"capacity.status":           newStatus,
		"capacity.modifiedAt":       time.Now().UTC(),
	}}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, err
	}

	return result.MatchedCount == 1, nil
}

func (d *containerDocument) toDomain() (*domain.Container, *domain.ContainerCapacity) {
	container := &domain.Container{
		ContainerID:       d.ContainerID,
		WarehouseID:       d.WarehouseID,
		PerSKUMaxCapacity: d.PerSKUMaxCapacity,
		CreatedAt:         d.CreatedAt,
	}
	capacity := &domain.ContainerCapacity{
		ContainerID:      d.ContainerID,
		WarehouseID:      d.WarehouseID,
		CurrentOccupancy: d.Capacity.CurrentOccupancy,
		Status:           d.Capacity.Status,
		CreatedAt:        d.Capacity.CreatedAt,
		ModifiedAt:       d.Capacity.ModifiedAt,
	}
	return container, capacity
}
