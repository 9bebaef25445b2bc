package warehouse

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrNotFound = errors.New("warehouse not found")

type Repository interface {
	List(ctx context.Context) ([]Warehouse, error)
	Create(ctx context.Context, w *Warehouse) (primitive.ObjectID, error)
	UpdateLocation(ctx context.Context, id primitive.ObjectID, location string) (*Warehouse, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type mongoRepository struct {
	coll *mongo.Collection
}

func NewRepository(db *mongo.Database) Repository {
	return &mongoRepository{coll: db.Collection("warehouses")}
}

func (r *mongoRepository) List(ctx context.Context) ([]Warehouse, error) {
	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("repository: failed to query warehouses: %w", err)
	}
	defer cursor.Close(ctx)

	warehouses := make([]Warehouse, 0)
	if err := cursor.All(ctx, &warehouses); err != nil {
		return nil, fmt.Errorf("repository: failed to decode warehouses: %w", err)
	}

	return warehouses, nil
}

func (r *mongoRepository) Create(ctx context.Context, w *Warehouse) (primitive.ObjectID, error) {
	if w.ID.IsZero() {
		w.ID = primitive.NewObjectID()
	}

	if _, err := r.coll.InsertOne(ctx, w); err != nil {
		return primitive.NilObjectID, fmt.Errorf("repository: failed to insert warehouse: %w", err)
	}

	return w.ID, nil
}

func (r *mongoRepository) UpdateLocation(ctx context.Context, id primitive.ObjectID, location string) (*Warehouse, error) {
	var updated Warehouse
	err := r.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"location": location}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("repository: failed to update warehouse %s: %w", id.Hex(), err)
	}

	return &updated, nil
}

func (r *mongoRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("repository: failed to delete warehouse %s: %w", id.Hex(), err)
	}

	if res.DeletedCount == 0 {
		return ErrNotFound
	}

	return nil
}
