package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var ErrNotFound = errors.New("order not found")

type Repository interface {
	Create(ctx context.Context, o *Order) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*Order, error)
	List(ctx context.Context) ([]Order, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, newStatus Status) error
}

type mongoRepository struct {
	coll *mongo.Collection
}

func NewRepository(db *mongo.Database) Repository {
	return &mongoRepository{coll: db.Collection("orders")}
}

func (r *mongoRepository) Create(ctx context.Context, o *Order) (primitive.ObjectID, error) {
	if o.ID.IsZero() {
		o.ID = primitive.NewObjectID()
	}

	now := time.Now().UTC()
	o.CreatedAt = now
	o.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, o); err != nil {
		return primitive.NilObjectID, fmt.Errorf("repository: failed to insert order: %w", err)
	}

	return o.ID, nil
}

func (r *mongoRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*Order, error) {
	var o Order
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&o)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("repository: failed to select order by id %s: %w", id.Hex(), err)
	}

	return &o, nil
}

func (r *mongoRepository) List(ctx context.Context) ([]Order, error) {
	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("repository: failed to query orders: %w", err)
	}
	defer cursor.Close(ctx)

	orders := make([]Order, 0)
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, fmt.Errorf("repository: failed to decode orders: %w", err)
	}

	return orders, nil
}

func (r *mongoRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, newStatus Status) error {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"status": string(newStatus), "updatedAt": time.Now().UTC()}},
	)
	if err != nil {
		return fmt.Errorf("repository: failed to update status for order %s: %w", id.Hex(), err)
	}

	if res.MatchedCount == 0 {
		return ErrNotFound
	}

	return nil
}
