package customer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var ErrNotFound = errors.New("customer not found")

type Repository interface {
	List(ctx context.Context) ([]Customer, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*Customer, error)
	GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]Customer, error)
	Create(ctx context.Context, c *Customer) (primitive.ObjectID, error)
}

type mongoRepository struct {
	coll *mongo.Collection
}

func NewRepository(db *mongo.Database) Repository {
	return &mongoRepository{coll: db.Collection("customers")}
}

func (r *mongoRepository) List(ctx context.Context) ([]Customer, error) {
	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("repository: failed to query customers: %w", err)
	}
	defer cursor.Close(ctx)

	customers := make([]Customer, 0)
	if err := cursor.All(ctx, &customers); err != nil {
		return nil, fmt.Errorf("repository: failed to decode customers: %w", err)
	}

	return customers, nil
}

func (r *mongoRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*Customer, error) {
	var c Customer
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&c)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("repository: failed to select customer by id %s: %w", id.Hex(), err)
	}

	return &c, nil
}

func (r *mongoRepository) GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]Customer, error) {
	if len(ids) == 0 {
		return []Customer{}, nil
	}

	cursor, err := r.coll.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("repository: failed to query customers by ids: %w", err)
	}
	defer cursor.Close(ctx)

	customers := make([]Customer, 0, len(ids))
	if err := cursor.All(ctx, &customers); err != nil {
		return nil, fmt.Errorf("repository: failed to decode customers by ids: %w", err)
	}

	return customers, nil
}

func (r *mongoRepository) Create(ctx context.Context, c *Customer) (primitive.ObjectID, error) {
	if c.ID.IsZero() {
		c.ID = primitive.NewObjectID()
	}

	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, c); err != nil {
		return primitive.NilObjectID, fmt.Errorf("repository: failed to insert customer: %w", err)
	}

	return c.ID, nil
}
