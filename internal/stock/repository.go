package stock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrNotFound = errors.New("stock not found")

type Repository interface {
	List(ctx context.Context) ([]Stock, error)
	Create(ctx context.Context, st *Stock) (primitive.ObjectID, error)
	UpdateQuantity(ctx context.Context, id primitive.ObjectID, quantity int) (*Stock, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type mongoRepository struct {
	coll *mongo.Collection
}

func NewRepository(db *mongo.Database) Repository {
	return &mongoRepository{coll: db.Collection("stock")}
}

func (r *mongoRepository) List(ctx context.Context) ([]Stock, error) {
	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("repository: failed to query stock: %w", err)
	}
	defer cursor.Close(ctx)

	entries := make([]Stock, 0)
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, fmt.Errorf("repository: failed to decode stock: %w", err)
	}

	return entries, nil
}

func (r *mongoRepository) Create(ctx context.Context, st *Stock) (primitive.ObjectID, error) {
	if st.ID.IsZero() {
		st.ID = primitive.NewObjectID()
	}

	now := time.Now().UTC()
	st.CreatedAt = now
	st.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, st); err != nil {
		return primitive.NilObjectID, fmt.Errorf("repository: failed to insert stock: %w", err)
	}

	return st.ID, nil
}

func (r *mongoRepository) UpdateQuantity(ctx context.Context, id primitive.ObjectID, quantity int) (*Stock, error) {
	var updated Stock
	err := r.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"quantity": quantity, "updatedAt": time.Now().UTC()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("repository: failed to update stock quantity %s: %w", id.Hex(), err)
	}

	return &updated, nil
}

func (r *mongoRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("repository: failed to delete stock %s: %w", id.Hex(), err)
	}

	if res.DeletedCount == 0 {
		return ErrNotFound
	}

	return nil
}
