package category

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrNotFound = errors.New("category not found")

type Repository interface {
	List(ctx context.Context) ([]Category, error)
	Create(ctx context.Context, c *Category) (primitive.ObjectID, error)
	UpdateName(ctx context.Context, id primitive.ObjectID, name string) (*Category, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type mongoRepository struct {
	coll *mongo.Collection
}

func NewRepository(db *mongo.Database) Repository {
	return &mongoRepository{coll: db.Collection("categories")}
}

func (r *mongoRepository) List(ctx context.Context) ([]Category, error) {
	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("repository: failed to query categories: %w", err)
	}
	defer cursor.Close(ctx)

	categories := make([]Category, 0)
	if err := cursor.All(ctx, &categories); err != nil {
		return nil, fmt.Errorf("repository: failed to decode categories: %w", err)
	}

	return categories, nil
}

func (r *mongoRepository) Create(ctx context.Context, c *Category) (primitive.ObjectID, error) {
	if c.ID.IsZero() {
		c.ID = primitive.NewObjectID()
	}

	if _, err := r.coll.InsertOne(ctx, c); err != nil {
		return primitive.NilObjectID, fmt.Errorf("repository: failed to insert category: %w", err)
	}

	return c.ID, nil
}

func (r *mongoRepository) UpdateName(ctx context.Context, id primitive.ObjectID, name string) (*Category, error) {
	var updated Category
	err := r.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"name": name}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("repository: failed to update category %s: %w", id.Hex(), err)
	}

	return &updated, nil
}

func (r *mongoRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("repository: failed to delete category %s: %w", id.Hex(), err)
	}

	if res.DeletedCount == 0 {
		return ErrNotFound
	}

	return nil
}
