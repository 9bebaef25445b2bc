package product

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrNotFound = errors.New("product not found")

type Repository interface {
	List(ctx context.Context) ([]Product, error)
	GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]Product, error)
	Create(ctx context.Context, p *Product) (primitive.ObjectID, error)
	AdjustQuantity(ctx context.Context, id primitive.ObjectID, delta int) (*Product, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type mongoRepository struct {
	coll *mongo.Collection
}

func NewRepository(db *mongo.Database) Repository {
	return &mongoRepository{coll: db.Collection("products")}
}

func (r *mongoRepository) List(ctx context.Context) ([]Product, error) {
	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("repository: failed to query products: %w", err)
	}
	defer cursor.Close(ctx)

	products := make([]Product, 0)
	if err := cursor.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("repository: failed to decode products: %w", err)
	}

	return products, nil
}

func (r *mongoRepository) GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]Product, error) {
	if len(ids) == 0 {
		return []Product{}, nil
	}

	cursor, err := r.coll.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("repository: failed to query products by ids: %w", err)
	}
	defer cursor.Close(ctx)

	products := make([]Product, 0, len(ids))
	if err := cursor.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("repository: failed to decode products by ids: %w", err)
	}

	return products, nil
}

func (r *mongoRepository) Create(ctx context.Context, p *Product) (primitive.ObjectID, error) {
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}

	if _, err := r.coll.InsertOne(ctx, p); err != nil {
		return primitive.NilObjectID, fmt.Errorf("repository: failed to insert product: %w", err)
	}

	return p.ID, nil
}

// AdjustQuantity applies quantity += delta in a single storage-side
// update, so concurrent adjustments never lose writes. There is no
// floor: the counter is allowed to go negative.
func (r *mongoRepository) AdjustQuantity(ctx context.Context, id primitive.ObjectID, delta int) (*Product, error) {
	var updated Product
	err := r.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$inc": bson.M{"quantity": delta}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("repository: failed to adjust quantity for product %s: %w", id.Hex(), err)
	}

	return &updated, nil
}

func (r *mongoRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("repository: failed to delete product %s: %w", id.Hex(), err)
	}

	if res.DeletedCount == 0 {
		return ErrNotFound
	}

	return nil
}
