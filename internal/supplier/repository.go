package supplier

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrNotFound = errors.New("supplier not found")

type Repository interface {
	List(ctx context.Context, search string) ([]Supplier, error)
	Create(ctx context.Context, sup *Supplier) (primitive.ObjectID, error)
	Update(ctx context.Context, sup *Supplier) (*Supplier, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type mongoRepository struct {
	coll *mongo.Collection
}

func NewRepository(db *mongo.Database) Repository {
	return &mongoRepository{coll: db.Collection("suppliers")}
}

func (r *mongoRepository) List(ctx context.Context, search string) ([]Supplier, error) {
	filter := bson.M{}
	if search != "" {
		filter["name"] = bson.M{"$regex": search, "$options": "i"}
	}

	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to query suppliers: %w", err)
	}
	defer cursor.Close(ctx)

	suppliers := make([]Supplier, 0)
	if err := cursor.All(ctx, &suppliers); err != nil {
		return nil, fmt.Errorf("repository: failed to decode suppliers: %w", err)
	}

	return suppliers, nil
}

func (r *mongoRepository) Create(ctx context.Context, sup *Supplier) (primitive.ObjectID, error) {
	if sup.ID.IsZero() {
		sup.ID = primitive.NewObjectID()
	}

	if _, err := r.coll.InsertOne(ctx, sup); err != nil {
		return primitive.NilObjectID, fmt.Errorf("repository: failed to insert supplier: %w", err)
	}

	return sup.ID, nil
}

func (r *mongoRepository) Update(ctx context.Context, sup *Supplier) (*Supplier, error) {
	var updated Supplier
	err := r.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": sup.ID},
		bson.M{"$set": bson.M{
			"name":    sup.Name,
			"email":   sup.Email,
			"phone":   sup.Phone,
			"address": sup.Address,
		}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("repository: failed to update supplier %s: %w", sup.ID.Hex(), err)
	}

	return &updated, nil
}

func (r *mongoRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("repository: failed to delete supplier %s: %w", id.Hex(), err)
	}

	if res.DeletedCount == 0 {
		return ErrNotFound
	}

	return nil
}
