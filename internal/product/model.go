package product

import "go.mongodb.org/mongo-driver/bson/primitive"

// Product is an independent catalog counter. No link to the stock
// ledger is enforced; quantity may go negative after order decrements.
type Product struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name     string             `bson:"name" json:"name"`
	Quantity int                `bson:"quantity" json:"quantity"`
}
