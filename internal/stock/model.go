package stock

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Stock is a freestanding per-warehouse ledger entry. ProductID is a
// free string, not a validated reference into the product catalog.
type Stock struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ProductID   string             `bson:"productId" json:"productId"`
	ProductName string             `bson:"productName" json:"productName"`
	Category    string             `bson:"category" json:"category"`
	Warehouse   string             `bson:"warehouse" json:"warehouse"`
	Quantity    int                `bson:"quantity" json:"quantity"`
	Supplier    string             `bson:"supplier" json:"supplier"`
	Price       float64            `bson:"price" json:"price"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}
