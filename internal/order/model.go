package order

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"inventory-backend/internal/customer"
	"inventory-backend/internal/product"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusShipped   Status = "shipped"
	StatusDelivered Status = "delivered"
)

func (s Status) String() string {
	return string(s)
}

// IsValid reports enum membership only. Any valid status may replace
// any other; there is no transition graph.
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusShipped, StatusDelivered:
		return true
	}
	return false
}

type Item struct {
	ProductID primitive.ObjectID `bson:"productId" json:"productId"`
	Quantity  int                `bson:"quantity" json:"quantity"`
	Price     float64            `bson:"price" json:"price"`
}

// Order embeds its line items in a single document. CustomerID points
// to a customer created in the same PlaceOrder call; nothing prevents
// that customer from being deleted later.
type Order struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CustomerID  primitive.ObjectID `bson:"customerId" json:"customerId"`
	Items       []Item             `bson:"items" json:"items"`
	TotalAmount float64            `bson:"totalAmount" json:"totalAmount"`
	Status      Status             `bson:"status" json:"status"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// PopulatedItem carries the referenced product resolved at read time.
// Product is nil when the reference no longer resolves.
type PopulatedItem struct {
	Item
	Product *product.Product `json:"product,omitempty"`
}

// PopulatedOrder is the read-side view of an order with its references
// resolved. Customer is nil when the customer record was deleted after
// the order was placed.
type PopulatedOrder struct {
	Order
	Customer *customer.Customer `json:"customer"`
	Items    []PopulatedItem    `json:"items"`
}

// StockAdjustment records the outcome of one per-item quantity
// decrement during order placement. A failed adjustment does not
// unwind the already-written customer and order.
type StockAdjustment struct {
	ProductID primitive.ObjectID `json:"productId"`
	Delta     int                `json:"delta"`
	Applied   bool               `json:"applied"`
	Error     string             `json:"error,omitempty"`
}

// PlacedOrder is the result of PlaceOrder: the created order with its
// customer resolved, plus the per-item stock adjustment outcomes.
type PlacedOrder struct {
	Order       PopulatedOrder    `json:"order"`
	Adjustments []StockAdjustment `json:"adjustments"`
}

// PartiallyAdjusted reports whether any per-item stock decrement
// failed after the order itself was committed.
func (p *PlacedOrder) PartiallyAdjusted() bool {
	for _, a := range p.Adjustments {
		if !a.Applied {
			return true
		}
	}
	return false
}
