package warehouse

import "go.mongodb.org/mongo-driver/bson/primitive"

type Warehouse struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name     string             `bson:"name" json:"name"`
	Location string             `bson:"location" json:"location"`
	Capacity int                `bson:"capacity" json:"capacity"`
	Contact  string             `bson:"contact" json:"contact"`
}
