package models

import "go.mongodb.org/mongo-driver/bson/primitive"

type Activity struct {
	Name string  `json:"name" bson:"name"`
	Cost float64 `json:"cost" bson:"cost"`
}

// Committee is addressed by Name; ID is assigned by the store.
type Committee struct {
	ID         primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Name       string             `json:"name" bson:"name"`
	Budget     float64            `json:"budget" bson:"budget"`
	Activities []Activity         `json:"activities" bson:"activities"`
}
