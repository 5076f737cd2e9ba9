package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type RequestStatus string

const (
	RequestPending  RequestStatus = "pending"
	RequestAccepted RequestStatus = "accepted"
	RequestDeclined RequestStatus = "declined"
)

func (s RequestStatus) Valid() bool {
	switch s {
	case RequestPending, RequestAccepted, RequestDeclined:
		return true
	}
	return false
}

// Terminal reports whether no further transition is allowed out of s.
func (s RequestStatus) Terminal() bool {
	return s == RequestAccepted || s == RequestDeclined
}

// CanTransition reports whether a request in status s may move to next.
// Only pending requests can be processed, and only into a terminal state.
func (s RequestStatus) CanTransition(next RequestStatus) bool {
	return s == RequestPending && next.Terminal()
}

type Request struct {
	ID            primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Department    string             `json:"department" bson:"department"`
	Amount        float64            `json:"amount" bson:"amount"`
	Description   string             `json:"description" bson:"description"`
	Requester     string             `json:"requester" bson:"requester"`
	Status        RequestStatus      `json:"status" bson:"status"`
	DateSubmitted time.Time          `json:"dateSubmitted" bson:"dateSubmitted"`
	DateProcessed *time.Time         `json:"dateProcessed,omitempty" bson:"dateProcessed,omitempty"`
}
