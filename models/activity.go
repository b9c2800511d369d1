package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ActivityEvent is an append-only audit record. Events are never updated or
// deleted; the read path returns the most recent ones per owner.
type ActivityEvent struct {
	ID         primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Title      string             `json:"title" bson:"title"`
	OwnerEmail string             `json:"ownerEmail" bson:"ownerEmail"`
	Timestamp  time.Time          `json:"timestamp" bson:"timestamp"`
}
