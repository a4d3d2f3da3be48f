// models/follow.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Follow model. The unique index on (followerId, followingId) enforces at
// most one row per pair; self-follows are rejected before any write.
type Follow struct {
	ID          primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	FollowerID  primitive.ObjectID `json:"followerId" bson:"followerId"`
	FollowingID primitive.ObjectID `json:"followingId" bson:"followingId"`
	CreatedAt   time.Time          `json:"createdAt" bson:"createdAt"`
}
