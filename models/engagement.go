// models/engagement.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TargetKind names the entity a like/save/comment points at
type TargetKind string

const (
	TargetPost  TargetKind = "post"
	TargetVideo TargetKind = "video"
)

// Like model. Exactly one of PostID/VideoID is set; the partial unique
// indexes on the likes collection enforce at most one row per (user, target).
type Like struct {
	ID        primitive.ObjectID  `json:"id,omitempty" bson:"_id,omitempty"`
	UserID    primitive.ObjectID  `json:"userId" bson:"userId"`
	PostID    *primitive.ObjectID `json:"postId,omitempty" bson:"postId,omitempty"`
	VideoID   *primitive.ObjectID `json:"videoId,omitempty" bson:"videoId,omitempty"`
	CreatedAt time.Time           `json:"createdAt" bson:"createdAt"`
}

// Save model, same shape and uniqueness rules as Like
type Save struct {
	ID        primitive.ObjectID  `json:"id,omitempty" bson:"_id,omitempty"`
	UserID    primitive.ObjectID  `json:"userId" bson:"userId"`
	PostID    *primitive.ObjectID `json:"postId,omitempty" bson:"postId,omitempty"`
	VideoID   *primitive.ObjectID `json:"videoId,omitempty" bson:"videoId,omitempty"`
	CreatedAt time.Time           `json:"createdAt" bson:"createdAt"`
}
