// models/comment.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Comment model. Exactly one of PostID/VideoID is set.
type Comment struct {
	ID        primitive.ObjectID  `json:"id,omitempty" bson:"_id,omitempty"`
	UserID    primitive.ObjectID  `json:"userId" bson:"userId"`
	PostID    *primitive.ObjectID `json:"postId,omitempty" bson:"postId,omitempty"`
	VideoID   *primitive.ObjectID `json:"videoId,omitempty" bson:"videoId,omitempty"`
	Content   string              `json:"content" bson:"content"`
	CreatedAt time.Time           `json:"createdAt" bson:"createdAt"`
}

// CommentRequest model for creating a new comment. The two target ids are
// mutually exclusive; the handler rejects a request naming both or neither.
type CommentRequest struct {
	PostID  string `json:"postId" validate:"omitempty,len=24,hexadecimal"`
	VideoID string `json:"videoId" validate:"omitempty,len=24,hexadecimal"`
	Content string `json:"content" validate:"required,min=1,max=1000"`
}

// CommentWithAuthor pairs a comment with its authoring user for display
type CommentWithAuthor struct {
	Comment `bson:",inline"`
	User    *User `json:"user"`
}
