// models/post.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Post model for photo posts
type Post struct {
	ID         primitive.ObjectID  `json:"id,omitempty" bson:"_id,omitempty"`
	UserID     primitive.ObjectID  `json:"userId" bson:"userId"`
	Content    string              `json:"content,omitempty" bson:"content,omitempty"`
	ImageURL   string              `json:"imageUrl,omitempty" bson:"imageUrl,omitempty"`
	LocationID *primitive.ObjectID `json:"locationId,omitempty" bson:"locationId,omitempty"`
	CreatedAt  time.Time           `json:"createdAt" bson:"createdAt"`
}

// PostRequest model for creating a new post
type PostRequest struct {
	Content    string `json:"content" validate:"required_without=ImageURL,omitempty,max=2200"`
	ImageURL   string `json:"imageUrl" validate:"omitempty,url"`
	LocationID string `json:"locationId" validate:"omitempty,len=24,hexadecimal"`
}

// PostWithDetails is the enriched feed/detail view of a post: the base row
// plus its owner, the optional tagged location, aggregate counts and the
// viewer-relative flags.
type PostWithDetails struct {
	Post          `bson:",inline"`
	User          *User     `json:"user"`
	Location      *Location `json:"location,omitempty"`
	LikesCount    int64     `json:"likesCount"`
	CommentsCount int64     `json:"commentsCount"`
	IsLiked       bool      `json:"isLiked"`
	IsSaved       bool      `json:"isSaved"`
}
