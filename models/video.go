// models/video.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Video model for video posts
type Video struct {
	ID           primitive.ObjectID  `json:"id,omitempty" bson:"_id,omitempty"`
	UserID       primitive.ObjectID  `json:"userId" bson:"userId"`
	Content      string              `json:"content,omitempty" bson:"content,omitempty"`
	VideoURL     string              `json:"videoUrl" bson:"videoUrl"`
	ThumbnailURL string              `json:"thumbnailUrl,omitempty" bson:"thumbnailUrl,omitempty"`
	LocationID   *primitive.ObjectID `json:"locationId,omitempty" bson:"locationId,omitempty"`
	CreatedAt    time.Time           `json:"createdAt" bson:"createdAt"`
}

// VideoRequest model for creating a new video
type VideoRequest struct {
	Content      string `json:"content" validate:"omitempty,max=2200"`
	VideoURL     string `json:"videoUrl" validate:"required,url"`
	ThumbnailURL string `json:"thumbnailUrl" validate:"omitempty,url"`
	LocationID   string `json:"locationId" validate:"omitempty,len=24,hexadecimal"`
}

// VideoWithDetails is the enriched feed/detail view of a video
type VideoWithDetails struct {
	Video         `bson:",inline"`
	User          *User     `json:"user"`
	Location      *Location `json:"location,omitempty"`
	LikesCount    int64     `json:"likesCount"`
	CommentsCount int64     `json:"commentsCount"`
	IsLiked       bool      `json:"isLiked"`
	IsSaved       bool      `json:"isSaved"`
}
