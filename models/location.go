// models/location.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Location model for user-created place tags
type Location struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	UserID    primitive.ObjectID `json:"userId" bson:"userId"`
	Latitude  float64            `json:"latitude" bson:"latitude"`
	Longitude float64            `json:"longitude" bson:"longitude"`
	Label     string             `json:"label" bson:"label"`
	ImageURL  string             `json:"imageUrl,omitempty" bson:"imageUrl,omitempty"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
}

// LocationRequest model for creating a new location
type LocationRequest struct {
	Latitude  float64 `json:"latitude" validate:"min=-90,max=90"`
	Longitude float64 `json:"longitude" validate:"min=-180,max=180"`
	Label     string  `json:"label" validate:"required,min=1,max=100"`
}

// LocationWithDetails adds the count of posts and videos tagged with the location
type LocationWithDetails struct {
	Location   `bson:",inline"`
	PostsCount int64 `json:"postsCount"`
}
