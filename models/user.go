// models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User model
type User struct {
	ID              primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Username        string             `json:"username" bson:"username"`
	Email           string             `json:"email" bson:"email"`
	Password        string             `json:"-" bson:"password"`
	FirstName       string             `json:"firstName,omitempty" bson:"firstName,omitempty"`
	LastName        string             `json:"lastName,omitempty" bson:"lastName,omitempty"`
	Bio             string             `json:"bio,omitempty" bson:"bio,omitempty"`
	ProfileImageURL string             `json:"profileImageUrl,omitempty" bson:"profileImageUrl,omitempty"`
	CreatedAt       time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt       time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// UserProfile is the enriched profile view: base user fields plus social
// graph aggregates and the viewer-relative follow flag.
type UserProfile struct {
	User           `bson:",inline"`
	PostsCount     int64 `json:"postsCount"`
	FollowersCount int64 `json:"followersCount"`
	FollowingCount int64 `json:"followingCount"`
	IsFollowing    bool  `json:"isFollowing"`
}

// SessionUser is returned by GET /api/auth/user
type SessionUser struct {
	User    `bson:",inline"`
	IsAdmin bool `json:"isAdmin"`
}

// UpdateProfileRequest updates the editable profile fields. Bio and
// ProfileImageURL are pointers so an explicit empty string clears the field
// while an absent key leaves it untouched.
type UpdateProfileRequest struct {
	FirstName       string  `json:"firstName" validate:"required,min=1,max=50"`
	LastName        string  `json:"lastName" validate:"required,min=1,max=50"`
	Bio             *string `json:"bio" validate:"omitempty,max=500"`
	ProfileImageURL *string `json:"profileImageUrl" validate:"omitempty,url"`
}

// UpdateBioRequest is the legacy single-field bio update
type UpdateBioRequest struct {
	Bio string `json:"bio" validate:"max=500"`
}
