// repositories/user_repository.go
package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/snapgrid/snapgrid_backend/models"
)

// UserRepository is the data access layer for users and enriched profiles
type UserRepository struct {
	users   *mongo.Collection
	posts   *mongo.Collection
	videos  *mongo.Collection
	follows *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{
		users:   db.Collection("users"),
		posts:   db.Collection("posts"),
		videos:  db.Collection("videos"),
		follows: db.Collection("follows"),
	}
}

// Create persists a new user; duplicate email or username is ErrConflict
func (r *UserRepository) Create(ctx context.Context, user models.User) (models.User, error) {
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	result, err := r.users.InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return models.User{}, ErrConflict
		}
		return models.User{}, err
	}
	user.ID = result.InsertedID.(primitive.ObjectID)
	return user, nil
}

// GetByID returns a user by id
func (r *UserRepository) GetByID(ctx context.Context, id primitive.ObjectID) (models.User, error) {
	var user models.User
	err := r.users.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return models.User{}, ErrNotFound
		}
		return models.User{}, err
	}
	return user, nil
}

// GetByEmail returns a user by email, password hash included, for login
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (models.User, error) {
	var user models.User
	err := r.users.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return models.User{}, ErrNotFound
		}
		return models.User{}, err
	}
	return user, nil
}

// UpdateProfile applies the editable profile fields. Nil pointer fields are
// left untouched; explicit empty strings clear bio/profileImageUrl.
func (r *UserRepository) UpdateProfile(ctx context.Context, id primitive.ObjectID, req models.UpdateProfileRequest) (models.User, error) {
	set := bson.M{
		"firstName": req.FirstName,
		"lastName":  req.LastName,
		"updatedAt": time.Now(),
	}
	unset := bson.M{}

	if req.Bio != nil {
		if *req.Bio == "" {
			unset["bio"] = ""
		} else {
			set["bio"] = *req.Bio
		}
	}
	if req.ProfileImageURL != nil {
		if *req.ProfileImageURL == "" {
			unset["profileImageUrl"] = ""
		} else {
			set["profileImageUrl"] = *req.ProfileImageURL
		}
	}

	update := bson.M{"$set": set}
	if len(unset) > 0 {
		update["$unset"] = unset
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var user models.User
	err := r.users.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return models.User{}, ErrNotFound
		}
		return models.User{}, err
	}
	return user, nil
}

// UpdateBio is the legacy single-field bio update
func (r *UserRepository) UpdateBio(ctx context.Context, id primitive.ObjectID, bio string) (models.User, error) {
	update := bson.M{"$set": bson.M{"bio": bio, "updatedAt": time.Now()}}
	if bio == "" {
		update = bson.M{
			"$unset": bson.M{"bio": ""},
			"$set":   bson.M{"updatedAt": time.Now()},
		}
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var user models.User
	err := r.users.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return models.User{}, ErrNotFound
		}
		return models.User{}, err
	}
	return user, nil
}

// GetProfile assembles the enriched profile view: base fields plus content
// count, follower/following counts and the viewer-relative follow flag.
func (r *UserRepository) GetProfile(ctx context.Context, id primitive.ObjectID, viewerID *primitive.ObjectID) (models.UserProfile, error) {
	user, err := r.GetByID(ctx, id)
	if err != nil {
		return models.UserProfile{}, err
	}
	user.Password = ""

	postsCount, err := r.posts.CountDocuments(ctx, bson.M{"userId": id})
	if err != nil {
		return models.UserProfile{}, err
	}
	videosCount, err := r.videos.CountDocuments(ctx, bson.M{"userId": id})
	if err != nil {
		return models.UserProfile{}, err
	}
	followersCount, err := r.follows.CountDocuments(ctx, bson.M{"followingId": id})
	if err != nil {
		return models.UserProfile{}, err
	}
	followingCount, err := r.follows.CountDocuments(ctx, bson.M{"followerId": id})
	if err != nil {
		return models.UserProfile{}, err
	}

	profile := models.UserProfile{
		User:           user,
		PostsCount:     postsCount + videosCount,
		FollowersCount: followersCount,
		FollowingCount: followingCount,
	}

	if viewerID != nil && *viewerID != id {
		count, err := r.follows.CountDocuments(ctx, bson.M{
			"followerId":  *viewerID,
			"followingId": id,
		})
		if err != nil {
			return models.UserProfile{}, err
		}
		profile.IsFollowing = count > 0
	}

	return profile, nil
}
