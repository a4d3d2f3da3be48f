// repositories/follow_repository.go
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

// FollowRepository handles the social graph edges
type FollowRepository struct {
	follows *mongo.Collection
	users   *mongo.Collection
}

func NewFollowRepository(db *mongo.Database) *FollowRepository {
	return &FollowRepository{
		follows: db.Collection("follows"),
		users:   db.Collection("users"),
	}
}

// Follow creates the follower->followee edge if absent. Following a user
// twice returns the existing edge; following yourself is rejected before
// any write.
func (r *FollowRepository) Follow(ctx context.Context, followerID, followingID primitive.ObjectID) (models.Follow, error) {
	if followerID == followingID {
		return models.Follow{}, ErrSelfFollow
	}

	count, err := r.users.CountDocuments(ctx, bson.M{"_id": followingID})
	if err != nil {
		return models.Follow{}, err
	}
	if count == 0 {
		return models.Follow{}, ErrNotFound
	}

	filter := bson.M{"followerId": followerID, "followingId": followingID}
	update := bson.M{"$setOnInsert": bson.M{
		"followerId":  followerID,
		"followingId": followingID,
		"createdAt":   time.Now(),
	}}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var follow models.Follow
	err = r.follows.FindOneAndUpdate(ctx, filter, update, opts).Decode(&follow)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			if err := r.follows.FindOne(ctx, filter).Decode(&follow); err == nil {
				return follow, nil
			}
		}
		return models.Follow{}, err
	}
	return follow, nil
}

// Unfollow removes the edge if present and reports whether it existed
func (r *FollowRepository) Unfollow(ctx context.Context, followerID, followingID primitive.ObjectID) (bool, error) {
	result, err := r.follows.DeleteOne(ctx, bson.M{
		"followerId":  followerID,
		"followingId": followingID,
	})
	if err != nil {
		return false, err
	}
	return result.DeletedCount > 0, nil
}
