// repositories/location_repository.go
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

// LocationRepository is the data access layer for place tags
type LocationRepository struct {
	locations *mongo.Collection
	posts     *mongo.Collection
	videos    *mongo.Collection
}

func NewLocationRepository(db *mongo.Database) *LocationRepository {
	return &LocationRepository{
		locations: db.Collection("locations"),
		posts:     db.Collection("posts"),
		videos:    db.Collection("videos"),
	}
}

// Create persists a new location owned by userID
func (r *LocationRepository) Create(ctx context.Context, userID primitive.ObjectID, req models.LocationRequest) (models.Location, error) {
	location := models.Location{
		UserID:    userID,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
		Label:     req.Label,
		CreatedAt: time.Now(),
	}

	result, err := r.locations.InsertOne(ctx, location)
	if err != nil {
		return models.Location{}, err
	}
	location.ID = result.InsertedID.(primitive.ObjectID)
	return location, nil
}

// ListByUser returns the locations a user has created, newest first
func (r *LocationRepository) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Location, error) {
	findOptions := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}})

	cursor, err := r.locations.Find(ctx, bson.M{"userId": userID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	locations := []models.Location{}
	if err := cursor.All(ctx, &locations); err != nil {
		return nil, err
	}
	return locations, nil
}

// GetByID returns a location with the count of posts and videos tagged to it
func (r *LocationRepository) GetByID(ctx context.Context, id primitive.ObjectID) (models.LocationWithDetails, error) {
	var location models.Location
	err := r.locations.FindOne(ctx, bson.M{"_id": id}).Decode(&location)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return models.LocationWithDetails{}, ErrNotFound
		}
		return models.LocationWithDetails{}, err
	}

	postsCount, err := r.posts.CountDocuments(ctx, bson.M{"locationId": id})
	if err != nil {
		return models.LocationWithDetails{}, err
	}
	videosCount, err := r.videos.CountDocuments(ctx, bson.M{"locationId": id})
	if err != nil {
		return models.LocationWithDetails{}, err
	}

	return models.LocationWithDetails{
		Location:   location,
		PostsCount: postsCount + videosCount,
	}, nil
}

// ListAll returns every location for moderation use
func (r *LocationRepository) ListAll(ctx context.Context) ([]models.Location, error) {
	findOptions := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}})

	cursor, err := r.locations.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	locations := []models.Location{}
	if err := cursor.All(ctx, &locations); err != nil {
		return nil, err
	}
	return locations, nil
}

// Delete removes a location if it belongs to ownerID. Posts keep their
// locationId; the tag simply stops resolving and enrichment omits it.
func (r *LocationRepository) Delete(ctx context.Context, id, ownerID primitive.ObjectID) (bool, error) {
	result, err := r.locations.DeleteOne(ctx, bson.M{"_id": id, "userId": ownerID})
	if err != nil {
		return false, err
	}
	return result.DeletedCount > 0, nil
}

// DeleteAdmin removes a location regardless of ownership
func (r *LocationRepository) DeleteAdmin(ctx context.Context, id primitive.ObjectID) (bool, error) {
	result, err := r.locations.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, err
	}
	return result.DeletedCount > 0, nil
}

// SetImage updates the image url of an owned location
func (r *LocationRepository) SetImage(ctx context.Context, id, ownerID primitive.ObjectID, imageURL string) (bool, error) {
	result, err := r.locations.UpdateOne(ctx,
		bson.M{"_id": id, "userId": ownerID},
		bson.M{"$set": bson.M{"imageUrl": imageURL}})
	if err != nil {
		return false, err
	}
	return result.MatchedCount > 0, nil
}
