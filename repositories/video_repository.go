// repositories/video_repository.go
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

// VideoRepository is the data access layer for videos and their enriched views
type VideoRepository struct {
	videos    *mongo.Collection
	users     *mongo.Collection
	locations *mongo.Collection
	likes     *mongo.Collection
	comments  *mongo.Collection
	saves     *mongo.Collection
}

func NewVideoRepository(db *mongo.Database) *VideoRepository {
	return &VideoRepository{
		videos:    db.Collection("videos"),
		users:     db.Collection("users"),
		locations: db.Collection("locations"),
		likes:     db.Collection("likes"),
		comments:  db.Collection("comments"),
		saves:     db.Collection("saves"),
	}
}

// Create persists a new video. A referenced location must exist.
func (r *VideoRepository) Create(ctx context.Context, userID primitive.ObjectID, req models.VideoRequest) (models.Video, error) {
	video := models.Video{
		UserID:       userID,
		Content:      req.Content,
		VideoURL:     req.VideoURL,
		ThumbnailURL: req.ThumbnailURL,
		CreatedAt:    time.Now(),
	}

	if req.LocationID != "" {
		locationID, err := primitive.ObjectIDFromHex(req.LocationID)
		if err != nil {
			return models.Video{}, ErrNotFound
		}
		count, err := r.locations.CountDocuments(ctx, bson.M{"_id": locationID})
		if err != nil {
			return models.Video{}, err
		}
		if count == 0 {
			return models.Video{}, ErrNotFound
		}
		video.LocationID = &locationID
	}

	result, err := r.videos.InsertOne(ctx, video)
	if err != nil {
		return models.Video{}, err
	}
	video.ID = result.InsertedID.(primitive.ObjectID)
	return video, nil
}

// GetFeed returns the most recent videos across all users, enriched for the viewer
func (r *VideoRepository) GetFeed(ctx context.Context, viewerID *primitive.ObjectID, limit int64) ([]models.VideoWithDetails, error) {
	findOptions := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}).
		SetLimit(limit)

	cursor, err := r.videos.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var videos []models.Video
	if err := cursor.All(ctx, &videos); err != nil {
		return nil, err
	}

	return r.enrich(ctx, videos, viewerID)
}

// GetByID returns a single enriched video; missing row or owner is ErrNotFound
func (r *VideoRepository) GetByID(ctx context.Context, id primitive.ObjectID, viewerID *primitive.ObjectID) (models.VideoWithDetails, error) {
	var video models.Video
	err := r.videos.FindOne(ctx, bson.M{"_id": id}).Decode(&video)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return models.VideoWithDetails{}, ErrNotFound
		}
		return models.VideoWithDetails{}, err
	}

	details, err := r.enrich(ctx, []models.Video{video}, viewerID)
	if err != nil {
		return models.VideoWithDetails{}, err
	}
	if len(details) == 0 {
		return models.VideoWithDetails{}, ErrNotFound
	}
	return details[0], nil
}

// ListByUser returns a user's videos, newest first, enriched for the viewer
func (r *VideoRepository) ListByUser(ctx context.Context, userID primitive.ObjectID, viewerID *primitive.ObjectID) ([]models.VideoWithDetails, error) {
	findOptions := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}})

	cursor, err := r.videos.Find(ctx, bson.M{"userId": userID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var videos []models.Video
	if err := cursor.All(ctx, &videos); err != nil {
		return nil, err
	}

	return r.enrich(ctx, videos, viewerID)
}

// ListAll returns every video for moderation use; viewer flags stay false
func (r *VideoRepository) ListAll(ctx context.Context) ([]models.VideoWithDetails, error) {
	findOptions := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}})

	cursor, err := r.videos.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var videos []models.Video
	if err := cursor.All(ctx, &videos); err != nil {
		return nil, err
	}

	return r.enrich(ctx, videos, nil)
}

// Delete removes a video if it belongs to ownerID, cascading dependents
func (r *VideoRepository) Delete(ctx context.Context, id, ownerID primitive.ObjectID) (bool, error) {
	result, err := r.videos.DeleteOne(ctx, bson.M{"_id": id, "userId": ownerID})
	if err != nil {
		return false, err
	}
	if result.DeletedCount == 0 {
		return false, nil
	}
	return true, r.cascade(ctx, id)
}

// DeleteAdmin removes a video regardless of ownership
func (r *VideoRepository) DeleteAdmin(ctx context.Context, id primitive.ObjectID) (bool, error) {
	result, err := r.videos.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, err
	}
	if result.DeletedCount == 0 {
		return false, nil
	}
	return true, r.cascade(ctx, id)
}

// SetThumbnail updates the thumbnail url of an owned video
func (r *VideoRepository) SetThumbnail(ctx context.Context, id, ownerID primitive.ObjectID, thumbnailURL string) (bool, error) {
	result, err := r.videos.UpdateOne(ctx,
		bson.M{"_id": id, "userId": ownerID},
		bson.M{"$set": bson.M{"thumbnailUrl": thumbnailURL}})
	if err != nil {
		return false, err
	}
	return result.MatchedCount > 0, nil
}

func (r *VideoRepository) cascade(ctx context.Context, id primitive.ObjectID) error {
	filter := bson.M{"videoId": id}
	for _, coll := range []*mongo.Collection{r.likes, r.comments, r.saves} {
		if _, err := coll.DeleteMany(ctx, filter); err != nil {
			return err
		}
	}
	return nil
}

func (r *VideoRepository) enrich(ctx context.Context, videos []models.Video, viewerID *primitive.ObjectID) ([]models.VideoWithDetails, error) {
	if len(videos) == 0 {
		return []models.VideoWithDetails{}, nil
	}

	videoIDs := make([]primitive.ObjectID, 0, len(videos))
	userIDs := make([]primitive.ObjectID, 0, len(videos))
	locationIDs := make([]primitive.ObjectID, 0, len(videos))
	for _, video := range videos {
		videoIDs = append(videoIDs, video.ID)
		userIDs = append(userIDs, video.UserID)
		if video.LocationID != nil {
			locationIDs = append(locationIDs, *video.LocationID)
		}
	}

	users, err := loadUsersByID(ctx, r.users, userIDs)
	if err != nil {
		return nil, err
	}
	locations, err := loadLocationsByID(ctx, r.locations, locationIDs)
	if err != nil {
		return nil, err
	}
	likeCounts, err := countByTarget(ctx, r.likes, "videoId", videoIDs)
	if err != nil {
		return nil, err
	}
	commentCounts, err := countByTarget(ctx, r.comments, "videoId", videoIDs)
	if err != nil {
		return nil, err
	}

	e := enrichment{
		users:         users,
		locations:     locations,
		likeCounts:    likeCounts,
		commentCounts: commentCounts,
	}

	if viewerID != nil {
		e.liked, err = viewerTargetSet(ctx, r.likes, "videoId", *viewerID, videoIDs)
		if err != nil {
			return nil, err
		}
		e.saved, err = viewerTargetSet(ctx, r.saves, "videoId", *viewerID, videoIDs)
		if err != nil {
			return nil, err
		}
	}

	return assembleVideoDetails(videos, e), nil
}
