// repositories/engagement_repository.go
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

// EngagementRepository handles likes and saves. Both writes are atomic
// insert-if-absent upserts backed by the partial unique indexes, so a
// duplicate like/save request returns the existing row instead of erroring
// or inserting twice.
type EngagementRepository struct {
	likes  *mongo.Collection
	saves  *mongo.Collection
	posts  *mongo.Collection
	videos *mongo.Collection

	postRepo  *PostRepository
	videoRepo *VideoRepository
}

func NewEngagementRepository(db *mongo.Database, postRepo *PostRepository, videoRepo *VideoRepository) *EngagementRepository {
	return &EngagementRepository{
		likes:     db.Collection("likes"),
		saves:     db.Collection("saves"),
		posts:     db.Collection("posts"),
		videos:    db.Collection("videos"),
		postRepo:  postRepo,
		videoRepo: videoRepo,
	}
}

// targetField maps a target kind to the reference field on like/save rows
func targetField(kind models.TargetKind) string {
	if kind == models.TargetVideo {
		return "videoId"
	}
	return "postId"
}

func (r *EngagementRepository) targetExists(ctx context.Context, kind models.TargetKind, targetID primitive.ObjectID) error {
	coll := r.posts
	if kind == models.TargetVideo {
		coll = r.videos
	}
	count, err := coll.CountDocuments(ctx, bson.M{"_id": targetID})
	if err != nil {
		return err
	}
	if count == 0 {
		return ErrNotFound
	}
	return nil
}

// upsertEngagement performs the get-or-create shared by Like and Save
func (r *EngagementRepository) upsertEngagement(ctx context.Context, coll *mongo.Collection, userID primitive.ObjectID, kind models.TargetKind, targetID primitive.ObjectID) (models.Like, error) {
	field := targetField(kind)
	filter := bson.M{"userId": userID, field: targetID}
	update := bson.M{"$setOnInsert": bson.M{
		"userId":    userID,
		field:       targetID,
		"createdAt": time.Now(),
	}}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var row models.Like
	err := coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&row)
	if err != nil {
		// Two simultaneous first likes can race the upsert into the unique
		// index; the loser re-reads the winner's row.
		if mongo.IsDuplicateKeyError(err) {
			if err := coll.FindOne(ctx, filter).Decode(&row); err == nil {
				return row, nil
			}
		}
		return models.Like{}, err
	}
	return row, nil
}

// Like records that userID likes the target; first-writer-wins
func (r *EngagementRepository) Like(ctx context.Context, userID primitive.ObjectID, kind models.TargetKind, targetID primitive.ObjectID) (models.Like, error) {
	if err := r.targetExists(ctx, kind, targetID); err != nil {
		return models.Like{}, err
	}
	return r.upsertEngagement(ctx, r.likes, userID, kind, targetID)
}

// Unlike removes a like if present and reports whether a row was removed
func (r *EngagementRepository) Unlike(ctx context.Context, userID primitive.ObjectID, kind models.TargetKind, targetID primitive.ObjectID) (bool, error) {
	result, err := r.likes.DeleteOne(ctx, bson.M{"userId": userID, targetField(kind): targetID})
	if err != nil {
		return false, err
	}
	return result.DeletedCount > 0, nil
}

// Save records that userID saved the target; same semantics as Like
func (r *EngagementRepository) Save(ctx context.Context, userID primitive.ObjectID, kind models.TargetKind, targetID primitive.ObjectID) (models.Save, error) {
	if err := r.targetExists(ctx, kind, targetID); err != nil {
		return models.Save{}, err
	}
	row, err := r.upsertEngagement(ctx, r.saves, userID, kind, targetID)
	if err != nil {
		return models.Save{}, err
	}
	return models.Save(row), nil
}

// Unsave removes a save if present and reports whether a row was removed
func (r *EngagementRepository) Unsave(ctx context.Context, userID primitive.ObjectID, kind models.TargetKind, targetID primitive.ObjectID) (bool, error) {
	result, err := r.saves.DeleteOne(ctx, bson.M{"userId": userID, targetField(kind): targetID})
	if err != nil {
		return false, err
	}
	return result.DeletedCount > 0, nil
}

// TargetOwner returns the owning user of the liked or saved target
func (r *EngagementRepository) TargetOwner(ctx context.Context, kind models.TargetKind, targetID primitive.ObjectID) (primitive.ObjectID, error) {
	return ownerOfTarget(ctx, r.posts, r.videos, kind, targetID)
}

// SavedPosts returns the user's saved posts, most recently saved first,
// enriched for the saver. A save whose post has been deleted is silently
// dropped rather than surfaced as an error.
func (r *EngagementRepository) SavedPosts(ctx context.Context, userID primitive.ObjectID) ([]models.PostWithDetails, error) {
	saveIDs, err := r.savedTargetIDs(ctx, userID, "postId")
	if err != nil {
		return nil, err
	}
	if len(saveIDs) == 0 {
		return []models.PostWithDetails{}, nil
	}

	cursor, err := r.posts.Find(ctx, bson.M{"_id": bson.M{"$in": saveIDs}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rows []models.Post
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}

	byID := make(map[primitive.ObjectID]models.Post, len(rows))
	for _, post := range rows {
		byID[post.ID] = post
	}

	ordered := make([]models.Post, 0, len(rows))
	for _, id := range saveIDs {
		if post, ok := byID[id]; ok {
			ordered = append(ordered, post)
		}
	}

	return r.postRepo.enrich(ctx, ordered, &userID)
}

// SavedVideos is the video counterpart of SavedPosts
func (r *EngagementRepository) SavedVideos(ctx context.Context, userID primitive.ObjectID) ([]models.VideoWithDetails, error) {
	saveIDs, err := r.savedTargetIDs(ctx, userID, "videoId")
	if err != nil {
		return nil, err
	}
	if len(saveIDs) == 0 {
		return []models.VideoWithDetails{}, nil
	}

	cursor, err := r.videos.Find(ctx, bson.M{"_id": bson.M{"$in": saveIDs}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rows []models.Video
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}

	byID := make(map[primitive.ObjectID]models.Video, len(rows))
	for _, video := range rows {
		byID[video.ID] = video
	}

	ordered := make([]models.Video, 0, len(rows))
	for _, id := range saveIDs {
		if video, ok := byID[id]; ok {
			ordered = append(ordered, video)
		}
	}

	return r.videoRepo.enrich(ctx, ordered, &userID)
}

// savedTargetIDs returns the target ids of the user's saves in save-recency order
func (r *EngagementRepository) savedTargetIDs(ctx context.Context, userID primitive.ObjectID, field string) ([]primitive.ObjectID, error) {
	findOptions := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}})

	cursor, err := r.saves.Find(ctx, bson.M{
		"userId": userID,
		field:    bson.M{"$exists": true},
	}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rows []bson.M
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}

	ids := make([]primitive.ObjectID, 0, len(rows))
	for _, row := range rows {
		if id, ok := row[field].(primitive.ObjectID); ok {
			ids = append(ids, id)
		}
	}
	return ids, nil
}
