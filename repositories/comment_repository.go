// repositories/comment_repository.go
package repositories

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/snapgrid/snapgrid_backend/models"
)

// CommentRepository is the data access layer for comments
type CommentRepository struct {
	comments *mongo.Collection
	users    *mongo.Collection
	posts    *mongo.Collection
	videos   *mongo.Collection
}

func NewCommentRepository(db *mongo.Database) *CommentRepository {
	return &CommentRepository{
		comments: db.Collection("comments"),
		users:    db.Collection("users"),
		posts:    db.Collection("posts"),
		videos:   db.Collection("videos"),
	}
}

// Create persists a new comment on the target, which must exist
func (r *CommentRepository) Create(ctx context.Context, userID primitive.ObjectID, kind models.TargetKind, targetID primitive.ObjectID, content string) (models.Comment, error) {
	targetColl := r.posts
	if kind == models.TargetVideo {
		targetColl = r.videos
	}
	count, err := targetColl.CountDocuments(ctx, bson.M{"_id": targetID})
	if err != nil {
		return models.Comment{}, err
	}
	if count == 0 {
		return models.Comment{}, ErrNotFound
	}

	comment := models.Comment{
		UserID:    userID,
		Content:   content,
		CreatedAt: time.Now(),
	}
	if kind == models.TargetVideo {
		comment.VideoID = &targetID
	} else {
		comment.PostID = &targetID
	}

	result, err := r.comments.InsertOne(ctx, comment)
	if err != nil {
		return models.Comment{}, err
	}
	comment.ID = result.InsertedID.(primitive.ObjectID)
	return comment, nil
}

// ListForTarget returns the comments on a post or video, newest first, each
// paired with its author. Comments whose author is missing are skipped.
func (r *CommentRepository) ListForTarget(ctx context.Context, kind models.TargetKind, targetID primitive.ObjectID) ([]models.CommentWithAuthor, error) {
	field := "postId"
	if kind == models.TargetVideo {
		field = "videoId"
	}

	findOptions := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}})

	cursor, err := r.comments.Find(ctx, bson.M{field: targetID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var comments []models.Comment
	if err := cursor.All(ctx, &comments); err != nil {
		return nil, err
	}

	return r.withAuthors(ctx, comments)
}

// ListAll returns every comment for moderation use, newest first
func (r *CommentRepository) ListAll(ctx context.Context) ([]models.CommentWithAuthor, error) {
	findOptions := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}})

	cursor, err := r.comments.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var comments []models.Comment
	if err := cursor.All(ctx, &comments); err != nil {
		return nil, err
	}

	return r.withAuthors(ctx, comments)
}

// TargetOwner returns the owning user of the commented post or video
func (r *CommentRepository) TargetOwner(ctx context.Context, kind models.TargetKind, targetID primitive.ObjectID) (primitive.ObjectID, error) {
	return ownerOfTarget(ctx, r.posts, r.videos, kind, targetID)
}

// Delete removes a comment if it belongs to ownerID
func (r *CommentRepository) Delete(ctx context.Context, id, ownerID primitive.ObjectID) (bool, error) {
	result, err := r.comments.DeleteOne(ctx, bson.M{"_id": id, "userId": ownerID})
	if err != nil {
		return false, err
	}
	return result.DeletedCount > 0, nil
}

// DeleteAdmin removes a comment regardless of ownership
func (r *CommentRepository) DeleteAdmin(ctx context.Context, id primitive.ObjectID) (bool, error) {
	result, err := r.comments.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, err
	}
	return result.DeletedCount > 0, nil
}

// withAuthors loads all authors for a page of comments in one query
func (r *CommentRepository) withAuthors(ctx context.Context, comments []models.Comment) ([]models.CommentWithAuthor, error) {
	if len(comments) == 0 {
		return []models.CommentWithAuthor{}, nil
	}

	userIDs := make([]primitive.ObjectID, 0, len(comments))
	for _, comment := range comments {
		userIDs = append(userIDs, comment.UserID)
	}

	users, err := loadUsersByID(ctx, r.users, userIDs)
	if err != nil {
		return nil, err
	}

	result := make([]models.CommentWithAuthor, 0, len(comments))
	for _, comment := range comments {
		author, ok := users[comment.UserID]
		if !ok {
			log.Printf("skipping comment %s: author %s not found", comment.ID.Hex(), comment.UserID.Hex())
			continue
		}
		result = append(result, models.CommentWithAuthor{
			Comment: comment,
			User:    &author,
		})
	}
	return result, nil
}
