// repositories/post_repository.go
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

// PostRepository is the data access layer for photo posts and their
// enriched views.
type PostRepository struct {
	posts     *mongo.Collection
	users     *mongo.Collection
	locations *mongo.Collection
	likes     *mongo.Collection
	comments  *mongo.Collection
	saves     *mongo.Collection
}

func NewPostRepository(db *mongo.Database) *PostRepository {
	return &PostRepository{
		posts:     db.Collection("posts"),
		users:     db.Collection("users"),
		locations: db.Collection("locations"),
		likes:     db.Collection("likes"),
		comments:  db.Collection("comments"),
		saves:     db.Collection("saves"),
	}
}

// Create persists a new post. A referenced location must exist.
func (r *PostRepository) Create(ctx context.Context, userID primitive.ObjectID, req models.PostRequest) (models.Post, error) {
	post := models.Post{
		UserID:    userID,
		Content:   req.Content,
		ImageURL:  req.ImageURL,
		CreatedAt: time.Now(),
	}

	if req.LocationID != "" {
		locationID, err := primitive.ObjectIDFromHex(req.LocationID)
		if err != nil {
			return models.Post{}, ErrNotFound
		}
		count, err := r.locations.CountDocuments(ctx, bson.M{"_id": locationID})
		if err != nil {
			return models.Post{}, err
		}
		if count == 0 {
			return models.Post{}, ErrNotFound
		}
		post.LocationID = &locationID
	}

	result, err := r.posts.InsertOne(ctx, post)
	if err != nil {
		return models.Post{}, err
	}
	post.ID = result.InsertedID.(primitive.ObjectID)
	return post, nil
}

// GetFeed returns the most recent posts across all users, enriched for the
// viewer. Ordering is createdAt descending with _id as the tiebreak so pages
// are stable.
func (r *PostRepository) GetFeed(ctx context.Context, viewerID *primitive.ObjectID, limit int64) ([]models.PostWithDetails, error) {
	findOptions := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}).
		SetLimit(limit)

	cursor, err := r.posts.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var posts []models.Post
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, err
	}

	return r.enrich(ctx, posts, viewerID)
}

// GetByID returns a single enriched post. A missing base row or a missing
// owner both come back as ErrNotFound.
func (r *PostRepository) GetByID(ctx context.Context, id primitive.ObjectID, viewerID *primitive.ObjectID) (models.PostWithDetails, error) {
	var post models.Post
	err := r.posts.FindOne(ctx, bson.M{"_id": id}).Decode(&post)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return models.PostWithDetails{}, ErrNotFound
		}
		return models.PostWithDetails{}, err
	}

	details, err := r.enrich(ctx, []models.Post{post}, viewerID)
	if err != nil {
		return models.PostWithDetails{}, err
	}
	if len(details) == 0 {
		return models.PostWithDetails{}, ErrNotFound
	}
	return details[0], nil
}

// ListByUser returns a user's posts, newest first, enriched for the viewer
func (r *PostRepository) ListByUser(ctx context.Context, userID primitive.ObjectID, viewerID *primitive.ObjectID) ([]models.PostWithDetails, error) {
	findOptions := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}})

	cursor, err := r.posts.Find(ctx, bson.M{"userId": userID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var posts []models.Post
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, err
	}

	return r.enrich(ctx, posts, viewerID)
}

// ListAll returns every post for moderation use. There is no single viewer,
// so the viewer-relative flags stay false.
func (r *PostRepository) ListAll(ctx context.Context) ([]models.PostWithDetails, error) {
	findOptions := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}})

	cursor, err := r.posts.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var posts []models.Post
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, err
	}

	return r.enrich(ctx, posts, nil)
}

// Delete removes a post if it belongs to ownerID and reports whether a row
// was removed. Dependent likes, comments and saves are removed with it.
func (r *PostRepository) Delete(ctx context.Context, id, ownerID primitive.ObjectID) (bool, error) {
	result, err := r.posts.DeleteOne(ctx, bson.M{"_id": id, "userId": ownerID})
	if err != nil {
		return false, err
	}
	if result.DeletedCount == 0 {
		return false, nil
	}
	return true, r.cascade(ctx, id)
}

// DeleteAdmin removes a post regardless of ownership
func (r *PostRepository) DeleteAdmin(ctx context.Context, id primitive.ObjectID) (bool, error) {
	result, err := r.posts.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, err
	}
	if result.DeletedCount == 0 {
		return false, nil
	}
	return true, r.cascade(ctx, id)
}

// SetImage updates the image url of an owned post
func (r *PostRepository) SetImage(ctx context.Context, id, ownerID primitive.ObjectID, imageURL string) (bool, error) {
	result, err := r.posts.UpdateOne(ctx,
		bson.M{"_id": id, "userId": ownerID},
		bson.M{"$set": bson.M{"imageUrl": imageURL}})
	if err != nil {
		return false, err
	}
	return result.MatchedCount > 0, nil
}

// cascade removes the likes, comments and saves that reference a deleted
// post. Mongo has no foreign keys, so the data layer owns the cascade.
func (r *PostRepository) cascade(ctx context.Context, id primitive.ObjectID) error {
	filter := bson.M{"postId": id}
	for _, coll := range []*mongo.Collection{r.likes, r.comments, r.saves} {
		if _, err := coll.DeleteMany(ctx, filter); err != nil {
			return err
		}
	}
	return nil
}

// enrich performs the page-level lookups and assembles the detail views
func (r *PostRepository) enrich(ctx context.Context, posts []models.Post, viewerID *primitive.ObjectID) ([]models.PostWithDetails, error) {
	if len(posts) == 0 {
		return []models.PostWithDetails{}, nil
	}

	postIDs := make([]primitive.ObjectID, 0, len(posts))
	userIDs := make([]primitive.ObjectID, 0, len(posts))
	locationIDs := make([]primitive.ObjectID, 0, len(posts))
	for _, post := range posts {
		postIDs = append(postIDs, post.ID)
		userIDs = append(userIDs, post.UserID)
		if post.LocationID != nil {
			locationIDs = append(locationIDs, *post.LocationID)
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
	likeCounts, err := countByTarget(ctx, r.likes, "postId", postIDs)
	if err != nil {
		return nil, err
	}
	commentCounts, err := countByTarget(ctx, r.comments, "postId", postIDs)
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
		e.liked, err = viewerTargetSet(ctx, r.likes, "postId", *viewerID, postIDs)
		if err != nil {
			return nil, err
		}
		e.saved, err = viewerTargetSet(ctx, r.saves, "postId", *viewerID, postIDs)
		if err != nil {
			return nil, err
		}
	}

	return assemblePostDetails(posts, e), nil
}
