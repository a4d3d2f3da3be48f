// repositories/enrich.go
//
// Shared helpers for assembling enriched views. Counts and viewer flags are
// computed once per page with $in queries, never once per row: a feed page of
// N items costs a fixed number of round-trips regardless of N.
package repositories

import (
	"context"
	"log"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/snapgrid/snapgrid_backend/models"
)

// countByTarget returns, for each id in ids, how many documents in coll
// reference it through field. Ids with no documents are absent from the map.
func countByTarget(ctx context.Context, coll *mongo.Collection, field string, ids []primitive.ObjectID) (map[primitive.ObjectID]int64, error) {
	counts := make(map[primitive.ObjectID]int64, len(ids))
	if len(ids) == 0 {
		return counts, nil
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{field: bson.M{"$in": ids}}}},
		{{Key: "$group", Value: bson.M{"_id": "$" + field, "count": bson.M{"$sum": 1}}}},
	}

	cursor, err := coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rows []struct {
		ID    primitive.ObjectID `bson:"_id"`
		Count int64              `bson:"count"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}

	for _, row := range rows {
		counts[row.ID] = row.Count
	}
	return counts, nil
}

// viewerTargetSet returns the subset of ids the viewer has a document for in
// coll (their likes or saves among the page's items).
func viewerTargetSet(ctx context.Context, coll *mongo.Collection, field string, viewerID primitive.ObjectID, ids []primitive.ObjectID) (map[primitive.ObjectID]bool, error) {
	set := make(map[primitive.ObjectID]bool, len(ids))
	if len(ids) == 0 {
		return set, nil
	}

	cursor, err := coll.Find(ctx, bson.M{"userId": viewerID, field: bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rows []bson.M
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}

	for _, row := range rows {
		if id, ok := row[field].(primitive.ObjectID); ok {
			set[id] = true
		}
	}
	return set, nil
}

// loadUsersByID fetches the named users into a map keyed by id
func loadUsersByID(ctx context.Context, coll *mongo.Collection, ids []primitive.ObjectID) (map[primitive.ObjectID]models.User, error) {
	users := make(map[primitive.ObjectID]models.User, len(ids))
	if len(ids) == 0 {
		return users, nil
	}

	cursor, err := coll.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rows []models.User
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}

	for _, user := range rows {
		user.Password = ""
		users[user.ID] = user
	}
	return users, nil
}

// loadLocationsByID fetches the named locations into a map keyed by id
func loadLocationsByID(ctx context.Context, coll *mongo.Collection, ids []primitive.ObjectID) (map[primitive.ObjectID]models.Location, error) {
	locations := make(map[primitive.ObjectID]models.Location, len(ids))
	if len(ids) == 0 {
		return locations, nil
	}

	cursor, err := coll.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rows []models.Location
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}

	for _, location := range rows {
		locations[location.ID] = location
	}
	return locations, nil
}

// ownerOfTarget resolves the owning user of a post or video, used when
// pushing notifications to content owners.
func ownerOfTarget(ctx context.Context, posts, videos *mongo.Collection, kind models.TargetKind, targetID primitive.ObjectID) (primitive.ObjectID, error) {
	coll := posts
	if kind == models.TargetVideo {
		coll = videos
	}

	var row struct {
		UserID primitive.ObjectID `bson:"userId"`
	}
	err := coll.FindOne(ctx, bson.M{"_id": targetID}).Decode(&row)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return primitive.NilObjectID, ErrNotFound
		}
		return primitive.NilObjectID, err
	}
	return row.UserID, nil
}

// enrichment holds the page-level lookups an assemble pass combines with the
// base rows. Nil flag maps mean "no viewer": every flag comes out false.
type enrichment struct {
	users         map[primitive.ObjectID]models.User
	locations     map[primitive.ObjectID]models.Location
	likeCounts    map[primitive.ObjectID]int64
	commentCounts map[primitive.ObjectID]int64
	liked         map[primitive.ObjectID]bool
	saved         map[primitive.ObjectID]bool
}

// assemblePostDetails combines base posts with page-level lookups, preserving
// input order. A post whose owner is missing is skipped and logged rather
// than failing the whole page.
func assemblePostDetails(posts []models.Post, e enrichment) []models.PostWithDetails {
	details := make([]models.PostWithDetails, 0, len(posts))
	for _, post := range posts {
		owner, ok := e.users[post.UserID]
		if !ok {
			log.Printf("skipping post %s: owner %s not found", post.ID.Hex(), post.UserID.Hex())
			continue
		}

		item := models.PostWithDetails{
			Post:          post,
			User:          &owner,
			LikesCount:    e.likeCounts[post.ID],
			CommentsCount: e.commentCounts[post.ID],
			IsLiked:       e.liked[post.ID],
			IsSaved:       e.saved[post.ID],
		}
		if post.LocationID != nil {
			if location, ok := e.locations[*post.LocationID]; ok {
				item.Location = &location
			}
		}
		details = append(details, item)
	}
	return details
}

// assembleVideoDetails is the video counterpart of assemblePostDetails
func assembleVideoDetails(videos []models.Video, e enrichment) []models.VideoWithDetails {
	details := make([]models.VideoWithDetails, 0, len(videos))
	for _, video := range videos {
		owner, ok := e.users[video.UserID]
		if !ok {
			log.Printf("skipping video %s: owner %s not found", video.ID.Hex(), video.UserID.Hex())
			continue
		}

		item := models.VideoWithDetails{
			Video:         video,
			User:          &owner,
			LikesCount:    e.likeCounts[video.ID],
			CommentsCount: e.commentCounts[video.ID],
			IsLiked:       e.liked[video.ID],
			IsSaved:       e.saved[video.ID],
		}
		if video.LocationID != nil {
			if location, ok := e.locations[*video.LocationID]; ok {
				item.Location = &location
			}
		}
		details = append(details, item)
	}
	return details
}
