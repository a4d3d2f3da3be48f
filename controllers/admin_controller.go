// controllers/admin_controller.go
//
// Moderation endpoints. All routes here sit behind the RequireAdmin
// middleware; listings are ownership-agnostic and deletes ignore ownership.
package controllers

import (
	"context"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/snapgrid/snapgrid_backend/models"
)

type AdminPostStore interface {
	ListAll(ctx context.Context) ([]models.PostWithDetails, error)
	DeleteAdmin(ctx context.Context, id primitive.ObjectID) (bool, error)
}

type AdminVideoStore interface {
	ListAll(ctx context.Context) ([]models.VideoWithDetails, error)
	DeleteAdmin(ctx context.Context, id primitive.ObjectID) (bool, error)
}

type AdminLocationStore interface {
	ListAll(ctx context.Context) ([]models.Location, error)
	DeleteAdmin(ctx context.Context, id primitive.ObjectID) (bool, error)
}

type AdminCommentStore interface {
	ListAll(ctx context.Context) ([]models.CommentWithAuthor, error)
	DeleteAdmin(ctx context.Context, id primitive.ObjectID) (bool, error)
}

type AdminController struct {
	posts     AdminPostStore
	videos    AdminVideoStore
	locations AdminLocationStore
	comments  AdminCommentStore
}

func NewAdminController(posts AdminPostStore, videos AdminVideoStore, locations AdminLocationStore, comments AdminCommentStore) *AdminController {
	return &AdminController{
		posts:     posts,
		videos:    videos,
		locations: locations,
		comments:  comments,
	}
}

// GetAllPosts returns every post; viewer-relative flags stay false
func (ac *AdminController) GetAllPosts(c echo.Context) error {
	ctx, cancel := requestContext(c)
	defer cancel()

	posts, err := ac.posts.ListAll(ctx)
	if err != nil {
		return internalError(c, "list all posts", err)
	}
	return ok(c, "Posts retrieved", posts)
}

// GetAllVideos returns every video
func (ac *AdminController) GetAllVideos(c echo.Context) error {
	ctx, cancel := requestContext(c)
	defer cancel()

	videos, err := ac.videos.ListAll(ctx)
	if err != nil {
		return internalError(c, "list all videos", err)
	}
	return ok(c, "Videos retrieved", videos)
}

// GetAllLocations returns every location
func (ac *AdminController) GetAllLocations(c echo.Context) error {
	ctx, cancel := requestContext(c)
	defer cancel()

	locations, err := ac.locations.ListAll(ctx)
	if err != nil {
		return internalError(c, "list all locations", err)
	}
	return ok(c, "Locations retrieved", locations)
}

// GetAllComments returns every comment
func (ac *AdminController) GetAllComments(c echo.Context) error {
	ctx, cancel := requestContext(c)
	defer cancel()

	comments, err := ac.comments.ListAll(ctx)
	if err != nil {
		return internalError(c, "list all comments", err)
	}
	return ok(c, "Comments retrieved", comments)
}

// DeletePost removes any post regardless of ownership
func (ac *AdminController) DeletePost(c echo.Context) error {
	return ac.deleteByID(c, "Post", func(ctx context.Context, id primitive.ObjectID) (bool, error) {
		return ac.posts.DeleteAdmin(ctx, id)
	})
}

// DeleteVideo removes any video regardless of ownership
func (ac *AdminController) DeleteVideo(c echo.Context) error {
	return ac.deleteByID(c, "Video", func(ctx context.Context, id primitive.ObjectID) (bool, error) {
		return ac.videos.DeleteAdmin(ctx, id)
	})
}

// DeleteLocation removes any location regardless of ownership
func (ac *AdminController) DeleteLocation(c echo.Context) error {
	return ac.deleteByID(c, "Location", func(ctx context.Context, id primitive.ObjectID) (bool, error) {
		return ac.locations.DeleteAdmin(ctx, id)
	})
}

// DeleteComment removes any comment regardless of ownership
func (ac *AdminController) DeleteComment(c echo.Context) error {
	return ac.deleteByID(c, "Comment", func(ctx context.Context, id primitive.ObjectID) (bool, error) {
		return ac.comments.DeleteAdmin(ctx, id)
	})
}

func (ac *AdminController) deleteByID(c echo.Context, entity string, del func(context.Context, primitive.ObjectID) (bool, error)) error {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return badRequest(c, "Invalid ID")
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	deleted, err := del(ctx, id)
	if err != nil {
		return internalError(c, "admin delete", err)
	}
	if !deleted {
		return notFound(c, entity+" not found")
	}
	return ok(c, entity+" deleted", nil)
}
