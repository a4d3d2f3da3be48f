// controllers/post_controller.go
package controllers

import (
	"context"
	"errors"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/snapgrid/snapgrid_backend/middleware"
	"github.com/snapgrid/snapgrid_backend/models"
	"github.com/snapgrid/snapgrid_backend/repositories"
	"github.com/snapgrid/snapgrid_backend/utils"
)

const (
	defaultFeedLimit = 20
	maxFeedLimit     = 50
)

// PostStore is the slice of the post repository the handlers need
type PostStore interface {
	Create(ctx context.Context, userID primitive.ObjectID, req models.PostRequest) (models.Post, error)
	GetFeed(ctx context.Context, viewerID *primitive.ObjectID, limit int64) ([]models.PostWithDetails, error)
	GetByID(ctx context.Context, id primitive.ObjectID, viewerID *primitive.ObjectID) (models.PostWithDetails, error)
	ListByUser(ctx context.Context, userID primitive.ObjectID, viewerID *primitive.ObjectID) ([]models.PostWithDetails, error)
	Delete(ctx context.Context, id, ownerID primitive.ObjectID) (bool, error)
	DeleteAdmin(ctx context.Context, id primitive.ObjectID) (bool, error)
}

type PostController struct {
	posts  PostStore
	policy middleware.AdminPolicy
}

func NewPostController(posts PostStore, policy middleware.AdminPolicy) *PostController {
	return &PostController{posts: posts, policy: policy}
}

// feedLimit parses the limit query param, defaulting and capping it
func feedLimit(c echo.Context) int64 {
	limit := int64(defaultFeedLimit)
	if param := c.QueryParam("limit"); param != "" {
		if parsed, err := strconv.ParseInt(param, 10, 64); err == nil && parsed > 0 {
			limit = parsed
		}
	}
	if limit > maxFeedLimit {
		limit = maxFeedLimit
	}
	return limit
}

// CreatePost creates a new photo post for the caller
func (pc *PostController) CreatePost(c echo.Context) error {
	userID, authenticated := currentUserID(c)
	if !authenticated {
		return unauthorized(c)
	}

	var req models.PostRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, err.Error())
	}
	req.Content = utils.SanitizeInput(req.Content)

	ctx, cancel := requestContext(c)
	defer cancel()

	post, err := pc.posts.Create(ctx, userID, req)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return notFound(c, "Location not found")
		}
		return internalError(c, "create post", err)
	}

	return created(c, "Post created", post)
}

// GetFeed returns the most recent posts across all users
func (pc *PostController) GetFeed(c echo.Context) error {
	viewerID, authenticated := currentUserID(c)
	if !authenticated {
		return unauthorized(c)
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	posts, err := pc.posts.GetFeed(ctx, &viewerID, feedLimit(c))
	if err != nil {
		return internalError(c, "load post feed", err)
	}

	return ok(c, "Feed retrieved", posts)
}

// GetPost returns a single enriched post
func (pc *PostController) GetPost(c echo.Context) error {
	viewerID, authenticated := currentUserID(c)
	if !authenticated {
		return unauthorized(c)
	}

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return badRequest(c, "Invalid post ID")
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	post, err := pc.posts.GetByID(ctx, id, &viewerID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return notFound(c, "Post not found")
		}
		return internalError(c, "load post", err)
	}

	return ok(c, "Post retrieved", post)
}

// GetUserPosts lists a user's posts
func (pc *PostController) GetUserPosts(c echo.Context) error {
	viewerID, authenticated := currentUserID(c)
	if !authenticated {
		return unauthorized(c)
	}

	userID, err := primitive.ObjectIDFromHex(c.Param("userId"))
	if err != nil {
		return badRequest(c, "Invalid user ID")
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	posts, err := pc.posts.ListByUser(ctx, userID, &viewerID)
	if err != nil {
		return internalError(c, "load user posts", err)
	}

	return ok(c, "Posts retrieved", posts)
}

// DeletePost removes a post. Owners delete their own; admins delete any.
// A non-owner non-admin gets 404 and the row is untouched.
func (pc *PostController) DeletePost(c echo.Context) error {
	userID, authenticated := currentUserID(c)
	if !authenticated {
		return unauthorized(c)
	}

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return badRequest(c, "Invalid post ID")
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	var deleted bool
	if pc.policy.IsAdmin(middleware.GetEmailFromToken(c)) {
		deleted, err = pc.posts.DeleteAdmin(ctx, id)
	} else {
		deleted, err = pc.posts.Delete(ctx, id, userID)
	}
	if err != nil {
		return internalError(c, "delete post", err)
	}
	if !deleted {
		return notFound(c, "Post not found")
	}

	return ok(c, "Post deleted", nil)
}
