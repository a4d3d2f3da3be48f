// controllers/video_controller.go
package controllers

import (
	"context"
	"errors"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/snapgrid/snapgrid_backend/middleware"
	"github.com/snapgrid/snapgrid_backend/models"
	"github.com/snapgrid/snapgrid_backend/repositories"
	"github.com/snapgrid/snapgrid_backend/utils"
)

// VideoStore is the slice of the video repository the handlers need
type VideoStore interface {
	Create(ctx context.Context, userID primitive.ObjectID, req models.VideoRequest) (models.Video, error)
	GetFeed(ctx context.Context, viewerID *primitive.ObjectID, limit int64) ([]models.VideoWithDetails, error)
	GetByID(ctx context.Context, id primitive.ObjectID, viewerID *primitive.ObjectID) (models.VideoWithDetails, error)
	ListByUser(ctx context.Context, userID primitive.ObjectID, viewerID *primitive.ObjectID) ([]models.VideoWithDetails, error)
	Delete(ctx context.Context, id, ownerID primitive.ObjectID) (bool, error)
	DeleteAdmin(ctx context.Context, id primitive.ObjectID) (bool, error)
}

type VideoController struct {
	videos VideoStore
	policy middleware.AdminPolicy
}

func NewVideoController(videos VideoStore, policy middleware.AdminPolicy) *VideoController {
	return &VideoController{videos: videos, policy: policy}
}

// CreateVideo creates a new video post for the caller
func (vc *VideoController) CreateVideo(c echo.Context) error {
	userID, authenticated := currentUserID(c)
	if !authenticated {
		return unauthorized(c)
	}

	var req models.VideoRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, err.Error())
	}
	req.Content = utils.SanitizeInput(req.Content)

	ctx, cancel := requestContext(c)
	defer cancel()

	video, err := vc.videos.Create(ctx, userID, req)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return notFound(c, "Location not found")
		}
		return internalError(c, "create video", err)
	}

	return created(c, "Video created", video)
}

// GetFeed returns the most recent videos across all users
func (vc *VideoController) GetFeed(c echo.Context) error {
	viewerID, authenticated := currentUserID(c)
	if !authenticated {
		return unauthorized(c)
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	videos, err := vc.videos.GetFeed(ctx, &viewerID, feedLimit(c))
	if err != nil {
		return internalError(c, "load video feed", err)
	}

	return ok(c, "Feed retrieved", videos)
}

// GetVideo returns a single enriched video
func (vc *VideoController) GetVideo(c echo.Context) error {
	viewerID, authenticated := currentUserID(c)
	if !authenticated {
		return unauthorized(c)
	}

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return badRequest(c, "Invalid video ID")
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	video, err := vc.videos.GetByID(ctx, id, &viewerID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return notFound(c, "Video not found")
		}
		return internalError(c, "load video", err)
	}

	return ok(c, "Video retrieved", video)
}

// GetUserVideos lists a user's videos
func (vc *VideoController) GetUserVideos(c echo.Context) error {
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

	videos, err := vc.videos.ListByUser(ctx, userID, &viewerID)
	if err != nil {
		return internalError(c, "load user videos", err)
	}

	return ok(c, "Videos retrieved", videos)
}

// DeleteVideo removes a video. Owners delete their own; admins delete any.
func (vc *VideoController) DeleteVideo(c echo.Context) error {
	userID, authenticated := currentUserID(c)
	if !authenticated {
		return unauthorized(c)
	}

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return badRequest(c, "Invalid video ID")
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	var deleted bool
	if vc.policy.IsAdmin(middleware.GetEmailFromToken(c)) {
		deleted, err = vc.videos.DeleteAdmin(ctx, id)
	} else {
		deleted, err = vc.videos.Delete(ctx, id, userID)
	}
	if err != nil {
		return internalError(c, "delete video", err)
	}
	if !deleted {
		return notFound(c, "Video not found")
	}

	return ok(c, "Video deleted", nil)
}
