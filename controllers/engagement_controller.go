// controllers/engagement_controller.go
package controllers

import (
	"context"
	"errors"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/snapgrid/snapgrid_backend/models"
	"github.com/snapgrid/snapgrid_backend/repositories"
)

// EngagementStore is the slice of the engagement repository the handlers need
type EngagementStore interface {
	Like(ctx context.Context, userID primitive.ObjectID, kind models.TargetKind, targetID primitive.ObjectID) (models.Like, error)
	Unlike(ctx context.Context, userID primitive.ObjectID, kind models.TargetKind, targetID primitive.ObjectID) (bool, error)
	Save(ctx context.Context, userID primitive.ObjectID, kind models.TargetKind, targetID primitive.ObjectID) (models.Save, error)
	Unsave(ctx context.Context, userID primitive.ObjectID, kind models.TargetKind, targetID primitive.ObjectID) (bool, error)
	SavedPosts(ctx context.Context, userID primitive.ObjectID) ([]models.PostWithDetails, error)
	SavedVideos(ctx context.Context, userID primitive.ObjectID) ([]models.VideoWithDetails, error)
	TargetOwner(ctx context.Context, kind models.TargetKind, targetID primitive.ObjectID) (primitive.ObjectID, error)
}

type EngagementController struct {
	engagements EngagementStore
	notifier    Notifier
}

func NewEngagementController(engagements EngagementStore, notifier Notifier) *EngagementController {
	return &EngagementController{engagements: engagements, notifier: notifier}
}

// engagementTarget resolves the :kind/:id path params
func engagementTarget(c echo.Context) (models.TargetKind, primitive.ObjectID, error) {
	var kind models.TargetKind
	switch c.Param("kind") {
	case "post":
		kind = models.TargetPost
	case "video":
		kind = models.TargetVideo
	default:
		return "", primitive.NilObjectID, errors.New("invalid target kind")
	}

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return "", primitive.NilObjectID, errors.New("invalid target id")
	}
	return kind, id, nil
}

// Like records a like; liking twice returns the existing like unchanged
func (ec *EngagementController) Like(c echo.Context) error {
	userID, authenticated := currentUserID(c)
	if !authenticated {
		return unauthorized(c)
	}

	kind, targetID, err := engagementTarget(c)
	if err != nil {
		return badRequest(c, err.Error())
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	like, err := ec.engagements.Like(ctx, userID, kind, targetID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return notFound(c, "Target not found")
		}
		return internalError(c, "like", err)
	}

	if ec.notifier != nil {
		if ownerID, err := ec.engagements.TargetOwner(ctx, kind, targetID); err == nil && ownerID != userID {
			ec.notifier.NotifyLike(ownerID, like)
		}
	}

	return ok(c, "Liked", like)
}

// Unlike removes a like; unliking something never liked is a no-op success
func (ec *EngagementController) Unlike(c echo.Context) error {
	userID, authenticated := currentUserID(c)
	if !authenticated {
		return unauthorized(c)
	}

	kind, targetID, err := engagementTarget(c)
	if err != nil {
		return badRequest(c, err.Error())
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	removed, err := ec.engagements.Unlike(ctx, userID, kind, targetID)
	if err != nil {
		return internalError(c, "unlike", err)
	}

	return ok(c, "Unliked", map[string]bool{"removed": removed})
}

// Save bookmarks a target; saving twice returns the existing save unchanged
func (ec *EngagementController) Save(c echo.Context) error {
	userID, authenticated := currentUserID(c)
	if !authenticated {
		return unauthorized(c)
	}

	kind, targetID, err := engagementTarget(c)
	if err != nil {
		return badRequest(c, err.Error())
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	save, err := ec.engagements.Save(ctx, userID, kind, targetID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return notFound(c, "Target not found")
		}
		return internalError(c, "save", err)
	}

	return ok(c, "Saved", save)
}

// Unsave removes a bookmark; a missing bookmark is a no-op success
func (ec *EngagementController) Unsave(c echo.Context) error {
	userID, authenticated := currentUserID(c)
	if !authenticated {
		return unauthorized(c)
	}

	kind, targetID, err := engagementTarget(c)
	if err != nil {
		return badRequest(c, err.Error())
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	removed, err := ec.engagements.Unsave(ctx, userID, kind, targetID)
	if err != nil {
		return internalError(c, "unsave", err)
	}

	return ok(c, "Unsaved", map[string]bool{"removed": removed})
}

// GetSavedPosts lists the caller's saved posts; zero saves is an empty list
func (ec *EngagementController) GetSavedPosts(c echo.Context) error {
	userID, authenticated := currentUserID(c)
	if !authenticated {
		return unauthorized(c)
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	posts, err := ec.engagements.SavedPosts(ctx, userID)
	if err != nil {
		return internalError(c, "load saved posts", err)
	}

	return ok(c, "Saved posts retrieved", posts)
}

// GetSavedVideos lists the caller's saved videos
func (ec *EngagementController) GetSavedVideos(c echo.Context) error {
	userID, authenticated := currentUserID(c)
	if !authenticated {
		return unauthorized(c)
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	videos, err := ec.engagements.SavedVideos(ctx, userID)
	if err != nil {
		return internalError(c, "load saved videos", err)
	}

	return ok(c, "Saved videos retrieved", videos)
}
