// controllers/follow_controller.go
package controllers

import (
	"context"
	"errors"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/snapgrid/snapgrid_backend/models"
	"github.com/snapgrid/snapgrid_backend/repositories"
)

// FollowStore is the slice of the follow repository the handlers need
type FollowStore interface {
	Follow(ctx context.Context, followerID, followingID primitive.ObjectID) (models.Follow, error)
	Unfollow(ctx context.Context, followerID, followingID primitive.ObjectID) (bool, error)
}

type FollowController struct {
	follows  FollowStore
	notifier Notifier
}

func NewFollowController(follows FollowStore, notifier Notifier) *FollowController {
	return &FollowController{follows: follows, notifier: notifier}
}

// FollowUser creates the follow edge. Self-follow is rejected with 400
// before anything is written; following twice returns the existing edge.
func (fc *FollowController) FollowUser(c echo.Context) error {
	followerID, authenticated := currentUserID(c)
	if !authenticated {
		return unauthorized(c)
	}

	followingID, err := primitive.ObjectIDFromHex(c.Param("userId"))
	if err != nil {
		return badRequest(c, "Invalid user ID")
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	follow, err := fc.follows.Follow(ctx, followerID, followingID)
	if err != nil {
		if errors.Is(err, repositories.ErrSelfFollow) {
			return badRequest(c, "You cannot follow yourself")
		}
		if errors.Is(err, repositories.ErrNotFound) {
			return notFound(c, "User not found")
		}
		return internalError(c, "follow user", err)
	}

	if fc.notifier != nil {
		fc.notifier.NotifyFollow(followingID, follow)
	}

	return ok(c, "Following", follow)
}

// UnfollowUser removes the edge; a missing edge is a no-op success
func (fc *FollowController) UnfollowUser(c echo.Context) error {
	followerID, authenticated := currentUserID(c)
	if !authenticated {
		return unauthorized(c)
	}

	followingID, err := primitive.ObjectIDFromHex(c.Param("userId"))
	if err != nil {
		return badRequest(c, "Invalid user ID")
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	removed, err := fc.follows.Unfollow(ctx, followerID, followingID)
	if err != nil {
		return internalError(c, "unfollow user", err)
	}

	return ok(c, "Unfollowed", map[string]bool{"removed": removed})
}
