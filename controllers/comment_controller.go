// controllers/comment_controller.go
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

// CommentStore is the slice of the comment repository the handlers need
type CommentStore interface {
	Create(ctx context.Context, userID primitive.ObjectID, kind models.TargetKind, targetID primitive.ObjectID, content string) (models.Comment, error)
	ListForTarget(ctx context.Context, kind models.TargetKind, targetID primitive.ObjectID) ([]models.CommentWithAuthor, error)
	TargetOwner(ctx context.Context, kind models.TargetKind, targetID primitive.ObjectID) (primitive.ObjectID, error)
	Delete(ctx context.Context, id, ownerID primitive.ObjectID) (bool, error)
	DeleteAdmin(ctx context.Context, id primitive.ObjectID) (bool, error)
}

type CommentController struct {
	comments CommentStore
	policy   middleware.AdminPolicy
	notifier Notifier
}

func NewCommentController(comments CommentStore, policy middleware.AdminPolicy, notifier Notifier) *CommentController {
	return &CommentController{comments: comments, policy: policy, notifier: notifier}
}

// commentTarget resolves the request's target kind and id. Exactly one of
// postId/videoId must be present.
func commentTarget(req models.CommentRequest) (models.TargetKind, primitive.ObjectID, error) {
	if (req.PostID == "") == (req.VideoID == "") {
		return "", primitive.NilObjectID, errors.New("exactly one of postId or videoId is required")
	}
	if req.PostID != "" {
		id, err := primitive.ObjectIDFromHex(req.PostID)
		return models.TargetPost, id, err
	}
	id, err := primitive.ObjectIDFromHex(req.VideoID)
	return models.TargetVideo, id, err
}

// CreateComment adds a comment to a post or video
func (cc *CommentController) CreateComment(c echo.Context) error {
	userID, authenticated := currentUserID(c)
	if !authenticated {
		return unauthorized(c)
	}

	var req models.CommentRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, err.Error())
	}

	kind, targetID, err := commentTarget(req)
	if err != nil {
		return badRequest(c, "Exactly one of postId or videoId is required")
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	comment, err := cc.comments.Create(ctx, userID, kind, targetID, utils.SanitizeInput(req.Content))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return notFound(c, "Target not found")
		}
		return internalError(c, "create comment", err)
	}

	if cc.notifier != nil {
		if ownerID, err := cc.comments.TargetOwner(ctx, kind, targetID); err == nil && ownerID != userID {
			cc.notifier.NotifyComment(ownerID, comment)
		}
	}

	return created(c, "Comment created", comment)
}

// GetPostComments lists the comments on a post, newest first
func (cc *CommentController) GetPostComments(c echo.Context) error {
	return cc.listComments(c, models.TargetPost)
}

// GetVideoComments lists the comments on a video, newest first
func (cc *CommentController) GetVideoComments(c echo.Context) error {
	return cc.listComments(c, models.TargetVideo)
}

func (cc *CommentController) listComments(c echo.Context, kind models.TargetKind) error {
	if _, authenticated := currentUserID(c); !authenticated {
		return unauthorized(c)
	}

	targetID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return badRequest(c, "Invalid ID")
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	comments, err := cc.comments.ListForTarget(ctx, kind, targetID)
	if err != nil {
		return internalError(c, "load comments", err)
	}

	return ok(c, "Comments retrieved", comments)
}

// DeleteComment removes a comment. Authors delete their own; admins delete any.
func (cc *CommentController) DeleteComment(c echo.Context) error {
	userID, authenticated := currentUserID(c)
	if !authenticated {
		return unauthorized(c)
	}

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return badRequest(c, "Invalid comment ID")
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	var deleted bool
	if cc.policy.IsAdmin(middleware.GetEmailFromToken(c)) {
		deleted, err = cc.comments.DeleteAdmin(ctx, id)
	} else {
		deleted, err = cc.comments.Delete(ctx, id, userID)
	}
	if err != nil {
		return internalError(c, "delete comment", err)
	}
	if !deleted {
		return notFound(c, "Comment not found")
	}

	return ok(c, "Comment deleted", nil)
}
