// controllers/user_controller.go
package controllers

import (
	"context"
	"errors"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/snapgrid/snapgrid_backend/models"
	"github.com/snapgrid/snapgrid_backend/repositories"
	"github.com/snapgrid/snapgrid_backend/utils"
)

// UserStore is the slice of the user repository the profile handlers need
type UserStore interface {
	UpdateProfile(ctx context.Context, id primitive.ObjectID, req models.UpdateProfileRequest) (models.User, error)
	UpdateBio(ctx context.Context, id primitive.ObjectID, bio string) (models.User, error)
	GetProfile(ctx context.Context, id primitive.ObjectID, viewerID *primitive.ObjectID) (models.UserProfile, error)
}

type UserController struct {
	users UserStore
}

func NewUserController(users UserStore) *UserController {
	return &UserController{users: users}
}

// UpdateProfile updates the caller's editable profile fields
func (uc *UserController) UpdateProfile(c echo.Context) error {
	userID, authenticated := currentUserID(c)
	if !authenticated {
		return unauthorized(c)
	}

	var req models.UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, err.Error())
	}

	req.FirstName = utils.SanitizeInput(req.FirstName)
	req.LastName = utils.SanitizeInput(req.LastName)
	if req.Bio != nil {
		bio := utils.SanitizeInput(*req.Bio)
		req.Bio = &bio
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	user, err := uc.users.UpdateProfile(ctx, userID, req)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return notFound(c, "User not found")
		}
		return internalError(c, "update profile", err)
	}

	return ok(c, "Profile updated", user)
}

// UpdateBio is the legacy single-field bio update
func (uc *UserController) UpdateBio(c echo.Context) error {
	userID, authenticated := currentUserID(c)
	if !authenticated {
		return unauthorized(c)
	}

	var req models.UpdateBioRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, err.Error())
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	user, err := uc.users.UpdateBio(ctx, userID, utils.SanitizeInput(req.Bio))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return notFound(c, "User not found")
		}
		return internalError(c, "update bio", err)
	}

	return ok(c, "Bio updated", user)
}

// GetProfile returns an enriched profile. Without a userId path param it
// defaults to the caller's own profile.
func (uc *UserController) GetProfile(c echo.Context) error {
	viewerID, authenticated := currentUserID(c)
	if !authenticated {
		return unauthorized(c)
	}

	subjectID := viewerID
	if param := c.Param("userId"); param != "" {
		var err error
		subjectID, err = primitive.ObjectIDFromHex(param)
		if err != nil {
			return badRequest(c, "Invalid user ID")
		}
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	profile, err := uc.users.GetProfile(ctx, subjectID, &viewerID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return notFound(c, "User not found")
		}
		return internalError(c, "load profile", err)
	}

	return ok(c, "Profile retrieved", profile)
}
