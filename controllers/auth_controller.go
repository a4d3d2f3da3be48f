// controllers/auth_controller.go
package controllers

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/snapgrid/snapgrid_backend/middleware"
	"github.com/snapgrid/snapgrid_backend/models"
	"github.com/snapgrid/snapgrid_backend/repositories"
	"github.com/snapgrid/snapgrid_backend/utils"
)

// AuthUserStore is the slice of the user repository the auth handlers need
type AuthUserStore interface {
	Create(ctx context.Context, user models.User) (models.User, error)
	GetByEmail(ctx context.Context, email string) (models.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (models.User, error)
}

type AuthController struct {
	users  AuthUserStore
	policy middleware.AdminPolicy
}

func NewAuthController(users AuthUserStore, policy middleware.AdminPolicy) *AuthController {
	return &AuthController{users: users, policy: policy}
}

// Signup registers a new user and returns a session token
func (ac *AuthController) Signup(c echo.Context) error {
	var req models.SignupRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, err.Error())
	}

	email, err := utils.SanitizeEmail(req.Email)
	if err != nil {
		return badRequest(c, "Invalid email format")
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		return internalError(c, "hash password", err)
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	user, err := ac.users.Create(ctx, models.User{
		Username:  utils.SanitizeUsername(req.Username),
		Email:     email,
		Password:  hashed,
		FirstName: utils.SanitizeInput(req.FirstName),
		LastName:  utils.SanitizeInput(req.LastName),
	})
	if err != nil {
		if errors.Is(err, repositories.ErrConflict) {
			return c.JSON(http.StatusConflict, models.Response{
				Status:  http.StatusConflict,
				Message: "Email or username already in use",
			})
		}
		return internalError(c, "create user", err)
	}

	token, err := middleware.GenerateJWT(user.ID.Hex(), user.Email)
	if err != nil {
		return internalError(c, "generate token", err)
	}

	return created(c, "Account created", models.AuthData{Token: token, User: user})
}

// Login verifies credentials and returns a session token
func (ac *AuthController) Login(c echo.Context) error {
	var req models.LoginRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, err.Error())
	}

	email, err := utils.SanitizeEmail(req.Email)
	if err != nil {
		return badRequest(c, "Invalid email format")
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	user, err := ac.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.JSON(http.StatusUnauthorized, models.Response{
				Status:  http.StatusUnauthorized,
				Message: "Invalid email or password",
			})
		}
		return internalError(c, "find user", err)
	}

	if !utils.CheckPassword(user.Password, req.Password) {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Invalid email or password",
		})
	}

	token, err := middleware.GenerateJWT(user.ID.Hex(), user.Email)
	if err != nil {
		return internalError(c, "generate token", err)
	}

	return ok(c, "Login successful", models.AuthData{Token: token, User: user})
}

// Logout invalidates the current session token
func (ac *AuthController) Logout(c echo.Context) error {
	middleware.BlacklistToken(c, middleware.RawToken(c))
	return ok(c, "Logged out", nil)
}

// GetCurrentUser returns the session's user together with the admin flag
func (ac *AuthController) GetCurrentUser(c echo.Context) error {
	userID, authenticated := currentUserID(c)
	if !authenticated {
		return unauthorized(c)
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	user, err := ac.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return unauthorized(c)
		}
		return internalError(c, "load session user", err)
	}

	return ok(c, "Current user", models.SessionUser{
		User:    user,
		IsAdmin: ac.policy.IsAdmin(user.Email),
	})
}
