// controllers/helpers.go
package controllers

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/snapgrid/snapgrid_backend/middleware"
	"github.com/snapgrid/snapgrid_backend/models"
)

const requestTimeout = 10 * time.Second

// Notifier pushes realtime events to users. *websocket.Hub satisfies it;
// tests substitute a stub and a nil notifier disables pushes entirely.
type Notifier interface {
	NotifyLike(ownerID primitive.ObjectID, data interface{})
	NotifyComment(ownerID primitive.ObjectID, data interface{})
	NotifyFollow(userID primitive.ObjectID, data interface{})
}

// requestContext derives the per-operation context from the request
func requestContext(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), requestTimeout)
}

// currentUserID resolves the authenticated user's id from the session
func currentUserID(c echo.Context) (primitive.ObjectID, bool) {
	userID := middleware.GetUserIDFromToken(c)
	if userID == "" {
		return primitive.NilObjectID, false
	}
	objID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return primitive.NilObjectID, false
	}
	return objID, true
}

func unauthorized(c echo.Context) error {
	return c.JSON(http.StatusUnauthorized, models.Response{
		Status:  http.StatusUnauthorized,
		Message: "Unauthorized",
	})
}

func badRequest(c echo.Context, message string) error {
	return c.JSON(http.StatusBadRequest, models.Response{
		Status:  http.StatusBadRequest,
		Message: message,
	})
}

func notFound(c echo.Context, message string) error {
	return c.JSON(http.StatusNotFound, models.Response{
		Status:  http.StatusNotFound,
		Message: message,
	})
}

// internalError logs the real failure and returns a generic message
func internalError(c echo.Context, operation string, err error) error {
	log.Printf("%s: %v", operation, err)
	return c.JSON(http.StatusInternalServerError, models.Response{
		Status:  http.StatusInternalServerError,
		Message: "Something went wrong",
	})
}

func ok(c echo.Context, message string, data interface{}) error {
	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: message,
		Data:    data,
	})
}

func created(c echo.Context, message string, data interface{}) error {
	return c.JSON(http.StatusCreated, models.Response{
		Status:  http.StatusCreated,
		Message: message,
		Data:    data,
	})
}
