// controllers/location_controller.go
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

// LocationStore is the slice of the location repository the handlers need
type LocationStore interface {
	Create(ctx context.Context, userID primitive.ObjectID, req models.LocationRequest) (models.Location, error)
	ListByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Location, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (models.LocationWithDetails, error)
	Delete(ctx context.Context, id, ownerID primitive.ObjectID) (bool, error)
	DeleteAdmin(ctx context.Context, id primitive.ObjectID) (bool, error)
}

type LocationController struct {
	locations LocationStore
	policy    middleware.AdminPolicy
}

func NewLocationController(locations LocationStore, policy middleware.AdminPolicy) *LocationController {
	return &LocationController{locations: locations, policy: policy}
}

// CreateLocation creates a place tag owned by the caller
func (lc *LocationController) CreateLocation(c echo.Context) error {
	userID, authenticated := currentUserID(c)
	if !authenticated {
		return unauthorized(c)
	}

	var req models.LocationRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, err.Error())
	}
	req.Label = utils.SanitizeInput(req.Label)

	ctx, cancel := requestContext(c)
	defer cancel()

	location, err := lc.locations.Create(ctx, userID, req)
	if err != nil {
		return internalError(c, "create location", err)
	}

	return created(c, "Location created", location)
}

// GetLocations lists the caller's locations
func (lc *LocationController) GetLocations(c echo.Context) error {
	userID, authenticated := currentUserID(c)
	if !authenticated {
		return unauthorized(c)
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	locations, err := lc.locations.ListByUser(ctx, userID)
	if err != nil {
		return internalError(c, "load locations", err)
	}

	return ok(c, "Locations retrieved", locations)
}

// GetLocation returns a location with its tagged-content count
func (lc *LocationController) GetLocation(c echo.Context) error {
	if _, authenticated := currentUserID(c); !authenticated {
		return unauthorized(c)
	}

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return badRequest(c, "Invalid location ID")
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	location, err := lc.locations.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return notFound(c, "Location not found")
		}
		return internalError(c, "load location", err)
	}

	return ok(c, "Location retrieved", location)
}

// DeleteLocation removes a location. Owners delete their own; admins delete any.
func (lc *LocationController) DeleteLocation(c echo.Context) error {
	userID, authenticated := currentUserID(c)
	if !authenticated {
		return unauthorized(c)
	}

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return badRequest(c, "Invalid location ID")
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	var deleted bool
	if lc.policy.IsAdmin(middleware.GetEmailFromToken(c)) {
		deleted, err = lc.locations.DeleteAdmin(ctx, id)
	} else {
		deleted, err = lc.locations.Delete(ctx, id, userID)
	}
	if err != nil {
		return internalError(c, "delete location", err)
	}
	if !deleted {
		return notFound(c, "Location not found")
	}

	return ok(c, "Location deleted", nil)
}
