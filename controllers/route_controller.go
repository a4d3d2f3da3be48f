// controllers/route_controller.go
package controllers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/snapgrid/snapgrid_backend/models"
)

// RouteProxy forwards routing requests to the external routing API
type RouteProxy interface {
	GetRoute(ctx context.Context, req models.RouteRequest) (json.RawMessage, error)
}

type RouteController struct {
	routes RouteProxy
}

func NewRouteController(routes RouteProxy) *RouteController {
	return &RouteController{routes: routes}
}

// GetRoute proxies a routing request. The upstream response body is passed
// through unchanged; upstream failures surface as 502.
func (rc *RouteController) GetRoute(c echo.Context) error {
	if _, authenticated := currentUserID(c); !authenticated {
		return unauthorized(c)
	}

	var req models.RouteRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, err.Error())
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	route, err := rc.routes.GetRoute(ctx, req)
	if err != nil {
		return c.JSON(http.StatusBadGateway, models.Response{
			Status:  http.StatusBadGateway,
			Message: "Routing service unavailable",
		})
	}

	return c.JSONBlob(http.StatusOK, route)
}
