// routes/routes.go
package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/snapgrid/snapgrid_backend/controllers"
	"github.com/snapgrid/snapgrid_backend/middleware"
	"github.com/snapgrid/snapgrid_backend/models"
	"github.com/snapgrid/snapgrid_backend/websocket"
)

// Controllers bundles everything SetupRoutes wires in
type Controllers struct {
	Auth       *controllers.AuthController
	User       *controllers.UserController
	Post       *controllers.PostController
	Video      *controllers.VideoController
	Location   *controllers.LocationController
	Comment    *controllers.CommentController
	Engagement *controllers.EngagementController
	Follow     *controllers.FollowController
	Admin      *controllers.AdminController
	Object     *controllers.ObjectController
	Route      *controllers.RouteController
}

// SetupRoutes registers the full REST surface
func SetupRoutes(e *echo.Echo, ctl Controllers, policy middleware.AdminPolicy, hub *websocket.Hub) {
	// Public auth endpoints
	e.POST("/api/auth/signup", ctl.Auth.Signup)
	e.POST("/api/auth/login", ctl.Auth.Login)

	// Public objects are just static files
	e.Static("/public-objects", "uploads")

	r := e.Group("/api")
	r.Use(middleware.JWTMiddleware())
	r.Use(middleware.SessionBlacklist())

	// Session
	r.GET("/auth/user", ctl.Auth.GetCurrentUser)
	r.POST("/auth/logout", ctl.Auth.Logout)

	// Users
	r.PUT("/users/profile", ctl.User.UpdateProfile)
	r.GET("/users/profile", ctl.User.GetProfile)
	r.GET("/users/profile/:userId", ctl.User.GetProfile)
	r.PATCH("/users/bio", ctl.User.UpdateBio)
	r.GET("/users/:userId/posts", ctl.Post.GetUserPosts)
	r.GET("/users/:userId/videos", ctl.Video.GetUserVideos)

	// Posts
	r.POST("/posts", ctl.Post.CreatePost)
	r.GET("/posts", ctl.Post.GetFeed)
	r.GET("/posts/:id", ctl.Post.GetPost)
	r.DELETE("/posts/:id", ctl.Post.DeletePost)
	r.GET("/posts/:id/comments", ctl.Comment.GetPostComments)

	// Videos
	r.POST("/videos", ctl.Video.CreateVideo)
	r.GET("/videos", ctl.Video.GetFeed)
	r.GET("/videos/:id", ctl.Video.GetVideo)
	r.DELETE("/videos/:id", ctl.Video.DeleteVideo)
	r.GET("/videos/:id/comments", ctl.Comment.GetVideoComments)

	// Locations
	r.POST("/locations", ctl.Location.CreateLocation)
	r.GET("/locations", ctl.Location.GetLocations)
	r.GET("/locations/:id", ctl.Location.GetLocation)
	r.DELETE("/locations/:id", ctl.Location.DeleteLocation)

	// Comments
	r.POST("/comments", ctl.Comment.CreateComment)
	r.DELETE("/comments/:id", ctl.Comment.DeleteComment)

	// Likes and saves
	r.POST("/likes/:kind/:id", ctl.Engagement.Like)
	r.DELETE("/likes/:kind/:id", ctl.Engagement.Unlike)
	r.POST("/saves/:kind/:id", ctl.Engagement.Save)
	r.DELETE("/saves/:kind/:id", ctl.Engagement.Unsave)
	r.GET("/saves/posts", ctl.Engagement.GetSavedPosts)
	r.GET("/saves/videos", ctl.Engagement.GetSavedVideos)

	// Follows
	r.POST("/follows/:userId", ctl.Follow.FollowUser)
	r.DELETE("/follows/:userId", ctl.Follow.UnfollowUser)

	// Objects and the routing proxy
	r.POST("/objects/upload", ctl.Object.Upload)
	r.PUT("/location-images", ctl.Object.UpdateLocationImage)
	r.PUT("/media-images", ctl.Object.UpdateMediaImage)
	r.POST("/route", ctl.Route.GetRoute)

	// Realtime notifications
	r.GET("/ws", func(c echo.Context) error {
		userID := middleware.GetUserIDFromToken(c)
		objID, err := primitive.ObjectIDFromHex(userID)
		if err != nil {
			return c.JSON(http.StatusUnauthorized, models.Response{
				Status:  http.StatusUnauthorized,
				Message: "Unauthorized",
			})
		}
		return websocket.HandleWebSocket(c, hub, objID)
	})

	// Moderation endpoints
	admin := r.Group("/admin")
	admin.Use(middleware.RequireAdmin(policy))
	admin.GET("/posts", ctl.Admin.GetAllPosts)
	admin.GET("/videos", ctl.Admin.GetAllVideos)
	admin.GET("/locations", ctl.Admin.GetAllLocations)
	admin.GET("/comments", ctl.Admin.GetAllComments)
	admin.DELETE("/posts/:id", ctl.Admin.DeletePost)
	admin.DELETE("/videos/:id", ctl.Admin.DeleteVideo)
	admin.DELETE("/locations/:id", ctl.Admin.DeleteLocation)
	admin.DELETE("/comments/:id", ctl.Admin.DeleteComment)
}
