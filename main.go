package main

import (
	"log"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"github.com/snapgrid/snapgrid_backend/config"
	"github.com/snapgrid/snapgrid_backend/controllers"
	"github.com/snapgrid/snapgrid_backend/middleware"
	"github.com/snapgrid/snapgrid_backend/repositories"
	"github.com/snapgrid/snapgrid_backend/routes"
	"github.com/snapgrid/snapgrid_backend/services"
	"github.com/snapgrid/snapgrid_backend/utils"
	"github.com/snapgrid/snapgrid_backend/websocket"
)

// CustomValidator is a custom validator for Echo
type CustomValidator struct {
	validator *validator.Validate
}

// Validate validates the request body
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

func main() {
	// Load .env file
	err := godotenv.Load()
	if err != nil {
		log.Println("Warning: .env file not found")
	}

	// Connect to Redis (logout blacklist; optional)
	config.ConnectRedis()

	// Connect to database
	client := config.ConnectDB()
	db := client.Database(config.DatabaseName())

	// Create WebSocket hub for realtime notifications
	wsHub := websocket.NewHub()
	go wsHub.Run()

	// Create a new Echo instance
	e := echo.New()

	// Initialize custom validator
	e.Validator = &CustomValidator{validator: validator.New()}

	// Initialize rate limiter
	rateLimiter := middleware.NewRateLimiter()

	// Middleware
	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(middleware.GlobalCORS())
	e.Use(rateLimiter.RateLimit())
	e.Use(middleware.SecurityHeadersWithConfig(middleware.SecurityConfig{
		AllowedDomains: []string{"*"},
		AllowInlineJS:  false,
	}))

	e.Match([]string{"GET", "HEAD"}, "/", func(c echo.Context) error {
		return c.JSON(200, map[string]string{
			"status":  "OK",
			"message": "Snapgrid Backend is running",
			"version": "1.0",
		})
	})

	e.Match([]string{"GET", "HEAD"}, "/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{
			"status":   "healthy",
			"database": "connected",
		})
	})

	// Admin access is an injected policy, not a global lookup
	adminPolicy := middleware.NewAdminPolicyFromEnv()

	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	postRepo := repositories.NewPostRepository(db)
	videoRepo := repositories.NewVideoRepository(db)
	locationRepo := repositories.NewLocationRepository(db)
	commentRepo := repositories.NewCommentRepository(db)
	engagementRepo := repositories.NewEngagementRepository(db, postRepo, videoRepo)
	followRepo := repositories.NewFollowRepository(db)

	// Initialize controllers
	ctl := routes.Controllers{
		Auth:       controllers.NewAuthController(userRepo, adminPolicy),
		User:       controllers.NewUserController(userRepo),
		Post:       controllers.NewPostController(postRepo, adminPolicy),
		Video:      controllers.NewVideoController(videoRepo, adminPolicy),
		Location:   controllers.NewLocationController(locationRepo, adminPolicy),
		Comment:    controllers.NewCommentController(commentRepo, adminPolicy, wsHub),
		Engagement: controllers.NewEngagementController(engagementRepo, wsHub),
		Follow:     controllers.NewFollowController(followRepo, wsHub),
		Admin:      controllers.NewAdminController(postRepo, videoRepo, locationRepo, commentRepo),
		Object:     controllers.NewObjectController(postRepo, videoRepo, locationRepo),
		Route:      controllers.NewRouteController(services.NewRouteService()),
	}

	routes.SetupRoutes(e, ctl, adminPolicy, wsHub)

	// Ensure the uploads directories exist
	if err := utils.InitializeStorage(); err != nil {
		log.Fatal(err)
	}
	e.Static("/uploads", "uploads")

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	e.Logger.Fatal(e.Start(":" + port))
}
