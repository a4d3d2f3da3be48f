// middleware/jwt_middleware.go
package middleware

import (
	"errors"
	"log"
	"os"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"github.com/snapgrid/snapgrid_backend/config"
)

const sessionTTL = 72 * time.Hour

// JwtCustomClaims for session tokens
type JwtCustomClaims struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	jwt.StandardClaims
}

// GetJWTSecret returns the JWT secret from environment variables
func GetJWTSecret() string {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		panic("JWT_SECRET environment variable is required")
	}
	return secret
}

// JWTMiddleware returns the configured session middleware. It only verifies
// the signature and seeds the context; logout invalidation is enforced by
// SessionBlacklist, chained after it.
func JWTMiddleware() echo.MiddlewareFunc {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Printf("Warning: JWT_SECRET environment variable is not set")
		return func(next echo.HandlerFunc) echo.HandlerFunc {
			return func(c echo.Context) error {
				return echo.NewHTTPError(echo.ErrUnauthorized.Code, "JWT configuration error")
			}
		}
	}

	return echoMiddleware.JWTWithConfig(echoMiddleware.JWTConfig{
		SigningKey: []byte(secret),
		Claims:     &JwtCustomClaims{},
		SuccessHandler: func(c echo.Context) {
			user := c.Get("user").(*jwt.Token)
			claims := user.Claims.(*JwtCustomClaims)
			c.Set("userId", claims.UserID)
			c.Set("email", claims.Email)
		},
		ErrorHandler: func(err error) error {
			log.Printf("JWT middleware error: %v", err)
			return echo.NewHTTPError(echo.ErrUnauthorized.Code, "Please provide valid credentials")
		},
	})
}

// SessionBlacklist rejects tokens invalidated through logout. It must run
// after JWTMiddleware and returns an error, so the chain stops before any
// handler executes with a logged-out session.
func SessionBlacklist() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if redisClient := config.GetRedisClient(); redisClient != nil {
				if token := RawToken(c); token != "" {
					exists, err := redisClient.Exists(c.Request().Context(), blacklistKey(token)).Result()
					if err == nil && exists > 0 {
						return echo.NewHTTPError(echo.ErrUnauthorized.Code, "Token has been invalidated")
					}
				}
			}
			return next(c)
		}
	}
}

// GenerateJWT generates a signed session token
func GenerateJWT(userID, email string) (string, error) {
	claims := &JwtCustomClaims{
		UserID: userID,
		Email:  email,
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: time.Now().Add(sessionTTL).Unix(),
			IssuedAt:  time.Now().Unix(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return "", errors.New("JWT_SECRET environment variable is required")
	}

	return token.SignedString([]byte(secret))
}

// GetUserFromToken extracts session claims from the request context
func GetUserFromToken(c echo.Context) *JwtCustomClaims {
	user := c.Get("user")
	if user == nil {
		return nil
	}

	token, ok := user.(*jwt.Token)
	if !ok {
		return nil
	}

	claims, ok := token.Claims.(*JwtCustomClaims)
	if !ok {
		return nil
	}

	return claims
}

// GetUserIDFromToken returns the authenticated user's id, or "" without a session
func GetUserIDFromToken(c echo.Context) string {
	if userID, ok := c.Get("userId").(string); ok && userID != "" {
		return userID
	}

	claims := GetUserFromToken(c)
	if claims != nil {
		return claims.UserID
	}

	return ""
}

// GetEmailFromToken returns the authenticated user's email, or ""
func GetEmailFromToken(c echo.Context) string {
	if email, ok := c.Get("email").(string); ok && email != "" {
		return email
	}

	claims := GetUserFromToken(c)
	if claims != nil {
		return claims.Email
	}

	return ""
}

// RawToken returns the raw bearer token of the current request, or ""
func RawToken(c echo.Context) string {
	user := c.Get("user")
	if user == nil {
		return ""
	}
	token, ok := user.(*jwt.Token)
	if !ok {
		return ""
	}
	return token.Raw
}

// BlacklistToken invalidates a session token until it would have expired anyway
func BlacklistToken(c echo.Context, token string) {
	redisClient := config.GetRedisClient()
	if redisClient == nil || token == "" {
		return
	}
	if err := redisClient.Set(c.Request().Context(), blacklistKey(token), "1", sessionTTL).Err(); err != nil {
		log.Printf("failed to blacklist token: %v", err)
	}
}

func blacklistKey(token string) string {
	return "session:blacklist:" + token
}
