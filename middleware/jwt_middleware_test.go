package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/golang-jwt/jwt"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/snapgrid/snapgrid_backend/config"
)

func TestGenerateJWT(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	token, err := GenerateJWT("64f000000000000000000001", "user@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims := &JwtCustomClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	require.True(t, parsed.Valid)
	assert.Equal(t, "64f000000000000000000001", claims.UserID)
	assert.Equal(t, "user@example.com", claims.Email)
	assert.Greater(t, claims.ExpiresAt, claims.IssuedAt)
}

func TestGenerateJWTNoSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := GenerateJWT("64f000000000000000000001", "user@example.com")
	assert.Error(t, err)
}

func TestJWTMiddlewareSeedsSession(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	token, err := GenerateJWT("64f000000000000000000002", "session@example.com")
	require.NoError(t, err)

	e := echo.New()
	e.GET("/api/auth/user", func(c echo.Context) error {
		assert.Equal(t, "64f000000000000000000002", GetUserIDFromToken(c))
		assert.Equal(t, "session@example.com", GetEmailFromToken(c))
		return c.NoContent(http.StatusOK)
	}, JWTMiddleware())

	req := httptest.NewRequest(http.MethodGet, "/api/auth/user", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestJWTMiddlewareRejectsMissingToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	e := echo.New()
	e.GET("/api/posts/feed", func(c echo.Context) error {
		t.Fatal("handler must not run without a token")
		return nil
	}, JWTMiddleware())

	req := httptest.NewRequest(http.MethodGet, "/api/posts/feed", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSessionBlacklistStopsChain(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	mr := miniredis.RunT(t)
	config.RedisClient = redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { config.RedisClient = nil })

	token, err := GenerateJWT("64f000000000000000000004", "logout@example.com")
	require.NoError(t, err)

	var handled bool
	e := echo.New()
	g := e.Group("/api")
	g.Use(JWTMiddleware())
	g.Use(SessionBlacklist())
	g.DELETE("/posts/:id", func(c echo.Context) error {
		handled = true
		return c.NoContent(http.StatusOK)
	})

	replay := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodDelete, "/api/posts/64f000000000000000000009", nil)
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		return rec
	}

	rec := replay()
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, handled)

	// Logout, then replay the same token.
	c := e.NewContext(httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil), httptest.NewRecorder())
	BlacklistToken(c, token)

	handled = false
	rec = replay()
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, handled, "blacklisted token must not reach the handler")
}

func TestJWTMiddlewareRejectsForgedToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	forged := jwt.NewWithClaims(jwt.SigningMethodHS256, &JwtCustomClaims{
		UserID: "64f000000000000000000003",
		Email:  "forger@example.com",
	})
	signed, err := forged.SignedString([]byte("some-other-secret"))
	require.NoError(t, err)

	e := echo.New()
	e.GET("/api/posts/feed", func(c echo.Context) error {
		t.Fatal("handler must not run with a forged token")
		return nil
	}, JWTMiddleware())

	req := httptest.NewRequest(http.MethodGet, "/api/posts/feed", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+signed)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
