package controllers

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/snapgrid/snapgrid_backend/middleware"
	"github.com/snapgrid/snapgrid_backend/models"
	"github.com/snapgrid/snapgrid_backend/repositories"
	"github.com/snapgrid/snapgrid_backend/utils"
)

type fakeAuthUserStore struct {
	createFn     func(ctx context.Context, user models.User) (models.User, error)
	getByEmailFn func(ctx context.Context, email string) (models.User, error)
	getByIDFn    func(ctx context.Context, id primitive.ObjectID) (models.User, error)
}

func (f *fakeAuthUserStore) Create(ctx context.Context, user models.User) (models.User, error) {
	return f.createFn(ctx, user)
}

func (f *fakeAuthUserStore) GetByEmail(ctx context.Context, email string) (models.User, error) {
	return f.getByEmailFn(ctx, email)
}

func (f *fakeAuthUserStore) GetByID(ctx context.Context, id primitive.ObjectID) (models.User, error) {
	return f.getByIDFn(ctx, id)
}

func TestSignup(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	e := newTestEcho()

	store := &fakeAuthUserStore{
		createFn: func(ctx context.Context, user models.User) (models.User, error) {
			assert.Equal(t, "newuser", user.Username)
			assert.Equal(t, "new@example.com", user.Email)
			assert.True(t, utils.CheckPassword(user.Password, "hunter2hunter2"))
			user.ID = primitive.NewObjectID()
			return user, nil
		},
	}
	ctl := NewAuthController(store, middleware.NewAdminPolicy(nil))

	body := `{"username":"NewUser","email":"New@Example.com","password":"hunter2hunter2"}`
	c, rec := newTestContext(e, http.MethodPost, "/api/auth/signup", body)

	require.NoError(t, ctl.Signup(c))
	assert.Equal(t, http.StatusCreated, rec.Code)

	data, ok := decodeResponse(t, rec).Data.(map[string]interface{})
	require.True(t, ok)
	assert.NotEmpty(t, data["token"])
}

func TestSignupDuplicate(t *testing.T) {
	e := newTestEcho()

	store := &fakeAuthUserStore{
		createFn: func(ctx context.Context, user models.User) (models.User, error) {
			return models.User{}, repositories.ErrConflict
		},
	}
	ctl := NewAuthController(store, middleware.NewAdminPolicy(nil))

	body := `{"username":"taken","email":"taken@example.com","password":"hunter2hunter2"}`
	c, rec := newTestContext(e, http.MethodPost, "/api/auth/signup", body)

	require.NoError(t, ctl.Signup(c))
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestSignupValidation(t *testing.T) {
	e := newTestEcho()
	ctl := NewAuthController(&fakeAuthUserStore{}, middleware.NewAdminPolicy(nil))

	tests := []struct {
		name string
		body string
	}{
		{"short password", `{"username":"user1","email":"u@example.com","password":"short"}`},
		{"bad email", `{"username":"user1","email":"not-an-email","password":"hunter2hunter2"}`},
		{"bad username", `{"username":"u!","email":"u@example.com","password":"hunter2hunter2"}`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c, rec := newTestContext(e, http.MethodPost, "/api/auth/signup", tc.body)
			require.NoError(t, ctl.Signup(c))
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestLoginWrongPassword(t *testing.T) {
	e := newTestEcho()

	hashed, err := utils.HashPassword("correct-horse-battery")
	require.NoError(t, err)

	store := &fakeAuthUserStore{
		getByEmailFn: func(ctx context.Context, email string) (models.User, error) {
			return models.User{ID: primitive.NewObjectID(), Email: email, Password: hashed}, nil
		},
	}
	ctl := NewAuthController(store, middleware.NewAdminPolicy(nil))

	body := `{"email":"user@example.com","password":"wrong"}`
	c, rec := newTestContext(e, http.MethodPost, "/api/auth/login", body)

	require.NoError(t, ctl.Login(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid email or password", decodeResponse(t, rec).Message)
}

func TestLoginUnknownEmail(t *testing.T) {
	e := newTestEcho()

	store := &fakeAuthUserStore{
		getByEmailFn: func(ctx context.Context, email string) (models.User, error) {
			return models.User{}, repositories.ErrNotFound
		},
	}
	ctl := NewAuthController(store, middleware.NewAdminPolicy(nil))

	body := `{"email":"ghost@example.com","password":"whatever"}`
	c, rec := newTestContext(e, http.MethodPost, "/api/auth/login", body)

	require.NoError(t, ctl.Login(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	// The message must not reveal whether the account exists.
	assert.Equal(t, "Invalid email or password", decodeResponse(t, rec).Message)
}

func TestLoginSuccess(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	e := newTestEcho()

	hashed, err := utils.HashPassword("correct-horse-battery")
	require.NoError(t, err)
	userID := primitive.NewObjectID()

	store := &fakeAuthUserStore{
		getByEmailFn: func(ctx context.Context, email string) (models.User, error) {
			assert.Equal(t, "user@example.com", email)
			return models.User{ID: userID, Email: email, Password: hashed}, nil
		},
	}
	ctl := NewAuthController(store, middleware.NewAdminPolicy(nil))

	body := `{"email":"User@Example.com","password":"correct-horse-battery"}`
	c, rec := newTestContext(e, http.MethodPost, "/api/auth/login", body)

	require.NoError(t, ctl.Login(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	data, ok := decodeResponse(t, rec).Data.(map[string]interface{})
	require.True(t, ok)
	assert.NotEmpty(t, data["token"])
}

func TestGetCurrentUserAdminFlag(t *testing.T) {
	e := newTestEcho()
	userID := primitive.NewObjectID()

	store := &fakeAuthUserStore{
		getByIDFn: func(ctx context.Context, id primitive.ObjectID) (models.User, error) {
			return models.User{ID: id, Email: "admin@example.com"}, nil
		},
	}
	ctl := NewAuthController(store, middleware.NewAdminPolicy([]string{"admin@example.com"}))

	c, rec := newTestContext(e, http.MethodGet, "/api/auth/user", "")
	authenticate(c, userID, "admin@example.com")

	require.NoError(t, ctl.GetCurrentUser(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	data, ok := decodeResponse(t, rec).Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, true, data["isAdmin"])
}
