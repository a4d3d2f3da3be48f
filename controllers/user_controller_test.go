package controllers

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/snapgrid/snapgrid_backend/models"
	"github.com/snapgrid/snapgrid_backend/repositories"
)

type fakeUserStore struct {
	updateProfileFn func(ctx context.Context, id primitive.ObjectID, req models.UpdateProfileRequest) (models.User, error)
	updateBioFn     func(ctx context.Context, id primitive.ObjectID, bio string) (models.User, error)
	getProfileFn    func(ctx context.Context, id primitive.ObjectID, viewerID *primitive.ObjectID) (models.UserProfile, error)
}

func (f *fakeUserStore) UpdateProfile(ctx context.Context, id primitive.ObjectID, req models.UpdateProfileRequest) (models.User, error) {
	return f.updateProfileFn(ctx, id, req)
}

func (f *fakeUserStore) UpdateBio(ctx context.Context, id primitive.ObjectID, bio string) (models.User, error) {
	return f.updateBioFn(ctx, id, bio)
}

func (f *fakeUserStore) GetProfile(ctx context.Context, id primitive.ObjectID, viewerID *primitive.ObjectID) (models.UserProfile, error) {
	return f.getProfileFn(ctx, id, viewerID)
}

func TestUpdateProfileBioSemantics(t *testing.T) {
	e := newTestEcho()
	userID := primitive.NewObjectID()

	tests := []struct {
		name    string
		body    string
		wantBio *string
	}{
		{"absent leaves bio untouched", `{"firstName":"Ada","lastName":"Lovelace"}`, nil},
		{"empty string clears bio", `{"firstName":"Ada","lastName":"Lovelace","bio":""}`, strPtr("")},
		{"value replaces bio", `{"firstName":"Ada","lastName":"Lovelace","bio":"analyst"}`, strPtr("analyst")},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			store := &fakeUserStore{
				updateProfileFn: func(ctx context.Context, id primitive.ObjectID, req models.UpdateProfileRequest) (models.User, error) {
					assert.Equal(t, userID, id)
					if tc.wantBio == nil {
						assert.Nil(t, req.Bio)
					} else {
						require.NotNil(t, req.Bio)
						assert.Equal(t, *tc.wantBio, *req.Bio)
					}
					return models.User{ID: id}, nil
				},
			}
			ctl := NewUserController(store)

			c, rec := newTestContext(e, http.MethodPut, "/api/users/profile", tc.body)
			authenticate(c, userID, "user@example.com")

			require.NoError(t, ctl.UpdateProfile(c))
			assert.Equal(t, http.StatusOK, rec.Code)
		})
	}
}

func TestUpdateProfileValidation(t *testing.T) {
	e := newTestEcho()
	ctl := NewUserController(&fakeUserStore{})

	tests := []struct {
		name string
		body string
	}{
		{"missing first name", `{"lastName":"Lovelace"}`},
		{"bad image url", `{"firstName":"Ada","lastName":"Lovelace","profileImageUrl":"not a url"}`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c, rec := newTestContext(e, http.MethodPut, "/api/users/profile", tc.body)
			authenticate(c, primitive.NewObjectID(), "user@example.com")

			require.NoError(t, ctl.UpdateProfile(c))
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestGetProfileDefaultsToCaller(t *testing.T) {
	e := newTestEcho()
	caller := primitive.NewObjectID()

	store := &fakeUserStore{
		getProfileFn: func(ctx context.Context, id primitive.ObjectID, viewerID *primitive.ObjectID) (models.UserProfile, error) {
			assert.Equal(t, caller, id)
			require.NotNil(t, viewerID)
			assert.Equal(t, caller, *viewerID)
			return models.UserProfile{User: models.User{ID: id}}, nil
		},
	}
	ctl := NewUserController(store)

	c, rec := newTestContext(e, http.MethodGet, "/api/users/profile", "")
	authenticate(c, caller, "user@example.com")

	require.NoError(t, ctl.GetProfile(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGetProfileOtherUser(t *testing.T) {
	e := newTestEcho()
	caller := primitive.NewObjectID()
	subject := primitive.NewObjectID()

	store := &fakeUserStore{
		getProfileFn: func(ctx context.Context, id primitive.ObjectID, viewerID *primitive.ObjectID) (models.UserProfile, error) {
			assert.Equal(t, subject, id)
			return models.UserProfile{User: models.User{ID: id}, IsFollowing: true}, nil
		},
	}
	ctl := NewUserController(store)

	c, rec := newTestContext(e, http.MethodGet, "/api/users/profile/"+subject.Hex(), "")
	c.SetParamNames("userId")
	c.SetParamValues(subject.Hex())
	authenticate(c, caller, "user@example.com")

	require.NoError(t, ctl.GetProfile(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGetProfileNotFound(t *testing.T) {
	e := newTestEcho()

	store := &fakeUserStore{
		getProfileFn: func(ctx context.Context, id primitive.ObjectID, viewerID *primitive.ObjectID) (models.UserProfile, error) {
			return models.UserProfile{}, repositories.ErrNotFound
		},
	}
	ctl := NewUserController(store)

	subject := primitive.NewObjectID()
	c, rec := newTestContext(e, http.MethodGet, "/api/users/profile/"+subject.Hex(), "")
	c.SetParamNames("userId")
	c.SetParamValues(subject.Hex())
	authenticate(c, primitive.NewObjectID(), "user@example.com")

	require.NoError(t, ctl.GetProfile(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func strPtr(s string) *string { return &s }
