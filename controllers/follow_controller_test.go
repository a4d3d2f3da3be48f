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

type fakeFollowStore struct {
	followFn   func(ctx context.Context, followerID, followingID primitive.ObjectID) (models.Follow, error)
	unfollowFn func(ctx context.Context, followerID, followingID primitive.ObjectID) (bool, error)
	calls      int
}

func (f *fakeFollowStore) Follow(ctx context.Context, followerID, followingID primitive.ObjectID) (models.Follow, error) {
	f.calls++
	return f.followFn(ctx, followerID, followingID)
}

func (f *fakeFollowStore) Unfollow(ctx context.Context, followerID, followingID primitive.ObjectID) (bool, error) {
	f.calls++
	return f.unfollowFn(ctx, followerID, followingID)
}

func TestFollowUser(t *testing.T) {
	e := newTestEcho()
	follower := primitive.NewObjectID()
	followee := primitive.NewObjectID()

	store := &fakeFollowStore{
		followFn: func(ctx context.Context, followerID, followingID primitive.ObjectID) (models.Follow, error) {
			assert.Equal(t, follower, followerID)
			assert.Equal(t, followee, followingID)
			return models.Follow{FollowerID: followerID, FollowingID: followingID}, nil
		},
	}
	notifier := &stubNotifier{}
	ctl := NewFollowController(store, notifier)

	c, rec := newTestContext(e, http.MethodPost, "/api/follows/"+followee.Hex(), "")
	c.SetParamNames("userId")
	c.SetParamValues(followee.Hex())
	authenticate(c, follower, "user@example.com")

	require.NoError(t, ctl.FollowUser(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, notifier.follows, 1)
	assert.Equal(t, followee, notifier.follows[0])
}

func TestFollowUserSelf(t *testing.T) {
	e := newTestEcho()
	userID := primitive.NewObjectID()

	store := &fakeFollowStore{
		followFn: func(ctx context.Context, followerID, followingID primitive.ObjectID) (models.Follow, error) {
			return models.Follow{}, repositories.ErrSelfFollow
		},
	}
	notifier := &stubNotifier{}
	ctl := NewFollowController(store, notifier)

	c, rec := newTestContext(e, http.MethodPost, "/api/follows/"+userID.Hex(), "")
	c.SetParamNames("userId")
	c.SetParamValues(userID.Hex())
	authenticate(c, userID, "user@example.com")

	require.NoError(t, ctl.FollowUser(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "You cannot follow yourself", decodeResponse(t, rec).Message)
	assert.Empty(t, notifier.follows)
}

func TestFollowUserNotFound(t *testing.T) {
	e := newTestEcho()

	store := &fakeFollowStore{
		followFn: func(ctx context.Context, followerID, followingID primitive.ObjectID) (models.Follow, error) {
			return models.Follow{}, repositories.ErrNotFound
		},
	}
	ctl := NewFollowController(store, nil)

	target := primitive.NewObjectID()
	c, rec := newTestContext(e, http.MethodPost, "/api/follows/"+target.Hex(), "")
	c.SetParamNames("userId")
	c.SetParamValues(target.Hex())
	authenticate(c, primitive.NewObjectID(), "user@example.com")

	require.NoError(t, ctl.FollowUser(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestFollowUserInvalidID(t *testing.T) {
	e := newTestEcho()
	store := &fakeFollowStore{}
	ctl := NewFollowController(store, nil)

	c, rec := newTestContext(e, http.MethodPost, "/api/follows/not-an-id", "")
	c.SetParamNames("userId")
	c.SetParamValues("not-an-id")
	authenticate(c, primitive.NewObjectID(), "user@example.com")

	require.NoError(t, ctl.FollowUser(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Zero(t, store.calls)
}

func TestUnfollowUserMissingEdge(t *testing.T) {
	e := newTestEcho()

	store := &fakeFollowStore{
		unfollowFn: func(ctx context.Context, followerID, followingID primitive.ObjectID) (bool, error) {
			return false, nil
		},
	}
	ctl := NewFollowController(store, nil)

	target := primitive.NewObjectID()
	c, rec := newTestContext(e, http.MethodDelete, "/api/follows/"+target.Hex(), "")
	c.SetParamNames("userId")
	c.SetParamValues(target.Hex())
	authenticate(c, primitive.NewObjectID(), "user@example.com")

	require.NoError(t, ctl.UnfollowUser(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	data, ok := decodeResponse(t, rec).Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, false, data["removed"])
}

func TestFollowUserUnauthenticated(t *testing.T) {
	e := newTestEcho()
	store := &fakeFollowStore{}
	ctl := NewFollowController(store, nil)

	c, rec := newTestContext(e, http.MethodPost, "/api/follows/"+primitive.NewObjectID().Hex(), "")

	require.NoError(t, ctl.FollowUser(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Zero(t, store.calls)
}
