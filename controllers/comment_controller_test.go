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
)

type fakeCommentStore struct {
	createFn func(ctx context.Context, userID primitive.ObjectID, kind models.TargetKind, targetID primitive.ObjectID, content string) (models.Comment, error)
	listFn   func(ctx context.Context, kind models.TargetKind, targetID primitive.ObjectID) ([]models.CommentWithAuthor, error)
	owner    primitive.ObjectID
	calls    int
}

func (f *fakeCommentStore) Create(ctx context.Context, userID primitive.ObjectID, kind models.TargetKind, targetID primitive.ObjectID, content string) (models.Comment, error) {
	f.calls++
	return f.createFn(ctx, userID, kind, targetID, content)
}

func (f *fakeCommentStore) ListForTarget(ctx context.Context, kind models.TargetKind, targetID primitive.ObjectID) ([]models.CommentWithAuthor, error) {
	return f.listFn(ctx, kind, targetID)
}

func (f *fakeCommentStore) TargetOwner(ctx context.Context, kind models.TargetKind, targetID primitive.ObjectID) (primitive.ObjectID, error) {
	return f.owner, nil
}

func (f *fakeCommentStore) Delete(ctx context.Context, id, ownerID primitive.ObjectID) (bool, error) {
	return true, nil
}

func (f *fakeCommentStore) DeleteAdmin(ctx context.Context, id primitive.ObjectID) (bool, error) {
	return true, nil
}

func TestCommentTarget(t *testing.T) {
	postID := primitive.NewObjectID()
	videoID := primitive.NewObjectID()

	tests := []struct {
		name    string
		req     models.CommentRequest
		kind    models.TargetKind
		wantErr bool
	}{
		{"post", models.CommentRequest{PostID: postID.Hex(), Content: "hi"}, models.TargetPost, false},
		{"video", models.CommentRequest{VideoID: videoID.Hex(), Content: "hi"}, models.TargetVideo, false},
		{"both", models.CommentRequest{PostID: postID.Hex(), VideoID: videoID.Hex(), Content: "hi"}, "", true},
		{"neither", models.CommentRequest{Content: "hi"}, "", true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			kind, _, err := commentTarget(tc.req)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.kind, kind)
		})
	}
}

func TestCreateCommentOnPost(t *testing.T) {
	e := newTestEcho()
	author := primitive.NewObjectID()
	owner := primitive.NewObjectID()
	postID := primitive.NewObjectID()

	store := &fakeCommentStore{
		owner: owner,
		createFn: func(ctx context.Context, userID primitive.ObjectID, kind models.TargetKind, targetID primitive.ObjectID, content string) (models.Comment, error) {
			assert.Equal(t, author, userID)
			assert.Equal(t, models.TargetPost, kind)
			assert.Equal(t, postID, targetID)
			assert.Equal(t, "great shot", content)
			return models.Comment{UserID: userID, PostID: &targetID, Content: content}, nil
		},
	}
	notifier := &stubNotifier{}
	ctl := NewCommentController(store, middleware.NewAdminPolicy(nil), notifier)

	body := `{"postId":"` + postID.Hex() + `","content":"great shot"}`
	c, rec := newTestContext(e, http.MethodPost, "/api/comments", body)
	authenticate(c, author, "user@example.com")

	require.NoError(t, ctl.CreateComment(c))
	assert.Equal(t, http.StatusCreated, rec.Code)
	require.Len(t, notifier.comments, 1)
	assert.Equal(t, owner, notifier.comments[0])
}

func TestCreateCommentBothTargets(t *testing.T) {
	e := newTestEcho()
	store := &fakeCommentStore{}
	ctl := NewCommentController(store, middleware.NewAdminPolicy(nil), nil)

	body := `{"postId":"` + primitive.NewObjectID().Hex() + `","videoId":"` + primitive.NewObjectID().Hex() + `","content":"hi"}`
	c, rec := newTestContext(e, http.MethodPost, "/api/comments", body)
	authenticate(c, primitive.NewObjectID(), "user@example.com")

	require.NoError(t, ctl.CreateComment(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Zero(t, store.calls)
}

func TestCreateCommentNoTarget(t *testing.T) {
	e := newTestEcho()
	store := &fakeCommentStore{}
	ctl := NewCommentController(store, middleware.NewAdminPolicy(nil), nil)

	c, rec := newTestContext(e, http.MethodPost, "/api/comments", `{"content":"hi"}`)
	authenticate(c, primitive.NewObjectID(), "user@example.com")

	require.NoError(t, ctl.CreateComment(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Zero(t, store.calls)
}

func TestGetPostComments(t *testing.T) {
	e := newTestEcho()
	postID := primitive.NewObjectID()

	store := &fakeCommentStore{
		listFn: func(ctx context.Context, kind models.TargetKind, targetID primitive.ObjectID) ([]models.CommentWithAuthor, error) {
			assert.Equal(t, models.TargetPost, kind)
			assert.Equal(t, postID, targetID)
			return []models.CommentWithAuthor{}, nil
		},
	}
	ctl := NewCommentController(store, middleware.NewAdminPolicy(nil), nil)

	c, rec := newTestContext(e, http.MethodGet, "/api/posts/"+postID.Hex()+"/comments", "")
	c.SetParamNames("id")
	c.SetParamValues(postID.Hex())
	authenticate(c, primitive.NewObjectID(), "user@example.com")

	require.NoError(t, ctl.GetPostComments(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}
