package controllers

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/snapgrid/snapgrid_backend/models"
)

type testValidator struct {
	validator *validator.Validate
}

func (tv *testValidator) Validate(i interface{}) error {
	return tv.validator.Struct(i)
}

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = &testValidator{validator: validator.New()}
	return e
}

// newTestContext builds an echo context around an httptest request. A
// non-empty body is sent as JSON.
func newTestContext(e *echo.Echo, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

// authenticate seeds the context the way the session middleware does
func authenticate(c echo.Context, userID primitive.ObjectID, email string) {
	c.Set("userId", userID.Hex())
	c.Set("email", email)
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) models.Response {
	t.Helper()
	var resp models.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

// stubNotifier records who got notified
type stubNotifier struct {
	likes    []primitive.ObjectID
	comments []primitive.ObjectID
	follows  []primitive.ObjectID
}

func (n *stubNotifier) NotifyLike(ownerID primitive.ObjectID, data interface{}) {
	n.likes = append(n.likes, ownerID)
}

func (n *stubNotifier) NotifyComment(ownerID primitive.ObjectID, data interface{}) {
	n.comments = append(n.comments, ownerID)
}

func (n *stubNotifier) NotifyFollow(userID primitive.ObjectID, data interface{}) {
	n.follows = append(n.follows, userID)
}
