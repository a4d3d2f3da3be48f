// controllers/object_controller.go
package controllers

import (
	"context"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/snapgrid/snapgrid_backend/utils"
)

// ImageRecordStore updates the image reference on an owned record
type ImageRecordStore interface {
	SetImage(ctx context.Context, id, ownerID primitive.ObjectID, imageURL string) (bool, error)
}

// ThumbnailRecordStore updates the thumbnail reference on an owned record
type ThumbnailRecordStore interface {
	SetThumbnail(ctx context.Context, id, ownerID primitive.ObjectID, thumbnailURL string) (bool, error)
}

// ObjectController handles uploads and the endpoints that attach stored
// objects to owned records. Files live under the local uploads directory,
// served statically.
type ObjectController struct {
	posts     ImageRecordStore
	videos    ThumbnailRecordStore
	locations ImageRecordStore
}

func NewObjectController(posts ImageRecordStore, videos ThumbnailRecordStore, locations ImageRecordStore) *ObjectController {
	return &ObjectController{posts: posts, videos: videos, locations: locations}
}

// Upload stores a multipart image or video and returns its served URLs.
// Images are re-encoded and thumbnailed; videos get an extracted frame.
func (oc *ObjectController) Upload(c echo.Context) error {
	if _, authenticated := currentUserID(c); !authenticated {
		return unauthorized(c)
	}

	file, err := c.FormFile("file")
	if err != nil {
		return badRequest(c, "Missing file")
	}

	kind, err := utils.MediaKind(file.Filename)
	if err != nil {
		return badRequest(c, err.Error())
	}

	var object utils.StoredObject
	if kind == "video" {
		object, err = utils.SaveUploadedVideo(file)
	} else {
		object, err = utils.SaveUploadedImage(file, "images")
	}
	if err != nil {
		return internalError(c, "store upload", err)
	}

	return created(c, "Upload stored", object)
}

type setImageRequest struct {
	ID       string `json:"id" validate:"required,len=24,hexadecimal"`
	ImageURL string `json:"imageUrl" validate:"required,url|startswith=/uploads/"`
}

// UpdateLocationImage sets the image of a location the caller owns
func (oc *ObjectController) UpdateLocationImage(c echo.Context) error {
	return oc.setImage(c, "Location", func(ctx context.Context, id, ownerID primitive.ObjectID, url string) (bool, error) {
		return oc.locations.SetImage(ctx, id, ownerID, url)
	})
}

type setMediaImageRequest struct {
	MediaType string `json:"mediaType" validate:"required,oneof=post video"`
	ID        string `json:"id" validate:"required,len=24,hexadecimal"`
	ImageURL  string `json:"imageUrl" validate:"required,url|startswith=/uploads/"`
}

// UpdateMediaImage sets the image of an owned post or the thumbnail of an
// owned video.
func (oc *ObjectController) UpdateMediaImage(c echo.Context) error {
	userID, authenticated := currentUserID(c)
	if !authenticated {
		return unauthorized(c)
	}

	var req setMediaImageRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, err.Error())
	}

	id, err := primitive.ObjectIDFromHex(req.ID)
	if err != nil {
		return badRequest(c, "Invalid ID")
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	var updated bool
	if req.MediaType == "video" {
		updated, err = oc.videos.SetThumbnail(ctx, id, userID, req.ImageURL)
	} else {
		updated, err = oc.posts.SetImage(ctx, id, userID, req.ImageURL)
	}
	if err != nil {
		return internalError(c, "update media image", err)
	}
	if !updated {
		return notFound(c, "Media not found")
	}

	return ok(c, "Image updated", nil)
}

func (oc *ObjectController) setImage(c echo.Context, entity string, set func(context.Context, primitive.ObjectID, primitive.ObjectID, string) (bool, error)) error {
	userID, authenticated := currentUserID(c)
	if !authenticated {
		return unauthorized(c)
	}

	var req setImageRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, err.Error())
	}

	id, err := primitive.ObjectIDFromHex(req.ID)
	if err != nil {
		return badRequest(c, "Invalid ID")
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	updated, err := set(ctx, id, userID, req.ImageURL)
	if err != nil {
		return internalError(c, "update image", err)
	}
	if !updated {
		return notFound(c, entity+" not found")
	}

	return ok(c, entity+" image updated", nil)
}
