// utils/file_utils.go
package utils

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	ffmpeg "github.com/u2takey/ffmpeg-go"
)

const (
	// Base directory for storing uploaded files
	uploadBaseDir = "uploads"
	// Base URL for serving files
	baseURL = "/uploads"
	// Maximum file size (25MB, videos included)
	MaxFileSize = 25 * 1024 * 1024
	// Longest edge of stored images and thumbnails
	maxImageEdge  = 1440
	thumbnailEdge = 480
)

var (
	allowedImageExts = map[string]bool{
		".jpg":  true,
		".jpeg": true,
		".png":  true,
		".gif":  true,
		".webp": true,
	}
	allowedVideoExts = map[string]bool{
		".mp4":  true,
		".mov":  true,
		".webm": true,
	}
)

// MediaKind classifies an upload by its file extension. Returns "image",
// "video" or an error for anything else.
func MediaKind(filename string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch {
	case allowedImageExts[ext]:
		return "image", nil
	case allowedVideoExts[ext]:
		return "video", nil
	default:
		return "", fmt.Errorf("unsupported file type %q", ext)
	}
}

// InitializeStorage creates the directories uploads are written to
func InitializeStorage() error {
	dirs := []string{
		uploadBaseDir,
		filepath.Join(uploadBaseDir, "images"),
		filepath.Join(uploadBaseDir, "videos"),
		filepath.Join(uploadBaseDir, "thumbnails"),
		filepath.Join(uploadBaseDir, "profiles"),
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %v", dir, err)
		}
	}
	return nil
}

// StoredObject describes a persisted upload
type StoredObject struct {
	URL          string `json:"url"`
	ThumbnailURL string `json:"thumbnailUrl,omitempty"`
}

// SaveUploadedImage stores an uploaded image under a fresh uuid name,
// re-encoded and capped to maxImageEdge, and writes a thumbnail next to it.
func SaveUploadedImage(file *multipart.FileHeader, subdir string) (StoredObject, error) {
	if file.Size > MaxFileSize {
		return StoredObject{}, fmt.Errorf("file too large")
	}

	src, err := file.Open()
	if err != nil {
		return StoredObject{}, err
	}
	defer src.Close()

	img, err := imaging.Decode(src, imaging.AutoOrientation(true))
	if err != nil {
		return StoredObject{}, fmt.Errorf("invalid image: %v", err)
	}

	if img.Bounds().Dx() > maxImageEdge || img.Bounds().Dy() > maxImageEdge {
		img = imaging.Fit(img, maxImageEdge, maxImageEdge, imaging.Lanczos)
	}

	name := uuid.New().String() + ".jpg"
	imagePath := filepath.Join(uploadBaseDir, subdir, name)
	if err := imaging.Save(img, imagePath, imaging.JPEGQuality(85)); err != nil {
		return StoredObject{}, err
	}

	thumb := imaging.Fit(img, thumbnailEdge, thumbnailEdge, imaging.Lanczos)
	thumbPath := filepath.Join(uploadBaseDir, "thumbnails", name)
	if err := imaging.Save(thumb, thumbPath, imaging.JPEGQuality(80)); err != nil {
		return StoredObject{}, err
	}

	return StoredObject{
		URL:          baseURL + "/" + subdir + "/" + name,
		ThumbnailURL: baseURL + "/thumbnails/" + name,
	}, nil
}

// SaveUploadedVideo stores an uploaded video and grabs its first frame as a
// thumbnail via ffmpeg.
func SaveUploadedVideo(file *multipart.FileHeader) (StoredObject, error) {
	if file.Size > MaxFileSize {
		return StoredObject{}, fmt.Errorf("file too large")
	}

	src, err := file.Open()
	if err != nil {
		return StoredObject{}, err
	}
	defer src.Close()

	ext := strings.ToLower(filepath.Ext(file.Filename))
	name := uuid.New().String()
	videoPath := filepath.Join(uploadBaseDir, "videos", name+ext)

	dst, err := os.Create(videoPath)
	if err != nil {
		return StoredObject{}, err
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		os.Remove(videoPath)
		return StoredObject{}, err
	}
	dst.Close()

	object := StoredObject{URL: baseURL + "/videos/" + name + ext}

	thumbPath := filepath.Join(uploadBaseDir, "thumbnails", name+".jpg")
	err = ffmpeg.Input(videoPath, ffmpeg.KwArgs{"ss": "00:00:01"}).
		Output(thumbPath, ffmpeg.KwArgs{"vframes": 1, "format": "image2", "vcodec": "mjpeg"}).
		OverWriteOutput().
		Silent(true).
		Run()
	if err == nil {
		object.ThumbnailURL = baseURL + "/thumbnails/" + name + ".jpg"
	}
	// A failed frame grab is not fatal; the video is stored either way.

	return object, nil
}
