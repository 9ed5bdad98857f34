package storage

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

var ErrInvalidImage = errors.New("unsupported image type, use jpg, jpeg, png, webp or gif")

var imageContentTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".webp": "image/webp",
	".gif":  "image/gif",
}

func ValidateImageExtension(filename string) error {
	ext := strings.ToLower(filepath.Ext(filename))
	if _, ok := imageContentTypes[ext]; !ok {
		return ErrInvalidImage
	}
	return nil
}

// ObjectKey builds "<prefix>/<restaurantID>/<uuid><ext>".
func ObjectKey(prefix, restaurantID, filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	return fmt.Sprintf("%s/%s/%s%s", prefix, restaurantID, uuid.New().String(), ext)
}

// KeyFromURL recovers the object key from a public URL built by ObjectKey
// for the same prefix and restaurant. ok is false for foreign URLs.
func KeyFromURL(publicURL, prefix, restaurantID string) (key string, ok bool) {
	marker := prefix + "/" + restaurantID + "/"
	i := strings.Index(publicURL, marker)
	if i < 0 || len(publicURL) == i+len(marker) {
		return "", false
	}
	return publicURL[i:], true
}

// UploadFileHeader validates and uploads a multipart file, returning its public URL.
func UploadFileHeader(
	ctx context.Context,
	uploader Uploader,
	prefix string,
	restaurantID string,
	file *multipart.FileHeader,
) (string, error) {

	if err := ValidateImageExtension(file.Filename); err != nil {
		return "", err
	}

	f, err := file.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()

	contentType := file.Header.Get("Content-Type")
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = imageContentTypes[strings.ToLower(filepath.Ext(file.Filename))]
	}

	return uploader.Upload(ctx, ObjectKey(prefix, restaurantID, file.Filename), f, contentType)
}
