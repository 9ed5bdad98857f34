package restaurant

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"sort"
	"strings"

	"github.com/MK7-m/qrcodesy/internal/storage"

	"github.com/sirupsen/logrus"
)

const (
	MaxCoverImages = 10
	coverPrefix    = "covers"
)

var ErrCoverImageNotFound = errors.New("cover image not found")

// CoverImage is one slide of the menu page header.
type CoverImage struct {
	URL   string `json:"url"`
	Order int    `json:"order"`
}

// NormalizeCoverImages decodes the cover_images column. Older rows hold a
// plain list of URLs; those keep their list position as the order.
func NormalizeCoverImages(raw []byte) ([]CoverImage, error) {
	images := []CoverImage{}
	if len(raw) == 0 {
		return images, nil
	}

	if err := json.Unmarshal(raw, &images); err != nil {
		var urls []string
		if err := json.Unmarshal(raw, &urls); err != nil {
			return nil, fmt.Errorf("decode cover_images: %w", err)
		}
		images = make([]CoverImage, 0, len(urls))
		for _, u := range urls {
			images = append(images, CoverImage{URL: u})
		}
		return renumber(images), nil
	}

	sort.SliceStable(images, func(i, j int) bool { return images[i].Order < images[j].Order })
	return renumber(images), nil
}

// renumber makes Order match the slice position.
func renumber(images []CoverImage) []CoverImage {
	for i := range images {
		images[i].Order = i
	}
	return images
}

// --------------------------------------------------
// Cover image slider
// --------------------------------------------------
func (s *Service) UploadCoverImage(
	ctx context.Context,
	id string,
	userID string,
	file *multipart.FileHeader,
) ([]CoverImage, error) {

	restaurant, err := s.GetForOwner(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if len(restaurant.CoverImages) >= MaxCoverImages {
		return nil, fmt.Errorf("%w: at most %d cover images", ErrInvalidInput, MaxCoverImages)
	}

	url, err := storage.UploadFileHeader(ctx, s.uploader, coverPrefix, id, file)
	if err != nil {
		return nil, err
	}

	images := renumber(append(restaurant.CoverImages, CoverImage{URL: url}))
	if err := s.repo.UpdateCoverImages(ctx, id, images); err != nil {
		return nil, err
	}
	return images, nil
}

// DeleteCoverImage drops a slide and removes the stored object when it
// was uploaded through this service.
func (s *Service) DeleteCoverImage(ctx context.Context, id, userID, url string) ([]CoverImage, error) {
	restaurant, err := s.GetForOwner(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	kept := make([]CoverImage, 0, len(restaurant.CoverImages))
	found := false
	for _, img := range restaurant.CoverImages {
		if img.URL == url {
			found = true
			continue
		}
		kept = append(kept, img)
	}
	if !found {
		return nil, ErrCoverImageNotFound
	}

	kept = renumber(kept)
	if err := s.repo.UpdateCoverImages(ctx, id, kept); err != nil {
		return nil, err
	}

	if key, ok := storage.KeyFromURL(url, coverPrefix, id); ok {
		if err := s.uploader.Delete(ctx, key); err != nil {
			logrus.WithError(err).WithField("key", key).Warn("cover image object not removed")
		}
	}
	return kept, nil
}

// ReorderCoverImages takes every current URL exactly once in the new order.
func (s *Service) ReorderCoverImages(ctx context.Context, id, userID string, urls []string) ([]CoverImage, error) {
	restaurant, err := s.GetForOwner(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	current := make(map[string]bool, len(restaurant.CoverImages))
	for _, img := range restaurant.CoverImages {
		current[img.URL] = true
	}
	if len(urls) != len(current) {
		return nil, fmt.Errorf("%w: order must list every cover image once", ErrInvalidInput)
	}

	images := make([]CoverImage, 0, len(urls))
	for _, u := range urls {
		u = strings.TrimSpace(u)
		if !current[u] {
			return nil, fmt.Errorf("%w: order must list every cover image once", ErrInvalidInput)
		}
		delete(current, u)
		images = append(images, CoverImage{URL: u})
	}

	images = renumber(images)
	if err := s.repo.UpdateCoverImages(ctx, id, images); err != nil {
		return nil, err
	}
	return images, nil
}
