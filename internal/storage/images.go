// Package storage integrates the external image store (Cloudinary).
// Uploads happen directly from clients; the backend only releases images
// that are no longer referenced.
package storage

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"wenje/internal/config"
	"wenje/internal/models"

	"resty.dev/v3"
)

// ImageStore releases externally stored images by public id.
type ImageStore interface {
	Release(ctx context.Context, publicID string) error
}

// NewImageStore returns a Cloudinary-backed store when credentials are
// configured, otherwise a no-op store for development and tests.
func NewImageStore(cfg *config.Config, logger *slog.Logger) ImageStore {
	if cfg.CloudinaryCloud == "" || cfg.CloudinaryKey == "" || cfg.CloudinarySecret == "" {
		return &noopImageStore{logger: logger}
	}
	return &cloudinaryStore{
		cloud:  cfg.CloudinaryCloud,
		key:    cfg.CloudinaryKey,
		secret: cfg.CloudinarySecret,
		client: resty.New().
			SetBaseURL("https://api.cloudinary.com/v1_1").
			SetTimeout(10 * time.Second),
		logger: logger,
	}
}

type cloudinaryStore struct {
	cloud  string
	key    string
	secret string
	client *resty.Client
	logger *slog.Logger
}

func (s *cloudinaryStore) Release(ctx context.Context, publicID string) error {
	if publicID == "" || publicID == models.DefaultAvatarPublicID {
		return nil
	}

	timestamp := strconv.FormatInt(time.Now().Unix(), 10)
	res, err := s.client.R().
		WithContext(ctx).
		SetFormData(map[string]string{
			"public_id": publicID,
			"api_key":   s.key,
			"timestamp": timestamp,
			"signature": s.sign(publicID, timestamp),
		}).
		Post("/" + s.cloud + "/image/destroy")
	if err != nil {
		return fmt.Errorf("image store release failed: %w", err)
	}
	if res.IsError() {
		return fmt.Errorf("image store release failed: %s", res.Status())
	}

	s.logger.InfoContext(ctx, "image released", slog.String("public_id", publicID))
	return nil
}

// sign computes the Cloudinary request signature over the sorted parameters.
func (s *cloudinaryStore) sign(publicID, timestamp string) string {
	payload := fmt.Sprintf("public_id=%s&timestamp=%s%s", publicID, timestamp, s.secret)
	sum := sha1.Sum([]byte(payload))
	return hex.EncodeToString(sum[:])
}

type noopImageStore struct {
	logger *slog.Logger
}

func (s *noopImageStore) Release(ctx context.Context, publicID string) error {
	if publicID == "" || publicID == models.DefaultAvatarPublicID {
		return nil
	}
	s.logger.InfoContext(ctx, "image release skipped (no image store configured)",
		slog.String("public_id", publicID))
	return nil
}
