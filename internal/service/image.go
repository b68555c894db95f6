package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"
)

// maxImageBytes caps the size of a mirrored image
const maxImageBytes = 10 << 20

// ObjectPutter is the part of the S3 client used to store images
type ObjectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// ImageService copies recipe images into our bucket. Edamam image URLs are signed and expire,
// so a saved recipe keeps its own copy.
type ImageService struct {
	putter    ObjectPutter
	bucket    string
	publicURL func(key string) string
	client    *http.Client
	log       zerolog.Logger
}

// NewImageService creates a new ImageService instance
func NewImageService(putter ObjectPutter, bucket string, publicURL func(key string) string, log zerolog.Logger) *ImageService {
	return &ImageService{
		putter:    putter,
		bucket:    bucket,
		publicURL: publicURL,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		log: log,
	}
}

// MirrorImage downloads imageURL and uploads it under recipe-images/<recipeID>, returning the public URL
func (s *ImageService) MirrorImage(ctx context.Context, recipeID, imageURL string) (string, error) {
	if recipeID == "" || imageURL == "" {
		return "", fmt.Errorf("recipe id and image URL are required")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to download image: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("failed to download image, status: %d", resp.StatusCode)
	}

	imageData, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes+1))
	if err != nil {
		return "", fmt.Errorf("failed to read image data: %w", err)
	}
	if len(imageData) > maxImageBytes {
		return "", fmt.Errorf("image exceeds %d bytes", maxImageBytes)
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = http.DetectContentType(imageData)
	}
	key := fmt.Sprintf("recipe-images/%s%s", recipeID, imageExtension(contentType))

	_, err = s.putter.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(imageData),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}

	publicURL := s.publicURL(key)
	s.log.Info().Str("recipe_id", recipeID).Str("url", publicURL).Msg("[ImageService] Mirrored recipe image")
	return publicURL, nil
}

func imageExtension(contentType string) string {
	mediaType, _, _ := strings.Cut(contentType, ";")
	switch strings.TrimSpace(strings.ToLower(mediaType)) {
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	case "image/gif":
		return ".gif"
	default:
		return ".jpg"
	}
}
