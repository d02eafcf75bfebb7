// Package storage keeps product images in an S3-compatible object store.
package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"inventory/internal/config"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// sniffLen is how many leading bytes content detection looks at.
const sniffLen = 512

// ErrUnsupportedImage is returned when an upload is not a supported image format.
var ErrUnsupportedImage = errors.New("unsupported image type")

var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// Image is an uploaded file ready to be stored.
type Image struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// ImageStore uploads and removes product images.
type ImageStore interface {
	Upload(ctx context.Context, productID uint, image Image) (string, error)
	Delete(ctx context.Context, key string) error
}

// MinIOStore implements ImageStore on a MinIO bucket.
type MinIOStore struct {
	client *minio.Client
	bucket string
}

// NewMinIOStore connects to MinIO and makes sure the bucket exists.
func NewMinIOStore(ctx context.Context, cfg config.MinIOConfig) (*MinIOStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}
	if err := ensureBucket(ctx, client, cfg.Bucket); err != nil {
		return nil, fmt.Errorf("failed to prepare bucket %s: %w", cfg.Bucket, err)
	}
	return &MinIOStore{client: client, bucket: cfg.Bucket}, nil
}

func ensureBucket(ctx context.Context, client *minio.Client, bucket string) error {
	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return err
	}
	if !exists {
		return client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{})
	}
	return nil
}

// Upload stores the image and returns its object key.
func (s *MinIOStore) Upload(ctx context.Context, productID uint, image Image) (string, error) {
	key, err := ObjectKey(productID, image.ContentType)
	if err != nil {
		return "", err
	}
	info, err := s.client.PutObject(ctx, s.bucket, key, image.Body, image.Size, minio.PutObjectOptions{
		ContentType: image.ContentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload image %s: %w", key, err)
	}
	return info.Key, nil
}

// Delete removes the object stored under key.
func (s *MinIOStore) Delete(ctx context.Context, key string) error {
	if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to delete image %s: %w", key, err)
	}
	return nil
}

// Sniff detects the content type from the leading bytes of the body, ignoring
// whatever the client declared. The returned image reads the full body again.
func Sniff(image Image) (Image, error) {
	if image.Body == nil {
		return image, ErrUnsupportedImage
	}
	head := make([]byte, sniffLen)
	n, err := io.ReadFull(image.Body, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return image, fmt.Errorf("failed to read image: %w", err)
	}
	head = head[:n]

	contentType := http.DetectContentType(head)
	if _, ok := imageExtensions[contentType]; !ok {
		return image, fmt.Errorf("%w: %s", ErrUnsupportedImage, contentType)
	}
	image.ContentType = contentType
	image.Body = io.MultiReader(bytes.NewReader(head), image.Body)
	return image, nil
}

// ObjectKey builds a unique key under products/<id>/ with the extension of
// the detected content type.
func ObjectKey(productID uint, contentType string) (string, error) {
	ext, ok := imageExtensions[contentType]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedImage, contentType)
	}
	return fmt.Sprintf("products/%d/%s%s", productID, uuid.NewString(), ext), nil
}
