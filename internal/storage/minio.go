// AngelaMos | 2026
// minio.go

package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/tms-platform/accounts-api/internal/config"
	"github.com/tms-platform/accounts-api/internal/user"
)

const profilePrefix = "profiles"

// ImageStore uploads profile images to an S3-compatible bucket and
// hands back stable public references.
type ImageStore struct {
	client    *minio.Client
	bucket    string
	publicURL string
}

func NewImageStore(cfg config.StorageConfig) (*ImageStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create storage client: %w", err)
	}

	return &ImageStore{
		client:    client,
		bucket:    cfg.Bucket,
		publicURL: strings.TrimRight(cfg.PublicURL, "/"),
	}, nil
}

// EnsureBucket creates the configured bucket if it does not exist yet.
// Called once at startup so request handlers never race on creation.
func (s *ImageStore) EnsureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("check bucket: %w", err)
	}

	if !exists {
		if err := s.client.MakeBucket(
			ctx, s.bucket, minio.MakeBucketOptions{},
		); err != nil {
			return fmt.Errorf("create bucket: %w", err)
		}
	}

	return nil
}

// Upload stores one image under a fresh object key. The original file
// name only contributes its extension; the key itself is random so
// uploads can never collide or be guessed.
func (s *ImageStore) Upload(
	ctx context.Context,
	name, contentType string,
	r io.Reader,
	size int64,
) (*user.ImageRef, error) {
	key := fmt.Sprintf(
		"%s/%s%s", profilePrefix, uuid.New().String(), path.Ext(name),
	)

	_, err := s.client.PutObject(ctx, s.bucket, key, r, size,
		minio.PutObjectOptions{
			ContentType: contentType,
		})
	if err != nil {
		return nil, fmt.Errorf("put object: %w", err)
	}

	return &user.ImageRef{
		PublicID: key,
		URL:      fmt.Sprintf("%s/%s/%s", s.publicURL, s.bucket, key),
	}, nil
}

// Ping verifies the bucket is reachable. Satisfies the health
// checker interface.
func (s *ImageStore) Ping(ctx context.Context) error {
	_, err := s.client.BucketExists(ctx, s.bucket)
	return err
}

// Remove deletes a previously uploaded image. Used when a registration
// fails after its image was already stored.
func (s *ImageStore) Remove(ctx context.Context, publicID string) error {
	err := s.client.RemoveObject(
		ctx, s.bucket, publicID, minio.RemoveObjectOptions{},
	)
	if err != nil {
		return fmt.Errorf("remove object: %w", err)
	}
	return nil
}
