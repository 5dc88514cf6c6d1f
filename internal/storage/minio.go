package storage

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"recruit-go/internal/config"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/minio/minio-go/v7/pkg/lifecycle"
)

// ObjectStorage is the object-store contract used by the upload flow.
// Résumé binaries never pass through this service; clients PUT and GET them
// directly against presigned URLs.
type ObjectStorage interface {
	// PresignedPutURL issues a time-limited URL for a direct client upload.
	PresignedPutURL(ctx context.Context, objectKey string, expiry time.Duration) (string, error)

	// PresignedGetURL issues a time-limited URL for a direct client download.
	PresignedGetURL(ctx context.Context, objectKey string, expiry time.Duration) (string, error)

	// ObjectExists reports whether the object is present in the bucket.
	ObjectExists(ctx context.Context, objectKey string) (bool, error)

	// RemoveObject deletes the object.
	RemoveObject(ctx context.Context, objectKey string) error
}

var _ ObjectStorage = (*MinIO)(nil)

// MinIO backs ObjectStorage with a MinIO/S3 bucket.
type MinIO struct {
	client *minio.Client
	cfg    *config.MinIOConfig
	bucket string
}

// NewMinIO creates the client and bootstraps the résumé bucket.
func NewMinIO(cfg *config.MinIOConfig) (*MinIO, error) {
	if cfg == nil {
		return nil, fmt.Errorf("MinIO config must not be nil")
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	m := &MinIO{
		client: client,
		cfg:    cfg,
		bucket: cfg.ResumesBucket,
	}

	if err := m.ensureBucketExists(context.Background()); err != nil {
		return nil, err
	}

	if cfg.ResumeExpireDays > 0 {
		if err := m.setupLifecycleRule(context.Background()); err != nil {
			// Lifecycle rules are an operational nicety; a bucket without
			// them still works.
			return m, nil
		}
	}

	return m, nil
}

func (m *MinIO) ensureBucketExists(ctx context.Context) error {
	exists, err := m.client.BucketExists(ctx, m.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket %s: %w", m.bucket, err)
	}
	if !exists {
		if err := m.client.MakeBucket(ctx, m.bucket, minio.MakeBucketOptions{Region: m.cfg.Location}); err != nil {
			return fmt.Errorf("failed to create bucket %s: %w", m.bucket, err)
		}
	}
	return nil
}

func (m *MinIO) setupLifecycleRule(ctx context.Context) error {
	lc := lifecycle.NewConfiguration()
	lc.Rules = []lifecycle.Rule{
		{
			ID:     "expire-resumes",
			Status: "Enabled",
			Expiration: lifecycle.Expiration{
				Days: lifecycle.ExpirationDays(m.cfg.ResumeExpireDays),
			},
		},
	}
	return m.client.SetBucketLifecycle(ctx, m.bucket, lc)
}

// PresignedPutURL issues a time-limited upload URL for the given key.
func (m *MinIO) PresignedPutURL(ctx context.Context, objectKey string, expiry time.Duration) (string, error) {
	u, err := m.client.PresignedPutObject(ctx, m.bucket, objectKey, expiry)
	if err != nil {
		return "", fmt.Errorf("failed to presign upload URL: %w", err)
	}
	return u.String(), nil
}

// PresignedGetURL issues a time-limited download URL for the given key.
func (m *MinIO) PresignedGetURL(ctx context.Context, objectKey string, expiry time.Duration) (string, error) {
	u, err := m.client.PresignedGetObject(ctx, m.bucket, objectKey, expiry, nil)
	if err != nil {
		return "", fmt.Errorf("failed to presign download URL: %w", err)
	}
	return u.String(), nil
}

// ObjectExists stats the object. Uploads happen directly from the client
// against a presigned URL, so this is the only way the service can tell
// whether a granted upload actually completed.
func (m *MinIO) ObjectExists(ctx context.Context, objectKey string) (bool, error) {
	_, err := m.client.StatObject(ctx, m.bucket, objectKey, minio.StatObjectOptions{})
	if err != nil {
		errResp := minio.ToErrorResponse(err)
		if errResp.Code == "NoSuchKey" || errResp.Code == "NoSuchBucket" {
			return false, nil
		}
		return false, fmt.Errorf("failed to stat object %s: %w", objectKey, err)
	}
	return true, nil
}

// RemoveObject deletes the object from the bucket.
func (m *MinIO) RemoveObject(ctx context.Context, objectKey string) error {
	if err := m.client.RemoveObject(ctx, m.bucket, objectKey, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to remove object %s: %w", objectKey, err)
	}
	return nil
}

// ResumeObjectKey builds the opaque storage key for an uploaded résumé,
// e.g. resumes/<userID>/<resumeID>.pdf
func ResumeObjectKey(userID, resumeID, fileName string) string {
	ext := strings.ToLower(path.Ext(fileName))
	return fmt.Sprintf("resumes/%s/%s%s", userID, resumeID, ext)
}
