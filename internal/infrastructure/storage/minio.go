package storage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/johnquangdev/fireflies-agent/pkg/config"
)

// MinIOAuditStore retains raw model output per run so degraded parses can
// be inspected after the fact
type MinIOAuditStore struct {
	client *minio.Client
	bucket string
}

// NewMinIOAuditStore creates the audit store and ensures its bucket exists
func NewMinIOAuditStore(cfg *config.StorageConfig) (*MinIOAuditStore, error) {
	minioClient, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	store := &MinIOAuditStore{
		client: minioClient,
		bucket: cfg.BucketName,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := store.ensureBucket(ctx); err != nil {
		return nil, fmt.Errorf("failed to initialize bucket: %w", err)
	}

	return store, nil
}

// ensureBucket creates the audit bucket when missing
func (m *MinIOAuditStore) ensureBucket(ctx context.Context) error {
	exists, err := m.client.BucketExists(ctx, m.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if exists {
		return nil
	}
	if err := m.client.MakeBucket(ctx, m.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("failed to create bucket: %w", err)
	}
	return nil
}

// PutRawOutput stores the raw model text under runs/<runID>/raw.txt
func (m *MinIOAuditStore) PutRawOutput(ctx context.Context, runID string, raw string) error {
	objectName := fmt.Sprintf("runs/%s/raw.txt", runID)
	reader := strings.NewReader(raw)

	_, err := m.client.PutObject(ctx, m.bucket, objectName, reader, int64(len(raw)), minio.PutObjectOptions{
		ContentType: "text/plain; charset=utf-8",
	})
	if err != nil {
		return fmt.Errorf("failed to store raw output: %w", err)
	}

	return nil
}
