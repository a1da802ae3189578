package s3

import (
	"bytes"
	"context"
	"fmt"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/akwaba/listing-service/internal/platform/logger"
)

// Storage is the blob store behind the media pipeline, backed by MinIO.
type Storage struct {
	client *minio.Client
	bucket string
	logger *logger.Logger
}

func NewStorage(endpoint, accessKey, secretKey, bucket string, useSSL bool, log *logger.Logger) (*Storage, error) {
	log.Info("S3 storage: connecting", "endpoint", endpoint, "bucket", bucket, "use_ssl", useSSL)

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client for %s: %w", endpoint, err)
	}

	if err := client.MakeBucket(context.Background(), bucket, minio.MakeBucketOptions{}); err != nil {
		exists, existsErr := client.BucketExists(context.Background(), bucket)
		if existsErr != nil || !exists {
			return nil, fmt.Errorf("make/verify bucket %s: (make: %v / exists: %v)", bucket, err, existsErr)
		}
	}

	return &Storage{client: client, bucket: bucket, logger: log}, nil
}

func (s *Storage) Upload(ctx context.Context, path string, data []byte, contentType string) error {
	_, err := s.client.PutObject(ctx, s.bucket, path, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("upload object %s to bucket %s: %w", path, s.bucket, err)
	}
	s.logger.Debug("S3 storage: object uploaded", "bucket", s.bucket, "path", path, "size_bytes", len(data))
	return nil
}

// PublicURL builds the object's public address from the client endpoint. The
// bucket is expected to carry a public-read policy managed outside this
// service.
func (s *Storage) PublicURL(path string) string {
	return fmt.Sprintf("%s/%s/%s", s.client.EndpointURL().String(), s.bucket, path)
}
