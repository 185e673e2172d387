package storage

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// ObjectStore keeps product photos in a minio bucket and hands back public
// URLs to record on the photo rows.
type ObjectStore struct {
	client   *minio.Client
	endpoint string
	bucket   string
}

func New(ctx context.Context, endpoint, accessKey, secretKey, bucket string) (*ObjectStore, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: false,
	})
	if err != nil {
		return nil, fmt.Errorf("minio: %w", err)
	}

	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("minio: bucket check: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("minio: make bucket: %w", err)
		}
	}

	return &ObjectStore{client: client, endpoint: endpoint, bucket: bucket}, nil
}

// UploadPhoto stores the file under products/{productID}_{ts}{ext} and
// returns its URL.
func (s *ObjectStore) UploadPhoto(ctx context.Context, productID uint, filename string, r io.Reader, size int64, contentType string) (string, error) {
	objectName := fmt.Sprintf("products/%d_%d%s", productID, time.Now().UnixNano(), filepath.Ext(filename))

	_, err := s.client.PutObject(ctx, s.bucket, objectName, r, size,
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", fmt.Errorf("minio: put object: %w", err)
	}

	return fmt.Sprintf("http://%s/%s/%s", s.endpoint, s.bucket, objectName), nil
}
