package storage

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// ImageStore keeps product images in an S3-compatible object store and hands
// back their public URLs.
type ImageStore struct {
	client   *minio.Client
	endpoint string
	bucket   string
	useSSL   bool
}

func NewImageStore(endpoint, accessKey, secretKey, bucket string, useSSL bool) (*ImageStore, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("connecting to object storage: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("checking bucket %s: %w", bucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("creating bucket %s: %w", bucket, err)
		}
	}

	return &ImageStore{client: client, endpoint: endpoint, bucket: bucket, useSSL: useSSL}, nil
}

// PutProductImage stores an image under the product's id and returns its URL.
func (s *ImageStore) PutProductImage(ctx context.Context, productID, filename, contentType string, r io.Reader, size int64) (string, error) {
	objectName := fmt.Sprintf("%s_%s", productID, filename)

	_, err := s.client.PutObject(ctx, s.bucket, objectName, r, size,
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", fmt.Errorf("uploading image: %w", err)
	}

	scheme := "http"
	if s.useSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, s.endpoint, s.bucket, objectName), nil
}
