package storage

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// S3 uploads estate images to an S3-compatible bucket (static
// credentials, custom endpoint). The site serves images straight from
// the bucket URL, so uploads return the public object URL.
type S3 struct {
	client   *minio.Client
	bucket   string
	endpoint string
	secure   bool
}

type S3Config struct {
	EndpointURL string // e.g. https://s3.example.com
	Region      string
	Bucket      string
	Username    string // access key
	Password    string // secret key
}

func NewS3(cfg S3Config) (*S3, error) {
	endpoint := cfg.EndpointURL
	secure := true
	if rest, ok := strings.CutPrefix(endpoint, "http://"); ok {
		endpoint, secure = rest, false
	} else if rest, ok := strings.CutPrefix(endpoint, "https://"); ok {
		endpoint = rest
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.Username, cfg.Password, ""),
		Region: cfg.Region,
		Secure: secure,
	})
	if err != nil {
		return nil, fmt.Errorf("storage: create s3 client: %w", err)
	}

	return &S3{
		client:   client,
		bucket:   cfg.Bucket,
		endpoint: endpoint,
		secure:   secure,
	}, nil
}

// EnsureBucket creates the bucket on first boot; an existing bucket is
// not an error.
func (s *S3) EnsureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("storage: check bucket: %w", err)
	}
	if exists {
		return nil
	}
	if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("storage: create bucket: %w", err)
	}
	return nil
}

var extByContentType = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

// UploadImage stores an image blob under a random key and returns its
// public URL. Only the content types above are accepted.
func (s *S3) UploadImage(ctx context.Context, r io.Reader, size int64, contentType string) (string, error) {
	ext, ok := extByContentType[contentType]
	if !ok {
		return "", fmt.Errorf("storage: unsupported content type %q", contentType)
	}

	key := "estates/" + uuid.NewString() + ext

	_, err := s.client.PutObject(ctx, s.bucket, key, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("storage: put object: %w", err)
	}

	scheme := "https"
	if !s.secure {
		scheme = "http"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, s.endpoint, s.bucket, key), nil
}
