// Package imagestore provides the S3-backed image object store.
package imagestore

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	companyusecase "company_backend/internal/feature/company/usecase"
	"company_backend/internal/platform/config"
)

// S3Store implements the company feature's ImageStore on an S3-compatible
// endpoint. Objects are stored under extension-less keys
// "<folder>/<publicID>" so the public id recovered from a URL is always the
// deletable identifier; content type travels as object metadata.
type S3Store struct {
	api    *s3.Client
	bucket string

	// publicBase is the URL prefix public object URLs are built from,
	// e.g. "https://media.example.com/bucket".
	publicBase string
}

// Compile-time check to ensure S3Store implements ImageStore.
var _ companyusecase.ImageStore = (*S3Store)(nil)

// NewS3Store builds an S3Store from configuration. Static credentials and a
// path-style endpoint keep it compatible with MinIO/SeaweedFS deployments.
func NewS3Store(ctx context.Context, cfg config.Config) (*S3Store, error) {
	if cfg.S3Endpoint == "" || cfg.S3Bucket == "" {
		return nil, fmt.Errorf("S3_ENDPOINT and S3_BUCKET are required")
	}
	if cfg.S3AccessKey == "" || cfg.S3SecretKey == "" {
		return nil, fmt.Errorf("S3_ACCESS_KEY and S3_SECRET_KEY are required")
	}

	endpoint := cfg.S3Endpoint
	if !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
		endpoint = "https://" + endpoint
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(
		ctx,
		awsconfig.WithRegion(cfg.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.S3AccessKey, cfg.S3SecretKey, "")),
		awsconfig.WithHTTPClient(&http.Client{Timeout: 30 * time.Second}),
	)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = true
		o.BaseEndpoint = aws.String(endpoint)
	})

	return &S3Store{
		api:        client,
		bucket:     cfg.S3Bucket,
		publicBase: fmt.Sprintf("%s/%s", strings.TrimSuffix(endpoint, "/"), cfg.S3Bucket),
	}, nil
}

// Upload stores the image under a fresh UUID key in the folder and returns
// its public URL.
func (s *S3Store) Upload(ctx context.Context, folder, contentType string, data []byte) (string, error) {
	key := fmt.Sprintf("%s/%s", folder, uuid.NewString())
	size := int64(len(data))

	_, err := s.api.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        &s.bucket,
		Key:           &key,
		Body:          bytes.NewReader(data),
		ContentLength: &size,
		ContentType:   &contentType,
	})
	if err != nil {
		return "", fmt.Errorf("put object %s: %w", key, err)
	}

	return fmt.Sprintf("%s/%s", s.publicBase, key), nil
}

// Delete removes the object identified by folder and public id.
func (s *S3Store) Delete(ctx context.Context, folder, publicID string) error {
	key := fmt.Sprintf("%s/%s", folder, publicID)
	_, err := s.api.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: &s.bucket,
		Key:    &key,
	})
	if err != nil {
		return fmt.Errorf("delete object %s: %w", key, err)
	}
	return nil
}
