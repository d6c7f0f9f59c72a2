package di

import (
	"context"
	"fmt"

	"company_backend/internal/feature/company/domain"
	"company_backend/internal/feature/company/usecase"
	"company_backend/internal/platform/config"
	"company_backend/internal/platform/imagestore"
)

// NewImageStore creates the S3-backed ImageStore. When no bucket is
// configured, a disabled store is returned so the rest of the API keeps
// working and only image operations fail.
func NewImageStore(ctx context.Context, cfg config.Config) (usecase.ImageStore, error) {
	if cfg.S3Bucket == "" {
		return disabledImageStore{}, nil
	}
	return imagestore.NewS3Store(ctx, cfg)
}

type disabledImageStore struct{}

func (disabledImageStore) Upload(ctx context.Context, folder, contentType string, data []byte) (string, error) {
	return "", fmt.Errorf("%w: no image store configured", domain.ErrStoreUnavailable)
}

func (disabledImageStore) Delete(ctx context.Context, folder, publicID string) error {
	return fmt.Errorf("%w: no image store configured", domain.ErrStoreUnavailable)
}
