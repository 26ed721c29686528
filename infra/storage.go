package infra

import (
	"context"
	"fmt"
	"io"

	"github.com/memecataloger/catalog-api/config"
)

// Storage holds image blobs under flat filenames. Image.Source is the
// filename handed to these methods; nothing above this interface knows
// whether the bytes live on disk or in a bucket.
type Storage interface {
	Save(ctx context.Context, name string, reader io.Reader, size int64, contentType string) error
	Get(ctx context.Context, name string) (io.ReadCloser, error)
	Delete(ctx context.Context, name string) error
	Exists(ctx context.Context, name string) (bool, error)

	// URL returns the public URL rendered into image listings.
	URL(name string) string
}

func InitStorage(cfg *config.EnvConfig) Storage {
	switch cfg.Media.Provider {
	case "local":
		storage, err := NewLocalStorage(cfg.Media.Root, cfg.Media.BaseURL)
		if err != nil {
			panic(fmt.Sprintf("Failed to initialize local media storage: %v", err))
		}
		return storage
	case "minio":
		storage, err := NewMinioStorage(cfg)
		if err != nil {
			panic(fmt.Sprintf("Failed to initialize MinIO media storage: %v", err))
		}
		return storage
	default:
		panic(fmt.Sprintf("Unsupported media provider: %s", cfg.Media.Provider))
	}
}
