package storage

import (
	"context"
	"log"
	"mime/multipart"

	"letter-routing-api/config"
)

// Download points at a stored document: a presigned URL for remote
// backends, a filesystem path for the local one. Exactly one is set.
type Download struct {
	URL      string
	FilePath string
}

// Store persists letter documents. Keys are opaque to callers; the
// letter row records the key it was given at upload time.
type Store interface {
	Save(ctx context.Context, file *multipart.FileHeader, key string) error
	Delete(ctx context.Context, key string) error
	Download(ctx context.Context, key string) (Download, error)
}

var active Store

// Init selects the backend from STORAGE_DRIVER (local disk by default,
// S3 when configured).
func Init() {
	cfg := config.LoadStorageConfig()

	switch cfg.Driver {
	case "s3":
		active = newS3Store(cfg)
	default:
		active = newLocalStore(cfg.UploadPath)
	}

	log.Printf("Document storage initialized (driver=%s)", cfg.Driver)
}

func Save(ctx context.Context, file *multipart.FileHeader, key string) error {
	return active.Save(ctx, file, key)
}

func Delete(ctx context.Context, key string) error {
	return active.Delete(ctx, key)
}

func GetDownload(ctx context.Context, key string) (Download, error) {
	return active.Download(ctx, key)
}
