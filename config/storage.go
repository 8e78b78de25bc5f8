package config

import (
	"os"
)

// StorageConfig selects and parameterizes the document storage backend.
type StorageConfig struct {
	Driver     string // "local" (default) or "s3"
	UploadPath string
	Region     string
	Bucket     string
}

func LoadStorageConfig() StorageConfig {
	cfg := StorageConfig{
		Driver:     os.Getenv("STORAGE_DRIVER"),
		UploadPath: os.Getenv("UPLOAD_PATH"),
		Region:     os.Getenv("AWS_REGION"),
		Bucket:     os.Getenv("S3_BUCKET"),
	}
	if cfg.Driver == "" {
		cfg.Driver = "local"
	}
	if cfg.UploadPath == "" {
		cfg.UploadPath = "./uploads"
	}
	return cfg
}
