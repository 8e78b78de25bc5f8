package storage

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
)

type localStore struct {
	base string
}

func newLocalStore(base string) *localStore {
	return &localStore{base: base}
}

func (s *localStore) Save(ctx context.Context, file *multipart.FileHeader, key string) error {
	src, err := file.Open()
	if err != nil {
		return fmt.Errorf("failed to open upload: %w", err)
	}
	defer src.Close()

	path := filepath.Join(s.base, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create upload directory: %w", err)
	}

	dst, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}

func (s *localStore) Delete(ctx context.Context, key string) error {
	path := filepath.Join(s.base, filepath.FromSlash(key))
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete file %s: %w", key, err)
	}
	return nil
}

func (s *localStore) Download(ctx context.Context, key string) (Download, error) {
	path := filepath.Join(s.base, filepath.FromSlash(key))
	if _, err := os.Stat(path); err != nil {
		return Download{}, fmt.Errorf("document file not found: %w", err)
	}
	return Download{FilePath: path}, nil
}
