package infra

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// LocalStorage keeps blobs as plain files in a single flat directory.
type LocalStorage struct {
	root    string
	baseURL string
}

func NewLocalStorage(root, baseURL string) (*LocalStorage, error) {
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("failed to create media directory: %w", err)
	}
	return &LocalStorage{root: root, baseURL: baseURL}, nil
}

// path resolves name inside the media directory. Only the base name is
// used, so a crafted name cannot escape the directory.
func (s *LocalStorage) path(name string) string {
	return filepath.Join(s.root, filepath.Base(name))
}

func (s *LocalStorage) Save(ctx context.Context, name string, reader io.Reader, size int64, contentType string) error {
	file, err := os.Create(s.path(name))
	if err != nil {
		return fmt.Errorf("failed to create media file: %w", err)
	}
	defer file.Close()

	if _, err := io.Copy(file, reader); err != nil {
		return fmt.Errorf("failed to write media file: %w", err)
	}
	return nil
}

func (s *LocalStorage) Get(ctx context.Context, name string) (io.ReadCloser, error) {
	file, err := os.Open(s.path(name))
	if err != nil {
		return nil, fmt.Errorf("failed to open media file: %w", err)
	}
	return file, nil
}

func (s *LocalStorage) Delete(ctx context.Context, name string) error {
	if err := os.Remove(s.path(name)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete media file: %w", err)
	}
	return nil
}

func (s *LocalStorage) Exists(ctx context.Context, name string) (bool, error) {
	_, err := os.Stat(s.path(name))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (s *LocalStorage) URL(name string) string {
	return s.baseURL + "/" + filepath.Base(name)
}

// Root is the media directory, exposed so the router can serve it.
func (s *LocalStorage) Root() string {
	return s.root
}
