package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// URLPrefix is where the router serves files written by LocalStore.
const URLPrefix = "/uploads"

// LocalStore keeps blobs in a directory on disk.
type LocalStore struct {
	dir     string
	baseURL string
}

func NewLocalStore(dir, publicBaseURL string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir: %w", err)
	}
	return &LocalStore{dir: dir, baseURL: publicBaseURL}, nil
}

func (s *LocalStore) Upload(_ context.Context, key string, r io.Reader, _ int64, _ string) (string, error) {
	if err := validateKey(key); err != nil {
		return "", err
	}

	dst := filepath.Join(s.dir, key)
	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", key, err)
	}

	if _, err := io.Copy(out, r); err != nil {
		out.Close()
		os.Remove(dst)
		return "", fmt.Errorf("failed to write %s: %w", key, err)
	}
	if err := out.Close(); err != nil {
		os.Remove(dst)
		return "", fmt.Errorf("failed to close %s: %w", key, err)
	}

	return s.url(key), nil
}

func (s *LocalStore) Delete(_ context.Context, key string) error {
	if err := validateKey(key); err != nil {
		return err
	}

	err := os.Remove(filepath.Join(s.dir, key))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}

func (s *LocalStore) url(key string) string {
	if s.baseURL == "" {
		return URLPrefix + "/" + key
	}
	return joinURL(s.baseURL, "uploads", key)
}
