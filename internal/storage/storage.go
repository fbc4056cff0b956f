// Package storage uploads profile photos to local disk, MinIO or S3.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/redmonkez12/skill-assessment-api/internal/config"
)

var ErrInvalidKey = errors.New("invalid object key")

// BlobStore stores opaque blobs and hands back a stable reference to each.
type BlobStore interface {
	// Upload writes r under key and returns the public reference (path or URL).
	Upload(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
}

// NewKey builds a unique object name that keeps the extension of filename,
// e.g. "1718000000000000000-2b1c...-9f.png".
func NewKey(filename string) string {
	return fmt.Sprintf("%d-%s%s", time.Now().UnixNano(), uuid.NewString(), strings.ToLower(filepath.Ext(filename)))
}

// New builds the BlobStore selected by cfg.Driver.
func New(ctx context.Context, cfg config.StorageConfig) (BlobStore, error) {
	switch cfg.Driver {
	case config.StorageDriverLocal, "":
		return NewLocalStore(cfg.LocalDir, cfg.PublicBaseURL)
	case config.StorageDriverMinio:
		return NewMinioStore(ctx, MinioOptions{
			Endpoint:      cfg.MinioEndpoint,
			AccessKey:     cfg.MinioAccessKey,
			SecretKey:     cfg.MinioSecretKey,
			Bucket:        cfg.MinioBucket,
			Region:        cfg.MinioRegion,
			UseSSL:        cfg.MinioUseSSL,
			PublicBaseURL: cfg.PublicBaseURL,
		})
	case config.StorageDriverS3:
		return NewS3Store(ctx, S3Options{
			Region:        cfg.S3Region,
			Bucket:        cfg.S3Bucket,
			Endpoint:      cfg.S3Endpoint,
			AccessKey:     cfg.S3AccessKey,
			SecretKey:     cfg.S3SecretKey,
			UsePathStyle:  cfg.S3UsePathStyle,
			PublicBaseURL: cfg.PublicBaseURL,
		})
	default:
		return nil, fmt.Errorf("unsupported storage driver %q", cfg.Driver)
	}
}

func validateKey(key string) error {
	if key == "" || key != filepath.Base(key) || strings.HasPrefix(key, ".") {
		return ErrInvalidKey
	}
	return nil
}

func joinURL(base string, parts ...string) string {
	return strings.TrimRight(base, "/") + "/" + strings.Join(parts, "/")
}
