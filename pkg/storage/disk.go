// Package storage stores uploaded files on the configured disk.
//
// Two drivers are available:
//   - "local": local filesystem, served by the app under STORAGE_URL
//   - "s3": S3-compatible object storage (AWS S3, MinIO, R2, Spaces)
//
// Quick start:
//
//	disk, err := storage.New(ctx, cfg.Storage)
//	err = disk.Put(ctx, "products/mug.jpg", file, "image/jpeg")
//	url := disk.URL("products/mug.jpg")
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/shashiranjanraj/storefront/config"
)

// ErrInvalidPath is returned for empty, absolute or parent-escaping paths.
var ErrInvalidPath = errors.New("storage: invalid path")

// Disk is the filesystem driver interface. Every driver must implement this.
type Disk interface {
	// Put writes r to path, creating parent directories as needed.
	Put(ctx context.Context, path string, r io.Reader, contentType string) error

	// Delete removes a file. Returns nil if the file did not exist.
	Delete(ctx context.Context, path string) error

	// URL returns the public URL for path.
	URL(path string) string
}

// New builds the disk selected by cfg.Disk.
func New(ctx context.Context, cfg config.StorageConfig) (Disk, error) {
	switch cfg.Disk {
	case "local":
		return NewLocalDisk(cfg.LocalRoot, cfg.URL)
	case "s3":
		return newS3Disk(ctx, cfg)
	default:
		return nil, fmt.Errorf("storage: unsupported STORAGE_DISK %q", cfg.Disk)
	}
}

// clean normalises a slash-separated key and rejects traversal.
func clean(p string) (string, error) {
	if p == "" || strings.HasPrefix(p, "/") || strings.Contains(p, "\\") {
		return "", ErrInvalidPath
	}
	c := path.Clean(p)
	if c == "." || c == ".." || strings.HasPrefix(c, "../") {
		return "", ErrInvalidPath
	}
	return c, nil
}
