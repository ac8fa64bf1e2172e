package utils

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// BucketStorage abstracts the object store behind named buckets. The local
// implementation maps buckets to directories; a managed store can be swapped
// in without touching the upload service.
type BucketStorage interface {
	// Put stores content at path inside bucket. It must refuse to
	// overwrite existing content.
	Put(bucket, path string, src io.Reader) error
	BucketExists(bucket string) (bool, error)
	// PublicURL returns the publicly resolvable reference for a stored
	// object, or an empty string if none can be produced.
	PublicURL(bucket, path string) string
}

type LocalBucketStorage struct {
	rootPath string
	baseURL  string
}

func NewLocalBucketStorage(rootPath, baseURL string) *LocalBucketStorage {
	return &LocalBucketStorage{rootPath: rootPath, baseURL: strings.TrimSuffix(baseURL, "/")}
}

// EnsureBuckets creates the configured buckets so uploads against a known
// bucket never fail with a missing directory.
func (s *LocalBucketStorage) EnsureBuckets(buckets ...string) error {
	for _, bucket := range buckets {
		dir := filepath.Join(s.rootPath, bucket)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create bucket directory %s: %w", bucket, err)
		}
	}
	return nil
}

func (s *LocalBucketStorage) BucketExists(bucket string) (bool, error) {
	info, err := os.Stat(filepath.Join(s.rootPath, bucket))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check bucket: %w", err)
	}
	return info.IsDir(), nil
}

// Put writes the object with O_EXCL so an existing path is never clobbered.
func (s *LocalBucketStorage) Put(bucket, path string, src io.Reader) error {
	fullPath := filepath.Join(s.rootPath, bucket, filepath.FromSlash(path))

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return fmt.Errorf("failed to create object directory: %w", err)
	}

	dst, err := os.OpenFile(fullPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(fullPath)
		return fmt.Errorf("failed to copy file content: %w", err)
	}

	return nil
}

func (s *LocalBucketStorage) PublicURL(bucket, path string) string {
	if s.baseURL == "" {
		return ""
	}
	return fmt.Sprintf("%s/uploads/%s/%s", s.baseURL, bucket, strings.TrimPrefix(path, "/"))
}
