package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// ImageStore holds vehicle photos referenced by the image URL fields on a
// vehicle record.
type ImageStore interface {
	// NewKey mints a storage key for an upload, preserving the original
	// file extension.
	NewKey(filename string) string
	// URL returns the public download URL for a stored key.
	URL(key string) string
	Save(key string, contentType string, r io.Reader) error
	Open(key string) (io.ReadCloser, error)
}

// LocalStore keeps images on the local filesystem and serves them through
// the HTTP upload/download handlers.
type LocalStore struct {
	dir          string
	baseURL      string
	maxBytes     int64
	allowedTypes map[string]bool
}

func NewLocalStore(dir, baseURL string, maxFileSizeMB int64, allowedTypes []string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	if maxFileSizeMB <= 0 {
		maxFileSizeMB = 10
	}
	if len(allowedTypes) == 0 {
		allowedTypes = []string{"image/jpeg", "image/png", "image/gif"}
	}
	allowed := make(map[string]bool, len(allowedTypes))
	for _, t := range allowedTypes {
		allowed[strings.ToLower(t)] = true
	}
	return &LocalStore{
		dir:          dir,
		baseURL:      strings.TrimRight(baseURL, "/"),
		maxBytes:     maxFileSizeMB << 20,
		allowedTypes: allowed,
	}, nil
}

func (s *LocalStore) NewKey(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	return uuid.NewString() + ext
}

func (s *LocalStore) URL(key string) string {
	return fmt.Sprintf("%s/images?key=%s", s.baseURL, key)
}

func (s *LocalStore) Save(key string, contentType string, r io.Reader) error {
	if !s.allowedTypes[strings.ToLower(contentType)] {
		return fmt.Errorf("content type %q is not allowed", contentType)
	}
	path, err := s.safePath(key)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	// Copy one byte past the cap to tell "at the limit" from "over it".
	n, err := io.Copy(f, io.LimitReader(r, s.maxBytes+1))
	if err != nil {
		os.Remove(path)
		return fmt.Errorf("failed to write file: %w", err)
	}
	if n > s.maxBytes {
		os.Remove(path)
		return fmt.Errorf("file exceeds the %d byte limit", s.maxBytes)
	}
	return nil
}

func (s *LocalStore) Open(key string) (io.ReadCloser, error) {
	path, err := s.safePath(key)
	if err != nil {
		return nil, err
	}
	return os.Open(path)
}

// safePath rejects keys that would escape the upload directory.
func (s *LocalStore) safePath(key string) (string, error) {
	if key == "" || key != filepath.Base(key) {
		return "", fmt.Errorf("invalid storage key %q", key)
	}
	return filepath.Join(s.dir, key), nil
}
