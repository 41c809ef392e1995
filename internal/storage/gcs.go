package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	gcs "cloud.google.com/go/storage"
)

// ObjectStore abstracts the bucket that holds document binaries.
type ObjectStore interface {
	// Upload streams r into the bucket at the given object path and returns
	// the public URL of the stored object.
	Upload(ctx context.Context, path, contentType string, r io.Reader) (string, error)
	// Delete removes the object a previous Upload returned the URL for.
	Delete(ctx context.Context, publicURL string) error
}

// GCSObjectStore stores objects in a Google Cloud Storage bucket.
type GCSObjectStore struct {
	client *gcs.Client
	bucket string
}

// NewGCSObjectStore creates an ObjectStore backed by the named bucket.
func NewGCSObjectStore(client *gcs.Client, bucket string) *GCSObjectStore {
	return &GCSObjectStore{client: client, bucket: bucket}
}

func (s *GCSObjectStore) Upload(ctx context.Context, path, contentType string, r io.Reader) (string, error) {
	w := s.client.Bucket(s.bucket).Object(path).NewWriter(ctx)
	if contentType != "" {
		w.ContentType = contentType
	}
	if _, err := io.Copy(w, r); err != nil {
		w.Close()
		return "", fmt.Errorf("failed to write object '%s': %w", path, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize object '%s': %w", path, err)
	}
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", s.bucket, path), nil
}

func (s *GCSObjectStore) Delete(ctx context.Context, publicURL string) error {
	object, err := s.objectPath(publicURL)
	if err != nil {
		return err
	}
	if err := s.client.Bucket(s.bucket).Object(object).Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete object '%s': %w", object, err)
	}
	return nil
}

// objectPath extracts the object name from a public URL produced by Upload.
func (s *GCSObjectStore) objectPath(publicURL string) (string, error) {
	u, err := url.Parse(publicURL)
	if err != nil {
		return "", fmt.Errorf("invalid object URL '%s': %w", publicURL, err)
	}
	prefix := "/" + s.bucket + "/"
	if !strings.HasPrefix(u.Path, prefix) {
		return "", fmt.Errorf("object URL '%s' does not belong to bucket '%s'", publicURL, s.bucket)
	}
	return strings.TrimPrefix(u.Path, prefix), nil
}
