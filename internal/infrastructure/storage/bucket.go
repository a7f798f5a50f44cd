package storage

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/google/uuid"
	"gocloud.dev/blob"
	_ "gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/s3blob"

	"github.com/aiagencydirectory/api/internal/directory"
)

// LogoStore persists uploaded agency logos in a blob bucket and serves them
// from a public media base URL.
type LogoStore struct {
	bucket  *blob.Bucket
	baseURL string
}

// OpenLogoStore opens the bucket behind bucketURL. The scheme decides the
// backend (file://, s3://).
func OpenLogoStore(ctx context.Context, bucketURL, baseURL string) (*LogoStore, error) {
	bucket, err := blob.OpenBucket(ctx, bucketURL)
	if err != nil {
		return nil, fmt.Errorf("open logo bucket: %w", err)
	}
	return &LogoStore{bucket: bucket, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

// Upload stores the logo under a fresh key so repeated uploads never clash,
// and returns the public URL.
func (s *LogoStore) Upload(ctx context.Context, filename, contentType string, data []byte) (string, error) {
	key := "logos/" + uuid.NewString() + strings.ToLower(path.Ext(filename))

	writer, err := s.bucket.NewWriter(ctx, key, &blob.WriterOptions{ContentType: contentType})
	if err != nil {
		return "", fmt.Errorf("%w: open logo writer: %v", directory.ErrUploadFailed, err)
	}
	if _, err := writer.Write(data); err != nil {
		writer.Close()
		return "", fmt.Errorf("%w: write logo: %v", directory.ErrUploadFailed, err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("%w: finish logo upload: %v", directory.ErrUploadFailed, err)
	}
	return s.baseURL + "/" + key, nil
}

// Close releases the underlying bucket handle.
func (s *LogoStore) Close() error {
	return s.bucket.Close()
}
