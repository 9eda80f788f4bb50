package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"cloud.google.com/go/storage"
	"google.golang.org/api/iterator"
)

// GCSStorage reads audio objects from a bucket, keeping a local copy in
// cacheDir so repeated plays do not download again.
type GCSStorage struct {
	client   *storage.Client
	bucket   string
	cacheDir string
}

func NewGCSStorage(ctx context.Context, bucket, cacheDir string) (*GCSStorage, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCS client: %w", err)
	}

	return &GCSStorage{
		client:   client,
		bucket:   bucket,
		cacheDir: cacheDir,
	}, nil
}

func (s *GCSStorage) Close() error {
	return s.client.Close()
}

func (s *GCSStorage) Bucket() string {
	return s.bucket
}

func (s *GCSStorage) Fetch(ctx context.Context, name string) ([]byte, error) {
	localPath := s.cachePath(name)
	if data, err := os.ReadFile(localPath); err == nil {
		return data, nil
	}

	if err := s.download(ctx, name, localPath); err != nil {
		return nil, fmt.Errorf("failed to download gs://%s/%s: %w", s.bucket, name, err)
	}

	data, err := os.ReadFile(localPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read cached audio: %w", err)
	}
	return data, nil
}

// List returns the audio object names under prefix.
func (s *GCSStorage) List(ctx context.Context, prefix string) ([]string, error) {
	it := s.client.Bucket(s.bucket).Objects(ctx, &storage.Query{Prefix: prefix})

	var names []string
	for {
		attrs, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list objects: %w", err)
		}
		if IsAudio(attrs.Name) {
			names = append(names, attrs.Name)
		}
	}

	return names, nil
}

func (s *GCSStorage) cachePath(name string) string {
	return filepath.Join(s.cacheDir, s.bucket, filepath.FromSlash(name))
}

func (s *GCSStorage) download(ctx context.Context, remotePath, localPath string) error {
	if err := os.MkdirAll(filepath.Dir(localPath), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	r, err := s.client.Bucket(s.bucket).Object(remotePath).NewReader(ctx)
	if err != nil {
		return fmt.Errorf("failed to create reader: %w", err)
	}
	defer func() { _ = r.Close() }()

	tmp := localPath + ".part"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("failed to create local file: %w", err)
	}

	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to download file: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to close local file: %w", err)
	}

	return os.Rename(tmp, localPath)
}
