package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

type LocalStorage struct {
	dir string
}

// NewLocalStorage resolves relative names against dir. An empty dir resolves
// against the working directory.
func NewLocalStorage(dir string) *LocalStorage {
	return &LocalStorage{dir: dir}
}

func (s *LocalStorage) Fetch(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path := name
	if !filepath.IsAbs(name) && s.dir != "" {
		path = filepath.Join(s.dir, name)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read audio file: %w", err)
	}
	return data, nil
}

// Save writes data under the storage directory and returns its path.
func (s *LocalStorage) Save(data []byte, filename string) (string, error) {
	path := filepath.Join(s.dir, filename)

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write audio file: %w", err)
	}

	return path, nil
}

// List returns the audio files directly inside the storage directory.
func (s *LocalStorage) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read audio directory: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() || !IsAudio(entry.Name()) {
			continue
		}
		files = append(files, filepath.Join(s.dir, entry.Name()))
	}
	sort.Strings(files)

	return files, nil
}
