// Package storage fetches audio objects from a local directory or a GCS bucket.
package storage

import (
	"context"
	"path/filepath"
	"strings"
)

// Fetcher returns the bytes of a named audio object.
type Fetcher interface {
	Fetch(ctx context.Context, name string) ([]byte, error)
}

var audioExtensions = map[string]bool{
	".wav":  true,
	".mp3":  true,
	".ogg":  true,
	".m4a":  true,
	".flac": true,
}

// IsAudio reports whether name carries a known audio file extension.
func IsAudio(name string) bool {
	return audioExtensions[strings.ToLower(filepath.Ext(name))]
}
