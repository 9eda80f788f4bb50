// Package media stands in for the host's media element: it loads audio,
// reads its duration, and exposes a playback clock.
package media

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"readalong/internal/storage"
	"readalong/pkg/httputil"
)

// Loader fetches audio by reference: gs://bucket/object, http(s)://... or a
// local path.
type Loader struct {
	Local   storage.Fetcher
	HTTP    *httputil.RetryClient
	OpenGCS func(ctx context.Context, bucket string) (storage.Fetcher, error)
}

func (l *Loader) Load(ctx context.Context, ref string) ([]byte, error) {
	switch {
	case strings.HasPrefix(ref, "gs://"):
		return l.loadGCS(ctx, strings.TrimPrefix(ref, "gs://"))
	case strings.HasPrefix(ref, "http://"), strings.HasPrefix(ref, "https://"):
		if l.HTTP == nil {
			return nil, fmt.Errorf("no http client configured for %s", ref)
		}
		return l.HTTP.Get(ctx, ref)
	default:
		if l.Local == nil {
			return nil, fmt.Errorf("no local storage configured for %s", ref)
		}
		return l.Local.Fetch(ctx, ref)
	}
}

func (l *Loader) loadGCS(ctx context.Context, path string) ([]byte, error) {
	bucket, object, ok := strings.Cut(path, "/")
	if !ok || bucket == "" || object == "" {
		return nil, fmt.Errorf("invalid gcs reference gs://%s", path)
	}
	if l.OpenGCS == nil {
		return nil, fmt.Errorf("no gcs storage configured for gs://%s", path)
	}

	fetcher, err := l.OpenGCS(ctx, bucket)
	if err != nil {
		return nil, err
	}
	if c, ok := fetcher.(io.Closer); ok {
		defer func() { _ = c.Close() }()
	}

	return fetcher.Fetch(ctx, object)
}

// LoadDuration loads ref and reports its duration to the player, the way a
// media element fires loadedmetadata. The player's duration stays unknown
// when loading fails.
func LoadDuration(ctx context.Context, l *Loader, ref string, bitrate float64, p *Player) (time.Duration, error) {
	data, err := l.Load(ctx, ref)
	if err != nil {
		return 0, fmt.Errorf("load audio: %w", err)
	}

	d, err := MeasureDuration(data, bitrate)
	if err != nil {
		return 0, fmt.Errorf("measure %s: %w", ref, err)
	}

	p.SetDuration(d)
	slog.Debug("Audio metadata loaded", "ref", ref, "bytes", len(data), "duration", d)
	return d, nil
}
