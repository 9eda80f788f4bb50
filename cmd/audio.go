package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"readalong/internal/media"
	"readalong/internal/storage"
	"readalong/pkg/config"
	"readalong/pkg/httputil"
)

const silenceFile = "silence.wav"

func newLoader(cfg *config.Config) *media.Loader {
	return &media.Loader{
		Local: storage.NewLocalStorage(""),
		HTTP:  httputil.NewRetryClient(&http.Client{Timeout: 60 * time.Second}, httputil.DefaultRetryConfig()),
		OpenGCS: func(ctx context.Context, bucket string) (storage.Fetcher, error) {
			s, err := storage.NewGCSStorage(ctx, bucket, cfg.Media.CacheDir)
			if err != nil {
				return nil, err
			}
			return s, nil
		},
	}
}

// audioRef resolves the audio to play. A bare object name is looked up in the
// configured bucket. Without audio a silent track sized for the text is
// written to the cache dir.
func audioRef(cfg *config.Config, ref string, words int) (string, error) {
	if ref != "" {
		if cfg.Media.GCSBucket != "" && !hasScheme(ref) && storage.IsAudio(ref) && !fileExists(ref) {
			return fmt.Sprintf("gs://%s/%s", cfg.Media.GCSBucket, ref), nil
		}
		return ref, nil
	}

	d := media.EstimateSpeechDuration(words, cfg.Playback.WordsPerMinute)
	path, err := storage.NewLocalStorage(cfg.Media.CacheDir).Save(media.SilentWAV(d), silenceFile)
	if err != nil {
		return "", fmt.Errorf("write silent audio: %w", err)
	}
	slog.Debug("Using silent audio", "path", path, "duration", d)
	return path, nil
}

func hasScheme(ref string) bool {
	return strings.Contains(ref, "://")
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
