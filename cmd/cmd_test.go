package cmd

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric/noop"

	"readalong/internal/media"
	"readalong/internal/observe"
	"readalong/internal/timing"
	"readalong/pkg/config"
)

func TestAudioRef(t *testing.T) {
	local := filepath.Join(t.TempDir(), "story.mp3")
	_ = os.WriteFile(local, []byte("x"), 0644)

	tests := []struct {
		name   string
		bucket string
		ref    string
		want   string
	}{
		{"url", "bucket", "https://example.com/a.mp3", "https://example.com/a.mp3"},
		{"gcsRef", "bucket", "gs://other/a.mp3", "gs://other/a.mp3"},
		{"bareNameInBucket", "bucket", "chapter1.mp3", "gs://bucket/chapter1.mp3"},
		{"bareNameNoBucket", "", "chapter1.mp3", "chapter1.mp3"},
		{"existingLocalFile", "bucket", local, local},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			cfg.Media.GCSBucket = tt.bucket

			got, err := audioRef(cfg, tt.ref, 3)
			if err != nil {
				t.Fatalf("audioRef() error: %v", err)
			}
			if got != tt.want {
				t.Errorf("audioRef(%q) = %q, want %q", tt.ref, got, tt.want)
			}
		})
	}
}

func TestAudioRefSynthesizesSilence(t *testing.T) {
	cfg := config.Default()
	cfg.Media.CacheDir = t.TempDir()
	cfg.Playback.WordsPerMinute = 60

	path, err := audioRef(cfg, "", 4)
	if err != nil {
		t.Fatalf("audioRef() error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	d, err := media.MeasureDuration(data, cfg.Media.Bitrate)
	if err != nil {
		t.Fatalf("MeasureDuration() error: %v", err)
	}
	if d != 4*time.Second {
		t.Errorf("silent audio lasts %v, want 4s", d)
	}
}

func TestValidators(t *testing.T) {
	if positiveInt("3") != nil || positiveInt("0") == nil || positiveInt("x") == nil {
		t.Error("positiveInt accepted or rejected the wrong input")
	}
	if positiveFloat("150") != nil || positiveFloat("-1") == nil || positiveFloat("") == nil {
		t.Error("positiveFloat accepted or rejected the wrong input")
	}
}

func TestTimingsTable(t *testing.T) {
	out := timingsTable(timing.EstimateWordTimings("Hi there", 2000, timing.DefaultPolicy()))

	for _, want := range []string{"WORD", "Hi", "there", "750", "2000"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}
}

func TestSetupMetrics(t *testing.T) {
	tests := []struct {
		name      string
		out       string
		wantStop  bool
		wantBytes bool
	}{
		{"disabled", "", false, false},
		{"file", "metrics.json", true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Cleanup(func() {
				metricsOut, metricsStop = "", nil
				otel.SetMeterProvider(noop.NewMeterProvider())
			})

			path := ""
			if tt.out != "" {
				path = filepath.Join(t.TempDir(), tt.out)
			}
			metricsOut = path

			if err := setupMetrics(context.Background()); err != nil {
				t.Fatalf("setupMetrics() error: %v", err)
			}
			if (metricsStop != nil) != tt.wantStop {
				t.Fatalf("metrics installed = %v, want %v", metricsStop != nil, tt.wantStop)
			}
			if metricsStop == nil {
				return
			}

			m, err := observe.NewMetrics(otel.GetMeterProvider())
			if err != nil {
				t.Fatalf("NewMetrics() error: %v", err)
			}
			m.RecordEstimate(context.Background(), "duration known")
			if err := metricsStop(context.Background()); err != nil {
				t.Fatalf("metrics shutdown error: %v", err)
			}

			data, err := os.ReadFile(path)
			if err != nil {
				t.Fatalf("read metrics: %v", err)
			}
			if got := strings.Contains(string(data), "readalong.timing.estimates"); got != tt.wantBytes {
				t.Errorf("metrics file has estimates = %v, want %v", got, tt.wantBytes)
			}
		})
	}
}
