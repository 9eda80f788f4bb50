package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadFromYAML(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "config.yaml")

	yaml := `
timing:
  min_char_weight: 1
bionic:
  short_max: 3
playback:
  frame_rate: 60
  seek_step: 2s
render:
  lead_color: "#FF0000"
  dyslexic: true
media:
  gcs_bucket: audio-bucket
`
	_ = os.WriteFile(path, []byte(yaml), 0644)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Timing.MinCharWeight != 1 {
		t.Errorf("Timing.MinCharWeight = %d, want 1", cfg.Timing.MinCharWeight)
	}
	if cfg.Bionic.ShortMax != 3 {
		t.Errorf("Bionic.ShortMax = %d, want 3", cfg.Bionic.ShortMax)
	}
	if cfg.Bionic.MediumMax != defaultMediumMax {
		t.Errorf("Bionic.MediumMax = %d, want default %d", cfg.Bionic.MediumMax, defaultMediumMax)
	}
	if cfg.Playback.FrameRate != 60 {
		t.Errorf("Playback.FrameRate = %d, want 60", cfg.Playback.FrameRate)
	}
	if cfg.Playback.SeekStep != 2*time.Second {
		t.Errorf("Playback.SeekStep = %v, want 2s", cfg.Playback.SeekStep)
	}
	if cfg.Render.LeadColor != "#FF0000" {
		t.Errorf("Render.LeadColor = %q, want #FF0000", cfg.Render.LeadColor)
	}
	if cfg.Render.LetterSpacing != 1 || cfg.Render.LineSpacing != 1 {
		t.Errorf("dyslexic spacing = %d/%d, want 1/1", cfg.Render.LetterSpacing, cfg.Render.LineSpacing)
	}
	if cfg.Media.GCSBucket != "audio-bucket" {
		t.Errorf("Media.GCSBucket = %q, want audio-bucket", cfg.Media.GCSBucket)
	}
}

func TestLoadFromTOML(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "config.toml")

	data := `
[timing]
min_char_weight = 2

[bionic]
long_ratio = 0.3

[playback]
words_per_minute = 180.0
`
	_ = os.WriteFile(path, []byte(data), 0644)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Timing.MinCharWeight != 2 {
		t.Errorf("Timing.MinCharWeight = %d, want 2", cfg.Timing.MinCharWeight)
	}
	if cfg.Bionic.LongRatio != 0.3 {
		t.Errorf("Bionic.LongRatio = %v, want 0.3", cfg.Bionic.LongRatio)
	}
	if cfg.Playback.WordsPerMinute != 180 {
		t.Errorf("Playback.WordsPerMinute = %v, want 180", cfg.Playback.WordsPerMinute)
	}
}

func TestLoadFromEnv(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "config.yaml")
	_ = os.WriteFile(path, []byte("media:\n  gcs_bucket: from-file"), 0644)

	t.Setenv("READALONG_GCS_BUCKET", "from-env")
	t.Setenv("READALONG_CACHE_DIR", "/tmp/readalong-cache")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Media.GCSBucket != "from-env" {
		t.Errorf("Media.GCSBucket = %q, want from-env", cfg.Media.GCSBucket)
	}
	if cfg.Media.CacheDir != "/tmp/readalong-cache" {
		t.Errorf("Media.CacheDir = %q, want /tmp/readalong-cache", cfg.Media.CacheDir)
	}
}

func TestLoadMissingDefaultFile(t *testing.T) {
	tmp := t.TempDir()
	orig, _ := os.Getwd()
	defer func() { _ = os.Chdir(orig) }()
	_ = os.Chdir(tmp)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if *cfg != *Default() {
		t.Errorf("Load() = %+v, want defaults %+v", cfg, Default())
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Error("Load() should fail when the named config file is missing")
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	_ = os.WriteFile(path, []byte("timing: [unclosed"), 0644)

	if _, err := Load(path); err == nil {
		t.Error("Load() should fail on malformed YAML")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	for _, name := range []string{"config.yaml", "nested/config.toml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)

			want := Default()
			want.Timing.MinCharWeight = 1
			want.Render.LeadColor = "#00BFFF"
			want.Playback.SeekStep = 3 * time.Second

			if err := Save(path, want); err != nil {
				t.Fatalf("Save() error: %v", err)
			}
			got, err := Load(path)
			if err != nil {
				t.Fatalf("Load() error: %v", err)
			}
			if *got != *want {
				t.Errorf("round trip = %+v, want %+v", got, want)
			}
		})
	}
}

func TestDefaults(t *testing.T) {
	cfg := Default()

	if p := cfg.TimingPolicy(); p.MinCharWeight != 3 {
		t.Errorf("TimingPolicy().MinCharWeight = %d, want 3", p.MinCharWeight)
	}
	b := cfg.BionicPolicy()
	if b.ShortMax != 2 || b.MediumMax != 4 || b.MediumRatio != 0.5 || b.LongRatio != 0.4 {
		t.Errorf("BionicPolicy() = %+v", b)
	}
	if cfg.Render.LetterSpacing != 0 {
		t.Errorf("LetterSpacing = %d, want 0 without dyslexic mode", cfg.Render.LetterSpacing)
	}
	opts := cfg.RenderOptions()
	if opts.Width != defaultWidth || opts.ActiveBackground != defaultActiveBackground {
		t.Errorf("RenderOptions() = %+v", opts)
	}
}
