package config

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"readalong/internal/bionic"
	"readalong/internal/render"
	"readalong/internal/timing"
)

const (
	DefaultConfigPath = "config.yaml"

	defaultMinCharWeight    = 3
	defaultShortMax         = 2
	defaultMediumMax        = 4
	defaultMediumRatio      = 0.5
	defaultLongRatio        = 0.4
	defaultFrameRate        = 30
	defaultWordsPerMinute   = 150
	defaultSeekStep         = 5 * time.Second
	defaultActiveColor      = "#000000"
	defaultActiveBackground = "#FFD75F"
	defaultWidth            = 80
	defaultCacheDir         = "./.cache"
	defaultBitrate          = 128000
)

type Config struct {
	Timing   TimingConfig   `yaml:"timing" toml:"timing"`
	Bionic   BionicConfig   `yaml:"bionic" toml:"bionic"`
	Playback PlaybackConfig `yaml:"playback" toml:"playback"`
	Render   RenderConfig   `yaml:"render" toml:"render"`
	Media    MediaConfig    `yaml:"media" toml:"media"`
}

type TimingConfig struct {
	MinCharWeight int `yaml:"min_char_weight" toml:"min_char_weight"`
}

type BionicConfig struct {
	ShortMax    int     `yaml:"short_max" toml:"short_max"`
	MediumMax   int     `yaml:"medium_max" toml:"medium_max"`
	MediumRatio float64 `yaml:"medium_ratio" toml:"medium_ratio"`
	LongRatio   float64 `yaml:"long_ratio" toml:"long_ratio"`
}

type PlaybackConfig struct {
	FrameRate      int           `yaml:"frame_rate" toml:"frame_rate"`
	WordsPerMinute float64       `yaml:"words_per_minute" toml:"words_per_minute"`
	SeekStep       time.Duration `yaml:"seek_step" toml:"seek_step"`
}

type RenderConfig struct {
	LeadColor        string `yaml:"lead_color" toml:"lead_color"`
	ActiveColor      string `yaml:"active_color" toml:"active_color"`
	ActiveBackground string `yaml:"active_background" toml:"active_background"`
	LetterSpacing    int    `yaml:"letter_spacing" toml:"letter_spacing"`
	LineSpacing      int    `yaml:"line_spacing" toml:"line_spacing"`
	Width            int    `yaml:"width" toml:"width"`
	Dyslexic         bool   `yaml:"dyslexic" toml:"dyslexic"`
}

type MediaConfig struct {
	CacheDir  string  `yaml:"cache_dir" toml:"cache_dir"`
	GCSBucket string  `yaml:"gcs_bucket" toml:"gcs_bucket"`
	Bitrate   float64 `yaml:"bitrate" toml:"bitrate"`
}

// Load reads path, or config.yaml in the working directory when path is
// empty. Only an explicitly named file is required to exist.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("No .env file found, relying on environment variables")
	}

	explicit := path != ""
	if !explicit {
		path = DefaultConfigPath
	}

	cfg := &Config{}
	if err := loadFile(path, cfg); err != nil {
		if !explicit && os.IsNotExist(err) {
			slog.Debug("No config file found, using defaults", "path", path)
		} else {
			return nil, err
		}
	}

	applyEnvOverrides(cfg)
	applyDefaults(cfg)

	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return err
		}
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	if isTOML(path) {
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return fmt.Errorf("failed to parse %s: %w", path, err)
		}
		return nil
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}

// Save writes cfg as YAML, or TOML when path ends in .toml.
func Save(path string, cfg *Config) error {
	var data []byte
	if isTOML(path) {
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
			return fmt.Errorf("failed to encode config: %w", err)
		}
		data = buf.Bytes()
	} else {
		var err error
		if data, err = yaml.Marshal(cfg); err != nil {
			return fmt.Errorf("failed to encode config: %w", err)
		}
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create config dir: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func isTOML(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}

func applyEnvOverrides(cfg *Config) {
	cfg.Media.GCSBucket = getEnvOrDefault("READALONG_GCS_BUCKET", cfg.Media.GCSBucket)
	cfg.Media.CacheDir = getEnvOrDefault("READALONG_CACHE_DIR", cfg.Media.CacheDir)
}

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

func applyDefaults(cfg *Config) {
	applyTimingDefaults(cfg)
	applyBionicDefaults(cfg)
	applyPlaybackDefaults(cfg)
	applyRenderDefaults(cfg)
	applyMediaDefaults(cfg)
}

func applyTimingDefaults(cfg *Config) {
	if cfg.Timing.MinCharWeight == 0 {
		cfg.Timing.MinCharWeight = defaultMinCharWeight
	}
}

func applyBionicDefaults(cfg *Config) {
	if cfg.Bionic.ShortMax == 0 {
		cfg.Bionic.ShortMax = defaultShortMax
	}
	if cfg.Bionic.MediumMax == 0 {
		cfg.Bionic.MediumMax = defaultMediumMax
	}
	if cfg.Bionic.MediumRatio == 0 {
		cfg.Bionic.MediumRatio = defaultMediumRatio
	}
	if cfg.Bionic.LongRatio == 0 {
		cfg.Bionic.LongRatio = defaultLongRatio
	}
}

func applyPlaybackDefaults(cfg *Config) {
	if cfg.Playback.FrameRate == 0 {
		cfg.Playback.FrameRate = defaultFrameRate
	}
	if cfg.Playback.WordsPerMinute == 0 {
		cfg.Playback.WordsPerMinute = defaultWordsPerMinute
	}
	if cfg.Playback.SeekStep == 0 {
		cfg.Playback.SeekStep = defaultSeekStep
	}
}

func applyRenderDefaults(cfg *Config) {
	if cfg.Render.ActiveColor == "" {
		cfg.Render.ActiveColor = defaultActiveColor
	}
	if cfg.Render.ActiveBackground == "" {
		cfg.Render.ActiveBackground = defaultActiveBackground
	}
	if cfg.Render.Width == 0 {
		cfg.Render.Width = defaultWidth
	}
	if cfg.Render.Dyslexic {
		if cfg.Render.LetterSpacing == 0 {
			cfg.Render.LetterSpacing = 1
		}
		if cfg.Render.LineSpacing == 0 {
			cfg.Render.LineSpacing = 1
		}
	}
}

func applyMediaDefaults(cfg *Config) {
	if cfg.Media.CacheDir == "" {
		cfg.Media.CacheDir = defaultCacheDir
	}
	if cfg.Media.Bitrate == 0 {
		cfg.Media.Bitrate = defaultBitrate
	}
}

func (c *Config) TimingPolicy() timing.Policy {
	return timing.Policy{MinCharWeight: c.Timing.MinCharWeight}
}

func (c *Config) BionicPolicy() bionic.Policy {
	return bionic.Policy{
		ShortMax:    c.Bionic.ShortMax,
		MediumMax:   c.Bionic.MediumMax,
		MediumRatio: c.Bionic.MediumRatio,
		LongRatio:   c.Bionic.LongRatio,
	}
}

func (c *Config) RenderOptions() render.Options {
	return render.Options{
		LeadColor:        c.Render.LeadColor,
		ActiveColor:      c.Render.ActiveColor,
		ActiveBackground: c.Render.ActiveBackground,
		LetterSpacing:    c.Render.LetterSpacing,
		LineSpacing:      c.Render.LineSpacing,
		Width:            c.Render.Width,
		Bionic:           c.BionicPolicy(),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
