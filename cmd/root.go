package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"readalong/internal/observe"
	"readalong/pkg/config"
)

var version = "dev"

var (
	verbose     bool
	configPath  string
	metricsOut  string
	metricsStop func(context.Context) error
)

var rootCmd = &cobra.Command{
	Use:   "readalong",
	Short: "Highlight spoken words in bionic reading text",
	Long: `Readalong estimates when each word of a text is spoken from the total
audio duration and highlights the active word, with a bold lead on every
word, while the audio plays.`,
	Version:      version,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (default: ./config.yaml)")
	rootCmd.PersistentFlags().StringVar(&metricsOut, "metrics-out", "", `Write playback metrics to a file ("-" for stderr)`)
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		setupLogger()
		return setupMetrics(cmd.Context())
	}
}

func Execute() error {
	err := rootCmd.Execute()
	if metricsStop != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		err = errors.Join(err, metricsStop(ctx))
	}
	return err
}

// Logs go to stderr so they never interleave with rendered text on stdout.
func setupLogger() {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

// setupMetrics installs the OpenTelemetry meter provider when --metrics-out
// is set. Metrics are flushed by Execute on exit.
func setupMetrics(ctx context.Context) error {
	if metricsOut == "" {
		return nil
	}

	var w io.Writer = os.Stderr
	var closeOut func() error
	if metricsOut != "-" {
		f, err := os.Create(metricsOut)
		if err != nil {
			return fmt.Errorf("open metrics output: %w", err)
		}
		w, closeOut = f, f.Close
	}

	shutdown, err := observe.InitProvider(ctx, observe.ProviderConfig{
		ServiceVersion: version,
		Writer:         w,
	})
	if err != nil {
		if closeOut != nil {
			_ = closeOut()
		}
		return fmt.Errorf("init metrics: %w", err)
	}
	slog.Debug("Metrics enabled", "output", metricsOut)

	metricsStop = func(ctx context.Context) error {
		err := shutdown(ctx)
		if closeOut != nil {
			err = errors.Join(err, closeOut())
		}
		return err
	}
	return nil
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}
