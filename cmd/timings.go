package cmd

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"readalong/internal/media"
	"readalong/internal/subtitle"
	"readalong/internal/timing"
)

var (
	timingsText     textSource
	timingsAudio    string
	timingsDuration time.Duration
	timingsFormat   string
)

var timingsCmd = &cobra.Command{
	Use:   "timings",
	Short: "Print the estimated word windows",
	Long: `Estimate when each word is spoken and print the windows as a table, YAML,
or as ASS/SRT subtitles to check them against the audio in a media player.`,
	RunE: runTimings,
}

func init() {
	timingsText.register(timingsCmd)
	timingsCmd.Flags().StringVarP(&timingsAudio, "audio", "a", "", "Audio to read the duration from")
	timingsCmd.Flags().DurationVarP(&timingsDuration, "duration", "d", 0, "Total audio duration")
	timingsCmd.Flags().StringVarP(&timingsFormat, "format", "o", "table", "Output format: table, yaml, ass or srt")
	timingsCmd.MarkFlagsMutuallyExclusive("audio", "duration")
	rootCmd.AddCommand(timingsCmd)
}

type timingRow struct {
	Index   int    `yaml:"index"`
	Text    string `yaml:"text"`
	StartMs int64  `yaml:"start_ms"`
	EndMs   int64  `yaml:"end_ms"`
}

func runTimings(cmd *cobra.Command, args []string) error {
	if timingsAudio == "" && timingsDuration <= 0 {
		return errors.New("please provide --audio or --duration")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	text, err := timingsText.read()
	if err != nil {
		return err
	}

	total := timingsDuration
	if timingsAudio != "" {
		ref, err := audioRef(cfg, timingsAudio, 0)
		if err != nil {
			return err
		}
		if total, err = media.LoadDuration(cmd.Context(), newLoader(cfg), ref, cfg.Media.Bitrate, media.NewPlayer()); err != nil {
			return err
		}
	}

	timings := timing.EstimateWordTimings(text, total.Milliseconds(), cfg.TimingPolicy())

	switch timingsFormat {
	case "table":
		fmt.Println(timingsTable(timings))
	case "yaml":
		rows := make([]timingRow, len(timings))
		for i, w := range timings {
			rows[i] = timingRow(w)
		}
		out, err := yaml.Marshal(rows)
		if err != nil {
			return fmt.Errorf("encode timings: %w", err)
		}
		fmt.Print(string(out))
	case "ass":
		fmt.Print(subtitle.ToASS(timings, subtitle.Options{
			PrimaryColor: cfg.Render.ActiveBackground,
			Bold:         true,
		}))
	case "srt":
		fmt.Print(subtitle.ToSRT(timings))
	default:
		return fmt.Errorf("unknown format %q", timingsFormat)
	}
	return nil
}

func timingsTable(timings []timing.WordTiming) string {
	rows := make([][]string, 0, len(timings))
	for _, w := range timings {
		rows = append(rows, []string{
			strconv.Itoa(w.Index),
			w.Text,
			strconv.FormatInt(w.StartMs, 10),
			strconv.FormatInt(w.EndMs, 10),
		})
	}

	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers("#", "WORD", "START MS", "END MS").
		Rows(rows...).
		String()
}
