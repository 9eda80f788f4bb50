package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"readalong/internal/render"
	"readalong/internal/timing"
)

var (
	renderText     textSource
	renderAt       time.Duration
	renderDuration time.Duration
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Print the text with bold word leads",
	Long: `Print the text once in bionic form. With --duration and --at the word
spoken at that moment is highlighted as it would be during playback.`,
	RunE: runRender,
}

func init() {
	renderText.register(renderCmd)
	renderCmd.Flags().DurationVar(&renderAt, "at", 0, "Playback position to highlight")
	renderCmd.Flags().DurationVar(&renderDuration, "duration", 0, "Total audio duration")
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	if renderAt > 0 && renderDuration <= 0 {
		return errors.New("--at needs --duration")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	text, err := renderText.read()
	if err != nil {
		return err
	}

	active := timing.None
	if renderDuration > 0 {
		timings := timing.EstimateWordTimings(text, renderDuration.Milliseconds(), cfg.TimingPolicy())
		active = timing.ResolveIndex(timings, renderAt.Milliseconds())
	}

	fmt.Println(render.New(text, cfg.RenderOptions()).Render(active))
	return nil
}
