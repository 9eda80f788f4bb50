package cmd

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"readalong/pkg/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a config file interactively",
	Long:  `Walk through the reader settings and write them to config.yaml.`,
	RunE:  runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	fmt.Println(titleStyle.Render("Readalong Setup"))

	path := configPath
	if path == "" {
		path = config.DefaultConfigPath
	}

	if fileExists(path) {
		var overwrite bool
		if err := huh.NewConfirm().
			Title(fmt.Sprintf("Found existing %s", path)).
			Description("Overwrite?").
			Value(&overwrite).
			Run(); err != nil {
			return err
		}
		if !overwrite {
			fmt.Println(infoStyle.Render("Kept existing config"))
			return nil
		}
	}

	cfg := config.Default()
	minWeight := strconv.Itoa(cfg.Timing.MinCharWeight)
	wpm := strconv.FormatFloat(cfg.Playback.WordsPerMinute, 'f', -1, 64)

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Minimum word weight").
				Description("Short words are timed as if they had at least this many letters").
				Value(&minWeight).
				Validate(positiveInt),
			huh.NewInput().
				Title("Reading speed").
				Description("Words per minute for silent practice audio").
				Value(&wpm).
				Validate(positiveFloat),
			huh.NewSelect[int]().
				Title("Frame rate").
				Options(
					huh.NewOption("30 fps", 30),
					huh.NewOption("60 fps", 60),
					huh.NewOption("15 fps", 15),
				).
				Value(&cfg.Playback.FrameRate),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Lead color").
				Description("Color of the bold word leads, empty for the terminal default").
				Value(&cfg.Render.LeadColor),
			huh.NewInput().
				Title("Highlight color").
				Value(&cfg.Render.ActiveBackground),
			huh.NewConfirm().
				Title("Dyslexia-friendly spacing?").
				Value(&cfg.Render.Dyslexic),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("GCS bucket").
				Description("Optional bucket for audio referenced by name").
				Value(&cfg.Media.GCSBucket),
		),
	)
	if err := form.Run(); err != nil {
		return err
	}

	cfg.Timing.MinCharWeight, _ = strconv.Atoi(minWeight)
	cfg.Playback.WordsPerMinute, _ = strconv.ParseFloat(wpm, 64)
	if cfg.Render.Dyslexic {
		cfg.Render.LetterSpacing = 1
		cfg.Render.LineSpacing = 1
	}

	return runWithSpinner("Writing "+path, func() error {
		return config.Save(path, cfg)
	})
}

func positiveInt(s string) error {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return errors.New("enter a whole number of at least 1")
	}
	return nil
}

func positiveFloat(s string) error {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f <= 0 {
		return errors.New("enter a positive number")
	}
	return nil
}
