package cmd

import (
	"log/slog"
	"path/filepath"

	"github.com/spf13/cobra"

	"readalong/internal/media"
	"readalong/internal/storage"
	"readalong/internal/tokenize"
)

var (
	synthText textSource
	synthOut  string
	synthWPM  float64
)

var synthCmd = &cobra.Command{
	Use:   "synth",
	Short: "Write a silent WAV timed for a text",
	Long: `Write a silent WAV whose length matches reading the text aloud at the
given speed. Useful for trying the reader without narration.`,
	RunE: runSynth,
}

func init() {
	synthText.register(synthCmd)
	synthCmd.Flags().StringVarP(&synthOut, "out", "o", "silence.wav", "Output file")
	synthCmd.Flags().Float64Var(&synthWPM, "wpm", 0, "Words per minute (default from config)")
	rootCmd.AddCommand(synthCmd)
}

func runSynth(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	text, err := synthText.read()
	if err != nil {
		return err
	}

	wpm := synthWPM
	if wpm <= 0 {
		wpm = cfg.Playback.WordsPerMinute
	}

	words := len(tokenize.CountableWords(text))
	d := media.EstimateSpeechDuration(words, wpm)

	path, err := storage.NewLocalStorage(filepath.Dir(synthOut)).Save(media.SilentWAV(d), filepath.Base(synthOut))
	if err != nil {
		return err
	}

	slog.Info("Wrote silent audio", "path", path, "duration", d, "words", words)
	return nil
}
