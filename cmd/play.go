package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"readalong/internal/media"
	"readalong/internal/observe"
	"readalong/internal/playback"
	"readalong/internal/timing"
	"readalong/internal/tokenize"
	"readalong/internal/tui"
	"readalong/pkg/config"
)

var (
	playText  textSource
	playAudio string
	playTUI   bool
	playTitle string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play audio and follow along word by word",
	Long: `Play audio while highlighting the word being spoken. Audio can be a local
file, an http(s) URL or a gs://bucket/object reference. Without --audio a
silent track is timed for the text at the configured reading speed.`,
	RunE: runPlay,
}

func init() {
	playText.register(playCmd)
	playCmd.Flags().StringVarP(&playAudio, "audio", "a", "", "Audio file, URL or gs:// reference")
	playCmd.Flags().BoolVar(&playTUI, "tui", false, "Show the interactive reader")
	playCmd.Flags().StringVar(&playTitle, "title", "", "Title shown above the text")
	rootCmd.AddCommand(playCmd)
}

func runPlay(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	text, err := playText.read()
	if err != nil {
		return err
	}
	words := tokenize.CountableWords(text)

	ref, err := audioRef(cfg, playAudio, len(words))
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	player := media.NewPlayer()
	player.Play()

	if playTUI {
		return playInteractive(ctx, cfg, text, ref, player)
	}
	return playHeadless(ctx, cfg, text, words, ref, player)
}

// playHeadless logs each highlighted word until the audio ends.
func playHeadless(ctx context.Context, cfg *config.Config, text string, words []string, ref string, player *media.Player) error {
	sink := playback.SinkFunc(func(index int) {
		if index == timing.None {
			slog.Info("No active word")
			return
		}
		slog.Info("Word", "index", index, "text", words[index])
	})

	sync := playback.New(player, sink, playback.Options{
		Policy:  cfg.TimingPolicy(),
		Metrics: observe.Default(),
	})
	sync.SetText(text)

	g, gctx := errgroup.WithContext(ctx)
	loop := playback.Start(gctx, sync, playback.FrameTicker(gctx, cfg.Playback.FrameRate))

	g.Go(func() error {
		d, err := media.LoadDuration(gctx, newLoader(cfg), ref, cfg.Media.Bitrate, player)
		if err != nil {
			return err
		}
		slog.Info("Playing", "audio", ref, "duration", d, "words", len(words))
		return nil
	})

	// The player stops itself at the end of the audio. Stop below clears any
	// highlight the loop had no frame left to clear.
	g.Go(func() error {
		ticker := time.NewTicker(100 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-gctx.Done():
				return nil
			case <-ticker.C:
				if player.Ended() {
					return nil
				}
			}
		}
	})

	err := g.Wait()
	loop.Cancel()
	sync.Stop()
	if err != nil {
		return fmt.Errorf("playback: %w", err)
	}
	return nil
}

func playInteractive(ctx context.Context, cfg *config.Config, text, ref string, player *media.Player) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	model := tui.New(tui.Config{
		Text:      text,
		Title:     playTitle,
		Player:    player,
		Policy:    cfg.TimingPolicy(),
		Render:    cfg.RenderOptions(),
		FrameRate: cfg.Playback.FrameRate,
		SeekStep:  cfg.Playback.SeekStep,
		Metrics:   observe.Default(),
	})
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		d, err := media.LoadDuration(gctx, newLoader(cfg), ref, cfg.Media.Bitrate, player)
		if err != nil {
			slog.Debug("Audio unavailable", "audio", ref, "error", err)
		}
		p.Send(tui.MediaLoadedMsg{Duration: d, Err: err})
		return nil
	})
	g.Go(func() error {
		defer cancel()
		if _, err := p.Run(); err != nil && ctx.Err() == nil {
			return fmt.Errorf("reader: %w", err)
		}
		return nil
	})

	return g.Wait()
}
