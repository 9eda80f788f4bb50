// Package tui hosts the read-along in a bubbletea program. Every frame message
// advances the synchronizer by one step, and the view redraws the text with
// the active word highlighted.
package tui

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"readalong/internal/observe"
	"readalong/internal/playback"
	"readalong/internal/render"
	"readalong/internal/timing"
)

// Player is the media element the model controls.
type Player interface {
	playback.Clock
	Toggle()
	SeekBy(delta time.Duration)
	Ended() bool
}

type Config struct {
	Text      string
	Title     string
	Player    Player
	Policy    timing.Policy
	Render    render.Options
	FrameRate int
	SeekStep  time.Duration
	Metrics   *observe.Metrics
	Logger    *slog.Logger
}

// MediaLoadedMsg tells the model the background audio load has finished.
type MediaLoadedMsg struct {
	Duration time.Duration
	Err      error
}

type frameMsg time.Time

type Model struct {
	player   Player
	sync     *playback.Synchronizer
	renderer *render.Renderer
	active   *int

	title    string
	interval time.Duration
	seekStep time.Duration
	loaded   bool
	err      error
}

func New(cfg Config) Model {
	if cfg.FrameRate <= 0 {
		cfg.FrameRate = 30
	}
	if cfg.SeekStep <= 0 {
		cfg.SeekStep = 5 * time.Second
	}

	active := timing.None
	sink := playback.SinkFunc(func(index int) {
		active = index
	})

	sync := playback.New(cfg.Player, sink, playback.Options{
		Policy:  cfg.Policy,
		Metrics: cfg.Metrics,
		Logger:  cfg.Logger,
	})
	sync.SetText(cfg.Text)

	return Model{
		player:   cfg.Player,
		sync:     sync,
		renderer: render.New(cfg.Text, cfg.Render),
		active:   &active,
		title:    cfg.Title,
		interval: time.Second / time.Duration(cfg.FrameRate),
		seekStep: cfg.SeekStep,
	}
}

func (m Model) Init() tea.Cmd {
	return m.nextFrame()
}

func (m Model) nextFrame() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case frameMsg:
		m.sync.Tick()
		return m, m.nextFrame()

	case MediaLoadedMsg:
		m.loaded = true
		m.err = msg.Err
	}

	return m, nil
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q", "esc":
		m.sync.Stop()
		return m, tea.Quit
	case " ", "space", "p":
		m.player.Toggle()
	case "left", "h":
		m.player.SeekBy(-m.seekStep)
	case "right", "l":
		m.player.SeekBy(m.seekStep)
	}
	return m, nil
}

func (m Model) View() string {
	var b strings.Builder

	if m.title != "" {
		b.WriteString(TitleStyle.Render(m.title))
		b.WriteString("\n")
	}
	b.WriteString(TextStyle.Render(m.renderer.Render(*m.active)))
	b.WriteString("\n")
	b.WriteString(StatusStyle.Render(m.status()))
	b.WriteString("\n")
	if m.err != nil {
		b.WriteString(ErrorStyle.Render(fmt.Sprintf("audio: %v", m.err)))
		b.WriteString("\n")
	}
	b.WriteString(HelpStyle.Render("space play/pause • ←/→ seek • q quit"))

	return b.String()
}

func (m Model) status() string {
	pos := m.player.Position().Truncate(100 * time.Millisecond)
	total, known := m.player.Duration()

	switch {
	case !known && !m.loaded:
		return fmt.Sprintf("loading audio… %s", m.sync.State())
	case !known:
		return "audio unavailable"
	case m.player.Ended():
		return fmt.Sprintf("ended %s / %s", pos, total.Truncate(100*time.Millisecond))
	}

	word := "-"
	if *m.active != timing.None {
		word = fmt.Sprintf("%d/%d", *m.active+1, m.renderer.Words())
	}
	return fmt.Sprintf("%s / %s  word %s  %s",
		pos, total.Truncate(100*time.Millisecond), word, m.sync.State())
}

// Active returns the highlighted word index, or timing.None.
func (m Model) Active() int {
	return *m.active
}
