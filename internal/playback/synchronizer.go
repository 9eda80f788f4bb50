// Package playback keeps the active word index in step with a media clock.
//
// A Synchronizer is a state machine advanced one step per host frame by
// [Synchronizer.Tick]. A [Loop] drives those steps from a frame channel and
// can be cancelled; once [Loop.Cancel] returns no further step runs.
package playback

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"readalong/internal/observe"
	"readalong/internal/timing"
	"readalong/internal/tokenize"
)

// Clock is a read-only view of a playing media element.
type Clock interface {
	Playing() bool
	Position() time.Duration
	// Duration reports false until the media metadata is known.
	Duration() (time.Duration, bool)
}

// Sink receives the active word index, or timing.None. It is called with the
// synchronizer's lock held and must not call back into the synchronizer.
type Sink interface {
	Activate(index int)
}

type SinkFunc func(index int)

func (f SinkFunc) Activate(index int) { f(index) }

type State int

const (
	Idle State = iota
	WaitingForDuration
	Tracking
	Stopped
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case WaitingForDuration:
		return "waiting_for_duration"
	case Tracking:
		return "tracking"
	case Stopped:
		return "stopped"
	default:
		return "unknown"
	}
}

type Options struct {
	Policy  timing.Policy
	Metrics *observe.Metrics
	Logger  *slog.Logger
}

type Synchronizer struct {
	mu sync.Mutex

	clock   Clock
	sink    Sink
	policy  timing.Policy
	metrics *observe.Metrics
	logger  *slog.Logger

	words      []string
	state      State
	timings    []timing.WordTiming
	durationMs int64
	current    int
	sessionID  string
}

func New(clock Clock, sink Sink, opts Options) *Synchronizer {
	if opts.Policy == (timing.Policy{}) {
		opts.Policy = timing.DefaultPolicy()
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	return &Synchronizer{
		clock:   clock,
		sink:    sink,
		policy:  opts.Policy,
		metrics: opts.Metrics,
		logger:  opts.Logger,
		current: timing.None,
	}
}

// SetText replaces the text being read. Any running session stops and the
// timings are rebuilt on a later tick.
func (s *Synchronizer) SetText(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.words = tokenize.CountableWords(text)
	s.timings = nil
	s.durationMs = 0
	if s.state == Tracking || s.state == WaitingForDuration {
		s.stopLocked("text changed")
	}
}

// Stop tears down the current session, if any.
func (s *Synchronizer) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == Tracking || s.state == WaitingForDuration {
		s.stopLocked("stopped")
	}
}

// Tick advances the state machine by one frame.
func (s *Synchronizer) Tick() {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx := context.Background()
	s.metrics.RecordTick(ctx, s.state.String())

	if !s.clock.Playing() {
		if s.state == Tracking || s.state == WaitingForDuration {
			s.stopLocked("paused")
		}
		return
	}

	if s.state == Idle || s.state == Stopped {
		s.state = WaitingForDuration
	}

	durationMs, ok := s.durationLocked()
	if !ok {
		if s.state == Tracking {
			s.stopLocked("duration lost")
			s.timings = nil
			s.durationMs = 0
			s.state = WaitingForDuration
		}
		return
	}

	switch s.state {
	case WaitingForDuration:
		if len(s.words) == 0 {
			return
		}
		s.estimateLocked(ctx, durationMs, "duration known")
		s.state = Tracking
		s.sessionID = uuid.NewString()
		s.metrics.SessionStarted(ctx)
		s.logger.Debug("Tracking started", "session", s.sessionID, "words", len(s.words), "duration_ms", durationMs)
	case Tracking:
		if durationMs != s.durationMs {
			s.estimateLocked(ctx, durationMs, "duration changed")
		}
	}

	s.reportLocked(ctx, timing.ResolveIndex(s.timings, s.clock.Position().Milliseconds()))
}

func (s *Synchronizer) durationLocked() (int64, bool) {
	d, ok := s.clock.Duration()
	if !ok || d <= 0 {
		return 0, false
	}
	ms := d.Milliseconds()
	return ms, ms > 0
}

func (s *Synchronizer) estimateLocked(ctx context.Context, durationMs int64, reason string) {
	s.timings = timing.Estimate(s.words, durationMs, s.policy)
	s.durationMs = durationMs
	s.metrics.RecordEstimate(ctx, reason)
	s.logger.Debug("Estimated word timings", "reason", reason, "words", len(s.timings), "duration_ms", durationMs)
}

func (s *Synchronizer) reportLocked(ctx context.Context, index int) {
	if index == s.current {
		return
	}
	s.current = index
	s.metrics.RecordReport(ctx)
	s.sink.Activate(index)
}

func (s *Synchronizer) stopLocked(reason string) {
	ctx := context.Background()
	if s.state == Tracking {
		s.metrics.SessionEnded(ctx)
		s.logger.Debug("Tracking stopped", "session", s.sessionID, "reason", reason)
	}
	s.state = Stopped
	s.sessionID = ""
	s.reportLocked(ctx, timing.None)
}

func (s *Synchronizer) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Current returns the last reported index, or timing.None.
func (s *Synchronizer) Current() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Timings returns the windows of the running session. The slice is replaced,
// never modified, so callers may keep it.
func (s *Synchronizer) Timings() []timing.WordTiming {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.timings
}

func (s *Synchronizer) SessionID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessionID
}
