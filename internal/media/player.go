package media

import (
	"sync"
	"time"
)

// Player is a wall-clock playback position over audio of a known length. Its
// duration is unknown until SetDuration is called, and the position holds
// still until then.
type Player struct {
	mu        sync.Mutex
	now       func() time.Time
	playing   bool
	base      time.Duration
	startedAt time.Time
	duration  time.Duration
	known     bool
}

func NewPlayer() *Player {
	return &Player{now: time.Now}
}

// newPlayerWithClock is used by tests to control time.
func newPlayerWithClock(now func() time.Time) *Player {
	return &Player{now: now}
}

func (p *Player) SetDuration(d time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if d < 0 {
		return
	}
	if !p.known && p.playing {
		p.startedAt = p.now()
	}
	p.duration = d
	p.known = true
}

func (p *Player) Duration() (time.Duration, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.duration, p.known
}

func (p *Player) Play() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.playing {
		return
	}
	if p.known && p.base >= p.duration {
		p.base = 0
	}
	p.playing = true
	p.startedAt = p.now()
}

func (p *Player) Pause() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.base = p.positionLocked()
	p.playing = false
}

func (p *Player) Toggle() {
	if p.Playing() {
		p.Pause()
		return
	}
	p.Play()
}

func (p *Player) Playing() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.settleLocked()
	return p.playing
}

func (p *Player) Position() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.settleLocked()
	return p.positionLocked()
}

// Ended reports whether playback ran to the end of known audio.
func (p *Player) Ended() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.settleLocked()
	return p.known && !p.playing && p.base >= p.duration
}

// Seek moves to d, clamped to the audio bounds.
func (p *Player) Seek(d time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.seekLocked(d)
}

func (p *Player) SeekBy(delta time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.seekLocked(p.positionLocked() + delta)
}

func (p *Player) seekLocked(d time.Duration) {
	p.base = p.clampLocked(d)
	p.startedAt = p.now()
}

func (p *Player) positionLocked() time.Duration {
	pos := p.base
	if p.playing && p.known {
		pos += p.now().Sub(p.startedAt)
	}
	return p.clampLocked(pos)
}

// settleLocked stops playback once the end of the audio is reached.
func (p *Player) settleLocked() {
	if !p.playing || !p.known {
		return
	}
	if pos := p.positionLocked(); pos >= p.duration {
		p.base = p.duration
		p.playing = false
	}
}

func (p *Player) clampLocked(d time.Duration) time.Duration {
	if d < 0 {
		return 0
	}
	if p.known && d > p.duration {
		return p.duration
	}
	return d
}
