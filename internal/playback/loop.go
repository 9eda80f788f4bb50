package playback

import (
	"context"
	"sync"
	"time"
)

// Ticker is anything advanced once per host frame.
type Ticker interface {
	Tick()
}

// Loop runs a Ticker on its own goroutine, once per received frame.
type Loop struct {
	cancel context.CancelFunc
	done   chan struct{}
	once   sync.Once
}

// Start runs t on every value received from frames until ctx is done, frames
// is closed, or the loop is cancelled.
func Start(ctx context.Context, t Ticker, frames <-chan time.Time) *Loop {
	ctx, cancel := context.WithCancel(ctx)
	l := &Loop{
		cancel: cancel,
		done:   make(chan struct{}),
	}

	go func() {
		defer close(l.done)
		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-frames:
				if !ok {
					return
				}
				// A frame can win the select after cancellation.
				if ctx.Err() != nil {
					return
				}
				t.Tick()
			}
		}
	}()

	return l
}

// Cancel stops the loop and waits for an in-flight tick to finish. It is safe
// to call more than once and from several goroutines, but not from inside a
// tick.
func (l *Loop) Cancel() {
	if l == nil {
		return
	}
	l.once.Do(l.cancel)
	<-l.done
}

// Done is closed once the loop goroutine has exited.
func (l *Loop) Done() <-chan struct{} {
	return l.done
}

// FrameTicker emits frames at fps until ctx is done. It stands in for a
// display refresh callback when running headless.
func FrameTicker(ctx context.Context, fps int) <-chan time.Time {
	if fps <= 0 {
		fps = 60
	}
	frames := make(chan time.Time)
	ticker := time.NewTicker(time.Second / time.Duration(fps))

	go func() {
		defer ticker.Stop()
		defer close(frames)
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				select {
				case frames <- now:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return frames
}
