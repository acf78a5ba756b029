package timing

import (
	"log/slog"
	"time"
)

// spinThreshold is the remaining wait below which the limiter stops
// sleeping and polls the clock instead.
const spinThreshold = 2 * time.Millisecond

// AdaptiveLimiter sleeps for most of the frame and spins for the rest.
// When the loop falls far behind it resynchronizes instead of rushing
// through the backlog.
type AdaptiveLimiter struct {
	targetFrameTime time.Duration
	nextFrameTime   time.Time
	frameCounter    int64
	late            int64
}

func NewAdaptiveLimiter(fps int) *AdaptiveLimiter {
	return &AdaptiveLimiter{
		targetFrameTime: FrameDuration(fps),
		nextFrameTime:   time.Now(),
	}
}

func (a *AdaptiveLimiter) WaitForNextFrame() {
	now := time.Now()
	wait := a.nextFrameTime.Sub(now)

	switch {
	case wait > spinThreshold:
		time.Sleep(wait - time.Millisecond)
		fallthrough
	case wait > 0:
		for time.Now().Before(a.nextFrameTime) {
		}
	case wait < -5*a.targetFrameTime:
		a.late++
		a.nextFrameTime = now
	}

	a.nextFrameTime = a.nextFrameTime.Add(a.targetFrameTime)
	a.frameCounter++

	if a.frameCounter%(10*DefaultFPS) == 0 && a.late > 0 {
		slog.Debug("Frame pacing resynchronized", "times", a.late, "frames", a.frameCounter)
		a.late = 0
	}
}

func (a *AdaptiveLimiter) Reset() {
	a.nextFrameTime = time.Now()
	a.frameCounter = 0
	a.late = 0
}
