package render

import (
	"sync"
	"time"
)

// FrameCounter reports how many frames were completed during the last
// second. It is safe for concurrent use.
type FrameCounter struct {
	mu     sync.Mutex
	window time.Duration
	stamps []time.Time
}

func NewFrameCounter() *FrameCounter {
	return &FrameCounter{window: time.Second}
}

// Tick records a frame finished at now and returns the frame rate.
func (f *FrameCounter) Tick(now time.Time) int {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.expire(now)
	f.stamps = append(f.stamps, now)
	return len(f.stamps)
}

// FPS returns the number of frames recorded within the window ending at now.
func (f *FrameCounter) FPS(now time.Time) int {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.expire(now)
	return len(f.stamps)
}

func (f *FrameCounter) expire(now time.Time) {
	cutoff := now.Add(-f.window)
	i := 0
	for i < len(f.stamps) && !f.stamps[i].After(cutoff) {
		i++
	}
	f.stamps = f.stamps[i:]
}
