package tenon

import "time"

// swipeTrackerSamples bounds how many recent pointer samples feed the
// velocity estimate; older samples are dropped once a gesture is running
// longer than this many frames' worth of history is useful for.
const swipeTrackerSamples = 8

type swipeSample struct {
	t     time.Time
	value float64
}

// SwipeTracker estimates momentum from a recent history of touchpad or
// touch positions, for use as the launch velocity of the Animation that
// a gesture hands off to once released: a short ring buffer of
// (time, value) samples, velocity computed as a least-recent-to-
// most-recent finite difference.
type SwipeTracker struct {
	samples []swipeSample
}

// NewSwipeTracker returns an empty tracker.
func NewSwipeTracker() *SwipeTracker {
	return &SwipeTracker{samples: make([]swipeSample, 0, swipeTrackerSamples)}
}

// Push records a new (time, value) sample, evicting the oldest sample
// once the buffer is full.
func (s *SwipeTracker) Push(t time.Time, value float64) {
	if len(s.samples) == swipeTrackerSamples {
		copy(s.samples, s.samples[1:])
		s.samples = s.samples[:swipeTrackerSamples-1]
	}
	s.samples = append(s.samples, swipeSample{t: t, value: value})
}

// Reset discards all recorded samples.
func (s *SwipeTracker) Reset() {
	s.samples = s.samples[:0]
}

// Velocity returns the estimated instantaneous velocity (value units per
// second) from the oldest to the newest recorded sample. Returns 0 if
// fewer than two samples have been recorded, or if they span no time.
func (s *SwipeTracker) Velocity() float64 {
	if len(s.samples) < 2 {
		return 0
	}
	first := s.samples[0]
	last := s.samples[len(s.samples)-1]
	dt := last.t.Sub(first.t).Seconds()
	if dt <= 0 {
		return 0
	}
	return (last.value - first.value) / dt
}
