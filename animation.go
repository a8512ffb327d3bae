package tenon

import (
	"math"
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// EasingConfig names one configured animation curve: an easing function
// plus a duration. Distinct config keys (window-open, window-movement,
// horizontal-view-movement, ...) may resolve to different EasingConfigs;
// see [Config.Animations].
type EasingConfig struct {
	Duration time.Duration
	Easing   ease.TweenFunc
}

// DefaultEasingConfig is used wherever a caller does not supply one.
func DefaultEasingConfig() EasingConfig {
	return EasingConfig{Duration: 250 * time.Millisecond, Easing: ease.OutCubic}
}

// Animation is a one-shot interpolation from From to To over Duration,
// started at StartTime. Its easing curve is driven by a fresh
// [gween.Tween] sampled at an absolute elapsed offset on every call, so
// Value is a pure function of now: calling it twice with the same now
// yields the same result, satisfying the idempotence requirement on
// advance_animations.
//
// InitialVelocity carries an inherited launch velocity into the
// animation as an exponentially decaying offset on top of the eased
// base curve, decaying over a quarter of the animation's duration. It
// is zero for the common case (most animations start at rest) and only
// matters when one AnimatedValue takes over the motion of another
// (e.g. a gesture converting to an animation, or an interrupt
// overlay).
type Animation struct {
	From, To        float64
	InitialVelocity float64
	Config          EasingConfig
	StartTime       time.Time
}

// NewAnimation constructs an Animation starting now.
func NewAnimation(from, to float64, cfg EasingConfig, now time.Time) *Animation {
	return &Animation{From: from, To: to, Config: cfg, StartTime: now}
}

// NewAnimationWithVelocity is NewAnimation plus an inherited launch
// velocity (units per second) to blend out smoothly.
func NewAnimationWithVelocity(from, to, v0 float64, cfg EasingConfig, now time.Time) *Animation {
	return &Animation{From: from, To: to, InitialVelocity: v0, Config: cfg, StartTime: now}
}

func (a *Animation) elapsed(now time.Time) time.Duration {
	d := now.Sub(a.StartTime)
	if d < 0 {
		return 0
	}
	if d > a.Config.Duration {
		return a.Config.Duration
	}
	return d
}

// Value returns the interpolated value at now.
func (a *Animation) Value(now time.Time) float64 {
	dur := a.Config.Duration
	if dur <= 0 {
		return a.To
	}
	fn := a.Config.Easing
	if fn == nil {
		fn = ease.OutCubic
	}
	elapsed := a.elapsed(now)
	tw := gween.New(float32(a.From), float32(a.To), float32(dur.Seconds()), fn)
	v, _ := tw.Update(float32(elapsed.Seconds()))
	return float64(v) + a.velocityOffset(elapsed)
}

func (a *Animation) velocityOffset(elapsed time.Duration) float64 {
	if a.InitialVelocity == 0 {
		return 0
	}
	tau := a.Config.Duration.Seconds() / 4
	if tau <= 0 {
		return 0
	}
	t := elapsed.Seconds()
	return a.InitialVelocity * tau * math.Exp(-t/tau)
}

// Finished reports whether the animation has reached its end state at now.
func (a *Animation) Finished(now time.Time) bool {
	return a.elapsed(now) >= a.Config.Duration
}
