package tenon

import "time"

type avKind uint8

const (
	avStatic avKind = iota
	avAnimation
	avGesture
)

// AnimatedValue is a scalar that is either fixed, mid-transition, or
// driven live by an input gesture. It is the substrate behind every
// positional quantity the layout animates: tile render offsets, camera
// positions, row-switch progress. A small struct with a kind
// discriminant rather than an interface, since these are queried on
// every frame for every tile.
type AnimatedValue struct {
	kind avKind
	// static holds the value when kind == avStatic.
	static float64
	anim   *Animation
	gest   *Gesture
}

// Static returns an AnimatedValue fixed at v.
func Static(v float64) AnimatedValue {
	return AnimatedValue{kind: avStatic, static: v}
}

// FromAnimation returns an AnimatedValue mid-transition per a.
func FromAnimation(a *Animation) AnimatedValue {
	return AnimatedValue{kind: avAnimation, anim: a}
}

// FromGesture returns an AnimatedValue live-driven by g.
func FromGesture(g *Gesture) AnimatedValue {
	return AnimatedValue{kind: avGesture, gest: g}
}

// IsStatic, IsAnimation, IsGesture report the current variant.
func (v AnimatedValue) IsStatic() bool    { return v.kind == avStatic }
func (v AnimatedValue) IsAnimation() bool { return v.kind == avAnimation }
func (v AnimatedValue) IsGesture() bool   { return v.kind == avGesture }

// IsDndScroll reports whether this value is a gesture currently driven
// by a drag-and-drop edge scroll.
func (v AnimatedValue) IsDndScroll() bool {
	return v.kind == avGesture && v.gest.IsDndScroll()
}

// IsAnimationOngoing reports whether an Animation variant has not yet
// reached its target at now, or a Gesture variant carries a live
// secondary overlay.
func (v AnimatedValue) IsAnimationOngoing(now time.Time) bool {
	switch v.kind {
	case avAnimation:
		return !v.anim.Finished(now)
	case avGesture:
		return v.gest.Secondary != nil && !v.gest.Secondary.Finished(now)
	default:
		return false
	}
}

// Current returns the observable value right now.
func (v AnimatedValue) Current(now time.Time) float64 {
	switch v.kind {
	case avStatic:
		return v.static
	case avAnimation:
		return v.anim.Value(now)
	case avGesture:
		return v.gest.Current(now)
	default:
		return 0
	}
}

// Target returns the value Current(now) will approach: the animation's
// destination, the gesture's live offset (gestures have no destination
// until released), or the static value itself.
func (v AnimatedValue) Target(now time.Time) float64 {
	switch v.kind {
	case avStatic:
		return v.static
	case avAnimation:
		return v.anim.To
	case avGesture:
		return v.gest.Current(now)
	default:
		return 0
	}
}

// Stationary returns the value considered safe to persist: the final
// destination for an Animation, the pre-gesture stationary offset for a
// Gesture, or the value itself when Static.
func (v AnimatedValue) Stationary() float64 {
	switch v.kind {
	case avStatic:
		return v.static
	case avAnimation:
		return v.anim.To
	case avGesture:
		return v.gest.StationaryViewOffset
	default:
		return 0
	}
}

// Offset additively shifts the value by delta while preserving any
// ongoing motion: a static value's baseline moves, an animation's
// endpoints both shift, and a gesture's live offset (and stationary
// restoration point) both shift.
func (v AnimatedValue) Offset(delta float64) AnimatedValue {
	switch v.kind {
	case avStatic:
		return Static(v.static + delta)
	case avAnimation:
		shifted := *v.anim
		shifted.From += delta
		shifted.To += delta
		return FromAnimation(&shifted)
	case avGesture:
		shifted := *v.gest
		shifted.CurrentViewOffset += delta
		shifted.StationaryViewOffset += delta
		return FromGesture(&shifted)
	default:
		return v
	}
}

// CancelGesture replaces a Gesture variant with Static(current), where
// current is the gesture's own driven offset — any secondary "interrupt"
// overlay is discarded along with the gesture, with no snap-back. A
// no-op on Static/Animation.
func (v AnimatedValue) CancelGesture(now time.Time) AnimatedValue {
	if v.kind != avGesture {
		return v
	}
	return Static(v.gest.CurrentViewOffset)
}

// StopAnimAndGesture replaces an Animation or Gesture variant with
// Static(current), freezing the value where it stands.
func (v AnimatedValue) StopAnimAndGesture(now time.Time) AnimatedValue {
	if v.kind == avStatic {
		return v
	}
	return Static(v.Current(now))
}

// AnimateFrom starts (or restarts) an Animation from current+delta down
// to current, i.e. it makes the value appear to move in from delta away
// and settle at its present value. If v is a live Gesture, the delta is
// instead layered on as the gesture's secondary overlay so the gesture
// keeps driving the base value (AnimatedValue::Gesture's documented
// "interrupt" composition).
func (v AnimatedValue) AnimateFrom(delta float64, cfg EasingConfig, now time.Time) AnimatedValue {
	if v.kind == avGesture {
		g := *v.gest
		g.AnimateFrom(delta, cfg, now)
		return FromGesture(&g)
	}
	cur := v.Current(now)
	return FromAnimation(NewAnimation(cur+delta, cur, cfg, now))
}

// Gesture returns the live Gesture backing this value, or nil if it is
// not currently a Gesture.
func (v AnimatedValue) Gesture() *Gesture {
	if v.kind != avGesture {
		return nil
	}
	return v.gest
}

// AnimatedPoint composes two AnimatedValues into a 2D animated
// position, e.g. a camera.
type AnimatedPoint struct {
	X, Y AnimatedValue
}

// StaticPoint returns an AnimatedPoint fixed at (x, y).
func StaticPoint(x, y float64) AnimatedPoint {
	return AnimatedPoint{X: Static(x), Y: Static(y)}
}

// Current returns the observable (x, y) position right now.
func (p AnimatedPoint) Current(now time.Time) (float64, float64) {
	return p.X.Current(now), p.Y.Current(now)
}

// StopAnimAndGesture freezes both components at their current value.
func (p AnimatedPoint) StopAnimAndGesture(now time.Time) AnimatedPoint {
	return AnimatedPoint{X: p.X.StopAnimAndGesture(now), Y: p.Y.StopAnimAndGesture(now)}
}
