package tenon

import "time"

// DndTarget names what a drag-and-drop hold is dwelling over.
type DndTarget struct {
	WindowID WindowID
	RowID    RowID
	IsWindow bool
}

// Gesture is the input-driven component of an [AnimatedValue]: a view
// offset directly controlled by a touchpad swipe, touch drag, or
// drag-and-drop edge scroll, optionally overlaid with a secondary
// [Animation] for "interrupt" transitions (a new AnimateFrom call
// arriving while the gesture is still live).
type Gesture struct {
	// CurrentViewOffset is the offset directly driven by input.
	CurrentViewOffset float64
	// StationaryViewOffset is the value to restore to / report as
	// "stationary" (e.g. for persistence) while the gesture is live.
	StationaryViewOffset float64
	// Secondary, if non-nil, is added on top of CurrentViewOffset: an
	// interrupt overlay from an animate_from call that arrived mid-gesture.
	Secondary  *Animation
	Tracker    *SwipeTracker
	IsTouchpad bool

	// dndStartTime is when a DnD hold over a nonzero-distance target
	// began; nil when no hold is active. Used to debounce edge-scroll
	// activation during drag-and-drop.
	dndStartTime *time.Time
	dndTarget    *DndTarget
}

// NewGesture starts a plain (non-DnD) gesture at the given stationary
// offset, the value the camera was sitting at before the gesture began.
func NewGesture(stationaryOffset float64, touchpad bool) *Gesture {
	return &Gesture{
		CurrentViewOffset:    stationaryOffset,
		StationaryViewOffset: stationaryOffset,
		Tracker:              NewSwipeTracker(),
		IsTouchpad:           touchpad,
	}
}

// NewDndGesture starts a non-touchpad gesture for a drag-and-drop edge
// scroll. It is built exactly like NewGesture(stationaryOffset, false);
// IsDndScroll reports true only once BeginDndHold has been called.
func NewDndGesture(stationaryOffset float64) *Gesture {
	g := NewGesture(stationaryOffset, false)
	return g
}

// AnimateFrom overlays a secondary Animation that starts at delta and
// eases to 0, so an interrupting animation blends smoothly into the
// live gesture instead of snapping.
func (g *Gesture) AnimateFrom(delta float64, cfg EasingConfig, now time.Time) {
	g.Secondary = NewAnimation(delta, 0, cfg, now)
}

// Current returns the observed value: current offset plus any live
// secondary overlay.
func (g *Gesture) Current(now time.Time) float64 {
	v := g.CurrentViewOffset
	if g.Secondary != nil {
		v += g.Secondary.Value(now)
	}
	return v
}

// BeginDndHold records that the pointer has begun dwelling over target
// during a drag-and-drop edge scroll.
func (g *Gesture) BeginDndHold(target DndTarget, now time.Time) {
	t := now
	g.dndStartTime = &t
	g.dndTarget = &target
}

// ClearDndHold cancels any in-progress DnD hold (the pointer moved off
// the target before the dwell delay elapsed).
func (g *Gesture) ClearDndHold() {
	g.dndStartTime = nil
	g.dndTarget = nil
}

// IsDndScroll reports whether this gesture is currently driven by a
// drag-and-drop edge scroll hold rather than touchpad/touch input.
func (g *Gesture) IsDndScroll() bool {
	return g.dndStartTime != nil
}

// DndHoldElapsed returns how long the current DnD hold has been
// dwelling, or 0 if none is active.
func (g *Gesture) DndHoldElapsed(now time.Time) time.Duration {
	if g.dndStartTime == nil {
		return 0
	}
	return now.Sub(*g.dndStartTime)
}

// DndHoldTarget returns the current DnD hold target, or nil if none.
func (g *Gesture) DndHoldTarget() *DndTarget {
	return g.dndTarget
}
