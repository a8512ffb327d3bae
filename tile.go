package tenon

import (
	"fmt"
	"os"
	"time"
)

// TileLifecycle is a tile's existence state: Opening -> Mapped ->
// (optionally) Closing -> Destroyed.
type TileLifecycle int

const (
	TileOpening TileLifecycle = iota
	TileMapped
	TileClosing
	TileDestroyed
)

// InteractiveResizeData snapshots a tile's size at the start of an
// interactive (pointer-driven) resize, plus which edges are being
// dragged, so deltas can always be computed relative to the original
// size rather than accumulating rounding error frame to frame.
type InteractiveResizeData struct {
	Original Size
	Left     bool
	Right    bool
	Top      bool
	Bottom   bool
}

// Tile is the exclusive owner of one Window within the layout: its
// current size, render offset, and the open/close/resize/move-x/move-y/
// alpha animations that drive that offset smoothly.
type Tile struct {
	Window Window
	Size   Size

	lifecycle TileLifecycle

	moveX, moveY *Animation
	resizeAnim   *Animation
	alphaAnim    *Animation
	alpha        float64

	interactiveResize *InteractiveResizeData
}

// NewTile creates a Tile in the Opening lifecycle state with alpha 1.
func NewTile(w Window, size Size) *Tile {
	return &Tile{Window: w, Size: size, lifecycle: TileOpening, alpha: 1}
}

// Lifecycle returns the tile's current existence state.
func (t *Tile) Lifecycle() TileLifecycle { return t.lifecycle }

// StartOpenAnimation transitions Opening -> Mapped and starts an alpha
// fade-in from 0.
func (t *Tile) StartOpenAnimation(cfg EasingConfig, now time.Time) {
	t.lifecycle = TileMapped
	t.alpha = 0
	t.alphaAnim = NewAnimation(0, 1, cfg, now)
}

// StartCloseAnimation transitions Mapped -> Closing and starts an alpha
// fade-out. If building the animation's backing snapshot is impossible
// (signalled by the caller passing ok=false, standing in for a failed
// GPU snapshot capture upstream), the tile is destroyed immediately
// without animation and a warning is logged.
func (t *Tile) StartCloseAnimation(cfg EasingConfig, now time.Time, ok bool) {
	if !ok {
		fmt.Fprintf(os.Stderr, "[tenon] warning: close animation snapshot unavailable for window %v, destroying without animation\n", t.Window.ID())
		t.lifecycle = TileDestroyed
		return
	}
	t.lifecycle = TileClosing
	t.alphaAnim = NewAnimation(t.alpha, 0, cfg, now)
}

// AnimateMoveXFrom adds delta to the tile's current X render offset and
// animates it back to zero, so a position change introduced elsewhere
// (e.g. a sibling tile resizing) appears as a smooth slide rather than a
// jump.
func (t *Tile) AnimateMoveXFrom(delta float64, cfg EasingConfig, now time.Time) {
	cur := 0.0
	if t.moveX != nil {
		cur = t.moveX.Value(now)
	}
	t.moveX = NewAnimation(cur+delta, 0, cfg, now)
}

// AnimateMoveYFrom is AnimateMoveXFrom for the Y axis.
func (t *Tile) AnimateMoveYFrom(delta float64, cfg EasingConfig, now time.Time) {
	cur := 0.0
	if t.moveY != nil {
		cur = t.moveY.Value(now)
	}
	t.moveY = NewAnimation(cur+delta, 0, cfg, now)
}

// StartResizeAnimation restarts the tile's resize progress, a 0->1
// ramp the renderer samples via ResizeProgress to cross-fade the old
// buffer over the new geometry.
func (t *Tile) StartResizeAnimation(cfg EasingConfig, now time.Time) {
	t.resizeAnim = NewAnimation(0, 1, cfg, now)
}

// ResizeProgress returns the current resize cross-fade progress, or 1
// when no resize is animating.
func (t *Tile) ResizeProgress(now time.Time) float64 {
	if t.resizeAnim == nil {
		return 1
	}
	return clamp(t.resizeAnim.Value(now), 0, 1)
}

// AnimateAlpha restarts the alpha animation, clamping both endpoints to
// [0, 1] and restarting from the current clamped value rather than the
// literal from argument, so rapid toggles never overshoot.
func (t *Tile) AnimateAlpha(from, to float64, cfg EasingConfig, now time.Time) {
	to = clamp(to, 0, 1)
	cur := clamp(t.currentAlpha(now), 0, 1)
	t.alphaAnim = NewAnimation(cur, to, cfg, now)
}

// EnsureAlphaAnimatesTo1 cancels any running alpha animation whose
// target is not 1 and starts a fresh one toward 1; a no-op if already
// animating to (or resting at) 1.
func (t *Tile) EnsureAlphaAnimatesTo1(cfg EasingConfig, now time.Time) {
	if t.alphaAnim != nil && t.alphaAnim.To == 1 {
		return
	}
	if t.alphaAnim == nil && t.alpha == 1 {
		return
	}
	t.AnimateAlpha(t.currentAlpha(now), 1, cfg, now)
}

func (t *Tile) currentAlpha(now time.Time) float64 {
	if t.alphaAnim != nil {
		return t.alphaAnim.Value(now)
	}
	return t.alpha
}

// Alpha returns the tile's current opacity.
func (t *Tile) Alpha(now time.Time) float64 {
	return t.currentAlpha(now)
}

// RenderOffset returns the tile's current (x, y) render offset: the sum
// of the move-x and move-y animations' current values plus any
// interactive-move offset applied externally (moveOverride).
func (t *Tile) RenderOffset(now time.Time, moveOverride Point) Point {
	x, y := moveOverride.X, moveOverride.Y
	if t.moveX != nil {
		x += t.moveX.Value(now)
	}
	if t.moveY != nil {
		y += t.moveY.Value(now)
	}
	return Point{X: x, Y: y}
}

// BeginInteractiveResize snapshots the tile's current size under the
// given edges. Returns false if a resize is already in progress.
func (t *Tile) BeginInteractiveResize(left, right, top, bottom bool) bool {
	if t.interactiveResize != nil {
		return false
	}
	t.interactiveResize = &InteractiveResizeData{Original: t.Size, Left: left, Right: right, Top: top, Bottom: bottom}
	return true
}

// InteractiveResize returns the tile's in-progress resize snapshot, or
// nil if none is active.
func (t *Tile) InteractiveResize() *InteractiveResizeData {
	return t.interactiveResize
}

// EndInteractiveResize clears the in-progress resize snapshot.
func (t *Tile) EndInteractiveResize() {
	t.interactiveResize = nil
}

// AdvanceAnimations drops any animation that has finished as of now, so
// stale *Animation pointers do not keep getting sampled forever. It also
// stores the alpha animation's current value as the tile's alpha, and
// moves a Closing tile whose fade has finished to Destroyed.
func (t *Tile) AdvanceAnimations(now time.Time) {
	if t.moveX != nil && t.moveX.Finished(now) {
		t.moveX = nil
	}
	if t.moveY != nil && t.moveY.Finished(now) {
		t.moveY = nil
	}
	if t.resizeAnim != nil && t.resizeAnim.Finished(now) {
		t.resizeAnim = nil
	}
	if t.alphaAnim != nil {
		t.alpha = t.alphaAnim.Value(now)
		if t.alphaAnim.Finished(now) {
			t.alphaAnim = nil
			if t.lifecycle == TileClosing {
				t.lifecycle = TileDestroyed
			}
		}
	}
}

// AreAnimationsOngoing reports whether any per-tile animation has not
// yet settled.
func (t *Tile) AreAnimationsOngoing(now time.Time) bool {
	if t.moveX != nil && !t.moveX.Finished(now) {
		return true
	}
	if t.moveY != nil && !t.moveY.Finished(now) {
		return true
	}
	if t.resizeAnim != nil && !t.resizeAnim.Finished(now) {
		return true
	}
	if t.alphaAnim != nil && !t.alphaAnim.Finished(now) {
		return true
	}
	return false
}
