package tenon

import "time"

// rowGestureMovement is how many touchpad units correspond to a full
// row swipe; rowDndEdgeScrollMovement is the analogous distance for a
// drag-and-drop edge scroll.
const (
	rowGestureMovement            = 300.0
	rowDndEdgeScrollMovement      = 1500.0
	rowGestureRubberBandStiffness = 0.5
	rowGestureRubberBandLimit     = 0.05
)

// InsertHint is a rectangle with a corner radius indicating where a
// drag-and-drop-held window would land if dropped now.
type InsertHint struct {
	Rect         Rect
	CornerRadius float64
	Visible      bool
}

// Monitor binds one Canvas to one output, and adds the row-switch
// gesture/animation, overview zoom, and insert hint.
type Monitor struct {
	Output OutputID
	Canvas *Canvas

	// RowSwitch is the current row index as an AnimatedValue: Static
	// while idle, Animation during a programmatic row switch, Gesture
	// while a touchpad/DnD swipe is live. Its current() is a continuous
	// float even though only integer indices are "settled" states.
	RowSwitch AnimatedValue

	overviewProgress AnimatedValue
	InsertHint       InsertHint

	scale  float64
	config *Config
}

// NewMonitor binds a fresh Canvas to output.
func NewMonitor(cfg *Config, output OutputID, canvasIndex int, viewSize Size, scale float64) *Monitor {
	return &Monitor{
		Output:           output,
		Canvas:           NewCanvas(cfg, canvasIndex, viewSize, scale),
		RowSwitch:        Static(0),
		overviewProgress: Static(0),
		scale:            scale,
		config:           cfg,
	}
}

// BeginRowSwipeGesture starts a touchpad/touch-driven row switch from
// the current row index.
func (m *Monitor) BeginRowSwipeGesture(touchpad bool) {
	m.RowSwitch = FromGesture(NewGesture(float64(m.Canvas.activeRowIdx), touchpad))
}

// UpdateRowSwipeGesture advances the live gesture by delta touchpad (or
// DnD edge-scroll) units, converting to row-index units via
// rowGestureMovement/rowDndEdgeScrollMovement, then rubber-bands any
// offset more than one row from the gesture's starting (center) index:
// the overshoot past ±1 is scaled by rowGestureRubberBandStiffness *
// rowGestureRubberBandLimit.
func (m *Monitor) UpdateRowSwipeGesture(delta float64, isDnd bool) {
	g := m.RowSwitch.Gesture()
	if g == nil {
		return
	}
	movement := rowGestureMovement
	if isDnd {
		movement = rowDndEdgeScrollMovement
	}
	next := g.CurrentViewOffset + delta/movement
	center := g.StationaryViewOffset
	lo, hi := center-1, center+1
	if next < lo {
		over := lo - next
		next = lo - over*rowGestureRubberBandStiffness*rowGestureRubberBandLimit
	} else if next > hi {
		over := next - hi
		next = hi + over*rowGestureRubberBandStiffness*rowGestureRubberBandLimit
	}
	g.CurrentViewOffset = next
}

// EndRowSwipeGesture releases the live gesture, animating from its
// current value to the nearest whole row index and switching the
// canvas's active row to match. The animation starts at rest: the
// gesture's swipe tracker velocity is not used.
func (m *Monitor) EndRowSwipeGesture(now time.Time) {
	g := m.RowSwitch.Gesture()
	if g == nil {
		return
	}
	target := roundToNearestInt(g.CurrentViewOffset)
	cur := g.Current(now)
	m.RowSwitch = FromAnimation(NewAnimation(cur, float64(target), m.config.EasingFor(AnimWorkspaceSwitch), now))
	if target >= 0 {
		m.Canvas.FocusRow(target, now)
	}
}

func roundToNearestInt(v float64) int {
	if v >= 0 {
		return int(v + 0.5)
	}
	return -int(-v + 0.5)
}

// OverviewProgress returns the current overview zoom-out progress in
// [0, 1], where 0 is normal view and 1 is fully zoomed out.
func (m *Monitor) OverviewProgress(now time.Time) float64 {
	return clamp(m.overviewProgress.Current(now), 0, 1)
}

// SetOverviewActive animates the overview progress toward 1 (active) or
// 0 (inactive).
func (m *Monitor) SetOverviewActive(active bool, now time.Time) {
	target := 0.0
	if active {
		target = 1.0
	}
	cur := m.overviewProgress.Current(now)
	m.overviewProgress = FromAnimation(NewAnimation(cur, target, m.config.EasingFor(AnimOverviewZoom), now))
}

// overviewZoom returns the camera scale factor for the overview at the
// given progress: 1 at progress 0, a fixed zoomed-out factor at
// progress 1, linearly interpolated between.
func overviewZoom(progress float64) float64 {
	const zoomedOutScale = 0.5
	return 1 - progress*(1-zoomedOutScale)
}

// HitTestThroughOverview maps a pointer position in output coordinates
// back through the overview zoom to logical canvas coordinates.
// HitTest applies this automatically and also downgrades the result to
// Activate-only while the overview is up.
func (m *Monitor) HitTestThroughOverview(outputX, outputY float64, now time.Time) (x, y float64) {
	zoom := overviewZoom(m.OverviewProgress(now))
	if zoom == 0 {
		zoom = 1
	}
	cx, cy := m.Canvas.ViewSize.W/2, m.Canvas.ViewSize.H/2
	return (outputX-cx)/zoom + cx, (outputY-cy)/zoom + cy
}

// MonitorHit is what a pointer position over the monitor resolved to:
// a floating tile or a tiled window (with its row/column/tile
// coordinates), plus resize-edge information. While the overview is
// active ActivateOnly is set and the edge/tab-indicator details are
// cleared, downgrading every hit to a plain activation with no
// pass-through.
type MonitorHit struct {
	WindowID     WindowID
	Floating     bool
	RowIdx       int
	ColumnIdx    int
	TileIdx      int
	TabIndicator bool
	Edges        ResizeEdges
	ActivateOnly bool
}

// HitTest maps an output-coordinate pointer position through the
// overview zoom and resolves it against the canvas in render order:
// the floating layer first (it renders on top), then the active row,
// then the remaining rows.
func (m *Monitor) HitTest(outputX, outputY float64, now time.Time) (MonitorHit, bool) {
	x, y := m.HitTestThroughOverview(outputX, outputY, now)
	overviewActive := m.OverviewProgress(now) > 0

	hit, ok := m.hitTestMapped(x, y, now)
	if !ok {
		return MonitorHit{}, false
	}
	if overviewActive {
		hit.Edges = ResizeEdges{}
		hit.TabIndicator = false
		hit.ActivateOnly = true
	}
	return hit, true
}

func (m *Monitor) hitTestMapped(x, y float64, now time.Time) (MonitorHit, bool) {
	tiles := m.Canvas.Floating.Tiles()
	for i := len(tiles) - 1; i >= 0; i-- {
		t := tiles[i]
		if t.Lifecycle() == TileClosing {
			continue
		}
		pos, _ := m.Canvas.Floating.TilePosition(t.Window.ID())
		offset := t.RenderOffset(now, Point{})
		bounds := Rect{
			X: roundPhysical(pos.X+offset.X, m.scale),
			Y: roundPhysical(pos.Y+offset.Y, m.scale),
			W: t.Size.W,
			H: t.Size.H,
		}
		if bounds.Contains(x, y) {
			return MonitorHit{
				WindowID: t.Window.ID(),
				Floating: true,
				Edges:    resizeEdgesAt(bounds, Point{X: x, Y: y}),
			}, true
		}
	}

	cameraY := m.Canvas.CameraY.Current(now)
	canvasY := y + cameraY
	tryRow := func(idx int) (MonitorHit, bool) {
		row, ok := m.Canvas.RowAt(idx)
		if !ok {
			return MonitorHit{}, false
		}
		local := canvasY - row.YOffset
		if local < 0 || local >= m.Canvas.ViewSize.H {
			return MonitorHit{}, false
		}
		hit, ok := row.HitTest(Point{X: x, Y: local}, now)
		if !ok {
			return MonitorHit{}, false
		}
		return MonitorHit{
			WindowID:     hit.WindowID,
			RowIdx:       idx,
			ColumnIdx:    hit.ColumnIdx,
			TileIdx:      hit.TileIdx,
			TabIndicator: hit.TabIndicator,
			Edges:        hit.Edges,
		}, true
	}

	if hit, ok := tryRow(m.Canvas.ActiveRowIdx()); ok {
		return hit, true
	}
	for _, idx := range m.Canvas.RowIndices() {
		if idx == m.Canvas.ActiveRowIdx() {
			continue
		}
		if hit, ok := tryRow(idx); ok {
			return hit, true
		}
	}
	return MonitorHit{}, false
}

// SetInsertHint sets the insert-hint rectangle and marks it visible.
func (m *Monitor) SetInsertHint(r Rect, cornerRadius float64) {
	m.InsertHint = InsertHint{Rect: r, CornerRadius: cornerRadius, Visible: true}
}

// ClearInsertHint hides the insert hint.
func (m *Monitor) ClearInsertHint() {
	m.InsertHint.Visible = false
}

// AdvanceAnimations advances the canvas. The row switch and overview
// progress values are not touched.
func (m *Monitor) AdvanceAnimations(now time.Time) {
	m.Canvas.AdvanceAnimations(now)
}

// AreAnimationsOngoing reports whether the row switch, overview, or
// canvas is still animating.
func (m *Monitor) AreAnimationsOngoing(now time.Time) bool {
	if m.RowSwitch.IsAnimationOngoing(now) {
		return true
	}
	if m.overviewProgress.IsAnimationOngoing(now) {
		return true
	}
	return m.Canvas.AreAnimationsOngoing(now)
}
