package tenon

import "time"

// MonitorAddWindowTargetKind selects where a dropped interactively-moved
// window lands.
type MonitorAddWindowTargetKind int

const (
	TargetAuto MonitorAddWindowTargetKind = iota
	TargetRow
	TargetNextTo
)

// MonitorAddWindowTarget is a drop target for an interactively-moved
// window.
type MonitorAddWindowTarget struct {
	Kind      MonitorAddWindowTargetKind
	RowID     RowID
	ColumnIdx *int
	WindowID  WindowID
}

// interactiveMoveState is Layout's move state machine: nil when no move
// is in progress, Starting while the window is still resting in its
// canvas (rubber-banding only), Moving once it has been lifted out and
// is exclusively owned by the move state.
type interactiveMoveState struct {
	windowID                 WindowID
	pointerDelta             Point
	pointerRatioWithinWindow Point

	moving bool
	// Moving-only fields:
	tile               *Tile
	output             OutputID
	pointerPosInOutput Point
	width              ColumnWidth
	isFullWidth        bool
	isFloating         bool
}

// dndHold is a drag-and-drop dwell-to-activate timer: once the pointer
// has held over target for longer than the configured delay, the target
// is activated (focus the window / switch to the row).
type dndHold struct {
	startTime time.Time
	target    DndTarget
}

// dndState is Layout's drag-and-drop state.
type dndState struct {
	output             OutputID
	pointerPosInOutput Point
	hold               *dndHold
}

// Layout is the top-level owner of every Monitor, plus any interactive
// move and drag-and-drop state.
type Layout struct {
	monitors         []*Monitor
	activeMonitorIdx int
	// monitorSeq counts every monitor ever attached, so a re-added
	// output gets a fresh canvas index (and therefore a fresh RowID
	// range) rather than reusing a removed monitor's.
	monitorSeq int
	// noOutputRows holds rows detached from any monitor, used only
	// while monitors is empty.
	noOutputRows []*Row

	interactiveMove *interactiveMoveState
	dnd             *dndState
	dndHoldDelay    time.Duration

	config *Config
}

// NewLayout returns an empty Layout.
func NewLayout(cfg Config) *Layout {
	return &Layout{config: &cfg, dndHoldDelay: 500 * time.Millisecond}
}

// Config returns the layout's current configuration.
func (l *Layout) Config() *Config { return l.config }

// AddMonitor attaches a new Monitor for output and returns it. If the
// layout was in the no-outputs state, its detached rows are adopted
// into the new monitor's canvas.
func (l *Layout) AddMonitor(output OutputID, viewSize Size) *Monitor {
	l.monitorSeq++
	m := NewMonitor(l.config, output, l.monitorSeq-1, viewSize, 1)
	l.monitors = append(l.monitors, m)
	if len(l.monitors) == 1 {
		l.activeMonitorIdx = 0
		for _, row := range l.noOutputRows {
			m.Canvas.adoptRow(row)
		}
		l.noOutputRows = nil
	}
	return m
}

// RemoveMonitor detaches the monitor for output. Its canvas's rows are
// handed to the next remaining monitor's canvas, or parked in the
// detached no-outputs list if it was the last one, so windows survive
// output unplugs.
func (l *Layout) RemoveMonitor(output OutputID) bool {
	idx := -1
	for i, m := range l.monitors {
		if m.Output == output {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false
	}
	removed := l.monitors[idx]
	l.monitors = append(l.monitors[:idx], l.monitors[idx+1:]...)
	if l.activeMonitorIdx >= len(l.monitors) && l.activeMonitorIdx > 0 {
		l.activeMonitorIdx--
	}

	var orphaned []*Row
	for _, i := range removed.Canvas.RowIndices() {
		if row, ok := removed.Canvas.RowAt(i); ok && (row.HasWindows() || row.HasName()) {
			orphaned = append(orphaned, row)
		}
	}
	if len(l.monitors) > 0 {
		target := l.monitors[l.activeMonitorIdx].Canvas
		for _, row := range orphaned {
			target.adoptRow(row)
		}
	} else {
		l.noOutputRows = append(l.noOutputRows, orphaned...)
	}
	return true
}

// Monitors returns the layout's monitors.
func (l *Layout) Monitors() []*Monitor { return l.monitors }

// HasOutputs reports whether any monitor is connected.
func (l *Layout) HasOutputs() bool { return len(l.monitors) > 0 }

// ActiveMonitor returns the focused monitor, or nil if none.
func (l *Layout) ActiveMonitor() *Monitor {
	if len(l.monitors) == 0 {
		return nil
	}
	return l.monitors[l.activeMonitorIdx]
}

// findWindow scans every monitor's canvas (tiled and floating), falling
// back to the detached NoOutputs rows, for the given window id.
func (l *Layout) findWindow(id WindowID) (mon *Monitor, canvas *Canvas, tile *Tile, isFloating bool, ok bool) {
	for _, m := range l.monitors {
		if m.Canvas.Floating.ContainsWindow(id) {
			for _, t := range m.Canvas.Floating.Tiles() {
				if t.Window.ID() == id {
					return m, m.Canvas, t, true, true
				}
			}
		}
		for _, e := range m.Canvas.rows {
			if colIdx, found := e.row.ContainsWindow(id); found {
				for _, t := range e.row.columns[colIdx].Tiles() {
					if t.Window.ID() == id {
						return m, m.Canvas, t, false, true
					}
				}
			}
		}
	}
	for _, row := range l.noOutputRows {
		if colIdx, found := row.ContainsWindow(id); found {
			for _, t := range row.columns[colIdx].Tiles() {
				if t.Window.ID() == id {
					return nil, nil, t, false, true
				}
			}
		}
	}
	return nil, nil, nil, false, false
}

// SetFullscreen sets a window's real-fullscreen state. Guarded against
// the window being under active interactive move. Requesting real
// fullscreen clears a prior windowed-fullscreen state on the same
// window's column, since only one of {windowed fullscreen, real
// fullscreen, maximized} may be active at a time.
func (l *Layout) SetFullscreen(id WindowID, on bool) bool {
	if l.interactiveMove != nil && l.interactiveMove.windowID == id {
		return false
	}
	_, canvas, tile, _, ok := l.findWindow(id)
	if !ok || canvas == nil {
		return false
	}
	col := l.columnOwning(canvas, tile)
	if col == nil {
		return false
	}
	col.IsPendingFullscreen = on
	if on {
		col.IsPendingMaximized = false
		col.IsFullWidth = false
	}
	return true
}

// ToggleFullscreen toggles a window's real-fullscreen state.
func (l *Layout) ToggleFullscreen(id WindowID) bool {
	_, canvas, tile, _, ok := l.findWindow(id)
	if !ok || canvas == nil {
		return false
	}
	col := l.columnOwning(canvas, tile)
	if col == nil {
		return false
	}
	return l.SetFullscreen(id, !col.IsPendingFullscreen)
}

// ToggleWindowedFullscreen toggles a window's windowed-fullscreen (i.e.
// full-width-and-height-but-not-real-fullscreen) state via the column's
// full-width toggle.
func (l *Layout) ToggleWindowedFullscreen(id WindowID, now time.Time) bool {
	_, canvas, tile, _, ok := l.findWindow(id)
	if !ok || canvas == nil {
		return false
	}
	col := l.columnOwning(canvas, tile)
	if col == nil {
		return false
	}
	col.ToggleFullWidth(now)
	return true
}

// SetMaximized sets a window's maximized state. Unlike most setters in
// this engine it does NOT early-return when the requested state
// matches the current one: a window moved to a new column while
// already maximized must still pick up that column's maximized sizing,
// so the dispatch always re-applies.
func (l *Layout) SetMaximized(id WindowID, on bool, now time.Time) bool {
	if l.interactiveMove != nil && l.interactiveMove.windowID == id {
		return false
	}
	_, canvas, tile, _, ok := l.findWindow(id)
	if !ok || canvas == nil {
		return false
	}
	col := l.columnOwning(canvas, tile)
	if col == nil {
		return false
	}
	col.IsPendingMaximized = on
	if on {
		col.IsPendingFullscreen = false
	}
	col.updateTileSizes(true, now)
	return true
}

// ToggleMaximized toggles a window's maximized state.
func (l *Layout) ToggleMaximized(id WindowID, now time.Time) bool {
	_, canvas, tile, _, ok := l.findWindow(id)
	if !ok || canvas == nil {
		return false
	}
	col := l.columnOwning(canvas, tile)
	if col == nil {
		return false
	}
	return l.SetMaximized(id, !col.IsPendingMaximized, now)
}

func (l *Layout) columnOwning(canvas *Canvas, tile *Tile) *Column {
	for _, e := range canvas.rows {
		for _, col := range e.row.columns {
			for _, t := range col.Tiles() {
				if t == tile {
					return col
				}
			}
		}
	}
	return nil
}

// BeginInteractiveMove starts the Starting phase of an interactive move
// for id: the window stays in its canvas while the pointer delta is
// rubber-banded against a threshold.
func (l *Layout) BeginInteractiveMove(id WindowID, pointerRatioWithinWindow Point) {
	l.interactiveMove = &interactiveMoveState{windowID: id, pointerRatioWithinWindow: pointerRatioWithinWindow}
}

// interactiveMoveLiftThreshold is the pointer-delta distance (logical
// px) beyond which Starting transitions to Moving.
const interactiveMoveLiftThreshold = 8.0

// UpdateInteractiveMove feeds a new cumulative pointer delta into the
// move state, lifting the window out of its canvas into the exclusively
// owned Moving state once the delta exceeds the lift threshold.
func (l *Layout) UpdateInteractiveMove(delta Point, output OutputID, pointerPosInOutput Point, now time.Time) {
	m := l.interactiveMove
	if m == nil {
		return
	}
	m.pointerDelta = delta
	if m.moving {
		m.output = output
		m.pointerPosInOutput = pointerPosInOutput
		return
	}
	dist := delta.X*delta.X + delta.Y*delta.Y
	if dist < interactiveMoveLiftThreshold*interactiveMoveLiftThreshold {
		return
	}
	_, canvas, tile, isFloating, ok := l.findWindow(m.windowID)
	if !ok {
		return
	}
	var width ColumnWidth
	var fullWidth bool
	if canvas != nil {
		if col := l.columnOwning(canvas, tile); col != nil {
			width, fullWidth = col.Width, col.IsFullWidth
		}
		canvas.RemoveWindow(tile.Window.ID(), now)
	}
	m.moving = true
	m.tile = tile
	m.output = output
	m.pointerPosInOutput = pointerPosInOutput
	m.width = width
	m.isFullWidth = fullWidth
	m.isFloating = isFloating
}

// TileRenderLocation computes where the moving tile should render:
// the pointer position minus the grab point's offset within the window
// scaled by the output's zoom factor, rounded to physical pixels at
// scale.
func (l *Layout) TileRenderLocation(zoom, scale float64) (Point, bool) {
	m := l.interactiveMove
	if m == nil || !m.moving {
		return Point{}, false
	}
	offsetX := m.pointerRatioWithinWindow.X * m.tile.Size.W
	offsetY := m.pointerRatioWithinWindow.Y * m.tile.Size.H
	x := m.pointerPosInOutput.X - offsetX*zoom
	y := m.pointerPosInOutput.Y - offsetY*zoom
	return Point{X: roundPhysical(x, scale), Y: roundPhysical(y, scale)}, true
}

// EndInteractiveMove drops the moving tile into target, or cancels
// cleanly if the move never left the Starting phase.
func (l *Layout) EndInteractiveMove(target MonitorAddWindowTarget, now time.Time) {
	m := l.interactiveMove
	l.interactiveMove = nil
	if m == nil || !m.moving {
		return
	}
	mon := l.ActiveMonitor()
	if mon == nil {
		return
	}
	if m.isFloating {
		mon.Canvas.Floating.AddTile(m.tile, m.pointerPosInOutput, m.width, m.isFullWidth, true)
		mon.Canvas.FloatingIsActive = true
		return
	}
	switch target.Kind {
	case TargetRow:
		if idx, ok := mon.Canvas.FindRowByID(target.RowID); ok {
			row := mon.Canvas.EnsureRow(idx)
			colIdx := -1
			if target.ColumnIdx != nil {
				colIdx = *target.ColumnIdx
			}
			row.AddTileToColumn(colIdx, 0, m.tile, true, now)
			return
		}
		fallthrough
	case TargetNextTo:
		if target.Kind == TargetNextTo {
			for _, canvasMon := range l.monitors {
				for _, i := range canvasMon.Canvas.RowIndices() {
					row, ok := canvasMon.Canvas.RowAt(i)
					if !ok {
						continue
					}
					if colIdx, found := row.ContainsWindow(target.WindowID); found {
						col := NewColumnWithTile(m.tile, l.config, canvasMon.Canvas.workingArea, 1, m.width, now)
						col.IsFullWidth = m.isFullWidth
						row.AddColumn(colIdx+1, col, true, now)
						return
					}
				}
			}
		}
		fallthrough
	default:
		col := NewColumnWithTile(m.tile, l.config, mon.Canvas.workingArea, 1, m.width, now)
		col.IsFullWidth = m.isFullWidth
		row := mon.Canvas.EnsureRow(mon.Canvas.activeRowIdx)
		row.AddColumn(-1, col, true, now)
	}
}

// CancelInteractiveMove aborts a move. In the Starting phase the
// window never left its canvas, so there is nothing to restore; in the
// Moving phase the lifted tile is re-inserted next to the active
// column of the active monitor's canvas (the lift-off origin is not
// tracked).
func (l *Layout) CancelInteractiveMove(now time.Time) {
	m := l.interactiveMove
	l.interactiveMove = nil
	if m == nil || !m.moving {
		return
	}
	mon := l.ActiveMonitor()
	if mon == nil {
		return
	}
	if m.isFloating {
		mon.Canvas.Floating.AddTile(m.tile, m.pointerPosInOutput, m.width, m.isFullWidth, true)
		mon.Canvas.FloatingIsActive = true
		return
	}
	col := NewColumnWithTile(m.tile, l.config, mon.Canvas.workingArea, 1, m.width, now)
	col.IsFullWidth = m.isFullWidth
	row := mon.Canvas.EnsureRow(mon.Canvas.activeRowIdx)
	row.AddColumn(-1, col, true, now)
}

// BeginDnd starts drag-and-drop tracking over output.
func (l *Layout) BeginDnd(output OutputID, pointerPos Point) {
	l.dnd = &dndState{output: output, pointerPosInOutput: pointerPos}
}

// UpdateDndPosition updates the DnD pointer position and, if it now
// dwells over a new target, restarts the hold timer.
func (l *Layout) UpdateDndPosition(pointerPos Point, target *DndTarget, now time.Time) {
	if l.dnd == nil {
		return
	}
	l.dnd.pointerPosInOutput = pointerPos
	if target == nil {
		l.dnd.hold = nil
		return
	}
	if l.dnd.hold == nil || l.dnd.hold.target != *target {
		l.dnd.hold = &dndHold{startTime: now, target: *target}
	}
}

// DndActivatedTarget returns the hold target once it has dwelled past
// the configured hold delay, or nil if no hold is ripe yet.
func (l *Layout) DndActivatedTarget(now time.Time) *DndTarget {
	if l.dnd == nil || l.dnd.hold == nil {
		return nil
	}
	if now.Sub(l.dnd.hold.startTime) < l.dndHoldDelay {
		return nil
	}
	t := l.dnd.hold.target
	return &t
}

// EndDnd clears drag-and-drop tracking.
func (l *Layout) EndDnd() {
	l.dnd = nil
}

// AdvanceAnimations advances every monitor. Idempotent when called
// twice with the same now, since every underlying Animation.Value is a
// pure function of now.
func (l *Layout) AdvanceAnimations(now time.Time) {
	for _, m := range l.monitors {
		m.AdvanceAnimations(now)
	}
	for _, row := range l.noOutputRows {
		row.AdvanceAnimations(now)
	}
}

// AreAnimationsOngoing reports whether any monitor is still animating.
func (l *Layout) AreAnimationsOngoing(now time.Time) bool {
	for _, m := range l.monitors {
		if m.AreAnimationsOngoing(now) {
			return true
		}
	}
	return false
}
