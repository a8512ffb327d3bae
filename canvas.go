package tenon

import (
	"sort"
	"time"
)

// rowEntry pairs a Row with the stable RowID it was minted with, so
// rows can be renumbered by index without losing external IPC handles
// bound to the id.
type rowEntry struct {
	id  RowID
	row *Row
}

// Canvas maps an integer row index to a Row, plus a sibling
// FloatingSpace, with its own vertical camera.
type Canvas struct {
	rows         map[int]*rowEntry
	activeRowIdx int
	ids          *rowIDAllocator

	Floating         *FloatingSpace
	FloatingIsActive bool

	CameraY AnimatedValue

	ViewSize    Size
	workingArea Size
	scale       float64
	config      *Config
}

// NewCanvas returns an empty Canvas bound to the given view size. The
// working area is the view minus the configured struts.
func NewCanvas(cfg *Config, canvasIndex int, viewSize Size, scale float64) *Canvas {
	struts := cfg.Layout.Struts
	workingArea := Size{
		W: viewSize.W - struts.X - struts.W,
		H: viewSize.H - struts.Y - struts.H,
	}
	if workingArea.W < 1 {
		workingArea.W = viewSize.W
	}
	if workingArea.H < 1 {
		workingArea.H = viewSize.H
	}
	return &Canvas{
		rows:        map[int]*rowEntry{},
		ids:         newRowIDAllocator(canvasIndex),
		Floating:    NewFloatingSpace(cfg, workingArea, scale),
		CameraY:     Static(0),
		ViewSize:    viewSize,
		workingArea: workingArea,
		scale:       scale,
		config:      cfg,
	}
}

// yOffset returns the canvas-relative Y coordinate of row index i:
// one full view height per row.
func (c *Canvas) yOffset(i int) float64 {
	return float64(i) * c.ViewSize.H
}

// EnsureRow returns the Row at index i, materializing a fresh one (with
// a freshly-minted RowID) if none exists yet.
func (c *Canvas) EnsureRow(i int) *Row {
	if e, ok := c.rows[i]; ok {
		return e.row
	}
	row := NewRow(c.config, c.workingArea, c.scale)
	row.YOffset = c.yOffset(i)
	c.rows[i] = &rowEntry{id: c.ids.next(), row: row}
	return row
}

// RowAt returns the Row at index i, if materialized.
func (c *Canvas) RowAt(i int) (*Row, bool) {
	e, ok := c.rows[i]
	if !ok {
		return nil, false
	}
	return e.row, true
}

// FindRowByID returns the row index for the given RowID, if present.
// Used by the ext-row protocol to resolve a row handle back to its
// current index after renumbering.
func (c *Canvas) FindRowByID(id RowID) (int, bool) {
	for i, e := range c.rows {
		if e.id == id {
			return i, true
		}
	}
	return 0, false
}

// FindRowByName returns the index of the row whose name matches
// (case-insensitively), if any.
func (c *Canvas) FindRowByName(name string) (int, bool) {
	for i, e := range c.rows {
		if e.row.matchesName(name) {
			return i, true
		}
	}
	return 0, false
}

// RowID returns the stable id of the row at index i, if materialized.
func (c *Canvas) RowID(i int) (RowID, bool) {
	e, ok := c.rows[i]
	if !ok {
		return 0, false
	}
	return e.id, true
}

// ActiveRowIdx returns the currently active row index.
func (c *Canvas) ActiveRowIdx() int { return c.activeRowIdx }

// ActiveRow returns the active row, if materialized.
func (c *Canvas) ActiveRow() *Row {
	e, ok := c.rows[c.activeRowIdx]
	if !ok {
		return nil
	}
	return e.row
}

// RowIndices returns the canvas's currently materialized row indices
// in ascending order, for external enumeration (e.g. the ext-row
// protocol's visible-rows report).
func (c *Canvas) RowIndices() []int { return c.sortedRowIndices() }

// sortedRowIndices returns the canvas's currently materialized row
// indices in ascending order.
func (c *Canvas) sortedRowIndices() []int {
	idxs := make([]int, 0, len(c.rows))
	for i := range c.rows {
		idxs = append(idxs, i)
	}
	sort.Ints(idxs)
	return idxs
}

// CleanupEmptyRows removes every row with no windows and no name,
// except that row 0 is always kept if removing it would leave the
// canvas with no rows at all.
func (c *Canvas) CleanupEmptyRows() {
	idxs := c.sortedRowIndices()
	keep := make(map[int]bool, len(idxs))
	anyKept := false
	for _, i := range idxs {
		e := c.rows[i]
		if e.row.HasWindows() || e.row.HasName() {
			keep[i] = true
			anyKept = true
		}
	}
	if !anyKept && len(idxs) > 0 {
		keep[idxs[0]] = true
	}
	for _, i := range idxs {
		if !keep[i] {
			delete(c.rows, i)
		}
	}
}

// RenumberRows reassigns contiguous indices starting at 0 to the
// currently materialized rows, preserving their relative order, and
// remaps activeRowIdx (or points it at the first row) if its previous
// value no longer exists.
func (c *Canvas) RenumberRows() {
	idxs := c.sortedRowIndices()
	renumbered := make(map[int]*rowEntry, len(idxs))
	newActive := -1
	for newIdx, oldIdx := range idxs {
		e := c.rows[oldIdx]
		e.row.YOffset = c.yOffset(newIdx)
		renumbered[newIdx] = e
		if oldIdx == c.activeRowIdx {
			newActive = newIdx
		}
	}
	c.rows = renumbered
	if newActive >= 0 {
		c.activeRowIdx = newActive
	} else if len(renumbered) > 0 {
		c.activeRowIdx = 0
	} else {
		c.activeRowIdx = 0
	}
}

// CleanupAndRenumberRows is CleanupEmptyRows followed by RenumberRows;
// idempotent. With empty-row-above-first configured, an empty unnamed
// row is re-materialized at index 0 afterwards (cleanup removes it, so
// running twice reaches the same fixed point).
func (c *Canvas) CleanupAndRenumberRows() {
	c.CleanupEmptyRows()
	c.RenumberRows()
	if c.config.Layout.EmptyRowAboveFirst {
		c.ensureEmptyRowAboveFirst()
	}
}

func (c *Canvas) ensureEmptyRowAboveFirst() {
	first, ok := c.rows[0]
	if !ok || (!first.row.HasWindows() && !first.row.HasName()) {
		return
	}
	shifted := make(map[int]*rowEntry, len(c.rows)+1)
	for i, e := range c.rows {
		e.row.YOffset = c.yOffset(i + 1)
		shifted[i+1] = e
	}
	c.rows = shifted
	c.activeRowIdx++
	c.EnsureRow(0)
}

// FocusRow switches the active row to i, if materialized, preserving
// the active column index (clamped to the target row's column count)
// and animating the camera to the new row's y offset.
func (c *Canvas) FocusRow(i int, now time.Time) bool {
	e, ok := c.rows[i]
	if !ok {
		return false
	}
	if i == c.activeRowIdx {
		return false
	}

	var prevActiveCol int
	if prev, ok := c.rows[c.activeRowIdx]; ok {
		prevActiveCol = prev.row.ActiveColumnIdx()
	}

	c.activeRowIdx = i
	if len(e.row.Columns()) > 0 {
		e.row.SetActiveColumnIdxClamped(prevActiveCol)
	}
	c.updateCameraY(now)
	return true
}

// SetActiveColumnIdxClamped is exposed on Row for Canvas's FocusRow to
// restore the previous row's column focus without centering the camera
// (unlike FocusColumn, which always animates the row's own camera).
func (r *Row) SetActiveColumnIdxClamped(idx int) {
	if idx < 0 {
		idx = 0
	}
	if idx >= len(r.columns) {
		idx = len(r.columns) - 1
	}
	r.activeColumnIdx = idx
}

// updateCameraY animates CameraY toward the active row's y offset.
// Vertical camera easing reuses the horizontal-view-movement easing
// configuration; there is no separate knob for it.
func (c *Canvas) updateCameraY(now time.Time) {
	target := c.yOffset(c.activeRowIdx)
	cur := c.CameraY.Current(now)
	c.CameraY = FromAnimation(NewAnimation(cur, target, c.config.EasingFor(AnimHorizontalViewMovement), now))
}

// ToggleFloatingWindow moves the active tiled tile into the floating
// layer, or (if the floating layer is currently active) moves the
// active floating tile back into the active row's tiled layer with its
// remembered width. Calling it twice restores the original layer and
// column width.
func (c *Canvas) ToggleFloatingWindow(now time.Time) {
	if c.FloatingIsActive {
		t, width, fullWidth, _ := c.Floating.ActiveTile()
		if t == nil {
			return
		}
		c.Floating.RemoveWindow(t.Window.ID())
		row := c.EnsureRow(c.activeRowIdx)
		col := NewColumnWithTile(t, c.config, c.workingArea, c.scale, width, now)
		col.IsFullWidth = fullWidth
		row.AddColumn(-1, col, true, now)
		if c.Floating.IsEmpty() {
			c.FloatingIsActive = false
		}
		return
	}

	row, ok := c.rows[c.activeRowIdx]
	if !ok {
		return
	}
	col := row.row.ActiveColumn()
	if col == nil {
		return
	}
	tileIdx := col.ActiveTileIdx()
	t := col.Tiles()[tileIdx]
	rememberedWidth := col.Width
	rememberedFullWidth := col.IsFullWidth
	col.RemoveTile(tileIdx, now)
	if col.Len() == 0 {
		for i, rc := range row.row.columns {
			if rc == col {
				row.row.RemoveColumn(i)
				break
			}
		}
	}
	c.Floating.AddTile(t, Point{}, rememberedWidth, rememberedFullWidth, true)
	c.FloatingIsActive = true
}

// ToggleFloatingFocus switches which layer (tiled vs floating) currently
// holds focus, without moving any tile.
func (c *Canvas) ToggleFloatingFocus() {
	if c.Floating.IsEmpty() {
		return
	}
	c.FloatingIsActive = !c.FloatingIsActive
}

// AddWindow routes a new tile to the floating layer or to the active
// row.
func (c *Canvas) AddWindow(t *Tile, activate bool, isFloating bool, width ColumnWidth, isFullWidth bool, now time.Time) {
	if isFloating {
		c.Floating.AddTile(t, Point{}, width, isFullWidth, activate)
		if activate {
			c.FloatingIsActive = true
		}
		return
	}
	row := c.EnsureRow(c.activeRowIdx)
	col := NewColumnWithTile(t, c.config, c.workingArea, c.scale, width, now)
	col.IsFullWidth = isFullWidth
	row.AddColumn(-1, col, activate, now)
	if activate {
		c.FloatingIsActive = false
	}
}

// RemoveWindow searches the floating layer first, then every row, for
// id, removing and returning its tile.
func (c *Canvas) RemoveWindow(id WindowID, now time.Time) (*Tile, bool) {
	if t, ok := c.Floating.RemoveWindow(id); ok {
		return t, true
	}
	for _, e := range c.rows {
		if colIdx, ok := e.row.ContainsWindow(id); ok {
			col := e.row.columns[colIdx]
			for ti, t := range col.Tiles() {
				if t.Window.ID() == id {
					removed := col.RemoveTile(ti, now)
					if col.Len() == 0 {
						e.row.RemoveColumn(colIdx)
					}
					return removed, true
				}
			}
		}
	}
	return nil, false
}

// CloseWindow begins the close lifecycle for id wherever it lives:
// a floating window fades out in place, a tiled one is extracted from
// its column into the owning row's closing-windows list. snapshotOK ==
// false (the close-animation snapshot could not be built) destroys the
// tile immediately instead.
func (c *Canvas) CloseWindow(id WindowID, snapshotOK bool, now time.Time) bool {
	for _, t := range c.Floating.Tiles() {
		if t.Window.ID() == id {
			t.StartCloseAnimation(c.config.EasingFor(AnimWindowClose), now, snapshotOK)
			if t.Lifecycle() == TileDestroyed {
				c.Floating.RemoveWindow(id)
			}
			return true
		}
	}
	for _, e := range c.rows {
		if e.row.CloseWindow(id, snapshotOK, now) {
			return true
		}
	}
	return false
}

// adoptRow attaches an existing row (e.g. one detached from a removed
// monitor) at the next free index, minting a fresh RowID for it since
// ids are canvas-scoped.
func (c *Canvas) adoptRow(row *Row) {
	idx := len(c.rows)
	for {
		if _, ok := c.rows[idx]; !ok {
			break
		}
		idx++
	}
	row.YOffset = c.yOffset(idx)
	c.rows[idx] = &rowEntry{id: c.ids.next(), row: row}
}

// VerifyInvariants is test-only: panics when the active row index does
// not name a materialized row, when any column is malformed, or when a
// window id appears in more than one place on the canvas. Index
// contiguity is only promised right after CleanupAndRenumberRows, so it
// is not checked here.
func (c *Canvas) VerifyInvariants() {
	if len(c.rows) > 0 {
		if _, ok := c.rows[c.activeRowIdx]; !ok {
			panic("tenon: canvas active_row_idx not a materialized row")
		}
	}
	seen := map[WindowID]bool{}
	note := func(id WindowID) {
		if seen[id] {
			panic("tenon: window id appears in more than one place on the canvas")
		}
		seen[id] = true
	}
	for _, t := range c.Floating.Tiles() {
		note(t.Window.ID())
	}
	for _, e := range c.rows {
		for _, col := range e.row.Columns() {
			col.VerifyInvariants()
			for _, t := range col.Tiles() {
				note(t.Window.ID())
			}
		}
	}
}

// IsUrgent reports whether any window anywhere on the canvas (tiled or
// floating) is urgent.
func (c *Canvas) IsUrgent() bool {
	for _, ft := range c.Floating.Tiles() {
		if ft.Window.IsUrgent() {
			return true
		}
	}
	for _, e := range c.rows {
		if e.row.IsUrgent() {
			return true
		}
	}
	return false
}

// AdvanceAnimations advances every row and floating tile. The vertical
// camera (CameraY) is not touched.
func (c *Canvas) AdvanceAnimations(now time.Time) {
	for _, e := range c.rows {
		e.row.AdvanceAnimations(now)
	}
	c.Floating.AdvanceAnimations(now)
}

// AreAnimationsOngoing reports whether the camera, any row, or the
// floating layer is still animating.
func (c *Canvas) AreAnimationsOngoing(now time.Time) bool {
	if c.CameraY.IsAnimationOngoing(now) {
		return true
	}
	for _, e := range c.rows {
		if e.row.AreAnimationsOngoing(now) {
			return true
		}
	}
	return c.Floating.AreAnimationsOngoing(now)
}
