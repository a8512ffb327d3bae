package tenon

import (
	"strings"
	"time"
)

// ResizeEdges is a bitmask of which edges an interactive resize is
// dragging.
type ResizeEdges struct {
	Left, Right, Top, Bottom bool
}

func (e ResizeEdges) horizontal() bool { return e.Left || e.Right }
func (e ResizeEdges) vertical() bool   { return e.Top || e.Bottom }

// rowInteractiveResize tracks an in-progress pointer-driven resize of
// one tile within the row.
type rowInteractiveResize struct {
	window   WindowID
	original Size
	edges    ResizeEdges
}

// Row is a horizontal sequence of columns sharing one camera
// (ViewOffsetX), positioned vertically within its canvas by YOffset.
type Row struct {
	columns         []*Column
	activeColumnIdx int

	ViewOffsetX AnimatedValue
	YOffset     float64

	Name *string

	interactiveResize *rowInteractiveResize

	// activatePrevColumnOnRemoval, when set, is the camera offset to
	// restore if the currently-active column (inserted immediately
	// after the previously-active one) is removed before the user does
	// anything else.
	activatePrevColumnOnRemoval *float64
	prevColumnIdxOnRemoval      int
	viewOffsetToRestore         *float64

	closingWindows []*Tile

	workingArea Size
	scale       float64
	config      *Config
}

// NewRow returns an empty row.
func NewRow(cfg *Config, workingArea Size, scale float64) *Row {
	return &Row{
		ViewOffsetX: Static(0),
		workingArea: workingArea,
		scale:       scale,
		config:      cfg,
	}
}

// IsEmpty reports whether the row has no columns.
func (r *Row) IsEmpty() bool { return len(r.columns) == 0 }

// WorkingArea returns the row's working-area size, for external
// geometry reporting (e.g. the ext-row protocol's handle geometry
// event).
func (r *Row) WorkingArea() Size { return r.workingArea }

// HasName reports whether the row has a user-assigned name.
func (r *Row) HasName() bool { return r.Name != nil }

// Columns returns the row's columns in storage (left-to-right) order.
func (r *Row) Columns() []*Column { return r.columns }

// ActiveColumnIdx returns the active column's index; only meaningful
// when the row is non-empty.
func (r *Row) ActiveColumnIdx() int { return r.activeColumnIdx }

// ActiveColumn returns the active column, or nil if the row is empty.
func (r *Row) ActiveColumn() *Column {
	if len(r.columns) == 0 {
		return nil
	}
	return r.columns[r.activeColumnIdx]
}

// SetName sets the row's name. Uniqueness (case-insensitive, within a
// Canvas) is enforced by the Canvas, not the Row itself.
func (r *Row) SetName(name string) {
	if name == "" {
		r.Name = nil
		return
	}
	r.Name = &name
}

// IsUrgent reports whether any window in any column is urgent.
func (r *Row) IsUrgent() bool {
	for _, col := range r.columns {
		for _, t := range col.Tiles() {
			if t.Window.IsUrgent() {
				return true
			}
		}
	}
	return false
}

// HasWindows reports whether the row owns at least one tile.
func (r *Row) HasWindows() bool {
	for _, col := range r.columns {
		if col.Len() > 0 {
			return true
		}
	}
	return false
}

// ContainsWindow reports whether id belongs to some tile in some column,
// and returns that column's index.
func (r *Row) ContainsWindow(id WindowID) (int, bool) {
	for ci, col := range r.columns {
		for _, t := range col.Tiles() {
			if t.Window.ID() == id {
				return ci, true
			}
		}
	}
	return 0, false
}

// columnX returns the X offset of the column at idx: a prefix sum of
// preceding columns' widths and gaps, anchored at zero.
func (r *Row) columnX(idx int) float64 {
	x := r.config.Layout.Gaps
	for i := 0; i < idx; i++ {
		x += r.columns[i].ResolvedWidth() + r.config.Layout.Gaps
	}
	return x
}

func (r *Row) isCenteringFocusedColumn() bool {
	switch r.config.Layout.CenterFocusedColumn {
	case CenterAlways:
		return true
	case CenterOnOverflow:
		total := r.config.Layout.Gaps
		for _, c := range r.columns {
			total += c.ResolvedWidth() + r.config.Layout.Gaps
		}
		return total > r.workingArea.W
	default:
		return false
	}
}

// AddColumn inserts col at idx (defaulting to activeColumnIdx+1, or 0 if
// empty). If activate is true the new column becomes active; if it was
// inserted immediately after the previously-active column, the
// previous camera position is stashed so a subsequent removal of this
// new column can restore it. Displaced columns receive a move-from
// animation so they visibly slide into their new position.
func (r *Row) AddColumn(idx int, col *Column, activate bool, now time.Time) {
	origActiveIdx := r.activeColumnIdx
	hadColumns := len(r.columns) > 0

	if idx < 0 {
		if hadColumns {
			idx = origActiveIdx + 1
		} else {
			idx = 0
		}
	}
	if idx > len(r.columns) {
		idx = len(r.columns)
	}
	insertedImmediatelyAfterActive := hadColumns && idx == origActiveIdx+1

	oldXs := make([]float64, len(r.columns))
	for i := range r.columns {
		oldXs[i] = r.columnX(i)
	}

	r.columns = append(r.columns, nil)
	copy(r.columns[idx+1:], r.columns[idx:])
	r.columns[idx] = col

	newActiveIdx := origActiveIdx
	if hadColumns && origActiveIdx >= idx {
		newActiveIdx++
	}
	r.activeColumnIdx = newActiveIdx

	if activate {
		if insertedImmediatelyAfterActive {
			v := r.ViewOffsetX.Stationary()
			r.activatePrevColumnOnRemoval = &v
			r.prevColumnIdxOnRemoval = origActiveIdx
		}
		r.activeColumnIdx = idx
	}

	cfg := r.config.EasingFor(AnimWindowMovement)
	for i, c := range r.columns {
		if i == idx {
			continue
		}
		oldIdx := i
		if i > idx {
			oldIdx = i - 1
		}
		newX := r.columnX(i)
		if oldX := oldXs[oldIdx]; oldX != newX {
			c.AnimateMoveFrom(oldX-newX, cfg, now)
		}
	}
}

// AddTileToColumn inserts t into the column at columnIdx at position
// tileIdx (appending when tileIdx is out of range), or creates a new
// single-tile column at columnIdx if none exists, matching
// add_tile_to_column's "add to existing, else create" dispatch.
func (r *Row) AddTileToColumn(columnIdx int, tileIdx int, t *Tile, activate bool, now time.Time) {
	if columnIdx >= 0 && columnIdx < len(r.columns) {
		r.columns[columnIdx].AddTile(tileIdx, t, now)
		if activate {
			r.columns[columnIdx].SetActiveTileIdx(tileIdx)
			r.FocusColumn(columnIdx, now)
		}
		return
	}
	col := NewColumnWithTile(t, r.config, r.workingArea, r.scale, ProportionWidth(0.5), now)
	r.AddColumn(columnIdx, col, activate, now)
}

// RemoveColumn removes the column at idx. If it was active, focus
// follows activatePrevColumnOnRemoval when present (restoring that
// camera position), else clamps to min(idx, len-1).
func (r *Row) RemoveColumn(idx int) *Column {
	removed := r.columns[idx]

	copy(r.columns[idx:], r.columns[idx+1:])
	r.columns[len(r.columns)-1] = nil
	r.columns = r.columns[:len(r.columns)-1]

	wasActive := idx == r.activeColumnIdx
	if len(r.columns) == 0 {
		r.activeColumnIdx = 0
		r.activatePrevColumnOnRemoval = nil
		return removed
	}

	if idx < r.activeColumnIdx {
		r.activeColumnIdx--
	}

	if wasActive {
		if r.activatePrevColumnOnRemoval != nil {
			r.ViewOffsetX = Static(*r.activatePrevColumnOnRemoval)
			r.activeColumnIdx = clampIdx(r.prevColumnIdxOnRemoval, len(r.columns))
			r.activatePrevColumnOnRemoval = nil
		} else {
			if r.activeColumnIdx >= len(r.columns) {
				r.activeColumnIdx = len(r.columns) - 1
			}
		}
	}
	return removed
}

func clampIdx(i, n int) int {
	if n == 0 {
		return 0
	}
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

// MoveColumnTo moves the column at fromIdx to newIdx, preserving the
// visual camera position by translating ViewOffsetX by the negated
// delta of the active column's new x.
func (r *Row) MoveColumnTo(fromIdx, newIdx int) {
	if fromIdx == newIdx {
		return
	}
	oldActiveX := r.columnX(r.activeColumnIdx)

	col := r.columns[fromIdx]
	r.columns = append(r.columns[:fromIdx], r.columns[fromIdx+1:]...)
	if newIdx > len(r.columns) {
		newIdx = len(r.columns)
	}
	r.columns = append(r.columns, nil)
	copy(r.columns[newIdx+1:], r.columns[newIdx:])
	r.columns[newIdx] = col

	switch r.activeColumnIdx {
	case fromIdx:
		r.activeColumnIdx = newIdx
	default:
		if fromIdx < r.activeColumnIdx && newIdx >= r.activeColumnIdx {
			r.activeColumnIdx--
		} else if fromIdx > r.activeColumnIdx && newIdx <= r.activeColumnIdx {
			r.activeColumnIdx++
		}
	}

	newActiveX := r.columnX(r.activeColumnIdx)
	r.ViewOffsetX = r.ViewOffsetX.Offset(oldActiveX - newActiveX)
}

// MoveColumnToIndex is a 1-based convenience wrapper over MoveColumnTo,
// clamping out-of-range targets to the ends of the row.
func (r *Row) MoveColumnToIndex(fromIdx, oneBasedIdx int) {
	target := oneBasedIdx - 1
	if target < 0 {
		target = 0
	}
	if target > len(r.columns)-1 {
		target = len(r.columns) - 1
	}
	r.MoveColumnTo(fromIdx, target)
}

// FocusColumn switches the active column, clearing any pending removal
// restoration state, then animates the camera to expose it.
func (r *Row) FocusColumn(idx int, now time.Time) bool {
	if idx == r.activeColumnIdx {
		return false
	}
	if idx < 0 || idx >= len(r.columns) {
		return false
	}
	r.activatePrevColumnOnRemoval = nil
	r.viewOffsetToRestore = nil
	r.activeColumnIdx = idx
	r.animateViewOffsetToColumn(idx, now)
	return true
}

// FocusLeft moves focus to the previous column; a no-op (returns false)
// on the first column.
func (r *Row) FocusLeft(now time.Time) bool {
	if r.activeColumnIdx == 0 {
		return false
	}
	return r.FocusColumn(r.activeColumnIdx-1, now)
}

// FocusRight moves focus to the next column; a no-op (returns false) on
// the last column.
func (r *Row) FocusRight(now time.Time) bool {
	if r.activeColumnIdx >= len(r.columns)-1 {
		return false
	}
	return r.FocusColumn(r.activeColumnIdx+1, now)
}

func (r *Row) animateViewOffsetToColumn(idx int, now time.Time) {
	x := r.columnX(idx)
	target := -x
	if r.isCenteringFocusedColumn() {
		target = r.workingArea.W/2 - x - r.columns[idx].ResolvedWidth()/2
	}
	cur := r.ViewOffsetX.Current(now)
	r.ViewOffsetX = FromAnimation(NewAnimation(cur, target, r.config.EasingFor(AnimHorizontalViewMovement), now))
}

// InteractiveResizeBegin starts a pointer-driven resize of window,
// failing (returning false) if a resize is already in progress, the
// window is not found, or its column's sizing mode is not Normal.
func (r *Row) InteractiveResizeBegin(window WindowID, edges ResizeEdges, now time.Time) bool {
	if r.interactiveResize != nil {
		return false
	}
	colIdx, ok := r.ContainsWindow(window)
	if !ok {
		return false
	}
	col := r.columns[colIdx]
	if col.IsPendingMaximized || col.IsPendingFullscreen {
		return false
	}
	var tile *Tile
	for ti, t := range col.Tiles() {
		if t.Window.ID() == window {
			tile = t
			col.data[ti].ResizingByLeftEdge = edges.Left
			break
		}
	}
	r.interactiveResize = &rowInteractiveResize{window: window, original: tile.Size, edges: edges}
	r.ViewOffsetX = r.ViewOffsetX.StopAnimAndGesture(now)
	return true
}

// InteractiveResizeUpdate applies a pointer delta to the in-progress
// resize. A TOP-edge drag is suppressed only for the topmost tile
// (tile index 0), the simplest case where there is nothing above to
// give space; lower tiles resize against their upper neighbor as
// usual.
func (r *Row) InteractiveResizeUpdate(window WindowID, delta Point, now time.Time) bool {
	rz := r.interactiveResize
	if rz == nil || rz.window != window {
		return false
	}
	isCentering := r.isCenteringFocusedColumn()

	colIdx, ok := r.ContainsWindow(window)
	if !ok {
		return false
	}
	col := r.columns[colIdx]
	tileIdx := -1
	for i, t := range col.Tiles() {
		if t.Window.ID() == window {
			tileIdx = i
			break
		}
	}

	if rz.edges.horizontal() {
		dx := delta.X
		if rz.edges.Left {
			dx = -dx
		}
		if isCentering {
			dx *= 2
		}
		col.SetColumnWidth(SizeChange{Kind: SetFixed, Value: rz.original.W + dx}, tileIdx, false, now)
	}

	if rz.edges.vertical() {
		if !(rz.edges.Top && tileIdx == 0) {
			dy := delta.Y
			if rz.edges.Top {
				dy = -dy
			}
			col.SetWindowHeight(SizeChange{Kind: SetFixed, Value: rz.original.H + dy}, tileIdx, false, now)
		}
	}
	return true
}

// InteractiveResizeEnd ends the in-progress resize. If window is
// non-nil and it belongs to the active column, the camera animates back
// to expose it.
func (r *Row) InteractiveResizeEnd(window *WindowID, now time.Time) {
	rz := r.interactiveResize
	if rz == nil {
		return
	}
	if window != nil {
		if *window != rz.window {
			return
		}
		if colIdx, ok := r.ContainsWindow(*window); ok && colIdx == r.activeColumnIdx {
			r.animateViewOffsetToColumn(r.activeColumnIdx, now)
		}
	}
	if colIdx, ok := r.ContainsWindow(rz.window); ok {
		col := r.columns[colIdx]
		for ti, t := range col.Tiles() {
			if t.Window.ID() == rz.window {
				col.data[ti].ResizingByLeftEdge = false
				break
			}
		}
	}
	r.interactiveResize = nil
}

// InteractiveResizeWindow returns the window currently under
// interactive resize, if any.
func (r *Row) InteractiveResizeWindow() (WindowID, bool) {
	if r.interactiveResize == nil {
		return 0, false
	}
	return r.interactiveResize.window, true
}

// CloseWindow removes the window's tile from its column and, when a
// close-animation snapshot is available, keeps the tile in the row's
// closing-windows list so it can fade out in place. With snapshotOK ==
// false the tile is destroyed immediately (render-resource failure, see
// Tile.StartCloseAnimation). Returns false if the window is not in this
// row.
func (r *Row) CloseWindow(id WindowID, snapshotOK bool, now time.Time) bool {
	colIdx, ok := r.ContainsWindow(id)
	if !ok {
		return false
	}
	col := r.columns[colIdx]
	var tile *Tile
	for ti, t := range col.Tiles() {
		if t.Window.ID() == id {
			tile = col.RemoveTile(ti, now)
			break
		}
	}
	if col.Len() == 0 {
		r.RemoveColumn(colIdx)
	}
	tile.StartCloseAnimation(r.config.EasingFor(AnimWindowClose), now, snapshotOK)
	if tile.Lifecycle() == TileClosing {
		r.closingWindows = append(r.closingWindows, tile)
	}
	return true
}

// AdvanceAnimations advances every column's animations and drops
// closing windows whose fade-out has finished. The camera (ViewOffsetX)
// is not touched.
func (r *Row) AdvanceAnimations(now time.Time) {
	for _, c := range r.columns {
		c.AdvanceAnimations(now)
	}
	kept := r.closingWindows[:0]
	for _, t := range r.closingWindows {
		t.AdvanceAnimations(now)
		if t.Lifecycle() == TileDestroyed {
			continue
		}
		kept = append(kept, t)
	}
	for i := len(kept); i < len(r.closingWindows); i++ {
		r.closingWindows[i] = nil
	}
	r.closingWindows = kept
}

// AreAnimationsOngoing reports whether the camera, any column, or any
// closing window is still animating.
func (r *Row) AreAnimationsOngoing(now time.Time) bool {
	if r.ViewOffsetX.IsAnimationOngoing(now) {
		return true
	}
	for _, c := range r.columns {
		if c.AreAnimationsOngoing(now) {
			return true
		}
	}
	return len(r.closingWindows) > 0
}

// RowHit describes what a pointer position over a row landed on: a
// window (with the resize edges its position falls in), or a tabbed
// column's tab indicator.
type RowHit struct {
	WindowID     WindowID
	ColumnIdx    int
	TileIdx      int
	TabIndicator bool
	Edges        ResizeEdges
}

// columnsInRenderOrder returns column indices with the active column
// first, then the rest in storage order.
func (r *Row) columnsInRenderOrder() []int {
	if len(r.columns) == 0 {
		return nil
	}
	order := make([]int, 0, len(r.columns))
	order = append(order, r.activeColumnIdx)
	for i := range r.columns {
		if i != r.activeColumnIdx {
			order = append(order, i)
		}
	}
	return order
}

// HitTest resolves pos (in row-local logical coordinates, the same
// space elements() emits into minus the canvas camera) to whatever is
// under it. Columns are tested in render order so the active column
// wins overlap ties; a tabbed column's tab indicator is tested before
// its tiles; in Tabbed display only the active tile is hittable.
func (r *Row) HitTest(pos Point, now time.Time) (RowHit, bool) {
	viewOffsetX := r.ViewOffsetX.Current(now)
	for _, ci := range r.columnsInRenderOrder() {
		col := r.columns[ci]
		colX := viewOffsetX + r.columnX(ci) + col.renderOffsetX(now)

		if col.DisplayMode == DisplayTabbed {
			indicator := Rect{X: colX, Y: 0, W: r.config.Layout.TabIndicatorWidth, H: r.workingArea.H}
			if indicator.Contains(pos.X, pos.Y) {
				active := col.Tiles()[col.ActiveTileIdx()]
				return RowHit{WindowID: active.Window.ID(), ColumnIdx: ci, TileIdx: col.ActiveTileIdx(), TabIndicator: true}, true
			}
		}

		for _, ti := range col.tileOffsetsInRenderOrder() {
			if col.DisplayMode == DisplayTabbed && ti != col.ActiveTileIdx() {
				continue
			}
			t := col.tiles[ti]
			offset := t.RenderOffset(now, Point{})
			bounds := Rect{
				X: roundPhysical(colX+offset.X, r.scale),
				Y: roundPhysical(col.TileYOffset(ti)+offset.Y, r.scale),
				W: t.Size.W,
				H: t.Size.H,
			}
			if bounds.Contains(pos.X, pos.Y) {
				return RowHit{
					WindowID:  t.Window.ID(),
					ColumnIdx: ci,
					TileIdx:   ti,
					Edges:     resizeEdgesAt(bounds, pos),
				}, true
			}
		}
	}
	return RowHit{}, false
}

// resizeEdgesAt divides bounds into thirds along each axis: a hit in
// the first third of X selects the LEFT edge, the last third RIGHT, and
// likewise TOP/BOTTOM for Y. The middle third selects no edge.
func resizeEdgesAt(bounds Rect, pos Point) ResizeEdges {
	var e ResizeEdges
	switch {
	case pos.X < bounds.X+bounds.W/3:
		e.Left = true
	case pos.X >= bounds.X+bounds.W*2/3:
		e.Right = true
	}
	switch {
	case pos.Y < bounds.Y+bounds.H/3:
		e.Top = true
	case pos.Y >= bounds.Y+bounds.H*2/3:
		e.Bottom = true
	}
	return e
}

// matchesName reports whether name matches the row's name
// case-insensitively.
func (r *Row) matchesName(name string) bool {
	return r.Name != nil && strings.EqualFold(*r.Name, name)
}
