// Package extrow exposes the ext-row IPC surface: it mirrors
// row/camera state to external status-bar-style clients and accepts
// their focus/camera/bookmark requests. The wire shape follows the
// ext_row_manager_v1 / ext_row_group_v1 / ext_row_handle_v1 protocol
// split, carried over an in-process Manager plus a websocket
// broadcaster (server.go) rather than a wl_display.
package extrow

import (
	"errors"
	"fmt"
	"time"

	"github.com/tenonwm/tenon"
)

// ProtocolError means a client misused the IPC surface (e.g.
// referencing a row handle whose row no longer exists). The compositor
// keeps running; only the offending client connection is expected to
// be torn down by the caller.
type ProtocolError struct {
	Op  string
	Err error
}

func (e *ProtocolError) Error() string { return fmt.Sprintf("extrow: %s: %v", e.Op, e.Err) }
func (e *ProtocolError) Unwrap() error { return e.Err }

var errNoSuchRow = errors.New("no such row")
var errNoSuchBookmark = errors.New("no such bookmark")
var errNoMonitors = errors.New("no monitors attached")

// RowGeometry is the ext_row_handle_v1 geometry event payload: the
// row's rectangle in canvas coordinates.
type RowGeometry struct {
	X, Y, W, H float64
}

// RowState is the ext_row_handle_v1 state event payload: a bitmask of
// observable row flags.
type RowState uint8

const (
	RowStateActive RowState = 1 << iota
	RowStateUrgent
	RowStateNamed
)

// RowSnapshot is everything the ext_row_handle_v1 surface reports about
// one row: geometry, state, window_count, active_window, name.
type RowSnapshot struct {
	ID           tenon.RowID
	Geometry     RowGeometry
	State        RowState
	WindowCount  int
	ActiveWindow *tenon.WindowID
	Name         *string
}

// CameraState is the ext_row_group_v1 camera event payload.
type CameraState struct {
	X, Y, Zoom float64
}

// GroupSnapshot is everything one output's ext_row_group_v1 reports:
// its camera state and every row materialized on its canvas (no
// viewport filtering is applied).
type GroupSnapshot struct {
	Output      tenon.OutputID
	Camera      CameraState
	VisibleRows []tenon.RowID
}

// Bookmark is a saved camera position, unique within one Manager by
// BookmarkID.
type Bookmark struct {
	ID         tenon.BookmarkID
	Name       string
	X, Y, Zoom float64
}

// Manager holds no protocol-object bookkeeping (that lives in the
// transport, server.go), only the row/camera/bookmark state and the
// operations the wire surface exposes.
type Manager struct {
	layout    *tenon.Layout
	bookmarks map[tenon.BookmarkID]*Bookmark
	nextBkID  tenon.BookmarkID
	zoom      map[tenon.OutputID]float64
}

// NewManager returns a Manager reporting on and driving layout.
func NewManager(layout *tenon.Layout) *Manager {
	return &Manager{
		layout:    layout,
		bookmarks: map[tenon.BookmarkID]*Bookmark{},
		zoom:      map[tenon.OutputID]float64{},
	}
}

// findRow locates the canvas and row index owning id across every
// monitor's canvas.
func (m *Manager) findRow(id tenon.RowID) (canvas *tenon.Canvas, idx int, ok bool) {
	for _, mon := range m.layout.Monitors() {
		if i, ok := mon.Canvas.FindRowByID(id); ok {
			return mon.Canvas, i, true
		}
	}
	return nil, 0, false
}

// FocusRow focuses the row identified by id, wherever it lives.
func (m *Manager) FocusRow(id tenon.RowID, now time.Time) error {
	canvas, idx, ok := m.findRow(id)
	if !ok {
		return &ProtocolError{Op: "focus_row", Err: errNoSuchRow}
	}
	canvas.FocusRow(idx, now)
	return nil
}

// FocusRowAt focuses whichever row on the active monitor's canvas
// contains canvas-coordinate y, materializing it if needed.
func (m *Manager) FocusRowAt(x, y float64, now time.Time) error {
	mon := m.layout.ActiveMonitor()
	if mon == nil {
		return &ProtocolError{Op: "focus_row_at", Err: errNoMonitors}
	}
	idx := int(y / mon.Canvas.ViewSize.H)
	mon.Canvas.EnsureRow(idx)
	mon.Canvas.FocusRow(idx, now)
	return nil
}

// SetRowName sets or clears (name == "") a row's name. Uniqueness is
// enforced case-insensitively across the owning canvas; a collision is
// reported as a protocol error rather than silently renaming.
func (m *Manager) SetRowName(id tenon.RowID, name string) error {
	canvas, idx, ok := m.findRow(id)
	if !ok {
		return &ProtocolError{Op: "set_row_name", Err: errNoSuchRow}
	}
	if name != "" {
		if existing, ok := canvas.FindRowByName(name); ok && existing != idx {
			return &ProtocolError{Op: "set_row_name", Err: fmt.Errorf("duplicate named row: %q", name)}
		}
	}
	row, _ := canvas.RowAt(idx)
	row.SetName(name)
	return nil
}

// SetCamera sets an output's camera position and zoom directly,
// mapping to that output's monitor: its canvas camera Y and its active
// row's camera X. Zoom is tracked per-output at the protocol layer: the core
// layout model has no standalone camera-zoom quantity outside of
// Monitor's overview progress, so this is protocol-local state passed
// through unchanged in camera events.
func (m *Manager) SetCamera(output tenon.OutputID, x, y, zoom float64, now time.Time) error {
	mon := m.monitorByOutput(output)
	if mon == nil {
		return &ProtocolError{Op: "set_camera", Err: errNoMonitors}
	}
	if row := mon.Canvas.ActiveRow(); row != nil {
		row.ViewOffsetX = tenon.Static(x)
	}
	mon.Canvas.CameraY = tenon.Static(y)
	m.zoom[output] = zoom
	return nil
}

// MoveCameraBy offsets the camera of output's monitor by a relative
// amount, preserving any ongoing motion (AnimatedValue.Offset).
func (m *Manager) MoveCameraBy(output tenon.OutputID, dx, dy, dzoom float64) error {
	mon := m.monitorByOutput(output)
	if mon == nil {
		return &ProtocolError{Op: "move_camera_by", Err: errNoMonitors}
	}
	if row := mon.Canvas.ActiveRow(); row != nil {
		row.ViewOffsetX = row.ViewOffsetX.Offset(dx)
	}
	mon.Canvas.CameraY = mon.Canvas.CameraY.Offset(dy)
	m.zoom[output] += dzoom
	return nil
}

// CenterCameraOnRow animates the owning canvas's camera to the given
// row, without changing which row is active.
func (m *Manager) CenterCameraOnRow(id tenon.RowID, now time.Time) error {
	canvas, idx, ok := m.findRow(id)
	if !ok {
		return &ProtocolError{Op: "center_camera_on_row", Err: errNoSuchRow}
	}
	row, _ := canvas.RowAt(idx)
	cur := canvas.CameraY.Current(now)
	easing := m.layout.Config().EasingFor(tenon.AnimHorizontalViewMovement)
	canvas.CameraY = tenon.FromAnimation(tenon.NewAnimation(cur, row.YOffset, easing, now))
	return nil
}

// CreateBookmark saves the current camera position of output under a
// fresh BookmarkID.
func (m *Manager) CreateBookmark(output tenon.OutputID, name string, now time.Time) (tenon.BookmarkID, error) {
	mon := m.monitorByOutput(output)
	if mon == nil {
		return 0, &ProtocolError{Op: "create_bookmark", Err: errNoMonitors}
	}
	var x float64
	if row := mon.Canvas.ActiveRow(); row != nil {
		x = row.ViewOffsetX.Current(now)
	}
	m.nextBkID++
	id := m.nextBkID
	m.bookmarks[id] = &Bookmark{
		ID:   id,
		Name: name,
		X:    x,
		Y:    mon.Canvas.CameraY.Current(now),
		Zoom: m.zoom[output],
	}
	return id, nil
}

// RemoveBookmark deletes a previously created bookmark.
func (m *Manager) RemoveBookmark(id tenon.BookmarkID) error {
	if _, ok := m.bookmarks[id]; !ok {
		return &ProtocolError{Op: "remove_bookmark", Err: errNoSuchBookmark}
	}
	delete(m.bookmarks, id)
	return nil
}

// GotoBookmark restores a saved camera position on output.
func (m *Manager) GotoBookmark(output tenon.OutputID, id tenon.BookmarkID, now time.Time) error {
	bk, ok := m.bookmarks[id]
	if !ok {
		return &ProtocolError{Op: "goto_bookmark", Err: errNoSuchBookmark}
	}
	return m.SetCamera(output, bk.X, bk.Y, bk.Zoom, now)
}

// Bookmarks returns every saved bookmark.
func (m *Manager) Bookmarks() []Bookmark {
	out := make([]Bookmark, 0, len(m.bookmarks))
	for _, b := range m.bookmarks {
		out = append(out, *b)
	}
	return out
}

// FocusRowUp/FocusRowDown focus the numerically-adjacent row on the
// active monitor's canvas.
func (m *Manager) FocusRowUp(now time.Time) error {
	return m.focusRowDelta(-1, now)
}

func (m *Manager) FocusRowDown(now time.Time) error {
	return m.focusRowDelta(1, now)
}

func (m *Manager) focusRowDelta(delta int, now time.Time) error {
	mon := m.layout.ActiveMonitor()
	if mon == nil {
		return &ProtocolError{Op: "focus_row_up_down", Err: errNoMonitors}
	}
	mon.Canvas.FocusRow(mon.Canvas.ActiveRowIdx()+delta, now)
	return nil
}

func (m *Manager) monitorByOutput(output tenon.OutputID) *tenon.Monitor {
	for _, mon := range m.layout.Monitors() {
		if mon.Output == output {
			return mon
		}
	}
	return nil
}

// RowSnapshots returns a RowSnapshot for every row materialized in the
// given canvas, in ascending index order, for ext_row_handle_v1's
// per-row event set.
func RowSnapshots(canvas *tenon.Canvas) []RowSnapshot {
	var out []RowSnapshot
	for _, i := range canvas.RowIndices() {
		row, ok := canvas.RowAt(i)
		if !ok {
			continue
		}
		id, _ := canvas.RowID(i)
		wa := row.WorkingArea()
		snap := RowSnapshot{
			ID:          id,
			Geometry:    RowGeometry{X: 0, Y: row.YOffset, W: wa.W, H: wa.H},
			WindowCount: windowCount(row),
		}
		if i == canvas.ActiveRowIdx() {
			snap.State |= RowStateActive
		}
		if row.IsUrgent() {
			snap.State |= RowStateUrgent
		}
		if row.HasName() {
			snap.State |= RowStateNamed
			name := *row.Name
			snap.Name = &name
		}
		if col := row.ActiveColumn(); col != nil {
			if tile := col.Tiles()[col.ActiveTileIdx()]; tile != nil {
				id := tile.Window.ID()
				snap.ActiveWindow = &id
			}
		}
		out = append(out, snap)
	}
	return out
}

func windowCount(row *tenon.Row) int {
	n := 0
	for _, col := range row.Columns() {
		n += col.Len()
	}
	return n
}

// GroupSnapshot reports the given monitor's camera state and every
// materialized row of its canvas in ascending index order, for
// ext_row_group_v1. Rows outside the viewport are listed too.
func (m *Manager) GroupSnapshot(mon *tenon.Monitor, now time.Time) GroupSnapshot {
	var x float64
	if row := mon.Canvas.ActiveRow(); row != nil {
		x = row.ViewOffsetX.Current(now)
	}
	visible := make([]tenon.RowID, 0, len(mon.Canvas.RowIndices()))
	for _, i := range mon.Canvas.RowIndices() {
		if id, ok := mon.Canvas.RowID(i); ok {
			visible = append(visible, id)
		}
	}
	return GroupSnapshot{
		Output: mon.Output,
		Camera: CameraState{
			X:    x,
			Y:    mon.Canvas.CameraY.Current(now),
			Zoom: m.zoom[mon.Output],
		},
		VisibleRows: visible,
	}
}
