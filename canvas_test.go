package tenon

import (
	"testing"
	"time"
)

func newTestCanvas(t *testing.T, canvasIndex int) *Canvas {
	t.Helper()
	cfg := testConfig()
	return NewCanvas(cfg, canvasIndex, Size{W: 1920, H: 1080}, 1)
}

func addCanvasWindow(c *Canvas, id WindowID, now time.Time) *Tile {
	w := NewSimpleWindow(id, Size{W: 800, H: 600})
	tile := NewTile(w, Size{W: 800, H: 600})
	c.AddWindow(tile, true, false, ProportionWidth(0.5), false, now)
	return tile
}

// Cleaning up keeps an empty but named row and removes an unnamed
// empty one.
func TestCleanupKeepsNamedEmptyRow(t *testing.T) {
	c := newTestCanvas(t, 0)
	now := time.Now()

	addCanvasWindow(c, 1, now)
	row1 := c.EnsureRow(1)
	row1.SetName("scratch")
	c.EnsureRow(2)
	addCanvasWindow(c, 2, now) // lands in the active row (0), unrelated to 1/2

	c.CleanupAndRenumberRows()

	found := false
	for _, i := range c.RowIndices() {
		row, _ := c.RowAt(i)
		if row.HasName() {
			found = true
		}
	}
	if !found {
		t.Fatal("expected the named empty row to survive cleanup")
	}
	// Row 2 had no name and no windows: it must be gone.
	if _, ok := c.RowAt(2); ok {
		t.Fatal("unnamed empty row 2 should have been removed before renumbering")
	}
}

func TestCleanupAndRenumberRowsIsIdempotent(t *testing.T) {
	c := newTestCanvas(t, 0)
	now := time.Now()
	addCanvasWindow(c, 1, now)
	c.EnsureRow(3)

	c.CleanupAndRenumberRows()
	first := append([]int(nil), c.RowIndices()...)
	firstActive := c.ActiveRowIdx()

	c.CleanupAndRenumberRows()
	second := c.RowIndices()

	if len(first) != len(second) {
		t.Fatalf("row count changed on second cleanup: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("row indices changed on second cleanup: %v vs %v", first, second)
		}
	}
	if c.ActiveRowIdx() != firstActive {
		t.Fatalf("active row idx changed on second cleanup: %d vs %d", firstActive, c.ActiveRowIdx())
	}
}

// Row indices form a contiguous prefix [0,n) after renumbering.
func TestRenumberRowsProducesContiguousPrefix(t *testing.T) {
	c := newTestCanvas(t, 0)
	now := time.Now()
	addCanvasWindow(c, 1, now)
	row5 := c.EnsureRow(5)
	row5.SetName("far")
	row9 := c.EnsureRow(9)
	row9.SetName("farther")

	c.CleanupAndRenumberRows()

	idxs := c.RowIndices()
	for i, idx := range idxs {
		if idx != i {
			t.Fatalf("row indices not contiguous from 0: %v", idxs)
		}
	}
}

func TestAddRemoveWindowRoundTrip(t *testing.T) {
	c := newTestCanvas(t, 0)
	now := time.Now()
	tile := addCanvasWindow(c, 1, now)

	removed, ok := c.RemoveWindow(1, now)
	if !ok {
		t.Fatal("expected RemoveWindow to find the tile")
	}
	if removed != tile {
		t.Fatal("RemoveWindow returned a different tile than was added")
	}
	if _, ok := c.RowAt(0); !ok {
		t.Fatal("row 0 should still exist (now empty) after removing its only window")
	}
	row, _ := c.RowAt(0)
	if row.HasWindows() {
		t.Fatal("row should report no windows after removal")
	}
}

func TestToggleFloatingWindowTwiceRestoresLayerAndWidth(t *testing.T) {
	c := newTestCanvas(t, 0)
	now := time.Now()
	addCanvasWindow(c, 1, now)

	row, _ := c.RowAt(0)
	origCol := row.ActiveColumn()
	origWidth := origCol.Width
	origFullWidth := origCol.IsFullWidth

	c.ToggleFloatingWindow(now)
	if !c.FloatingIsActive {
		t.Fatal("expected floating layer to become active")
	}
	if c.Floating.IsEmpty() {
		t.Fatal("expected a tile to have moved into the floating layer")
	}

	c.ToggleFloatingWindow(now)
	if c.FloatingIsActive {
		t.Fatal("expected floating layer to be inactive again after the second toggle")
	}
	row, _ = c.RowAt(0)
	restoredCol := row.ActiveColumn()
	if restoredCol.Width != origWidth {
		t.Fatalf("width not restored: got %+v, want %+v", restoredCol.Width, origWidth)
	}
	if restoredCol.IsFullWidth != origFullWidth {
		t.Fatalf("full-width flag not restored: got %v, want %v", restoredCol.IsFullWidth, origFullWidth)
	}
}

func TestRowIDsNeverCollideAcrossCanvases(t *testing.T) {
	c0 := newTestCanvas(t, 0)
	c1 := newTestCanvas(t, 1)

	seen := map[RowID]bool{}
	for i := 0; i < 5; i++ {
		r := c0.EnsureRow(i)
		r.SetName("x")
		id, _ := c0.RowID(i)
		if seen[id] {
			t.Fatalf("duplicate row id %d minted within canvas 0", id)
		}
		seen[id] = true
	}
	for i := 0; i < 5; i++ {
		r := c1.EnsureRow(i)
		r.SetName("y")
		id, _ := c1.RowID(i)
		if seen[id] {
			t.Fatalf("row id %d from canvas 1 collides with one minted by canvas 0", id)
		}
		seen[id] = true
	}
}

func TestFocusRowAnimatesCameraAndPreservesColumnFocus(t *testing.T) {
	c := newTestCanvas(t, 0)
	now := time.Now()
	addCanvasWindow(c, 1, now)
	addCanvasWindow(c, 2, now)
	r0, _ := c.RowAt(0)
	r0.SetActiveColumnIdxClamped(1)

	r1 := c.EnsureRow(1)
	for _, id := range []WindowID{3, 4} {
		w := NewSimpleWindow(id, Size{W: 800, H: 600})
		col := NewColumnWithTile(NewTile(w, Size{W: 800, H: 600}), c.config, c.workingArea, c.scale, ProportionWidth(0.5), now)
		r1.AddColumn(-1, col, true, now)
	}
	r1.SetActiveColumnIdxClamped(0)

	if !c.FocusRow(1, now) {
		t.Fatal("expected FocusRow to succeed")
	}
	if c.ActiveRowIdx() != 1 {
		t.Fatalf("active row = %d, want 1", c.ActiveRowIdx())
	}
	if c.CameraY.Target(now) != c.yOffset(1) {
		t.Fatalf("camera target = %v, want %v", c.CameraY.Target(now), c.yOffset(1))
	}
	if r1.ActiveColumnIdx() != 1 {
		t.Fatalf("row 1 active column = %d, want 1 (carried over from row 0)", r1.ActiveColumnIdx())
	}
}

func TestFocusRowOnCurrentRowIsNoop(t *testing.T) {
	c := newTestCanvas(t, 0)
	now := time.Now()
	addCanvasWindow(c, 1, now)

	if c.FocusRow(0, now) {
		t.Fatal("FocusRow on the already-active row should return false")
	}
}

func TestCloseFloatingWindowFadesOutInPlace(t *testing.T) {
	c := newTestCanvas(t, 0)
	now := time.Now()
	w := NewSimpleWindow(1, Size{W: 300, H: 300})
	tile := NewTile(w, Size{W: 300, H: 300})
	c.AddWindow(tile, true, true, ColumnWidth{}, false, now)

	if !c.CloseWindow(1, true, now) {
		t.Fatal("expected CloseWindow to find the floating window")
	}
	if tile.Lifecycle() != TileClosing {
		t.Fatalf("lifecycle = %v, want TileClosing", tile.Lifecycle())
	}
	if c.Floating.IsEmpty() {
		t.Fatal("a closing floating tile must stay in the floating layer while fading")
	}

	settled := now.Add(c.config.EasingFor(AnimWindowClose).Duration + time.Millisecond)
	c.AdvanceAnimations(settled)
	if !c.Floating.IsEmpty() {
		t.Fatal("expected the floating tile to be dropped once its fade finished")
	}
}

func TestEmptyRowAboveFirstMaterializedByCleanup(t *testing.T) {
	cfg := testConfig()
	cfg.Layout.EmptyRowAboveFirst = true
	c := NewCanvas(cfg, 0, Size{W: 1920, H: 1080}, 1)
	now := time.Now()
	addCanvasWindow(c, 1, now)

	c.CleanupAndRenumberRows()

	row0, ok := c.RowAt(0)
	if !ok {
		t.Fatal("expected row 0 to exist")
	}
	if row0.HasWindows() {
		t.Fatal("row 0 should be the empty row above the first occupied one")
	}
	row1, ok := c.RowAt(1)
	if !ok || !row1.HasWindows() {
		t.Fatal("expected the occupied row to have shifted to index 1")
	}
	if c.ActiveRowIdx() != 1 {
		t.Fatalf("active row = %d, want 1 (following the occupied row)", c.ActiveRowIdx())
	}

	// Still idempotent: a second cleanup reaches the same fixed point.
	c.CleanupAndRenumberRows()
	if _, ok := c.RowAt(1); !ok {
		t.Fatal("second cleanup must preserve the occupied row at index 1")
	}
	if got := len(c.RowIndices()); got != 2 {
		t.Fatalf("row count after second cleanup = %d, want 2", got)
	}
}

func TestCanvasVerifyInvariantsPanicsOnDuplicateWindow(t *testing.T) {
	c := newTestCanvas(t, 0)
	now := time.Now()
	addCanvasWindow(c, 1, now)
	// Inject the same window id into the floating layer.
	dup := NewTile(NewSimpleWindow(1, Size{W: 100, H: 100}), Size{W: 100, H: 100})
	c.Floating.AddTile(dup, Point{}, ColumnWidth{}, false, false)

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on a window id present in two places")
		}
	}()
	c.VerifyInvariants()
}

func TestCanvasVerifyInvariantsPassesOnWellFormedCanvas(t *testing.T) {
	c := newTestCanvas(t, 0)
	now := time.Now()
	addCanvasWindow(c, 1, now)
	addCanvasWindow(c, 2, now)
	c.VerifyInvariants()
}

func TestStrutsShrinkWorkingArea(t *testing.T) {
	cfg := testConfig()
	cfg.Layout.Struts = Rect{X: 10, Y: 20, W: 30, H: 40} // left, top, right, bottom
	c := NewCanvas(cfg, 0, Size{W: 1920, H: 1080}, 1)

	if c.workingArea.W != 1920-10-30 {
		t.Fatalf("working width = %v, want %v", c.workingArea.W, 1920-10-30)
	}
	if c.workingArea.H != 1080-20-40 {
		t.Fatalf("working height = %v, want %v", c.workingArea.H, 1080-20-40)
	}
}

func TestIsUrgentChecksTiledAndFloatingTiles(t *testing.T) {
	c := newTestCanvas(t, 0)
	now := time.Now()
	addCanvasWindow(c, 1, now)
	if c.IsUrgent() {
		t.Fatal("fresh canvas should not be urgent")
	}

	row, _ := c.RowAt(0)
	w := row.ActiveColumn().Tiles()[0].Window.(*SimpleWindow)
	w.SetUrgent(true)
	if !c.IsUrgent() {
		t.Fatal("expected canvas to report urgent once a tiled window is urgent")
	}

	w.SetUrgent(false)
	fw := NewSimpleWindow(2, Size{W: 300, H: 300})
	fw.SetUrgent(true)
	c.Floating.AddTile(NewTile(fw, Size{W: 300, H: 300}), Point{}, ColumnWidth{}, false, false)
	if !c.IsUrgent() {
		t.Fatal("expected canvas to report urgent once a floating window is urgent")
	}
}
