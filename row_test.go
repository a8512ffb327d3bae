package tenon

import (
	"testing"
	"time"
)

func testConfig() *Config {
	cfg := DefaultConfig()
	cfg.Layout.Gaps = 16
	cfg.Layout.PresetColumnWidths = []PresetSize{ProportionPreset(0.5)}
	return &cfg
}

func addWindow(t *testing.T, row *Row, cfg *Config, workingArea Size, id WindowID, now time.Time) *Tile {
	t.Helper()
	w := NewSimpleWindow(id, Size{W: 500, H: 500})
	tile := NewTile(w, Size{W: 500, H: 500})
	col := NewColumnWithTile(tile, cfg, workingArea, 1, ProportionWidth(0.5), now)
	row.AddColumn(-1, col, true, now)
	return tile
}

// Three windows added to a fresh row become three half-width columns.
func TestAddThreeWindowsDefaultRow(t *testing.T) {
	cfg := testConfig()
	workingArea := Size{W: 1920, H: 1080}
	row := NewRow(cfg, workingArea, 1)
	now := time.Now()

	addWindow(t, row, cfg, workingArea, 1, now)
	addWindow(t, row, cfg, workingArea, 2, now)
	addWindow(t, row, cfg, workingArea, 3, now)

	if len(row.Columns()) != 3 {
		t.Fatalf("got %d columns, want 3", len(row.Columns()))
	}
	if row.ActiveColumnIdx() != 2 {
		t.Fatalf("active_column_idx = %d, want 2", row.ActiveColumnIdx())
	}
	want := (1920.0-16)*0.5 - 16
	for i, col := range row.Columns() {
		if got := col.ResolvedWidth(); !approxEqual(got, want) {
			t.Fatalf("column %d width = %v, want %v", i, got, want)
		}
	}
}

// Removing the active column returns focus left, restoring the camera
// position stashed when the removed (third) window was added.
func TestRemoveActiveRestoresFocusAndCamera(t *testing.T) {
	cfg := testConfig()
	workingArea := Size{W: 1920, H: 1080}
	row := NewRow(cfg, workingArea, 1)
	now := time.Now()

	addWindow(t, row, cfg, workingArea, 1, now)
	addWindow(t, row, cfg, workingArea, 2, now)
	stashedBeforeThird := row.ViewOffsetX.Stationary()
	addWindow(t, row, cfg, workingArea, 3, now)

	if row.activatePrevColumnOnRemoval == nil {
		t.Fatalf("expected activatePrevColumnOnRemoval to be stashed after adding w3")
	}

	removeWindowFromRow(row, 3)

	if row.ActiveColumnIdx() != 1 {
		t.Fatalf("active_column_idx after removal = %d, want 1", row.ActiveColumnIdx())
	}
	if got := row.ViewOffsetX.Stationary(); !approxEqual(got, stashedBeforeThird) {
		t.Fatalf("camera after removal = %v, want restored %v", got, stashedBeforeThird)
	}
}

func removeWindowFromRow(row *Row, id WindowID) {
	colIdx, ok := row.ContainsWindow(id)
	if !ok {
		return
	}
	row.RemoveColumn(colIdx)
}

func TestFocusRightOnLastColumnIsNoop(t *testing.T) {
	cfg := testConfig()
	workingArea := Size{W: 1920, H: 1080}
	row := NewRow(cfg, workingArea, 1)
	now := time.Now()
	addWindow(t, row, cfg, workingArea, 1, now)
	addWindow(t, row, cfg, workingArea, 2, now)

	if row.FocusRight(now) {
		t.Fatalf("FocusRight on last column should return false")
	}
	if row.ActiveColumnIdx() != 1 {
		t.Fatalf("FocusRight must not alter active_column_idx on no-op")
	}
}

func TestFocusLeftOnFirstColumnIsNoop(t *testing.T) {
	cfg := testConfig()
	workingArea := Size{W: 1920, H: 1080}
	row := NewRow(cfg, workingArea, 1)
	now := time.Now()
	addWindow(t, row, cfg, workingArea, 1, now)

	if row.FocusLeft(now) {
		t.Fatalf("FocusLeft on column 0 should return false")
	}
}

func TestRemoveLastColumnLeavesRowEmpty(t *testing.T) {
	cfg := testConfig()
	workingArea := Size{W: 1920, H: 1080}
	row := NewRow(cfg, workingArea, 1)
	now := time.Now()
	addWindow(t, row, cfg, workingArea, 1, now)

	row.RemoveColumn(0)

	if !row.IsEmpty() {
		t.Fatalf("row should be empty after removing its only column")
	}
	if row.ActiveColumnIdx() != 0 {
		t.Fatalf("active_column_idx after emptying row = %d, want 0", row.ActiveColumnIdx())
	}
}

func TestHitTestFindsTileAndResizeEdges(t *testing.T) {
	cfg := testConfig()
	workingArea := Size{W: 1920, H: 1080}
	row := NewRow(cfg, workingArea, 1)
	now := time.Now()
	tile := addWindow(t, row, cfg, workingArea, 1, now)

	// The single tile occupies {16, 16, w, h}. A point in the middle
	// third of both axes selects no resize edge.
	midX := 16 + tile.Size.W/2
	midY := 16 + tile.Size.H/2
	hit, ok := row.HitTest(Point{X: midX, Y: midY}, now)
	if !ok {
		t.Fatal("expected a hit in the middle of the only tile")
	}
	if hit.WindowID != 1 {
		t.Fatalf("hit window = %d, want 1", hit.WindowID)
	}
	if hit.Edges != (ResizeEdges{}) {
		t.Fatalf("middle-of-tile hit should select no resize edges, got %+v", hit.Edges)
	}

	// A point in the first third of X selects the LEFT edge.
	hit, ok = row.HitTest(Point{X: 16 + 10, Y: midY}, now)
	if !ok {
		t.Fatal("expected a hit near the tile's left edge")
	}
	if !hit.Edges.Left || hit.Edges.Right || hit.Edges.Top || hit.Edges.Bottom {
		t.Fatalf("left-third hit edges = %+v, want Left only", hit.Edges)
	}

	// A point in the last third of both axes selects RIGHT+BOTTOM.
	hit, ok = row.HitTest(Point{X: 16 + tile.Size.W - 5, Y: 16 + tile.Size.H - 5}, now)
	if !ok {
		t.Fatal("expected a hit near the tile's bottom-right corner")
	}
	if !hit.Edges.Right || !hit.Edges.Bottom {
		t.Fatalf("bottom-right hit edges = %+v, want Right+Bottom", hit.Edges)
	}

	if _, ok := row.HitTest(Point{X: 5, Y: 5}, now); ok {
		t.Fatal("a point in the gap left of the first column must not hit anything")
	}
}

func TestHitTestTabbedColumnHitsIndicatorFirst(t *testing.T) {
	cfg := testConfig()
	workingArea := Size{W: 1920, H: 1080}
	row := NewRow(cfg, workingArea, 1)
	now := time.Now()
	addWindow(t, row, cfg, workingArea, 1, now)

	col := row.ActiveColumn()
	col.AddTile(-1, NewTile(NewSimpleWindow(2, Size{W: 500, H: 500}), Size{W: 500, H: 500}), now)
	col.SetDisplayMode(DisplayTabbed, now)

	hit, ok := row.HitTest(Point{X: 16 + 2, Y: 500}, now)
	if !ok {
		t.Fatal("expected the tab indicator strip to be hittable")
	}
	if !hit.TabIndicator {
		t.Fatalf("hit = %+v, want TabIndicator", hit)
	}
	if hit.WindowID != 1 {
		t.Fatalf("tab indicator hit should report the active tile's window, got %d", hit.WindowID)
	}
}

func TestCloseWindowKeepsTileInClosingListUntilFadeEnds(t *testing.T) {
	cfg := testConfig()
	workingArea := Size{W: 1920, H: 1080}
	row := NewRow(cfg, workingArea, 1)
	now := time.Now()
	addWindow(t, row, cfg, workingArea, 1, now)

	if !row.CloseWindow(1, true, now) {
		t.Fatal("expected CloseWindow to find the window")
	}
	if !row.IsEmpty() {
		t.Fatal("closing the only window should have emptied the row's columns")
	}
	if len(row.closingWindows) != 1 {
		t.Fatalf("closing windows = %d, want 1", len(row.closingWindows))
	}
	if !row.AreAnimationsOngoing(now) {
		t.Fatal("a closing window should count as an ongoing animation")
	}

	settled := now.Add(cfg.EasingFor(AnimWindowClose).Duration + time.Millisecond)
	row.AdvanceAnimations(settled)
	if len(row.closingWindows) != 0 {
		t.Fatalf("closing windows after the fade = %d, want 0", len(row.closingWindows))
	}
}

func TestCloseWindowWithoutSnapshotDestroysImmediately(t *testing.T) {
	cfg := testConfig()
	workingArea := Size{W: 1920, H: 1080}
	row := NewRow(cfg, workingArea, 1)
	now := time.Now()
	tile := addWindow(t, row, cfg, workingArea, 1, now)

	if !row.CloseWindow(1, false, now) {
		t.Fatal("expected CloseWindow to find the window")
	}
	if tile.Lifecycle() != TileDestroyed {
		t.Fatalf("lifecycle = %v, want TileDestroyed when no snapshot is available", tile.Lifecycle())
	}
	if len(row.closingWindows) != 0 {
		t.Fatal("a snapshot-less close must not enter the closing-windows list")
	}
}

func TestInteractiveResizeTracksResizingByLeftEdge(t *testing.T) {
	cfg := testConfig()
	workingArea := Size{W: 1920, H: 1080}
	row := NewRow(cfg, workingArea, 1)
	now := time.Now()
	addWindow(t, row, cfg, workingArea, 1, now)
	col := row.ActiveColumn()

	row.InteractiveResizeBegin(1, ResizeEdges{Left: true}, now)
	if !col.data[0].ResizingByLeftEdge {
		t.Fatal("expected ResizingByLeftEdge to be set during a LEFT-edge resize")
	}

	id := WindowID(1)
	row.InteractiveResizeEnd(&id, now)
	if col.data[0].ResizingByLeftEdge {
		t.Fatal("expected ResizingByLeftEdge to be cleared when the resize ends")
	}
}

func TestInteractiveResizeTopEdgeSuppressedOnlyAtTileIdxZero(t *testing.T) {
	cfg := testConfig()
	workingArea := Size{W: 1920, H: 1080}
	row := NewRow(cfg, workingArea, 1)
	now := time.Now()
	tile := addWindow(t, row, cfg, workingArea, 1, now)
	lower := NewTile(NewSimpleWindow(2, Size{W: 500, H: 500}), Size{W: 500, H: 500})
	row.ActiveColumn().AddTile(-1, lower, now)

	row.InteractiveResizeBegin(1, ResizeEdges{Top: true}, now)
	before := tile.Size.H
	row.InteractiveResizeUpdate(1, Point{Y: 50}, now)
	if tile.Size.H != before {
		t.Fatalf("TOP-edge resize at tile_idx 0 must be suppressed verbatim: height changed from %v to %v", before, tile.Size.H)
	}

	id := WindowID(1)
	row.InteractiveResizeEnd(&id, now)
	row.InteractiveResizeBegin(2, ResizeEdges{Top: true}, now)
	beforeLower := lower.Size.H
	row.InteractiveResizeUpdate(2, Point{Y: 50}, now)
	if lower.Size.H == beforeLower {
		t.Fatalf("TOP-edge resize at tile_idx 1 must not be suppressed: height stayed %v", beforeLower)
	}
}
