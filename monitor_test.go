package tenon

import (
	"testing"
	"time"
)

func newTestMonitor(t *testing.T) *Monitor {
	t.Helper()
	cfg := testConfig()
	return NewMonitor(cfg, "eDP-1", 0, Size{W: 1920, H: 1080}, 1)
}

func TestBeginRowSwipeGestureStartsAtCurrentRow(t *testing.T) {
	m := newTestMonitor(t)
	m.Canvas.EnsureRow(1)
	m.Canvas.activeRowIdx = 1

	m.BeginRowSwipeGesture(true)

	if !m.RowSwitch.IsGesture() {
		t.Fatal("expected RowSwitch to become a live gesture")
	}
	g := m.RowSwitch.Gesture()
	if g.StationaryViewOffset != 1 {
		t.Fatalf("stationary offset = %v, want 1 (current row)", g.StationaryViewOffset)
	}
}

func TestUpdateRowSwipeGestureConvertsTouchpadUnits(t *testing.T) {
	m := newTestMonitor(t)
	m.BeginRowSwipeGesture(true)

	m.UpdateRowSwipeGesture(rowGestureMovement/2, false)

	g := m.RowSwitch.Gesture()
	if !approxEqual(g.CurrentViewOffset, 0.5) {
		t.Fatalf("current offset = %v, want 0.5 (half a row swipe)", g.CurrentViewOffset)
	}
}

func TestUpdateRowSwipeGestureRubberBandsPastOneRow(t *testing.T) {
	m := newTestMonitor(t)
	m.BeginRowSwipeGesture(true)

	// Push far past the +1 row boundary: raw offset would be 3.
	m.UpdateRowSwipeGesture(rowGestureMovement*3, false)

	g := m.RowSwitch.Gesture()
	want := 1 + (3.0-1)*rowGestureRubberBandStiffness*rowGestureRubberBandLimit
	if !approxEqual(g.CurrentViewOffset, want) {
		t.Fatalf("rubber-banded offset = %v, want %v", g.CurrentViewOffset, want)
	}
	if g.CurrentViewOffset <= 1 {
		t.Fatalf("offset = %v, expected some give past the +1 boundary", g.CurrentViewOffset)
	}
}

func TestEndRowSwipeGestureSnapsToNearestRowAndFocuses(t *testing.T) {
	m := newTestMonitor(t)
	m.Canvas.EnsureRow(1)
	now := time.Now()
	m.BeginRowSwipeGesture(true)
	m.UpdateRowSwipeGesture(rowGestureMovement*0.6, false)

	m.EndRowSwipeGesture(now)

	if !m.RowSwitch.IsAnimation() {
		t.Fatal("expected RowSwitch to become an Animation after release")
	}
	if m.Canvas.ActiveRowIdx() != 1 {
		t.Fatalf("active row = %d, want 1 (snapped to nearest)", m.Canvas.ActiveRowIdx())
	}
}

func TestOverviewProgressClampsToUnitRange(t *testing.T) {
	m := newTestMonitor(t)
	now := time.Now()
	m.SetOverviewActive(true, now)

	settled := now.Add(10 * time.Second)
	if got := m.OverviewProgress(settled); !approxEqual(got, 1) {
		t.Fatalf("overview progress = %v, want 1 once settled", got)
	}

	m.SetOverviewActive(false, settled)
	settled2 := settled.Add(10 * time.Second)
	if got := m.OverviewProgress(settled2); !approxEqual(got, 0) {
		t.Fatalf("overview progress = %v, want 0 once settled back", got)
	}
}

func TestHitTestThroughOverviewIsIdentityWhenInactive(t *testing.T) {
	m := newTestMonitor(t)
	now := time.Now()
	x, y := m.HitTestThroughOverview(400, 300, now)
	if !approxEqual(x, 400) || !approxEqual(y, 300) {
		t.Fatalf("hit test = (%v, %v), want passthrough (400, 300) at zoom 1", x, y)
	}
}

func TestHitTestThroughOverviewScalesWhenZoomedOut(t *testing.T) {
	m := newTestMonitor(t)
	now := time.Now()
	m.SetOverviewActive(true, now)
	settled := now.Add(10 * time.Second)

	cx, cy := m.Canvas.ViewSize.W/2, m.Canvas.ViewSize.H/2
	x, _ := m.HitTestThroughOverview(cx+100, cy, settled)
	if approxEqual(x, cx+100) {
		t.Fatal("expected the zoomed-out hit test to map away from a naive passthrough")
	}
	if x <= cx {
		t.Fatalf("x = %v, expected it to land on the same side of center as the input", x)
	}
}

func TestMonitorHitTestFindsTiledWindow(t *testing.T) {
	m := newTestMonitor(t)
	now := time.Now()
	w := NewSimpleWindow(1, Size{W: 800, H: 600})
	m.Canvas.AddWindow(NewTile(w, Size{W: 800, H: 600}), true, false, ProportionWidth(0.5), false, now)

	hit, ok := m.HitTest(500, 500, now)
	if !ok {
		t.Fatal("expected a hit in the middle of the only tile")
	}
	if hit.WindowID != 1 || hit.Floating {
		t.Fatalf("hit = %+v, want tiled window 1", hit)
	}
	if hit.ActivateOnly {
		t.Fatal("hits must not be downgraded while the overview is inactive")
	}
}

func TestMonitorHitTestFloatingLayerWinsOverTiled(t *testing.T) {
	m := newTestMonitor(t)
	now := time.Now()
	tiled := NewSimpleWindow(1, Size{W: 800, H: 600})
	m.Canvas.AddWindow(NewTile(tiled, Size{W: 800, H: 600}), true, false, ProportionWidth(0.5), false, now)

	floating := NewTile(NewSimpleWindow(2, Size{W: 300, H: 300}), Size{W: 300, H: 300})
	m.Canvas.AddWindow(floating, true, true, ColumnWidth{}, false, now)
	m.Canvas.Floating.MoveTile(2, Point{X: 400, Y: 400})

	hit, ok := m.HitTest(500, 500, now)
	if !ok {
		t.Fatal("expected a hit")
	}
	if hit.WindowID != 2 || !hit.Floating {
		t.Fatalf("hit = %+v, want floating window 2 (renders on top)", hit)
	}
}

func TestMonitorHitTestDowngradesToActivateDuringOverview(t *testing.T) {
	m := newTestMonitor(t)
	now := time.Now()
	w := NewSimpleWindow(1, Size{W: 800, H: 600})
	m.Canvas.AddWindow(NewTile(w, Size{W: 800, H: 600}), true, false, ProportionWidth(0.5), false, now)

	m.SetOverviewActive(true, now)
	settled := now.Add(10 * time.Second)

	cx, cy := m.Canvas.ViewSize.W/2, m.Canvas.ViewSize.H/2
	hit, ok := m.HitTest(cx-200, cy-200, settled)
	if !ok {
		t.Fatal("expected a hit through the overview zoom")
	}
	if !hit.ActivateOnly {
		t.Fatal("hits during overview must be downgraded to Activate")
	}
	if hit.Edges != (ResizeEdges{}) {
		t.Fatalf("edges during overview = %+v, want none", hit.Edges)
	}
}

func TestInsertHintVisibility(t *testing.T) {
	m := newTestMonitor(t)
	m.SetInsertHint(Rect{X: 10, Y: 20, W: 30, H: 40}, 4)
	if !m.InsertHint.Visible {
		t.Fatal("expected insert hint to be visible after SetInsertHint")
	}
	m.ClearInsertHint()
	if m.InsertHint.Visible {
		t.Fatal("expected insert hint to be hidden after ClearInsertHint")
	}
}
