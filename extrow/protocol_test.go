package extrow

import (
	"testing"
	"time"

	"github.com/tenonwm/tenon"
)

func newTestLayout(t *testing.T) (*tenon.Layout, *tenon.Monitor) {
	t.Helper()
	cfg := tenon.DefaultConfig()
	lay := tenon.NewLayout(cfg)
	mon := lay.AddMonitor("eDP-1", tenon.Size{W: 1920, H: 1080})
	return lay, mon
}

func addWindow(mon *tenon.Monitor, id tenon.WindowID, now time.Time) {
	w := tenon.NewSimpleWindow(id, tenon.Size{W: 800, H: 600})
	tile := tenon.NewTile(w, tenon.Size{W: 800, H: 600})
	mon.Canvas.AddWindow(tile, true, false, tenon.ProportionWidth(0.5), false, now)
}

func TestFocusRowByID(t *testing.T) {
	now := time.Now()
	lay, mon := newTestLayout(t)
	addWindow(mon, 1, now)

	mon.Canvas.EnsureRow(1)
	rowID, ok := mon.Canvas.RowID(1)
	if !ok {
		t.Fatal("expected row 1 to be materialized")
	}

	m := NewManager(lay)
	if err := m.FocusRow(rowID, now); err != nil {
		t.Fatalf("FocusRow: %v", err)
	}
	if mon.Canvas.ActiveRowIdx() != 1 {
		t.Fatalf("expected active row 1, got %d", mon.Canvas.ActiveRowIdx())
	}
}

func TestFocusRowUnknownIDIsProtocolError(t *testing.T) {
	lay, _ := newTestLayout(t)
	m := NewManager(lay)
	err := m.FocusRow(tenon.RowID(99999), time.Now())
	if err == nil {
		t.Fatal("expected an error")
	}
	var perr *ProtocolError
	if pe, ok := err.(*ProtocolError); ok {
		perr = pe
	}
	if perr == nil {
		t.Fatalf("expected *ProtocolError, got %T", err)
	}
}

func TestSetRowNameDuplicateRejected(t *testing.T) {
	now := time.Now()
	lay, mon := newTestLayout(t)
	addWindow(mon, 1, now)
	mon.Canvas.EnsureRow(1)

	row0ID, _ := mon.Canvas.RowID(0)
	row1ID, _ := mon.Canvas.RowID(1)

	m := NewManager(lay)
	if err := m.SetRowName(row0ID, "work"); err != nil {
		t.Fatalf("SetRowName: %v", err)
	}
	if err := m.SetRowName(row1ID, "WORK"); err == nil {
		t.Fatal("expected duplicate row name rejection (case-insensitive)")
	}
}

func TestCameraBookmarkRoundTrip(t *testing.T) {
	now := time.Now()
	lay, mon := newTestLayout(t)
	addWindow(mon, 1, now)

	m := NewManager(lay)
	if err := m.SetCamera(mon.Output, 42, 7, 1.5, now); err != nil {
		t.Fatalf("SetCamera: %v", err)
	}
	id, err := m.CreateBookmark(mon.Output, "spot", now)
	if err != nil {
		t.Fatalf("CreateBookmark: %v", err)
	}

	if err := m.SetCamera(mon.Output, 0, 0, 1, now); err != nil {
		t.Fatalf("SetCamera: %v", err)
	}
	if err := m.GotoBookmark(mon.Output, id, now); err != nil {
		t.Fatalf("GotoBookmark: %v", err)
	}

	snap := m.GroupSnapshot(mon, now)
	if snap.Camera.X != 42 || snap.Camera.Y != 7 || snap.Camera.Zoom != 1.5 {
		t.Fatalf("camera not restored from bookmark: %+v", snap.Camera)
	}

	if err := m.RemoveBookmark(id); err != nil {
		t.Fatalf("RemoveBookmark: %v", err)
	}
	if err := m.RemoveBookmark(id); err == nil {
		t.Fatal("expected error removing an already-removed bookmark")
	}
}

func TestRowSnapshotsReportActiveAndWindowCount(t *testing.T) {
	now := time.Now()
	_, mon := newTestLayout(t)
	addWindow(mon, 1, now)
	addWindow(mon, 2, now)

	snaps := RowSnapshots(mon.Canvas)
	if len(snaps) != 1 {
		t.Fatalf("expected 1 materialized row, got %d", len(snaps))
	}
	if snaps[0].WindowCount != 2 {
		t.Fatalf("expected 2 windows, got %d", snaps[0].WindowCount)
	}
	if snaps[0].State&RowStateActive == 0 {
		t.Fatal("expected row 0 to be marked active")
	}
	if snaps[0].ActiveWindow == nil || *snaps[0].ActiveWindow != 2 {
		t.Fatalf("expected active window 2, got %+v", snaps[0].ActiveWindow)
	}
}

func TestFocusRowUpDown(t *testing.T) {
	now := time.Now()
	lay, mon := newTestLayout(t)
	addWindow(mon, 1, now)
	mon.Canvas.EnsureRow(1)

	m := NewManager(lay)
	if err := m.FocusRowDown(now); err != nil {
		t.Fatalf("FocusRowDown: %v", err)
	}
	if mon.Canvas.ActiveRowIdx() != 1 {
		t.Fatalf("expected active row 1, got %d", mon.Canvas.ActiveRowIdx())
	}
	if err := m.FocusRowUp(now); err != nil {
		t.Fatalf("FocusRowUp: %v", err)
	}
	if mon.Canvas.ActiveRowIdx() != 0 {
		t.Fatalf("expected active row 0, got %d", mon.Canvas.ActiveRowIdx())
	}
}
