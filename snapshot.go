package tenon

import "time"

// TileSnapshot is a test-only geometric capture of one tile: its
// window id, absolute position, size, and alpha at the instant the
// snapshot was taken. Tests use it to assert layout geometry without
// depending on RenderElement ordering.
type TileSnapshot struct {
	WindowID WindowID
	Pos      Point
	Size     Size
	Alpha    float64
}

// Snapshot captures the geometry of every tile on the monitor (tiled and
// floating) at now.
func (m *Monitor) Snapshot(now time.Time) []TileSnapshot {
	var out []TileSnapshot
	cameraY := m.Canvas.CameraY.Current(now)
	for _, e := range m.Canvas.rows {
		viewOffsetX := e.row.ViewOffsetX.Current(now)
		for ci, col := range e.row.columns {
			colX := e.row.columnX(ci) + col.renderOffsetX(now)
			for idx, t := range col.tiles {
				tileY := col.TileYOffset(idx)
				pos := Point{X: viewOffsetX + colX, Y: e.row.YOffset - cameraY + tileY}
				offset := t.RenderOffset(now, Point{})
				out = append(out, TileSnapshot{
					WindowID: t.Window.ID(),
					Pos:      Point{X: pos.X + offset.X, Y: pos.Y + offset.Y},
					Size:     t.Size,
					Alpha:    t.Alpha(now),
				})
			}
		}
	}
	for _, t := range m.Canvas.Floating.Tiles() {
		pos, _ := m.Canvas.Floating.TilePosition(t.Window.ID())
		offset := t.RenderOffset(now, Point{})
		out = append(out, TileSnapshot{
			WindowID: t.Window.ID(),
			Pos:      Point{X: pos.X + offset.X, Y: pos.Y + offset.Y},
			Size:     t.Size,
			Alpha:    t.Alpha(now),
		})
	}
	return out
}

// FindByWindow returns the snapshot entry for id, if present.
func FindByWindow(snaps []TileSnapshot, id WindowID) (TileSnapshot, bool) {
	for _, s := range snaps {
		if s.WindowID == id {
			return s, true
		}
	}
	return TileSnapshot{}, false
}
