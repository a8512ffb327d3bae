package tenon

import "time"

// ElementKind names what an opaque render element represents, purely
// for the renderer's own dispatch (e.g. choosing a shader); the layout
// engine does not interpret it further.
type ElementKind int

const (
	ElementWindow ElementKind = iota
	ElementTabIndicator
	ElementInsertHint
	ElementCursor
	ElementSolidColor
)

// RenderElement is one opaque composited element: a texture-or-solid
// source (identified only by the WindowID or a sentinel for
// non-window elements), a destination rectangle in logical
// coordinates, a scale, and optional opacity/corner-radius. The
// renderer consumes these in emission order; the engine never touches
// a texture itself.
type RenderElement struct {
	Kind         ElementKind
	WindowID     WindowID
	Dest         Rect
	Scale        float64
	Opacity      float64
	CornerRadius float64
}

// RenderElements returns the monitor's per-frame ordered render-element
// list, front to back: insert hint, floating closing windows, floating
// tiles, active row closing windows, then the active row's columns in
// index order (each Tabbed column's tab indicator followed by its tiles
// in render order), then the remaining rows. Cursor and overlay
// elements are prepended by the caller, which owns that state; this
// method only emits what the Canvas/Monitor know about.
func (m *Monitor) RenderElements(now time.Time) []RenderElement {
	var out []RenderElement

	if m.InsertHint.Visible {
		out = append(out, RenderElement{Kind: ElementInsertHint, Dest: m.InsertHint.Rect, CornerRadius: m.InsertHint.CornerRadius, Opacity: 1})
	}

	out = append(out, m.Canvas.floatingElements(now, m.scale)...)

	cameraY := m.Canvas.CameraY.Current(now)
	activeIdx := m.Canvas.activeRowIdx
	if e, ok := m.Canvas.rows[activeIdx]; ok {
		out = append(out, e.row.elements(now, m.scale, cameraY)...)
	}

	for i, e := range m.Canvas.rows {
		if i == activeIdx {
			continue
		}
		out = append(out, e.row.elements(now, m.scale, cameraY)...)
	}

	return out
}

// floatingElements emits the floating layer's elements front to back:
// closing floating tiles first, then ordinary floating tiles, so a
// window fading out stays visible above its siblings.
func (c *Canvas) floatingElements(now time.Time, scale float64) []RenderElement {
	var normal, closing []RenderElement
	for _, t := range c.Floating.Tiles() {
		pos, _ := c.Floating.TilePosition(t.Window.ID())
		el := tileElement(t, now, scale, pos)
		if t.Lifecycle() == TileClosing {
			closing = append(closing, el)
		} else {
			normal = append(normal, el)
		}
	}
	return append(closing, normal...)
}

// elements emits a row's render elements: closing windows, then for
// each column in index order its tab indicator (if Tabbed) followed by
// its tiles in render order.
func (r *Row) elements(now time.Time, scale float64, cameraY float64) []RenderElement {
	var out []RenderElement
	viewOffsetX := r.ViewOffsetX.Current(now)

	for _, t := range r.closingWindows {
		out = append(out, tileElement(t, now, scale, Point{X: viewOffsetX, Y: r.YOffset - cameraY}))
	}

	for ci, col := range r.columns {
		colX := r.columnX(ci) + col.renderOffsetX(now)
		if col.DisplayMode == DisplayTabbed {
			indicatorRect := Rect{X: viewOffsetX + colX, Y: r.YOffset - cameraY, W: col.config.Layout.TabIndicatorWidth, H: col.workingArea.H}
			out = append(out, RenderElement{Kind: ElementTabIndicator, Dest: indicatorRect, Scale: scale, Opacity: 1})
		}
		for _, idx := range col.tileOffsetsInRenderOrder() {
			t := col.tiles[idx]
			tileY := col.TileYOffset(idx)
			pos := Point{X: viewOffsetX + colX, Y: r.YOffset - cameraY + tileY}
			out = append(out, tileElement(t, now, scale, pos))
		}
	}
	return out
}

func tileElement(t *Tile, now time.Time, scale float64, basePos Point) RenderElement {
	offset := t.RenderOffset(now, Point{})
	x := roundPhysical(basePos.X+offset.X, scale)
	y := roundPhysical(basePos.Y+offset.Y, scale)
	return RenderElement{
		Kind:     ElementWindow,
		WindowID: t.Window.ID(),
		Dest:     Rect{X: x, Y: y, W: t.Size.W, H: t.Size.H},
		Scale:    scale,
		Opacity:  t.Alpha(now),
	}
}
