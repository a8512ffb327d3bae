package tenon

import "time"

// MoveAnimation is a column's in-flight horizontal slide, used when a
// sibling is inserted/removed/reordered ahead of it within the row.
type MoveAnimation struct {
	Anim *Animation
}

// Column owns a non-empty ordered sequence of tiles (with a parallel
// TileData slice kept in lockstep, for cheap scans over per-tile
// summaries) plus the width/height/display-mode policy that governs
// how those tiles are sized and shown.
type Column struct {
	tiles []*Tile
	data  []TileData

	activeTileIdx int

	Width               ColumnWidth
	PresetWidthIdx      *int
	IsFullWidth         bool
	IsPendingMaximized  bool
	IsPendingFullscreen bool

	DisplayMode      DisplayMode
	tabIndicatorAnim *Animation

	move *MoveAnimation

	workingArea Size
	scale       float64
	config      *Config
}

// NewColumnWithTile constructs a Column containing exactly one tile,
// resolving its initial width and display mode from the window's rules
// and pending sizing mode.
func NewColumnWithTile(t *Tile, cfg *Config, workingArea Size, scale float64, width ColumnWidth, now time.Time) *Column {
	c := &Column{
		tiles:       []*Tile{t},
		data:        []TileData{{Height: AutoHeight1(), Size: t.Size}},
		Width:       width,
		DisplayMode: t.Window.Rules().DefaultColumnDisplay,
		workingArea: workingArea,
		scale:       scale,
		config:      cfg,
	}
	if c.DisplayMode == DisplayTabbed {
		c.tabIndicatorAnim = NewAnimation(0, 1, cfg.EasingFor(AnimTabIndicatorOpen), now)
	}
	switch t.Window.PendingSizingMode() {
	case Maximized:
		c.IsPendingMaximized = true
	case Fullscreen:
		c.IsPendingFullscreen = true
	}
	c.updateTileSizes(false, now)
	return c
}

// ActiveTileIdx returns the index of the active tile.
func (c *Column) ActiveTileIdx() int { return c.activeTileIdx }

// Tiles returns the column's tiles in storage order (not render order).
func (c *Column) Tiles() []*Tile { return c.tiles }

// Len returns the number of tiles in the column.
func (c *Column) Len() int { return len(c.tiles) }

// extraSize returns the space the tab indicator reserves, nonzero only
// in Tabbed display mode.
func (c *Column) extraSize() Size {
	if c.DisplayMode != DisplayTabbed {
		return Size{}
	}
	return Size{W: c.config.Layout.TabIndicatorWidth}
}

// SetActiveTileIdx sets the active tile, clamped to a valid index. It
// does not itself animate anything; callers that change focus visually
// call the relevant Animate* helpers.
func (c *Column) SetActiveTileIdx(idx int) {
	if idx < 0 {
		idx = 0
	}
	if idx >= len(c.tiles) {
		idx = len(c.tiles) - 1
	}
	c.activeTileIdx = idx
}

// AddTile inserts t at idx (appending if idx < 0 or idx > len), with a
// matching TileData entry, preserving the tiles/data lockstep invariant.
func (c *Column) AddTile(idx int, t *Tile, now time.Time) {
	if idx < 0 || idx > len(c.tiles) {
		idx = len(c.tiles)
	}
	c.tiles = append(c.tiles, nil)
	copy(c.tiles[idx+1:], c.tiles[idx:])
	c.tiles[idx] = t

	c.data = append(c.data, TileData{})
	copy(c.data[idx+1:], c.data[idx:])
	c.data[idx] = TileData{Height: AutoHeight1(), Size: t.Size}

	if c.activeTileIdx >= idx {
		c.activeTileIdx++
	}
	c.updateTileSizes(true, now)
}

// RemoveTile removes the tile at idx, shifting later tiles down and
// clamping the active index. Returns the removed tile. Removing the
// last tile leaves the column empty; the Row then removes the empty
// column itself (see Row.CloseWindow).
func (c *Column) RemoveTile(idx int, now time.Time) *Tile {
	removed := c.tiles[idx]

	copy(c.tiles[idx:], c.tiles[idx+1:])
	c.tiles[len(c.tiles)-1] = nil
	c.tiles = c.tiles[:len(c.tiles)-1]

	copy(c.data[idx:], c.data[idx+1:])
	c.data = c.data[:len(c.data)-1]

	if len(c.tiles) > 0 && c.activeTileIdx >= len(c.tiles) {
		c.activeTileIdx = len(c.tiles) - 1
	}
	if len(c.tiles) > 0 {
		c.updateTileSizes(true, now)
	}
	return removed
}

// updateTileSizes recomputes every tile's size from the current width
// policy and height distribution, applying the result to each tile
// (animating the resize when requested). In Tabbed mode every tile is
// given the full content height; the non-active tiles are hidden by
// their alpha (see SetDisplayMode).
func (c *Column) updateTileSizes(animate bool, now time.Time) {
	if len(c.tiles) == 0 {
		return
	}
	width := roundPhysical(c.resolveColumnWidth(c.effectiveWidth()), c.scale)

	if c.DisplayMode == DisplayTabbed {
		heights := make([]float64, len(c.tiles))
		for i := range heights {
			heights[i] = c.workingArea.H - c.config.Layout.Gaps*2
		}
		c.applySizes(width, heights, animate, now)
		return
	}

	heights := c.distributeHeights(c.scale)
	c.applySizes(width, heights, animate, now)
}

func (c *Column) applySizes(width float64, heights []float64, animate bool, now time.Time) {
	cfg := c.config.EasingFor(AnimWindowResize)
	for i, t := range c.tiles {
		newSize := Size{W: width, H: heights[i]}
		oldSize := t.Size
		c.data[i].Size = newSize
		t.Size = newSize
		t.Window.RequestResize(newSize)
		if animate && (oldSize.W != newSize.W || oldSize.H != newSize.H) {
			t.StartResizeAnimation(cfg, now)
		}
	}
}

// tileOffsetsInRenderOrder returns the storage indices of the column's
// tiles in render order (active first, then the rest in index order).
// A tile's Y offset comes from TileYOffset.
func (c *Column) tileOffsetsInRenderOrder() []int {
	order := make([]int, 0, len(c.tiles))
	order = append(order, c.activeTileIdx)
	for i := range c.tiles {
		if i != c.activeTileIdx {
			order = append(order, i)
		}
	}
	return order
}

// TileYOffset returns the Y offset of the tile at idx within the
// column, summing preceding tiles' heights and gaps. In Tabbed mode
// every tile sits at the same offset (only the active one is visible).
func (c *Column) TileYOffset(idx int) float64 {
	if c.DisplayMode == DisplayTabbed {
		return c.config.Layout.Gaps
	}
	y := c.config.Layout.Gaps
	for i := 0; i < idx; i++ {
		y += c.data[i].Size.H + c.config.Layout.Gaps
	}
	return y
}

// ResolvedWidth returns the column's current resolved pixel width.
func (c *Column) ResolvedWidth() float64 {
	return roundPhysical(c.resolveColumnWidth(c.effectiveWidth()), c.scale)
}

// AnimateMoveFrom adds delta to the column's current horizontal render
// offset and animates it back to zero, sliding the whole column (rather
// than each tile individually) when a sibling is inserted, removed, or
// reordered ahead of it.
func (c *Column) AnimateMoveFrom(delta float64, cfg EasingConfig, now time.Time) {
	cur := c.renderOffsetX(now)
	c.move = &MoveAnimation{Anim: NewAnimation(cur+delta, 0, cfg, now)}
}

// renderOffsetX returns the column's current horizontal render offset
// from its in-flight move animation.
func (c *Column) renderOffsetX(now time.Time) float64 {
	if c.move == nil {
		return 0
	}
	return c.move.Anim.Value(now)
}

// AdvanceAnimations advances every tile's animation plus the column's
// own move animation, dropping it once settled.
func (c *Column) AdvanceAnimations(now time.Time) {
	for _, t := range c.tiles {
		t.AdvanceAnimations(now)
	}
	if c.move != nil && c.move.Anim.Finished(now) {
		c.move = nil
	}
}

// AreAnimationsOngoing reports whether any tile or the tab indicator is
// still animating.
func (c *Column) AreAnimationsOngoing(now time.Time) bool {
	for _, t := range c.tiles {
		if t.AreAnimationsOngoing(now) {
			return true
		}
	}
	if c.tabIndicatorAnim != nil && !c.tabIndicatorAnim.Finished(now) {
		return true
	}
	if c.move != nil && c.move.Anim != nil && !c.move.Anim.Finished(now) {
		return true
	}
	return false
}

// AreTransitionsOngoing reports whether a Normal<->Tabbed display-mode
// transition is still animating (alpha still settling on any tile).
func (c *Column) AreTransitionsOngoing(now time.Time) bool {
	for _, t := range c.tiles {
		if t.alphaAnim != nil && !t.alphaAnim.Finished(now) {
			return true
		}
	}
	return false
}

// SetDisplayMode switches between Normal and Tabbed, sliding each
// non-active tile from its pre-transition position and fading alpha
// 0<->1, and (re)starting the tab indicator's open animation when
// entering Tabbed.
func (c *Column) SetDisplayMode(mode DisplayMode, now time.Time) {
	if mode == c.DisplayMode {
		return
	}
	cfg := c.config.EasingFor(AnimWindowMovement)
	oldYs := make([]float64, len(c.tiles))
	for i := range c.tiles {
		oldYs[i] = c.TileYOffset(i)
	}
	c.DisplayMode = mode
	if mode == DisplayTabbed {
		c.tabIndicatorAnim = NewAnimation(0, 1, c.config.EasingFor(AnimTabIndicatorOpen), now)
	}
	c.updateTileSizes(false, now)
	for i, t := range c.tiles {
		newY := c.TileYOffset(i)
		if i != c.activeTileIdx {
			t.AnimateMoveYFrom(oldYs[i]-newY, cfg, now)
			if mode == DisplayTabbed {
				t.AnimateAlpha(1, 0, cfg, now)
			} else {
				t.AnimateAlpha(0, 1, cfg, now)
			}
		}
	}
}

// UpdateConfig re-resolves tile sizes and clears the width preset index
// after a config change, only when the gaps or the tab indicator width
// actually changed, so an unrelated config reload does not restart
// every animation. Tile heights are not converted to auto.
func (c *Column) UpdateConfig(cfg *Config, now time.Time) {
	changed := c.config == nil || c.config.Layout.Gaps != cfg.Layout.Gaps ||
		c.config.Layout.TabIndicatorWidth != cfg.Layout.TabIndicatorWidth
	c.config = cfg
	if changed {
		c.PresetWidthIdx = nil
		c.updateTileSizes(true, now)
	}
}

// VerifyInvariants is test-only: panics on any violation of the
// column's structural invariants.
func (c *Column) VerifyInvariants() {
	if len(c.tiles) == 0 {
		panic("tenon: column has no tiles")
	}
	if c.activeTileIdx >= len(c.tiles) {
		panic("tenon: column active_tile_idx out of range")
	}
	if len(c.data) != len(c.tiles) {
		panic("tenon: column data/tiles length mismatch")
	}
	fixedCount := 0
	for _, d := range c.data {
		if d.Height.Kind == HeightFixed {
			fixedCount++
		}
	}
	if fixedCount > 1 {
		panic("tenon: column has more than one Fixed height tile")
	}
	if len(c.tiles) == 1 && c.data[0].Height.Kind == HeightAuto && c.data[0].Height.Weight != 1 {
		panic("tenon: single-tile column Auto weight must be 1")
	}
	if c.IsPendingMaximized || c.IsPendingFullscreen {
		if len(c.tiles) != 1 && c.DisplayMode != DisplayTabbed {
			panic("tenon: non-normal sizing mode requires a single tile or tabbed display")
		}
	}
}
