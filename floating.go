package tenon

import "time"

// floatingTile pairs a tile with its absolute position inside the
// working area, since floating tiles (unlike tiled ones) carry their
// own position rather than deriving it from a column/row layout.
type floatingTile struct {
	tile *Tile
	pos  Point
	// rememberedWidth/rememberedFullWidth are restored if this tile is
	// later moved back into a row via ToggleFloatingWindow.
	rememberedWidth     ColumnWidth
	rememberedFullWidth bool
}

// FloatingSpace is a sibling of Row within a Canvas: a set of
// free-floating tiles positioned absolutely within the working area,
// with independent focus.
type FloatingSpace struct {
	tiles       []*floatingTile
	activeIdx   int
	workingArea Size
	scale       float64
	config      *Config
}

// NewFloatingSpace returns an empty floating space.
func NewFloatingSpace(cfg *Config, workingArea Size, scale float64) *FloatingSpace {
	return &FloatingSpace{config: cfg, workingArea: workingArea, scale: scale}
}

// IsEmpty reports whether the floating space holds no tiles.
func (f *FloatingSpace) IsEmpty() bool { return len(f.tiles) == 0 }

// AddTile adds t at pos, remembering its row-layer width so a later
// ToggleFloatingWindow (tiled -> floating -> tiled) restores it.
func (f *FloatingSpace) AddTile(t *Tile, pos Point, rememberedWidth ColumnWidth, rememberedFullWidth bool, activate bool) {
	f.tiles = append(f.tiles, &floatingTile{tile: t, pos: pos, rememberedWidth: rememberedWidth, rememberedFullWidth: rememberedFullWidth})
	if activate {
		f.activeIdx = len(f.tiles) - 1
	}
}

// RemoveWindow removes and returns the tile with the given id, if
// present.
func (f *FloatingSpace) RemoveWindow(id WindowID) (*Tile, bool) {
	for i, ft := range f.tiles {
		if ft.tile.Window.ID() == id {
			f.tiles = append(f.tiles[:i], f.tiles[i+1:]...)
			if f.activeIdx >= len(f.tiles) && f.activeIdx > 0 {
				f.activeIdx = len(f.tiles) - 1
			}
			return ft.tile, true
		}
	}
	return nil, false
}

// ContainsWindow reports whether id belongs to a floating tile.
func (f *FloatingSpace) ContainsWindow(id WindowID) bool {
	for _, ft := range f.tiles {
		if ft.tile.Window.ID() == id {
			return true
		}
	}
	return false
}

// ActiveTile returns the active floating tile and its remembered
// row-layer width, or nil if the space is empty.
func (f *FloatingSpace) ActiveTile() (*Tile, ColumnWidth, bool, Point) {
	if len(f.tiles) == 0 {
		return nil, ColumnWidth{}, false, Point{}
	}
	ft := f.tiles[f.activeIdx]
	return ft.tile, ft.rememberedWidth, ft.rememberedFullWidth, ft.pos
}

// Tiles returns the floating tiles in insertion order.
func (f *FloatingSpace) Tiles() []*Tile {
	out := make([]*Tile, len(f.tiles))
	for i, ft := range f.tiles {
		out[i] = ft.tile
	}
	return out
}

// TilePosition returns the absolute position of the tile with the given
// id, if present.
func (f *FloatingSpace) TilePosition(id WindowID) (Point, bool) {
	for _, ft := range f.tiles {
		if ft.tile.Window.ID() == id {
			return ft.pos, true
		}
	}
	return Point{}, false
}

// MoveTile repositions the floating tile with the given id.
func (f *FloatingSpace) MoveTile(id WindowID, pos Point) {
	for _, ft := range f.tiles {
		if ft.tile.Window.ID() == id {
			ft.pos = pos
			return
		}
	}
}

// AdvanceAnimations advances every floating tile's animations and drops
// tiles whose close animation has finished.
func (f *FloatingSpace) AdvanceAnimations(now time.Time) {
	kept := f.tiles[:0]
	newActive := f.activeIdx
	for i, ft := range f.tiles {
		ft.tile.AdvanceAnimations(now)
		if ft.tile.Lifecycle() == TileDestroyed {
			if i <= f.activeIdx && newActive > 0 {
				newActive--
			}
			continue
		}
		kept = append(kept, ft)
	}
	for i := len(kept); i < len(f.tiles); i++ {
		f.tiles[i] = nil
	}
	f.tiles = kept
	if newActive >= len(kept) {
		newActive = 0
	}
	f.activeIdx = newActive
}

// AreAnimationsOngoing reports whether any floating tile is still
// animating.
func (f *FloatingSpace) AreAnimationsOngoing(now time.Time) bool {
	for _, ft := range f.tiles {
		if ft.tile.AreAnimationsOngoing(now) {
			return true
		}
	}
	return false
}
