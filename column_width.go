package tenon

import "time"

// ColumnWidth is a column's desired width policy: a proportion of the
// working area, or a fixed pixel size.
type ColumnWidth struct {
	IsProportion bool
	Proportion   float64
	Fixed        float64
}

// ProportionWidth returns a proportion-kind ColumnWidth.
func ProportionWidth(p float64) ColumnWidth { return ColumnWidth{IsProportion: true, Proportion: p} }

// FixedWidth returns a fixed-pixel-kind ColumnWidth.
func FixedWidth(px float64) ColumnWidth { return ColumnWidth{Fixed: px} }

// SizeChangeKind names the operation set_column_width / set_window_height accept.
type SizeChangeKind int

const (
	SetFixed SizeChangeKind = iota
	SetProportion
	AdjustFixed
	AdjustProportion
)

// SizeChange is a requested width or height adjustment.
type SizeChange struct {
	Kind  SizeChangeKind
	Value float64
}

const (
	maxWidthPx         = 100000.0
	maxWidthProportion = 10000.0
)

// resolvePresetWidth resolves a configured preset against the column's
// working-area width, returning a pixel width. Proportion presets
// resolve against (working_w - gaps); fixed presets are already pixels.
func (c *Column) resolvePresetWidth(p PresetSize) float64 {
	if p.IsProportion {
		return (c.workingArea.W-c.config.Layout.Gaps)*p.Proportion - c.config.Layout.Gaps - c.extraSize().W
	}
	return p.Fixed
}

// resolveColumnWidth resolves a ColumnWidth policy to a concrete pixel
// tile width.
func (c *Column) resolveColumnWidth(w ColumnWidth) float64 {
	if w.IsProportion {
		return (c.workingArea.W-c.config.Layout.Gaps)*w.Proportion - c.config.Layout.Gaps - c.extraSize().W
	}
	return w.Fixed
}

// effectiveWidth is the width policy chain: maximized or full-width
// columns always resolve to the full working area.
func (c *Column) effectiveWidth() ColumnWidth {
	if c.IsPendingMaximized || c.IsFullWidth {
		return ProportionWidth(1.0)
	}
	return c.Width
}

// SetColumnWidth applies change to the column's width policy, clears
// the preset/full-width/maximized overrides (an explicit width request
// always wins over them), and re-lays-out tiles. tileIdx is not read:
// SetFixed/AdjustFixed act on the column's resolved width.
func (c *Column) SetColumnWidth(change SizeChange, tileIdx int, animate bool, now time.Time) {
	current := c.effectiveWidth()
	currentPx := c.resolveColumnWidth(current)

	var width ColumnWidth
	switch change.Kind {
	case SetFixed:
		width = FixedWidth(clamp(change.Value, 1, maxWidthPx))
	case SetProportion:
		width = ProportionWidth(clamp(change.Value/100, 0, maxWidthProportion))
	case AdjustFixed:
		width = FixedWidth(clamp(currentPx+change.Value, 1, maxWidthPx))
	case AdjustProportion:
		if current.IsProportion {
			width = ProportionWidth(clamp(current.Proportion+change.Value/100, 0, maxWidthProportion))
		} else {
			full := c.workingArea.W - c.config.Layout.Gaps
			var implied float64
			if full == 0 {
				implied = 1
			} else {
				implied = (currentPx + c.config.Layout.Gaps + c.extraSize().W) / full
			}
			width = ProportionWidth(clamp(implied+change.Value/100, 0, maxWidthProportion))
		}
	}

	c.Width = width
	c.PresetWidthIdx = nil
	c.IsFullWidth = false
	c.IsPendingMaximized = false
	c.updateTileSizes(animate, now)
}

// ToggleWidth cycles the column width forwards or backwards through the
// configured preset list. If no preset is currently selected, it picks
// the first preset strictly wider (forwards) or narrower (backwards)
// than the tile at tileIdx's current width, wrapping modulo the preset
// count.
func (c *Column) ToggleWidth(tileIdx int, forwards bool, now time.Time) {
	presets := c.config.Layout.PresetColumnWidths
	if len(presets) == 0 {
		return
	}

	var presetIdx int
	haveIdx := false
	if !c.IsFullWidth && !c.IsPendingMaximized && c.PresetWidthIdx != nil {
		presetIdx = *c.PresetWidthIdx
		haveIdx = true
	}

	if haveIdx {
		if forwards {
			presetIdx = (presetIdx + 1) % len(presets)
		} else {
			presetIdx = (presetIdx + len(presets) - 1) % len(presets)
		}
	} else {
		currentTile := c.data[tileIdx].Size.W
		found := -1
		if forwards {
			for i, p := range presets {
				if c.resolvePresetWidth(p) > currentTile+1 {
					found = i
					break
				}
			}
			if found == -1 {
				found = 0
			}
		} else {
			for i := len(presets) - 1; i >= 0; i-- {
				if c.resolvePresetWidth(presets[i])+1 < currentTile {
					found = i
					break
				}
			}
			if found == -1 {
				found = len(presets) - 1
			}
		}
		presetIdx = found
	}

	preset := presets[presetIdx]
	var change SizeChange
	if preset.IsProportion {
		change = SizeChange{Kind: SetProportion, Value: preset.Proportion * 100}
	} else {
		change = SizeChange{Kind: SetFixed, Value: preset.Fixed}
	}
	c.SetColumnWidth(change, tileIdx, true, now)
	c.PresetWidthIdx = &presetIdx
}

// ToggleFullWidth toggles the full-bleed width override. A column
// pending maximized is demoted to non-maximized, non-full-width rather
// than toggling full-width on top of it.
func (c *Column) ToggleFullWidth(now time.Time) {
	if c.IsPendingMaximized {
		c.IsPendingMaximized = false
		c.IsFullWidth = false
	} else {
		c.IsFullWidth = !c.IsFullWidth
	}
	c.updateTileSizes(true, now)
}
