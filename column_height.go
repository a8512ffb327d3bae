package tenon

import (
	"sort"
	"time"
)

// HeightKind is the variant of a tile's configured height within a
// column.
type HeightKind int

const (
	HeightAuto HeightKind = iota
	HeightFixed
	HeightPreset
)

// WindowHeight is one tile's height policy within its column. At most
// one tile per column may be Fixed; if a column has exactly one tile
// and it is Auto, its weight must be 1 (enforced by callers, checked by
// VerifyInvariants).
type WindowHeight struct {
	Kind    HeightKind
	Weight  float64 // HeightAuto
	Fixed   float64 // HeightFixed, pixels
	Preset  int     // HeightPreset, index into config.Layout.PresetWindowHeights
}

// AutoHeight returns an Auto-kind WindowHeight with the given weight.
func AutoHeight(weight float64) WindowHeight { return WindowHeight{Kind: HeightAuto, Weight: weight} }

// AutoHeight1 is the default single-tile Auto weight.
func AutoHeight1() WindowHeight { return AutoHeight(1) }

// FixedHeight returns a Fixed-kind WindowHeight.
func FixedHeight(px float64) WindowHeight { return WindowHeight{Kind: HeightFixed, Fixed: px} }

// PresetHeight returns a Preset-kind WindowHeight.
func PresetHeight(idx int) WindowHeight { return WindowHeight{Kind: HeightPreset, Preset: idx} }

// TileData is the cached per-tile summary kept alongside a Column's
// tiles slice in lockstep (tiles[i] <-> data[i]).
type TileData struct {
	Height             WindowHeight
	Size               Size
	ResizingByLeftEdge bool
}

const maxHeightPx = 100000.0

// resolvePresetHeight resolves a configured preset against the
// column's working-area height.
func (c *Column) resolvePresetHeight(p PresetSize) float64 {
	if p.IsProportion {
		return (c.workingArea.H - c.config.Layout.Gaps) * p.Proportion
	}
	return p.Fixed
}

// SetWindowHeight applies change to one tile's height within the
// column, converting any Auto heights to explicit weights first so the
// visual proportions of the other tiles are preserved, then clips the
// result to the space actually available and to the window's min/max,
// and re-lays-out tiles.
func (c *Column) SetWindowHeight(change SizeChange, tileIdx int, animate bool, now time.Time) {
	if c.data[tileIdx].Height.Kind == HeightAuto {
		c.ConvertHeightsToAuto()
	}

	current := c.data[tileIdx].Height
	tile := c.tiles[tileIdx]
	var currentWindowPx float64
	if current.Kind == HeightFixed {
		currentWindowPx = current.Fixed
	} else {
		currentWindowPx = tile.Size.H
	}
	currentTilePx := currentWindowPx

	workingSize := c.workingArea.H
	gaps := c.config.Layout.Gaps
	extra := c.extraSize().H
	full := workingSize - gaps
	var currentProp float64
	if full == 0 {
		currentProp = 1
	} else {
		currentProp = (currentTilePx + gaps) / full
	}

	var windowHeight float64
	switch change.Kind {
	case SetFixed:
		windowHeight = change.Value
	case SetProportion:
		windowHeight = (workingSize-gaps)*(change.Value/100) - gaps - extra
	case AdjustFixed:
		windowHeight = currentWindowPx + change.Value
	case AdjustProportion:
		prop := currentProp + change.Value/100
		windowHeight = (workingSize-gaps)*prop - gaps - extra
	}

	var minHeightTaken float64
	if c.DisplayMode != DisplayTabbed {
		for i, t := range c.tiles {
			if i == tileIdx {
				continue
			}
			minH := t.Window.MinSize().H
			if minH < 1 {
				minH = 1
			}
			minHeightTaken += minH + gaps
		}
	}
	heightLeft := workingSize - extra - gaps - minHeightTaken - gaps
	if heightLeft < 1 {
		heightLeft = 1
	}
	if windowHeight > heightLeft {
		windowHeight = heightLeft
	}

	win := c.tiles[tileIdx].Window
	minH := win.MinSize().H
	maxH := win.MaxSize().H
	if maxH > 0 && windowHeight > maxH {
		windowHeight = maxH
	}
	if minH > 0 && windowHeight < minH {
		windowHeight = minH
	}

	c.data[tileIdx].Height = FixedHeight(clamp(windowHeight, 1, maxHeightPx))
	c.IsPendingMaximized = false
	c.updateTileSizes(animate, now)
}

// ResetWindowHeight resets one tile (or, in Tabbed mode, every tile) to
// Auto{weight: 1}.
func (c *Column) ResetWindowHeight(tileIdx int, now time.Time) {
	if c.DisplayMode == DisplayTabbed {
		for i := range c.data {
			c.data[i].Height = AutoHeight1()
		}
	} else {
		c.data[tileIdx].Height = AutoHeight1()
	}
	c.updateTileSizes(true, now)
}

// ToggleWindowHeight cycles one tile's height through the configured
// preset-window-heights list, the same wraparound policy as ToggleWidth.
func (c *Column) ToggleWindowHeight(tileIdx int, forwards bool, now time.Time) {
	if c.data[tileIdx].Height.Kind == HeightAuto {
		c.ConvertHeightsToAuto()
	}

	presets := c.config.Layout.PresetWindowHeights
	if len(presets) == 0 {
		return
	}

	var presetIdx int
	cur := c.data[tileIdx].Height
	if cur.Kind == HeightPreset && !c.IsPendingMaximized {
		if forwards {
			presetIdx = (cur.Preset + 1) % len(presets)
		} else {
			presetIdx = (cur.Preset + len(presets) - 1) % len(presets)
		}
	} else {
		currentTile := c.data[tileIdx].Size.H
		found := -1
		if forwards {
			for i, p := range presets {
				if clamp(c.resolvePresetHeight(p), 1, maxHeightPx) > currentTile+1 {
					found = i
					break
				}
			}
			if found == -1 {
				found = 0
			}
		} else {
			for i := len(presets) - 1; i >= 0; i-- {
				if clamp(c.resolvePresetHeight(presets[i]), 1, maxHeightPx)+1 < currentTile {
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

	c.data[tileIdx].Height = PresetHeight(presetIdx)
	c.IsPendingMaximized = false
	c.updateTileSizes(true, now)
}

// ConvertHeightsToAuto replaces every tile's height policy with an Auto
// weight derived from its current on-screen height relative to the
// median tile height, preserving the visual proportions before a new
// interactive adjustment begins.
func (c *Column) ConvertHeightsToAuto() {
	heights := make([]float64, len(c.tiles))
	for i, t := range c.tiles {
		heights[i] = t.Size.H
	}
	sorted := append([]float64(nil), heights...)
	sort.Float64s(sorted)
	median := sorted[len(sorted)/2]
	if median == 0 {
		median = 1
	}
	for i, h := range heights {
		c.data[i].Height = AutoHeight(h / median)
	}
}

// distributeHeights computes each tile's final pixel height for the
// column's Normal display mode: at most one Fixed tile is honored
// verbatim (clamped to its window's min/max), the rest split the
// remaining budget proportionally to their Auto weight (Preset tiles
// contribute a weight derived from their resolved preset size), then
// every result is clamped to [max(1,min), max] and rounded to physical
// pixels.
func (c *Column) distributeHeights(scale float64) []float64 {
	n := len(c.tiles)
	result := make([]float64, n)
	if n == 0 {
		return result
	}

	gaps := c.config.Layout.Gaps
	budget := c.workingArea.H - gaps*float64(n+1) - c.extraSize().H

	fixedIdx := -1
	for i, d := range c.data {
		if d.Height.Kind == HeightFixed {
			fixedIdx = i
			break
		}
	}

	weights := make([]float64, n)
	mins := make([]float64, n)
	totalWeight := 0.0
	flexBudget := budget
	for i, t := range c.tiles {
		minH := t.Window.MinSize().H
		if minH < 1 {
			minH = 1
		}
		mins[i] = minH
		if i == fixedIdx {
			fh := clamp(c.data[i].Height.Fixed, minH, maxOrInf(t.Window.MaxSize().H))
			result[i] = fh
			flexBudget -= fh
			continue
		}
		flexBudget -= minH
		switch c.data[i].Height.Kind {
		case HeightPreset:
			presets := c.config.Layout.PresetWindowHeights
			w := 1.0
			if c.data[i].Height.Preset < len(presets) {
				w = c.resolvePresetHeight(presets[c.data[i].Height.Preset]) / maxf(1, c.workingArea.H)
			}
			weights[i] = w
			totalWeight += w
		default:
			w := c.data[i].Height.Weight
			if w <= 0 {
				w = 1
			}
			weights[i] = w
			totalWeight += w
		}
	}

	if flexBudget < 0 {
		flexBudget = 0
	}
	for i := range c.tiles {
		if i == fixedIdx {
			continue
		}
		var share float64
		if totalWeight > 0 {
			share = flexBudget * (weights[i] / totalWeight)
		}
		h := mins[i] + share
		maxH := c.tiles[i].Window.MaxSize().H
		h = clamp(h, mins[i], maxOrInf(maxH))
		result[i] = h
	}

	for i := range result {
		result[i] = roundPhysical(result[i], scale)
	}
	return result
}

func maxOrInf(v float64) float64 {
	if v <= 0 {
		return 1e12
	}
	return v
}

func maxf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
