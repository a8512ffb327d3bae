// Package config loads the deserialized configuration value the layout
// engine consumes. The engine itself never reads a file: this package
// lives outside the root tenon package and depends on it, never the
// other way around.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/tanema/gween/ease"

	"github.com/tenonwm/tenon"
)

// Error is the categorical configuration-error kind: reported to the
// user via a non-modal notification, with the previous valid config
// retained by the caller (LoadFile itself is side-effect free and
// simply returns the error).
type Error struct {
	Path string
	Err  error
}

func (e *Error) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("config: %v", e.Err)
	}
	return fmt.Sprintf("config: %s: %v", e.Path, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// fileRowConfig is one [[row]] declaration: a row name plus the output
// it should open on. empty-row-above-first and insert-hint are not
// accepted here; they remain top-level layout options.
type fileRowConfig struct {
	Name         string `toml:"name"`
	OpenOnOutput string `toml:"open-on-output"`
}

type filePresetSize struct {
	Proportion *float64 `toml:"proportion"`
	Fixed      *float64 `toml:"fixed"`
}

func (p filePresetSize) toPreset() tenon.PresetSize {
	if p.Proportion != nil {
		return tenon.ProportionPreset(*p.Proportion)
	}
	if p.Fixed != nil {
		return tenon.FixedPreset(*p.Fixed)
	}
	return tenon.ProportionPreset(0.5)
}

type fileBorderConfig struct {
	Off   bool    `toml:"off"`
	Width float64 `toml:"width"`
}

type fileEasingConfig struct {
	DurationMS int    `toml:"duration-ms"`
	Curve      string `toml:"curve"`
}

type fileLayoutConfig struct {
	Gaps                     float64          `toml:"gaps"`
	Struts                   [4]float64       `toml:"struts"` // left, right, top, bottom
	Border                   fileBorderConfig `toml:"border"`
	PresetColumnWidths       []filePresetSize `toml:"preset-column-widths"`
	PresetWindowHeights      []filePresetSize `toml:"preset-window-heights"`
	DefaultColumnDisplay     string           `toml:"default-column-display"`
	TabIndicatorWidth        float64          `toml:"tab-indicator-width"`
	CenterFocusedColumn      string           `toml:"center-focused-column"`
	EmptyWorkspaceAboveFirst bool             `toml:"empty-workspace-above-first"`
	InsertHint               bool             `toml:"insert-hint"`
}

// File is the TOML-deserialized shape of a tenon config file. LoadFile
// converts it into a tenon.Config; the layout engine only ever consumes
// the converted value.
type File struct {
	Layout     fileLayoutConfig            `toml:"layout"`
	Animations map[string]fileEasingConfig `toml:"animations"`

	InputModKey string `toml:"input-mod-key"`

	DisableTransactions        bool `toml:"disable-transactions"`
	DisableResizeThrottling    bool `toml:"disable-resize-throttling"`
	DeactivateUnfocusedWindows bool `toml:"deactivate-unfocused-windows"`

	Rows []fileRowConfig `toml:"row"`
}

// namedCurves maps the config's curve names to gween easing functions,
// the subset tenon's Animation substrate exercises.
var namedCurves = map[string]ease.TweenFunc{
	"linear":            ease.Linear,
	"ease-in-quad":      ease.InQuad,
	"ease-out-quad":     ease.OutQuad,
	"ease-in-out-quad":  ease.InOutQuad,
	"ease-in-cubic":     ease.InCubic,
	"ease-out-cubic":    ease.OutCubic,
	"ease-in-out-cubic": ease.InOutCubic,
	"ease-out-expo":     ease.OutExpo,
	"ease-out-back":     ease.OutBack,
}

func (f fileEasingConfig) toEasingConfig() tenon.EasingConfig {
	cfg := tenon.DefaultEasingConfig()
	if f.DurationMS > 0 {
		cfg.Duration = time.Duration(f.DurationMS) * time.Millisecond
	}
	if fn, ok := namedCurves[f.Curve]; ok {
		cfg.Easing = fn
	}
	return cfg
}

// animationKeyNames maps the config's "animations.*" table keys to the
// tenon.AnimationKey the core looks them up by.
var animationKeyNames = map[string]tenon.AnimationKey{
	"window-open":              tenon.AnimWindowOpen,
	"window-close":             tenon.AnimWindowClose,
	"window-movement":          tenon.AnimWindowMovement,
	"window-resize":            tenon.AnimWindowResize,
	"horizontal-view-movement": tenon.AnimHorizontalViewMovement,
	"workspace-switch":         tenon.AnimWorkspaceSwitch,
	"tab-indicator-open":       tenon.AnimTabIndicatorOpen,
	"overview-zoom":            tenon.AnimOverviewZoom,
}

var displayModes = map[string]tenon.DisplayMode{
	"normal": tenon.DisplayNormal,
	"tabbed": tenon.DisplayTabbed,
}

var centerFocusedColumnModes = map[string]tenon.CenterFocusedColumn{
	"never":       tenon.CenterNever,
	"on-overflow": tenon.CenterOnOverflow,
	"always":      tenon.CenterAlways,
}

// ToConfig converts a parsed File into the tenon.Config the layout
// engine consumes, validating row-name uniqueness (case-insensitive)
// along the way.
func (f *File) ToConfig() (tenon.Config, error) {
	if err := validateRowNames(f.Rows); err != nil {
		return tenon.Config{}, err
	}

	cfg := tenon.DefaultConfig()
	lay := &cfg.Layout
	if f.Layout.Gaps > 0 {
		lay.Gaps = f.Layout.Gaps
	}
	lay.Struts = tenon.Rect{X: f.Layout.Struts[0], Y: f.Layout.Struts[2], W: f.Layout.Struts[1], H: f.Layout.Struts[3]}
	lay.Border = tenon.BorderConfig{Off: f.Layout.Border.Off, Width: f.Layout.Border.Width}
	if len(f.Layout.PresetColumnWidths) > 0 {
		lay.PresetColumnWidths = presetsOf(f.Layout.PresetColumnWidths)
	}
	if len(f.Layout.PresetWindowHeights) > 0 {
		lay.PresetWindowHeights = presetsOf(f.Layout.PresetWindowHeights)
	}
	if m, ok := displayModes[strings.ToLower(f.Layout.DefaultColumnDisplay)]; ok {
		lay.DefaultColumnDisplay = m
	}
	if f.Layout.TabIndicatorWidth > 0 {
		lay.TabIndicatorWidth = f.Layout.TabIndicatorWidth
	}
	if m, ok := centerFocusedColumnModes[strings.ToLower(f.Layout.CenterFocusedColumn)]; ok {
		lay.CenterFocusedColumn = m
	}
	lay.EmptyRowAboveFirst = f.Layout.EmptyWorkspaceAboveFirst
	lay.InsertHint = f.Layout.InsertHint

	for name, raw := range f.Animations {
		key, ok := animationKeyNames[name]
		if !ok {
			continue
		}
		cfg.Animations[key] = raw.toEasingConfig()
	}

	if f.InputModKey != "" {
		cfg.ModKey = f.InputModKey
	}
	cfg.DisableTransactions = f.DisableTransactions
	cfg.DisableResizeThrottling = f.DisableResizeThrottling
	cfg.DeactivateUnfocusedWindows = f.DeactivateUnfocusedWindows

	return cfg, nil
}

func presetsOf(ps []filePresetSize) []tenon.PresetSize {
	out := make([]tenon.PresetSize, len(ps))
	for i, p := range ps {
		out[i] = p.toPreset()
	}
	return out
}

// validateRowNames rejects duplicate row names (case-insensitive)
// across the file's top-level row declarations.
func validateRowNames(rows []fileRowConfig) error {
	seen := map[string]bool{}
	for _, r := range rows {
		if r.Name == "" {
			continue
		}
		key := strings.ToLower(r.Name)
		if seen[key] {
			return &Error{Err: fmt.Errorf("duplicate named row: %q", r.Name)}
		}
		seen[key] = true
	}
	return nil
}

// LoadFile reads and parses a TOML config file at path, returning the
// converted tenon.Config. On a parse or validation failure the caller
// should keep its previously loaded Config rather than apply a partial
// one.
func LoadFile(path string) (tenon.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return tenon.Config{}, &Error{Path: path, Err: err}
	}
	var f File
	if err := toml.Unmarshal(data, &f); err != nil {
		return tenon.Config{}, &Error{Path: path, Err: err}
	}
	cfg, err := f.ToConfig()
	if err != nil {
		if cerr, ok := err.(*Error); ok {
			cerr.Path = path
			return tenon.Config{}, cerr
		}
		return tenon.Config{}, &Error{Path: path, Err: err}
	}
	return cfg, nil
}
