package tenon

import "time"

// CenterFocusedColumn controls when a row re-centers its camera on the
// active column.
type CenterFocusedColumn int

const (
	CenterNever CenterFocusedColumn = iota
	CenterOnOverflow
	CenterAlways
)

// DisplayMode is how a column arranges its tiles.
type DisplayMode int

const (
	DisplayNormal DisplayMode = iota
	DisplayTabbed
)

// PresetSize is one entry in a preset width/height list: either a
// proportion of the working area or a fixed pixel size.
type PresetSize struct {
	IsProportion bool
	Proportion   float64
	Fixed        float64
}

// ProportionPreset returns a proportion-kind PresetSize.
func ProportionPreset(p float64) PresetSize { return PresetSize{IsProportion: true, Proportion: p} }

// FixedPreset returns a fixed-pixel-kind PresetSize.
func FixedPreset(px float64) PresetSize { return PresetSize{Fixed: px} }

// AnimationKey names one of the configurable animation slots.
type AnimationKey string

const (
	AnimWindowOpen             AnimationKey = "window-open"
	AnimWindowClose            AnimationKey = "window-close"
	AnimWindowMovement         AnimationKey = "window-movement"
	AnimWindowResize           AnimationKey = "window-resize"
	AnimHorizontalViewMovement AnimationKey = "horizontal-view-movement"
	AnimWorkspaceSwitch        AnimationKey = "workspace-switch"
	AnimTabIndicatorOpen       AnimationKey = "tab-indicator-open"
	AnimOverviewZoom           AnimationKey = "overview-zoom"
)

// LayoutConfig is the "layout.*" option subset the layout engine
// itself consumes: gaps, struts, border, presets, display defaults,
// camera-centering policy.
type LayoutConfig struct {
	Gaps   float64
	Struts Rect
	Border BorderConfig

	PresetColumnWidths  []PresetSize
	PresetWindowHeights []PresetSize

	DefaultColumnDisplay DisplayMode
	TabIndicatorWidth    float64

	CenterFocusedColumn CenterFocusedColumn
	EmptyRowAboveFirst  bool
	InsertHint          bool
}

// BorderConfig is the layout.border.{off,width} option pair.
type BorderConfig struct {
	Off   bool
	Width float64
}

// Config is the full deserialized configuration value the layout
// engine consumes. Parsing a config file into this shape is handled by
// the config package (github.com/tenonwm/tenon/config); the core never
// reads a file itself.
type Config struct {
	Layout LayoutConfig

	Animations map[AnimationKey]EasingConfig

	ModKey                     string
	DisableTransactions        bool
	DisableResizeThrottling    bool
	DeactivateUnfocusedWindows bool
}

// DefaultConfig returns a Config with reasonable defaults, used by
// tests and by hosts that have not loaded a config file yet.
func DefaultConfig() Config {
	anims := map[AnimationKey]EasingConfig{
		AnimWindowOpen:             {Duration: 150 * time.Millisecond, Easing: nil},
		AnimWindowClose:            {Duration: 150 * time.Millisecond, Easing: nil},
		AnimWindowMovement:         {Duration: 200 * time.Millisecond, Easing: nil},
		AnimWindowResize:           {Duration: 200 * time.Millisecond, Easing: nil},
		AnimHorizontalViewMovement: {Duration: 250 * time.Millisecond, Easing: nil},
		AnimWorkspaceSwitch:        {Duration: 250 * time.Millisecond, Easing: nil},
		AnimTabIndicatorOpen:       {Duration: 150 * time.Millisecond, Easing: nil},
		AnimOverviewZoom:           {Duration: 250 * time.Millisecond, Easing: nil},
	}
	return Config{
		Layout: LayoutConfig{
			Gaps:                16,
			PresetColumnWidths:  []PresetSize{ProportionPreset(1.0 / 3), ProportionPreset(0.5), ProportionPreset(2.0 / 3)},
			PresetWindowHeights: []PresetSize{ProportionPreset(1.0 / 3), ProportionPreset(0.5), ProportionPreset(2.0 / 3)},
			TabIndicatorWidth:   8,
			CenterFocusedColumn: CenterNever,
		},
		Animations: anims,
		ModKey:     "Mod4",
	}
}

// EasingFor looks up the configured EasingConfig for key, falling back
// to DefaultEasingConfig if unconfigured.
func (c Config) EasingFor(key AnimationKey) EasingConfig {
	if cfg, ok := c.Animations[key]; ok {
		return cfg
	}
	return DefaultEasingConfig()
}
