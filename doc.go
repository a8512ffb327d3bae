// Package tenon is an in-memory layout engine for a tiling Wayland
// compositor. It owns the geometric model of windows arranged into rows
// and columns, the animation substrate that drives every positional
// quantity, and the bind-resolution and render-element surfaces a
// compositor's event loop needs each frame.
//
// tenon does not touch Wayland protocol state, DRM/KMS, GPU buffers, or
// input device decoding — those are external collaborators. The engine
// consumes already-classified input and a deserialized [Config] (a
// config file is parsed into one by github.com/tenonwm/tenon/config),
// and emits an ordered list of opaque [RenderElement] values for an
// external renderer to composite. Bind-table resolution lives in
// github.com/tenonwm/tenon/bind, independent of this package's mutable
// state. github.com/tenonwm/tenon/extrow mirrors row/camera state to
// external IPC clients.
//
// # Hierarchy
//
// Five levels, leaves first: [Tile] owns one window's geometry and
// per-tile animations. [Column] is a vertical stack of tiles with a
// width policy and tabbed/normal display mode. [Row] is a horizontal
// sequence of columns with a camera. [Canvas] maps row indices to [Row]
// values plus a [FloatingSpace], with its own vertical camera.
// [Monitor] binds a Canvas to an output and adds the row-switch gesture
// and overview. [Layout] owns the set of Monitors plus interactive-move
// and drag-and-drop state.
//
// # Quick start
//
//	lay := tenon.NewLayout(tenon.DefaultConfig())
//	mon := lay.AddMonitor("eDP-1", tenon.Size{W: 1920, H: 1080})
//	tile := tenon.NewTile(myWindow, tenon.Size{W: 800, H: 600})
//	mon.Canvas.AddWindow(tile, true, false, tenon.ProportionWidth(0.5), false, now)
//	lay.AdvanceAnimations(now)
//	elements := mon.RenderElements(now)
//
// # Animation substrate
//
// Every positional quantity that can move smoothly is an
// [AnimatedValue]: static, mid-animation via [Animation], or
// gesture-driven via [Gesture]. [AnimatedPoint] composes two
// AnimatedValues for 2D motion such as a camera position.
package tenon
