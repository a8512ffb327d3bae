package bind

// Switch names a physical switch device: laptop lid or tablet-mode.
type Switch int

const (
	SwitchLid Switch = iota
	SwitchTabletMode
)

// SwitchState is the reported state of a Switch.
type SwitchState int

const (
	SwitchOff SwitchState = iota
	SwitchOn
)

// SwitchBinds holds the up to four configured spawn actions dispatched
// on lid/tablet-mode transitions.
type SwitchBinds struct {
	LidOpen       []string
	LidClose      []string
	TabletModeOff []string
	TabletModeOn  []string
}

// FindConfiguredSwitchAction resolves a (Switch, SwitchState) pair to
// the configured spawn action, if any.
func FindConfiguredSwitchAction(binds SwitchBinds, sw Switch, state SwitchState) (Action, bool) {
	var argv []string
	switch {
	case sw == SwitchLid && state == SwitchOff:
		argv = binds.LidOpen
	case sw == SwitchLid && state == SwitchOn:
		argv = binds.LidClose
	case sw == SwitchTabletMode && state == SwitchOff:
		argv = binds.TabletModeOff
	case sw == SwitchTabletMode && state == SwitchOn:
		argv = binds.TabletModeOn
	default:
		return Action{}, false
	}
	if argv == nil {
		return Action{}, false
	}
	return Action{Kind: ActionSpawn, Spawn: argv}, true
}

// EventKind classifies incoming input events for the predicates below.
type EventKind int

const (
	EventKeyboard EventKind = iota
	EventPointerButton
	EventPointerMotion
	EventPointerMotionAbsolute
	EventPointerAxis
	EventGestureSwipe
	EventGesturePinch
	EventGestureHold
	EventTouch
	EventTabletTool
	EventSwitch
	EventDeviceAdded
	EventDeviceRemoved
)

// ShouldActivateMonitors reports whether an event of this kind should
// wake powered-off monitors.
func ShouldActivateMonitors(k EventKind) bool {
	switch k {
	case EventKeyboard, EventPointerButton, EventPointerMotion, EventPointerMotionAbsolute,
		EventPointerAxis, EventGestureSwipe, EventGesturePinch, EventGestureHold,
		EventTouch, EventTabletTool:
		return true
	default:
		return false
	}
}

// ShouldHideOverlay reports whether an event of this kind should
// dismiss a transient overlay (hotkey overlay, exit dialog) if open.
func ShouldHideOverlay(k EventKind) bool {
	switch k {
	case EventKeyboard, EventPointerButton, EventTouch, EventTabletTool:
		return true
	default:
		return false
	}
}

// ShouldNotifyActivity reports whether an event of this kind counts as
// user activity for idle-inhibit purposes.
func ShouldNotifyActivity(k EventKind) bool {
	return ShouldActivateMonitors(k)
}

// ShouldResetPointerInactivityTimer reports whether an event of this
// kind resets the cursor-hide inactivity timer.
func ShouldResetPointerInactivityTimer(k EventKind) bool {
	switch k {
	case EventPointerButton, EventPointerMotion, EventPointerMotionAbsolute, EventPointerAxis:
		return true
	default:
		return false
	}
}
