// Package bind resolves input events to configured actions. It is
// intentionally free of compositor-state dependencies for
// testability: it depends on nothing but its own types, with no import
// of the root tenon package's mutable layout state.
package bind

import "strings"

// Modifiers is a bitmask of held modifier keys plus the synthetic
// Compositor bit set when the configured mod-key is held.
type Modifiers uint16

const (
	Ctrl Modifiers = 1 << iota
	Shift
	Alt
	Super
	IsoLevel3Shift
	IsoLevel5Shift
	Compositor
)

// Contains reports whether m has every bit set in other.
func (m Modifiers) Contains(other Modifiers) bool { return m&other == other }

// ModKey names the configured "compositor" modifier (input.mod_key),
// the physical key that doubles as the Compositor bit.
type ModKey string

const (
	ModSuper ModKey = "Mod4"
	ModAlt   ModKey = "Mod1"
)

// ToModifiers returns the physical Modifiers bit(s) a ModKey maps to.
func (k ModKey) ToModifiers() Modifiers {
	switch k {
	case ModAlt:
		return Alt
	default:
		return Super
	}
}

// ModifiersState is the already-resolved physical modifier state the
// input subsystem hands the core with each event.
type ModifiersState struct {
	Ctrl, Shift, Alt, Logo, IsoLevel3Shift, IsoLevel5Shift bool
}

// ModifiersFromState converts a raw ModifiersState into our Modifiers
// bitmask.
func ModifiersFromState(s ModifiersState) Modifiers {
	var m Modifiers
	if s.Ctrl {
		m |= Ctrl
	}
	if s.Shift {
		m |= Shift
	}
	if s.Alt {
		m |= Alt
	}
	if s.Logo {
		m |= Super
	}
	if s.IsoLevel3Shift {
		m |= IsoLevel3Shift
	}
	if s.IsoLevel5Shift {
		m |= IsoLevel5Shift
	}
	return m
}

// TriggerKind discriminates the physical input that can drive a Trigger.
type TriggerKind int

const (
	TriggerKeysym TriggerKind = iota
	TriggerMouseLeft
	TriggerMouseRight
	TriggerMouseMiddle
	TriggerMouseBack
	TriggerMouseForward
	TriggerWheelScrollUp
	TriggerWheelScrollDown
	TriggerWheelScrollLeft
	TriggerWheelScrollRight
	TriggerTouchpadScrollUp
	TriggerTouchpadScrollDown
	TriggerTouchpadScrollLeft
	TriggerTouchpadScrollRight
)

// Trigger is what a Bind fires on: either a specific keysym, or one of
// a fixed set of pointer/wheel/touchpad gestures.
type Trigger struct {
	Kind   TriggerKind
	Keysym uint32 // only meaningful when Kind == TriggerKeysym
}

func KeysymTrigger(ks uint32) Trigger { return Trigger{Kind: TriggerKeysym, Keysym: ks} }

// ActionKind names the set of actions the bind table and the
// lock/screenshot-UI predicates dispatch on. The hardcoded and
// security-relevant actions are exhaustively enumerated; compositor
// actions outside those closed sets (column/row focus and movement,
// spawn) are included because the screenshot-UI allow list references
// them directly.
type ActionKind int

const (
	ActionSpawn ActionKind = iota
	ActionQuit
	ActionChangeVt
	ActionSuspend
	ActionPowerOffMonitors
	ActionPowerOnMonitors
	ActionSwitchLayout
	ActionToggleKeyboardShortcutsInhibit

	ActionFocusColumnLeft
	ActionFocusColumnRight
	ActionFocusColumnFirst
	ActionFocusColumnLast
	ActionFocusRowUp
	ActionFocusRowDown
	ActionFocusMonitorLeft
	ActionFocusMonitorRight
	ActionMoveColumnLeft
	ActionMoveColumnRight
	ActionMoveRowUp
	ActionMoveRowDown
	ActionMoveWindowToMonitorLeft
	ActionMoveWindowToMonitorRight
	// ActionSetColumnWidth/ActionSetWindowHeight are the one
	// size-adjustment pair the screenshot UI leaves enabled, so a held
	// screenshot selection can still be resized.
	ActionSetColumnWidth
	ActionSetWindowHeight
)

// Action is a resolved bind action: a kind plus the small amount of
// payload some kinds carry (VT number, spawn argv).
type Action struct {
	Kind  ActionKind
	VT    int
	Spawn []string
}

// Key is a trigger plus the modifier set required to fire it.
type Key struct {
	Trigger   Trigger
	Modifiers Modifiers
}

// Bind is one configured (or hardcoded) keybinding.
type Bind struct {
	Key                Key
	Action             Action
	Repeat             bool
	AllowWhenLocked    bool
	AllowInhibiting    bool
	HotkeyOverlayTitle string
}

// Hardcoded keysym values. Full keysym tables live in the input
// decoding layer; callers pass the already resolved uint32 values
// matching the XF86 keysym space.
const (
	keyXF86SwitchVT1  = 0x1008FE01
	keyXF86SwitchVT12 = 0x1008FE0C
	keyXF86PowerOff   = 0x1008FF2A
)

// FindBind resolves an event to a Bind: hardcoded binds first (VT
// switch, power key), then configured binds by trigger+modifier match.
func FindBind(bindings []Bind, modKey ModKey, modified uint32, raw *uint32, mods ModifiersState, disablePowerKeyHandling bool) (Bind, bool) {
	if modified >= keyXF86SwitchVT1 && modified <= keyXF86SwitchVT12 {
		vt := int(modified-keyXF86SwitchVT1) + 1
		return Bind{
			Key:             Key{Trigger: KeysymTrigger(modified)},
			Action:          Action{Kind: ActionChangeVt, VT: vt},
			Repeat:          true,
			AllowWhenLocked: false,
			AllowInhibiting: false,
		}, true
	}
	if modified == keyXF86PowerOff && !disablePowerKeyHandling {
		return Bind{
			Key:             Key{Trigger: KeysymTrigger(modified)},
			Action:          Action{Kind: ActionSuspend},
			Repeat:          true,
			AllowWhenLocked: false,
			AllowInhibiting: false,
		}, true
	}

	if raw == nil {
		return Bind{}, false
	}
	return FindConfiguredBind(bindings, modKey, KeysymTrigger(*raw), mods)
}

// FindConfiguredBind matches trigger+modifiers against the configured
// bind table, normalizing the Compositor bit against modKey's physical
// bits on both sides of the comparison.
func FindConfiguredBind(bindings []Bind, modKey ModKey, trigger Trigger, mods ModifiersState) (Bind, bool) {
	modifiers := ModifiersFromState(mods)
	if modifiers.Contains(modKey.ToModifiers()) {
		modifiers |= Compositor
	}

	for _, b := range bindings {
		if b.Key.Trigger != trigger {
			continue
		}
		bindModifiers := b.Key.Modifiers
		if bindModifiers.Contains(Compositor) {
			bindModifiers |= modKey.ToModifiers()
		} else if bindModifiers.Contains(modKey.ToModifiers()) {
			bindModifiers |= Compositor
		}
		if bindModifiers == modifiers {
			return b, true
		}
	}
	return Bind{}, false
}

// ModsWithBinds returns the set of normalized modifier combinations
// that have a bind on one of the given triggers, used by a status UI
// to display which chords do something.
func ModsWithBinds(modKey ModKey, binds []Bind, triggers []Trigger) map[Modifiers]bool {
	matches := func(t Trigger) bool {
		for _, want := range triggers {
			if t == want {
				return true
			}
		}
		return false
	}
	rv := map[Modifiers]bool{}
	for _, b := range binds {
		if !matches(b.Key.Trigger) {
			continue
		}
		mods := b.Key.Modifiers
		if mods.Contains(Compositor) {
			mods &^= Compositor
			mods |= modKey.ToModifiers()
		}
		rv[mods] = true
	}
	return rv
}

func ModsWithMouseBinds(modKey ModKey, binds []Bind) map[Modifiers]bool {
	return ModsWithBinds(modKey, binds, []Trigger{
		{Kind: TriggerMouseLeft}, {Kind: TriggerMouseRight}, {Kind: TriggerMouseMiddle},
		{Kind: TriggerMouseBack}, {Kind: TriggerMouseForward},
	})
}

func ModsWithWheelBinds(modKey ModKey, binds []Bind) map[Modifiers]bool {
	return ModsWithBinds(modKey, binds, []Trigger{
		{Kind: TriggerWheelScrollUp}, {Kind: TriggerWheelScrollDown},
		{Kind: TriggerWheelScrollLeft}, {Kind: TriggerWheelScrollRight},
	})
}

func ModsWithFingerScrollBinds(modKey ModKey, binds []Bind) map[Modifiers]bool {
	return ModsWithBinds(modKey, binds, []Trigger{
		{Kind: TriggerTouchpadScrollUp}, {Kind: TriggerTouchpadScrollDown},
		{Kind: TriggerTouchpadScrollLeft}, {Kind: TriggerTouchpadScrollRight},
	})
}

// lockedAllowed is the closed set of actions permitted while the
// session is locked.
var lockedAllowed = map[ActionKind]bool{
	ActionQuit:                           true,
	ActionChangeVt:                       true,
	ActionSuspend:                        true,
	ActionPowerOffMonitors:               true,
	ActionPowerOnMonitors:                true,
	ActionSwitchLayout:                   true,
	ActionToggleKeyboardShortcutsInhibit: true,
}

// AllowedWhenLocked reports whether an action may run while the
// session is locked.
func AllowedWhenLocked(k ActionKind) bool { return lockedAllowed[k] }

// screenshotUIAllowed is the closed set of actions permitted while the
// screenshot UI is open: focus/move-column/row/monitor and the one
// size-adjustment pair.
var screenshotUIAllowed = map[ActionKind]bool{
	ActionFocusColumnLeft:         true,
	ActionFocusColumnRight:        true,
	ActionFocusColumnFirst:        true,
	ActionFocusColumnLast:         true,
	ActionFocusRowUp:              true,
	ActionFocusRowDown:            true,
	ActionFocusMonitorLeft:        true,
	ActionFocusMonitorRight:       true,
	ActionMoveColumnLeft:          true,
	ActionMoveColumnRight:         true,
	ActionMoveRowUp:               true,
	ActionMoveRowDown:             true,
	ActionMoveWindowToMonitorLeft: true,
	ActionMoveWindowToMonitorRight: true,
	ActionSetColumnWidth:          true,
	ActionSetWindowHeight:         true,
}

// AllowedDuringScreenshotUI reports whether an action may run while
// the screenshot UI is open.
func AllowedDuringScreenshotUI(k ActionKind) bool { return screenshotUIAllowed[k] }

// ParseModKey parses a config string ("Mod4", "Mod1", case-insensitive)
// into a ModKey, defaulting to ModSuper for anything unrecognized.
func ParseModKey(s string) ModKey {
	switch strings.ToLower(s) {
	case "mod1", "alt":
		return ModAlt
	default:
		return ModSuper
	}
}
