package bind

import "testing"

func TestModifiersFromState(t *testing.T) {
	got := ModifiersFromState(ModifiersState{Ctrl: true, Shift: true})
	if !got.Contains(Ctrl) || !got.Contains(Shift) {
		t.Fatalf("expected Ctrl|Shift, got %b", got)
	}
	if got.Contains(Alt) || got.Contains(Super) {
		t.Fatalf("unexpected bits set: %b", got)
	}
}

func TestModifiersFromStateEmpty(t *testing.T) {
	got := ModifiersFromState(ModifiersState{})
	if got != 0 {
		t.Fatalf("expected empty, got %b", got)
	}
}

func TestModifiersFromStateAll(t *testing.T) {
	got := ModifiersFromState(ModifiersState{
		Ctrl: true, Shift: true, Alt: true, Logo: true,
		IsoLevel3Shift: true, IsoLevel5Shift: true,
	})
	want := Ctrl | Shift | Alt | Super | IsoLevel3Shift | IsoLevel5Shift
	if got != want {
		t.Fatalf("got %b want %b", got, want)
	}
}

// The hardcoded VT bind wins regardless of configured binds/modifiers.
func TestFindBindHardcodedVT(t *testing.T) {
	configured := []Bind{{
		Key:    Key{Trigger: KeysymTrigger(keyXF86SwitchVT1 + 2), Modifiers: Ctrl | Shift},
		Action: Action{Kind: ActionSpawn, Spawn: []string{"notify-send", "wrong"}},
	}}
	raw := uint32(keyXF86SwitchVT1 + 2)
	b, ok := FindBind(configured, ModSuper, keyXF86SwitchVT1+2, &raw, ModifiersState{Ctrl: true, Shift: true}, false)
	if !ok {
		t.Fatal("expected a bind")
	}
	if b.Action.Kind != ActionChangeVt || b.Action.VT != 3 {
		t.Fatalf("got action %+v", b.Action)
	}
	if !b.Repeat || b.AllowWhenLocked || b.AllowInhibiting {
		t.Fatalf("got bind %+v", b)
	}
}

func TestFindBindPowerKeySuspend(t *testing.T) {
	raw := uint32(keyXF86PowerOff)
	b, ok := FindBind(nil, ModSuper, keyXF86PowerOff, &raw, ModifiersState{}, false)
	if !ok || b.Action.Kind != ActionSuspend {
		t.Fatalf("got %+v ok=%v", b, ok)
	}
}

func TestFindBindPowerKeyDisabled(t *testing.T) {
	raw := uint32(keyXF86PowerOff)
	_, ok := FindBind(nil, ModSuper, keyXF86PowerOff, &raw, ModifiersState{}, true)
	if ok {
		t.Fatal("power key handling should be disabled")
	}
}

func TestFindConfiguredBindCompositorNormalization(t *testing.T) {
	binds := []Bind{{
		Key:    Key{Trigger: KeysymTrigger(42), Modifiers: Compositor | Shift},
		Action: Action{Kind: ActionFocusColumnRight},
	}}
	// Super held (mod_key) + Shift should match a bind written with
	// Compositor|Shift, since Compositor normalizes to mod_key's bits.
	b, ok := FindConfiguredBind(binds, ModSuper, KeysymTrigger(42), ModifiersState{Logo: true, Shift: true})
	if !ok || b.Action.Kind != ActionFocusColumnRight {
		t.Fatalf("expected normalized match, got %+v ok=%v", b, ok)
	}
}

func TestFindConfiguredBindNoMatch(t *testing.T) {
	binds := []Bind{{Key: Key{Trigger: KeysymTrigger(42), Modifiers: Compositor}}}
	_, ok := FindConfiguredBind(binds, ModSuper, KeysymTrigger(42), ModifiersState{})
	if ok {
		t.Fatal("mod key not held, should not match")
	}
}

func TestModsWithMouseBinds(t *testing.T) {
	binds := []Bind{
		{Key: Key{Trigger: Trigger{Kind: TriggerMouseLeft}, Modifiers: Compositor}},
		{Key: Key{Trigger: Trigger{Kind: TriggerWheelScrollUp}, Modifiers: Compositor}},
	}
	got := ModsWithMouseBinds(ModSuper, binds)
	if len(got) != 1 || !got[Super] {
		t.Fatalf("got %v", got)
	}
}

func TestAllowedWhenLockedClosedSet(t *testing.T) {
	if !AllowedWhenLocked(ActionChangeVt) {
		t.Fatal("ChangeVt must be allowed when locked")
	}
	if AllowedWhenLocked(ActionFocusColumnLeft) {
		t.Fatal("FocusColumnLeft must not be allowed when locked")
	}
}

func TestAllowedDuringScreenshotUIClosedSet(t *testing.T) {
	if !AllowedDuringScreenshotUI(ActionFocusRowUp) {
		t.Fatal("FocusRowUp must be allowed during screenshot UI")
	}
	if AllowedDuringScreenshotUI(ActionSuspend) {
		t.Fatal("Suspend must not be allowed during screenshot UI")
	}
}

func TestFindConfiguredSwitchAction(t *testing.T) {
	binds := SwitchBinds{LidClose: []string{"systemctl", "suspend"}}
	a, ok := FindConfiguredSwitchAction(binds, SwitchLid, SwitchOn)
	if !ok || a.Kind != ActionSpawn {
		t.Fatalf("got %+v ok=%v", a, ok)
	}
	_, ok = FindConfiguredSwitchAction(binds, SwitchLid, SwitchOff)
	if ok {
		t.Fatal("lid_open unconfigured, should not match")
	}
}

func TestEventPredicates(t *testing.T) {
	if !ShouldActivateMonitors(EventKeyboard) {
		t.Fatal("keyboard should activate monitors")
	}
	if ShouldActivateMonitors(EventDeviceAdded) {
		t.Fatal("device-added should not activate monitors")
	}
	if !ShouldResetPointerInactivityTimer(EventPointerMotion) {
		t.Fatal("pointer motion should reset inactivity timer")
	}
	if ShouldResetPointerInactivityTimer(EventKeyboard) {
		t.Fatal("keyboard should not reset pointer inactivity timer")
	}
}
