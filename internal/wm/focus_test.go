package wm

import "testing"

func TestFocusSelectsAndBordersClient(t *testing.T) {
	w, b, _ := newTestWM(t, []Rect{{0, 0, 1920, 1080}})
	a := addClient(w, b, 10, Rect{0, 0, 400, 300})
	bi := addClient(w, b, 11, Rect{0, 0, 400, 300})

	w.focus(a)

	if got := w.monitors[0].Sel; got != a {
		t.Errorf("Sel = %d, want %d", got, a)
	}
	if b.borders[10] != SchemeSelected {
		t.Error("focused client not given the selected border")
	}
	if b.borders[11] != SchemeNormal {
		t.Error("unfocused client keeps the selected border")
	}
	if b.focused != 10 {
		t.Errorf("input focus on %#x, want window 10", uint32(b.focused))
	}
	if b.active != 10 {
		t.Errorf("active window %#x, want window 10", uint32(b.active))
	}
	if !b.grabbedButtons[10] {
		t.Error("focused client has the unfocused button grabs")
	}
	if b.grabbedButtons[11] {
		t.Error("unfocused client has the focused button grabs")
	}
	_ = bi
}

func TestFocusNilFallsBackToStack(t *testing.T) {
	w, b, _ := newTestWM(t, []Rect{{0, 0, 1920, 1080}})
	addClient(w, b, 10, Rect{0, 0, 400, 300})
	bi := addClient(w, b, 11, Rect{0, 0, 400, 300})

	w.focus(nilIdx)
	if got := w.monitors[0].Sel; got != bi {
		t.Errorf("Sel = %d, want top of stack %d", got, bi)
	}
}

func TestFocusWithNoVisibleClientGoesToRoot(t *testing.T) {
	w, b, _ := newTestWM(t, []Rect{{0, 0, 1920, 1080}})
	ci := addClient(w, b, 10, Rect{0, 0, 400, 300})
	w.client(ci).Tags = 1 << 5

	w.focus(nilIdx)
	if got := w.monitors[0].Sel; got != nilIdx {
		t.Errorf("Sel = %d, want none", got)
	}
	if !b.rootFocus {
		t.Error("input focus not returned to the root")
	}
	if b.active != None {
		t.Error("active window not cleared")
	}
}

func TestFocusNeverFocusClient(t *testing.T) {
	w, b, _ := newTestWM(t, []Rect{{0, 0, 1920, 1080}})
	ci := addClient(w, b, 10, Rect{0, 0, 400, 300})
	w.client(ci).NeverFocus = true
	b.focused, b.rootFocus = None, true

	w.focus(ci)
	if b.focused != None {
		t.Error("input focus set on a no-input client")
	}
}

func TestFocusClearsUrgency(t *testing.T) {
	w, b, _ := newTestWM(t, []Rect{{0, 0, 1920, 1080}})
	addClient(w, b, 10, Rect{0, 0, 400, 300})
	ci := addClient(w, b, 11, Rect{0, 0, 400, 300})
	ai := w.winToClient(10)
	w.setUrgent(ai, true)

	w.focus(ai)
	if w.client(ai).IsUrgent {
		t.Error("urgency not cleared on focus")
	}
	if b.wmHints[10].Urgent {
		t.Error("urgency hint not cleared on the server")
	}
	_ = ci
}

func TestFocusOtherMonitorSwitchesSelection(t *testing.T) {
	w, b, _ := newTestWM(t, dualScreens)
	ci := addClient(w, b, 10, Rect{0, 0, 400, 300})
	w.sendToMonitor(ci, 1)
	w.selMon = 0

	w.focus(ci)
	if w.selMon != 1 {
		t.Errorf("selMon = %d, want 1", w.selMon)
	}
}

func TestFocusStackForward(t *testing.T) {
	w, b, _ := newTestWM(t, []Rect{{0, 0, 1920, 1080}})
	a := addClient(w, b, 10, Rect{0, 0, 400, 300})
	bi := addClient(w, b, 11, Rect{0, 0, 400, 300})
	c := addClient(w, b, 12, Rect{0, 0, 400, 300})

	// Managed order is [c, bi, a] and c starts selected. Forward moves
	// down the managed list and wraps to its head.
	m := &w.monitors[0]
	w.focusStack(1)
	if m.Sel != bi {
		t.Fatalf("Sel = %d, want %d", m.Sel, bi)
	}
	w.focusStack(1)
	if m.Sel != a {
		t.Fatalf("Sel = %d, want %d", m.Sel, a)
	}
	w.focusStack(1)
	if m.Sel != c {
		t.Fatalf("Sel = %d, want wrap to %d", m.Sel, c)
	}
}

func TestFocusStackBackward(t *testing.T) {
	w, b, _ := newTestWM(t, []Rect{{0, 0, 1920, 1080}})
	a := addClient(w, b, 10, Rect{0, 0, 400, 300})
	bi := addClient(w, b, 11, Rect{0, 0, 400, 300})
	c := addClient(w, b, 12, Rect{0, 0, 400, 300})

	// Backward from the managed-list head wraps to its tail.
	m := &w.monitors[0]
	w.focusStack(-1)
	if m.Sel != a {
		t.Fatalf("Sel = %d, want wrap to %d", m.Sel, a)
	}
	w.focusStack(-1)
	if m.Sel != bi {
		t.Fatalf("Sel = %d, want %d", m.Sel, bi)
	}
	w.focusStack(-1)
	if m.Sel != c {
		t.Fatalf("Sel = %d, want %d", m.Sel, c)
	}
}

func TestFocusStackSkipsHidden(t *testing.T) {
	w, b, _ := newTestWM(t, []Rect{{0, 0, 1920, 1080}})
	a := addClient(w, b, 10, Rect{0, 0, 400, 300})
	bi := addClient(w, b, 11, Rect{0, 0, 400, 300})
	addClient(w, b, 12, Rect{0, 0, 400, 300})

	w.client(bi).Tags = 1 << 5
	w.focusStack(1)
	if got := w.monitors[0].Sel; got != a {
		t.Errorf("Sel = %d, want %d skipping the hidden client", got, a)
	}
}

func TestFocusStackFullscreenDoesNotCycle(t *testing.T) {
	w, b, _ := newTestWM(t, []Rect{{0, 0, 1920, 1080}})
	addClient(w, b, 10, Rect{0, 0, 400, 300})
	ci := addClient(w, b, 11, Rect{0, 0, 400, 300})
	w.setFullscreen(ci, true)

	w.focusStack(1)
	if got := w.monitors[0].Sel; got != ci {
		t.Errorf("Sel = %d, want the fullscreen client %d", got, ci)
	}
}

func TestFocusMonitor(t *testing.T) {
	w, _, _ := newTestWM(t, dualScreens)
	w.focusMonitor(1)
	if w.selMon != 1 {
		t.Errorf("selMon = %d, want 1", w.selMon)
	}
	w.focusMonitor(1)
	if w.selMon != 0 {
		t.Errorf("selMon = %d, want wrap to 0", w.selMon)
	}
}
