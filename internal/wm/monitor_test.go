package wm

import "testing"

var dualScreens = []Rect{
	{X: 0, Y: 0, Width: 1920, Height: 1080},
	{X: 1920, Y: 0, Width: 1280, Height: 1024},
}

func TestRectIntersection(t *testing.T) {
	a := Rect{X: 0, Y: 0, Width: 100, Height: 100}
	cases := []struct {
		b    Rect
		want int
	}{
		{Rect{X: 50, Y: 50, Width: 100, Height: 100}, 2500},
		{Rect{X: 0, Y: 0, Width: 100, Height: 100}, 10000},
		{Rect{X: 100, Y: 0, Width: 50, Height: 50}, 0},
		{Rect{X: -200, Y: -200, Width: 50, Height: 50}, 0},
	}
	for _, tc := range cases {
		if got := a.Intersection(tc.b); got != tc.want {
			t.Errorf("Intersection(%+v) = %d, want %d", tc.b, got, tc.want)
		}
	}
}

func TestUpdateGeometryDualHead(t *testing.T) {
	w, _, _ := newTestWM(t, dualScreens)

	if got := w.validMonitors(); got != 2 {
		t.Fatalf("valid monitors = %d, want 2", got)
	}
	if w.monitors[0].Screen != dualScreens[0] || w.monitors[1].Screen != dualScreens[1] {
		t.Errorf("screens = %+v / %+v", w.monitors[0].Screen, w.monitors[1].Screen)
	}
	if w.monitors[0].Num != 0 || w.monitors[1].Num != 1 {
		t.Errorf("nums = %d / %d, want 0 / 1", w.monitors[0].Num, w.monitors[1].Num)
	}
}

func TestUpdateGeometryDeduplicatesMirrors(t *testing.T) {
	mirrored := []Rect{
		{X: 0, Y: 0, Width: 1920, Height: 1080},
		{X: 0, Y: 0, Width: 1920, Height: 1080},
	}
	w, _, _ := newTestWM(t, mirrored)
	if got := w.validMonitors(); got != 1 {
		t.Errorf("valid monitors = %d, want 1 for mirrored outputs", got)
	}
}

func TestUpdateGeometryShrinkMigratesClients(t *testing.T) {
	w, b, _ := newTestWM(t, dualScreens)
	addClient(w, b, 10, Rect{100, 100, 400, 300})

	// Put a client on the second monitor too.
	ci := addClient(w, b, 11, Rect{100, 100, 400, 300})
	w.sendToMonitor(ci, 1)
	if w.client(ci).Monitor != 1 {
		t.Fatal("client did not move to monitor 1")
	}

	b.screens = dualScreens[:1]
	if !w.updateGeometry() {
		t.Fatal("updateGeometry reported no change")
	}

	if got := w.validMonitors(); got != 1 {
		t.Fatalf("valid monitors = %d, want 1", got)
	}
	if w.client(ci).Monitor != 0 {
		t.Errorf("orphaned client on monitor %d, want 0", w.client(ci).Monitor)
	}
	if w.selMon != 0 {
		t.Errorf("selMon = %d, want 0", w.selMon)
	}
}

func TestCreateMonitorReusesSlot(t *testing.T) {
	w, _, _ := newTestWM(t, dualScreens)

	w.invalidateMonitor(0)
	idx := w.createMonitor()
	if idx != 0 {
		t.Errorf("createMonitor = %d, want reused slot 0", idx)
	}
	if len(w.monitors) != 2 {
		t.Errorf("registry grew to %d slots", len(w.monitors))
	}
	m := w.monitors[idx]
	if !m.Valid || m.Sel != nilIdx || m.Clients != nilIdx || m.SelTags != 1 {
		t.Errorf("reused slot not reset: %+v", m)
	}
}

func TestNextValidMonitorSkipsInvalid(t *testing.T) {
	w, _, _ := newTestWM(t, dualScreens)
	w.invalidateMonitor(0)
	if got := w.nextValidMonitor(0); got != 1 {
		t.Errorf("nextValidMonitor(0) = %d, want 1", got)
	}
}

func TestRectToMonitor(t *testing.T) {
	w, _, _ := newTestWM(t, dualScreens)

	if got := w.rectToMonitor(Rect{X: 100, Y: 100, Width: 50, Height: 50}); got != 0 {
		t.Errorf("left rect on monitor %d, want 0", got)
	}
	if got := w.rectToMonitor(Rect{X: 2000, Y: 100, Width: 50, Height: 50}); got != 1 {
		t.Errorf("right rect on monitor %d, want 1", got)
	}

	// Equal overlap on both sides keeps the lowest index.
	straddle := Rect{X: 1920 - 25, Y: 100, Width: 50, Height: 50}
	if got := w.rectToMonitor(straddle); got != 0 {
		t.Errorf("straddling rect on monitor %d, want 0", got)
	}

	// No overlap anywhere keeps the current selection.
	w.selMon = 1
	if got := w.rectToMonitor(Rect{X: -500, Y: -500, Width: 10, Height: 10}); got != 1 {
		t.Errorf("off-screen rect on monitor %d, want selMon 1", got)
	}
}

func TestDirToMonitorCycles(t *testing.T) {
	w, _, _ := newTestWM(t, dualScreens)

	w.selMon = 0
	if got := w.dirToMonitor(1); got != 1 {
		t.Errorf("forward from 0 = %d, want 1", got)
	}
	if got := w.dirToMonitor(-1); got != 1 {
		t.Errorf("backward from 0 = %d, want 1", got)
	}
	w.selMon = 1
	if got := w.dirToMonitor(1); got != 0 {
		t.Errorf("forward from 1 = %d, want 0", got)
	}
}

func TestUpdateBarPos(t *testing.T) {
	w, _, _ := newTestWM(t, []Rect{{0, 0, 1920, 1080}})
	m := &w.monitors[0]

	if m.BarY != 0 {
		t.Errorf("top bar y = %d, want 0", m.BarY)
	}

	m.TopBar = false
	w.updateBarPos(0)
	if m.BarY != 1080-w.barHeight {
		t.Errorf("bottom bar y = %d, want %d", m.BarY, 1080-w.barHeight)
	}
	if m.WinArea.Y != 0 {
		t.Errorf("window area y = %d, want 0", m.WinArea.Y)
	}

	m.ShowBar = false
	w.updateBarPos(0)
	if m.BarY != -w.barHeight {
		t.Errorf("hidden bar y = %d, want %d", m.BarY, -w.barHeight)
	}
	if m.WinArea.Height != 1080 {
		t.Errorf("window area height = %d, want full 1080", m.WinArea.Height)
	}
}

func TestWinToMonitor(t *testing.T) {
	w, b, _ := newTestWM(t, dualScreens)
	ci := addClient(w, b, 10, Rect{100, 100, 400, 300})
	w.sendToMonitor(ci, 1)

	if got := w.winToMonitor(10, false); got != 1 {
		t.Errorf("client window on monitor %d, want 1", got)
	}
	if got := w.winToMonitor(w.monitors[0].BarWin, false); got != 0 {
		t.Errorf("bar window on monitor %d, want 0", got)
	}

	b.pointerX, b.pointerY, b.pointerOK = 2000, 500, true
	if got := w.winToMonitor(None, true); got != 1 {
		t.Errorf("root with pointer on the right = monitor %d, want 1", got)
	}
}
