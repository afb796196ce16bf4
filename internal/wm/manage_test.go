package wm

import "testing"

func TestManageBasics(t *testing.T) {
	w, b, _ := newTestWM(t, []Rect{{0, 0, 1920, 1080}})
	b.titles[10] = "xterm"
	ci := addClient(w, b, 10, Rect{100, 100, 400, 300})

	c := w.client(ci)
	if c.Name != "xterm" {
		t.Errorf("name = %q, want xterm", c.Name)
	}
	if c.Tags != 1 {
		t.Errorf("tags = %#x, want the monitor's selection", c.Tags)
	}
	if c.BorderWidth != 2 {
		t.Errorf("border width = %d, want the configured 2", c.BorderWidth)
	}
	if len(b.mapped) != 1 || b.mapped[0] != 10 {
		t.Errorf("mapped = %v, want [10]", b.mapped)
	}
	if len(b.normalized) != 1 {
		t.Error("client not moved to NormalState")
	}
	if len(b.clientList) != 1 || b.clientList[0] != 10 {
		t.Errorf("client list = %v, want [10]", b.clientList)
	}
	if got := w.monitors[0].Sel; got != ci {
		t.Errorf("Sel = %d, want the new client", got)
	}
}

func TestManageMissingTitle(t *testing.T) {
	w, b, _ := newTestWM(t, []Rect{{0, 0, 1920, 1080}})
	ci := addClient(w, b, 10, Rect{100, 100, 400, 300})
	if got := w.client(ci).Name; got != "broken" {
		t.Errorf("name = %q, want the broken sentinel", got)
	}
}

func TestManageTransientFollowsLead(t *testing.T) {
	w, b, _ := newTestWM(t, dualScreens)
	li := addClient(w, b, 10, Rect{100, 100, 400, 300})
	w.sendToMonitor(li, 1)
	w.monitors[1].SelTags = 1 << 3
	w.client(li).Tags = 1 << 3

	b.transients[11] = 10
	ti := addClient(w, b, 11, Rect{150, 150, 300, 200})

	c := w.client(ti)
	if !c.IsFloating {
		t.Error("transient not floating")
	}
	if c.Monitor != 1 {
		t.Errorf("transient on monitor %d, want its lead's monitor 1", c.Monitor)
	}
	if c.Tags != 1<<3 {
		t.Errorf("transient tags = %#x, want the lead's %#x", c.Tags, uint32(1<<3))
	}
}

func TestManageDialogFloats(t *testing.T) {
	w, b, _ := newTestWM(t, []Rect{{0, 0, 1920, 1080}})
	b.dialogs[10] = true
	ci := addClient(w, b, 10, Rect{100, 100, 400, 300})
	if !w.client(ci).IsFloating {
		t.Error("dialog window not floating")
	}
}

func TestManageFixedClientFloats(t *testing.T) {
	w, b, _ := newTestWM(t, []Rect{{0, 0, 1920, 1080}})
	b.sizeHints[10] = SizeHints{MinW: 300, MinH: 200, MaxW: 300, MaxH: 200}
	ci := addClient(w, b, 10, Rect{100, 100, 300, 200})

	c := w.client(ci)
	if !c.IsFixed {
		t.Error("min==max client not fixed")
	}
	if !c.IsFloating {
		t.Error("fixed client not floating")
	}
}

func TestManageClampsOffscreenWindow(t *testing.T) {
	w, b, _ := newTestWM(t, []Rect{{0, 0, 1920, 1080}})
	b.dialogs[10] = true
	ci := addClient(w, b, 10, Rect{5000, -500, 400, 300})

	c := w.client(ci)
	if c.Geom.X+c.Geom.Width > 1920 {
		t.Errorf("x = %d, client off the right edge", c.Geom.X)
	}
	// A top bar keeps clients below it when they sit over its span.
	if c.Geom.Y < w.monitors[0].WinArea.Y {
		t.Errorf("y = %d, client under the bar", c.Geom.Y)
	}
}

func TestUnmanageReleasesClient(t *testing.T) {
	w, b, _ := newTestWM(t, []Rect{{0, 0, 1920, 1080}})
	addClient(w, b, 10, Rect{0, 0, 400, 300})
	ci := addClient(w, b, 11, Rect{0, 0, 400, 300})

	w.unmanage(ci, false)

	if w.winToClient(11) != nilIdx {
		t.Error("client still resolvable after unmanage")
	}
	if len(b.withdrawn) != 1 || b.withdrawn[0] != 11 {
		t.Errorf("withdrawn = %v, want [11]", b.withdrawn)
	}
	if len(b.clientList) != 1 || b.clientList[0] != 10 {
		t.Errorf("client list = %v, want [10]", b.clientList)
	}
	// Selection falls back to the remaining client.
	if got := w.monitors[0].Sel; got != w.winToClient(10) {
		t.Errorf("Sel = %d, want the survivor", got)
	}
}

func TestUnmanageDestroyedSkipsCleanup(t *testing.T) {
	w, b, _ := newTestWM(t, []Rect{{0, 0, 1920, 1080}})
	ci := addClient(w, b, 10, Rect{0, 0, 400, 300})

	w.unmanage(ci, true)
	if len(b.withdrawn) != 0 {
		t.Error("withdraw requests sent for an already destroyed window")
	}
}

func TestSetFullscreenRoundTrip(t *testing.T) {
	w, b, _ := newTestWM(t, []Rect{{0, 0, 1920, 1080}})
	ci := addClient(w, b, 10, Rect{0, 0, 400, 300})
	c := w.client(ci)
	tiledGeom := c.Geom

	w.setFullscreen(ci, true)
	if !c.IsFullscreen || !c.IsFloating {
		t.Fatal("client not fullscreen and floating")
	}
	if c.BorderWidth != 0 {
		t.Errorf("border width = %d, want 0", c.BorderWidth)
	}
	want := Rect{X: 0, Y: 0, Width: 1920, Height: 1080}
	if c.Geom != want {
		t.Errorf("geometry = %+v, want the whole screen %+v", c.Geom, want)
	}
	if !b.fullscreen[10] {
		t.Error("fullscreen state not announced")
	}

	w.setFullscreen(ci, false)
	if c.IsFullscreen || c.IsFloating {
		t.Fatal("client still fullscreen or floating")
	}
	if c.BorderWidth != 2 {
		t.Errorf("border width = %d, want restored 2", c.BorderWidth)
	}
	if c.Geom != tiledGeom {
		t.Errorf("geometry = %+v, want restored %+v", c.Geom, tiledGeom)
	}
	if b.fullscreen[10] {
		t.Error("fullscreen state not withdrawn")
	}
}

func TestSetFullscreenIsIdempotent(t *testing.T) {
	w, b, _ := newTestWM(t, []Rect{{0, 0, 1920, 1080}})
	ci := addClient(w, b, 10, Rect{0, 0, 400, 300})

	w.setFullscreen(ci, true)
	geom := w.client(ci).Geom
	w.setFullscreen(ci, true)
	if w.client(ci).Geom != geom {
		t.Error("repeated fullscreen changed the geometry")
	}
	w.setFullscreen(ci, false)
	w.setFullscreen(ci, false)
	if w.client(ci).IsFullscreen {
		t.Error("client fullscreen after double exit")
	}
}

func TestUpdateWMHintsUrgency(t *testing.T) {
	w, b, _ := newTestWM(t, []Rect{{0, 0, 1920, 1080}})
	ai := addClient(w, b, 10, Rect{0, 0, 400, 300})
	addClient(w, b, 11, Rect{0, 0, 400, 300})

	// Urgency on an unfocused client is recorded.
	b.wmHints[10] = Hints{Urgent: true}
	w.updateWMHints(ai)
	if !w.client(ai).IsUrgent {
		t.Error("urgency not recorded")
	}

	// Urgency on the focused client is cleared at the source instead.
	sel := w.monitors[0].Sel
	b.wmHints[w.client(sel).Win] = Hints{Urgent: true}
	w.updateWMHints(sel)
	if w.client(sel).IsUrgent {
		t.Error("urgency recorded on the focused client")
	}
	if b.wmHints[w.client(sel).Win].Urgent {
		t.Error("urgency hint not cleared on the server")
	}
}

func TestUpdateTitleTruncates(t *testing.T) {
	w, b, _ := newTestWM(t, []Rect{{0, 0, 1920, 1080}})
	ci := addClient(w, b, 10, Rect{0, 0, 400, 300})

	long := make([]byte, 400)
	for i := range long {
		long[i] = 'a'
	}
	b.titles[10] = string(long)
	w.updateTitle(ci)
	if got := len(w.client(ci).Name); got != maxTitleLen {
		t.Errorf("title length = %d, want %d", got, maxTitleLen)
	}
}

func TestPublishClientList(t *testing.T) {
	w, b, _ := newTestWM(t, dualScreens)
	addClient(w, b, 10, Rect{0, 0, 400, 300})
	ci := addClient(w, b, 11, Rect{0, 0, 400, 300})
	w.sendToMonitor(ci, 1)

	w.publishClientList()
	if len(b.clientList) != 2 {
		t.Errorf("client list = %v, want both windows", b.clientList)
	}
}
