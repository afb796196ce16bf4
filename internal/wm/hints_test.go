package wm

import "testing"

// hintsWM builds a manager with one 1920x1080 monitor for exercising the
// size-hint resolver directly.
func hintsWM(t *testing.T) *WM {
	t.Helper()
	w, _, _ := newTestWM(t, []Rect{{0, 0, 1920, 1080}})
	return w
}

func floatingClient() *Client {
	return &Client{
		IsFloating:  true,
		Geom:        Rect{X: 100, Y: 100, Width: 1, Height: 1},
		BorderWidth: 2,
	}
}

func TestApplySizeHintsMinimumDimensions(t *testing.T) {
	w := hintsWM(t)
	c := &Client{Geom: Rect{X: 100, Y: 100, Width: 50, Height: 50}}

	// Tiled clients ignore WM_NORMAL_HINTS but are still floored at the
	// bar height so they stay grabbable.
	_, _, gw, gh, _ := w.applySizeHints(c, 100, 100, 0, 5, false)
	if gw != w.barHeight || gh != w.barHeight {
		t.Errorf("size = %dx%d, want %dx%d", gw, gh, w.barHeight, w.barHeight)
	}
}

func TestApplySizeHintsMaxAspect(t *testing.T) {
	w := hintsWM(t)
	c := floatingClient()
	c.MinAspect, c.MaxAspect = 1.0, 2.0

	// 300x100 is wider than 2:1, so the width shrinks to match.
	_, _, gw, gh, _ := w.applySizeHints(c, 100, 100, 300, 100, false)
	if gw != 200 || gh != 100 {
		t.Errorf("size = %dx%d, want 200x100", gw, gh)
	}
}

func TestApplySizeHintsMinAspect(t *testing.T) {
	w := hintsWM(t)
	c := floatingClient()
	c.MinAspect, c.MaxAspect = 1.0, 2.0

	// 100x300 is taller than 1:1, so the height shrinks to match.
	_, _, gw, gh, _ := w.applySizeHints(c, 100, 100, 100, 300, false)
	if gw != 100 || gh != 100 {
		t.Errorf("size = %dx%d, want 100x100", gw, gh)
	}
}

func TestApplySizeHintsIncrements(t *testing.T) {
	w := hintsWM(t)
	c := floatingClient()
	c.IncW, c.IncH = 7, 13

	_, _, gw, gh, _ := w.applySizeHints(c, 100, 100, 100, 100, false)
	if gw != 98 {
		t.Errorf("width = %d, want 98", gw)
	}
	if gh != 91 {
		t.Errorf("height = %d, want 91", gh)
	}
}

func TestApplySizeHintsBaseAndIncrements(t *testing.T) {
	w := hintsWM(t)
	c := floatingClient()
	c.BaseW, c.BaseH = 10, 10
	c.MinW, c.MinH = 20, 20
	c.IncW = 7

	// The base is stripped before the increment rounding and added back:
	// (103-10) rounds down to 91, plus the base gives 101.
	_, _, gw, _, _ := w.applySizeHints(c, 100, 100, 103, 50, false)
	if gw != 101 {
		t.Errorf("width = %d, want 101", gw)
	}
}

func TestApplySizeHintsBaseEqualsMin(t *testing.T) {
	w := hintsWM(t)
	c := floatingClient()
	c.BaseW, c.BaseH = 50, 50
	c.MinW, c.MinH = 50, 50
	c.MinAspect, c.MaxAspect = 1.0, 1.0

	// A base equal to the minimum is not stripped before the aspect
	// check, so the full 200x100 request is squared rather than the
	// base-stripped 150x50.
	_, _, gw, gh, _ := w.applySizeHints(c, 100, 100, 200, 100, false)
	if gw != 100 || gh != 100 {
		t.Errorf("size = %dx%d, want 100x100", gw, gh)
	}
}

func TestApplySizeHintsMinMaxBounds(t *testing.T) {
	w := hintsWM(t)
	c := floatingClient()
	c.MinW, c.MinH = 200, 150
	c.MaxW, c.MaxH = 300, 250

	_, _, gw, gh, _ := w.applySizeHints(c, 100, 100, 50, 50, false)
	if gw != 200 || gh != 150 {
		t.Errorf("minimum floor: size = %dx%d, want 200x150", gw, gh)
	}

	_, _, gw, gh, _ = w.applySizeHints(c, 100, 100, 900, 900, false)
	if gw != 300 || gh != 250 {
		t.Errorf("maximum cap: size = %dx%d, want 300x250", gw, gh)
	}
}

func TestApplySizeHintsIdempotent(t *testing.T) {
	w := hintsWM(t)
	c := floatingClient()
	c.BaseW, c.BaseH = 8, 8
	c.IncW, c.IncH = 11, 9
	c.MinW, c.MinH = 40, 40

	x, y, gw, gh, _ := w.applySizeHints(c, 100, 100, 333, 222, false)
	x2, y2, gw2, gh2, _ := w.applySizeHints(c, x, y, gw, gh, false)
	if x != x2 || y != y2 || gw != gw2 || gh != gh2 {
		t.Errorf("resolver not stable: first %d,%d %dx%d then %d,%d %dx%d",
			x, y, gw, gh, x2, y2, gw2, gh2)
	}
}

func TestApplySizeHintsClampsOntoMonitor(t *testing.T) {
	w := hintsWM(t)
	c := floatingClient()
	c.Geom = Rect{X: 100, Y: 100, Width: 200, Height: 200}

	// A position past the right edge is pulled back so the client's
	// outer footprint stays reachable.
	x, _, _, _, _ := w.applySizeHints(c, 5000, 100, 200, 200, false)
	wa := w.monitors[0].WinArea
	if want := wa.X + wa.Width - w.gappedWidth(c); x != want {
		t.Errorf("x = %d, want %d", x, want)
	}

	// Entirely off the left edge snaps back to the area origin.
	x, _, _, _, _ = w.applySizeHints(c, -5000, 100, 200, 200, false)
	if x != wa.X {
		t.Errorf("x = %d, want %d", x, wa.X)
	}
}

func TestApplySizeHintsInteractiveClampsToScreen(t *testing.T) {
	w := hintsWM(t)
	c := floatingClient()
	c.Geom = Rect{X: 100, Y: 100, Width: 200, Height: 200}

	// Drags clamp against the whole virtual screen, not the window area.
	_, y, _, _, _ := w.applySizeHints(c, 100, 5000, 200, 200, true)
	if want := 1080 - w.gappedHeight(c); y != want {
		t.Errorf("y = %d, want %d", y, want)
	}
}

func TestApplySizeHintsReportsChanged(t *testing.T) {
	w := hintsWM(t)
	c := floatingClient()
	c.Geom = Rect{X: 100, Y: 100, Width: 200, Height: 200}

	if _, _, _, _, changed := w.applySizeHints(c, 100, 100, 200, 200, false); changed {
		t.Error("unchanged geometry reported as changed")
	}
	if _, _, _, _, changed := w.applySizeHints(c, 100, 100, 201, 200, false); !changed {
		t.Error("changed geometry reported as unchanged")
	}
}
