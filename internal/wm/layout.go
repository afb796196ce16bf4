package wm

// Layout selects how visible tiled clients are arranged on a monitor.
type Layout uint8

const (
	LayoutTile Layout = iota
	LayoutMonocle
)

func (l Layout) String() string {
	switch l {
	case LayoutTile:
		return "tile"
	case LayoutMonocle:
		return "monocle"
	}
	return "unknown"
}

// Symbol is the short form shown in the bar.
func (l Layout) Symbol() string {
	switch l {
	case LayoutTile:
		return "[]="
	case LayoutMonocle:
		return "[M]"
	}
	return "???"
}

// ParseLayout maps a config name to a Layout.
func ParseLayout(name string) (Layout, bool) {
	switch name {
	case "tile", "":
		return LayoutTile, true
	case "monocle":
		return LayoutMonocle, true
	}
	return LayoutTile, false
}

// arrange reflows one monitor: visibility first, then the active layout,
// then stacking order and the bar.
func (wm *WM) arrange(mi int) {
	wm.showHide(mi)
	wm.applyLayout(mi)
	wm.restack(mi)
}

// arrangeAll reflows every valid monitor.
func (wm *WM) arrangeAll() {
	for i := range wm.monitors {
		if wm.monitors[i].Valid {
			wm.arrange(i)
		}
	}
}

func (wm *WM) applyLayout(mi int) {
	switch wm.monitors[mi].Layout {
	case LayoutMonocle:
		wm.monocle(mi)
	default:
		wm.tile(mi)
	}
}

// showHide maps visible clients top down and parks hidden ones off screen
// bottom up, walking the focus stack once in each direction.
func (wm *WM) showHide(mi int) {
	m := &wm.monitors[mi]
	var hidden []int
	for ci := m.Stack; ci != nilIdx; ci = wm.client(ci).nextStack {
		c := wm.client(ci)
		if wm.isVisible(ci) {
			wm.backend.Move(c.Win, c.Geom.X, c.Geom.Y)
			if c.IsFloating && !c.IsFullscreen {
				wm.resize(ci, c.Geom.X, c.Geom.Y, c.Geom.Width, c.Geom.Height, false)
			}
		} else {
			hidden = append(hidden, ci)
		}
	}
	for i := len(hidden) - 1; i >= 0; i-- {
		c := wm.client(hidden[i])
		wm.backend.Move(c.Win, wm.gappedWidth(c)*-2, c.Geom.Y)
	}
}

// tile puts the first tiled client in a master column on the right, sized by
// the monitor's mfact percentage, and splits the rest evenly in a column on
// the left. A lone client gets the whole window area.
func (wm *WM) tile(mi int) {
	m := &wm.monitors[mi]
	n := wm.nTiled(mi)
	if n == 0 {
		return
	}
	wa := m.WinArea

	ci := wm.nextTiled(m.Clients)
	if n == 1 {
		wm.resize(ci, wa.X, wa.Y, wa.Width, wa.Height, false)
		return
	}

	c := wm.client(ci)
	mw := wa.Width * m.MFact / 100
	wm.resize(ci, wa.X+wa.Width-mw, wa.Y, mw-2*c.BorderWidth, wa.Height-2*c.BorderWidth, false)

	mw -= wm.gap
	height := (wa.Height - wm.gap) / (n - 1)
	ty := 0
	for ci = wm.nextTiled(c.nextManaged); ci != nilIdx; ci = wm.nextTiled(wm.client(ci).nextManaged) {
		c = wm.client(ci)
		wm.resize(ci, wa.X, wa.Y+ty, wa.Width-mw-2*c.BorderWidth, height-2*c.BorderWidth+wm.gap, false)
		if ty+height < wa.Height {
			ty += height
		}
	}
}

// monocle stacks every tiled client over the full window area.
func (wm *WM) monocle(mi int) {
	m := &wm.monitors[mi]
	for ci := wm.nextTiled(m.Clients); ci != nilIdx; ci = wm.nextTiled(wm.client(ci).nextManaged) {
		wa := m.WinArea
		wm.resize(ci, wa.X, wa.Y, wa.Width, wa.Height, false)
	}
}

// resize applies size hints to the requested geometry and reconfigures the
// window when the result differs from what the client already has.
func (wm *WM) resize(ci, x, y, w, h int, interact bool) {
	c := wm.client(ci)
	if x, y, w, h, changed := wm.applySizeHints(c, x, y, w, h, interact); changed {
		wm.resizeClient(ci, x, y, w, h)
	}
}

// resizeClient commits a geometry. Tiled clients are inset by the configured
// gap; in monocle, or when a tiled client is alone, both the gap and the
// border collapse so the window covers the whole area.
func (wm *WM) resizeClient(ci, x, y, w, h int) {
	c := wm.client(ci)
	m := &wm.monitors[c.Monitor]

	bw := c.BorderWidth
	gap := wm.gap
	if c.IsFloating {
		gap = 0
	} else if m.Layout == LayoutMonocle || wm.nTiled(c.Monitor) == 1 {
		gap = 0
		bw = 0
	}

	c.OldGeom = c.Geom
	c.Geom = Rect{X: x + gap, Y: y + gap, Width: w - 2*gap, Height: h - 2*gap}

	wm.backend.Configure(c.Win, c.Geom, bw)
	wm.backend.NotifyConfigure(c.Win, c.Geom, c.BorderWidth)
	wm.backend.Sync()
}

// restack redraws the bar, raises a floating selection, and pushes every
// visible tiled client below the bar in focus-stack order.
func (wm *WM) restack(mi int) {
	wm.drawBar(mi)
	m := &wm.monitors[mi]
	if m.Sel == nilIdx {
		return
	}
	if wm.client(m.Sel).IsFloating {
		wm.backend.Raise(wm.client(m.Sel).Win)
	}
	sibling := m.BarWin
	for ci := m.Stack; ci != nilIdx; ci = wm.client(ci).nextStack {
		c := wm.client(ci)
		if !c.IsFloating && wm.isVisible(ci) {
			wm.backend.StackBelow(c.Win, sibling)
			sibling = c.Win
		}
	}
	wm.backend.Sync()
}
