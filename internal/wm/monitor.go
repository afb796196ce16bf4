package wm

// Monitor is one display slot in the registry. Slots are never compacted;
// an invalidated slot is zeroed and reused by the next createMonitor.
type Monitor struct {
	Valid   bool
	ShowBar bool
	TopBar  bool

	MFact int
	Num   int

	// BarY is the y coordinate of the bar window; -barHeight when hidden.
	BarY int

	Screen  Rect // full physical area
	WinArea Rect // Screen minus the bar

	SelTags uint32
	Layout  Layout

	Clients int // head of the managed list
	Stack   int // head of the focus/stacking list
	Sel     int // focused client, nilIdx for none

	BarWin Window
}

func (wm *WM) monitor(idx int) *Monitor {
	return &wm.monitors[idx]
}

// createMonitor claims the first invalid slot, growing the registry when
// every slot is in use, and returns its index. Indices are the handles the
// rest of the engine uses, stable across growth.
func (wm *WM) createMonitor() int {
	idx := -1
	for i := range wm.monitors {
		if !wm.monitors[i].Valid {
			idx = i
			break
		}
	}
	if idx == -1 {
		wm.monitors = append(wm.monitors, Monitor{})
		idx = len(wm.monitors) - 1
	}

	m := &wm.monitors[idx]
	*m = Monitor{
		Valid:   true,
		Num:     idx,
		ShowBar: wm.cfg.ShowBar,
		TopBar:  wm.cfg.TopBar,
		MFact:   wm.cfg.MFact,
		SelTags: 1,
		Layout:  wm.defaultLayout,
		Clients: nilIdx,
		Stack:   nilIdx,
		Sel:     nilIdx,
	}
	return idx
}

// invalidateMonitor releases the slot's bar window and zeroes the slot.
// Clients must already have been migrated away.
func (wm *WM) invalidateMonitor(idx int) {
	m := &wm.monitors[idx]
	if m.BarWin != None {
		wm.backend.DestroyBar(m.BarWin)
	}
	*m = Monitor{Clients: nilIdx, Stack: nilIdx, Sel: nilIdx}
}

// nextValidMonitor scans circularly from start for the first valid slot.
// start itself is a candidate; with no valid slot at all, start is
// returned unchanged.
func (wm *WM) nextValidMonitor(start int) int {
	n := len(wm.monitors)
	if n == 0 {
		return start
	}
	for off := 0; off < n; off++ {
		idx := (start + off) % n
		if wm.monitors[idx].Valid {
			return idx
		}
	}
	return start
}

// rectToMonitor returns the monitor whose window area overlaps the
// rectangle most. Ties keep the lowest index; zero overlap everywhere
// keeps the current selection.
func (wm *WM) rectToMonitor(r Rect) int {
	best := wm.selMon
	bestArea := 0
	for i := range wm.monitors {
		m := &wm.monitors[i]
		if !m.Valid {
			continue
		}
		if area := r.Intersection(m.WinArea); area > bestArea {
			bestArea = area
			best = i
		}
	}
	return best
}

// dirToMonitor walks the registry cyclically in the given direction from
// the selected monitor, skipping invalid slots.
func (wm *WM) dirToMonitor(dir int) int {
	n := len(wm.monitors)
	step := 1
	if dir < 0 {
		step = n - 1
	}
	idx := wm.selMon
	for {
		idx = (idx + step) % n
		if idx == wm.selMon || wm.monitors[idx].Valid {
			return idx
		}
	}
}

// winToMonitor maps a window to a monitor: the pointer's monitor for the
// root, the owning monitor for bars and clients, the selection otherwise.
func (wm *WM) winToMonitor(w Window, root bool) int {
	if root {
		if x, y, ok := wm.backend.QueryPointer(); ok {
			return wm.rectToMonitor(Rect{X: x, Y: y, Width: 1, Height: 1})
		}
	}
	for i := range wm.monitors {
		if wm.monitors[i].Valid && wm.monitors[i].BarWin == w {
			return i
		}
	}
	if ci := wm.winToClient(w); ci != nilIdx {
		return wm.client(ci).Monitor
	}
	return wm.selMon
}

// updateBarPos derives the monitor's window area and bar position from its
// screen rectangle and bar flags.
func (wm *WM) updateBarPos(idx int) {
	m := &wm.monitors[idx]
	m.WinArea.Y = m.Screen.Y
	m.WinArea.Height = m.Screen.Height
	if m.ShowBar {
		m.WinArea.Height -= wm.barHeight
		if m.TopBar {
			m.BarY = m.WinArea.Y
			m.WinArea.Y += wm.barHeight
		} else {
			m.BarY = m.WinArea.Y + m.WinArea.Height
		}
	} else {
		m.BarY = -wm.barHeight
	}
}

// updateGeometry reconciles the registry against the hardware's reported
// display rectangles. It returns whether any monitor geometry changed;
// callers use that to reflow bars and fullscreen clients.
func (wm *WM) updateGeometry() bool {
	dirty := false

	screens, err := wm.backend.Screens()
	if err != nil || len(screens) == 0 {
		w, h := wm.backend.ScreenSize()
		screens = []Rect{{Width: w, Height: h}}
	}

	// Only unique geometries count as separate displays; mirrored outputs
	// report identical rectangles.
	unique := screens[:0:0]
	for _, s := range screens {
		dup := false
		for _, u := range unique {
			if u == s {
				dup = true
				break
			}
		}
		if !dup {
			unique = append(unique, s)
		}
	}

	count := 0
	for i := range wm.monitors {
		if wm.monitors[i].Valid {
			count++
		}
	}

	if count <= len(unique) {
		for i := 0; i < len(unique)-count; i++ {
			wm.createMonitor()
		}
		i := 0
		for mi := 0; mi < len(wm.monitors) && i < len(unique); mi++ {
			m := &wm.monitors[mi]
			if !m.Valid {
				continue
			}
			if i >= count || m.Screen != unique[i] {
				dirty = true
				m.Num = i
				m.Screen = unique[i]
				m.WinArea = unique[i]
				wm.updateBarPos(mi)
			}
			i++
		}
	} else {
		for removed := len(unique); removed < count; removed++ {
			// Highest valid slot goes first.
			mi := len(wm.monitors) - 1
			for mi >= 0 && !wm.monitors[mi].Valid {
				mi--
			}
			m := &wm.monitors[mi]

			target := mi
			for t := range wm.monitors {
				if t != mi && wm.monitors[t].Valid {
					target = t
					break
				}
			}

			for m.Clients != nilIdx {
				dirty = true
				ci := m.Clients
				c := wm.client(ci)
				m.Clients = c.nextManaged
				wm.detachStack(ci)
				c.Monitor = target
				wm.attach(ci)
				wm.attachStack(ci)
			}
			if mi == wm.selMon {
				wm.selMon = target
			}
			wm.invalidateMonitor(mi)
		}
	}

	if dirty {
		wm.selMon = wm.nextValidMonitor(0)
		if x, y, ok := wm.backend.QueryPointer(); ok {
			wm.selMon = wm.rectToMonitor(Rect{X: x, Y: y, Width: 1, Height: 1})
		}
	}
	return dirty
}
